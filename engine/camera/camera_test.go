package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-6

func TestUnjitteredMatchesPerspectiveLookAt(t *testing.T) {
	position := mgl32.Vec3{3, 4, 12}
	target := mgl32.Vec3{0, 1, 0}
	c := New(
		WithPosition(position),
		WithTarget(target),
		WithFov(mgl32.DegToRad(45)),
		WithAspect(1.5),
		WithClipPlanes(0.5, 150),
	)

	want := mgl32.Perspective(mgl32.DegToRad(45), 1.5, 0.5, 150).
		Mul4(mgl32.LookAtV(position, target, mgl32.Vec3{0, 1, 0}))
	got := c.ViewProjectionUnjittered()
	for i := range 16 {
		if math.Abs(float64(got[i]-want[i])) > eps {
			t.Fatalf("matrix element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestJitterStaysSubPixel(t *testing.T) {
	c := New()
	width, height := 1280, 720

	base := c.ViewProjectionUnjittered()
	for frame := range 2 * jitterPeriod {
		c.Advance()
		jittered := c.ViewProjection(width, height)

		// The jitter shifts clip x/y by less than a pixel of NDC (scaled by
		// the clip w) and never touches z or w.
		p := mgl32.Vec4{0, 0, -5, 1}
		q := base.Mul4x1(p)
		dp := jittered.Mul4x1(p).Sub(q)
		limit := math.Abs(float64(q.W())) * 2 / float64(width)
		if math.Abs(float64(dp.X())) > limit {
			t.Fatalf("frame %d: x jitter %v exceeds a pixel", frame, dp.X())
		}
		if math.Abs(float64(dp.Z())) > eps || math.Abs(float64(dp.W())) > eps {
			t.Fatalf("frame %d: jitter leaked into z/w: %v", frame, dp)
		}
	}
}

func TestJitterCycles(t *testing.T) {
	c := New()
	width, height := 800, 600

	c.Advance()
	first := c.ViewProjection(width, height)
	for range jitterPeriod - 1 {
		c.Advance()
		if c.ViewProjection(width, height) == first {
			t.Fatal("jitter repeated before a full cycle")
		}
	}
	c.Advance()
	if c.ViewProjection(width, height) != first {
		t.Fatal("jitter did not return to the first sample after a full cycle")
	}
}

func TestZeroSizeFallsBackToUnjittered(t *testing.T) {
	c := New()
	c.Advance()
	if c.ViewProjection(0, 0) != c.ViewProjectionUnjittered() {
		t.Fatal("zero framebuffer size should disable jitter")
	}
}

func TestHaltonSequence(t *testing.T) {
	// First elements of the base-2 sequence: 1/2, 1/4, 3/4, 1/8.
	want := []float32{0.5, 0.25, 0.75, 0.125}
	for i, w := range want {
		got := halton(i+1, 2)
		if math.Abs(float64(got-w)) > eps {
			t.Fatalf("halton(%d, 2): got %v, want %v", i+1, got, w)
		}
	}
	for i := 1; i < 64; i++ {
		v := halton(i, 3)
		if v <= 0 || v >= 1 {
			t.Fatalf("halton(%d, 3) = %v out of (0, 1)", i, v)
		}
	}
}
