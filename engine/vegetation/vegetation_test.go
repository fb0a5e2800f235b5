package vegetation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/common"
	"github.com/verdant-engine/verdant-go/engine/noise"
)

const eps = 1e-5

func vecNear(t *testing.T, got, want mgl32.Vec3, context string) {
	t.Helper()
	for i := range 3 {
		if math.Abs(float64(got[i]-want[i])) > eps {
			t.Fatalf("%s: got %v, want %v", context, got, want)
		}
	}
}

func TestApplyWindAnchoredBase(t *testing.T) {
	// heightPercent 0 must leave the vertex exactly where it was.
	wind := mgl32.Vec3{1.5, 0, 0.5}
	pos := mgl32.Vec3{3, 0, -2}
	for _, time := range []float32{0, 0.7, 12.3} {
		got := ApplyWind(7, pos, 0, wind, time)
		if got != pos {
			t.Fatalf("ApplyWind at heightPercent 0 moved the vertex: %v -> %v", pos, got)
		}
	}
}

func TestApplyWindBounded(t *testing.T) {
	// At heightPercent 1 the displacement magnitude is bounded by
	// (SwayExtent + FlutterIntensity) * |wind|.
	wind := mgl32.Vec3{2, 0, 1}
	bound := float64((SwayExtent+FlutterIntensity)*wind.Len()) + eps
	pos := mgl32.Vec3{0.3, 1, 0.9}
	for time := float32(0); time < 10; time += 0.37 {
		got := ApplyWind(3, pos, 1, wind, time)
		if d := float64(got.Sub(pos).Len()); d > bound {
			t.Fatalf("displacement %v at t=%v exceeds bound %v", d, time, bound)
		}
	}
}

func TestApplyWindClosedForm(t *testing.T) {
	// Wind (1,0,0), time 0, instance 0, heightPercent 1: the sway term is
	// sin(0) = 0 and the flutter term sin(2*0 + 0) = 0 for a vertex at the
	// origin, so the displacement collapses to zero regardless of the
	// direction drift. Verified against the closed-form substitution rather
	// than an opaque expected constant.
	wind := mgl32.Vec3{1, 0, 0}
	got := ApplyWind(0, mgl32.Vec3{}, 1, wind, 0)
	vecNear(t, got, mgl32.Vec3{}, "closed-form zero case")

	// Same setup at t = 0.25: reproduce the formula term by term.
	time := float32(0.25)
	sway := common.Sin(time*SwaySpeed) * SwayExtent
	drift := (noise.Value1D(time*NoiseScale) - 0.5) * 2
	dir := common.RotateY(drift, mgl32.Vec3{1, 0, 0})
	flutter := common.Sin(4*time) * FlutterIntensity
	want := dir.Mul(sway + flutter)
	got = ApplyWind(0, mgl32.Vec3{}, 1, wind, time)
	vecNear(t, got, want, "closed-form t=0.25 case")
}

func TestApplyWindInstancePhase(t *testing.T) {
	// Different instance ids must not sway in lockstep.
	wind := mgl32.Vec3{1, 0, 0}
	pos := mgl32.Vec3{0, 1, 0}
	a := ApplyWind(1, pos, 1, wind, 1.0)
	b := ApplyWind(2, pos, 1, wind, 1.0)
	if a == b {
		t.Fatalf("instances 1 and 2 produced identical sway %v", a)
	}
}

func TestApplyPlayerBendHorizontalOnly(t *testing.T) {
	camera := mgl32.Vec3{0, 1.7, 0}
	pos := mgl32.Vec3{0.5, 0.8, 0.5}
	got := ApplyPlayerBend(pos, 1, camera)
	if got.Y() != pos.Y() {
		t.Fatalf("player bend modified the vertical component: %v -> %v", pos.Y(), got.Y())
	}

	// The push must point away from the camera in the horizontal plane.
	away := mgl32.Vec2{got.X() - pos.X(), got.Z() - pos.Z()}
	radial := mgl32.Vec2{pos.X() - camera.X(), pos.Z() - camera.Z()}
	if away.Dot(radial) <= 0 {
		t.Fatalf("push %v does not point away from camera (radial %v)", away, radial)
	}
}

func TestApplyPlayerBendFalloff(t *testing.T) {
	camera := mgl32.Vec3{0, 0, 0}
	near := ApplyPlayerBend(mgl32.Vec3{1, 0, 0}, 1, camera)
	far := ApplyPlayerBend(mgl32.Vec3{10, 0, 0}, 1, camera)
	nearPush := near.X() - 1
	farPush := far.X() - 10
	if nearPush <= farPush {
		t.Fatalf("bend should weaken with distance: near %v, far %v", nearPush, farPush)
	}
}

func TestApplyPlayerBendAnchoredBase(t *testing.T) {
	camera := mgl32.Vec3{0, 0, 0}
	pos := mgl32.Vec3{1, 0, 1}
	if got := ApplyPlayerBend(pos, 0, camera); got != pos {
		t.Fatalf("bend at heightPercent 0 moved the vertex: %v -> %v", pos, got)
	}
}
