package tessellation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/engine/frame"
	"github.com/verdant-engine/verdant-go/engine/geometry"
	"github.com/verdant-engine/verdant-go/engine/surface"
	"github.com/verdant-engine/verdant-go/engine/texture"
)

const eps = 1e-5

// floorPatch builds a triangle in the XZ plane around the origin. Its face
// normal points toward -Y, so a camera below the plane sees it front-on.
func floorPatch() [ControlPoints]geometry.Vertex {
	mk := func(x, z float32, u, v float32) geometry.Vertex {
		return geometry.Vertex{
			WorldPosition:     mgl32.Vec3{x, 0, z},
			PrevWorldPosition: mgl32.Vec3{x, 0, z},
			WorldNormal:       mgl32.Vec3{0, -1, 0},
			WorldTangent:      mgl32.Vec3{1, 0, 0},
			UV:                mgl32.Vec2{u, v},
			Color:             mgl32.Vec4{1, 1, 1, 1},
		}
	}
	return [ControlPoints]geometry.Vertex{
		mk(0, 0, 0, 0),
		mk(1, 0, 1, 0),
		mk(0, 1, 0, 1),
	}
}

func TestControlBackFaceEarlyOut(t *testing.T) {
	patch := floorPatch()
	// Camera above the plane: visibility > 0, factor must be exactly 1 at any distance.
	for _, y := range []float32{1, 10, 1000} {
		p := Control(patch, mgl32.Vec3{0.3, y, 0.3})
		for i, f := range p.EdgeFactors {
			if f != 1 {
				t.Fatalf("back-facing edge factor [%d] = %v at camera height %v, want 1", i, f, y)
			}
		}
		if p.InsideFactor != 1 {
			t.Fatalf("back-facing inside factor = %v, want 1", p.InsideFactor)
		}
	}
}

func TestControlDistanceMonotonicity(t *testing.T) {
	patch := floorPatch()
	prev := float32(math.Inf(1))
	for _, y := range []float32{-0.5, -2, -5, -10, -20, -40, -60, -100} {
		p := Control(patch, mgl32.Vec3{0.33, y, 0.33})
		f := p.InsideFactor
		if f < 1 || f > MaxFactor {
			t.Fatalf("factor %v at distance %v outside [1, %d]", f, -y, MaxFactor)
		}
		if f > prev {
			t.Fatalf("factor increased with distance: %v -> %v at camera y %v", prev, f, y)
		}
		prev = f
	}
}

func TestControlUniformFactors(t *testing.T) {
	p := Control(floorPatch(), mgl32.Vec3{0.33, -3, 0.33})
	for i, f := range p.EdgeFactors {
		if f != p.InsideFactor {
			t.Fatalf("edge factor [%d] = %v differs from inside factor %v", i, f, p.InsideFactor)
		}
	}
	if !p.Subdivided() {
		t.Fatalf("near front-facing patch not subdivided (factor %v)", p.InsideFactor)
	}
}

func TestControlFarClampsToOne(t *testing.T) {
	// Beyond the falloff end distance the curve bottoms out below 1 and the
	// factor must floor at exactly 1.
	p := Control(floorPatch(), mgl32.Vec3{0.33, -200, 0.33})
	if p.InsideFactor != 1 {
		t.Fatalf("far factor = %v, want exactly 1", p.InsideFactor)
	}
}

func evalParams(flags surface.Flags) surface.Params {
	return surface.Params{
		Tiling:         mgl32.Vec2{1, 1},
		LocalWidth:     1,
		LocalHeight:    1,
		HeightStrength: 2,
		Flags:          flags,
	}
}

func TestEvaluateCornersReproduceControlPoints(t *testing.T) {
	p := Control(floorPatch(), mgl32.Vec3{0.33, 5, 0.33}) // factor 1, no displacement
	corners := []struct {
		bary mgl32.Vec3
		want int
	}{
		{mgl32.Vec3{1, 0, 0}, 0},
		{mgl32.Vec3{0, 1, 0}, 1},
		{mgl32.Vec3{0, 0, 1}, 2},
	}
	for _, c := range corners {
		v := Evaluate(p, c.bary, evalParams(0), nil, frame.New())
		want := p.Control[c.want]
		if v.WorldPosition.Sub(want.WorldPosition).Len() > eps {
			t.Fatalf("corner %v position %v, want control point %v", c.bary, v.WorldPosition, want.WorldPosition)
		}
		if v.UV.Sub(want.UV).Len() > eps {
			t.Fatalf("corner %v UV %v, want %v", c.bary, v.UV, want.UV)
		}
	}
}

func TestEvaluatePartitionOfUnity(t *testing.T) {
	p := Control(floorPatch(), mgl32.Vec3{0.33, 5, 0.33})
	bary := mgl32.Vec3{0.2, 0.3, 0.5}
	v := Evaluate(p, bary, evalParams(0), nil, frame.New())

	want := p.Control[0].WorldPosition.Mul(0.2).
		Add(p.Control[1].WorldPosition.Mul(0.3)).
		Add(p.Control[2].WorldPosition.Mul(0.5))
	if v.WorldPosition.Sub(want).Len() > eps {
		t.Fatalf("barycentric position %v, want weighted sum %v", v.WorldPosition, want)
	}
	if math.Abs(float64(v.WorldNormal.Len()-1)) > eps {
		t.Fatalf("interpolated normal not renormalized: |n| = %v", v.WorldNormal.Len())
	}
}

func TestEvaluateDisplacementGating(t *testing.T) {
	bary := mgl32.Vec3{1.0 / 3, 1.0 / 3, 1.0 / 3}
	// Alpha 0.25 inverts to height 0.75.
	heightMap := texture.Constant(mgl32.Vec4{0, 0, 0, 0.25})

	// Subdivided + height texture: displacement applies along -faceNormal.
	subdivided := Control(floorPatch(), mgl32.Vec3{0.33, -2, 0.33})
	if !subdivided.Subdivided() {
		t.Fatalf("setup: near patch not subdivided")
	}
	v := Evaluate(subdivided, bary, evalParams(surface.FlagHeightTexture), heightMap, frame.New())
	// Face normal is (0,-1,0); pushing along its negative raises the point by
	// heightStrength*0.1 * (1-alpha) = 2*0.1*0.75 = 0.15.
	if math.Abs(float64(v.WorldPosition.Y()-0.15)) > eps {
		t.Fatalf("displaced Y = %v, want 0.15", v.WorldPosition.Y())
	}
	if math.Abs(float64(v.PrevWorldPosition.Y()-0.15)) > eps {
		t.Fatalf("previous position not displaced identically: %v", v.PrevWorldPosition.Y())
	}

	// Same patch without the capability: no displacement.
	flat := Evaluate(subdivided, bary, evalParams(0), heightMap, frame.New())
	if flat.WorldPosition.Y() != 0 {
		t.Fatalf("displacement applied without height-texture capability: %v", flat.WorldPosition)
	}

	// Height texture but factor 1 (not subdivided): no displacement.
	far := Control(floorPatch(), mgl32.Vec3{0.33, -200, 0.33})
	if far.Subdivided() {
		t.Fatalf("setup: far patch unexpectedly subdivided")
	}
	v = Evaluate(far, bary, evalParams(surface.FlagHeightTexture), heightMap, frame.New())
	if v.WorldPosition.Y() != 0 {
		t.Fatalf("displacement applied to non-subdivided patch: %v", v.WorldPosition)
	}
}

func TestEvaluateProjects(t *testing.T) {
	viewProj := mgl32.Perspective(1, 1.5, 0.1, 100)
	fc := frame.New(frame.WithViewProjection(viewProj), frame.WithViewProjectionUnjittered(viewProj))
	p := Control(floorPatch(), mgl32.Vec3{0.33, 5, 0.33})
	v := Evaluate(p, mgl32.Vec3{1, 0, 0}, evalParams(0), nil, fc)

	want := viewProj.Mul4x1(v.WorldPosition.Vec4(1))
	if v.ClipPosition != want {
		t.Fatalf("evaluated vertex not projected: %v, want %v", v.ClipPosition, want)
	}
	if v.CurrentClipPosition != v.ClipPosition {
		t.Fatalf("CurrentClipPosition does not alias ClipPosition")
	}
}
