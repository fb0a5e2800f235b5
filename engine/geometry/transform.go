package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/common"
	"github.com/verdant-engine/verdant-go/engine/frame"
	"github.com/verdant-engine/verdant-go/engine/noise"
	"github.com/verdant-engine/verdant-go/engine/surface"
)

const (
	// grassCrossSectionAngle is the half-angle of the faked rounded blade
	// cross-section: normals are blended between ±60° Y rotations by width.
	grassCrossSectionAngle = float32(60.0 * math.Pi / 180.0)

	// grassGravityCurvature scales the per-instance gravity bend of a blade.
	grassGravityCurvature = 0.3
)

var (
	// grassBaseColor and grassTipColor bound the blade's height gradient.
	grassBaseColor = mgl32.Vec4{0.05, 0.2, 0.01, 1}
	grassTipColor  = mgl32.Vec4{0.5, 0.55, 0.1, 1}
)

// ReconstructPreviousTransform rebuilds a usable previous-frame transform from
// the host-supplied previous-transform value. The host packs unrelated
// auxiliary per-draw payload into the first two columns of the matrix's last
// row; that row must be discarded, not interpreted. The upper-left 3x3 is kept
// and re-padded into a proper 4x4 with zero translation and an identity last
// row. Callers compose the result with the instance transform; for
// non-instanced draws the original value is used verbatim instead (translation
// included) and this function is not involved.
//
// Parameters:
//   - prev: the raw previous-transform value from the host
//
// Returns:
//   - mgl32.Mat4: the reconstructed rotation/scale-only previous transform
func ReconstructPreviousTransform(prev mgl32.Mat4) mgl32.Mat4 {
	return prev.Mat3().Mat4()
}

// TransformVertex runs the world-transform stage for one input vertex: UV
// tiling, width/height normalization, the grass-blade variant (color gradient,
// rounded cross-section normals, gravity bend), instancing, previous-transform
// reconstruction, world-space normal/tangent transform, and ambient animation
// of both temporal samples.
//
// The previous-frame world position is produced by exactly the same formulas
// as the current one, differing only in the transform supplied and a time
// offset of minus one frame's delta time.
//
// Division by a zero local width/height produces NaN/Inf percents that
// propagate silently, as the execution model requires.
//
// Parameters:
//   - in: the object-space input vertex
//   - base: the draw's base object-to-world transform
//   - prev: the host-supplied previous-frame transform value
//   - params: the material parameters for this draw
//   - fc: the frame constant block
//
// Returns:
//   - Vertex: the populated world-space vertex record (clip fields unset;
//     call Project or run the tessellation stages to finish it)
func TransformVertex(in Input, base, prev mgl32.Mat4, params surface.Params, fc frame.Constants) Vertex {
	surf := params.Surface()

	uv := mgl32.Vec2{
		in.UV.X()*params.Tiling.X() + params.Offset.X(),
		in.UV.Y()*params.Tiling.Y() + params.Offset.Y(),
	}
	widthPercent := in.Position.X() / params.LocalWidth
	heightPercent := in.Position.Y() / params.LocalHeight

	color := mgl32.Vec4{1, 1, 1, 1}
	localPosition := in.Position
	normal := in.Normal

	if surf.IsGrassBlade() {
		// Darker base fading to a yellowish tip over the lower half.
		color = common.MixVec4(grassBaseColor, grassTipColor, common.Smoothstep(0, 1, heightPercent*0.5))

		// Fake a rounded cross-section by blending ±60° rotated normals by width.
		left := common.RotateY(-grassCrossSectionAngle, in.Normal)
		right := common.RotateY(grassCrossSectionAngle, in.Normal)
		normal = left.Add(right.Sub(left).Mul(widthPercent)).Normalize()

		// Per-instance gravity bend, strongest at the tip.
		bend := noise.Hash(float32(in.InstanceID)) * heightPercent * grassGravityCurvature
		localPosition = common.RotateX(bend, localPosition.Vec3()).Vec4(in.Position.W())
	}

	// Instance 0 is indistinguishable from a non-instanced draw. The exact
	// comparison is part of the numeric contract.
	isInstanced := in.InstanceID != 0

	final := base
	prevFinal := prev
	if isInstanced {
		final = base.Mul4(in.InstanceTransform)
		prevFinal = ReconstructPreviousTransform(prev).Mul4(in.InstanceTransform)
	}

	// Renormalizing after the 3x3 transform only partially counteracts
	// non-uniform scale; a full inverse-transpose is not used here.
	linear := final.Mat3()
	worldNormal := linear.Mul3x1(normal).Normalize()
	worldTangent := linear.Mul3x1(in.Tangent).Normalize()

	return Vertex{
		WorldPosition:     AmbientAnimate(surf, localPosition, final, heightPercent, in.InstanceID, 0, fc),
		PrevWorldPosition: AmbientAnimate(surf, localPosition, prevFinal, heightPercent, in.InstanceID, -fc.DeltaTime, fc),
		WorldNormal:       worldNormal,
		WorldTangent:      worldTangent,
		UV:                uv,
		Color:             color,
		InstanceID:        in.InstanceID,
		Transform:         final,
		PrevTransform:     prevFinal,
	}
}

// Project fills in the clip-space fields of a vertex record. Transparent
// surfaces are projected with the unjittered view-projection pair because the
// anti-aliasing jitter is incompatible with transparency blending; everything
// else uses the jittered pair. The current and previous world positions go
// through the current and previous matrix respectively.
//
// Parameters:
//   - v: the vertex record to finish (mutated in place)
//   - surf: the surface capability view
//   - fc: the frame constant block
func Project(v *Vertex, surf surface.Surface, fc frame.Constants) {
	viewProj := fc.ViewProjection
	prevViewProj := fc.PrevViewProjection
	if surf.IsTransparent() {
		viewProj = fc.ViewProjectionUnjittered
		prevViewProj = fc.PrevViewProjectionUnjittered
	}

	v.ClipPosition = viewProj.Mul4x1(v.WorldPosition.Vec4(1))
	v.PrevClipPosition = prevViewProj.Mul4x1(v.PrevWorldPosition.Vec4(1))
	v.CurrentClipPosition = v.ClipPosition
}
