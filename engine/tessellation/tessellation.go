// package tessellation implements the distance-adaptive subdivision control
// and the patch evaluation of the geometry pass. The control stage decides how
// finely a triangular patch is subdivided from its distance to the camera,
// with a back-facing early-out; the evaluation stage interpolates patch
// attributes barycentrically, applies height-map displacement, and projects
// the result. Both stages are stateless across patches - invocations are
// isolated, so no cache is kept (or allowed) between them.
package tessellation

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/common"
	"github.com/verdant-engine/verdant-go/engine/frame"
	"github.com/verdant-engine/verdant-go/engine/geometry"
	"github.com/verdant-engine/verdant-go/engine/surface"
	"github.com/verdant-engine/verdant-go/engine/texture"
)

const (
	// ControlPoints is the number of control points per patch.
	ControlPoints = 3

	// MaxFactor is the subdivision factor emitted for a patch at the camera.
	MaxFactor = 64

	// FalloffEndDistance is the camera distance at which the exponential
	// falloff bottoms out; beyond it every patch gets the minimum factor.
	FalloffEndDistance = 50

	// falloffSharpness is the exponent scale of the distance falloff curve.
	falloffSharpness = 10
)

// Patch is a triangular tessellation patch: three post-animation world-space
// control points plus the per-edge and inside subdivision factors derived by
// the control stage. A patch is created per control-stage invocation, consumed
// once by the evaluation stage, and discarded.
type Patch struct {
	// Control holds the three control-point vertices.
	Control [ControlPoints]geometry.Vertex

	// EdgeFactors are the per-edge subdivision factors. The control stage
	// emits the same value for all three edges.
	EdgeFactors [ControlPoints]float32

	// InsideFactor is the interior subdivision factor.
	InsideFactor float32
}

// Subdivided reports whether the patch was actually subdivided, i.e. whether
// any tessellation factor exceeds 1. Height displacement is skipped for flat,
// non-subdivided patches.
//
// Returns:
//   - bool: true if any edge or inside factor exceeds 1
func (p Patch) Subdivided() bool {
	for _, f := range p.EdgeFactors {
		if f > 1 {
			return true
		}
	}
	return p.InsideFactor > 1
}

// faceNormal computes the patch's face normal from its undisplaced control
// points via the cross product of two edge vectors.
func faceNormal(control [ControlPoints]geometry.Vertex) mgl32.Vec3 {
	e0 := control[1].WorldPosition.Sub(control[0].WorldPosition)
	e1 := control[2].WorldPosition.Sub(control[0].WorldPosition)
	return e0.Cross(e1).Normalize()
}

// Control runs the tessellation control stage for one patch. The patch
// centroid's visibility is the dot of the normalized face normal with the
// normalized camera-to-patch vector; a positive value (facing away or edge-on
// under this convention) short-circuits to factor 1. Otherwise the squared
// camera distance is normalized against FalloffEndDistance², clamped to
// [0, 1], shaped with the exponential falloff 2^(-d·10), scaled by MaxFactor,
// and floored at 1. The same factor is emitted for all three edges and the
// interior - subdivision is uniform per patch, not adaptive per edge.
//
// Parameters:
//   - control: the three post-animation control-point vertices
//   - cameraPosition: the world-space camera position
//
// Returns:
//   - Patch: the patch with its subdivision factors filled in
func Control(control [ControlPoints]geometry.Vertex, cameraPosition mgl32.Vec3) Patch {
	centroid := control[0].WorldPosition.
		Add(control[1].WorldPosition).
		Add(control[2].WorldPosition).
		Mul(1.0 / ControlPoints)
	view := centroid.Sub(cameraPosition)

	factor := float32(1)
	if faceNormal(control).Dot(view.Normalize()) <= 0 {
		distSq := view.Dot(view)
		normalized := common.Clamp01(distSq / (FalloffEndDistance * FalloffEndDistance))
		factor = common.Exp2(-normalized*falloffSharpness) * MaxFactor
		if factor < 1 {
			factor = 1
		}
	}

	return Patch{
		Control:      control,
		EdgeFactors:  [ControlPoints]float32{factor, factor, factor},
		InsideFactor: factor,
	}
}

// Evaluate runs the tessellation evaluation stage for one generated point.
// Position, previous position, UV, and color are interpolated linearly by the
// barycentric weights; normal and tangent are interpolated and renormalized.
// Identity attributes (instance id, transforms) come from control point 0.
//
// If the surface carries a height texture AND the patch was actually
// subdivided, the height map's alpha is sampled at the interpolated UV,
// inverted, scaled by the material height strength × 0.1, and both temporal
// positions are pushed along the negative of the patch's stable face normal -
// computed from the undisplaced control points, not the interpolated normal,
// to avoid displacement feedback. heightMap must be non-nil whenever the
// surface has the height-texture capability.
//
// Parameters:
//   - p: the patch produced by the control stage
//   - bary: the barycentric coordinates of the generated point
//   - params: the material parameters for this draw
//   - heightMap: the height texture sampler (alpha channel is consumed)
//   - fc: the frame constant block
//
// Returns:
//   - geometry.Vertex: the finished, projected vertex record
func Evaluate(p Patch, bary mgl32.Vec3, params surface.Params, heightMap texture.Sampler, fc frame.Constants) geometry.Vertex {
	surf := params.Surface()
	c := p.Control

	lerp3 := func(a, b, d mgl32.Vec3) mgl32.Vec3 {
		return a.Mul(bary.X()).Add(b.Mul(bary.Y())).Add(d.Mul(bary.Z()))
	}

	v := geometry.Vertex{
		WorldPosition:     lerp3(c[0].WorldPosition, c[1].WorldPosition, c[2].WorldPosition),
		PrevWorldPosition: lerp3(c[0].PrevWorldPosition, c[1].PrevWorldPosition, c[2].PrevWorldPosition),
		WorldNormal:       lerp3(c[0].WorldNormal, c[1].WorldNormal, c[2].WorldNormal).Normalize(),
		WorldTangent:      lerp3(c[0].WorldTangent, c[1].WorldTangent, c[2].WorldTangent).Normalize(),
		UV: c[0].UV.Mul(bary.X()).
			Add(c[1].UV.Mul(bary.Y())).
			Add(c[2].UV.Mul(bary.Z())),
		Color: c[0].Color.Mul(bary.X()).
			Add(c[1].Color.Mul(bary.Y())).
			Add(c[2].Color.Mul(bary.Z())),
		InstanceID:    c[0].InstanceID,
		Transform:     c[0].Transform,
		PrevTransform: c[0].PrevTransform,
	}

	if surf.HasHeightTexture() && p.Subdivided() {
		sampled := heightMap.Sample(v.UV, 0)
		strength := params.HeightStrength * 0.1
		height := 1 - sampled.W()
		offset := faceNormal(c).Mul(strength * height)
		v.WorldPosition = v.WorldPosition.Sub(offset)
		v.PrevWorldPosition = v.PrevWorldPosition.Sub(offset)
	}

	geometry.Project(&v, surf, fc)
	return v
}
