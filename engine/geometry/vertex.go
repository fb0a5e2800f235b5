// package geometry implements the vertex stages of the deferred geometry pass:
// object-to-world transformation with instancing and previous-frame transform
// reconstruction, the ambient animation dispatcher, and clip-space projection.
// Every function here is evaluated per vertex with no shared mutable state, so
// invocations can run in any order and in parallel.
package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Input is one object-space vertex as bound by the host draw call. Immutable.
type Input struct {
	// Position is the homogeneous object-space position.
	Position mgl32.Vec4

	// UV is the texture coordinate before material tiling/offset.
	UV mgl32.Vec2

	// Normal is the object-space normal.
	Normal mgl32.Vec3

	// Tangent is the object-space tangent.
	Tangent mgl32.Vec3

	// InstanceTransform is the per-instance transform attribute. It is only
	// composed into the final transform when InstanceID is non-zero.
	InstanceTransform mgl32.Mat4

	// InstanceID is the draw-call instance slot. Instance 0 is
	// indistinguishable from a non-instanced draw; the exact comparison
	// InstanceID != 0 decides instancing and must not be changed.
	InstanceID uint32
}

// Vertex is the world/clip-space vertex record produced by the geometry pass.
// It is created once by the world-transform stage, displaced by the animators
// and the tessellation evaluator, finalized by the projection stage, and not
// mutated thereafter. It lives for one pipeline invocation only.
type Vertex struct {
	// WorldPosition is the animated world-space position for the current frame.
	WorldPosition mgl32.Vec3

	// PrevWorldPosition is the animated world-space position for the previous
	// frame, produced by the same formulas with the previous transform and a
	// time offset of minus one frame.
	PrevWorldPosition mgl32.Vec3

	// ClipPosition is the current clip-space position.
	ClipPosition mgl32.Vec4

	// PrevClipPosition is the previous frame's clip-space position. Motion
	// vectors are derived downstream from ClipPosition - PrevClipPosition.
	PrevClipPosition mgl32.Vec4

	// CurrentClipPosition aliases ClipPosition for downstream stages that read
	// both temporal samples side by side.
	CurrentClipPosition mgl32.Vec4

	// WorldNormal is the world-space normal, renormalized after transform.
	WorldNormal mgl32.Vec3

	// WorldTangent is the world-space tangent, renormalized after transform.
	WorldTangent mgl32.Vec3

	// UV is the tiled and offset texture coordinate.
	UV mgl32.Vec2

	// Color is the vertex color. Opaque white unless the surface variant
	// overrides it (grass blades get a base-to-tip gradient).
	Color mgl32.Vec4

	// InstanceID is the instance slot this vertex was generated for.
	InstanceID uint32

	// Transform is the composed object-to-world transform used for this vertex.
	Transform mgl32.Mat4

	// PrevTransform is the previous-frame transform used for this vertex.
	PrevTransform mgl32.Mat4
}
