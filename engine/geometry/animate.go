package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/engine/frame"
	"github.com/verdant-engine/verdant-go/engine/surface"
	"github.com/verdant-engine/verdant-go/engine/vegetation"
	"github.com/verdant-engine/verdant-go/engine/water"
)

// AmbientAnimate transforms an object-space position into world space and
// applies the procedural secondary animation the surface is capable of.
// Vegetation (wind, then player bend) and water (wave, then ripple) are
// independent capabilities, not mutually exclusive; each stage consumes the
// previous stage's output position.
//
// The animation time is fc.Time + timeOffset. The previous-frame path calls
// this with the previous transform and timeOffset = -fc.DeltaTime and nothing
// else different, which is what makes motion vectors exact differences of
// consistently computed quantities.
//
// Parameters:
//   - surf: the surface capability view
//   - position: the homogeneous object-space position
//   - transform: the composed object-to-world transform to apply
//   - heightPercent: normalized height along the object (0 base, 1 tip)
//   - instanceID: the draw-call instance slot
//   - timeOffset: offset added to the frame time (0 current, -Δt previous)
//   - fc: the frame constant block
//
// Returns:
//   - mgl32.Vec3: the animated world-space position
func AmbientAnimate(surf surface.Surface, position mgl32.Vec4, transform mgl32.Mat4, heightPercent float32, instanceID uint32, timeOffset float32, fc frame.Constants) mgl32.Vec3 {
	t := fc.Time + timeOffset
	p := transform.Mul4x1(position).Vec3()

	if surf.AnimatesWind() {
		p = vegetation.ApplyWind(instanceID, p, heightPercent, fc.Wind, t)
		p = vegetation.ApplyPlayerBend(p, heightPercent, fc.CameraPosition)
	}
	if surf.AnimatesWater() {
		p = water.ApplyWave(p, t)
		p = water.ApplyRipple(p, t, fc.CameraPosition, fc.LastMovementTime)
	}
	return p
}
