// package vegetation implements the procedural foliage animation of the
// geometry pass: wind-driven sway and player-proximity bending. Both functions
// are closed-form in their inputs - no state is kept between invocations, so
// the previous-frame path can re-evaluate them at an earlier time and get the
// exact value that frame produced.
package vegetation

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/common"
	"github.com/verdant-engine/verdant-go/engine/noise"
)

const (
	// SwayExtent is the maximum base sway displacement at full height percent
	// and unit wind magnitude.
	SwayExtent = 0.2

	// SwaySpeed scales how fast the base sway oscillates.
	SwaySpeed = 1.0

	// NoiseScale is the frequency of the low-frequency wind-direction drift.
	NoiseScale = 0.1

	// FlutterIntensity is the amplitude of the high-frequency flutter term.
	FlutterIntensity = 0.025

	// bendExtent is the maximum horizontal player-bend push at full height percent.
	bendExtent = 0.5

	// bendVerticalScale scales the vertical crush term of the player bend.
	bendVerticalScale = 0.3
)

// ApplyWind displaces a world-space vertex position to simulate foliage sway.
//
// The wind vector is split into direction and magnitude. The base sway is a
// sine wave phase-shifted by instanceID*0.25π so neighboring instances don't
// move in lockstep; a low-frequency noise term drifts the sway direction
// smoothly over time per instance; a high-frequency flutter adds localized
// jitter from the vertex's own X position. Every term is scaled by
// heightPercent, so a vertex at the base of the object (heightPercent 0) is
// anchored and the tip (heightPercent 1) sways most.
//
// A zero wind vector produces NaN through the normalize; that propagates into
// the output rather than being treated as an error.
//
// Parameters:
//   - instanceID: the per-draw instance id used to de-synchronize instances
//   - position: the world-space vertex position
//   - heightPercent: normalized height along the object (0 base, 1 tip)
//   - wind: the world-space wind vector (direction and magnitude)
//   - time: the animation time in seconds
//
// Returns:
//   - mgl32.Vec3: the displaced position
func ApplyWind(instanceID uint32, position mgl32.Vec3, heightPercent float32, wind mgl32.Vec3, time float32) mgl32.Vec3 {
	magnitude := wind.Len()
	direction := wind.Mul(1 / magnitude)

	phase := float32(instanceID) * 0.25 * math.Pi
	sway := common.Sin(time*SwaySpeed+phase) * SwayExtent

	// Smooth per-instance drift of the sway direction, ±1 radian at the extremes.
	drift := (noise.Value1D(time*NoiseScale+float32(instanceID)) - 0.5) * 2
	direction = common.RotateY(drift, direction)

	flutter := common.Sin(2*position.X()+4*time) * FlutterIntensity

	offset := direction.Mul((sway + flutter) * magnitude * heightPercent)
	return position.Add(offset)
}

// ApplyPlayerBend pushes a vertex horizontally away from the camera with an
// inverse-square falloff of horizontal distance, scaled by heightPercent. The
// vertical crush term is evaluated but never committed; only the horizontal
// push reaches the output position, and the vertex keeps its height.
//
// A vertex exactly at the camera's horizontal position divides by zero; the
// resulting Inf/NaN propagates into the output.
//
// Parameters:
//   - position: the world-space vertex position
//   - heightPercent: normalized height along the object (0 base, 1 tip)
//   - cameraPosition: the world-space camera position
//
// Returns:
//   - mgl32.Vec3: the displaced position
func ApplyPlayerBend(position mgl32.Vec3, heightPercent float32, cameraPosition mgl32.Vec3) mgl32.Vec3 {
	delta := mgl32.Vec2{position.X() - cameraPosition.X(), position.Z() - cameraPosition.Z()}
	distSq := delta.Dot(delta)

	push := common.Clamp01(1/distSq) * bendExtent * heightPercent
	away := delta.Mul(1 / common.Sqrt(distSq))

	crush := push * bendVerticalScale
	_ = crush

	return mgl32.Vec3{
		position.X() + away.X()*push,
		position.Y(),
		position.Z() + away.Y()*push,
	}
}
