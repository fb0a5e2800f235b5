// package water implements the procedural water-surface animation of the
// geometry pass: a fixed bank of four Gerstner-style waves plus a decaying
// circular ripple centered on the camera. Both functions are closed-form in
// their inputs so the previous-frame path can re-evaluate them at an earlier
// time and reproduce that frame's surface exactly.
package water

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/common"
)

const (
	// gravity is the gravitational constant of the shallow-water dispersion relation.
	gravity = 9.8

	// WaveCount is the number of superposed Gerstner waves.
	WaveCount = 4

	// waveBaseHeight, waveBaseLength, and waveBaseSpeed are the index-0 wave
	// parameters; higher indices are modulated from them (see Waves).
	waveBaseHeight = 0.1
	waveBaseLength = 8.0
	waveBaseSpeed  = 1.0

	// RippleSpeed is the outward travel speed of the camera ripple.
	RippleSpeed = 0.25

	// RippleMaxHeight is the ripple amplitude at the camera with no decay.
	RippleMaxHeight = 0.2

	// RippleFrequency is the ripple's spatial frequency.
	RippleFrequency = 5.0

	// rippleSpatialDecay is the exponential decay rate of ripple amplitude with distance.
	rippleSpatialDecay = 0.1

	// RippleDecayWindow is the time after the camera's last movement over which
	// the ripple fades linearly to exactly zero.
	RippleDecayWindow = 2.0

	// rippleCameraGate: the ripple is active only while the camera is within
	// this many units of sea level.
	rippleCameraGate = 4.0
)

// Wave describes one member of the fixed Gerstner wave bank.
type Wave struct {
	// Height is the wave amplitude.
	Height float32

	// Length is the wavelength; the wavenumber is 2π/Length.
	Length float32

	// Speed scales the angular speed from the dispersion relation.
	Speed float32

	// Direction is the unit travel direction in the horizontal (XZ) plane.
	Direction mgl32.Vec2
}

// Waves returns the fixed four-wave bank. Per-wave parameters are modulated by
// index: height shrinks by 0.2 per step, wavelength halves harmonically, speed
// grows by 0.25 per step, and directions are evenly spaced at 90° increments
// (wave i travels along angle 2π·i/4).
//
// Returns:
//   - [WaveCount]Wave: the wave bank
func Waves() [WaveCount]Wave {
	var bank [WaveCount]Wave
	for i := range bank {
		fi := float32(i)
		angle := 2 * math.Pi * fi / WaveCount
		bank[i] = Wave{
			Height:    waveBaseHeight * (1 - 0.2*fi),
			Length:    waveBaseLength / (fi + 1),
			Speed:     waveBaseSpeed * (1 + 0.25*fi),
			Direction: mgl32.Vec2{common.Cos(angle), common.Sin(angle)},
		}
	}
	return bank
}

// Displace evaluates one wave's contribution at a horizontal position.
// The wavenumber is k = 2π/Length, the angular speed w = sqrt(g/k)·Speed
// (shallow-water dispersion), and the phase dot(Direction, xz)·k + time·w.
// The horizontal offset follows cos(phase) along the travel direction and the
// vertical offset sin(phase), both scaled by Height.
//
// Parameters:
//   - xz: the horizontal (XZ) sample position
//   - time: the animation time in seconds
//
// Returns:
//   - mgl32.Vec2: the horizontal (XZ) offset
//   - float32: the vertical (Y) offset
func (w Wave) Displace(xz mgl32.Vec2, time float32) (mgl32.Vec2, float32) {
	k := float32(2*math.Pi) / w.Length
	angular := common.Sqrt(gravity/k) * w.Speed
	phase := w.Direction.Dot(xz)*k + time*angular
	return w.Direction.Mul(common.Cos(phase) * w.Height), common.Sin(phase) * w.Height
}

// ApplyWave displaces a world-space position by the superposition of the
// fixed wave bank, moving both the horizontal (XZ) and vertical (Y) components.
//
// Parameters:
//   - position: the world-space vertex position
//   - time: the animation time in seconds
//
// Returns:
//   - mgl32.Vec3: the displaced position
func ApplyWave(position mgl32.Vec3, time float32) mgl32.Vec3 {
	xz := mgl32.Vec2{position.X(), position.Z()}
	var horizontal mgl32.Vec2
	var vertical float32
	for _, w := range Waves() {
		h, v := w.Displace(xz, time)
		horizontal = horizontal.Add(h)
		vertical += v
	}
	return mgl32.Vec3{
		position.X() + horizontal.X(),
		position.Y() + vertical,
		position.Z() + horizontal.Y(),
	}
}

// ApplyRipple adds a decaying circular ripple centered on the camera's
// horizontal position. The ripple is active only while the camera is within 4
// units of sea level; outside that band the position is returned unchanged.
// Amplitude decays exponentially with radial distance and linearly with time
// since the camera last moved, reaching exactly zero once RippleDecayWindow
// has elapsed. Only the vertical component is modified.
//
// Parameters:
//   - position: the world-space vertex position
//   - time: the animation time in seconds
//   - cameraPosition: the world-space camera position
//   - lastMovementTime: the time at which the camera last moved
//
// Returns:
//   - mgl32.Vec3: the displaced position
func ApplyRipple(position mgl32.Vec3, time float32, cameraPosition mgl32.Vec3, lastMovementTime float32) mgl32.Vec3 {
	if common.Abs(cameraPosition.Y()) >= rippleCameraGate {
		return position
	}

	delta := mgl32.Vec2{position.X() - cameraPosition.X(), position.Z() - cameraPosition.Z()}
	radial := delta.Len()

	fade := common.Clamp01(1 - (time-lastMovementTime)/RippleDecayWindow)
	amplitude := RippleMaxHeight * common.Exp(-radial*rippleSpatialDecay) * fade

	phase := (radial - time*RippleSpeed) * RippleFrequency
	return mgl32.Vec3{
		position.X(),
		position.Y() + common.Sin(phase)*amplitude,
		position.Z(),
	}
}
