// package common contains shared math and memory helpers used throughout the
// geometry core. The scalar helpers mirror the GPU intrinsics the vertex stages
// were written against, evaluated in float32 so CPU and shader results agree.
package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Frac returns the fractional part of x (x - floor(x)), matching the
// GPU frac() intrinsic. The result is in [0, 1) for finite inputs.
//
// Parameters:
//   - x: the input value
//
// Returns:
//   - float32: the fractional part of x
func Frac(x float32) float32 {
	return x - Floor(x)
}

// Floor returns the largest integer value less than or equal to x, as a float32.
//
// Parameters:
//   - x: the input value
//
// Returns:
//   - float32: floor(x)
func Floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// Mix linearly interpolates between a and b by t, matching the GPU mix()/lerp()
// intrinsic. t is not clamped.
//
// Parameters:
//   - a: the value at t = 0
//   - b: the value at t = 1
//   - t: the interpolation weight
//
// Returns:
//   - float32: a + (b - a) * t
func Mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

// MixVec4 linearly interpolates between two 4-vectors by t. t is not clamped.
//
// Parameters:
//   - a: the vector at t = 0
//   - b: the vector at t = 1
//   - t: the interpolation weight
//
// Returns:
//   - mgl32.Vec4: the interpolated vector
func MixVec4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

// Smoothstep performs the GPU smoothstep() interpolation between edge0 and edge1.
// Returns 0 when x <= edge0, 1 when x >= edge1, and the cubic Hermite curve
// 3t²-2t³ in between.
//
// Parameters:
//   - edge0: lower edge of the transition
//   - edge1: upper edge of the transition
//   - x: the input value
//
// Returns:
//   - float32: the smoothed interpolation factor in [0, 1]
func Smoothstep(edge0, edge1, x float32) float32 {
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Clamp01 clamps x to the [0, 1] range.
//
// Parameters:
//   - x: the input value
//
// Returns:
//   - float32: x clamped to [0, 1]
func Clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Sin is a float32 wrapper around math.Sin.
func Sin(x float32) float32 { return float32(math.Sin(float64(x))) }

// Cos is a float32 wrapper around math.Cos.
func Cos(x float32) float32 { return float32(math.Cos(float64(x))) }

// Sqrt is a float32 wrapper around math.Sqrt.
func Sqrt(x float32) float32 { return float32(math.Sqrt(float64(x))) }

// Exp is a float32 wrapper around math.Exp.
func Exp(x float32) float32 { return float32(math.Exp(float64(x))) }

// Exp2 is a float32 wrapper around math.Exp2.
func Exp2(x float32) float32 { return float32(math.Exp2(float64(x))) }

// Abs is a float32 wrapper around math.Abs.
func Abs(x float32) float32 { return float32(math.Abs(float64(x))) }

// RotateX rotates v around the X axis by angle radians using the standard
// right-handed rotation convention.
//
// Parameters:
//   - angle: rotation angle in radians
//   - v: the vector to rotate
//
// Returns:
//   - mgl32.Vec3: the rotated vector
func RotateX(angle float32, v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Rotate3DX(angle).Mul3x1(v)
}

// RotateY rotates v around the Y axis by angle radians using the standard
// right-handed rotation convention.
//
// Parameters:
//   - angle: rotation angle in radians
//   - v: the vector to rotate
//
// Returns:
//   - mgl32.Vec3: the rotated vector
func RotateY(angle float32, v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Rotate3DY(angle).Mul3x1(v)
}
