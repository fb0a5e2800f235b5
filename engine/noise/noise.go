// package noise provides the scalar pseudo-random primitives used by the
// procedural vertex animation stages. Both functions are pure: the same input
// always yields the same output, which the motion-vector pipeline relies on
// when re-evaluating animation at the previous frame's time.
package noise

import (
	"github.com/verdant-engine/verdant-go/common"
)

// hashScale is the canonical sine-hash magnification constant. The large
// multiplier spreads the sine's low-order bits across the fractional range.
const hashScale = 43758.5453123

// Hash maps a scalar seed to a deterministic pseudo-random value in [0, 1)
// via frac(sin(n) * C). It is the same one-liner the GPU stages use, evaluated
// in float32 so CPU and shader results agree.
//
// Parameters:
//   - n: the scalar seed
//
// Returns:
//   - float32: a deterministic pseudo-random value in [0, 1)
func Hash(n float32) float32 {
	return common.Frac(common.Sin(n) * hashScale)
}

// Value1D is 1D smoothed value noise. The fractional part of x is eased with
// the cubic Hermite curve 3f²-2f³ and used to interpolate the hashes of the
// two surrounding integer lattice points. Output is approximately [0, 1).
//
// Parameters:
//   - x: the sample position
//
// Returns:
//   - float32: the smoothed noise value at x
func Value1D(x float32) float32 {
	i := common.Floor(x)
	f := common.Frac(x)
	f = f * f * (3 - 2*f)
	return common.Mix(Hash(i), Hash(i+1), f)
}
