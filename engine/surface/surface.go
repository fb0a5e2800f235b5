// package surface describes what a material's geometry is capable of. The
// capability view is a bitmask decoded fresh from the material parameters at
// the start of every pass invocation and never stored; the vertex stages
// branch on its named predicates instead of testing raw flag bits.
package surface

import "github.com/go-gl/mathgl/mgl32"

// Flags is the material capability bitmask.
type Flags uint32

const (
	// FlagGrassBlade marks geometry shaped like a grass blade. Grass blades get
	// a base-to-tip color gradient, rounded-cross-section normals, and a
	// per-instance gravity bend in the world-transform stage.
	FlagGrassBlade Flags = 1 << iota

	// FlagAnimateWind enables wind sway and player-proximity bending.
	FlagAnimateWind

	// FlagAnimateWater enables Gerstner wave motion and the camera ripple.
	FlagAnimateWater

	// FlagHeightTexture marks materials carrying a height texture for
	// tessellation displacement.
	FlagHeightTexture

	// FlagTransparent marks transparent materials. Transparent geometry is
	// projected with the unjittered view-projection matrices.
	FlagTransparent
)

// Surface is a read-only capability view over a material's flag bitmask.
// Derive one per invocation with Describe; do not persist it across frames.
type Surface struct {
	flags Flags
}

// Describe builds the capability view for a flag bitmask.
//
// Parameters:
//   - flags: the material capability bitmask
//
// Returns:
//   - Surface: the capability view
func Describe(flags Flags) Surface {
	return Surface{flags: flags}
}

// IsGrassBlade reports whether the geometry is a grass blade.
//
// Returns:
//   - bool: true if the grass-blade flag is set
func (s Surface) IsGrassBlade() bool {
	return s.flags&FlagGrassBlade != 0
}

// AnimatesWind reports whether the geometry is animated by wind.
//
// Returns:
//   - bool: true if the wind-animation flag is set
func (s Surface) AnimatesWind() bool {
	return s.flags&FlagAnimateWind != 0
}

// AnimatesWater reports whether the geometry is animated as a water surface.
//
// Returns:
//   - bool: true if the water-animation flag is set
func (s Surface) AnimatesWater() bool {
	return s.flags&FlagAnimateWater != 0
}

// HasHeightTexture reports whether the material carries a height texture.
//
// Returns:
//   - bool: true if the height-texture flag is set
func (s Surface) HasHeightTexture() bool {
	return s.flags&FlagHeightTexture != 0
}

// IsTransparent reports whether the material is transparent.
//
// Returns:
//   - bool: true if the transparency flag is set
func (s Surface) IsTransparent() bool {
	return s.flags&FlagTransparent != 0
}

// Params holds the externally supplied, read-only material parameters consumed
// by the geometry pass.
type Params struct {
	// Tiling scales the input UV before the offset is applied.
	Tiling mgl32.Vec2

	// Offset translates the tiled UV.
	Offset mgl32.Vec2

	// LocalWidth is the object's local-space width extent, used to normalize a
	// vertex's X position into a width percent (0 at one edge, 1 at the other).
	LocalWidth float32

	// LocalHeight is the object's local-space height extent, used to normalize
	// a vertex's Y position into a height percent (0 at the base, 1 at the tip).
	LocalHeight float32

	// HeightStrength scales the tessellation height displacement.
	HeightStrength float32

	// Flags is the capability bitmask. Decode it with Describe.
	Flags Flags
}

// Surface derives the capability view for these parameters.
//
// Returns:
//   - Surface: the capability view over Flags
func (p Params) Surface() Surface {
	return Describe(p.Flags)
}
