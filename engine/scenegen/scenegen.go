// package scenegen procedurally builds the demo content the geometry pass
// consumes: scattered grass blade instances, water grids, terrain patches and
// perlin height maps. Everything is deterministic for a given seed so frames
// and tests are reproducible.
package scenegen

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/engine/geometry"
	"github.com/verdant-engine/verdant-go/engine/texture"
)

const (
	// densityFrequency controls how quickly grass density varies across the field.
	densityFrequency = 0.15

	// heightFrequency controls the base frequency of generated height maps.
	heightFrequency = 4.0

	// bladeWidth is the grass blade's local-space width at the root.
	bladeWidth = 0.06

	// bladeHeight is the grass blade's local-space height.
	bladeHeight = 1.0
)

// Instance is one placed copy of an instanced mesh. IDs start at 1; an
// instance slot of 0 marks a non-instanced draw downstream.
type Instance struct {
	ID        uint32
	Transform mgl32.Mat4
}

// Generator builds deterministic scene content from perlin noise.
type Generator interface {
	// GrassField scatters grass blade instances over a square field of the
	// given side length centered on the origin. Cells whose density noise
	// falls below the cutoff stay empty, producing natural clearings.
	//
	// Parameters:
	//   - side: the field's side length in world units
	//   - perSide: the number of candidate cells along each side
	//
	// Returns:
	//   - []Instance: the placed instances, IDs starting at 1
	GrassField(side float32, perSide int) []Instance

	// BladeMesh returns the shared grass blade triangle list in object space.
	// The blade is rooted at the origin, grows along +Y and is segmented so
	// wind and bend can curve it.
	//
	// Parameters:
	//   - segments: the number of vertical segments, minimum 1
	//
	// Returns:
	//   - []geometry.Input: a triangle list, three vertices per triangle
	BladeMesh(segments int) []geometry.Input

	// Grid returns a flat triangulated grid in the XZ plane centered on the
	// origin, with UVs spanning [0, 1]. The index triples address the vertex
	// slice and double as tessellation patches.
	//
	// Parameters:
	//   - side: the grid's side length in world units
	//   - resolution: the number of quads along each side
	//
	// Returns:
	//   - []geometry.Input: the grid vertices
	//   - [][3]uint32: counter-clockwise triangle index triples
	Grid(side float32, resolution int) ([]geometry.Input, [][3]uint32)

	// HeightMap generates a perlin height texture. Height lives in the alpha
	// channel, remapped to [0, 1]; the color channels carry the same value
	// for visual inspection.
	//
	// Parameters:
	//   - width: texture width in pixels
	//   - height: texture height in pixels
	//
	// Returns:
	//   - texture.Sampler: a sampler over the generated texture
	//   - error: error if the sampler cannot be constructed
	HeightMap(width, height int) (texture.Sampler, error)
}

// generator is the implementation of the Generator interface.
type generator struct {
	seed    int64
	density *perlin.Perlin
	relief  *perlin.Perlin
	cutoff  float64
}

// Ensure generator implements Generator.
var _ Generator = &generator{}

// NewGenerator creates a Generator seeded for reproducible output.
//
// Parameters:
//   - seed: the noise seed
//   - options: functional options to further configure the generator
//
// Returns:
//   - Generator: the newly created generator
func NewGenerator(seed int64, options ...Option) Generator {
	g := &generator{
		seed:   seed,
		cutoff: -0.1,
	}
	for _, option := range options {
		option(g)
	}

	g.density = perlin.NewPerlin(1.5, 2.0, 4, seed)
	g.relief = perlin.NewPerlin(2.0, 2.5, 4, seed+1)
	return g
}

func (g *generator) GrassField(side float32, perSide int) []Instance {
	if perSide < 1 || side <= 0 {
		return nil
	}

	cell := side / float32(perSide)
	half := side / 2
	instances := make([]Instance, 0, perSide*perSide)
	id := uint32(1)
	for row := range perSide {
		for col := range perSide {
			cx := -half + (float32(col)+0.5)*cell
			cz := -half + (float32(row)+0.5)*cell

			d := g.density.Noise2D(float64(cx)*densityFrequency, float64(cz)*densityFrequency)
			if d < g.cutoff {
				continue
			}

			// Jitter, yaw and scale come from decorrelated noise taps so
			// neighboring blades never move in lockstep.
			jx := float32(g.relief.Noise2D(float64(cx)*2.7, float64(cz)*2.7)) * cell * 0.5
			jz := float32(g.relief.Noise2D(float64(cz)*3.1, float64(cx)*3.1)) * cell * 0.5
			yaw := float32(g.density.Noise2D(float64(cx)*1.9, float64(cz)*1.9)) * math.Pi
			scale := 0.7 + float32(d-g.cutoff)*0.5

			transform := mgl32.Translate3D(cx+jx, 0, cz+jz).
				Mul4(mgl32.HomogRotate3DY(yaw)).
				Mul4(mgl32.Scale3D(scale, scale, scale))
			instances = append(instances, Instance{ID: id, Transform: transform})
			id++
		}
	}
	return instances
}

func (g *generator) BladeMesh(segments int) []geometry.Input {
	if segments < 1 {
		segments = 1
	}

	// Ring vertex at a height fraction. The blade tapers linearly to a point.
	ring := func(t, side float32) geometry.Input {
		halfWidth := bladeWidth / 2 * (1 - t)
		return geometry.Input{
			Position: mgl32.Vec4{side * halfWidth, t * bladeHeight, 0, 1},
			UV:       mgl32.Vec2{(side + 1) / 2, t},
			Normal:   mgl32.Vec3{0, 0, 1},
			Tangent:  mgl32.Vec3{1, 0, 0},
		}
	}

	mesh := make([]geometry.Input, 0, segments*6)
	for s := range segments {
		t0 := float32(s) / float32(segments)
		t1 := float32(s+1) / float32(segments)

		bl := ring(t0, -1)
		br := ring(t0, 1)
		tl := ring(t1, -1)
		tr := ring(t1, 1)

		if s == segments-1 {
			// Tip segment collapses to a single apex vertex.
			mesh = append(mesh, bl, br, tl)
			continue
		}
		mesh = append(mesh, bl, br, tl, br, tr, tl)
	}
	return mesh
}

func (g *generator) Grid(side float32, resolution int) ([]geometry.Input, [][3]uint32) {
	if resolution < 1 || side <= 0 {
		return nil, nil
	}

	perSide := resolution + 1
	half := side / 2
	vertices := make([]geometry.Input, 0, perSide*perSide)
	for row := range perSide {
		for col := range perSide {
			u := float32(col) / float32(resolution)
			v := float32(row) / float32(resolution)
			vertices = append(vertices, geometry.Input{
				Position: mgl32.Vec4{-half + u*side, 0, -half + v*side, 1},
				UV:       mgl32.Vec2{u, v},
				Normal:   mgl32.Vec3{0, 1, 0},
				Tangent:  mgl32.Vec3{1, 0, 0},
			})
		}
	}

	indices := make([][3]uint32, 0, resolution*resolution*2)
	for row := range resolution {
		for col := range resolution {
			a := uint32(row*perSide + col)
			b := a + 1
			c := a + uint32(perSide)
			d := c + 1
			indices = append(indices, [3]uint32{a, c, b}, [3]uint32{b, c, d})
		}
	}
	return vertices, indices
}

func (g *generator) HeightMap(width, height int) (texture.Sampler, error) {
	pixels := make([]byte, width*height*4)
	for y := range height {
		for x := range width {
			nx := float64(x) / float64(width) * heightFrequency
			ny := float64(y) / float64(height) * heightFrequency

			// Two octave bands, the second at double frequency and half
			// amplitude, remapped from roughly [-1.5, 1.5] to [0, 1].
			h := g.relief.Noise2D(nx, ny) + g.relief.Noise2D(nx*2, ny*2)*0.5
			h = h/3 + 0.5
			h = math.Min(math.Max(h, 0), 1)

			v := byte(h * 255)
			i := (y*width + x) * 4
			pixels[i] = v
			pixels[i+1] = v
			pixels[i+2] = v
			pixels[i+3] = v
		}
	}
	return texture.NewImageSampler(pixels, width, height)
}
