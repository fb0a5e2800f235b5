// package pipeline orchestrates the geometry pass over whole draws. It runs
// the per-vertex and per-patch stages of engine/geometry and
// engine/tessellation across a bounded worker pool, mirroring the hardware's
// data-parallel model: invocations are isolated, share only read-only inputs,
// and complete in no guaranteed order relative to each other.
package pipeline

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/engine/frame"
	"github.com/verdant-engine/verdant-go/engine/geometry"
	"github.com/verdant-engine/verdant-go/engine/surface"
	"github.com/verdant-engine/verdant-go/engine/tessellation"
	"github.com/verdant-engine/verdant-go/engine/texture"
)

// Kind identifies which host pass a GeometryPass is feeding. The vertex
// records produced are identical for every kind; the tag only tells the host
// which downstream consumer the output is bound for.
type Kind int

const (
	// PassDepthOnly feeds the depth pre-pass.
	PassDepthOnly Kind = iota

	// PassGBuffer feeds the full material g-buffer pass.
	PassGBuffer
)

// Draw bundles the read-only inputs of one draw call.
type Draw struct {
	// Vertices are the object-space input vertices.
	Vertices []geometry.Input

	// BaseTransform is the draw's object-to-world transform.
	BaseTransform mgl32.Mat4

	// PrevTransform is the host-supplied previous-frame transform value. It is
	// only consulted when FetchPreviousTransform is set.
	PrevTransform mgl32.Mat4

	// Material holds the material parameters for this draw.
	Material surface.Params

	// HeightMap samples the material's height texture. Required when the
	// material has the height-texture capability and patches are processed.
	HeightMap texture.Sampler

	// Transparent is the host's per-draw transparency flag; it selects the
	// unjittered projection matrices.
	Transparent bool

	// FetchPreviousTransform tells the pass to use PrevTransform for the
	// previous-frame path. When unset the current transform is reused and the
	// only motion captured is procedural animation.
	FetchPreviousTransform bool
}

// material returns the material parameters with the host transparency flag
// folded into the capability bitmask, so every downstream stage sees one
// consistent surface description.
func (d Draw) material() surface.Params {
	m := d.Material
	if d.Transparent {
		m.Flags |= surface.FlagTransparent
	}
	return m
}

// previous returns the transform for the previous-frame path.
func (d Draw) previous() mgl32.Mat4 {
	if d.FetchPreviousTransform {
		return d.PrevTransform
	}
	return d.BaseTransform
}

// Stats accumulates pipeline throughput counters for profiling.
type Stats struct {
	// Vertices is the number of input vertices transformed.
	Vertices uint64

	// Patches is the number of tessellation patches processed.
	Patches uint64

	// Generated is the number of vertices emitted by tessellation evaluation.
	Generated uint64

	// Elapsed is the total CPU wall time spent inside Process/ProcessPatches.
	Elapsed time.Duration
}

// GeometryPass runs the geometry stages of one host pass over draws.
type GeometryPass interface {
	// Kind returns which host pass this GeometryPass feeds.
	//
	// Returns:
	//   - Kind: the pass kind tag
	Kind() Kind

	// Process runs the non-tessellated path: every input vertex is transformed
	// into a finished, projected vertex record. Output order matches input
	// order regardless of how invocations were scheduled.
	//
	// Parameters:
	//   - draw: the draw's read-only inputs
	//   - fc: the frame constant block
	//
	// Returns:
	//   - []geometry.Vertex: one finished record per input vertex
	Process(draw Draw, fc frame.Constants) []geometry.Vertex

	// ProcessPatches runs the tessellated path: each index triple forms a
	// triangular patch whose control points are transformed, run through the
	// tessellation control stage, and evaluated at a uniform barycentric
	// lattice sized by the patch's inside factor. The lattice is emitted as a
	// triangle list, three vertices per generated triangle, in patch order.
	//
	// Parameters:
	//   - draw: the draw's read-only inputs
	//   - patches: index triples into draw.Vertices
	//   - fc: the frame constant block
	//
	// Returns:
	//   - []geometry.Vertex: the generated triangle list of all patches
	ProcessPatches(draw Draw, patches [][tessellation.ControlPoints]uint32, fc frame.Constants) []geometry.Vertex

	// Stats returns the accumulated throughput counters.
	//
	// Returns:
	//   - Stats: a copy of the counters
	Stats() Stats
}

// geometryPass is the implementation of the GeometryPass interface.
type geometryPass struct {
	mu      *sync.Mutex
	kind    Kind
	workers int

	// pool manages a bounded set of reusable goroutines. Workers persist
	// across draws; a WaitGroup provides the per-draw barrier.
	pool worker.DynamicWorkerPool

	stats Stats
}

// Ensure geometryPass implements GeometryPass.
var _ GeometryPass = &geometryPass{}

// NewGeometryPass creates a GeometryPass for the given pass kind. Worker count
// defaults to NumCPU-1 (minimum 1) and can be overridden with WithWorkers.
//
// Parameters:
//   - kind: the host pass this GeometryPass feeds
//   - options: functional options to further configure the pass
//
// Returns:
//   - GeometryPass: the newly created pass
func NewGeometryPass(kind Kind, options ...Option) GeometryPass {
	g := &geometryPass{
		mu:      &sync.Mutex{},
		kind:    kind,
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(g)
	}

	// Queue size of 256 accommodates the chunk counts of large draws with headroom.
	g.pool = worker.NewDynamicWorkerPool(g.workers, 256, 1*time.Second)
	return g
}

func (g *geometryPass) Kind() Kind {
	return g.kind
}

func (g *geometryPass) Process(draw Draw, fc frame.Constants) []geometry.Vertex {
	start := time.Now()
	material := draw.material()
	surf := material.Surface()
	prev := draw.previous()

	out := make([]geometry.Vertex, len(draw.Vertices))
	g.parallel(len(draw.Vertices), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			v := geometry.TransformVertex(draw.Vertices[i], draw.BaseTransform, prev, material, fc)
			geometry.Project(&v, surf, fc)
			out[i] = v
		}
	})

	g.mu.Lock()
	g.stats.Vertices += uint64(len(draw.Vertices))
	g.stats.Elapsed += time.Since(start)
	g.mu.Unlock()
	return out
}

func (g *geometryPass) ProcessPatches(draw Draw, patches [][tessellation.ControlPoints]uint32, fc frame.Constants) []geometry.Vertex {
	start := time.Now()
	material := draw.material()
	prev := draw.previous()

	perPatch := make([][]geometry.Vertex, len(patches))
	g.parallel(len(patches), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			var control [tessellation.ControlPoints]geometry.Vertex
			for c, idx := range patches[i] {
				control[c] = geometry.TransformVertex(draw.Vertices[idx], draw.BaseTransform, prev, material, fc)
			}
			patch := tessellation.Control(control, fc.CameraPosition)

			// Evaluate each lattice point once, then expand into the
			// generated triangle list.
			points := DomainPoints(patch.InsideFactor)
			evaluated := make([]geometry.Vertex, len(points))
			for p, bary := range points {
				evaluated[p] = tessellation.Evaluate(patch, bary, material, draw.HeightMap, fc)
			}
			triangles := DomainTriangles(patch.InsideFactor)
			emitted := make([]geometry.Vertex, 0, len(triangles)*3)
			for _, tri := range triangles {
				emitted = append(emitted, evaluated[tri[0]], evaluated[tri[1]], evaluated[tri[2]])
			}
			perPatch[i] = emitted
		}
	})

	var generated uint64
	var out []geometry.Vertex
	for _, emitted := range perPatch {
		generated += uint64(len(emitted))
		out = append(out, emitted...)
	}

	g.mu.Lock()
	g.stats.Patches += uint64(len(patches))
	g.stats.Generated += generated
	g.stats.Elapsed += time.Since(start)
	g.mu.Unlock()
	return out
}

func (g *geometryPass) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

// parallel splits [0, n) into contiguous chunks and runs fn over them on the
// worker pool, blocking until every chunk completes. Small ranges run inline.
func (g *geometryPass) parallel(n int, fn func(lo, hi int)) {
	const minChunk = 64
	if n < minChunk*2 || g.workers == 1 {
		fn(0, n)
		return
	}

	chunk := max((n+g.workers-1)/g.workers, minChunk)
	var wg sync.WaitGroup
	id := 0
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		lo, hi := start, end
		g.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				fn(lo, hi)
				return nil, nil
			},
		})
		id++
	}
	wg.Wait()
}

// DomainPoints returns the uniform barycentric lattice for a subdivision
// factor: all weights (i/n, j/n, k/n) with i+j+k = n, where n is the factor
// floored to at least 1. Factor 1 yields just the three corners, matching a
// patch that was not actually subdivided.
//
// Parameters:
//   - factor: the patch subdivision factor
//
// Returns:
//   - []mgl32.Vec3: the barycentric sample points
func DomainPoints(factor float32) []mgl32.Vec3 {
	n := int(factor)
	if n < 1 {
		n = 1
	}
	points := make([]mgl32.Vec3, 0, (n+1)*(n+2)/2)
	inv := 1 / float32(n)
	for i := 0; i <= n; i++ {
		for j := 0; j <= n-i; j++ {
			k := n - i - j
			points = append(points, mgl32.Vec3{float32(i) * inv, float32(j) * inv, float32(k) * inv})
		}
	}
	return points
}

// DomainTriangles returns the triangle indices connecting the lattice of
// DomainPoints for the same factor, n*n triangles for factor n. Indices
// address the DomainPoints slice.
//
// Parameters:
//   - factor: the patch subdivision factor
//
// Returns:
//   - [][3]int: triangle index triples into the lattice
func DomainTriangles(factor float32) [][3]int {
	n := int(factor)
	if n < 1 {
		n = 1
	}

	// Row i of the lattice holds the points with first weight i/n; its start
	// index follows from the previous rows' lengths.
	rowStart := func(i int) int {
		return i*(n+1) - i*(i-1)/2
	}

	triangles := make([][3]int, 0, n*n)
	for i := 0; i < n; i++ {
		row := rowStart(i)
		next := rowStart(i + 1)
		width := n - i
		for j := 0; j < width; j++ {
			triangles = append(triangles, [3]int{row + j, row + j + 1, next + j})
			if j < width-1 {
				triangles = append(triangles, [3]int{row + j + 1, next + j + 1, next + j})
			}
		}
	}
	return triangles
}
