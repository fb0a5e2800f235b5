// package engine ties the geometry pass to a window: it owns the frame
// constant block, the camera, the worker-pooled pass, the preview renderer
// and the profiler, and drives them once per frame from the window's message
// loop. Draws are registered at integer keys and rendered in ascending key
// order.
package engine

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/verdant-engine/verdant-go/engine/camera"
	"github.com/verdant-engine/verdant-go/engine/frame"
	"github.com/verdant-engine/verdant-go/engine/geometry"
	"github.com/verdant-engine/verdant-go/engine/pipeline"
	"github.com/verdant-engine/verdant-go/engine/preview"
	"github.com/verdant-engine/verdant-go/engine/profiler"
	"github.com/verdant-engine/verdant-go/engine/tessellation"
	"github.com/verdant-engine/verdant-go/engine/window"
)

// registeredDraw pairs a draw with its optional tessellation patches. A draw
// with no patches takes the direct per-vertex path.
type registeredDraw struct {
	draw    pipeline.Draw
	patches [][tessellation.ControlPoints]uint32
}

// engine implements the Engine interface.
type engine struct {
	mu sync.Mutex

	window  window.Window
	view    preview.Preview
	camera  camera.Camera
	pass    pipeline.GeometryPass
	fc      frame.Constants

	profiler         *profiler.Profiler
	streamer         *profiler.Streamer
	profilingEnabled bool
	statsAddr        string

	tickCallback func(deltaTime float32) []frame.Option

	draws map[int]registeredDraw

	quitOnce sync.Once
}

// Engine drives the geometry pass once per frame over registered draws.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the engine's camera.
	//
	// Returns:
	//   - camera.Camera: the camera instance
	Camera() camera.Camera

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per frame before
	// the geometry pass runs. The returned frame options are applied to the
	// frame constant block, letting the caller move the wind, player
	// position and movement timestamp per frame.
	//
	// Parameters:
	//   - callback: per-frame function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32) []frame.Option)

	// AddDraw registers a draw for the direct per-vertex path at the given
	// key. Draws render in ascending key order.
	//
	// Parameters:
	//   - key: the order key (lower renders first)
	//   - d: the draw to register
	AddDraw(key int, d pipeline.Draw)

	// AddPatchDraw registers a draw for the tessellated path at the given key.
	//
	// Parameters:
	//   - key: the order key (lower renders first)
	//   - d: the draw to register
	//   - patches: index triples into the draw's vertices
	AddPatchDraw(key int, d pipeline.Draw, patches [][tessellation.ControlPoints]uint32)

	// RemoveDraw removes the draw at the given key.
	//
	// Parameters:
	//   - key: the order key of the draw to remove
	RemoveDraw(key int)

	// Run starts the main loop (blocks until the window closes).
	Run()

	// Quit closes the window and stops the main loop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// Ensure engine implements Engine.
var _ Engine = &engine{}

// New creates an Engine with the provided options. A window is created with
// defaults unless one is supplied; the preview renderer is always created
// over the engine's window.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func New(options ...Option) Engine {
	e := &engine{
		camera:   camera.New(),
		fc:       frame.New(),
		profiler: profiler.NewProfiler(),
		draws:    make(map[int]registeredDraw),
	}
	for _, option := range options {
		option(e)
	}

	if e.window == nil {
		e.window = window.New()
	}
	if e.pass == nil {
		e.pass = pipeline.NewGeometryPass(pipeline.PassGBuffer)
	}
	e.view = preview.New(e.window)

	e.camera.SetAspect(float32(e.window.Width()) / float32(e.window.Height()))
	e.window.SetResizeCallback(func(width, height int) {
		e.view.Configure(width, height)
		e.camera.SetAspect(float32(width) / float32(height))
	})

	if e.statsAddr != "" {
		e.streamer = profiler.NewStreamer()
		go func() {
			if err := e.streamer.ListenAndServe(e.statsAddr); err != nil {
				log.Printf("stats streamer stopped: %v", err)
			}
		}()
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32) []frame.Option) {
	e.tickCallback = callback
}

func (e *engine) AddDraw(key int, d pipeline.Draw) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draws[key] = registeredDraw{draw: d}
}

func (e *engine) AddPatchDraw(key int, d pipeline.Draw, patches [][tessellation.ControlPoints]uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draws[key] = registeredDraw{draw: d, patches: patches}
}

func (e *engine) RemoveDraw(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.draws, key)
}

func (e *engine) Run() {
	lastFrame := time.Now()
	e.window.SetUpdateCallback(func() {
		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now
		e.renderFrame(dt)
	})
	e.window.Run()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			log.Printf("window close: %v", err)
		}
	})
}

// orderedDraws snapshots the registered draws in ascending key order.
// Transparent surfaces therefore render after opaque ones when registered
// at higher keys.
func (e *engine) orderedDraws() []registeredDraw {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]int, 0, len(e.draws))
	for k := range e.draws {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	ordered := make([]registeredDraw, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, e.draws[k])
	}
	return ordered
}

// renderFrame advances the frame constants, runs the geometry pass over all
// registered draws in key order and presents the result.
func (e *engine) renderFrame(dt float32) {
	var options []frame.Option
	if e.tickCallback != nil {
		options = e.tickCallback(dt)
	}

	e.camera.Advance()
	viewProj := e.camera.ViewProjection(e.window.Width(), e.window.Height())
	viewProjUnjittered := e.camera.ViewProjectionUnjittered()
	e.fc = e.fc.Tick(dt, viewProj, viewProjUnjittered, options...)

	var shaded []geometry.GPUShadedVertex
	for _, rd := range e.orderedDraws() {
		var out []geometry.Vertex
		if len(rd.patches) > 0 {
			out = e.pass.ProcessPatches(rd.draw, rd.patches, e.fc)
		} else {
			out = e.pass.Process(rd.draw, e.fc)
		}
		for _, v := range out {
			shaded = append(shaded, geometry.ShadedVertex(v))
		}
	}

	// The preview projects on the GPU from world space; hand it the
	// unjittered matrix so the image stays stable.
	if err := e.view.Frame(viewProjUnjittered, shaded); err != nil {
		log.Printf("frame skipped: %v", err)
	}

	if e.profilingEnabled {
		e.profiler.Observe(e.pass.Stats())
		if e.profiler.Tick() && e.streamer != nil {
			e.streamer.Broadcast(e.profiler.Snapshot())
		}
	}
}
