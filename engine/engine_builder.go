package engine

import (
	"github.com/verdant-engine/verdant-go/engine/camera"
	"github.com/verdant-engine/verdant-go/engine/pipeline"
	"github.com/verdant-engine/verdant-go/engine/window"
)

// Option is a function that modifies the engine configuration.
type Option func(e *engine)

// WithWindow sets a pre-built window for the engine to use instead of
// creating one with defaults.
//
// Parameters:
//   - win: the window to use
//
// Returns:
//   - Option: function to set the window
func WithWindow(win window.Window) Option {
	return func(e *engine) {
		e.window = win
	}
}

// WithCamera sets a pre-built camera for the engine to use.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - Option: function to set the camera
func WithCamera(cam camera.Camera) Option {
	return func(e *engine) {
		e.camera = cam
	}
}

// WithGeometryPass sets a pre-built geometry pass, for example one created
// with a specific worker count or as a depth-only pass.
//
// Parameters:
//   - pass: the geometry pass to use
//
// Returns:
//   - Option: function to set the geometry pass
func WithGeometryPass(pass pipeline.GeometryPass) Option {
	return func(e *engine) {
		e.pass = pass
	}
}

// WithProfiling enables profiling output from engine start.
//
// Returns:
//   - Option: function to enable profiling
func WithProfiling() Option {
	return func(e *engine) {
		e.profilingEnabled = true
	}
}

// WithStatsAddr starts a websocket stats streamer on the given address when
// the engine is created. Profiler snapshots are broadcast to connected
// clients each profiler interval while profiling is enabled.
//
// Parameters:
//   - addr: the listen address, for example ":8123"
//
// Returns:
//   - Option: function to set the stats address
func WithStatsAddr(addr string) Option {
	return func(e *engine) {
		e.statsAddr = addr
	}
}
