package preview

import "github.com/cogentcore/webgpu/wgpu"

// Option is a functional option for configuring a Preview.
//
// Parameters:
//   - p: the preview instance to configure
type Option func(p *wgpuPreview)

// WithClearColor sets the render pass clear color.
//
// Parameters:
//   - r, g, b, a: the clear color channels in [0, 1]
//
// Returns:
//   - Option: the configuration function
func WithClearColor(r, g, b, a float64) Option {
	return func(p *wgpuPreview) {
		p.clearColor = wgpu.Color{R: r, G: g, B: b, A: a}
	}
}

// WithUncappedFrameRate disables vsync, presenting frames as fast as the GPU
// produces them.
//
// Returns:
//   - Option: the configuration function
func WithUncappedFrameRate() Option {
	return func(p *wgpuPreview) {
		p.presentMode = wgpu.PresentModeImmediate
	}
}

// WithFallbackAdapter forces the software fallback adapter, useful on
// machines without GPU drivers.
//
// Returns:
//   - Option: the configuration function
func WithFallbackAdapter() Option {
	return func(p *wgpuPreview) {
		p.forceFallbackAdapter = true
	}
}
