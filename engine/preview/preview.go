// package preview draws CPU-evaluated vertex records on screen through
// WebGPU. The geometry pass does all transform and animation work on the CPU;
// the preview shader only projects the finished world positions and shades
// with the interpolated vertex color, so what appears on screen is exactly
// what the CPU stages produced.
package preview

import (
	_ "embed"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/common"
	"github.com/verdant-engine/verdant-go/engine/geometry"
	"github.com/verdant-engine/verdant-go/engine/window"
)

//go:embed assets/preview.wgsl
var previewShaderSource string

// Preview renders shaded vertex batches into a window surface.
type Preview interface {
	// Configure reconfigures the surface and depth texture for a new
	// framebuffer size. Call from the window's resize callback.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	Configure(width, height int)

	// Frame uploads the vertex batch and draws it as a triangle list.
	// Acquires the swapchain texture, encodes one render pass and presents.
	//
	// Parameters:
	//   - viewProjection: the matrix projecting world positions to clip space
	//   - vertices: the shaded triangle list, three vertices per triangle
	//
	// Returns:
	//   - error: error if the swapchain texture could not be acquired
	Frame(viewProjection mgl32.Mat4, vertices []geometry.GPUShadedVertex) error

	// Release frees all GPU resources held by the preview.
	Release()
}

// wgpuPreview is the implementation of the Preview interface.
type wgpuPreview struct {
	mu       *sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat        *wgpu.TextureFormat
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	pipeline      *wgpu.RenderPipeline
	uniformBuffer *wgpu.Buffer
	bindGroup     *wgpu.BindGroup

	// vertexBuffer grows as needed; capacity is tracked in vertices.
	vertexBuffer   *wgpu.Buffer
	vertexCapacity int

	presentMode          wgpu.PresentMode
	clearColor           wgpu.Color
	forceFallbackAdapter bool
}

// Ensure wgpuPreview implements Preview.
var _ Preview = &wgpuPreview{}

// New creates a Preview over the given window, initializing the WebGPU
// instance, surface, adapter, device and render pipeline.
// Panics if the window is nil or GPU initialization fails.
//
// Parameters:
//   - win: the spawned window to draw into
//   - options: functional options to further configure the preview
//
// Returns:
//   - Preview: the newly created preview renderer
func New(win window.Window, options ...Option) Preview {
	if win == nil {
		panic("preview requires a window")
	}
	runtime.LockOSThread()

	p := &wgpuPreview{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	for _, option := range options {
		option(p)
	}

	p.instance = wgpu.CreateInstance(nil)
	p.surface = p.instance.CreateSurface(win.SurfaceDescriptor())

	adapter, err := p.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: p.forceFallbackAdapter,
		CompatibleSurface:    p.surface,
	})
	if err != nil {
		panic(err)
	}
	p.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Preview Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	p.device = device
	p.queue = device.GetQueue()

	p.Configure(win.Width(), win.Height())
	if err := p.createPipeline(); err != nil {
		panic(err)
	}
	return p
}

func (p *wgpuPreview) Configure(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	capabilities := p.surface.GetCapabilities(p.adapter)
	p.surfaceFormat = &capabilities.Formats[0]

	p.surface.Configure(p.adapter, p.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *p.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: p.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	depthTexture, err := p.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Preview Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	p.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	p.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       nil, // set per-frame to the swapchain view
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: p.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            p.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

// createPipeline builds the shader module, uniform bind group and render
// pipeline. Requires Configure to have run so the surface format is known.
func (p *wgpuPreview) createPipeline() error {
	shaderModule, err := p.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Preview Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: previewShaderSource,
		},
	})
	if err != nil {
		return err
	}

	bindGroupLayout, err := p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Preview Frame Uniforms Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return err
	}

	p.uniformBuffer, err = p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Preview Frame Uniforms",
		Size:  64, // one mat4x4<f32>
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	p.bindGroup, err = p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Preview Frame Uniforms Bind Group",
		Layout: bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  p.uniformBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return err
	}

	pipelineLayout, err := p.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Preview Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bindGroupLayout},
	})
	if err != nil {
		return err
	}

	var shaded geometry.GPUShadedVertex
	p.pipeline, err = p.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Preview Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(shaded.Size()),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *p.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone, // grass blades are visible from both sides
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	return err
}

// ensureVertexCapacity grows the vertex buffer to hold at least count
// vertices. Growth doubles to limit reallocation churn.
func (p *wgpuPreview) ensureVertexCapacity(count int) error {
	if p.vertexBuffer != nil && count <= p.vertexCapacity {
		return nil
	}

	capacity := max(p.vertexCapacity*2, count, 1024)
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
	}

	var shaded geometry.GPUShadedVertex
	buf, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Preview Vertex Buffer",
		Size:  uint64(capacity * shaded.Size()),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	p.vertexBuffer = buf
	p.vertexCapacity = capacity
	return nil
}

func (p *wgpuPreview) Frame(viewProjection mgl32.Mat4, vertices []geometry.GPUShadedVertex) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureVertexCapacity(len(vertices)); err != nil {
		return err
	}

	p.queue.WriteBuffer(p.uniformBuffer, 0, common.StructToBytes(&viewProjection))
	if len(vertices) > 0 {
		p.queue.WriteBuffer(p.vertexBuffer, 0, common.SliceToBytes(vertices))
	}

	surfaceTexture, err := p.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := p.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	p.renderPassDescriptor.ColorAttachments[0].View = view
	pass := encoder.BeginRenderPass(p.renderPassDescriptor)
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.bindGroup, nil)
	if len(vertices) > 0 {
		pass.SetVertexBuffer(0, p.vertexBuffer, 0, wgpu.WholeSize)
		pass.Draw(uint32(len(vertices)), 1, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		view.Release()
		surfaceTexture.Release()
		return err
	}
	p.queue.Submit(commandBuffer)
	p.surface.Present()

	commandBuffer.Release()
	encoder.Release()
	view.Release()
	surfaceTexture.Release()
	return nil
}

func (p *wgpuPreview) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.uniformBuffer != nil {
		p.uniformBuffer.Release()
		p.uniformBuffer = nil
	}
	if p.device != nil {
		p.device.Release()
		p.device = nil
	}
	if p.surface != nil {
		p.surface.Release()
		p.surface = nil
	}
	if p.instance != nil {
		p.instance.Release()
		p.instance = nil
	}
}
