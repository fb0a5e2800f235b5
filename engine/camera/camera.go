// package camera produces the view-projection matrix pairs the frame
// constants carry: an unjittered pair for transparent surfaces and a
// sub-pixel jittered pair for opaque temporal accumulation. The jitter
// follows a Halton(2,3) sequence so samples cover the pixel evenly.
package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// jitterPeriod is the length of the Halton sample cycle.
const jitterPeriod = 8

// Camera computes perspective view-projection matrices from a position and
// target, with optional temporal jitter.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// SetTarget points the camera at a world-space position.
	//
	// Parameters:
	//   - target: the look-at target
	SetTarget(target mgl32.Vec3)

	// SetAspect sets the aspect ratio (width / height). Call from the
	// window's resize callback.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Advance steps to the next temporal jitter sample. Call once per frame
	// before reading the jittered matrix.
	Advance()

	// ViewProjection returns the jittered view-projection matrix for the
	// current temporal sample. The jitter offsets clip positions by a
	// sub-pixel amount for the given framebuffer size.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//
	// Returns:
	//   - mgl32.Mat4: the jittered view-projection matrix
	ViewProjection(width, height int) mgl32.Mat4

	// ViewProjectionUnjittered returns the view-projection matrix without
	// temporal jitter.
	//
	// Returns:
	//   - mgl32.Mat4: the unjittered view-projection matrix
	ViewProjectionUnjittered() mgl32.Mat4
}

// perspectiveCamera is the implementation of the Camera interface.
type perspectiveCamera struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	jitterIndex int
}

// Ensure perspectiveCamera implements Camera.
var _ Camera = &perspectiveCamera{}

// New creates a Camera with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func New(options ...Option) Camera {
	c := &perspectiveCamera{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 2, 10},
		target:   mgl32.Vec3{0, 0, 0},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      mgl32.DegToRad(60),
		aspect:   16.0 / 9.0,
		near:     0.1,
		far:      200,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *perspectiveCamera) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *perspectiveCamera) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

func (c *perspectiveCamera) SetTarget(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
}

func (c *perspectiveCamera) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *perspectiveCamera) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jitterIndex = (c.jitterIndex + 1) % jitterPeriod
}

func (c *perspectiveCamera) ViewProjection(width, height int) mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()

	base := c.viewProjection()
	if width <= 0 || height <= 0 {
		return base
	}

	// Offset clip-space x/y by the Halton sample, scaled so the full sample
	// spread covers one pixel of the framebuffer.
	jx := (halton(c.jitterIndex+1, 2) - 0.5) * 2 / float32(width)
	jy := (halton(c.jitterIndex+1, 3) - 0.5) * 2 / float32(height)
	return mgl32.Translate3D(jx, jy, 0).Mul4(base)
}

func (c *perspectiveCamera) ViewProjectionUnjittered() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjection()
}

// viewProjection computes the unjittered matrix. Caller must hold the mutex.
func (c *perspectiveCamera) viewProjection() mgl32.Mat4 {
	projection := mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	view := mgl32.LookAtV(c.position, c.target, c.up)
	return projection.Mul4(view)
}

// halton returns element i of the Halton sequence for the given base,
// a low-discrepancy value in (0, 1).
func halton(i, base int) float32 {
	var result float32
	f := float32(1)
	for i > 0 {
		f /= float32(base)
		result += f * float32(i%base)
		i /= base
	}
	return result
}
