// package frame holds the per-frame constant block shared by every stage of
// the geometry pass. A Constants value is an immutable snapshot: it is built
// once per frame, threaded explicitly through the vertex stages, and never
// mutated while a pass is in flight. The next frame gets an entirely new
// snapshot via Tick.
package frame

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Constants is the read-only frame constant block for one frame's worth of
// geometry-pass invocations. Matrices come in jittered and unjittered variants;
// transparent surfaces must be projected with the unjittered pair because the
// temporal anti-aliasing jitter breaks blending order.
type Constants struct {
	// Time is the current frame time in seconds.
	Time float32

	// DeltaTime is the time elapsed since the previous frame in seconds.
	// The previous-frame animation path re-evaluates at Time - DeltaTime.
	DeltaTime float32

	// Wind is the world-space wind vector. Its direction drives foliage sway
	// and its magnitude scales the sway amplitude.
	Wind mgl32.Vec3

	// CameraPosition is the world-space camera position.
	CameraPosition mgl32.Vec3

	// LastMovementTime is the frame time at which the camera last moved.
	// The water ripple fades out over a fixed window after this timestamp.
	LastMovementTime float32

	// ViewProjection is the current frame's jittered view-projection matrix.
	ViewProjection mgl32.Mat4

	// PrevViewProjection is the previous frame's jittered view-projection matrix.
	PrevViewProjection mgl32.Mat4

	// ViewProjectionUnjittered is the current frame's view-projection matrix
	// without the temporal anti-aliasing sub-pixel offset.
	ViewProjectionUnjittered mgl32.Mat4

	// PrevViewProjectionUnjittered is the previous frame's unjittered
	// view-projection matrix.
	PrevViewProjectionUnjittered mgl32.Mat4
}

// New creates a frame Constants snapshot with identity matrices, a 60 Hz delta
// time, and zero wind, then applies the provided options.
//
// Parameters:
//   - options: functional options to configure the snapshot
//
// Returns:
//   - Constants: the configured frame constant block
func New(options ...Option) Constants {
	c := Constants{
		DeltaTime:                    1.0 / 60.0,
		ViewProjection:               mgl32.Ident4(),
		PrevViewProjection:           mgl32.Ident4(),
		ViewProjectionUnjittered:     mgl32.Ident4(),
		PrevViewProjectionUnjittered: mgl32.Ident4(),
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

// Tick produces the next frame's snapshot from the current one. The current
// view-projection matrices roll over into the previous slots, the new matrices
// are installed, and time advances by dt. Camera position, wind, and the
// last-movement timestamp carry over unchanged; update them with options.
//
// Parameters:
//   - dt: the new frame's delta time in seconds
//   - viewProj: the new jittered view-projection matrix
//   - viewProjUnjittered: the new unjittered view-projection matrix
//   - options: additional per-frame updates (camera, wind, movement time)
//
// Returns:
//   - Constants: the next frame's constant block
func (c Constants) Tick(dt float32, viewProj, viewProjUnjittered mgl32.Mat4, options ...Option) Constants {
	next := c
	next.Time = c.Time + dt
	next.DeltaTime = dt
	next.PrevViewProjection = c.ViewProjection
	next.PrevViewProjectionUnjittered = c.ViewProjectionUnjittered
	next.ViewProjection = viewProj
	next.ViewProjectionUnjittered = viewProjUnjittered
	for _, option := range options {
		option(&next)
	}
	return next
}
