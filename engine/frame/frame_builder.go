package frame

import "github.com/go-gl/mathgl/mgl32"

// Option is a functional option for configuring a frame Constants snapshot.
// Use the With* functions to create options.
type Option func(c *Constants)

// WithTime sets the current frame time in seconds.
//
// Parameters:
//   - time: the frame time
//
// Returns:
//   - Option: option function to apply
func WithTime(time float32) Option {
	return func(c *Constants) {
		c.Time = time
	}
}

// WithDeltaTime sets the frame delta time in seconds.
//
// Parameters:
//   - dt: the delta time
//
// Returns:
//   - Option: option function to apply
func WithDeltaTime(dt float32) Option {
	return func(c *Constants) {
		c.DeltaTime = dt
	}
}

// WithWind sets the world-space wind vector.
//
// Parameters:
//   - wind: the wind vector (direction and magnitude)
//
// Returns:
//   - Option: option function to apply
func WithWind(wind mgl32.Vec3) Option {
	return func(c *Constants) {
		c.Wind = wind
	}
}

// WithCameraPosition sets the world-space camera position.
//
// Parameters:
//   - position: the camera position
//
// Returns:
//   - Option: option function to apply
func WithCameraPosition(position mgl32.Vec3) Option {
	return func(c *Constants) {
		c.CameraPosition = position
	}
}

// WithLastMovementTime sets the frame time at which the camera last moved.
//
// Parameters:
//   - time: the last-movement timestamp
//
// Returns:
//   - Option: option function to apply
func WithLastMovementTime(time float32) Option {
	return func(c *Constants) {
		c.LastMovementTime = time
	}
}

// WithViewProjection sets both jittered view-projection matrices (current and
// previous) to the same value. Useful for tests and the first frame, where no
// previous matrix exists yet.
//
// Parameters:
//   - viewProj: the view-projection matrix
//
// Returns:
//   - Option: option function to apply
func WithViewProjection(viewProj mgl32.Mat4) Option {
	return func(c *Constants) {
		c.ViewProjection = viewProj
		c.PrevViewProjection = viewProj
	}
}

// WithViewProjectionUnjittered sets both unjittered view-projection matrices
// (current and previous) to the same value.
//
// Parameters:
//   - viewProj: the unjittered view-projection matrix
//
// Returns:
//   - Option: option function to apply
func WithViewProjectionUnjittered(viewProj mgl32.Mat4) Option {
	return func(c *Constants) {
		c.ViewProjectionUnjittered = viewProj
		c.PrevViewProjectionUnjittered = viewProj
	}
}
