package camera

import "github.com/go-gl/mathgl/mgl32"

// Option is a functional option for configuring a Camera.
//
// Parameters:
//   - c: the camera instance to configure
type Option func(c *perspectiveCamera)

// WithPosition sets the camera's world-space position.
//
// Parameters:
//   - position: the camera position
//
// Returns:
//   - Option: the configuration function
func WithPosition(position mgl32.Vec3) Option {
	return func(c *perspectiveCamera) {
		c.position = position
	}
}

// WithTarget sets the camera's look-at target.
//
// Parameters:
//   - target: the look-at target
//
// Returns:
//   - Option: the configuration function
func WithTarget(target mgl32.Vec3) Option {
	return func(c *perspectiveCamera) {
		c.target = target
	}
}

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - Option: the configuration function
func WithFov(fov float32) Option {
	return func(c *perspectiveCamera) {
		c.fov = fov
	}
}

// WithAspect sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - Option: the configuration function
func WithAspect(aspect float32) Option {
	return func(c *perspectiveCamera) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - Option: the configuration function
func WithClipPlanes(near, far float32) Option {
	return func(c *perspectiveCamera) {
		c.near = near
		c.far = far
	}
}
