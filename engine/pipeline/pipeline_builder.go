package pipeline

// Option is a functional option for configuring a GeometryPass.
//
// Parameters:
//   - g: the geometryPass instance to configure
type Option func(g *geometryPass)

// WithWorkers sets the number of pool workers used to chunk draw processing.
// Values below 1 are ignored.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - Option: the configuration function
func WithWorkers(workers int) Option {
	return func(g *geometryPass) {
		if workers < 1 {
			return
		}
		g.workers = workers
	}
}
