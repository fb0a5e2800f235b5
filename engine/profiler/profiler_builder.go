package profiler

import "time"

// Option is a functional option for configuring a Profiler.
//
// Parameters:
//   - p: the profiler instance to configure
type Option func(p *Profiler)

// WithInterval sets how often Tick logs and rolls a new snapshot.
// Non-positive intervals are ignored.
//
// Parameters:
//   - interval: the update interval
//
// Returns:
//   - Option: the configuration function
func WithInterval(interval time.Duration) Option {
	return func(p *Profiler) {
		if interval <= 0 {
			return
		}
		p.updateInterval = interval
	}
}
