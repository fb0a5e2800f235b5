package scenegen

// Option is a functional option for configuring a Generator.
//
// Parameters:
//   - g: the generator instance to configure
type Option func(g *generator)

// WithDensityCutoff sets the noise value below which a grass cell stays
// empty. Lower values produce denser fields; values near 1 produce sparse,
// patchy growth.
//
// Parameters:
//   - cutoff: the density cutoff, typically in [-1, 1]
//
// Returns:
//   - Option: the configuration function
func WithDensityCutoff(cutoff float64) Option {
	return func(g *generator) {
		g.cutoff = cutoff
	}
}
