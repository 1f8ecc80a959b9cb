package keymap

// Config holds router configuration options.
type Config struct {
	// MaxDepth limits how deeply bindings may nest. Zero means no limit.
	MaxDepth int

	// EnableMetrics enables per-behavior counters.
	EnableMetrics bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:      16,
		EnableMetrics: false,
	}
}

// WithMaxDepth returns a copy of the config with the nesting limit set.
func (c Config) WithMaxDepth(depth int) Config {
	c.MaxDepth = depth
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}
