package dispatcher

// Config holds executor configuration options.
type Config struct {
	// EnableMetrics enables execution timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic turns handler panics into ErrExecution results.
	RecoverFromPanic bool

	// MaxCount limits the effective count of a command. Zero means no limit.
	MaxCount int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
		MaxCount:         10000,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithMaxCount returns a copy of the config with the count limit set.
func (c Config) WithMaxCount(max int) Config {
	c.MaxCount = max
	return c
}
