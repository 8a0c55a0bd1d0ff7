package config

import "sync/atomic"

var current atomic.Pointer[Config]

// Initialize makes cfg the process-wide configuration. nil resets it to the
// built-in defaults.
func Initialize(cfg *Config) {
	if cfg == nil {
		cfg = Default()
	}
	current.Store(cfg)
}

// Get returns the process-wide configuration, the defaults until
// Initialize is called
func Get() *Config {
	if cfg := current.Load(); cfg != nil {
		return cfg
	}
	cfg := Default()
	current.CompareAndSwap(nil, cfg)
	return current.Load()
}
