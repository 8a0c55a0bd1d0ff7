package config

import (
	"slices"

	"github.com/arthur-debert/resman/pkg/errors"
)

// Config is the complete resman configuration
type Config struct {
	Manifest Manifest `koanf:"manifest" toml:"manifest"`
	Store    Store    `koanf:"store" toml:"store"`
	Logging  Logging  `koanf:"logging" toml:"logging"`
	Output   Output   `koanf:"output" toml:"output"`
}

// Manifest configures manifest files
type Manifest struct {
	// Filename is looked up in the project and in every installed package
	Filename string `koanf:"filename" toml:"filename"`
	// Format is auto, json, toml or yaml
	Format string `koanf:"format" toml:"format"`
}

// Store configures where resolved resources are written
type Store struct {
	Kind string `koanf:"kind" toml:"kind"`
	// Path is resolved against the project directory when relative
	Path string `koanf:"path" toml:"path"`
	Mode string `koanf:"mode" toml:"mode"`
}

// Logging configures log verbosity
type Logging struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// Output configures terminal output
type Output struct {
	Color string `koanf:"color" toml:"color"`
	// Theme is a styles file layered over the built-in theme. Relative
	// paths are resolved against the project directory.
	Theme string `koanf:"theme" toml:"theme"`
}

var (
	manifestFormats = []string{"auto", "json", "toml", "yaml"}
	storeKinds      = []string{"filesystem", "memory"}
	storeModes      = []string{"copy", "symlink"}
	colorModes      = []string{"auto", "always", "never"}
)

// Validate checks enumerated values
func (c *Config) Validate() error {
	checks := []struct {
		key     string
		value   string
		allowed []string
	}{
		{"manifest.format", c.Manifest.Format, manifestFormats},
		{"store.kind", c.Store.Kind, storeKinds},
		{"store.mode", c.Store.Mode, storeModes},
		{"output.color", c.Output.Color, colorModes},
	}
	for _, check := range checks {
		if !slices.Contains(check.allowed, check.value) {
			return errors.Newf(errors.ErrConfigParse, "invalid value %q for %s, expected one of %v",
				check.value, check.key, check.allowed).
				WithDetail("key", check.key).
				WithDetail("value", check.value)
		}
	}
	if c.Manifest.Filename == "" {
		return errors.New(errors.ErrConfigParse, "manifest.filename must not be empty").
			WithDetail("key", "manifest.filename")
	}
	if c.Logging.Verbosity < 0 {
		return errors.New(errors.ErrConfigParse, "logging.verbosity must not be negative").
			WithDetail("key", "logging.verbosity")
	}
	return nil
}
