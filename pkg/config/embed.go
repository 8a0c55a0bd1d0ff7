package config

import (
	_ "embed"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded defaults file, comments included
func DefaultsContent() string {
	return string(defaultConfig)
}

// embedded hands the defaults file to koanf as a byte provider
type embedded []byte

func (e embedded) ReadBytes() ([]byte, error) { return e, nil }

// Read is only used when koanf is given no parser
func (e embedded) Read() (map[string]interface{}, error) {
	return toml.Parser().Unmarshal(e)
}

// withDefaults returns a koanf instance holding the built-in values
func withDefaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(embedded(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "built-in configuration is invalid")
	}
	return k, nil
}
