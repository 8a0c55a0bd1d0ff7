package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment variables read into the configuration
const EnvPrefix = "RESMAN_"

// ProjectFiles are the project configuration file names, in lookup order
var ProjectFiles = []string{".resman.toml", ".resman.yaml"}

// LoadOptions selects the configuration sources
type LoadOptions struct {
	// RootDir is searched for a project file
	RootDir string
	// File is an explicit configuration file used instead of the project
	// file. It must exist.
	File string
	// Overrides are applied last, keyed by dotted path
	Overrides map[string]interface{}
}

// Default returns the built-in configuration
func Default() *Config {
	k, err := withDefaults()
	if err != nil {
		panic(err)
	}
	cfg, err := decode(k)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load merges every configuration source and decodes the result
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	// 1. Built-in defaults
	k, err := withDefaults()
	if err != nil {
		return nil, err
	}

	// 2. Project or explicit file
	path, err := configFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return decode(k)
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	cfg.Manifest.Format = strings.ToLower(cfg.Manifest.Format)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StorePath resolves the store path against rootDir
func (c *Config) StorePath(rootDir string) string {
	return resolve(rootDir, c.Store.Path)
}

// ThemePath resolves the theme file against rootDir, "" when unset
func (c *Config) ThemePath(rootDir string) string {
	if c.Output.Theme == "" {
		return ""
	}
	return resolve(rootDir, c.Output.Theme)
}

func resolve(rootDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}

// parserFor picks the koanf parser from the file extension, TOML unless
// the file is YAML
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps RESMAN_STORE_PATH to store.path
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

func configFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", opts.File).
				WithDetail("path", opts.File)
		}
		return opts.File, nil
	}
	if opts.RootDir == "" {
		return "", nil
	}
	for _, name := range ProjectFiles {
		path := filepath.Join(opts.RootDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}
