// Package config loads resman's configuration.
//
// Configuration is layered with koanf: the embedded defaults, the project
// file (.resman.toml or .resman.yaml in the project directory), RESMAN_*
// environment variables and finally explicit overrides from command line
// flags. Environment variables map to keys by dropping the prefix,
// lowercasing and turning the first underscore into a dot, so
// RESMAN_STORE_PATH sets store.path.
package config
