// Package manifest reads and writes package manifests.
//
// A manifest lists the resources a package maps into the repository, the
// packages it overrides and, for the root package, the override order
// between installed packages and where those packages are installed:
//
//	{
//	  "name": "acme/blog",
//	  "resources": {
//	    "/acme/blog": "res",
//	    "/acme/blog/css": ["css", "@vendor/theme:dist"]
//	  },
//	  "override": ["vendor/theme"],
//	  "override-order": ["vendor/a", "vendor/b"],
//	  "packages": {"vendor/theme": {"install-path": "vendor/theme"}}
//	}
//
// The same keys are accepted in TOML and YAML; the codec is picked from the
// file extension unless a format is configured. Every format is decoded into
// a generic map first and normalized with mapstructure, so a single path and
// a list of paths are both accepted wherever a list is expected.
package manifest
