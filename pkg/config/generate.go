package config

import (
	"strings"

	"github.com/arthur-debert/resman/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent returns the defaults file with every assignment
// commented out, a starting point for .resman.toml
func GenerateConfigContent() string {
	lines := strings.Split(DefaultsContent(), "\n")
	for i, line := range lines {
		if isAssignment(line) {
			lines[i] = "# " + line
		}
	}
	return strings.Join(lines, "\n")
}

// isAssignment is false for blank lines, comments and table headers
func isAssignment(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" || s[0] == '#' {
		return false
	}
	return !(s[0] == '[' && s[len(s)-1] == ']')
}

// Encode renders the effective configuration as TOML
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot encode configuration")
	}
	return b.String(), nil
}
