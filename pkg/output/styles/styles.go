// Package styles holds the named lipgloss styles used by terminal output.
//
// A Theme is built from a YAML document with a colors palette and a styles
// table. Colors are adaptive (light and dark variants); a style's
// foreground or background names a palette entry or is a literal color.
// The built-in theme is embedded from styles.yaml, and user theme files
// are layered on top of it with Overlay.
package styles

import (
	_ "embed"
	"sort"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var builtin []byte

// Shade is a palette entry
type Shade struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// Spec describes one named style
type Spec struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

type document struct {
	Colors map[string]Shade `yaml:"colors"`
	Styles map[string]Spec  `yaml:"styles"`
}

// Theme maps style names to lipgloss styles. A Theme is immutable once
// built; Overlay returns a new one.
type Theme struct {
	palette map[string]Shade
	specs   map[string]Spec
	styles  map[string]lipgloss.Style
}

var defaultTheme = mustParse(builtin)

func mustParse(data []byte) *Theme {
	t, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the built-in theme
func Default() *Theme {
	return defaultTheme
}

// Parse builds a theme from a YAML document
func Parse(data []byte) (*Theme, error) {
	return (&Theme{}).Overlay(data)
}

// Overlay returns a copy of t with the palette entries and styles of data
// added or replaced. A style replaces the whole entry of the same name.
func (t *Theme) Overlay(data []byte) (*Theme, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid theme")
	}

	next := &Theme{
		palette: make(map[string]Shade, len(t.palette)+len(doc.Colors)),
		specs:   make(map[string]Spec, len(t.specs)+len(doc.Styles)),
	}
	for name, shade := range t.palette {
		next.palette[name] = shade
	}
	for name, shade := range doc.Colors {
		next.palette[name] = shade
	}
	for name, spec := range t.specs {
		next.specs[name] = spec
	}
	for name, spec := range doc.Styles {
		next.specs[name] = spec
	}

	// Rebuilt from specs so an overridden color reaches inherited styles
	next.styles = make(map[string]lipgloss.Style, len(next.specs))
	for name, spec := range next.specs {
		next.styles[name] = next.build(spec)
	}
	return next, nil
}

// Load reads a theme file and layers it over the built-in theme
func Load(fs types.FS, path string) (*Theme, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read theme %s", path).
			WithDetail("path", path)
	}
	return Default().Overlay(data)
}

func (t *Theme) color(value string) (lipgloss.TerminalColor, bool) {
	if value == "" {
		return nil, false
	}
	if shade, ok := t.palette[value]; ok {
		return lipgloss.AdaptiveColor{Light: shade.Light, Dark: shade.Dark}, true
	}
	return lipgloss.Color(value), true
}

func (t *Theme) build(spec Spec) lipgloss.Style {
	style := lipgloss.NewStyle().
		Bold(spec.Bold).
		Italic(spec.Italic).
		Underline(spec.Underline)

	if fg, ok := t.color(spec.Foreground); ok {
		style = style.Foreground(fg)
	}
	if bg, ok := t.color(spec.Background); ok {
		style = style.Background(bg)
	}
	if spec.PaddingLeft > 0 || spec.PaddingRight > 0 {
		style = style.PaddingLeft(spec.PaddingLeft).PaddingRight(spec.PaddingRight)
	}
	return style
}

// Style returns the named style, or an empty style for unknown names
func (t *Theme) Style(name string) lipgloss.Style {
	if style, ok := t.styles[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Has reports whether the theme defines name
func (t *Theme) Has(name string) bool {
	_, ok := t.styles[name]
	return ok
}

// Names returns the defined style names, sorted
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.styles))
	for name := range t.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
