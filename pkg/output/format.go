package output

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command results are written
type Format int

const (
	// FormatAuto becomes FormatTerminal or FormatText depending on the writer
	FormatAuto Format = iota
	// FormatTerminal is styled text
	FormatTerminal
	// FormatText is unstyled text, safe for pipes and files
	FormatText
	// FormatJSON is one JSON document per command
	FormatJSON
)

// formatNames holds the canonical name first, then accepted aliases
var formatNames = map[Format][]string{
	FormatAuto:     {"auto", ""},
	FormatTerminal: {"term", "terminal"},
	FormatText:     {"text", "plain"},
	FormatJSON:     {"json"},
}

func (f Format) String() string {
	if names, ok := formatNames[f]; ok {
		return names[0]
	}
	return "unknown"
}

// ParseFormat accepts a format name or alias, case-insensitively
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, names := range formatNames {
		for _, n := range names {
			if n == name {
				return f, nil
			}
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput,
		"unknown output format %q, expected auto, term, text or json", s).
		WithDetail("format", s)
}

// Resolve turns FormatAuto into a concrete format for w. color is the
// configured color mode: always, never or auto. Explicit text and json
// requests are never changed.
func Resolve(f Format, w io.Writer, color string) Format {
	if f == FormatJSON || f == FormatText {
		return f
	}
	switch color {
	case "never":
		return FormatText
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return FormatTerminal
	}
	if f == FormatTerminal {
		return f
	}
	return DetectFormat(w)
}

// DetectFormat picks FormatTerminal for color-capable terminals and
// FormatText otherwise. A non-empty NO_COLOR always wins.
func DetectFormat(w io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isTerminal(w) || termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
