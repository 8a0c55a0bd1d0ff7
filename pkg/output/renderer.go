package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/resman/pkg/output/styles"
	"github.com/arthur-debert/resman/pkg/types"
)

// MappingRow is one mapping of one package
type MappingRow struct {
	Package        string   `json:"package"`
	Root           bool     `json:"root,omitempty"`
	RepositoryPath string   `json:"path"`
	References     []string `json:"references"`
}

// OrderRow is one package in build order
type OrderRow struct {
	Package string `json:"package"`
	Root    bool   `json:"root,omitempty"`
	// Overrides lists the packages this one is written after
	Overrides []string `json:"overrides,omitempty"`
}

// ConflictRow is one unresolved conflict
type ConflictRow struct {
	Path     string `json:"path"`
	Package1 string `json:"package1"`
	Package2 string `json:"package2"`
}

// Renderer writes command results in one format
type Renderer struct {
	w      io.Writer
	format Format
	theme  *styles.Theme
}

// NewRenderer creates a Renderer. FormatAuto is treated as text.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		format = FormatText
	}
	return &Renderer{w: w, format: format, theme: styles.Default()}
}

// WithTheme replaces the styles used for terminal output
func (r *Renderer) WithTheme(theme *styles.Theme) *Renderer {
	if theme != nil {
		r.theme = theme
	}
	return r
}

// Format returns the format the renderer writes
func (r *Renderer) Format() Format {
	return r.format
}

func (r *Renderer) style(name, s string) string {
	if r.format != FormatTerminal {
		return s
	}
	return r.theme.Style(name).Render(s)
}

func (r *Renderer) json(v interface{}) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (r *Renderer) lines(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(r.w, strings.Join(lines, "\n"))
	return err
}

// RenderMappings lists mappings grouped by package, keeping row order
func (r *Renderer) RenderMappings(rows []MappingRow) error {
	if r.format == FormatJSON {
		if rows == nil {
			rows = []MappingRow{}
		}
		return r.json(rows)
	}
	if len(rows) == 0 {
		return r.RenderMessage("Muted", "No resource mappings")
	}

	var lines []string
	current := ""
	for i, row := range rows {
		if i == 0 || row.Package != current {
			current = row.Package
			lines = append(lines, r.packageName(row.Package, row.Root))
		}
		lines = append(lines, "  "+r.style("Path", row.RepositoryPath)+
			r.style("Muted", " -> ")+r.style("Reference", strings.Join(row.References, ", ")))
	}
	return r.lines(lines)
}

// RenderOrder lists packages in build order
func (r *Renderer) RenderOrder(rows []OrderRow) error {
	if r.format == FormatJSON {
		if rows == nil {
			rows = []OrderRow{}
		}
		return r.json(rows)
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		line := fmt.Sprintf("%2d. %s", i+1, r.packageName(row.Package, row.Root))
		if len(row.Overrides) > 0 {
			line += " " + r.style("Override", "overrides "+strings.Join(row.Overrides, ", "))
		}
		lines = append(lines, line)
	}
	return r.lines(lines)
}

// RenderConflicts lists conflicts, or reports that there are none
func (r *Renderer) RenderConflicts(conflicts []types.ResourceConflict) error {
	rows := make([]ConflictRow, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, ConflictRow{Path: c.Path(), Package1: c.Package1(), Package2: c.Package2()})
	}
	if r.format == FormatJSON {
		return r.json(rows)
	}
	if len(rows) == 0 {
		return r.RenderMessage("Success", "No conflicts")
	}

	lines := []string{r.style("Error", fmt.Sprintf("%d conflict(s)", len(rows)))}
	for _, row := range rows {
		lines = append(lines, "  "+r.style("Path", row.Path)+": "+
			r.style("Package", row.Package1)+r.style("Muted", " <> ")+r.style("Package", row.Package2))
	}
	lines = append(lines, r.style("Muted",
		`Add one package to the other's "override" list, or list both in the root "override-order".`))
	return r.lines(lines)
}

// RenderMessage writes one styled line
func (r *Renderer) RenderMessage(style, message string) error {
	if r.format == FormatJSON {
		return r.json(map[string]string{"message": message})
	}
	return r.lines([]string{r.style(style, message)})
}

// RenderError writes an error
func (r *Renderer) RenderError(err error) error {
	if r.format == FormatJSON {
		return r.json(map[string]string{"error": err.Error()})
	}
	return r.lines([]string{r.style("Error", "Error:") + " " + err.Error()})
}

func (r *Renderer) packageName(name string, root bool) string {
	if root {
		return r.style("Root", name) + r.style("Muted", " (root)")
	}
	return r.style("Package", name)
}
