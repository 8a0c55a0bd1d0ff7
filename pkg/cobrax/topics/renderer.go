package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns a topic's raw content into terminal output. ext is the
// topic file extension, dot included.
type Renderer interface {
	Render(content, ext string) string
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(content, ext string) string

// Render calls f
func (f RendererFunc) Render(content, ext string) string {
	return f(content, ext)
}

// Plain writes topics as they are stored
var Plain Renderer = RendererFunc(func(content, _ string) string { return content })

// GlamourRenderer renders markdown topics with glamour and leaves other
// files untouched
type GlamourRenderer struct {
	// Style is "auto", a standard glamour style such as "dark" or "notty",
	// or the path of a style file
	Style string
	// Width wraps output at the given column, 0 keeps glamour's default
	Width int
}

// NewGlamourRenderer picks a light or dark style from the terminal
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// NewPlainGlamourRenderer renders markdown without colors, for output that
// is not a terminal
func NewPlainGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "notty", Width: 80}
}

// Render returns content unchanged when it is not markdown or glamour fails
func (r *GlamourRenderer) Render(content, ext string) string {
	if ext != ".md" && ext != ".markdown" {
		return content
	}

	style := glamour.WithAutoStyle()
	if r.Style != "" && r.Style != "auto" {
		style = glamour.WithStylePath(r.Style)
	}
	opts := []glamour.TermRendererOption{style}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
