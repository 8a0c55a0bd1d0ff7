// Package topics adds free-form help topics to a cobra command tree.
//
// Topics are files below a directory of an fs.FS, usually an embed.FS.
// The file name without extension is the topic name; names starting with
// "option-" document a flag and are also found as --name. Install swaps
// the help command for one that serves both commands and topics.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/arthur-debert/resman/pkg/errors"
)

const optionPrefix = "option-"

// Topic is one help file
type Topic struct {
	Name string
	// Title is the first markdown heading, "" when there is none
	Title   string
	Path    string
	Content string
}

// Options configures topic discovery and rendering
type Options struct {
	// Dir is the topic directory inside the filesystem
	Dir string
	// Extensions lists topic file extensions, [".md", ".txt"] when empty
	Extensions []string
	// Renderer formats topics, Plain when nil
	Renderer Renderer
}

// Manager holds the topics found below one directory
type Manager struct {
	topics   map[string]*Topic
	renderer Renderer
}

// Load reads every topic file below opts.Dir. A missing directory yields
// a manager without topics.
func Load(fsys fs.FS, opts Options) (*Manager, error) {
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".md", ".txt"}
	}
	if opts.Renderer == nil {
		opts.Renderer = Plain
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}

	m := &Manager{topics: make(map[string]*Topic), renderer: opts.Renderer}
	if _, err := fs.Stat(fsys, opts.Dir); err != nil {
		return m, nil
	}

	err := fs.WalkDir(fsys, opts.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := path.Ext(p)
		if !slices.Contains(opts.Extensions, ext) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{
			Name:    name,
			Title:   heading(string(data)),
			Path:    p,
			Content: string(data),
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot read help topics from %s", opts.Dir)
	}
	return m, nil
}

// heading returns the text of the first level one markdown heading
func heading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}

// Lookup finds a topic by name. Flag spellings such as --root also match
// the topic option-root.
func (m *Manager) Lookup(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics[optionPrefix+name]
	return t, ok
}

// Names returns every topic name, sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render writes t through the configured renderer
func (m *Manager) Render(w io.Writer, t *Topic) error {
	_, err := io.WriteString(w, m.renderer.Render(t.Content, path.Ext(t.Path)))
	return err
}

// WriteIndex lists the topics, general ones first, then flag topics
func (m *Manager) WriteIndex(w io.Writer, app string) error {
	names := m.Names()
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}

	var general, flags []string
	width := 0
	for _, name := range names {
		label := name
		if opt, ok := strings.CutPrefix(name, optionPrefix); ok {
			label = "--" + opt
			flags = append(flags, name)
		} else {
			general = append(general, name)
		}
		width = max(width, len(label))
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	section := func(title string, names []string, label func(string) string) {
		if len(names) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, name := range names {
			line := fmt.Sprintf("  %-*s  %s", width, label(name), m.topics[name].Title)
			b.WriteString(strings.TrimRight(line, " ") + "\n")
		}
	}
	section("General topics", general, func(n string) string { return n })
	section("Option topics", flags, func(n string) string { return "--" + strings.TrimPrefix(n, optionPrefix) })
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", app)

	_, err := io.WriteString(w, b.String())
	return err
}
