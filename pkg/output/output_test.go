package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/arthur-debert/resman/pkg/output/styles"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"TERM", FormatTerminal, false},
		{"plain", FormatText, false},
		{"json", FormatJSON, false},
		{"xml", FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Format {
	t.Helper()
	f, err := ParseFormat(s)
	require.NoError(t, err)
	return f
}

func TestResolve(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, FormatJSON, Resolve(FormatJSON, &buf, "always"))
	assert.Equal(t, FormatText, Resolve(FormatAuto, &buf, "auto"), "buffers are not terminals")
	assert.Equal(t, FormatText, Resolve(FormatTerminal, &buf, "never"))
	assert.Equal(t, FormatTerminal, Resolve(FormatTerminal, &buf, "auto"))
}

func TestRenderMappingsText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)

	require.NoError(t, r.RenderMappings([]MappingRow{
		{Package: "vendor/a", RepositoryPath: "/a", References: []string{"res"}},
		{Package: "vendor/a", RepositoryPath: "/b", References: []string{"x", "@c:y"}},
		{Package: "project", Root: true, RepositoryPath: "/site", References: []string{"site"}},
	}))

	assert.Equal(t, "vendor/a\n  /a -> res\n  /b -> x, @c:y\nproject (root)\n  /site -> site\n", buf.String())
}

func TestRenderEmptyMappings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatAuto).RenderMappings(nil))
	assert.Equal(t, "No resource mappings\n", buf.String())

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatJSON).RenderMappings(nil))
	assert.JSONEq(t, "[]", buf.String())
}

func TestRenderOrder(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)

	require.NoError(t, r.RenderOrder([]OrderRow{
		{Package: "a"},
		{Package: "b", Overrides: []string{"a"}},
		{Package: "project", Root: true},
	}))

	assert.Equal(t, " 1. a\n 2. b overrides a\n 3. project (root)\n", buf.String())
}

func TestRenderConflicts(t *testing.T) {
	conflicts := []types.ResourceConflict{types.NewResourceConflict("/x", "a", "b")}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText).RenderConflicts(conflicts))
	assert.Contains(t, buf.String(), "1 conflict(s)")
	assert.Contains(t, buf.String(), "/x: a <> b")

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatJSON).RenderConflicts(conflicts))
	var rows []ConflictRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, []ConflictRow{{Path: "/x", Package1: "a", Package2: "b"}}, rows)

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatText).RenderConflicts(nil))
	assert.Equal(t, "No conflicts\n", buf.String())
}

func TestRenderTerminalStylesOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatTerminal)

	require.NoError(t, r.RenderMessage("Success", "done"))
	assert.Contains(t, buf.String(), "done")
}

func TestRenderWithTheme(t *testing.T) {
	theme, err := styles.Default().Overlay([]byte("styles:\n  Success:\n    paddingLeft: 3\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatTerminal).WithTheme(theme).RenderMessage("Success", "done"))
	assert.Contains(t, buf.String(), "   done")

	// Text output ignores the theme
	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatText).WithTheme(theme).RenderMessage("Success", "done"))
	assert.Equal(t, "done\n", buf.String())
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText).RenderError(errors.New("boom")))
	assert.Equal(t, "Error: boom\n", buf.String())

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatJSON).RenderError(errors.New("boom")))
	assert.JSONEq(t, `{"error": "boom"}`, buf.String())
}
