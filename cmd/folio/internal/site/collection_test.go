package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/ruby-ist/portfolio/cmd/folio/internal/config"
)

func writeContent(t *testing.T, dir, rel, body string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

var blogs = config.DefaultConfig().Content.Collections[0]

func TestLoadCollection(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "blogs/consequences_of_using_mixins_at_the_top_level.md",
		"---\ntitle: Mixins\ndate: \"2026-01-07\"\ntags: [ruby]\n---\n# Mixins\n")
	writeContent(t, dir, "blogs/ruby/Pattern Matching.md",
		"---\ndate: 2025-06-01T10:00:00Z\ntags: []\n---\nbody\n")
	writeContent(t, dir, "blogs/ruby/index.md", "---\ndate: someday\ntags: [ruby]\n---\n")
	writeContent(t, dir, "notes.txt", "ignored")
	writeContent(t, dir, ".drafts/wip.md", "---\ndate: x\ntags: []\n---\n")

	items, err := LoadCollection(dir, blogs)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "blogs/consequences_of_using_mixins_at_the_top_level.md", items[0].Path)
	assert.Equal(t, "/blogs/consequences_of_using_mixins_at_the_top_level", items[0].Route)
	assert.Equal(t, "Mixins", items[0].Title)
	assert.Equal(t, []string{"ruby"}, items[0].Tags)
	assert.Equal(t, "2026-01-07", items[0].LastMod())
	assert.Equal(t, "# Mixins\n", string(items[0].Body))

	assert.Equal(t, "/blogs/ruby/pattern-matching", items[1].Route)
	assert.Equal(t, "2025-06-01", items[1].LastMod())
	assert.Equal(t, []string{}, items[1].Tags)

	assert.Equal(t, "/blogs/ruby", items[2].Route)
	assert.Empty(t, items[2].LastMod())
}

func TestLoadCollection_RouteIsContentPath(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "blogs/consequences_of_using_mixins_at_the_top_level.md",
		"---\ndate: \"2026-01-07\"\ntags: [ruby]\n---\n")
	writeContent(t, dir, "about.md", "---\ndate: \"2026-01-01\"\ntags: []\n---\n")

	items, err := LoadCollection(dir, blogs)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "/about", items[0].Route)
	assert.Equal(t, "/blogs/consequences_of_using_mixins_at_the_top_level", items[1].Route)
}

func TestLoadCollection_SchemaErrors(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "ok.md", "---\ndate: \"2025-01-01\"\ntags: [go]\n---\n")
	writeContent(t, dir, "no-date.md", "---\ntags: [go]\n---\n")
	writeContent(t, dir, "no-tags.md", "---\ndate: \"2025-01-01\"\n---\n")
	writeContent(t, dir, "no-frontmatter.md", "# Just markdown\n")
	writeContent(t, dir, "open.md", "---\ndate: x\n")

	items, err := LoadCollection(dir, blogs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFrontmatter)
	assert.Len(t, multierr.Errors(err), 4)
	require.Len(t, items, 1)
	assert.Equal(t, "/ok", items[0].Route)
}

func TestLoadCollection_Data(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "authors/srira.yaml", "name: Srira\n")
	writeContent(t, dir, "authors/readme.md", "plain markdown, no frontmatter")

	items, err := LoadCollection(dir, config.CollectionConfig{Name: "authors", Type: "data", Source: "authors/*"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Empty(t, it.Route)
		assert.NotEmpty(t, it.Body)
	}
}

func TestLoadCollection_MissingDir(t *testing.T) {
	items, err := LoadCollection(filepath.Join(t.TempDir(), "nope"), blogs)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern, name string
		want          bool
	}{
		{"**/*", "a.md", true},
		{"**/*", "a/b/c.md", true},
		{"", "anything", true},
		{"*.md", "a.md", true},
		{"*.md", "a/b.md", false},
		{"blog/**/*.md", "blog/a.md", true},
		{"blog/**/*.md", "blog/x/y/a.md", true},
		{"blog/**/*.md", "other/a.md", false},
		{"blog/**", "blog/x/a.md", true},
		{"blog/{a,b}.md", "blog/b.md", true},
		{"blog/[a", "blog/[a", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchGlob(tt.pattern, tt.name))
		})
	}
}

func TestRoute(t *testing.T) {
	assert.Equal(t, "/blogs/hello-world", Route("/blogs", "Hello World.md"))
	assert.Equal(t, "/blogs", Route("/blogs", "index.md"))
	assert.Equal(t, "/notes/go/tips", Route("notes", "go/tips.md"))
	assert.Equal(t, "/", Route("", "index.md"))
}
