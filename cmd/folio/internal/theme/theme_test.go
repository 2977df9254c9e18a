package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruby-ist/portfolio/pkg/styling"
)

const themeCSS = `
:root {
  --primary: #f5f0e6;
  --secondary: rgba(0, 0, 0, 0.6);
  --highlight-background: #111;
  color: black;
}

@media (prefers-color-scheme: dark) {
  :root { --primary: #0f0f0f; --card-10: 1px }
}

.card { --card-2: calc(100% - 2rem); padding: 1rem; }
`

func TestParse(t *testing.T) {
	th := New()
	require.NoError(t, th.Parse([]byte(themeCSS)))

	assert.Equal(t, []string{"--card-2", "--card-10", "--highlight-background", "--primary", "--secondary"}, th.Names())
	assert.True(t, th.Has("--primary"))
	assert.False(t, th.Has("primary"))

	v, ok := th.Value("--card-2")
	require.True(t, ok)
	assert.Equal(t, "calc(100% - 2rem)", v)

	// the later declaration wins
	v, _ = th.Value("--primary")
	assert.Equal(t, "#0f0f0f", v)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.css")
	require.NoError(t, os.WriteFile(path, []byte(themeCSS), 0644))

	th, err := Load([]string{path, filepath.Join(dir, "missing.css")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, th.Len())
}

func TestReferences(t *testing.T) {
	src := `.a{color:var(--primary);}
.b{scrollbar-color:var( --thumb ) var(--track, #000);}
.c{--not-a-ref: 1px; width: calc(var(--w) * 2);}`

	assert.Equal(t, []string{"--primary", "--thumb", "--track", "--w"}, References([]byte(src)))
	assert.Empty(t, References([]byte(`.x{display:flex;}`)))
}

func TestCheck(t *testing.T) {
	th := New()
	require.NoError(t, th.Parse([]byte(themeCSS)))

	gen := styling.NewGenerator(styling.DefaultTable())
	sheet, err := gen.Generate([]string{"color-primary", "bg-color-accent", "flex", "color-accent"})
	require.NoError(t, err)

	warnings := th.Check(sheet)
	require.Len(t, warnings, 2)
	tokens := []string{warnings[0].Token, warnings[1].Token}
	assert.ElementsMatch(t, []string{"bg-color-accent", "color-accent"}, tokens)
	assert.Equal(t, "--accent", warnings[0].Property)
	assert.Contains(t, warnings[0].String(), "var(--accent)")

	assert.Nil(t, th.Check(nil))
}
