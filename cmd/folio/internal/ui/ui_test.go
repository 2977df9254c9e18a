package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruby-ist/portfolio/pkg/styling"
)

func newGenerator() *styling.Generator {
	breakpoints, err := styling.BreakpointVariant(styling.DefaultBreakpoints())
	if err != nil {
		panic(err)
	}
	return styling.NewGenerator(styling.DefaultTable(),
		styling.WithVariants(styling.StrictVariant(), breakpoints))
}

func TestResolution_Render(t *testing.T) {
	g := newGenerator()

	tests := []struct {
		token    string
		failed   bool
		contains []string
	}{
		{token: "mt-4", contains: []string{"mt-4\n", "  margin-top: 4px;\n"}},
		{token: "md:p-1-2", contains: []string{"  @media (min-width: 720px)\n", "  padding: 1px 2px;\n"}},
		{token: "strict:flex", contains: []string{"  display: flex !important;\n"}},
		{token: "no-scrollbar", contains: []string{"  scrollbar-width: none;\n", "  raw: .no-scrollbar::-webkit-scrollbar {display: none;}\n"}},
		{token: "hello", contains: []string{"  no match\n"}},
		{token: "mt-4xy", failed: true, contains: []string{"  error: invalid unit: xy\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			r := Resolve(g, tt.token)
			assert.Equal(t, tt.failed, r.Failed())
			out := r.Render()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestExplore_ResolvesWhileTyping(t *testing.T) {
	var m tea.Model = NewExplore(newGenerator(), nil)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m = typeText(m, "mt-4")
	view := m.View()
	assert.Contains(t, view, "margin-top: 4px;")

	m = typeText(m, "xy")
	assert.Contains(t, m.View(), "error: invalid unit: xy")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Contains(t, m.View(), "margin-top: 4px;")
}

func TestExplore_Pin(t *testing.T) {
	var m tea.Model = NewExplore(newGenerator(), nil)

	m = typeText(m, "flex")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "grid")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "flex")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	e := m.(Explore)
	assert.Equal(t, []string{"flex", "grid"}, e.Pinned())
	assert.Empty(t, e.input.Value())
	assert.Contains(t, e.View(), "pinned")

	// empty input pins nothing
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, m.(Explore).Pinned(), 2)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, m.(Explore).Pinned())
}

func TestExplore_PinLimit(t *testing.T) {
	var m tea.Model = NewExplore(newGenerator(), nil)
	for _, tok := range []string{"mt-1", "mt-2", "mt-3", "mt-4", "mt-5", "mt-6", "mt-7", "mt-8", "mt-9"} {
		m = typeText(m, tok)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	pinned := m.(Explore).Pinned()
	require.Len(t, pinned, maxPinned)
	assert.Equal(t, "mt-9", pinned[0])
}

func TestExplore_Suggestions(t *testing.T) {
	var m tea.Model = NewExplore(newGenerator(), []string{"no-scrollbar", "noisy-background"})

	m = typeText(m, "no-s")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "no-scrollbar", m.(Explore).input.Value())
	assert.Contains(t, m.View(), "scrollbar-width: none;")
}

func TestExplore_Quit(t *testing.T) {
	var m tea.Model = NewExplore(newGenerator(), nil)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestExplore_FooterListsKeyMap(t *testing.T) {
	view := NewExplore(newGenerator(), nil).View()
	for _, b := range []key.Binding{DefaultKeyMap.Pin, DefaultKeyMap.Clear, DefaultKeyMap.Help, DefaultKeyMap.Quit} {
		h := b.Help()
		assert.Contains(t, view, h.Key+" "+h.Desc)
	}
}
