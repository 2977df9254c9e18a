package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ruby-ist/portfolio/pkg/styling"
)

// maxPinned bounds the pinned resolution list
const maxPinned = 8

// KeyMap defines the explore keyboard shortcuts
type KeyMap struct {
	Pin   key.Binding
	Clear key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap holds the bindings explore handles and lists in its footer
var DefaultKeyMap = KeyMap{
	Pin: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "pin"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear pins"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// Explore is the interactive playground: the class name typed in the input
// is resolved on every keystroke
type Explore struct {
	width  int
	height int

	generator *styling.Generator
	input     textinput.Model
	current   Resolution
	pinned    []Resolution

	showHelp bool
	quitting bool
}

// NewExplore creates the playground. suggestions are offered for tab
// completion, typically the class names found in the project.
func NewExplore(g *styling.Generator, suggestions []string) Explore {
	in := textinput.New()
	in.Placeholder = "md:mt-4"
	in.Prompt = "class › "
	in.CharLimit = 120
	in.Width = 48
	in.ShowSuggestions = len(suggestions) > 0
	in.SetSuggestions(suggestions)
	in.Focus()

	return Explore{
		generator: g,
		input:     in,
	}
}

// Init initializes the model
func (m Explore) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Explore) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, DefaultKeyMap.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, DefaultKeyMap.Clear):
			m.pinned = nil
			return m, nil

		case key.Matches(msg, DefaultKeyMap.Pin):
			m.pin()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *Explore) refresh() {
	token := strings.TrimSpace(m.input.Value())
	if token == m.current.Token {
		return
	}
	if token == "" {
		m.current = Resolution{}
		return
	}
	m.current = Resolve(m.generator, token)
}

func (m *Explore) pin() {
	if m.current.Token == "" {
		return
	}
	for i, r := range m.pinned {
		if r.Token == m.current.Token {
			m.pinned = append(m.pinned[:i], m.pinned[i+1:]...)
			break
		}
	}
	m.pinned = append([]Resolution{m.current}, m.pinned...)
	if len(m.pinned) > maxPinned {
		m.pinned = m.pinned[:maxPinned]
	}
	m.input.Reset()
	m.current = Resolution{}
}

// Pinned returns the pinned class names, newest first
func (m Explore) Pinned() []string {
	tokens := make([]string, len(m.pinned))
	for i, r := range m.pinned {
		tokens[i] = r.Token
	}
	return tokens
}

// View renders the UI
func (m Explore) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		titleStyle.Render("folio explore"),
		m.input.View(),
	}

	if m.current.Token != "" {
		sections = append(sections, boxStyle.Render(strings.TrimRight(m.current.Render(), "\n")))
	}

	if len(m.pinned) > 0 {
		blocks := make([]string, len(m.pinned))
		for i, r := range m.pinned {
			blocks[i] = strings.TrimRight(r.Render(), "\n")
		}
		sections = append(sections, mutedStyle.Render("pinned"), strings.Join(blocks, "\n"))
	}

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Explore) renderFooter() string {
	bindings := []key.Binding{DefaultKeyMap.Pin, DefaultKeyMap.Clear, DefaultKeyMap.Help, DefaultKeyMap.Quit}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = h.Key + " " + h.Desc
	}
	return footerStyle.Render(strings.Join(parts, " • "))
}

func (m Explore) renderHelp() string {
	lines := []string{
		"Type a class name to see the CSS it generates.",
		"Prefix strict: for !important, sm: md: lg: for breakpoints.",
		"Tab accepts a suggested class name from the project.",
	}
	return mutedStyle.Render(strings.Join(lines, "\n"))
}
