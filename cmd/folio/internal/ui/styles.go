// Package ui renders class name resolutions for the terminal and hosts the
// interactive explore playground.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Style definitions
var (
	// Colors
	accentColor   = lipgloss.Color("#c084fc")
	borderColor   = lipgloss.Color("#52525b")
	propertyColor = lipgloss.Color("#34d399")
	mediaColor    = lipgloss.Color("#fbbf24")
	errorColor    = lipgloss.Color("#f87171")
	mutedColor    = lipgloss.Color("#a1a1aa")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	tokenStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	propertyStyle = lipgloss.NewStyle().
			Foreground(propertyColor)

	mediaStyle = lipgloss.NewStyle().
			Foreground(mediaColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
