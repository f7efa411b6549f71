// Package render formats brands and posts for the terminal.
// Plain styles are used when stdout is not a terminal so piped output stays
// free of escape codes.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	Ink     = lipgloss.Color("#1F2A44")
	Paper   = lipgloss.Color("#F7F5F2")
	Coral   = lipgloss.Color("#FF6F59")
	Teal    = lipgloss.Color("#2A9D8F")
	Sand    = lipgloss.Color("#E9C46A")
	Slate   = lipgloss.Color("#8A94A6")
	Border  = lipgloss.Color("#C9CED6")
	Danger  = lipgloss.Color("#E53935")
	Success = lipgloss.Color("#2A9D8F")
)

// Styles contains all styles used by the renderer.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Tag      lipgloss.Style
	Phrase   lipgloss.Style
	Card     lipgloss.Style
	Campaign lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Inserted lipgloss.Style
	Deleted  lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Coral).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(Slate).
			Italic(true),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(Slate),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Tag: lipgloss.NewStyle().
			Foreground(Teal),

		Phrase: lipgloss.NewStyle().
			Foreground(Sand).
			Italic(true),

		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border),

		Campaign: lipgloss.NewStyle().
			Foreground(Paper).
			Background(Ink).
			Padding(0, 1),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true),

		Inserted: lipgloss.NewStyle().
			Foreground(Success).
			Underline(true),

		Deleted: lipgloss.NewStyle().
			Foreground(Danger).
			Strikethrough(true),
	}
}

// PlainStyles returns styles that add no color, border or padding.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain,
		Subtitle: plain,
		Body:     plain,
		Muted:    plain,
		Bold:     plain,
		Tag:      plain,
		Phrase:   plain,
		Card:     plain,
		Campaign: plain,
		Success:  plain,
		Error:    plain,
		Inserted: plain,
		Deleted:  plain,
	}
}
