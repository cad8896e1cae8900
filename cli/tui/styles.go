// Package tui provides Bubble Tea TUI components for the hallmark CLI.
//
// TUI rules:
//   - TUI is opt-in only (--tui flag)
//   - TUI is read-only (confirmation inspection)
//   - TUI uses same data payloads as non-TUI rendering
//   - No TUI-exclusive data allowed
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
)

// Styles for TUI components.
var (
	// TitleStyle for headers and titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// LabelStyle for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(16)

	// ValueStyle for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// MatchStyle for confirmed positions.
	MatchStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// MismatchStyle for mismatched positions.
	MismatchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// BoxStyle for bordered containers.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

// VerdictStyle returns a style based on the confirmation verdict.
func VerdictStyle(confirmed bool) lipgloss.Style {
	if confirmed {
		return MatchStyle
	}
	return MismatchStyle
}
