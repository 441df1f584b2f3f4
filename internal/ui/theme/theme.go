// Package theme holds the terminal styles used by phonix reports.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Strong  = lipgloss.Color("#22C55E") // Green
	Fair    = lipgloss.Color("#EAB308") // Amber
	Weak    = lipgloss.Color("#F43F5E") // Rose
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Score bands. A phoneme at or above StrongAt is shown as strong, below
// WeakBelow as weak.
const (
	StrongAt  = 0.75
	WeakBelow = 0.45
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Border)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)
)

// ScoreColor returns the band color for a proficiency score.
func ScoreColor(score float64) color.Color {
	switch {
	case score >= StrongAt:
		return Strong
	case score < WeakBelow:
		return Weak
	default:
		return Fair
	}
}

// Score styles a score value by its band.
func Score(score float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ScoreColor(score))
}
