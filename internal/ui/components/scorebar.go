// Package components renders small report widgets.
package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/phonix/internal/ui/theme"
)

// ScoreBar displays a proficiency score as a horizontal bar.
type ScoreBar struct {
	Score     float64 // 0..1
	Width     int
	ShowValue bool
}

// NewScoreBar creates a score bar.
func NewScoreBar(score float64, width int, showValue bool) ScoreBar {
	return ScoreBar{Score: score, Width: width, ShowValue: showValue}
}

// Filled returns how many cells of the bar are filled.
func (b ScoreBar) Filled() int {
	width := b.barWidth()
	filled := int(float64(width) * b.Score)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return filled
}

func (b ScoreBar) barWidth() int {
	if b.Width < 4 {
		return 4
	}
	return b.Width
}

// View renders the bar.
func (b ScoreBar) View() string {
	filled := b.Filled()
	empty := b.barWidth() - filled

	out := lipgloss.NewStyle().
		Foreground(theme.ScoreColor(b.Score)).
		Render(strings.Repeat("█", filled))
	out += lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(strings.Repeat("░", empty))

	if b.ShowValue {
		out += theme.Label.Render(fmt.Sprintf(" %.2f", b.Score))
	}
	return out
}
