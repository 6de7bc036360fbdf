package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/idsia/crema-analysis/internal/ui/theme"
)

// ProgressBar displays how many runs of a simulation have been analysed.
type ProgressBar struct {
	Label       string
	Done        int
	Total       int
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, done, total int, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Done:        done,
		Total:       total,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Percent is Done/Total clamped to [0,1]; an empty bar is 0.
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += theme.Hint.Render(fmt.Sprintf("  %d%%", int(p.Percent()*100)))
	}

	return result
}
