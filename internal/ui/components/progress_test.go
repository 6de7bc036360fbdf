package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestProgressBarPercent(t *testing.T) {
	tests := []struct {
		name        string
		done, total int
		want        float64
	}{
		{"empty total", 3, 0, 0},
		{"half", 2, 4, 0.5},
		{"over", 5, 4, 1},
		{"negative", -1, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewProgressBar("", tt.done, tt.total, false, 20).Percent())
		})
	}
}

func TestProgressBarView(t *testing.T) {
	view := NewProgressBar("sim", 1, 2, true, 30).View()
	assert.Contains(t, view, "sim")
	assert.Contains(t, view, "50%")
	assert.LessOrEqual(t, lipgloss.Width(view), 30)
	assert.False(t, strings.Contains(view, "\n"))
}
