package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/swarmsim/internal/status"
)

// Bar returns a styled horizontal bar filled to percent.
func Bar(width int, percent float64, s status.Status) string {
	if width <= 0 {
		return ""
	}

	percent = max(0, min(percent, 1.0))

	filledWidth := int(float64(width) * percent)
	emptyWidth := width - filledWidth

	filled := lipgloss.NewStyle().Foreground(statusColor(s)).Render(strings.Repeat("█", filledWidth))

	return filled + BarEmptyStyle.Render(strings.Repeat("░", emptyWidth))
}
