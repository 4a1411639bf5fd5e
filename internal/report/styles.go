package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/swarmsim/internal/status"
)

var (
	Base     = lipgloss.Color("#1e1e2e")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Surface0 = lipgloss.Color("#313244")

	Pink     = lipgloss.Color("#f5c2e7")
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Teal     = lipgloss.Color("#94e2d5")
	Lavender = lipgloss.Color("#b4befe")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Base).
			Background(Lavender).
			Bold(true).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Pink).
			Bold(true)

	RowStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(Text)

	MutedStyle = lipgloss.NewStyle().Foreground(Subtext0)

	BarEmptyStyle = lipgloss.NewStyle().Foreground(Surface0)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Base).
			Background(Red).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Padding(0, 1)

	StatusRunning    = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	StatusPending    = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	StatusRoundLimit = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	StatusCompleted  = lipgloss.NewStyle().Foreground(Green).Bold(true)
	StatusCancelled  = lipgloss.NewStyle().Foreground(Mauve).Bold(true)
	StatusFailed     = lipgloss.NewStyle().Foreground(Red).Bold(true)
)

func statusColor(s status.Status) lipgloss.Color {
	switch s {
	case status.Running:
		return Teal
	case status.Completed:
		return Green
	case status.RoundLimit:
		return Peach
	case status.Cancelled:
		return Mauve
	case status.Failed:
		return Red
	default:
		return Yellow
	}
}

// StatusLabel renders a run status with its marker.
func StatusLabel(s status.Status) string {
	switch s {
	case status.Running:
		return StatusRunning.Render("● running")
	case status.Pending:
		return StatusPending.Render("○ pending")
	case status.RoundLimit:
		return StatusRoundLimit.Render("❚❚ round limit")
	case status.Completed:
		return StatusCompleted.Render("✔ completed")
	case status.Cancelled:
		return StatusCancelled.Render("⊘ cancelled")
	case status.Failed:
		return StatusFailed.Render("✖ failed")
	default:
		return StatusFailed.Render("unknown")
	}
}
