// Package report renders simulation results for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/swarmsim/internal/engine"
	"github.com/NamanBalaji/swarmsim/internal/status"
)

const (
	idWidth       = 16
	strategyWidth = 11
	numWidth      = 9
	minBarWidth   = 10
)

// Run renders one result: a title line, then one row per peer with its
// completion round, traffic and a bar of its uploads relative to the busiest
// uploader.
func Run(res *engine.Result, width int) string {
	if res == nil {
		return ""
	}

	var b strings.Builder

	title := TitleStyle.Render(fmt.Sprintf("run %s", shortID(res)))
	summary := fmt.Sprintf("%s  seed %d  rounds %d  complete %d/%d",
		StatusLabel(res.Status), res.Seed, res.Rounds, res.Completed(), len(res.Peers))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, title, " ", summary))
	b.WriteString("\n")

	if res.Error != "" {
		b.WriteString(ErrorStyle.Render(res.Error))
		b.WriteString("\n")
	}

	header := fmt.Sprintf("%-*s %-*s %*s %*s %*s %*s",
		idWidth, "peer",
		strategyWidth, "strategy",
		numWidth, "capacity",
		numWidth, "done",
		numWidth, "up",
		numWidth, "down")
	b.WriteString(RowStyle.Render(HeaderStyle.Render(header)))
	b.WriteString("\n")

	busiest := 0
	for _, p := range res.Peers {
		busiest = max(busiest, p.Uploaded)
	}

	barWidth := max(width-lipgloss.Width(header)-4, minBarWidth)

	for _, p := range res.Peers {
		done := MutedStyle.Render(fmt.Sprintf("%*s", numWidth, "-"))
		if p.CompletedAt >= 0 {
			done = fmt.Sprintf("%*d", numWidth, p.CompletedAt)
		}

		var share float64
		if busiest > 0 {
			share = float64(p.Uploaded) / float64(busiest)
		}

		s := status.RoundLimit
		if p.CompletedAt >= 0 {
			s = status.Completed
		}

		row := fmt.Sprintf("%-*s %-*s %*d %s %*d %*d %s",
			idWidth, p.ID,
			strategyWidth, p.Strategy,
			numWidth, p.Capacity,
			done,
			numWidth, p.Uploaded,
			numWidth, p.Downloaded,
			Bar(barWidth, share, s))
		b.WriteString(RowStyle.Render(row))
		b.WriteString("\n")
	}

	return b.String()
}

// List renders one line per stored run.
func List(runs []*engine.Result) string {
	if len(runs) == 0 {
		return MutedStyle.Render("no stored runs") + "\n"
	}

	var b strings.Builder
	for _, res := range runs {
		line := fmt.Sprintf("%s  %s  seed %-6d rounds %-5d complete %d/%d  %s",
			res.ID, res.StartedAt.Format("2006-01-02 15:04:05"),
			res.Seed, res.Rounds, res.Completed(), len(res.Peers),
			StatusLabel(res.Status))
		b.WriteString(RowStyle.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func shortID(res *engine.Result) string {
	id := res.ID.String()
	if len(id) > 8 {
		return id[:8]
	}

	return id
}
