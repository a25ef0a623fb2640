package ui

import (
	"fmt"
	"strings"

	"nscal/internal/schedule"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) viewHelp() string {
	help := []string{
		m.styles.Header.Render("nscal Help"),
		"",
		m.styles.Normal.Render("Views:"),
		m.styles.Help.Render("  1       - Hourly timeline"),
		m.styles.Help.Render("  2       - Pop-up cities (week view)"),
		m.styles.Help.Render("  3       - Agenda table"),
		m.styles.Help.Render("  tab     - Cycle views"),
		"",
		m.styles.Normal.Render("Navigation:"),
		m.styles.Help.Render("  h/l/←/→ - Previous/next day"),
		m.styles.Help.Render("  H/L     - Previous/next week"),
		m.styles.Help.Render("  o       - Back to today"),
		m.styles.Help.Render("  z       - Zoom (change window width)"),
		"",
		m.styles.Normal.Render("Filters & sorting:"),
		m.styles.Help.Render("  d       - Cycle date range preset"),
		m.styles.Help.Render("  t       - Cycle event type filter"),
		m.styles.Help.Render("  v       - Toggle virtual-only"),
		m.styles.Help.Render("  s       - Cycle sort field"),
		m.styles.Help.Render("  S       - Flip sort direction"),
		"",
		m.styles.Normal.Render("Actions:"),
		m.styles.Help.Render("  r       - Refresh from feeds"),
		m.styles.Help.Render("  ?       - Toggle help"),
		m.styles.Help.Render("  q       - Quit"),
		"",
		m.styles.Help.Render("Press ? to return..."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

func (m *Model) renderStatusBar() string {
	live := 0
	for _, s := range m.statuses {
		if s == schedule.StatusLive {
			live++
		}
	}

	left := fmt.Sprintf(" %s | %s | Events: %d",
		m.startDay.Format(m.config.DateFormat),
		m.filter.Range.Preset,
		len(m.visibleEvents()))
	if live > 0 {
		left += " | " + m.styles.Live.Render(fmt.Sprintf("%d LIVE", live))
	}

	right := "d:range t:type v:virtual s:sort z:zoom ?:help q:quit"

	if m.fetchErr != nil {
		right = m.styles.Live.Render("feed error — r to retry")
	} else if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left + middle + right)
}
