package ui

import (
	"fmt"
	"strings"

	"nscal/internal/event"
	"nscal/internal/schedule"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// viewAgenda renders the flat sortable table, grouped into date buckets
func (m *Model) viewAgenda() string {
	var sections []string

	events := m.visibleEvents()
	groups := schedule.GroupByBucket(events, m.today)

	title := fmt.Sprintf("Events · sorted by %s", m.filter.SortField)
	if m.filter.Descending {
		title += " (desc)"
	}
	sections = append(sections, m.styles.Header.Render(title))

	if len(groups) == 0 {
		sections = append(sections, "")
		if m.fetchErr != nil {
			sections = append(sections, m.styles.Live.Render("Could not load events — press r to retry"))
		} else {
			sections = append(sections, m.styles.Help.Render("(no events match the current filters)"))
		}
	}

	maxLines := m.height - 4
	lines := 0
	for _, group := range groups {
		if lines >= maxLines {
			break
		}
		sections = append(sections, m.styles.Header.Render(string(group.Bucket)))
		lines++

		for _, ev := range group.Events {
			if lines >= maxLines {
				break
			}
			sections = append(sections, m.renderAgendaRow(ev))
			lines++
		}
	}

	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderAgendaRow(ev event.Event) string {
	badge := "      "
	switch m.statuses[ev.ID] {
	case schedule.StatusLive:
		badge = m.styles.Live.Render("LIVE  ")
	case schedule.StatusNext:
		badge = m.styles.Next.Render("NEXT  ")
	}

	timeText := ev.TimeText
	if timeText == "" && ev.StartAt != nil {
		timeText = ev.StartAt.In(m.config.Location()).Format(m.config.TimeFormat)
	}
	if timeText == "" {
		timeText = "all day"
	}

	titleWidth := m.width / 3
	if titleWidth < 20 {
		titleWidth = 20
	}

	row := fmt.Sprintf("%s  %-19s  %s  %s · %s · %s",
		ev.Date.Format("Mon Jan 02"),
		truncate.StringWithTail(timeText, uint(19), "…"),
		pad(truncate.StringWithTail(ev.Title, uint(titleWidth), "…"), titleWidth),
		orDash(ev.NetworkState),
		orDash(locationLabel(ev)),
		orDash(string(ev.Type)),
	)

	return "  " + badge + m.eventStyle(ev.ID).Render(row)
}

func locationLabel(ev event.Event) string {
	if ev.Location == event.VirtualLocation {
		return event.VirtualLocation
	}
	if ev.Country != "" && ev.Location != "" {
		return ev.Location + ", " + ev.Country
	}
	if ev.Location != "" {
		return ev.Location
	}
	return ev.Country
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
