package ui

import (
	"fmt"
	"strings"

	"nscal/internal/schedule"

	"github.com/charmbracelet/lipgloss"
)

const weekCellWidth = 8

// viewPopups renders the week-granularity timeline for multi-day pop-up
// and residency events. Every event gets its own row with a single bar
// spanning all the weeks it touches.
func (m *Model) viewPopups() string {
	var sections []string

	weeks := schedule.WeekAxis(m.today, m.popupHorizonDays())
	bars := schedule.WeekGrid(m.popups, weeks, len(m.styles.Palette))

	sections = append(sections, m.styles.Header.Render("Pop-up cities & residencies"))
	sections = append(sections, m.renderWeekHeader(weeks))

	if len(bars) == 0 {
		sections = append(sections, "")
		sections = append(sections, m.styles.Help.Render("(no pop-up events in this window)"))
	}

	maxRows := m.height - 5
	for _, bar := range bars {
		if bar.Row >= maxRows {
			break
		}
		sections = append(sections, m.renderBar(bar))
	}

	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// popupHorizonDays widens the zoom window so week columns stay useful at
// day-level zooms
func (m *Model) popupHorizonDays() int {
	if m.zoomDays < 28 {
		return 28
	}
	return m.zoomDays
}

// renderWeekHeader labels each week column with its ISO week number and
// the Monday it starts on
func (m *Model) renderWeekHeader(weeks []schedule.Week) string {
	var b strings.Builder
	for _, w := range weeks {
		label := fmt.Sprintf("W%02d %s", w.ISOWeek, w.Start.Format("1/2"))
		if len(label) > weekCellWidth-1 {
			label = label[:weekCellWidth-1]
		}
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", weekCellWidth-len(label)))
	}
	return m.styles.Help.Render(b.String())
}

// renderBar draws one pop-up as a single bar across its week span
func (m *Model) renderBar(bar schedule.Bar) string {
	style := m.styles.Palette[bar.Color]

	barWidth := bar.Span()*weekCellWidth - 1
	label := bar.Event.Title
	if bar.Event.Location != "" {
		label += " · " + bar.Event.Location
	}
	if len(label) > barWidth-2 {
		if barWidth > 5 {
			label = label[:barWidth-5] + "..."
		} else {
			label = label[:barWidth-2]
		}
	}
	fill := barWidth - 2 - len(label)
	if fill < 0 {
		fill = 0
	}
	barText := "▐" + label + strings.Repeat("─", fill) + "▌"

	indent := strings.Repeat(" ", bar.FirstWeek*weekCellWidth)
	dates := fmt.Sprintf("  %s – %s",
		bar.Event.Date.Format("Jan 2"),
		bar.Event.EndDate.Format("Jan 2"))

	return indent + style.Render(barText) + m.styles.Help.Render(dates)
}
