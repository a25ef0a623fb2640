package ui

import (
	"fmt"
	"strings"

	"nscal/internal/schedule"

	"github.com/charmbracelet/lipgloss"
)

// viewTimeline renders the hour-granularity timeline for the visible
// window of days
func (m *Model) viewTimeline() string {
	var sections []string

	events := m.visibleEvents()
	cells := schedule.HourGrid(events, m.startDay, m.zoomDays)

	cellsByDay := make(map[int][]schedule.Cell)
	for _, cell := range cells {
		cellsByDay[cell.Day] = append(cellsByDay[cell.Day], cell)
	}

	maxLines := m.height - 3 // leave room for the status bar
	lines := 0

	for day := 0; day < m.zoomDays && lines < maxLines; day++ {
		date := m.startDay.AddDate(0, 0, day)
		dateLine := date.Format("─Mon Jan 02")
		sections = append(sections, m.styles.Header.Render(dateLine))
		lines++

		dayCells := cellsByDay[day]
		if len(dayCells) == 0 {
			sections = append(sections, m.styles.Help.Render("       (no events)"))
			lines++
			continue
		}

		// Rows with no active events are omitted entirely
		for _, cell := range dayCells {
			if lines >= maxLines {
				break
			}
			sections = append(sections, m.renderHourCell(cell))
			lines++
		}
	}

	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHourCell lays the cell's events out side by side. Column width
// is divided by this cell's own column count, so a crowded 6 PM hour
// does not shrink bars in an empty morning hour.
func (m *Model) renderHourCell(cell schedule.Cell) string {
	timeStr := fmt.Sprintf("%02d:00", cell.Hour)

	numColumns := 0
	for _, p := range cell.Events {
		if p.Columns > numColumns {
			numColumns = p.Columns
		}
	}
	if numColumns == 0 {
		return timeStr
	}

	timeWidth := 7 // "HH:00  "
	padding := 2
	available := m.width - timeWidth
	columnWidth := available / numColumns
	if numColumns > 1 {
		columnWidth = (available - padding*(numColumns-1)) / numColumns
	}
	if columnWidth < 10 {
		columnWidth = 10 // Minimum readable width
	}

	// One label per column; events continuing from an earlier hour show
	// a continuation mark instead of repeating their title
	labels := make(map[int]string)
	styles := make(map[int]lipgloss.Style)
	for _, p := range cell.Events {
		label := "│"
		if p.Starts {
			label = p.Event.Title
			switch m.statuses[p.Event.ID] {
			case schedule.StatusLive:
				label = "LIVE " + label
			case schedule.StatusNext:
				label = "NEXT " + label
			}
		}
		if len(label) > columnWidth {
			label = label[:columnWidth-3] + "..."
		}
		if _, exists := labels[p.Column]; !exists {
			labels[p.Column] = label
			styles[p.Column] = m.eventStyle(p.Event.ID)
		}
	}

	line := timeStr + "  "
	currentPos := len(line)
	var b strings.Builder
	b.WriteString(line)
	for col := 0; col < numColumns; col++ {
		label, exists := labels[col]
		if !exists {
			continue
		}
		targetPos := timeWidth + col*(columnWidth+padding)
		if targetPos > currentPos {
			b.WriteString(strings.Repeat(" ", targetPos-currentPos))
			currentPos = targetPos
		}
		b.WriteString(styles[col].Render(label))
		currentPos += len(label)
	}

	return b.String()
}

func (m *Model) eventStyle(id string) lipgloss.Style {
	switch m.statuses[id] {
	case schedule.StatusLive:
		return m.styles.Live
	case schedule.StatusNext:
		return m.styles.Next
	default:
		return m.styles.Normal
	}
}
