package schedule

import (
	"time"

	"nscal/internal/event"
)

// Week is one column of the pop-up timeline axis. Start is a Monday
// midnight; End is the following Sunday (inclusive day).
type Week struct {
	Start   time.Time
	End     time.Time
	ISOWeek int
}

// Bar is a single pop-up event's span across the week axis. Each event
// gets its own row; pop-ups are low-concurrency so rows are not packed
// into shared columns.
type Bar struct {
	Event     event.PopupEvent
	Row       int
	FirstWeek int
	LastWeek  int
	Color     int // palette index, cycles on row
}

// Span returns the number of week columns the bar covers
func (b Bar) Span() int {
	return b.LastWeek - b.FirstWeek + 1
}

// WeekAxis builds Monday-aligned week columns from the week containing
// today out to today+zoomDays. ISO week numbers come from the standard
// library's Thursday-anchored computation.
func WeekAxis(today time.Time, zoomDays int) []Week {
	monday := startOfWeek(today)
	horizon := today.AddDate(0, 0, zoomDays)

	var weeks []Week
	for ws := monday; ws.Before(horizon); ws = ws.AddDate(0, 0, 7) {
		_, iso := ws.ISOWeek()
		weeks = append(weeks, Week{
			Start:   ws,
			End:     ws.AddDate(0, 0, 6),
			ISOWeek: iso,
		})
	}
	return weeks
}

// WeekGrid places each pop-up as one bar spanning every week its
// [Date, EndDate] range overlaps, so a residency renders once across its
// full duration rather than once per week. Pop-ups that miss the axis
// entirely are omitted; input order is preserved.
func WeekGrid(popups []event.PopupEvent, weeks []Week, paletteSize int) []Bar {
	var bars []Bar
	for _, p := range popups {
		first, last := -1, -1
		for i, w := range weeks {
			if overlapsWeek(p, w) {
				if first == -1 {
					first = i
				}
				last = i
			}
		}
		if first == -1 {
			continue
		}

		row := len(bars)
		color := 0
		if paletteSize > 0 {
			color = row % paletteSize
		}
		bars = append(bars, Bar{
			Event:     p,
			Row:       row,
			FirstWeek: first,
			LastWeek:  last,
			Color:     color,
		})
	}
	return bars
}

// overlapsWeek treats both ranges as inclusive calendar days
func overlapsWeek(p event.PopupEvent, w Week) bool {
	return !p.EndDate.Before(w.Start) && !p.Date.After(w.End)
}

// startOfWeek returns the Monday midnight of t's week
func startOfWeek(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
