package schedule

import (
	"time"

	"nscal/internal/event"
	"nscal/internal/timeparse"
)

// Placement positions one event inside an hour cell
type Placement struct {
	Event   event.Event
	Column  int
	Columns int     // total columns in this cell, local to the cell
	Starts  bool    // the event's window starts within this cell's hour
	Span    float64 // hours from the event's start to its clipped end
}

// Cell is one (day, hour) slot of the timeline holding at least one
// active event. Cells are ephemeral: rebuilt wholesale on every filter
// or zoom change, never mutated.
type Cell struct {
	Day    int // index into the window's day columns
	Hour   int
	Events []Placement
}

// HourGrid computes the packed timeline layout for a window of days
// starting at windowStart (a local midnight) and spanning days columns.
//
// Per day, each event's [start, start+duration) window comes from its
// absolute instants when present, otherwise from parsing its display
// range; windows are clipped at 24:00 (the hourly grid never bleeds into
// the next day). Columns are assigned greedy first-fit in input order so
// overlapping events sit side by side, and column counts are local to
// each hour cell: density in one hour does not shrink bars elsewhere.
// Hours with no active events produce no cell.
func HourGrid(events []event.Event, windowStart time.Time, days int) []Cell {
	var cells []Cell

	for day := 0; day < days; day++ {
		dayStart := windowStart.AddDate(0, 0, day)
		windows := dayWindows(events, dayStart)
		if len(windows) == 0 {
			continue
		}
		packColumns(windows)

		for hour := 0; hour < 24; hour++ {
			var placements []Placement
			maxColumn := 0
			for _, w := range windows {
				if w.end <= float64(hour) || w.start >= float64(hour+1) {
					continue
				}
				if w.column > maxColumn {
					maxColumn = w.column
				}
				placements = append(placements, Placement{
					Event:  w.ev,
					Column: w.column,
					Starts: int(w.start) == hour,
					Span:   w.end - w.start,
				})
			}
			if len(placements) == 0 {
				continue
			}
			for i := range placements {
				placements[i].Columns = maxColumn + 1
			}
			cells = append(cells, Cell{Day: day, Hour: hour, Events: placements})
		}
	}

	return cells
}

type hourWindow struct {
	ev     event.Event
	start  float64
	end    float64
	column int
}

// dayWindows resolves the events falling on dayStart's calendar day into
// numeric hour windows, deduplicated by ID
func dayWindows(events []event.Event, dayStart time.Time) []*hourWindow {
	var windows []*hourWindow
	seen := make(map[string]bool)

	for _, ev := range events {
		if !sameDay(ev.Date, dayStart) {
			continue
		}
		if seen[ev.ID] {
			continue
		}
		seen[ev.ID] = true

		slot := slotFor(ev, dayStart.Location())
		end := slot.StartHour + slot.DurationHours
		if end > 24 {
			end = 24
		}
		windows = append(windows, &hourWindow{ev: ev, start: slot.StartHour, end: end})
	}
	return windows
}

// packColumns assigns each window the lowest column not taken by an
// earlier overlapping window on the same day. Greedy first-fit; quadratic
// in concurrent events, which stay small in practice.
func packColumns(windows []*hourWindow) {
	for i, w := range windows {
		used := make(map[int]bool)
		for _, prev := range windows[:i] {
			if prev.end > w.start && prev.start < w.end {
				used[prev.column] = true
			}
		}
		column := 0
		for used[column] {
			column++
		}
		w.column = column
	}
}

// slotFor prefers the event's absolute instants for start/duration and
// falls back to the display-string parser for records without them.
func slotFor(ev event.Event, loc *time.Location) timeparse.Slot {
	if ev.StartAt != nil && ev.EndAt != nil {
		local := ev.StartAt.In(loc)
		duration := ev.EndAt.Sub(*ev.StartAt).Hours()
		if duration < 1 {
			duration = 1
		}
		return timeparse.Slot{
			StartHour:     float64(local.Hour()) + float64(local.Minute())/60,
			DurationHours: duration,
		}
	}
	return timeparse.Parse(ev.TimeText)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
