package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"nscal/internal/event"
	"nscal/internal/timeparse"
)

// Export serializes events and pop-ups into a VCALENDAR document so a
// filtered listing can be subscribed to from a regular calendar client.
// Events without absolute instants get a window synthesized from their
// calendar day and display time range; pop-ups become all-day events
// spanning their full date range.
func Export(events []event.Event, popups []event.PopupEvent, loc *time.Location) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//nscal//events//EN")

	for _, ev := range events {
		ve := cal.AddEvent(uid(ev))
		ve.SetSummary(ev.Title)
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if desc := describe(ev); desc != "" {
			ve.SetDescription(desc)
		}

		start, end := window(ev, loc)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
	}

	for i, p := range popups {
		ve := cal.AddEvent(fmt.Sprintf("popup-%d-%s@nscal", i, p.Date.Format("20060102")))
		ve.SetSummary(p.Title)
		if p.Location != "" {
			ve.SetLocation(p.Location)
		}
		if p.URL != "" {
			ve.SetURL(p.URL)
		}
		ve.SetAllDayStartAt(p.Date)
		// DTEND is exclusive for all-day events; EndDate is inclusive
		ve.SetAllDayEndAt(p.EndDate.AddDate(0, 0, 1))
	}

	return cal.Serialize()
}

// window resolves an event's absolute span, preferring its instants and
// falling back to the parsed display range on its calendar day
func window(ev event.Event, loc *time.Location) (time.Time, time.Time) {
	if ev.StartAt != nil && ev.EndAt != nil {
		return *ev.StartAt, *ev.EndAt
	}

	slot := timeparse.Parse(ev.TimeText)
	day := time.Date(ev.Date.Year(), ev.Date.Month(), ev.Date.Day(), 0, 0, 0, 0, loc)
	start := day.Add(time.Duration(slot.StartHour * float64(time.Hour)))
	end := start.Add(time.Duration(slot.DurationHours * float64(time.Hour)))
	return start, end
}

func describe(ev event.Event) string {
	switch {
	case ev.NetworkState != "" && ev.Type != "":
		return fmt.Sprintf("%s (%s)", ev.NetworkState, ev.Type)
	case ev.NetworkState != "":
		return ev.NetworkState
	default:
		return string(ev.Type)
	}
}

func uid(ev event.Event) string {
	return fmt.Sprintf("%s@nscal", ev.ID)
}
