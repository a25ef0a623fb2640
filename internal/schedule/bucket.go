package schedule

import (
	"math"
	"time"

	"nscal/internal/event"
)

// Bucket labels a group of events by how soon their day arrives
type Bucket string

const (
	BucketToday    Bucket = "Today"
	BucketTomorrow Bucket = "Tomorrow"
	BucketThisWeek Bucket = "This Week"
	BucketLater    Bucket = "Later"
)

// BucketGroup holds a bucket label and its events in input order
type BucketGroup struct {
	Bucket Bucket
	Events []event.Event
}

// BucketFor assigns a calendar day to exactly one display bucket
// relative to todayMidnight (local midnight at evaluation time). This
// Week covers days 2 through 7 inclusive. The event's time of day plays
// no part.
func BucketFor(date, todayMidnight time.Time) Bucket {
	days := daysBetween(todayMidnight, date)
	switch {
	case days == 0:
		return BucketToday
	case days == 1:
		return BucketTomorrow
	case days >= 2 && days <= 7:
		return BucketThisWeek
	default:
		return BucketLater
	}
}

// GroupByBucket splits events into display buckets, returning only
// non-empty groups in display order. Events keep their input order
// within each group, so callers sort first.
func GroupByBucket(events []event.Event, todayMidnight time.Time) []BucketGroup {
	order := []Bucket{BucketToday, BucketTomorrow, BucketThisWeek, BucketLater}
	buckets := make(map[Bucket][]event.Event, len(order))

	for _, ev := range events {
		b := BucketFor(ev.Date, todayMidnight)
		buckets[b] = append(buckets[b], ev)
	}

	var groups []BucketGroup
	for _, b := range order {
		if evs := buckets[b]; len(evs) > 0 {
			groups = append(groups, BucketGroup{Bucket: b, Events: evs})
		}
	}
	return groups
}

// daysBetween counts calendar days from a to b, ignoring time of day.
// The quotient is rounded, not truncated: a span crossing a DST change
// is 23 or 25 hours per day off a whole multiple of 24.
func daysBetween(a, b time.Time) int {
	am := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	bm := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(math.Round(bm.Sub(am).Hours() / 24))
}
