package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Slot is a start hour and duration on a single day's 24-hour axis.
type Slot struct {
	StartHour     float64 // [0, 24)
	DurationHours float64 // (0, 24]
}

// Fallback window used when a display range cannot be parsed.
var fallbackSlot = Slot{StartHour: 9, DurationHours: 2}

const minDurationHours = 1.0

// Display ranges look like "6:30 PM – 9:00 PM"; minutes and meridiem are
// optional and the separator may be an en dash, em dash, or hyphen.
var rangeRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*[–—-]\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

// Parse resolves a free-text display range into a Slot. A range whose end
// precedes its start crosses midnight. Malformed input yields the 9 AM
// two-hour fallback; Parse never fails.
func Parse(input string) Slot {
	m := rangeRe.FindStringSubmatch(input)
	if m == nil {
		return fallbackSlot
	}

	start := clockHour(m[1], m[2], m[3])
	end := clockHour(m[4], m[5], m[6])

	duration := end - start
	if duration < 0 {
		duration += 24 // crosses midnight
	}
	if duration < minDurationHours {
		duration = minDurationHours
	}

	return Slot{StartHour: start, DurationHours: duration}
}

func clockHour(hourStr, minStr, meridiem string) float64 {
	hour, _ := strconv.Atoi(hourStr)
	minute := 0
	if minStr != "" {
		minute, _ = strconv.Atoi(minStr)
	}

	switch strings.ToLower(meridiem) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour >= 24 {
		hour -= 24
	}

	return float64(hour) + float64(minute)/60
}

// ParseDay resolves a day expression into a local midnight. It accepts
// relative forms ("today", "tomorrow", "in 3 days", "next friday") and
// absolute dates ("2025-02-10", "3/14", "Mar 14, 2025").
func ParseDay(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty day expression")
	}

	if date, ok := parseRelativeDay(input, now); ok {
		return date, nil
	}
	if date, ok := parseAbsoluteDay(input, now); ok {
		return date, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized day expression: %q", input)
}

var (
	weekdayRe = regexp.MustCompile(`^(next|this)\s+(mon|monday|tue|tuesday|wed|wednesday|thu|thursday|fri|friday|sat|saturday|sun|sunday)$`)
	inRe      = regexp.MustCompile(`^in\s+(\d+)\s+(day|days|week|weeks|month|months)$`)
)

func parseRelativeDay(input string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(input)
	today := midnight(now)

	switch lower {
	case "today":
		return today, true
	case "tomorrow", "tmrw":
		return today.AddDate(0, 0, 1), true
	case "yesterday":
		return today.AddDate(0, 0, -1), true
	}

	if matches := weekdayRe.FindStringSubmatch(lower); matches != nil {
		isNext := matches[1] == "next"
		return nextWeekday(today, parseWeekday(matches[2]), isNext), true
	}

	if matches := inRe.FindStringSubmatch(lower); matches != nil {
		n, _ := strconv.Atoi(matches[1])
		switch {
		case strings.HasPrefix(matches[2], "day"):
			return today.AddDate(0, 0, n), true
		case strings.HasPrefix(matches[2], "week"):
			return today.AddDate(0, 0, n*7), true
		default:
			return today.AddDate(0, n, 0), true
		}
	}

	return time.Time{}, false
}

var (
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	shortDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})(?:[/-](\d{4}))?$`)
	monthNameRe = regexp.MustCompile(`^(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|september|oct|october|nov|november|dec|december)\s+(\d{1,2})(?:,?\s+(\d{4}))?$`)
)

func parseAbsoluteDay(input string, now time.Time) (time.Time, bool) {
	loc := now.Location()

	if matches := isoDateRe.FindStringSubmatch(input); matches != nil {
		year, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		day, _ := strconv.Atoi(matches[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
	}

	if matches := shortDateRe.FindStringSubmatch(input); matches != nil {
		month, _ := strconv.Atoi(matches[1])
		day, _ := strconv.Atoi(matches[2])
		year := now.Year()
		if matches[3] != "" {
			year, _ = strconv.Atoi(matches[3])
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
	}

	if matches := monthNameRe.FindStringSubmatch(strings.ToLower(input)); matches != nil {
		month := parseMonth(matches[1])
		day, _ := strconv.Atoi(matches[2])
		year := now.Year()
		if matches[3] != "" {
			year, _ = strconv.Atoi(matches[3])
		}
		return time.Date(year, month, day, 0, 0, 0, 0, loc), true
	}

	return time.Time{}, false
}

func parseWeekday(s string) time.Weekday {
	switch s[:3] {
	case "sun":
		return time.Sunday
	case "mon":
		return time.Monday
	case "tue":
		return time.Tuesday
	case "wed":
		return time.Wednesday
	case "thu":
		return time.Thursday
	case "fri":
		return time.Friday
	default:
		return time.Saturday
	}
}

func parseMonth(s string) time.Month {
	months := map[string]time.Month{
		"jan": time.January, "feb": time.February, "mar": time.March,
		"apr": time.April, "may": time.May, "jun": time.June,
		"jul": time.July, "aug": time.August, "sep": time.September,
		"oct": time.October, "nov": time.November, "dec": time.December,
	}
	return months[s[:3]]
}

func nextWeekday(today time.Time, target time.Weekday, skipThisWeek bool) time.Time {
	daysUntil := int(target - today.Weekday())
	if daysUntil <= 0 || skipThisWeek {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
