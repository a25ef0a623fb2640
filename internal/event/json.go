package event

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// Feed is the on-disk JSON document exported from the listing site's
// database: one object holding the event and pop-up records.
type Feed struct {
	Events []EventRecord `json:"events"`
	Popups []PopupRecord `json:"popups,omitempty"`
}

// EventRecord is a single raw event entry in the feed
type EventRecord struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	NetworkState string   `json:"networkState"`
	Location     string   `json:"location"`
	Country      string   `json:"country"`
	Tags         []string `json:"tags,omitempty"`
	Date         string   `json:"date"`               // YYYY-MM-DD
	Time         string   `json:"time,omitempty"`     // display range
	StartAt      string   `json:"start_at,omitempty"` // RFC 3339
	EndAt        string   `json:"end_at,omitempty"`
}

// PopupRecord is a single raw pop-up/residency entry in the feed
type PopupRecord struct {
	Title        string `json:"title"`
	Location     string `json:"location"`
	NetworkState string `json:"networkState"`
	URL          string `json:"url,omitempty"`
	Date         string `json:"date"`
	EndDate      string `json:"endDate"`
}

// ParseFeed parses a JSON feed document
func ParseFeed(data []byte) (*Feed, error) {
	var feed Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse event feed: %w", err)
	}
	return &feed, nil
}

// ToEvent converts a raw record into an Event. Records with an unusable
// date or an inverted start/end window are rejected; display-only fields
// pass through untouched.
func (r EventRecord) ToEvent(timezone *time.Location) (Event, error) {
	date, err := time.ParseInLocation("2006-01-02", r.Date, timezone)
	if err != nil {
		return Event{}, fmt.Errorf("bad event date %q: %w", r.Date, err)
	}

	ev := Event{
		ID:           r.ID,
		Title:        strings.TrimSpace(r.Title),
		Type:         Type(r.Type),
		NetworkState: strings.TrimSpace(r.NetworkState),
		Location:     strings.TrimSpace(r.Location),
		Country:      strings.TrimSpace(r.Country),
		Tags:         r.Tags,
		Date:         date,
		TimeText:     strings.TrimSpace(r.Time),
	}

	if r.StartAt != "" {
		start, err := time.Parse(time.RFC3339, r.StartAt)
		if err != nil {
			return Event{}, fmt.Errorf("bad start_at %q: %w", r.StartAt, err)
		}
		ev.StartAt = &start
	}
	if r.EndAt != "" {
		end, err := time.Parse(time.RFC3339, r.EndAt)
		if err != nil {
			return Event{}, fmt.Errorf("bad end_at %q: %w", r.EndAt, err)
		}
		ev.EndAt = &end
	}
	if ev.StartAt != nil && ev.EndAt != nil && ev.EndAt.Before(*ev.StartAt) {
		return Event{}, fmt.Errorf("event %q ends before it starts", r.Title)
	}

	if ev.ID == "" {
		ev.ID = generateEventID(ev)
	}
	return ev, nil
}

// ToPopup converts a raw record into a PopupEvent. EndDate is inclusive
// and must not precede Date.
func (r PopupRecord) ToPopup(timezone *time.Location) (PopupEvent, error) {
	date, err := time.ParseInLocation("2006-01-02", r.Date, timezone)
	if err != nil {
		return PopupEvent{}, fmt.Errorf("bad popup date %q: %w", r.Date, err)
	}
	endDate, err := time.ParseInLocation("2006-01-02", r.EndDate, timezone)
	if err != nil {
		return PopupEvent{}, fmt.Errorf("bad popup endDate %q: %w", r.EndDate, err)
	}
	if endDate.Before(date) {
		return PopupEvent{}, fmt.Errorf("popup %q ends before it starts", r.Title)
	}

	return PopupEvent{
		Title:        strings.TrimSpace(r.Title),
		Location:     strings.TrimSpace(r.Location),
		NetworkState: strings.TrimSpace(r.NetworkState),
		URL:          r.URL,
		Date:         date,
		EndDate:      endDate,
	}, nil
}

func generateEventID(ev Event) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s-%s", ev.Date.Format("2006-01-02"), ev.Title)
	return fmt.Sprintf("evt-%d", h.Sum32())
}
