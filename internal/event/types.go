package event

import (
	"strings"
	"time"
)

// Type labels how an event is held.
type Type string

const (
	TypePhysical      Type = "Physical"
	TypeOnline        Type = "Online"
	TypePopup         Type = "Popup"
	TypeDecentralized Type = "Decentralized"
	TypeHybrid        Type = "Hybrid"
)

// VirtualLocation is the sentinel location value for online-only events.
const VirtualLocation = "Virtual"

// Event is a single listed gathering. Date and TimeText are display
// values derived from StartAt in the feed's timezone; StartAt and EndAt
// are the authoritative instants for live status and duration math.
type Event struct {
	ID           string
	Title        string
	Type         Type
	NetworkState string
	Location     string
	Country      string
	Tags         []string
	Date         time.Time // local calendar day at midnight
	TimeText     string    // display range, e.g. "6:30 PM – 9:00 PM"
	StartAt      *time.Time
	EndAt        *time.Time
}

// HasTag reports whether the event carries the given tag (case-insensitive).
func (e Event) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// PopupEvent is a multi-day residency or pop-up city shown on the
// week-granularity timeline. EndDate is inclusive.
type PopupEvent struct {
	Title        string
	Location     string
	NetworkState string
	URL          string
	Date         time.Time
	EndDate      time.Time
}
