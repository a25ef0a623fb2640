package event

import (
	"context"
	"time"
)

// Source is an interface for collaborators that can provide event and
// pop-up snapshots
type Source interface {
	// FetchEvents returns upcoming and currently running events
	FetchEvents(ctx context.Context) ([]Event, error)
	// FetchAllEvents additionally includes events that have already ended
	FetchAllEvents(ctx context.Context) ([]Event, error)
	// FetchPopupEvents returns pop-up/residency events, optionally scoped
	// to a network state or country. Empty scope means all.
	FetchPopupEvents(ctx context.Context, scope string) ([]PopupEvent, error)
	// Watch returns a channel that signals when the underlying feed changes
	// Returns nil if watching is not supported
	Watch() (<-chan ChangeEvent, error)
	// Close stops any watching and releases resources
	Close() error
}

// ChangeEvent represents a change to a feed file
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}
