package event

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// FileSource reads event and pop-up snapshots from one or more JSON feed
// files. Records are merged across files and deduplicated by ID, first
// file wins.
type FileSource struct {
	Files    []string
	Timezone *time.Location

	// Match compares network-state names for pop-up scoping. Nil falls
	// back to case-insensitive equality.
	Match func(a, b string) bool

	// Now overrides the wall clock used to decide which events count as
	// historical. Nil means time.Now.
	Now func() time.Time

	watcher *FileWatcher
}

// NewFileSource creates a source over the given feed files
func NewFileSource(files ...string) *FileSource {
	return &FileSource{
		Files:    files,
		Timezone: time.Local,
	}
}

// SetFiles replaces the feed file list
func (s *FileSource) SetFiles(files []string) {
	s.Files = files
}

// FetchEvents returns upcoming and currently running events. Events whose
// window closed before local midnight today are excluded.
func (s *FileSource) FetchEvents(ctx context.Context) ([]Event, error) {
	all, err := s.FetchAllEvents(ctx)
	if err != nil {
		return nil, err
	}

	clock := s.Now
	if clock == nil {
		clock = time.Now
	}
	now := clock().In(s.timezone())
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var events []Event
	for _, ev := range all {
		if ended(ev, midnight) {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// FetchAllEvents returns every event in the feeds, including history
func (s *FileSource) FetchAllEvents(ctx context.Context) ([]Event, error) {
	feeds, err := s.readFeeds(ctx)
	if err != nil {
		return nil, err
	}

	var events []Event
	seen := make(map[string]bool)
	for _, feed := range feeds {
		for _, rec := range feed.Events {
			ev, err := rec.ToEvent(s.timezone())
			if err != nil {
				// Malformed records are skipped, not fatal
				continue
			}
			if seen[ev.ID] {
				continue
			}
			seen[ev.ID] = true
			events = append(events, ev)
		}
	}
	return events, nil
}

// FetchPopupEvents returns pop-up events, optionally scoped to a network
// state or country
func (s *FileSource) FetchPopupEvents(ctx context.Context, scope string) ([]PopupEvent, error) {
	feeds, err := s.readFeeds(ctx)
	if err != nil {
		return nil, err
	}

	var popups []PopupEvent
	for _, feed := range feeds {
		for _, rec := range feed.Popups {
			p, err := rec.ToPopup(s.timezone())
			if err != nil {
				continue
			}
			if scope != "" && !s.inScope(p, scope) {
				continue
			}
			popups = append(popups, p)
		}
	}
	return popups, nil
}

// Watch starts watching the feed files for changes
func (s *FileSource) Watch() (<-chan ChangeEvent, error) {
	if s.watcher != nil {
		return s.watcher.Changes(), nil
	}

	watcher, err := NewFileWatcher()
	if err != nil {
		return nil, err
	}
	for _, file := range s.Files {
		if err := watcher.AddFile(file); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	s.watcher = watcher
	return watcher.Changes(), nil
}

// Close stops watching
func (s *FileSource) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

func (s *FileSource) readFeeds(ctx context.Context) ([]*Feed, error) {
	if len(s.Files) == 0 {
		return nil, fmt.Errorf("no feed files configured")
	}

	var feeds []*Feed
	for _, file := range s.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read feed %s: %w", file, err)
		}
		feed, err := ParseFeed(data)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", file, err)
		}
		feeds = append(feeds, feed)
	}
	return feeds, nil
}

func (s *FileSource) inScope(p PopupEvent, scope string) bool {
	match := s.Match
	if match == nil {
		match = strings.EqualFold
	}
	return match(p.NetworkState, scope) || strings.EqualFold(p.Location, scope)
}

func (s *FileSource) timezone() *time.Location {
	if s.Timezone != nil {
		return s.Timezone
	}
	return time.Local
}

// ended reports whether the event's window closed strictly before the
// given midnight. Events without instants fall back to their calendar day.
func ended(ev Event, midnight time.Time) bool {
	if ev.EndAt != nil {
		return ev.EndAt.Before(midnight)
	}
	return !ev.Date.Add(24 * time.Hour).After(midnight)
}
