package event

import (
	"context"
	"sync"
)

// CompositeSource combines multiple Sources into one. Events are
// deduplicated by ID across sources; a source that fails is skipped so a
// broken feed does not take down the others.
type CompositeSource struct {
	sources    []Source
	mu         sync.RWMutex
	changeChan chan ChangeEvent
	stopChans  []chan struct{}
}

// NewCompositeSource creates a composite over the given sources
func NewCompositeSource(sources ...Source) *CompositeSource {
	return &CompositeSource{
		sources:    sources,
		changeChan: make(chan ChangeEvent, 10),
	}
}

// AddSource adds a new source to the composite
func (c *CompositeSource) AddSource(source Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = append(c.sources, source)
}

// FetchEvents implements Source, combining events from all sources
func (c *CompositeSource) FetchEvents(ctx context.Context) ([]Event, error) {
	return c.fetch(ctx, func(s Source) ([]Event, error) {
		return s.FetchEvents(ctx)
	})
}

// FetchAllEvents implements Source, combining historical events too
func (c *CompositeSource) FetchAllEvents(ctx context.Context) ([]Event, error) {
	return c.fetch(ctx, func(s Source) ([]Event, error) {
		return s.FetchAllEvents(ctx)
	})
}

func (c *CompositeSource) fetch(ctx context.Context, get func(Source) ([]Event, error)) ([]Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var all []Event
	seen := make(map[string]bool)

	for _, source := range c.sources {
		events, err := get(source)
		if err != nil {
			continue
		}
		for _, ev := range events {
			if seen[ev.ID] {
				continue
			}
			seen[ev.ID] = true
			all = append(all, ev)
		}
	}
	return all, nil
}

// FetchPopupEvents implements Source, concatenating pop-ups from all sources
func (c *CompositeSource) FetchPopupEvents(ctx context.Context, scope string) ([]PopupEvent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var all []PopupEvent
	for _, source := range c.sources {
		popups, err := source.FetchPopupEvents(ctx, scope)
		if err != nil {
			continue
		}
		all = append(all, popups...)
	}
	return all, nil
}

// Watch implements Source, forwarding change events from every source
func (c *CompositeSource) Watch() (<-chan ChangeEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, source := range c.sources {
		sourceChan, err := source.Watch()
		if err != nil || sourceChan == nil {
			continue // Skip sources that don't support watching
		}

		stopChan := make(chan struct{})
		c.stopChans = append(c.stopChans, stopChan)

		go func(src <-chan ChangeEvent, stop chan struct{}) {
			for {
				select {
				case ev, ok := <-src:
					if !ok {
						return
					}
					select {
					case c.changeChan <- ev:
					default:
						// Channel full, drop event
					}
				case <-stop:
					return
				}
			}
		}(sourceChan, stopChan)
	}

	return c.changeChan, nil
}

// Close implements Source, stopping all sources
func (c *CompositeSource) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, stopChan := range c.stopChans {
		close(stopChan)
	}
	c.stopChans = nil

	for _, source := range c.sources {
		source.Close()
	}

	if c.changeChan != nil {
		close(c.changeChan)
		c.changeChan = nil
	}

	return nil
}
