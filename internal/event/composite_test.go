package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeSourceMergesAndDeduplicates(t *testing.T) {
	first := NewFileSource(writeFeed(t, "a.json", `{
		"events": [
			{"id": "shared", "title": "From first", "date": "2027-06-10"},
			{"id": "only-a", "title": "A", "date": "2027-06-10"}
		]
	}`))
	second := NewFileSource(writeFeed(t, "b.json", `{
		"events": [
			{"id": "shared", "title": "From second", "date": "2027-06-10"},
			{"id": "only-b", "title": "B", "date": "2027-06-10"}
		],
		"popups": [
			{"title": "Residency", "date": "2027-03-01", "endDate": "2027-03-20"}
		]
	}`))

	composite := NewCompositeSource(first, second)
	defer composite.Close()

	events, err := composite.FetchAllEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "From first", events[0].Title)

	popups, err := composite.FetchPopupEvents(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, popups, 1)
}

func TestCompositeSourceSkipsFailingSource(t *testing.T) {
	broken := NewFileSource("/nonexistent/feed.json")
	working := NewFileSource(writeFeed(t, "ok.json", `{
		"events": [{"id": "x", "title": "X", "date": "2027-06-10"}]
	}`))

	composite := NewCompositeSource(broken, working)
	defer composite.Close()

	events, err := composite.FetchAllEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestCompositeSourceAddSource(t *testing.T) {
	composite := NewCompositeSource()
	defer composite.Close()

	events, err := composite.FetchAllEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)

	composite.AddSource(NewFileSource(writeFeed(t, "ok.json", `{
		"events": [{"id": "x", "title": "X", "date": "2027-06-10"}]
	}`)))

	events, err = composite.FetchAllEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
