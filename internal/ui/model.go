package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"nscal/internal/config"
	"nscal/internal/event"
	"nscal/internal/schedule"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ViewMode int

const (
	ViewTimeline ViewMode = iota
	ViewPopups
	ViewAgenda
	ViewHelp
)

type Model struct {
	// Core components
	config  *config.Config
	source  event.Source
	matcher schedule.NameMatcher

	// Clock state: now is refreshed by the tick, never read per render
	now   time.Time
	today time.Time // local midnight

	// Snapshot state
	events   []event.Event
	popups   []event.PopupEvent
	statuses map[string]schedule.Status
	fetchErr error
	changes  <-chan event.ChangeEvent

	// View state
	mode     ViewMode
	prevMode ViewMode
	startDay time.Time // left edge of the timeline window
	zoomDays int
	filter   schedule.FilterState

	// UI state
	width     int
	height    int
	message   string
	messageID int // invalidates stale timeout messages

	// Styles
	styles Styles
}

type Styles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
	Live     lipgloss.Style
	Next     lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Border   lipgloss.Style
	Palette  []lipgloss.Style
}

func NewModel(cfg *config.Config, source event.Source, matcher schedule.NameMatcher) *Model {
	now := time.Now().In(cfg.Location())
	today := midnight(now)

	mode := ViewTimeline
	switch cfg.StartupView {
	case "popups":
		mode = ViewPopups
	case "agenda":
		mode = ViewAgenda
	}

	return &Model{
		config:   cfg,
		source:   source,
		matcher:  matcher,
		now:      now,
		today:    today,
		mode:     mode,
		startDay: today,
		zoomDays: cfg.ZoomDays,
		filter: schedule.FilterState{
			Range:       schedule.DateRange{Preset: schedule.RangeUpcoming},
			SortField:   schedule.SortDate,
			CustomOrder: cfg.CustomOrder,
		},
		statuses: map[string]schedule.Status{},
		styles:   StylesFromConfig(cfg.Colors),
	}
}

func DefaultStyles() Styles {
	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("220")).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true).
			Underline(true),
		Live: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Next: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
		Palette: []lipgloss.Style{
			lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		},
	}
}

// StylesFromConfig overlays configured color specs onto the defaults.
// A spec is a space-separated list of attributes ("bold", "underline",
// "reverse") and/or a terminal color.
func StylesFromConfig(colors map[string]string) Styles {
	s := DefaultStyles()
	for name, spec := range colors {
		style := styleFor(spec)
		switch name {
		case "normal":
			s.Normal = style
		case "selected":
			s.Selected = style
		case "header":
			s.Header = style
		case "live":
			s.Live = style
		case "next":
			s.Next = style
		case "help":
			s.Help = style
		}
	}
	return s
}

func styleFor(spec string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for _, part := range strings.Fields(spec) {
		switch part {
		case "bold":
			style = style.Bold(true)
		case "underline":
			style = style.Underline(true)
		case "reverse":
			style = style.Reverse(true)
		default:
			style = style.Foreground(lipgloss.Color(part))
		}
	}
	return style
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.loadCmd(),
		m.watchCmd(),
		m.tickCmd(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		// Refresh the clock and re-derive statuses; the snapshot itself
		// is not refetched on ticks
		m.now = time.Time(msg).In(m.config.Location())
		m.today = midnight(m.now)
		m.reclassify()
		return m, m.tickCmd()

	case snapshotMsg:
		m.fetchErr = msg.err
		if msg.err == nil {
			m.events = msg.events
			m.popups = msg.popups
			m.reclassify()
		}
		return m, nil

	case feedChangedMsg:
		// Latest state is authoritative; just refetch
		return m, tea.Batch(m.loadCmd(), m.watchCmd())

	case messageTimeoutMsg:
		// A newer message may have replaced the one this timeout was for
		if msg.id == m.messageID {
			m.message = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ViewPopups:
		return m.viewPopups()
	case ViewAgenda:
		return m.viewAgenda()
	case ViewHelp:
		return m.viewHelp()
	default:
		return m.viewTimeline()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		if m.mode == ViewHelp {
			m.mode = m.prevMode
		} else {
			m.prevMode = m.mode
			m.mode = ViewHelp
		}

	case "1":
		m.mode = ViewTimeline
	case "2":
		m.mode = ViewPopups
	case "3":
		m.mode = ViewAgenda
	case "tab":
		switch m.mode {
		case ViewTimeline:
			m.mode = ViewPopups
		case ViewPopups:
			m.mode = ViewAgenda
		default:
			m.mode = ViewTimeline
		}

	case "d":
		m.filter.Range.Preset = nextPreset(m.filter.Range.Preset)
		m.reclassify()
		return m, m.showMessage("Date range: " + m.filter.Range.Preset.String())

	case "t":
		m.filter.Types = nextTypeFilter(m.filter.Types)
		m.reclassify()
		if len(m.filter.Types) == 0 {
			return m, m.showMessage("Type: all")
		}
		return m, m.showMessage("Type: " + string(m.filter.Types[0]))

	case "v":
		if len(m.filter.Locations) == 0 {
			m.filter.Locations = []string{event.VirtualLocation}
			m.reclassify()
			return m, m.showMessage("Showing virtual events only")
		}
		m.filter.Locations = nil
		m.reclassify()
		return m, m.showMessage("Showing all locations")

	case "s":
		m.filter.SortField = (m.filter.SortField + 1) % 5
		return m, m.showMessage("Sort: " + m.filter.SortField.String())

	case "S":
		m.filter.Descending = !m.filter.Descending
		if m.filter.Descending {
			return m, m.showMessage("Sort: descending")
		}
		return m, m.showMessage("Sort: ascending")

	case "z":
		m.zoomDays = nextZoom(m.zoomDays)
		return m, m.showMessage(zoomLabel(m.zoomDays))

	case "l", "right":
		m.startDay = m.startDay.AddDate(0, 0, 1)
	case "h", "left":
		m.startDay = m.startDay.AddDate(0, 0, -1)
	case "L":
		m.startDay = m.startDay.AddDate(0, 0, 7)
	case "H":
		m.startDay = m.startDay.AddDate(0, 0, -7)
	case "o":
		m.startDay = m.today

	case "r":
		return m, m.loadCmd()
	}

	return m, nil
}

// visibleEvents runs the filter and sort pipeline over the snapshot
func (m *Model) visibleEvents() []event.Event {
	filtered := schedule.Filter(m.events, m.filter, m.matcher, m.now)
	return schedule.Sort(filtered, m.filter.SortField, m.filter.Descending, m.filter.CustomOrder)
}

// reclassify recomputes live/next statuses over the filtered scope
func (m *Model) reclassify() {
	m.statuses = schedule.Classify(schedule.Filter(m.events, m.filter, m.matcher, m.now), m.now)
}

func (m *Model) loadCmd() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		ctx := context.Background()
		events, err := source.FetchEvents(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		popups, err := source.FetchPopupEvents(ctx, "")
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{events: events, popups: popups}
	}
}

// watchCmd waits for the next feed change notification
func (m *Model) watchCmd() tea.Cmd {
	if m.changes == nil {
		ch, err := m.source.Watch()
		if err != nil || ch == nil {
			return nil
		}
		m.changes = ch
	}

	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return feedChangedMsg{}
	}
}

func (m *Model) tickCmd() tea.Cmd {
	if !m.config.AutoRefresh {
		return nil
	}
	return tea.Tick(m.config.RefreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// showMessage displays a transient status-line message and returns the
// command that expires it
func (m *Model) showMessage(msg string) tea.Cmd {
	m.message = msg
	m.messageID++
	id := m.messageID
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return messageTimeoutMsg{id: id}
	})
}

func nextPreset(p schedule.RangePreset) schedule.RangePreset {
	switch p {
	case schedule.RangeAll:
		return schedule.RangeToday
	case schedule.RangeToday:
		return schedule.RangeTomorrow
	case schedule.RangeTomorrow:
		return schedule.RangeWeek
	case schedule.RangeWeek:
		return schedule.RangeMonth
	case schedule.RangeMonth:
		return schedule.RangeUpcoming
	default:
		return schedule.RangeAll
	}
}

var typeCycle = []event.Type{
	event.TypePhysical,
	event.TypeOnline,
	event.TypePopup,
	event.TypeDecentralized,
	event.TypeHybrid,
}

func nextTypeFilter(current []event.Type) []event.Type {
	if len(current) == 0 {
		return []event.Type{typeCycle[0]}
	}
	for i, t := range typeCycle {
		if t == current[0] {
			if i == len(typeCycle)-1 {
				return nil
			}
			return []event.Type{typeCycle[i+1]}
		}
	}
	return nil
}

func nextZoom(days int) int {
	switch days {
	case 1:
		return 3
	case 3:
		return 7
	case 7:
		return 14
	case 14:
		return 28
	default:
		return 1
	}
}

func zoomLabel(days int) string {
	if days == 1 {
		return "Zoom: 1 day"
	}
	return "Zoom: " + strconv.Itoa(days) + " days"
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Message types
type tickMsg time.Time
type messageTimeoutMsg struct{ id int }
type feedChangedMsg struct{}
type snapshotMsg struct {
	events []event.Event
	popups []event.PopupEvent
	err    error
}
