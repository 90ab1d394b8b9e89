package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"jetdash/internal/scheduler"
	"jetdash/internal/store"
	"jetdash/internal/view"
)

const refreshInterval = time.Second

// TickMsg triggers a re-read of the store
type TickMsg time.Time

// CountdownMsg carries the countdown text emitted by the poll countdown
type CountdownMsg string

// Model is the terminal dashboard. It reads the shared store on every tick and
// keeps its own filter and sort state.
type Model struct {
	store     *store.Store
	countdown *scheduler.Countdown

	state     view.State
	snap      store.Snapshot
	countText string
	dark      bool

	keys  KeyMap
	help  help.Model
	width int
}

func NewModel(st *store.Store, countdown *scheduler.Countdown, initial view.State) *Model {
	return &Model{
		store:     st,
		countdown: countdown,
		state:     initial,
		snap:      st.Snapshot(),
		countText: countdown.Display(),
		dark:      true,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		width:     80,
	}
}

// State is the current filter and sort state
func (m *Model) State() view.State {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case TickMsg:
		m.snap = m.store.Snapshot()
		m.countText = m.countdown.Display()
		return m, tick()

	case CountdownMsg:
		m.countText = string(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var action view.Action

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Military):
		action = view.SetMilitary(!m.state.Filter.Military)
	case key.Matches(msg, m.keys.Inbound):
		action = view.SetInbound(!m.state.Filter.Inbound)
	case key.Matches(msg, m.keys.HideGround):
		action = view.SetHideGround(!m.state.Filter.HideGround)
	case key.Matches(msg, m.keys.Description):
		action = view.CycleDescription(m.snap.Descriptions)
	case key.Matches(msg, m.keys.Sort):
		action = view.CycleSortField()
	case key.Matches(msg, m.keys.Order):
		action = view.ToggleSortOrder()
	case key.Matches(msg, m.keys.Reset):
		action = view.ResetFilters()
	case key.Matches(msg, m.keys.Theme):
		m.dark = !m.dark
		return m, nil
	default:
		return m, nil
	}

	m.state = m.state.Apply(action)
	return m, nil
}

// Run starts the terminal dashboard and blocks until the user quits or ctx is
// cancelled. Countdown ticks are forwarded into the program.
func Run(ctx context.Context, st *store.Store, countdown *scheduler.Countdown, initial view.State) error {
	p := tea.NewProgram(NewModel(st, countdown, initial), tea.WithAltScreen(), tea.WithContext(ctx))
	countdown.OnTick(func(display string) {
		p.Send(CountdownMsg(display))
	})

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
