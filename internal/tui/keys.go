package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings with built-in help text.
type KeyMap struct {
	Military    key.Binding
	Inbound     key.Binding
	HideGround  key.Binding
	Description key.Binding
	Sort        key.Binding
	Order       key.Binding
	Reset       key.Binding
	Theme       key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Military: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "military"),
		),
		Inbound: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "inbound"),
		),
		HideGround: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "hide ground"),
		),
		Description: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "aircraft type"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort field"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort order"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Military, k.Inbound, k.HideGround, k.Description, k.Sort, k.Order, k.Reset, k.Theme, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Military, k.Inbound, k.HideGround, k.Description},
		{k.Sort, k.Order, k.Reset},
		{k.Theme, k.Quit},
	}
}
