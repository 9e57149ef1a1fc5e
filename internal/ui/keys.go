package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Refresh    key.Binding

	// Customer
	Search    key.Binding
	Join      key.Binding
	Leave     key.Binding
	Anonymize key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
	Confirm   key.Binding

	// Dashboard
	Notify      key.Binding
	Serve       key.Binding
	Remove      key.Binding
	ToggleAsset key.Binding
	CycleStatus key.Binding
	ApplyAll    key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel / dismiss"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Find my spot"),
		),
		Join: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "Join the line"),
		),
		Leave: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Leave the line"),
		),
		Anonymize: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Toggle name masking"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),

		Notify: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Notify customer"),
		),
		Serve: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Mark served"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove customer"),
		),
		ToggleAsset: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Queue/assets view"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Cycle asset status"),
		),
		ApplyAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Apply to category"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Join, k.Leave, k.Refresh, k.Anonymize},
		{k.NextField, k.PrevField, k.Confirm, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Notify, k.Serve, k.Remove, k.ToggleAsset, k.CycleStatus, k.ApplyAll},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
