package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists every binding of the main screen. It implements
// help.KeyMap so the footer and the help popup stay in sync with it.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Filter      key.Binding
	ClearFilter key.Binding
	Commit      key.Binding
	Blur        key.Binding

	Preview key.Binding
	Open    key.Binding
	Info    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),

		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		ClearFilter: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear filter")),
		Commit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply now")),
		Blur:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave filter")),

		Preview: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "photo")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open record")),
		Info:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refetch")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is shown in the footer
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Preview, k.Open, k.Refresh, k.Help, k.Quit}
}

// FullHelp is shown in the help popup, one column per group
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Filter, k.ClearFilter, k.Commit, k.Blur},
		{k.Preview, k.Open, k.Info, k.Refresh, k.Help, k.Quit},
	}
}

// filterKeyMap is the footer while the filter input has focus
type filterKeyMap struct{ keyMap }

func (k filterKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Blur, k.ClearFilter}
}
