package terminal

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the terminal host.
type KeyMap struct {
	Grow   key.Binding
	Shrink key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grow, k.Shrink, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Grow, k.Shrink},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Grow: key.NewBinding(
			key.WithKeys("+", "=", "up"),
			key.WithHelp("+/up", "grow x2"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-", "_", "down"),
			key.WithHelp("-/down", "shrink /2"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}
