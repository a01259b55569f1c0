package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the widget key bindings
type keyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Search    key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Select    key.Binding
	Apply     key.Binding
	Reset     key.Binding
	Seen      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "select image"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a", "ctrl+s"),
			key.WithHelp("a", "apply color"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reset"),
		),
		Seen: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "images already shown"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Search, k.Select, k.Apply, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Search},
		{k.Up, k.Down, k.Left, k.Right, k.Select},
		{k.Apply, k.Reset, k.Seen, k.Help, k.Quit},
	}
}
