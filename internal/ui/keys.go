package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Search  key.Binding
	History key.Binding
	Older   key.Binding
	Clear   key.Binding
	Follow  key.Binding
	Live    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Older: key.NewBinding(
			key.WithKeys("u", "pgup"),
			key.WithHelp("u", "older page"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow"),
		),
		Live: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "live view"),
		),
	}
}
