package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Divide key.Binding
	Start  key.Binding
	Back   key.Binding
	Exit   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Divide: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "divide"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", "s", " "),
			key.WithHelp("enter", "start"),
		),
		Back: key.NewBinding(
			key.WithKeys("enter", "b", "esc"),
			key.WithHelp("enter", "back"),
		),
		Exit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "exit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) titleHelp() []key.Binding {
	return []key.Binding{k.Start, k.Exit}
}

func (k keyMap) gameOverHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}
