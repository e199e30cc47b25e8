package tui

import "github.com/charmbracelet/bubbles/key"

type editorKeyMap struct {
	Next         key.Binding
	Prev         key.Binding
	Submit       key.Binding
	Close        key.Binding
	Activate     key.Binding
	Toggle       key.Binding
	PriorityNext key.Binding
	PriorityPrev key.Binding
}

var editorKeys = editorKeyMap{
	Next:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:         key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	Submit:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Close:        key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "close")),
	Activate:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Toggle:       key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
	PriorityNext: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "raise")),
	PriorityPrev: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "lower")),
}

type panelKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Activate key.Binding
}

var panelKeys = panelKeyMap{
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
	Submit:   key.NewBinding(key.WithKeys("alt+enter"), key.WithHelp("alt+enter", "add comment")),
	Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
}

type appKeyMap struct {
	Open   key.Binding
	New    key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var appKeys = appKeyMap{
	Open:   key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
	New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new item")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
