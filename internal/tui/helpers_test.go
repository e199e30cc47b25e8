package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// drain runs cmd synchronously and flattens batches. Only use it on commands that
// resolve on their own; a cursor blink waits one blink interval. Never feed its
// results back into Update in a loop.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
