package tui

import (
	"fmt"
	"strings"

	"itemedit/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type itemRow struct {
	item model.Item
}

func (i itemRow) FilterValue() string {
	return i.item.Title + " " + i.item.AssignedTo + " " + strings.Join(i.item.Tags, " ")
}

func (i itemRow) Title() string {
	check := "[ ]"
	if i.item.Complete {
		check = "[x]"
	}
	title := strings.TrimSpace(i.item.Title)
	if title == "" {
		title = "(untitled)"
	}
	return check + " " + title
}

func (i itemRow) Description() string {
	parts := []string{emptyAsDash(i.item.AssignedTo)}
	if i.item.Priority != "" {
		parts = append(parts, string(i.item.Priority))
	}
	if d := strings.TrimSpace(i.item.DueDate); d != "" {
		parts = append(parts, "due "+d)
	}
	if len(i.item.Tags) > 0 {
		parts = append(parts, renderTagChips(i.item.Tags))
	}
	if n := len(i.item.Comments); n > 0 {
		parts = append(parts, fmt.Sprintf("%d comment%s", n, plural(n)))
	}
	return strings.Join(parts, " "+glyphDot()+" ")
}

func newItemsList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 40, 10)
	l.Title = "Items"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	return l
}

// setItemRows replaces the rows, keeping the selection on the same item id when possible.
func setItemRows(l *list.Model, items []model.Item) {
	curID := ""
	if row, ok := l.SelectedItem().(itemRow); ok {
		curID = row.item.ID
	}
	rows := make([]list.Item, 0, len(items))
	sel := 0
	for i, it := range items {
		rows = append(rows, itemRow{item: it})
		if it.ID == curID {
			sel = i
		}
	}
	l.SetItems(rows)
	if len(rows) > 0 {
		l.Select(sel)
	}
}

func selectItemID(l *list.Model, id string) {
	if id == "" {
		return
	}
	for i, row := range l.Items() {
		if r, ok := row.(itemRow); ok && r.item.ID == id {
			l.Select(i)
			return
		}
	}
}

func emptyAsDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
