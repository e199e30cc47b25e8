package tui

import (
	"strings"
	"testing"

	"itemedit/internal/model"
	"itemedit/internal/store"

	"github.com/charmbracelet/x/ansi"
)

func TestItemRow_TitleAndDescription(t *testing.T) {
	it := store.SampleItem(testNow)
	row := itemRow{item: it}

	if got := row.Title(); got != "[ ] Complete project documentation" {
		t.Fatalf("unexpected title: %q", got)
	}
	desc := ansi.Strip(row.Description())
	for _, want := range []string{"John Doe", "high", "due 2024-08-01", "#documentation #urgent", "2 comments"} {
		if !strings.Contains(desc, want) {
			t.Fatalf("expected %q in %q", want, desc)
		}
	}
	if !strings.Contains(row.FilterValue(), "urgent") {
		t.Fatalf("expected tags in filter value; got %q", row.FilterValue())
	}

	blank := itemRow{item: model.Item{Complete: true}}
	if got := blank.Title(); got != "[x] (untitled)" {
		t.Fatalf("unexpected blank title: %q", got)
	}
}

func TestSetItemRows_KeepsSelectionByID(t *testing.T) {
	l := newItemsList()
	a := model.Item{ID: "item-a", Title: "A"}
	b := model.Item{ID: "item-b", Title: "B"}
	setItemRows(&l, []model.Item{a, b})
	l.Select(1)

	c := model.Item{ID: "item-c", Title: "C"}
	setItemRows(&l, []model.Item{c, a, b})
	row, ok := l.SelectedItem().(itemRow)
	if !ok || row.item.ID != "item-b" {
		t.Fatalf("expected item-b still selected; got %#v", l.SelectedItem())
	}
}
