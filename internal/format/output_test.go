package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"itemedit/internal/model"

	"github.com/charmbracelet/x/ansi"
)

func sampleItems() []model.Item {
	ts := time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC)
	return []model.Item{{
		ID:         "item-1",
		Title:      "Write docs",
		AssignedTo: "John Doe",
		Priority:   model.PriorityHigh,
		Tags:       []string{"documentation", "urgent"},
		Comments:   []model.Comment{{ID: "c1", Author: "Sarah Wilson", Content: "ok", Timestamp: ts}},
	}}
}

func TestWrite_JSONIsStrict(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleItems(), "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got []model.Item
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("expected valid json: %v\n%s", err, buf.String())
	}
	if !strings.Contains(buf.String(), `"assignedTo":"John Doe"`) {
		t.Fatalf("expected camelCase keys; got %s", buf.String())
	}
}

func TestWrite_TextTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleItems(), "text", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := ansi.Strip(buf.String())
	for _, want := range []string{"ID", "Title", "item-1", "Write docs", "documentation, urgent", "high"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output; got:\n%s", want, out)
		}
	}
}

func TestWrite_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []model.Item{}, "text", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "No items found." {
		t.Fatalf("expected empty message; got %q", got)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
