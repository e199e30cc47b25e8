package tui

import (
	"strings"
	"testing"

	"itemedit/internal/model"
	"itemedit/internal/store"
)

func TestItemMarkdown_IncludesFieldsAndComments(t *testing.T) {
	it := store.SampleItem(testNow)
	md := ItemMarkdown(it, testNow)

	for _, want := range []string{
		"# [ ] Complete project documentation",
		"- **Assigned to:** John Doe",
		"- **Priority:** high",
		"- **Tags:** documentation, urgent",
		"## Comments (2)",
		"**Sarah Wilson** (SW) · 2h ago",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in markdown; got:\n%s", want, md)
		}
	}
	if strings.Index(md, "Sarah Wilson") > strings.Index(md, "Mike Johnson") {
		t.Fatalf("expected comments in stored order")
	}
}

func TestItemMarkdown_NoComments(t *testing.T) {
	it := model.NewBlankItem(testNow)
	it.Title = "T"
	if md := ItemMarkdown(it, testNow); !strings.Contains(md, "_No comments yet_") {
		t.Fatalf("expected empty comments marker; got:\n%s", md)
	}
}

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	if got := RenderMarkdown("  \n", 80); got != "" {
		t.Fatalf("expected empty output; got %q", got)
	}
}
