package model

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestValidate_ReportsExactlyTheBlankFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item Item
		want []Field
	}{
		{
			name: "all present",
			item: Item{Title: "T", Description: "D", AssignedTo: "A"},
			want: nil,
		},
		{
			name: "all blank",
			item: Item{},
			want: []Field{FieldTitle, FieldDescription, FieldAssignedTo},
		},
		{
			name: "whitespace counts as blank",
			item: Item{Title: "  \t", Description: "D", AssignedTo: "\n"},
			want: []Field{FieldTitle, FieldAssignedTo},
		},
		{
			name: "only description missing",
			item: Item{Title: "T", AssignedTo: "A"},
			want: []Field{FieldDescription},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := Validate(tt.item)
			if len(errs) != len(tt.want) {
				t.Fatalf("expected %d errors, got %#v", len(tt.want), errs)
			}
			for _, f := range tt.want {
				if !errs.Has(f) {
					t.Fatalf("expected error for %s, got %#v", f, errs)
				}
				if strings.TrimSpace(errs[f]) == "" {
					t.Fatalf("expected message for %s", f)
				}
			}
		})
	}
}

func TestValidate_MessagesFollowRequiredFields(t *testing.T) {
	t.Parallel()

	full := Item{Title: "T", Description: "D", AssignedTo: "A"}
	want := map[Field]string{
		FieldTitle:       "Title is required",
		FieldDescription: "Description is required",
		FieldAssignedTo:  "Assigned to is required",
	}
	if len(RequiredFields) != len(want) {
		t.Fatalf("expected %d required fields; got %v", len(want), RequiredFields)
	}
	for _, f := range RequiredFields {
		if full.FieldValue(f) == "" {
			t.Fatalf("expected a value for %s", f)
		}
		errs := Validate(Item{})
		if errs[f] != want[f] {
			t.Fatalf("expected %q for %s; got %q", want[f], f, errs[f])
		}
	}
	if v := full.FieldValue(Field("dueDate")); v != "" {
		t.Fatalf("expected empty value for a non-required field; got %q", v)
	}
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{in: "a, b ,, c", want: []string{"a", "b", "c"}},
		{in: "", want: nil},
		{in: " , ,", want: nil},
		{in: "x,x", want: []string{"x", "x"}},
		{in: "documentation, urgent", want: []string{"documentation", "urgent"}},
	}
	for _, tt := range tests {
		if got := ParseTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("ParseTags(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestInitials(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Mike Johnson":        "MJ",
		"Madonna":             "M",
		"sarah jane wilson":   "SJ",
		"  spaced   out  ":    "SO",
		"":                    "",
		"élodie durand":       "ÉD",
		"Current User":        "CU",
	}
	for in, want := range tests {
		if got := Initials(in); got != want {
			t.Fatalf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClone_DoesNotShareSlices(t *testing.T) {
	t.Parallel()

	orig := Item{
		ID:       "item-1",
		Tags:     []string{"a"},
		Comments: []Comment{{ID: "c1", Content: "hi"}},
	}
	cp := orig.Clone()
	cp.Tags[0] = "changed"
	cp.Comments = append(cp.Comments, Comment{ID: "c2"})
	cp.Comments[0].Content = "edited"

	if orig.Tags[0] != "a" {
		t.Fatalf("expected original tags untouched, got %#v", orig.Tags)
	}
	if len(orig.Comments) != 1 || orig.Comments[0].Content != "hi" {
		t.Fatalf("expected original comments untouched, got %#v", orig.Comments)
	}
}

func TestNewBlankItem(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	it := NewBlankItem(now)
	if it.ID != NewItemID(now) || !strings.HasPrefix(it.ID, "item-") {
		t.Fatalf("unexpected id %q", it.ID)
	}
	if it.Priority != PriorityMedium {
		t.Fatalf("expected default priority medium, got %q", it.Priority)
	}
	if it.Complete || it.Title != "" || it.Description != "" || it.AssignedTo != "" {
		t.Fatalf("expected blank fields, got %#v", it)
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	if p, ok := ParsePriority(" HIGH "); !ok || p != PriorityHigh {
		t.Fatalf("expected high, got %q ok=%v", p, ok)
	}
	if p, ok := ParsePriority(""); !ok || p != "" {
		t.Fatalf("expected unset, got %q ok=%v", p, ok)
	}
	if _, ok := ParsePriority("urgent"); ok {
		t.Fatalf("expected urgent to be rejected")
	}
}
