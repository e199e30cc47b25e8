package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestApplyGlyphPreference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	t.Setenv("ITEMEDIT_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	if glyphs() != glyphSetASCII {
		t.Fatalf("expected ascii glyphs")
	}

	t.Setenv("ITEMEDIT_TUI_GLYPHS", "nonsense")
	applyGlyphPreference()
	if glyphs() != glyphSetASCII {
		t.Fatalf("expected unknown value to be ignored")
	}

	t.Setenv("ITEMEDIT_TUI_GLYPHS", "")
	applyGlyphPreference()
	if glyphs() != glyphSetUnicode {
		t.Fatalf("expected unicode default")
	}
}

func TestASCIIGlyphs_EditorView(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	e := NewEditor(EditorOptions{ShowComments: true})
	e.Open(nil)
	e.setFocus(focusPriority)

	v := ansi.Strip(e.View())
	for _, bad := range []string{"│", "─", "‹", "💬"} {
		if strings.Contains(v, bad) {
			t.Fatalf("expected no %q with ascii glyphs; got:\n%s", bad, v)
		}
	}
	if !strings.Contains(v, "< medium >") {
		t.Fatalf("expected ascii priority arrows; got:\n%s", v)
	}
}
