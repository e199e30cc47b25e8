package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestApplyThemePreference(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("ITEMEDIT_TUI_DARKBG", "")
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(true) })

	applyThemePreference("light")
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected light background")
	}
	applyThemePreference("dark")
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected dark background")
	}

	t.Setenv("ITEMEDIT_TUI_DARKBG", "false")
	applyThemePreference("auto")
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected ITEMEDIT_TUI_DARKBG=false to select light")
	}

	t.Setenv("ITEMEDIT_TUI_DARKBG", "")
	t.Setenv("COLORFGBG", "0;15")
	applyThemePreference("")
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected COLORFGBG with bg 15 to select light")
	}
}
