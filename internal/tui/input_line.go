package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func renderInputLine(bodyW int, inputView string, invalid bool) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// Text inputs must always render as a single visual line. If the view ever contains
	// newlines (or overflows due to ANSI/cursor styling) it wraps and looks like a newline
	// was inserted while typing.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	edge := " "
	if invalid {
		edge = styleError().Render("▌")
	}
	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		edge+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the body width; terminate ANSI styling to prevent bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

// renderFieldLabel renders "Label *" for required fields.
func renderFieldLabel(label string, required bool, focused bool) string {
	st := styleLabel()
	if focused {
		st = st.Foreground(colorAccent)
	}
	if required {
		return st.Render(label) + styleError().Render(" *")
	}
	return st.Render(label)
}

func renderFieldError(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ""
	}
	return styleError().Render(msg)
}
