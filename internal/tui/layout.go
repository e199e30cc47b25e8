package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall. This keeps side-by-side rendering stable with lipgloss.JoinHorizontal.
// A height of 0 keeps the line count.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// renderModalBox draws a bordered modal with a header bar. bodyW is the inner width.
func renderModalBox(bodyW int, title string, body string) string {
	if bodyW < 20 {
		bodyW = 20
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSurfaceFg).
			Background(colorControlBg).
			Width(bodyW-2).
			Render(" "+strings.TrimSpace(title)),
		lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorControlBg).
			Width(2).
			Render(glyphClose()),
	)
	box := lipgloss.NewStyle().
		Border(glyphBorder()).
		BorderForeground(colorBorder).
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Width(bodyW)
	return box.Render(header + "\n\n" + normalizePane(body, bodyW, 0))
}

// renderButton draws a footer control. Disabled buttons render muted and never highlight.
func renderButton(label string, focused, disabled, primary bool) string {
	st := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	switch {
	case disabled:
		st = faintIfDark(st.Foreground(colorMuted))
	case focused:
		st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	case primary:
		st = st.Foreground(colorAccentFg).Background(colorAccent)
	}
	return st.Render(label)
}
