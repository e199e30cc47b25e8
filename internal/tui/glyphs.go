package tui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Some terminal fonts render box-drawing and symbol glyphs badly, so every UI affordance
// has an ASCII fallback selected with ITEMEDIT_TUI_GLYPHS=ascii.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("ITEMEDIT_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphVRule() string     { return pick("│", "|") }
func glyphHRule() string     { return pick("─", "-") }
func glyphDot() string       { return pick("·", "-") }
func glyphEllipsis() string  { return pick("…", "...") }
func glyphClose() string     { return pick("×", "x") }
func glyphPrev() string      { return pick("‹", "<") }
func glyphNext() string      { return pick("›", ">") }
func glyphMoreAbove() string { return pick("↑", "^") }

// glyphNoComments is the empty-state icon of the comment panel.
func glyphNoComments() string { return pick("💬", "( )") }

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

func glyphBorder() lipgloss.Border {
	if glyphs() == glyphSetASCII {
		return asciiBorder
	}
	return lipgloss.RoundedBorder()
}
