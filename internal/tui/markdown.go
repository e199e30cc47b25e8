package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"itemedit/internal/model"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Cache renderers by wrap width + style. WithAutoStyle can trigger terminal background
	// queries that block on some terminals, so we pick the style ourselves.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// RenderMarkdown renders md for a terminal of the given width. On renderer errors the
// source is returned unchanged.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := "dark"
	if !lipgloss.HasDarkBackground() {
		style = "light"
	}
	key := fmt.Sprintf("%s:%d", style, width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// ItemMarkdown is the document printed by `itemedit items show`.
func ItemMarkdown(it model.Item, now time.Time) string {
	var b strings.Builder
	check := " "
	if it.Complete {
		check = "x"
	}
	fmt.Fprintf(&b, "# [%s] %s\n\n", check, strings.TrimSpace(it.Title))
	fmt.Fprintf(&b, "- **ID:** `%s`\n", it.ID)
	fmt.Fprintf(&b, "- **Assigned to:** %s\n", strings.TrimSpace(it.AssignedTo))
	if it.Priority != "" {
		fmt.Fprintf(&b, "- **Priority:** %s\n", it.Priority)
	}
	if strings.TrimSpace(it.DueDate) != "" {
		fmt.Fprintf(&b, "- **Due:** %s\n", strings.TrimSpace(it.DueDate))
	}
	if len(it.Tags) > 0 {
		fmt.Fprintf(&b, "- **Tags:** %s\n", model.JoinTags(it.Tags))
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(it.Description))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "## Comments (%d)\n\n", len(it.Comments))
	if len(it.Comments) == 0 {
		b.WriteString("_No comments yet_\n")
	}
	for _, c := range it.Comments {
		fmt.Fprintf(&b, "**%s** (%s) · %s\n\n", c.Author, model.Initials(c.Author), formatRelativeTime(c.Timestamp, now))
		for _, ln := range strings.Split(strings.TrimSpace(c.Content), "\n") {
			fmt.Fprintf(&b, "> %s\n", ln)
		}
		b.WriteString("\n")
	}
	return b.String()
}
