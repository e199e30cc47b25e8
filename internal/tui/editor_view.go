package tui

import (
	"strings"

	"itemedit/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// SetSize lays the form (and panel) out for a terminal of the given size.
// A zero width falls back to a 100-column layout.
func (e *Editor) SetSize(width, height int) {
	e.width = width
	e.height = height
	formW, panelW := e.layout()

	inputW := formW - 3
	e.titleInput.Width = inputW
	e.assigneeInput.Width = inputW
	e.dueInput.Width = inputW
	e.tagsInput.Width = inputW
	e.descInput.SetWidth(formW - 2)

	panelH := 0
	if height > 0 {
		panelH = height - 8
	}
	e.panel.SetSize(panelW, panelH)
}

func (e Editor) layout() (formW, panelW int) {
	avail := e.width - 6 // border + outer margin
	if e.width <= 0 {
		avail = 94
	}
	if !e.opts.ShowComments {
		return clampInt(avail, 30, 64), 0
	}
	panelW = clampInt(avail*2/5, 24, 44)
	formW = clampInt(avail-panelW-3, 30, 64)
	return formW, panelW
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (e Editor) View() string {
	if !e.open {
		return ""
	}
	formW, panelW := e.layout()
	body := e.renderForm(formW)
	bodyW := formW
	if e.opts.ShowComments {
		panel := e.panel.View()
		h := max(lipgloss.Height(body), lipgloss.Height(panel))
		sep := styleMuted().Render(strings.Repeat(glyphVRule()+"\n", h-1) + glyphVRule())
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			normalizePane(body, formW, h),
			" ", sep, " ",
			normalizePane(panel, panelW, h),
		)
		bodyW = formW + 3 + panelW
	}
	return renderModalBox(bodyW, e.opts.Title, body)
}

func (e Editor) renderForm(w int) string {
	var lines []string
	add := func(s ...string) { lines = append(lines, s...) }
	fieldErr := func(f model.Field) {
		if msg := renderFieldError(e.errors[f]); msg != "" {
			add(msg)
		}
	}

	add(renderFieldLabel("Title", true, e.focus == focusTitle))
	add(renderInputLine(w, e.titleInput.View(), e.errors.Has(model.FieldTitle)))
	fieldErr(model.FieldTitle)
	add("")

	add(renderFieldLabel("Description", true, e.focus == focusDescription))
	desc := e.descInput.View()
	if e.errors.Has(model.FieldDescription) {
		desc = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorError).
			Render(desc)
	}
	add(desc)
	fieldErr(model.FieldDescription)
	add("")

	add(renderFieldLabel("Assigned To", true, e.focus == focusAssignedTo))
	add(renderInputLine(w, e.assigneeInput.View(), e.errors.Has(model.FieldAssignedTo)))
	fieldErr(model.FieldAssignedTo)
	add("")

	add(renderFieldLabel("Due Date", false, e.focus == focusDueDate))
	add(renderInputLine(w, e.dueInput.View(), false))
	add("")

	add(renderFieldLabel("Priority", false, e.focus == focusPriority))
	add(renderPriority(e.data.Priority, e.focus == focusPriority))
	add("")

	add(renderFieldLabel("Tags", false, e.focus == focusTags))
	add(renderInputLine(w, e.tagsInput.View(), false))
	if len(e.data.Tags) > 0 {
		add(styleMuted().Render(renderTagChips(e.data.Tags)))
	}
	add("")

	add(renderCheckbox("Mark as Complete", e.data.Complete, e.focus == focusComplete))
	add("")

	saveLabel := "Save"
	if e.submitting {
		saveLabel = "Saving..."
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top,
		renderButton("Cancel", e.focus == focusCancel, false, false),
		" ",
		renderButton(saveLabel, e.focus == focusSave, e.submitting, true),
	)
	add(lipgloss.PlaceHorizontal(w, lipgloss.Right, controls))
	add("")
	add(styleMuted().Render("tab: next   ctrl+s: save   esc: close"))
	return strings.Join(lines, "\n")
}

func renderPriority(p model.Priority, focused bool) string {
	label := string(p)
	if label == "" {
		label = "none"
	}
	var color = colorMuted
	switch p {
	case model.PriorityLow:
		color = colorPriorityLow
	case model.PriorityMedium:
		color = colorPriorityMedium
	case model.PriorityHigh:
		color = colorPriorityHigh
	}
	val := lipgloss.NewStyle().Bold(true).Foreground(color).Render(label)
	if focused {
		return glyphPrev() + " " + val + " " + glyphNext()
	}
	return "  " + val
}

func renderTagChips(tags []string) string {
	chips := make([]string, 0, len(tags))
	for _, t := range tags {
		chips = append(chips, "#"+t)
	}
	return strings.Join(chips, " ")
}

func renderCheckbox(label string, checked, focused bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	if focused {
		st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	}
	return st.Render(box + " " + label)
}
