package tui

import (
	"itemedit/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.SetSize(msg.Width, msg.Height)
		return e, nil
	case saveDoneMsg:
		e.handleSaveDone(msg)
		return e, nil
	case commentHookDoneMsg:
		e.handleCommentHookDone(msg)
		return e, nil
	case AddCommentMsg:
		return e, e.AddComment(msg.Text)
	case tea.KeyMsg:
		if !e.open {
			return e, nil
		}
		return e.updateKey(msg)
	}

	// Spinner ticks, relay timers and cursor blinks.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	e.panel, cmd = e.panel.Update(msg)
	cmds = append(cmds, cmd)
	if e.open {
		cmds = append(cmds, e.updateFocusedInput(msg))
	}
	return e, tea.Batch(cmds...)
}

func (e Editor) updateKey(msg tea.KeyMsg) (Editor, tea.Cmd) {
	switch {
	case key.Matches(msg, editorKeys.Close):
		e.Close()
		return e, nil
	case key.Matches(msg, editorKeys.Submit):
		return e, e.Submit()
	case key.Matches(msg, editorKeys.Next):
		return e, e.setFocus(e.nextFocus(1))
	case key.Matches(msg, editorKeys.Prev):
		return e, e.setFocus(e.nextFocus(-1))
	}

	switch e.focus {
	case focusTitle, focusAssignedTo, focusDueDate, focusTags:
		// Enter in a single-line input submits the form.
		if key.Matches(msg, editorKeys.Activate) {
			return e, e.Submit()
		}
		if e.submitting {
			return e, nil
		}
		return e, e.updateFocusedInput(msg)

	case focusDescription:
		if e.submitting {
			return e, nil
		}
		return e, e.updateFocusedInput(msg)

	case focusPriority:
		if e.submitting {
			return e, nil
		}
		switch {
		case key.Matches(msg, editorKeys.PriorityNext):
			e.data.Priority = cyclePriority(e.data.Priority, 1)
		case key.Matches(msg, editorKeys.PriorityPrev):
			e.data.Priority = cyclePriority(e.data.Priority, -1)
		}
		return e, nil

	case focusComplete:
		if e.submitting {
			return e, nil
		}
		if key.Matches(msg, editorKeys.Toggle) || key.Matches(msg, editorKeys.Activate) {
			e.data.Complete = !e.data.Complete
		}
		return e, nil

	case focusSave:
		if key.Matches(msg, editorKeys.Activate) {
			return e, e.Submit()
		}
		return e, nil

	case focusCancel:
		if key.Matches(msg, editorKeys.Activate) {
			e.Close()
		}
		return e, nil

	case focusCommentDraft, focusCommentAdd, focusCommentClear:
		var cmd tea.Cmd
		e.panel, cmd = e.panel.Update(msg)
		return e, cmd
	}
	return e, nil
}

// updateFocusedInput forwards msg to the focused text control and mirrors any change
// into the working copy.
func (e *Editor) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch e.focus {
	case focusTitle:
		before := e.titleInput.Value()
		e.titleInput, cmd = e.titleInput.Update(msg)
		if v := e.titleInput.Value(); v != before {
			e.updateField(model.FieldTitle, v)
		}
	case focusDescription:
		before := e.descInput.Value()
		e.descInput, cmd = e.descInput.Update(msg)
		if v := e.descInput.Value(); v != before {
			e.updateField(model.FieldDescription, v)
		}
	case focusAssignedTo:
		before := e.assigneeInput.Value()
		e.assigneeInput, cmd = e.assigneeInput.Update(msg)
		if v := e.assigneeInput.Value(); v != before {
			e.updateField(model.FieldAssignedTo, v)
		}
	case focusDueDate:
		before := e.dueInput.Value()
		e.dueInput, cmd = e.dueInput.Update(msg)
		if v := e.dueInput.Value(); v != before {
			e.data.DueDate = v
		}
	case focusTags:
		before := e.tagsInput.Value()
		e.tagsInput, cmd = e.tagsInput.Update(msg)
		if v := e.tagsInput.Value(); v != before {
			e.data.Tags = model.ParseTags(v)
		}
	}
	return cmd
}

func (e Editor) focusOrder() []editorFocus {
	order := []editorFocus{
		focusTitle,
		focusDescription,
		focusAssignedTo,
		focusDueDate,
		focusPriority,
		focusTags,
		focusComplete,
		focusSave,
		focusCancel,
	}
	if e.opts.ShowComments {
		order = append(order, focusCommentDraft, focusCommentAdd, focusCommentClear)
	}
	return order
}

func (e Editor) nextFocus(dir int) editorFocus {
	order := e.focusOrder()
	idx := 0
	for i, f := range order {
		if f == e.focus {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(order)) % len(order)
	return order[idx]
}

func (e *Editor) setFocus(f editorFocus) tea.Cmd {
	e.blurAll()
	e.focus = f
	switch f {
	case focusTitle:
		return e.titleInput.Focus()
	case focusDescription:
		return e.descInput.Focus()
	case focusAssignedTo:
		return e.assigneeInput.Focus()
	case focusDueDate:
		return e.dueInput.Focus()
	case focusTags:
		return e.tagsInput.Focus()
	case focusCommentDraft:
		return e.panel.Focus(panelFocusDraft)
	case focusCommentAdd:
		return e.panel.Focus(panelFocusAdd)
	case focusCommentClear:
		return e.panel.Focus(panelFocusClear)
	}
	return nil
}

func (e *Editor) blurAll() {
	e.titleInput.Blur()
	e.descInput.Blur()
	e.assigneeInput.Blur()
	e.dueInput.Blur()
	e.tagsInput.Blur()
	e.panel.Blur()
}

func cyclePriority(p model.Priority, dir int) model.Priority {
	idx := 1 // unset behaves like medium
	for i, o := range model.Priorities {
		if o == p {
			idx = i
		}
	}
	n := len(model.Priorities)
	return model.Priorities[(idx+dir+n)%n]
}
