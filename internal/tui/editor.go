package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"itemedit/internal/logging"
	"itemedit/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

const (
	defaultEditorTitle = "Edit Item"
	defaultCurrentUser = "Current User"
)

type EditorOptions struct {
	// Title is the modal heading.
	Title string
	// ShowComments renders the comment panel next to the form.
	ShowComments bool
	// CurrentUser is the author of comments added from this editor.
	CurrentUser string
	// CommentsLoading shows the panel's loading indicator instead of the list.
	CommentsLoading bool

	// OnClose runs whenever the modal closes (cancel, esc, or after a successful save).
	OnClose func()
	// OnSave receives a validated copy of the working item. A returned error (or panic) keeps
	// the modal open. The context is cancelled if the editor closes while the save is in flight.
	OnSave func(ctx context.Context, it model.Item) error
	// OnAddComment is optional; it receives the raw comment text after the local append.
	OnAddComment func(ctx context.Context, itemID string, text string) error

	// SaveLatency and CommentLatency are waited before the save and the comment relay.
	SaveLatency    time.Duration
	CommentLatency time.Duration

	Logger logrus.FieldLogger
	Now    func() time.Time
}

type editorFocus int

const (
	focusTitle editorFocus = iota
	focusDescription
	focusAssignedTo
	focusDueDate
	focusPriority
	focusTags
	focusComplete
	focusSave
	focusCancel
	focusCommentDraft
	focusCommentAdd
	focusCommentClear
)

type saveDoneMsg struct {
	seq    int
	itemID string
	err    error
}

type commentHookDoneMsg struct {
	itemID    string
	commentID string
	err       error
}

// Editor is a modal form for a single item.
//
// It keeps a working copy of the item while open; nothing is persisted except through
// OnSave and OnAddComment.
type Editor struct {
	opts EditorOptions
	log  logrus.FieldLogger

	open      bool
	hasSource bool
	sourceID  string

	data       model.Item
	errors     model.FieldErrors
	submitting bool
	saveSeq    int
	cancelSave context.CancelFunc

	focus         editorFocus
	titleInput    textinput.Model
	descInput     textarea.Model
	assigneeInput textinput.Model
	dueInput      textinput.Model
	tagsInput     textinput.Model
	panel         CommentPanel

	width  int
	height int
}

func NewEditor(opts EditorOptions) Editor {
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = defaultEditorTitle
	}
	if strings.TrimSpace(opts.CurrentUser) == "" {
		opts.CurrentUser = defaultCurrentUser
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	desc := textarea.New()
	desc.Placeholder = "Enter description"
	desc.CharLimit = 0
	desc.ShowLineNumbers = false
	desc.Prompt = ""
	desc.SetHeight(3)

	e := Editor{
		opts:          opts,
		log:           log.WithField("component", "editor"),
		errors:        model.FieldErrors{},
		titleInput:    newTextInput("Enter title", 200),
		descInput:     desc,
		assigneeInput: newTextInput("Enter assignee", 120),
		dueInput:      newTextInput("YYYY-MM-DD", 32),
		tagsInput:     newTextInput("comma, separated, tags", 0),
		panel: NewCommentPanel(CommentPanelOptions{
			CurrentUser: opts.CurrentUser,
			Latency:     opts.CommentLatency,
			Loading:     opts.CommentsLoading,
			Now:         opts.Now,
		}),
	}
	e.SetSize(0, 0)
	return e
}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func (e Editor) Init() tea.Cmd {
	if !e.open {
		return nil
	}
	return tea.Batch(textinput.Blink, e.panel.Init())
}

func (e Editor) IsOpen() bool { return e.open }

func (e Editor) Submitting() bool { return e.submitting }

// Item returns a copy of the working item.
func (e Editor) Item() model.Item { return e.data.Clone() }

// Errors returns a copy of the current validation errors.
func (e Editor) Errors() model.FieldErrors {
	out := make(model.FieldErrors, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}

func (e Editor) Panel() CommentPanel { return e.panel }

func (e Editor) now() time.Time { return e.opts.Now() }

// Open shows the form for item, or for a fresh blank item when item is nil.
func (e *Editor) Open(item *model.Item) tea.Cmd {
	e.open = true
	e.reset(item)
	return tea.Batch(
		e.setFocus(focusTitle),
		e.panel.SetLoading(e.opts.CommentsLoading),
	)
}

// SetItem re-initializes an open editor when the supplied item's identity changes.
func (e *Editor) SetItem(item *model.Item) tea.Cmd {
	if !e.open {
		return nil
	}
	if item == nil && !e.hasSource {
		return nil
	}
	if item != nil && e.hasSource && item.ID == e.sourceID {
		return nil
	}
	e.reset(item)
	return e.setFocus(focusTitle)
}

// SetCommentsLoading toggles the comment panel's loading indicator.
func (e *Editor) SetCommentsLoading(loading bool) tea.Cmd {
	e.opts.CommentsLoading = loading
	return e.panel.SetLoading(loading)
}

func (e *Editor) reset(item *model.Item) {
	e.abortSave()
	if item != nil {
		e.data = item.Clone()
		e.hasSource = true
		e.sourceID = item.ID
	} else {
		e.data = model.NewBlankItem(e.now())
		e.hasSource = false
		e.sourceID = ""
	}
	e.errors = model.FieldErrors{}

	e.titleInput.SetValue(e.data.Title)
	e.descInput.SetValue(e.data.Description)
	e.assigneeInput.SetValue(e.data.AssignedTo)
	e.dueInput.SetValue(e.data.DueDate)
	e.tagsInput.SetValue(model.JoinTags(e.data.Tags))

	e.panel.reset()
	e.panel.SetComments(e.data.Comments)
}

// Close discards the working copy and notifies OnClose. An in-flight save is cancelled.
func (e *Editor) Close() {
	if !e.open {
		return
	}
	e.abortSave()
	e.shut()
}

func (e *Editor) abortSave() {
	if e.cancelSave != nil {
		e.cancelSave()
		e.cancelSave = nil
	}
	e.submitting = false
	e.saveSeq++
}

func (e *Editor) shut() {
	e.open = false
	e.blurAll()
	e.data = model.Item{}
	e.errors = model.FieldErrors{}
	e.panel.reset()
	e.panel.SetComments(nil)
	e.callOnClose()
}

func (e *Editor) callOnClose() {
	if e.opts.OnClose == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.WithField("panic", fmt.Sprint(r)).Error("close callback panicked")
		}
	}()
	e.opts.OnClose()
}

// Submit validates the working copy and, when valid, starts the save.
// It is a no-op while a save is already in flight.
func (e *Editor) Submit() tea.Cmd {
	if !e.open || e.submitting {
		return nil
	}
	e.errors = model.Validate(e.data)
	if !e.errors.Empty() {
		e.log.WithField("itemId", e.data.ID).WithField("fields", len(e.errors)).Debug("validation failed")
		return nil
	}

	e.submitting = true
	e.saveSeq++
	ctx, cancel := context.WithCancel(context.Background())
	e.cancelSave = cancel
	return saveCmd(ctx, e.saveSeq, e.data.Clone(), e.opts.SaveLatency, e.opts.OnSave)
}

func saveCmd(ctx context.Context, seq int, it model.Item, latency time.Duration, onSave func(context.Context, model.Item) error) tea.Cmd {
	return func() tea.Msg {
		err := sleepContext(ctx, latency)
		if err == nil && onSave != nil {
			err = callSave(ctx, onSave, it)
		}
		return saveDoneMsg{seq: seq, itemID: it.ID, err: err}
	}
}

func callSave(ctx context.Context, onSave func(context.Context, model.Item) error, it model.Item) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("save panicked: %v", r)
		}
	}()
	return onSave(ctx, it)
}

func (e *Editor) handleSaveDone(msg saveDoneMsg) {
	if msg.seq != e.saveSeq || !e.submitting {
		// Closed or reopened while the save was in flight.
		return
	}
	if e.cancelSave != nil {
		e.cancelSave()
		e.cancelSave = nil
	}
	if msg.err != nil {
		e.log.WithError(msg.err).WithField("itemId", msg.itemID).Error("save failed")
		e.submitting = false
		return
	}
	e.log.WithField("itemId", msg.itemID).Info("item saved")
	e.shut()
	e.submitting = false
}

// AddComment appends a comment by the current user to the working copy, then hands the raw
// text to OnAddComment. A failing hook is logged; the local comment stays.
func (e *Editor) AddComment(text string) tea.Cmd {
	if !e.open || strings.TrimSpace(text) == "" || strings.TrimSpace(e.data.ID) == "" {
		return nil
	}
	c := model.NewComment(e.opts.CurrentUser, text, e.now())
	e.data.Comments = append(e.data.Comments, c)
	e.panel.SetComments(e.data.Comments)

	if e.opts.OnAddComment == nil {
		return nil
	}
	return commentHookCmd(e.data.ID, c.ID, text, e.opts.OnAddComment)
}

func commentHookCmd(itemID, commentID, text string, hook func(context.Context, string, string) error) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = commentHookDoneMsg{itemID: itemID, commentID: commentID, err: fmt.Errorf("comment hook panicked: %v", r)}
			}
		}()
		err := hook(context.Background(), itemID, text)
		return commentHookDoneMsg{itemID: itemID, commentID: commentID, err: err}
	}
}

func (e *Editor) handleCommentHookDone(msg commentHookDoneMsg) {
	entry := e.log.WithField("itemId", msg.itemID).WithField("commentId", msg.commentID)
	if msg.err != nil {
		entry.WithError(msg.err).Error("add comment failed")
		return
	}
	entry.Debug("comment added")
}

// SetField edits a required text field as if the user typed it.
func (e *Editor) SetField(f model.Field, value string) {
	switch f {
	case model.FieldTitle:
		e.titleInput.SetValue(value)
	case model.FieldDescription:
		e.descInput.SetValue(value)
	case model.FieldAssignedTo:
		e.assigneeInput.SetValue(value)
	default:
		return
	}
	e.updateField(f, value)
}

func (e *Editor) SetDueDate(value string) {
	e.dueInput.SetValue(value)
	e.data.DueDate = value
}

// SetTagsInput parses a comma-separated tag list into the working copy.
func (e *Editor) SetTagsInput(value string) {
	e.tagsInput.SetValue(value)
	e.data.Tags = model.ParseTags(value)
}

func (e *Editor) SetComplete(done bool) { e.data.Complete = done }

func (e *Editor) SetPriority(p model.Priority) { e.data.Priority = p }

// updateField writes a required field and clears its error right away.
func (e *Editor) updateField(f model.Field, value string) {
	switch f {
	case model.FieldTitle:
		e.data.Title = value
	case model.FieldDescription:
		e.data.Description = value
	case model.FieldAssignedTo:
		e.data.AssignedTo = value
	}
	if e.errors.Has(f) {
		e.errors.Clear(f)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
