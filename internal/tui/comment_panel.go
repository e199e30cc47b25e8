package tui

import (
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"itemedit/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AddCommentMsg is emitted by a CommentPanel once a draft has been submitted.
// The parent owns what happens to the text (the Editor appends it to its working copy).
type AddCommentMsg struct {
	Text string
}

type commentDelayDoneMsg struct {
	panelID int
	seq     int
	text    string
}

type panelFocus int

const (
	panelFocusNone panelFocus = iota
	panelFocusDraft
	panelFocusAdd
	panelFocusClear
)

var lastPanelID int64

func nextPanelID() int {
	return int(atomic.AddInt64(&lastPanelID, 1))
}

type CommentPanelOptions struct {
	// CurrentUser is shown as the compose-box avatar.
	CurrentUser string
	// Latency is waited before the draft is relayed.
	Latency time.Duration
	Loading bool
	Now     func() time.Time
}

// CommentPanel lists an item's comments and owns the draft of a new one.
type CommentPanel struct {
	id   int
	opts CommentPanelOptions

	comments   []model.Comment
	loading    bool
	submitting bool
	seq        int

	draft   textarea.Model
	spinner spinner.Model
	focus   panelFocus

	width  int
	height int
}

func NewCommentPanel(opts CommentPanelOptions) CommentPanel {
	if strings.TrimSpace(opts.CurrentUser) == "" {
		opts.CurrentUser = defaultCurrentUser
	}
	ta := textarea.New()
	ta.Placeholder = "Add a comment..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(2)
	ta.SetWidth(30)
	ta.Blur()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return CommentPanel{
		id:      nextPanelID(),
		opts:    opts,
		loading: opts.Loading,
		draft:   ta,
		spinner: sp,
		width:   36,
	}
}

func (p CommentPanel) Init() tea.Cmd {
	if p.loading {
		return p.spinner.Tick
	}
	return nil
}

func (p *CommentPanel) SetSize(width, height int) {
	if width < 24 {
		width = 24
	}
	p.width = width
	p.height = height
	// Leave room for the avatar badge in front of the draft.
	p.draft.SetWidth(width - 5)
}

// SetComments replaces the displayed comments. Display order is the given order.
func (p *CommentPanel) SetComments(comments []model.Comment) {
	p.comments = append([]model.Comment(nil), comments...)
}

func (p CommentPanel) Comments() []model.Comment { return p.comments }

// SetLoading toggles the loading indicator; while loading, the returned command drives the
// spinner.
func (p *CommentPanel) SetLoading(loading bool) tea.Cmd {
	p.loading = loading
	if loading {
		return p.spinner.Tick
	}
	return nil
}

func (p CommentPanel) Loading() bool { return p.loading }

func (p CommentPanel) Submitting() bool { return p.submitting }

func (p CommentPanel) Draft() string { return p.draft.Value() }

func (p *CommentPanel) SetDraft(s string) { p.draft.SetValue(s) }

func (p CommentPanel) draftBlank() bool {
	return strings.TrimSpace(p.draft.Value()) == ""
}

// controlsDisabled reports whether Add and Clear are unavailable.
func (p CommentPanel) controlsDisabled() bool {
	return p.submitting || p.draftBlank()
}

// SubmitDraft starts relaying the trimmed draft. Blank drafts are ignored and left as they are.
func (p *CommentPanel) SubmitDraft() tea.Cmd {
	if p.controlsDisabled() {
		return nil
	}
	p.submitting = true
	p.seq++
	msg := commentDelayDoneMsg{panelID: p.id, seq: p.seq, text: strings.TrimSpace(p.draft.Value())}
	return after(p.opts.Latency, msg)
}

// ClearDraft resets the draft without submitting.
func (p *CommentPanel) ClearDraft() {
	if p.controlsDisabled() {
		return
	}
	p.draft.Reset()
}

// reset drops the draft and any pending submission (used when the owning editor starts a new session).
func (p *CommentPanel) reset() {
	p.draft.Reset()
	p.submitting = false
	p.seq++
}

func (p *CommentPanel) Focus(f panelFocus) tea.Cmd {
	p.focus = f
	if f == panelFocusDraft {
		return p.draft.Focus()
	}
	p.draft.Blur()
	return nil
}

func (p *CommentPanel) Blur() {
	p.focus = panelFocusNone
	p.draft.Blur()
}

func (p CommentPanel) Focused() bool { return p.focus != panelFocusNone }

func (p CommentPanel) Update(msg tea.Msg) (CommentPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case commentDelayDoneMsg:
		if msg.panelID != p.id || msg.seq != p.seq {
			return p, nil
		}
		p.submitting = false
		p.draft.Reset()
		text := msg.text
		return p, func() tea.Msg { return AddCommentMsg{Text: text} }

	case tea.KeyMsg:
		return p.updateKey(msg)
	}

	// Cursor blinks for the draft box.
	if p.focus == panelFocusDraft {
		var cmd tea.Cmd
		p.draft, cmd = p.draft.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p CommentPanel) updateKey(msg tea.KeyMsg) (CommentPanel, tea.Cmd) {
	switch {
	case key.Matches(msg, panelKeys.Next):
		return p, p.Focus(nextPanelFocus(p.focus, 1))
	case key.Matches(msg, panelKeys.Prev):
		return p, p.Focus(nextPanelFocus(p.focus, -1))
	}

	switch p.focus {
	case panelFocusDraft:
		if p.submitting {
			return p, nil
		}
		if key.Matches(msg, panelKeys.Submit) {
			return p, p.SubmitDraft()
		}
		var cmd tea.Cmd
		p.draft, cmd = p.draft.Update(msg)
		return p, cmd
	case panelFocusAdd:
		if key.Matches(msg, panelKeys.Activate) {
			return p, p.SubmitDraft()
		}
	case panelFocusClear:
		if key.Matches(msg, panelKeys.Activate) {
			p.ClearDraft()
		}
	}
	return p, nil
}

func nextPanelFocus(f panelFocus, dir int) panelFocus {
	order := []panelFocus{panelFocusDraft, panelFocusAdd, panelFocusClear}
	idx := 0
	for i, o := range order {
		if o == f {
			idx = i
		}
	}
	idx = (idx + dir + len(order)) % len(order)
	return order[idx]
}

func (p CommentPanel) now() time.Time {
	if p.opts.Now != nil {
		return p.opts.Now()
	}
	return time.Now()
}

func (p CommentPanel) View() string {
	w := p.width
	header := styleLabel().Render(fmt.Sprintf("Comments (%d)", len(p.comments)))
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), w))

	var body string
	switch {
	case p.loading:
		body = "\n" + lipgloss.PlaceHorizontal(w, lipgloss.Center, p.spinner.View()+" Loading comments"+glyphEllipsis()) + "\n"
	case len(p.comments) == 0:
		body = strings.Join([]string{
			"",
			lipgloss.PlaceHorizontal(w, lipgloss.Center, glyphNoComments()),
			lipgloss.PlaceHorizontal(w, lipgloss.Center, "No comments yet"),
			lipgloss.PlaceHorizontal(w, lipgloss.Center, styleMuted().Render("Be the first to add a comment!")),
			"",
		}, "\n")
	default:
		body = p.renderList(w)
	}

	compose := p.renderCompose(w)
	listBudget := 0
	if p.height > 0 {
		listBudget = p.height - lipgloss.Height(compose) - 4
	}
	body = clampTail(body, listBudget)

	return strings.Join([]string{header, rule, body, rule, compose}, "\n")
}

func (p CommentPanel) renderList(w int) string {
	now := p.now()
	textW := w - 5
	if textW < 10 {
		textW = 10
	}
	blocks := make([]string, 0, len(p.comments))
	for _, c := range p.comments {
		meta := lipgloss.NewStyle().Bold(true).Render(c.Author)
		if ts := formatRelativeTime(c.Timestamp, now); ts != "" {
			meta += styleMuted().Render(" " + glyphDot() + " " + ts)
		}
		lines := []string{meta}
		if host := avatarHost(c.Avatar); host != "" {
			lines = append(lines, styleMuted().Render(host))
		}
		lines = append(lines, lipgloss.NewStyle().Width(textW).Render(c.Content))
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top,
			renderAvatar(c),
			" ",
			strings.Join(lines, "\n"),
		))
	}
	return strings.Join(blocks, "\n\n")
}

func (p CommentPanel) renderCompose(w int) string {
	disabled := p.controlsDisabled()
	addLabel := "Add Comment"
	if p.submitting {
		addLabel = "Adding..."
	}
	draft := p.draft.View()
	if p.submitting {
		draft = styleMuted().Render(p.draft.Value())
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		renderInitialsBadge(model.Initials(p.opts.CurrentUser)),
		" ",
		draft,
	)
	controls := lipgloss.JoinHorizontal(lipgloss.Top,
		renderButton("Clear", p.focus == panelFocusClear, disabled, false),
		" ",
		renderButton(addLabel, p.focus == panelFocusAdd, disabled, true),
	)
	return row + "\n" + lipgloss.PlaceHorizontal(w, lipgloss.Right, controls)
}

func renderAvatar(c model.Comment) string {
	if strings.TrimSpace(c.Avatar) != "" {
		return renderInitialsBadge("@")
	}
	return renderInitialsBadge(model.Initials(c.Author))
}

func renderInitialsBadge(initials string) string {
	if initials == "" {
		initials = "?"
	}
	return lipgloss.NewStyle().
		Width(4).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(colorAvatarFg).
		Background(colorAvatarBg).
		Render(initials)
}

// avatarHost returns the host of an avatar URL; terminals cannot draw the image itself.
func avatarHost(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}

// clampTail keeps the last max lines of s, replacing the cut with a marker. max <= 0 keeps everything.
func clampTail(s string, max int) string {
	if max <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	if max == 1 {
		return styleMuted().Render(fmt.Sprintf("%s %d more lines", glyphMoreAbove(), len(lines)))
	}
	hidden := len(lines) - (max - 1)
	kept := lines[hidden:]
	return styleMuted().Render(fmt.Sprintf("%s %d more lines", glyphMoreAbove(), hidden)) + "\n" + strings.Join(kept, "\n")
}

// after delivers msg once d has elapsed (immediately for d <= 0).
func after(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
