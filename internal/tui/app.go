package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"itemedit/internal/logging"
	"itemedit/internal/model"
	"itemedit/internal/store"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// ItemStore is the persistence the host app wires into the editor callbacks.
type ItemStore interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	SaveItem(ctx context.Context, it model.Item) error
	AddComment(ctx context.Context, itemID string, c model.Comment) error
}

type AppOptions struct {
	Store    ItemStore
	Settings store.Settings
	Logger   logrus.FieldLogger

	// Direct opens the editor immediately (on Item, or blank when Item is nil) and quits
	// once it closes.
	Direct bool
	Item   *model.Item

	// StateDir holds tui_state.json (last selection). Empty disables persistence.
	StateDir string
}

type itemsLoadedMsg struct {
	items []model.Item
	err   error
}

type appModel struct {
	st       ItemStore
	settings store.Settings
	log      logrus.FieldLogger

	items  list.Model
	editor Editor
	direct bool

	stateDir string
	state    *store.TUIState
	restored bool

	width      int
	height     int
	minibuffer string
}

func newAppModel(opts AppOptions) appModel {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	st := opts.Store
	user := opts.Settings.CurrentUser

	m := appModel{
		st:       st,
		settings: opts.Settings,
		log:      log,
		items:    newItemsList(),
		direct:   opts.Direct,
		stateDir: opts.StateDir,
	}
	state, err := store.LoadTUIState(opts.StateDir)
	if err != nil {
		log.WithError(err).Warn("load tui state failed")
		state = &store.TUIState{Version: 1}
	}
	m.state = state
	m.editor = NewEditor(EditorOptions{
		Title:          "Edit Item",
		ShowComments:   opts.Settings.ShowComments,
		CurrentUser:    user,
		SaveLatency:    opts.Settings.SaveLatency,
		CommentLatency: opts.Settings.CommentLatency,
		Logger:         log,
		OnSave: func(ctx context.Context, it model.Item) error {
			return st.SaveItem(ctx, it)
		},
		OnAddComment: func(ctx context.Context, itemID string, text string) error {
			err := st.AddComment(ctx, itemID, model.NewComment(user, text, time.Now()))
			// An unsaved item keeps the comment in its working copy; SaveItem inserts it.
			var nf store.NotFoundError
			if errors.As(err, &nf) {
				log.WithField("itemId", itemID).Debug("comment deferred until save")
				return nil
			}
			return err
		},
	})
	if opts.Direct {
		m.openEditor(opts.Item)
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.direct {
		return m.editor.Init()
	}
	return loadItemsCmd(m.st)
}

func loadItemsCmd(st ItemStore) tea.Cmd {
	return func() tea.Msg {
		items, err := st.ListItems(context.Background())
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m *appModel) openEditor(it *model.Item) tea.Cmd {
	m.editor.opts.Title = "New Item"
	if it != nil {
		m.editor.opts.Title = "Edit Item"
		m.rememberItem(it.ID)
	}
	m.minibuffer = ""
	return m.editor.Open(it)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.editor.SetSize(msg.Width, msg.Height)
		return m, nil

	case itemsLoadedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Error("load items failed")
			m.minibuffer = "Load failed: " + msg.err.Error()
			return m, nil
		}
		setItemRows(&m.items, msg.items)
		if !m.restored {
			m.restored = true
			selectItemID(&m.items, m.state.SelectedItemID)
		}
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.editor.IsOpen() {
		return m.updateEditor(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && !m.items.SettingFilter() {
		switch {
		case key.Matches(km, appKeys.Quit):
			return m, tea.Quit
		case key.Matches(km, appKeys.New):
			return m, m.openEditor(nil)
		case key.Matches(km, appKeys.Open):
			if row, ok := m.items.SelectedItem().(itemRow); ok {
				it := row.item
				return m, m.openEditor(&it)
			}
			return m, nil
		case key.Matches(km, appKeys.Reload):
			return m, loadItemsCmd(m.st)
		}
	}

	// Results of a save/comment that finished after the editor closed still need to be logged.
	var editorCmd tea.Cmd
	m.editor, editorCmd = m.editor.Update(msg)

	var cmd tea.Cmd
	m.items, cmd = m.items.Update(msg)
	return m, tea.Batch(cmd, editorCmd)
}

func (m appModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.IsOpen() {
		return m, cmd
	}
	if m.direct {
		return m, tea.Sequence(cmd, tea.Quit)
	}
	return m, tea.Batch(cmd, loadItemsCmd(m.st))
}

func (m *appModel) rememberItem(id string) {
	m.state.TouchItem(id)
	if err := store.SaveTUIState(m.stateDir, m.state); err != nil {
		m.log.WithError(err).Warn("save tui state failed")
	}
}

func (m *appModel) resize() {
	// Leave room for header/footer.
	h := m.height - 4
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.items.SetSize(w, h)
}

func (m appModel) View() string {
	if m.editor.IsOpen() {
		if m.width <= 0 || m.height <= 0 {
			return m.editor.View()
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.editor.View())
	}
	if m.direct {
		return ""
	}

	header := lipgloss.NewStyle().Bold(true).Render("itemedit  user=" + emptyAsDash(m.settings.CurrentUser))
	footer := styleMuted().Render("enter: edit  n: new  /: filter  r: reload  q: quit")
	parts := []string{header, m.items.View(), footer}
	if strings.TrimSpace(m.minibuffer) != "" {
		parts = append(parts, styleError().Render(m.minibuffer))
	}
	return strings.Join(parts, "\n")
}
