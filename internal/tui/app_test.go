package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"itemedit/internal/model"
	"itemedit/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "items.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testSettings() store.Settings {
	return store.Settings{CurrentUser: "Jane Doe", ShowComments: true, Theme: "dark"}
}

func send(m appModel, msg tea.Msg) appModel {
	next, _ := m.Update(msg)
	return next.(appModel)
}

// step feeds msg to the model and then follows the app's own result messages.
// Callers must not use it for messages whose commands start cursor blinks.
func step(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(appModel)
	for _, follow := range drain(cmd) {
		switch follow.(type) {
		case itemsLoadedMsg, saveDoneMsg, commentHookDoneMsg, AddCommentMsg:
			m = step(t, m, follow)
		}
	}
	return m
}

func TestApp_EditAndSaveSelectedItem(t *testing.T) {
	st := openTestStore(t)
	it := store.SampleItem(testNow)
	if err := st.SaveItem(context.Background(), it); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m := newAppModel(AppOptions{Store: st, Settings: testSettings()})
	for _, msg := range drain(m.Init()) {
		m = step(t, m, msg)
	}
	if got := len(m.items.Items()); got != 1 {
		t.Fatalf("expected one listed item; got %d", got)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.editor.IsOpen() || m.editor.Item().ID != it.ID {
		t.Fatalf("expected editor open on %s", it.ID)
	}
	m.editor.SetField(model.FieldTitle, "Updated title")

	// ctrl+s -> save -> close -> reload
	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.editor.IsOpen() {
		t.Fatalf("expected editor closed after save")
	}
	got, err := st.GetItem(context.Background(), it.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Updated title" {
		t.Fatalf("expected persisted title; got %q", got.Title)
	}
	if v := ansi.Strip(m.View()); !strings.Contains(v, "Updated title") {
		t.Fatalf("expected reloaded list; got:\n%s", v)
	}
}

func TestApp_CommentIsPersistedThroughHook(t *testing.T) {
	st := openTestStore(t)
	it := store.SampleItem(testNow)
	if err := st.SaveItem(context.Background(), it); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m := newAppModel(AppOptions{Store: st, Settings: testSettings(), Direct: true, Item: &it})
	m = step(t, m, AddCommentMsg{Text: "persist me"})

	got, err := st.GetItem(context.Background(), it.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if n := len(got.Comments); n != len(it.Comments)+1 {
		t.Fatalf("expected stored comment; got %d comments", n)
	}
	last := got.Comments[len(got.Comments)-1]
	if last.Author != "Jane Doe" || last.Content != "persist me" {
		t.Fatalf("unexpected stored comment: %+v", last)
	}
}

func TestApp_CommentOnUnsavedItemIsStoredOnSave(t *testing.T) {
	st := openTestStore(t)
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	m := newAppModel(AppOptions{Store: st, Settings: testSettings(), Logger: log, Direct: true})
	m = step(t, m, AddCommentMsg{Text: "before first save"})
	for _, entry := range hook.AllEntries() {
		if entry.Level <= logrus.ErrorLevel {
			t.Fatalf("expected no error logged for an unsaved item; got %q", entry.Message)
		}
	}

	m.editor.SetField(model.FieldTitle, "New")
	m.editor.SetField(model.FieldDescription, "Desc")
	m.editor.SetField(model.FieldAssignedTo, "Jane Doe")
	id := m.editor.Item().ID
	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	got, err := st.GetItem(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Comments) != 1 || got.Comments[0].Content != "before first save" {
		t.Fatalf("expected deferred comment stored with the item; got %+v", got.Comments)
	}
}

func TestApp_NewItemThenCancel(t *testing.T) {
	st := openTestStore(t)
	m := newAppModel(AppOptions{Store: st, Settings: testSettings()})

	m = send(m, keyRunes("n"))
	if !m.editor.IsOpen() {
		t.Fatalf("expected editor open for a new item")
	}
	if v := ansi.Strip(m.View()); !strings.Contains(v, "New Item") {
		t.Fatalf("expected New Item heading; got:\n%s", v)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.editor.IsOpen() {
		t.Fatalf("expected editor closed")
	}
	items, err := st.ListItems(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected cancel to store nothing; got %d", len(items))
	}
}

func TestApp_DirectModeQuitsAfterClose(t *testing.T) {
	st := openTestStore(t)
	m := newAppModel(AppOptions{Store: st, Settings: testSettings(), Direct: true})
	if !m.editor.IsOpen() {
		t.Fatalf("expected editor open in direct mode")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestApp_RestoresLastEditedSelection(t *testing.T) {
	st := openTestStore(t)
	for i, title := range []string{"First", "Second"} {
		it := store.SampleItem(testNow)
		it.ID = "item-" + string(rune('a'+i))
		it.Title = title
		if err := st.SaveItem(context.Background(), it); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	stateDir := t.TempDir()

	m := newAppModel(AppOptions{Store: st, Settings: testSettings(), StateDir: stateDir})
	for _, msg := range drain(m.Init()) {
		m = step(t, m, msg)
	}
	m.items.Select(1)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.editor.Item().ID != "item-b" {
		t.Fatalf("expected item-b open; got %s", m.editor.Item().ID)
	}

	again := newAppModel(AppOptions{Store: st, Settings: testSettings(), StateDir: stateDir})
	for _, msg := range drain(again.Init()) {
		again = step(t, again, msg)
	}
	row, ok := again.items.SelectedItem().(itemRow)
	if !ok || row.item.ID != "item-b" {
		t.Fatalf("expected restored selection item-b; got %#v", again.items.SelectedItem())
	}
}
