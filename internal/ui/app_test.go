package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logtop/internal/prefs"
	"github.com/five82/logtop/internal/source"
	"github.com/five82/logtop/internal/state"
)

type testModel struct {
	Model
	inbox *source.Inbox
	store *state.Store
	view  *state.View
}

func newTestModel(t *testing.T) testModel {
	t.Helper()
	inbox := source.NewInbox()
	store := &state.Store{}
	view := state.NewView(inbox)
	m := New(Options{
		Store:     store,
		View:      view,
		Prefs:     prefs.Defaults(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		FileCount: 3,
	})
	tm := testModel{Model: m, inbox: inbox, store: store, view: view}
	tm.update(t, tea.WindowSizeMsg{Width: 80, Height: 24})
	tm.drain()
	return tm
}

func (tm *testModel) update(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := tm.Model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	tm.Model = m
	return cmd
}

func (tm *testModel) drain() []source.Event {
	var events []source.Event
	for {
		ev, ok := tm.inbox.Pop()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

func (tm *testModel) publish(t *testing.T, names ...string) {
	t.Helper()
	rows := make([]state.Row, len(names))
	for i, name := range names {
		rows[i] = state.Row{Name: name, Path: "/tmp/" + name, Line: name + " last line", Updated: true}
	}
	seq := tm.store.Publish("poll", rows, nil)
	cmd := tm.update(t, SnapshotMsg{Seq: seq})
	if cmd == nil {
		t.Fatal("SnapshotMsg returned no command")
	}
	tm.update(t, cmd())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestResizeReportsDetailArea(t *testing.T) {
	tm := newTestModel(t)
	vs := tm.view.Load()
	if vs.Rows != 19 || vs.Cols != 78 {
		t.Fatalf("view size = %dx%d, want 19x78", vs.Rows, vs.Cols)
	}
}

func TestSnapshotIsAcknowledged(t *testing.T) {
	tm := newTestModel(t)
	tm.publish(t, "a.log", "b.log")

	if got := tm.view.Load().Rendered; got != 1 {
		t.Fatalf("Rendered = %d, want 1", got)
	}
	events := tm.drain()
	if len(events) != 1 || events[0].Kind != source.Rendered || events[0].Seq != 1 {
		t.Fatalf("events = %+v, want one rendered event for seq 1", events)
	}

	out := tm.View()
	if !strings.Contains(out, "a.log last line") {
		t.Fatalf("View() missing last line:\n%s", out)
	}
	if !strings.Contains(out, UpdatedMarker) {
		t.Fatalf("View() missing changed marker:\n%s", out)
	}
}

func TestStaleSnapshotIgnored(t *testing.T) {
	tm := newTestModel(t)
	tm.publish(t, "a.log")
	tm.publish(t, "a.log", "b.log")
	tm.drain()

	tm.update(t, snapshotMsg(state.Snapshot{Seq: 1}))
	if len(tm.snapshot.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 after stale snapshot", len(tm.snapshot.Rows))
	}
	if events := tm.drain(); len(events) != 0 {
		t.Fatalf("events = %+v, want none for stale snapshot", events)
	}
}

func TestCursorMovement(t *testing.T) {
	tm := newTestModel(t)
	tm.publish(t, "a.log", "b.log", "c.log")
	tm.drain()

	tm.update(t, keyRunes("j"))
	tm.update(t, tea.KeyMsg{Type: tea.KeyDown})
	tm.update(t, keyRunes("j"))
	if tm.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 (clamped at last row)", tm.cursor)
	}
	tm.update(t, keyRunes("k"))
	if tm.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", tm.cursor)
	}
	if got := tm.view.Load().Cursor; got != 1 {
		t.Fatalf("view cursor = %d, want 1", got)
	}
}

func TestDetailOpenAndClose(t *testing.T) {
	tm := newTestModel(t)
	tm.publish(t, "a.log", "b.log")
	tm.drain()

	tm.update(t, keyRunes("j"))
	tm.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	if tm.selected != 1 {
		t.Fatalf("selected = %d, want 1", tm.selected)
	}
	if got := tm.view.Load().Selected; got != 1 {
		t.Fatalf("view selected = %d, want 1", got)
	}
	if !strings.Contains(tm.View(), "[b.log]") {
		t.Fatalf("View() missing detail title:\n%s", tm.View())
	}

	// Navigation keeps the pane open.
	tm.update(t, keyRunes("k"))
	if tm.selected != 1 || tm.cursor != 0 {
		t.Fatalf("after k: selected=%d cursor=%d, want 1 and 0", tm.selected, tm.cursor)
	}

	tm.update(t, keyRunes("x"))
	if tm.selected != -1 {
		t.Fatalf("selected = %d, want -1 after unbound key", tm.selected)
	}
	if got := tm.view.Load().Selected; got != -1 {
		t.Fatalf("view selected = %d, want -1", got)
	}
}

func TestDetailShowsTail(t *testing.T) {
	tm := newTestModel(t)
	tm.publish(t, "a.log")
	tm.update(t, tea.KeyMsg{Type: tea.KeyEnter})

	rows := []state.Row{{Name: "a.log", Path: "/tmp/a.log", Line: "third"}}
	detail := &state.Detail{Index: 0, Name: "a.log", Path: "/tmp/a.log", Text: "first\nsecond\nthird\n", Size: 19}
	seq := tm.store.Publish("poll", rows, detail)
	tm.update(t, tm.update(t, SnapshotMsg{Seq: seq})())

	out := tm.View()
	for _, want := range []string{"first", "second", "third"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View() missing %q:\n%s", want, out)
		}
	}
}

func TestEnterWithoutFilesIgnored(t *testing.T) {
	tm := newTestModel(t)
	tm.fileCount = 0
	tm.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	if tm.selected != -1 {
		t.Fatalf("selected = %d, want -1 with no files", tm.selected)
	}
}

func TestHelpToggle(t *testing.T) {
	tm := newTestModel(t)
	tm.update(t, keyRunes("?"))
	if !tm.showHelp {
		t.Fatal("showHelp = false, want true")
	}
	if !strings.Contains(tm.View(), "Keyboard Shortcuts") {
		t.Fatal("help view missing title")
	}
	tm.update(t, keyRunes("x"))
	if tm.showHelp {
		t.Fatal("showHelp = true after key, want false")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyRunes("q"), keyRunes("Q"), {Type: tea.KeyCtrlC}} {
		tm := newTestModel(t)
		tm.update(t, tea.KeyMsg{Type: tea.KeyEnter})
		cmd := tm.update(t, msg)
		if cmd == nil {
			t.Fatalf("%s returned no command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s did not quit", msg)
		}
	}
}

func TestFatalMsgStops(t *testing.T) {
	tm := newTestModel(t)
	boom := errors.New("boom")
	cmd := tm.update(t, FatalMsg{Err: boom})
	if !errors.Is(tm.Err(), boom) {
		t.Fatalf("Err() = %v, want %v", tm.Err(), boom)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("FatalMsg did not quit")
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	tm := newTestModel(t)
	tm.update(t, keyRunes("T"))
	if tm.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", tm.theme.Name)
	}
	tm.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	tm.update(t, keyRunes("T"))
	if tm.selected != -1 {
		t.Fatalf("selected = %d, want -1 after cycling the theme", tm.selected)
	}
	if tm.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", tm.theme.Name)
	}
	p, err := prefs.Load(tm.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("saved theme = %q, want Slate", p.Theme)
	}
}

func TestErrorShownInHeader(t *testing.T) {
	tm := newTestModel(t)
	seq := tm.store.RecordError(errors.New("read failed"))
	tm.update(t, tm.update(t, SnapshotMsg{Seq: seq})())
	if !strings.Contains(tm.View(), "failed") {
		t.Fatalf("View() missing error:\n%s", tm.View())
	}
}
