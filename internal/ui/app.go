package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logtop/internal/prefs"
	"github.com/five82/logtop/internal/state"
)

// Options configures the UI.
type Options struct {
	Store     *state.Store
	View      *state.View
	ThemeName string
	// Prefs is written back with the new theme when it is cycled.
	Prefs     prefs.Prefs
	PrefsPath string
	FileCount int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store     *state.Store
	view      *state.View
	prefs     prefs.Prefs
	prefsPath string
	fileCount int

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot state.Snapshot

	// Cursor is the highlighted row; selected is the file in the detail
	// pane, -1 when the pane is closed.
	cursor   int
	selected int
	detail   viewport.Model

	err error
}

// Messages

// SnapshotMsg tells the UI that snapshot Seq has been published.
type SnapshotMsg struct{ Seq uint64 }

// FatalMsg stops the UI with Err.
type FatalMsg struct{ Err error }

type snapshotMsg state.Snapshot

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = opts.Prefs.Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		store:     opts.Store,
		view:      opts.View,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		fileCount: opts.FileCount,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		selected:  -1,
	}
}

// Err returns the fatal error that stopped the UI, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.store != nil {
		return fetchSnapshotCmd(m.store)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		rows, cols := detailSize(m.width, m.height)
		if !m.ready {
			m.detail = viewport.New(cols, rows)
		} else {
			m.detail.Width = cols
			m.detail.Height = rows
		}
		m.ready = true
		if m.view != nil {
			m.view.Resize(rows, cols)
		}
		m.updateDetailViewport()
		return m, nil

	case SnapshotMsg:
		if m.store == nil {
			return m, nil
		}
		return m, fetchSnapshotCmd(m.store)

	case snapshotMsg:
		snap := state.Snapshot(msg)
		if snap.Seq < m.snapshot.Seq {
			return m, nil
		}
		m.snapshot = snap
		m.clampCursor()
		m.updateDetailViewport()
		if m.view != nil {
			m.view.Rendered(snap.Seq)
		}
		return m, nil

	case FatalMsg:
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		m.openDetail()
	case key.Matches(msg, m.keys.CycleTheme):
		m.closeDetail()
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			m.prefs.Theme = m.theme.Name
			_ = prefs.Save(m.prefsPath, m.prefs)
		}
	case key.Matches(msg, m.keys.Help) && m.selected < 0:
		m.showHelp = true
	default:
		m.closeDetail()
	}
	return m, nil
}

func (m *Model) rowCount() int {
	if n := len(m.snapshot.Rows); n > 0 {
		return n
	}
	return m.fileCount
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= m.rowCount() {
		return
	}
	m.cursor = next
	if m.view != nil {
		m.view.MoveCursor(next)
	}
}

func (m *Model) clampCursor() {
	if n := m.rowCount(); m.cursor >= n {
		m.cursor = maxInt(n-1, 0)
	}
}

func (m *Model) openDetail() {
	if m.rowCount() == 0 {
		return
	}
	m.selected = m.cursor
	if m.view != nil {
		m.view.Select(m.cursor)
	}
	m.updateDetailViewport()
}

func (m *Model) closeDetail() {
	if m.selected < 0 {
		return
	}
	m.selected = -1
	if m.view != nil {
		m.view.Deselect()
	}
	m.updateDetailViewport()
}

// updateDetailViewport loads the selected file's tail, pinned to the bottom.
// Until the coordinator has published the selected file the pane is empty.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	text := ""
	if d := m.snapshot.Detail; d != nil && m.selected >= 0 && d.Index == m.selected {
		text = wrapTail(d.Text, m.detail.Width)
	}
	m.detail.SetContent(text)
	m.detail.GotoBottom()
}

// Commands

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// maxInt returns the larger of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
