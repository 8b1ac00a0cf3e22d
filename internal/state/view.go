package state

import (
	"sync"

	"github.com/five82/logtop/internal/source"
)

// ViewState is the part of the UI state the coordinator needs.
type ViewState struct {
	// Cursor is the highlighted row.
	Cursor int
	// Selected is the file shown in the detail pane, -1 when it is closed.
	Selected int
	// Rows and Cols are the size of the detail content area.
	Rows int
	Cols int
	// Rendered is the highest snapshot sequence the UI has drawn.
	Rendered uint64
}

// DetailOpen reports whether the detail pane is visible.
func (v ViewState) DetailOpen() bool { return v.Selected >= 0 }

// Budget is the byte budget for tail extraction, 0 until the size is known.
func (v ViewState) Budget() int {
	if v.Rows <= 0 || v.Cols <= 0 {
		return 0
	}
	return v.Rows * v.Cols
}

// View guards ViewState. The UI writes it; every change is posted to the
// inbox so the coordinator wakes up and reads it back.
type View struct {
	mu    sync.Mutex
	state ViewState
	inbox *source.Inbox
}

// NewView returns a view with the detail pane closed.
func NewView(inbox *source.Inbox) *View {
	return &View{state: ViewState{Selected: -1}, inbox: inbox}
}

// Load returns a copy of the current state.
func (v *View) Load() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// MoveCursor highlights row i.
func (v *View) MoveCursor(i int) {
	v.mu.Lock()
	changed := v.state.Cursor != i
	v.state.Cursor = i
	v.mu.Unlock()
	if changed {
		v.inbox.Post(source.Event{Kind: source.SelectionChanged})
	}
}

// Select opens the detail pane on file i.
func (v *View) Select(i int) {
	v.mu.Lock()
	changed := v.state.Selected != i
	v.state.Cursor = i
	v.state.Selected = i
	v.mu.Unlock()
	if changed {
		v.inbox.Post(source.Event{Kind: source.DetailToggled, On: true})
	}
}

// Deselect closes the detail pane.
func (v *View) Deselect() {
	v.mu.Lock()
	changed := v.state.Selected >= 0
	v.state.Selected = -1
	v.mu.Unlock()
	if changed {
		v.inbox.Post(source.Event{Kind: source.DetailToggled, On: false})
	}
}

// Resize records the detail content area.
func (v *View) Resize(rows, cols int) {
	v.mu.Lock()
	changed := v.state.Rows != rows || v.state.Cols != cols
	v.state.Rows = rows
	v.state.Cols = cols
	v.mu.Unlock()
	if changed {
		v.inbox.Post(source.Event{Kind: source.ResizeRequested})
	}
}

// Rendered acknowledges that snapshot seq is on screen.
func (v *View) Rendered(seq uint64) {
	v.mu.Lock()
	changed := seq > v.state.Rendered
	if changed {
		v.state.Rendered = seq
	}
	v.mu.Unlock()
	if changed {
		v.inbox.Post(source.Event{Kind: source.Rendered, Seq: seq})
	}
}
