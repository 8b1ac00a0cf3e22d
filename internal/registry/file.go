package registry

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/five82/logtop/internal/logtail"
)

// ChangeState is the per-file change marker state.
type ChangeState int

const (
	Unchanged ChangeState = iota
	Updated
)

func (s ChangeState) String() string {
	if s == Updated {
		return "updated"
	}
	return "unchanged"
}

// File is one monitored file.
//
// State moves Unchanged → Updated when a change is observed, and back only
// after the text extracted for that change has been published and either
// acknowledged by the UI or shown in the detail pane.
type File struct {
	Path    string
	Name    string
	ModTime time.Time
	Size    int64
	State   ChangeState

	handle *os.File
	info   os.FileInfo

	tail     []byte
	lastLine int
	line     string

	// pending is set when the file needs a fresh extraction.
	pending bool
	// published is the sequence of the snapshot that carried the text
	// extracted for the current change, 0 when not yet published.
	published uint64
}

// Tail returns the bytes read by the last extraction. The slice is reused by
// the next extraction.
func (f *File) Tail() []byte { return f.tail }

// LastLine returns the offset just past the final newline in Tail.
func (f *File) LastLine() int { return f.lastLine }

// Line returns the last complete line of the tail.
func (f *File) Line() string { return f.line }

// Pending reports whether the file needs a fresh extraction.
func (f *File) Pending() bool { return f.pending }

// MarkUpdated records an observed change.
func (f *File) MarkUpdated() {
	f.State = Updated
	f.pending = true
	f.published = 0
}

// MarkPending requests a re-extraction without touching the change marker.
func (f *File) MarkPending() { f.pending = true }

// Extract refreshes the tail using budget bytes. It reports whether new text
// was read; a zero budget leaves the file pending with its previous text.
func (f *File) Extract(budget int) (bool, error) {
	t, err := logtail.Extract(f.handle, budget, f.tail)
	if errors.Is(err, logtail.ErrNoBudget) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("extract %s: %w", f.Path, err)
	}
	f.tail = t.Data
	f.lastLine = t.LastLine
	f.line = t.Line()
	f.pending = false
	return true, nil
}

// MarkPublished records that the current text went out in snapshot seq.
func (f *File) MarkPublished(seq uint64) {
	if f.State == Updated && !f.pending && f.published == 0 {
		f.published = seq
	}
}

// Acknowledge clears the marker when snapshot seq, already rendered by the
// UI, carried the text for the current change. It reports whether the
// marker was cleared.
func (f *File) Acknowledge(seq uint64) bool {
	if f.State != Updated || f.pending || f.published == 0 || f.published > seq {
		return false
	}
	f.State = Unchanged
	f.published = 0
	return true
}

// ClearMarker drops the marker for a file whose fresh text is on screen in
// the detail pane.
func (f *File) ClearMarker() {
	if f.pending {
		return
	}
	f.State = Unchanged
	f.published = 0
}

// Stat compares the path's modification time and size with the stored values
// and records the new ones. It reports whether either changed.
func (f *File) Stat() (bool, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return false, err
	}
	changed := !info.ModTime().Equal(f.ModTime) || info.Size() != f.Size
	f.ModTime = info.ModTime()
	f.Size = info.Size()
	return changed, nil
}

// Reopen switches the handle to whatever file now lives at Path. It reports
// false when the path still refers to the open file.
func (f *File) Reopen() (bool, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return false, err
	}
	if f.info != nil && os.SameFile(f.info, info) {
		return false, nil
	}
	handle, err := os.Open(f.Path)
	if err != nil {
		return false, err
	}
	if opened, err := handle.Stat(); err == nil {
		info = opened
	}
	_ = f.close()
	f.handle = handle
	f.info = info
	f.ModTime = info.ModTime()
	f.Size = info.Size()
	f.MarkUpdated()
	return true, nil
}

func (f *File) close() error {
	if f.handle == nil {
		return nil
	}
	err := f.handle.Close()
	f.handle = nil
	return err
}
