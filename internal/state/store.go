package state

import (
	"fmt"
	"sync"
	"time"
)

// Row is one line of the file list.
type Row struct {
	Name    string
	Path    string
	Line    string
	Updated bool
	Size    int64
	ModTime time.Time
}

// Detail is the tail of the file shown in the detail pane.
type Detail struct {
	Index   int
	Name    string
	Path    string
	Text    string
	Size    int64
	ModTime time.Time
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Seq         uint64
	Mode        string
	Rows        []Row
	Detail      *Detail
	LastUpdated time.Time
	LastError   error
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Publish replaces the rows and detail and returns the new sequence number.
// A successful publish clears LastError.
func (s *Store) Publish(mode string, rows []Row, detail *Detail) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Seq++
	s.snapshot.Mode = mode
	s.snapshot.Rows = cloneRows(rows)
	s.snapshot.Detail = cloneDetail(detail)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	return s.snapshot.Seq
}

// RecordError keeps the previous data but records err for visibility. It
// returns the new sequence number.
func (s *Store) RecordError(err error) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Seq++
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	return s.snapshot.Seq
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Rows = cloneRows(s.snapshot.Rows)
	snap.Detail = cloneDetail(s.snapshot.Detail)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneRows(rows []Row) []Row {
	if len(rows) == 0 {
		return nil
	}
	dup := make([]Row, len(rows))
	copy(dup, rows)
	return dup
}

func cloneDetail(d *Detail) *Detail {
	if d == nil {
		return nil
	}
	dup := *d
	return &dup
}
