package source

import (
	"errors"
	"fmt"
)

var (
	// ErrVanished reports that a monitored path can no longer be stat'ed.
	ErrVanished = errors.New("monitored file vanished")
	// ErrClosed is returned by Next after the source has been closed.
	ErrClosed = errors.New("source closed")
)

// Kind identifies an Event.
type Kind int

const (
	FileChanged Kind = iota + 1
	ResizeRequested
	DetailToggled
	SelectionChanged
	Rendered
	Rescan
	Error
)

func (k Kind) String() string {
	switch k {
	case FileChanged:
		return "file-changed"
	case ResizeRequested:
		return "resize"
	case DetailToggled:
		return "detail-toggled"
	case SelectionChanged:
		return "selection-changed"
	case Rendered:
		return "rendered"
	case Rescan:
		return "rescan"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one item from a Source. Only the fields of its Kind are set.
type Event struct {
	Kind Kind
	// Index of the file for FileChanged.
	Index int
	// Replaced is set when the path was removed or renamed.
	Replaced bool
	// On is the new detail visibility for DetailToggled.
	On bool
	// Seq is the snapshot sequence acknowledged by Rendered.
	Seq uint64
	// Err carries a transient failure for Error.
	Err error
}
