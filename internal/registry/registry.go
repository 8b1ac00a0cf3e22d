package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/five82/logtop/internal/config"
)

// ErrNoFiles is returned by Open when none of the listed files could be opened.
var ErrNoFiles = errors.New("no readable files")

// Registry is the ordered list of monitored files, in config order.
type Registry struct {
	files []*File
}

// Open opens every entry. Unreadable files are logged and skipped; they are
// never retried.
func Open(entries []config.Entry, logger *slog.Logger) (*Registry, error) {
	reg := &Registry{}
	for _, entry := range entries {
		f, err := openFile(entry)
		if err != nil {
			logger.Warn("skipping unreadable file", "path", entry.Path, "line", entry.Line, "error", err)
			continue
		}
		reg.files = append(reg.files, f)
	}
	if len(reg.files) == 0 {
		return nil, fmt.Errorf("open registry: %w", ErrNoFiles)
	}
	return reg, nil
}

// Len returns the number of monitored files.
func (r *Registry) Len() int { return len(r.files) }

// File returns the file at index i, or nil when i is out of range.
func (r *Registry) File(i int) *File {
	if i < 0 || i >= len(r.files) {
		return nil
	}
	return r.files[i]
}

// Files returns the monitored files in display order.
func (r *Registry) Files() []*File { return r.files }

// Paths returns the monitored paths in display order.
func (r *Registry) Paths() []string {
	paths := make([]string, len(r.files))
	for i, f := range r.files {
		paths[i] = f.Path
	}
	return paths
}

// Pending reports whether any file still needs an extraction.
func (r *Registry) Pending() bool {
	for _, f := range r.files {
		if f.pending {
			return true
		}
	}
	return false
}

// Close releases every file handle.
func (r *Registry) Close() error {
	var errs []error
	for _, f := range r.files {
		if err := f.close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", f.Path, err))
		}
	}
	return errors.Join(errs...)
}

func openFile(entry config.Entry) (*File, error) {
	handle, err := os.Open(entry.Path)
	if err != nil {
		return nil, err
	}
	info, err := handle.Stat()
	if err != nil {
		_ = handle.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = handle.Close()
		return nil, fmt.Errorf("%s is a directory", entry.Path)
	}
	return &File{
		Path:    entry.Path,
		Name:    entry.Name,
		handle:  handle,
		info:    info,
		ModTime: info.ModTime(),
		Size:    info.Size(),
		State:   Updated,
		pending: true,
	}, nil
}
