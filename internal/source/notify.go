package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Notify reports changes through fsnotify watches on each file.
type Notify struct {
	watcher *fsnotify.Watcher
	paths   []string
	index   map[string]int
	inbox   *Inbox
	rescan  ticker
	logger  *slog.Logger
}

// NewNotify watches every path. Failing to watch any of them is an error.
func NewNotify(paths []string, inbox *Inbox, opts Options) (*Notify, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	n := &Notify{
		watcher: watcher,
		paths:   append([]string(nil), paths...),
		index:   make(map[string]int, len(paths)),
		inbox:   inbox,
		logger:  loggerOrDefault(opts.Logger).With("component", "notify"),
	}
	for i, path := range paths {
		n.index[filepath.Clean(path)] = i
		if err := watcher.Add(path); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}
	n.rescan = newTicker(opts.Rescan)
	return n, nil
}

// Next returns the next UI request, file change or rescan tick.
func (n *Notify) Next(ctx context.Context) (Event, error) {
	for {
		if ev, ok := n.inbox.Pop(); ok {
			return ev, nil
		}
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-n.inbox.Wake():
		case ev, ok := <-n.watcher.Events:
			if !ok {
				return Event{}, ErrClosed
			}
			if out, ok := n.translate(ev); ok {
				return out, nil
			}
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return Event{}, ErrClosed
			}
			return Event{Kind: Error, Err: fmt.Errorf("watcher: %w", err)}, nil
		case <-n.rescan.C():
			return Event{Kind: Rescan}, nil
		}
	}
}

func (n *Notify) translate(ev fsnotify.Event) (Event, bool) {
	idx, ok := n.index[filepath.Clean(ev.Name)]
	if !ok {
		n.logger.Debug("ignoring event for unknown path", "path", ev.Name, "op", ev.Op.String())
		return Event{}, false
	}
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return Event{Kind: FileChanged, Index: idx, Replaced: true}, true
	case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create), ev.Has(fsnotify.Chmod):
		return Event{Kind: FileChanged, Index: idx}, true
	default:
		return Event{}, false
	}
}

// Rewatch re-registers the path at index after its file was replaced.
func (n *Notify) Rewatch(index int) error {
	if index < 0 || index >= len(n.paths) {
		return fmt.Errorf("rewatch: index %d out of range", index)
	}
	path := n.paths[index]
	// The old watch is usually gone already; a failed Remove is expected.
	_ = n.watcher.Remove(path)
	if err := n.watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	return nil
}

// Close stops the watcher.
func (n *Notify) Close() error {
	n.rescan.Stop()
	return n.watcher.Close()
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
