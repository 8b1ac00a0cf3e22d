package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/logtop/internal/registry"
	"github.com/five82/logtop/internal/source"
	"github.com/five82/logtop/internal/state"
)

// Coordinator is the background worker. It is the only writer of the
// registry and the store.
type Coordinator struct {
	reg    *registry.Registry
	src    source.Source
	store  *state.Store
	view   *state.View
	mode   string
	notify func(seq uint64)
	logger *slog.Logger

	dirty bool
}

// CoordinatorOptions wires a Coordinator.
type CoordinatorOptions struct {
	Registry *registry.Registry
	Source   source.Source
	Store    *state.Store
	View     *state.View
	// Mode is the label shown in the header.
	Mode string
	// Notify is called after every publish with the new sequence number.
	Notify func(seq uint64)
	Logger *slog.Logger
}

// NewCoordinator returns a coordinator that publishes on its first pass.
func NewCoordinator(opts CoordinatorOptions) *Coordinator {
	notify := opts.Notify
	if notify == nil {
		notify = func(uint64) {}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		reg:    opts.Registry,
		src:    opts.Source,
		store:  opts.Store,
		view:   opts.View,
		mode:   opts.Mode,
		notify: notify,
		logger: logger.With("component", "coordinator"),
		dirty:  true,
	}
}

// Run loops until ctx is cancelled or a fatal error occurs. Cancellation is
// not an error.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		view := c.view.Load()
		c.extract(view.Budget())
		if c.dirty {
			seq := c.publish(view)
			c.dirty = false
			c.notify(seq)
		}

		ev, err := c.src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for changes: %w", err)
		}
		if err := c.handle(ev); err != nil {
			return err
		}
	}
}

// extract refreshes every pending file. A zero budget leaves them pending.
func (c *Coordinator) extract(budget int) {
	if budget <= 0 || !c.reg.Pending() {
		return
	}
	for _, f := range c.reg.Files() {
		if !f.Pending() {
			continue
		}
		ok, err := f.Extract(budget)
		if err != nil {
			c.logger.Warn("tail extraction failed", "path", f.Path, "error", err)
			c.notify(c.store.RecordError(err))
			continue
		}
		if ok {
			c.dirty = true
		}
	}
}

func (c *Coordinator) publish(view state.ViewState) uint64 {
	var detail *state.Detail
	if f := c.reg.File(view.Selected); f != nil && view.DetailOpen() {
		// The file on screen in the detail pane never shows its own marker.
		f.ClearMarker()
		detail = &state.Detail{
			Index:   view.Selected,
			Name:    f.Name,
			Path:    f.Path,
			Text:    string(f.Tail()),
			Size:    f.Size,
			ModTime: f.ModTime,
		}
	}

	files := c.reg.Files()
	rows := make([]state.Row, len(files))
	for i, f := range files {
		rows[i] = state.Row{
			Name:    f.Name,
			Path:    f.Path,
			Line:    f.Line(),
			Updated: f.State == registry.Updated,
			Size:    f.Size,
			ModTime: f.ModTime,
		}
	}

	seq := c.store.Publish(c.mode, rows, detail)
	for _, f := range files {
		f.MarkPublished(seq)
	}
	c.logger.Debug("published snapshot", "seq", seq, "detail", detail != nil)
	return seq
}

func (c *Coordinator) handle(ev source.Event) error {
	switch ev.Kind {
	case source.FileChanged:
		return c.fileChanged(ev)

	case source.ResizeRequested:
		for _, f := range c.reg.Files() {
			f.MarkPending()
		}
		c.dirty = true

	case source.DetailToggled, source.SelectionChanged:
		view := c.view.Load()
		if f := c.reg.File(view.Selected); f != nil && view.DetailOpen() {
			f.MarkPending()
		}
		if ev.Kind == source.DetailToggled {
			c.dirty = true
		}

	case source.Rendered:
		for _, f := range c.reg.Files() {
			f.Acknowledge(ev.Seq)
		}

	case source.Rescan:
		for _, f := range c.reg.Files() {
			changed, err := f.Stat()
			if err != nil {
				return fmt.Errorf("rescan %s: %w: %w", f.Path, source.ErrVanished, err)
			}
			if changed {
				f.MarkUpdated()
			}
		}

	case source.Error:
		c.logger.Warn("change source error", "error", ev.Err)
		c.notify(c.store.RecordError(ev.Err))

	default:
		c.logger.Debug("ignoring event", "kind", ev.Kind.String())
	}
	return nil
}

func (c *Coordinator) fileChanged(ev source.Event) error {
	f := c.reg.File(ev.Index)
	if f == nil {
		c.logger.Debug("change for unknown file", "index", ev.Index)
		return nil
	}
	if !ev.Replaced {
		// An unlinked file still held open only reports an attribute change.
		if _, err := f.Stat(); err != nil {
			return fmt.Errorf("stat %s: %w: %w", f.Path, source.ErrVanished, err)
		}
		f.MarkUpdated()
		return nil
	}

	reopened, err := f.Reopen()
	if err != nil {
		return fmt.Errorf("reopen %s: %w", f.Path, err)
	}
	if reopened {
		c.logger.Info("file replaced, reopened", "path", f.Path)
		if rw, ok := c.src.(source.Rewatcher); ok {
			if err := rw.Rewatch(ev.Index); err != nil {
				return err
			}
		}
	}
	f.MarkUpdated()
	return nil
}
