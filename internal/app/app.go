package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logtop/internal/config"
	"github.com/five82/logtop/internal/prefs"
	"github.com/five82/logtop/internal/registry"
	"github.com/five82/logtop/internal/source"
	"github.com/five82/logtop/internal/state"
	"github.com/five82/logtop/internal/ui"
)

// Options configure the logtop application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/logtop/prefs.toml
	Prefs      prefs.Prefs
	// Mode overrides Prefs.Mode when set.
	Mode string
	// Rescan is the interval of the stat safety net; zero disables it.
	Rescan time.Duration
	Logger *slog.Logger
	// BeforeUI runs after startup succeeded, right before the terminal is
	// taken over.
	BeforeUI func()
	// Input and Output default to the process terminal.
	Input  io.Reader
	Output io.Writer
}

// Run boots the logtop TUI until the user quits, the context is cancelled or
// the coordinator hits a fatal error.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	modeName := opts.Mode
	if modeName == "" {
		modeName = opts.Prefs.Mode
	}
	mode, err := source.ParseMode(modeName)
	if err != nil {
		return err
	}

	reg, err := registry.Open(entries, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := reg.Close(); err != nil {
			logger.Warn("close files", "error", err)
		}
	}()

	inbox := source.NewInbox()
	src, resolved, err := source.New(mode, reg.Paths(), inbox, source.Options{
		PollInterval: opts.Prefs.PollEvery(),
		Rescan:       opts.Rescan,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("start %s source: %w", resolved, err)
	}
	defer src.Close()
	logger.Info("monitoring files", "count", reg.Len(), "mode", string(resolved), "rescan", opts.Rescan)

	store := &state.Store{}
	view := state.NewView(inbox)

	model := ui.New(ui.Options{
		Store:     store,
		View:      view,
		ThemeName: opts.Prefs.Theme,
		Prefs:     opts.Prefs,
		PrefsPath: opts.PrefsPath,
		FileCount: reg.Len(),
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	program := tea.NewProgram(model, programOpts...)

	coord := NewCoordinator(CoordinatorOptions{
		Registry: reg,
		Source:   src,
		Store:    store,
		View:     view,
		Mode:     string(resolved),
		Notify:   func(seq uint64) { program.Send(ui.SnapshotMsg{Seq: seq}) },
		Logger:   logger,
	})

	coordErr := make(chan error, 1)
	go func() {
		err := coord.Run(ctx)
		if err != nil {
			program.Send(ui.FatalMsg{Err: err})
		}
		coordErr <- err
	}()

	if opts.BeforeUI != nil {
		opts.BeforeUI()
	}
	final, runErr := program.Run()
	cancel()
	err = <-coordErr

	if err != nil {
		return err
	}
	if m, ok := final.(ui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", runErr)
	}
	return nil
}
