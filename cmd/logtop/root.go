package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/five82/logtop/internal/app"
	"github.com/five82/logtop/internal/logging"
	"github.com/five82/logtop/internal/prefs"
)

const defaultDelay = 10

var errNotTerminal = errors.New("stdout is not a terminal")

// usageError marks a command line mistake; main prints the usage after it.
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type rootFlags struct {
	delay     int
	poll      bool
	mode      string
	prefsPath string
	logFile   string
	logLevel  string
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "logtop <config>",
		Short: "Watch the last line of many log files",
		Long: `logtop shows the last line of every file listed in <config>, one file per
line, and marks files that changed since you last looked at them. Select a
file to see as much of its end as fits the terminal.

<config> lists one path per line, optionally followed by a display name.
Lines starting with # are ignored.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{cmd: cmd, err: fmt.Errorf("expected 1 config path, got %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.delay < 0 {
				return usageError{cmd: cmd, err: fmt.Errorf("invalid delay %d: must be >= 0", flags.delay)}
			}
			return runMonitor(cmd, args[0], flags)
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{cmd: cmd, err: err}
	})

	fs := rootCmd.Flags()
	fs.IntVarP(&flags.delay, "delay", "d", defaultDelay, "Seconds between full rescans of every file (0 disables)")
	fs.BoolVar(&flags.poll, "poll", false, "Detect changes by polling instead of file notifications")
	fs.StringVar(&flags.mode, "mode", "", "Change detection: auto, notify or poll (default from prefs)")
	fs.StringVar(&flags.logFile, "log-file", "", "Write diagnostics to this file")
	fs.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "Preferences file path (default ~/.config/logtop/prefs.toml)")

	rootCmd.AddCommand(newCheckCommand())
	return rootCmd
}

func runMonitor(cmd *cobra.Command, configPath string, flags rootFlags) error {
	prefsPath := flags.prefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	p, err := prefs.Load(prefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	logFile := flags.logFile
	if logFile == "" {
		logFile = p.LogFile
	}
	logLevel := flags.logLevel
	if logLevel == "" {
		logLevel = p.LogLevel
	}
	logger, sink, err := logging.New(logging.Options{
		Level:   logLevel,
		File:    logFile,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = sink.Close() }()

	if !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	mode := flags.mode
	if flags.poll {
		mode = "poll"
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx, app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		Prefs:      p,
		Mode:       mode,
		Rescan:     time.Duration(flags.delay) * time.Second,
		Logger:     logger,
		BeforeUI:   sink.MuteConsole,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("logtop stopped", "error", err)
	}
	return err
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
