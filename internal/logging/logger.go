package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// Options describes logger construction parameters.
type Options struct {
	Level string
	// File receives every record when set. Parent directories are created.
	File string
	// Console receives records until MuteConsole. Defaults to os.Stderr.
	Console io.Writer
}

// Sink owns the outputs behind a logger built by New.
type Sink struct {
	console atomic.Bool
	file    *os.File
}

// New constructs a logger and the sink controlling its outputs.
func New(opts Options) (*slog.Logger, *Sink, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(ParseLevel(opts.Level))
	handlerOpts := &slog.HandlerOptions{Level: levelVar}

	sink := &Sink{}
	sink.console.Store(true)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	handlers := []slog.Handler{
		&gateHandler{inner: slog.NewTextHandler(console, handlerOpts), open: &sink.console},
	}

	if path := strings.TrimSpace(opts.File); path != "" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("ensure log directory: %w", err)
			}
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		sink.file = file
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	}

	return slog.New(newFanoutHandler(handlers...)), sink, nil
}

// MuteConsole stops mirroring records to the console writer.
func (s *Sink) MuteConsole() {
	s.console.Store(false)
}

// Close closes the log file, if any.
func (s *Sink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
