// Package prefs handles logtop user preferences persistence.
// Preferences are stored in ~/.config/logtop/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for logtop. Command-line flags override them.
type Prefs struct {
	Theme        string `toml:"theme"`
	Mode         string `toml:"mode"`
	PollInterval string `toml:"poll_interval"`
	LogFile      string `toml:"log_file,omitempty"`
	LogLevel     string `toml:"log_level,omitempty"`
}

const (
	defaultPrefsPath    = "~/.config/logtop/prefs.toml"
	defaultTheme        = "Nightfox"
	defaultMode         = "auto"
	defaultPollInterval = 25 * time.Millisecond
)

// Defaults returns the preferences used when no file exists.
func Defaults() Prefs {
	return Prefs{
		Theme:        defaultTheme,
		Mode:         defaultMode,
		PollInterval: defaultPollInterval.String(),
	}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// PollEvery parses PollInterval, falling back to the default for empty,
// malformed or non-positive values.
func (p Prefs) PollEvery() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(p.PollInterval))
	if err != nil || d <= 0 {
		return defaultPollInterval
	}
	return d
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Defaults(), nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Defaults(), nil // Graceful degradation
	}

	prefs := Defaults()
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Defaults(), nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	if strings.TrimSpace(prefs.Mode) == "" {
		prefs.Mode = defaultMode
	}
	if strings.TrimSpace(prefs.PollInterval) == "" {
		prefs.PollInterval = defaultPollInterval.String()
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
