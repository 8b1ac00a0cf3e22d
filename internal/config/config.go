package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one monitored file listed in the config.
type Entry struct {
	Path string // absolute path
	Name string // display name, the base name unless given explicitly
	Line int    // line number in the config file
}

// Load reads the file list at path. An unreadable file is an error; an empty
// list is not.
func Load(path string) ([]Entry, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	file, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	entries, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", resolved, err)
	}
	return entries, nil
}

// Parse reads one path per line. Leading whitespace is skipped, everything
// after '#' is a comment, and an optional display name may follow the path
// after whitespace. Paths seen earlier in the list are dropped.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		path, err := expandPath(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if seen[path] {
			continue
		}
		seen[path] = true

		name := strings.Join(fields[1:], " ")
		if name == "" {
			name = filepath.Base(path)
		}
		entries = append(entries, Entry{Path: path, Name: name, Line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
