package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const appTitle = "logtop"

// renderHeader renders the title bar: name, mode, file counts and the time of
// the last publish or the last error.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render(appTitle, styles.Logo)}
	if mode := m.snapshot.Mode; mode != "" {
		parts = append(parts, bg.Render(strings.ToUpper(mode), styles.AccentText))
	}

	files := m.rowCount()
	parts = append(parts, bg.Render(fmt.Sprintf("%d files", files), styles.Text))
	if changed := m.changedCount(); changed > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%s %d changed", UpdatedMarker, changed), styles.Marker))
	}

	if err := m.snapshot.LastError; err != nil {
		parts = append(parts, bg.Render("ERROR "+truncate(err.Error(), 60), styles.DangerText))
	} else if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

func (m Model) changedCount() int {
	n := 0
	for _, row := range m.snapshot.Rows {
		if row.Updated {
			n++
		}
	}
	return n
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	if m.selected >= 0 {
		commands = []cmd{
			{"j/k", "Navigate"},
			{"any", "Close"},
			{"q", "Quit"},
		}
	} else {
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"?", "Help"},
			{"q", "Quit"},
		}
	}

	compact := m.width < LayoutCompactWidth
	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		seg := bg.Render(c.key, styles.AccentText)
		if !compact {
			seg += colon + bg.Render(c.desc, styles.MutedText)
		}
		segments = append(segments, seg)
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
