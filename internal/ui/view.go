package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// renderMain renders the header, the command bar and either the file list
// or the detail pane.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if m.selected >= 0 {
		b.WriteString(m.renderDetail())
	} else {
		b.WriteString(m.renderList())
	}
	return b.String()
}

// nameWidth sizes the name column to the longest name within bounds.
func (m Model) nameWidth() int {
	w := nameMinWidth
	for _, row := range m.snapshot.Rows {
		if n := len([]rune(row.Name)); n > w {
			w = n
		}
	}
	if w > nameMaxWidth {
		w = nameMaxWidth
	}
	return w
}

// renderList renders one row per file: marker, name and last line. The
// cursor row is highlighted and the list scrolls to keep it visible.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	height := listHeight(m.height)
	rows := m.snapshot.Rows

	if len(rows) == 0 {
		return styles.FaintText.Render("Waiting for files...")
	}

	start := 0
	if m.cursor >= height && height > 0 {
		start = m.cursor - height + 1
	}
	end := min(len(rows), start+height)

	nameW := m.nameWidth()
	lineW := m.width - markerWidth - nameW - 1
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := rows[i]
		marker := ternary(row.Updated, UpdatedMarker, " ")
		name := padRight(truncate(row.Name, nameW), nameW)
		line := clipLine(row.Line, lineW)

		if i == m.cursor {
			text := padRight(marker+" "+name+" "+line, m.width)
			lines = append(lines, styles.Selected.Render(text))
			continue
		}
		lines = append(lines,
			styles.Marker.Render(marker)+" "+
				styles.AccentText.Render(name)+" "+
				styles.Text.Render(line))
	}
	return strings.Join(lines, "\n")
}

// renderDetail renders the selected file's tail in a bordered box titled
// with the file name.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	rows, cols := detailSize(m.width, m.height)

	name := ""
	if m.selected < len(m.snapshot.Rows) {
		name = m.snapshot.Rows[m.selected].Name
	}
	title := styles.AccentText.Bold(true).Render("[" + name + "]")
	if d := m.snapshot.Detail; d != nil && d.Index == m.selected {
		info := fmt.Sprintf("%s  %s  modified %s",
			truncateMiddle(d.Path, maxInt(cols/2, 10)),
			humanize.IBytes(uint64(max(d.Size, 0))),
			humanize.Time(d.ModTime))
		title += " " + styles.FaintText.Render(info)
	}
	title = lipgloss.NewStyle().MaxWidth(cols).Render(title)

	body := title + "\n" + m.detail.View()
	return styles.DetailBox.
		Width(cols).
		Height(rows + 1).
		Render(body)
}
