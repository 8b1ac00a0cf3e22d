package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders bar segments on a solid background. Styling each word and
// joining with pre-styled spaces keeps the background from breaking at the
// reset codes lipgloss emits between segments.
type BgStyle struct {
	bg    lipgloss.Color
	plain lipgloss.Style
}

// NewBgStyle returns a BgStyle for the given background color.
func NewBgStyle(color string) BgStyle {
	bg := lipgloss.Color(color)
	return BgStyle{bg: bg, plain: lipgloss.NewStyle().Background(bg)}
}

// Render draws text with style on the bar background, spaces included.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.plain.Render(" "))
}

// Spaces returns n spaces on the bar background.
func (b BgStyle) Spaces(n int) string {
	return b.plain.Render(strings.Repeat(" ", n))
}

// Sep returns sep on the bar background.
func (b BgStyle) Sep(sep string) string {
	return b.plain.Render(sep)
}
