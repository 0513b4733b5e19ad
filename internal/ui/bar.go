package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bar paints the header and command bar. Every segment, including the
// spaces inside and between segments, carries the surface color; lipgloss
// resets between separately styled strings would otherwise leave holes.
type bar struct {
	styles Styles
	bg     lipgloss.Color
	paint  lipgloss.Style
	width  int
}

func newBar(t Theme, width int) bar {
	bg := lipgloss.Color(t.Surface)
	return bar{
		styles: t.Styles().WithBackground(t.Surface),
		bg:     bg,
		paint:  lipgloss.NewStyle().Background(bg),
		width:  width,
	}
}

// text renders s word by word so inner spaces keep the bar color.
func (b bar) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.paint.Render(" "))
}

// labeled renders "label value" with the label muted.
func (b bar) labeled(label, value string) string {
	return b.text(label, b.styles.MutedText) + b.paint.Render(" ") + b.text(value, b.styles.Text)
}

// hint renders one "key:desc" command hint.
func (b bar) hint(key, desc string, descStyle lipgloss.Style) string {
	return b.text(key, b.styles.AccentText) + b.paint.Render(":") + b.text(desc, descStyle)
}

// line joins segments two painted spaces apart and fills the bar width.
func (b bar) line(segments ...string) string {
	kept := segments[:0:0]
	for _, s := range segments {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return b.styles.Header.Width(b.width).Render(strings.Join(kept, b.paint.Render("  ")))
}
