package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/resource"
)

// detailPane renders the selected record as markdown. Output is cached per
// record and width since glamour rendering is comparatively slow.
type detailPane struct {
	renderer *glamour.TermRenderer
	width    int
	key      string
	out      string
}

func (d *detailPane) render(res resource.Resource, item api.Item, width int) string {
	cacheKey := fmt.Sprintf("%s|%s|%s|%s", res.Name, item.ID, item.Title, item.CreatedAt)
	if d.renderer != nil && d.width == width && d.key == cacheKey {
		return d.out
	}
	if d.renderer == nil || d.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(max(width-4, 20)),
		)
		if err != nil {
			return item.Description
		}
		d.renderer = r
		d.width = width
	}
	out, err := d.renderer.Render(itemMarkdown(res, item))
	if err != nil {
		out = itemMarkdown(res, item)
	}
	d.key, d.out = cacheKey, strings.TrimRight(out, "\n")
	return d.out
}

// itemMarkdown describes item as a markdown document.
func itemMarkdown(res resource.Resource, item api.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", firstNonBlank(item.Title, "(untitled)"))

	var meta []string
	for _, f := range res.Fields {
		if f.Name == "title" || f.Format == resource.FormatMultiline {
			continue
		}
		if v := item.Field(f.Name); v != "" {
			meta = append(meta, fmt.Sprintf("- **%s:** %s", f.Label, v))
		}
	}
	if res.HasCategories && len(item.Categories) > 0 {
		names := make([]string, len(item.Categories))
		for i, c := range item.Categories {
			names[i] = firstNonBlank(c.Title, c.ID)
		}
		meta = append(meta, "- **Categories:** "+strings.Join(names, ", "))
	}
	if ts := item.ParsedCreatedAt(); !ts.IsZero() {
		meta = append(meta, "- **Created:** "+ts.Local().Format("2006-01-02 15:04"))
	}
	if item.Image != "" {
		meta = append(meta, "- **Image:** "+item.Image)
	}
	meta = append(meta, "- **ID:** `"+item.ID+"`")
	b.WriteString(strings.Join(meta, "\n"))
	b.WriteString("\n")

	if item.Description != "" {
		b.WriteString("\n---\n\n")
		b.WriteString(item.Description)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail(width, height int) string {
	styles := m.theme.Styles()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Width(max(width-2, 10)).
		Height(max(height-2, 1))

	item, ok := m.currentItem()
	if !ok {
		return box.Render(styles.MutedText.Render("Nothing selected"))
	}
	out := m.detail.render(m.session.Resource(), item, width-2)
	lines := strings.Split(out, "\n")
	if len(lines) > height-2 {
		lines = lines[:max(height-2, 1)]
	}
	return box.Render(strings.Join(lines, "\n"))
}
