package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/resource"
	"github.com/five82/backoffice/internal/state"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutDetailWidth is the minimum width to show the preview beside the table.
	LayoutDetailWidth = 110
	// LayoutCompactWidth is the threshold below which optional columns drop.
	LayoutCompactWidth = 90
)

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	height := m.contentHeight()
	switch {
	case m.mode == viewActivity:
		b.WriteString(m.renderActivity())
	case m.showDetail && m.width >= LayoutDetailWidth:
		tableWidth := m.width * 3 / 5
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderTable(tableWidth, height),
			m.renderDetail(m.width-tableWidth, height),
		))
	case m.showDetail:
		b.WriteString(m.renderDetail(m.width, height))
	default:
		b.WriteString(m.renderTable(m.width, height))
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	b.WriteString(m.renderToast())
	return b.String()
}

// renderHeader renders the title bar.
func (m Model) renderHeader() string {
	b := newBar(m.theme, m.width)
	styles := b.styles

	parts := []string{b.text("backoffice", styles.Logo)}
	if m.session == nil {
		return b.line(parts...)
	}

	res := m.session.Resource()
	parts = append(parts, b.text(res.Title, styles.Text.Bold(true)))

	st := m.store().State()
	view := m.store().View()
	count := fmt.Sprintf("%d", view.Total)
	if st.SearchQuery != "" {
		count = fmt.Sprintf("%d/%d", view.Filtered, view.Total)
	}
	parts = append(parts, b.labeled("Items:", count))

	switch {
	case m.loading:
		parts = append(parts, b.text("Loading...", styles.WarningText.Bold(true)))
	case m.loadErr != nil:
		parts = append(parts, b.text("● "+classifyError(m.loadErr), styles.DangerText))
	case !m.lastLoaded.IsZero():
		parts = append(parts, b.text("● "+m.lastLoaded.Format("15:04:05"), styles.SuccessText))
	}
	if st.Submitting {
		parts = append(parts, b.text("Saving...", styles.WarningText))
	}
	return b.line(parts...)
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	b := newBar(m.theme, m.width)

	type cmd struct{ key, desc string }
	var commands []cmd
	if m.mode == viewActivity {
		follow := "Pause"
		if !m.activity.follow {
			follow = "Follow"
		}
		commands = []cmd{
			{"Space", follow},
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"L", "Table"},
			{"?", "More"},
		}
	} else {
		commands = []cmd{
			{"n", "New"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"space", "Select"},
			{"a", "Page"},
			{"/", "Search"},
			{"h/l", "Pages"},
			{"tab", "Resource"},
			{"v", "Preview"},
			{"?", "More"},
		}
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, b.hint(c.key, c.desc, b.styles.MutedText))
	}
	segments = append(segments, b.hint("T", m.theme.Name, b.styles.FaintText))
	return b.line(segments...)
}

// renderFooter renders pagination, selection and the search box.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.searching {
		return m.search.View()
	}
	store := m.store()
	if store == nil || m.mode == viewActivity {
		return m.help.ShortHelpView(m.keys.ShortHelp())
	}

	st := store.State()
	view := store.View()
	pager := m.pager
	pager.TotalPages = view.TotalPages
	pager.Page = state.ClampPage(st.CurrentPage, view.TotalPages) - 1

	parts := []string{
		pager.View(),
		styles.MutedText.Render(fmt.Sprintf("Page %d of %d", st.CurrentPage, view.TotalPages)),
	}
	if n := len(st.Selected); n > 0 {
		parts = append(parts, styles.AccentText.Render(fmt.Sprintf("%d of %d row(s) selected", n, view.Filtered)))
	}
	if st.SearchQuery != "" {
		parts = append(parts, styles.AccentText.Render("/"+truncate(st.SearchQuery, 24)))
	}
	return strings.Join(parts, "  ")
}

type column struct {
	title string
	width int
	value func(api.Item) string
}

func columnsFor(res resource.Resource, compact bool) []column {
	var cols []column
	for _, f := range res.Fields {
		if f.Name == "title" || f.Format == resource.FormatMultiline {
			continue
		}
		name := f.Name
		width := 12
		switch f.Format {
		case resource.FormatEmail:
			width = 26
		case resource.FormatPhone:
			width = 15
		}
		if compact && name != "status" {
			continue
		}
		cols = append(cols, column{title: f.Label, width: width, value: func(it api.Item) string { return it.Field(name) }})
	}
	if res.HasCategories && !compact {
		cols = append(cols, column{title: "Categories", width: 20, value: func(it api.Item) string {
			names := make([]string, len(it.Categories))
			for i, c := range it.Categories {
				names[i] = firstNonBlank(c.Title, c.ID)
			}
			return strings.Join(names, ", ")
		}})
	}
	cols = append(cols, column{title: "Created", width: 10, value: func(it api.Item) string {
		if ts := it.ParsedCreatedAt(); !ts.IsZero() {
			return ts.Local().Format("2006-01-02")
		}
		return ""
	}})
	return cols
}

// renderTable renders the visible page with a selection column.
func (m Model) renderTable(width, height int) string {
	styles := m.theme.Styles()
	store := m.store()
	if store == nil {
		return styles.MutedText.Render("No resource open")
	}
	st := store.State()
	view := store.View()
	res := m.session.Resource()

	cols := columnsFor(res, width < LayoutCompactWidth)
	fixed := 4 // checkbox + gap
	for _, c := range cols {
		fixed += c.width + 1
	}
	titleWidth := width - fixed - 2
	for titleWidth < 16 && len(cols) > 1 {
		fixed -= cols[len(cols)-1].width + 1
		cols = cols[:len(cols)-1]
		titleWidth = width - fixed - 2
	}
	titleWidth = max(titleWidth, 8)

	headerBox := "[ ]"
	if state.IsAllSelected(view.Visible, st.Selected) {
		headerBox = "[x]"
	}
	header := []string{headerBox, cell(titleLabel(res), titleWidth)}
	for _, c := range cols {
		header = append(header, cell(c.title, c.width))
	}

	lines := []string{styles.MutedText.Bold(true).Render(strings.Join(header, " "))}
	if len(view.Visible) == 0 {
		msg := "No records"
		switch {
		case m.loading:
			msg = "Loading..."
		case st.SearchQuery != "":
			msg = fmt.Sprintf("No records match %q", st.SearchQuery)
		}
		lines = append(lines, styles.MutedText.Render(msg))
	}
	for i, it := range view.Visible {
		box := "[ ]"
		if st.IsSelected(it.ID) {
			box = "[x]"
		}
		row := []string{box, cell(singleLine(it.Title), titleWidth)}
		for _, c := range cols {
			v := singleLine(c.value(it))
			if c.title == "Status" && v != "" {
				row = append(row, padRight(styles.StatusStyle(v).Render(truncate(v, c.width-2)), c.width))
				continue
			}
			row = append(row, cell(v, c.width))
		}
		line := strings.Join(row, " ")
		if i == m.cursor {
			line = styles.Selected.Width(width - 2).Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().Padding(0, 1).Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func titleLabel(res resource.Resource) string {
	if f, ok := res.FieldByName("title"); ok {
		return f.Label
	}
	return "Title"
}

func classifyError(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("HTTP %d", se.Code)
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}
