package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const confirmWidth = 52

// confirmDeleteMsg asks the model to delete the dialog's record.
type confirmDeleteMsg struct{}

// confirmBulkDeleteMsg asks the model to delete every selected record.
type confirmBulkDeleteMsg struct{}

// confirmModal is a yes/no prompt. It serves the single-record delete
// dialog and the bulk delete prompt.
type confirmModal struct {
	title   string
	body    string
	confirm tea.Msg
	busy    bool
	err     string
}

func newDeleteModal(noun, title string) *confirmModal {
	return &confirmModal{
		title:   "Delete " + noun,
		body:    fmt.Sprintf("Delete %q? This cannot be undone.", truncate(title, 60)),
		confirm: confirmDeleteMsg{},
	}
}

func newBulkDeleteModal(noun string, count int) *confirmModal {
	what := noun
	if count != 1 {
		what = "records"
	}
	return &confirmModal{
		title:   "Delete selected",
		body:    fmt.Sprintf("Delete %d selected %s? This cannot be undone.", count, strings.ToLower(what)),
		confirm: confirmBulkDeleteMsg{},
	}
}

// Update implements Modal.
func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || c.busy {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Yes):
		c.busy = true
		c.err = ""
		out := c.confirm
		return c, func() tea.Msg { return out }, false
	case key.Matches(km, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

// View implements Modal.
func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render(c.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", confirmWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.body))
	b.WriteString("\n\n")
	switch {
	case c.busy:
		b.WriteString(styles.WarningText.Render("Deleting..."))
	case c.err != "":
		b.WriteString(styles.DangerText.Render(c.err))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("y: Retry  •  n/Esc: Cancel"))
	default:
		b.WriteString(styles.FaintText.Render("y/Enter: Delete  •  n/Esc: Cancel"))
	}
	return placeModal(theme, width, height, confirmWidth, b.String())
}
