package ui

import tea "github.com/charmbracelet/bubbletea"

// Modal is a dialog drawn over the main view. Update returns the updated
// modal, a command, and whether the modal asked to close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}
