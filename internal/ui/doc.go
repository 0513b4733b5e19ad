// Package ui provides the terminal interface for backoffice.
//
// # Architecture Overview
//
// The interface is a Bubble Tea program. Model owns presentation state only
// (cursor, focused inputs, toasts, the open modal); every list fact comes from
// the Session's state.Store. Key handlers dispatch state actions, and network
// work runs as tea.Cmd goroutines that report back as messages.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key routing and Run
//   - commands.go: tea.Cmd constructors and result messages
//   - render.go: header, command bar, record table and footer
//   - form.go, confirm.go, modal.go: add/edit form and delete prompts
//   - detail.go: glamour preview of the record under the cursor
//   - activity.go: tail of the log file
//   - keys.go, help.go: key bindings and the help overlay
//   - theme.go, style_helpers.go, strings.go: palette and text helpers
//
// # Dialogs
//
// The form and single-record delete prompt mirror state.Dialog. After each
// store change syncDialog opens or closes the matching modal, so a reload
// that drops a dialog's record also closes the modal. The bulk delete prompt
// is local to the UI.
//
// # Resource switching
//
// Tab asks the Opener for the next resource's Session. Results carry the
// resource name they were issued for, and results for a resource that is no
// longer shown are dropped.
//
// # Key Bindings
//
//   - j/k: Move cursor
//   - h/l, g/G: Previous/next, first/last page
//   - Space: Toggle row selection; a: Select or clear the visible page
//   - /: Live title search; Esc clears search, then selection
//   - n: New record; e/Enter: Edit; d: Delete; D: Delete selected
//   - v: Toggle preview; L: Activity log; Tab: Next resource
//   - T: Cycle theme; ?: Help; q or Ctrl+C: Quit
package ui
