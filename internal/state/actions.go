package state

import "github.com/five82/backoffice/internal/api"

// Action is a state transition request. The set is closed: only types in
// this package implement it.
type Action interface {
	action()
}

// LoadItems replaces the canonical list. Seq orders concurrent reloads; a
// load older than the last applied one is dropped. Zero Seq always applies.
type LoadItems struct {
	Items []api.Item
	Seq   uint64
}

// SetSearchQuery sets the title filter and restarts pagination.
type SetSearchQuery struct{ Query string }

// SetPage sets the current page without bounds checks.
type SetPage struct{ Page int }

// ToggleRowSelection adds or removes one id.
type ToggleRowSelection struct {
	ID      string
	Checked bool
}

// SelectAll adds (Checked) or removes the visible page's ids. Ids outside
// VisibleIDs are never touched.
type SelectAll struct {
	Checked    bool
	VisibleIDs []string
}

// ClearSelection empties the selection.
type ClearSelection struct{}

// OpenForm opens the add/edit dialog. A nil Item means create.
type OpenForm struct{ Item *api.Item }

// CloseForm closes the add/edit dialog.
type CloseForm struct{}

// OpenDelete opens the delete confirmation for Item.
type OpenDelete struct{ Item api.Item }

// CloseDelete closes the delete confirmation.
type CloseDelete struct{}

// SubmitStarted marks the open dialog's request as in flight.
type SubmitStarted struct{}

// SubmitFinished clears the in-flight mark.
type SubmitFinished struct{}

func (LoadItems) action()          {}
func (SetSearchQuery) action()     {}
func (SetPage) action()            {}
func (ToggleRowSelection) action() {}
func (SelectAll) action()          {}
func (ClearSelection) action()     {}
func (OpenForm) action()           {}
func (CloseForm) action()          {}
func (OpenDelete) action()         {}
func (CloseDelete) action()        {}
func (SubmitStarted) action()      {}
func (SubmitFinished) action()     {}
