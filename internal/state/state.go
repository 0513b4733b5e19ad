package state

import (
	"sort"

	"github.com/five82/backoffice/internal/api"
)

// DefaultPageSize matches the list views' itemsPerPage default.
const DefaultPageSize = 5

// DialogMode enumerates which modal is active.
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogForm
	DialogDelete
)

func (m DialogMode) String() string {
	switch m {
	case DialogForm:
		return "form"
	case DialogDelete:
		return "delete"
	default:
		return "closed"
	}
}

// Dialog is the single active modal. Target is nil for a create form and set
// for edit and delete.
type Dialog struct {
	Mode   DialogMode
	Target *api.Item
}

// IsCreate reports whether the form dialog is creating a new record.
func (d Dialog) IsCreate() bool {
	return d.Mode == DialogForm && d.Target == nil
}

// TargetID returns the id of the targeted item, empty for create or closed.
func (d Dialog) TargetID() string {
	if d.Target == nil {
		return ""
	}
	return d.Target.ID
}

// TableState is the whole state of one list view.
type TableState struct {
	Items       []api.Item
	CurrentPage int
	SearchQuery string
	Selected    map[string]struct{}
	Dialog      Dialog
	// Submitting is set while a create, update or delete for the open dialog
	// is in flight.
	Submitting bool
	// LoadSeq is the sequence number of the last applied LoadItems.
	LoadSeq uint64
}

// Initial returns the state a list view mounts with.
func Initial() TableState {
	return TableState{
		CurrentPage: 1,
		Selected:    map[string]struct{}{},
	}
}

// IsSelected reports whether id is in the selection.
func (s TableState) IsSelected(id string) bool {
	_, ok := s.Selected[id]
	return ok
}

// SelectedIDs returns the selection sorted for stable output.
func (s TableState) SelectedIDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for id := range s.Selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy.
func (s TableState) Clone() TableState {
	dup := s
	if s.Items != nil {
		dup.Items = make([]api.Item, len(s.Items))
		for i, it := range s.Items {
			dup.Items[i] = it.Clone()
		}
	}
	dup.Selected = cloneSet(s.Selected)
	if s.Dialog.Target != nil {
		target := s.Dialog.Target.Clone()
		dup.Dialog.Target = &target
	}
	return dup
}

func cloneSet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
