package state

import "github.com/five82/backoffice/internal/api"

// IsAllSelected reports whether every visible item is selected. An empty
// slice is never "all selected".
func IsAllSelected(visible []api.Item, selected map[string]struct{}) bool {
	if len(visible) == 0 {
		return false
	}
	for _, it := range visible {
		if _, ok := selected[it.ID]; !ok {
			return false
		}
	}
	return true
}

// ToggleAll returns the SelectAll action the header checkbox dispatches: it
// selects the page when not everything on it is selected, and clears the page
// otherwise.
func ToggleAll(visible []api.Item, selected map[string]struct{}) SelectAll {
	ids := make([]string, len(visible))
	for i, it := range visible {
		ids[i] = it.ID
	}
	return SelectAll{Checked: !IsAllSelected(visible, selected), VisibleIDs: ids}
}
