package state

import "github.com/five82/backoffice/internal/api"

// Reduce returns the state that results from applying a to s. It never
// mutates s and returns s unchanged for actions it does not model.
func Reduce(s TableState, a Action) TableState {
	switch a := a.(type) {
	case LoadItems:
		return loadItems(s, a)

	case SetSearchQuery:
		s.SearchQuery = a.Query
		s.CurrentPage = 1
		return s

	case SetPage:
		s.CurrentPage = a.Page
		return s

	case ToggleRowSelection:
		sel := cloneSet(s.Selected)
		if a.Checked {
			sel[a.ID] = struct{}{}
		} else {
			delete(sel, a.ID)
		}
		s.Selected = sel
		return s

	case SelectAll:
		sel := cloneSet(s.Selected)
		for _, id := range a.VisibleIDs {
			if a.Checked {
				sel[id] = struct{}{}
			} else {
				delete(sel, id)
			}
		}
		s.Selected = sel
		return s

	case ClearSelection:
		s.Selected = map[string]struct{}{}
		return s

	case OpenForm:
		if s.Submitting {
			return s
		}
		var target *api.Item
		if a.Item != nil {
			dup := a.Item.Clone()
			target = &dup
		}
		s.Dialog = Dialog{Mode: DialogForm, Target: target}
		return s

	case OpenDelete:
		if s.Submitting {
			return s
		}
		dup := a.Item.Clone()
		s.Dialog = Dialog{Mode: DialogDelete, Target: &dup}
		return s

	case CloseForm:
		if s.Dialog.Mode == DialogForm {
			s.Dialog = Dialog{}
		}
		return s

	case CloseDelete:
		if s.Dialog.Mode == DialogDelete {
			s.Dialog = Dialog{}
		}
		return s

	case SubmitStarted:
		s.Submitting = true
		return s

	case SubmitFinished:
		s.Submitting = false
		return s
	}
	return s
}

func loadItems(s TableState, a LoadItems) TableState {
	if a.Seq != 0 && a.Seq < s.LoadSeq {
		return s
	}
	if a.Seq > s.LoadSeq {
		s.LoadSeq = a.Seq
	}

	items := make([]api.Item, len(a.Items))
	present := make(map[string]struct{}, len(a.Items))
	for i, it := range a.Items {
		items[i] = it.Clone()
		present[it.ID] = struct{}{}
	}
	s.Items = items

	sel := make(map[string]struct{}, len(s.Selected))
	for id := range s.Selected {
		if _, ok := present[id]; ok {
			sel[id] = struct{}{}
		}
	}
	s.Selected = sel

	if t := s.Dialog.Target; t != nil {
		if _, ok := present[t.ID]; !ok {
			s.Dialog = Dialog{}
		}
	}
	return s
}
