package state

import (
	"reflect"
	"testing"

	"github.com/five82/backoffice/internal/api"
)

type unknownAction struct{}

func (unknownAction) action() {}

func items(ids ...string) []api.Item {
	out := make([]api.Item, len(ids))
	for i, id := range ids {
		out[i] = api.Item{ID: id, Title: "Item " + id}
	}
	return out
}

func TestReduce_UnknownActionIsIdentity(t *testing.T) {
	s := Reduce(Initial(), LoadItems{Items: items("1", "2")})
	s = Reduce(s, ToggleRowSelection{ID: "1", Checked: true})

	got := Reduce(s, unknownAction{})
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("unknown action changed state: got %#v want %#v", got, s)
	}
	if got := Reduce(s, nil); !reflect.DeepEqual(got, s) {
		t.Fatalf("nil action changed state")
	}
}

func TestReduce_SetSearchQueryAlwaysResetsPage(t *testing.T) {
	for _, page := range []int{-3, 0, 1, 2, 99} {
		s := Initial()
		s.CurrentPage = page
		got := Reduce(s, SetSearchQuery{Query: "alpha"})
		if got.CurrentPage != 1 {
			t.Fatalf("page %d: CurrentPage = %d, want 1", page, got.CurrentPage)
		}
		if got.SearchQuery != "alpha" {
			t.Fatalf("SearchQuery = %q, want alpha", got.SearchQuery)
		}
	}
}

func TestReduce_SetPageIsPlainSetter(t *testing.T) {
	got := Reduce(Initial(), SetPage{Page: 40})
	if got.CurrentPage != 40 {
		t.Fatalf("CurrentPage = %d, want 40", got.CurrentPage)
	}
}

func TestReduce_SelectAllUncheckKeepsOtherPages(t *testing.T) {
	s := Reduce(Initial(), LoadItems{Items: items("1", "2", "3", "4")})
	s = Reduce(s, ToggleRowSelection{ID: "1", Checked: true})
	before := s.SelectedIDs()

	page2 := []string{"3", "4"}
	s = Reduce(s, SelectAll{Checked: true, VisibleIDs: page2})
	if got := s.SelectedIDs(); !reflect.DeepEqual(got, []string{"1", "3", "4"}) {
		t.Fatalf("after select all = %v, want [1 3 4]", got)
	}
	s = Reduce(s, SelectAll{Checked: false, VisibleIDs: page2})
	if got := s.SelectedIDs(); !reflect.DeepEqual(got, before) {
		t.Fatalf("after unselect all = %v, want %v", got, before)
	}
}

func TestReduce_ToggleAndClearSelection(t *testing.T) {
	s := Reduce(Initial(), ToggleRowSelection{ID: "a", Checked: true})
	s = Reduce(s, ToggleRowSelection{ID: "b", Checked: true})
	s = Reduce(s, ToggleRowSelection{ID: "a", Checked: false})
	if got := s.SelectedIDs(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("selection = %v, want [b]", got)
	}
	s = Reduce(s, ClearSelection{})
	if len(s.Selected) != 0 {
		t.Fatalf("selection = %v, want empty", s.SelectedIDs())
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := Reduce(Initial(), ToggleRowSelection{ID: "a", Checked: true})
	_ = Reduce(s, ToggleRowSelection{ID: "b", Checked: true})
	_ = Reduce(s, SelectAll{Checked: false, VisibleIDs: []string{"a"}})
	if got := s.SelectedIDs(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("input selection mutated: %v", got)
	}
}

func TestReduce_LoadItemsPrunesStaleSelection(t *testing.T) {
	s := Reduce(Initial(), LoadItems{Items: items("1", "2", "3")})
	s = Reduce(s, ToggleRowSelection{ID: "2", Checked: true})
	s = Reduce(s, ToggleRowSelection{ID: "3", Checked: true})

	s = Reduce(s, LoadItems{Items: items("1", "3")})
	if got := s.SelectedIDs(); !reflect.DeepEqual(got, []string{"3"}) {
		t.Fatalf("selection = %v, want [3]", got)
	}
	if s.CurrentPage != 1 || s.SearchQuery != "" {
		t.Fatalf("LoadItems touched page/query: %#v", s)
	}
}

func TestReduce_LoadItemsDropsStaleSequence(t *testing.T) {
	s := Reduce(Initial(), LoadItems{Items: items("new"), Seq: 5})
	got := Reduce(s, LoadItems{Items: items("old"), Seq: 4})
	if len(got.Items) != 1 || got.Items[0].ID != "new" {
		t.Fatalf("stale load applied: %#v", got.Items)
	}
	got = Reduce(s, LoadItems{Items: items("newer"), Seq: 6})
	if got.Items[0].ID != "newer" || got.LoadSeq != 6 {
		t.Fatalf("fresh load not applied: %#v seq=%d", got.Items, got.LoadSeq)
	}
}

func TestReduce_LoadItemsClosesDialogForVanishedTarget(t *testing.T) {
	s := Reduce(Initial(), LoadItems{Items: items("1", "2")})
	target := s.Items[1]
	s = Reduce(s, OpenDelete{Item: target})
	if s.Dialog.Mode != DialogDelete || s.Dialog.TargetID() != "2" {
		t.Fatalf("dialog = %#v, want delete of 2", s.Dialog)
	}

	kept := Reduce(s, LoadItems{Items: items("1", "2")})
	if kept.Dialog.Mode != DialogDelete {
		t.Fatalf("dialog closed although target still present")
	}
	gone := Reduce(s, LoadItems{Items: items("1")})
	if gone.Dialog.Mode != DialogClosed {
		t.Fatalf("dialog = %v, want closed after target vanished", gone.Dialog.Mode)
	}
}

func TestReduce_DialogTransitions(t *testing.T) {
	s := Reduce(Initial(), OpenForm{})
	if !s.Dialog.IsCreate() {
		t.Fatalf("OpenForm(nil) should be create mode: %#v", s.Dialog)
	}

	item := api.Item{ID: "7", Title: "Seven", Categories: []api.Category{{ID: "c1"}}}
	s = Reduce(s, OpenForm{Item: &item})
	if s.Dialog.Mode != DialogForm || s.Dialog.IsCreate() || s.Dialog.TargetID() != "7" {
		t.Fatalf("OpenForm(item) = %#v, want edit of 7", s.Dialog)
	}
	item.Categories[0].ID = "mutated"
	if s.Dialog.Target.Categories[0].ID != "c1" {
		t.Fatalf("dialog target shares memory with caller")
	}

	s = Reduce(s, OpenDelete{Item: item})
	if s.Dialog.Mode != DialogDelete {
		t.Fatalf("OpenDelete should replace the form: %#v", s.Dialog)
	}
	s = Reduce(s, CloseDelete{})
	if s.Dialog.Mode != DialogClosed || s.Dialog.Target != nil {
		t.Fatalf("CloseDelete = %#v, want closed", s.Dialog)
	}
	s = Reduce(Reduce(s, OpenForm{}), CloseForm{})
	if s.Dialog.Mode != DialogClosed {
		t.Fatalf("CloseForm = %#v, want closed", s.Dialog)
	}

	s = Reduce(Reduce(s, OpenDelete{Item: item}), CloseForm{})
	if s.Dialog.Mode != DialogDelete {
		t.Fatalf("CloseForm closed a delete dialog: %#v", s.Dialog)
	}
}

func TestReduce_OpenIgnoredWhileSubmitting(t *testing.T) {
	s := Reduce(Initial(), OpenForm{})
	s = Reduce(s, SubmitStarted{})
	s = Reduce(s, CloseForm{})
	if !s.Submitting {
		t.Fatalf("CloseForm should not clear Submitting")
	}
	s = Reduce(s, OpenDelete{Item: api.Item{ID: "1"}})
	if s.Dialog.Mode != DialogClosed {
		t.Fatalf("OpenDelete applied while submitting: %#v", s.Dialog)
	}
	s = Reduce(s, SubmitFinished{})
	s = Reduce(s, OpenDelete{Item: api.Item{ID: "1"}})
	if s.Dialog.Mode != DialogDelete {
		t.Fatalf("OpenDelete after finish = %#v, want delete", s.Dialog)
	}
}
