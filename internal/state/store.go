package state

import (
	"sync"

	"github.com/five82/backoffice/internal/api"
)

// Store owns one list view's TableState. All transitions go through
// Dispatch, which applies Reduce and then pulls the page back into range.
// The zero value is ready to use with DefaultPageSize.
type Store struct {
	mu       sync.RWMutex
	state    TableState
	init     bool
	pageSize int
	seq      uint64
}

// NewStore returns a store for a view showing pageSize rows per page.
func NewStore(pageSize int) *Store {
	return &Store{pageSize: pageSize}
}

// PageSize returns the rows-per-page the store clamps against.
func (s *Store) PageSize() int {
	if s.pageSize <= 0 {
		return DefaultPageSize
	}
	return s.pageSize
}

// Dispatch applies a and returns a copy of the resulting state.
func (s *Store) Dispatch(a Action) TableState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureInit()
	s.state = s.heal(Reduce(s.state, a))
	return s.state.Clone()
}

// State returns a copy of the current state.
func (s *Store) State() TableState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.init {
		return Initial()
	}
	return s.state.Clone()
}

// View derives the visible slice of the current state.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.init {
		return Derive(nil, "", 1, s.PageSize())
	}
	v := Derive(s.state.Items, s.state.SearchQuery, s.state.CurrentPage, s.PageSize())
	v.Visible = cloneItems(v.Visible)
	return v
}

// NextLoadSeq reserves the sequence number for a new reload. Responses
// dispatched with an older number than the last applied one are dropped.
func (s *Store) NextLoadSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	return s.seq
}

// BeginSubmit marks the submission of a mode dialog as in flight and returns
// a copy of that dialog. It returns false when the open dialog is not of
// mode or a submission is already running. The returned Dialog is the one
// checked, so callers can tell the two apart.
func (s *Store) BeginSubmit(mode DialogMode) (Dialog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureInit()
	d := s.state.Clone().Dialog
	if s.state.Submitting || mode == DialogClosed || d.Mode != mode {
		return d, false
	}
	s.state = Reduce(s.state, SubmitStarted{})
	return d, true
}

// EndSubmit clears the in-flight mark.
func (s *Store) EndSubmit() {
	s.Dispatch(SubmitFinished{})
}

func (s *Store) ensureInit() {
	if !s.init {
		s.state = Initial()
		s.init = true
	}
}

// heal applies the corrective SetPage when the page left its valid range.
func (s *Store) heal(st TableState) TableState {
	v := Derive(st.Items, st.SearchQuery, st.CurrentPage, s.PageSize())
	if v.OutOfRange() {
		return Reduce(st, SetPage{Page: ClampPage(st.CurrentPage, v.TotalPages)})
	}
	return st
}

func cloneItems(items []api.Item) []api.Item {
	out := make([]api.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
