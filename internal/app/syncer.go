package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/resource"
	"github.com/five82/backoffice/internal/state"
	"github.com/five82/backoffice/internal/validate"
)

var (
	// ErrBusy is returned when a submission for the open dialog is already
	// in flight.
	ErrBusy = errors.New("a request is already in progress")
	// ErrNoDialog is returned when the dialog an operation needs is not open.
	ErrNoDialog = errors.New("no dialog open")
)

// Syncer keeps one resource's Store in step with the API. Every write is
// followed by a full reload; nothing is merged locally.
type Syncer struct {
	store                *state.Store
	client               api.Service
	validator            *validate.UniquenessValidator
	res                  resource.Resource
	timeout              time.Duration
	closeDeleteOnFailure bool
}

// SyncerOption customizes a Syncer.
type SyncerOption func(*Syncer)

// WithTimeout bounds each API call made by the syncer.
func WithTimeout(d time.Duration) SyncerOption {
	return func(s *Syncer) { s.timeout = d }
}

// WithValidator replaces the default validator.
func WithValidator(v *validate.UniquenessValidator) SyncerOption {
	return func(s *Syncer) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithCloseDeleteOnFailure sets whether a failed delete closes its dialog.
func WithCloseDeleteOnFailure(close bool) SyncerOption {
	return func(s *Syncer) { s.closeDeleteOnFailure = close }
}

// NewSyncer returns a syncer for res that owns a fresh Store.
func NewSyncer(client api.Service, res resource.Resource, pageSize int, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		store:                state.NewStore(pageSize),
		client:               client,
		validator:            validate.NewUniquenessValidator(client),
		res:                  res,
		closeDeleteOnFailure: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the syncer's store.
func (s *Syncer) Store() *state.Store { return s.store }

// Resource returns the synced resource.
func (s *Syncer) Resource() resource.Resource { return s.res }

// Reload fetches the canonical list and dispatches it. On failure the store
// keeps its last-known items.
func (s *Syncer) Reload(ctx context.Context) error {
	seq := s.store.NextLoadSeq()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.client.List(ctx, s.res.Name)
	if err != nil {
		log.Printf("load %s failed: %v", s.res.Name, err)
		return fmt.Errorf("load %s: %w", s.res.Name, err)
	}
	s.store.Dispatch(state.LoadItems{Items: items, Seq: seq})
	return nil
}

// Categories fetches the category options for the form.
func (s *Syncer) Categories(ctx context.Context) ([]api.Category, error) {
	if !s.res.HasCategories {
		return nil, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cats, err := s.client.Categories(ctx, s.res.Name)
	if err != nil {
		log.Printf("load %s categories failed: %v", s.res.Name, err)
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return cats, nil
}

// Submit validates p and creates or updates the open form's record. The
// form closes only on success; a *validate.Error or API error leaves it
// open for correction.
func (s *Syncer) Submit(ctx context.Context, p api.Payload) error {
	d, err := s.begin(state.DialogForm)
	if err != nil {
		return err
	}
	if err := s.save(ctx, p, d.Target); err != nil {
		return err
	}
	s.store.Dispatch(state.CloseForm{})
	s.reloadAfterWrite(ctx)
	return nil
}

// begin claims the in-flight slot for a mode dialog. A dialog closed by a
// concurrent reload reports ErrNoDialog.
func (s *Syncer) begin(mode state.DialogMode) (state.Dialog, error) {
	d, ok := s.store.BeginSubmit(mode)
	switch {
	case ok:
		return d, nil
	case d.Mode != mode:
		return d, ErrNoDialog
	default:
		return d, ErrBusy
	}
}

func (s *Syncer) save(ctx context.Context, p api.Payload, target *api.Item) error {
	defer s.store.EndSubmit()

	// Duplicates are compared by _id whatever the resource's path key.
	var targetID, key string
	if target != nil {
		targetID = target.ID
		var err error
		if key, err = s.keyOf(*target); err != nil {
			return err
		}
	}
	if outcomes := s.validator.Submission(ctx, s.res, p, targetID); len(outcomes) > 0 {
		return &validate.Error{Outcomes: outcomes}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var err error
	if target == nil {
		_, err = s.client.Create(ctx, s.res.Name, p)
	} else {
		_, err = s.client.Update(ctx, s.res.Name, key, p)
	}
	if err != nil {
		log.Printf("save %s %q failed: %v", s.res.Name, key, err)
		return fmt.Errorf("save %s: %w", s.res.Noun, err)
	}
	log.Printf("saved %s %q", s.res.Name, firstNonEmpty(key, p.Fields["title"]))
	return nil
}

// keyOf returns the value that addresses it in PATCH and DELETE paths.
func (s *Syncer) keyOf(it api.Item) (string, error) {
	key := it.Key(s.res.KeyField)
	if key == "" {
		field := s.res.KeyField
		if field == "" {
			field = "_id"
		}
		return "", fmt.Errorf("%s %q has no %s", s.res.Noun, it.Title, field)
	}
	return key, nil
}

// ConfirmDelete removes the open delete dialog's record. The dialog closes
// on success and, unless configured otherwise, on failure too.
func (s *Syncer) ConfirmDelete(ctx context.Context) error {
	d, err := s.begin(state.DialogDelete)
	if err != nil {
		return err
	}
	target := *d.Target

	key, err := s.keyOf(target)
	if err == nil {
		err = s.remove(ctx, key)
	}
	s.store.EndSubmit()
	if err != nil {
		log.Printf("delete %s %s failed: %v", s.res.Name, target, err)
		if s.closeDeleteOnFailure {
			s.store.Dispatch(state.CloseDelete{})
		}
		return fmt.Errorf("delete %s: %w", s.res.Noun, err)
	}
	log.Printf("deleted %s %s", s.res.Name, target)
	s.store.Dispatch(state.CloseDelete{})
	s.reloadAfterWrite(ctx)
	return nil
}

// DeleteSelected removes every selected record, one request at a time, and
// reloads. It returns how many were removed; failures are joined.
func (s *Syncer) DeleteSelected(ctx context.Context) (int, error) {
	st := s.store.State()
	ids := st.SelectedIDs()
	if len(ids) == 0 {
		return 0, nil
	}
	byID := make(map[string]api.Item, len(st.Items))
	for _, it := range st.Items {
		byID[it.ID] = it
	}

	var errs []error
	removed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		it, ok := byID[id]
		if !ok {
			errs = append(errs, fmt.Errorf("delete %s: not loaded", id))
			continue
		}
		key, err := s.keyOf(it)
		if err == nil {
			err = s.remove(ctx, key)
		}
		if err != nil {
			log.Printf("delete %s %s failed: %v", s.res.Name, id, err)
			errs = append(errs, fmt.Errorf("delete %s: %w", id, err))
			continue
		}
		removed++
	}
	log.Printf("bulk delete %s: %d of %d removed", s.res.Name, removed, len(ids))
	s.reloadAfterWrite(ctx)
	return removed, errors.Join(errs...)
}

func (s *Syncer) remove(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.client.Remove(ctx, s.res.Name, key)
}

func (s *Syncer) reloadAfterWrite(ctx context.Context) {
	// The write already succeeded; a failed reload keeps the last list.
	_ = s.Reload(ctx)
}

func (s *Syncer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
