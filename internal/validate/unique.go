package validate

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/resource"
)

// Lookuper finds records by an exact field value.
type Lookuper interface {
	Lookup(ctx context.Context, resource, field, value string) ([]api.Item, error)
}

// UniquenessValidator checks guarded fields against existing records.
type UniquenessValidator struct {
	lookup  Lookuper
	metrics *Metrics
}

// Option customizes a UniquenessValidator.
type Option func(*UniquenessValidator)

// WithMetrics counts outcomes per resource and kind.
func WithMetrics(m *Metrics) Option {
	return func(v *UniquenessValidator) { v.metrics = m }
}

// NewUniquenessValidator returns a validator backed by l.
func NewUniquenessValidator(l Lookuper, opts ...Option) *UniquenessValidator {
	v := &UniquenessValidator{lookup: l}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Check looks up every unique field of r that has a value, concurrently, and
// waits for all lookups. A record holding the same value conflicts unless it
// is the record being edited (targetID). Empty values are skipped.
func (v *UniquenessValidator) Check(ctx context.Context, r resource.Resource, values map[string]string, targetID string) []Outcome {
	fields := r.UniqueFields()
	results := make([]*Outcome, len(fields))

	var g errgroup.Group
	for i, f := range fields {
		value := strings.TrimSpace(values[f.Name])
		if value == "" {
			continue
		}
		g.Go(func() error {
			results[i] = v.checkOne(ctx, r.Name, f, value, targetID)
			return nil
		})
	}
	_ = g.Wait()

	var out []Outcome
	for _, o := range results {
		if o != nil {
			out = append(out, *o)
		}
	}
	return out
}

func (v *UniquenessValidator) checkOne(ctx context.Context, name string, f resource.Field, value, targetID string) *Outcome {
	if v == nil || v.lookup == nil {
		return &Outcome{Field: f.Name, Kind: KindUnverified, Message: fmt.Sprintf("Could not verify %s", strings.ToLower(f.Label))}
	}
	matches, err := v.lookup.Lookup(ctx, name, f.Name, value)
	if err != nil {
		log.Printf("uniqueness lookup %s %s failed: %v", name, f.Name, err)
		return &Outcome{
			Field:   f.Name,
			Kind:    KindUnverified,
			Message: fmt.Sprintf("Could not verify %s: %s", strings.ToLower(f.Label), api.Message(err)),
		}
	}
	for _, m := range matches {
		if targetID == "" || m.ID != targetID {
			return &Outcome{Field: f.Name, Kind: KindDuplicate, Message: fmt.Sprintf("%s already exists", f.Label)}
		}
	}
	return nil
}

// Submission runs Form and then, for guarded fields that passed it, Check.
// An empty result means p may be sent.
func (v *UniquenessValidator) Submission(ctx context.Context, r resource.Resource, p api.Payload, targetID string) []Outcome {
	out := Form(r, p)
	failed := make(map[string]struct{}, len(out))
	for _, o := range out {
		failed[o.Field] = struct{}{}
	}

	guarded := make(map[string]string)
	for _, f := range r.UniqueFields() {
		if _, bad := failed[f.Name]; !bad {
			guarded[f.Name] = p.Fields[f.Name]
		}
	}
	if len(guarded) > 0 {
		out = append(out, v.Check(ctx, r, guarded, targetID)...)
	}
	sortByField(r, out)
	v.metrics.observe(r.Name, out)
	return out
}

func sortByField(r resource.Resource, out []Outcome) {
	rank := make(map[string]int, len(r.Fields)+1)
	for i, f := range r.Fields {
		rank[f.Name] = i
	}
	rank[CategoriesField] = len(r.Fields)
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Field] < rank[out[j].Field]
	})
}
