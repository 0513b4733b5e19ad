package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/resource"
)

// fakeAPI is an in-memory api.Service. Update and Remove address items by
// the resource's key field, as the real API does.
type fakeAPI struct {
	mu        sync.Mutex
	items     map[string][]api.Item
	keyField  string
	listFails int // fail this many List calls before succeeding
	listCalls int
	lookups   []string
	createErr error
	removeErr map[string]error // by key
	created   []api.Payload
	updated   []string // keys
	removed   []string // keys
	nextID    int
}

var _ api.Service = (*fakeAPI)(nil)

func newFakeAPI(res string, items ...api.Item) *fakeAPI {
	f := &fakeAPI{items: map[string][]api.Item{res: items}, removeErr: map[string]error{}}
	if r, err := resource.Lookup(res); err == nil {
		f.keyField = r.KeyField
	}
	return f
}

func (f *fakeAPI) List(_ context.Context, res string) ([]api.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listFails > 0 {
		f.listFails--
		return nil, errors.New("connection refused")
	}
	return append([]api.Item(nil), f.items[res]...), nil
}

func (f *fakeAPI) Categories(context.Context, string) ([]api.Category, error) {
	return []api.Category{{ID: "c1", Title: "Fintech"}}, nil
}

func (f *fakeAPI) Lookup(_ context.Context, res, field, value string) ([]api.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, field+"="+value)
	var out []api.Item
	for _, it := range f.items[res] {
		if it.Field(field) == value {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeAPI) Create(_ context.Context, res string, p api.Payload) (api.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return api.Item{}, f.createErr
	}
	f.nextID++
	it := api.Item{
		ID:        fmt.Sprintf("new-%d", f.nextID),
		Title:     p.Fields["title"],
		Email:     p.Fields["email"],
		Phone:     p.Fields["phone"],
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	f.created = append(f.created, p)
	f.items[res] = append(f.items[res], it)
	return it, nil
}

func (f *fakeAPI) Update(_ context.Context, res, key string, p api.Payload) (api.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.items[res] {
		if it.Key(f.keyField) == key {
			it.Title = p.Fields["title"]
			it.Email = p.Fields["email"]
			it.Phone = p.Fields["phone"]
			f.items[res][i] = it
			f.updated = append(f.updated, key)
			return it, nil
		}
	}
	return api.Item{}, &api.StatusError{Method: http.MethodPatch, Path: "/" + res + "/" + key, Code: http.StatusNotFound}
}

func (f *fakeAPI) Remove(_ context.Context, res, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.removeErr[key]; err != nil {
		return err
	}
	kept := f.items[res][:0:0]
	found := false
	for _, it := range f.items[res] {
		if it.Key(f.keyField) == key {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return &api.StatusError{Method: http.MethodDelete, Path: "/" + res + "/" + key, Code: http.StatusNotFound}
	}
	f.items[res] = kept
	f.removed = append(f.removed, key)
	return nil
}

func teamMembers(t *testing.T) resource.Resource {
	t.Helper()
	r, err := resource.Lookup("team-members")
	if err != nil {
		t.Fatalf("lookup team-members: %v", err)
	}
	return r
}

func member(id, title, email, phone string, day int) api.Item {
	return api.Item{
		ID:         id,
		Title:      title,
		Slug:       strings.ReplaceAll(strings.ToLower(title), " ", "-"),
		Email:      email,
		Phone:      phone,
		Department: "developer",
		Status:     api.StatusActive,
		CreatedAt:  fmt.Sprintf("2024-03-%02dT12:00:00Z", day),
	}
}

func memberPayload(title, email, phone string) api.Payload {
	return api.Payload{Fields: map[string]string{
		"title":      title,
		"email":      email,
		"phone":      phone,
		"department": "developer",
		"status":     api.StatusActive,
	}}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
