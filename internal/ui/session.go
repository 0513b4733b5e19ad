package ui

import (
	"context"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/resource"
	"github.com/five82/backoffice/internal/state"
)

// Session is one resource's list view backed by the API. *app.Syncer
// implements it.
type Session interface {
	Store() *state.Store
	Resource() resource.Resource
	Reload(ctx context.Context) error
	Categories(ctx context.Context) ([]api.Category, error)
	Submit(ctx context.Context, p api.Payload) error
	ConfirmDelete(ctx context.Context) error
	DeleteSelected(ctx context.Context) (int, error)
}

// Opener creates the session for a resource.
type Opener func(resource.Resource) Session
