package app

import (
	"context"

	"github.com/dwikikusuma/printshop/internal/cart/domain"
)

// StateRepo persists one cart document per session.
type StateRepo interface {
	Load(ctx context.Context, sessionID string) (domain.State, error)
	Save(ctx context.Context, sessionID string, state domain.State) error
	Delete(ctx context.Context, sessionID string) error
}

// CatalogReader resolves the product a cart line refers to and checks the
// configuration against it.
type CatalogReader interface {
	Lookup(ctx context.Context, slug string, cfg domain.Configuration) (Product, error)
}

type Product struct {
	Slug      string
	Thumbnail string
}
