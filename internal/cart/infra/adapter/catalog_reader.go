package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/printshop/internal/cart/app"
	cartdomain "github.com/dwikikusuma/printshop/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/printshop/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) Lookup(ctx context.Context, slug string, cfg cartdomain.Configuration) (cartapp.Product, error) {
	p, err := r.svc.GetProduct(ctx, slug)
	if errors.Is(err, catalogapp.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
		return cartapp.Product{}, cartapp.ErrUnknownProduct
	}
	if err != nil {
		return cartapp.Product{}, err
	}

	if !p.Options.Allows(cfg.Format, cfg.Paper, cfg.Colors, cfg.Finishings) {
		return cartapp.Product{}, cartapp.ErrInvalidConfiguration
	}

	return cartapp.Product{
		Slug:      p.Slug,
		Thumbnail: p.Thumbnail,
	}, nil
}

var _ cartapp.CatalogReader = (*CatalogServiceReader)(nil)
