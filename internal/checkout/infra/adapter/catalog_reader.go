package adapter

import (
	"context"
	"errors"
	"fmt"

	catalogapp "github.com/dwikikusuma/printshop/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/printshop/internal/checkout/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, slug string) (checkoutapp.Product, error) {
	p, err := r.svc.GetProduct(ctx, slug)
	if errors.Is(err, catalogapp.ErrNotFound) {
		return checkoutapp.Product{}, fmt.Errorf("%w: product %s", checkoutapp.ErrNotFound, slug)
	}
	if err != nil {
		return checkoutapp.Product{}, err
	}

	return checkoutapp.Product{
		Slug:     p.Slug,
		Name:     p.Name,
		Currency: p.UnitPrice.Currency,
		Amount:   p.UnitPrice.Amount,
	}, nil
}

var _ checkoutapp.CatalogReader = (*CatalogServiceReader)(nil)
