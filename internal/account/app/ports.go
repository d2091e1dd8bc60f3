package app

import (
	"context"
	"time"

	"github.com/dwikikusuma/printshop/internal/account/domain"
)

type AddressRepo interface {
	Create(ctx context.Context, a domain.Address) (domain.Address, error)
	Get(ctx context.Context, ownerID, id string) (domain.Address, error)
	List(ctx context.Context, ownerID string) ([]domain.Address, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// OrderSummary is the slice of an order invoices are built from.
type OrderSummary struct {
	ID        string
	Status    string
	Currency  string
	Subtotal  int64
	VAT       int64
	Total     int64
	CreatedAt time.Time
}

type OrderReader interface {
	ListOrders(ctx context.Context, ownerID string) ([]OrderSummary, error)
}
