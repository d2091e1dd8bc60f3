package adapter

import (
	"context"

	accountapp "github.com/dwikikusuma/printshop/internal/account/app"
	orderapp "github.com/dwikikusuma/printshop/internal/order/app"
)

type OrderServiceReader struct {
	svc *orderapp.Service
}

func NewOrderServiceReader(svc *orderapp.Service) *OrderServiceReader {
	return &OrderServiceReader{svc: svc}
}

func (r *OrderServiceReader) ListOrders(ctx context.Context, ownerID string) ([]accountapp.OrderSummary, error) {
	orders, err := r.svc.ListOrders(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]accountapp.OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, accountapp.OrderSummary{
			ID:        o.ID,
			Status:    o.Status,
			Currency:  o.Currency,
			Subtotal:  o.SubTotalAmount,
			VAT:       o.VATAmount,
			Total:     o.TotalAmount,
			CreatedAt: o.CreatedAt,
		})
	}
	return out, nil
}

var _ accountapp.OrderReader = (*OrderServiceReader)(nil)
