package adapter

import (
	"context"
	"errors"
	"fmt"

	checkoutapp "github.com/dwikikusuma/printshop/internal/checkout/app"
	orderapp "github.com/dwikikusuma/printshop/internal/order/app"
	orderdomain "github.com/dwikikusuma/printshop/internal/order/domain"
)

type OrderServiceWriter struct {
	svc *orderapp.Service
}

func NewOrderServiceWriter(svc *orderapp.Service) *OrderServiceWriter {
	return &OrderServiceWriter{svc: svc}
}

func (w *OrderServiceWriter) CreateOrder(ctx context.Context, d checkoutapp.OrderDraft) (checkoutapp.PlacedOrder, error) {
	req := orderdomain.CreateOrderRequest{
		OwnerID:        d.OwnerID,
		Currency:       d.Currency,
		ShippingOption: d.ShippingOption,
		PaymentMethod:  d.PaymentMethod,
		ShippingAddress: orderdomain.Address{
			FullName:   d.Address.FullName,
			Street:     d.Address.Street,
			City:       d.Address.City,
			PostalCode: d.Address.PostalCode,
			Country:    d.Address.Country,
			Phone:      d.Address.Phone,
		},
		ShippingAmount: d.ShippingAmount,
		VATBasisPoints: d.VATBasisPoints,
		Items:          make([]orderdomain.OrderItemRequest, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		files := make([]orderdomain.File, 0, len(it.Files))
		for _, f := range it.Files {
			files = append(files, orderdomain.File{
				ID:          f.ID,
				Name:        f.Name,
				Size:        f.Size,
				ContentType: f.ContentType,
				Path:        f.Path,
			})
		}
		req.Items = append(req.Items, orderdomain.OrderItemRequest{
			ItemID: it.ItemID,
			Slug:   it.Slug,
			Name:   it.Name,
			Configuration: orderdomain.Configuration{
				Format:     it.Configuration.Format,
				Paper:      it.Configuration.Paper,
				Colors:     it.Configuration.Colors,
				Finishings: it.Configuration.Finishings,
			},
			Files:      files,
			UnitAmount: it.UnitAmount,
			Quantity:   it.Quantity,
		})
	}

	resp, err := w.svc.CreateOrder(ctx, req)
	if errors.Is(err, orderapp.ErrInvalidInput) {
		return checkoutapp.PlacedOrder{}, fmt.Errorf("%w: %v", checkoutapp.ErrInvalidInput, err)
	}
	if err != nil {
		return checkoutapp.PlacedOrder{}, err
	}

	return checkoutapp.PlacedOrder{
		ID:          resp.ID,
		Status:      resp.Status,
		Currency:    resp.Currency,
		TotalAmount: resp.TotalAmount,
	}, nil
}

var _ checkoutapp.OrderWriter = (*OrderServiceWriter)(nil)
