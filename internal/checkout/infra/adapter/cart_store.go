package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/printshop/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/printshop/internal/checkout/app"
)

type CartServiceStore struct {
	svc *cartapp.Service
}

func NewCartServiceStore(svc *cartapp.Service) *CartServiceStore {
	return &CartServiceStore{svc: svc}
}

func (r *CartServiceStore) GetCart(ctx context.Context, sessionID string) (checkoutapp.Cart, error) {
	st, err := r.svc.GetCart(ctx, sessionID)
	if err != nil {
		return checkoutapp.Cart{}, err
	}

	items := make([]checkoutapp.CartItem, 0, len(st.Items))
	for _, it := range st.Items {
		items = append(items, checkoutapp.CartItem{
			ItemID:   it.ItemID,
			Slug:     it.Slug,
			Quantity: it.Quantity,
			Configuration: checkoutapp.Configuration{
				Format:     it.Configuration.Format,
				Paper:      it.Configuration.Paper,
				Colors:     it.Configuration.Colors,
				Finishings: it.Configuration.Finishings,
			},
			OrderName: it.OrderName,
		})
	}
	return checkoutapp.Cart{
		Currency:       st.Currency,
		ShippingOption: st.ShippingOption,
		Items:          items,
	}, nil
}

func (r *CartServiceStore) SetShippingOption(ctx context.Context, sessionID, option string) error {
	_, err := r.svc.SetShippingOption(ctx, sessionID, option)
	return err
}

func (r *CartServiceStore) RemoveOrdered(ctx context.Context, sessionID string, ordered map[string]int) error {
	_, err := r.svc.RemoveOrdered(ctx, sessionID, ordered)
	return err
}

var _ checkoutapp.CartStore = (*CartServiceStore)(nil)
