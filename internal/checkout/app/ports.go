package app

import (
	"context"
	"io"

	"github.com/dwikikusuma/printshop/internal/checkout/domain"
)

type CartItem struct {
	ItemID        string
	Slug          string
	Quantity      int
	Configuration Configuration
	OrderName     string
}

type Configuration struct {
	Format     string   `json:"format"`
	Paper      string   `json:"paper"`
	Colors     string   `json:"colors"`
	Finishings []string `json:"finishings"`
}

type Cart struct {
	Currency       string
	ShippingOption string
	Items          []CartItem
}

func (c Cart) view() domain.CartView {
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ItemID)
	}
	return domain.CartView{ItemIDs: ids, ShippingOption: c.ShippingOption}
}

type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (Cart, error)
	SetShippingOption(ctx context.Context, sessionID, option string) error
	// RemoveOrdered takes ordered quantities, keyed by item id, off the cart.
	RemoveOrdered(ctx context.Context, sessionID string, ordered map[string]int) error
}

type CatalogReader interface {
	GetProduct(ctx context.Context, slug string) (Product, error)
}

type Product struct {
	Slug     string
	Name     string
	Currency string
	Amount   int64
}

type SessionRepo interface {
	Load(ctx context.Context, sessionID string) (domain.Session, error)
	Save(ctx context.Context, sessionID string, s domain.Session) error
	Delete(ctx context.Context, sessionID string) error
}

type FileStore interface {
	Store(ctx context.Context, sessionID, itemID, name string, size int64, body io.Reader) (domain.FileRef, error)
	Discard(ctx context.Context, sessionID string) error
	DiscardItem(ctx context.Context, sessionID, itemID string) error
}

type AddressBook interface {
	GetAddress(ctx context.Context, ownerID, addressID string) (domain.Address, error)
}

type OrderDraft struct {
	OwnerID        string
	Currency       string
	ShippingOption string
	PaymentMethod  string
	Address        domain.Address
	ShippingAmount int64
	VATBasisPoints int64
	Items          []OrderDraftItem
}

type OrderDraftItem struct {
	ItemID        string
	Slug          string
	Name          string
	Configuration Configuration
	UnitAmount    int64
	Quantity      int64
	Files         []domain.FileRef
}

type PlacedOrder struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Currency    string `json:"currency"`
	TotalAmount int64  `json:"totalAmount"`
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, draft OrderDraft) (PlacedOrder, error)
}

func (c Cart) has(itemID string) bool {
	for _, it := range c.Items {
		if it.ItemID == itemID {
			return true
		}
	}
	return false
}
