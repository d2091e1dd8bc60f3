package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/printshop/internal/account/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("address not found")
)

// MaxAddresses caps the address book of one owner.
const MaxAddresses = 20

type Service struct {
	addresses AddressRepo
	orders    OrderReader
}

func NewService(addresses AddressRepo, orders OrderReader) *Service {
	return &Service{addresses: addresses, orders: orders}
}

func (s *Service) ListAddresses(ctx context.Context, ownerID string) ([]domain.Address, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}
	return s.addresses.List(ctx, ownerID)
}

func (s *Service) CreateAddress(ctx context.Context, ownerID string, a domain.Address) (domain.Address, error) {
	if strings.TrimSpace(ownerID) == "" {
		return domain.Address{}, ErrInvalidInput
	}

	a.Normalize()
	if err := a.Validate(); err != nil {
		return domain.Address{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.addresses.List(ctx, ownerID)
	if err != nil {
		return domain.Address{}, err
	}
	if len(existing) >= MaxAddresses {
		return domain.Address{}, fmt.Errorf("%w: at most %d addresses can be saved", ErrInvalidInput, MaxAddresses)
	}

	a.ID = ""
	a.OwnerID = ownerID
	return s.addresses.Create(ctx, a)
}

func (s *Service) GetAddress(ctx context.Context, ownerID, id string) (domain.Address, error) {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(id) == "" {
		return domain.Address{}, ErrInvalidInput
	}
	return s.addresses.Get(ctx, ownerID, id)
}

func (s *Service) DeleteAddress(ctx context.Context, ownerID, id string) error {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.addresses.Delete(ctx, ownerID, id)
}

// ListInvoices projects the owner's orders into invoices, newest first.
func (s *Service) ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}

	orders, err := s.orders.ListOrders(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(orders))
	for _, o := range orders {
		invoices = append(invoices, domain.Invoice{
			Number:   domain.InvoiceNumber(o.ID),
			OrderID:  o.ID,
			Status:   o.Status,
			IssuedAt: o.CreatedAt,
			Net:      domain.Money{Currency: o.Currency, Amount: o.Subtotal},
			VAT:      domain.Money{Currency: o.Currency, Amount: o.VAT},
			Total:    domain.Money{Currency: o.Currency, Amount: o.Total},
		})
	}
	return invoices, nil
}

// ListMessages always returns an empty inbox with a notice.
func (s *Service) ListMessages(_ context.Context, ownerID string) ([]domain.Message, string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, "", ErrInvalidInput
	}
	return []domain.Message{}, domain.MessagesNotice, nil
}
