package adapter

import (
	"context"
	"errors"
	"fmt"

	accountapp "github.com/dwikikusuma/printshop/internal/account/app"
	checkoutapp "github.com/dwikikusuma/printshop/internal/checkout/app"
	"github.com/dwikikusuma/printshop/internal/checkout/domain"
)

type AccountAddressBook struct {
	svc *accountapp.Service
}

func NewAccountAddressBook(svc *accountapp.Service) *AccountAddressBook {
	return &AccountAddressBook{svc: svc}
}

func (b *AccountAddressBook) GetAddress(ctx context.Context, ownerID, addressID string) (domain.Address, error) {
	a, err := b.svc.GetAddress(ctx, ownerID, addressID)
	switch {
	case errors.Is(err, accountapp.ErrNotFound):
		return domain.Address{}, fmt.Errorf("%w: address %s", checkoutapp.ErrNotFound, addressID)
	case errors.Is(err, accountapp.ErrInvalidInput):
		return domain.Address{}, fmt.Errorf("%w: address id", checkoutapp.ErrInvalidInput)
	case err != nil:
		return domain.Address{}, err
	}

	return domain.Address{
		FullName:   a.FullName,
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}, nil
}

var _ checkoutapp.AddressBook = (*AccountAddressBook)(nil)
