package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/printshop/internal/cart/domain"
	"github.com/dwikikusuma/printshop/internal/pricing"
	"github.com/dwikikusuma/printshop/pkg/keylock"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrStateNotFound        = errors.New("cart state not found")
	ErrStateCorrupt         = errors.New("cart state corrupt")
	ErrUnknownProduct       = errors.New("unknown product")
	ErrInvalidConfiguration = errors.New("configuration not offered for product")
)

type Service struct {
	repo     StateRepo
	catalog  CatalogReader
	currency string
	log      *slog.Logger

	locks keylock.Striped
}

func NewService(repo StateRepo, catalog CatalogReader, currency string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:     repo,
		catalog:  catalog,
		currency: currency,
		log:      log,
	}
}

type AddItemInput struct {
	Slug          string
	Quantity      int
	Configuration domain.Configuration
	OrderName     string
}

// GetCart returns the session's cart, empty when nothing is stored or the
// stored document is unreadable or has another schema version.
func (s *Service) GetCart(ctx context.Context, sessionID string) (domain.State, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.State{}, ErrInvalidInput
	}
	return s.load(ctx, sessionID)
}

func (s *Service) AddItem(ctx context.Context, sessionID string, in AddItemInput) (domain.State, error) {
	if err := domain.ValidateQuantity(in.Quantity); err != nil {
		return domain.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	product, err := s.catalog.Lookup(ctx, in.Slug, in.Configuration)
	if err != nil {
		return domain.State{}, err
	}

	return s.mutate(ctx, sessionID, func(st *domain.State) {
		st.AddItem(domain.CartItem{
			Slug:          product.Slug,
			Quantity:      in.Quantity,
			Configuration: in.Configuration,
			PriceVersion:  pricing.Version,
			Thumbnail:     product.Thumbnail,
			OrderName:     strings.TrimSpace(in.OrderName),
		})
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (domain.State, error) {
	return s.mutate(ctx, sessionID, func(st *domain.State) {
		st.RemoveItem(itemID)
	})
}

func (s *Service) UpdateItemQuantity(ctx context.Context, sessionID, itemID string, qty int) (domain.State, error) {
	if qty > domain.MaxQuantity {
		return domain.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ValidateQuantity(qty))
	}
	return s.mutate(ctx, sessionID, func(st *domain.State) {
		st.UpdateItemQuantity(itemID, qty)
	})
}

func (s *Service) SetShippingOption(ctx context.Context, sessionID, option string) (domain.State, error) {
	return s.mutate(ctx, sessionID, func(st *domain.State) {
		st.SetShippingOption(option)
	})
}

// RemoveOrdered takes ordered quantities, keyed by item id, off the cart.
// Lines added or topped up after the order was read keep the difference. An
// emptied cart also loses its shipping option.
func (s *Service) RemoveOrdered(ctx context.Context, sessionID string, ordered map[string]int) (domain.State, error) {
	return s.mutate(ctx, sessionID, func(st *domain.State) {
		for itemID, qty := range ordered {
			if it, ok := st.Item(itemID); ok {
				st.UpdateItemQuantity(itemID, it.Quantity-qty)
			}
		}
		if st.IsEmpty() {
			st.Clear()
		}
	})
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidInput
	}

	defer s.locks.Lock(sessionID)()

	return s.repo.Delete(ctx, sessionID)
}

// mutate runs a read-modify-write of the session's cart under the session
// lock.
func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*domain.State)) (domain.State, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.State{}, ErrInvalidInput
	}

	defer s.locks.Lock(sessionID)()

	st, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.State{}, err
	}

	fn(&st)

	if err := s.repo.Save(ctx, sessionID, st); err != nil {
		return domain.State{}, err
	}
	return st, nil
}

func (s *Service) load(ctx context.Context, sessionID string) (domain.State, error) {
	st, err := s.repo.Load(ctx, sessionID)
	if errors.Is(err, ErrStateNotFound) {
		return domain.NewState(s.currency), nil
	}
	if errors.Is(err, ErrStateCorrupt) {
		s.log.WarnContext(ctx, "discarding unreadable cart", slog.String("session_id", sessionID), slog.Any("err", err))
		return domain.NewState(s.currency), nil
	}
	if err != nil {
		return domain.State{}, err
	}
	if st.Version != domain.StateVersion {
		return domain.NewState(s.currency), nil
	}
	if st.Items == nil {
		st.Items = []domain.CartItem{}
	}
	if st.Currency == "" {
		st.Currency = s.currency
	}
	return st, nil
}
