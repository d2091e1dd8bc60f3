package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/printshop/internal/order/domain"
	"github.com/dwikikusuma/printshop/internal/pricing"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("order not found")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

// CreateOrder validates the request, prices it and stores order and lines in
// one transaction.
func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return domain.OrderResponse{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if len(req.Currency) != 3 {
		return domain.OrderResponse{}, fmt.Errorf("%w: currency must be a 3-letter code, got %q", ErrInvalidInput, req.Currency)
	}
	if req.ShippingAmount < 0 {
		return domain.OrderResponse{}, fmt.Errorf("%w: shipping amount cannot be negative, got %d", ErrInvalidInput, req.ShippingAmount)
	}
	if req.VATBasisPoints < 0 {
		return domain.OrderResponse{}, fmt.Errorf("%w: vat rate cannot be negative, got %d", ErrInvalidInput, req.VATBasisPoints)
	}
	if len(req.Items) == 0 {
		return domain.OrderResponse{}, fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}

	orderItem := make([]domain.OrderItem, 0, len(req.Items))
	var subTotalAmount int64 = 0

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.OrderResponse{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidInput, i, item.Quantity)
		}
		if item.UnitAmount < 0 {
			return domain.OrderResponse{}, fmt.Errorf("%w: item %d: unit amount cannot be negative, got %d", ErrInvalidInput, i, item.UnitAmount)
		}
		if item.Slug == "" {
			return domain.OrderResponse{}, fmt.Errorf("%w: item %d: slug is required", ErrInvalidInput, i)
		}

		lineTotal := item.UnitAmount * item.Quantity
		orderItem = append(orderItem, domain.OrderItem{
			ItemID:          item.ItemID,
			Slug:            item.Slug,
			Name:            item.Name,
			Configuration:   item.Configuration,
			Files:           item.Files,
			UnitAmount:      item.UnitAmount,
			Quantity:        item.Quantity,
			LineTotalAmount: lineTotal,
		})

		subTotalAmount += lineTotal
	}

	vat := pricing.VAT(subTotalAmount, req.VATBasisPoints)
	order := domain.Order{
		OwnerID:         req.OwnerID,
		Status:          domain.StatusPending,
		Currency:        strings.ToUpper(req.Currency),
		ShippingOption:  req.ShippingOption,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		SubTotalAmount:  subTotalAmount,
		VATAmount:       vat,
		ShippingAmount:  req.ShippingAmount,
		TotalAmount:     subTotalAmount + vat + req.ShippingAmount,
		OrderItems:      orderItem,
	}

	createdOrder, err := s.repo.CreateOrderTx(ctx, order)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	return domain.OrderResponse{
		ID:          createdOrder.ID,
		Status:      createdOrder.Status,
		Currency:    createdOrder.Currency,
		TotalAmount: createdOrder.TotalAmount,
		CreatedAt:   createdOrder.CreatedAt,
	}, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	return s.repo.GetOrder(ctx, id)
}

// ListOrders returns the owner's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListOrders(ctx, ownerID)
}
