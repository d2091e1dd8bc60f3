package app

import (
	"context"
	"errors"
	"testing"

	"github.com/dwikikusuma/printshop/internal/catalog/domain"
)

type fakeRepo struct {
	lastLimit int
}

func (*fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) { return p, nil }
func (*fakeRepo) GetBySlug(ctx context.Context, slug string) (domain.Product, error) {
	return domain.Product{Slug: slug}, nil
}
func (f *fakeRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	f.lastLimit = limit
	return nil, "", nil
}

func validProduct() NewProduct {
	return NewProduct{
		Slug:     "business-cards",
		Name:     "Business cards",
		Currency: "eur",
		Amount:   12,
		Options: domain.Options{
			Formats: []string{"85x55"},
			Papers:  []string{"matte-350"},
			Colors:  []string{"4/4"},
		},
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	t.Run("valid -> currency normalised", func(t *testing.T) {
		p, err := svc.CreateProduct(context.Background(), validProduct())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.UnitPrice.Currency != "EUR" {
			t.Fatalf("expected EUR, got %s", p.UnitPrice.Currency)
		}
	})

	t.Run("empty name -> invalid", func(t *testing.T) {
		in := validProduct()
		in.Name = "   "
		_, err := svc.CreateProduct(context.Background(), in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("bad slug -> invalid", func(t *testing.T) {
		in := validProduct()
		in.Slug = "Business Cards"
		_, err := svc.CreateProduct(context.Background(), in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative amount -> invalid", func(t *testing.T) {
		in := validProduct()
		in.Amount = -1
		_, err := svc.CreateProduct(context.Background(), in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("empty currency -> invalid", func(t *testing.T) {
		in := validProduct()
		in.Currency = "   "
		_, err := svc.CreateProduct(context.Background(), in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("no papers -> invalid", func(t *testing.T) {
		in := validProduct()
		in.Options.Papers = nil
		_, err := svc.CreateProduct(context.Background(), in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestListProductsClampsLimit(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	for in, want := range map[int]int{0: 20, -5: 20, 50: 50, 500: 100} {
		_, _, _ = svc.ListProducts(context.Background(), "", in, "")
		if repo.lastLimit != want {
			t.Fatalf("limit %d: expected %d, got %d", in, want, repo.lastLimit)
		}
	}
}
