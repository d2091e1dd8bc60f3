package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dwikikusuma/printshop/internal/catalog/domain"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

type NewProduct struct {
	Slug        string
	Name        string
	Description string
	Currency    string
	Amount      int64
	Thumbnail   string
	Options     domain.Options
}

func (s *Service) CreateProduct(ctx context.Context, in NewProduct) (domain.Product, error) {
	slug := strings.TrimSpace(in.Slug)
	name := strings.TrimSpace(in.Name)
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))

	if !slugPattern.MatchString(slug) {
		return domain.Product{}, fmt.Errorf("%w: slug %q", ErrInvalidInput, in.Slug)
	}
	if name == "" || len(currency) != 3 || in.Amount <= 0 {
		return domain.Product{}, ErrInvalidInput
	}
	if len(in.Options.Formats) == 0 || len(in.Options.Papers) == 0 || len(in.Options.Colors) == 0 {
		return domain.Product{}, fmt.Errorf("%w: product %s needs formats, papers and colors", ErrInvalidInput, slug)
	}

	p := domain.Product{
		Slug:        slug,
		Name:        name,
		Description: in.Description,
		UnitPrice: domain.Money{
			Currency: currency,
			Amount:   in.Amount,
		},
		Thumbnail: in.Thumbnail,
		Options:   in.Options,
	}

	product, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
}

func (s *Service) ListProducts(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, query, limit, cursor)
}
