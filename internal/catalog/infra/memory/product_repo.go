package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/printshop/internal/catalog/app"
	"github.com/dwikikusuma/printshop/internal/catalog/domain"
)

// ProductRepo keeps the catalog in memory, ordered by slug.
type ProductRepo struct {
	mu     sync.RWMutex
	bySlug map[string]domain.Product
	slugs  []string
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{bySlug: make(map[string]domain.Product)}
}

func (r *ProductRepo) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySlug[p.Slug]; ok {
		return domain.Product{}, app.ErrAlreadyExists
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	r.bySlug[p.Slug] = p
	i := sort.SearchStrings(r.slugs, p.Slug)
	r.slugs = append(r.slugs, "")
	copy(r.slugs[i+1:], r.slugs[i:])
	r.slugs[i] = p.Slug

	return p, nil
}

func (r *ProductRepo) GetBySlug(_ context.Context, slug string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.bySlug[slug]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}

// List pages through products whose name or slug contains query. The cursor
// is the slug of the last product of the previous page.
func (r *ProductRepo) List(_ context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	cursor = strings.TrimSpace(cursor)

	start := 0
	if cursor != "" {
		start = sort.SearchStrings(r.slugs, cursor)
		if start < len(r.slugs) && r.slugs[start] == cursor {
			start++
		}
	}

	out := make([]domain.Product, 0, limit)
	var nextCursor string

	for _, slug := range r.slugs[start:] {
		p := r.bySlug[slug]
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(p.Slug, q) {
			continue
		}
		out = append(out, p)
		nextCursor = p.Slug
		if len(out) == limit {
			break
		}
	}

	if len(out) < limit {
		nextCursor = ""
	}

	return out, nextCursor, nil
}

var _ app.ProductRepo = (*ProductRepo)(nil)
