// Package seed loads the product catalog from a YAML document.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/dwikikusuma/printshop/internal/catalog/app"
	"github.com/dwikikusuma/printshop/internal/catalog/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type file struct {
	Products []product `yaml:"products"`
}

type product struct {
	Slug        string         `yaml:"slug"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Thumbnail   string         `yaml:"thumbnail"`
	Price       domain.Money   `yaml:"price"`
	Options     domain.Options `yaml:"options"`
}

// Load creates every product of the document through svc and returns how
// many were created.
func Load(ctx context.Context, svc *app.Service, r io.Reader) (int, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		return 0, fmt.Errorf("decode catalog: %w", err)
	}

	for i, p := range f.Products {
		_, err := svc.CreateProduct(ctx, app.NewProduct{
			Slug:        p.Slug,
			Name:        p.Name,
			Description: p.Description,
			Currency:    p.Price.Currency,
			Amount:      p.Price.Amount,
			Thumbnail:   p.Thumbnail,
			Options:     p.Options,
		})
		if err != nil {
			return i, fmt.Errorf("product %d (%s): %w", i, p.Slug, err)
		}
	}
	return len(f.Products), nil
}

// LoadFile loads path from fs, or the built-in catalog when path is empty.
func LoadFile(ctx context.Context, svc *app.Service, fs afero.Fs, path string) (int, error) {
	if path == "" {
		return Load(ctx, svc, bytes.NewReader(defaultCatalog))
	}

	f, err := fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Load(ctx, svc, f)
}
