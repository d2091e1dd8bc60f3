package domain

import (
	"slices"
	"time"
)

type Money struct {
	Currency string `json:"currency" yaml:"currency"`
	Amount   int64  `json:"amount" yaml:"amount"`
}

// Options lists the print choices a product accepts.
type Options struct {
	Formats    []string `json:"formats" yaml:"formats"`
	Papers     []string `json:"papers" yaml:"papers"`
	Colors     []string `json:"colors" yaml:"colors"`
	Finishings []string `json:"finishings" yaml:"finishings"`
}

type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnitPrice   Money     `json:"unitPrice"`
	Thumbnail   string    `json:"thumbnail"`
	Options     Options   `json:"options"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Allows reports whether every selected value is one the product offers.
// Finishings may be empty.
func (o Options) Allows(format, paper, colors string, finishings []string) bool {
	if !slices.Contains(o.Formats, format) ||
		!slices.Contains(o.Papers, paper) ||
		!slices.Contains(o.Colors, colors) {
		return false
	}
	for _, f := range finishings {
		if !slices.Contains(o.Finishings, f) {
			return false
		}
	}
	return true
}
