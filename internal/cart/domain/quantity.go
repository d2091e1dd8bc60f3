package domain

import "fmt"

const (
	MinQuantity = 1
	MaxQuantity = 10000
)

// ValidateQuantity checks a requested line quantity. The cart itself accepts
// any value; callers run this first and show the message to the customer.
func ValidateQuantity(q int) error {
	if q < MinQuantity || q > MaxQuantity {
		return fmt.Errorf("quantity must be between %d and %d, got %d", MinQuantity, MaxQuantity, q)
	}
	return nil
}
