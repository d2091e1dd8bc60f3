// Package pricing holds the mock price calculation used until the pricing
// backend is wired: a flat per-unit price and a single VAT rate.
package pricing

// Version tags cart lines priced by this package.
const Version = "mock-1"

// DefaultVATBasisPoints is 23.00%.
const DefaultVATBasisPoints = 2300

func LineTotal(unitAmount int64, quantity int) int64 {
	if quantity <= 0 || unitAmount <= 0 {
		return 0
	}
	return unitAmount * int64(quantity)
}

// VAT returns the tax on a net amount at rate bps (1/100 of a percent),
// rounded half up to the minor unit.
func VAT(net, bps int64) int64 {
	if net <= 0 || bps <= 0 {
		return 0
	}
	return (net*bps + 5000) / 10000
}

type Totals struct {
	Subtotal int64 `json:"subtotal"`
	VAT      int64 `json:"vat"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// Compute sums the line totals, adds VAT on the goods and the shipping fee.
// Shipping is quoted gross.
func Compute(lineTotals []int64, shipping, bps int64) Totals {
	var sub int64
	for _, lt := range lineTotals {
		sub += lt
	}
	if shipping < 0 {
		shipping = 0
	}
	vat := VAT(sub, bps)
	return Totals{
		Subtotal: sub,
		VAT:      vat,
		Shipping: shipping,
		Total:    sub + vat + shipping,
	}
}
