package domain

import "fmt"

type ShippingOption struct {
	Code   string `json:"code"`
	Amount int64  `json:"amount"`
	Pickup bool   `json:"pickup"`
}

var ShippingOptions = []ShippingOption{
	{Code: "standard", Amount: 1500},
	{Code: "express", Amount: 3500},
	{Code: "pickup", Amount: 0, Pickup: true},
}

const (
	PaymentBankTransfer   = "bank_transfer"
	PaymentCard           = "card"
	PaymentCashOnDelivery = "cash_on_delivery"
)

var PaymentMethods = []string{PaymentBankTransfer, PaymentCard, PaymentCashOnDelivery}

func LookupShipping(code string) (ShippingOption, bool) {
	for _, o := range ShippingOptions {
		if o.Code == code {
			return o, true
		}
	}
	return ShippingOption{}, false
}

// ValidatePayment checks the method and its compatibility with the chosen
// shipping option. Cash on delivery needs a courier.
func ValidatePayment(method, shipping string) error {
	known := false
	for _, m := range PaymentMethods {
		if m == method {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown payment method %q", method)
	}

	if method == PaymentCashOnDelivery {
		if opt, ok := LookupShipping(shipping); ok && opt.Pickup {
			return fmt.Errorf("cash on delivery is not available with %s", opt.Code)
		}
	}
	return nil
}
