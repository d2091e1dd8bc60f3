package domain

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type QuoteLine struct {
	ItemID    string `json:"itemId"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	OrderName string `json:"orderName,omitempty"`
	Quantity  int64  `json:"quantity"`
	UnitPrice Money  `json:"unitPrice"`
	LineTotal Money  `json:"lineTotal"`
}

type Quote struct {
	Lines          []QuoteLine `json:"lines"`
	ShippingOption string      `json:"shippingOption,omitempty"`
	Subtotal       Money       `json:"subtotal"`
	VAT            Money       `json:"vat"`
	Shipping       Money       `json:"shipping"`
	Total          Money       `json:"total"`
	PriceVersion   string      `json:"priceVersion"`
}
