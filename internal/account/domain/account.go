package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

type Address struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"-"`
	Label      string    `json:"label"`
	FullName   string    `json:"fullName"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Normalize trims every field and upper-cases the country code.
func (a *Address) Normalize() {
	a.Label = strings.TrimSpace(a.Label)
	a.FullName = strings.TrimSpace(a.FullName)
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.ToUpper(strings.TrimSpace(a.Country))
	a.Phone = strings.TrimSpace(a.Phone)
}

func (a Address) Validate() error {
	switch {
	case a.FullName == "":
		return errors.New("full name is required")
	case a.Street == "":
		return errors.New("street is required")
	case a.City == "":
		return errors.New("city is required")
	case a.PostalCode == "":
		return errors.New("postal code is required")
	case len(a.Country) != 2:
		return errors.New("country must be a two-letter code")
	case utf8.RuneCountInString(a.Label) > 64:
		return errors.New("label must be at most 64 characters")
	case utf8.RuneCountInString(a.PostalCode) > 16:
		return errors.New("postal code must be at most 16 characters")
	case utf8.RuneCountInString(a.Phone) > 32:
		return errors.New("phone must be at most 32 characters")
	}
	return nil
}

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// Invoice is the billing view of a placed order.
type Invoice struct {
	Number   string    `json:"number"`
	OrderID  string    `json:"orderId"`
	Status   string    `json:"status"`
	IssuedAt time.Time `json:"issuedAt"`
	Net      Money     `json:"net"`
	VAT      Money     `json:"vat"`
	Total    Money     `json:"total"`
}

// InvoiceNumber derives the public number from an order id.
func InvoiceNumber(orderID string) string {
	id := strings.ReplaceAll(orderID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return "INV-" + strings.ToUpper(id)
}

type Message struct {
	ID      string    `json:"id"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sentAt"`
}

// MessagesNotice accompanies the message list until messaging ships.
const MessagesNotice = "under development"
