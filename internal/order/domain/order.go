package domain

import "time"

const StatusPending = "PENDING"

type Address struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type Configuration struct {
	Format     string   `json:"format"`
	Paper      string   `json:"paper"`
	Colors     string   `json:"colors"`
	Finishings []string `json:"finishings"`
}

// File references a print file kept in upload storage.
type File struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
	Path        string `json:"path"`
}

type Order struct {
	ID              string      `json:"id"`
	OwnerID         string      `json:"ownerId"`
	Status          string      `json:"status"`
	Currency        string      `json:"currency"`
	ShippingOption  string      `json:"shippingOption"`
	PaymentMethod   string      `json:"paymentMethod"`
	ShippingAddress Address     `json:"shippingAddress"`
	SubTotalAmount  int64       `json:"subtotalAmount"`
	VATAmount       int64       `json:"vatAmount"`
	ShippingAmount  int64       `json:"shippingAmount"`
	TotalAmount     int64       `json:"totalAmount"`
	OrderItems      []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID              string        `json:"id"`
	OrderID         string        `json:"orderId"`
	ItemID          string        `json:"itemId"`
	Slug            string        `json:"slug"`
	Name            string        `json:"name"`
	Configuration   Configuration `json:"configuration"`
	Files           []File        `json:"files"`
	UnitAmount      int64         `json:"unitAmount"`
	Quantity        int64         `json:"quantity"`
	LineTotalAmount int64         `json:"lineTotalAmount"`
}

type CreateOrderRequest struct {
	OwnerID         string
	Currency        string
	ShippingOption  string
	PaymentMethod   string
	ShippingAddress Address
	ShippingAmount  int64
	VATBasisPoints  int64
	Items           []OrderItemRequest
}

type OrderItemRequest struct {
	ItemID        string
	Slug          string
	Name          string
	Configuration Configuration
	Files         []File
	UnitAmount    int64
	Quantity      int64
}

type OrderResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Currency    string    `json:"currency"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}
