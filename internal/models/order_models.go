package models

import "time"

// OrderStatus is the kitchen progress tag of an order.
type OrderStatus string

const (
	StatusConfirm   OrderStatus = "confirm"
	StatusPreparing OrderStatus = "Preparing"
	StatusCompleted OrderStatus = "Completed"
)

// DefaultPaymentMethod is applied when an order arrives without one.
const DefaultPaymentMethod = "Cash"

// Valid reports whether s is one of the known statuses. Matching is exact.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusConfirm, StatusPreparing, StatusCompleted:
		return true
	default:
		return false
	}
}

// Order is a single customer transaction. Only Status changes after creation.
type Order struct {
	InvoiceNumber string      `json:"invoiceNumber" bson:"invoiceNumber"`
	DateTime      string      `json:"dateTime" bson:"dateTime"`
	Items         []LineItem  `json:"items" bson:"items"`
	Subtotal      float64     `json:"subtotal" bson:"subtotal"`
	Tax           float64     `json:"tax" bson:"tax"`
	Discount      float64     `json:"discount" bson:"discount"`
	Total         float64     `json:"total" bson:"total"`
	PaymentMethod string      `json:"paymentMethod" bson:"paymentMethod"`
	CustomerName  string      `json:"customerName,omitempty" bson:"customerName,omitempty"`
	CustomerPhone string      `json:"customerPhone,omitempty" bson:"customerPhone,omitempty"`
	RoomNumber    string      `json:"roomNumber,omitempty" bson:"roomNumber,omitempty"`
	Status        OrderStatus `json:"status" bson:"status"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
}

// LineItem belongs to exactly one Order. Name is the aggregation key.
type LineItem struct {
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unitPrice" bson:"unitPrice"`
	LineTotal float64 `json:"lineTotal" bson:"lineTotal"`
}

// OrderFilters restricts order listings to a createdAt window.
// A nil bound leaves that side open.
type OrderFilters struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the (inclusive) window.
func (f OrderFilters) Contains(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && t.After(*f.To) {
		return false
	}
	return true
}
