package cart

import (
	"errors"
	"fmt"
	"time"

	"pos_order_backend/internal/models"
)

// ErrEmptyCart is returned when building an invoice from an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// Placeholders the counter uses when the customer gives no details.
const (
	GuestCustomerName = "Guest"
	NotAvailable      = "N/A"
	displayLayout     = "1/2/2006, 3:04:05 PM"
)

// Customer carries the optional details typed at the counter.
type Customer struct {
	Name          string
	Phone         string
	RoomNumber    string
	PaymentMethod string
}

// InvoiceNumber formats the invoice id for an order placed at now.
func InvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d", now.UnixMilli())
}

// BuildOrder turns the cart into an unsaved order: prices come from the menu,
// subtotal equals total, no tax or discount, status confirm.
func (c *Cart) BuildOrder(now time.Time, customer Customer) (*models.Order, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lines := c.Lines()
	items := make([]models.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.LineItem{
			Name:      l.Item.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Item.Price,
			LineTotal: l.LineTotal,
		})
	}
	total := c.Total()

	return &models.Order{
		InvoiceNumber: InvoiceNumber(now),
		DateTime:      now.Format(displayLayout),
		Items:         items,
		Subtotal:      total,
		Tax:           0,
		Discount:      0,
		Total:         total,
		PaymentMethod: orDefault(customer.PaymentMethod, models.DefaultPaymentMethod),
		CustomerName:  orDefault(customer.Name, GuestCustomerName),
		CustomerPhone: orDefault(customer.Phone, NotAvailable),
		RoomNumber:    orDefault(customer.RoomNumber, NotAvailable),
		Status:        models.StatusConfirm,
	}, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
