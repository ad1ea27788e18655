package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos_order_backend/internal/cart"
	"pos_order_backend/internal/models"
)

// CheckoutLine asks for quantity units of a menu item.
type CheckoutLine struct {
	MenuItemID int `json:"menuItemId" binding:"required"`
	Quantity   int `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest is the body of POST /api/checkout.
type CheckoutRequest struct {
	Items         []CheckoutLine `json:"items" binding:"required,min=1,dive"`
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone"`
	RoomNumber    string         `json:"roomNumber"`
	PaymentMethod string         `json:"paymentMethod"`
}

// CheckoutService prices a cart against the menu and places the order.
type CheckoutService interface {
	Menu() *cart.Menu
	Checkout(ctx context.Context, req CheckoutRequest) (*models.Order, error)
}

type checkoutService struct {
	menu   *cart.Menu
	orders OrderService
	now    func() time.Time
}

// NewCheckoutService creates a CheckoutService placing orders through orders.
func NewCheckoutService(menu *cart.Menu, orders OrderService, now func() time.Time) CheckoutService {
	if now == nil {
		now = time.Now
	}
	return &checkoutService{menu: menu, orders: orders, now: now}
}

func (s *checkoutService) Menu() *cart.Menu {
	return s.menu
}

func (s *checkoutService) Checkout(ctx context.Context, req CheckoutRequest) (*models.Order, error) {
	c := cart.New(s.menu)
	for _, line := range req.Items {
		if err := c.Add(line.MenuItemID, line.Quantity); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	order, err := c.BuildOrder(s.now(), cart.Customer{
		Name:          req.CustomerName,
		Phone:         req.CustomerPhone,
		RoomNumber:    req.RoomNumber,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, err
	}
	return s.orders.CreateOrder(ctx, order)
}
