package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"pos_order_backend/internal/models"
	"pos_order_backend/internal/repositories"
	"pos_order_backend/pkg/utils"
)

// --- Data Transfer Objects (DTOs) ---

// CreateLineItemRequest is one line of a new order. Its fields are taken as sent.
type CreateLineItemRequest struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	InvoiceNumber string                  `json:"invoiceNumber" binding:"required"`
	DateTime      string                  `json:"dateTime" binding:"required"`
	Items         []CreateLineItemRequest `json:"items" binding:"required"`
	Subtotal      float64                 `json:"subtotal"`
	Tax           float64                 `json:"tax"`
	Discount      float64                 `json:"discount"`
	Total         float64                 `json:"total"`
	PaymentMethod string                  `json:"paymentMethod"`
	CustomerName  string                  `json:"customerName"`
	CustomerPhone string                  `json:"customerPhone"`
	RoomNumber    string                  `json:"roomNumber"`
	Status        string                  `json:"status"`
}

// ToModel converts the request into an unsaved Order.
func (r CreateOrderRequest) ToModel() *models.Order {
	var items []models.LineItem
	if r.Items != nil {
		items = make([]models.LineItem, 0, len(r.Items))
		for _, it := range r.Items {
			items = append(items, models.LineItem{
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				LineTotal: it.LineTotal,
			})
		}
	}
	return &models.Order{
		InvoiceNumber: r.InvoiceNumber,
		DateTime:      r.DateTime,
		Items:         items,
		Subtotal:      r.Subtotal,
		Tax:           r.Tax,
		Discount:      r.Discount,
		Total:         r.Total,
		PaymentMethod: r.PaymentMethod,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		RoomNumber:    r.RoomNumber,
		Status:        models.OrderStatus(r.Status),
	}
}

// UpdateOrderStatusRequest is the body of PATCH /api/orders/:invoiceNumber.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- End of DTOs ---

// OrderService exposes the order operations of the API.
type OrderService interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrderByInvoice(ctx context.Context, invoiceNumber string) (*models.Order, error)
	GetOrdersByDateRange(ctx context.Context, startDate, endDate string) ([]models.Order, error)
	SearchOrders(ctx context.Context, query string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, invoiceNumber string, req UpdateOrderStatusRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, invoiceNumber string) error
	GetStats(ctx context.Context) (*models.OrderStats, error)
}

type orderService struct {
	orderRepo repositories.OrderRepository
	loc       *time.Location
	now       func() time.Time
}

// NewOrderService creates a new instance of OrderService. Calendar dates are
// interpreted in loc.
func NewOrderService(or repositories.OrderRepository, loc *time.Location, now func() time.Time) OrderService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &orderService{orderRepo: or, loc: loc, now: now}
}

// --- Method Implementations ---

func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if utils.IsEmpty(order.InvoiceNumber) {
		return nil, fmt.Errorf("%w: invoiceNumber is required", ErrValidation)
	}
	if utils.IsEmpty(order.DateTime) {
		return nil, fmt.Errorf("%w: dateTime is required", ErrValidation)
	}
	if order.Items == nil {
		return nil, fmt.Errorf("%w: items is required", ErrValidation)
	}

	if order.Status == "" {
		order.Status = models.StatusConfirm
	}
	if !order.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrderStatus, order.Status)
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.DefaultPaymentMethod
	}
	// createdAt is always assigned by the store.
	order.CreatedAt = time.Time{}

	warnOnLineTotalMismatch(order)

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, fmt.Errorf("failed to create order record: %w", err)
	}
	utils.LogInfo("Order created", map[string]interface{}{"invoice_number": order.InvoiceNumber, "items": len(order.Items), "total": order.Total})
	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(ctx, models.OrderFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByInvoice(ctx context.Context, invoiceNumber string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByInvoice(ctx, invoiceNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s from repository: %w", invoiceNumber, err)
	}
	return order, nil
}

func (s *orderService) GetOrdersByDateRange(ctx context.Context, startDate, endDate string) ([]models.Order, error) {
	filters, err := dayRange(startDate, endDate, s.loc)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.GetOrders(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders by date range: %w", err)
	}
	return orders, nil
}

func (s *orderService) SearchOrders(ctx context.Context, query string) ([]models.Order, error) {
	orders, err := s.orderRepo.SearchOrders(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, invoiceNumber string, req UpdateOrderStatusRequest) (*models.Order, error) {
	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrderStatus, req.Status)
	}

	order, err := s.orderRepo.UpdateOrderStatus(ctx, invoiceNumber, status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status in repository: %w", err)
	}
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, invoiceNumber string) error {
	if err := s.orderRepo.DeleteOrder(ctx, invoiceNumber); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	utils.LogInfo("Order deleted", map[string]interface{}{"invoice_number": invoiceNumber})
	return nil
}

func (s *orderService) GetStats(ctx context.Context) (*models.OrderStats, error) {
	todayStart := startOfDay(s.now().In(s.loc))
	stats, err := s.orderRepo.GetOrderStats(ctx, todayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get order stats: %w", err)
	}
	return stats, nil
}

// warnOnLineTotalMismatch logs lines whose total differs from quantity*unitPrice.
// Client figures are still stored unchanged.
func warnOnLineTotalMismatch(order *models.Order) {
	for _, item := range order.Items {
		expected := float64(item.Quantity) * item.UnitPrice
		if math.Abs(expected-item.LineTotal) > 0.005 {
			utils.LogWarn("Line total does not match quantity * unitPrice", map[string]interface{}{
				"invoice_number": order.InvoiceNumber,
				"item":           item.Name,
				"line_total":     item.LineTotal,
				"expected":       expected,
			})
		}
	}
}
