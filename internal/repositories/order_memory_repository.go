package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pos_order_backend/internal/models"
)

type memoryOrderRepository struct {
	mu        sync.RWMutex
	orders    map[string]*models.Order
	seq       map[string]int64
	nextSeq   int64
	lastStamp time.Time
	now       func() time.Time
}

// NewMemoryOrderRepository creates a process-local OrderRepository, used for
// development without a database and as the store in tests. now may be nil.
func NewMemoryOrderRepository(now func() time.Time) OrderRepository {
	if now == nil {
		now = time.Now
	}
	return &memoryOrderRepository{
		orders: make(map[string]*models.Order),
		seq:    make(map[string]int64),
		now:    now,
	}
}

func (r *memoryOrderRepository) CreateOrder(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.InvoiceNumber]; exists {
		return fmt.Errorf("%w: invoice number %q already exists", ErrDuplicateKey, order.InvoiceNumber)
	}
	if order.CreatedAt.IsZero() {
		stamp := r.now()
		if !stamp.After(r.lastStamp) {
			stamp = r.lastStamp.Add(time.Nanosecond)
		}
		r.lastStamp = stamp
		order.CreatedAt = stamp
	}
	if order.Items == nil {
		order.Items = []models.LineItem{}
	}

	r.nextSeq++
	r.seq[order.InvoiceNumber] = r.nextSeq
	stored := cloneOrder(*order)
	r.orders[order.InvoiceNumber] = &stored
	return nil
}

func (r *memoryOrderRepository) GetOrderByInvoice(_ context.Context, invoiceNumber string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[invoiceNumber]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneOrder(*order)
	return &out, nil
}

func (r *memoryOrderRepository) GetOrders(_ context.Context, filters models.OrderFilters) ([]models.Order, error) {
	return r.collect(func(o *models.Order) bool { return filters.Contains(o.CreatedAt) }), nil
}

func (r *memoryOrderRepository) SearchOrders(_ context.Context, query string) ([]models.Order, error) {
	needle := strings.ToLower(query)
	return r.collect(func(o *models.Order) bool {
		for _, field := range []string{o.InvoiceNumber, o.CustomerName, o.CustomerPhone, o.RoomNumber} {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}), nil
}

func (r *memoryOrderRepository) UpdateOrderStatus(_ context.Context, invoiceNumber string, status models.OrderStatus) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[invoiceNumber]
	if !ok {
		return nil, ErrNotFound
	}
	order.Status = status
	out := cloneOrder(*order)
	return &out, nil
}

func (r *memoryOrderRepository) DeleteOrder(_ context.Context, invoiceNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[invoiceNumber]; !ok {
		return ErrNotFound
	}
	delete(r.orders, invoiceNumber)
	delete(r.seq, invoiceNumber)
	return nil
}

func (r *memoryOrderRepository) GetOrderStats(_ context.Context, since time.Time) (*models.OrderStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.OrderStats{}
	for _, o := range r.orders {
		stats.TotalOrders++
		stats.TotalRevenue += o.Total
		if !o.CreatedAt.Before(since) {
			stats.TodayOrders++
			stats.TodayRevenue += o.Total
		}
	}
	return stats, nil
}

// collect returns copies of the matching orders, newest first. Equal
// timestamps fall back to insertion order, newest first.
func (r *memoryOrderRepository) collect(match func(*models.Order) bool) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Order{}
	for _, o := range r.orders {
		if match(o) {
			out = append(out, cloneOrder(*o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seq[out[i].InvoiceNumber] > r.seq[out[j].InvoiceNumber]
	})
	return out
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.LineItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
