package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pos_order_backend/internal/models"
	"pos_order_backend/pkg/utils"

	"github.com/lib/pq" // For pq.Error and pq.Array
)

// OrderRepository defines the storage operations over orders.
// Every listing is sorted by createdAt descending.
type OrderRepository interface {
	// CreateOrder persists the order with its items. A zero CreatedAt is
	// set to the insertion time. A taken invoice number yields ErrDuplicateKey.
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByInvoice(ctx context.Context, invoiceNumber string) (*models.Order, error)
	GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error)
	// SearchOrders matches query as a case-insensitive literal substring of
	// invoice number, customer name, customer phone or room number.
	SearchOrders(ctx context.Context, query string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, invoiceNumber string, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, invoiceNumber string) error
	// GetOrderStats counts orders and sums totals overall and since the given instant.
	GetOrderStats(ctx context.Context, since time.Time) (*models.OrderStats, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates the PostgreSQL backed OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `o.id, o.invoice_number, o.date_time, o.subtotal, o.tax, o.discount, o.total,
	o.payment_method, o.customer_name, o.customer_phone, o.room_number, o.status, o.created_at`

// --- Order Methods ---

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	query := `INSERT INTO orders
	            (invoice_number, date_time, subtotal, tax, discount, total,
	             payment_method, customer_name, customer_phone, room_number, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id, created_at`

	var orderID int64
	err = tx.QueryRowContext(ctx, query,
		order.InvoiceNumber, order.DateTime, order.Subtotal, order.Tax, order.Discount, order.Total,
		order.PaymentMethod, utils.NewNullString(order.CustomerName), utils.NewNullString(order.CustomerPhone),
		utils.NewNullString(order.RoomNumber), string(order.Status), order.CreatedAt,
	).Scan(&orderID, &order.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: invoice number %q already exists", ErrDuplicateKey, order.InvoiceNumber)
		}
		return fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}

	if err := r.createOrderItems(ctx, tx, orderID, order.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing order %s: %v", ErrDatabaseError, order.InvoiceNumber, err)
	}
	return nil
}

func (r *orderRepository) GetOrderByInvoice(ctx context.Context, invoiceNumber string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.invoice_number = $1`
	orders, err := r.queryOrders(ctx, query, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

func (r *orderRepository) GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + ` FROM orders o`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.From != nil {
		conditions = append(conditions, fmt.Sprintf("o.created_at >= $%d", argCounter))
		args = append(args, *filters.From)
		argCounter++
	}
	if filters.To != nil {
		conditions = append(conditions, fmt.Sprintf("o.created_at <= $%d", argCounter))
		args = append(args, *filters.To)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY o.created_at DESC, o.id DESC")

	return r.queryOrders(ctx, queryBuilder.String(), args...)
}

func (r *orderRepository) SearchOrders(ctx context.Context, query string) ([]models.Order, error) {
	sqlQuery := `SELECT ` + orderColumns + `
	             FROM orders o
	             WHERE o.invoice_number ILIKE $1 ESCAPE '\'
	                OR o.customer_name ILIKE $1 ESCAPE '\'
	                OR o.customer_phone ILIKE $1 ESCAPE '\'
	                OR o.room_number ILIKE $1 ESCAPE '\'
	             ORDER BY o.created_at DESC, o.id DESC`
	return r.queryOrders(ctx, sqlQuery, "%"+escapeLikePattern(query)+"%")
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, invoiceNumber string, status models.OrderStatus) (*models.Order, error) {
	query := `UPDATE orders SET status = $1 WHERE invoice_number = $2`
	result, err := r.db.ExecContext(ctx, query, string(status), invoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: updating status for order %s: %v", ErrDatabaseError, invoiceNumber, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: getting rows affected for order %s: %v", ErrDatabaseError, invoiceNumber, err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetOrderByInvoice(ctx, invoiceNumber)
}

func (r *orderRepository) DeleteOrder(ctx context.Context, invoiceNumber string) error {
	// order_items rows go with ON DELETE CASCADE.
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE invoice_number = $1`, invoiceNumber)
	if err != nil {
		return fmt.Errorf("%w: deleting order %s: %v", ErrDatabaseError, invoiceNumber, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting order %s: %v", ErrDatabaseError, invoiceNumber, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) GetOrderStats(ctx context.Context, since time.Time) (*models.OrderStats, error) {
	query := `SELECT COUNT(*),
	                 COUNT(*) FILTER (WHERE created_at >= $1),
	                 COALESCE(SUM(total), 0),
	                 COALESCE(SUM(total) FILTER (WHERE created_at >= $1), 0)
	          FROM orders`
	stats := &models.OrderStats{}
	err := r.db.QueryRowContext(ctx, query, since).Scan(
		&stats.TotalOrders, &stats.TodayOrders, &stats.TotalRevenue, &stats.TodayRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: computing order stats: %v", ErrDatabaseError, err)
	}
	return stats, nil
}

// --- LineItem Methods ---

func (r *orderRepository) createOrderItems(ctx context.Context, executor SQLExecutor, orderID int64, items []models.LineItem) error {
	query := `INSERT INTO order_items (order_id, position, name, quantity, unit_price, line_total)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	for i, item := range items {
		_, err := executor.ExecContext(ctx, query, orderID, i, item.Name, item.Quantity, item.UnitPrice, item.LineTotal)
		if err != nil {
			return fmt.Errorf("%w: creating order item %q: %v", ErrDatabaseError, item.Name, err)
		}
	}
	return nil
}

// queryOrders runs an order SELECT built on orderColumns and attaches the
// line items of every returned order with one extra query.
func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	var ids []int64
	for rows.Next() {
		id, order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		ids = append(ids, id)
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachOrderItems(ctx, orders, ids); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) attachOrderItems(ctx context.Context, orders []models.Order, ids []int64) error {
	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
		orders[i].Items = []models.LineItem{}
	}

	query := `SELECT order_id, name, quantity, unit_price, line_total
	          FROM order_items
	          WHERE order_id = ANY($1)
	          ORDER BY order_id, position`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("%w: querying order items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var item models.LineItem
		if err := rows.Scan(&orderID, &item.Name, &item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}
	return nil
}

func scanOrder(s scanner) (int64, models.Order, error) {
	var id int64
	var o models.Order
	var customerName, customerPhone, roomNumber *string
	var status string
	err := s.Scan(
		&id, &o.InvoiceNumber, &o.DateTime, &o.Subtotal, &o.Tax, &o.Discount, &o.Total,
		&o.PaymentMethod, &customerName, &customerPhone, &roomNumber, &status, &o.CreatedAt,
	)
	if err != nil {
		return 0, o, err
	}
	o.CustomerName = utils.StringValue(customerName)
	o.CustomerPhone = utils.StringValue(customerPhone)
	o.RoomNumber = utils.StringValue(roomNumber)
	o.Status = models.OrderStatus(status)
	return id, o, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern neutralizes LIKE wildcards so user input matches literally.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}
