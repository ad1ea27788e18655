package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pos_order_backend/internal/models"
	"pos_order_backend/internal/repositories"
)

// SalesService computes the reporting rollups. Every method reads one window
// of orders from the repository and aggregates in memory; a store failure
// returns ErrComputation and no partial data.
type SalesService interface {
	// GetItemSales groups line items by name, sorted by quantity sold.
	GetItemSales(ctx context.Context, q models.SalesQuery) ([]models.ItemSales, error)
	// GetTopItem returns the first row of GetItemSales, or nil. Without any
	// bound the window is the trailing calendar month.
	GetTopItem(ctx context.Context, q models.SalesQuery) (*models.ItemSales, error)
	// GetMonthlySales rolls orders up per calendar month, oldest first.
	GetMonthlySales(ctx context.Context, q models.SalesQuery) ([]models.MonthlySales, error)
}

type salesService struct {
	orderRepo repositories.OrderRepository
	loc       *time.Location
	now       func() time.Time
}

// NewSalesService creates a SalesService. Months and calendar dates are
// evaluated in loc.
func NewSalesService(or repositories.OrderRepository, loc *time.Location, now func() time.Time) SalesService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &salesService{orderRepo: or, loc: loc, now: now}
}

func (s *salesService) GetItemSales(ctx context.Context, q models.SalesQuery) ([]models.ItemSales, error) {
	filters, err := salesWindow(q, s.loc)
	if err != nil {
		return nil, err
	}
	orders, err := s.loadWindow(ctx, filters)
	if err != nil {
		return nil, err
	}
	return aggregateItemSales(orders), nil
}

func (s *salesService) GetTopItem(ctx context.Context, q models.SalesQuery) (*models.ItemSales, error) {
	var filters models.OrderFilters
	if q.StartDate == "" && q.EndDate == "" {
		filters = trailingMonth(s.now().In(s.loc))
	} else {
		var err error
		if filters, err = salesWindow(q, s.loc); err != nil {
			return nil, err
		}
	}

	orders, err := s.loadWindow(ctx, filters)
	if err != nil {
		return nil, err
	}
	rows := aggregateItemSales(orders)
	if len(rows) == 0 {
		return nil, nil
	}
	top := rows[0]
	return &top, nil
}

func (s *salesService) GetMonthlySales(ctx context.Context, q models.SalesQuery) ([]models.MonthlySales, error) {
	filters, err := salesWindow(q, s.loc)
	if err != nil {
		return nil, err
	}
	orders, err := s.loadWindow(ctx, filters)
	if err != nil {
		return nil, err
	}
	return aggregateMonthlySales(orders, s.loc), nil
}

func (s *salesService) loadWindow(ctx context.Context, filters models.OrderFilters) ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrComputation, err)
	}
	return orders, nil
}

// --- Aggregation passes ---

type itemAccumulator struct {
	quantity int
	revenue  float64
}

// groupItems sums quantity and line total per item name.
func groupItems(orders []models.Order) map[string]*itemAccumulator {
	groups := make(map[string]*itemAccumulator)
	for _, order := range orders {
		for _, item := range order.Items {
			acc, ok := groups[item.Name]
			if !ok {
				acc = &itemAccumulator{}
				groups[item.Name] = acc
			}
			acc.quantity += item.Quantity
			acc.revenue += item.LineTotal
		}
	}
	return groups
}

// rankBefore is the item ordering: quantity descending, then name ascending.
func rankBefore(qtyA int, nameA string, qtyB int, nameB string) bool {
	if qtyA != qtyB {
		return qtyA > qtyB
	}
	return nameA < nameB
}

func aggregateItemSales(orders []models.Order) []models.ItemSales {
	groups := groupItems(orders)
	rows := make([]models.ItemSales, 0, len(groups))
	for name, acc := range groups {
		rows = append(rows, models.ItemSales{Name: name, TotalQuantitySold: acc.quantity, TotalRevenue: acc.revenue})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rankBefore(rows[i].TotalQuantitySold, rows[i].Name, rows[j].TotalQuantitySold, rows[j].Name)
	})
	return rows
}

func aggregateMonthlySales(orders []models.Order, loc *time.Location) []models.MonthlySales {
	revenue := make(map[models.MonthKey]float64)
	ordersByMonth := make(map[models.MonthKey][]models.Order)
	for _, order := range orders {
		t := order.CreatedAt.In(loc)
		key := models.MonthKey{Year: t.Year(), Month: int(t.Month())}
		revenue[key] += order.Total
		ordersByMonth[key] = append(ordersByMonth[key], order)
	}

	months := make([]models.MonthlySales, 0, len(revenue))
	for key, total := range revenue {
		record := models.MonthlySales{
			ID:                  key,
			TotalMonthlyRevenue: total,
			MonthlyItems:        []models.MonthlyItem{},
		}
		for _, row := range aggregateItemSales(ordersByMonth[key]) {
			record.MonthlyItems = append(record.MonthlyItems, models.MonthlyItem{
				Name:     row.Name,
				Quantity: row.TotalQuantitySold,
				Revenue:  row.TotalRevenue,
			})
		}
		if len(record.MonthlyItems) > 0 {
			top := record.MonthlyItems[0]
			record.TopSellingItem = &top
		}
		months = append(months, record)
	}

	sort.Slice(months, func(i, j int) bool { return months[i].ID.Before(months[j].ID) })
	return months
}
