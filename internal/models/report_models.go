package models

// ItemSales is one row of the per-item rollup. The name is serialized as
// "_id" to stay compatible with the existing sales page.
type ItemSales struct {
	Name              string  `json:"_id"`
	TotalQuantitySold int     `json:"totalQuantitySold"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// MonthKey identifies a calendar month in the reporting location.
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Before orders month keys chronologically.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// MonthlyItem is an item group inside a MonthlySales record.
type MonthlyItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// MonthlySales rolls up one month: order-level revenue plus item groups
// sorted by quantity.
type MonthlySales struct {
	ID                  MonthKey      `json:"_id"`
	TotalMonthlyRevenue float64       `json:"totalMonthlyRevenue"`
	TopSellingItem      *MonthlyItem  `json:"topSellingItem"`
	MonthlyItems        []MonthlyItem `json:"monthlyItems"`
}

// OrderStats holds headline counters for the dashboard.
type OrderStats struct {
	TotalOrders  int64   `json:"totalOrders"`
	TodayOrders  int64   `json:"todayOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
	TodayRevenue float64 `json:"todayRevenue"`
}

// SalesQuery carries the optional window for the sales endpoints.
// Values are "YYYY-MM-DD" dates or RFC3339 timestamps.
type SalesQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
