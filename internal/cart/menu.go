package cart

import (
	"strings"

	"pos_order_backend/internal/models"
)

// Menu is an immutable catalog of sellable items.
type Menu struct {
	items      []models.MenuItem
	byID       map[int]models.MenuItem
	categories []string
}

// NewMenu indexes items. Categories keep first-seen order.
func NewMenu(items []models.MenuItem) *Menu {
	m := &Menu{
		items: append([]models.MenuItem(nil), items...),
		byID:  make(map[int]models.MenuItem, len(items)),
	}
	seen := make(map[string]bool)
	for _, it := range items {
		m.byID[it.ID] = it
		if !seen[it.Category] {
			seen[it.Category] = true
			m.categories = append(m.categories, it.Category)
		}
	}
	return m
}

// DefaultMenu is the counter's standard catalog.
func DefaultMenu() *Menu {
	return NewMenu([]models.MenuItem{
		{ID: 1, Name: "Sundae Cone", Price: 1.00, Category: "Desserts & Sides", Image: "https://images.unsplash.com/photo-1563805042-7684c019e1cb?w=300&h=300&fit=crop"},
		{ID: 2, Name: "Sundae (Chocolate/Strawberry)", Price: 2.70, Category: "Desserts & Sides", Image: "https://images.unsplash.com/photo-1563729784474-d77dbb933a9e?w=300&h=300&fit=crop"},
		{ID: 3, Name: "ChocoTop™", Price: 1.50, Category: "Desserts & Sides", Image: "https://images.unsplash.com/photo-1497034825429-c343d7c6a68f?w=300&h=300&fit=crop"},
		{ID: 4, Name: "Oreo McFlurry™", Price: 3.50, Category: "Desserts & Sides", Image: "https://images.unsplash.com/photo-1570197788417-0e82375c9371?w=300&h=300&fit=crop"},
		{ID: 5, Name: "Apple Pie", Price: 2.20, Category: "Desserts & Sides", Image: "https://images.unsplash.com/photo-1535920527002-b35e96722eb9?w=300&h=300&fit=crop"},
		{ID: 6, Name: "Corn Cup", Price: 1.80, Category: "Desserts & Sides", Image: "https://images.unsplash.com/photo-1551024601-bec78aea704b?w=300&h=300&fit=crop"},
		{ID: 7, Name: "French Fries", Price: 4.50, Category: "Desserts & Sides", Image: "https://images.unsplash.com/photo-1573080496219-bb080dd4f877?w=300&h=300&fit=crop"},
		{ID: 8, Name: "Big Mac", Price: 12.50, Category: "Burgers", Image: "https://images.unsplash.com/photo-1550547660-d9450f859349?w=300&h=300&fit=crop"},
		{ID: 9, Name: "McChicken", Price: 8.90, Category: "Burgers", Image: "https://images.unsplash.com/photo-1606755962773-d324e0a13086?w=300&h=300&fit=crop"},
		{ID: 10, Name: "Filet-O-Fish", Price: 10.20, Category: "Burgers", Image: "https://images.unsplash.com/photo-1529006557810-274b9b2fc783?w=300&h=300&fit=crop"},
		{ID: 11, Name: "Chicken Nuggets (6pc)", Price: 6.50, Category: "Chicken", Image: "https://images.unsplash.com/photo-1562967914-608f82629710?w=300&h=300&fit=crop"},
		{ID: 12, Name: "Chicken McNuggets (20pc)", Price: 15.90, Category: "Chicken", Image: "https://images.unsplash.com/photo-1619894991209-e86b8fdf89f1?w=300&h=300&fit=crop"},
		{ID: 13, Name: "Coca-Cola", Price: 2.50, Category: "Beverages", Image: "https://images.unsplash.com/photo-1554866585-cd94860890b7?w=300&h=300&fit=crop"},
		{ID: 14, Name: "Iced Coffee", Price: 3.50, Category: "Beverages", Image: "https://images.unsplash.com/photo-1517487881594-2787fef5ebf7?w=300&h=300&fit=crop"},
	})
}

// Items returns a copy of the catalog in declaration order.
func (m *Menu) Items() []models.MenuItem {
	return append([]models.MenuItem(nil), m.items...)
}

// Categories returns the distinct categories in first-seen order.
func (m *Menu) Categories() []string {
	return append([]string(nil), m.categories...)
}

// Lookup finds an item by id.
func (m *Menu) Lookup(id int) (models.MenuItem, bool) {
	it, ok := m.byID[id]
	return it, ok
}

// Filter returns the items of category whose name contains query,
// case-insensitively. An empty category matches all categories.
func (m *Menu) Filter(category, query string) []models.MenuItem {
	q := strings.ToLower(query)
	out := []models.MenuItem{}
	for _, it := range m.items {
		if category != "" && it.Category != category {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}
