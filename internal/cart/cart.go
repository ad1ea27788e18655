// Package cart holds the counter-side ordering state: the menu catalog, a
// cart of item quantities and the invoice built from it.
package cart

import (
	"errors"
	"fmt"
	"sort"

	"pos_order_backend/internal/models"
)

// ErrUnknownItem is returned when an id is not on the menu.
var ErrUnknownItem = errors.New("unknown menu item")

// Line is one cart entry priced against the menu.
type Line struct {
	Item      models.MenuItem
	Quantity  int
	LineTotal float64
}

// Cart maps menu item ids to positive quantities. The zero value is not
// usable; use New.
type Cart struct {
	menu *Menu
	qty  map[int]int
}

// New returns an empty cart over menu.
func New(menu *Menu) *Cart {
	return &Cart{menu: menu, qty: make(map[int]int)}
}

// Add increases the quantity of id by n (n <= 0 is ignored).
func (c *Cart) Add(id, n int) error {
	if _, ok := c.menu.Lookup(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	if n > 0 {
		c.qty[id] += n
	}
	return nil
}

// Increment adds one unit of id, as a tap on the menu tile does.
func (c *Cart) Increment(id int) error {
	return c.Add(id, 1)
}

// Change applies delta to an item already in the cart. Reaching zero or
// less removes it. Items not in the cart are left alone.
func (c *Cart) Change(id, delta int) {
	q, ok := c.qty[id]
	if !ok {
		return
	}
	q += delta
	if q <= 0 {
		delete(c.qty, id)
		return
	}
	c.qty[id] = q
}

// Set overwrites the quantity of id; qty <= 0 removes it.
func (c *Cart) Set(id, qty int) error {
	if _, ok := c.menu.Lookup(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	if qty <= 0 {
		delete(c.qty, id)
		return nil
	}
	c.qty[id] = qty
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.qty = make(map[int]int)
}

// Quantity returns the units of id in the cart.
func (c *Cart) Quantity(id int) int {
	return c.qty[id]
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.qty) == 0
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, q := range c.qty {
		n += q
	}
	return n
}

// Lines returns the priced lines ordered by menu item id.
func (c *Cart) Lines() []Line {
	ids := make([]int, 0, len(c.qty))
	for id := range c.qty {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	lines := make([]Line, 0, len(ids))
	for _, id := range ids {
		item, _ := c.menu.Lookup(id)
		q := c.qty[id]
		lines = append(lines, Line{Item: item, Quantity: q, LineTotal: item.Price * float64(q)})
	}
	return lines
}

// Total sums the line totals.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, l := range c.Lines() {
		total += l.LineTotal
	}
	return total
}
