package cart

import (
	"testing"

	"pos_order_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenu() *Menu {
	return NewMenu([]models.MenuItem{
		{ID: 1, Name: "Burger", Price: 5, Category: "Burgers"},
		{ID: 2, Name: "Fries", Price: 2.5, Category: "Sides"},
		{ID: 3, Name: "Cheeseburger", Price: 6, Category: "Burgers"},
	})
}

func TestCart_AddAndIncrement(t *testing.T) {
	c := New(testMenu())
	assert.True(t, c.IsEmpty())

	require.NoError(t, c.Increment(1))
	require.NoError(t, c.Increment(1))
	require.NoError(t, c.Add(2, 3))
	require.NoError(t, c.Add(2, 0))

	assert.Equal(t, 2, c.Quantity(1))
	assert.Equal(t, 3, c.Quantity(2))
	assert.Equal(t, 5, c.ItemCount())
	assert.InDelta(t, 17.5, c.Total(), 1e-9)

	assert.ErrorIs(t, c.Add(42, 1), ErrUnknownItem)
}

func TestCart_Change(t *testing.T) {
	c := New(testMenu())
	require.NoError(t, c.Add(1, 2))

	c.Change(1, 1)
	assert.Equal(t, 3, c.Quantity(1))

	c.Change(1, -3)
	assert.Equal(t, 0, c.Quantity(1))
	assert.True(t, c.IsEmpty())

	c.Change(2, 1)
	assert.True(t, c.IsEmpty())
}

func TestCart_Set(t *testing.T) {
	c := New(testMenu())

	require.NoError(t, c.Set(2, 4))
	assert.Equal(t, 4, c.Quantity(2))

	require.NoError(t, c.Set(2, 0))
	assert.True(t, c.IsEmpty())

	require.NoError(t, c.Set(1, 2))
	require.NoError(t, c.Set(1, -1))
	assert.True(t, c.IsEmpty())

	assert.ErrorIs(t, c.Set(99, 1), ErrUnknownItem)
}

func TestCart_LinesSortedByID(t *testing.T) {
	c := New(testMenu())
	require.NoError(t, c.Add(3, 1))
	require.NoError(t, c.Add(1, 2))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Burger", lines[0].Item.Name)
	assert.Equal(t, 10.0, lines[0].LineTotal)
	assert.Equal(t, "Cheeseburger", lines[1].Item.Name)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Lines())
	assert.Zero(t, c.Total())
}

func TestMenu(t *testing.T) {
	m := testMenu()

	assert.Equal(t, []string{"Burgers", "Sides"}, m.Categories())

	item, ok := m.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "Fries", item.Name)

	_, ok = m.Lookup(0)
	assert.False(t, ok)

	burgers := m.Filter("Burgers", "")
	assert.Len(t, burgers, 2)

	cheese := m.Filter("", "CHEESE")
	require.Len(t, cheese, 1)
	assert.Equal(t, 3, cheese[0].ID)

	assert.Empty(t, m.Filter("Sides", "burger"))
}

func TestDefaultMenu(t *testing.T) {
	m := DefaultMenu()

	assert.Len(t, m.Items(), 14)
	assert.Equal(t, []string{"Desserts & Sides", "Burgers", "Chicken", "Beverages"}, m.Categories())
}
