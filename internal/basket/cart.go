package basket

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/autospares/internal/domain"
)

// Line is a cart entry
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// Subtotal returns unit price times quantity
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart maps products to quantities. Stock is not checked here; checkout does that.
type Cart struct {
	lines []Line
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) index(id uuid.UUID) int {
	for i := range c.lines {
		if c.lines[i].ProductID == id {
			return i
		}
	}
	return -1
}

// AddItem increments the quantity of an existing line or inserts a new one with quantity 1
func (c *Cart) AddItem(item Item) {
	if i := c.index(item.ProductID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// UpdateQuantity replaces a line's quantity; quantity <= 0 removes the line.
// It returns false when the product is not in the cart.
func (c *Cart) UpdateQuantity(id uuid.UUID, quantity int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return true
	}
	c.lines[i].Quantity = quantity
	return true
}

// RemoveItem deletes a line, reporting whether it was present
func (c *Cart) RemoveItem(id uuid.UUID) bool {
	return c.UpdateQuantity(id, 0)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// Total is the sum of unit price times quantity, rounded to cents
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return domain.RoundMoney(total)
}

// ItemCount is the sum of quantities, not the number of lines
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
