package checkout

import (
	"fmt"

	"dokon-pos/internal/models"
)

// Line is one product in the cart: a snapshot of the product as it was
// when added, plus the requested quantity. Stock is the on-hand count at
// add time; the commit transaction re-checks against the live row.
type Line struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Stock     int    `json:"stock"`
}

// LineTotal is the price of this line before any sale-level discount.
func (l Line) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart is the in-memory checkout aggregate. Lines keep insertion order;
// adding a product already in the cart merges quantities instead of
// creating a second line.
type Cart struct {
	lines []*Line
	index map[uint]*Line
}

func NewCart() *Cart {
	return &Cart{index: make(map[uint]*Line)}
}

// AddLine puts qty units of p into the cart. It fails with ErrOutOfStock
// when nothing is on hand, and with ErrInsufficientStock when the
// cumulative cart quantity for this product would exceed the on-hand
// count. On failure the cart is left unchanged.
func (c *Cart) AddLine(p models.Product, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity %d", ErrInsufficientStock, qty)
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
	}

	if line, ok := c.index[p.ID]; ok {
		if line.Quantity+qty > line.Stock {
			return fmt.Errorf("%w: %s (have %d, cart wants %d)",
				ErrInsufficientStock, p.Name, line.Stock, line.Quantity+qty)
		}
		line.Quantity += qty
		return nil
	}

	if qty > p.Quantity {
		return fmt.Errorf("%w: %s (have %d, want %d)",
			ErrInsufficientStock, p.Name, p.Quantity, qty)
	}

	line := &Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		Stock:     p.Quantity,
	}
	c.lines = append(c.lines, line)
	c.index[p.ID] = line
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity below
// 1 removes the line; a quantity above the on-hand count fails with
// ErrInsufficientStock and leaves the line as it was.
func (c *Cart) UpdateQuantity(productID uint, qty int) error {
	line, ok := c.index[productID]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
	}
	if qty < 1 {
		c.RemoveLine(productID)
		return nil
	}
	if qty > line.Stock {
		return fmt.Errorf("%w: %s (have %d, want %d)",
			ErrInsufficientStock, line.Name, line.Stock, qty)
	}
	line.Quantity = qty
	return nil
}

// RemoveLine drops a line unconditionally. Removing an absent line is a
// no-op.
func (c *Cart) RemoveLine(productID uint) {
	if _, ok := c.index[productID]; !ok {
		return
	}
	delete(c.index, productID)
	for i, line := range c.lines {
		if line.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns copies of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}
	return out
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of all line totals before discount.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.LineTotal()
	}
	return sum
}

// Totals holds the computed amounts for the current cart state.
type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discount_amount"`
	Total          int64 `json:"total"`
}

// ComputeTotals applies a whole-percent discount to the subtotal. It is
// a pure function of the cart state; discountPercent outside [0,100] is
// rejected.
func (c *Cart) ComputeTotals(discountPercent int) (Totals, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return Totals{}, fmt.Errorf("%w: %d", ErrInvalidDiscount, discountPercent)
	}
	subtotal := c.Subtotal()
	discount := subtotal * int64(discountPercent) / 100
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal - discount,
	}, nil
}
