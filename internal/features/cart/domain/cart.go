package domain

import "encoding/json"

// Product is the catalog snapshot a cart line needs: identity, display
// name, list price and the stock ceiling for quantity clamping.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// Line is one product-quantity pairing within a cart.
// Invariant: 1 <= Quantity <= Product.Stock after any mutation.
type Line struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the undiscounted line total.
func (l Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Cart is the shopping cart aggregate: an ordered collection of lines
// with at most one line per product ID. All mutation goes through the
// methods below; the backing slice is never handed out.
//
// The cart has two externally meaningful states, empty and non-empty.
// There is no checkout lock state: the cart stays mutable until Clear.
type Cart struct {
	lines []Line
}

// AddItem merges a product into the cart. An existing line has its
// quantity incremented by one, clamped to the product's stock — adding
// at the stock ceiling is a no-op rather than an error. A new line
// starts at quantity one; out-of-stock products are refused.
func (c *Cart) AddItem(p Product) {
	if p.Stock <= 0 {
		return
	}

	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			// Refresh the snapshot so price/stock changes take effect.
			c.lines[i].Product = p
			if c.lines[i].Quantity < p.Stock {
				c.lines[i].Quantity++
			} else {
				c.lines[i].Quantity = p.Stock
			}
			return
		}
	}

	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
}

// UpdateQuantity sets a line's quantity, clamped to [1, stock].
// A quantity below one removes the line. Unknown IDs are no-ops.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	idx := c.index(productID)
	if idx < 0 {
		return
	}

	if quantity < 1 {
		c.remove(idx)
		return
	}

	if stock := c.lines[idx].Product.Stock; quantity > stock {
		quantity = stock
	}
	c.lines[idx].Quantity = quantity
}

// RemoveItem deletes a line unconditionally. Unknown IDs are no-ops.
func (c *Cart) RemoveItem(productID string) {
	if idx := c.index(productID); idx >= 0 {
		c.remove(idx)
	}
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.lines = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// LineCount is the number of distinct lines. This is what the cart
// badge shows, not the summed quantities.
func (c *Cart) LineCount() int {
	return len(c.lines)
}

// TotalQuantity is the sum of quantities across lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// Subtotal sums price * quantity over all lines. Discounts are not
// applied here: the store's totals always use the list price, matching
// the listing-versus-cart behavior shipped to customers.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Subtotal()
	}
	return sum
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for a product, if present.
func (c *Cart) Line(productID string) (Line, bool) {
	if idx := c.index(productID); idx >= 0 {
		return c.lines[idx], true
	}
	return Line{}, false
}

func (c *Cart) index(productID string) int {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) remove(idx int) {
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}

// cartJSON is the persisted shape of the aggregate.
type cartJSON struct {
	Lines []Line `json:"lines"`
}

// MarshalJSON serializes the cart for storage.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(cartJSON{Lines: c.lines})
}

// UnmarshalJSON restores the cart from storage.
func (c *Cart) UnmarshalJSON(b []byte) error {
	var stored cartJSON
	if err := json.Unmarshal(b, &stored); err != nil {
		return err
	}
	c.lines = stored.Lines
	return nil
}
