package cart

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot taken when something is added to the cart.
// Price may be missing; it is accepted as-is.
type Product struct {
	ID    string              `json:"productId"`
	Name  string              `json:"name"`
	Price decimal.NullDecimal `json:"price"`
	Image string              `json:"image"`
}

type LineItem struct {
	ProductID string              `json:"productId"`
	Name      string              `json:"name"`
	Price     decimal.NullDecimal `json:"price"`
	Image     string              `json:"image"`
	Quantity  int                 `json:"quantity"`
}

// LineTotal is price x quantity; a line without a price counts as zero.
func (li LineItem) LineTotal() decimal.Decimal {
	if !li.Price.Valid {
		return decimal.Zero
	}
	return li.Price.Decimal.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart holds line items in insertion order plus the panel visibility flag.
// At most one line exists per product id.
type Cart struct {
	items  []LineItem
	isOpen bool
}

// New rebuilds a cart from stored lines. Lines with a quantity below one are
// dropped and duplicate product ids are merged.
func New(items []LineItem) *Cart {
	c := &Cart{}
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if idx := c.indexOf(item.ProductID); idx >= 0 {
			c.items[idx].Quantity += item.Quantity
			continue
		}
		c.items = append(c.items, item)
	}
	return c
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Add(p Product) {
	if idx := c.indexOf(p.ID); idx >= 0 {
		c.items[idx].Quantity++
	} else {
		c.items = append(c.items, LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  1,
		})
	}
	c.isOpen = true
}

func (c *Cart) Remove(productID string) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

// SetQuantity ignores quantities below one instead of clamping them.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}
	if idx := c.indexOf(productID); idx >= 0 {
		c.items[idx].Quantity = quantity
	}
}

func (c *Cart) Increment(productID string) {
	if idx := c.indexOf(productID); idx >= 0 {
		c.items[idx].Quantity++
	}
}

// Decrement floors at one and never removes the line.
func (c *Cart) Decrement(productID string) {
	if idx := c.indexOf(productID); idx >= 0 && c.items[idx].Quantity > 1 {
		c.items[idx].Quantity--
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Deduct takes ordered lines out of the cart. A line keeps only the quantity
// added after the order snapshot was taken.
func (c *Cart) Deduct(ordered []LineItem) {
	for _, item := range ordered {
		idx := c.indexOf(item.ProductID)
		if idx < 0 {
			continue
		}
		if c.items[idx].Quantity <= item.Quantity {
			c.Remove(item.ProductID)
			continue
		}
		c.items[idx].Quantity -= item.Quantity
	}
}

func (c *Cart) Toggle() bool {
	c.isOpen = !c.isOpen
	return c.isOpen
}

func (c *Cart) IsOpen() bool {
	return c.isOpen
}

func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Line(productID string) (LineItem, bool) {
	if idx := c.indexOf(productID); idx >= 0 {
		return c.items[idx], true
	}
	return LineItem{}, false
}

func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
