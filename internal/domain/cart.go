package domain

import "time"

// Pricing constants applied by the derived cart queries.
const (
	// ShippingFlatFee is charged whenever the subtotal is positive.
	ShippingFlatFee = 5.99
	// TaxRate is applied to the subtotal.
	TaxRate = 0.10
)

// LineItem is one product entry in the cart, carrying its own quantity.
// Items are uniquely keyed by ProductID within a cart.
type LineItem struct {
	ProductID    int     `json:"product_id"`
	Title        string  `json:"title"`
	Brand        string  `json:"brand"`
	ThumbnailURL string  `json:"thumbnail_url"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
}

// Cart holds the authoritative session-scoped cart state: the ordered line
// items (insertion order = display order) and the current search term.
type Cart struct {
	SessionID  string     `json:"session_id"`
	Items      []LineItem `json:"items"`
	SearchTerm string     `json:"search_term"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for the given session.
func NewCart(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID:  sessionID,
		Items:      []LineItem{},
		SearchTerm: "",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// findItemIndex returns the index of the line item with the given product ID,
// or -1 if absent.
func (c *Cart) findItemIndex(productID int) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddProduct applies the add-to-cart transition: if a line item with the same
// product ID exists its quantity is incremented by one, otherwise a new line
// item with quantity one is appended, preserving the supplied product fields.
// The transition always succeeds.
func (c *Cart) AddProduct(p Product) {
	if i := c.findItemIndex(p.ID); i >= 0 {
		c.Items[i].Quantity++
	} else {
		c.Items = append(c.Items, LineItem{
			ProductID:    p.ID,
			Title:        p.Title,
			Brand:        p.Brand,
			ThumbnailURL: p.Thumbnail,
			UnitPrice:    p.Price,
			Quantity:     1,
		})
	}
	c.UpdatedAt = time.Now().UTC()
}

// RemoveItem removes the line item with the given product ID. Removing an
// absent ID is a no-op, not an error. Returns whether the cart changed.
func (c *Cart) RemoveItem(productID int) bool {
	i := c.findItemIndex(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.UpdatedAt = time.Now().UTC()
	return true
}

// SetQuantity sets the quantity of an existing line item. The update is
// rejected as a whole (state unchanged) when the item is absent or the
// quantity is below one; values are never clamped. Returns whether the cart
// changed.
func (c *Cart) SetQuantity(productID, quantity int) bool {
	if quantity < 1 {
		return false
	}
	i := c.findItemIndex(productID)
	if i < 0 {
		return false
	}
	c.Items[i].Quantity = quantity
	c.UpdatedAt = time.Now().UTC()
	return true
}

// Clear resets the items to empty. The search term is unaffected.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
	c.UpdatedAt = time.Now().UTC()
}

// SetSearchTerm replaces the search term unconditionally. An empty string
// means "no filter".
func (c *Cart) SetSearchTerm(term string) {
	c.SearchTerm = term
	c.UpdatedAt = time.Now().UTC()
}

// Subtotal is the sum of unit price times quantity over all line items.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities over all line items. It counts units,
// not distinct products.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// ShippingFee is the flat shipping charge, waived on an empty subtotal.
func (c *Cart) ShippingFee() float64 {
	if c.Subtotal() > 0 {
		return ShippingFlatFee
	}
	return 0
}

// Tax is the subtotal times the tax rate.
func (c *Cart) Tax() float64 {
	return c.Subtotal() * TaxRate
}

// Total is subtotal plus shipping fee plus tax.
func (c *Cart) Total() float64 {
	return c.Subtotal() + c.ShippingFee() + c.Tax()
}

// Summary holds the derived read projections of the cart.
type Summary struct {
	ItemCount   int     `json:"item_count"`
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shipping_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// Summarize computes all derived values in one pass over the items.
func (c *Cart) Summarize() Summary {
	subtotal := c.Subtotal()
	shipping := 0.0
	if subtotal > 0 {
		shipping = ShippingFlatFee
	}
	tax := subtotal * TaxRate
	return Summary{
		ItemCount:   c.ItemCount(),
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Tax:         tax,
		Total:       subtotal + shipping + tax,
	}
}
