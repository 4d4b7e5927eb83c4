package domain

import "strings"

// Product is a catalog product as served by the upstream catalog API. Field
// names follow the upstream wire format. Optional upstream fields are
// pointers or slices rather than runtime presence checks.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images,omitempty"`
	Reviews            []Review `json:"reviews,omitempty"`
}

// Review is a customer review attached to a product detail record.
type Review struct {
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	Date          string `json:"date"`
	ReviewerName  string `json:"reviewerName"`
	ReviewerEmail string `json:"reviewerEmail,omitempty"`
}

// InStock reports whether the product can be added to a cart.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// OriginalPrice derives the pre-discount price from the listed price and the
// discount percentage. Returns the listed price when no discount is set.
func (p *Product) OriginalPrice() float64 {
	if p.DiscountPercentage == nil || *p.DiscountPercentage <= 0 || *p.DiscountPercentage >= 100 {
		return p.Price
	}
	return p.Price / (1 - *p.DiscountPercentage/100)
}

// MatchesSearch reports whether the product matches the search term by
// case-insensitive substring match over title, description, and category.
// An empty term matches everything.
func (p *Product) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Title), t) ||
		strings.Contains(strings.ToLower(p.Description), t) ||
		strings.Contains(strings.ToLower(p.Category), t)
}

// FilterProducts returns the products matching the search term, preserving
// order. An empty term returns the input unchanged.
func FilterProducts(products []Product, term string) []Product {
	if term == "" {
		return products
	}
	filtered := make([]Product, 0, len(products))
	for i := range products {
		if products[i].MatchesSearch(term) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered
}
