package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents a single catalog entry shown in the detail view
type Product struct {
	ID               string
	Name             string
	Description      string
	Price            decimal.Decimal
	Thumbnail        string   // primary image, always present
	Quantity         int      // units in stock
	AdditionalImages []string // optional, shown after the thumbnail in order
	Source           string   // file the product was loaded from
}

// Images returns the ordered image list for the carousel: the thumbnail
// followed by the additional images. The result is a fresh slice.
func (p *Product) Images() []string {
	images := make([]string, 0, 1+len(p.AdditionalImages))
	images = append(images, p.Thumbnail)
	images = append(images, p.AdditionalImages...)
	return images
}

// InStock reports whether at least one unit is available
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// StockLabel returns the stock line shown under the price
func (p *Product) StockLabel() string {
	if p.InStock() {
		return "In Stock"
	}
	return "Out of Stock"
}

// FormattedPrice renders the price with two decimals, e.g. "$12.50"
func (p *Product) FormattedPrice() string {
	return "$" + p.Price.StringFixed(2)
}

// DisplayName returns the name, falling back to the ID for untitled products
func (p *Product) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
