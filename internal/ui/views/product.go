package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"prodview/internal/domain"
)

const (
	AddToCartLabel = "Add to Cart"
	EditLabel      = "Edit"
)

// ProductRenderer renders the product details around the carousel
type ProductRenderer struct {
	styles *Styles
}

// NewProductRenderer creates a new product renderer
func NewProductRenderer(styles *Styles) *ProductRenderer {
	return &ProductRenderer{styles: styles}
}

// RenderHeader renders the name, price and stock line
func (pr *ProductRenderer) RenderHeader(p *domain.Product) string {
	stock := pr.styles.InStock
	if !p.InStock() {
		stock = pr.styles.OutOfStock
	}

	var b strings.Builder
	b.WriteString(pr.styles.ProductName.Render(p.DisplayName()))
	b.WriteString("\n")
	b.WriteString(pr.styles.Price.Render(p.FormattedPrice()))
	b.WriteString("   ")
	b.WriteString(stock.Render(p.StockLabel()))
	if p.InStock() {
		b.WriteString(pr.styles.Dim.Render(fmt.Sprintf(" (%d available)", p.Quantity)))
	}
	return b.String()
}

// RenderButtons renders the action buttons. Edit is only offered to
// privileged users.
func (pr *ProductRenderer) RenderButtons(privileged bool) string {
	buttons := []string{pr.styles.Button.Render(AddToCartLabel)}
	if privileged {
		buttons = append(buttons, "  ", pr.styles.AdminButton.Render(EditLabel))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}
