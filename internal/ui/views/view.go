package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"prodview/internal/carousel"
	"prodview/internal/domain"
)

const (
	defaultWidth        = 80
	defaultHeight       = 24
	descriptionMaxLines = 6
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Product       *domain.Product // nil when the catalog is empty
	Position      int             // 1-based position of Product in the catalog
	Total         int
	Navigator     *carousel.Navigator
	Privileged    bool
	Scanning      bool
	ScanFound     int
	StatusMessage string
	StatusIsError bool
	ShowHelp      bool
	HelpContent   string
	HelpBar       string // rendered short help; empty hides the bar
	CatalogRoot   string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	product     *ProductRenderer
	carousel    *CarouselRenderer
	description *DescriptionRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(description *DescriptionRenderer) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		product:     NewProductRenderer(styles),
		carousel:    NewCarouselRenderer(styles),
		description: description,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := state.Height
	if height <= 0 {
		height = defaultHeight
	}

	if state.ShowHelp {
		return r.popupRender.RenderPopup(state.HelpContent, height, width, r.styles.HelpBox)
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(state, width))
	content.WriteString("\n\n")

	innerWidth := width - 4 // main container padding
	if state.Product == nil {
		content.WriteString(r.renderEmpty(state))
	} else {
		content.WriteString(r.product.RenderHeader(state.Product))
		content.WriteString("\n\n")
		content.WriteString(r.carousel.Render(state.Navigator, innerWidth))
		content.WriteString("\n\n")
		if desc := r.renderDescription(state.Product, innerWidth); desc != "" {
			content.WriteString(desc)
			content.WriteString("\n\n")
		}
		content.WriteString(r.product.RenderButtons(state.Privileged))
	}

	var footer []string
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		footer = append(footer, style.Render(state.StatusMessage))
	}
	if state.HelpBar != "" {
		footer = append(footer, state.HelpBar)
	}

	if len(footer) > 0 {
		// Push the footer to the bottom of the screen
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := height - 2 // container padding
		paddingNeeded := availableLines - currentLines - len(footer)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(footer, "\n"))
	}

	return r.styles.Main.MaxHeight(height).Render(content.String())
}

// renderTitle renders the title line with the catalog position and scan
// indicator right-aligned
func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("prodview")

	var indicators []string
	if state.Total > 0 {
		indicators = append(indicators, r.styles.Position.Render(fmt.Sprintf("[%d/%d]", state.Position, state.Total)))
	}
	if state.Scanning {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, r.styles.Scan.Render(fmt.Sprintf("%s Scanning (%d)", spinner[frame], state.ScanFound)))
	}
	if len(indicators) == 0 {
		return logo
	}

	right := strings.Join(indicators, "  ")
	paddingWidth := width - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + right
}

func (r *Renderer) renderEmpty(state ViewState) string {
	if state.Scanning {
		return r.styles.Dim.Render("Looking for products...")
	}
	msg := "No products found."
	if state.CatalogRoot != "" {
		msg = fmt.Sprintf("No products found in %s.", state.CatalogRoot)
	}
	return r.styles.Dim.Render(msg + " Press r to rescan.")
}

func (r *Renderer) renderDescription(p *domain.Product, width int) string {
	if r.description == nil || strings.TrimSpace(p.Description) == "" {
		return ""
	}

	preview, truncated, err := r.description.Preview(p.Description, width, descriptionMaxLines)
	if err != nil {
		// Fall back to the raw text
		preview = p.Description
		lines := strings.Split(preview, "\n")
		if len(lines) > descriptionMaxLines {
			preview = strings.Join(lines[:descriptionMaxLines], "\n")
			truncated = true
		}
	}
	if truncated {
		preview += "\n" + r.styles.Dim.Render("… press d for the full description")
	}
	return r.styles.Description.Render(preview)
}
