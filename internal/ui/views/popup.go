package views

import (
	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopup centers the styled popup on a blank screen of the given size
func (pr *PopupRenderer) RenderPopup(popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	if width <= 0 || height <= 0 {
		return styledPopup
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styledPopup)
}
