package views

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"prodview/internal/carousel"
)

const (
	thumbLabelWidth = 12
	mainImageHeight = 5
	maxMainWidth    = 60

	// Control glyphs; scroll hints use different ones so both can be told apart
	PrevControl = "◀"
	NextControl = "▶"
	HiddenLeft  = "«"
	HiddenRight = "»"
)

// CarouselRenderer renders the main image panel and the thumbnail strip
type CarouselRenderer struct {
	styles *Styles
}

// NewCarouselRenderer creates a new carousel renderer
func NewCarouselRenderer(styles *Styles) *CarouselRenderer {
	return &CarouselRenderer{styles: styles}
}

// Render draws the carousel for nav within width cells
func (cr *CarouselRenderer) Render(nav *carousel.Navigator, width int) string {
	if nav == nil {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		cr.renderMain(nav, width),
		cr.renderStrip(nav),
	)
}

func (cr *CarouselRenderer) renderMain(nav *carousel.Navigator, width int) string {
	boxWidth := min(maxMainWidth, width-12)
	if boxWidth < 20 {
		boxWidth = 20
	}

	label := runewidth.Truncate(nav.MainImage(), boxWidth-4, "…")
	position := cr.styles.Position.Render(fmt.Sprintf("image %d of %d", nav.MainIndex()+1, nav.Len()))
	panel := cr.styles.MainImage.
		Width(boxWidth).
		Height(mainImageHeight).
		Render(label + "\n\n" + position)

	if !nav.ShowControls() {
		return panel
	}

	prev := cr.styles.Control.Render(PrevControl)
	next := cr.styles.Control.Render(NextControl)
	return lipgloss.JoinHorizontal(lipgloss.Center, prev, panel, next)
}

func (cr *CarouselRenderer) renderStrip(nav *carousel.Navigator) string {
	window := nav.VisibleWindow()
	cells := make([]string, 0, len(window)+2)

	if hidden := nav.HiddenBefore(); hidden > 0 {
		cells = append(cells, cr.styles.ScrollHint.Render(fmt.Sprintf("%s %d", HiddenLeft, hidden)))
	}

	for offset, thumb := range window {
		style := cr.styles.Thumbnail
		if nav.IsSelected(thumb.Index) {
			style = cr.styles.ThumbSelected
		}
		cells = append(cells, style.Width(thumbLabelWidth+2).Render(ThumbnailLabel(offset, thumb.Ref)))
	}

	if hidden := nav.HiddenAfter(); hidden > 0 {
		cells = append(cells, cr.styles.ScrollHint.Render(fmt.Sprintf("%d %s", hidden, HiddenRight)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, spaced(cells)...)
}

// ThumbnailLabel returns the two-line label of the thumbnail at offset in
// the strip: the key that selects it and the image file name
func ThumbnailLabel(offset int, ref string) string {
	name := filepath.Base(ref)
	return fmt.Sprintf("%d\n%s", offset+1, runewidth.Truncate(name, thumbLabelWidth, "…"))
}

func spaced(cells []string) []string {
	out := make([]string, 0, 2*len(cells))
	for i, c := range cells {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}
