package input

import (
	"prodview/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// HasProduct reports whether a product is on screen
func (c *ModelContext) HasProduct() bool {
	return c.State.Current() != nil
}

// ProductCount returns the number of products in the catalog
func (c *ModelContext) ProductCount() int {
	return len(c.State.Products)
}

// ImageCount returns the number of images of the current product
func (c *ModelContext) ImageCount() int {
	if c.State.Navigator == nil {
		return 0
	}
	return c.State.Navigator.Len()
}

// VisibleThumbnails returns how many thumbnails the strip shows
func (c *ModelContext) VisibleThumbnails() int {
	if c.State.Navigator == nil {
		return 0
	}
	return c.State.Navigator.VisibleCount()
}

func (c *ModelContext) IsScanning() bool {
	return c.State.Scanning
}
