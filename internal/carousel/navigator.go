package carousel

import (
	"fmt"
)

// Navigator maps carousel actions onto the main image index and the
// thumbnail window. The image list is fixed for the navigator's lifetime;
// a different product gets a new Navigator.
type Navigator struct {
	images []string
	state  State
}

// New creates a navigator positioned on the first image.
// images must contain at least one reference.
func New(images []string) *Navigator {
	if len(images) == 0 {
		panic("carousel: navigator requires at least one image")
	}
	dup := make([]string, len(images))
	copy(dup, images)
	return &Navigator{images: dup}
}

// Len returns the number of images
func (n *Navigator) Len() int {
	return len(n.images)
}

// State returns a copy of the current navigation state
func (n *Navigator) State() State {
	return n.state
}

// MainIndex returns the index of the image shown large
func (n *Navigator) MainIndex() int {
	return n.state.MainIndex
}

// WindowStart returns the first index shown in the thumbnail strip
func (n *Navigator) WindowStart() int {
	return n.state.WindowStart
}

// MainImage returns the reference of the image shown large
func (n *Navigator) MainImage() string {
	return n.images[n.state.MainIndex]
}

// ShowControls reports whether previous/next controls should be offered
func (n *Navigator) ShowControls() bool {
	return len(n.images) > 1
}

// IsSelected reports whether the image at the global index is the main image
func (n *Navigator) IsSelected(index int) bool {
	return index == n.state.MainIndex
}

// Next advances to the following image, wrapping from the last to the first
func (n *Navigator) Next() {
	n.setMain((n.state.MainIndex + 1) % len(n.images))
}

// Previous moves to the preceding image, wrapping from the first to the last
func (n *Navigator) Previous() {
	n.setMain((n.state.MainIndex - 1 + len(n.images)) % len(n.images))
}

// Navigate applies a movement in the given direction
func (n *Navigator) Navigate(direction Direction) {
	switch direction {
	case DirectionNext:
		n.Next()
	case DirectionPrevious:
		n.Previous()
	case DirectionFirst:
		n.Select(0)
	case DirectionLast:
		n.Select(len(n.images) - 1)
	}
}

// SelectThumbnail makes the i-th visible thumbnail the main image. i is an
// offset into the visible window, not a global index. Offsets outside the
// window are a caller bug and panic. The window never moves.
func (n *Navigator) SelectThumbnail(i int) {
	if i < 0 || i >= n.VisibleCount() {
		panic(fmt.Sprintf("carousel: thumbnail offset %d outside visible window of %d", i, n.VisibleCount()))
	}
	n.state.MainIndex = n.state.WindowStart + i
}

// Select jumps to the image at a global index and scrolls the window so the
// image is visible. Indices outside the list panic.
func (n *Navigator) Select(index int) {
	if index < 0 || index >= len(n.images) {
		panic(fmt.Sprintf("carousel: image index %d out of range [0,%d)", index, len(n.images)))
	}
	n.setMain(index)
}

// VisibleCount returns how many thumbnails the strip currently shows
func (n *Navigator) VisibleCount() int {
	return min(WindowSize, len(n.images)-n.state.WindowStart)
}

// VisibleWindow returns the thumbnails currently shown in the strip
func (n *Navigator) VisibleWindow() []Thumbnail {
	count := n.VisibleCount()
	window := make([]Thumbnail, count)
	for i := 0; i < count; i++ {
		idx := n.state.WindowStart + i
		window[i] = Thumbnail{Index: idx, Ref: n.images[idx]}
	}
	return window
}

// HiddenBefore returns the number of images scrolled off the left of the strip
func (n *Navigator) HiddenBefore() int {
	return n.state.WindowStart
}

// HiddenAfter returns the number of images scrolled off the right of the strip
func (n *Navigator) HiddenAfter() int {
	return len(n.images) - n.state.WindowStart - n.VisibleCount()
}

func (n *Navigator) setMain(index int) {
	n.state.MainIndex = index
	n.state.WindowStart = DeriveWindow(index, n.state.WindowStart, len(n.images), WindowSize)
}

// DeriveWindow returns the window start that keeps mainIndex visible, given
// the previous window start. The window only scrolls as far as needed: to the
// leading edge when the selection is left of it, to the trailing edge when
// it is right of it.
func DeriveWindow(mainIndex, windowStart, count, windowSize int) int {
	switch {
	case mainIndex < windowStart:
		windowStart = mainIndex
	case mainIndex >= windowStart+windowSize:
		windowStart = mainIndex - windowSize + 1
	}

	maxStart := max(0, count-windowSize)
	if windowStart > maxStart {
		windowStart = maxStart
	}
	if windowStart < 0 {
		windowStart = 0
	}
	return windowStart
}
