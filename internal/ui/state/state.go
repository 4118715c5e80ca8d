package state

import (
	"prodview/internal/carousel"
	"prodview/internal/domain"
)

// AppState contains all the application state
type AppState struct {
	// Catalog data
	Products     []*domain.Product // display order
	CurrentIndex int               // index into Products, meaningless when empty

	// Navigation session of the current product; nil when there is none
	Navigator *carousel.Navigator
	shown     *domain.Product // product the session was built for

	// UI state
	Scanning         bool
	ScanFound        int // products seen by the running scan
	ShowHelp         bool
	HelpScrollOffset int
	StatusMessage    string
	StatusIsError    bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Products: make([]*domain.Product, 0),
	}
}

// Current returns the product on screen, or nil when the catalog is empty
func (s *AppState) Current() *domain.Product {
	if len(s.Products) == 0 {
		return nil
	}
	return s.Products[s.CurrentIndex]
}

// SetProducts replaces the product list while keeping the current product
// on screen when it still exists. A product that was replaced by a reload
// gets a fresh navigation session. When the current product disappears the
// view moves to the product that took its place.
func (s *AppState) SetProducts(products []*domain.Product) {
	var currentID string
	if s.shown != nil {
		currentID = s.shown.ID
	}

	s.Products = products
	if len(products) == 0 {
		s.CurrentIndex = 0
		s.Navigator = nil
		s.shown = nil
		return
	}

	next := -1
	if currentID != "" {
		for i, p := range products {
			if p.ID == currentID {
				next = i
				break
			}
		}
	}
	if next < 0 {
		next = min(s.CurrentIndex, len(products)-1)
	}

	s.CurrentIndex = next
	if products[next] != s.shown {
		s.startSession()
	}
}

// SwitchProduct moves delta products forward or backward, wrapping at
// either end, and starts a new navigation session
func (s *AppState) SwitchProduct(delta int) {
	n := len(s.Products)
	if n == 0 {
		return
	}
	s.CurrentIndex = ((s.CurrentIndex+delta)%n + n) % n
	s.startSession()
}

// ScrollHelp moves the help popup by delta lines, never above the top
func (s *AppState) ScrollHelp(delta int) {
	s.HelpScrollOffset = max(0, s.HelpScrollOffset+delta)
}

// SetStatus shows a message in the status line
func (s *AppState) SetStatus(message string, isError bool) {
	s.StatusMessage = message
	s.StatusIsError = isError
}

// ClearStatus clears the status line
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
	s.StatusIsError = false
}

func (s *AppState) startSession() {
	p := s.Products[s.CurrentIndex]
	s.shown = p
	s.Navigator = carousel.New(p.Images())
}
