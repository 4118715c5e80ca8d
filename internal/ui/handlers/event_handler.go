package handlers

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prodview/internal/eventbus"
	"prodview/internal/logic"
	"prodview/internal/ui/state"
)

// TickMsg is a tick message for the scan spinner
type TickMsg time.Time

// ClearStatusMsg clears the status line
type ClearStatusMsg struct{}

const statusTimeout = 4 * time.Second

// EventHandler applies domain events to the product store and the UI state
type EventHandler struct {
	state  *state.AppState
	store  logic.ProductStore
	logger *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, store logic.ProductStore, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{
		state:  appState,
		store:  store,
		logger: logger,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ProductDiscoveredEvent:
		h.state.ScanFound++
		if h.store.Get(e.Product.ID) != e.Product {
			h.store.Put(e.Product)
			h.sync()
		}

	case eventbus.ProductUpdatedEvent:
		if owner := h.store.Get(e.Product.ID); owner != nil && owner.Source != e.Product.Source {
			h.logger.Warn("reloaded product reuses an id",
				zap.String("id", e.Product.ID),
				zap.String("source", e.Product.Source),
				zap.String("owner", owner.Source))
			h.state.SetStatus(fmt.Sprintf("Error: %s: id %q already used by %s",
				filepath.Base(e.Product.Source), e.Product.ID, filepath.Base(owner.Source)), true)
			return nil
		}
		if previous := h.store.RemoveBySource(e.Product.Source); previous != nil && previous.ID != e.Product.ID {
			h.logger.Debug("product id changed", zap.String("from", previous.ID), zap.String("to", e.Product.ID))
		}
		h.store.Put(e.Product)
		h.sync()
		h.state.SetStatus(fmt.Sprintf("Reloaded %s", e.Product.DisplayName()), false)
		return clearStatusAfter(statusTimeout)

	case eventbus.ProductRemovedEvent:
		removed := h.store.RemoveBySource(e.Source)
		if removed == nil {
			return nil
		}
		h.sync()
		h.state.SetStatus(fmt.Sprintf("Removed %s", filepath.Base(e.Source)), false)
		return clearStatusAfter(statusTimeout)

	case eventbus.ErrorEvent:
		h.state.SetStatus(fmt.Sprintf("Error: %s", e.Message), true)

	case eventbus.ScanStartedEvent:
		h.state.Scanning = true
		h.state.ScanFound = 0
		h.state.SetStatus("Scanning catalog...", false)
		return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
			return TickMsg(t)
		})

	case eventbus.ScanCompletedEvent:
		h.state.Scanning = false
		h.store.Replace(e.Products)
		h.sync()
		msg := fmt.Sprintf("Scan complete. Found %d products.", e.ProductsFound)
		if e.Failed > 0 {
			msg = fmt.Sprintf("Scan complete. Found %d products, %d invalid.", e.ProductsFound, e.Failed)
		}
		h.state.SetStatus(msg, e.Failed > 0)
		return clearStatusAfter(statusTimeout)
	}

	return nil
}

func (h *EventHandler) sync() {
	h.state.SetProducts(h.store.All())
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}
