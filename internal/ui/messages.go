package ui

import (
	"prodview/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerClosedMsg is sent when the external pager exits
type pagerClosedMsg struct {
	err error
}
