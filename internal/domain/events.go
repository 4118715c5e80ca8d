package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventProductDiscovered EventType = "ProductDiscovered"
	EventProductUpdated    EventType = "ProductUpdated"
	EventProductRemoved    EventType = "ProductRemoved"
	EventError             EventType = "Error"
	EventScanStarted       EventType = "ScanStarted"
	EventScanCompleted     EventType = "ScanCompleted"
	EventScanRequested     EventType = "ScanRequested"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ProductDiscoveredEvent is emitted when a scan finds a valid product file
type ProductDiscoveredEvent struct {
	Product *Product
}

func (e ProductDiscoveredEvent) Type() EventType { return EventProductDiscovered }

// ProductUpdatedEvent is emitted when a watched product file changes on disk
type ProductUpdatedEvent struct {
	Product *Product
}

func (e ProductUpdatedEvent) Type() EventType { return EventProductUpdated }

// ProductRemovedEvent is emitted when a product file disappears
type ProductRemovedEvent struct {
	Source string // path of the removed file
}

func (e ProductRemovedEvent) Type() EventType { return EventProductRemoved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ScanStartedEvent is emitted when catalog scanning begins
type ScanStartedEvent struct {
	Root string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when catalog scanning completes.
// Products holds the full result so consumers can replace stale entries.
type ScanCompletedEvent struct {
	ProductsFound int
	Failed        int
	Products      []*Product
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ScanRequestedEvent is emitted to request a new scan
type ScanRequestedEvent struct {
	Root string // empty means the catalog root the service was built with
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }
