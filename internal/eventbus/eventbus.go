package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"prodview/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventProductDiscovered = domain.EventProductDiscovered
	EventProductUpdated    = domain.EventProductUpdated
	EventProductRemoved    = domain.EventProductRemoved
	EventError             = domain.EventError
	EventScanStarted       = domain.EventScanStarted
	EventScanCompleted     = domain.EventScanCompleted
	EventScanRequested     = domain.EventScanRequested
)

// Re-export domain event types
type ProductDiscoveredEvent = domain.ProductDiscoveredEvent
type ProductUpdatedEvent = domain.ProductUpdatedEvent
type ProductRemovedEvent = domain.ProductRemovedEvent
type ErrorEvent = domain.ErrorEvent
type ScanStartedEvent = domain.ScanStartedEvent
type ScanCompletedEvent = domain.ScanCompletedEvent
type ScanRequestedEvent = domain.ScanRequestedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

const defaultBufferSize = 1000

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	logger *zap.Logger

	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64

	eventChan  chan DomainEvent
	quit       chan struct{}
	closeOnce  sync.Once
	dispatchWg sync.WaitGroup
	handlerWg  sync.WaitGroup
}

// New creates a new event bus. A nil logger disables logging.
func New(logger *zap.Logger) EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &bus{
		logger:    logger.Named("eventbus"),
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, defaultBufferSize),
		quit:      make(chan struct{}),
	}

	b.dispatchWg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		b.logger.Debug("bus closed, dropping event", zap.String("type", string(event.Type())))
		return
	default:
	}

	b.logger.Debug("publishing event", zap.String("type", string(event.Type())))

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("event channel full, dropping event", zap.String("type", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops accepting events, hands the queued ones to their handlers
// and waits for every handler to return
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.dispatchWg.Wait()
		b.handlerWg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.dispatchWg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		// Handlers run on their own goroutine so a slow one can't stall the bus
		b.handlerWg.Add(1)
		go b.invoke(s.handler, event)
	}
}

func (b *bus) invoke(handler EventHandler, event DomainEvent) {
	defer b.handlerWg.Done()
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic",
				zap.String("type", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	handler(event)
}
