package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"prodview/internal/eventbus"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingBus delivers events synchronously and keeps a copy of each
type recordingBus struct {
	mu       sync.Mutex
	events   []eventbus.DomainEvent
	handlers map[eventbus.EventType][]eventbus.EventHandler
	notify   chan eventbus.DomainEvent
}

func newRecordingBus() *recordingBus {
	return &recordingBus{
		handlers: make(map[eventbus.EventType][]eventbus.EventHandler),
		notify:   make(chan eventbus.DomainEvent, 100),
	}
}

func (b *recordingBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	b.events = append(b.events, event)
	handlers := append([]eventbus.EventHandler(nil), b.handlers[event.Type()]...)
	b.mu.Unlock()

	select {
	case b.notify <- event:
	default:
	}
	for _, h := range handlers {
		h(event)
	}
}

func (b *recordingBus) Subscribe(eventType eventbus.EventType, handler eventbus.EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	idx := len(b.handlers[eventType]) - 1
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.handlers[eventType][idx] = func(eventbus.DomainEvent) {}
	}
}

func (b *recordingBus) Close() {}

func (b *recordingBus) ofType(t eventbus.EventType) []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.DomainEvent
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

func writeProduct(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const mugYAML = `name: Stoneware Mug
description: Holds <b>coffee</b> &amp; tea
price: 12.50
thumbnail: mug-front.png
quantity: 3
additional_images:
  - mug-side.png
  - mug-top.png
`

const teapotJSON = `{
  "id": "teapot-7",
  "name": "Teapot",
  "description": "Cast iron",
  "price": 49.99,
  "thumbnail": "teapot.png",
  "quantity": 0
}`

const kettleTOML = `
name = "Kettle"
price = "35"
thumbnail = "kettle.png"
quantity = 8
additional_images = ["kettle-2.png"]
`
