package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"prodview/internal/eventbus"
)

const testDebounce = 30 * time.Millisecond

func startWatcher(t *testing.T, bus eventbus.EventBus, root string) *Watcher {
	t.Helper()
	w, err := NewWatcher(bus, root, zaptest.NewLogger(t), WithDebounce(testDebounce))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)
	return w
}

func waitForType(t *testing.T, bus *recordingBus, eventType eventbus.EventType) eventbus.DomainEvent {
	t.Helper()
	var found eventbus.DomainEvent
	require.Eventually(t, func() bool {
		events := bus.ofType(eventType)
		if len(events) == 0 {
			return false
		}
		found = events[len(events)-1]
		return true
	}, 3*time.Second, 10*time.Millisecond, "no %s event", eventType)
	return found
}

func TestWatcherPublishesUpdateOnWrite(t *testing.T) {
	root := t.TempDir()
	path := writeProduct(t, root, "mug.yaml", mugYAML)

	bus := newRecordingBus()
	startWatcher(t, bus, root)

	updated := []byte("name: Renamed Mug\nprice: 14\nthumbnail: mug-front.png\n")
	require.NoError(t, os.WriteFile(path, updated, 0o644))

	event := waitForType(t, bus, eventbus.EventProductUpdated).(eventbus.ProductUpdatedEvent)
	assert.Equal(t, "Renamed Mug", event.Product.Name)
	assert.Equal(t, path, event.Product.Source)
}

func TestWatcherPublishesUpdateOnCreate(t *testing.T) {
	root := t.TempDir()
	bus := newRecordingBus()
	startWatcher(t, bus, root)

	writeProduct(t, root, "teapot.json", teapotJSON)

	event := waitForType(t, bus, eventbus.EventProductUpdated).(eventbus.ProductUpdatedEvent)
	assert.Equal(t, "teapot-7", event.Product.ID)
}

func TestWatcherPublishesRemoval(t *testing.T) {
	root := t.TempDir()
	path := writeProduct(t, root, "mug.yaml", mugYAML)

	bus := newRecordingBus()
	startWatcher(t, bus, root)

	require.NoError(t, os.Remove(path))

	event := waitForType(t, bus, eventbus.EventProductRemoved).(eventbus.ProductRemovedEvent)
	assert.Equal(t, path, event.Source)
}

func TestWatcherPublishesErrorForInvalidFile(t *testing.T) {
	root := t.TempDir()
	bus := newRecordingBus()
	startWatcher(t, bus, root)

	writeProduct(t, root, "broken.json", `{"name": "x"}`)

	event := waitForType(t, bus, eventbus.EventError).(eventbus.ErrorEvent)
	assert.ErrorIs(t, event.Err, ErrInvalidProduct)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	bus := newRecordingBus()
	startWatcher(t, bus, root)

	writeProduct(t, root, "notes.txt", "hello")
	writeProduct(t, root, ".draft.json", teapotJSON)

	time.Sleep(6 * testDebounce)
	assert.Empty(t, bus.ofType(eventbus.EventProductUpdated))
	assert.Empty(t, bus.ofType(eventbus.EventError))
}

func TestWatcherSingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := writeProduct(t, dir, "mug.yaml", mugYAML)
	bus := newRecordingBus()
	startWatcher(t, bus, path)

	writeProduct(t, dir, "teapot.json", teapotJSON)
	require.NoError(t, os.WriteFile(path, []byte(mugYAML), 0o644))

	event := waitForType(t, bus, eventbus.EventProductUpdated).(eventbus.ProductUpdatedEvent)
	assert.Equal(t, "mug", event.Product.ID)
	time.Sleep(4 * testDebounce)
	for _, e := range bus.ofType(eventbus.EventProductUpdated) {
		assert.Equal(t, path, e.(eventbus.ProductUpdatedEvent).Product.Source)
	}
}

func TestWatcherWatchesNewSubdirectories(t *testing.T) {
	root := t.TempDir()
	bus := newRecordingBus()
	startWatcher(t, bus, root)

	sub := filepath.Join(root, "kitchen")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Give the watcher a moment to register the new directory
	time.Sleep(4 * testDebounce)
	writeProduct(t, sub, "kettle.toml", kettleTOML)

	event := waitForType(t, bus, eventbus.EventProductUpdated).(eventbus.ProductUpdatedEvent)
	assert.Equal(t, "kitchen/kettle", event.Product.ID)
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(newRecordingBus(), t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop()
}

func TestWatcherStartMissingRoot(t *testing.T) {
	w, err := NewWatcher(newRecordingBus(), filepath.Join(t.TempDir(), "absent"), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Error(t, w.Start(context.Background()))
	w.Stop()
}
