package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"prodview/internal/domain"
	"prodview/internal/eventbus"
)

// MaxScanDepth limits how many directory levels below the root are walked
const MaxScanDepth = 3

// ErrScanInProgress is returned by StartScan while another scan runs
var ErrScanInProgress = errors.New("scan already in progress")

// ErrDuplicateID is reported for a product file whose id an earlier file
// in the same scan already claimed
var ErrDuplicateID = errors.New("duplicate product id")

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
}

// Discovery finds product files below a catalog root
type Discovery struct {
	bus         eventbus.EventBus
	logger      *zap.Logger
	root        string
	unsubscribe func()

	mu         sync.Mutex
	closed     bool
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscovery creates a discovery service for root and subscribes it
// to scan requests on the bus
func NewDiscovery(bus eventbus.EventBus, root string, logger *zap.Logger) *Discovery {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Discovery{
		bus:    bus,
		logger: logger.Named("discovery"),
		root:   root,
	}

	d.unsubscribe = bus.Subscribe(eventbus.EventScanRequested, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ScanRequestedEvent)
		if !ok {
			return
		}
		root := event.Root
		if root == "" {
			root = d.root
		}
		if err := d.StartScan(context.Background(), root); err != nil {
			d.logger.Info("scan request ignored", zap.Error(err))
		}
	})

	return d
}

// Root returns the catalog root the service was built with
func (d *Discovery) Root() string {
	return d.root
}

// Scan loads every product file below root. root may also name a single
// product file. Invalid files are reported on the bus and skipped.
func (d *Discovery) Scan(ctx context.Context, root string) ([]*domain.Product, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat catalog root: %w", err)
	}

	d.bus.Publish(eventbus.ScanStartedEvent{Root: root})
	d.logger.Info("scan started", zap.String("root", root))

	var products []*domain.Product
	seen := make(map[string]string)
	failed := 0

	load := func(path string) {
		product, err := LoadFileUnder(root, path)
		if err == nil {
			if first, dup := seen[product.ID]; dup {
				err = fmt.Errorf("%w: id %q already used by %s", ErrDuplicateID, product.ID, first)
			}
		}
		if err != nil {
			failed++
			d.logger.Warn("skipping product file", zap.String("path", path), zap.Error(err))
			d.bus.Publish(eventbus.ErrorEvent{
				Message: fmt.Sprintf("Failed to load %s", filepath.Base(path)),
				Err:     err,
			})
			return
		}
		seen[product.ID] = path
		products = append(products, product)
		d.bus.Publish(eventbus.ProductDiscoveredEvent{Product: product})
	}

	if !info.IsDir() {
		load(root)
	} else {
		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				d.logger.Debug("error walking path", zap.String("path", path), zap.Error(err))
				return nil
			}

			if entry.IsDir() {
				if path == root {
					return nil
				}
				name := entry.Name()
				if strings.HasPrefix(name, ".") || skipDirs[name] {
					return fs.SkipDir
				}
				if dirDepth(root, path) > MaxScanDepth {
					return fs.SkipDir
				}
				return nil
			}

			if IsProductFile(path) {
				load(path)
			}
			return nil
		})
		if err != nil {
			d.logger.Info("scan aborted", zap.String("root", root), zap.Error(err))
			return products, fmt.Errorf("scan %s: %w", root, err)
		}
	}

	d.logger.Info("scan completed",
		zap.String("root", root),
		zap.Int("products", len(products)),
		zap.Int("failed", failed))
	d.bus.Publish(eventbus.ScanCompletedEvent{
		ProductsFound: len(products),
		Failed:        failed,
		Products:      products,
	})

	return products, nil
}

// StartScan runs Scan in the background. Only one scan runs at a time.
func (d *Discovery) StartScan(ctx context.Context, root string) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return errors.New("discovery closed")
	}
	if d.isScanning {
		d.mu.Unlock()
		return ErrScanInProgress
	}
	d.isScanning = true
	d.wg.Add(1)

	scanCtx, cancel := context.WithCancel(ctx)
	d.cancelFunc = cancel
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer func() {
			cancel()
			d.mu.Lock()
			d.isScanning = false
			d.cancelFunc = nil
			d.mu.Unlock()
		}()

		if _, err := d.Scan(scanCtx, root); err != nil && !errors.Is(err, context.Canceled) {
			d.bus.Publish(eventbus.ErrorEvent{
				Message: fmt.Sprintf("Failed to scan %s", root),
				Err:     err,
			})
		}
	}()

	return nil
}

// IsScanning reports whether a background scan is running
func (d *Discovery) IsScanning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isScanning
}

// StopScan cancels any ongoing scan and waits for it
func (d *Discovery) StopScan() {
	d.mu.Lock()
	if d.cancelFunc != nil {
		d.cancelFunc()
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Close stops scanning and detaches from the bus
func (d *Discovery) Close() {
	d.unsubscribe()
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.StopScan()
}

// dirDepth returns how many levels dir lies below root
func dirDepth(root, dir string) int {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
