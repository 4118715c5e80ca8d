//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProductOption configures a product file written by WriteProduct
type ProductOption func(*productFields)

type productFields struct {
	price       string
	quantity    int
	images      int
	description string
}

// WithPrice sets the price field
func WithPrice(price string) ProductOption {
	return func(f *productFields) { f.price = price }
}

// WithQuantity sets the stock quantity
func WithQuantity(n int) ProductOption {
	return func(f *productFields) { f.quantity = n }
}

// WithImages sets the total number of images, thumbnail included
func WithImages(n int) ProductOption {
	return func(f *productFields) { f.images = n }
}

// WithDescription sets the markdown description
func WithDescription(md string) ProductOption {
	return func(f *productFields) { f.description = md }
}

// CreateTestWorkspace creates the temporary home of one test run
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tf.workspace = tf.t.TempDir()
	if err := os.MkdirAll(tf.CatalogDir(), 0o755); err != nil {
		return "", err
	}
	return tf.workspace, nil
}

// CatalogDir is the directory the viewer is pointed at
func (tf *TUITestFramework) CatalogDir() string {
	return filepath.Join(tf.workspace, "catalog")
}

// WriteProduct writes <id>.yaml into the catalog and returns its path.
// Image files are named <id>-<n>.png.
func (tf *TUITestFramework) WriteProduct(id, name string, options ...ProductOption) (string, error) {
	fields := productFields{price: "10.00", quantity: 1, images: 1}
	for _, opt := range options {
		opt(&fields)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "name: %q\n", name)
	fmt.Fprintf(&b, "price: %s\n", fields.price)
	fmt.Fprintf(&b, "quantity: %d\n", fields.quantity)
	fmt.Fprintf(&b, "thumbnail: %s-1.png\n", id)
	if fields.images > 1 {
		b.WriteString("additional_images:\n")
		for i := 2; i <= fields.images; i++ {
			fmt.Fprintf(&b, "  - %s-%d.png\n", id, i)
		}
	}
	if fields.description != "" {
		b.WriteString("description: |\n")
		for _, line := range strings.Split(fields.description, "\n") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	path := filepath.Join(tf.CatalogDir(), id+".yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write product %s: %w", id, err)
	}
	return path, nil
}
