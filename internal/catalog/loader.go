package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"prodview/internal/domain"
)

var (
	// ErrUnsupportedFormat is returned for files whose extension has no decoder
	ErrUnsupportedFormat = errors.New("unsupported product file format")
	// ErrInvalidProduct is returned when a product file decodes but fails validation
	ErrInvalidProduct = errors.New("invalid product")
)

// Format identifies a product file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var extensionFormats = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// FormatOf returns the format for path's extension
func FormatOf(path string) (Format, bool) {
	f, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// IsProductFile reports whether path looks like a product file
func IsProductFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	_, ok := FormatOf(path)
	return ok
}

// rawProduct mirrors the on-disk layout. Price stays untyped because
// catalogs write it both as a number and as a quoted string.
type rawProduct struct {
	ID               string   `json:"id" yaml:"id" toml:"id"`
	Name             string   `json:"name" yaml:"name" toml:"name"`
	Description      string   `json:"description" yaml:"description" toml:"description"`
	Price            any      `json:"price" yaml:"price" toml:"price"`
	Thumbnail        string   `json:"thumbnail" yaml:"thumbnail" toml:"thumbnail"`
	Quantity         int      `json:"quantity" yaml:"quantity" toml:"quantity"`
	AdditionalImages []string `json:"additional_images" yaml:"additional_images" toml:"additional_images"`
}

var descriptionPolicy = bluemonday.StrictPolicy()

// LoadFile reads and validates a single product file. A product without
// an id is named after the file.
func LoadFile(path string) (*domain.Product, error) {
	product, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if product.ID == "" {
		product.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return product, nil
}

// LoadFileUnder is LoadFile for a file inside the catalog root. A product
// without an id is named after its slash separated path below root, so
// phones/item.json and laptops/item.json stay distinct.
func LoadFileUnder(root, path string) (*domain.Product, error) {
	product, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if product.ID == "" {
		product.ID = RelativeID(root, path)
	}
	return product, nil
}

// RelativeID returns path relative to root without its extension. Paths
// outside root, and root itself, fall back to the file name.
func RelativeID(root, path string) string {
	name := filepath.Base(path)
	if rel, err := filepath.Rel(root, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		name = rel
	}
	return filepath.ToSlash(strings.TrimSuffix(name, filepath.Ext(name)))
}

func loadFile(path string) (*domain.Product, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read product file: %w", err)
	}

	product, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	product.Source = path
	return product, nil
}

// Decode parses and validates product data in the given format.
// The returned product has no Source and may have an empty ID.
func Decode(data []byte, format Format) (*domain.Product, error) {
	var raw rawProduct
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return raw.toProduct()
}

func (r rawProduct) toProduct() (*domain.Product, error) {
	p := &domain.Product{
		ID:          strings.TrimSpace(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Description: sanitizeDescription(r.Description),
		Thumbnail:   strings.TrimSpace(r.Thumbnail),
		Quantity:    r.Quantity,
	}

	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if p.Thumbnail == "" {
		return nil, fmt.Errorf("%w: thumbnail is required", ErrInvalidProduct)
	}
	if p.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity %d is negative", ErrInvalidProduct, p.Quantity)
	}

	price, err := parsePrice(r.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price %s is negative", ErrInvalidProduct, price)
	}
	p.Price = price

	if len(r.AdditionalImages) > 0 {
		p.AdditionalImages = make([]string, len(r.AdditionalImages))
		for i, ref := range r.AdditionalImages {
			ref = strings.TrimSpace(ref)
			if ref == "" {
				return nil, fmt.Errorf("%w: additional image %d is blank", ErrInvalidProduct, i)
			}
			p.AdditionalImages[i] = ref
		}
	}

	return p, nil
}

func parsePrice(v any) (decimal.Decimal, error) {
	switch price := v.(type) {
	case nil:
		return decimal.Zero, errors.New("price is required")
	case json.Number:
		return parsePriceString(price.String())
	case string:
		return parsePriceString(price)
	case float64:
		return decimal.NewFromFloat(price), nil
	case int:
		return decimal.NewFromInt(int64(price)), nil
	case int64:
		return decimal.NewFromInt(price), nil
	default:
		return decimal.Zero, fmt.Errorf("price has unsupported type %T", v)
	}
}

func parsePriceString(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price %q is not a number", s)
	}
	return d, nil
}

// sanitizeDescription strips markup from the description. The strict
// policy escapes entities, so they are decoded again for display.
func sanitizeDescription(s string) string {
	return strings.TrimSpace(html.UnescapeString(descriptionPolicy.Sanitize(s)))
}
