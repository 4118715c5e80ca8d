package logic

import (
	"sort"
	"strings"
	"sync"

	"prodview/internal/domain"
)

// MemoryProductStore is an in-memory implementation of ProductStore
type MemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

// NewMemoryProductStore creates a new memory-based product store
func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		products: make(map[string]*domain.Product),
	}
}

func (s *MemoryProductStore) Get(id string) *domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products[id]
}

// All returns the products ordered by name, then ID
func (s *MemoryProductStore) All() []*domain.Product {
	s.mu.RLock()
	result := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		result = append(result, p)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		ni := strings.ToLower(result[i].DisplayName())
		nj := strings.ToLower(result[j].DisplayName())
		if ni != nj {
			return ni < nj
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Put adds or replaces a product keyed by its ID
func (s *MemoryProductStore) Put(product *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
}

func (s *MemoryProductStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

// RemoveBySource removes the product loaded from source and returns it,
// or nil when no product came from that file
func (s *MemoryProductStore) RemoveBySource(source string) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.products {
		if p.Source == source {
			delete(s.products, id)
			return p
		}
	}
	return nil
}

// Replace swaps the whole catalog for products
func (s *MemoryProductStore) Replace(products []*domain.Product) {
	next := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		next[p.ID] = p
	}
	s.mu.Lock()
	s.products = next
	s.mu.Unlock()
}

func (s *MemoryProductStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
