package logic

import "prodview/internal/domain"

// ProductStore provides access to product data
type ProductStore interface {
	Get(id string) *domain.Product
	All() []*domain.Product
	Put(product *domain.Product)
	Remove(id string)
	RemoveBySource(source string) *domain.Product
	Replace(products []*domain.Product)
	Len() int
}
