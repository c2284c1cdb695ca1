package ports

import (
	"context"

	"techstore-api/internal/features/catalog/domain"
)

// Filter narrows product listings. Zero values mean "no restriction".
type Filter struct {
	// Category filters by category label. Empty or "Todos" matches all.
	Category string
	// MinPrice is the inclusive lower price bound.
	MinPrice float64
	// MaxPrice is the inclusive upper price bound. 0 means unbounded.
	MaxPrice float64
	// OnlyDiscounted keeps products with an active discount.
	OnlyDiscounted bool
	// OnlyInStock keeps products with stock > 0.
	OnlyInStock bool
}

// ProductProvider defines the interface for the external product store.
// This is a Secondary Port (Driven Port).
type ProductProvider interface {
	// List returns catalog products, newest first. Soft-deleted products
	// are never returned.
	List(ctx context.Context) ([]domain.Product, error)

	// Get retrieves one product by its identifier. Returns nil when the
	// product does not exist or is soft-deleted.
	Get(ctx context.Context, id string) (*domain.Product, error)

	// Create inserts a new product and returns it with its assigned ID.
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)

	// Update overwrites the mutable fields of an existing product.
	Update(ctx context.Context, p domain.Product) error

	// Delete soft-deletes a product so it disappears from listings while
	// order history keeps referencing it.
	Delete(ctx context.Context, id string) error

	// HealthCheck verifies that the product store is reachable.
	HealthCheck(ctx context.Context) error
}
