package ports

import (
	"context"

	"techstore-api/internal/features/cart/domain"
)

// CartService defines the primary port for cart operations. Every
// operation is scoped to one shopper session.
type CartService interface {
	// Get returns the session's cart, empty if none exists yet.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// AddItem merges one unit of a product into the cart. Adding an
	// out-of-stock product leaves the cart unchanged.
	AddItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error)

	// UpdateQuantity sets a line's quantity (clamped to stock; below one
	// removes the line).
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)

	// RemoveItem deletes a line from the cart.
	RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error)

	// Clear empties the session's cart. Idempotent.
	Clear(ctx context.Context, sessionID string) error
}

// Repository defines the secondary port for cart storage.
type Repository interface {
	// Get loads the cart for a session. A session with no stored cart
	// yields an empty cart, not an error.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the cart for a session.
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error

	// Delete drops the stored cart for a session.
	Delete(ctx context.Context, sessionID string) error
}

// ProductSource is the read-only catalog lookup the cart needs to know
// a product's price and stock at mutation time.
type ProductSource interface {
	// Product returns the catalog snapshot for a product, or nil when
	// the product does not exist.
	Product(ctx context.Context, id string) (*domain.Product, error)
}
