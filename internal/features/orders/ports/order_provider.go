package ports

import (
	"context"

	"techstore-api/internal/features/orders/domain"
)

// OrderProvider defines the interface for retrieving stored order information.
// This is a Secondary Port (Driven Port).
type OrderProvider interface {
	// GetOrder retrieves an order with its items by unique identifier.
	// Returns nil when no order matches.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}
