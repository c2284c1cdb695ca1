package ports

import (
	"context"

	"techstore-api/internal/features/checkout/domain"
)

// OrderStore persists submitted orders. Implementations talk to the
// orders and order_items tables and the stock RPC.
type OrderStore interface {
	// InsertOrder persists the order header and returns the stored id.
	InsertOrder(ctx context.Context, draft domain.OrderDraft) (string, error)
	// InsertItems persists the order lines under an existing order id.
	InsertItems(ctx context.Context, orderID string, items []domain.DraftItem) error
	// DecrementStock reduces a product's stock by the given quantity.
	DecrementStock(ctx context.Context, productID string, quantity int) error
}

// CheckoutService orchestrates quote and submit for a cart session.
type CheckoutService interface {
	Quote(ctx context.Context, sessionID string) (domain.Totals, error)
	Submit(ctx context.Context, sessionID, userID string, form domain.CheckoutForm) (*domain.OrderResult, error)
}
