package service

import (
	"context"
	"errors"
	"fmt"

	"techstore-api/internal/features/cart/domain"
	"techstore-api/internal/features/cart/ports"
)

var (
	// ErrProductNotFound is returned when the product does not exist in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrMissingSession is returned when no session identifier was provided.
	ErrMissingSession = errors.New("missing session id")
)

// CartServiceImpl implements ports.CartService. It funnels every cart
// mutation through the aggregate: load, mutate, save.
type CartServiceImpl struct {
	repo     ports.Repository
	products ports.ProductSource
}

// NewCartService creates a new CartServiceImpl.
func NewCartService(repo ports.Repository, products ports.ProductSource) *CartServiceImpl {
	return &CartServiceImpl{
		repo:     repo,
		products: products,
	}
}

// Get returns the session's cart.
func (s *CartServiceImpl) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}
	return cart, nil
}

// AddItem merges one unit of the product into the session's cart.
// Out-of-stock products leave the cart untouched — the aggregate treats
// that as a no-op, not a failure.
func (s *CartServiceImpl) AddItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	product, err := s.products.Product(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}

	cart.AddItem(*product)

	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("service: failed to save cart: %w", err)
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity. The aggregate clamps to stock
// and removes the line below quantity one; unknown products are no-ops.
func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}

	cart.UpdateQuantity(productID, quantity)

	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("service: failed to save cart: %w", err)
	}
	return cart, nil
}

// RemoveItem deletes a line from the session's cart.
func (s *CartServiceImpl) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}

	cart.RemoveItem(productID)

	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("service: failed to save cart: %w", err)
	}
	return cart, nil
}

// Clear empties the session's cart. Clearing an absent cart succeeds.
func (s *CartServiceImpl) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrMissingSession
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}
	return nil
}
