package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"techstore-api/internal/core/cache"
	"techstore-api/internal/core/config"
	"techstore-api/internal/core/logger"
	cartports "techstore-api/internal/features/cart/ports"
	"techstore-api/internal/features/checkout/domain"
	"techstore-api/internal/features/checkout/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrMissingSession is returned when no session identifier was provided.
	ErrMissingSession = errors.New("missing session id")
	// ErrEmptyCart is returned when the session's cart has no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmitInFlight is returned when another submission for the same
	// session is already in progress.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrOrderPersistence wraps failures while writing the order.
	ErrOrderPersistence = errors.New("failed to persist order")
)

// ValidationError carries the per-field messages of a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form rejected: %d invalid fields", len(e.Fields))
}

// submitLockTTL bounds how long an abandoned submission blocks the
// session. A crashed caller never holds the lock past this window.
const submitLockTTL = 30 * time.Second

func submitLockKey(sessionID string) string {
	return "checkout:" + sessionID
}

// CheckoutServiceImpl implements ports.CheckoutService.
type CheckoutServiceImpl struct {
	carts  cartports.CartService
	store  ports.OrderStore
	locks  cache.Cache
	policy domain.ShippingPolicy
	phone  string

	// now and newReference are injected so submissions are
	// deterministic under test.
	now          func() time.Time
	newReference func() string
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(carts cartports.CartService, store ports.OrderStore, locks cache.Cache, cfg config.CheckoutConfig) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		carts: carts,
		store: store,
		locks: locks,
		policy: domain.ShippingPolicy{
			Fee:           cfg.ShippingFee,
			FreeThreshold: cfg.FreeShippingThreshold,
		},
		phone:        cfg.WhatsAppPhone,
		now:          time.Now,
		newReference: uuid.NewString,
	}
}

// Quote prices the session's current cart without submitting anything.
func (s *CheckoutServiceImpl) Quote(ctx context.Context, sessionID string) (domain.Totals, error) {
	if sessionID == "" {
		return domain.Totals{}, ErrMissingSession
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return domain.Totals{}, fmt.Errorf("service: failed to load cart: %w", err)
	}

	return s.policy.ComputeTotals(cart.Subtotal()), nil
}

// Submit turns the session's cart into a persisted order and a WhatsApp
// handoff link. Validation happens before any network call, a per-session
// lock serializes concurrent submissions, and the cart is cleared only
// after the order and its items are stored.
func (s *CheckoutServiceImpl) Submit(ctx context.Context, sessionID, userID string, form domain.CheckoutForm) (*domain.OrderResult, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lockKey := submitLockKey(sessionID)
	acquired, err := s.locks.SetNX(ctx, lockKey, []byte("1"), submitLockTTL)
	if err != nil {
		return nil, fmt.Errorf("service: failed to acquire submit lock: %w", err)
	}
	if !acquired {
		return nil, ErrSubmitInFlight
	}
	defer func() {
		if err := s.locks.Delete(context.WithoutCancel(ctx), lockKey); err != nil {
			logger.Get().Warn("Failed to release submit lock", zap.String("session_id", sessionID), zap.Error(err))
		}
	}()

	lines := cart.Lines()
	items := make([]domain.DraftItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.DraftItem{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		})
	}

	draft := domain.OrderDraft{
		Reference: s.newReference(),
		UserID:    userID,
		Form:      form,
		Items:     items,
		Totals:    s.policy.ComputeTotals(cart.Subtotal()),
	}

	orderID, err := s.store.InsertOrder(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	// The cart stays intact on failure here so the shopper can retry.
	// Orphaned headers are reconciled out of band, not compensated inline.
	if err := s.store.InsertItems(ctx, orderID, items); err != nil {
		return nil, fmt.Errorf("%w: order items: %v", ErrOrderPersistence, err)
	}

	// Stock decrements are best effort. The order already exists; a
	// failed decrement is an inventory drift to reconcile, not a reason
	// to fail the checkout.
	for _, item := range items {
		if err := s.store.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Get().Warn("Failed to decrement stock",
				zap.String("order_id", orderID),
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}

	message := domain.BuildHandoffMessage(orderID, items, draft.Totals, form, s.now())

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		logger.Get().Error("Failed to clear cart after checkout",
			zap.String("session_id", sessionID),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}

	logger.Get().Info("Order submitted",
		zap.String("order_id", orderID),
		zap.String("session_id", sessionID),
		zap.Float64("total", draft.Totals.Total),
	)

	return &domain.OrderResult{
		OrderID:     orderID,
		WhatsAppURL: domain.WhatsAppURL(s.phone, message),
		Totals:      draft.Totals,
	}, nil
}
