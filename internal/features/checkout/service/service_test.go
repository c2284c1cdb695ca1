package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"techstore-api/internal/core/config"
	cartdomain "techstore-api/internal/features/cart/domain"
	"techstore-api/internal/features/checkout/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of the cart ports.CartService
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, sessionID string) (*cartdomain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartdomain.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, sessionID, productID string) (*cartdomain.Cart, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartdomain.Cart), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*cartdomain.Cart, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartdomain.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, sessionID, productID string) (*cartdomain.Cart, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartdomain.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockOrderStore is a mock implementation of ports.OrderStore
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) InsertOrder(ctx context.Context, draft domain.OrderDraft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

func (m *MockOrderStore) InsertItems(ctx context.Context, orderID string, items []domain.DraftItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderStore) DecrementStock(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

// MockCache is a mock implementation of cache.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		ShippingFee:           15000,
		FreeShippingThreshold: 100000,
		WhatsAppPhone:         "573014610269",
	}
}

func validForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		Name:    "Laura Gómez",
		Email:   "laura@example.com",
		Phone:   "3001234567",
		Address: "Calle 10 # 5-23",
		City:    "Bogotá",
	}
}

func stockedCart() *cartdomain.Cart {
	cart := &cartdomain.Cart{}
	cart.AddItem(cartdomain.Product{ID: "p1", Name: "Galaxy S24", Price: 3500000, Stock: 5})
	cart.AddItem(cartdomain.Product{ID: "p2", Name: "Cargador USB-C", Price: 45000, Stock: 10})
	cart.UpdateQuantity("p2", 2)
	return cart
}

func newTestService(carts *MockCartService, store *MockOrderStore, locks *MockCache) *CheckoutServiceImpl {
	svc := NewCheckoutService(carts, store, locks, testConfig())
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC) }
	svc.newReference = func() string { return "ref-fixed" }
	return svc
}

func TestCheckoutService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		carts := new(MockCartService)
		store := new(MockOrderStore)
		locks := new(MockCache)
		svc := newTestService(carts, store, locks)

		carts.On("Get", ctx, "sess-1").Return(stockedCart(), nil).Once()
		locks.On("SetNX", ctx, "checkout:sess-1", mock.Anything, submitLockTTL).Return(true, nil).Once()
		store.On("InsertOrder", ctx, mock.MatchedBy(func(d domain.OrderDraft) bool {
			return d.Reference == "ref-fixed" && d.Totals.Total == 3590000 && len(d.Items) == 2
		})).Return("order-9", nil).Once()
		store.On("InsertItems", ctx, "order-9", mock.Anything).Return(nil).Once()
		store.On("DecrementStock", ctx, "p1", 1).Return(nil).Once()
		store.On("DecrementStock", ctx, "p2", 2).Return(nil).Once()
		carts.On("Clear", ctx, "sess-1").Return(nil).Once()
		locks.On("Delete", mock.Anything, "checkout:sess-1").Return(nil).Once()

		result, err := svc.Submit(ctx, "sess-1", "", validForm())

		require.NoError(t, err)
		assert.Equal(t, "order-9", result.OrderID)
		// Subtotal 3.590.000 is above the free shipping threshold.
		assert.Equal(t, domain.Totals{Subtotal: 3590000, Shipping: 0, Total: 3590000}, result.Totals)
		assert.True(t, strings.HasPrefix(result.WhatsAppURL, "https://wa.me/573014610269?text="))
		carts.AssertExpectations(t)
		store.AssertExpectations(t)
		locks.AssertExpectations(t)
	})

	t.Run("ValidationFailsBeforeAnyCall", func(t *testing.T) {
		carts := new(MockCartService)
		store := new(MockOrderStore)
		locks := new(MockCache)
		svc := newTestService(carts, store, locks)

		_, err := svc.Submit(ctx, "sess-1", "", domain.CheckoutForm{Email: "bad"})

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "name")
		assert.Contains(t, vErr.Fields, "email")
		carts.AssertNotCalled(t, "Get")
		locks.AssertNotCalled(t, "SetNX")
	})

	t.Run("EmptyCart", func(t *testing.T) {
		carts := new(MockCartService)
		store := new(MockOrderStore)
		locks := new(MockCache)
		svc := newTestService(carts, store, locks)

		carts.On("Get", ctx, "sess-1").Return(&cartdomain.Cart{}, nil).Once()

		_, err := svc.Submit(ctx, "sess-1", "", validForm())

		assert.ErrorIs(t, err, ErrEmptyCart)
		locks.AssertNotCalled(t, "SetNX")
	})

	t.Run("SubmitInFlight", func(t *testing.T) {
		carts := new(MockCartService)
		store := new(MockOrderStore)
		locks := new(MockCache)
		svc := newTestService(carts, store, locks)

		carts.On("Get", ctx, "sess-1").Return(stockedCart(), nil).Once()
		locks.On("SetNX", ctx, "checkout:sess-1", mock.Anything, submitLockTTL).Return(false, nil).Once()

		_, err := svc.Submit(ctx, "sess-1", "", validForm())

		assert.ErrorIs(t, err, ErrSubmitInFlight)
		store.AssertNotCalled(t, "InsertOrder")
	})

	t.Run("OrderInsertFailureRetainsCart", func(t *testing.T) {
		carts := new(MockCartService)
		store := new(MockOrderStore)
		locks := new(MockCache)
		svc := newTestService(carts, store, locks)

		carts.On("Get", ctx, "sess-1").Return(stockedCart(), nil).Once()
		locks.On("SetNX", ctx, "checkout:sess-1", mock.Anything, submitLockTTL).Return(true, nil).Once()
		store.On("InsertOrder", ctx, mock.Anything).Return("", errors.New("supabase down")).Once()
		locks.On("Delete", mock.Anything, "checkout:sess-1").Return(nil).Once()

		_, err := svc.Submit(ctx, "sess-1", "", validForm())

		assert.ErrorIs(t, err, ErrOrderPersistence)
		carts.AssertNotCalled(t, "Clear")
		locks.AssertExpectations(t)
	})

	t.Run("ItemsInsertFailureRetainsCart", func(t *testing.T) {
		carts := new(MockCartService)
		store := new(MockOrderStore)
		locks := new(MockCache)
		svc := newTestService(carts, store, locks)

		carts.On("Get", ctx, "sess-1").Return(stockedCart(), nil).Once()
		locks.On("SetNX", ctx, "checkout:sess-1", mock.Anything, submitLockTTL).Return(true, nil).Once()
		store.On("InsertOrder", ctx, mock.Anything).Return("order-9", nil).Once()
		store.On("InsertItems", ctx, "order-9", mock.Anything).Return(errors.New("supabase down")).Once()
		locks.On("Delete", mock.Anything, "checkout:sess-1").Return(nil).Once()

		_, err := svc.Submit(ctx, "sess-1", "", validForm())

		assert.ErrorIs(t, err, ErrOrderPersistence)
		store.AssertNotCalled(t, "DecrementStock")
		carts.AssertNotCalled(t, "Clear")
	})

	t.Run("StockDecrementFailureStillSucceeds", func(t *testing.T) {
		carts := new(MockCartService)
		store := new(MockOrderStore)
		locks := new(MockCache)
		svc := newTestService(carts, store, locks)

		carts.On("Get", ctx, "sess-1").Return(stockedCart(), nil).Once()
		locks.On("SetNX", ctx, "checkout:sess-1", mock.Anything, submitLockTTL).Return(true, nil).Once()
		store.On("InsertOrder", ctx, mock.Anything).Return("order-9", nil).Once()
		store.On("InsertItems", ctx, "order-9", mock.Anything).Return(nil).Once()
		store.On("DecrementStock", ctx, "p1", 1).Return(errors.New("rpc failed")).Once()
		store.On("DecrementStock", ctx, "p2", 2).Return(nil).Once()
		carts.On("Clear", ctx, "sess-1").Return(nil).Once()
		locks.On("Delete", mock.Anything, "checkout:sess-1").Return(nil).Once()

		result, err := svc.Submit(ctx, "sess-1", "", validForm())

		require.NoError(t, err)
		assert.Equal(t, "order-9", result.OrderID)
		store.AssertExpectations(t)
	})

	t.Run("ClearFailureStillSucceeds", func(t *testing.T) {
		carts := new(MockCartService)
		store := new(MockOrderStore)
		locks := new(MockCache)
		svc := newTestService(carts, store, locks)

		carts.On("Get", ctx, "sess-1").Return(stockedCart(), nil).Once()
		locks.On("SetNX", ctx, "checkout:sess-1", mock.Anything, submitLockTTL).Return(true, nil).Once()
		store.On("InsertOrder", ctx, mock.Anything).Return("order-9", nil).Once()
		store.On("InsertItems", ctx, "order-9", mock.Anything).Return(nil).Once()
		store.On("DecrementStock", ctx, mock.Anything, mock.Anything).Return(nil)
		carts.On("Clear", ctx, "sess-1").Return(errors.New("redis down")).Once()
		locks.On("Delete", mock.Anything, "checkout:sess-1").Return(nil).Once()

		result, err := svc.Submit(ctx, "sess-1", "", validForm())

		require.NoError(t, err)
		assert.Equal(t, "order-9", result.OrderID)
	})

	t.Run("MissingSession", func(t *testing.T) {
		svc := newTestService(new(MockCartService), new(MockOrderStore), new(MockCache))

		_, err := svc.Submit(ctx, "", "", validForm())

		assert.ErrorIs(t, err, ErrMissingSession)
	})
}

func TestCheckoutService_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("BelowThreshold", func(t *testing.T) {
		carts := new(MockCartService)
		svc := newTestService(carts, new(MockOrderStore), new(MockCache))

		cart := &cartdomain.Cart{}
		cart.AddItem(cartdomain.Product{ID: "p2", Name: "Cargador USB-C", Price: 45000, Stock: 10})
		carts.On("Get", ctx, "sess-1").Return(cart, nil).Once()

		totals, err := svc.Quote(ctx, "sess-1")

		require.NoError(t, err)
		assert.Equal(t, domain.Totals{Subtotal: 45000, Shipping: 15000, Total: 60000}, totals)
	})

	t.Run("EmptyCartQuotesZero", func(t *testing.T) {
		carts := new(MockCartService)
		svc := newTestService(carts, new(MockOrderStore), new(MockCache))

		carts.On("Get", ctx, "sess-1").Return(&cartdomain.Cart{}, nil).Once()

		totals, err := svc.Quote(ctx, "sess-1")

		require.NoError(t, err)
		assert.Equal(t, domain.Totals{}, totals)
	})

	t.Run("MissingSession", func(t *testing.T) {
		svc := newTestService(new(MockCartService), new(MockOrderStore), new(MockCache))

		_, err := svc.Quote(ctx, "")
		assert.ErrorIs(t, err, ErrMissingSession)
	})
}
