package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"techstore-api/internal/features/checkout/domain"
	"techstore-api/internal/features/checkout/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckoutService is a mock implementation of ports.CheckoutService
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Quote(ctx context.Context, sessionID string) (domain.Totals, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.Totals), args.Error(1)
}

func (m *MockCheckoutService) Submit(ctx context.Context, sessionID, userID string, form domain.CheckoutForm) (*domain.OrderResult, error) {
	args := m.Called(ctx, sessionID, userID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderResult), args.Error(1)
}

func setupApp(svc *MockCheckoutService) *fiber.App {
	app := fiber.New()
	handler := NewCheckoutHandler(svc)
	app.Post("/checkout", handler.Submit)
	app.Get("/checkout/quote", handler.Quote)
	return app
}

func submitRequest(body CheckoutRequest, session string) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/checkout", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	return req
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		Name:    "Laura Gómez",
		Email:   "laura@example.com",
		Phone:   "3001234567",
		Address: "Calle 10 # 5-23",
		City:    "Bogotá",
	}
}

func TestCheckoutHandler_Submit(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		app := setupApp(mockService)

		result := &domain.OrderResult{
			OrderID:     "order-9",
			WhatsAppURL: "https://wa.me/573014610269?text=hola",
			Totals:      domain.Totals{Subtotal: 45000, Shipping: 15000, Total: 60000},
		}
		mockService.On("Submit", mock.Anything, "sess-1", "", mock.AnythingOfType("domain.CheckoutForm")).Return(result, nil).Once()

		resp, err := app.Test(submitRequest(validRequest(), "sess-1"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var out CheckoutResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "order-9", out.OrderID)
		assert.Equal(t, "$ 60.000", out.TotalFormatted)
		mockService.AssertExpectations(t)
	})

	t.Run("ForwardsUserHeader", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		app := setupApp(mockService)

		result := &domain.OrderResult{OrderID: "order-9"}
		mockService.On("Submit", mock.Anything, "sess-1", "user-1", mock.Anything).Return(result, nil).Once()

		req := submitRequest(validRequest(), "sess-1")
		req.Header.Set(UserHeader, "user-1")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		app := setupApp(mockService)

		vErr := &service.ValidationError{Fields: map[string]string{"email": "Ingresa un email válido"}}
		mockService.On("Submit", mock.Anything, "sess-1", "", mock.Anything).Return(nil, vErr).Once()

		resp, err := app.Test(submitRequest(CheckoutRequest{Email: "bad"}, "sess-1"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var out struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Contains(t, out.Errors, "email")
	})

	t.Run("EmptyCart", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		app := setupApp(mockService)

		mockService.On("Submit", mock.Anything, "sess-1", "", mock.Anything).Return(nil, service.ErrEmptyCart).Once()

		resp, err := app.Test(submitRequest(validRequest(), "sess-1"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("InFlightConflict", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		app := setupApp(mockService)

		mockService.On("Submit", mock.Anything, "sess-1", "", mock.Anything).Return(nil, service.ErrSubmitInFlight).Once()

		resp, err := app.Test(submitRequest(validRequest(), "sess-1"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("PersistenceFailure", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		app := setupApp(mockService)

		wrapped := fmt.Errorf("%w: supabase down", service.ErrOrderPersistence)
		mockService.On("Submit", mock.Anything, "sess-1", "", mock.Anything).Return(nil, wrapped).Once()

		resp, err := app.Test(submitRequest(validRequest(), "sess-1"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})

	t.Run("MissingSession", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		app := setupApp(mockService)

		resp, err := app.Test(submitRequest(validRequest(), ""))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockService.AssertNotCalled(t, "Submit")
	})
}

func TestCheckoutHandler_Quote(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		app := setupApp(mockService)

		totals := domain.Totals{Subtotal: 45000, Shipping: 15000, Total: 60000}
		mockService.On("Quote", mock.Anything, "sess-1").Return(totals, nil).Once()

		req := httptest.NewRequest("GET", "/checkout/quote", nil)
		req.Header.Set(SessionHeader, "sess-1")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out QuoteResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "$ 45.000", out.SubtotalFormatted)
		assert.Equal(t, "$ 60.000", out.TotalFormatted)
	})

	t.Run("MissingSession", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		app := setupApp(mockService)

		resp, err := app.Test(httptest.NewRequest("GET", "/checkout/quote", nil))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockService.AssertNotCalled(t, "Quote")
	})
}
