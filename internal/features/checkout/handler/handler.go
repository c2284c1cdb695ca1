package handler

import (
	"errors"
	"net/http"

	"techstore-api/internal/core/logger"
	"techstore-api/internal/core/money"
	"techstore-api/internal/features/checkout/domain"
	"techstore-api/internal/features/checkout/ports"
	"techstore-api/internal/features/checkout/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHeader carries the shopper's session identifier.
const SessionHeader = "X-Session-ID"

// UserHeader optionally carries the authenticated user's id. Guest
// checkouts simply omit it.
const UserHeader = "X-User-ID"

// CheckoutHandler handles HTTP requests for checkout.
type CheckoutHandler struct {
	service ports.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// CheckoutRequest is the body for POST /checkout.
type CheckoutRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Notes   string `json:"notes"`
}

// CheckoutResponse is returned on a successful submission.
type CheckoutResponse struct {
	OrderID        string        `json:"order_id"`
	WhatsAppURL    string        `json:"whatsapp_url"`
	Totals         domain.Totals `json:"totals"`
	TotalFormatted string        `json:"total_formatted"`
}

// QuoteResponse prices the current cart.
type QuoteResponse struct {
	Totals            domain.Totals `json:"totals"`
	SubtotalFormatted string        `json:"subtotal_formatted"`
	ShippingFormatted string        `json:"shipping_formatted"`
	TotalFormatted    string        `json:"total_formatted"`
}

// Submit handles POST /checkout.
// @Summary Submit the session cart as an order
// @Description Validates the delivery form, persists the order and returns a WhatsApp handoff link.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param X-User-ID header string false "Authenticated user ID"
// @Param form body CheckoutRequest true "Delivery and contact details"
// @Success 201 {object} CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Failure 502 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	sessionID := c.Get(SessionHeader)
	if sessionID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID is required",
		})
	}

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	form := domain.CheckoutForm{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Notes:   req.Notes,
	}

	result, err := h.service.Submit(c.Context(), sessionID, c.Get(UserHeader), form)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": vErr.Fields,
			})
		case errors.Is(err, service.ErrEmptyCart):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "Cart is empty",
			})
		case errors.Is(err, service.ErrSubmitInFlight):
			return c.Status(http.StatusConflict).JSON(fiber.Map{
				"error": "A submission for this session is already in progress",
			})
		case errors.Is(err, service.ErrOrderPersistence):
			logger.Get().Error("Order persistence failed", zap.String("session_id", sessionID), zap.Error(err))
			return c.Status(http.StatusBadGateway).JSON(fiber.Map{
				"error": "Failed to store the order, please retry",
			})
		default:
			logger.Get().Error("Checkout failed", zap.String("session_id", sessionID), zap.Error(err))
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		}
	}

	return c.Status(http.StatusCreated).JSON(CheckoutResponse{
		OrderID:        result.OrderID,
		WhatsAppURL:    result.WhatsAppURL,
		Totals:         result.Totals,
		TotalFormatted: money.FormatPrice(result.Totals.Total),
	})
}

// Quote handles GET /checkout/quote.
// @Summary Price the session cart
// @Description Returns subtotal, shipping and total for the current cart without submitting.
// @Tags Checkout
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} map[string]string
// @Router /checkout/quote [get]
func (h *CheckoutHandler) Quote(c *fiber.Ctx) error {
	sessionID := c.Get(SessionHeader)
	if sessionID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID is required",
		})
	}

	totals, err := h.service.Quote(c.Context(), sessionID)
	if err != nil {
		logger.Get().Error("Failed to quote cart", zap.String("session_id", sessionID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(QuoteResponse{
		Totals:            totals,
		SubtotalFormatted: money.FormatPrice(totals.Subtotal),
		ShippingFormatted: money.FormatPrice(totals.Shipping),
		TotalFormatted:    money.FormatPrice(totals.Total),
	})
}
