package handler

import (
	"errors"
	"net/http"

	"techstore-api/internal/core/logger"
	"techstore-api/internal/core/money"
	"techstore-api/internal/features/cart/domain"
	"techstore-api/internal/features/cart/ports"
	"techstore-api/internal/features/cart/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionHeader carries the shopper's session identifier. Mutating
// requests without one get a fresh id minted and echoed back.
const SessionHeader = "X-Session-ID"

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service ports.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// LineResponse is one cart line with its derived subtotal.
type LineResponse struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// CartResponse is the cart view returned by every cart endpoint.
type CartResponse struct {
	// SessionID identifies the cart's session.
	SessionID string `json:"session_id"`
	// Lines are the cart lines in insertion order.
	Lines []LineResponse `json:"lines"`
	// LineCount is the number of distinct lines (the badge count).
	LineCount int `json:"line_count"`
	// TotalQuantity is the summed unit count.
	TotalQuantity int `json:"total_quantity"`
	// Subtotal sums undiscounted price * quantity.
	Subtotal float64 `json:"subtotal"`
	// SubtotalFormatted is the subtotal as a COP string.
	SubtotalFormatted string `json:"subtotal_formatted"`
}

func toResponse(sessionID string, cart *domain.Cart) CartResponse {
	lines := cart.Lines()
	out := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineResponse{
			Product:  l.Product,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}
	return CartResponse{
		SessionID:         sessionID,
		Lines:             out,
		LineCount:         cart.LineCount(),
		TotalQuantity:     cart.TotalQuantity(),
		Subtotal:          cart.Subtotal(),
		SubtotalFormatted: money.FormatPrice(cart.Subtotal()),
	}
}

// AddItemRequest is the body for POST /cart/items.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

// UpdateQuantityRequest is the body for PUT /cart/items/:productID.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// session returns the request's session id, minting one when allowed.
func (h *CartHandler) session(c *fiber.Ctx, mint bool) string {
	sessionID := c.Get(SessionHeader)
	if sessionID == "" && mint {
		sessionID = uuid.NewString()
	}
	if sessionID != "" {
		c.Set(SessionHeader, sessionID)
	}
	return sessionID
}

// Get handles GET /cart.
// @Summary Get the session cart
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} CartResponse
// @Router /cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	sessionID := h.session(c, false)
	if sessionID == "" {
		// No session yet means an empty cart, not an error.
		return c.Status(http.StatusOK).JSON(toResponse("", &domain.Cart{}))
	}

	cart, err := h.service.Get(c.Context(), sessionID)
	if err != nil {
		logger.Get().Error("Failed to load cart", zap.String("session_id", sessionID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(toResponse(sessionID, cart))
}

// AddItem handles POST /cart/items.
// @Summary Add a product to the cart
// @Description Merges one unit into the cart, clamped to the product's stock.
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID (minted when absent)"
// @Param item body AddItemRequest true "Product to add"
// @Success 200 {object} CartResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "product_id is required",
		})
	}

	sessionID := h.session(c, true)

	cart, err := h.service.AddItem(c.Context(), sessionID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		logger.Get().Error("Failed to add cart item",
			zap.String("session_id", sessionID),
			zap.String("product_id", req.ProductID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(toResponse(sessionID, cart))
}

// UpdateQuantity handles PUT /cart/items/:productID.
// @Summary Update line quantity
// @Description Sets the quantity, clamped to stock. Quantity zero removes the line.
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param productID path string true "Product ID"
// @Param quantity body UpdateQuantityRequest true "New quantity"
// @Success 200 {object} CartResponse
// @Failure 400 {object} map[string]string
// @Router /cart/items/{productID} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sessionID := h.session(c, false)
	if sessionID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID is required",
		})
	}

	cart, err := h.service.UpdateQuantity(c.Context(), sessionID, c.Params("productID"), req.Quantity)
	if err != nil {
		logger.Get().Error("Failed to update cart item", zap.String("session_id", sessionID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(toResponse(sessionID, cart))
}

// RemoveItem handles DELETE /cart/items/:productID.
// @Summary Remove a line from the cart
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param productID path string true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 400 {object} map[string]string
// @Router /cart/items/{productID} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	sessionID := h.session(c, false)
	if sessionID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID is required",
		})
	}

	cart, err := h.service.RemoveItem(c.Context(), sessionID, c.Params("productID"))
	if err != nil {
		logger.Get().Error("Failed to remove cart item", zap.String("session_id", sessionID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(toResponse(sessionID, cart))
}

// Clear handles DELETE /cart.
// @Summary Clear the session cart
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sessionID := h.session(c, false)
	if sessionID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID is required",
		})
	}

	if err := h.service.Clear(c.Context(), sessionID); err != nil {
		logger.Get().Error("Failed to clear cart", zap.String("session_id", sessionID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
