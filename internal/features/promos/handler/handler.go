package handler

import (
	"errors"
	"net/http"

	"techstore-api/internal/core/logger"
	"techstore-api/internal/features/promos/domain"
	"techstore-api/internal/features/promos/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PromoHandler handles HTTP requests for the hero promotion.
type PromoHandler struct {
	service ports.PromoService
}

// NewPromoHandler creates a new PromoHandler.
func NewPromoHandler(service ports.PromoService) *PromoHandler {
	return &PromoHandler{
		service: service,
	}
}

// SetPromoRequest represents the request body for setting the promo.
type SetPromoRequest struct {
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Kind     domain.PromoKind `json:"kind"`
	Discount float64          `json:"discount"`
	Duration int              `json:"duration"` // Seconds
}

// SetPromo handles POST /promo.
// @Summary Set the hero promotion
// @Description Creates or replaces the storefront's hero promotion.
// @Tags Promo
// @Accept json
// @Produce json
// @Param promo body SetPromoRequest true "Promo details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /promo [post]
func (h *PromoHandler) SetPromo(c *fiber.Ctx) error {
	var req SetPromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx := c.Context()
	if err := h.service.SetPromo(ctx, req.Title, req.Subtitle, req.Kind, req.Discount, req.Duration); err != nil {
		if errors.Is(err, domain.ErrInvalidPromoKind) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid promo kind. Must be SALE, LAUNCH, or SEASONAL",
			})
		}
		if errors.Is(err, domain.ErrInvalidPromoDiscount) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "Discount must be between 0 and 100",
			})
		}
		logger.Get().Error("Failed to set promo", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Promo set successfully",
	})
}

// GetPromo handles GET /promo.
// @Summary Get the current promotion
// @Description Retrieves the active hero promotion.
// @Tags Promo
// @Produce json
// @Success 200 {object} domain.Promo
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /promo [get]
func (h *PromoHandler) GetPromo(c *fiber.Ctx) error {
	promo, err := h.service.GetPromo(c.Context())
	if err != nil {
		logger.Get().Error("Failed to get promo", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	if promo == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "No active promo",
		})
	}

	return c.Status(http.StatusOK).JSON(promo)
}

// RemovePromo handles DELETE /promo.
// @Summary Remove the current promotion
// @Description Manually removes the active hero promotion.
// @Tags Promo
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /promo [delete]
func (h *PromoHandler) RemovePromo(c *fiber.Ctx) error {
	if err := h.service.RemovePromo(c.Context()); err != nil {
		logger.Get().Error("Failed to remove promo", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Promo removed successfully",
	})
}
