package handler

import (
	"errors"
	"net/http"
	"strconv"

	"techstore-api/internal/core/logger"
	"techstore-api/internal/core/money"
	"techstore-api/internal/features/catalog/domain"
	"techstore-api/internal/features/catalog/ports"
	"techstore-api/internal/features/catalog/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(s *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: s,
	}
}

// ProductResponse is the catalog view of a product. Discount math is
// applied here for display; cart subtotals keep the list price.
type ProductResponse struct {
	domain.Product
	// PriceFormatted is the list price as a COP string.
	PriceFormatted string `json:"price_formatted"`
	// DiscountedPrice is the unit price with the discount applied.
	DiscountedPrice float64 `json:"discounted_price"`
	// Savings is the amount saved per unit.
	Savings float64 `json:"savings"`
}

func toResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		Product:         p,
		PriceFormatted:  money.FormatPrice(p.Price),
		DiscountedPrice: p.DiscountedPrice(),
		Savings:         p.Savings(),
	}
}

// ProductRequest is the admin create/update payload.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
	Discount    float64 `json:"discount"`
}

// List handles GET /products.
// @Summary List products
// @Description Lists catalog products with optional category, price and stock filters.
// @Tags Catalog
// @Produce json
// @Param category query string false "Category label"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param discounted query bool false "Only discounted products"
// @Param in_stock query bool false "Only products with stock"
// @Success 200 {array} ProductResponse
// @Failure 500 {object} map[string]string
// @Router /products [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	filter := ports.Filter{
		Category: c.Query("category"),
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		filter.MaxPrice = v
	}
	filter.OnlyDiscounted = c.QueryBool("discounted")
	filter.OnlyInStock = c.QueryBool("in_stock")

	products, err := h.service.List(c.Context(), filter)
	if err != nil {
		logger.Get().Error("Failed to list products", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toResponse(p))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Get handles GET /products/:id.
// @Summary Get product by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	product, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		logger.Get().Error("Failed to get product", zap.String("product_id", id), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(toResponse(*product))
}

// Create handles POST /products (admin).
// @Summary Create a product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product fields"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} map[string]string
// @Router /products [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	created, err := h.service.Create(c.Context(), productFromRequest(req, ""))
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.Get().Error("Failed to create product", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusCreated).JSON(toResponse(*created))
}

// Update handles PUT /products/:id (admin).
// @Summary Update a product
// @Tags Catalog
// @Accept json
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "Product fields"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	err := h.service.Update(c.Context(), productFromRequest(req, c.Params("id")))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		case errors.Is(err, service.ErrInvalidProduct):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.Get().Error("Failed to update product", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Product updated",
	})
}

// Delete handles DELETE /products/:id (admin).
// @Summary Soft-delete a product
// @Tags Catalog
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		logger.Get().Error("Failed to delete product", zap.String("product_id", id), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Product deleted",
	})
}

func productFromRequest(req ProductRequest, id string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Discount:    req.Discount,
	}
}
