package service

import (
	"context"
	"errors"
	"fmt"

	"techstore-api/internal/features/catalog/domain"
	"techstore-api/internal/features/catalog/ports"
)

var (
	// ErrProductNotFound is returned when the product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct is returned when a write carries invalid fields.
	ErrInvalidProduct = errors.New("invalid product")
)

// CatalogService handles listing, lookup and admin writes for products.
// Filtering happens in-process over the fetched listing; the store is the
// source of truth and any staleness is acceptable for the catalog.
type CatalogService struct {
	provider ports.ProductProvider
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(provider ports.ProductProvider) *CatalogService {
	return &CatalogService{
		provider: provider,
	}
}

// List returns products matching the filter, newest first.
func (s *CatalogService) List(ctx context.Context, filter ports.Filter) ([]domain.Product, error) {
	products, err := s.provider.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matches(p, filter) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// Get retrieves a single product by ID.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.provider.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create validates and inserts a new product.
func (s *CatalogService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	created, err := s.provider.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// Update validates and overwrites an existing product.
func (s *CatalogService) Update(ctx context.Context, p domain.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidProduct)
	}
	if err := validate(p); err != nil {
		return err
	}

	existing, err := s.provider.Get(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if existing == nil {
		return ErrProductNotFound
	}

	if err := s.provider.Update(ctx, p); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete soft-deletes a product.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	existing, err := s.provider.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if existing == nil {
		return ErrProductNotFound
	}

	if err := s.provider.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// validate checks the product invariants: non-empty name and category,
// price >= 0, stock >= 0, discount in [0, 100].
func validate(p domain.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case p.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case p.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	case p.Discount < 0 || p.Discount > 100:
		return fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalidProduct)
	}
	return nil
}

// matches applies the listing filter to one product.
func matches(p domain.Product, f ports.Filter) bool {
	if f.Category != "" && f.Category != "Todos" && p.Category != f.Category {
		return false
	}
	if p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.OnlyDiscounted && !p.HasDiscount() {
		return false
	}
	if f.OnlyInStock && !p.InStock() {
		return false
	}
	return true
}
