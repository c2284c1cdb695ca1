package adapters

import (
	"context"
	"errors"
	"fmt"

	cartdomain "techstore-api/internal/features/cart/domain"
	catalogservice "techstore-api/internal/features/catalog/service"
)

// CatalogSource implements ports.ProductSource on top of the catalog
// service, mapping the full product to the snapshot the cart needs.
type CatalogSource struct {
	catalog *catalogservice.CatalogService
}

// NewCatalogSource creates a new CatalogSource.
func NewCatalogSource(catalog *catalogservice.CatalogService) *CatalogSource {
	return &CatalogSource{
		catalog: catalog,
	}
}

// Product resolves a product's cart snapshot. Unknown products map to
// nil rather than an error, per the source port contract.
func (s *CatalogSource) Product(ctx context.Context, id string) (*cartdomain.Product, error) {
	product, err := s.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, catalogservice.ErrProductNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	return &cartdomain.Product{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	}, nil
}
