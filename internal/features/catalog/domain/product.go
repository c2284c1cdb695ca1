package domain

import (
	"time"

	"techstore-api/internal/core/money"
)

// Product represents a catalog item as stored in the backing store.
// Products are read-only for shoppers; admin operations mutate them
// through the provider port.
type Product struct {
	// ID is the opaque product identifier (UUID in the backing store).
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Description is the long-form product description.
	Description string `json:"description"`
	// Price is the undiscounted unit price in COP. Never negative.
	Price float64 `json:"price"`
	// Category is the catalog category label.
	Category string `json:"category"`
	// ImageURL points to the product image.
	ImageURL string `json:"image_url"`
	// Stock is the number of units available. Never negative.
	Stock int `json:"stock"`
	// Discount is the optional discount percentage (0-100). 0 means none.
	Discount float64 `json:"discount,omitempty"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Categories are the catalog category labels offered by the store.
// "Todos" is the catch-all used by listing filters.
var Categories = []string{
	"Todos",
	"Teléfonos",
	"Audífonos",
	"Relojes Inteligentes",
	"Tablets",
	"Monitores",
	"Accesorios",
	"Portátiles",
	"Ofertas",
}

// PriceRange is a preset listing filter bucket.
type PriceRange struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	// Max of 0 means unbounded.
	Max float64 `json:"max"`
}

// PriceRanges are the preset price buckets shown on the listing page.
var PriceRanges = []PriceRange{
	{Label: "Todos los precios", Min: 0, Max: 0},
	{Label: "Menos de $500.000", Min: 0, Max: 500000},
	{Label: "$500.000 - $1.000.000", Min: 500000, Max: 1000000},
	{Label: "$1.000.000 - $2.000.000", Min: 1000000, Max: 2000000},
	{Label: "Más de $2.000.000", Min: 2000000, Max: 0},
}

// HasDiscount reports whether the product carries an active discount.
func (p Product) HasDiscount() bool {
	return p.Discount > 0
}

// DiscountedPrice returns the unit price with the discount applied.
// Display-level only: cart subtotals sum the undiscounted Price.
func (p Product) DiscountedPrice() float64 {
	return money.DiscountedPrice(p.Price, p.Discount)
}

// Savings returns the amount saved per unit against the list price.
func (p Product) Savings() float64 {
	return money.Savings(p.Price, p.DiscountedPrice())
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}
