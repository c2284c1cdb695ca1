package domain

import (
	"errors"
	"time"
)

// PromoKind classifies the storefront's hero promotion.
type PromoKind string

const (
	PromoKindSale     PromoKind = "SALE"
	PromoKindLaunch   PromoKind = "LAUNCH"
	PromoKindSeasonal PromoKind = "SEASONAL"
)

var (
	ErrInvalidPromoKind     = errors.New("invalid promo kind")
	ErrInvalidPromoDiscount = errors.New("promo discount must be between 0 and 100")
)

// Promo represents the single hero promotion shown on the storefront.
type Promo struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Kind     PromoKind `json:"kind"`
	// Discount is an optional percentage highlighted in the hero copy.
	Discount float64 `json:"discount,omitempty"`
	// Duration in seconds. 0 means permanent (until manually deleted).
	Duration  int       `json:"duration,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPromo creates a new Promo and validates it.
func NewPromo(title, subtitle string, kind PromoKind, discount float64, duration int) (*Promo, error) {
	if kind != PromoKindSale && kind != PromoKindLaunch && kind != PromoKindSeasonal {
		return nil, ErrInvalidPromoKind
	}
	if discount < 0 || discount > 100 {
		return nil, ErrInvalidPromoDiscount
	}

	return &Promo{
		Title:     title,
		Subtitle:  subtitle,
		Kind:      kind,
		Discount:  discount,
		Duration:  duration,
		CreatedAt: time.Now(),
	}, nil
}
