package ports

import (
	"context"

	"techstore-api/internal/features/promos/domain"
)

// PromoService defines the primary port for promo operations.
type PromoService interface {
	SetPromo(ctx context.Context, title, subtitle string, kind domain.PromoKind, discount float64, duration int) error
	GetPromo(ctx context.Context) (*domain.Promo, error)
	RemovePromo(ctx context.Context) error
}

// PromoRepository defines the secondary port for promo storage.
type PromoRepository interface {
	Save(ctx context.Context, promo *domain.Promo) error
	Get(ctx context.Context) (*domain.Promo, error)
	Delete(ctx context.Context) error
}
