package service

import (
	"context"
	"fmt"

	"techstore-api/internal/features/promos/domain"
	"techstore-api/internal/features/promos/ports"
)

// PromoServiceImpl implements ports.PromoService.
type PromoServiceImpl struct {
	repo ports.PromoRepository
}

// NewPromoService creates a new PromoServiceImpl.
func NewPromoService(repo ports.PromoRepository) *PromoServiceImpl {
	return &PromoServiceImpl{
		repo: repo,
	}
}

// SetPromo creates and saves a new promo, replacing any active one.
func (s *PromoServiceImpl) SetPromo(ctx context.Context, title, subtitle string, kind domain.PromoKind, discount float64, duration int) error {
	promo, err := domain.NewPromo(title, subtitle, kind, discount, duration)
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, promo); err != nil {
		return fmt.Errorf("service: failed to save promo: %w", err)
	}

	return nil
}

// GetPromo retrieves the current promo.
func (s *PromoServiceImpl) GetPromo(ctx context.Context) (*domain.Promo, error) {
	promo, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get promo: %w", err)
	}

	return promo, nil
}

// RemovePromo deletes the current promo.
func (s *PromoServiceImpl) RemovePromo(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("service: failed to remove promo: %w", err)
	}

	return nil
}
