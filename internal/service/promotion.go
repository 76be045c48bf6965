package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/logger"
	"carshare-backend/internal/repository"
)

type promotionService struct {
	promoRepo repository.PromotionRepository
	now       func() time.Time
}

func NewPromotionService(promoRepo repository.PromotionRepository) PromotionService {
	return &promotionService{
		promoRepo: promoRepo,
		now:       time.Now,
	}
}

// TryApply answers whether a code could be committed right now. It does
// not reserve a use; the reservation happens atomically inside the
// booking transaction.
func (s *promotionService) TryApply(ctx context.Context, code string) (*domain.Promotion, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty promotion code", domain.ErrInvalidInput)
	}

	promo, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown code %q", domain.ErrPromotionInapplicable, code)
		}
		return nil, err
	}
	if !promo.ApplicableAt(s.now()) {
		return nil, fmt.Errorf("%w: code %q", domain.ErrPromotionInapplicable, code)
	}
	return promo, nil
}

func (s *promotionService) CreatePromotion(ctx context.Context, promo *domain.Promotion) error {
	if err := validatePromotion(promo); err != nil {
		return err
	}
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	promo.UsesCount = 0
	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return err
	}
	logger.Info("Promotion created", "promotion_id", promo.ID, "code", promo.Code)
	return nil
}

func (s *promotionService) GetPromotion(ctx context.Context, id int32) (*domain.Promotion, error) {
	return s.promoRepo.GetByID(ctx, id)
}

func (s *promotionService) UpdatePromotion(ctx context.Context, promo *domain.Promotion) error {
	if err := validatePromotion(promo); err != nil {
		return err
	}
	existing, err := s.promoRepo.GetByID(ctx, promo.ID)
	if err != nil {
		return err
	}
	// The usage counter is owned by the booking lifecycle.
	promo.UsesCount = existing.UsesCount
	return s.promoRepo.Update(ctx, promo)
}

func (s *promotionService) ListPromotions(ctx context.Context, page, pageSize int32) ([]domain.Promotion, int32, error) {
	return s.promoRepo.List(ctx, page, pageSize)
}

func validatePromotion(promo *domain.Promotion) error {
	if strings.TrimSpace(promo.Code) == "" {
		return fmt.Errorf("%w: promotion code is required", domain.ErrInvalidInput)
	}
	switch promo.DiscountType {
	case domain.DiscountTypePercentage:
		if promo.DiscountValue < 0 || promo.DiscountValue > 100 {
			return fmt.Errorf("%w: percentage discount must be between 0 and 100", domain.ErrInvalidInput)
		}
	case domain.DiscountTypeFixedAmount:
		if promo.DiscountValue < 0 {
			return fmt.Errorf("%w: fixed discount must not be negative", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown discount type %q", domain.ErrInvalidInput, promo.DiscountType)
	}
	if !promo.EndDate.After(promo.StartDate) {
		return fmt.Errorf("%w: promotion end date must be after start date", domain.ErrInvalidInput)
	}
	if promo.MaxUses != nil && *promo.MaxUses <= 0 {
		return fmt.Errorf("%w: max uses must be positive when set", domain.ErrInvalidInput)
	}
	return nil
}
