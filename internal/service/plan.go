package service

import (
	"context"
	"fmt"
	"strings"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/repository"
)

type rentalPlanService struct {
	planRepo repository.RentalPlanRepository
}

func NewRentalPlanService(planRepo repository.RentalPlanRepository) RentalPlanService {
	return &rentalPlanService{planRepo: planRepo}
}

func (s *rentalPlanService) CreatePlan(ctx context.Context, plan *domain.RentalPlan) error {
	if err := validatePlan(plan); err != nil {
		return err
	}
	return s.planRepo.Create(ctx, plan)
}

func (s *rentalPlanService) GetPlan(ctx context.Context, id int32) (*domain.RentalPlan, error) {
	return s.planRepo.GetByID(ctx, id)
}

func (s *rentalPlanService) UpdatePlan(ctx context.Context, plan *domain.RentalPlan) error {
	if err := validatePlan(plan); err != nil {
		return err
	}
	if _, err := s.planRepo.GetByID(ctx, plan.ID); err != nil {
		return err
	}
	return s.planRepo.Update(ctx, plan)
}

func (s *rentalPlanService) ListPlans(ctx context.Context, activeOnly bool) ([]domain.RentalPlan, error) {
	return s.planRepo.List(ctx, activeOnly)
}

func validatePlan(plan *domain.RentalPlan) error {
	if strings.TrimSpace(plan.Name) == "" {
		return fmt.Errorf("%w: plan name is required", domain.ErrInvalidInput)
	}
	switch plan.DurationType {
	case domain.PlanDurationMinute, domain.PlanDurationHour, domain.PlanDurationDay,
		domain.PlanDurationWeek, domain.PlanDurationMonth:
	default:
		return fmt.Errorf("%w: unknown duration type %q", domain.ErrInvalidInput, plan.DurationType)
	}
	if plan.BasePriceCents < 0 {
		return fmt.Errorf("%w: base price must not be negative", domain.ErrInvalidInput)
	}
	if plan.MinDurationUnits < 0 || plan.MaxDurationUnits < 0 {
		return fmt.Errorf("%w: duration bounds must not be negative", domain.ErrInvalidInput)
	}
	if plan.MaxDurationUnits > 0 && plan.MinDurationUnits > plan.MaxDurationUnits {
		return fmt.Errorf("%w: min duration exceeds max duration", domain.ErrInvalidInput)
	}
	if plan.DiscountPercent < 0 || plan.DiscountPercent > 100 {
		return fmt.Errorf("%w: discount percent must be between 0 and 100", domain.ErrInvalidInput)
	}
	return nil
}
