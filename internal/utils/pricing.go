package utils

import (
	"fmt"
	"time"

	"carshare-backend/internal/domain"
)

// Duration unit lengths in seconds. Week and month are fixed
// approximations (7 and 30 days); billing is not calendar-aware.
const (
	secondsPerMinute int64 = 60
	secondsPerHour   int64 = 60 * 60
	secondsPerDay    int64 = 24 * 60 * 60
	secondsPerWeek   int64 = 7 * secondsPerDay
	secondsPerMonth  int64 = 30 * secondsPerDay
)

// BookingCostBreakdown provides the detailed cost composition for a
// quote: duration in tenths of a unit, the rate applied, and the
// discounts taken off in order.
type BookingCostBreakdown struct {
	DurationTenths     int64 // billed duration, in 0.1 units
	RatePerUnitCents   int64
	BasePriceCents     int64
	SubtotalCents      int64 // base + duration cost, before discounts
	PlanDiscountCents  int64
	PromoDiscountCents int64
	TotalCents         int64
}

// UnitSeconds returns the length of one duration unit for the plan type.
func UnitSeconds(t domain.PlanDurationType) (int64, error) {
	switch t {
	case domain.PlanDurationMinute:
		return secondsPerMinute, nil
	case domain.PlanDurationHour:
		return secondsPerHour, nil
	case domain.PlanDurationDay:
		return secondsPerDay, nil
	case domain.PlanDurationWeek:
		return secondsPerWeek, nil
	case domain.PlanDurationMonth:
		return secondsPerMonth, nil
	default:
		return 0, fmt.Errorf("%w: unsupported duration type %q", domain.ErrInvalidInput, t)
	}
}

// RatePerUnitCents maps the plan's duration type to the car's rate card.
// Week and month rates are derived from the daily rate (7x and 30x).
func RatePerUnitCents(t domain.PlanDurationType, car *domain.Car) (int64, error) {
	switch t {
	case domain.PlanDurationMinute:
		return int64(car.MinuteRateCents), nil
	case domain.PlanDurationHour:
		return int64(car.HourlyRateCents), nil
	case domain.PlanDurationDay:
		return int64(car.DailyRateCents), nil
	case domain.PlanDurationWeek:
		return 7 * int64(car.DailyRateCents), nil
	case domain.PlanDurationMonth:
		return 30 * int64(car.DailyRateCents), nil
	default:
		return 0, fmt.Errorf("%w: unsupported duration type %q", domain.ErrInvalidInput, t)
	}
}

// DurationTenths converts the interval to billed duration in tenths of a
// plan unit, rounded up. Partial-unit usage is never under-billed.
func DurationTenths(t domain.PlanDurationType, start, end time.Time) (int64, error) {
	unitSec, err := UnitSeconds(t)
	if err != nil {
		return 0, err
	}
	durSec := int64(end.Sub(start) / time.Second)
	if durSec <= 0 {
		return 0, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}
	return ceilDiv(durSec*10, unitSec), nil
}

// CalculateBookingCost computes the cost in cents for renting the car
// over [start, end) under the plan, optionally reduced by a promotion:
//
//	cost = basePrice + durationTenths/10 x ratePerUnit
//
// then the plan's percent discount, then the promotion (percentage of
// the discounted cost, or a fixed amount), clamped at zero. Divisions
// round half up. The same function prices the delta interval of an
// extension.
func CalculateBookingCost(plan *domain.RentalPlan, car *domain.Car, start, end time.Time, promo *domain.Promotion) (int64, error) {
	bd, err := CalculateBookingCostBreakdown(plan, car, start, end, promo)
	if err != nil {
		return 0, err
	}
	return bd.TotalCents, nil
}

// CalculateBookingCostBreakdown is CalculateBookingCost with the full
// composition exposed, for quote endpoints.
func CalculateBookingCostBreakdown(plan *domain.RentalPlan, car *domain.Car, start, end time.Time, promo *domain.Promotion) (BookingCostBreakdown, error) {
	tenths, err := DurationTenths(plan.DurationType, start, end)
	if err != nil {
		return BookingCostBreakdown{}, err
	}
	rate, err := RatePerUnitCents(plan.DurationType, car)
	if err != nil {
		return BookingCostBreakdown{}, err
	}

	subtotal := plan.BasePriceCents + roundHalfUpDiv(tenths*rate, 10)
	cost := subtotal

	var planDiscount int64
	if plan.DiscountPercent > 0 {
		discounted := roundHalfUpDiv(cost*int64(100-plan.DiscountPercent), 100)
		planDiscount = cost - discounted
		cost = discounted
	}

	var promoDiscount int64
	if promo != nil {
		switch promo.DiscountType {
		case domain.DiscountTypePercentage:
			discounted := roundHalfUpDiv(cost*(100-promo.DiscountValue), 100)
			promoDiscount = cost - discounted
			cost = discounted
		case domain.DiscountTypeFixedAmount:
			promoDiscount = promo.DiscountValue
			cost -= promoDiscount
		default:
			return BookingCostBreakdown{}, fmt.Errorf("%w: unknown discount type %q", domain.ErrInvalidInput, promo.DiscountType)
		}
	}

	if cost < 0 {
		cost = 0
	}

	return BookingCostBreakdown{
		DurationTenths:     tenths,
		RatePerUnitCents:   rate,
		BasePriceCents:     plan.BasePriceCents,
		SubtotalCents:      subtotal,
		PlanDiscountCents:  planDiscount,
		PromoDiscountCents: promoDiscount,
		TotalCents:         cost,
	}, nil
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

func roundHalfUpDiv(a, b int64) int64 {
	return (a + b/2) / b
}
