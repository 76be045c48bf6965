package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions leave the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Occupying statuses count toward the availability check; cancelled and
// completed bookings free their interval.
func (s BookingStatus) Occupying() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusActive
}

// Booking occupies one car over [StartDate, EndDate). It references Car,
// RentalPlan and Promotion by id and exclusively owns its cost and
// mileage fields.
type Booking struct {
	ID           int32         `json:"id"`
	UserID       int32         `json:"user_id"`
	CarID        int32         `json:"car_id"`
	RentalPlanID int32         `json:"rental_plan_id"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Status       BookingStatus `json:"status"`
	// Price snapshot fields. Cost and discount are captured at creation
	// and only ever grow via extensions; the final mileage is set on
	// completion.
	TotalCostCents      int64  `json:"total_cost_cents"`
	DiscountAmountCents int64  `json:"discount_amount_cents"`
	PromoCodeID         *int32 `json:"promo_code_id,omitempty"`
	InitialMileage      int64  `json:"initial_mileage"`
	FinalMileage        *int64 `json:"final_mileage,omitempty"`
	CancelReason        string `json:"cancel_reason,omitempty"`
	CreatedOn           string `json:"created_on"`
	UpdatedOn           string `json:"updated_on"`
}
