package domain

type PlanDurationType string

const (
	PlanDurationMinute PlanDurationType = "minute"
	PlanDurationHour   PlanDurationType = "hour"
	PlanDurationDay    PlanDurationType = "day"
	PlanDurationWeek   PlanDurationType = "week"
	PlanDurationMonth  PlanDurationType = "month"
)

// RentalPlan is a named tariff: a base fee plus a per-duration-unit rate
// taken from the car's rate card. Duration bounds are expressed in whole
// units of DurationType; zero means unbounded.
type RentalPlan struct {
	ID               int32            `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	DurationType     PlanDurationType `json:"duration_type"`
	BasePriceCents   int64            `json:"base_price_cents"`
	MinDurationUnits int32            `json:"min_duration_units"`
	MaxDurationUnits int32            `json:"max_duration_units"`
	DiscountPercent  int32            `json:"discount_percent"`
	IsActive         bool             `json:"is_active"`
	CreatedOn        string           `json:"created_on"`
	UpdatedOn        string           `json:"updated_on"`
}
