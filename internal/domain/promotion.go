package domain

import "time"

type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "PERCENTAGE"
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

// Promotion is a promo code with a validity window and an optional usage
// cap. DiscountValue holds whole percent for PERCENTAGE promotions and
// cents for FIXED_AMOUNT ones.
type Promotion struct {
	ID            int32        `json:"id"`
	Code          string       `json:"code"` // unique
	Description   string       `json:"description"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue int64        `json:"discount_value"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	IsActive      bool         `json:"is_active"`
	MaxUses       *int32       `json:"max_uses,omitempty"` // nil = unlimited
	UsesCount     int32        `json:"uses_count"`
	CreatedOn     string       `json:"created_on"`
	UpdatedOn     string       `json:"updated_on"`
}

// ApplicableAt reports whether the promotion can be applied at the given
// instant: active, inside its validity window, and under its usage cap.
func (p *Promotion) ApplicableAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if now.Before(p.StartDate) || now.After(p.EndDate) {
		return false
	}
	if p.MaxUses != nil && p.UsesCount >= *p.MaxUses {
		return false
	}
	return true
}
