package domain

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusRented      CarStatus = "RENTED"
	CarStatusMaintenance CarStatus = "MAINTENANCE"
)

type Car struct {
	ID                 int32     `json:"id"`
	Brand              string    `json:"brand"`
	Model              string    `json:"model"`
	RegistrationNumber string    `json:"registration_number"` // unique per fleet
	Year               int32     `json:"year"`
	// Rate card. All prices are integer cents; week/month rates are
	// derived from the daily rate by the pricing engine.
	MinuteRateCents int32     `json:"minute_rate_cents"`
	HourlyRateCents int32     `json:"hourly_rate_cents"`
	DailyRateCents  int32     `json:"daily_rate_cents"`
	Status          CarStatus `json:"status"`
	Mileage         int64     `json:"mileage"` // kilometers, never decreases
	CreatedOn       string    `json:"created_on"`
	UpdatedOn       string    `json:"updated_on"`
}
