package domain

// Review is left by a user who completed a booking for the car.
// Rating is 1..5.
type Review struct {
	ID        int32  `json:"id"`
	UserID    int32  `json:"user_id"`
	CarID     int32  `json:"car_id"`
	BookingID int32  `json:"booking_id"`
	Rating    int32  `json:"rating"`
	Comment   string `json:"comment"`
	CreatedOn string `json:"created_on"`
}
