package domain

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment references a booking and drives its pending→confirmed /
// →cancelled transitions when the provider reports a terminal status.
type Payment struct {
	ID            int32         `json:"id"`
	BookingID     int32         `json:"booking_id"`
	AmountCents   int64         `json:"amount_cents"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id"` // unique
	CreatedOn     string        `json:"created_on"`
	UpdatedOn     string        `json:"updated_on"`
}
