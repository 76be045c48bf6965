package repository

import (
	"context"
	"database/sql"
	"time"

	"carshare-backend/internal/domain"
)

// TxRunner runs fn inside a single database transaction. Mutating
// repository methods that take a *sql.Tx participate in it; passing a
// nil tx runs them on the plain connection.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	// GetForUpdate locks the car row for the duration of the transaction.
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int32) (*domain.Car, error)
	Update(ctx context.Context, tx *sql.Tx, car *domain.Car) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Car, int32, error)
	Delete(ctx context.Context, id int32) error
}

type RentalPlanRepository interface {
	Create(ctx context.Context, plan *domain.RentalPlan) error
	GetByID(ctx context.Context, id int32) (*domain.RentalPlan, error)
	Update(ctx context.Context, plan *domain.RentalPlan) error
	List(ctx context.Context, activeOnly bool) ([]domain.RentalPlan, error)
}

type PromotionRepository interface {
	Create(ctx context.Context, promo *domain.Promotion) error
	GetByID(ctx context.Context, id int32) (*domain.Promotion, error)
	GetByCode(ctx context.Context, code string) (*domain.Promotion, error)
	Update(ctx context.Context, promo *domain.Promotion) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Promotion, int32, error)
	// IncrementUses bumps uses_count only while it is below max_uses;
	// returns ErrPromotionInapplicable when the cap is already reached.
	IncrementUses(ctx context.Context, tx *sql.Tx, id int32) error
	// DecrementUses lowers uses_count with a floor of zero.
	DecrementUses(ctx context.Context, tx *sql.Tx, id int32) error
	// DeactivateEnded clears is_active on promotions whose window has
	// passed; returns the number of rows changed.
	DeactivateEnded(ctx context.Context, now time.Time) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx *sql.Tx, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// GetForUpdate locks the booking row for the duration of the
	// transaction.
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int32) (*domain.Booking, error)
	Update(ctx context.Context, tx *sql.Tx, b *domain.Booking) error
	// CountOverlapping counts bookings on the car in an occupying status
	// whose [start_date, end_date) interval overlaps [start, end) under
	// half-open semantics. excludeID > 0 exempts that booking.
	CountOverlapping(ctx context.Context, tx *sql.Tx, carID int32, start, end time.Time, excludeID int32) (int32, error)
	ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByCar(ctx context.Context, carID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ListStalePending returns PENDING bookings created before the cutoff.
	ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	// HasCompletedBooking reports whether the user has any COMPLETED
	// booking for the car.
	HasCompletedBooking(ctx context.Context, userID, carID int32) (bool, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx *sql.Tx, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	Update(ctx context.Context, tx *sql.Tx, p *domain.Payment) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.Payment, error)
}

type AuthTokenRepository interface {
	Create(ctx context.Context, token *domain.AuthToken) error
	// Consume marks an unexpired, unused token as used and returns it;
	// a second consume of the same token returns ErrNotFound.
	Consume(ctx context.Context, token string, kind domain.AuthTokenKind, now time.Time) (*domain.AuthToken, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByCar(ctx context.Context, carID int32, page, pageSize int32) ([]domain.Review, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
