package service

import (
	"context"
	"time"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/utils"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type CarService interface {
	AddCar(ctx context.Context, car *domain.Car) error
	GetCar(ctx context.Context, id int32) (*domain.Car, error)
	UpdateCar(ctx context.Context, car *domain.Car) error
	DeleteCar(ctx context.Context, id int32) error
	ListCars(ctx context.Context, status string, page, pageSize int32) ([]domain.Car, int32, error)
}

type RentalPlanService interface {
	CreatePlan(ctx context.Context, plan *domain.RentalPlan) error
	GetPlan(ctx context.Context, id int32) (*domain.RentalPlan, error)
	UpdatePlan(ctx context.Context, plan *domain.RentalPlan) error
	ListPlans(ctx context.Context, activeOnly bool) ([]domain.RentalPlan, error)
}

// PromotionService is the promotion ledger plus admin CRUD. TryApply
// validates a code for a prospective booking; the commit/release side of
// the ledger runs inside the booking lifecycle's transactions.
type PromotionService interface {
	TryApply(ctx context.Context, code string) (*domain.Promotion, error)
	CreatePromotion(ctx context.Context, promo *domain.Promotion) error
	GetPromotion(ctx context.Context, id int32) (*domain.Promotion, error)
	UpdatePromotion(ctx context.Context, promo *domain.Promotion) error
	ListPromotions(ctx context.Context, page, pageSize int32) ([]domain.Promotion, int32, error)
}

// BookingService owns the booking state machine and its side effects on
// car status, promotion usage and payments. Every transition either
// applies completely or leaves all entities unchanged.
type BookingService interface {
	Quote(ctx context.Context, carID, planID int32, start, end time.Time, promoCode string) (*utils.BookingCostBreakdown, error)
	CheckAvailability(ctx context.Context, carID int32, start, end time.Time) (bool, error)
	CreateBooking(ctx context.Context, userID, carID, planID int32, start, end time.Time, promoCode string) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID int32) (*domain.Booking, error)
	StartBooking(ctx context.Context, bookingID int32) (*domain.Booking, error)
	ExtendBooking(ctx context.Context, userID, bookingID int32, newEndDate time.Time) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, userID, bookingID int32, finalMileage int64) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID int32) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

// PaymentService consumes the inbound payment-status feed and drives the
// booking transitions it implies. HandlePaymentEvent is idempotent: a
// feed retrying a terminal status is a no-op.
type PaymentService interface {
	HandlePaymentEvent(ctx context.Context, transactionID string, status domain.PaymentStatus, amountCents int64) error
	GetPayment(ctx context.Context, id int32) (*domain.Payment, error)
	ListBookingPayments(ctx context.Context, bookingID int32) ([]domain.Payment, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, userID, carID int32, rating int32, comment string) (*domain.Review, error)
	ListCarReviews(ctx context.Context, carID int32, page, pageSize int32) ([]domain.Review, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name string, booking *domain.Booking, car *domain.Car) error
	SendBookingCancellation(ctx context.Context, email, name string, booking *domain.Booking, reason string) error
	SendEmailVerification(ctx context.Context, email, name, token string) error
	SendPasswordReset(ctx context.Context, email, name, token string) error
}
