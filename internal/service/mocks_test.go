package service

import (
	"context"
	"database/sql"
	"time"

	"carshare-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// mockTxRunner executes the transaction body directly with a nil tx so
// repository mocks see the same arguments the real path passes.
type mockTxRunner struct{}

func (mockTxRunner) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int32) (*domain.Car, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, tx *sql.Tx, car *domain.Car) error {
	args := m.Called(ctx, tx, car)
	return args.Error(0)
}
func (m *MockCarRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Car, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Car), args.Get(1).(int32), args.Error(2)
}
func (m *MockCarRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlanRepo
type MockPlanRepo struct {
	mock.Mock
}

func (m *MockPlanRepo) Create(ctx context.Context, plan *domain.RentalPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}
func (m *MockPlanRepo) GetByID(ctx context.Context, id int32) (*domain.RentalPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalPlan), args.Error(1)
}
func (m *MockPlanRepo) Update(ctx context.Context, plan *domain.RentalPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}
func (m *MockPlanRepo) List(ctx context.Context, activeOnly bool) ([]domain.RentalPlan, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.RentalPlan), args.Error(1)
}

// MockPromotionRepo
type MockPromotionRepo struct {
	mock.Mock
}

func (m *MockPromotionRepo) Create(ctx context.Context, promo *domain.Promotion) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}
func (m *MockPromotionRepo) GetByID(ctx context.Context, id int32) (*domain.Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}
func (m *MockPromotionRepo) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}
func (m *MockPromotionRepo) Update(ctx context.Context, promo *domain.Promotion) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}
func (m *MockPromotionRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Promotion, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Promotion), args.Get(1).(int32), args.Error(2)
}
func (m *MockPromotionRepo) IncrementUses(ctx context.Context, tx *sql.Tx, id int32) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}
func (m *MockPromotionRepo) DecrementUses(ctx context.Context, tx *sql.Tx, id int32) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}
func (m *MockPromotionRepo) DeactivateEnded(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, tx *sql.Tx, b *domain.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, tx *sql.Tx, b *domain.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) CountOverlapping(ctx context.Context, tx *sql.Tx, carID int32, start, end time.Time, excludeID int32) (int32, error) {
	args := m.Called(ctx, tx, carID, start, end, excludeID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBookingRepo) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByCar(ctx context.Context, carID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, carID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) HasCompletedBooking(ctx context.Context, userID, carID int32) (bool, error) {
	args := m.Called(ctx, userID, carID)
	return args.Bool(0), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, tx *sql.Tx, p *domain.Payment) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, tx *sql.Tx, p *domain.Payment) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockAuthTokenRepo
type MockAuthTokenRepo struct {
	mock.Mock
}

func (m *MockAuthTokenRepo) Create(ctx context.Context, token *domain.AuthToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockAuthTokenRepo) Consume(ctx context.Context, token string, kind domain.AuthTokenKind, now time.Time) (*domain.AuthToken, error) {
	args := m.Called(ctx, token, kind, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthToken), args.Error(1)
}
func (m *MockAuthTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) ListByCar(ctx context.Context, carID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	args := m.Called(ctx, carID, page, pageSize)
	return args.Get(0).([]domain.Review), args.Get(1).(int32), args.Error(2)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, name string, booking *domain.Booking, car *domain.Car) error {
	args := m.Called(ctx, email, name, booking, car)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancellation(ctx context.Context, email, name string, booking *domain.Booking, reason string) error {
	args := m.Called(ctx, email, name, booking, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendEmailVerification(ctx context.Context, email, name, token string) error {
	args := m.Called(ctx, email, name, token)
	return args.Error(0)
}
func (m *MockEmailService) SendPasswordReset(ctx context.Context, email, name, token string) error {
	args := m.Called(ctx, email, name, token)
	return args.Error(0)
}
