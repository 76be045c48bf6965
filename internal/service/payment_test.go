package service

import (
	"context"
	"fmt"
	"testing"

	"carshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
	BookingService
}

func (m *MockBookingService) ConfirmBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func pendingPayment() *domain.Payment {
	return &domain.Payment{
		ID:            9,
		BookingID:     5,
		AmountCents:   7000,
		Status:        domain.PaymentStatusPending,
		TransactionID: "txn-123",
	}
}

func TestPaymentService_HandlePaymentEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Completed confirms the booking", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingSvc := new(MockBookingService)
		svc := NewPaymentService(mockTxRunner{}, paymentRepo, bookingSvc)

		paymentRepo.On("GetByTransactionID", ctx, "txn-123").Return(pendingPayment(), nil)
		paymentRepo.On("Update", ctx, mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Status == domain.PaymentStatusCompleted
		})).Return(nil)
		bookingSvc.On("ConfirmBooking", ctx, int32(5)).Return(&domain.Booking{ID: 5, Status: domain.BookingStatusConfirmed}, nil)

		err := svc.HandlePaymentEvent(ctx, "txn-123", domain.PaymentStatusCompleted, 7000)
		assert.NoError(t, err)
		bookingSvc.AssertNumberOfCalls(t, "ConfirmBooking", 1)
	})

	t.Run("Failed cancels the booking", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingSvc := new(MockBookingService)
		svc := NewPaymentService(mockTxRunner{}, paymentRepo, bookingSvc)

		paymentRepo.On("GetByTransactionID", ctx, "txn-123").Return(pendingPayment(), nil)
		paymentRepo.On("Update", ctx, mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
		bookingSvc.On("CancelBooking", ctx, int32(0), int32(5), "payment FAILED").Return(&domain.Booking{ID: 5, Status: domain.BookingStatusCancelled}, nil)

		err := svc.HandlePaymentEvent(ctx, "txn-123", domain.PaymentStatusFailed, 0)
		assert.NoError(t, err)
		bookingSvc.AssertNumberOfCalls(t, "CancelBooking", 1)
	})

	t.Run("Transient confirm failure leaves payment pending for retry", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingSvc := new(MockBookingService)
		svc := NewPaymentService(mockTxRunner{}, paymentRepo, bookingSvc)

		paymentRepo.On("GetByTransactionID", ctx, "txn-123").Return(pendingPayment(), nil)
		bookingSvc.On("ConfirmBooking", ctx, int32(5)).
			Return(nil, fmt.Errorf("%w: database is on fire", domain.ErrInternal)).Once()

		err := svc.HandlePaymentEvent(ctx, "txn-123", domain.PaymentStatusCompleted, 7000)
		assert.ErrorIs(t, err, domain.ErrInternal)
		paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)

		// The payment is still PENDING, so the provider's redelivery
		// drives the confirmation instead of hitting the settled guard.
		bookingSvc.On("ConfirmBooking", ctx, int32(5)).
			Return(&domain.Booking{ID: 5, Status: domain.BookingStatusConfirmed}, nil).Once()
		paymentRepo.On("Update", ctx, mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Status == domain.PaymentStatusCompleted
		})).Return(nil)

		err = svc.HandlePaymentEvent(ctx, "txn-123", domain.PaymentStatusCompleted, 7000)
		assert.NoError(t, err)
		bookingSvc.AssertNumberOfCalls(t, "ConfirmBooking", 2)
		paymentRepo.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("Replay of terminal status is a no-op", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingSvc := new(MockBookingService)
		svc := NewPaymentService(mockTxRunner{}, paymentRepo, bookingSvc)

		settled := pendingPayment()
		settled.Status = domain.PaymentStatusCompleted
		paymentRepo.On("GetByTransactionID", ctx, "txn-123").Return(settled, nil)

		err := svc.HandlePaymentEvent(ctx, "txn-123", domain.PaymentStatusCompleted, 7000)
		assert.NoError(t, err)
		paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		bookingSvc.AssertNotCalled(t, "ConfirmBooking", mock.Anything, mock.Anything)
	})

	t.Run("Conflicting report against settled payment is ignored", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingSvc := new(MockBookingService)
		svc := NewPaymentService(mockTxRunner{}, paymentRepo, bookingSvc)

		settled := pendingPayment()
		settled.Status = domain.PaymentStatusCompleted
		paymentRepo.On("GetByTransactionID", ctx, "txn-123").Return(settled, nil)

		err := svc.HandlePaymentEvent(ctx, "txn-123", domain.PaymentStatusFailed, 0)
		assert.NoError(t, err)
		bookingSvc.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Amount mismatch rejected", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingSvc := new(MockBookingService)
		svc := NewPaymentService(mockTxRunner{}, paymentRepo, bookingSvc)

		paymentRepo.On("GetByTransactionID", ctx, "txn-123").Return(pendingPayment(), nil)

		err := svc.HandlePaymentEvent(ctx, "txn-123", domain.PaymentStatusCompleted, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Unknown transaction", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingSvc := new(MockBookingService)
		svc := NewPaymentService(mockTxRunner{}, paymentRepo, bookingSvc)

		paymentRepo.On("GetByTransactionID", ctx, "txn-missing").Return(nil, domain.ErrNotFound)

		err := svc.HandlePaymentEvent(ctx, "txn-missing", domain.PaymentStatusCompleted, 7000)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Unsupported status", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingSvc := new(MockBookingService)
		svc := NewPaymentService(mockTxRunner{}, paymentRepo, bookingSvc)

		err := svc.HandlePaymentEvent(ctx, "txn-123", domain.PaymentStatusPending, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
