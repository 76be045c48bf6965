package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/logger"
	"carshare-backend/internal/repository"
)

type paymentService struct {
	tx          repository.TxRunner
	paymentRepo repository.PaymentRepository
	bookingSvc  BookingService
}

func NewPaymentService(tx repository.TxRunner, paymentRepo repository.PaymentRepository, bookingSvc BookingService) PaymentService {
	return &paymentService{
		tx:          tx,
		paymentRepo: paymentRepo,
		bookingSvc:  bookingSvc,
	}
}

// HandlePaymentEvent applies a provider status report. Events are keyed
// by transaction id and idempotent: replays of a status the payment
// already holds, and any report against a payment already in a terminal
// status, are acknowledged without effect.
func (s *paymentService) HandlePaymentEvent(ctx context.Context, transactionID string, status domain.PaymentStatus, amountCents int64) error {
	if transactionID == "" {
		return fmt.Errorf("%w: transaction id is required", domain.ErrInvalidInput)
	}
	switch status {
	case domain.PaymentStatusCompleted, domain.PaymentStatusFailed, domain.PaymentStatusCancelled, domain.PaymentStatusRefunded:
	default:
		return fmt.Errorf("%w: unsupported payment status %q", domain.ErrInvalidInput, status)
	}

	payment, err := s.paymentRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: payment for transaction %q", domain.ErrNotFound, transactionID)
		}
		return err
	}

	if payment.Status == status || payment.Status.IsTerminal() {
		logger.Info("Payment event ignored: already settled", "transaction_id", transactionID, "current_status", payment.Status, "reported_status", status)
		return nil
	}
	if status == domain.PaymentStatusCompleted && amountCents != 0 && amountCents != payment.AmountCents {
		return fmt.Errorf("%w: reported amount %d does not match expected %d", domain.ErrInvalidInput, amountCents, payment.AmountCents)
	}

	// The booking transition runs before the terminal status is
	// persisted. A transient transition failure leaves the payment
	// PENDING, so the provider's retry drives the transition again
	// instead of being swallowed by the idempotency guard above.
	switch status {
	case domain.PaymentStatusCompleted:
		if _, err := s.bookingSvc.ConfirmBooking(ctx, payment.BookingID); err != nil {
			// A booking no longer PENDING (cancelled meanwhile, or a
			// duplicate delivery that raced us) is not a feed error.
			if !errors.Is(err, domain.ErrInvalidState) {
				return err
			}
			logger.Warn("Completed payment for non-pending booking", "booking_id", payment.BookingID, "error", err)
		}
	case domain.PaymentStatusFailed, domain.PaymentStatusCancelled:
		reason := fmt.Sprintf("payment %s", status)
		if _, err := s.bookingSvc.CancelBooking(ctx, 0, payment.BookingID, reason); err != nil {
			if !errors.Is(err, domain.ErrInvalidState) {
				return err
			}
			logger.Warn("Payment failure for non-cancellable booking", "booking_id", payment.BookingID, "error", err)
		}
	}

	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		payment.Status = status
		return s.paymentRepo.Update(ctx, tx, payment)
	})
	if err != nil {
		return err
	}
	logger.Info("Payment updated", "payment_id", payment.ID, "transaction_id", transactionID, "status", status)
	return nil
}

func (s *paymentService) GetPayment(ctx context.Context, id int32) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) ListBookingPayments(ctx context.Context, bookingID int32) ([]domain.Payment, error) {
	return s.paymentRepo.ListByBooking(ctx, bookingID)
}
