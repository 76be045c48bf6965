package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/logger"
	"carshare-backend/internal/repository"
	"carshare-backend/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	tx          repository.TxRunner
	bookingRepo repository.BookingRepository
	carRepo     repository.CarRepository
	planRepo    repository.RentalPlanRepository
	promoRepo   repository.PromotionRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	carLocks    *keyedMutex
	now         func() time.Time
}

func NewBookingService(
	tx repository.TxRunner,
	bookingRepo repository.BookingRepository,
	carRepo repository.CarRepository,
	planRepo repository.RentalPlanRepository,
	promoRepo repository.PromotionRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		tx:          tx,
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		planRepo:    planRepo,
		promoRepo:   promoRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		carLocks:    newKeyedMutex(),
		now:         time.Now,
	}
}

func (s *bookingService) Quote(ctx context.Context, carID, planID int32, start, end time.Time, promoCode string) (*utils.BookingCostBreakdown, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	var promo *domain.Promotion
	if promoCode != "" {
		promo, err = s.lookupApplicablePromo(ctx, promoCode)
		if err != nil {
			return nil, err
		}
	}

	bd, err := utils.CalculateBookingCostBreakdown(plan, car, start, end, promo)
	if err != nil {
		return nil, err
	}
	return &bd, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, carID int32, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}
	count, err := s.bookingRepo.CountOverlapping(ctx, nil, carID, start, end, 0)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// CreateBooking runs the full admission sequence: car available, plan
// active, duration inside plan bounds, no schedule conflict, promotion
// applicable. The availability check and the insert happen in one
// transaction under the car's lock, and the promotion counter is bumped
// by a guarded increment, so neither can be raced past its limit. A
// PENDING payment with a fresh transaction id is created alongside.
func (s *bookingService) CreateBooking(ctx context.Context, userID, carID, planID int32, start, end time.Time, promoCode string) (*domain.Booking, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%w: rental plan is not active", domain.ErrInvalidState)
	}

	tenths, err := utils.DurationTenths(plan.DurationType, start, end)
	if err != nil {
		return nil, err
	}
	if plan.MinDurationUnits > 0 && tenths < int64(plan.MinDurationUnits)*10 {
		return nil, fmt.Errorf("%w: duration below plan minimum of %d %s(s)", domain.ErrInvalidInput, plan.MinDurationUnits, plan.DurationType)
	}
	if plan.MaxDurationUnits > 0 && tenths > int64(plan.MaxDurationUnits)*10 {
		return nil, fmt.Errorf("%w: duration above plan maximum of %d %s(s)", domain.ErrInvalidInput, plan.MaxDurationUnits, plan.DurationType)
	}

	var promo *domain.Promotion
	if promoCode != "" {
		promo, err = s.lookupApplicablePromo(ctx, promoCode)
		if err != nil {
			return nil, err
		}
	}

	s.carLocks.Lock(carID)
	defer s.carLocks.Unlock(carID)

	var booking *domain.Booking
	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		car, err := s.carRepo.GetForUpdate(ctx, tx, carID)
		if err != nil {
			return err
		}
		if car.Status != domain.CarStatusAvailable {
			return fmt.Errorf("%w: car is %s", domain.ErrInvalidState, car.Status)
		}

		count, err := s.bookingRepo.CountOverlapping(ctx, tx, carID, start, end, 0)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: car %d over [%s, %s)", domain.ErrScheduleConflict, carID, start.Format(time.RFC3339), end.Format(time.RFC3339))
		}

		bd, err := utils.CalculateBookingCostBreakdown(plan, car, start, end, promo)
		if err != nil {
			return err
		}

		b := &domain.Booking{
			UserID:              userID,
			CarID:               carID,
			RentalPlanID:        planID,
			StartDate:           start,
			EndDate:             end,
			Status:              domain.BookingStatusPending,
			TotalCostCents:      bd.TotalCents,
			DiscountAmountCents: bd.PromoDiscountCents,
			InitialMileage:      car.Mileage,
		}
		if promo != nil {
			// Re-validated at commit time: the increment fails once the
			// usage cap is reached.
			if err := s.promoRepo.IncrementUses(ctx, tx, promo.ID); err != nil {
				return err
			}
			b.PromoCodeID = &promo.ID
		}

		if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
			return err
		}

		payment := &domain.Payment{
			BookingID:     b.ID,
			AmountCents:   b.TotalCostCents,
			Status:        domain.PaymentStatusPending,
			TransactionID: uuid.NewString(),
		}
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Booking created", "booking_id", booking.ID, "car_id", carID, "user_id", userID, "total_cost_cents", booking.TotalCostCents)
	return booking, nil
}

// ConfirmBooking moves PENDING to CONFIRMED and marks the car rented.
// Triggered by a manager/admin or by the payment feed reporting a
// completed payment. The confirmation email is fire-and-forget.
func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.carLocks.Lock(b.CarID)
	defer s.carLocks.Unlock(b.CarID)

	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		b, err = s.bookingRepo.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingStatusPending {
			return fmt.Errorf("%w: booking is %s, expected %s", domain.ErrInvalidState, b.Status, domain.BookingStatusPending)
		}

		car, err := s.carRepo.GetForUpdate(ctx, tx, b.CarID)
		if err != nil {
			return err
		}
		car.Status = domain.CarStatusRented
		if err := s.carRepo.Update(ctx, tx, car); err != nil {
			return err
		}

		b.Status = domain.BookingStatusConfirmed
		return s.bookingRepo.Update(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}

	s.notifyConfirmation(ctx, b)
	return b, nil
}

// StartBooking records pickup: CONFIRMED to ACTIVE.
func (s *bookingService) StartBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	var b *domain.Booking
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		var err error
		b, err = s.bookingRepo.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingStatusConfirmed {
			return fmt.Errorf("%w: booking is %s, expected %s", domain.ErrInvalidState, b.Status, domain.BookingStatusConfirmed)
		}
		b.Status = domain.BookingStatusActive
		return s.bookingRepo.Update(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ExtendBooking moves the end date of an ACTIVE booking later. The delta
// interval [oldEnd, newEnd) must be free on the car (the booking itself
// is excluded from the check) and is priced with the booking's stored
// plan, car and promotion.
func (s *bookingService) ExtendBooking(ctx context.Context, userID, bookingID int32, newEndDate time.Time) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != 0 && b.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", domain.ErrUnauthorized)
	}

	s.carLocks.Lock(b.CarID)
	defer s.carLocks.Unlock(b.CarID)

	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		b, err = s.bookingRepo.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingStatusActive {
			return fmt.Errorf("%w: booking is %s, expected %s", domain.ErrInvalidState, b.Status, domain.BookingStatusActive)
		}
		if !newEndDate.After(b.EndDate) {
			return fmt.Errorf("%w: new end date must be after the current end date", domain.ErrInvalidInput)
		}

		count, err := s.bookingRepo.CountOverlapping(ctx, tx, b.CarID, b.EndDate, newEndDate, b.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: car %d over [%s, %s)", domain.ErrScheduleConflict, b.CarID, b.EndDate.Format(time.RFC3339), newEndDate.Format(time.RFC3339))
		}

		plan, err := s.planRepo.GetByID(ctx, b.RentalPlanID)
		if err != nil {
			return err
		}
		car, err := s.carRepo.GetForUpdate(ctx, tx, b.CarID)
		if err != nil {
			return err
		}
		var promo *domain.Promotion
		if b.PromoCodeID != nil {
			// Stored snapshot reference; the committed promotion keeps
			// applying to extensions regardless of its current window.
			promo, err = s.promoRepo.GetByID(ctx, *b.PromoCodeID)
			if err != nil {
				return err
			}
		}

		additionalCost, err := utils.CalculateBookingCost(plan, car, b.EndDate, newEndDate, promo)
		if err != nil {
			return err
		}

		b.TotalCostCents += additionalCost
		b.EndDate = newEndDate
		return s.bookingRepo.Update(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Booking extended", "booking_id", b.ID, "new_end_date", b.EndDate, "total_cost_cents", b.TotalCostCents)
	return b, nil
}

// CompleteBooking ends an ACTIVE booking: the end date becomes now, the
// final mileage is recorded, and the car returns to the fleet with its
// mileage advanced. Mileage never decreases.
func (s *bookingService) CompleteBooking(ctx context.Context, userID, bookingID int32, finalMileage int64) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != 0 && b.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", domain.ErrUnauthorized)
	}

	s.carLocks.Lock(b.CarID)
	defer s.carLocks.Unlock(b.CarID)

	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		b, err = s.bookingRepo.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingStatusActive {
			return fmt.Errorf("%w: booking is %s, expected %s", domain.ErrInvalidState, b.Status, domain.BookingStatusActive)
		}
		if finalMileage < b.InitialMileage {
			return fmt.Errorf("%w: final mileage %d is below initial mileage %d", domain.ErrInvalidInput, finalMileage, b.InitialMileage)
		}

		b.Status = domain.BookingStatusCompleted
		b.EndDate = s.now()
		b.FinalMileage = &finalMileage
		if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
			return err
		}

		car, err := s.carRepo.GetForUpdate(ctx, tx, b.CarID)
		if err != nil {
			return err
		}
		if finalMileage > car.Mileage {
			car.Mileage = finalMileage
		}
		car.Status = domain.CarStatusAvailable
		return s.carRepo.Update(ctx, tx, car)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Booking completed", "booking_id", b.ID, "final_mileage", finalMileage)
	return b, nil
}

// CancelBooking is reachable from PENDING and CONFIRMED. A committed
// promotion use is released, and a car that was already marked rented is
// released back to the fleet. userID 0 means a system-driven cancel
// (payment failure, stale-pending cleanup).
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != 0 && b.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", domain.ErrUnauthorized)
	}

	s.carLocks.Lock(b.CarID)
	defer s.carLocks.Unlock(b.CarID)

	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		b, err = s.bookingRepo.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingStatusPending && b.Status != domain.BookingStatusConfirmed {
			return fmt.Errorf("%w: booking is %s, cancel requires %s or %s", domain.ErrInvalidState, b.Status, domain.BookingStatusPending, domain.BookingStatusConfirmed)
		}
		wasConfirmed := b.Status == domain.BookingStatusConfirmed

		b.Status = domain.BookingStatusCancelled
		b.CancelReason = reason
		if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
			return err
		}

		if b.PromoCodeID != nil {
			if err := s.promoRepo.DecrementUses(ctx, tx, *b.PromoCodeID); err != nil {
				return err
			}
		}

		if wasConfirmed {
			car, err := s.carRepo.GetForUpdate(ctx, tx, b.CarID)
			if err != nil {
				return err
			}
			car.Status = domain.CarStatusAvailable
			return s.carRepo.Update(ctx, tx, car)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCancellation(ctx, b, reason)
	logger.Info("Booking cancelled", "booking_id", b.ID, "reason", reason)
	return b, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != 0 && b.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", domain.ErrUnauthorized)
	}
	return b, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByUser(ctx, userID, status, page, pageSize)
}

func (s *bookingService) lookupApplicablePromo(ctx context.Context, code string) (*domain.Promotion, error) {
	promo, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown code %q", domain.ErrPromotionInapplicable, code)
		}
		return nil, err
	}
	if !promo.ApplicableAt(s.now()) {
		return nil, fmt.Errorf("%w: code %q", domain.ErrPromotionInapplicable, code)
	}
	return promo, nil
}

// notifyConfirmation dispatches the confirmation email and writes a
// notification record. Failures are logged only; the confirm transition
// has already committed and must not be rolled back by a sink outage.
func (s *bookingService) notifyConfirmation(ctx context.Context, b *domain.Booking) {
	user, err := s.userRepo.GetByID(ctx, b.UserID)
	if err != nil {
		logger.Warn("Confirmation notification skipped: user lookup failed", "booking_id", b.ID, "error", err)
		return
	}
	car, err := s.carRepo.GetByID(ctx, b.CarID)
	if err != nil {
		logger.Warn("Confirmation notification skipped: car lookup failed", "booking_id", b.ID, "error", err)
		return
	}

	if err := s.emailSvc.SendBookingConfirmation(ctx, user.Email, user.Name, b, car); err != nil {
		logger.Warn("Failed to send booking confirmation email", "booking_id", b.ID, "error", err)
	}

	note := &domain.Notification{
		UserID:  b.UserID,
		Title:   "Booking Confirmed",
		Message: fmt.Sprintf("Your booking for %s %s (%s) is confirmed", car.Brand, car.Model, car.RegistrationNumber),
		Attributes: map[string]string{
			"type":       "BOOKING_CONFIRMED",
			"booking_id": fmt.Sprintf("%d", b.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create confirmation notification", "booking_id", b.ID, "error", err)
	}
}

func (s *bookingService) notifyCancellation(ctx context.Context, b *domain.Booking, reason string) {
	user, err := s.userRepo.GetByID(ctx, b.UserID)
	if err != nil {
		logger.Warn("Cancellation notification skipped: user lookup failed", "booking_id", b.ID, "error", err)
		return
	}

	if err := s.emailSvc.SendBookingCancellation(ctx, user.Email, user.Name, b, reason); err != nil {
		logger.Warn("Failed to send booking cancellation email", "booking_id", b.ID, "error", err)
	}

	note := &domain.Notification{
		UserID:  b.UserID,
		Title:   "Booking Cancelled",
		Message: fmt.Sprintf("Booking %d was cancelled", b.ID),
		Attributes: map[string]string{
			"type":       "BOOKING_CANCELLED",
			"booking_id": fmt.Sprintf("%d", b.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create cancellation notification", "booking_id", b.ID, "error", err)
	}
}
