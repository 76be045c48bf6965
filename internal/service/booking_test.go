package service

import (
	"context"
	"testing"
	"time"

	"carshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type bookingFixture struct {
	bookingRepo *MockBookingRepo
	carRepo     *MockCarRepo
	planRepo    *MockPlanRepo
	promoRepo   *MockPromotionRepo
	paymentRepo *MockPaymentRepo
	userRepo    *MockUserRepo
	noteRepo    *MockNotificationRepo
	emailSvc    *MockEmailService
	svc         *bookingService
}

func newBookingFixture(now time.Time) *bookingFixture {
	f := &bookingFixture{
		bookingRepo: new(MockBookingRepo),
		carRepo:     new(MockCarRepo),
		planRepo:    new(MockPlanRepo),
		promoRepo:   new(MockPromotionRepo),
		paymentRepo: new(MockPaymentRepo),
		userRepo:    new(MockUserRepo),
		noteRepo:    new(MockNotificationRepo),
		emailSvc:    new(MockEmailService),
	}
	svc := NewBookingService(
		mockTxRunner{},
		f.bookingRepo,
		f.carRepo,
		f.planRepo,
		f.promoRepo,
		f.paymentRepo,
		f.userRepo,
		f.noteRepo,
		f.emailSvc,
	).(*bookingService)
	svc.now = func() time.Time { return now }
	f.svc = svc
	return f
}

func availableCar() *domain.Car {
	return &domain.Car{
		ID:             2,
		Brand:          "Toyota",
		Model:          "Corolla",
		DailyRateCents: 6000,
		Status:         domain.CarStatusAvailable,
		Mileage:        42000,
	}
}

func activeDayPlan() *domain.RentalPlan {
	return &domain.RentalPlan{
		ID:             3,
		Name:           "Daily",
		DurationType:   domain.PlanDurationDay,
		BasePriceCents: 1000,
		IsActive:       true,
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	end := start.Add(24 * time.Hour)

	t.Run("Success without promo", func(t *testing.T) {
		f := newBookingFixture(now)
		f.planRepo.On("GetByID", ctx, int32(3)).Return(activeDayPlan(), nil)
		f.carRepo.On("GetForUpdate", ctx, mock.Anything, int32(2)).Return(availableCar(), nil)
		f.bookingRepo.On("CountOverlapping", ctx, mock.Anything, int32(2), start, end, int32(0)).Return(int32(0), nil)
		f.bookingRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		f.paymentRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

		b, err := f.svc.CreateBooking(ctx, 1, 2, 3, start, end, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
		assert.Equal(t, int64(7000), b.TotalCostCents)
		assert.Equal(t, int64(0), b.DiscountAmountCents)
		assert.Equal(t, int64(42000), b.InitialMileage)
		assert.Nil(t, b.PromoCodeID)
		f.paymentRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Success with promo", func(t *testing.T) {
		f := newBookingFixture(now)
		maxUses := int32(100)
		promo := &domain.Promotion{
			ID:            7,
			Code:          "SPRING20",
			DiscountType:  domain.DiscountTypePercentage,
			DiscountValue: 20,
			StartDate:     now.Add(-time.Hour),
			EndDate:       now.Add(48 * time.Hour),
			IsActive:      true,
			MaxUses:       &maxUses,
		}
		f.planRepo.On("GetByID", ctx, int32(3)).Return(activeDayPlan(), nil)
		f.promoRepo.On("GetByCode", ctx, "SPRING20").Return(promo, nil)
		f.carRepo.On("GetForUpdate", ctx, mock.Anything, int32(2)).Return(availableCar(), nil)
		f.bookingRepo.On("CountOverlapping", ctx, mock.Anything, int32(2), start, end, int32(0)).Return(int32(0), nil)
		f.promoRepo.On("IncrementUses", ctx, mock.Anything, int32(7)).Return(nil)
		f.bookingRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		f.paymentRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

		b, err := f.svc.CreateBooking(ctx, 1, 2, 3, start, end, "SPRING20")
		assert.NoError(t, err)
		assert.Equal(t, int64(5600), b.TotalCostCents) // 7000 less 20%
		assert.Equal(t, int64(1400), b.DiscountAmountCents)
		assert.NotNil(t, b.PromoCodeID)
		assert.Equal(t, int32(7), *b.PromoCodeID)
		f.promoRepo.AssertNumberOfCalls(t, "IncrementUses", 1)
	})

	t.Run("Schedule conflict", func(t *testing.T) {
		f := newBookingFixture(now)
		f.planRepo.On("GetByID", ctx, int32(3)).Return(activeDayPlan(), nil)
		f.carRepo.On("GetForUpdate", ctx, mock.Anything, int32(2)).Return(availableCar(), nil)
		f.bookingRepo.On("CountOverlapping", ctx, mock.Anything, int32(2), start, end, int32(0)).Return(int32(1), nil)

		_, err := f.svc.CreateBooking(ctx, 1, 2, 3, start, end, "")
		assert.ErrorIs(t, err, domain.ErrScheduleConflict)
		f.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Promo cap reached at commit", func(t *testing.T) {
		f := newBookingFixture(now)
		promo := &domain.Promotion{
			ID:            7,
			Code:          "SPRING20",
			DiscountType:  domain.DiscountTypePercentage,
			DiscountValue: 20,
			StartDate:     now.Add(-time.Hour),
			EndDate:       now.Add(48 * time.Hour),
			IsActive:      true,
		}
		f.planRepo.On("GetByID", ctx, int32(3)).Return(activeDayPlan(), nil)
		f.promoRepo.On("GetByCode", ctx, "SPRING20").Return(promo, nil)
		f.carRepo.On("GetForUpdate", ctx, mock.Anything, int32(2)).Return(availableCar(), nil)
		f.bookingRepo.On("CountOverlapping", ctx, mock.Anything, int32(2), start, end, int32(0)).Return(int32(0), nil)
		f.promoRepo.On("IncrementUses", ctx, mock.Anything, int32(7)).Return(domain.ErrPromotionInapplicable)

		_, err := f.svc.CreateBooking(ctx, 1, 2, 3, start, end, "SPRING20")
		assert.ErrorIs(t, err, domain.ErrPromotionInapplicable)
		f.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Expired promo rejected before transaction", func(t *testing.T) {
		f := newBookingFixture(now)
		promo := &domain.Promotion{
			ID:            7,
			Code:          "OLD",
			DiscountType:  domain.DiscountTypePercentage,
			DiscountValue: 20,
			StartDate:     now.Add(-48 * time.Hour),
			EndDate:       now.Add(-time.Hour),
			IsActive:      true,
		}
		f.planRepo.On("GetByID", ctx, int32(3)).Return(activeDayPlan(), nil)
		f.promoRepo.On("GetByCode", ctx, "OLD").Return(promo, nil)

		_, err := f.svc.CreateBooking(ctx, 1, 2, 3, start, end, "OLD")
		assert.ErrorIs(t, err, domain.ErrPromotionInapplicable)
	})

	t.Run("Inactive plan", func(t *testing.T) {
		f := newBookingFixture(now)
		plan := activeDayPlan()
		plan.IsActive = false
		f.planRepo.On("GetByID", ctx, int32(3)).Return(plan, nil)

		_, err := f.svc.CreateBooking(ctx, 1, 2, 3, start, end, "")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Car not available", func(t *testing.T) {
		f := newBookingFixture(now)
		car := availableCar()
		car.Status = domain.CarStatusMaintenance
		f.planRepo.On("GetByID", ctx, int32(3)).Return(activeDayPlan(), nil)
		f.carRepo.On("GetForUpdate", ctx, mock.Anything, int32(2)).Return(car, nil)

		_, err := f.svc.CreateBooking(ctx, 1, 2, 3, start, end, "")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Duration below plan minimum", func(t *testing.T) {
		f := newBookingFixture(now)
		plan := activeDayPlan()
		plan.MinDurationUnits = 2
		f.planRepo.On("GetByID", ctx, int32(3)).Return(plan, nil)

		_, err := f.svc.CreateBooking(ctx, 1, 2, 3, start, end, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("End before start", func(t *testing.T) {
		f := newBookingFixture(now)
		_, err := f.svc.CreateBooking(ctx, 1, 2, 3, end, start, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestBookingService_ConfirmBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Success marks car rented and notifies", func(t *testing.T) {
		f := newBookingFixture(now)
		pending := &domain.Booking{ID: 5, UserID: 1, CarID: 2, Status: domain.BookingStatusPending}
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(pending, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(pending, nil)
		f.carRepo.On("GetForUpdate", ctx, mock.Anything, int32(2)).Return(availableCar(), nil)
		f.carRepo.On("Update", ctx, mock.Anything, mock.MatchedBy(func(c *domain.Car) bool {
			return c.Status == domain.CarStatusRented
		})).Return(nil)
		f.bookingRepo.On("Update", ctx, mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		f.userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "renter@test.com", Name: "Renter"}, nil)
		f.carRepo.On("GetByID", ctx, int32(2)).Return(availableCar(), nil)
		f.emailSvc.On("SendBookingConfirmation", ctx, "renter@test.com", "Renter", mock.Anything, mock.Anything).Return(nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		b, err := f.svc.ConfirmBooking(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
		f.emailSvc.AssertNumberOfCalls(t, "SendBookingConfirmation", 1)
	})

	t.Run("Already confirmed", func(t *testing.T) {
		f := newBookingFixture(now)
		confirmed := &domain.Booking{ID: 5, UserID: 1, CarID: 2, Status: domain.BookingStatusConfirmed}
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(confirmed, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(confirmed, nil)

		_, err := f.svc.ConfirmBooking(ctx, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestBookingService_StartBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f := newBookingFixture(now)
	confirmed := &domain.Booking{ID: 5, UserID: 1, CarID: 2, Status: domain.BookingStatusConfirmed}
	f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(confirmed, nil)
	f.bookingRepo.On("Update", ctx, mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	b, err := f.svc.StartBooking(ctx, 5)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusActive, b.Status)
}

func TestBookingService_ExtendBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	oldEnd := now.Add(24 * time.Hour)
	newEnd := oldEnd.Add(24 * time.Hour)

	t.Run("Success prices the delta", func(t *testing.T) {
		f := newBookingFixture(now)
		active := &domain.Booking{
			ID: 5, UserID: 1, CarID: 2, RentalPlanID: 3,
			StartDate:      now,
			EndDate:        oldEnd,
			Status:         domain.BookingStatusActive,
			TotalCostCents: 7000,
		}
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(active, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(active, nil)
		f.bookingRepo.On("CountOverlapping", ctx, mock.Anything, int32(2), oldEnd, newEnd, int32(5)).Return(int32(0), nil)
		f.planRepo.On("GetByID", ctx, int32(3)).Return(activeDayPlan(), nil)
		f.carRepo.On("GetForUpdate", ctx, mock.Anything, int32(2)).Return(availableCar(), nil)
		f.bookingRepo.On("Update", ctx, mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

		b, err := f.svc.ExtendBooking(ctx, 1, 5, newEnd)
		assert.NoError(t, err)
		assert.Equal(t, newEnd, b.EndDate)
		assert.Equal(t, int64(14000), b.TotalCostCents) // 7000 + (1000 + 6000)
	})

	t.Run("Delta interval occupied", func(t *testing.T) {
		f := newBookingFixture(now)
		active := &domain.Booking{
			ID: 5, UserID: 1, CarID: 2, RentalPlanID: 3,
			EndDate: oldEnd,
			Status:  domain.BookingStatusActive,
		}
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(active, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(active, nil)
		f.bookingRepo.On("CountOverlapping", ctx, mock.Anything, int32(2), oldEnd, newEnd, int32(5)).Return(int32(1), nil)

		_, err := f.svc.ExtendBooking(ctx, 1, 5, newEnd)
		assert.ErrorIs(t, err, domain.ErrScheduleConflict)
	})

	t.Run("New end not after current end", func(t *testing.T) {
		f := newBookingFixture(now)
		active := &domain.Booking{ID: 5, UserID: 1, CarID: 2, EndDate: oldEnd, Status: domain.BookingStatusActive}
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(active, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(active, nil)

		_, err := f.svc.ExtendBooking(ctx, 1, 5, oldEnd)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Other user's booking", func(t *testing.T) {
		f := newBookingFixture(now)
		active := &domain.Booking{ID: 5, UserID: 2, CarID: 2, EndDate: oldEnd, Status: domain.BookingStatusActive}
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(active, nil)

		_, err := f.svc.ExtendBooking(ctx, 1, 5, newEnd)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestBookingService_CompleteBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("Success releases car and advances mileage", func(t *testing.T) {
		f := newBookingFixture(now)
		active := &domain.Booking{
			ID: 5, UserID: 1, CarID: 2,
			Status:         domain.BookingStatusActive,
			InitialMileage: 42000,
		}
		car := availableCar()
		car.Status = domain.CarStatusRented
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(active, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(active, nil)
		f.bookingRepo.On("Update", ctx, mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		f.carRepo.On("GetForUpdate", ctx, mock.Anything, int32(2)).Return(car, nil)
		f.carRepo.On("Update", ctx, mock.Anything, mock.MatchedBy(func(c *domain.Car) bool {
			return c.Status == domain.CarStatusAvailable && c.Mileage == 42350
		})).Return(nil)

		b, err := f.svc.CompleteBooking(ctx, 1, 5, 42350)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, b.Status)
		assert.Equal(t, now, b.EndDate)
		assert.Equal(t, int64(42350), *b.FinalMileage)
	})

	t.Run("Final mileage equal to initial accepted", func(t *testing.T) {
		f := newBookingFixture(now)
		active := &domain.Booking{
			ID: 5, UserID: 1, CarID: 2,
			Status:         domain.BookingStatusActive,
			InitialMileage: 42000,
		}
		car := availableCar()
		car.Status = domain.CarStatusRented
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(active, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(active, nil)
		f.bookingRepo.On("Update", ctx, mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		f.carRepo.On("GetForUpdate", ctx, mock.Anything, int32(2)).Return(car, nil)
		f.carRepo.On("Update", ctx, mock.Anything, mock.MatchedBy(func(c *domain.Car) bool {
			return c.Status == domain.CarStatusAvailable && c.Mileage == 42000
		})).Return(nil)

		b, err := f.svc.CompleteBooking(ctx, 1, 5, 42000)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, b.Status)
		assert.Equal(t, int64(42000), *b.FinalMileage)
	})

	t.Run("Final mileage below initial", func(t *testing.T) {
		f := newBookingFixture(now)
		active := &domain.Booking{
			ID: 5, UserID: 1, CarID: 2,
			Status:         domain.BookingStatusActive,
			InitialMileage: 42000,
		}
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(active, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(active, nil)

		_, err := f.svc.CompleteBooking(ctx, 1, 5, 41000)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Not active", func(t *testing.T) {
		f := newBookingFixture(now)
		pending := &domain.Booking{ID: 5, UserID: 1, CarID: 2, Status: domain.BookingStatusPending}
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(pending, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(pending, nil)

		_, err := f.svc.CompleteBooking(ctx, 1, 5, 42350)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestBookingService_CancelBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Pending with promo releases the use", func(t *testing.T) {
		f := newBookingFixture(now)
		promoID := int32(7)
		pending := &domain.Booking{
			ID: 5, UserID: 1, CarID: 2,
			Status:      domain.BookingStatusPending,
			PromoCodeID: &promoID,
		}
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(pending, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(pending, nil)
		f.bookingRepo.On("Update", ctx, mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		f.promoRepo.On("DecrementUses", ctx, mock.Anything, int32(7)).Return(nil)
		f.userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "renter@test.com", Name: "Renter"}, nil)
		f.emailSvc.On("SendBookingCancellation", ctx, "renter@test.com", "Renter", mock.Anything, "changed plans").Return(nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		b, err := f.svc.CancelBooking(ctx, 1, 5, "changed plans")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, b.Status)
		assert.Equal(t, "changed plans", b.CancelReason)
		f.promoRepo.AssertNumberOfCalls(t, "DecrementUses", 1)
		f.carRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Confirmed releases the car", func(t *testing.T) {
		f := newBookingFixture(now)
		confirmed := &domain.Booking{ID: 5, UserID: 1, CarID: 2, Status: domain.BookingStatusConfirmed}
		car := availableCar()
		car.Status = domain.CarStatusRented
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(confirmed, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(confirmed, nil)
		f.bookingRepo.On("Update", ctx, mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		f.carRepo.On("GetForUpdate", ctx, mock.Anything, int32(2)).Return(car, nil)
		f.carRepo.On("Update", ctx, mock.Anything, mock.MatchedBy(func(c *domain.Car) bool {
			return c.Status == domain.CarStatusAvailable
		})).Return(nil)
		f.userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "renter@test.com", Name: "Renter"}, nil)
		f.emailSvc.On("SendBookingCancellation", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		b, err := f.svc.CancelBooking(ctx, 1, 5, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, b.Status)
		f.carRepo.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("Active cannot cancel", func(t *testing.T) {
		f := newBookingFixture(now)
		active := &domain.Booking{ID: 5, UserID: 1, CarID: 2, Status: domain.BookingStatusActive}
		f.bookingRepo.On("GetByID", ctx, int32(5)).Return(active, nil)
		f.bookingRepo.On("GetForUpdate", ctx, mock.Anything, int32(5)).Return(active, nil)

		_, err := f.svc.CancelBooking(ctx, 1, 5, "")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestBookingService_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	start := now
	end := now.Add(24 * time.Hour)

	t.Run("Free interval", func(t *testing.T) {
		f := newBookingFixture(now)
		f.bookingRepo.On("CountOverlapping", ctx, mock.Anything, int32(2), start, end, int32(0)).Return(int32(0), nil)
		ok, err := f.svc.CheckAvailability(ctx, 2, start, end)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Occupied interval", func(t *testing.T) {
		f := newBookingFixture(now)
		f.bookingRepo.On("CountOverlapping", ctx, mock.Anything, int32(2), start, end, int32(0)).Return(int32(2), nil)
		ok, err := f.svc.CheckAvailability(ctx, 2, start, end)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Invalid interval", func(t *testing.T) {
		f := newBookingFixture(now)
		_, err := f.svc.CheckAvailability(ctx, 2, end, start)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
