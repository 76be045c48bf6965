package jobs

import (
	"context"
	"time"

	"carshare-backend/internal/logger"
)

// ExpirePendingBookings cancels bookings that sat in PENDING longer than
// the configured TTL without a payment settling them. Cancelling through
// the booking service releases promotion uses and keeps the state
// machine consistent.
func (jr *JobRunner) ExpirePendingBookings() {
	jr.runWithRecovery("ExpirePendingBookings", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Booking.PendingTTLMinutes) * time.Minute)

		stale, err := jr.store.ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending bookings", "error", err)
			return
		}

		count := 0
		for _, b := range stale {
			if _, err := jr.booking.CancelBooking(ctx, 0, b.ID, "payment not received in time"); err != nil {
				logger.Error("Failed to expire pending booking", "booking_id", b.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Expired stale pending bookings", "count", count, "cutoff", cutoff)
	})
}

// DeactivateEndedPromotions clears the active flag on promotions whose
// validity window has passed.
func (jr *JobRunner) DeactivateEndedPromotions() {
	jr.runWithRecovery("DeactivateEndedPromotions", func() {
		ctx := context.Background()
		n, err := jr.store.DeactivateEnded(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to deactivate ended promotions", "error", err)
			return
		}
		logger.Info("Deactivated ended promotions", "count", n)
	})
}

// PurgeExpiredAuthTokens removes verification and password-reset tokens
// that can no longer be consumed.
func (jr *JobRunner) PurgeExpiredAuthTokens() {
	jr.runWithRecovery("PurgeExpiredAuthTokens", func() {
		ctx := context.Background()
		n, err := jr.store.DeleteExpired(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to purge expired auth tokens", "error", err)
			return
		}
		logger.Info("Purged expired auth tokens", "count", n)
	})
}
