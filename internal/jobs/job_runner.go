package jobs

import (
	"database/sql"

	"carshare-backend/internal/config"
	"carshare-backend/internal/logger"
	"carshare-backend/internal/repository/postgres"
	"carshare-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db      *sql.DB
	store   *postgres.Store
	booking service.BookingService
	config  *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, booking service.BookingService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:      db,
		store:   store,
		booking: booking,
		config:  cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs runs every scheduled job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.ExpirePendingBookings()
	jr.DeactivateEndedPromotions()
	jr.PurgeExpiredAuthTokens()
}
