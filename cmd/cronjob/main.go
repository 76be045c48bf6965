package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"carshare-backend/internal/config"
	"carshare-backend/internal/jobs"
	"carshare-backend/internal/logger"
	"carshare-backend/internal/repository/postgres"
	"carshare-backend/internal/scheduler"
	"carshare-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expire-pending-bookings', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Carshare Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services. The cleanup jobs cancel through the booking
	// service so the full release semantics apply.
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	bookingSvc := service.NewBookingService(
		store,
		store.BookingRepository,
		store.CarRepository,
		store.RentalPlanRepository,
		store.PromotionRepository,
		store.PaymentRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, bookingSvc, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cronScheduler.Stop()

	// Give in-flight jobs a moment to wrap up their logging
	time.Sleep(100 * time.Millisecond)
	logger.Info("Cronjob runner stopped")
}

func runJobOnce(jr *jobs.JobRunner, name string) {
	switch name {
	case "expire-pending-bookings":
		jr.ExpirePendingBookings()
	case "deactivate-promotions":
		jr.DeactivateEndedPromotions()
	case "purge-expired-tokens":
		jr.PurgeExpiredAuthTokens()
	case "all":
		jr.RunAllJobs()
	default:
		logger.Error("Unknown job name", "job", name)
		os.Exit(1)
	}
}
