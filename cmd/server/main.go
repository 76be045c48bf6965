package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "carshare-backend/internal/api/http"
	"carshare-backend/internal/config"
	"carshare-backend/internal/logger"
	"carshare-backend/internal/repository/postgres"
	"carshare-backend/internal/security"
	"carshare-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Carshare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	authSvc := service.NewAuthService(
		store.UserRepository,
		store.AuthTokenRepository,
		tokenManager,
		emailSvc,
		time.Duration(cfg.Booking.AuthTokenTTLMinutes)*time.Minute,
	)
	carSvc := service.NewCarService(store, store.CarRepository)
	planSvc := service.NewRentalPlanService(store.RentalPlanRepository)
	promoSvc := service.NewPromotionService(store.PromotionRepository)
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
	paymentSvc := service.NewPaymentService(store, store.PaymentRepository, bookingSvc)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.BookingRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize Router
	router := httpapi.NewRouter(httpapi.RouterDeps{
		TokenManager: tokenManager,
		AuthSvc:      authSvc,
		CarSvc:       carSvc,
		PlanSvc:      planSvc,
		PromoSvc:     promoSvc,
		BookingSvc:   bookingSvc,
		PaymentSvc:   paymentSvc,
		ReviewSvc:    reviewSvc,
		NoteSvc:      noteSvc,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal, then drain in-flight requests
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
