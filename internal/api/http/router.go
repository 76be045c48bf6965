package http

import (
	"net/http"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/security"
	"carshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type RouterDeps struct {
	TokenManager security.TokenManager
	AuthSvc      service.AuthService
	CarSvc       service.CarService
	PlanSvc      service.RentalPlanService
	PromoSvc     service.PromotionService
	BookingSvc   service.BookingService
	PaymentSvc   service.PaymentService
	ReviewSvc    service.ReviewService
	NoteSvc      service.NotificationService
}

// NewRouter wires all handlers under /api/v1. Three tiers: public
// (auth, catalog reads, the payment callback), authenticated, and
// staff-only fleet administration.
func NewRouter(deps RouterDeps) *mux.Router {
	authHandler := NewAuthHandler(deps.AuthSvc)
	carHandler := NewCarHandler(deps.CarSvc, deps.ReviewSvc)
	planHandler := NewPlanHandler(deps.PlanSvc)
	promoHandler := NewPromotionHandler(deps.PromoSvc)
	bookingHandler := NewBookingHandler(deps.BookingSvc)
	paymentHandler := NewPaymentHandler(deps.PaymentSvc)
	noteHandler := NewNotificationHandler(deps.NoteSvc)

	r := mux.NewRouter()
	r.Use(recovery, requestLogging)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Public.
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-email", authHandler.VerifyEmail).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset/request", authHandler.RequestPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset", authHandler.ResetPassword).Methods(http.MethodPost)

	api.HandleFunc("/cars", carHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}", carHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}/availability", bookingHandler.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}/reviews", carHandler.ListReviews).Methods(http.MethodGet)
	api.HandleFunc("/plans", planHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/promotions/validate", promoHandler.Validate).Methods(http.MethodGet)

	// Payment provider callback. Authenticated by the provider's
	// shared-secret transaction ids rather than user JWTs.
	api.HandleFunc("/payments/events", paymentHandler.HandleEvent).Methods(http.MethodPost)

	// Authenticated.
	user := api.NewRoute().Subrouter()
	user.Use(authMiddleware(deps.TokenManager))
	user.HandleFunc("/bookings/quote", bookingHandler.Quote).Methods(http.MethodPost)
	user.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	user.HandleFunc("/bookings", bookingHandler.List).Methods(http.MethodGet)
	user.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)
	user.HandleFunc("/bookings/{id:[0-9]+}/extend", bookingHandler.Extend).Methods(http.MethodPost)
	user.HandleFunc("/bookings/{id:[0-9]+}/complete", bookingHandler.Complete).Methods(http.MethodPost)
	user.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)
	user.HandleFunc("/bookings/{id:[0-9]+}/payments", paymentHandler.ListForBooking).Methods(http.MethodGet)
	user.HandleFunc("/cars/{id:[0-9]+}/reviews", carHandler.CreateReview).Methods(http.MethodPost)
	user.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	user.HandleFunc("/notifications/{id:[0-9]+}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	// Staff.
	staff := api.NewRoute().Subrouter()
	staff.Use(authMiddleware(deps.TokenManager), requireRole(domain.UserRoleManager))
	staff.HandleFunc("/cars", carHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("/cars/{id:[0-9]+}", carHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/cars/{id:[0-9]+}", carHandler.Delete).Methods(http.MethodDelete)
	staff.HandleFunc("/plans", planHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("/plans/{id:[0-9]+}", planHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/plans/{id:[0-9]+}", planHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/promotions", promoHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("/promotions", promoHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/promotions/{id:[0-9]+}", promoHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/promotions/{id:[0-9]+}", promoHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/bookings/{id:[0-9]+}/confirm", bookingHandler.Confirm).Methods(http.MethodPost)
	staff.HandleFunc("/bookings/{id:[0-9]+}/start", bookingHandler.Start).Methods(http.MethodPost)
	staff.HandleFunc("/payments/{id:[0-9]+}", paymentHandler.Get).Methods(http.MethodGet)

	return r
}
