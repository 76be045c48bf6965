package http

import (
	"net/http"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type bookingRequest struct {
	CarID        int32  `json:"car_id" validate:"required,gt=0"`
	RentalPlanID int32  `json:"rental_plan_id" validate:"required,gt=0"`
	StartDate    string `json:"start_date" validate:"required"`
	EndDate      string `json:"end_date" validate:"required"`
	PromoCode    string `json:"promo_code"`
}

func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	start, err := parseRFC3339(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "start_date must be RFC 3339"})
		return
	}
	end, err := parseRFC3339(req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "end_date must be RFC 3339"})
		return
	}
	breakdown, err := h.bookingSvc.Quote(r.Context(), req.CarID, req.RentalPlanID, start, end, req.PromoCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid car id"})
		return
	}
	start, err := parseRFC3339(r.URL.Query().Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "start must be RFC 3339"})
		return
	}
	end, err := parseRFC3339(r.URL.Query().Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "end must be RFC 3339"})
		return
	}
	available, err := h.bookingSvc.CheckAvailability(r.Context(), carID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	start, err := parseRFC3339(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "start_date must be RFC 3339"})
		return
	}
	end, err := parseRFC3339(req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "end_date must be RFC 3339"})
		return
	}
	claims := ClaimsFromContext(r.Context())
	booking, err := h.bookingSvc.CreateBooking(r.Context(), claims.UserID, req.CarID, req.RentalPlanID, start, end, req.PromoCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid booking id"})
		return
	}
	booking, err := h.bookingSvc.GetBooking(r.Context(), h.callerScope(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	page, pageSize := queryPage(r)
	bookings, total, err := h.bookingSvc.ListBookings(r.Context(), claims.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePaginated(w, bookings, total, page, pageSize)
}

// Confirm and Start are staff transitions.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid booking id"})
		return
	}
	booking, err := h.bookingSvc.ConfirmBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid booking id"})
		return
	}
	booking, err := h.bookingSvc.StartBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type extendRequest struct {
	NewEndDate string `json:"new_end_date" validate:"required"`
}

func (h *BookingHandler) Extend(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid booking id"})
		return
	}
	var req extendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	newEnd, err := parseRFC3339(req.NewEndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "new_end_date must be RFC 3339"})
		return
	}
	booking, err := h.bookingSvc.ExtendBooking(r.Context(), h.callerScope(r), id, newEnd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type completeRequest struct {
	FinalMileage int64 `json:"final_mileage" validate:"gte=0"`
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid booking id"})
		return
	}
	var req completeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	booking, err := h.bookingSvc.CompleteBooking(r.Context(), h.callerScope(r), id, req.FinalMileage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid booking id"})
		return
	}
	var req cancelRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	booking, err := h.bookingSvc.CancelBooking(r.Context(), h.callerScope(r), id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// callerScope returns the user id that ownership checks run against.
// Managers and admins operate on any booking, signalled by zero.
func (h *BookingHandler) callerScope(r *http.Request) int32 {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		return 0
	}
	if claims.Role == domain.UserRoleManager || claims.Role == domain.UserRoleAdmin {
		return 0
	}
	return claims.UserID
}
