package http

import (
	"net/http"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

type paymentEventRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=COMPLETED FAILED CANCELLED REFUNDED"`
	AmountCents   int64  `json:"amount_cents" validate:"gte=0"`
}

// HandleEvent is the payment provider's callback. It is idempotent, so
// providers that retry deliveries always get a 200 for a status the
// payment already reached.
func (h *PaymentHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var req paymentEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	err := h.paymentSvc.HandlePaymentEvent(r.Context(), req.TransactionID, domain.PaymentStatus(req.Status), req.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid payment id"})
		return
	}
	payment, err := h.paymentSvc.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) ListForBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid booking id"})
		return
	}
	payments, err := h.paymentSvc.ListBookingPayments(r.Context(), bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
