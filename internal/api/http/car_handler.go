package http

import (
	"net/http"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/service"
)

type CarHandler struct {
	carSvc    service.CarService
	reviewSvc service.ReviewService
}

func NewCarHandler(carSvc service.CarService, reviewSvc service.ReviewService) *CarHandler {
	return &CarHandler{carSvc: carSvc, reviewSvc: reviewSvc}
}

type carRequest struct {
	Brand              string `json:"brand" validate:"required"`
	Model              string `json:"model" validate:"required"`
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Year               int32  `json:"year" validate:"omitempty,gte=1950"`
	MinuteRateCents    int32  `json:"minute_rate_cents" validate:"gte=0"`
	HourlyRateCents    int32  `json:"hourly_rate_cents" validate:"gte=0"`
	DailyRateCents     int32  `json:"daily_rate_cents" validate:"gte=0"`
	Status             string `json:"status" validate:"omitempty,oneof=AVAILABLE MAINTENANCE"`
	Mileage            int64  `json:"mileage" validate:"gte=0"`
}

func (req *carRequest) toDomain() *domain.Car {
	return &domain.Car{
		Brand:              req.Brand,
		Model:              req.Model,
		RegistrationNumber: req.RegistrationNumber,
		Year:               req.Year,
		MinuteRateCents:    req.MinuteRateCents,
		HourlyRateCents:    req.HourlyRateCents,
		DailyRateCents:     req.DailyRateCents,
		Status:             domain.CarStatus(req.Status),
		Mileage:            req.Mileage,
	}
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	car := req.toDomain()
	if err := h.carSvc.AddCar(r.Context(), car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid car id"})
		return
	}
	car, err := h.carSvc.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid car id"})
		return
	}
	var req carRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	car := req.toDomain()
	car.ID = id
	if err := h.carSvc.UpdateCar(r.Context(), car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid car id"})
		return
	}
	if err := h.carSvc.DeleteCar(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := queryPage(r)
	cars, total, err := h.carSvc.ListCars(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePaginated(w, cars, total, page, pageSize)
}

type reviewRequest struct {
	Rating  int32  `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (h *CarHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid car id"})
		return
	}
	var req reviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	claims := ClaimsFromContext(r.Context())
	review, err := h.reviewSvc.CreateReview(r.Context(), claims.UserID, carID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *CarHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid car id"})
		return
	}
	page, pageSize := queryPage(r)
	reviews, total, err := h.reviewSvc.ListCarReviews(r.Context(), carID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePaginated(w, reviews, total, page, pageSize)
}
