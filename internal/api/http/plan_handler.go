package http

import (
	"net/http"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/service"
)

type PlanHandler struct {
	planSvc service.RentalPlanService
}

func NewPlanHandler(planSvc service.RentalPlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

type planRequest struct {
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description"`
	DurationType     string `json:"duration_type" validate:"required,oneof=minute hour day week month"`
	BasePriceCents   int64  `json:"base_price_cents" validate:"gte=0"`
	MinDurationUnits int32  `json:"min_duration_units" validate:"gte=0"`
	MaxDurationUnits int32  `json:"max_duration_units" validate:"gte=0"`
	DiscountPercent  int32  `json:"discount_percent" validate:"gte=0,lte=100"`
	IsActive         bool   `json:"is_active"`
}

func (req *planRequest) toDomain() *domain.RentalPlan {
	return &domain.RentalPlan{
		Name:             req.Name,
		Description:      req.Description,
		DurationType:     domain.PlanDurationType(req.DurationType),
		BasePriceCents:   req.BasePriceCents,
		MinDurationUnits: req.MinDurationUnits,
		MaxDurationUnits: req.MaxDurationUnits,
		DiscountPercent:  req.DiscountPercent,
		IsActive:         req.IsActive,
	}
}

func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	plan := req.toDomain()
	if err := h.planSvc.CreatePlan(r.Context(), plan); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid plan id"})
		return
	}
	plan, err := h.planSvc.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid plan id"})
		return
	}
	var req planRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	plan := req.toDomain()
	plan.ID = id
	if err := h.planSvc.UpdatePlan(r.Context(), plan); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	plans, err := h.planSvc.ListPlans(r.Context(), activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}
