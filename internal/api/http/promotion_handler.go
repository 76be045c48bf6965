package http

import (
	"net/http"
	"time"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/service"
)

type PromotionHandler struct {
	promoSvc service.PromotionService
}

func NewPromotionHandler(promoSvc service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promoSvc: promoSvc}
}

type promotionRequest struct {
	Code          string `json:"code" validate:"required"`
	Description   string `json:"description"`
	DiscountType  string `json:"discount_type" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	DiscountValue int64  `json:"discount_value" validate:"gte=0"`
	StartDate     string `json:"start_date" validate:"required"`
	EndDate       string `json:"end_date" validate:"required"`
	IsActive      bool   `json:"is_active"`
	MaxUses       *int32 `json:"max_uses" validate:"omitempty,gt=0"`
}

func (req *promotionRequest) toDomain(w http.ResponseWriter) (*domain.Promotion, bool) {
	start, err := parseRFC3339(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "start_date must be RFC 3339"})
		return nil, false
	}
	end, err := parseRFC3339(req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "end_date must be RFC 3339"})
		return nil, false
	}
	return &domain.Promotion{
		Code:          req.Code,
		Description:   req.Description,
		DiscountType:  domain.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		StartDate:     start,
		EndDate:       end,
		IsActive:      req.IsActive,
		MaxUses:       req.MaxUses,
	}, true
}

func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req promotionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	promo, ok := req.toDomain(w)
	if !ok {
		return
	}
	if err := h.promoSvc.CreatePromotion(r.Context(), promo); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, promo)
}

func (h *PromotionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid promotion id"})
		return
	}
	promo, err := h.promoSvc.GetPromotion(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promo)
}

func (h *PromotionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid promotion id"})
		return
	}
	var req promotionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	promo, ok := req.toDomain(w)
	if !ok {
		return
	}
	promo.ID = id
	if err := h.promoSvc.UpdatePromotion(r.Context(), promo); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promo)
}

func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := queryPage(r)
	promos, total, err := h.promoSvc.ListPromotions(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePaginated(w, promos, total, page, pageSize)
}

// Validate answers whether a code is currently applicable without
// reserving a use.
func (h *PromotionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	promo, err := h.promoSvc.TryApply(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"code":           promo.Code,
		"discount_type":  promo.DiscountType,
		"discount_value": promo.DiscountValue,
		"valid_until":    promo.EndDate.Format(time.RFC3339),
	})
}
