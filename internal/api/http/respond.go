package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/logger"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type paginatedResponse struct {
	Data     interface{} `json:"data"`
	Total    int32       `json:"total"`
	Page     int32       `json:"page"`
	PageSize int32       `json:"page_size"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writePaginated(w http.ResponseWriter, data interface{}, total, page, pageSize int32) {
	writeJSON(w, http.StatusOK, paginatedResponse{Data: data, Total: total, Page: page, PageSize: pageSize})
}

// writeError maps domain error kinds onto HTTP statuses. The wrapped
// message is returned verbatim; internal failures are masked.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "invalid_state", Message: err.Error()})
	case errors.Is(err, domain.ErrScheduleConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "schedule_conflict", Message: err.Error()})
	case errors.Is(err, domain.ErrPromotionInapplicable):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "promotion_inapplicable", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden", Message: err.Error()})
	default:
		logger.Error("Internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	}
}
