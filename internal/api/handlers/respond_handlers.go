package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/dto"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// InvalidType - тип ошибок запроса.
type InvalidType string

// InvalidRequest - некорректный запрос.
const InvalidRequest InvalidType = "INVALID_REQUEST"

// Границы пагинации списков.
const (
	defaultPageLimit = 20
	// maxPageLimit - серверный потолок размера страницы;
	// больший limit зажимается, а не отклоняется.
	maxPageLimit = 100
)

// respondJSON отправляет JSON-ответ с заданным статусом.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

// respondError отправляет ошибку в формате ErrorResponse.
func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
		},
	}); err != nil {
		log.Printf("failed to encode error response: %v", err)
	}
}

// respondAppError маппит *apperrors.AppError в HTTP-ответ.
func respondAppError(w http.ResponseWriter, err *apperrors.AppError) {
	status := err.HTTPStatus()
	respondError(w, status, string(err.Code), err.Message)
}

// parsePage читает limit/offset из query и зажимает limit в [1,100].
func parsePage(r *http.Request) storage.Page {
	page := storage.Page{Limit: defaultPageLimit}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page.Limit = v
		}
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			page.Offset = v
		}
	}

	return page
}
