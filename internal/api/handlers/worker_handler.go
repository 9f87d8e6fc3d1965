package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/dto"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/middleware"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/service"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// WorkerHandler - очередь задач работника муниципальной команды.
type WorkerHandler struct {
	ReportService *service.ReportService
}

// NewWorkerHandler возвращает новый WorkerHandler.
func NewWorkerHandler(reportService *service.ReportService) *WorkerHandler {
	return &WorkerHandler{ReportService: reportService}
}

// Tasks обрабатывает GET /worker/tasks
// Очередь команды работника: priority_score DESC, created_at DESC.
func (h *WorkerHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		respondAppError(w, apperrors.New(apperrors.ErrUnauthorized))
		return
	}

	reports, appErr := h.ReportService.WorkerQueue(r.Context(), session, parsePage(r))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"tasks": dto.FromStorageReportList(reports),
	})
}

// UpdateStatus обрабатывает PATCH /worker/tasks/{id}/status
func (h *WorkerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		respondAppError(w, apperrors.New(apperrors.ErrUnauthorized))
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	status, valid := storage.ParseReportStatus(req.Status)
	if !valid {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "unknown status")
		return
	}

	report, appErr := h.ReportService.UpdateTaskStatus(r.Context(), session, r.PathValue("id"), status)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"report": dto.FromStorageReport(report),
	})
}
