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

// ReportHandler - HTTP-запросы, связанные с заявками.
type ReportHandler struct {
	ReportService *service.ReportService
}

// NewReportHandler возвращает новый ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{ReportService: reportService}
}

// Create обрабатывает POST /reports
// Заявка создаётся от имени сессии; сбой автоназначения или уведомления
// не отменяет 201.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		respondAppError(w, apperrors.New(apperrors.ErrUnauthorized))
		return
	}

	var req dto.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	if req.WasteType == "" || req.Location.Address == "" {
		respondError(w, http.StatusBadRequest, string(InvalidRequest),
			"wasteType and location.address are required")
		return
	}

	if _, ok := storage.ParseSeverity(req.Severity); !ok {
		respondError(w, http.StatusBadRequest, string(InvalidRequest),
			"severity must be one of low, medium, high, critical")
		return
	}

	report, appErr := h.ReportService.Create(r.Context(), req.ToNewReportInput(session.UserID))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"report": dto.FromStorageReport(report),
	})
}

// List обрабатывает GET /reports
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := storage.ReportFilters{
		WasteType: r.URL.Query().Get("waste_type"),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := storage.ParseReportStatus(raw)
		if !ok {
			respondError(w, http.StatusBadRequest, string(InvalidRequest), "unknown status filter")
			return
		}
		filters.Status = status
	}

	reports, appErr := h.ReportService.List(r.Context(), filters, parsePage(r))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reports": dto.FromStorageReportList(reports),
	})
}

// Get обрабатывает GET /reports/{id}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, appErr := h.ReportService.Get(r.Context(), r.PathValue("id"))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"report": dto.FromStorageReport(report),
	})
}
