package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/dto"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/middleware"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/service"
)

// DriveHandler - субботники: создание, список, запись участников, начисление баллов.
type DriveHandler struct {
	DriveService *service.DriveService
}

// NewDriveHandler возвращает новый DriveHandler.
func NewDriveHandler(driveService *service.DriveService) *DriveHandler {
	return &DriveHandler{DriveService: driveService}
}

// CreateOrganization обрабатывает POST /admin/organizations
func (h *DriveHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrganizationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	org, appErr := h.DriveService.CreateOrganization(r.Context(), req.Name, req.ContactEmail)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"organization": dto.FromStorageOrganization(org),
	})
}

// Create обрабатывает POST /drives
func (h *DriveHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session")
		return
	}

	var req dto.CreateDriveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "scheduled_at must be RFC3339")
		return
	}

	drive, appErr := h.DriveService.Create(r.Context(), session, service.NewDriveInput{
		ScheduledAt:    scheduledAt,
		OrganizationID: req.OrganizationID,
		Title:          req.Title,
		Description:    req.Description,
		Address:        req.Location.Address,
		Lat:            req.Location.Lat,
		Lng:            req.Location.Lng,
	})
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"drive": dto.FromStorageDrive(drive),
	})
}

// Get обрабатывает GET /drives/{id}
func (h *DriveHandler) Get(w http.ResponseWriter, r *http.Request) {
	drive, appErr := h.DriveService.Get(r.Context(), r.PathValue("id"))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"drive": dto.FromStorageDrive(drive),
	})
}

// List обрабатывает GET /drives
func (h *DriveHandler) List(w http.ResponseWriter, r *http.Request) {
	drives, appErr := h.DriveService.List(r.Context(), parsePage(r))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"drives": dto.FromStorageDriveList(drives),
	})
}

// Register обрабатывает POST /drives/{id}/register
func (h *DriveHandler) Register(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session")
		return
	}

	if appErr := h.DriveService.Register(r.Context(), session, r.PathValue("id")); appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"registered": true,
	})
}

// AwardContribution обрабатывает POST /admin/drives/{id}/contributions
func (h *DriveHandler) AwardContribution(w http.ResponseWriter, r *http.Request) {
	var req dto.DriveContributionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	if appErr := h.DriveService.AwardContribution(r.Context(), r.PathValue("id"), req.UserID, req.Points); appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"awarded": req.Points,
	})
}
