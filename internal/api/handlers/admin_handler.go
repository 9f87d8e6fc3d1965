package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/dto"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/service"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// AdminHandler - консоль супер-админа: команды и ручное управление заявками.
// Роль вызывающего проверяет middleware на уровне маршрутов.
type AdminHandler struct {
	TeamService       *service.TeamService
	ReportService     *service.ReportService
	AssignmentService *service.AssignmentService
}

// NewAdminHandler возвращает новый AdminHandler.
func NewAdminHandler(
	teamService *service.TeamService,
	reportService *service.ReportService,
	assignmentService *service.AssignmentService,
) *AdminHandler {
	return &AdminHandler{
		TeamService:       teamService,
		ReportService:     reportService,
		AssignmentService: assignmentService,
	}
}

// CreateTeam обрабатывает POST /admin/teams
func (h *AdminHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTeamRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	team, appErr := h.TeamService.CreateTeam(r.Context(), req.ToStorageTeam())
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"team": dto.FromStorageTeam(team),
	})
}

// ListTeams обрабатывает GET /admin/teams
func (h *AdminHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, appErr := h.TeamService.ListTeams(r.Context(), parsePage(r))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"teams": dto.FromStorageTeamList(teams),
	})
}

// GetTeam обрабатывает GET /teams/{id}
// Публичная карточка команды.
func (h *AdminHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid team id")
		return
	}

	team, appErr := h.TeamService.GetTeam(r.Context(), teamID)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"team": dto.FromStorageTeam(team),
	})
}

// SetTeamStatus обрабатывает PATCH /admin/teams/{id}/status
func (h *AdminHandler) SetTeamStatus(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid team id")
		return
	}

	var req dto.SetTeamStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	team, appErr := h.TeamService.SetStatus(r.Context(), teamID, storage.TeamStatus(req.Status))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"team": dto.FromStorageTeam(team),
	})
}

// AutoAssign обрабатывает POST /admin/reports/{id}/auto-assign
// Повторный запуск геоназначения с переопределением по району.
func (h *AdminHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	report, sel, appErr := h.AssignmentService.AdminAutoAssign(r.Context(), r.PathValue("id"))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromSelection(report, sel))
}

// ManualAssign обрабатывает POST /admin/reports/{id}/assign
// Назначение конкретной команды без расчёта дистанции.
func (h *AdminHandler) ManualAssign(w http.ResponseWriter, r *http.Request) {
	var req dto.ManualAssignRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	report, appErr := h.AssignmentService.AdminManualAssign(r.Context(), r.PathValue("id"), req.TeamID)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"report": dto.FromStorageReport(report),
	})
}

// RejectReport обрабатывает POST /admin/reports/{id}/reject
func (h *AdminHandler) RejectReport(w http.ResponseWriter, r *http.Request) {
	report, appErr := h.ReportService.AdminReject(r.Context(), r.PathValue("id"))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"report": dto.FromStorageReport(report),
	})
}

// DeleteReport обрабатывает DELETE /admin/reports/{id}
func (h *AdminHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	if appErr := h.ReportService.AdminDelete(r.Context(), r.PathValue("id")); appErr != nil {
		respondAppError(w, appErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
