package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/dto"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/geo"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/service"
)

// GeoHandler - геопоиск команд и геоназначение заявок.
type GeoHandler struct {
	AssignmentService *service.AssignmentService
	ReportService     *service.ReportService
}

// NewGeoHandler возвращает новый GeoHandler.
func NewGeoHandler(assignmentService *service.AssignmentService, reportService *service.ReportService) *GeoHandler {
	return &GeoHandler{AssignmentService: assignmentService, ReportService: reportService}
}

// NearbyTeams обрабатывает GET /geospatial/nearest-team
// Read-only top-K без побочных эффектов, K зажат в [1,5].
func (g *GeoHandler) NearbyTeams(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "lat and lng are required")
		return
	}

	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	cands, appErr := g.AssignmentService.NearbyTeams(r.Context(), geo.Point{Lat: lat, Lng: lng}, limit)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"teams": dto.FromCandidates(cands),
	})
}

// AssignNearest обрабатывает POST /geospatial/nearest-team
// Мутирующий режим: назначает заявке ближайшую команду по переданной точке.
func (g *GeoHandler) AssignNearest(w http.ResponseWriter, r *http.Request) {
	var req dto.NearestTeamRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	if req.ReportID == "" {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "reportId is required")
		return
	}

	report, appErr := g.ReportService.Get(r.Context(), req.ReportID)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	point := geo.Point{Lat: req.Latitude, Lng: req.Longitude}
	assigned, sel, appErr := g.AssignmentService.AssignSubmitted(r.Context(), report.ID, point, report.WardNumber)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromSelection(assigned, sel))
}
