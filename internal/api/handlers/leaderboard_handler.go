package handlers

import (
	"net/http"
	"strconv"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/dto"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/service"
)

const defaultLeaderboardLimit = 10

// LeaderboardHandler - публичный рейтинг граждан по баллам.
type LeaderboardHandler struct {
	LeaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler возвращает новый LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{LeaderboardService: leaderboardService}
}

// Top обрабатывает GET /leaderboard
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, string(InvalidRequest), "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	entries, appErr := h.LeaderboardService.Top(r.Context(), limit)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"leaderboard": dto.FromLeaderboard(entries),
	})
}
