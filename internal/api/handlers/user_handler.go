package handlers

import (
	"net/http"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/dto"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/middleware"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/service"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// UserHandler - профиль и личные данные пользователя.
type UserHandler struct {
	UserService   *service.UserService
	ReportService *service.ReportService
}

// NewUserHandler возвращает новый UserHandler.
func NewUserHandler(userService *service.UserService, reportService *service.ReportService) *UserHandler {
	return &UserHandler{UserService: userService, ReportService: reportService}
}

// Me обрабатывает GET /users/me
func (u *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		respondAppError(w, apperrors.New(apperrors.ErrUnauthorized))
		return
	}

	user, appErr := u.UserService.Profile(r.Context(), session)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user": dto.FromStorageUser(user),
	})
}

// MyReports обрабатывает GET /users/me/reports
func (u *UserHandler) MyReports(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		respondAppError(w, apperrors.New(apperrors.ErrUnauthorized))
		return
	}

	reports, appErr := u.ReportService.List(r.Context(),
		storage.ReportFilters{UserID: session.UserID}, parsePage(r))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reports": dto.FromStorageReportList(reports),
	})
}

// MyContributions обрабатывает GET /users/me/contributions
func (u *UserHandler) MyContributions(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		respondAppError(w, apperrors.New(apperrors.ErrUnauthorized))
		return
	}

	contribs, appErr := u.UserService.Contributions(r.Context(), session, parsePage(r))
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"contributions": dto.FromStorageContributions(contribs),
	})
}
