// Package router регистрирует HTTP-маршруты и возвращает http.Handler.
package router

import (
	"net/http"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/handlers"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/middleware"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// NewRouter создаёт HTTP router с зарегистрированными маршрутами.
func NewRouter(
	authMW *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	reportHandler *handlers.ReportHandler,
	geoHandler *handlers.GeoHandler,
	workerHandler *handlers.WorkerHandler,
	adminHandler *handlers.AdminHandler,
	driveHandler *handlers.DriveHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	uploadHandler *handlers.UploadHandler,
) http.Handler {

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	mux.HandleFunc("GET /users/me", authMW.Require(userHandler.Me))
	mux.HandleFunc("GET /users/me/reports", authMW.Require(userHandler.MyReports))
	mux.HandleFunc("GET /users/me/contributions", authMW.Require(userHandler.MyContributions))

	mux.HandleFunc("POST /reports", authMW.RequireRole(storage.RoleCitizen, reportHandler.Create))
	mux.HandleFunc("GET /reports", authMW.Require(reportHandler.List))
	mux.HandleFunc("GET /reports/{id}", authMW.Require(reportHandler.Get))

	mux.HandleFunc("GET /geospatial/nearest-team", authMW.Require(geoHandler.NearbyTeams))
	mux.HandleFunc("POST /geospatial/nearest-team", authMW.Require(geoHandler.AssignNearest))

	mux.HandleFunc("GET /worker/tasks", authMW.RequireRole(storage.RoleWorker, workerHandler.Tasks))
	mux.HandleFunc("PATCH /worker/tasks/{id}/status", authMW.RequireRole(storage.RoleWorker, workerHandler.UpdateStatus))

	mux.HandleFunc("POST /admin/teams", authMW.RequireRole(storage.RoleSuperAdmin, adminHandler.CreateTeam))
	mux.HandleFunc("GET /admin/teams", authMW.RequireRole(storage.RoleSuperAdmin, adminHandler.ListTeams))
	mux.HandleFunc("PATCH /admin/teams/{id}/status", authMW.RequireRole(storage.RoleSuperAdmin, adminHandler.SetTeamStatus))
	mux.HandleFunc("POST /admin/reports/{id}/auto-assign", authMW.RequireRole(storage.RoleSuperAdmin, adminHandler.AutoAssign))
	mux.HandleFunc("POST /admin/reports/{id}/assign", authMW.RequireRole(storage.RoleSuperAdmin, adminHandler.ManualAssign))
	mux.HandleFunc("POST /admin/reports/{id}/reject", authMW.RequireRole(storage.RoleSuperAdmin, adminHandler.RejectReport))
	mux.HandleFunc("DELETE /admin/reports/{id}", authMW.RequireRole(storage.RoleSuperAdmin, adminHandler.DeleteReport))
	mux.HandleFunc("POST /admin/organizations", authMW.RequireRole(storage.RoleSuperAdmin, driveHandler.CreateOrganization))
	mux.HandleFunc("POST /admin/drives/{id}/contributions", authMW.RequireRole(storage.RoleSuperAdmin, driveHandler.AwardContribution))

	mux.HandleFunc("POST /drives", authMW.RequireRole(storage.RoleSuperAdmin, driveHandler.Create))
	mux.HandleFunc("GET /drives", driveHandler.List)
	mux.HandleFunc("GET /drives/{id}", driveHandler.Get)
	mux.HandleFunc("POST /drives/{id}/register", authMW.RequireRole(storage.RoleCitizen, driveHandler.Register))

	mux.HandleFunc("GET /teams/{id}", adminHandler.GetTeam)

	mux.HandleFunc("GET /leaderboard", leaderboardHandler.Top)

	mux.HandleFunc("POST /uploads/presign", authMW.Require(uploadHandler.Presign))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			http.Error(w, "failed to write response", http.StatusInternalServerError)
		}
	})

	return mux
}
