package service

import (
	"context"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/geo"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// TeamService - сервис для управления командами.
type TeamService struct {
	teamRepo storage.TeamRepository
}

// NewTeamService возвращает новый TeamService.
func NewTeamService(teamRepo storage.TeamRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

// CreateTeam создаёт новую команду с зоной обслуживания.
func (t *TeamService) CreateTeam(ctx context.Context, team storage.Team) (storage.Team, *apperrors.AppError) {
	if team.Name == "" {
		return storage.Team{}, apperrors.NewWithMessage(apperrors.ErrValidation, "team name is required")
	}
	if !(geo.Point{Lat: team.CenterLat, Lng: team.CenterLng}).Valid() {
		return storage.Team{}, apperrors.New(apperrors.ErrInvalidCoordinates)
	}
	if team.RadiusKm < 0 {
		return storage.Team{}, apperrors.NewWithMessage(apperrors.ErrValidation, "radius_km must be non-negative")
	}
	if team.Status == "" {
		team.Status = storage.TeamActive
	}

	return t.teamRepo.Create(ctx, team)
}

// GetTeam возвращает команду по id.
func (t *TeamService) GetTeam(ctx context.Context, teamID int) (storage.Team, *apperrors.AppError) {
	return t.teamRepo.Get(ctx, teamID)
}

// ListTeams возвращает команды с пагинацией.
func (t *TeamService) ListTeams(ctx context.Context, page storage.Page) ([]storage.Team, *apperrors.AppError) {
	return t.teamRepo.List(ctx, page)
}

// SetStatus переключает active/inactive. Неактивная команда
// исключается из кандидатов назначения, её заявки остаются за ней.
func (t *TeamService) SetStatus(ctx context.Context, teamID int, status storage.TeamStatus) (storage.Team, *apperrors.AppError) {
	if status != storage.TeamActive && status != storage.TeamInactive {
		return storage.Team{}, apperrors.NewWithMessage(apperrors.ErrValidation, "status must be active or inactive")
	}
	return t.teamRepo.SetStatus(ctx, teamID, status)
}
