package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/assignment"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/geo"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/notify"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// AssignmentService - назначение заявок муниципальным командам по геолокации.
type AssignmentService struct {
	reportRepo storage.ReportRepository
	teamRepo   storage.TeamRepository
	notifier   notify.Notifier
	logger     *zap.Logger
}

// NewAssignmentService возвращает новый AssignmentService.
func NewAssignmentService(
	reportRepo storage.ReportRepository,
	teamRepo storage.TeamRepository,
	notifier notify.Notifier,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		reportRepo: reportRepo,
		teamRepo:   teamRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// selectTeam выбирает команду для точки с учётом переопределения по району.
func (a *AssignmentService) selectTeam(ctx context.Context, p geo.Point, wardNumber *int) (assignment.Selection, *apperrors.AppError) {
	teams, appErr := a.teamRepo.ListActive(ctx)
	if appErr != nil {
		return assignment.Selection{}, appErr
	}

	sel, err := assignment.Select(p, teams, wardNumber)
	if err != nil {
		switch {
		case errors.Is(err, assignment.ErrNoActiveTeams):
			return assignment.Selection{}, apperrors.New(apperrors.ErrNoActiveTeams)
		case errors.Is(err, assignment.ErrInvalidPoint):
			return assignment.Selection{}, apperrors.New(apperrors.ErrInvalidCoordinates)
		default:
			a.logger.Error("team selection failed", zap.Error(err))
			return assignment.Selection{}, apperrors.New(apperrors.ErrInternalIssue)
		}
	}

	if wardNumber != nil && !sel.MatchedByWard {
		a.logger.Warn("no active team serves ward, falling back to nearest",
			zap.Int("ward", *wardNumber),
			zap.Int("team_id", sel.Team.ID))
	}

	return sel, nil
}

// AssignSubmitted назначает команду заявке в статусе submitted (CAS).
// Возвращает ErrInvalidTransition, если заявка уже ушла из submitted.
func (a *AssignmentService) AssignSubmitted(ctx context.Context, reportID string, p geo.Point, wardNumber *int) (storage.Report, assignment.Selection, *apperrors.AppError) {
	sel, appErr := a.selectTeam(ctx, p, wardNumber)
	if appErr != nil {
		return storage.Report{}, assignment.Selection{}, appErr
	}

	applied, appErr := a.reportRepo.AssignIfSubmitted(ctx, reportID, storage.AssignmentUpdate{
		TeamID:         sel.Team.ID,
		Municipality:   sel.Team.Name,
		AssignmentDate: time.Now().UTC(),
	})
	if appErr != nil {
		return storage.Report{}, assignment.Selection{}, appErr
	}

	if !applied {
		// Либо заявки нет, либо её уже назначили параллельным вызовом.
		if _, appErr := a.reportRepo.Get(ctx, reportID); appErr != nil {
			return storage.Report{}, assignment.Selection{}, appErr
		}
		return storage.Report{}, assignment.Selection{},
			apperrors.NewWithMessage(apperrors.ErrInvalidTransition, "report is no longer awaiting assignment")
	}

	report, appErr := a.reportRepo.Get(ctx, reportID)
	if appErr != nil {
		return storage.Report{}, assignment.Selection{}, appErr
	}

	go a.notifier.ReportAssigned(sel.Team, report, geo.RoundKm(sel.DistanceKm))
	return report, sel, nil
}

// AdminAutoAssign повторно запускает геоназначение для заявки (консоль админа).
// Статус in_progress/resolved не понижается, терминальная заявка не назначается.
func (a *AssignmentService) AdminAutoAssign(ctx context.Context, reportID string) (storage.Report, assignment.Selection, *apperrors.AppError) {
	report, appErr := a.reportRepo.Get(ctx, reportID)
	if appErr != nil {
		return storage.Report{}, assignment.Selection{}, appErr
	}

	sel, appErr := a.selectTeam(ctx, geo.Point{Lat: report.Lat, Lng: report.Lng}, report.WardNumber)
	if appErr != nil {
		return storage.Report{}, assignment.Selection{}, appErr
	}

	updated, appErr := a.reportRepo.Assign(ctx, reportID, storage.AssignmentUpdate{
		TeamID:         sel.Team.ID,
		Municipality:   sel.Team.Name,
		AssignmentDate: time.Now().UTC(),
	})
	if appErr != nil {
		return storage.Report{}, assignment.Selection{}, appErr
	}

	go a.notifier.ReportAssigned(sel.Team, updated, geo.RoundKm(sel.DistanceKm))
	return updated, sel, nil
}

// AdminManualAssign назначает конкретную команду без расчёта дистанции.
// Неактивной команде заявка не назначается.
func (a *AssignmentService) AdminManualAssign(ctx context.Context, reportID string, teamID int) (storage.Report, *apperrors.AppError) {
	team, appErr := a.teamRepo.Get(ctx, teamID)
	if appErr != nil {
		return storage.Report{}, appErr
	}

	if team.Status != storage.TeamActive {
		return storage.Report{}, apperrors.New(apperrors.ErrTeamInactive)
	}

	updated, appErr := a.reportRepo.Assign(ctx, reportID, storage.AssignmentUpdate{
		TeamID:         team.ID,
		Municipality:   team.Name,
		AssignmentDate: time.Now().UTC(),
	})
	if appErr != nil {
		return storage.Report{}, appErr
	}

	dist := geo.HaversineKm(
		geo.Point{Lat: updated.Lat, Lng: updated.Lng},
		geo.Point{Lat: team.CenterLat, Lng: team.CenterLng},
	)

	go a.notifier.ReportAssigned(team, updated, geo.RoundKm(dist))
	return updated, nil
}

// NearbyTeams - read-only top-K ближайших активных команд, K зажат в [1,5].
func (a *AssignmentService) NearbyTeams(ctx context.Context, p geo.Point, limit int) ([]assignment.Candidate, *apperrors.AppError) {
	teams, appErr := a.teamRepo.ListActive(ctx)
	if appErr != nil {
		return nil, appErr
	}

	cands, err := assignment.Nearest(p, teams, limit)
	if err != nil {
		switch {
		case errors.Is(err, assignment.ErrNoActiveTeams):
			return nil, apperrors.New(apperrors.ErrNoActiveTeams)
		case errors.Is(err, assignment.ErrInvalidPoint):
			return nil, apperrors.New(apperrors.ErrInvalidCoordinates)
		default:
			a.logger.Error("nearest teams failed", zap.Error(err))
			return nil, apperrors.New(apperrors.ErrInternalIssue)
		}
	}

	return cands, nil
}
