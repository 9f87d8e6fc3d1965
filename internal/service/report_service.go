package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/auth"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/geo"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/notify"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// Фиксированные начисления баллов.
const (
	// CreationPoints - баллы горожанину за создание заявки.
	CreationPoints = 10
	// ResolutionBonusPoints - бонус горожанину за закрытую заявку.
	ResolutionBonusPoints = 20
)

// NewReportInput - данные создания заявки.
type NewReportInput struct {
	UserID        string
	PhotoURL      string
	WasteType     string
	Description   string
	Address       string
	Severity      storage.Severity
	WardNumber    *int
	PriorityScore int
	Lat           float64
	Lng           float64
	Biodegradable bool
}

// ReportService управляет заявками об отходах.
type ReportService struct {
	reportRepo  storage.ReportRepository
	userRepo    storage.UserRepository
	contribRepo storage.ContributionRepository
	assigner    *AssignmentService
	leaderboard *LeaderboardService
	notifier    notify.Notifier
	logger      *zap.Logger
}

// NewReportService возвращает новый ReportService.
func NewReportService(
	reportRepo storage.ReportRepository,
	userRepo storage.UserRepository,
	contribRepo storage.ContributionRepository,
	assigner *AssignmentService,
	leaderboard *LeaderboardService,
	notifier notify.Notifier,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		contribRepo: contribRepo,
		assigner:    assigner,
		leaderboard: leaderboard,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create проводит заявку через пайплайн создания: сохранение в submitted,
// геоназначение, баллы за создание. Каждый шаг после сохранения best-effort:
// его сбой логируется и не отменяет созданную заявку.
func (r *ReportService) Create(ctx context.Context, in NewReportInput) (storage.Report, *apperrors.AppError) {
	point := geo.Point{Lat: in.Lat, Lng: in.Lng}
	if !point.Valid() {
		return storage.Report{}, apperrors.New(apperrors.ErrInvalidCoordinates)
	}

	if _, appErr := r.userRepo.Get(ctx, in.UserID); appErr != nil {
		return storage.Report{}, appErr
	}

	score := in.PriorityScore
	if score == 0 {
		derived, err := priorityForSeverity(in.Severity)
		if err != nil {
			r.logger.Error("priority derivation failed", zap.Error(err))
			return storage.Report{}, apperrors.New(apperrors.ErrInternalIssue)
		}
		score = derived
	}
	if score < 1 || score > 100 {
		return storage.Report{}, apperrors.NewWithMessage(apperrors.ErrValidation, "priority_score must be in [1,100]")
	}

	report, appErr := r.reportRepo.Create(ctx, storage.Report{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		PhotoURL:      in.PhotoURL,
		WasteType:     in.WasteType,
		Biodegradable: in.Biodegradable,
		Severity:      in.Severity,
		Description:   in.Description,
		PriorityScore: score,
		WardNumber:    in.WardNumber,
		Lat:           in.Lat,
		Lng:           in.Lng,
		Address:       in.Address,
	})
	if appErr != nil {
		return storage.Report{}, appErr
	}

	// Шаг назначения: сбой не отменяет созданную заявку.
	assigned, _, assignErr := r.assigner.AssignSubmitted(ctx, report.ID, point, report.WardNumber)
	if assignErr != nil {
		r.logger.Warn("auto-assignment failed, report left in submitted",
			zap.String("report_id", report.ID),
			zap.String("code", string(assignErr.Code)))
	} else {
		report = assigned
	}

	// Баллы за создание: отдельный идемпотентный шаг.
	rid := report.ID
	if appErr := r.contribRepo.Award(ctx, storage.Contribution{
		UserID:   report.UserID,
		ReportID: &rid,
		Kind:     storage.ContributionReportCreated,
		Points:   CreationPoints,
	}); appErr != nil {
		r.logger.Warn("creation points award failed",
			zap.String("report_id", report.ID),
			zap.String("code", string(appErr.Code)))
	} else {
		r.leaderboard.BumpPoints(ctx, report.UserID, CreationPoints)
	}

	return report, nil
}

// Get возвращает заявку по id.
func (r *ReportService) Get(ctx context.Context, reportID string) (storage.Report, *apperrors.AppError) {
	return r.reportRepo.Get(ctx, reportID)
}

// List возвращает заявки по фильтрам.
func (r *ReportService) List(ctx context.Context, filters storage.ReportFilters, page storage.Page) ([]storage.Report, *apperrors.AppError) {
	return r.reportRepo.List(ctx, filters, page)
}

// WorkerQueue возвращает очередь команды работника по убыванию приоритета.
func (r *ReportService) WorkerQueue(ctx context.Context, session auth.Session, page storage.Page) ([]storage.Report, *apperrors.AppError) {
	if session.TeamID == nil {
		return nil, apperrors.NewWithMessage(apperrors.ErrForbidden, "worker has no team")
	}
	return r.reportRepo.ListQueue(ctx, *session.TeamID, page)
}

// UpdateTaskStatus - переход статуса заявки работником.
// Разрешено только участнику команды, которой назначена заявка.
func (r *ReportService) UpdateTaskStatus(ctx context.Context, session auth.Session, reportID string, to storage.ReportStatus) (storage.Report, *apperrors.AppError) {
	report, appErr := r.reportRepo.Get(ctx, reportID)
	if appErr != nil {
		return storage.Report{}, appErr
	}

	if session.TeamID == nil || report.AssignedTeamID == nil || *session.TeamID != *report.AssignedTeamID {
		return storage.Report{}, apperrors.New(apperrors.ErrTeamMismatch)
	}

	switch to {
	case storage.StatusInProgress:
		return r.reportRepo.UpdateStatus(ctx, reportID, storage.StatusAssigned, storage.StatusInProgress)
	case storage.StatusResolved:
		resolved, awarded, appErr := r.reportRepo.Resolve(ctx, reportID, ResolutionBonusPoints)
		if appErr != nil {
			return storage.Report{}, appErr
		}
		if awarded {
			r.leaderboard.BumpPoints(ctx, resolved.UserID, ResolutionBonusPoints)
		}
		go r.notifyResolved(resolved)
		return resolved, nil
	default:
		return storage.Report{}, apperrors.NewWithMessage(apperrors.ErrValidation,
			"workers may only move a report to in_progress or resolved")
	}
}

// AdminReject отклоняет заявку (только из submitted или assigned).
// Назначение снимается вместе со сменой статуса.
func (r *ReportService) AdminReject(ctx context.Context, reportID string) (storage.Report, *apperrors.AppError) {
	report, appErr := r.reportRepo.Get(ctx, reportID)
	if appErr != nil {
		return storage.Report{}, appErr
	}

	if !storage.CanTransition(report.Status, storage.StatusRejected) {
		return storage.Report{}, apperrors.New(apperrors.ErrInvalidTransition)
	}

	return r.reportRepo.Reject(ctx, reportID)
}

// AdminDelete удаляет заявку. Единственный путь физического удаления.
func (r *ReportService) AdminDelete(ctx context.Context, reportID string) *apperrors.AppError {
	return r.reportRepo.Delete(ctx, reportID)
}

func (r *ReportService) notifyResolved(report storage.Report) {
	citizen, appErr := r.userRepo.Get(context.Background(), report.UserID)
	if appErr != nil {
		r.logger.Warn("citizen lookup for resolved notification failed",
			zap.String("report_id", report.ID))
		return
	}
	r.notifier.ReportResolved(citizen.Email, report)
}
