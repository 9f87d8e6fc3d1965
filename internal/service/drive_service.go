package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/auth"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/geo"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// NewDriveInput - данные создания субботника.
type NewDriveInput struct {
	ScheduledAt    time.Time
	OrganizationID string
	Title          string
	Description    string
	Address        string
	Lat            float64
	Lng            float64
}

// DriveService - организация субботников и учёт участия.
type DriveService struct {
	driveRepo   storage.DriveRepository
	orgRepo     storage.OrganizationRepository
	contribRepo storage.ContributionRepository
	leaderboard *LeaderboardService
}

// NewDriveService возвращает новый DriveService.
func NewDriveService(driveRepo storage.DriveRepository, orgRepo storage.OrganizationRepository, contribRepo storage.ContributionRepository, leaderboard *LeaderboardService) *DriveService {
	return &DriveService{driveRepo: driveRepo, orgRepo: orgRepo, contribRepo: contribRepo, leaderboard: leaderboard}
}

// CreateOrganization регистрирует организацию-устроителя.
func (d *DriveService) CreateOrganization(ctx context.Context, name, contactEmail string) (storage.Organization, *apperrors.AppError) {
	if name == "" {
		return storage.Organization{}, apperrors.NewWithMessage(apperrors.ErrValidation, "name is required")
	}

	return d.orgRepo.Create(ctx, storage.Organization{
		ID:           uuid.NewString(),
		Name:         name,
		ContactEmail: contactEmail,
	})
}

// Create создаёт субботник от имени существующей организации.
func (d *DriveService) Create(ctx context.Context, session auth.Session, in NewDriveInput) (storage.Drive, *apperrors.AppError) {
	if in.Title == "" || in.OrganizationID == "" {
		return storage.Drive{}, apperrors.NewWithMessage(apperrors.ErrValidation, "title and organization_id are required")
	}
	if !(geo.Point{Lat: in.Lat, Lng: in.Lng}).Valid() {
		return storage.Drive{}, apperrors.New(apperrors.ErrInvalidCoordinates)
	}
	if in.ScheduledAt.Before(time.Now()) {
		return storage.Drive{}, apperrors.NewWithMessage(apperrors.ErrValidation, "scheduled_at must be in the future")
	}
	if _, appErr := d.orgRepo.Get(ctx, in.OrganizationID); appErr != nil {
		return storage.Drive{}, appErr
	}

	return d.driveRepo.Create(ctx, storage.Drive{
		ID:             uuid.NewString(),
		OrganizationID: in.OrganizationID,
		Title:          in.Title,
		Description:    in.Description,
		Lat:            in.Lat,
		Lng:            in.Lng,
		Address:        in.Address,
		ScheduledAt:    in.ScheduledAt,
		CreatedBy:      session.UserID,
	})
}

// Get возвращает субботник по id.
func (d *DriveService) Get(ctx context.Context, driveID string) (storage.Drive, *apperrors.AppError) {
	return d.driveRepo.Get(ctx, driveID)
}

// List возвращает субботники с пагинацией.
func (d *DriveService) List(ctx context.Context, page storage.Page) ([]storage.Drive, *apperrors.AppError) {
	return d.driveRepo.List(ctx, page)
}

// Register записывает участника. Повторная запись - ALREADY_REGISTERED.
func (d *DriveService) Register(ctx context.Context, session auth.Session, driveID string) *apperrors.AppError {
	if _, appErr := d.driveRepo.Get(ctx, driveID); appErr != nil {
		return appErr
	}
	return d.driveRepo.Register(ctx, driveID, session.UserID)
}

// AwardContribution начисляет участнику баллы за вклад в субботник.
func (d *DriveService) AwardContribution(ctx context.Context, driveID, userID string, points int) *apperrors.AppError {
	if points <= 0 || points > 100 {
		return apperrors.NewWithMessage(apperrors.ErrValidation, "points must be in [1,100]")
	}

	if _, appErr := d.driveRepo.Get(ctx, driveID); appErr != nil {
		return appErr
	}

	did := driveID
	if appErr := d.contribRepo.Award(ctx, storage.Contribution{
		UserID:  userID,
		DriveID: &did,
		Kind:    storage.ContributionDrive,
		Points:  points,
	}); appErr != nil {
		return appErr
	}

	d.leaderboard.BumpPoints(ctx, userID, points)
	return nil
}
