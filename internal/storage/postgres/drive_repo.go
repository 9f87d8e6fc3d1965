package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// DriveRepository - репозиторий субботников в Postgres.
type DriveRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDriveRepository создаёт экземпляр *DriveRepository.
func NewDriveRepository(pool *pgxpool.Pool, logger *zap.Logger) *DriveRepository {
	return &DriveRepository{pool: pool, logger: logger}
}

const driveColumns = `
	d.id, d.organization_id, d.title, d.description, d.lat, d.lng, d.address,
	d.scheduled_at, d.created_by, d.created_at,
	(SELECT COUNT(*) FROM drive_participants p WHERE p.drive_id = d.id) AS participants
`

func scanDrive(row pgx.Row) (storage.Drive, error) {
	var d storage.Drive
	err := row.Scan(&d.ID, &d.OrganizationID, &d.Title, &d.Description, &d.Lat, &d.Lng,
		&d.Address, &d.ScheduledAt, &d.CreatedBy, &d.CreatedAt, &d.Participants)
	return d, err
}

// Create создаёт новый субботник.
func (d *DriveRepository) Create(ctx context.Context, drive storage.Drive) (storage.Drive, *apperrors.AppError) {
	const query = `
		INSERT INTO drives AS d (id, organization_id, title, description, lat, lng, address, scheduled_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + driveColumns

	created, err := scanDrive(d.pool.QueryRow(ctx, query,
		drive.ID, drive.OrganizationID, drive.Title, drive.Description,
		drive.Lat, drive.Lng, drive.Address, drive.ScheduledAt, drive.CreatedBy,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return storage.Drive{}, apperrors.NewWithMessage(apperrors.ErrNotFound, "organization not found")
		}
		d.logger.Error("insert drive failed", zap.Error(err))
		return storage.Drive{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return created, nil
}

// Get возвращает субботник по id.
func (d *DriveRepository) Get(ctx context.Context, driveID string) (storage.Drive, *apperrors.AppError) {
	const query = `SELECT ` + driveColumns + ` FROM drives d WHERE d.id = $1`

	drive, err := scanDrive(d.pool.QueryRow(ctx, query, driveID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Drive{}, apperrors.New(apperrors.ErrNotFound)
		}
		d.logger.Error("query drive failed", zap.Error(err))
		return storage.Drive{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return drive, nil
}

// List возвращает субботники, ближайшие по дате сверху.
func (d *DriveRepository) List(ctx context.Context, page storage.Page) ([]storage.Drive, *apperrors.AppError) {
	const query = `SELECT ` + driveColumns + ` FROM drives d ORDER BY d.scheduled_at LIMIT $1 OFFSET $2`

	rows, err := d.pool.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		d.logger.Error("query drives failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}

	defer rows.Close()

	var drives []storage.Drive
	for rows.Next() {
		drive, err := scanDrive(rows)
		if err != nil {
			d.logger.Error("scan drive failed", zap.Error(err))
			return nil, apperrors.New(apperrors.ErrInternalIssue)
		}
		drives = append(drives, drive)
	}

	if err := rows.Err(); err != nil {
		d.logger.Error("rows iteration failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}
	return drives, nil
}

// Register записывает пользователя участником субботника.
// Повторная регистрация отклоняется по уникальной паре (drive_id, user_id).
func (d *DriveRepository) Register(ctx context.Context, driveID, userID string) *apperrors.AppError {
	const query = `INSERT INTO drive_participants (drive_id, user_id) VALUES ($1, $2)`

	_, err := d.pool.Exec(ctx, query, driveID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return apperrors.New(apperrors.ErrAlreadyRegistered)
			case "23503":
				return apperrors.New(apperrors.ErrNotFound)
			}
		}
		d.logger.Error("register participant failed", zap.Error(err))
		return apperrors.New(apperrors.ErrInternalIssue)
	}

	return nil
}
