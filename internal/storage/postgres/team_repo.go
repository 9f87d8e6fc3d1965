// Package postgres предоставляет репозитории поверх pgxpool.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// TeamRepository - репозиторий для управления командами в Postgres.
type TeamRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewTeamRepository создаёт экземпляр *TeamRepository.
func NewTeamRepository(pool *pgxpool.Pool, logger *zap.Logger) *TeamRepository {
	return &TeamRepository{pool: pool, logger: logger}
}

const teamColumns = `id, name, status, center_lat, center_lng, radius_km, ward_numbers, contact_email, created_at`

func scanTeam(row pgx.Row) (storage.Team, error) {
	var t storage.Team
	err := row.Scan(&t.ID, &t.Name, &t.Status, &t.CenterLat, &t.CenterLng,
		&t.RadiusKm, &t.WardNumbers, &t.ContactEmail, &t.CreatedAt)
	return t, err
}

// Create создаёт новую команду.
func (t *TeamRepository) Create(ctx context.Context, team storage.Team) (storage.Team, *apperrors.AppError) {
	const query = `
		INSERT INTO teams (name, status, center_lat, center_lng, radius_km, ward_numbers, contact_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + teamColumns

	created, err := scanTeam(t.pool.QueryRow(ctx, query,
		team.Name, team.Status, team.CenterLat, team.CenterLng,
		team.RadiusKm, team.WardNumbers, team.ContactEmail,
	))
	if err != nil {
		t.logger.Error("insert team failed", zap.Error(err))
		return storage.Team{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return created, nil
}

// Get возвращает команду по id.
func (t *TeamRepository) Get(ctx context.Context, teamID int) (storage.Team, *apperrors.AppError) {
	const query = `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	team, err := scanTeam(t.pool.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Team{}, apperrors.New(apperrors.ErrNotFound)
		}
		t.logger.Error("query team failed", zap.Error(err))
		return storage.Team{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return team, nil
}

// List возвращает команды с пагинацией.
func (t *TeamRepository) List(ctx context.Context, page storage.Page) ([]storage.Team, *apperrors.AppError) {
	const query = `SELECT ` + teamColumns + ` FROM teams ORDER BY id LIMIT $1 OFFSET $2`

	return t.queryTeams(ctx, query, page.Limit, page.Offset)
}

// ListActive возвращает все активные команды - кандидатов для назначения.
func (t *TeamRepository) ListActive(ctx context.Context) ([]storage.Team, *apperrors.AppError) {
	const query = `SELECT ` + teamColumns + ` FROM teams WHERE status = 'active' ORDER BY id`

	return t.queryTeams(ctx, query)
}

// SetStatus обновляет статус команды.
func (t *TeamRepository) SetStatus(ctx context.Context, teamID int, status storage.TeamStatus) (storage.Team, *apperrors.AppError) {
	const query = `UPDATE teams SET status = $2 WHERE id = $1 RETURNING ` + teamColumns

	team, err := scanTeam(t.pool.QueryRow(ctx, query, teamID, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Team{}, apperrors.New(apperrors.ErrNotFound)
		}
		t.logger.Error("set team status failed", zap.Error(err))
		return storage.Team{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return team, nil
}

func (t *TeamRepository) queryTeams(ctx context.Context, query string, args ...any) ([]storage.Team, *apperrors.AppError) {
	rows, err := t.pool.Query(ctx, query, args...)
	if err != nil {
		t.logger.Error("query teams failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}

	defer rows.Close()

	var teams []storage.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			t.logger.Error("scan team failed", zap.Error(err))
			return nil, apperrors.New(apperrors.ErrInternalIssue)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		t.logger.Error("rows iteration failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}
	return teams, nil
}
