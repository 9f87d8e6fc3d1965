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

// UserRepository - репозиторий для управления пользователями в Postgres.
type UserRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewUserRepository создаёт экземпляр *UserRepository.
func NewUserRepository(pool *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{pool: pool, logger: logger}
}

const userColumns = `id, name, email, password_hash, role, team_id, points, created_at`

func scanUser(row pgx.Row) (storage.User, error) {
	var u storage.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.TeamID, &u.Points, &u.CreatedAt)
	return u, err
}

// Create сохраняет нового пользователя.
func (u *UserRepository) Create(ctx context.Context, user storage.User) (storage.User, *apperrors.AppError) {
	const query = `
		INSERT INTO users (id, name, email, password_hash, role, team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	created, err := scanUser(u.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.TeamID,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return storage.User{}, apperrors.New(apperrors.ErrEmailExists)
		}
		u.logger.Error("insert user failed", zap.Error(err))
		return storage.User{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return created, nil
}

// Get осуществляет поиск пользователя по его id.
func (u *UserRepository) Get(ctx context.Context, userID string) (storage.User, *apperrors.AppError) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(u.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.User{}, apperrors.New(apperrors.ErrNotFound)
		}
		u.logger.Error("query user failed", zap.Error(err))
		return storage.User{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return user, nil
}

// GetByEmail осуществляет поиск пользователя по email (логин).
func (u *UserRepository) GetByEmail(ctx context.Context, email string) (storage.User, *apperrors.AppError) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(u.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.User{}, apperrors.New(apperrors.ErrNotFound)
		}
		u.logger.Error("query user by email failed", zap.Error(err))
		return storage.User{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return user, nil
}

// TopByPoints возвращает лидеров по накопленным баллам (fallback лидерборда).
func (u *UserRepository) TopByPoints(ctx context.Context, limit int) ([]storage.User, *apperrors.AppError) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = 'citizen'
		ORDER BY points DESC, created_at ASC
		LIMIT $1
	`

	rows, err := u.pool.Query(ctx, query, limit)
	if err != nil {
		u.logger.Error("query leaderboard failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}

	defer rows.Close()

	var users []storage.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			u.logger.Error("scan user failed", zap.Error(err))
			return nil, apperrors.New(apperrors.ErrInternalIssue)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		u.logger.Error("rows iteration failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}
	return users, nil
}
