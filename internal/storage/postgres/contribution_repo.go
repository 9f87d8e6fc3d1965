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

// ContributionRepository - репозиторий начислений баллов в Postgres.
type ContributionRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewContributionRepository создаёт экземпляр *ContributionRepository.
func NewContributionRepository(pool *pgxpool.Pool, logger *zap.Logger) *ContributionRepository {
	return &ContributionRepository{pool: pool, logger: logger}
}

// Award атомарно создаёт начисление и увеличивает счёт пользователя.
func (c *ContributionRepository) Award(ctx context.Context, contrib storage.Contribution) *apperrors.AppError {
	const insertQuery = `
		INSERT INTO contributions (user_id, report_id, drive_id, kind, points)
		VALUES ($1, $2, $3, $4, $5)
	`
	const pointsQuery = `UPDATE users SET points = points + $2 WHERE id = $1`

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		c.logger.Error("begin tx failed", zap.Error(err))
		return apperrors.New(apperrors.ErrInternalIssue)
	}

	defer func() {
		if rerr := tx.Rollback(ctx); rerr != nil && !errors.Is(rerr, pgx.ErrTxClosed) {
			c.logger.Error("tx rollback failed", zap.Error(rerr))
		}
	}()

	if _, err := tx.Exec(ctx, insertQuery,
		contrib.UserID, contrib.ReportID, contrib.DriveID, contrib.Kind, contrib.Points); err != nil {
		c.logger.Error("insert contribution failed", zap.Error(err))
		return apperrors.New(apperrors.ErrInternalIssue)
	}

	ct, err := tx.Exec(ctx, pointsQuery, contrib.UserID, contrib.Points)
	if err != nil {
		c.logger.Error("update points failed", zap.Error(err))
		return apperrors.New(apperrors.ErrInternalIssue)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		c.logger.Error("commit failed", zap.Error(err))
		return apperrors.New(apperrors.ErrInternalIssue)
	}
	return nil
}

// ListByUser возвращает историю начислений пользователя, новые сверху.
func (c *ContributionRepository) ListByUser(ctx context.Context, userID string, page storage.Page) ([]storage.Contribution, *apperrors.AppError) {
	const query = `
		SELECT id, user_id, report_id, drive_id, kind, points, created_at
		FROM contributions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := c.pool.Query(ctx, query, userID, page.Limit, page.Offset)
	if err != nil {
		c.logger.Error("query contributions failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}

	defer rows.Close()

	var contribs []storage.Contribution
	for rows.Next() {
		var contrib storage.Contribution
		if err := rows.Scan(&contrib.ID, &contrib.UserID, &contrib.ReportID,
			&contrib.DriveID, &contrib.Kind, &contrib.Points, &contrib.CreatedAt); err != nil {
			c.logger.Error("scan contribution failed", zap.Error(err))
			return nil, apperrors.New(apperrors.ErrInternalIssue)
		}
		contribs = append(contribs, contrib)
	}

	if err := rows.Err(); err != nil {
		c.logger.Error("rows iteration failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}
	return contribs, nil
}
