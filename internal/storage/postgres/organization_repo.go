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

// OrganizationRepository - репозиторий организаций в Postgres.
type OrganizationRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewOrganizationRepository создаёт экземпляр *OrganizationRepository.
func NewOrganizationRepository(pool *pgxpool.Pool, logger *zap.Logger) *OrganizationRepository {
	return &OrganizationRepository{pool: pool, logger: logger}
}

const orgColumns = `id, name, contact_email, created_at`

func scanOrganization(row pgx.Row) (storage.Organization, error) {
	var o storage.Organization
	err := row.Scan(&o.ID, &o.Name, &o.ContactEmail, &o.CreatedAt)
	return o, err
}

// Create сохраняет новую организацию.
func (o *OrganizationRepository) Create(ctx context.Context, org storage.Organization) (storage.Organization, *apperrors.AppError) {
	const query = `
		INSERT INTO organizations (id, name, contact_email)
		VALUES ($1, $2, $3)
		RETURNING ` + orgColumns

	created, err := scanOrganization(o.pool.QueryRow(ctx, query, org.ID, org.Name, org.ContactEmail))
	if err != nil {
		o.logger.Error("insert organization failed", zap.Error(err))
		return storage.Organization{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return created, nil
}

// Get возвращает организацию по id.
func (o *OrganizationRepository) Get(ctx context.Context, orgID string) (storage.Organization, *apperrors.AppError) {
	const query = `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`

	org, err := scanOrganization(o.pool.QueryRow(ctx, query, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Organization{}, apperrors.NewWithMessage(apperrors.ErrNotFound, "organization not found")
		}
		o.logger.Error("query organization failed", zap.Error(err))
		return storage.Organization{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return org, nil
}
