package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// ReportRepository - репозиторий для управления заявками в Postgres.
type ReportRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewReportRepository создаёт экземпляр *ReportRepository.
func NewReportRepository(pool *pgxpool.Pool, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{pool: pool, logger: logger}
}

const reportColumns = `
	id, user_id, photo_url, waste_type, biodegradable, severity, description,
	priority_score, status, ward_number, lat, lng, address,
	assigned_team_id, assigned_municipality, assignment_date, resolved_at, created_at
`

func scanReport(row pgx.Row) (storage.Report, error) {
	var r storage.Report
	var municipality *string
	err := row.Scan(
		&r.ID, &r.UserID, &r.PhotoURL, &r.WasteType, &r.Biodegradable, &r.Severity,
		&r.Description, &r.PriorityScore, &r.Status, &r.WardNumber, &r.Lat, &r.Lng,
		&r.Address, &r.AssignedTeamID, &municipality, &r.AssignmentDate, &r.ResolvedAt,
		&r.CreatedAt,
	)
	if municipality != nil {
		r.AssignedMunicipality = *municipality
	}
	return r, err
}

// Create сохраняет новую заявку в статусе submitted.
func (p *ReportRepository) Create(ctx context.Context, report storage.Report) (storage.Report, *apperrors.AppError) {
	query := fmt.Sprintf(`
		INSERT INTO reports (id, user_id, photo_url, waste_type, biodegradable, severity,
			description, priority_score, status, ward_number, lat, lng, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s
	`, reportColumns)

	created, err := scanReport(p.pool.QueryRow(ctx, query,
		report.ID, report.UserID, report.PhotoURL, report.WasteType, report.Biodegradable,
		report.Severity, report.Description, report.PriorityScore, storage.StatusSubmitted,
		report.WardNumber, report.Lat, report.Lng, report.Address,
	))
	if err != nil {
		p.logger.Error("insert report failed", zap.Error(err))
		return storage.Report{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return created, nil
}

// Get возвращает заявку по id.
func (p *ReportRepository) Get(ctx context.Context, reportID string) (storage.Report, *apperrors.AppError) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id = $1`, reportColumns)

	report, err := scanReport(p.pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Report{}, apperrors.New(apperrors.ErrNotFound)
		}
		p.logger.Error("query report failed", zap.Error(err))
		return storage.Report{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return report, nil
}

// List возвращает заявки по фильтрам с пагинацией, новые сверху.
func (p *ReportRepository) List(ctx context.Context, filters storage.ReportFilters, page storage.Page) ([]storage.Report, *apperrors.AppError) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `SELECT %s FROM reports`, reportColumns)

	conds := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filters.Status != "" {
		args = append(args, filters.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.WasteType != "" {
		args = append(args, filters.WasteType)
		conds = append(conds, fmt.Sprintf("waste_type = $%d", len(args)))
	}
	if filters.UserID != "" {
		args = append(args, filters.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	args = append(args, page.Limit, page.Offset)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return p.queryReports(ctx, sb.String(), args...)
}

// ListQueue возвращает очередь команды: priority_score DESC, created_at DESC.
func (p *ReportRepository) ListQueue(ctx context.Context, teamID int, page storage.Page) ([]storage.Report, *apperrors.AppError) {
	query := fmt.Sprintf(`
		SELECT %s FROM reports
		WHERE assigned_team_id = $1 AND status IN ('assigned', 'in_progress')
		ORDER BY priority_score DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`, reportColumns)

	return p.queryReports(ctx, query, teamID, page.Limit, page.Offset)
}

func (p *ReportRepository) queryReports(ctx context.Context, query string, args ...any) ([]storage.Report, *apperrors.AppError) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("query reports failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}

	defer rows.Close()

	var reports []storage.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			p.logger.Error("scan report failed", zap.Error(err))
			return nil, apperrors.New(apperrors.ErrInternalIssue)
		}
		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		p.logger.Error("rows iteration failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}
	return reports, nil
}

// AssignIfSubmitted - условное назначение команды: submitted -> assigned.
// Условие WHERE status='submitted' делает переход compare-and-swap: при гонке
// двух назначений сработает ровно одно.
func (p *ReportRepository) AssignIfSubmitted(ctx context.Context, reportID string, upd storage.AssignmentUpdate) (bool, *apperrors.AppError) {
	const query = `
		UPDATE reports
		SET status = 'assigned', assigned_team_id = $2, assigned_municipality = $3, assignment_date = $4
		WHERE id = $1 AND status = 'submitted'
	`

	ct, err := p.pool.Exec(ctx, query, reportID, upd.TeamID, upd.Municipality, upd.AssignmentDate)
	if err != nil {
		p.logger.Error("conditional assign failed", zap.Error(err))
		return false, apperrors.New(apperrors.ErrInternalIssue)
	}

	return ct.RowsAffected() == 1, nil
}

// Assign выставляет команду без условия на статус (ручное назначение админом).
// Заявку в терминальном статусе назначать нельзя.
func (p *ReportRepository) Assign(ctx context.Context, reportID string, upd storage.AssignmentUpdate) (storage.Report, *apperrors.AppError) {
	query := fmt.Sprintf(`
		UPDATE reports
		SET status = CASE WHEN status = 'submitted' THEN 'assigned' ELSE status END,
			assigned_team_id = $2, assigned_municipality = $3, assignment_date = $4
		WHERE id = $1 AND status NOT IN ('resolved', 'rejected')
		RETURNING %s
	`, reportColumns)

	report, err := scanReport(p.pool.QueryRow(ctx, query, reportID, upd.TeamID, upd.Municipality, upd.AssignmentDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Report{}, p.notFoundOrConflict(ctx, reportID)
		}
		p.logger.Error("assign failed", zap.Error(err))
		return storage.Report{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return report, nil
}

// UpdateStatus переводит заявку from -> to, условие на from в самом запросе.
func (p *ReportRepository) UpdateStatus(ctx context.Context, reportID string, from, to storage.ReportStatus) (storage.Report, *apperrors.AppError) {
	query := fmt.Sprintf(`
		UPDATE reports SET status = $3
		WHERE id = $1 AND status = $2
		RETURNING %s
	`, reportColumns)

	report, err := scanReport(p.pool.QueryRow(ctx, query, reportID, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Report{}, p.notFoundOrConflict(ctx, reportID)
		}
		p.logger.Error("update status failed", zap.Error(err))
		return storage.Report{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return report, nil
}

// Reject отклоняет заявку и очищает поля назначения в том же UPDATE.
func (p *ReportRepository) Reject(ctx context.Context, reportID string) (storage.Report, *apperrors.AppError) {
	query := fmt.Sprintf(`
		UPDATE reports
		SET status = 'rejected', assigned_team_id = NULL,
		    assigned_municipality = NULL, assignment_date = NULL
		WHERE id = $1 AND status IN ('submitted', 'assigned')
		RETURNING %s
	`, reportColumns)

	report, err := scanReport(p.pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Report{}, p.notFoundOrConflict(ctx, reportID)
		}
		p.logger.Error("reject failed", zap.Error(err))
		return storage.Report{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	return report, nil
}

// Resolve закрывает заявку и начисляет бонус горожанину в одной транзакции.
// resolved_at ставится один раз (COALESCE), бонус защищён от повторного
// начисления уникальным индексом contributions (report_id, kind).
func (p *ReportRepository) Resolve(ctx context.Context, reportID string, bonusPoints int) (storage.Report, bool, *apperrors.AppError) {
	resolveQuery := fmt.Sprintf(`
		UPDATE reports
		SET status = 'resolved', resolved_at = COALESCE(resolved_at, NOW())
		WHERE id = $1 AND status = 'in_progress'
		RETURNING %s
	`, reportColumns)
	const bonusQuery = `
		INSERT INTO contributions (user_id, report_id, kind, points)
		VALUES ($1, $2, 'resolution_bonus', $3)
		ON CONFLICT (report_id, kind) WHERE report_id IS NOT NULL DO NOTHING
	`
	const pointsQuery = `UPDATE users SET points = points + $2 WHERE id = $1`

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		p.logger.Error("begin tx failed", zap.Error(err))
		return storage.Report{}, false, apperrors.New(apperrors.ErrInternalIssue)
	}

	defer func() {
		if rerr := tx.Rollback(ctx); rerr != nil && !errors.Is(rerr, pgx.ErrTxClosed) {
			p.logger.Error("tx rollback failed", zap.Error(rerr))
		}
	}()

	report, err := scanReport(tx.QueryRow(ctx, resolveQuery, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Report{}, false, p.notFoundOrConflict(ctx, reportID)
		}
		p.logger.Error("resolve failed", zap.Error(err))
		return storage.Report{}, false, apperrors.New(apperrors.ErrInternalIssue)
	}

	ct, err := tx.Exec(ctx, bonusQuery, report.UserID, report.ID, bonusPoints)
	if err != nil {
		p.logger.Error("insert resolution bonus failed", zap.Error(err))
		return storage.Report{}, false, apperrors.New(apperrors.ErrInternalIssue)
	}

	awarded := ct.RowsAffected() == 1
	if awarded {
		if _, err := tx.Exec(ctx, pointsQuery, report.UserID, bonusPoints); err != nil {
			p.logger.Error("award bonus points failed", zap.Error(err))
			return storage.Report{}, false, apperrors.New(apperrors.ErrInternalIssue)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("commit failed", zap.Error(err))
		return storage.Report{}, false, apperrors.New(apperrors.ErrInternalIssue)
	}
	return report, awarded, nil
}

// Delete удаляет заявку (только явное действие админа).
func (p *ReportRepository) Delete(ctx context.Context, reportID string) *apperrors.AppError {
	const query = `DELETE FROM reports WHERE id = $1`

	ct, err := p.pool.Exec(ctx, query, reportID)
	if err != nil {
		p.logger.Error("delete report failed", zap.Error(err))
		return apperrors.New(apperrors.ErrInternalIssue)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound)
	}
	return nil
}

// notFoundOrConflict различает отсутствие заявки и недопустимый переход.
func (p *ReportRepository) notFoundOrConflict(ctx context.Context, reportID string) *apperrors.AppError {
	const query = `SELECT EXISTS(SELECT 1 FROM reports WHERE id = $1)`

	var exists bool
	if err := p.pool.QueryRow(ctx, query, reportID).Scan(&exists); err != nil {
		p.logger.Error("exists check failed", zap.Error(err))
		return apperrors.New(apperrors.ErrInternalIssue)
	}

	if !exists {
		return apperrors.New(apperrors.ErrNotFound)
	}
	return apperrors.New(apperrors.ErrInvalidTransition)
}
