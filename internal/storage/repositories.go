package storage

import (
	"context"
	"time"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
)

// Page - параметры пагинации списков. Limit уже зажат хендлером в [1,100].
type Page struct {
	Limit  int
	Offset int
}

// ReportFilters - фильтры списка заявок.
type ReportFilters struct {
	Status    ReportStatus
	WasteType string
	UserID    string
}

// AssignmentUpdate - поля, которые выставляет назначение команды.
type AssignmentUpdate struct {
	AssignmentDate time.Time
	Municipality   string
	TeamID         int
}

// UserRepository - репозиторий для управления пользователями.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, *apperrors.AppError)
	Get(ctx context.Context, userID string) (User, *apperrors.AppError)
	GetByEmail(ctx context.Context, email string) (User, *apperrors.AppError)
	TopByPoints(ctx context.Context, limit int) ([]User, *apperrors.AppError)
}

// TeamRepository - репозиторий для управления командами.
type TeamRepository interface {
	Create(ctx context.Context, team Team) (Team, *apperrors.AppError)
	Get(ctx context.Context, teamID int) (Team, *apperrors.AppError)
	List(ctx context.Context, page Page) ([]Team, *apperrors.AppError)
	ListActive(ctx context.Context) ([]Team, *apperrors.AppError)
	SetStatus(ctx context.Context, teamID int, status TeamStatus) (Team, *apperrors.AppError)
}

// ReportRepository - репозиторий для управления заявками.
type ReportRepository interface {
	Create(ctx context.Context, report Report) (Report, *apperrors.AppError)
	Get(ctx context.Context, reportID string) (Report, *apperrors.AppError)
	List(ctx context.Context, filters ReportFilters, page Page) ([]Report, *apperrors.AppError)
	// ListQueue возвращает заявки команды в порядке priority_score DESC, created_at DESC.
	ListQueue(ctx context.Context, teamID int, page Page) ([]Report, *apperrors.AppError)
	// AssignIfSubmitted - compare-and-swap submitted -> assigned.
	// Возвращает false без ошибки, если заявка уже ушла из submitted.
	AssignIfSubmitted(ctx context.Context, reportID string, upd AssignmentUpdate) (bool, *apperrors.AppError)
	// Assign выставляет команду без условия на submitted (ручное назначение админом).
	Assign(ctx context.Context, reportID string, upd AssignmentUpdate) (Report, *apperrors.AppError)
	UpdateStatus(ctx context.Context, reportID string, from, to ReportStatus) (Report, *apperrors.AppError)
	// Reject отклоняет заявку из submitted/assigned и снимает назначение:
	// отклонённая заявка не должна оставаться привязанной к команде.
	Reject(ctx context.Context, reportID string) (Report, *apperrors.AppError)
	// Resolve закрывает заявку и идемпотентно начисляет бонус горожанину.
	// Второй результат - true, если бонус начислен именно этим вызовом.
	Resolve(ctx context.Context, reportID string, bonusPoints int) (Report, bool, *apperrors.AppError)
	Delete(ctx context.Context, reportID string) *apperrors.AppError
}

// OrganizationRepository - репозиторий организаций-устроителей субботников.
type OrganizationRepository interface {
	Create(ctx context.Context, org Organization) (Organization, *apperrors.AppError)
	Get(ctx context.Context, orgID string) (Organization, *apperrors.AppError)
}

// DriveRepository - репозиторий для субботников и их участников.
type DriveRepository interface {
	Create(ctx context.Context, drive Drive) (Drive, *apperrors.AppError)
	Get(ctx context.Context, driveID string) (Drive, *apperrors.AppError)
	List(ctx context.Context, page Page) ([]Drive, *apperrors.AppError)
	Register(ctx context.Context, driveID, userID string) *apperrors.AppError
}

// ContributionRepository - репозиторий начислений баллов.
type ContributionRepository interface {
	// Award атомарно создаёт начисление и увеличивает счёт пользователя.
	Award(ctx context.Context, c Contribution) *apperrors.AppError
	ListByUser(ctx context.Context, userID string, page Page) ([]Contribution, *apperrors.AppError)
}
