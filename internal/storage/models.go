// Package storage содержит модели данных и интерфейсы репозиториев.
package storage

import "time"

// ReportStatus - статус заявки об отходах.
type ReportStatus string

const (
	// StatusSubmitted - заявка создана и ждёт назначения.
	StatusSubmitted ReportStatus = "submitted"
	// StatusAssigned - заявка назначена муниципальной команде.
	StatusAssigned ReportStatus = "assigned"
	// StatusInProgress - команда работает над заявкой.
	StatusInProgress ReportStatus = "in_progress"
	// StatusResolved - заявка закрыта, отходы убраны.
	StatusResolved ReportStatus = "resolved"
	// StatusRejected - заявка отклонена.
	StatusRejected ReportStatus = "rejected"
)

// IsTerminal возвращает true для финальных статусов.
func (s ReportStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusRejected
}

// allowedTransitions - разрешённые переходы статуса.
// rejected достижим только из submitted и assigned.
var allowedTransitions = map[ReportStatus][]ReportStatus{
	StatusSubmitted:  {StatusAssigned, StatusRejected},
	StatusAssigned:   {StatusInProgress, StatusRejected},
	StatusInProgress: {StatusResolved},
}

// CanTransition проверяет, разрешён ли переход from -> to.
func CanTransition(from, to ReportStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseReportStatus валидирует строку статуса из запроса.
func ParseReportStatus(s string) (ReportStatus, bool) {
	switch ReportStatus(s) {
	case StatusSubmitted, StatusAssigned, StatusInProgress, StatusResolved, StatusRejected:
		return ReportStatus(s), true
	default:
		return "", false
	}
}

// TeamStatus - статус муниципальной команды.
type TeamStatus string

const (
	// TeamActive - команда принимает заявки.
	TeamActive TeamStatus = "active"
	// TeamInactive - команда выведена из ротации назначения.
	TeamInactive TeamStatus = "inactive"
)

// Role - роль пользователя.
type Role string

const (
	// RoleCitizen - горожанин, создаёт заявки.
	RoleCitizen Role = "citizen"
	// RoleWorker - сотрудник муниципальной команды.
	RoleWorker Role = "municipality-worker"
	// RoleSuperAdmin - администратор консоли управления.
	RoleSuperAdmin Role = "super-admin"
)

// Severity - серьёзность загрязнения, определяет диапазон приоритета.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ParseSeverity валидирует строку серьёзности из запроса.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(s), true
	default:
		return "", false
	}
}

// User - пользователь платформы.
type User struct {
	CreatedAt    time.Time
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	TeamID       *int
	Points       int
}

// Team - муниципальная команда с зоной обслуживания.
// Radius носит справочный характер и не ограничивает назначение.
type Team struct {
	CreatedAt    time.Time
	Name         string
	ContactEmail string
	Status       TeamStatus
	WardNumbers  []int
	CenterLat    float64
	CenterLng    float64
	RadiusKm     float64
	ID           int
}

// Report - заявка об отходах. Location неизменяема после создания.
type Report struct {
	CreatedAt            time.Time
	AssignmentDate       *time.Time
	ResolvedAt           *time.Time
	ID                   string
	UserID               string
	PhotoURL             string
	WasteType            string
	Description          string
	Address              string
	AssignedMunicipality string
	Status               ReportStatus
	Severity             Severity
	WardNumber           *int
	AssignedTeamID       *int
	PriorityScore        int
	Lat                  float64
	Lng                  float64
	Biodegradable        bool
}

// Organization - организация, проводящая субботники.
type Organization struct {
	CreatedAt    time.Time
	ID           string
	Name         string
	ContactEmail string
}

// Drive - событие-субботник.
type Drive struct {
	ScheduledAt    time.Time
	CreatedAt      time.Time
	ID             string
	OrganizationID string
	Title          string
	Description    string
	Address        string
	CreatedBy      string
	Lat            float64
	Lng            float64
	Participants   int
}

// DriveParticipant - участие пользователя в субботнике.
type DriveParticipant struct {
	JoinedAt time.Time
	DriveID  string
	UserID   string
}

// ContributionKind - тип начисления баллов.
type ContributionKind string

const (
	// ContributionReportCreated - баллы за создание заявки.
	ContributionReportCreated ContributionKind = "report_created"
	// ContributionResolutionBonus - бонус горожанину за закрытую заявку.
	ContributionResolutionBonus ContributionKind = "resolution_bonus"
	// ContributionDrive - баллы за участие в субботнике.
	ContributionDrive ContributionKind = "drive"
)

// Contribution - запись о начислении баллов пользователю.
type Contribution struct {
	CreatedAt time.Time
	UserID    string
	ReportID  *string
	DriveID   *string
	Kind      ContributionKind
	Points    int
	ID        int64
}
