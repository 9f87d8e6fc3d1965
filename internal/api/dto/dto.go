// Package dto содержит структуры DTO для HTTP API.
package dto

import "time"

// ErrorResponse - формат ошибки.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail - код и сообщение об ошибке.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegisterRequest - POST /auth/register body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest - POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse - ответ register/login.
type AuthResponse struct {
	Token string     `json:"token"`
	User  UserDetail `json:"user"`
}

// UserDetail содержит данные пользователя для API.
type UserDetail struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TeamID    *int   `json:"team_id,omitempty"`
	Points    int    `json:"points"`
	CreatedAt string `json:"created_at"`
}

// Location - точка заявки или субботника.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// CreateReportRequest - POST /reports body.
type CreateReportRequest struct {
	UserID        string   `json:"userId"`
	PhotoURL      string   `json:"photoUrl"`
	Location      Location `json:"location"`
	WasteType     string   `json:"wasteType"`
	Biodegradable bool     `json:"biodegradable"`
	Severity      string   `json:"severity"`
	Description   string   `json:"description"`
	PriorityScore int      `json:"priorityScore"`
	WardNumber    *int     `json:"wardNumber,omitempty"`
}

// ReportResponse - формат заявки.
type ReportResponse struct {
	CreatedAt            time.Time  `json:"created_at"`
	AssignmentDate       *time.Time `json:"assignment_date,omitempty"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
	ReportID             string     `json:"report_id"`
	UserID               string     `json:"user_id"`
	PhotoURL             string     `json:"photo_url"`
	WasteType            string     `json:"waste_type"`
	Severity             string     `json:"severity"`
	Description          string     `json:"description"`
	Status               string     `json:"status"`
	AssignedMunicipality string     `json:"assigned_municipality,omitempty"`
	Location             Location   `json:"location"`
	AssignedTeamID       *int       `json:"assigned_team_id,omitempty"`
	WardNumber           *int       `json:"ward_number,omitempty"`
	PriorityScore        int        `json:"priority_score"`
	Biodegradable        bool       `json:"biodegradable"`
}

// NearestTeamRequest - POST /geospatial/nearest-team body (мутирующий режим).
type NearestTeamRequest struct {
	ReportID  string  `json:"reportId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TeamResponse - формат команды.
type TeamResponse struct {
	TeamID       int     `json:"team_id"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	CenterLat    float64 `json:"center_lat"`
	CenterLng    float64 `json:"center_lng"`
	RadiusKm     float64 `json:"radius_km"`
	WardNumbers  []int   `json:"ward_numbers"`
	ContactEmail string  `json:"contact_email,omitempty"`
}

// NearbyTeam - команда с дистанцией до точки запроса.
type NearbyTeam struct {
	Team       TeamResponse `json:"team"`
	DistanceKm float64      `json:"distance_km"`
}

// AssignmentResponse - результат назначения команды.
type AssignmentResponse struct {
	Report        ReportResponse `json:"report"`
	Team          TeamResponse   `json:"team"`
	DistanceKm    float64        `json:"distance_km"`
	MatchedByWard bool           `json:"matched_by_ward"`
}

// CreateTeamRequest - POST /admin/teams body.
type CreateTeamRequest struct {
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	CenterLat    float64 `json:"center_lat"`
	CenterLng    float64 `json:"center_lng"`
	RadiusKm     float64 `json:"radius_km"`
	WardNumbers  []int   `json:"ward_numbers"`
	ContactEmail string  `json:"contact_email"`
}

// SetTeamStatusRequest - PATCH /admin/teams/{id}/status body.
type SetTeamStatusRequest struct {
	Status string `json:"status"`
}

// ManualAssignRequest - POST /admin/reports/{id}/assign body.
type ManualAssignRequest struct {
	TeamID int `json:"teamId"`
}

// UpdateTaskStatusRequest - PATCH /worker/tasks/{id}/status body.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrganizationRequest - POST /admin/organizations body.
type CreateOrganizationRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// OrganizationResponse - формат организации.
type OrganizationResponse struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	ContactEmail   string `json:"contact_email"`
}

// CreateDriveRequest - POST /drives body.
type CreateDriveRequest struct {
	OrganizationID string   `json:"organization_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       Location `json:"location"`
	ScheduledAt    string   `json:"scheduled_at"`
}

// DriveResponse - формат субботника.
type DriveResponse struct {
	DriveID        string   `json:"drive_id"`
	OrganizationID string   `json:"organization_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       Location `json:"location"`
	ScheduledAt    string   `json:"scheduled_at"`
	CreatedBy      string   `json:"created_by"`
	Participants   int      `json:"participants"`
}

// DriveContributionRequest - POST /admin/drives/{id}/contributions body.
type DriveContributionRequest struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
}

// LeaderboardEntryResponse - позиция в лидерборде.
type LeaderboardEntryResponse struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// ContributionResponse - начисление баллов.
type ContributionResponse struct {
	Kind      string  `json:"kind"`
	ReportID  *string `json:"report_id,omitempty"`
	DriveID   *string `json:"drive_id,omitempty"`
	Points    int     `json:"points"`
	CreatedAt string  `json:"created_at"`
}

// PresignUploadRequest - POST /uploads/presign body.
type PresignUploadRequest struct {
	FileName string `json:"file_name"`
}

// PresignUploadResponse - presigned PUT для загрузки фотографии.
type PresignUploadResponse struct {
	UploadURL string `json:"upload_url"`
	PhotoURL  string `json:"photo_url"`
	ObjectKey string `json:"object_key"`
}
