// Package apperrors содержит определения кодов ошибок.
package apperrors

import (
	"fmt"
	"net/http"
)

// Code - машинный код ошибки.
type Code string

// AppError представляет ошибку.
type AppError struct {
	Code    Code
	Message string
}

// Error реализует error.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus возвращает подходящий HTTP статус для кода ошибки.
func (e *AppError) HTTPStatus() int {
	if s, ok := statusByCode[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Коды ошибок
const (
	ErrValidation         Code = "VALIDATION_ERROR"
	ErrInvalidCoordinates Code = "INVALID_COORDINATES"
	ErrNoActiveTeams      Code = "NO_ACTIVE_TEAMS"
	ErrUnauthorized       Code = "UNAUTHORIZED"
	ErrForbidden          Code = "FORBIDDEN"
	ErrTeamMismatch       Code = "TEAM_MISMATCH"
	ErrNotFound           Code = "NOT_FOUND"
	ErrEmailExists        Code = "EMAIL_EXISTS"
	ErrAlreadyRegistered  Code = "ALREADY_REGISTERED"
	ErrTeamInactive       Code = "TEAM_INACTIVE"
	ErrInvalidTransition  Code = "INVALID_TRANSITION"
	ErrInternalIssue      Code = "INTERNAL_ISSUE"
)

// messages - человекочитаемые строки по коду.
var messages = map[Code]string{
	ErrValidation:         "request validation failed",
	ErrInvalidCoordinates: "latitude must be in [-90,90] and longitude in [-180,180]",
	ErrNoActiveTeams:      "no active municipal team available for assignment",
	ErrUnauthorized:       "missing or invalid bearer token",
	ErrForbidden:          "caller role is not allowed to perform this action",
	ErrTeamMismatch:       "worker is not a member of the team assigned to this report",
	ErrNotFound:           "resource not found",
	ErrEmailExists:        "email already in use",
	ErrAlreadyRegistered:  "user already registered for this drive",
	ErrTeamInactive:       "team is not active",
	ErrInvalidTransition:  "report status transition is not allowed",
	ErrInternalIssue:      "internal server issue, please try again",
}

// statusByCode - HTTP-статусы по коду.
var statusByCode = map[Code]int{
	ErrValidation:         http.StatusBadRequest,
	ErrInvalidCoordinates: http.StatusBadRequest,
	ErrNoActiveTeams:      http.StatusBadRequest,
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrTeamMismatch:       http.StatusForbidden,
	ErrNotFound:           http.StatusNotFound,
	ErrEmailExists:        http.StatusConflict,
	ErrAlreadyRegistered:  http.StatusConflict,
	ErrTeamInactive:       http.StatusConflict,
	ErrInvalidTransition:  http.StatusConflict,
	ErrInternalIssue:      http.StatusInternalServerError,
}

// New создаёт AppError по коду.
func New(code Code) *AppError {
	return &AppError{Code: code, Message: messageFor(code)}
}

// NewWithMessage создаёт AppError по коду с собственным сообщением.
func NewWithMessage(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func messageFor(code Code) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return messages[ErrInternalIssue]
}
