// Package handlers содержит HTTP-обработчики
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/dto"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/service"
)

// AuthHandler - регистрация и вход.
type AuthHandler struct {
	UserService *service.UserService
}

// NewAuthHandler возвращает новый AuthHandler.
func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{UserService: userService}
}

// Register обрабатывает POST /auth/register
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	user, token, appErr := a.UserService.Register(r.Context(), req.Name, req.Email, req.Password)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.FromStorageUser(user),
	})
}

// Login обрабатывает POST /auth/login
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	user, token, appErr := a.UserService.Login(r.Context(), req.Email, req.Password)
	if appErr != nil {
		respondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.FromStorageUser(user),
	})
}
