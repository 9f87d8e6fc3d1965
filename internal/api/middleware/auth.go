// Package middleware - аутентификация запросов и проверка ролей.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/dto"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/auth"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

type ctxKey int

const sessionKey ctxKey = 0

// SessionFrom извлекает сессию из context запроса.
func SessionFrom(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(auth.Session)
	return s, ok
}

// Authenticator оборачивает хендлеры проверкой bearer-токена.
type Authenticator struct {
	tokens *auth.Tokens
}

// NewAuthenticator возвращает новый Authenticator.
func NewAuthenticator(tokens *auth.Tokens) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Require пропускает только аутентифицированные запросы и кладёт
// сессию в context. Глобального состояния сессии нет.
func (a *Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if header == "" || tokenString == header {
			respondErr(w, apperrors.New(apperrors.ErrUnauthorized))
			return
		}

		session, err := a.tokens.Parse(tokenString)
		if err != nil {
			respondErr(w, apperrors.New(apperrors.ErrUnauthorized))
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, session)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole - Require + проверка роли вызывающего.
func (a *Authenticator) RequireRole(role storage.Role, next http.HandlerFunc) http.HandlerFunc {
	return a.Require(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFrom(r.Context())
		if !ok || session.Role != role {
			respondErr(w, apperrors.New(apperrors.ErrForbidden))
			return
		}
		next(w, r)
	})
}

func respondErr(w http.ResponseWriter, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus())
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    string(appErr.Code),
			Message: appErr.Message,
		},
	})
}
