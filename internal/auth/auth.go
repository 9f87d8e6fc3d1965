// Package auth выпускает и проверяет bearer-токены и хэши паролей.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/config"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// ErrInvalidToken - токен не прошёл проверку подписи или истёк.
var ErrInvalidToken = errors.New("invalid token")

// ErrWrongPassword - пароль не совпал с хэшем.
var ErrWrongPassword = errors.New("wrong password")

// Session - аутентифицированный вызывающий. Передаётся через context запроса,
// глобального состояния сессии в сервере нет.
type Session struct {
	UserID string
	Role   storage.Role
	TeamID *int
}

// Claims - состав JWT.
type Claims struct {
	Role   string `json:"role"`
	TeamID *int   `json:"team_id,omitempty"`
	jwt.RegisteredClaims
}

// Tokens выпускает и валидирует JWT (HS256).
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens создаёт Tokens из конфигурации.
func NewTokens(cfg config.AuthConfig) *Tokens {
	return &Tokens{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL}
}

// Issue выпускает токен для пользователя.
func (t *Tokens) Issue(user storage.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:   string(user.Role),
		TeamID: user.TeamID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token failed: %w", err)
	}
	return signed, nil
}

// Parse валидирует токен и возвращает сессию.
func (t *Tokens) Parse(tokenString string) (Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}

	return Session{
		UserID: claims.Subject,
		Role:   storage.Role(claims.Role),
		TeamID: claims.TeamID,
	}, nil
}

// HashPassword хэширует пароль через bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password failed: %w", err)
	}
	return string(hash), nil
}

// CheckPassword сверяет пароль с bcrypt-хэшем.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}
