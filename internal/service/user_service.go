package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/auth"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// UserService - регистрация, вход и профиль пользователя.
type UserService struct {
	userRepo    storage.UserRepository
	contribRepo storage.ContributionRepository
	tokens      *auth.Tokens
}

// NewUserService возвращает новый UserService.
func NewUserService(userRepo storage.UserRepository, contribRepo storage.ContributionRepository, tokens *auth.Tokens) *UserService {
	return &UserService{userRepo: userRepo, contribRepo: contribRepo, tokens: tokens}
}

// Register создаёт горожанина. Работники и администраторы заводятся
// только через консоль супер-админа, публичная регистрация их не создаёт.
func (u *UserService) Register(ctx context.Context, name, email, password string) (storage.User, string, *apperrors.AppError) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return storage.User{}, "", apperrors.NewWithMessage(apperrors.ErrValidation, "name and valid email are required")
	}
	if len(password) < 8 {
		return storage.User{}, "", apperrors.NewWithMessage(apperrors.ErrValidation, "password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return storage.User{}, "", apperrors.New(apperrors.ErrInternalIssue)
	}

	user, appErr := u.userRepo.Create(ctx, storage.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         storage.RoleCitizen,
	})
	if appErr != nil {
		return storage.User{}, "", appErr
	}

	token, err := u.tokens.Issue(user)
	if err != nil {
		return storage.User{}, "", apperrors.New(apperrors.ErrInternalIssue)
	}

	return user, token, nil
}

// Login проверяет пароль и выпускает токен.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
func (u *UserService) Login(ctx context.Context, email, password string) (storage.User, string, *apperrors.AppError) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, appErr := u.userRepo.GetByEmail(ctx, email)
	if appErr != nil {
		if appErr.Code == apperrors.ErrNotFound {
			return storage.User{}, "", apperrors.New(apperrors.ErrUnauthorized)
		}
		return storage.User{}, "", appErr
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return storage.User{}, "", apperrors.New(apperrors.ErrUnauthorized)
	}

	token, err := u.tokens.Issue(user)
	if err != nil {
		return storage.User{}, "", apperrors.New(apperrors.ErrInternalIssue)
	}

	return user, token, nil
}

// Profile возвращает пользователя по сессии.
func (u *UserService) Profile(ctx context.Context, session auth.Session) (storage.User, *apperrors.AppError) {
	return u.userRepo.Get(ctx, session.UserID)
}

// Contributions возвращает историю начислений пользователя.
func (u *UserService) Contributions(ctx context.Context, session auth.Session, page storage.Page) ([]storage.Contribution, *apperrors.AppError) {
	return u.contribRepo.ListByUser(ctx, session.UserID, page)
}
