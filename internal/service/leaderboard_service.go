package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// LeaderboardEntry - позиция в лидерборде.
type LeaderboardEntry struct {
	UserID string
	Name   string
	Points int
	Rank   int
}

// PointsCache - кэш лидерборда (Redis sorted set).
type PointsCache interface {
	Add(ctx context.Context, userID string, points int) error
	Set(ctx context.Context, userID string, points int) error
	Top(ctx context.Context, limit int) ([]CacheEntry, error)
}

// CacheEntry - запись кэша лидерборда.
type CacheEntry struct {
	UserID string
	Points int
}

// LeaderboardService - лидерборд горожан: кэш в Redis, источник истины в бд.
type LeaderboardService struct {
	userRepo storage.UserRepository
	cache    PointsCache
	logger   *zap.Logger
}

// NewLeaderboardService возвращает новый LeaderboardService.
// cache может быть nil - тогда лидерборд читается напрямую из бд.
func NewLeaderboardService(userRepo storage.UserRepository, cache PointsCache, logger *zap.Logger) *LeaderboardService {
	return &LeaderboardService{userRepo: userRepo, cache: cache, logger: logger}
}

// BumpPoints увеличивает счёт пользователя в кэше. Best-effort: бд уже
// обновлена начислением, недоступный Redis лишь охлаждает кэш.
func (l *LeaderboardService) BumpPoints(ctx context.Context, userID string, points int) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Add(ctx, userID, points); err != nil {
		l.logger.Warn("leaderboard cache update failed", zap.Error(err))
	}
}

// Top возвращает лидеров по баллам. Холодный или недоступный кэш
// прозрачно заменяется выборкой из бд с прогревом кэша.
func (l *LeaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardEntry, *apperrors.AppError) {
	if l.cache != nil {
		cached, err := l.cache.Top(ctx, limit)
		if err != nil {
			l.logger.Warn("leaderboard cache read failed", zap.Error(err))
		} else if len(cached) > 0 {
			return l.hydrate(ctx, cached)
		}
	}

	users, appErr := l.userRepo.TopByPoints(ctx, limit)
	if appErr != nil {
		return nil, appErr
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			UserID: u.ID,
			Name:   u.Name,
			Points: u.Points,
		})
		if l.cache != nil {
			if err := l.cache.Set(ctx, u.ID, u.Points); err != nil {
				l.logger.Warn("leaderboard cache warmup failed", zap.Error(err))
				break
			}
		}
	}
	return entries, nil
}

// hydrate дополняет записи кэша именами пользователей из бд.
func (l *LeaderboardService) hydrate(ctx context.Context, cached []CacheEntry) ([]LeaderboardEntry, *apperrors.AppError) {
	entries := make([]LeaderboardEntry, 0, len(cached))
	for i, c := range cached {
		entry := LeaderboardEntry{Rank: i + 1, UserID: c.UserID, Points: c.Points}
		user, appErr := l.userRepo.Get(ctx, c.UserID)
		if appErr == nil {
			entry.Name = user.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
