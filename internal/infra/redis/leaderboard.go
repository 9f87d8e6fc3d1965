// Package redis предоставляет кэш лидерборда поверх Redis sorted set.
package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/config"
)

// leaderboardKey - ключ sorted set с баллами горожан.
const leaderboardKey = "leaderboard:points"

// opTimeout - верхняя граница на одну операцию с кэшем.
const opTimeout = 2 * time.Second

// Entry - позиция пользователя в кэше лидерборда.
type Entry struct {
	UserID string
	Points int
}

// LeaderboardCache - кэш лидерборда. Все методы best-effort: при недоступном
// Redis вызывающая сторона берёт данные из Postgres.
type LeaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache создаёт клиент Redis и кэш лидерборда.
func NewLeaderboardCache(cfg config.RedisConfig) *LeaderboardCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &LeaderboardCache{client: client}
}

// Ping проверяет доступность Redis.
func (l *LeaderboardCache) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return l.client.Ping(ctx).Err()
}

// Add увеличивает счёт пользователя в sorted set.
func (l *LeaderboardCache) Add(ctx context.Context, userID string, points int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return l.client.ZIncrBy(ctx, leaderboardKey, float64(points), userID).Err()
}

// Set выставляет счёт пользователя (используется при прогреве кэша из бд).
func (l *LeaderboardCache) Set(ctx context.Context, userID string, points int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return l.client.ZAdd(ctx, leaderboardKey, &redis.Z{
		Score:  float64(points),
		Member: userID,
	}).Err()
}

// Top возвращает limit лидеров по убыванию баллов.
// Пустой срез без ошибки означает холодный кэш.
func (l *LeaderboardCache) Top(ctx context.Context, limit int) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	zs, err := l.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{UserID: id, Points: int(z.Score)})
	}
	return entries, nil
}

// Close закрывает соединение с Redis.
func (l *LeaderboardCache) Close() error {
	return l.client.Close()
}
