// Package main - точка входа в приложение.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/handlers"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/middleware"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/router"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/auth"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/config"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/infra/objectstore"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/infra/postgres"
	redisinfra "github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/infra/redis"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/notify"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/service"
	postgresRepo "github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage/postgres"
)

// pointsCache адаптирует Redis-кэш лидерборда к интерфейсу сервисного слоя.
type pointsCache struct {
	cache *redisinfra.LeaderboardCache
}

func (p pointsCache) Add(ctx context.Context, userID string, points int) error {
	return p.cache.Add(ctx, userID, points)
}

func (p pointsCache) Set(ctx context.Context, userID string, points int) error {
	return p.cache.Set(ctx, userID, points)
}

func (p pointsCache) Top(ctx context.Context, limit int) ([]service.CacheEntry, error) {
	entries, err := p.cache.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]service.CacheEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, service.CacheEntry{UserID: e.UserID, Points: e.Points})
	}
	return out, nil
}

func newLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func main() {
	ctx := context.Background()

	logger, err := newLogger(config.LoadLogger())
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dbCfg := config.LoadDB()
	logger.Info("starting server",
		zap.String("db_host", dbCfg.Host),
		zap.Int("db_port", dbCfg.Port),
		zap.String("db_name", dbCfg.Name),
		zap.String("db_sslmode", string(dbCfg.SSLmode)))

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		logger.Fatal("failed to create DB pool", zap.Error(err))
	}
	logger.Info("database connection pool created successfully")

	leaderboardCache := redisinfra.NewLeaderboardCache(config.LoadRedis())
	defer func() { _ = leaderboardCache.Close() }()

	var cache service.PointsCache
	if err := leaderboardCache.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, leaderboard served from database", zap.Error(err))
	} else {
		cache = pointsCache{cache: leaderboardCache}
	}

	photos, err := objectstore.NewPhotoStore(ctx, config.LoadObjectStore())
	if err != nil {
		logger.Fatal("failed to init photo store", zap.Error(err))
	}

	smtpCfg := config.LoadSMTP()
	var notifier notify.Notifier = notify.NoopNotifier{}
	if smtpCfg.Enabled {
		notifier = notify.NewSMTPNotifier(smtpCfg, logger)
	}

	tokens := auth.NewTokens(config.LoadAuth())

	userRepo := postgresRepo.NewUserRepository(pool, logger)
	teamRepo := postgresRepo.NewTeamRepository(pool, logger)
	reportRepo := postgresRepo.NewReportRepository(pool, logger)
	driveRepo := postgresRepo.NewDriveRepository(pool, logger)
	orgRepo := postgresRepo.NewOrganizationRepository(pool, logger)
	contribRepo := postgresRepo.NewContributionRepository(pool, logger)

	leaderboardService := service.NewLeaderboardService(userRepo, cache, logger)
	assignmentService := service.NewAssignmentService(reportRepo, teamRepo, notifier, logger)
	reportService := service.NewReportService(reportRepo, userRepo, contribRepo, assignmentService, leaderboardService, notifier, logger)
	userService := service.NewUserService(userRepo, contribRepo, tokens)
	teamService := service.NewTeamService(teamRepo)
	driveService := service.NewDriveService(driveRepo, orgRepo, contribRepo, leaderboardService)

	authMW := middleware.NewAuthenticator(tokens)

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService, reportService)
	reportHandler := handlers.NewReportHandler(reportService)
	geoHandler := handlers.NewGeoHandler(assignmentService, reportService)
	workerHandler := handlers.NewWorkerHandler(reportService)
	adminHandler := handlers.NewAdminHandler(teamService, reportService, assignmentService)
	driveHandler := handlers.NewDriveHandler(driveService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	uploadHandler := handlers.NewUploadHandler(photos)

	handler := router.NewRouter(
		authMW,
		authHandler,
		userHandler,
		reportHandler,
		geoHandler,
		workerHandler,
		adminHandler,
		driveHandler,
		leaderboardHandler,
		uploadHandler,
	)

	serverCfg := config.LoadServer()
	srv := &http.Server{
		Addr:         serverCfg.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", zap.String("addr", serverCfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		cancel()
		pool.Close()
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	cancel()
	pool.Close()
	logger.Info("server exited gracefully")
}
