// Package app wires configuration into repositories, caches, services and
// the HTTP router.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"surveypulse/internal/analytics"
	"surveypulse/internal/cache"
	"surveypulse/internal/config"
	"surveypulse/internal/generation"
	"surveypulse/internal/repository"
	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest"
	"surveypulse/internal/transport/ws"
)

// App holds every long-lived dependency of the server
type App struct {
	Config *config.Config
	Logger *zap.Logger

	SurveyRepo   repository.SurveyRepo
	ResponseRepo repository.ResponseRepo

	AuthService       *service.AuthService
	SurveyService     *service.SurveyService
	ResponseService   *service.ResponseService
	AnalyticsService  *service.AnalyticsService
	GenerationService *service.GenerationService
	Generator         *generation.Generator

	WSHub *ws.Hub

	closers []func(context.Context) error
}

// New connects to the configured stores and builds the service graph
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	if err := a.openStore(ctx); err != nil {
		a.Close(ctx)
		return nil, err
	}

	analyticsCache, quotaCache := a.openRedis(ctx)

	a.Generator = generation.NewFromConfig(ctx, &cfg.AI, logger.Named("generation"))
	if a.Generator.Enabled() {
		logger.Info("AI generation enabled",
			zap.String("primary", cfg.AI.Models.Primary),
			zap.String("fallback", cfg.AI.Models.Fallback),
			zap.Bool("structuredOutput", cfg.AI.StructuredOutput))
	} else {
		logger.Warn("AI generation disabled: no OPENAI_API_KEY or GEMINI_API_KEY")
	}

	a.WSHub = ws.NewHub(logger.Named("ws"))
	a.closers = append(a.closers, func(context.Context) error {
		a.WSHub.Stop()
		return nil
	})

	analyzer := analytics.NewAnalyzer(logger.Named("analytics"))
	a.AuthService = service.NewAuthService(cfg.Auth)
	a.SurveyService = service.NewSurveyService(a.SurveyRepo, analyticsCache, logger)
	a.AnalyticsService = service.NewAnalyticsService(a.SurveyRepo, a.ResponseRepo, analyticsCache, analyzer, logger)
	a.ResponseService = service.NewResponseService(a.SurveyRepo, a.ResponseRepo, analyticsCache, logger)
	a.GenerationService = service.NewGenerationService(a.Generator, quotaCache, &cfg.AI, logger)

	// wsHub implements service.Broadcaster
	a.ResponseService.SetAnalyticsService(a.AnalyticsService)
	a.ResponseService.SetBroadcaster(a.WSHub)

	return a, nil
}

// Router builds the HTTP handler
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		AuthService:       a.AuthService,
		SurveyService:     a.SurveyService,
		ResponseService:   a.ResponseService,
		AnalyticsService:  a.AnalyticsService,
		GenerationService: a.GenerationService,
		WSHub:             a.WSHub,
		CORSOrigins:       a.Config.CORS,
		Logger:            a.Logger.Named("http"),
	})
}

// Close releases connections in reverse order of opening
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *App) openStore(ctx context.Context) error {
	switch a.Config.Store.Driver {
	case config.StoreSQLite:
		db, err := repository.OpenSQLite(a.Config.Store.SQLitePath)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })
		a.useSQLite(db)
		a.Logger.Info("Connected to SQLite", zap.String("path", a.Config.Store.SQLitePath))
		return nil

	default:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.Config.Store.MongoURI))
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}
		a.closers = append(a.closers, client.Disconnect)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			return fmt.Errorf("ping MongoDB: %w", err)
		}

		db := client.Database(a.Config.Store.MongoDB)
		a.SurveyRepo = repository.NewSurveyRepo(db)
		a.ResponseRepo = repository.NewResponseRepo(db)
		a.Logger.Info("Connected to MongoDB", zap.String("database", a.Config.Store.MongoDB))
		return nil
	}
}

func (a *App) useSQLite(db *sql.DB) {
	a.SurveyRepo = repository.NewSQLiteSurveyRepo(db)
	a.ResponseRepo = repository.NewSQLiteResponseRepo(db)
}

// openRedis returns Redis-backed caches, or nil caches (services fall back to
// no-op implementations) when Redis is not configured or unreachable
func (a *App) openRedis(ctx context.Context) (cache.AnalyticsCache, cache.QuotaCache) {
	if a.Config.Redis.Addr == "" {
		a.Logger.Info("Redis not configured; analytics caching and rate limiting disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: a.Config.Redis.Addr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		a.Logger.Warn("Redis unreachable; analytics caching and rate limiting disabled",
			zap.String("addr", a.Config.Redis.Addr), zap.Error(err))
		rdb.Close()
		return nil, nil
	}

	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	a.Logger.Info("Connected to Redis", zap.String("addr", a.Config.Redis.Addr))
	return cache.NewAnalyticsCache(rdb), cache.NewQuotaCache(rdb)
}
