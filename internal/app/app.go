// Package app wires configuration into the running matching stack shared by
// the API server and the matchctl CLI.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/timmy/solarmatch/internal/api/handler"
	"github.com/timmy/solarmatch/internal/config"
	"github.com/timmy/solarmatch/internal/logger"
	"github.com/timmy/solarmatch/internal/repository"
	"github.com/timmy/solarmatch/internal/service"
	"github.com/timmy/solarmatch/internal/storage"
)

// App holds the initialized dependencies.
type App struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Archive *service.RankingArchive
	Matches *service.MatchService
}

// NewLogger builds the process logger from the logging section and installs it
// as the package default.
func NewLogger(cfg config.LoggingConfig, serviceName string) *logger.Logger {
	if cfg.ServiceName != "" {
		serviceName = cfg.ServiceName
	}
	l := logger.New(logger.Options{
		Level:       cfg.Level,
		Format:      cfg.Format,
		ServiceName: serviceName,
		File:        cfg.File,
		FileOnly:    cfg.FileOnly,
		MaxSizeMB:   cfg.MaxSizeMB,
		MaxBackups:  cfg.MaxBackups,
		MaxAgeDays:  cfg.MaxAgeDays,
		Compress:    cfg.Compress,
	})
	logger.SetDefault(l)
	return l
}

// New opens the database and the optional Redis lock and S3 archive, then
// builds the MatchService on top of them.
// Parameters:
//   - ctx: context for the connection checks.
//   - cfg: loaded configuration.
//
// Returns:
//   - *App: initialized dependencies. Call Close when done.
//   - error: non-nil if any enabled dependency cannot be reached.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a := &App{DB: db}

	var locker service.JobLocker
	if cfg.Redis.Enabled {
		client, err := service.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Redis = client
		locker = service.NewRedisJobLocker(client, cfg.Matching.LockTTL, cfg.Matching.LockWait)
		logger.With(logger.Fields{"addr": cfg.Redis.Addr}).Info(ctx, "Redis job lock enabled")
	}

	if cfg.Archive.Enabled {
		store, err := storage.NewArchiveStorage(ctx, cfg.Archive)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Archive = service.NewRankingArchive(store, cfg.Archive.Prefix)
		logger.With(logger.Fields{"bucket": cfg.Archive.Bucket}).Info(ctx, "Ranking archive enabled")
	}

	a.Matches = service.NewMatchService(
		repository.NewJobRepository(db),
		repository.NewProfessionalRepository(db),
		repository.NewMatchRepository(db),
		locker,
		a.Archive,
		&service.MatchServiceConfig{Workers: cfg.Matching.Workers},
	)
	return a, nil
}

// HealthChecks returns a probe for every connected dependency.
func (a *App) HealthChecks() map[string]handler.HealthCheck {
	checks := map[string]handler.HealthCheck{}
	if sqlDB, err := a.DB.DB(); err == nil {
		checks["database"] = sqlDB.PingContext
	}
	if a.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		}
	}
	return checks
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Warn("Failed to close redis client: %v", err)
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database: %v", err)
			}
		}
	}
}
