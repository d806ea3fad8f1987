package main

import (
	"time"

	"github.com/trackflow/trackflow/backend/internal/apper"
	"github.com/trackflow/trackflow/backend/internal/config"
	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/services"
	"github.com/trackflow/trackflow/backend/internal/store"
	"github.com/trackflow/trackflow/backend/pkg/logger"
)

// appServices holds the initialized store and services shared by the routes.
type appServices struct {
	cfg        *config.Config
	store      *store.Store
	logService *services.ActivityLogService
}

// bootstrap wires the configured store driver and starts background work.
// Activity logging and its retention scheduler only exist in database mode;
// the other drivers have nowhere durable to write.
func bootstrap(cfg *config.Config) *appServices {
	svc := &appServices{cfg: cfg}

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		var opts []store.MemoryOption
		if cfg.Store.LatencyMS > 0 {
			opts = append(opts, store.WithLatency(time.Duration(cfg.Store.LatencyMS)*time.Millisecond))
		}
		svc.store = store.NewMemoryStore(cfg.Store.Seed, opts...)

	case config.StoreDriverDatabase:
		if err := models.InitDB(&cfg.Database); err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		if err := models.AutoMigrate(); err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
		if cfg.Store.Seed {
			if err := models.SeedDefaultData(); err != nil {
				logger.Warn().Err(err).Msg("Failed to seed default data")
			}
		}

		services.InitActivityLogger(models.GetDB())
		svc.logService = services.NewActivityLogService(models.GetDB(), cfg.Store.RetentionDays)
		svc.logService.StartCleanupScheduler()

		svc.store = store.NewDBStore(models.GetDB(), nil)

	case config.StoreDriverRemote:
		client := apper.NewClient(&cfg.Apper)
		svc.store = store.NewRemoteStore(client, nil)

	default:
		logger.Fatalf("Unknown store driver: %s", cfg.Store.Driver)
	}

	return svc
}

// shutdown stops background schedulers.
func (s *appServices) shutdown() {
	if s.logService != nil {
		s.logService.StopCleanupScheduler()
	}
	logger.Info().Msg("All schedulers stopped")
}
