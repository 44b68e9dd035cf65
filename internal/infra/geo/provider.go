// Package geo selects the geo index / metadata store backend from config.
package geo

import (
	"context"
	"log/slog"

	"adradar/config"
	"adradar/internal/domain/constants"
	"adradar/internal/domain/lifecycle"
	"adradar/internal/domain/repository"
	"adradar/internal/infra/geo/memory"
	redisstore "adradar/internal/infra/geo/redis"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params holds dependencies for the geo store provider, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Stores bundles the two capability groups of the ad store: the spatial
// query side and the attribute lookup side. A backend may serve both from
// one client (Redis) or from two in-process structures (memory).
type Stores struct {
	fx.Out

	GeoIndex      repository.GeoIndex
	MetadataStore repository.MetadataStore
}

// NewStores creates the configured geo store backend.
func NewStores(params Params) (Stores, error) {
	cfg := params.Config.GeoStore
	logger := params.Logger

	// Default to the in-process index when nothing is configured.
	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.GeoProviderMemory {
		cellSizeKm := 0.0
		if cfg != nil {
			cellSizeKm = cfg.GridCellSizeKm
		}
		logger.Info("Using in-memory geo store",
			slog.Float64("gridCellSizeKm", cellSizeKm),
		)

		return Stores{
			GeoIndex:      memory.NewGridIndex(cellSizeKm),
			MetadataStore: memory.NewMetadataStore(),
		}, nil
	}

	if cfg.Provider != constants.GeoProviderRedis {
		return Stores{}, errors.Errorf("unknown geo store provider: %s", cfg.Provider)
	}

	if cfg.Redis == nil || cfg.Redis.Addr == "" {
		return Stores{}, errors.New("redis address is required for redis provider")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := redisstore.New(client)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return store.Close()
		},
	})

	logger.Info("Using Redis geo store", slog.String("addr", cfg.Redis.Addr))

	return Stores{
		GeoIndex:      store,
		MetadataStore: store,
	}, nil
}
