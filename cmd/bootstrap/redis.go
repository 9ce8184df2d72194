package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"table-booking/internal/infra/cache"
	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase/shared"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewScheduleCache,
	),
)

// NewScheduleCache returns the Redis cache, or a no-op cache when REDIS_ADDR
// is unset. An unreachable Redis is logged and tolerated.
func NewScheduleCache(lc fx.Lifecycle, cfg config.Config) shared.ScheduleCache {
	if cfg.Redis.Addr == "" {
		slog.Info("REDIS_ADDR not set, schedule cache disabled")
		return cache.Noop{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				slog.Warn("redis ping failed, reads fall back to the database", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return cache.NewScheduleCache(rdb, cfg.Redis.ScheduleTTL)
}
