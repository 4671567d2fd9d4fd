package fx

import (
	"context"
	"database/sql"

	"github.com/Ars145/ZarubaProfile-sub000/internal/analytics"
	"github.com/Ars145/ZarubaProfile-sub000/internal/api"
	"github.com/Ars145/ZarubaProfile-sub000/internal/auth"
	"github.com/Ars145/ZarubaProfile-sub000/internal/cache"
	"github.com/Ars145/ZarubaProfile-sub000/internal/config"
	"github.com/Ars145/ZarubaProfile-sub000/internal/database"
	"github.com/Ars145/ZarubaProfile-sub000/internal/db"
	"github.com/Ars145/ZarubaProfile-sub000/internal/logger"
	"github.com/Ars145/ZarubaProfile-sub000/internal/middleware"
	"github.com/Ars145/ZarubaProfile-sub000/internal/repository"
	"github.com/Ars145/ZarubaProfile-sub000/internal/server"
	"github.com/Ars145/ZarubaProfile-sub000/internal/service"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	sqlDB, err := database.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info().Msg("closing database connection")
			return sqlDB.Close()
		},
	})
	return sqlDB, nil
}

func ProvideEngine(cfg *config.Config) *stats.Engine {
	return stats.NewEngine(stats.WithUnits(stats.UnitsFor(cfg.StatsLocale)))
}

// ProvideAnalytics chains the live Mongo store, when configured, in front of
// the bundled dataset and caches the result.
func ProvideAnalytics(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (analytics.Source, error) {
	fallback, err := analytics.NewFallbackSource()
	if err != nil {
		return nil, err
	}

	var src analytics.Source = fallback
	if cfg.MongoURI != "" {
		mongoSrc, err := analytics.NewMongoSource(context.Background(), analytics.MongoConfig{
			URI:              cfg.MongoURI,
			Database:         cfg.MongoDB,
			StatsCollection:  cfg.MongoStatsCollection,
			ConfigCollection: cfg.MongoConfigCollection,
		}, logger)
		if err != nil {
			// the bundled dataset keeps the stats pages alive
			logger.Warn().Err(err).Msg("analytics store unreachable, serving bundled dataset")
		} else {
			lc.Append(fx.Hook{OnStop: mongoSrc.Close})
			src = analytics.NewChainSource(mongoSrc, fallback, logger)
		}
	}

	counters, tiers := newCaches(lc, cfg, logger)
	return analytics.NewCachedSource(src, counters, tiers, logger), nil
}

func newCaches(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (cache.Store[stats.RawPlayerCounters], cache.Store[stats.TierConfig]) {
	var (
		counters cache.Store[stats.RawPlayerCounters]
		tiers    cache.Store[stats.TierConfig]
	)

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		counters = cache.NewRedis[stats.RawPlayerCounters](client, "zaruba:counters:", cfg.StatsCacheTTL)
		tiers = cache.NewRedis[stats.TierConfig](client, "zaruba:tiers:", cfg.StatsCacheTTL)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("stats cache backed by redis")

		lc.Append(fx.Hook{OnStop: func(context.Context) error { return client.Close() }})
		return counters, tiers
	}

	memCounters := cache.NewMemory[stats.RawPlayerCounters](cfg.StatsCacheTTL)
	memTiers := cache.NewMemory[stats.TierConfig](cfg.StatsCacheTTL)
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		memCounters.Close()
		return memTiers.Close()
	}})
	return memCounters, memTiers
}

func ProvideReporter(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*middleware.Reporter, error) {
	reporter, err := middleware.NewReporter(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		reporter.Flush()
		return nil
	}})
	return reporter, nil
}

func ProvideRateLimiter(lc fx.Lifecycle, cfg *config.Config) *middleware.RateLimiter {
	limiter := middleware.NewRateLimiterFromConfig(cfg)
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		limiter.Stop()
		return nil
	}})
	return limiter
}

func ProvideVerifier(tokens *auth.TokenService) middleware.TokenVerifier {
	return tokens
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewClanRepository),
	fx.Provide(repository.NewApplicationRepository),
	fx.Provide(repository.NewInvitationRepository),
	// analytics
	fx.Provide(ProvideAnalytics),
	fx.Provide(ProvideEngine),
	// api client
	fx.Provide(api.NewSteamClient),
	// auth
	fx.Provide(auth.NewTokenServiceFromConfig),
	fx.Provide(ProvideVerifier),
	// svc
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewClanService),
	fx.Provide(service.NewApplicationService),
	fx.Provide(service.NewInvitationService),
	// server
	fx.Provide(ProvideReporter),
	fx.Provide(ProvideRateLimiter),
	fx.Provide(server.NewAPI),
	fx.Provide(server.NewStatsServer),
)
