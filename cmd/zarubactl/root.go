package main

import (
	"context"
	"os"

	"github.com/Ars145/ZarubaProfile-sub000/internal/analytics"
	"github.com/Ars145/ZarubaProfile-sub000/internal/logger"
	"github.com/Ars145/ZarubaProfile-sub000/internal/service"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	mongoURI string
	mongoDB  string
	locale   string
	logLevel string
	dbDriver string
	dbDSN    string
	tokenKey string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "zarubactl",
		Short:         "Squad profile statistics and administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.mongoURI, "mongo-uri", os.Getenv("MONGO_URI"), "analytics store URI; the bundled dataset is used when empty")
	flags.StringVar(&opts.mongoDB, "mongo-db", envOr("MONGO_DB", "squadjs"), "analytics database name")
	flags.StringVar(&opts.locale, "locale", envOr("STATS_LOCALE", "en"), "time unit locale (en or ru)")
	flags.StringVar(&opts.logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "log level")

	root.AddCommand(
		newStatsCmd(opts),
		newLeaderboardCmd(opts),
		newRanksCmd(opts),
		newTokenCmd(opts),
		newMigrateCmd(opts),
	)
	return root
}

func (o *options) logger() zerolog.Logger {
	return logger.ForLevel(o.logLevel)
}

// statsService builds the same source chain the server uses, minus caching.
func (o *options) statsService(ctx context.Context) (*service.StatsService, func(), error) {
	log := o.logger()

	fallback, err := analytics.NewFallbackSource()
	if err != nil {
		return nil, nil, err
	}

	var src analytics.Source = fallback
	cleanup := func() {}
	if o.mongoURI != "" {
		mongoSrc, err := analytics.NewMongoSource(ctx, analytics.MongoConfig{
			URI:              o.mongoURI,
			Database:         o.mongoDB,
			StatsCollection:  envOr("MONGO_COLLECTION_STATS", "mainstats"),
			ConfigCollection: envOr("MONGO_COLLECTION_CONFIG", "configs"),
		}, log)
		if err != nil {
			return nil, nil, err
		}
		src = analytics.NewChainSource(mongoSrc, fallback, log)
		cleanup = func() { _ = mongoSrc.Close(context.Background()) }
	}

	engine := stats.NewEngine(stats.WithUnits(stats.UnitsFor(o.locale)))
	return service.NewStatsService(src, engine, log), cleanup, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
