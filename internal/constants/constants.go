package constants

import "time"

const (
	ExternalAPITimeout      = 10 * time.Second
	DatabaseTimeout         = 5 * time.Second
	AnalyticsTimeout        = 5 * time.Second
	AnalyticsConnectTimeout = 10 * time.Second
	RequestTimeout          = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	AnalyticsMaxPoolSize = 20
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	SearchSuggestionLimit   = 10
	LeaderboardDefaultLimit = 10
	LeaderboardMaxLimit     = 50
	SteamSummariesBatchSize = 100
)

const (
	ClanTagMaxLength           = 10
	CustomRequirementMaxLength = 30
	ApplicationMessageMax      = 500
)

const (
	RateLimiterIdleTTL = 30 * time.Minute
)
