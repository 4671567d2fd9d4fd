package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	ServerPort  string
	LogLevel    string
	CORSOrigins []string

	DBDriver string
	DBDSN    string

	MongoURI              string
	MongoDB               string
	MongoStatsCollection  string
	MongoConfigCollection string

	RedisAddr     string
	RedisPassword string
	StatsCacheTTL time.Duration
	StatsLocale   string

	SteamAPIKey string

	AuthTokenKey string
	AuthTokenTTL time.Duration

	SentryDSN string

	RateLimitRPS   int
	RateLimitBurst int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),

		DBDriver: getEnv("DB_DRIVER", "sqlite3"),
		DBDSN:    getEnv("DB_DSN", "file:zaruba.db?_foreign_keys=on&_busy_timeout=5000"),

		MongoURI:              getEnv("MONGO_URI", ""),
		MongoDB:               getEnv("MONGO_DB", "squadjs"),
		MongoStatsCollection:  getEnv("MONGO_COLLECTION_STATS", "mainstats"),
		MongoConfigCollection: getEnv("MONGO_COLLECTION_CONFIG", "configs"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		StatsLocale:   getEnv("STATS_LOCALE", "en"),

		SteamAPIKey: getEnv("STEAM_API_KEY", ""),

		AuthTokenKey: getEnv("AUTH_TOKEN_KEY", ""),

		SentryDSN: getEnv("SENTRY_DSN", ""),
	}

	var err error
	if cfg.StatsCacheTTL, err = getDuration("STATS_CACHE_TTL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.AuthTokenTTL, err = getDuration("AUTH_TOKEN_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getInt("RATE_LIMIT_RPS", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 40); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("db_driver", cfg.DBDriver).
		Bool("mongo_enabled", cfg.MongoURI != "").
		Bool("redis_enabled", cfg.RedisAddr != "").
		Bool("steam_enabled", cfg.SteamAPIKey != "").
		Bool("sentry_enabled", cfg.SentryDSN != "").
		Str("stats_locale", cfg.StatsLocale).
		Dur("stats_cache_ttl", cfg.StatsCacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) validate() error {
	if c.AuthTokenKey == "" {
		return fmt.Errorf("AUTH_TOKEN_KEY is required")
	}
	if len(c.AuthTokenKey) != 64 {
		return fmt.Errorf("AUTH_TOKEN_KEY must be 64 hex characters, got %d", len(c.AuthTokenKey))
	}
	if port, err := strconv.Atoi(c.ServerPort); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a port number, got %q", c.ServerPort)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %d", c.RateLimitRPS)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst)
	}
	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite3 or postgres, got %q", c.DBDriver)
	}
	switch c.StatsLocale {
	case "en", "ru":
	default:
		return fmt.Errorf("STATS_LOCALE must be en or ru, got %q", c.StatsLocale)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

var Module = fx.Provide(Load)
