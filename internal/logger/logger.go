package logger

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// New builds the process logger at LOG_LEVEL. The .env file is read here as
// well because the logger is constructed before the config.
func New() zerolog.Logger {
	_ = godotenv.Load()
	return ForLevel(os.Getenv("LOG_LEVEL"))
}

func SetLevel(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger()

	logger = logger.Level(level)

	return logger
}

// ForLevel parses a LOG_LEVEL value, falling back to info.
func ForLevel(name string) zerolog.Logger {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return SetLevel(level)
}

var Module = fx.Provide(New)
