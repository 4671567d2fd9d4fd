package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/config"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/rs/zerolog"
)

// Reporter forwards server errors to Sentry. Without a DSN it only logs.
type Reporter struct {
	enabled bool
	handler *sentryhttp.Handler
	logger  zerolog.Logger
}

func NewReporter(cfg *config.Config, logger zerolog.Logger) (*Reporter, error) {
	if cfg.SentryDSN == "" {
		logger.Info().Msg("sentry disabled")
		return &Reporter{logger: logger}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		EnableTracing:    true,
		TracesSampleRate: 1.0 / 100.0,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("sentry enabled")
	return &Reporter{
		enabled: true,
		handler: sentryhttp.New(sentryhttp.Options{Repanic: true}),
		logger:  logger,
	}, nil
}

func (rep *Reporter) Middleware(next http.Handler) http.Handler {
	if !rep.enabled {
		return next
	}
	return rep.handler.Handle(next)
}

func (rep *Reporter) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &rep.logger
	}
	logger.Error().Err(err).Msg("request failed")

	if !rep.enabled {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if id := GetRequestID(ctx); id != "" {
			scope.SetTag("request_id", id)
		}
		if playerID, ok := PlayerID(ctx); ok {
			scope.SetUser(sentry.User{ID: playerID})
		}
		hub.CaptureException(err)
	})
}

func (rep *Reporter) Flush() {
	if rep.enabled {
		sentry.Flush(5 * time.Second)
	}
}
