package analytics

import (
	"context"
	"errors"

	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/rs/zerolog"
)

// ChainSource asks the live store first and answers from the fallback when
// the live store is not configured, fails, or does not know the player.
type ChainSource struct {
	live     Source
	fallback Source
	logger   zerolog.Logger
}

// NewChainSource accepts a nil live source, in which case every call goes to
// the fallback.
func NewChainSource(live Source, fallback Source, logger zerolog.Logger) *ChainSource {
	return &ChainSource{live: live, fallback: fallback, logger: logger}
}

func (s *ChainSource) RawCounters(ctx context.Context, playerID string) (*stats.RawPlayerCounters, error) {
	if s.live != nil {
		raw, err := s.live.RawCounters(ctx, playerID)
		if err == nil {
			return raw, nil
		}
		s.logFallback(err, "raw counters", playerID)
	}
	return s.fallback.RawCounters(ctx, playerID)
}

func (s *ChainSource) TierConfig(ctx context.Context) (stats.TierConfig, error) {
	if s.live != nil {
		cfg, err := s.live.TierConfig(ctx)
		if err == nil && len(cfg) > 0 {
			return cfg, nil
		}
		if err == nil {
			s.logger.Debug().Msg("no rank config in live store, using fallback ladders")
		} else {
			s.logFallback(err, "rank config", "")
		}
	}
	return s.fallback.TierConfig(ctx)
}

func (s *ChainSource) Search(ctx context.Context, namePart string, limit int) ([]PlayerSummary, error) {
	if s.live != nil {
		out, err := s.live.Search(ctx, namePart, limit)
		if err == nil {
			return out, nil
		}
		s.logFallback(err, "search", "")
	}
	return s.fallback.Search(ctx, namePart, limit)
}

func (s *ChainSource) Top(ctx context.Context, sortBy SortField, limit int) ([]PlayerSummary, error) {
	if s.live != nil {
		out, err := s.live.Top(ctx, sortBy, limit)
		if err == nil {
			return out, nil
		}
		s.logFallback(err, "leaderboard", "")
	}
	return s.fallback.Top(ctx, sortBy, limit)
}

func (s *ChainSource) logFallback(err error, what, playerID string) {
	ev := s.logger.Warn()
	if errors.Is(err, ErrPlayerNotFound) {
		ev = s.logger.Debug()
	}
	ev.Err(err).Str("lookup", what).Str("player_id", playerID).Msg("live analytics lookup failed, using fallback data")
}
