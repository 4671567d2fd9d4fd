package analytics

import (
	"context"
	"errors"

	"github.com/Ars145/ZarubaProfile-sub000/internal/cache"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/rs/zerolog"
)

const tierConfigKey = "tiers"

// CachedSource memoizes counters and rank ladders. Misses and errors are not
// cached. Directory lookups pass straight through.
type CachedSource struct {
	Source
	counters cache.Store[stats.RawPlayerCounters]
	tiers    cache.Store[stats.TierConfig]
	logger   zerolog.Logger
}

func NewCachedSource(
	src Source,
	counters cache.Store[stats.RawPlayerCounters],
	tiers cache.Store[stats.TierConfig],
	logger zerolog.Logger,
) *CachedSource {
	return &CachedSource{Source: src, counters: counters, tiers: tiers, logger: logger}
}

func (s *CachedSource) RawCounters(ctx context.Context, playerID string) (*stats.RawPlayerCounters, error) {
	cached, err := s.counters.Get(ctx, playerID)
	if err == nil {
		s.logger.Debug().Str("player_id", playerID).Msg("raw counters cache hit")
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("player_id", playerID).Msg("raw counters cache read failed")
	}

	raw, err := s.Source.RawCounters(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if err := s.counters.Set(ctx, playerID, *raw); err != nil {
		s.logger.Warn().Err(err).Str("player_id", playerID).Msg("raw counters cache write failed")
	}
	return raw, nil
}

func (s *CachedSource) TierConfig(ctx context.Context) (stats.TierConfig, error) {
	cached, err := s.tiers.Get(ctx, tierConfigKey)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().Err(err).Msg("rank config cache read failed")
	}

	cfg, err := s.Source.TierConfig(ctx)
	if err != nil {
		return nil, err
	}
	if len(cfg) > 0 {
		if err := s.tiers.Set(ctx, tierConfigKey, cfg); err != nil {
			s.logger.Warn().Err(err).Msg("rank config cache write failed")
		}
	}
	return cfg, nil
}
