package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ars145/ZarubaProfile-sub000/internal/analytics"
	"github.com/Ars145/ZarubaProfile-sub000/internal/constants"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type StatsService struct {
	source analytics.Source
	engine *stats.Engine
	logger zerolog.Logger
}

func NewStatsService(source analytics.Source, engine *stats.Engine, logger zerolog.Logger) *StatsService {
	return &StatsService{source: source, engine: engine, logger: logger}
}

// PlayerStats fetches raw counters and the tier ladders concurrently and
// derives the player view. A failing tier source only drops the rank.
func (s *StatsService) PlayerStats(ctx context.Context, steamID string) (*stats.PlayerView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.AnalyticsTimeout)
	defer cancel()

	var (
		raw   *stats.RawPlayerCounters
		tiers stats.TierConfig
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.source.RawCounters(gctx, steamID)
		return err
	})
	g.Go(func() error {
		var err error
		tiers, err = s.source.TierConfig(gctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("tier config unavailable, rank omitted")
			tiers = nil
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, analytics.ErrPlayerNotFound) {
			return nil, fmt.Errorf("stats for %s: %w", steamID, domain.ErrStatsNotFound)
		}
		s.logger.Error().Err(err).Str("steam_id", steamID).Msg("failed to fetch raw counters")
		return nil, fmt.Errorf("failed to fetch raw counters: %w", err)
	}

	view := s.engine.Aggregate(*raw, tiers)
	s.logger.Debug().
		Str("steam_id", steamID).
		Int64("kills", view.Kills).
		Bool("ranked", view.Rank != nil).
		Msg("player stats aggregated")

	return &view, nil
}

func (s *StatsService) Snapshot(ctx context.Context, steamID string) (*stats.Snapshot, error) {
	view, err := s.PlayerStats(ctx, steamID)
	if err != nil {
		return nil, err
	}
	snapshot := stats.SnapshotOf(*view)
	return &snapshot, nil
}

func (s *StatsService) RankConfig(ctx context.Context) (stats.TierConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.AnalyticsTimeout)
	defer cancel()

	tiers, err := s.source.TierConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tier config: %w", err)
	}
	if tiers == nil {
		return nil, fmt.Errorf("tier config: %w", domain.ErrNotFound)
	}
	return tiers, nil
}

func (s *StatsService) Search(ctx context.Context, query string) ([]analytics.PlayerSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty: %w", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.AnalyticsTimeout)
	defer cancel()

	results, err := s.source.Search(ctx, query, constants.SearchSuggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	return results, nil
}

// Leaderboard orders players by sortBy. A zero limit means the default page
// size; larger limits are capped.
func (s *StatsService) Leaderboard(ctx context.Context, sortBy string, limit int) ([]analytics.PlayerSummary, error) {
	field, err := analytics.ParseSortField(sortBy)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	switch {
	case limit < 0:
		return nil, fmt.Errorf("limit must not be negative: %w", domain.ErrInvalidInput)
	case limit == 0:
		limit = constants.LeaderboardDefaultLimit
	case limit > constants.LeaderboardMaxLimit:
		limit = constants.LeaderboardMaxLimit
	}

	ctx, cancel := context.WithTimeout(ctx, constants.AnalyticsTimeout)
	defer cancel()

	results, err := s.source.Top(ctx, field, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return results, nil
}
