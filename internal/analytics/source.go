// Package analytics reads raw player counters and rank ladders from the game
// server's analytics store, with a bundled dataset for when it is unavailable.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
)

var (
	ErrPlayerNotFound    = errors.New("player not found in analytics store")
	ErrSourceUnavailable = errors.New("analytics store unavailable")
	ErrInvalidSort       = errors.New("invalid sort field")
)

type CounterSource interface {
	RawCounters(ctx context.Context, playerID string) (*stats.RawPlayerCounters, error)
}

type TierSource interface {
	TierConfig(ctx context.Context) (stats.TierConfig, error)
}

type Directory interface {
	Search(ctx context.Context, namePart string, limit int) ([]PlayerSummary, error)
	Top(ctx context.Context, sortBy SortField, limit int) ([]PlayerSummary, error)
}

// Source is everything the stats service needs from one backing store.
type Source interface {
	CounterSource
	TierSource
	Directory
}

type PlayerSummary struct {
	ID            string
	DisplayName   string
	Kills         int64
	Deaths        int64
	MatchesPlayed int64
	MatchesWon    int64
}

type SortField string

const (
	SortKills   SortField = "kills"
	SortDeaths  SortField = "deaths"
	SortMatches SortField = "matches"
	SortWins    SortField = "wins"
)

func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(s)); f {
	case "":
		return SortKills, nil
	case SortKills, SortDeaths, SortMatches, SortWins:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
}

func (f SortField) value(p PlayerSummary) int64 {
	switch f {
	case SortDeaths:
		return p.Deaths
	case SortMatches:
		return p.MatchesPlayed
	case SortWins:
		return p.MatchesWon
	default:
		return p.Kills
	}
}
