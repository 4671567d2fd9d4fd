package analytics

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/tidwall/gjson"
)

var (
	//go:embed fallback/players.json
	fallbackPlayers []byte
	//go:embed fallback/ranks.json
	fallbackRanks []byte
)

// FallbackSource serves a fixed dataset of known players and the default
// rank ladders. It never reports itself unavailable.
type FallbackSource struct {
	players []stats.RawPlayerCounters
	tiers   stats.TierConfig
}

func NewFallbackSource() (*FallbackSource, error) {
	return NewFallbackSourceFrom(fallbackPlayers, fallbackRanks)
}

func NewFallbackSourceFrom(playersJSON, ranksJSON []byte) (*FallbackSource, error) {
	players, err := parsePlayers(playersJSON)
	if err != nil {
		return nil, err
	}
	tiers, err := parseRankConfig(ranksJSON)
	if err != nil {
		return nil, err
	}
	return &FallbackSource{players: players, tiers: tiers}, nil
}

func (s *FallbackSource) RawCounters(_ context.Context, playerID string) (*stats.RawPlayerCounters, error) {
	for i := range s.players {
		if s.players[i].ID == playerID {
			p := s.players[i]
			return &p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

func (s *FallbackSource) TierConfig(context.Context) (stats.TierConfig, error) {
	return s.tiers, nil
}

func (s *FallbackSource) Search(_ context.Context, namePart string, limit int) ([]PlayerSummary, error) {
	needle := strings.ToLower(namePart)
	out := make([]PlayerSummary, 0)
	for _, p := range s.players {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(p.DisplayName), needle) {
			out = append(out, summaryOf(p))
		}
	}
	return out, nil
}

func (s *FallbackSource) Top(_ context.Context, sortBy SortField, limit int) ([]PlayerSummary, error) {
	out := make([]PlayerSummary, len(s.players))
	for i, p := range s.players {
		out[i] = summaryOf(p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sortBy.value(out[i]) > sortBy.value(out[j])
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func summaryOf(p stats.RawPlayerCounters) PlayerSummary {
	return PlayerSummary{
		ID:            p.ID,
		DisplayName:   p.DisplayName,
		Kills:         p.Kills,
		Deaths:        p.Deaths,
		MatchesPlayed: p.MatchesPlayed,
		MatchesWon:    p.MatchesWon,
	}
}

func parsePlayers(data []byte) ([]stats.RawPlayerCounters, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid fallback players document")
	}

	var (
		players  []stats.RawPlayerCounters
		parseErr error
	)
	gjson.ParseBytes(data).ForEach(func(_, doc gjson.Result) bool {
		p, err := parsePlayer(doc)
		if err != nil {
			parseErr = err
			return false
		}
		players = append(players, p)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return players, nil
}

func parsePlayer(doc gjson.Result) (stats.RawPlayerCounters, error) {
	p := stats.RawPlayerCounters{
		ID:                 doc.Get("_id").String(),
		DisplayName:        doc.Get("name").String(),
		Kills:              doc.Get("kills").Int(),
		Deaths:             doc.Get("death").Int(),
		Revives:            doc.Get("revives").Int(),
		Teamkills:          doc.Get("teamkills").Int(),
		MatchesPlayed:      doc.Get("matches.matches").Int(),
		MatchesWon:         doc.Get("matches.won").Int(),
		PlaytimeMinutes:    doc.Get("squad.timeplayed").Int(),
		SquadLeaderMinutes: doc.Get("squad.leader").Int(),
		CommanderMinutes:   doc.Get("squad.cmd").Int(),
	}

	fields := []struct {
		path string
		dst  *stats.Counters
	}{
		{"roles", &p.RoleMinutes},
		{"weapons", &p.WeaponKills},
		{"possess", &p.VehicleSeconds},
		{"scoreGroups", &p.CategoryScores},
	}
	for _, f := range fields {
		r := doc.Get(f.path)
		if !r.Exists() {
			continue
		}
		if err := f.dst.UnmarshalJSON([]byte(r.Raw)); err != nil {
			return p, fmt.Errorf("player %s: %s: %w", p.ID, f.path, err)
		}
	}
	return p, nil
}

func parseRankConfig(data []byte) (stats.TierConfig, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid fallback rank config")
	}

	cfg := make(stats.TierConfig)
	gjson.GetBytes(data, "icons").ForEach(func(category, ladder gjson.Result) bool {
		tiers := make([]stats.Tier, 0)
		ladder.ForEach(func(_, t gjson.Result) bool {
			tiers = append(tiers, stats.Tier{
				Threshold: t.Get("needScore").Int(),
				IconRef:   t.Get("iconUrl").String(),
			})
			return true
		})
		cfg[category.String()] = tiers
		return true
	})
	return cfg, nil
}
