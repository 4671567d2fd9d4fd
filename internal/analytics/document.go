package analytics

import (
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"go.mongodb.org/mongo-driver/bson"
)

// squadDocument mirrors a SquadJS "mainstats" document. Map-valued fields are
// decoded as bson.D so the stored key order survives.
type squadDocument struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Kills     int64  `bson:"kills"`
	Death     int64  `bson:"death"`
	Revives   int64  `bson:"revives"`
	Teamkills int64  `bson:"teamkills"`
	Matches   struct {
		Matches int64 `bson:"matches"`
		Won     int64 `bson:"won"`
	} `bson:"matches"`
	Squad struct {
		Timeplayed int64 `bson:"timeplayed"`
		Leader     int64 `bson:"leader"`
		Cmd        int64 `bson:"cmd"`
	} `bson:"squad"`
	Roles       bson.D `bson:"roles"`
	Weapons     bson.D `bson:"weapons"`
	Possess     bson.D `bson:"possess"`
	ScoreGroups bson.D `bson:"scoreGroups"`
}

func (d squadDocument) counters() *stats.RawPlayerCounters {
	return &stats.RawPlayerCounters{
		ID:                 d.ID,
		DisplayName:        d.Name,
		Kills:              d.Kills,
		Deaths:             d.Death,
		Revives:            d.Revives,
		Teamkills:          d.Teamkills,
		MatchesPlayed:      d.Matches.Matches,
		MatchesWon:         d.Matches.Won,
		PlaytimeMinutes:    d.Squad.Timeplayed,
		SquadLeaderMinutes: d.Squad.Leader,
		CommanderMinutes:   d.Squad.Cmd,
		RoleMinutes:        countersFromBSON(d.Roles),
		WeaponKills:        countersFromBSON(d.Weapons),
		VehicleSeconds:     countersFromBSON(d.Possess),
		CategoryScores:     countersFromBSON(d.ScoreGroups),
	}
}

func (d squadDocument) summary() PlayerSummary {
	return PlayerSummary{
		ID:            d.ID,
		DisplayName:   d.Name,
		Kills:         d.Kills,
		Deaths:        d.Death,
		MatchesPlayed: d.Matches.Matches,
		MatchesWon:    d.Matches.Won,
	}
}

func countersFromBSON(doc bson.D) stats.Counters {
	if len(doc) == 0 {
		return nil
	}
	out := make(stats.Counters, 0, len(doc))
	for _, e := range doc {
		out = append(out, stats.Counter{Key: e.Key, Value: toInt64(e.Value)})
	}
	return out
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	default:
		return 0
	}
}

type rankConfigDocument struct {
	Type  string                    `bson:"type"`
	Icons map[string][]tierDocument `bson:"icons"`
}

type tierDocument struct {
	NeedScore int64  `bson:"needScore"`
	IconURL   string `bson:"iconUrl"`
}

func (d rankConfigDocument) tierConfig() stats.TierConfig {
	cfg := make(stats.TierConfig, len(d.Icons))
	for category, tiers := range d.Icons {
		ladder := make([]stats.Tier, len(tiers))
		for i, t := range tiers {
			ladder[i] = stats.Tier{Threshold: t.NeedScore, IconRef: t.IconURL}
		}
		cfg[category] = ladder
	}
	return cfg
}
