package stats

// PlayerView is the normalized, display-ready form of RawPlayerCounters.
type PlayerView struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`

	Kills     int64   `json:"kills"`
	Deaths    int64   `json:"deaths"`
	KD        float64 `json:"kd"`
	Revives   int64   `json:"revives"`
	Teamkills int64   `json:"teamkills"`

	MatchesPlayed int64   `json:"matchesPlayed"`
	MatchesWon    int64   `json:"matchesWon"`
	WinRate       float64 `json:"winRate"`

	Playtime         string `json:"playtime"`
	SquadLeaderTime  string `json:"squadLeaderTime"`
	CommanderTime    string `json:"commanderTime"`
	HeavyVehicleTime string `json:"heavyVehicleTime"`
	HelicopterTime   string `json:"helicopterTime"`

	VehicleKills         int64   `json:"vehicleKills"`
	KnifeKills           int64   `json:"knifeKills"`
	AverageKillsPerMatch float64 `json:"averageKillsPerMatch"`

	TopRole   *TopRole    `json:"topRole"`
	TopWeapon *TopWeapon  `json:"topWeapon"`
	Rank      *RankResult `json:"rank"`

	DetailedWeapons []WeaponEntry `json:"detailedWeapons"`
	DetailedRoles   []RoleEntry   `json:"detailedRoles"`
}

// Aggregate derives the full view. A nil config leaves Rank nil; it never
// fails on sparse input.
func (e *Engine) Aggregate(raw RawPlayerCounters, config TierConfig) PlayerView {
	vt := e.classifier.ClassifyVehicleTime(raw.VehicleSeconds)

	return PlayerView{
		ID:          raw.ID,
		DisplayName: raw.DisplayName,

		Kills:     raw.Kills,
		Deaths:    raw.Deaths,
		KD:        KillDeathRatio(raw.Kills, raw.Deaths),
		Revives:   raw.Revives,
		Teamkills: raw.Teamkills,

		MatchesPlayed: raw.MatchesPlayed,
		MatchesWon:    raw.MatchesWon,
		WinRate:       WinRate(raw.MatchesWon, raw.MatchesPlayed),

		Playtime:         e.formatter.Format(raw.PlaytimeMinutes, Minutes),
		SquadLeaderTime:  e.formatter.Format(raw.SquadLeaderMinutes, Minutes),
		CommanderTime:    e.formatter.Format(raw.CommanderMinutes, Minutes),
		HeavyVehicleTime: e.formatter.Format(vt.HeavySeconds, Seconds),
		HelicopterTime:   e.formatter.Format(vt.HeliSeconds, Seconds),

		VehicleKills:         e.classifier.SumVehicleWeaponKills(raw.WeaponKills),
		KnifeKills:           e.classifier.SumMeleeKills(raw.WeaponKills),
		AverageKillsPerMatch: AverageKillsPerMatch(raw.Kills, raw.MatchesPlayed),

		TopRole:   e.TopRole(raw.RoleMinutes),
		TopWeapon: e.TopWeapon(raw.WeaponKills),
		Rank:      CalculateRank(raw.CategoryScores, config),

		DetailedWeapons: e.DetailedWeapons(raw.WeaponKills),
		DetailedRoles:   e.DetailedRoles(raw.RoleMinutes),
	}
}

// KillDeathRatio rounds to two decimals. With no deaths the ratio is the kill
// count itself.
func KillDeathRatio(kills, deaths int64) float64 {
	if deaths == 0 {
		return float64(kills)
	}
	return round(float64(kills)/float64(deaths), 2)
}

func WinRate(won, played int64) float64 {
	if played == 0 {
		return 0
	}
	return round(float64(won)/float64(played)*100, 1)
}

func AverageKillsPerMatch(kills, played int64) float64 {
	if played == 0 {
		return 0
	}
	return round(float64(kills)/float64(played), 1)
}
