package stats

// Snapshot is the frozen subset of a PlayerView stored with clan
// applications and memberships.
type Snapshot struct {
	Games        int64   `json:"games"`
	Hours        string  `json:"hours"`
	SquadLeader  string  `json:"sl"`
	Commander    string  `json:"cmd"`
	Driver       string  `json:"driver"`
	Heli         string  `json:"heli"`
	Kills        int64   `json:"kills"`
	Deaths       int64   `json:"deaths"`
	KD           float64 `json:"kd"`
	Revives      int64   `json:"revives"`
	Teamkills    int64   `json:"teamkills"`
	WinRate      float64 `json:"winrate"`
	VehicleKills int64   `json:"vehicleKills"`
	KnifeKills   int64   `json:"knifeKills"`
	AvgKills     float64 `json:"avgKills"`
}

func SnapshotOf(v PlayerView) Snapshot {
	return Snapshot{
		Games:        v.MatchesPlayed,
		Hours:        v.Playtime,
		SquadLeader:  v.SquadLeaderTime,
		Commander:    v.CommanderTime,
		Driver:       v.HeavyVehicleTime,
		Heli:         v.HelicopterTime,
		Kills:        v.Kills,
		Deaths:       v.Deaths,
		KD:           v.KD,
		Revives:      v.Revives,
		Teamkills:    v.Teamkills,
		WinRate:      v.WinRate,
		VehicleKills: v.VehicleKills,
		KnifeKills:   v.KnifeKills,
		AvgKills:     v.AverageKillsPerMatch,
	}
}
