package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Counter is a single identifier -> count entry of a raw counter map.
type Counter struct {
	Key   string
	Value int64
}

// Counters keeps the insertion order of the source document. Tie-breaks in
// the selectors depend on that order, which a Go map would lose.
type Counters []Counter

func (c Counters) Get(key string) (int64, bool) {
	for _, e := range c {
		if e.Key == key {
			return e.Value, true
		}
	}
	return 0, false
}

func (c Counters) Total() int64 {
	var total int64
	for _, e := range c {
		total += e.Value
	}
	return total
}

func (c *Counters) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid counters document")
	}

	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*c = nil
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("counters must be an object, got %s", res.Type)
	}

	out := make(Counters, 0)
	res.ForEach(func(key, value gjson.Result) bool {
		out = append(out, Counter{Key: key.String(), Value: value.Int()})
		return true
	})
	*c = out
	return nil
}

func (c Counters) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(e.Value, 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RawPlayerCounters are the lifetime tallies read from the analytics store.
// Durations in RoleMinutes are minutes, VehicleSeconds are seconds.
type RawPlayerCounters struct {
	ID                 string   `json:"id"`
	DisplayName        string   `json:"displayName"`
	Kills              int64    `json:"kills"`
	Deaths             int64    `json:"deaths"`
	Revives            int64    `json:"revives"`
	Teamkills          int64    `json:"teamkills"`
	MatchesPlayed      int64    `json:"matchesPlayed"`
	MatchesWon         int64    `json:"matchesWon"`
	PlaytimeMinutes    int64    `json:"playtimeMinutes"`
	SquadLeaderMinutes int64    `json:"squadLeaderMinutes"`
	CommanderMinutes   int64    `json:"commanderMinutes"`
	RoleMinutes        Counters `json:"roleMinutes"`
	WeaponKills        Counters `json:"weaponKills"`
	VehicleSeconds     Counters `json:"vehicleSeconds"`
	CategoryScores     Counters `json:"categoryScores"`
}
