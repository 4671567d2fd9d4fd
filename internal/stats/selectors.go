package stats

import (
	"sort"
	"strings"
)

type TopRole struct {
	Name          string `json:"name"`
	FormattedTime string `json:"formattedTime"`
	RawMinutes    int64  `json:"rawMinutes"`
	Icon          string `json:"icon"`
}

type TopWeapon struct {
	Name           string `json:"name"`
	Kills          int64  `json:"kills"`
	FullIdentifier string `json:"fullIdentifier"`
}

type WeaponEntry struct {
	Name           string         `json:"name"`
	Kills          int64          `json:"kills"`
	Category       WeaponCategory `json:"category"`
	FullIdentifier string         `json:"fullIdentifier"`
}

type RoleEntry struct {
	Name          string `json:"name"`
	FormattedTime string `json:"formattedTime"`
	RawMinutes    int64  `json:"rawMinutes"`
	Icon          string `json:"icon"`
}

// TopRole picks the role with the most minutes. Equal values keep the entry
// that appears first.
func (e *Engine) TopRole(roleMinutes Counters) *TopRole {
	best, ok := maxEntry(roleMinutes, func(Counter) bool { return true })
	if !ok {
		return nil
	}
	return &TopRole{
		Name:          lastSegment(best.Key),
		FormattedTime: e.formatter.Format(best.Value, Minutes),
		RawMinutes:    best.Value,
		Icon:          roleIcon(best.Key),
	}
}

// TopWeapon picks the weapon with the most kills among hand-held weapons,
// skipping vehicle-mounted, melee and explosive identifiers.
func (e *Engine) TopWeapon(weaponKills Counters) *TopWeapon {
	best, ok := maxEntry(weaponKills, func(c Counter) bool {
		return !e.classifier.IsVehicleWeapon(c.Key) &&
			!e.classifier.IsMelee(c.Key) &&
			!isExplosive(c.Key)
	})
	if !ok {
		return nil
	}
	return &TopWeapon{
		Name:           lastSegment(best.Key),
		Kills:          best.Value,
		FullIdentifier: best.Key,
	}
}

func (e *Engine) DetailedWeapons(weaponKills Counters) []WeaponEntry {
	out := make([]WeaponEntry, 0, len(weaponKills))
	for _, c := range weaponKills {
		if c.Value == 0 {
			continue
		}
		out = append(out, WeaponEntry{
			Name:           lastSegment(c.Key),
			Kills:          c.Value,
			Category:       e.classifier.WeaponCategory(c.Key),
			FullIdentifier: c.Key,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Kills > out[j].Kills })
	return out
}

func (e *Engine) DetailedRoles(roleMinutes Counters) []RoleEntry {
	out := make([]RoleEntry, 0, len(roleMinutes))
	for _, c := range roleMinutes {
		if c.Value == 0 {
			continue
		}
		out = append(out, RoleEntry{
			Name:          lastSegment(c.Key),
			FormattedTime: e.formatter.Format(c.Value, Minutes),
			RawMinutes:    c.Value,
			Icon:          roleIcon(c.Key),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RawMinutes > out[j].RawMinutes })
	return out
}

func maxEntry(counters Counters, keep func(Counter) bool) (Counter, bool) {
	var (
		best  Counter
		found bool
	)
	for _, c := range counters {
		if !keep(c) {
			continue
		}
		if !found || c.Value > best.Value {
			best = c
			found = true
		}
	}
	return best, found
}

func roleIcon(key string) string {
	return strings.ReplaceAll(key, "_", "")
}
