package stats

import "strings"

type WeaponCategory string

const (
	CategoryInfantry  WeaponCategory = "infantry"
	CategoryVehicle   WeaponCategory = "vehicle"
	CategoryKnife     WeaponCategory = "knife"
	CategoryArtillery WeaponCategory = "artillery"
)

type VehicleTime struct {
	HeavySeconds int64 `json:"heavySeconds"`
	HeliSeconds  int64 `json:"heliSeconds"`
}

// Classifier buckets raw counter identifiers of the form
// Faction_Category_Specific_... against a Vocabulary.
type Classifier struct {
	vocab *Vocabulary
}

func NewClassifier(vocab *Vocabulary) *Classifier {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Classifier{vocab: vocab}
}

// ClassifyVehicleTime sums possession seconds by the vehicle family token,
// the second underscore-delimited segment of the key.
func (c *Classifier) ClassifyVehicleTime(vehicleSeconds Counters) VehicleTime {
	var vt VehicleTime
	for _, e := range vehicleSeconds {
		family := familySegment(e.Key)
		if family == "" {
			continue
		}
		if c.vocab.IsHelicopter(family) {
			vt.HeliSeconds += e.Value
		}
		if c.vocab.IsHeavyVehicle(family) {
			vt.HeavySeconds += e.Value
		}
	}
	return vt
}

// SumVehicleWeaponKills adds up kills for every pattern separately, so a key
// that contains two patterns is counted twice.
func (c *Classifier) SumVehicleWeaponKills(weaponKills Counters) int64 {
	var total int64
	for _, pattern := range c.vocab.vehicleWeaponPatterns {
		for _, e := range weaponKills {
			if strings.Contains(e.Key, pattern) {
				total += e.Value
			}
		}
	}
	return total
}

func (c *Classifier) SumMeleeKills(weaponKills Counters) int64 {
	var total int64
	for _, e := range weaponKills {
		if c.IsMelee(e.Key) {
			total += e.Value
		}
	}
	return total
}

func (c *Classifier) IsVehicleWeapon(key string) bool {
	for _, pattern := range c.vocab.vehicleWeaponPatterns {
		if strings.Contains(key, pattern) {
			return true
		}
	}
	return false
}

func (c *Classifier) IsMelee(key string) bool {
	return c.vocab.IsMeleeWeapon(lastSegment(key))
}

func isExplosive(key string) bool {
	return strings.Contains(key, "Projectile") || strings.Contains(key, "Heavy")
}

// WeaponCategory resolves in priority order vehicle, knife, artillery, infantry.
func (c *Classifier) WeaponCategory(key string) WeaponCategory {
	switch {
	case c.IsVehicleWeapon(key):
		return CategoryVehicle
	case c.IsMelee(key):
		return CategoryKnife
	case isExplosive(key):
		return CategoryArtillery
	default:
		return CategoryInfantry
	}
}

// lastSegment returns the part after the final underscore, or the whole key
// when that part is empty.
func lastSegment(key string) string {
	idx := strings.LastIndexByte(key, '_')
	if idx < 0 {
		return key
	}
	if seg := key[idx+1:]; seg != "" {
		return seg
	}
	return key
}

func familySegment(key string) string {
	parts := strings.Split(key, "_")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
