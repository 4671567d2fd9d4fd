package stats

// Vocabulary holds the identifier tables used to bucket raw counters. It is
// immutable once built; the classifier only reads from it.
type Vocabulary struct {
	heavyVehicles         map[string]struct{}
	helicopters           map[string]struct{}
	vehicleWeaponPatterns []string
	meleeWeapons          map[string]struct{}
}

func NewVocabulary(heavyVehicles, helicopters, vehicleWeaponPatterns, meleeWeapons []string) *Vocabulary {
	return &Vocabulary{
		heavyVehicles:         toSet(heavyVehicles),
		helicopters:           toSet(helicopters),
		vehicleWeaponPatterns: append([]string(nil), vehicleWeaponPatterns...),
		meleeWeapons:          toSet(meleeWeapons),
	}
}

func (v *Vocabulary) IsHeavyVehicle(family string) bool {
	_, ok := v.heavyVehicles[family]
	return ok
}

func (v *Vocabulary) IsHelicopter(family string) bool {
	_, ok := v.helicopters[family]
	return ok
}

func (v *Vocabulary) IsMeleeWeapon(name string) bool {
	_, ok := v.meleeWeapons[name]
	return ok
}

func (v *Vocabulary) VehicleWeaponPatterns() []string {
	return append([]string(nil), v.vehicleWeaponPatterns...)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

var defaultHeavyVehicles = []string{
	"ZTZ99", "T72B3", "T62", "M1A1", "AUS", "M1A2", "2A6", "FV4034", "ZBD04A",
	"FV510UA", "FV510", "BFV", "BMP2", "BMP1", "MTLB", "FV107", "FV432", "AAVP7A1",
	"ZSL10", "ZBL08", "M1126", "M113A3", "LAV", "LAV6", "CROWS", "ASLAV", "LAV2",
	"LAV25", "BTR82A", "BTR80", "Sprut", "BMD4M", "BMD1M", "ZTD05", "ZBD05",
}

var defaultHelicopters = []string{
	"Z8G", "CH146", "MRH90", "SA330", "MI8", "UH60", "UH1Y", "MI17", "Z8J",
}

var defaultVehicleWeaponPatterns = []string{
	"_pg9v_", "_White_ZU23_", "_M2_Technical_", "_S5_Proj2_", "_DShK_Technical_",
	"_QJY88_CTM131_", "_QJZ89_CTM131_", "_Kord_Safir_", "_MG3_DoorGun_", "_CROWS_M2_",
	"_50Cal_M1151_", "_50Cal_LUVW_", "_C6_LUVW_", "_M240_Loaders_", "_CROWS_M240_",
	"_GPMG_", "_RWS_M2_", "_Mag58_Bushmaser_", "_Kord_Tigr_", "_Arbalet_Kord_",
	"_BTR80_", "_BRDM2_", "_QJZ89_RWS_", "_QJZ89_CSK131_", "_QJY88_CSK131_",
	"_BTR82A_", "_30mm_", "LAV25_", "Coyote_", "ASLAV_", "_LAV_762_", "_LAV_C6_",
	"_RWS_C6_", "_TLAV_M2_", "_ZBL08_", "_HJ73_", "_Cupola_QJZ89_", "_AAVP7A1_M2_",
	"_40MM_MK19_", "_FV432_", "_EnforcerRWS_", "_MTLB_", "_23mm_", "_Scimitar_Rarden_",
	"_BMP1_", "_ZBD04A_", "_Refleks_Proj2_", "_100mm_Frag_", "_Warrior_", "_40mm_",
	"BFV_", "_Konkurs_", "_BMP2_", "_BMD4M_", "_BMD1M_", "_Kord_BTR-D_", "_PK_RWS_Gun_",
	"_Sprut_", "_2A45_", "_125mm_", "_ZPT-98_", "_2A46_", "_Cupola_Dshk_", "_2A20_",
	"_115mm_", "_M256A1_", "_L55_", "_L30A1_", "_L94A1_", "_BM21_", "_120mm_",
}

var defaultMeleeWeapons = []string{
	"SOCP", "AK74Bayonet", "M9Bayonet", "G3Bayonet", "Bayonet2000", "AKMBayonet",
	"SA80Bayonet", "QNL-95", "OKC-3S",
}

// DefaultVocabulary returns the Squad vehicle and weapon tables.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(defaultHeavyVehicles, defaultHelicopters, defaultVehicleWeaponPatterns, defaultMeleeWeapons)
}
