package habitat

// ZoneName identifies one of the nine functional compartments.
type ZoneName string

const (
	Airlock            ZoneName = "Airlock"
	Work               ZoneName = "Work"
	HygieneMedical     ZoneName = "HygieneMedical"
	GalleyDining       ZoneName = "GalleyDining"
	CrewQuarters       ZoneName = "CrewQuarters"
	Exercise           ZoneName = "Exercise"
	MaintenanceStorage ZoneName = "MaintenanceStorage"
	StormShelter       ZoneName = "StormShelter"
	Agriculture        ZoneName = "Agriculture"
)

// ZoneNames lists every zone kind in canonical order.
func ZoneNames() []ZoneName {
	return []ZoneName{
		Airlock, Work, HygieneMedical, GalleyDining, CrewQuarters,
		Exercise, MaintenanceStorage, StormShelter, Agriculture,
	}
}

// PrivacyLevel is the qualitative privacy rating of a zone.
type PrivacyLevel string

const (
	PrivacyLow    PrivacyLevel = "Low"
	PrivacyMedium PrivacyLevel = "Medium"
	PrivacyHigh   PrivacyLevel = "High"
)

// LightingProfile is the lighting treatment applied to a zone.
type LightingProfile string

const (
	LightingWarm     LightingProfile = "Warm3000K"
	LightingNeutral  LightingProfile = "Neutral4000K"
	LightingCool     LightingProfile = "Cool6500K"
	LightingAdaptive LightingProfile = "Adaptive"
)

// HabitatType is the pressure-shell construction class.
type HabitatType string

const (
	Inflatable     HabitatType = "Inflatable"
	Rigid          HabitatType = "Rigid"
	RegolithHybrid HabitatType = "RegolithHybrid"
)

// Zone is a pressurized or support compartment inside the habitat.
// Connections are declared one-directional; consumers symmetrize them
// into an undirected adjacency graph (see pkg/topology).
type Zone struct {
	Name              ZoneName        `json:"name" validate:"required,oneof=Airlock Work HygieneMedical GalleyDining CrewQuarters Exercise MaintenanceStorage StormShelter Agriculture"`
	VolumeM3          float64         `json:"volume_m3" validate:"gt=0"`
	UsableRatio       float64         `json:"usable_ratio" validate:"gt=0,lte=1"`
	Privacy           PrivacyLevel    `json:"privacy" validate:"required,oneof=Low Medium High"`
	Connections       []string        `json:"connections"`
	AcousticIsolation float64         `json:"acoustic_isolation" validate:"gte=0,lte=1"`
	Lighting          LightingProfile `json:"lighting" validate:"required,oneof=Warm3000K Neutral4000K Cool6500K Adaptive"`
	IsPressurized     bool            `json:"is_pressurized"`
	IsEgress          bool            `json:"is_egress"`
	Equipment         []string        `json:"equipment"`
}

// PowerSystem summarizes the electrical subsystem.
type PowerSystem struct {
	Source       string  `json:"source"`
	AutonomyDays int     `json:"autonomy_days" validate:"gte=0"`
	StorageKWh   float64 `json:"storage_kwh" validate:"gte=0"`
}

// ThermalSystem summarizes thermal control.
type ThermalSystem struct {
	Control string     `json:"control"`
	RangeC  [2]float64 `json:"range_c"`
}

// CommsSystem summarizes the communication links.
type CommsSystem struct {
	Local   bool   `json:"local"`
	Gateway string `json:"gateway"`
}

// DustMitigation summarizes regolith dust countermeasures. DualDoor
// and SuitStorage are both required by the hard-constraint validator.
type DustMitigation struct {
	DualDoor      bool `json:"dual_door"`
	SuitStorage   bool `json:"suit_storage"`
	Electrostatic bool `json:"electrostatic"`
}

// Systems is the habitat-wide subsystem summary.
type Systems struct {
	ECLSSRedundancyLoops int            `json:"eclss_redundancy_loops" validate:"gte=1"`
	WaterRecyclingRate   float64        `json:"water_recycling_rate" validate:"gte=0,lte=1"`
	Power                PowerSystem    `json:"power"`
	Thermal              ThermalSystem  `json:"thermal"`
	Comms                CommsSystem    `json:"comms"`
	DustMitigation       DustMitigation `json:"dust_mitigation"`
}

// Metadata carries the mission parameters a layout was designed for.
type Metadata struct {
	Crew         int   `json:"crew" validate:"gt=0"`
	DurationDays int   `json:"duration_days" validate:"gt=0"`
	Seed         int64 `json:"seed,omitempty"`
}

// Layout is the complete habitat layout description. Layouts are
// treated as immutable once built: the optimizer mutates only deep
// copies obtained via Clone.
type Layout struct {
	HabitatName          string      `json:"habitat_name" validate:"required"`
	HabitatType          HabitatType `json:"habitat_type" validate:"required,oneof=Inflatable Rigid RegolithHybrid"`
	PressurizedVolumeM3  float64     `json:"pressurized_volume_m3" validate:"gt=0"`
	Zones                []Zone      `json:"zones" validate:"min=1,dive"`
	Systems              Systems     `json:"systems"`
	ShieldEquivalentGCm2 float64     `json:"shield_equivalent_g_cm2" validate:"gte=0"`
	ISRURatio            float64     `json:"isru_ratio" validate:"gte=0,lte=1"`
	DockingPorts         int         `json:"docking_ports" validate:"gte=0"`
	Metadata             Metadata    `json:"metadata"`
}

// ZoneByName returns the zone with the given name, or nil if absent.
func (l *Layout) ZoneByName(name ZoneName) *Zone {
	for i := range l.Zones {
		if l.Zones[i].Name == name {
			return &l.Zones[i]
		}
	}
	return nil
}

// NHV returns the net habitable volume: the sum of volume times
// usable ratio over pressurized zones.
func (l *Layout) NHV() float64 {
	total := 0.0
	for _, z := range l.Zones {
		if z.IsPressurized {
			total += z.VolumeM3 * z.UsableRatio
		}
	}
	return total
}

// Clone returns a deep copy sharing no mutable state with the
// original.
func (l *Layout) Clone() *Layout {
	out := *l
	out.Zones = make([]Zone, len(l.Zones))
	for i, z := range l.Zones {
		zc := z
		zc.Connections = append([]string(nil), z.Connections...)
		zc.Equipment = append([]string(nil), z.Equipment...)
		out.Zones[i] = zc
	}
	return &out
}

// Metrics is the calculated performance bundle for a layout.
type Metrics struct {
	NHVM3                    float64 `json:"nhv_m3"`
	NHVEfficiency            float64 `json:"nhv_efficiency"`
	TransitDistanceScore     float64 `json:"transit_distance_score"`
	PrivacyScore             float64 `json:"privacy_score"`
	SustainabilityScore      float64 `json:"sustainability_score"`
	EnergyUseKWhPerPersonDay float64 `json:"energy_use_kwh_per_person_day"`
	SafetyRedundancyScore    float64 `json:"safety_redundancy_score"`
	Feasibility              bool    `json:"feasibility"`
}

// ConstraintSettings holds the thresholds used by the hard-constraint
// validator. Pure configuration, no behavior.
type ConstraintSettings struct {
	MinCrew              int           `json:"min_crew" yaml:"min_crew"`
	MaxCrew              int           `json:"max_crew" yaml:"max_crew"`
	MinDurationDays      int           `json:"min_duration_days" yaml:"min_duration_days"`
	MaxDurationDays      int           `json:"max_duration_days" yaml:"max_duration_days"`
	MinNHVPerPerson      float64       `json:"min_nhv_per_person" yaml:"min_nhv_per_person"`
	MinNHVEfficiency     float64       `json:"min_nhv_efficiency" yaml:"min_nhv_efficiency"`
	MinShieldGCm2        float64       `json:"min_shield_g_cm2" yaml:"min_shield_g_cm2"`
	MinECLSSLoops        int           `json:"min_eclss_loops" yaml:"min_eclss_loops"`
	MinWaterRecycling    float64       `json:"min_water_recycling" yaml:"min_water_recycling"`
	MinPowerAutonomyDays int           `json:"min_power_autonomy_days" yaml:"min_power_autonomy_days"`
	MinPrivacyQuarters   float64       `json:"min_privacy_quarters" yaml:"min_privacy_quarters"`
	RequiredZones        []ZoneName    `json:"required_zones" yaml:"required_zones"`
	AdjacencyPairs       [][2]ZoneName `json:"adjacency_pairs" yaml:"adjacency_pairs"`
	MaxStormShelterHops  int           `json:"max_storm_shelter_hops" yaml:"max_storm_shelter_hops"`
}

// ScoreWeights holds the six objective weights.
type ScoreWeights struct {
	VolumeEff float64 `json:"w_volume_eff" yaml:"w_volume_eff"`
	Privacy   float64 `json:"w_privacy" yaml:"w_privacy"`
	Transit   float64 `json:"w_transit" yaml:"w_transit"`
	Safety    float64 `json:"w_safety" yaml:"w_safety"`
	Sustain   float64 `json:"w_sustain" yaml:"w_sustain"`
	Energy    float64 `json:"w_energy" yaml:"w_energy"`
}

// Normalized returns a copy whose weights sum to 1.0. It fails when
// the weight total is not positive.
func (w ScoreWeights) Normalized() (ScoreWeights, error) {
	total := w.VolumeEff + w.Privacy + w.Transit + w.Safety + w.Sustain + w.Energy
	if total <= 0 {
		return ScoreWeights{}, ErrNonPositiveWeights
	}
	return ScoreWeights{
		VolumeEff: w.VolumeEff / total,
		Privacy:   w.Privacy / total,
		Transit:   w.Transit / total,
		Safety:    w.Safety / total,
		Sustain:   w.Sustain / total,
		Energy:    w.Energy / total,
	}, nil
}

// ValidationResult is the outcome of running the hard constraints.
// Messages holds one human-readable line per rule, success or
// failure; FailedRules holds the stable identifiers of failed rules
// in encounter order.
type ValidationResult struct {
	Passed      bool     `json:"passed"`
	Messages    []string `json:"messages"`
	FailedRules []string `json:"failed_rules"`
}

// OptimizationLogEntry summarizes a single optimizer step.
type OptimizationLogEntry struct {
	Iteration int     `json:"iteration"`
	Score     float64 `json:"score"`
	Accepted  bool    `json:"accepted"`
	Reason    string  `json:"reason"`
}

// OptimizationResult is the optimizer output bundle: the best
// accepted layout, its metrics and score, and the full step history.
type OptimizationResult struct {
	Layout  *Layout                `json:"layout"`
	Metrics Metrics                `json:"metrics"`
	Score   float64                `json:"score"`
	History []OptimizationLogEntry `json:"history"`
}
