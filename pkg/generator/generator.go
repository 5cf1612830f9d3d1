// Package generator builds an initial, already-feasible habitat
// layout from a small mission configuration.
package generator

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heliosworks/habplanner/pkg/constraints"
	"github.com/heliosworks/habplanner/pkg/habitat"
)

// Config is the mission configuration the generator starts from.
type Config struct {
	HabitatName         string                `json:"habitat_name,omitempty" yaml:"habitat_name,omitempty"`
	Crew                int                   `json:"crew" yaml:"crew"`
	DurationDays        int                   `json:"duration_days" yaml:"duration_days"`
	HabitatType         habitat.HabitatType   `json:"habitat_type" yaml:"habitat_type"`
	PressurizedVolumeM3 float64               `json:"pressurized_volume_m3" yaml:"pressurized_volume_m3"`
	TargetISRURatio     float64               `json:"target_isru_ratio" yaml:"target_isru_ratio"`
	DockingPorts        int                   `json:"docking_ports" yaml:"docking_ports"`
	Seed                int64                 `json:"seed" yaml:"seed"`
	Weights             *habitat.ScoreWeights `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// DefaultConfig returns the seed mission configuration.
func DefaultConfig() Config {
	return Config{
		HabitatName:         "Helios-Init",
		Crew:                4,
		DurationDays:        90,
		HabitatType:         habitat.Inflatable,
		PressurizedVolumeM3: 160,
		TargetISRURatio:     0.6,
		DockingPorts:        2,
		Seed:                42,
	}
}

// LoadConfig reads a mission config from a YAML or JSON file, chosen
// by extension.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// ConfigError reports a mission configuration outside the supported
// envelope. It is fatal and never retried.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Msg)
}

// InfeasibleError reports that the one-shot self-heal pass could not
// reach a feasible layout.
type InfeasibleError struct {
	FailedRules []string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("initial layout generation failed: %s", strings.Join(e.FailedRules, ", "))
}

// Zones whose volumes scale with crew count.
var crewScaledZones = map[habitat.ZoneName]bool{
	habitat.CrewQuarters:   true,
	habitat.GalleyDining:   true,
	habitat.HygieneMedical: true,
	habitat.Exercise:       true,
	habitat.Agriculture:    true,
}

// Zones boosted by the NHV self-heal pass.
var healZones = map[habitat.ZoneName]bool{
	habitat.CrewQuarters:   true,
	habitat.GalleyDining:   true,
	habitat.HygieneMedical: true,
	habitat.StormShelter:   true,
}

// Generate builds a feasible baseline layout from the configuration
// using the default zone table.
func Generate(cfg Config, settings habitat.ConstraintSettings) (*habitat.Layout, error) {
	return GenerateWithTable(cfg, settings, DefaultZoneTable())
}

// GenerateWithTable is Generate with an explicit zone table, for
// callers that proportion the habitat differently.
func GenerateWithTable(cfg Config, settings habitat.ConstraintSettings, table ZoneTable) (*habitat.Layout, error) {
	if cfg.Crew < settings.MinCrew || cfg.Crew > settings.MaxCrew {
		return nil, &ConfigError{
			Field: "crew",
			Msg:   fmt.Sprintf("%d outside supported range %d-%d", cfg.Crew, settings.MinCrew, settings.MaxCrew),
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	totalFraction := 0.0
	for _, d := range table {
		totalFraction += d.VolumeFraction
	}

	// Build zones in canonical order so the jitter draws are
	// reproducible for a given seed.
	var zones []habitat.Zone
	for _, name := range habitat.ZoneNames() {
		d, ok := table[name]
		if !ok {
			continue
		}
		volume := cfg.PressurizedVolumeM3 * d.VolumeFraction / totalFraction
		if crewScaledZones[name] {
			volume *= math.Max(1.0, float64(cfg.Crew)/4.0)
		}

		lighting := habitat.LightingNeutral
		if name == habitat.CrewQuarters || name == habitat.GalleyDining {
			lighting = habitat.LightingAdaptive
		}

		zones = append(zones, habitat.Zone{
			Name:              name,
			VolumeM3:          volume,
			UsableRatio:       d.UsableRatio,
			Privacy:           d.Privacy,
			Connections:       append([]string(nil), d.Connections...),
			AcousticIsolation: d.Acoustic,
			Lighting:          lighting,
			IsPressurized:     true,
			IsEgress:          name == habitat.Airlock || name == habitat.StormShelter,
			Equipment:         append([]string(nil), d.Equipment...),
		})
	}

	// Seeded jitter of ±5% per zone, floored at 5 m³, then
	// renormalized so the zone volumes close back to the target.
	for i := range zones {
		jitter := rng.Float64()*0.10 - 0.05
		zones[i].VolumeM3 *= 1 + jitter
		zones[i].VolumeM3 = math.Max(zones[i].VolumeM3, 5.0)
	}
	total := 0.0
	for _, z := range zones {
		total += z.VolumeM3
	}
	if total > 0 {
		scale := cfg.PressurizedVolumeM3 / total
		for i := range zones {
			zones[i].VolumeM3 *= scale
		}
	}

	name := cfg.HabitatName
	if name == "" {
		name = "Helios-Init"
	}

	layout := &habitat.Layout{
		HabitatName:         name,
		HabitatType:         cfg.HabitatType,
		PressurizedVolumeM3: cfg.PressurizedVolumeM3,
		Zones:               zones,
		Systems: habitat.Systems{
			ECLSSRedundancyLoops: 2,
			WaterRecyclingRate:   0.92,
			Power: habitat.PowerSystem{
				Source:       "Solar+Battery",
				AutonomyDays: max(settings.MinPowerAutonomyDays, 14),
				StorageKWh:   160.0,
			},
			Thermal: habitat.ThermalSystem{Control: "heat-pump", RangeC: [2]float64{-173, 127}},
			Comms:   habitat.CommsSystem{Local: true, Gateway: "HALO-link"},
			DustMitigation: habitat.DustMitigation{
				DualDoor:      true,
				SuitStorage:   true,
				Electrostatic: true,
			},
		},
		ShieldEquivalentGCm2: math.Max(5.5, 5.0+0.2*float64(cfg.Crew)),
		ISRURatio:            math.Min(1.0, math.Max(0.5, cfg.TargetISRURatio)),
		DockingPorts:         cfg.DockingPorts,
		Metadata: habitat.Metadata{
			Crew:         cfg.Crew,
			DurationDays: cfg.DurationDays,
			Seed:         cfg.Seed,
		},
	}

	result := constraints.Validate(layout, settings)
	if !result.Passed && hasNHVShortfall(result.FailedRules) {
		selfHealNHV(layout, cfg.Crew, settings)
		result = constraints.Validate(layout, settings)
	}
	if !result.Passed {
		return nil, &InfeasibleError{FailedRules: result.FailedRules}
	}
	return layout, nil
}

func hasNHVShortfall(failed []string) bool {
	for _, rule := range failed {
		if rule == "nhv_per_crew" || rule == "nhv_efficiency" {
			return true
		}
	}
	return false
}

// selfHealNHV applies the single corrective pass: boost the habitable
// core zones by sqrt(needed/current) and recompute the pressurized
// total. Runs at most once per generation; a second shortfall is
// fatal.
func selfHealNHV(layout *habitat.Layout, crew int, settings habitat.ConstraintSettings) {
	needed := float64(crew) * settings.MinNHVPerPerson
	current := 0.0
	for _, z := range layout.Zones {
		current += z.VolumeM3 * z.UsableRatio
	}
	boost := 1.1
	if current > 0 {
		boost = math.Sqrt(needed / current)
	}

	for i := range layout.Zones {
		if healZones[layout.Zones[i].Name] {
			layout.Zones[i].VolumeM3 *= boost
		}
	}
	total := 0.0
	for _, z := range layout.Zones {
		total += z.VolumeM3
	}
	layout.PressurizedVolumeM3 = total
}
