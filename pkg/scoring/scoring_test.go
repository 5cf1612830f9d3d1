package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/heliosworks/habplanner/pkg/habitat"
)

func scoredLayout() *habitat.Layout {
	mk := func(name habitat.ZoneName, vol, usable float64, privacy habitat.PrivacyLevel, acoustic float64, conns ...string) habitat.Zone {
		return habitat.Zone{
			Name: name, VolumeM3: vol, UsableRatio: usable,
			Privacy: privacy, Connections: conns,
			AcousticIsolation: acoustic, Lighting: habitat.LightingNeutral,
			IsPressurized: true,
			IsEgress:      name == habitat.Airlock || name == habitat.StormShelter,
		}
	}

	zones := []habitat.Zone{
		mk(habitat.Airlock, 12, 0.6, habitat.PrivacyLow, 0.4, "MaintenanceStorage", "Work"),
		mk(habitat.Work, 30, 0.85, habitat.PrivacyMedium, 0.55, "Airlock", "GalleyDining", "Exercise", "MaintenanceStorage"),
		mk(habitat.HygieneMedical, 14, 0.8, habitat.PrivacyHigh, 0.75, "CrewQuarters", "StormShelter"),
		mk(habitat.GalleyDining, 18, 0.85, habitat.PrivacyMedium, 0.6, "Work", "CrewQuarters", "Agriculture"),
		mk(habitat.CrewQuarters, 32, 0.9, habitat.PrivacyHigh, 0.8, "GalleyDining", "HygieneMedical", "Exercise"),
		mk(habitat.Exercise, 16, 0.8, habitat.PrivacyMedium, 0.65, "CrewQuarters", "Work"),
		mk(habitat.MaintenanceStorage, 16, 0.75, habitat.PrivacyLow, 0.5, "Airlock", "Work", "StormShelter", "Agriculture"),
		mk(habitat.StormShelter, 12, 0.7, habitat.PrivacyHigh, 0.85, "HygieneMedical", "MaintenanceStorage"),
		mk(habitat.Agriculture, 13, 0.85, habitat.PrivacyMedium, 0.6, "GalleyDining", "MaintenanceStorage"),
	}
	total := 0.0
	for _, z := range zones {
		total += z.VolumeM3
	}

	return &habitat.Layout{
		HabitatName:         "Test-Hab",
		HabitatType:         habitat.Inflatable,
		PressurizedVolumeM3: total,
		Zones:               zones,
		Systems: habitat.Systems{
			ECLSSRedundancyLoops: 2,
			WaterRecyclingRate:   0.92,
			Power:                habitat.PowerSystem{Source: "Solar+Battery", AutonomyDays: 14, StorageKWh: 160},
			DustMitigation:       habitat.DustMitigation{DualDoor: true, SuitStorage: true, Electrostatic: true},
		},
		ShieldEquivalentGCm2: 5.8,
		ISRURatio:            0.6,
		DockingPorts:         2,
		Metadata:             habitat.Metadata{Crew: 4, DurationDays: 90, Seed: 7},
	}
}

func TestEvaluateFeasibleLayout(t *testing.T) {
	layout := scoredLayout()
	metrics, score, err := Evaluate(layout, habitat.DefaultSettings(), habitat.DefaultWeights())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if !metrics.Feasibility {
		t.Error("feasible layout reported infeasible")
	}
	if metrics.NHVM3 != layout.NHV() {
		t.Errorf("nhv_m3 = %v, want %v", metrics.NHVM3, layout.NHV())
	}
	wantEff := layout.NHV() / layout.PressurizedVolumeM3
	if math.Abs(metrics.NHVEfficiency-wantEff) > 1e-9 {
		t.Errorf("nhv_efficiency = %v, want %v", metrics.NHVEfficiency, wantEff)
	}
	if score <= 0 || score > 1.2 {
		t.Errorf("score = %v, want in (0, 1.2]", score)
	}
}

func TestEvaluateInfeasiblePenalty(t *testing.T) {
	settings := habitat.DefaultSettings()
	weights := habitat.DefaultWeights()

	layout := scoredLayout()
	_, feasibleScore, err := Evaluate(layout, settings, weights)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	// Shielding feeds no metric, so dropping it changes only the
	// feasibility flag and the score must halve exactly.
	layout.ShieldEquivalentGCm2 = 3.0
	metrics, brokenScore, err := Evaluate(layout, settings, weights)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if metrics.Feasibility {
		t.Error("under-shielded layout reported feasible")
	}
	if math.Abs(brokenScore-feasibleScore/2) > 1e-9 {
		t.Errorf("infeasible score = %v, want half of %v", brokenScore, feasibleScore)
	}
}

func TestEvaluateRejectsZeroWeights(t *testing.T) {
	_, _, err := Evaluate(scoredLayout(), habitat.DefaultSettings(), habitat.ScoreWeights{})
	if !errors.Is(err, habitat.ErrNonPositiveWeights) {
		t.Errorf("err = %v, want ErrNonPositiveWeights", err)
	}
}

func TestTransitScore(t *testing.T) {
	settings := habitat.DefaultSettings()
	layout := scoredLayout()

	if got := transitScore(layout, settings); got != 1.0 {
		t.Errorf("transit score = %v, want 1.0 with all pairs adjacent", got)
	}

	// Sever Airlock-Work on both sides: 2 of 3 pairs remain.
	for i := range layout.Zones {
		var conns []string
		for _, c := range layout.Zones[i].Connections {
			if (layout.Zones[i].Name == habitat.Airlock && c == "Work") ||
				(layout.Zones[i].Name == habitat.Work && c == "Airlock") {
				continue
			}
			conns = append(conns, c)
		}
		layout.Zones[i].Connections = conns
	}
	want := 2.0 / 3.0
	if got := transitScore(layout, settings); math.Abs(got-want) > 1e-9 {
		t.Errorf("transit score = %v, want %v", got, want)
	}
}

func TestTransitScoreNoPairs(t *testing.T) {
	settings := habitat.DefaultSettings()
	settings.AdjacencyPairs = nil
	if got := transitScore(scoredLayout(), settings); got != 1.0 {
		t.Errorf("transit score = %v, want 1.0 with no required pairs", got)
	}
}

func TestPrivacyScore(t *testing.T) {
	layout := scoredLayout()
	got := privacyScore(layout)
	if got <= 0 || got > 1 {
		t.Fatalf("privacy score = %v, want in (0, 1]", got)
	}

	// Downgrading every zone to Low with no acoustic bonus pins the
	// score at the Low weight.
	for i := range layout.Zones {
		layout.Zones[i].Privacy = habitat.PrivacyLow
		layout.Zones[i].AcousticIsolation = 0
	}
	if low := privacyScore(layout); math.Abs(low-0.3) > 1e-9 {
		t.Errorf("all-Low privacy score = %v, want 0.3", low)
	}
	if got <= 0.3 {
		t.Errorf("mixed-privacy score %v not above all-Low baseline", got)
	}
}

func TestPrivacyScoreAcousticBonusCapped(t *testing.T) {
	layout := &habitat.Layout{
		Zones: []habitat.Zone{{
			Name: habitat.CrewQuarters, Privacy: habitat.PrivacyMedium,
			AcousticIsolation: 1.0,
		}},
	}
	// Medium 0.6 plus the capped 0.3 bonus over the 0.7 target.
	if got := privacyScore(layout); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("privacy score = %v, want 0.9", got)
	}
}

func TestSustainabilityScoreCapped(t *testing.T) {
	layout := scoredLayout()
	// water 0.92/0.90 and isru 0.6/0.5 both exceed 1.0; the combined
	// score caps at 1.0.
	if got := sustainabilityScore(layout, habitat.DefaultSettings()); got != 1.0 {
		t.Errorf("sustainability score = %v, want 1.0", got)
	}

	layout.Systems.WaterRecyclingRate = 0.45
	layout.ISRURatio = 0.25
	want := (0.5 + 0.5) / 2.0
	if got := sustainabilityScore(layout, habitat.DefaultSettings()); math.Abs(got-want) > 1e-9 {
		t.Errorf("sustainability score = %v, want %v", got, want)
	}
}

func TestEnergyPerPersonDay(t *testing.T) {
	layout := scoredLayout()
	want := 160.0 / (4.0 * 14.0)
	if got := energyPerPersonDay(layout); math.Abs(got-want) > 1e-9 {
		t.Errorf("energy = %v, want %v", got, want)
	}
}

func TestEnergyPerPersonDayDegenerateFallback(t *testing.T) {
	layout := scoredLayout()
	layout.Metadata.Crew = 0
	if got := energyPerPersonDay(layout); got != 10.0 {
		t.Errorf("energy with zero crew = %v, want 10.0 fallback", got)
	}

	layout = scoredLayout()
	layout.Systems.Power.AutonomyDays = 0
	if got := energyPerPersonDay(layout); got != 10.0 {
		t.Errorf("energy with zero autonomy = %v, want 10.0 fallback", got)
	}
}

func TestSafetyScore(t *testing.T) {
	layout := scoredLayout()
	// loops 2/2 = 1.0, egress 2/2 = 1.0, shelter present = 1.0.
	if got := safetyScore(layout, habitat.DefaultSettings()); got != 1.0 {
		t.Errorf("safety score = %v, want 1.0", got)
	}

	var zones []habitat.Zone
	for _, z := range layout.Zones {
		if z.Name != habitat.StormShelter {
			zones = append(zones, z)
		}
	}
	layout.Zones = zones
	// One egress left and no shelter: (1.0 + 0.5 + 0)/3.
	want := 1.5 / 3.0
	if got := safetyScore(layout, habitat.DefaultSettings()); math.Abs(got-want) > 1e-9 {
		t.Errorf("safety score without shelter = %v, want %v", got, want)
	}
}
