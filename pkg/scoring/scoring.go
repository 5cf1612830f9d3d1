// Package scoring computes the metrics bundle for a layout and folds
// it into a single weighted objective score.
package scoring

import (
	"math"

	"github.com/heliosworks/habplanner/pkg/constraints"
	"github.com/heliosworks/habplanner/pkg/habitat"
	"github.com/heliosworks/habplanner/pkg/topology"
)

var privacyWeights = map[habitat.PrivacyLevel]float64{
	habitat.PrivacyLow:    0.3,
	habitat.PrivacyMedium: 0.6,
	habitat.PrivacyHigh:   1.0,
}

// Acoustic targets for noise-sensitive zones; isolation above the
// target earns a capped bonus.
var acousticTargets = map[habitat.ZoneName]float64{
	habitat.CrewQuarters: 0.7,
	habitat.Exercise:     0.6,
	habitat.Work:         0.5,
}

// Evaluate computes the metrics for a layout and its weighted scalar
// score. Feasibility comes from the hard-constraint validator; an
// infeasible layout keeps its metrics but has its score halved.
func Evaluate(layout *habitat.Layout, settings habitat.ConstraintSettings, weights habitat.ScoreWeights) (habitat.Metrics, float64, error) {
	w, err := weights.Normalized()
	if err != nil {
		return habitat.Metrics{}, 0, err
	}

	nhv := layout.NHV()
	nhvEff := 0.0
	if layout.PressurizedVolumeM3 > 0 {
		nhvEff = nhv / layout.PressurizedVolumeM3
	}
	transit := transitScore(layout, settings)
	privacy := privacyScore(layout)
	sustain := sustainabilityScore(layout, settings)
	energy := energyPerPersonDay(layout)
	safety := safetyScore(layout, settings)
	feasible := constraints.Validate(layout, settings).Passed

	metrics := habitat.Metrics{
		NHVM3:                    nhv,
		NHVEfficiency:            nhvEff,
		TransitDistanceScore:     transit,
		PrivacyScore:             privacy,
		SustainabilityScore:      sustain,
		EnergyUseKWhPerPersonDay: energy,
		SafetyRedundancyScore:    safety,
		Feasibility:              feasible,
	}

	energyScore := clamp(2.0/math.Max(energy, 1e-6), 0.0, 1.0)
	score := w.VolumeEff*math.Min(nhvEff/settings.MinNHVEfficiency, 1.2) +
		w.Privacy*privacy +
		w.Transit*transit +
		w.Safety*safety +
		w.Sustain*sustain +
		w.Energy*energyScore
	if !feasible {
		score *= 0.5
	}
	return metrics, score, nil
}

// transitScore is the fraction of required adjacency pairs satisfied
// by a direct edge.
func transitScore(layout *habitat.Layout, settings habitat.ConstraintSettings) float64 {
	if len(settings.AdjacencyPairs) == 0 {
		return 1.0
	}
	graph := topology.Build(layout.Zones)
	satisfied := 0
	for _, pair := range settings.AdjacencyPairs {
		if graph.HasEdge(string(pair[0]), string(pair[1])) {
			satisfied++
		}
	}
	return float64(satisfied) / float64(len(settings.AdjacencyPairs))
}

func privacyScore(layout *habitat.Layout) float64 {
	if len(layout.Zones) == 0 {
		return 0.0
	}
	total := 0.0
	for _, zone := range layout.Zones {
		weight, ok := privacyWeights[zone.Privacy]
		if !ok {
			weight = 0.3
		}
		bonus := 0.0
		if target, ok := acousticTargets[zone.Name]; ok {
			bonus = clamp(zone.AcousticIsolation-target, 0.0, 0.3)
		}
		total += clamp(weight+bonus, 0.0, 1.0)
	}
	return total / float64(len(layout.Zones))
}

func sustainabilityScore(layout *habitat.Layout, settings habitat.ConstraintSettings) float64 {
	waterFactor := math.Min(layout.Systems.WaterRecyclingRate/settings.MinWaterRecycling, 1.2)
	isruFactor := math.Min(layout.ISRURatio/0.5, 1.2)
	return math.Min((waterFactor+isruFactor)/2.0, 1.0)
}

// energyPerPersonDay estimates storage draw per person per day.
// Lower is better; degenerate crew or autonomy falls back to a poor
// fixed value rather than dividing by zero.
func energyPerPersonDay(layout *habitat.Layout) float64 {
	crew := layout.Metadata.Crew
	autonomy := layout.Systems.Power.AutonomyDays
	if crew <= 0 || autonomy <= 0 {
		return 10.0
	}
	return layout.Systems.Power.StorageKWh / (float64(crew) * float64(autonomy))
}

func safetyScore(layout *habitat.Layout, settings habitat.ConstraintSettings) float64 {
	loopsFactor := math.Min(float64(layout.Systems.ECLSSRedundancyLoops)/float64(settings.MinECLSSLoops), 1.5)

	egress := 0
	shelter := false
	for _, z := range layout.Zones {
		if z.IsEgress {
			egress++
		}
		if z.Name == habitat.StormShelter {
			shelter = true
		}
	}
	egressFactor := math.Min(float64(egress)/2.0, 1.0)
	shelterFactor := 0.0
	if shelter {
		shelterFactor = 1.0
	}
	return math.Min((loopsFactor+egressFactor+shelterFactor)/3.0, 1.0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
