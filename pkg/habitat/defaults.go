package habitat

import "errors"

// ErrNonPositiveWeights is returned by ScoreWeights.Normalized when
// the weights do not sum to a positive total.
var ErrNonPositiveWeights = errors.New("score weights must sum to more than zero")

// DefaultSettings returns the baseline mission thresholds for a
// fixed-crew lunar surface habitat.
func DefaultSettings() ConstraintSettings {
	return ConstraintSettings{
		MinCrew:              2,
		MaxCrew:              4,
		MinDurationDays:      30,
		MaxDurationDays:      180,
		MinNHVPerPerson:      25.0,
		MinNHVEfficiency:     0.70,
		MinShieldGCm2:        5.0,
		MinECLSSLoops:        2,
		MinWaterRecycling:    0.90,
		MinPowerAutonomyDays: 14,
		MinPrivacyQuarters:   0.7,
		RequiredZones: []ZoneName{
			Airlock, Work, HygieneMedical, GalleyDining,
			CrewQuarters, Exercise, MaintenanceStorage, StormShelter,
		},
		AdjacencyPairs: [][2]ZoneName{
			{Airlock, Work},
			{CrewQuarters, HygieneMedical},
			{CrewQuarters, GalleyDining},
		},
		MaxStormShelterHops: 3,
	}
}

// DefaultWeights returns the baseline multi-objective weights.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		VolumeEff: 0.20,
		Privacy:   0.15,
		Transit:   0.15,
		Safety:    0.20,
		Sustain:   0.15,
		Energy:    0.15,
	}
}
