package generator

import "github.com/heliosworks/habplanner/pkg/habitat"

// ZoneDefaults holds the per-zone seed values the generator starts
// from before crew scaling and jitter.
type ZoneDefaults struct {
	VolumeFraction float64
	UsableRatio    float64
	Privacy        habitat.PrivacyLevel
	Acoustic       float64
	Connections    []string
	Equipment      []string
}

// ZoneTable maps each zone kind to its generation defaults. Tables
// are plain values passed into Generate, so alternate tables can be
// supplied without touching package state.
type ZoneTable map[habitat.ZoneName]ZoneDefaults

// DefaultZoneTable returns a fresh copy of the baseline table derived
// from NASA habitability proportioning studies. Callers own the
// returned value.
func DefaultZoneTable() ZoneTable {
	return ZoneTable{
		habitat.Airlock: {
			VolumeFraction: 0.07, UsableRatio: 0.6, Privacy: habitat.PrivacyLow, Acoustic: 0.4,
			Connections: []string{"MaintenanceStorage", "Work"},
			Equipment:   []string{"dual-door", "suit-lock", "dust-scrubber"},
		},
		habitat.Work: {
			VolumeFraction: 0.18, UsableRatio: 0.85, Privacy: habitat.PrivacyMedium, Acoustic: 0.55,
			Connections: []string{"Airlock", "GalleyDining", "Exercise", "MaintenanceStorage"},
			Equipment:   []string{"lab-bench", "fab-station"},
		},
		habitat.HygieneMedical: {
			VolumeFraction: 0.09, UsableRatio: 0.8, Privacy: habitat.PrivacyHigh, Acoustic: 0.75,
			Connections: []string{"CrewQuarters", "StormShelter"},
			Equipment:   []string{"med-kit", "hygiene-module"},
		},
		habitat.GalleyDining: {
			VolumeFraction: 0.11, UsableRatio: 0.85, Privacy: habitat.PrivacyMedium, Acoustic: 0.6,
			Connections: []string{"Work", "CrewQuarters", "Agriculture"},
			Equipment:   []string{"galley", "table"},
		},
		habitat.CrewQuarters: {
			VolumeFraction: 0.20, UsableRatio: 0.9, Privacy: habitat.PrivacyHigh, Acoustic: 0.8,
			Connections: []string{"GalleyDining", "HygieneMedical", "Exercise"},
			Equipment:   []string{"pods", "privacy-panels"},
		},
		habitat.Exercise: {
			VolumeFraction: 0.1, UsableRatio: 0.8, Privacy: habitat.PrivacyMedium, Acoustic: 0.65,
			Connections: []string{"CrewQuarters", "Work"},
			Equipment:   []string{"treadmill", "flywheel"},
		},
		habitat.MaintenanceStorage: {
			VolumeFraction: 0.1, UsableRatio: 0.75, Privacy: habitat.PrivacyLow, Acoustic: 0.5,
			Connections: []string{"Airlock", "Work", "StormShelter", "Agriculture"},
			Equipment:   []string{"tool-racks", "spares"},
		},
		habitat.StormShelter: {
			VolumeFraction: 0.07, UsableRatio: 0.7, Privacy: habitat.PrivacyHigh, Acoustic: 0.85,
			Connections: []string{"HygieneMedical", "MaintenanceStorage"},
			Equipment:   []string{"shielded-bunks", "backup-comms"},
		},
		habitat.Agriculture: {
			VolumeFraction: 0.08, UsableRatio: 0.85, Privacy: habitat.PrivacyMedium, Acoustic: 0.6,
			Connections: []string{"GalleyDining", "MaintenanceStorage"},
			Equipment:   []string{"hydroponics", "algae"},
		},
	}
}
