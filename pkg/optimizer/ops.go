package optimizer

import (
	"math"
	"math/rand"

	"github.com/heliosworks/habplanner/pkg/habitat"
)

// opKind enumerates the neighbor operators. Each variant carries its
// own mutation logic and its name doubles as the acceptance-log
// reason, so the dispatch is exhaustive at compile time.
type opKind int

const (
	opAdjustZoneVolume opKind = iota
	opTuneSystems
	opAdjustISRU
	opAdjustPrivacy
	numOps
)

func (k opKind) String() string {
	switch k {
	case opAdjustZoneVolume:
		return "adjust_zone_volume"
	case opTuneSystems:
		return "tune_systems"
	case opAdjustISRU:
		return "adjust_isru"
	case opAdjustPrivacy:
		return "adjust_privacy"
	}
	return "unknown"
}

// apply mutates the candidate in place. Candidates are always private
// deep copies, so a rejected mutation is discarded by dropping the
// copy.
func (k opKind) apply(layout *habitat.Layout, rng *rand.Rand) {
	switch k {
	case opAdjustZoneVolume:
		adjustZoneVolume(layout, rng)
	case opTuneSystems:
		tuneSystems(layout, rng)
	case opAdjustISRU:
		adjustISRU(layout, rng)
	case opAdjustPrivacy:
		adjustPrivacy(layout, rng)
	}
}

// adjustZoneVolume transfers a small volume slice between two distinct
// zones, leaving the airlock and storm shelter untouched. The donor
// never drops below the 5 m³ floor and the pressurized total is
// recomputed from the new zone sum.
func adjustZoneVolume(layout *habitat.Layout, rng *rand.Rand) {
	var adjustable []int
	for i, z := range layout.Zones {
		if z.Name != habitat.Airlock && z.Name != habitat.StormShelter {
			adjustable = append(adjustable, i)
		}
	}
	if len(adjustable) < 2 {
		return
	}

	di := rng.Intn(len(adjustable))
	ri := rng.Intn(len(adjustable) - 1)
	if ri >= di {
		ri++
	}
	donor := &layout.Zones[adjustable[di]]
	receiver := &layout.Zones[adjustable[ri]]

	transfer := donor.VolumeM3 * uniform(rng, 0.02, 0.06)
	donor.VolumeM3 = math.Max(donor.VolumeM3-transfer, 5.0)
	receiver.VolumeM3 += transfer

	total := 0.0
	for _, z := range layout.Zones {
		total += z.VolumeM3
	}
	layout.PressurizedVolumeM3 = total
}

func tuneSystems(layout *habitat.Layout, rng *rand.Rand) {
	sys := &layout.Systems
	sys.WaterRecyclingRate = clamp(sys.WaterRecyclingRate+uniform(rng, -0.02, 0.03), 0.90, 0.99)
	sys.Power.AutonomyDays = max(14, sys.Power.AutonomyDays+rng.Intn(4)-1)
	sys.Power.StorageKWh = math.Max(120.0, sys.Power.StorageKWh+uniform(rng, -10, 15))
}

func adjustISRU(layout *habitat.Layout, rng *rand.Rand) {
	layout.ISRURatio = clamp(layout.ISRURatio+uniform(rng, -0.05, 0.08), 0.4, 1.0)
}

func adjustPrivacy(layout *habitat.Layout, rng *rand.Rand) {
	var targets []int
	for i, z := range layout.Zones {
		switch z.Name {
		case habitat.Work, habitat.Exercise, habitat.GalleyDining:
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return
	}
	zone := &layout.Zones[targets[rng.Intn(len(targets))]]
	zone.AcousticIsolation = clamp(zone.AcousticIsolation+uniform(rng, -0.05, 0.1), 0.3, 1.0)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
