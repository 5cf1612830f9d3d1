package optimizer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/heliosworks/habplanner/pkg/generator"
	"github.com/heliosworks/habplanner/pkg/habitat"
)

func opsLayout(t *testing.T) *habitat.Layout {
	t.Helper()
	layout, err := generator.Generate(generator.DefaultConfig(), habitat.DefaultSettings())
	if err != nil {
		t.Fatalf("generating layout: %v", err)
	}
	return layout
}

func TestAdjustZoneVolumeInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		layout := opsLayout(t)
		airlockBefore := layout.ZoneByName(habitat.Airlock).VolumeM3
		shelterBefore := layout.ZoneByName(habitat.StormShelter).VolumeM3

		adjustZoneVolume(layout, rng)

		if layout.ZoneByName(habitat.Airlock).VolumeM3 != airlockBefore {
			t.Fatal("airlock volume changed")
		}
		if layout.ZoneByName(habitat.StormShelter).VolumeM3 != shelterBefore {
			t.Fatal("storm shelter volume changed")
		}

		total := 0.0
		for _, z := range layout.Zones {
			if z.VolumeM3 < 5.0-1e-9 {
				t.Fatalf("zone %s below 5 m³ floor: %v", z.Name, z.VolumeM3)
			}
			total += z.VolumeM3
		}
		if math.Abs(total-layout.PressurizedVolumeM3) > 1e-6 {
			t.Fatalf("pressurized total %v != zone sum %v", layout.PressurizedVolumeM3, total)
		}
	}
}

func TestTuneSystemsClamps(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	layout := opsLayout(t)
	for trial := 0; trial < 200; trial++ {
		tuneSystems(layout, rng)

		sys := layout.Systems
		if sys.WaterRecyclingRate < 0.90 || sys.WaterRecyclingRate > 0.99 {
			t.Fatalf("water recycling %v outside [0.90, 0.99]", sys.WaterRecyclingRate)
		}
		if sys.Power.AutonomyDays < 14 {
			t.Fatalf("autonomy %d below 14-day floor", sys.Power.AutonomyDays)
		}
		if sys.Power.StorageKWh < 120.0 {
			t.Fatalf("storage %v below 120 kWh floor", sys.Power.StorageKWh)
		}
	}
}

func TestAdjustISRUClamps(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	layout := opsLayout(t)
	for trial := 0; trial < 200; trial++ {
		adjustISRU(layout, rng)
		if layout.ISRURatio < 0.4 || layout.ISRURatio > 1.0 {
			t.Fatalf("isru ratio %v outside [0.4, 1.0]", layout.ISRURatio)
		}
	}
}

func TestAdjustPrivacyTargetsCommonZones(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	layout := opsLayout(t)
	quartersBefore := layout.ZoneByName(habitat.CrewQuarters).AcousticIsolation

	for trial := 0; trial < 100; trial++ {
		adjustPrivacy(layout, rng)
	}

	if layout.ZoneByName(habitat.CrewQuarters).AcousticIsolation != quartersBefore {
		t.Error("crew quarters acoustic isolation changed")
	}
	for _, name := range []habitat.ZoneName{habitat.Work, habitat.Exercise, habitat.GalleyDining} {
		iso := layout.ZoneByName(name).AcousticIsolation
		if iso < 0.3 || iso > 1.0 {
			t.Errorf("zone %s acoustic isolation %v outside [0.3, 1.0]", name, iso)
		}
	}
}
