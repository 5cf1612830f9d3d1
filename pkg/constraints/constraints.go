// Package constraints evaluates a layout against the mission hard
// constraints. Validation is a pure function: violations are returned
// as data, never as errors.
package constraints

import (
	"fmt"
	"strings"

	"github.com/heliosworks/habplanner/pkg/habitat"
	"github.com/heliosworks/habplanner/pkg/topology"
)

// collector accumulates per-rule messages and failed rule ids in
// encounter order.
type collector struct {
	messages []string
	failed   []string
}

func (c *collector) ok(msg string) {
	c.messages = append(c.messages, msg)
}

func (c *collector) fail(rule, msg string) {
	c.failed = append(c.failed, rule)
	c.messages = append(c.messages, msg)
}

// Validate runs every hard rule against the layout and returns the
// combined verdict. The layout is not mutated.
func Validate(layout *habitat.Layout, settings habitat.ConstraintSettings) habitat.ValidationResult {
	c := &collector{}

	crew := layout.Metadata.Crew
	duration := layout.Metadata.DurationDays
	graph := topology.Build(layout.Zones)
	nhv := layout.NHV()
	nhvEff := 0.0
	if layout.PressurizedVolumeM3 > 0 {
		nhvEff = nhv / layout.PressurizedVolumeM3
	}

	checkCrewDuration(c, crew, duration, settings)
	checkRequiredZones(c, layout, settings)
	checkHabitableVolume(c, crew, nhv, nhvEff, settings)
	checkShielding(c, layout, settings)
	checkSystems(c, layout.Systems, settings)
	connected := checkConnectivity(c, layout, graph)
	if connected {
		checkRedundantPaths(c, graph)
	}
	checkAdjacencyPairs(c, graph, settings)
	checkEgress(c, layout)
	checkStormShelter(c, layout, graph, settings)
	checkCrewPrivacy(c, layout, settings)

	return habitat.ValidationResult{
		Passed:      len(c.failed) == 0,
		Messages:    c.messages,
		FailedRules: c.failed,
	}
}

func checkCrewDuration(c *collector, crew, duration int, s habitat.ConstraintSettings) {
	if crew < s.MinCrew || crew > s.MaxCrew {
		c.fail("crew_range", fmt.Sprintf("Crew size %d outside supported range %d-%d.", crew, s.MinCrew, s.MaxCrew))
	} else {
		c.ok(fmt.Sprintf("Crew size %d within supported range.", crew))
	}

	if duration < s.MinDurationDays || duration > s.MaxDurationDays {
		c.fail("duration_range", fmt.Sprintf("Duration %d days outside supported range %d-%d.", duration, s.MinDurationDays, s.MaxDurationDays))
	} else {
		c.ok(fmt.Sprintf("Mission duration %d days within supported range.", duration))
	}
}

func checkRequiredZones(c *collector, layout *habitat.Layout, s habitat.ConstraintSettings) {
	present := make(map[habitat.ZoneName]bool, len(layout.Zones))
	for _, z := range layout.Zones {
		present[z.Name] = true
	}

	var missing []string
	for _, name := range s.RequiredZones {
		if !present[name] {
			missing = append(missing, string(name))
		}
	}
	if len(missing) > 0 {
		c.fail("required_zones", fmt.Sprintf("Missing mandatory zones: %s.", strings.Join(missing, ", ")))
	} else {
		c.ok("All mandatory zones present.")
	}
}

func checkHabitableVolume(c *collector, crew int, nhv, nhvEff float64, s habitat.ConstraintSettings) {
	required := float64(crew) * s.MinNHVPerPerson
	if nhv < required {
		deficit := required - nhv
		c.fail("nhv_per_crew", fmt.Sprintf("NHV %.1f m³ below required %.1f m³ (add %.1f m³ usable).", nhv, required, deficit))
	} else {
		c.ok(fmt.Sprintf("NHV %.1f m³ meets per-crew requirement.", nhv))
	}

	if nhvEff < s.MinNHVEfficiency {
		c.fail("nhv_efficiency", fmt.Sprintf("NHV efficiency %.2f < %.2f; consider more usable volume.", nhvEff, s.MinNHVEfficiency))
	} else {
		c.ok(fmt.Sprintf("NHV efficiency %.2f meets minimum.", nhvEff))
	}
}

func checkShielding(c *collector, layout *habitat.Layout, s habitat.ConstraintSettings) {
	if layout.ShieldEquivalentGCm2 < s.MinShieldGCm2 {
		c.fail("radiation_shield", fmt.Sprintf("Shielding %.1f g/cm² < %.1f g/cm².", layout.ShieldEquivalentGCm2, s.MinShieldGCm2))
	} else {
		c.ok("Radiation shielding meets requirement.")
	}
}

func checkSystems(c *collector, sys habitat.Systems, s habitat.ConstraintSettings) {
	if sys.ECLSSRedundancyLoops < s.MinECLSSLoops {
		c.fail("eclss_redundancy", fmt.Sprintf("ECLSS redundancy below requirement; need >= %d full loops.", s.MinECLSSLoops))
	} else {
		c.ok("ECLSS redundancy satisfied.")
	}

	if sys.WaterRecyclingRate < s.MinWaterRecycling {
		c.fail("water_recycling", fmt.Sprintf("Water recycling %.2f < %.2f.", sys.WaterRecyclingRate, s.MinWaterRecycling))
	} else {
		c.ok("Water recycling meets specification.")
	}

	if sys.Power.AutonomyDays < s.MinPowerAutonomyDays {
		c.fail("power_autonomy", fmt.Sprintf("Power autonomy %d days < %d days target.", sys.Power.AutonomyDays, s.MinPowerAutonomyDays))
	} else {
		c.ok("Power autonomy meets lunar night requirement.")
	}

	if !sys.DustMitigation.DualDoor || !sys.DustMitigation.SuitStorage {
		c.fail("dust_mitigation", "Dust mitigation must include dual-door vestibule and suit storage.")
	} else {
		c.ok("Dust mitigation features verified.")
	}
}

func checkConnectivity(c *collector, layout *habitat.Layout, graph topology.Graph) bool {
	if len(graph) == 0 {
		c.fail("connectivity", "No connectivity graph defined across zones.")
		return false
	}

	zoneNames := make(map[habitat.ZoneName]bool, len(layout.Zones))
	for _, z := range layout.Zones {
		zoneNames[z.Name] = true
	}
	if len(graph.Reachable()) != len(zoneNames) {
		c.fail("connectivity", "Zone adjacency graph is disconnected.")
		return false
	}
	c.ok("Zone adjacency graph is connected.")
	return true
}

// checkRedundantPaths runs only on an already-connected graph; a
// single cycle anywhere satisfies the redundant-route requirement.
func checkRedundantPaths(c *collector, graph topology.Graph) {
	if !graph.HasCycle() {
		c.fail("redundant_paths", "Adjacency graph lacks alternate routes; add redundant connections.")
	} else {
		c.ok("Redundant paths present in adjacency graph.")
	}
}

func checkAdjacencyPairs(c *collector, graph topology.Graph, s habitat.ConstraintSettings) {
	for _, pair := range s.AdjacencyPairs {
		a, b := string(pair[0]), string(pair[1])
		if graph.HasEdge(a, b) {
			continue
		}
		c.fail(fmt.Sprintf("adjacency_%s_%s", a, b), fmt.Sprintf("Critical adjacency missing between %s and %s.", a, b))
	}
}

func checkEgress(c *collector, layout *habitat.Layout) {
	count := 0
	for _, z := range layout.Zones {
		if z.IsEgress {
			count++
		}
	}
	if count < 2 {
		c.fail("egress_paths", "At least two egress-capable zones required (e.g., airlock and shelter exit).")
	} else {
		c.ok("Multiple egress-capable zones confirmed.")
	}
}

func checkStormShelter(c *collector, layout *habitat.Layout, graph topology.Graph, s habitat.ConstraintSettings) {
	shelter := layout.ZoneByName(habitat.StormShelter)
	if shelter == nil || len(graph) == 0 {
		c.fail("storm_shelter_access", "Storm shelter zone missing or disconnected.")
		return
	}

	for _, zone := range layout.Zones {
		dist := graph.Hops(string(zone.Name), string(habitat.StormShelter))
		if dist == -1 || dist > s.MaxStormShelterHops {
			c.fail("storm_shelter_access", fmt.Sprintf("Storm shelter too far from %s (distance %d).", zone.Name, dist))
			return
		}
	}
	c.ok("Storm shelter reachable within required hops.")
}

func checkCrewPrivacy(c *collector, layout *habitat.Layout, s habitat.ConstraintSettings) {
	quarters := layout.ZoneByName(habitat.CrewQuarters)
	if quarters == nil {
		// required_zones already covers the absence; keep the note.
		c.ok("Crew quarters zone not defined.")
		return
	}
	if quarters.Privacy != habitat.PrivacyHigh || quarters.AcousticIsolation < s.MinPrivacyQuarters {
		c.fail("crew_privacy", fmt.Sprintf("Crew quarters must have High privacy and acoustic isolation >= %.1f.", s.MinPrivacyQuarters))
	} else {
		c.ok("Crew quarters privacy targets satisfied.")
	}
}
