package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/heliosworks/habplanner/pkg/habitat"
)

func printValidationResult(r habitat.ValidationResult) {
	for _, msg := range r.Messages {
		fmt.Printf("  %s\n", msg)
	}
	fmt.Println()
	if r.Passed {
		fmt.Printf("Result: PASS (%d checks)\n", len(r.Messages))
	} else {
		fmt.Printf("Result: FAIL (%s)\n", strings.Join(r.FailedRules, ", "))
	}
}

func exportMarkdown(layout *habitat.Layout, metrics habitat.Metrics, validationMsgs []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Summary\n\n", layout.HabitatName)
	fmt.Fprintf(&b, "- Crew: %d\n", layout.Metadata.Crew)
	fmt.Fprintf(&b, "- Duration: %d days\n", layout.Metadata.DurationDays)
	fmt.Fprintf(&b, "- Habitat Type: %s\n", layout.HabitatType)
	fmt.Fprintf(&b, "- ISRU Ratio: %.2f\n", layout.ISRURatio)
	fmt.Fprintf(&b, "- Power Autonomy: %d days\n\n", layout.Systems.Power.AutonomyDays)

	b.WriteString("## Zones\n")
	b.WriteString("| Zone | Volume (m³) | Usable | Privacy | Connections | Equipment |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, zone := range layout.Zones {
		fmt.Fprintf(&b, "| %s | %.1f | %.2f | %s | %s | %s |\n",
			zone.Name, zone.VolumeM3, zone.UsableRatio, zone.Privacy,
			strings.Join(zone.Connections, ", "), strings.Join(zone.Equipment, ", "))
	}

	b.WriteString("\n## Systems\n")
	fmt.Fprintf(&b, "- ECLSS loops: %d\n", layout.Systems.ECLSSRedundancyLoops)
	fmt.Fprintf(&b, "- Water recycling: %.2f\n", layout.Systems.WaterRecyclingRate)
	fmt.Fprintf(&b, "- Power autonomy days: %d\n", layout.Systems.Power.AutonomyDays)
	fmt.Fprintf(&b, "- Shielding: %.1f g/cm²\n\n", layout.ShieldEquivalentGCm2)

	b.WriteString("## Metrics\n")
	fmt.Fprintf(&b, "- NHV: %.1f m³\n", metrics.NHVM3)
	fmt.Fprintf(&b, "- NHV Efficiency: %.2f\n", metrics.NHVEfficiency)
	fmt.Fprintf(&b, "- Privacy Score: %.2f\n", metrics.PrivacyScore)
	fmt.Fprintf(&b, "- Transit Score: %.2f\n", metrics.TransitDistanceScore)
	fmt.Fprintf(&b, "- Sustainability Score: %.2f\n", metrics.SustainabilityScore)
	fmt.Fprintf(&b, "- Energy Use (kWh/person-day): %.2f\n", metrics.EnergyUseKWhPerPersonDay)
	fmt.Fprintf(&b, "- Safety Score: %.2f\n\n", metrics.SafetyRedundancyScore)

	b.WriteString("## Validation\n")
	for _, msg := range validationMsgs {
		b.WriteString("- " + msg + "\n")
	}
	return b.String()
}

func exportCSV(metrics habitat.Metrics) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Metric", "Value"},
		{"nhv_m3", formatFloat(metrics.NHVM3)},
		{"nhv_efficiency", formatFloat(metrics.NHVEfficiency)},
		{"transit_distance_score", formatFloat(metrics.TransitDistanceScore)},
		{"privacy_score", formatFloat(metrics.PrivacyScore)},
		{"sustainability_score", formatFloat(metrics.SustainabilityScore)},
		{"energy_use_kwh_per_person_day", formatFloat(metrics.EnergyUseKWhPerPersonDay)},
		{"safety_redundancy_score", formatFloat(metrics.SafetyRedundancyScore)},
		{"feasibility", strconv.FormatBool(metrics.Feasibility)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
