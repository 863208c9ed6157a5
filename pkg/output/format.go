// Package output provides utilities for formatting and displaying analysis results.
package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/structlab/hysteresis/internal/analysis"
	"github.com/structlab/hysteresis/pkg/loops"
)

// Entry is one reported metric, value already formatted.
type Entry struct {
	Key   string
	Value string
}

// Flatten renders the metric set of a result into ordered key/value pairs.
// Optional metrics that were not computed are omitted rather than zeroed.
func Flatten(res *analysis.Result) []Entry {
	m := res.Metrics
	entries := []Entry{
		{"peak displacement positive (mm)", format(m.PeakDisplacement.Positive)},
		{"peak displacement negative (mm)", format(m.PeakDisplacement.Negative)},
		{"residual deformation (mm)", format(m.ResidualDisplacement)},
		{"peak load positive (N)", format(m.PeakForce.Positive)},
		{"peak load negative (N)", format(m.PeakForce.Negative)},
	}
	entries = appendOptional(entries, "initial stiffness (N/mm)", m.InitialStiffness)
	entries = appendOptional(entries, "secant stiffness (N/mm)", m.SecantStiffness)
	entries = append(entries,
		Entry{"total hysteresis loop area (kN·mm)", format(m.TotalArea)},
		Entry{"cumulative energy dissipation (kN·mm)", format(m.TotalArea)},
	)
	entries = appendOptional(entries, "average loop energy (kN·mm)", m.AverageLoopEnergy)
	entries = appendOptional(entries, "maximum loop energy (kN·mm)", m.MaxLoopEnergy)
	entries = appendOptional(entries, "equivalent viscous damping coefficient", m.EquivalentDamping)
	entries = appendOptional(entries, "positive strength degradation (%)", m.PositiveStrengthDegradation)
	entries = appendOptional(entries, "negative strength degradation (%)", m.NegativeStrengthDegradation)
	entries = appendOptional(entries, "stiffness degradation (%)", m.StiffnessDegradation)

	method := res.Ductility.Method.String()
	entries = appendOptional(entries, fmt.Sprintf("ductility coefficient positive (%s)", method), res.Ductility.Positive)
	entries = appendOptional(entries, fmt.Sprintf("ductility coefficient negative (%s)", method), res.Ductility.Negative)
	return entries
}

func format(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func appendOptional(entries []Entry, key string, v *float64) []Entry {
	if v == nil {
		return entries
	}
	return append(entries, Entry{key, format(*v)})
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(results []*analysis.Result) {
	p := message.NewPrinter(language.English)
	for _, result := range results {
		fmt.Printf("--- Results for %s ---\n", result.Name)
		fmt.Printf("Data points: %d\n", len(result.Displacement))
		fmt.Printf("Hysteresis loops: %d\n", len(result.Loops))
		if result.FilterApplied {
			fmt.Printf("Data filtering: enabled (first loop only)\n")
		}

		if !result.Skeleton.Positive.Empty() {
			fmt.Printf("Positive skeleton start: (%.6f, %.6f)\n",
				result.Skeleton.Positive.Displacement[0], result.Skeleton.Positive.Force[0])
		}
		if !result.Skeleton.Negative.Empty() {
			fmt.Printf("Negative skeleton start: (%.6f, %.6f)\n",
				result.Skeleton.Negative.Displacement[0], result.Skeleton.Negative.Force[0])
		}

		fmt.Printf("\nMetric                                      | Value\n")
		fmt.Printf("______                                      | _____\n")
		for _, entry := range Flatten(result) {
			_, _ = p.Printf("%-43s | %s\n", entry.Key, entry.Value)
		}

		if len(result.Loops) > 0 {
			fmt.Printf("\nLoop | Type     | Peak Disp. | Peak Force | Area       | Points\n")
			fmt.Printf("____ | ____     | __________ | __________ | ____       | ______\n")
			for i, loop := range result.Loops {
				_, _ = p.Printf("%4d | %-8s | %10.4f | %10.4f | %10.4f | %6d\n",
					i+1, loop.Kind.String(), loop.PeakDisplacement, loop.PeakForce,
					loop.Area, len(loop.Displacement))
			}
			printLoopStatistics(p, result)
		}
		if len(results) > 1 {
			fmt.Printf("\n")
		}
	}
}

func printLoopStatistics(p *message.Printer, result *analysis.Result) {
	total, maxArea := 0.0, 0.0
	minArea := result.Loops[0].Area
	positive := 0
	for _, loop := range result.Loops {
		total += loop.Area
		if loop.Area > maxArea {
			maxArea = loop.Area
		}
		if loop.Area < minArea {
			minArea = loop.Area
		}
		if loop.Kind == loops.Positive {
			positive++
		}
	}
	fmt.Printf("\nLoop statistics\n")
	_, _ = p.Printf("  Total energy dissipation: %.4f kN·mm\n", total)
	_, _ = p.Printf("  Average energy dissipation: %.4f kN·mm\n", total/float64(len(result.Loops)))
	_, _ = p.Printf("  Maximum energy dissipation: %.4f kN·mm\n", maxArea)
	_, _ = p.Printf("  Minimum energy dissipation: %.4f kN·mm\n", minArea)
	fmt.Printf("  Positive loops: %d\n", positive)
	fmt.Printf("  Negative loops: %d\n", len(result.Loops)-positive)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []*analysis.Result) {
	fmt.Printf(`"series","metric","value"`)
	fmt.Printf("\n")
	for _, result := range results {
		name := strings.ReplaceAll(result.Name, `"`, `""`)
		for _, entry := range Flatten(result) {
			fmt.Printf(`"%s","%s","%s"`, name, entry.Key, entry.Value)
			fmt.Printf("\n")
		}
	}
}
