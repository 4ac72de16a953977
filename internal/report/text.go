package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/colour"
)

// Text renders the analysis as a plain-text report: a header describing
// the run, one table row per palette entry, the closest pair under each
// deficiency, and a one-line verdict.
func (r *Report) Text() string {
	a := r.Analysis
	var b strings.Builder

	b.WriteString("cbsafe palette report\n")
	b.WriteString("=====================\n\n")

	b.WriteString(fmt.Sprintf("Source:        %s\n", r.Source))
	b.WriteString(fmt.Sprintf("Algorithm:     %s\n", r.Algorithm))
	if r.Algorithm == colour.AlgorithmKMeans {
		b.WriteString(fmt.Sprintf("Seed:          %d (%s)\n", r.Seed, r.SeedMode))
	}
	b.WriteString(fmt.Sprintf("Metric:        %s (%s)\n", a.Config.Metric, a.Config.Space))
	b.WriteString(fmt.Sprintf("Threshold:     %.2f\n", a.Config.Threshold))
	b.WriteString(fmt.Sprintf("Deficiencies:  %s\n", joinDeficiencies(a.Config.Deficiencies)))
	b.WriteString("\n")

	table := NewTable([]string{"#", "HEX", "RGB", "WEIGHT", "MIN dE", "CLOSEST", "LABEL"})
	table.SetColumnAlignRight(3)
	table.SetColumnAlignRight(4)
	table.SetColumnMaxWidth(5, 40)
	for i, e := range a.Entries {
		closest := "-"
		if j, ok := closestPartner(a, i); ok {
			closest = fmt.Sprintf("%s under %s", a.Entries[j].Entry.Colour.Hex(), e.MinAt)
		}
		table.AddRow([]string{
			fmt.Sprintf("%d", i+1),
			e.Entry.Colour.Hex(),
			e.Entry.Colour.RGB8().String(),
			formatWeight(e.Entry.Weight),
			formatDeltaE(e.MinDeltaE),
			closest,
			strings.ToUpper(string(e.Label)),
		})
	}
	b.WriteString(table.Render())

	if len(a.Entries) > 1 {
		b.WriteString("\nClosest pair per deficiency:\n")
		for _, d := range a.Config.Deficiencies {
			i, j, de, ok := closestPairUnder(a, d)
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("  %-14s %s vs %s  dE %s\n",
				string(d),
				a.Entries[i].Entry.Colour.Hex(),
				a.Entries[j].Entry.Colour.Hex(),
				formatDeltaE(de)))
		}
	}

	b.WriteString("\n")
	b.WriteString(r.Verdict())
	b.WriteString("\n")
	return b.String()
}

// Verdict returns the one-line summary of the analysis.
func (r *Report) Verdict() string {
	a := r.Analysis
	safe := a.SafeCount()
	total := len(a.Entries)
	if a.AllSafe() {
		return fmt.Sprintf("%d of %d colours safe at threshold %.2f; palette is colour-blind safe.",
			safe, total, a.Config.Threshold)
	}
	return fmt.Sprintf("%d of %d colours safe at threshold %.2f; palette is NOT colour-blind safe.",
		safe, total, a.Config.Threshold)
}

// closestPairUnder finds the minimum-distance pair for one deficiency.
// Scans in stored order with a strict comparison so ties resolve to the
// first pair, matching the entry classification.
func closestPairUnder(a *colour.Analysis, d colour.Deficiency) (i, j int, de float64, ok bool) {
	de = math.Inf(1)
	i, j = -1, -1
	for _, dr := range a.Distances {
		if dr.Deficiency != d {
			continue
		}
		if dr.DeltaE < de {
			de = dr.DeltaE
			i, j = dr.I, dr.J
		}
	}
	return i, j, de, i >= 0
}

// joinDeficiencies renders a deficiency list as comma-separated names.
func joinDeficiencies(ds []colour.Deficiency) string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
