// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"math"
)

// SafetyLabel classifies whether a palette colour stays distinguishable
// from every other colour under the simulated deficiencies.
type SafetyLabel string

const (
	// LabelSafe means the entry's minimum simulated distance meets the threshold.
	LabelSafe SafetyLabel = "safe"
	// LabelUnsafe means some pairing falls below the threshold.
	LabelUnsafe SafetyLabel = "unsafe"
)

// IsSafe reports whether the label is LabelSafe.
func (l SafetyLabel) IsSafe() bool {
	return l == LabelSafe
}

// DistanceResult records the perceptual distance between the simulated
// forms of two palette entries (I < J) under one deficiency.
type DistanceResult struct {
	I          int        `json:"i"`
	J          int        `json:"j"`
	Deficiency Deficiency `json:"deficiency"`
	DeltaE     float64    `json:"delta_e"`
}

// simulatedPalette holds every entry of one palette transformed through a
// single deficiency model, in entry order.
type simulatedPalette struct {
	deficiency Deficiency
	colours    []Colour
}

// simulatePalette runs every entry through each requested deficiency.
// The outer slice follows the deficiency order, the inner the entry order,
// so downstream iteration stays deterministic.
func simulatePalette(entries []PaletteEntry, deficiencies []Deficiency) ([]simulatedPalette, error) {
	sims := make([]simulatedPalette, 0, len(deficiencies))
	for _, d := range deficiencies {
		sp := simulatedPalette{deficiency: d, colours: make([]Colour, len(entries))}
		for i, e := range entries {
			sc, err := Simulate(e.Colour, d)
			if err != nil {
				return nil, fmt.Errorf("entry %d under %s: %w", i, d, err)
			}
			sp.colours[i] = sc
		}
		sims = append(sims, sp)
	}
	return sims, nil
}

// pairwiseDistances computes the distance between every unordered pair of
// distinct entries for each simulated deficiency. Results are ordered by
// deficiency, then by (i, j) with i < j.
func pairwiseDistances(sims []simulatedPalette, metric Metric) ([]DistanceResult, error) {
	if len(sims) == 0 {
		return nil, nil
	}
	n := len(sims[0].colours)
	results := make([]DistanceResult, 0, len(sims)*n*(n-1)/2)
	for _, sp := range sims {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				de, err := metric.Distance(sp.colours[i], sp.colours[j])
				if err != nil {
					return nil, fmt.Errorf("pair (%d,%d) under %s: %w", i, j, sp.deficiency, err)
				}
				results = append(results, DistanceResult{
					I:          i,
					J:          j,
					Deficiency: sp.deficiency,
					DeltaE:     de,
				})
			}
		}
	}
	return results, nil
}

// entrySafety is the per-entry outcome of classification.
type entrySafety struct {
	minDeltaE float64
	minAt     Deficiency
	label     SafetyLabel
}

// classifyEntries derives each entry's minimum pairwise distance and its
// safe/unsafe label. Entries with no pairs to compare (a single-entry
// palette) are safe by definition with an infinite minimum distance.
// The threshold comparison is inclusive: a minimum exactly equal to the
// threshold is safe.
func classifyEntries(n int, distances []DistanceResult, threshold float64) []entrySafety {
	out := make([]entrySafety, n)
	for i := range out {
		out[i].minDeltaE = math.Inf(1)
	}

	for _, dr := range distances {
		for _, idx := range [2]int{dr.I, dr.J} {
			if dr.DeltaE < out[idx].minDeltaE {
				out[idx].minDeltaE = dr.DeltaE
				out[idx].minAt = dr.Deficiency
			}
		}
	}

	for i := range out {
		if out[i].minDeltaE >= threshold {
			out[i].label = LabelSafe
		} else {
			out[i].label = LabelUnsafe
		}
	}
	return out
}
