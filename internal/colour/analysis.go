// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"math"
	"slices"
)

// Safety thresholds on the CIE76 scale.
const (
	// DefaultThreshold is the default safety cutoff. It suits palette
	// work, where colours should stay comfortably apart rather than
	// merely noticeably different.
	DefaultThreshold = 10.0

	// JNDThreshold is the classic just-noticeable-difference value. Use
	// it to flag only pairs that become nearly indistinguishable.
	JNDThreshold = 2.3
)

// Config holds the options recognised by the analysis pipeline.
type Config struct {
	// Threshold is the safety cutoff in perceptual-distance units.
	Threshold float64
	// Deficiencies is the set of deficiency models to simulate.
	Deficiencies []Deficiency
	// Metric selects the colour-difference formula.
	Metric Metric
	// Space selects the uniform space distances are computed in.
	Space Space
}

// DefaultConfig returns the default analysis configuration: all three
// deficiencies, CIE76 distances in CIELAB, threshold 10.
func DefaultConfig() Config {
	return Config{
		Threshold:    DefaultThreshold,
		Deficiencies: AllDeficiencies(),
		Metric:       MetricCIE76,
		Space:        SpaceCIELAB,
	}
}

// Validate checks the configuration before any computation happens.
func (c Config) Validate() error {
	if c.Threshold <= 0 || math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("threshold %v: %w", c.Threshold, ErrInvalidThreshold)
	}
	if len(c.Deficiencies) == 0 {
		return fmt.Errorf("at least one deficiency is required")
	}
	seen := make([]Deficiency, 0, len(c.Deficiencies))
	for _, d := range c.Deficiencies {
		if _, ok := simulationMatrices[d]; !ok {
			return fmt.Errorf("unknown deficiency: %s", d)
		}
		if slices.Contains(seen, d) {
			return fmt.Errorf("duplicate deficiency: %s", d)
		}
		seen = append(seen, d)
	}
	if !slices.Contains(ValidMetrics(), c.Metric) {
		return fmt.Errorf("unknown metric: %s", c.Metric)
	}
	if c.Space != SpaceCIELAB {
		return fmt.Errorf("unknown colour space: %s", c.Space)
	}
	return nil
}

// EntryResult carries one palette entry with its simulations and verdict.
type EntryResult struct {
	// Entry is the original palette entry.
	Entry PaletteEntry
	// Simulated holds the entry's appearance under each configured
	// deficiency, in configuration order.
	Simulated []SimulatedColour
	// MinDeltaE is the smallest distance from this entry to any other
	// entry across all simulated deficiencies. +Inf when the palette has
	// a single entry.
	MinDeltaE float64
	// MinAt is the deficiency at which MinDeltaE occurs. Empty when
	// MinDeltaE is +Inf.
	MinAt Deficiency
	// Label is the safety verdict for this entry.
	Label SafetyLabel
}

// Analysis is the full classification result for one palette. All fields
// are derived deterministically from the palette and configuration;
// analysing the same input twice yields identical results.
type Analysis struct {
	// Entries follow the palette's rank order.
	Entries []EntryResult
	// Distances holds one result per unordered entry pair per
	// deficiency, ordered by deficiency, then (i, j).
	Distances []DistanceResult
	// Config echoes the configuration the analysis ran with.
	Config Config
}

// Analyze classifies a palette: every entry is simulated under each
// configured deficiency, pairwise distances are measured between the
// simulated colours, and each entry is labelled safe or unsafe by its
// minimum distance. The input palette is not modified; entry order is
// preserved. Duplicated input colours are analysed as-is.
func Analyze(p *Palette, cfg Config) (*Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if p == nil || len(p.Entries) == 0 {
		return nil, ErrEmptyPalette
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sims, err := simulatePalette(p.Entries, cfg.Deficiencies)
	if err != nil {
		return nil, err
	}

	distances, err := pairwiseDistances(sims, cfg.Metric)
	if err != nil {
		return nil, err
	}

	safety := classifyEntries(len(p.Entries), distances, cfg.Threshold)

	entries := make([]EntryResult, len(p.Entries))
	for i, e := range p.Entries {
		simulated := make([]SimulatedColour, len(sims))
		for k, sp := range sims {
			simulated[k] = SimulatedColour{Deficiency: sp.deficiency, Colour: sp.colours[i]}
		}
		entries[i] = EntryResult{
			Entry:     e,
			Simulated: simulated,
			MinDeltaE: safety[i].minDeltaE,
			MinAt:     safety[i].minAt,
			Label:     safety[i].label,
		}
	}

	return &Analysis{
		Entries:   entries,
		Distances: distances,
		Config:    cfg,
	}, nil
}

// AnalyzeColours is a convenience wrapper for callers holding raw colour
// and weight slices rather than a Palette.
func AnalyzeColours(colours []Colour, weights []float64, cfg Config) (*Analysis, error) {
	if len(colours) == 0 {
		return nil, ErrEmptyPalette
	}
	p, err := NewPaletteFromColours(colours, weights)
	if err != nil {
		return nil, err
	}
	return Analyze(p, cfg)
}

// SafeCount returns how many entries are labelled safe.
func (a *Analysis) SafeCount() int {
	n := 0
	for _, e := range a.Entries {
		if e.Label.IsSafe() {
			n++
		}
	}
	return n
}

// UnsafeCount returns how many entries are labelled unsafe.
func (a *Analysis) UnsafeCount() int {
	return len(a.Entries) - a.SafeCount()
}

// AllSafe reports whether every entry is labelled safe.
func (a *Analysis) AllSafe() bool {
	return a.UnsafeCount() == 0
}
