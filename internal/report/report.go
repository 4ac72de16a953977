// Package report renders palette safety analyses as text, JSON and PNG
// summary figures.
package report

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/colour"
	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/seed"
)

// Report bundles an analysis with the provenance needed to render it.
type Report struct {
	// Source is the image path or URL the palette was extracted from.
	Source string

	// Image is the decoded source image. Optional; when present the
	// summary figure includes a thumbnail of it.
	Image image.Image

	// Analysis is the classification result being reported.
	Analysis *colour.Analysis

	// Algorithm is the extraction algorithm that produced the palette.
	Algorithm colour.Algorithm

	// SeedMode and Seed record how the extraction was seeded, so a run
	// can be reproduced exactly.
	SeedMode seed.Mode
	Seed     int64
}

// BaseName returns the artifact base name for a source path or URL: the
// file name with its directory and extension stripped. An empty or
// unusable source falls back to "palette".
func BaseName(source string) string {
	name := source
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	// Drop any URL query string before looking at the extension.
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" {
		return "palette"
	}
	return name
}

// formatDeltaE renders a distance for display. Infinite minima (a palette
// with a single entry has no pairs) render as a dash.
func formatDeltaE(de float64) string {
	if math.IsInf(de, 1) {
		return "-"
	}
	return fmt.Sprintf("%.2f", de)
}

// formatWeight renders a normalised weight as a percentage.
func formatWeight(w float64) string {
	return fmt.Sprintf("%.1f%%", w*100)
}

// closestPartner returns the index of the entry that sits closest to entry
// i across all simulated deficiencies. It scans distances in their stored
// order with a strict comparison, so the partner always matches the entry's
// recorded minimum. ok is false when the entry has no pairs.
func closestPartner(a *colour.Analysis, i int) (int, bool) {
	best := math.Inf(1)
	partner := -1
	for _, dr := range a.Distances {
		var other int
		switch i {
		case dr.I:
			other = dr.J
		case dr.J:
			other = dr.I
		default:
			continue
		}
		if dr.DeltaE < best {
			best = dr.DeltaE
			partner = other
		}
	}
	return partner, partner >= 0
}
