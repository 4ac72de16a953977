// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"image"
	"image/color"
	"slices"
	"strings"
)

// Deficiency identifies a colour-vision deficiency model.
type Deficiency string

const (
	// Protanopia is the absence of red-sensitive cones.
	Protanopia Deficiency = "protanopia"
	// Deuteranopia is the absence of green-sensitive cones.
	Deuteranopia Deficiency = "deuteranopia"
	// Tritanopia is the absence of blue-sensitive cones.
	Tritanopia Deficiency = "tritanopia"
)

// AllDeficiencies returns the three supported deficiency models in their
// canonical order.
func AllDeficiencies() []Deficiency {
	return []Deficiency{Protanopia, Deuteranopia, Tritanopia}
}

// ParseDeficiency converts a string to a Deficiency. Both full names and
// the short forms protan/deutan/tritan are accepted.
func ParseDeficiency(s string) (Deficiency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "protanopia", "protan":
		return Protanopia, nil
	case "deuteranopia", "deutan":
		return Deuteranopia, nil
	case "tritanopia", "tritan":
		return Tritanopia, nil
	}
	return "", fmt.Errorf("unknown deficiency: %s (valid: protanopia, deuteranopia, tritanopia)", s)
}

// ParseDeficiencies converts a list of names into a deficiency set,
// rejecting duplicates and preserving input order.
func ParseDeficiencies(names []string) ([]Deficiency, error) {
	out := make([]Deficiency, 0, len(names))
	for _, name := range names {
		d, err := ParseDeficiency(name)
		if err != nil {
			return nil, err
		}
		if slices.Contains(out, d) {
			return nil, fmt.Errorf("duplicate deficiency: %s", d)
		}
		out = append(out, d)
	}
	return out, nil
}

// Short returns the compact form of the deficiency name.
func (d Deficiency) Short() string {
	switch d {
	case Protanopia:
		return "protan"
	case Deuteranopia:
		return "deutan"
	case Tritanopia:
		return "tritan"
	}
	return string(d)
}

// String returns the full deficiency name.
func (d Deficiency) String() string {
	return string(d)
}

// Dichromacy transform matrices, applied to linear-light RGB vectors.
// Each row sums to 1, so greys map to themselves exactly.
var simulationMatrices = map[Deficiency][3][3]float64{
	Protanopia: {
		{0.56667, 0.43333, 0.0},
		{0.55833, 0.44167, 0.0},
		{0.0, 0.24167, 0.75833},
	},
	Deuteranopia: {
		{0.625, 0.375, 0.0},
		{0.70, 0.30, 0.0},
		{0.0, 0.30, 0.70},
	},
	Tritanopia: {
		{0.95, 0.05, 0.0},
		{0.0, 0.43333, 0.56667},
		{0.0, 0.475, 0.525},
	},
}

// SimulatedColour is a palette colour as it appears under one deficiency.
type SimulatedColour struct {
	Deficiency Deficiency `json:"deficiency"`
	Colour     Colour     `json:"colour"`
}

// Simulate transforms a colour through one deficiency model: the sRGB
// vector is linearised, multiplied by the model's 3x3 matrix, clamped to
// [0,1], and re-encoded. Pure and deterministic.
func Simulate(c Colour, d Deficiency) (Colour, error) {
	if err := c.Validate(); err != nil {
		return Colour{}, err
	}
	m, ok := simulationMatrices[d]
	if !ok {
		return Colour{}, fmt.Errorf("unknown deficiency: %s", d)
	}

	r, g, b := c.linearRGB()
	return fromLinearRGB(
		m[0][0]*r+m[0][1]*g+m[0][2]*b,
		m[1][0]*r+m[1][1]*g+m[1][2]*b,
		m[2][0]*r+m[2][1]*g+m[2][2]*b,
	), nil
}

// SimulateAll transforms a colour through each of the given deficiency
// models, returning results in input order.
func SimulateAll(c Colour, deficiencies []Deficiency) ([]SimulatedColour, error) {
	sims := make([]SimulatedColour, 0, len(deficiencies))
	for _, d := range deficiencies {
		sc, err := Simulate(c, d)
		if err != nil {
			return nil, fmt.Errorf("simulate %s: %w", d, err)
		}
		sims = append(sims, SimulatedColour{Deficiency: d, Colour: sc})
	}
	return sims, nil
}

// SimulateImage applies one deficiency model to every pixel of an image.
// Identical source pixels produce identical output pixels, so the per-run
// cost is bounded by the number of distinct colours in the image.
func SimulateImage(img image.Image, d Deficiency) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if _, ok := simulationMatrices[d]; !ok {
		return nil, fmt.Errorf("unknown deficiency: %s", d)
	}

	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	// Distinct-colour cache: photographic images repeat colours heavily,
	// and palette figures even more so.
	cache := make(map[RGB]RGB)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			src := FromStdColor(img.At(x, y)).RGB8()
			dst, ok := cache[src]
			if !ok {
				sim, err := Simulate(src.Colour(), d)
				if err != nil {
					return nil, err
				}
				dst = sim.RGB8()
				cache[src] = dst
			}
			out.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{R: dst.R, G: dst.G, B: dst.B, A: 255})
		}
	}
	return out, nil
}
