// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"image"

	"github.com/esimov/colorquant"
)

// MedianCutExtractor implements colour extraction by median-cut
// quantisation: the image is reduced to a fixed-size colour table and the
// weights come from how often each table colour is used.
type MedianCutExtractor struct{}

// NewMedianCutExtractor creates a new MedianCutExtractor.
func NewMedianCutExtractor() *MedianCutExtractor {
	return &MedianCutExtractor{}
}

// Extract reduces an image to at most count dominant colours with their
// pixel-share weights, ranked by descending weight.
func (e *MedianCutExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("colour count too large: %d (maximum: 256)", count)
	}

	bounds := img.Bounds()
	quantised := image.NewNRGBA(image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y))
	colorquant.NoDither.Quantize(img, quantised, count, false, true)

	// Count how often each table colour occurs. First-appearance order is
	// kept so equal counts rank deterministically.
	counts := make(map[RGB]int)
	order := make([]RGB, 0, count)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgb := FromStdColor(quantised.At(x, y)).RGB8()
			if counts[rgb] == 0 {
				order = append(order, rgb)
			}
			counts[rgb]++
			total++
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	entries := make([]PaletteEntry, len(order))
	for i, rgb := range order {
		entries[i] = PaletteEntry{
			Colour: rgb.Colour(),
			Weight: float64(counts[rgb]) / float64(total),
		}
	}

	palette := NewPalette(entries)
	palette.SortByWeight()

	// The quantiser usually lands on exactly count table colours, fewer
	// when the image has little variation. Keep the heaviest if it ever
	// overshoots, and rescale so weights still sum to 1.
	if palette.Len() > count {
		palette.Entries = palette.Entries[:count]
		palette.NormaliseWeights()
	}
	return palette, nil
}
