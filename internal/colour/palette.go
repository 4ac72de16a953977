// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// PaletteEntry is a colour together with its usage weight in the source
// image. Weights are non-negative and comparable relative to each other;
// they need not sum to 1.
type PaletteEntry struct {
	Colour Colour
	Weight float64
}

// Palette is an ordered sequence of entries, ranked by descending weight.
// Insertion order is rank order.
type Palette struct {
	Entries []PaletteEntry
}

// NewPalette creates a new Palette with the given entries.
func NewPalette(entries []PaletteEntry) *Palette {
	return &Palette{Entries: entries}
}

// NewPaletteFromColours pairs colours with weights into a palette.
// A nil weights slice assigns every colour an equal weight.
func NewPaletteFromColours(colours []Colour, weights []float64) (*Palette, error) {
	if weights != nil && len(weights) != len(colours) {
		return nil, fmt.Errorf("got %d weights for %d colours", len(weights), len(colours))
	}
	entries := make([]PaletteEntry, len(colours))
	for i, c := range colours {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		entries[i] = PaletteEntry{Colour: c, Weight: w}
	}
	return NewPalette(entries), nil
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// Get returns the entry at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (PaletteEntry, error) {
	if index < 0 || index >= len(p.Entries) {
		return PaletteEntry{}, fmt.Errorf("index out of bounds: %d (palette has %d entries)", index, len(p.Entries))
	}
	return p.Entries[index], nil
}

// Colours returns the palette colours in rank order.
func (p *Palette) Colours() []Colour {
	colours := make([]Colour, len(p.Entries))
	for i, e := range p.Entries {
		colours[i] = e.Colour
	}
	return colours
}

// Hexes returns the palette colours as hex strings in rank order.
func (p *Palette) Hexes() []string {
	hexes := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		hexes[i] = e.Colour.Hex()
	}
	return hexes
}

// TotalWeight returns the sum of all entry weights.
func (p *Palette) TotalWeight() float64 {
	total := 0.0
	for _, e := range p.Entries {
		total += e.Weight
	}
	return total
}

// SortByWeight orders entries by descending weight. The sort is stable so
// equal-weight entries keep their insertion order, which keeps extraction
// deterministic.
func (p *Palette) SortByWeight() {
	sort.SliceStable(p.Entries, func(i, j int) bool {
		return p.Entries[i].Weight > p.Entries[j].Weight
	})
}

// NormaliseWeights rescales weights so they sum to 1. A palette whose
// weights are all zero is left unchanged.
func (p *Palette) NormaliseWeights() {
	total := p.TotalWeight()
	if total <= 0 {
		return
	}
	for i := range p.Entries {
		p.Entries[i].Weight /= total
	}
}

// Validate checks the palette invariants: at least one entry, every colour
// within domain, every weight non-negative and finite.
func (p *Palette) Validate() error {
	if len(p.Entries) == 0 {
		return ErrEmptyPalette
	}
	for i, e := range p.Entries {
		if err := e.Colour.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return fmt.Errorf("entry %d: weight %v must be non-negative and finite", i, e.Weight)
		}
	}
	return nil
}

// String returns a human-readable representation of the palette.
func (p *Palette) String() string {
	if len(p.Entries) == 0 {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette with %d colours:\n", len(p.Entries))
	for i, e := range p.Entries {
		fmt.Fprintf(&b, "  %2d: %s (%s) weight %.4f\n", i+1, e.Colour.Hex(), e.Colour.RGB8().String(), e.Weight)
	}
	return b.String()
}

// All returns an iterator over all entries in the palette.
func (p *Palette) All() func(func(int, PaletteEntry) bool) {
	return func(yield func(int, PaletteEntry) bool) {
		for i, e := range p.Entries {
			if !yield(i, e) {
				return
			}
		}
	}
}
