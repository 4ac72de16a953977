// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colour is an sRGB triplet with each channel normalised to [0,1].
// This is the working representation throughout the pipeline; 8-bit
// values appear only at I/O edges. Colour is an immutable value type.
type Colour struct {
	R, G, B float64
}

// New creates a Colour from normalised channels, validating their domain.
func New(r, g, b float64) (Colour, error) {
	c := Colour{R: r, G: g, B: b}
	if err := c.Validate(); err != nil {
		return Colour{}, err
	}
	return c, nil
}

// From8Bit creates a Colour from 8-bit channel values.
func From8Bit(r, g, b uint8) Colour {
	return Colour{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// FromStdColor converts a standard library color.Color to a Colour.
// The alpha channel is discarded.
func FromStdColor(c color.Color) Colour {
	r, g, b, _ := c.RGBA()
	// RGBA returns 16-bit channels; reduce to 8-bit first so that colours
	// decoded from 8-bit images round-trip exactly.
	return From8Bit(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// ParseHex parses a colour from a hex string such as "#1a2b3c".
func ParseHex(s string) (Colour, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Colour{}, fmt.Errorf("parse %q: %w", s, ErrInvalidColour)
	}
	return Colour{R: c.R, G: c.G, B: c.B}, nil
}

// Validate reports whether every channel is finite and within [0,1].
func (c Colour) Validate() error {
	for _, v := range [3]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
			return fmt.Errorf("channel %v out of range: %w", v, ErrInvalidColour)
		}
	}
	return nil
}

// Hex returns the colour as a lowercase hex string (e.g. "#1a2b3c").
func (c Colour) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Hex()
}

// RGB8 returns the colour as 8-bit channel values.
func (c Colour) RGB8() RGB {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.RGB255()
	return RGB{R: r, G: g, B: b}
}

// StdColor returns the colour as a standard library color.RGBA with full opacity.
func (c Colour) StdColor() color.Color {
	rgb := c.RGB8()
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGB represents a colour as 8-bit channel values, used at I/O edges
// (terminal previews, reports, JSON output).
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Colour converts back to the normalised representation.
func (rgb RGB) Colour() Colour {
	return From8Bit(rgb.R, rgb.G, rgb.B)
}
