// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"math"

	"github.com/jkl1337/go-chromath"
)

// Space identifies the perceptually uniform space used for distance
// computation. CIELAB is the only supported value; the enum exists so the
// configuration surface stays stable if further spaces are added.
type Space string

// SpaceCIELAB is CIE 1976 L*a*b* under D65/2 degrees.
const SpaceCIELAB Space = "cielab"

// ParseSpace converts a string to a Space.
func ParseSpace(s string) (Space, error) {
	if Space(s) == SpaceCIELAB {
		return SpaceCIELAB, nil
	}
	return "", fmt.Errorf("unknown colour space: %s (valid: cielab)", s)
}

// Transformers for the sRGB -> XYZ -> L*a*b* chain. Inputs are normalised
// [0,1] sRGB; the Lab transformer uses the D65 reference white, matching
// the sRGB native illuminant, so no chromatic adaptation is applied.
var (
	rgb2xyz = chromath.NewRGBTransformer(&chromath.SpaceSRGB, nil, nil, nil, 1.0, nil)
	xyz2lab = chromath.NewLabTransformer(&chromath.IlluminantRefD65)
)

// ToLab converts a colour to CIELAB (classic scaling, L* in [0,100]).
// Fails with ErrInvalidColour for out-of-domain channels.
func ToLab(c Colour) (chromath.Lab, error) {
	if err := c.Validate(); err != nil {
		return chromath.Lab{}, err
	}
	xyz := rgb2xyz.Convert(chromath.RGB{c.R, c.G, c.B})
	return xyz2lab.Invert(xyz), nil
}

// sRGB companding constants (IEC 61966-2-1).
const (
	srgbDecodeKnee = 0.04045
	srgbEncodeKnee = 0.0031308
)

// linearize converts one gamma-encoded sRGB channel to linear light.
func linearize(v float64) float64 {
	if v <= srgbDecodeKnee {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// delinearize converts one linear-light channel back to gamma-encoded sRGB.
func delinearize(v float64) float64 {
	if v <= srgbEncodeKnee {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

// linearRGB returns the colour's channels in linear light.
func (c Colour) linearRGB() (r, g, b float64) {
	return linearize(c.R), linearize(c.G), linearize(c.B)
}

// fromLinearRGB builds a gamma-encoded colour from linear-light channels.
// Channels are clamped in linear space first: delinearize is undefined for
// negative inputs, and transforms may overshoot the gamut slightly.
func fromLinearRGB(r, g, b float64) Colour {
	return Colour{
		R: delinearize(clamp01(r)),
		G: delinearize(clamp01(g)),
		B: delinearize(clamp01(b)),
	}
}

// clamp01 forces v into [0,1].
func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
