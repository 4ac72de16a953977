// Package colour provides utility functions for colour manipulation and analysis.
package colour

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c Colour) float64 {
	r, g, b := c.linearRGB()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(a, b Colour) float64 {
	l1 := Luminance(a)
	l2 := Luminance(b)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// TextColourFor returns black or white, whichever reads better on the
// given background. Used for labels drawn over swatches.
func TextColourFor(background Colour) Colour {
	black := Colour{R: 0, G: 0, B: 0}
	white := Colour{R: 1, G: 1, B: 1}
	if ContrastRatio(background, black) >= ContrastRatio(background, white) {
		return black
	}
	return white
}
