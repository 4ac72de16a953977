// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Swatch returns an ANSI-coloured block for a colour.
// Width specifies how many characters wide the block should be.
// Uses a background colour with spaces for a solid block.
func Swatch(c Colour, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	rgb := c.RGB8()
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// SwatchWithText returns a coloured block with centred text overlaid.
// The text colour is chosen for contrast against the background.
func SwatchWithText(c Colour, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	rgb := c.RGB8()
	fgRGB := TextColourFor(c).RGB8()
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
	fg := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fgRGB.R, fgRGB.G, fgRGB.B, ansiSuffix)

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bg + fg + display + ansiReset
}

// SwatchRow renders one analysed entry as a terminal line: the original
// swatch followed by a swatch per simulated deficiency, then the verdict.
func SwatchRow(e EntryResult, width int) string {
	var b strings.Builder
	b.WriteString(SwatchWithText(e.Entry.Colour, e.Entry.Colour.Hex(), width))
	for _, sim := range e.Simulated {
		b.WriteString(" ")
		b.WriteString(Swatch(sim.Colour, width))
	}
	fmt.Fprintf(&b, "  %s", e.Label)
	return b.String()
}
