// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import "errors"

// Sentinel errors returned by the analysis pipeline. Callers should test
// for them with errors.Is; wrapped variants carry additional context.
var (
	// ErrInvalidColour indicates a colour channel outside [0,1] or non-finite.
	ErrInvalidColour = errors.New("invalid colour: channel outside valid range")

	// ErrEmptyPalette indicates there are no colours to analyse.
	ErrEmptyPalette = errors.New("empty palette: no colours to analyse")

	// ErrInvalidThreshold indicates a non-positive or non-finite safety threshold.
	ErrInvalidThreshold = errors.New("invalid threshold: must be positive and finite")
)
