// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"image"
)

// Extractor defines the interface for dominant-colour extraction
// algorithms. Implementations return entries ranked by descending weight,
// with weights normalised to sum to 1.
type Extractor interface {
	// Extract reduces an image to at most count dominant colours.
	// Fewer entries are returned when the image holds fewer distinct
	// colours than requested.
	Extract(img image.Image, count int) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses k-means++ clustering in linear-light RGB.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmMedianCut uses median-cut quantisation.
	AlgorithmMedianCut Algorithm = "mediancut"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmMedianCut,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ExtractorOptions carries cross-algorithm extraction options.
type ExtractorOptions struct {
	// Seed pins the pseudo-random source used by stochastic algorithms.
	// A nil Seed leaves the algorithm non-deterministic.
	Seed *int64
}

// NewExtractor creates a new Extractor for the specified algorithm.
func NewExtractor(alg Algorithm, opts ExtractorOptions) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeansExtractor(opts), nil
	case AlgorithmMedianCut:
		return NewMedianCutExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm Algorithm
	Colours   int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm: AlgorithmKMeans,
		Colours:   5,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.Colours < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.Colours)
	}
	if c.Colours > 256 {
		return fmt.Errorf("colour count too large: %d (maximum: 256)", c.Colours)
	}
	return nil
}
