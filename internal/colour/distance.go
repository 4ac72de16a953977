// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"math"
	"strings"

	"github.com/jkl1337/go-chromath/deltae"
)

// Metric identifies the perceptual colour-difference formula.
type Metric string

const (
	// MetricCIE76 is the Euclidean distance in CIELAB. On this scale a
	// difference of about 2.3 is just noticeable.
	MetricCIE76 Metric = "cie76"
	// MetricCIEDE2000 is the CIEDE2000 formula with kL = kC = kH = 1.
	MetricCIEDE2000 Metric = "ciede2000"
)

var klch = &deltae.KLChDefault

// ValidMetrics returns the supported difference formulas.
func ValidMetrics() []Metric {
	return []Metric{MetricCIE76, MetricCIEDE2000}
}

// ParseMetric converts a string to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case MetricCIE76:
		return MetricCIE76, nil
	case MetricCIEDE2000:
		return MetricCIEDE2000, nil
	}
	return "", fmt.Errorf("unknown metric: %s (valid: cie76, ciede2000)", s)
}

// String returns the metric name.
func (m Metric) String() string {
	return string(m)
}

// Distance computes the perceptual difference between two colours in
// CIELAB. It is symmetric, non-negative, and zero for identical colours.
func (m Metric) Distance(a, b Colour) (float64, error) {
	labA, err := ToLab(a)
	if err != nil {
		return 0, err
	}
	labB, err := ToLab(b)
	if err != nil {
		return 0, err
	}

	switch m {
	case MetricCIE76:
		dl := labA[0] - labB[0]
		da := labA[1] - labB[1]
		db := labA[2] - labB[2]
		return math.Sqrt(dl*dl + da*da + db*db), nil
	case MetricCIEDE2000:
		return deltae.CIE2000(labA, labB, klch), nil
	}
	return 0, fmt.Errorf("unknown metric: %s", m)
}
