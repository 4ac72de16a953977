// Package colour provides palette extraction and colour-vision safety analysis.
package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"time"
)

// KMeansExtractor implements colour extraction using k-means clustering.
// Clustering runs in linear-light RGB so that channel averages correspond
// to physical light mixing rather than gamma-encoded values.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	rng           *rand.Rand
}

// NewKMeansExtractor creates a KMeansExtractor. A seed in opts makes
// extraction fully deterministic; without one, each run draws its own
// initial centroids.
func NewKMeansExtractor(opts ExtractorOptions) *KMeansExtractor {
	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	return &KMeansExtractor{
		maxIterations: 32,
		convergence:   1e-4,
		maxSamples:    16384,
		rng:           rand.New(rand.NewSource(seed)), // #nosec G404 -- clustering needs reproducibility, not secrecy
	}
}

// Extract reduces an image to at most count dominant colours with their
// pixel-share weights, ranked by descending weight.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("colour count too large: %d (maximum: 256)", count)
	}

	points := e.samplePixels(img)
	if len(points) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	// If the image holds no more distinct colours than requested, skip
	// clustering and return the distinct colours with frequency weights.
	if p, ok := distinctPalette(points, count); ok {
		return p, nil
	}

	centroids, weights := e.cluster(points, count)

	entries := make([]PaletteEntry, len(centroids))
	for i, c := range centroids {
		entries[i] = PaletteEntry{
			Colour: fromLinearRGB(c.r, c.g, c.b),
			Weight: weights[i],
		}
	}

	palette := NewPalette(entries)
	palette.SortByWeight()
	return palette, nil
}

// point3 is a pixel in linear-light RGB, annotated with the 8-bit source
// value so distinct-colour counting stays exact.
type point3 struct {
	r, g, b float64
	src     RGB
}

// dist2 is the squared Euclidean distance between two points.
func (p point3) dist2(q point3) float64 {
	dr := p.r - q.r
	dg := p.g - q.g
	db := p.b - q.b
	return dr*dr + dg*dg + db*db
}

// samplePixels collects pixels on a stride grid, bounded by maxSamples.
// Sampling is deterministic: the stride depends only on image size.
func (e *KMeansExtractor) samplePixels(img image.Image) []point3 {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()

	step := 1
	if total > e.maxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(e.maxSamples))), 1)
	}

	points := make([]point3, 0, min(total, e.maxSamples+bounds.Dx()/step+1))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c := FromStdColor(img.At(x, y))
			r, g, b := c.linearRGB()
			points = append(points, point3{r: r, g: g, b: b, src: c.RGB8()})
		}
	}
	return points
}

// distinctPalette returns the sampled distinct colours with frequency
// weights when their number does not exceed the requested count.
func distinctPalette(points []point3, count int) (*Palette, bool) {
	counts := make(map[RGB]int)
	order := make([]RGB, 0, count+1)
	for _, p := range points {
		if counts[p.src] == 0 {
			if len(order) > count {
				return nil, false
			}
			order = append(order, p.src)
		}
		counts[p.src]++
	}
	if len(order) > count {
		return nil, false
	}

	total := float64(len(points))
	entries := make([]PaletteEntry, len(order))
	for i, rgb := range order {
		entries[i] = PaletteEntry{
			Colour: rgb.Colour(),
			Weight: float64(counts[rgb]) / total,
		}
	}
	palette := NewPalette(entries)
	palette.SortByWeight()
	return palette, true
}

// cluster runs k-means over the points and returns centroids with their
// normalised cluster shares.
func (e *KMeansExtractor) cluster(points []point3, k int) ([]point3, []float64) {
	centroids := e.seedCentroids(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		next := e.recalculate(points, assignments, k)

		movement := 0.0
		for i := range centroids {
			movement += math.Sqrt(centroids[i].dist2(next[i]))
		}
		centroids = next

		if changed == 0 || movement/float64(k) < e.convergence {
			break
		}
	}

	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	total := float64(len(points))
	for i := range weights {
		weights[i] /= total
	}
	return centroids, weights
}

// seedCentroids picks initial centroids with k-means++: the first at
// random, the rest with probability proportional to the squared distance
// from the nearest centroid chosen so far.
func (e *KMeansExtractor) seedCentroids(points []point3, k int) []point3 {
	centroids := make([]point3, 0, k)
	centroids = append(centroids, points[e.rng.Intn(len(points))])

	dist2 := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			nearest := math.MaxFloat64
			for _, c := range centroids {
				if d := p.dist2(c); d < nearest {
					nearest = d
				}
			}
			dist2[i] = nearest
			total += nearest
		}

		if total == 0 {
			// Every point already coincides with a centroid; duplicating
			// one keeps the centroid count while its cluster stays empty.
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}

		target := e.rng.Float64() * total
		cumulative := 0.0
		next := len(points) - 1
		for i, d := range dist2 {
			cumulative += d
			if cumulative >= target {
				next = i
				break
			}
		}
		centroids = append(centroids, points[next])
	}
	return centroids
}

// nearestCentroid finds the index of the nearest centroid to a point.
func nearestCentroid(p point3, centroids []point3) int {
	nearest := 0
	best := math.MaxFloat64
	for i, c := range centroids {
		if d := p.dist2(c); d < best {
			best = d
			nearest = i
		}
	}
	return nearest
}

// recalculate moves each centroid to the mean of its assigned points.
// Empty clusters are reseeded from the pseudo-random source.
func (e *KMeansExtractor) recalculate(points []point3, assignments []int, k int) []point3 {
	sums := make([]point3, k)
	counts := make([]int, k)

	for i, p := range points {
		c := assignments[i]
		sums[c].r += p.r
		sums[c].g += p.g
		sums[c].b += p.b
		counts[c]++
	}

	centroids := make([]point3, k)
	for i := range k {
		if counts[i] > 0 {
			centroids[i] = point3{
				r: sums[i].r / float64(counts[i]),
				g: sums[i].g / float64(counts[i]),
				b: sums[i].b / float64(counts[i]),
			}
		} else {
			centroids[i] = points[e.rng.Intn(len(points))]
		}
	}
	return centroids
}
