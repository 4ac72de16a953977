// Package seed derives the pseudo-random seeds that make palette
// extraction reproducible. Stochastic extractors (k-means) give identical
// palettes for identical seeds, so the seed mode decides what "identical
// input" means: same bytes, same path, or a value the user pins.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Mode determines how the extraction seed is generated.
type Mode string

const (
	// ModeContent hashes the image pixels (default): the same image
	// content gives the same palette wherever the file lives.
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute path: different images at the
	// same location give the same seed.
	ModeFilepath Mode = "filepath"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeRandom draws a fresh seed each run.
	ModeRandom Mode = "random"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode
	Value *int64 // only used when Mode is ModeManual
}

// ValidModes returns the valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeFilepath, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}

// Calculate determines the seed for one extraction.
// img is required for ModeContent, imagePath for ModeFilepath.
func Calculate(img image.Image, imagePath string, config Config) (int64, error) {
	switch config.Mode {
	case ModeContent:
		if img == nil {
			return 0, fmt.Errorf("image is required for content-based seed mode")
		}
		return FromImage(img), nil
	case ModeFilepath:
		if imagePath == "" {
			return 0, fmt.Errorf("image path is required for filepath-based seed mode")
		}
		return FromPath(imagePath), nil
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *config.Value, nil
	case ModeRandom:
		return Random(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// FromImage derives a deterministic seed from image content. Dimensions
// and a pixel grid are hashed rather than every pixel; the grid is dense
// enough to tell images apart and independent of file name or location.
func FromImage(img image.Image) int64 {
	bounds := img.Bounds()
	hasher := sha256.New()

	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions fit
	binary.LittleEndian.PutUint32(dims[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions fit
	hasher.Write(dims[:])

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	var pixel [4]byte
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixel[0] = byte(r >> 8)
			pixel[1] = byte(g >> 8)
			pixel[2] = byte(b >> 8)
			pixel[3] = byte(a >> 8)
			hasher.Write(pixel[:])
		}
	}

	sum := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(sum[:8])) // #nosec G115 -- hash truncation is intentional
}

// FromPath derives a deterministic seed from the absolute form of a path.
// URLs are hashed as given.
func FromPath(imagePath string) int64 {
	abs := imagePath
	if !isURL(imagePath) {
		if resolved, err := filepath.Abs(imagePath); err == nil {
			abs = resolved
		}
	}

	sum := sha256.Sum256([]byte(abs))
	return int64(binary.LittleEndian.Uint64(sum[:8])) // #nosec G115 -- hash truncation is intentional
}

// Random returns a non-deterministic seed.
func Random() int64 {
	// #nosec G404 -- intentionally non-deterministic, not security sensitive
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

// isURL checks if a path is an HTTP/HTTPS URL.
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
