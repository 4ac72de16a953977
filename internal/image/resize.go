// Package image provides utilities for loading and preparing images.
package image

import (
	"image"

	"golang.org/x/image/draw"
)

// DefaultMaxDimension bounds the longest image side before extraction.
// Dominant colours are stable under moderate downscaling, and clustering
// cost drops with the pixel count.
const DefaultMaxDimension = 400

// Resize scales img down so its longest side is at most maxDim, keeping
// the aspect ratio. Images already within the bound, and a maxDim of 0,
// pass through unchanged. Upscaling never happens.
func Resize(img image.Image, maxDim int) image.Image {
	if img == nil || maxDim <= 0 {
		return img
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(max(w, h))
	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
