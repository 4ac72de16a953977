// Test image generator for creating sample images for safety analysis
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	// Create a test image with distinct colour blocks, including a known
	// protanopia confusion pair (the pink and the green).
	width := 400
	height := 400
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	colors := []color.RGBA{
		{R: 0xd7, G: 0x69, B: 0x8b, A: 255}, // pink, collides with the green under protanopia
		{R: 0xa1, G: 0xc6, B: 0x63, A: 255}, // green
		{R: 0x22, G: 0x71, B: 0xb2, A: 255}, // blue
		{R: 0xf0, G: 0xe4, B: 0x42, A: 255}, // yellow
		{R: 0x33, G: 0x33, B: 0x33, A: 255}, // near-black
		{R: 0xe8, G: 0xe8, B: 0xe8, A: 255}, // near-white
		{R: 0xd5, G: 0x5e, B: 0x00, A: 255}, // vermillion
		{R: 0x00, G: 0x9e, B: 0x73, A: 255}, // bluish green
	}

	// Fill image with colour blocks (2x4 grid)
	blockWidth := width / 2
	blockHeight := height / 4

	colorIndex := 0
	for row := 0; row < 4; row++ {
		for col := 0; col < 2; col++ {
			c := colors[colorIndex]
			colorIndex++

			// Fill the block
			for y := row * blockHeight; y < (row+1)*blockHeight; y++ {
				for x := col * blockWidth; x < (col+1)*blockWidth; x++ {
					img.Set(x, y, c)
				}
			}
		}
	}

	// Save the image
	file, err := os.Create("testdata/sample.png")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}

	println("Test image created: testdata/sample.png")
}
