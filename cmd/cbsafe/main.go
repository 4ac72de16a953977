// cbsafe - colour-blind safety analyser for image palettes
//
// cbsafe extracts the dominant colours of an image, simulates how they
// appear under the common colour-vision deficiencies, and reports which
// colours stay distinguishable.
//
// Copyright (c) 2025 Akaawase Bernard
// Licensed under the MIT License
package main

import (
	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/cli"
)

func main() {
	cli.Execute()
}
