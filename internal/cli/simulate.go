// Package cli provides the command-line interface for cbsafe.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"

	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/colour"
	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/image"
	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/report"
)

var (
	// Simulate command flags
	simulateDeficiencies []string
	simulateResize       int
	simulateOutputDir    string
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate <image>",
	Short: "Render an image as seen under colour-vision deficiencies",
	Long: `Simulate applies the deficiency transform to every pixel of an image and
writes one PNG per deficiency, named <name>_<deficiency>.png.

The image may be a local file or an HTTP(S) URL.

Examples:
  # All three deficiencies
  cbsafe simulate photo.jpg

  # Protanopia only, written into ./out
  cbsafe simulate -d protanopia -o out photo.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringSliceVarP(&simulateDeficiencies, "deficiencies", "d",
		[]string{"protanopia", "deuteranopia", "tritanopia"}, "deficiencies to simulate")
	simulateCmd.Flags().IntVar(&simulateResize, "resize", 0, "longest-side bound before simulation (0 keeps full size)")
	simulateCmd.Flags().StringVarP(&simulateOutputDir, "output-dir", "o", ".", "directory for output images")
}

// runSimulate executes the simulate command.
func runSimulate(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	deficiencies, err := colour.ParseDeficiencies(simulateDeficiencies)
	if err != nil {
		return err
	}

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	logger.Debug("loading image", "path", imagePath)
	img, err := image.NewSmartLoader().Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	img = image.Resize(img, simulateResize)

	if err := os.MkdirAll(simulateOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := report.BaseName(imagePath)
	for _, d := range deficiencies {
		logger.Debug("simulating", "deficiency", d)
		out, err := colour.SimulateImage(img, d)
		if err != nil {
			return fmt.Errorf("failed to simulate %s: %w", d, err)
		}

		path := filepath.Join(simulateOutputDir, fmt.Sprintf("%s_%s.png", base, d))
		if err := gg.SavePNG(path, out); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	return nil
}
