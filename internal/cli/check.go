// Package cli provides the command-line interface for cbsafe.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/colour"
	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/image"
	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/report"
	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/seed"
)

var (
	// Check command flags
	checkColours      int
	checkThreshold    float64
	checkDeficiencies []string
	checkMetric       string
	checkAlgorithm    string
	checkResize       int
	checkSeedMode     string
	checkSeedValue    int64
	checkOutputDir    string
	checkNoFigure     bool
	checkNoReport     bool
	checkJSON         bool
	checkPreview      string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <image>",
	Short: "Check an image's dominant colours for colour-blind safety",
	Long: `Check reduces an image to its dominant colours, simulates how each one
appears under protanopia, deuteranopia and tritanopia, and labels every
colour safe or unsafe by its minimum perceptual distance to the rest of
the palette.

The image may be a local file or an HTTP(S) URL.
Supported image formats: JPEG, PNG, GIF, WebP

By default three artifacts land in the output directory: a summary
figure (<name>_palette.png) and a text report (<name>_palette.txt),
plus <name>_palette.json with --json.

Examples:
  # Check the 5 dominant colours of an image
  cbsafe check wallpaper.jpg

  # Stricter pass: 8 colours against the just-noticeable threshold
  cbsafe check --colours 8 --threshold 2.3 chart.png

  # Deuteranopia only, CIEDE2000 distances
  cbsafe check -d deuteranopia -m ciede2000 chart.png

  # Median-cut extraction, JSON artifact, no figure
  cbsafe check -a mediancut --json --no-figure chart.png

  # Reproducible run pinned to a seed
  cbsafe check --seed-mode manual --seed-value 42 wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVarP(&checkColours, "colours", "c", 5, "number of dominant colours to extract (1-256)")
	checkCmd.Flags().Float64VarP(&checkThreshold, "threshold", "t", colour.DefaultThreshold, "safety cutoff in deltaE units")
	checkCmd.Flags().StringSliceVarP(&checkDeficiencies, "deficiencies", "d",
		[]string{"protanopia", "deuteranopia", "tritanopia"}, "deficiencies to simulate")
	checkCmd.Flags().StringVarP(&checkMetric, "metric", "m", "cie76", "distance metric (cie76, ciede2000)")
	checkCmd.Flags().StringVarP(&checkAlgorithm, "algorithm", "a", "kmeans", "extraction algorithm (kmeans, mediancut)")
	checkCmd.Flags().IntVar(&checkResize, "resize", image.DefaultMaxDimension, "longest-side bound before extraction (0 disables)")
	checkCmd.Flags().StringVar(&checkSeedMode, "seed-mode", "content", "seed mode (content, filepath, manual, random)")
	checkCmd.Flags().Int64Var(&checkSeedValue, "seed-value", 0, "seed for manual seed mode")
	checkCmd.Flags().StringVarP(&checkOutputDir, "output-dir", "o", ".", "directory for output artifacts")
	checkCmd.Flags().BoolVar(&checkNoFigure, "no-figure", false, "do not write the summary figure PNG")
	checkCmd.Flags().BoolVar(&checkNoReport, "no-report", false, "do not write the text report")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "also write the analysis as JSON")
	checkCmd.Flags().StringVar(&checkPreview, "preview", "auto", "ANSI swatch preview (auto, on, off)")
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	applyConfigDefaults(cmd)

	extractorCfg := colour.ExtractorConfig{
		Algorithm: colour.Algorithm(checkAlgorithm),
		Colours:   checkColours,
	}
	if err := extractorCfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	deficiencies, err := colour.ParseDeficiencies(checkDeficiencies)
	if err != nil {
		return err
	}
	metric, err := colour.ParseMetric(checkMetric)
	if err != nil {
		return err
	}
	seedMode, err := seed.ParseMode(checkSeedMode)
	if err != nil {
		return err
	}

	analysisCfg := colour.Config{
		Threshold:    checkThreshold,
		Deficiencies: deficiencies,
		Metric:       metric,
		Space:        colour.SpaceCIELAB,
	}
	if err := analysisCfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	logger.Debug("loading image", "path", imagePath)
	img, err := image.NewSmartLoader().Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	img = image.Resize(img, checkResize)
	resized := img.Bounds()
	logger.Debug("working size", "width", resized.Dx(), "height", resized.Dy())

	seedValue, err := seed.Calculate(img, imagePath, seed.Config{Mode: seedMode, Value: &checkSeedValue})
	if err != nil {
		return fmt.Errorf("failed to derive seed: %w", err)
	}
	logger.Debug("seed derived", "mode", seedMode, "seed", seedValue)

	extractor, err := colour.NewExtractor(extractorCfg.Algorithm, colour.ExtractorOptions{Seed: &seedValue})
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	logger.Debug("extracting palette", "algorithm", extractorCfg.Algorithm, "colours", extractorCfg.Colours)
	palette, err := extractor.Extract(img, extractorCfg.Colours)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}
	logger.Debug("palette extracted", "colours", palette.Len())

	analysis, err := colour.Analyze(palette, analysisCfg)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	logger.Debug("palette analysed", "safe", analysis.SafeCount(), "unsafe", analysis.UnsafeCount())

	rep := &report.Report{
		Source:    imagePath,
		Image:     img,
		Analysis:  analysis,
		Algorithm: extractorCfg.Algorithm,
		SeedMode:  seedMode,
		Seed:      seedValue,
	}

	if err := writeArtifacts(rep); err != nil {
		return err
	}

	// The text report is always echoed to stdout.
	fmt.Fprint(cmd.OutOrStdout(), rep.Text())

	if shouldPreview(checkPreview) {
		fmt.Fprintln(cmd.OutOrStdout())
		for _, e := range analysis.Entries {
			fmt.Fprintln(cmd.OutOrStdout(), colour.SwatchRow(e, 8))
		}
	}

	return nil
}

// writeArtifacts writes the requested report artifacts next to each other
// in the output directory.
func writeArtifacts(rep *report.Report) error {
	if checkNoFigure && checkNoReport && !checkJSON {
		return nil
	}
	if err := os.MkdirAll(checkOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	base := report.BaseName(rep.Source)

	if !checkNoReport {
		path := filepath.Join(checkOutputDir, base+"_palette.txt")
		if err := os.WriteFile(path, []byte(rep.Text()), 0644); err != nil {
			return fmt.Errorf("failed to write text report: %w", err)
		}
		logger.Debug("text report written", "path", path)
	}

	if !checkNoFigure {
		path := filepath.Join(checkOutputDir, base+"_palette.png")
		if err := rep.SaveFigure(path); err != nil {
			return err
		}
		logger.Debug("figure written", "path", path)
	}

	if checkJSON {
		data, err := rep.JSON()
		if err != nil {
			return err
		}
		path := filepath.Join(checkOutputDir, base+"_palette.json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		logger.Debug("JSON report written", "path", path)
	}

	return nil
}

// applyConfigDefaults fills flags the user left unset from the config file.
func applyConfigDefaults(cmd *cobra.Command) {
	if !cmd.Flags().Changed("threshold") && viper.IsSet("threshold") {
		checkThreshold = viper.GetFloat64("threshold")
	}
	if !cmd.Flags().Changed("colours") && viper.IsSet("colours") {
		checkColours = viper.GetInt("colours")
	}
	if !cmd.Flags().Changed("algorithm") && viper.IsSet("algorithm") {
		checkAlgorithm = viper.GetString("algorithm")
	}
	if !cmd.Flags().Changed("metric") && viper.IsSet("metric") {
		checkMetric = viper.GetString("metric")
	}
	if !cmd.Flags().Changed("deficiencies") && viper.IsSet("deficiencies") {
		checkDeficiencies = viper.GetStringSlice("deficiencies")
	}
}

// shouldPreview decides whether ANSI swatches go to stdout.
func shouldPreview(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default: // auto
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
