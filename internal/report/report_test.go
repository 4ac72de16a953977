package report

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/colour"
	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/seed"
)

// testReport analyses a pink/green/blue palette whose pink and green
// collapse under protanopia, at the just-noticeable-difference threshold.
func testReport(t *testing.T) *Report {
	t.Helper()

	hexes := []string{"#d7698b", "#a1c663", "#2271b2"}
	colours := make([]colour.Colour, len(hexes))
	for i, h := range hexes {
		c, err := colour.ParseHex(h)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", h, err)
		}
		colours[i] = c
	}

	cfg := colour.DefaultConfig()
	cfg.Threshold = colour.JNDThreshold
	a, err := colour.AnalyzeColours(colours, []float64{0.5, 0.3, 0.2}, cfg)
	if err != nil {
		t.Fatalf("AnalyzeColours(): %v", err)
	}

	return &Report{
		Source:    "testdata/sample.png",
		Analysis:  a,
		Algorithm: colour.AlgorithmKMeans,
		SeedMode:  seed.ModeContent,
		Seed:      42,
	}
}

func singleEntryReport(t *testing.T) *Report {
	t.Helper()
	c, err := colour.ParseHex("#d7698b")
	if err != nil {
		t.Fatal(err)
	}
	a, err := colour.AnalyzeColours([]colour.Colour{c}, nil, colour.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return &Report{
		Source:    "solo.png",
		Analysis:  a,
		Algorithm: colour.AlgorithmMedianCut,
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"/home/user/pics/sunset.png", "sunset"},
		{"sunset.png", "sunset"},
		{"sunset", "sunset"},
		{`C:\pics\photo.jpg`, "photo"},
		{"https://example.com/img/photo.jpg?w=200&h=100", "photo"},
		{"https://example.com/img/photo.jpg", "photo"},
		{"archive.tar.gz", "archive.tar"},
		{"", "palette"},
		{"/pics/", "palette"},
		{".png", "palette"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := BaseName(tt.source); got != tt.want {
				t.Errorf("BaseName(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestReportText(t *testing.T) {
	rep := testReport(t)
	out := rep.Text()

	wants := []string{
		"cbsafe palette report",
		"Source:        testdata/sample.png",
		"Algorithm:     kmeans",
		"Seed:          42 (content)",
		"Metric:        cie76 (cielab)",
		"Threshold:     2.30",
		"Deficiencies:  protanopia, deuteranopia, tritanopia",
		"MIN dE",
		"CLOSEST",
		"#d7698b",
		"rgb(215, 105, 139)",
		"50.0%",
		"#a1c663 under protanopia",
		"UNSAFE",
		"SAFE",
		"Closest pair per deficiency:",
		"dE 0.71",
		"#d7698b vs #a1c663",
		"1 of 3 colours safe at threshold 2.30; palette is NOT colour-blind safe.",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("Text() missing %q\nfull output:\n%s", want, out)
		}
	}
}

func TestReportTextSingleEntry(t *testing.T) {
	rep := singleEntryReport(t)
	out := rep.Text()

	if !strings.Contains(out, "1 of 1 colours safe at threshold 10.00; palette is colour-blind safe.") {
		t.Errorf("Text() missing safe verdict\nfull output:\n%s", out)
	}
	if strings.Contains(out, "Seed:") {
		t.Error("Text() shows a seed for a deterministic algorithm")
	}
	if strings.Contains(out, "Closest pair per deficiency:") {
		t.Error("Text() shows closest pairs for a single-entry palette")
	}

	// The single entry has no pairs: its minimum renders as a dash.
	rows := strings.Split(out, "\n")
	var entryRow string
	for _, row := range rows {
		if strings.Contains(row, "#d7698b") {
			entryRow = row
			break
		}
	}
	if entryRow == "" {
		t.Fatalf("Text() has no entry row\nfull output:\n%s", out)
	}
	if !strings.Contains(entryRow, "-") {
		t.Errorf("entry row = %q, want dash for missing minimum", entryRow)
	}
}

func TestReportJSON(t *testing.T) {
	rep := testReport(t)
	data, err := rep.JSON()
	if err != nil {
		t.Fatalf("JSON() unexpected error: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("JSON() output does not end with a newline")
	}

	var got struct {
		Source    string `json:"source"`
		Algorithm string `json:"algorithm"`
		SeedMode  string `json:"seed_mode"`
		Seed      *int64 `json:"seed"`
		Config    struct {
			Threshold    float64  `json:"threshold"`
			Metric       string   `json:"metric"`
			Space        string   `json:"space"`
			Deficiencies []string `json:"deficiencies"`
		} `json:"config"`
		Palette []struct {
			Rank      int               `json:"rank"`
			Hex       string            `json:"hex"`
			Weight    float64           `json:"weight"`
			Simulated map[string]string `json:"simulated"`
			MinDeltaE *float64          `json:"min_delta_e"`
			MinAt     string            `json:"min_at"`
			Label     string            `json:"label"`
		} `json:"palette"`
		Distances []struct {
			I          int     `json:"i"`
			J          int     `json:"j"`
			Deficiency string  `json:"deficiency"`
			DeltaE     float64 `json:"delta_e"`
		} `json:"distances"`
		Summary struct {
			Safe    int    `json:"safe"`
			Unsafe  int    `json:"unsafe"`
			AllSafe bool   `json:"all_safe"`
			Verdict string `json:"verdict"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}

	if got.Source != "testdata/sample.png" {
		t.Errorf("source = %q", got.Source)
	}
	if got.Algorithm != "kmeans" {
		t.Errorf("algorithm = %q, want kmeans", got.Algorithm)
	}
	if got.Seed == nil || *got.Seed != 42 {
		t.Errorf("seed = %v, want 42", got.Seed)
	}
	if got.SeedMode != "content" {
		t.Errorf("seed_mode = %q, want content", got.SeedMode)
	}
	if got.Config.Threshold != colour.JNDThreshold {
		t.Errorf("config.threshold = %v, want %v", got.Config.Threshold, colour.JNDThreshold)
	}
	if len(got.Config.Deficiencies) != 3 {
		t.Errorf("config.deficiencies has %d entries, want 3", len(got.Config.Deficiencies))
	}

	if len(got.Palette) != 3 {
		t.Fatalf("palette has %d entries, want 3", len(got.Palette))
	}
	first := got.Palette[0]
	if first.Rank != 1 || first.Hex != "#d7698b" || first.Weight != 0.5 {
		t.Errorf("first entry = %+v", first)
	}
	if first.Simulated["protanopia"] != "#b2b184" {
		t.Errorf("first entry protanopia simulation = %q, want #b2b184", first.Simulated["protanopia"])
	}
	if len(first.Simulated) != 3 {
		t.Errorf("first entry has %d simulations, want 3", len(first.Simulated))
	}
	if first.MinDeltaE == nil || math.Abs(*first.MinDeltaE-0.7075) > 0.05 {
		t.Errorf("first entry min_delta_e = %v, want about 0.7075", first.MinDeltaE)
	}
	if first.MinAt != "protanopia" || first.Label != "unsafe" {
		t.Errorf("first entry min_at = %q label = %q", first.MinAt, first.Label)
	}

	if len(got.Distances) != 9 {
		t.Errorf("distances has %d results, want 9", len(got.Distances))
	}
	if got.Summary.Safe != 1 || got.Summary.Unsafe != 2 || got.Summary.AllSafe {
		t.Errorf("summary = %+v", got.Summary)
	}
	if !strings.Contains(got.Summary.Verdict, "NOT colour-blind safe") {
		t.Errorf("verdict = %q", got.Summary.Verdict)
	}
}

func TestReportJSONSingleEntry(t *testing.T) {
	rep := singleEntryReport(t)
	data, err := rep.JSON()
	if err != nil {
		t.Fatalf("JSON() unexpected error: %v", err)
	}

	var got struct {
		Seed     *int64 `json:"seed"`
		SeedMode string `json:"seed_mode"`
		Palette  []struct {
			MinDeltaE *float64 `json:"min_delta_e"`
			Label     string   `json:"label"`
		} `json:"palette"`
		Distances []json.RawMessage `json:"distances"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}

	// Median cut is deterministic, so no seed is reported.
	if got.Seed != nil || got.SeedMode != "" {
		t.Errorf("seed = %v seed_mode = %q, want absent", got.Seed, got.SeedMode)
	}
	if len(got.Palette) != 1 {
		t.Fatalf("palette has %d entries, want 1", len(got.Palette))
	}
	// +Inf cannot appear in JSON; the missing minimum is null.
	if got.Palette[0].MinDeltaE != nil {
		t.Errorf("min_delta_e = %v, want null", *got.Palette[0].MinDeltaE)
	}
	if got.Palette[0].Label != "safe" {
		t.Errorf("label = %q, want safe", got.Palette[0].Label)
	}
	if len(got.Distances) != 0 {
		t.Errorf("distances has %d results, want 0", len(got.Distances))
	}
}

func TestReportFigure(t *testing.T) {
	rep := testReport(t)
	im, err := rep.Figure()
	if err != nil {
		t.Fatalf("Figure() unexpected error: %v", err)
	}

	// One swatch column for the original plus one per deficiency.
	wantW := figMargin*2 + 4*(figSwatchW+figColGap) + figWeightW + figDeltaW + figVerdictW
	wantH := figHeaderH + figColHeaderH + 3*figRowH + figFooterH + figMargin
	if im.Bounds().Dx() != wantW || im.Bounds().Dy() != wantH {
		t.Fatalf("Figure() size = %dx%d, want %dx%d",
			im.Bounds().Dx(), im.Bounds().Dy(), wantW, wantH)
	}

	probe := func(x, y int) (uint8, uint8, uint8) {
		r, g, b, _ := im.At(x, y).RGBA()
		return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
	}

	// First row's original swatch, probed away from its centred label.
	swatchTop := figHeaderH + figColHeaderH + (figRowH-figSwatchH)/2
	r, g, b := probe(figMargin+10, swatchTop+5)
	if r != 215 || g != 105 || b != 139 {
		t.Errorf("original swatch pixel = (%d, %d, %d), want (215, 105, 139)", r, g, b)
	}

	// First simulated swatch: the canvas holds the truncated byte form of
	// the simulated colour.
	sim, err := colour.Simulate(rep.Analysis.Entries[0].Entry.Colour, colour.Protanopia)
	if err != nil {
		t.Fatal(err)
	}
	wantR, wantG, wantB := uint8(sim.R*255), uint8(sim.G*255), uint8(sim.B*255)
	r, g, b = probe(figMargin+figSwatchW+figColGap+10, swatchTop+5)
	if r != wantR || g != wantG || b != wantB {
		t.Errorf("simulated swatch pixel = (%d, %d, %d), want (%d, %d, %d)",
			r, g, b, wantR, wantG, wantB)
	}

	// The corner outside any content stays background white.
	r, g, b = probe(wantW-2, wantH-2)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("background pixel = (%d, %d, %d), want white", r, g, b)
	}
}

func TestReportFigureSingleEntry(t *testing.T) {
	rep := singleEntryReport(t)
	im, err := rep.Figure()
	if err != nil {
		t.Fatalf("Figure() unexpected error: %v", err)
	}

	wantW := figMargin*2 + 4*(figSwatchW+figColGap) + figWeightW + figDeltaW + figVerdictW
	wantH := figHeaderH + figColHeaderH + figRowH + figFooterH + figMargin
	if im.Bounds().Dx() != wantW || im.Bounds().Dy() != wantH {
		t.Errorf("Figure() size = %dx%d, want %dx%d",
			im.Bounds().Dx(), im.Bounds().Dy(), wantW, wantH)
	}
}

func TestReportFigureThumbnail(t *testing.T) {
	rep := testReport(t)

	src := image.NewRGBA(image.Rect(0, 0, 10, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 10; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 215, G: 105, B: 139, A: 255})
		}
	}
	rep.Image = src

	im, err := rep.Figure()
	if err != nil {
		t.Fatalf("Figure() unexpected error: %v", err)
	}

	// Thumbnail scale is min(120/10, 72/8) = 9, so it spans 90x72 from
	// the top-right margin corner; probe its centre.
	width := im.Bounds().Dx()
	x := width - figMargin - 45
	y := figMargin + 36
	r, g, b, _ := im.At(x, y).RGBA()
	if uint8(r>>8) != 215 || uint8(g>>8) != 105 || uint8(b>>8) != 139 {
		t.Errorf("thumbnail pixel = (%d, %d, %d), want (215, 105, 139)", r>>8, g>>8, b>>8)
	}
}

func TestReportFigureNoAnalysis(t *testing.T) {
	rep := &Report{Source: "x.png"}
	if _, err := rep.Figure(); err == nil {
		t.Error("Figure() expected error without analysis, got none")
	}
}

func TestSaveFigure(t *testing.T) {
	rep := testReport(t)
	path := filepath.Join(t.TempDir(), "sample_report.png")

	if err := rep.SaveFigure(path); err != nil {
		t.Fatalf("SaveFigure() unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("figure file missing: %v", err)
	}
	defer f.Close()

	im, err := png.Decode(f)
	if err != nil {
		t.Fatalf("figure is not a valid PNG: %v", err)
	}
	wantW := figMargin*2 + 4*(figSwatchW+figColGap) + figWeightW + figDeltaW + figVerdictW
	if im.Bounds().Dx() != wantW {
		t.Errorf("saved figure width = %d, want %d", im.Bounds().Dx(), wantW)
	}
}
