package report

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/colour"
)

// Figure layout constants, in pixels.
const (
	figMargin     = 24
	figSwatchW    = 120
	figSwatchH    = 40
	figColGap     = 12
	figRowH       = 56
	figHeaderH    = 104
	figColHeaderH = 22
	figFooterH    = 44
	figWeightW    = 140
	figDeltaW     = 80
	figVerdictW   = 88
	figThumbMaxW  = 120.0
	figThumbMaxH  = 72.0
)

// Chrome colours for the figure. Verdicts are signalled by mark shape and
// text as well as colour, so the figure itself stays readable under the
// deficiencies it reports on.
var (
	figInk    = [3]float64{0.13, 0.13, 0.13}
	figMuted  = [3]float64{0.45, 0.45, 0.45}
	figGrid   = [3]float64{0.82, 0.82, 0.82}
	figSafe   = [3]float64{0.10, 0.45, 0.22}
	figUnsafe = [3]float64{0.70, 0.15, 0.12}
)

// Figure renders the analysis as a PNG-ready summary image: one row per
// palette entry showing the original swatch, its appearance under each
// simulated deficiency, its weight, its minimum distance and its verdict.
func (r *Report) Figure() (image.Image, error) {
	if r.Analysis == nil || len(r.Analysis.Entries) == 0 {
		return nil, fmt.Errorf("report has no analysis to render")
	}
	a := r.Analysis

	swatchCols := 1 + len(a.Config.Deficiencies)
	width := figMargin*2 + swatchCols*(figSwatchW+figColGap) + figWeightW + figDeltaW + figVerdictW
	height := figHeaderH + figColHeaderH + len(a.Entries)*figRowH + figFooterH + figMargin

	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	r.drawHeader(dc, width)
	r.drawColumnHeaders(dc)

	maxWeight := 0.0
	for _, e := range a.Entries {
		if e.Entry.Weight > maxWeight {
			maxWeight = e.Entry.Weight
		}
	}

	for i, e := range a.Entries {
		rowY := float64(figHeaderH + figColHeaderH + i*figRowH)
		r.drawEntryRow(dc, e, rowY, maxWeight)
	}

	r.drawFooter(dc, height)

	return dc.Image(), nil
}

// SaveFigure renders the summary figure and writes it to path as a PNG.
func (r *Report) SaveFigure(path string) error {
	im, err := r.Figure()
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, im); err != nil {
		return fmt.Errorf("failed to write figure: %w", err)
	}
	return nil
}

// drawHeader paints the title, run description and source thumbnail.
func (r *Report) drawHeader(dc *gg.Context, width int) {
	setRGB(dc, figInk)
	dc.DrawString("COLOUR-BLIND SAFETY REPORT", figMargin, figMargin+11)

	setRGB(dc, figMuted)
	lineY := float64(figMargin) + 11 + 18
	dc.DrawString(fmt.Sprintf("source: %s", r.Source), figMargin, lineY)
	lineY += 16
	algo := fmt.Sprintf("algorithm: %s", r.Algorithm)
	if r.Algorithm == colour.AlgorithmKMeans {
		algo = fmt.Sprintf("algorithm: %s (seed %d, %s)", r.Algorithm, r.Seed, r.SeedMode)
	}
	dc.DrawString(algo, figMargin, lineY)
	lineY += 16
	dc.DrawString(fmt.Sprintf("metric: %s, threshold: %.2f",
		r.Analysis.Config.Metric, r.Analysis.Config.Threshold), figMargin, lineY)

	r.drawThumbnail(dc, width)

	setRGB(dc, figGrid)
	dc.SetLineWidth(1)
	dc.DrawLine(figMargin, figHeaderH-8, float64(width)-figMargin, figHeaderH-8)
	dc.Stroke()
}

// drawThumbnail scales the source image into the top-right corner of the
// header. Skipped when the report carries no image.
func (r *Report) drawThumbnail(dc *gg.Context, width int) {
	if r.Image == nil {
		return
	}
	b := r.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return
	}
	scale := math.Min(figThumbMaxW/float64(b.Dx()), figThumbMaxH/float64(b.Dy()))
	tw := float64(b.Dx()) * scale
	th := float64(b.Dy()) * scale
	x := float64(width) - figMargin - tw
	y := float64(figMargin)

	dc.Push()
	dc.Translate(x, y)
	dc.Scale(scale, scale)
	dc.DrawImage(r.Image, 0, 0)
	dc.Pop()

	setRGB(dc, figGrid)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, tw, th)
	dc.Stroke()
}

// drawColumnHeaders paints one label above each column.
func (r *Report) drawColumnHeaders(dc *gg.Context) {
	setRGB(dc, figMuted)
	y := float64(figHeaderH) + 13

	dc.DrawString("COLOUR", r.colX(0), y)
	for k, d := range r.Analysis.Config.Deficiencies {
		dc.DrawString(strings.ToUpper(string(d)), r.colX(1+k), y)
	}
	dc.DrawString("WEIGHT", r.weightX(), y)
	dc.DrawString("MIN dE", r.deltaX(), y)
	dc.DrawString("VERDICT", r.verdictX(), y)
}

// drawEntryRow paints one palette entry: swatches, weight bar, minimum
// distance and verdict mark.
func (r *Report) drawEntryRow(dc *gg.Context, e colour.EntryResult, rowY, maxWeight float64) {
	swatchY := rowY + (figRowH-figSwatchH)/2

	// Original swatch with its hex code, lettered for contrast.
	r.drawSwatch(dc, e.Entry.Colour, r.colX(0), swatchY)
	text := colour.TextColourFor(e.Entry.Colour)
	setRGB(dc, [3]float64{text.R, text.G, text.B})
	dc.DrawStringAnchored(e.Entry.Colour.Hex(), r.colX(0)+figSwatchW/2, swatchY+figSwatchH/2, 0.5, 0.5)

	// Simulated swatches in configuration order.
	for k, sc := range e.Simulated {
		r.drawSwatch(dc, sc.Colour, r.colX(1+k), swatchY)
	}

	r.drawWeightBar(dc, e, swatchY, maxWeight)

	// Minimum distance, with the deficiency it occurs under.
	setRGB(dc, figInk)
	dc.DrawString(formatDeltaE(e.MinDeltaE), r.deltaX(), swatchY+16)
	setRGB(dc, figMuted)
	if e.MinAt != "" {
		dc.DrawString(fmt.Sprintf("(%s)", e.MinAt.Short()), r.deltaX(), swatchY+32)
	}

	r.drawVerdict(dc, e.Label, swatchY)
}

// drawSwatch fills one swatch rectangle with a thin outline so that very
// light colours remain visible against the background.
func (r *Report) drawSwatch(dc *gg.Context, c colour.Colour, x, y float64) {
	dc.SetRGB(c.R, c.G, c.B)
	dc.DrawRectangle(x, y, figSwatchW, figSwatchH)
	dc.Fill()
	setRGB(dc, figGrid)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, figSwatchW, figSwatchH)
	dc.Stroke()
}

// drawWeightBar paints a horizontal bar proportional to the entry weight,
// scaled against the heaviest entry, with the percentage alongside.
func (r *Report) drawWeightBar(dc *gg.Context, e colour.EntryResult, swatchY, maxWeight float64) {
	x := r.weightX()
	barMaxW := float64(figWeightW) - 52
	barW := 0.0
	if maxWeight > 0 {
		barW = e.Entry.Weight / maxWeight * barMaxW
	}
	barY := swatchY + figSwatchH/2 - 7

	c := e.Entry.Colour
	dc.SetRGB(c.R, c.G, c.B)
	dc.DrawRectangle(x, barY, barW, 14)
	dc.Fill()
	setRGB(dc, figGrid)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, barY, barMaxW, 14)
	dc.Stroke()

	setRGB(dc, figInk)
	dc.DrawString(formatWeight(e.Entry.Weight), x+barMaxW+6, barY+11)
}

// drawVerdict paints the safe/unsafe mark and word. The mark shape carries
// the signal; colour only reinforces it.
func (r *Report) drawVerdict(dc *gg.Context, label colour.SafetyLabel, swatchY float64) {
	x := r.verdictX()
	markY := swatchY + figSwatchH/2 - 8
	const markSize = 16.0

	if label.IsSafe() {
		setRGB(dc, figSafe)
		dc.SetLineWidth(3)
		dc.MoveTo(x, markY+markSize*0.55)
		dc.LineTo(x+markSize*0.38, markY+markSize*0.9)
		dc.LineTo(x+markSize, markY+markSize*0.1)
		dc.Stroke()
	} else {
		setRGB(dc, figUnsafe)
		dc.SetLineWidth(3)
		dc.DrawLine(x, markY, x+markSize, markY+markSize)
		dc.DrawLine(x+markSize, markY, x, markY+markSize)
		dc.Stroke()
	}
	dc.DrawString(strings.ToUpper(string(label)), x+markSize+8, markY+markSize*0.75)
}

// drawFooter paints the one-line verdict across the bottom.
func (r *Report) drawFooter(dc *gg.Context, height int) {
	if r.Analysis.AllSafe() {
		setRGB(dc, figSafe)
	} else {
		setRGB(dc, figUnsafe)
	}
	dc.DrawString(r.Verdict(), figMargin, float64(height-figMargin-8))
}

// Column x positions. Swatch columns sit left of the weight, distance and
// verdict columns.
func (r *Report) colX(col int) float64 {
	return figMargin + float64(col)*(figSwatchW+figColGap)
}

func (r *Report) weightX() float64 {
	return r.colX(1 + len(r.Analysis.Config.Deficiencies))
}

func (r *Report) deltaX() float64 {
	return r.weightX() + figWeightW
}

func (r *Report) verdictX() float64 {
	return r.deltaX() + figDeltaW
}

func setRGB(dc *gg.Context, c [3]float64) {
	dc.SetRGB(c[0], c[1], c[2])
}
