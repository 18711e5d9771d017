package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"

	// Liberation fonts register automatically on import
	_ "gonum.org/v1/plot/font/liberation"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func useLiberationFonts(p *plot.Plot) {
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)
}

// makeUVCoverageImage scatters every sampled baseline (u,v) of the
// observation. The axes are symmetric about the origin since every baseline
// appears with both signs.
func makeUVCoverageImage(baselines mat.Matrix, title string, wPx, hPx float64) (image.Image, error) {
	if baselines == nil {
		return nil, errors.New("no baselines to plot")
	}
	rows, cols := baselines.Dims()
	if cols != 2 {
		return nil, fmt.Errorf("baseline table must have 2 columns, got %d", cols)
	}

	p := plot.New()
	useLiberationFonts(p)

	p.Title.Text = title
	p.X.Label.Text = "u (wavelengths)"
	p.Y.Label.Text = "v (wavelengths)"

	pts := make(plotter.XYs, rows)
	extent := 0.0
	for i := 0; i < rows; i++ {
		pts[i].X = baselines.At(i, 0)
		pts[i].Y = baselines.At(i, 1)
		extent = math.Max(extent, math.Max(math.Abs(pts[i].X), math.Abs(pts[i].Y)))
	}
	if extent == 0 {
		extent = 1 // single dish: every baseline sits on the origin
	}
	extent *= 1.05

	p.X.Min, p.X.Max = -extent, extent
	p.Y.Min, p.Y.Max = -extent, extent
	step := tickStep(extent)
	p.X.Tick.Marker = StepTicks{Step: step, Format: "%.0f"}
	p.Y.Tick.Marker = StepTicks{Step: step, Format: "%.0f"}
	p.Add(plotter.NewGrid()) // grid + ticks

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.Shape = draw.CircleGlyph{}
	scatter.Radius = vg.Points(1)
	scatter.Color = color.RGBA{R: 0, G: 0, B: 255, A: 255} // blue
	p.Add(scatter)

	// Render into an in-memory image
	// Choose a "virtual" size in vg units and map to pixels via DPI.
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	dc := draw.New(c)
	p.Draw(dc)

	return c.Image(), nil
}

// tickStep picks a 1, 2 or 5 times power-of-ten spacing giving roughly five
// ticks on each side of the origin.
func tickStep(extent float64) float64 {
	raw := extent / 5
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f < 1.5:
		return mag
	case f < 3.5:
		return 2 * mag
	case f < 7.5:
		return 5 * mag
	}
	return 10 * mag
}

type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}
