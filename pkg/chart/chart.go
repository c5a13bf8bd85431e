// Package chart draws height profiles as PNG images and terminal graphs.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/solver"
)

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch

	DefaultASCIIWidth  = 70
	DefaultASCIIHeight = 15
)

var errNoPoints = errors.New("chart: profile has no points")

var (
	payloadColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	liftColor    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

func payload(r solver.Result) float64 { return r.PayloadKg }
func lift(r solver.Result) float64    { return r.LiftKg }

// ProfilePNG plots payload and lift against height and writes a PNG.
func ProfilePNG(w io.Writer, points []analysis.Point, title string) error {
	if len(points) == 0 {
		return errNoPoints
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "height (m)"
	p.Y.Label.Text = "mass (kg)"
	p.Add(plotter.NewGrid())

	for _, s := range []struct {
		name  string
		value func(solver.Result) float64
		color color.Color
	}{
		{"payload", payload, payloadColor},
		{"lift", lift, liftColor},
	} {
		line, err := plotter.NewLine(xys(analysis.Series(points, s.value)))
		if err != nil {
			return fmt.Errorf("chart: %s line: %w", s.name, err)
		}
		line.LineStyle.Color = s.color
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true

	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, "png")
	if err != nil {
		return fmt.Errorf("chart: rendering: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func xys(heights, values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(heights))
	for i := range heights {
		pts[i].X = heights[i]
		pts[i].Y = values[i]
	}
	return pts
}

// ProfileASCII renders payload and lift as a terminal graph. The x axis is
// the profile index; the caption names the height range.
func ProfileASCII(points []analysis.Point, width, height int) (string, error) {
	if len(points) == 0 {
		return "", errNoPoints
	}
	if width <= 0 {
		width = DefaultASCIIWidth
	}
	if height <= 0 {
		height = DefaultASCIIHeight
	}
	_, pay := analysis.Series(points, payload)
	_, lf := analysis.Series(points, lift)
	caption := fmt.Sprintf("payload (blue) and lift (red), kg, %.0f-%.0f m",
		points[0].HeightM, points[len(points)-1].HeightM)
	return asciigraph.PlotMany([][]float64{pay, lf},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(caption),
	), nil
}
