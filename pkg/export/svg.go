package export

import (
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/ChicagoDave/aerostat/pkg/geo"
	"github.com/ChicagoDave/aerostat/pkg/pattern"
)

const svgPaddingMM = 20.0

var strokeColors = map[strokeKind]color.Color{
	strokeCut:    color.Black,
	strokeSewing: color.Black,
	strokeNotch:  color.RGBA{R: 220, A: 255},
	strokeCenter: color.RGBA{G: 160, A: 255},
}

// WritePatternSVG draws one copy of every piece at full size, side by side,
// for a plotter or cutter. Units are millimetres.
func WritePatternSVG(w io.Writer, p *pattern.Pattern) error {
	if err := checkPattern(p); err != nil {
		return err
	}
	sheets := make([]sheet, len(p.Pieces))
	width, height := svgPaddingMM, 0.0
	for i, pc := range p.Pieces {
		sheets[i] = newSheet(pc, p.Kind == pattern.KindGores)
		width += sheets[i].w + svgPaddingMM
		height = math.Max(height, sheets[i].h)
	}
	height += 2 * svgPaddingMM

	c := vgsvg.New(mm(width), mm(height))
	left := svgPaddingMM
	for _, s := range sheets {
		// Sheet y runs down the page, canvas y runs up.
		at := func(v geo.Point2D) vg.Point {
			return vg.Point{X: mm(left + v.X), Y: mm(height - svgPaddingMM - v.Y)}
		}
		s.strokes(func(k strokeKind, pts []geo.Point2D, closed bool) {
			c.SetColor(strokeColors[k])
			c.SetLineWidth(mm(svgLineWidth(k)))
			c.SetLineDash(svgDash(k), 0)
			var path vg.Path
			for i, v := range pts {
				if i == 0 {
					path.Move(at(v))
				} else {
					path.Line(at(v))
				}
			}
			if closed {
				path.Close()
			}
			c.Stroke(path)
		})
		left += s.w + svgPaddingMM
	}
	_, err := c.WriteTo(w)
	return err
}

func mm(v float64) vg.Length {
	return vg.Length(v) * vg.Millimeter
}

func svgLineWidth(k strokeKind) float64 {
	switch k {
	case strokeCut:
		return 0.4
	case strokeNotch:
		return 0.3
	}
	return 0.2
}

func svgDash(k strokeKind) []vg.Length {
	switch k {
	case strokeSewing:
		return []vg.Length{mm(3), mm(2)}
	case strokeCenter:
		return []vg.Length{mm(5), mm(5)}
	}
	return nil
}
