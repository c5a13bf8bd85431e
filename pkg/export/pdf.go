package export

import (
	"fmt"
	"io"
	"math"

	"github.com/phpdave11/gofpdf"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/geo"
	"github.com/ChicagoDave/aerostat/pkg/pattern"
	"github.com/ChicagoDave/aerostat/pkg/scene2d"
)

// A4 portrait layout, millimetres.
const (
	pageMargin  = 15.0
	drawWidth   = 180.0
	drawHeight  = 240.0
	drawTop     = 35.0
	notchRadius = 1.2
)

// WriteReport writes a one-page A4 summary of the bundle.
func WriteReport(w io.Writer, b *Bundle) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()

	title := "Balloon Report"
	if b.Spec.Name != "" {
		title += ": " + b.Spec.Name
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Generated %s", b.GeneratedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(8)

	r := b.Result
	section := func(name string, rows [][2]string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, name)
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		for _, row := range rows {
			pdf.CellFormat(70, 5.5, tr(row[0]), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5.5, tr(row[1]), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	section("Working point", [][2]string{
		{"Gas / material", fmt.Sprintf("%s / %s, %.0f µm", r.GasType, r.Material, r.ThicknessM*1e6)},
		{"Shape", string(r.ShapeKind)},
		{"Altitude", fmt.Sprintf("%.0f m (%.1f °C, %.0f Pa)", r.HeightM, r.OutsideTempC, r.OutsidePressurePa)},
		{"Gas volume", fmt.Sprintf("%.3f m³ (envelope %.3f m³)", r.GasVolumeM3, r.RequiredVolumeM3)},
		{"Payload", fmt.Sprintf("%.3f kg", r.PayloadKg)},
		{"Lift / shell mass", fmt.Sprintf("%.3f kg / %.3f kg", r.LiftKg, r.ShellMassKg)},
		{"Stress", fmt.Sprintf("%.0f Pa (limit %.0f Pa, safety %s)", r.StressPa, r.StressLimitPa,
			formatUnbounded(analysis.SafetyFactor(r.StressLimitPa, r.StressPa), "%.2f"))},
	})

	m, l := b.Budget.Mass, b.Budget.Lift
	section("Budget", [][2]string{
		{"Structural", fmt.Sprintf("%.3f kg (envelope %.3f, seams %.3f, reinforcements %.3f)", m.StructuralKg, m.EnvelopeKg, m.SeamsKg, m.ReinforcementsKg)},
		{"Gas", fmt.Sprintf("%.3f kg", m.GasKg)},
		{"Safety margin", fmt.Sprintf("%.3f kg", m.SafetyMarginKg)},
		{"Total mass", fmt.Sprintf("%.3f kg", m.TotalKg)},
		{"Net lift / remaining", fmt.Sprintf("%.3f kg / %.3f kg", l.NetKg, l.RemainingKg)},
		{"Efficiency", fmt.Sprintf("%.1f %%", l.Efficiency*100)},
	})

	if b.Cost != nil {
		section("Cost", [][2]string{
			{"Material", fmt.Sprintf("%.2f", b.Cost.Estimate.Material)},
			{"Gas", fmt.Sprintf("%.2f", b.Cost.Estimate.Gas)},
			{"Total", fmt.Sprintf("%.2f", b.Cost.Estimate.Total)},
			{"Per kg payload", fmt.Sprintf("%.2f", b.Cost.Summary.CostPerKgPayload)},
		})
	}

	if b.Flight != nil {
		section("Flight time", [][2]string{
			{"Maximum", formatUnbounded(b.Flight.MaxTimeHours, "%.1f h")},
			{"Until zero payload", formatUnbounded(b.Flight.TimeToZeroPayloadHours, "%.1f h")},
			{"Gas loss", fmt.Sprintf("%.6f m³/h", b.Flight.GasLossRateM3PerHour)},
		})
	}

	if b.Pattern != nil {
		rows := [][2]string{
			{"Kind", fmt.Sprintf("%s, %d piece(s)", b.Pattern.Kind, pieceCount(b.Pattern))},
			{"Seam length", fmt.Sprintf("%.2f m", pattern.SeamLength(b.Pattern))},
		}
		if b.Fabric != nil {
			rows = append(rows,
				[2]string{"Fabric roll", fmt.Sprintf("%.2f m of %.0f mm", b.Fabric.RollLengthM, b.Fabric.FabricWidthMM)},
				[2]string{"Waste", fmt.Sprintf("%.2f m² (%.1f %%)", b.Fabric.WasteM2, b.Fabric.WastePercent)})
		}
		section("Cutting pattern", rows)
	}

	if len(b.Materials) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Materials")
		pdf.Ln(7)
		widths := []float64{30, 30, 35, 35, 30}
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range []string{"Material", "Status", "Payload kg", "Shell kg", "Safety"} {
			pdf.CellFormat(widths[i], 6, h, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		for _, row := range b.Materials {
			cells := []string{
				row.Material, string(row.Status),
				fmt.Sprintf("%.3f", row.PayloadKg), fmt.Sprintf("%.3f", row.ShellMassKg),
				formatUnbounded(row.SafetyFactor, "%.2f"),
			}
			for i, c := range cells {
				pdf.CellFormat(widths[i], 5, c, "", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	return pdf.Output(w)
}

// WritePattern draws each pattern piece shrunk to fit its own A4 page: the
// cut line solid, the sewing line dashed, notches as circles. With a fabric
// estimate a final page shows the cutting layout on the roll. Use
// WritePatternFullSize for templates to cut from.
func WritePattern(w io.Writer, p *pattern.Pattern, f *pattern.Fabric) error {
	if err := checkPattern(p); err != nil {
		return err
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)

	for _, piece := range p.Pieces {
		pdf.AddPage()
		shape := piece.Cut
		if shape.IsEmpty() {
			shape = piece.Outline
		}
		box := shape.BoundingBox()
		scale := pageScale(box)

		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 8, tr(fmt.Sprintf("%s: %s", p.ShapeKind, piece.Name)))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 9)
		pdf.Cell(0, 5, tr(fmt.Sprintf("Scale 1:%.0f   cut %d   seam allowance %.0f mm   piece %.3f m × %.3f m",
			1000/scale, piece.Count, p.SeamAllowanceMM, box.Width(), box.Height())))

		toPage := func(pt geo.Point2D) gofpdf.PointType {
			return gofpdf.PointType{
				X: pageMargin + (drawWidth-box.Width()*scale)/2 + (pt.X-box.Min.X)*scale,
				Y: drawTop + (box.Max.Y-pt.Y)*scale,
			}
		}
		points := func(poly geo.Polygon) []gofpdf.PointType {
			out := make([]gofpdf.PointType, len(poly.Vertices))
			for i, v := range poly.Vertices {
				out[i] = toPage(v)
			}
			return out
		}

		pdf.SetLineWidth(0.3)
		pdf.Polygon(points(shape), "D")
		if !piece.Cut.IsEmpty() && !piece.Outline.IsEmpty() {
			pdf.SetLineWidth(0.15)
			pdf.SetDashPattern([]float64{2, 1.5}, 0)
			pdf.Polygon(points(piece.Outline), "D")
			pdf.SetDashPattern([]float64{}, 0)
		}
		for _, n := range piece.Notches {
			for _, pt := range []geo.Point2D{n.Left, n.Right} {
				c := toPage(pt)
				pdf.Circle(c.X, c.Y, notchRadius, "D")
			}
		}
		label := toPage(piece.Outline.Centroid())
		pdf.SetFont("Helvetica", "", 8)
		pdf.Text(label.X-6, label.Y, fmt.Sprintf("x%d", piece.Count))
	}
	if f != nil {
		drawLayout(pdf, tr, scene2d.Assemble2D(p, *f))
	}
	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(w)
}

// drawLayout draws the roll with every placed piece, scaled to the page.
func drawLayout(pdf *gofpdf.Fpdf, tr func(string) string, sc *scene2d.Scene2D) {
	md := sc.Metadata
	if md.RollLengthMM <= 0 || md.FabricWidthMM <= 0 {
		return
	}
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, tr("Cutting layout"))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Roll %.0f mm × %.2f m   %d pieces in %d rows   waste %.1f%%",
		md.FabricWidthMM, md.RollLengthMM/1000, md.PieceCount, len(sc.Rows), md.WastePercent)))

	scale := math.Min(drawWidth/md.FabricWidthMM, drawHeight/md.RollLengthMM)
	left := pageMargin + (drawWidth-md.FabricWidthMM*scale)/2
	toPage := func(c [2]float64) gofpdf.PointType {
		return gofpdf.PointType{X: left + c[0]*scale, Y: drawTop + c[1]*scale}
	}

	pdf.SetLineWidth(0.3)
	pdf.Rect(left, drawTop, md.FabricWidthMM*scale, md.RollLengthMM*scale, "D")
	pdf.SetLineWidth(0.15)
	pdf.SetFont("Helvetica", "", 6)
	for _, pc := range sc.Pieces {
		pts := make([]gofpdf.PointType, len(pc.Cut))
		for i, c := range pc.Cut {
			pts[i] = toPage(c)
		}
		pdf.Polygon(pts, "D")
		label := toPage(pc.Label)
		pdf.Text(label.X-1, label.Y, fmt.Sprintf("%d", pc.Copy))
	}
}

// pageScale is the drawing scale in mm per metre, capped at full size.
func pageScale(box geo.Rect) float64 {
	scale := 1000.0
	if box.Width() > 0 {
		scale = math.Min(scale, drawWidth/box.Width())
	}
	if box.Height() > 0 {
		scale = math.Min(scale, drawHeight/box.Height())
	}
	return scale
}

func pieceCount(p *pattern.Pattern) int {
	n := 0
	for _, piece := range p.Pieces {
		n += piece.Count
	}
	return n
}

func formatUnbounded(v analysis.Unbounded, format string) string {
	if v.IsInf() {
		return "unlimited"
	}
	return fmt.Sprintf(format, float64(v))
}
