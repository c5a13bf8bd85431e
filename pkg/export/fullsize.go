package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/geo"
	"github.com/ChicagoDave/aerostat/pkg/pattern"
)

// Full-size printing, millimetres.
const (
	DefaultOverlapMM = 10.0
	MaxTiles         = 2000

	mmPerM        = 1000.0
	gridStepMM    = 50.0
	markLenMM     = 5.0
	notchLenMM    = 5.0
	calibrationMM = 100.0
)

// PageSize names a paper format for full-size printing.
type PageSize string

const (
	PageA4 PageSize = "A4"
	PageA3 PageSize = "A3"
)

var pageDims = map[PageSize]gofpdf.SizeType{
	PageA4: {Wd: 210, Ht: 297},
	PageA3: {Wd: 297, Ht: 420},
}

// ParsePageSize accepts A4 or A3 in any case. Empty means A4.
func ParsePageSize(s string) (PageSize, error) {
	switch p := PageSize(strings.ToUpper(strings.TrimSpace(s))); p {
	case "":
		return PageA4, nil
	case PageA4, PageA3:
		return p, nil
	}
	return "", errs.Invalid("page", "must be A4 or A3, got %q", s)
}

// TileOptions controls full-size printing. The zero value prints on A4
// with a 10 mm overlap and a 50 mm grid.
type TileOptions struct {
	PageSize  PageSize
	OverlapMM float64
	NoGrid    bool
}

func (o TileOptions) withDefaults() TileOptions {
	if o.PageSize == "" {
		o.PageSize = PageA4
	}
	if o.OverlapMM == 0 {
		o.OverlapMM = DefaultOverlapMM
	}
	return o
}

// Tile is one page of a full-size piece. X and Y place the printable area
// on the piece in millimetres from the top-left corner of its cut outline.
type Tile struct {
	Row int     `json:"row"`
	Col int     `json:"col"`
	X   float64 `json:"x_mm"`
	Y   float64 `json:"y_mm"`
	W   float64 `json:"width_mm"`
	H   float64 `json:"height_mm"`
}

// Tiles splits a widthMM × heightMM piece into page tiles, row by row. An
// overlap band stays blank on every page edge for taping.
func Tiles(widthMM, heightMM float64, page PageSize, overlapMM float64) ([]Tile, error) {
	dims, ok := pageDims[page]
	if !ok {
		return nil, errs.Invalid("page", "unknown page size %q", page)
	}
	usableW, usableH := dims.Wd-2*overlapMM, dims.Ht-2*overlapMM
	if !(overlapMM >= 0) || usableW <= 0 || usableH <= 0 {
		return nil, errs.Invalid("overlap_mm", "%g mm leaves no room on %s", overlapMM, page)
	}
	if !(widthMM > 0 && heightMM > 0) || math.IsInf(widthMM, 1) || math.IsInf(heightMM, 1) {
		return nil, errs.Invalid("piece", "%g × %g mm cannot be tiled", widthMM, heightMM)
	}
	cols := int(math.Ceil(widthMM / usableW))
	rows := int(math.Ceil(heightMM / usableH))
	if cols*rows > MaxTiles {
		return nil, errs.Invalid("piece", "%.0f × %.0f mm needs %d pages, more than %d", widthMM, heightMM, cols*rows, MaxTiles)
	}

	tiles := make([]Tile, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x, y := float64(c)*usableW, float64(r)*usableH
			tiles = append(tiles, Tile{
				Row: r, Col: c, X: x, Y: y,
				W: math.Min(usableW, widthMM-x),
				H: math.Min(usableH, heightMM-y),
			})
		}
	}
	return tiles, nil
}

// WritePatternFullSize prints one copy of every piece at 1:1, tiled across
// pages. Each page carries a 50 mm grid aligned to the piece, so taped pages
// register on it, and tick marks on every edge that meets a neighbour.
// Tiles the cut outline never reaches are not printed; the rest keep their
// row and column labels.
func WritePatternFullSize(w io.Writer, p *pattern.Pattern, opts TileOptions) error {
	if err := checkPattern(p); err != nil {
		return err
	}
	opts = opts.withDefaults()
	page, ok := pageDims[opts.PageSize]
	if !ok {
		return errs.Invalid("page", "unknown page size %q", opts.PageSize)
	}

	pdf := gofpdf.New("P", "mm", string(opts.PageSize), "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)

	for _, pc := range p.Pieces {
		s := newSheet(pc, p.Kind == pattern.KindGores)
		all, err := Tiles(s.w, s.h, opts.PageSize, opts.OverlapMM)
		if err != nil {
			return fmt.Errorf("%s: %w", pc.Name, err)
		}
		last := all[len(all)-1]
		var tiles []Tile
		for _, t := range all {
			if s.covers(t) {
				tiles = append(tiles, t)
			}
		}

		for i, t := range tiles {
			pdf.AddPage()
			o := opts.OverlapMM
			s.drawTile(pdf, t, o, !opts.NoGrid)
			drawEdgeMarks(pdf, t, last, o)

			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "", 7)
			pdf.Text(o, math.Max(3, o-2), tr(fmt.Sprintf("%s %s   1:1   page %d/%d   row %d col %d   cut x%d   cut line %.2f m",
				p.ShapeKind, pc.Name, i+1, len(tiles), t.Row+1, t.Col+1, pc.Count, pc.CutLengthM)))
			if i == 0 {
				drawCalibration(pdf, tr, o, page.Ht-o/2)
			}
		}
	}
	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(w)
}

// strokeKind picks the line style of one drawn element.
type strokeKind int

const (
	strokeCut strokeKind = iota
	strokeSewing
	strokeNotch
	strokeCenter
)

// sheet is one piece in millimetres, origin at the top-left of the cut
// outline, y running down the page.
type sheet struct {
	name    string
	w, h    float64
	cut     geo.Polygon
	outline geo.Polygon
	notches [][2]geo.Point2D
	centerX float64 // gore centre line; negative when there is none
}

func newSheet(pc pattern.Piece, gores bool) sheet {
	base := pc.Cut
	if base.IsEmpty() {
		base = pc.Outline
	}
	box := base.BoundingBox()
	corner := geo.Pt(-box.Min.X, -box.Max.Y)
	toMM := func(v geo.Point2D) geo.Point2D {
		return geo.Pt(v.X*mmPerM, -v.Y*mmPerM)
	}
	sheetPolygon := func(poly geo.Polygon) geo.Polygon {
		moved := poly.Translate(corner)
		for i, v := range moved.Vertices {
			moved.Vertices[i] = toMM(v)
		}
		return moved
	}

	s := sheet{
		name:    pc.Name,
		w:       box.Width() * mmPerM,
		h:       box.Height() * mmPerM,
		cut:     sheetPolygon(base),
		outline: sheetPolygon(pc.Outline),
		centerX: -1,
	}
	for _, n := range pc.Notches {
		// Ticks run outward from the sewing line across the allowance.
		right, left := toMM(n.Right.Add(corner)), toMM(n.Left.Add(corner))
		s.notches = append(s.notches,
			[2]geo.Point2D{right, right.Add(geo.Pt(notchLenMM, 0))},
			[2]geo.Point2D{left, left.Add(geo.Pt(-notchLenMM, 0))})
	}
	if gores {
		s.centerX = -box.Min.X * mmPerM
	}
	return s
}

// strokes hands every element of the sheet to fn in drawing order.
func (s sheet) strokes(fn func(k strokeKind, pts []geo.Point2D, closed bool)) {
	if s.centerX >= 0 {
		fn(strokeCenter, []geo.Point2D{geo.Pt(s.centerX, 0), geo.Pt(s.centerX, s.h)}, false)
	}
	if !s.outline.IsEmpty() && s.outline.Area() != s.cut.Area() {
		fn(strokeSewing, s.outline.Vertices, true)
	}
	fn(strokeCut, s.cut.Vertices, true)
	for _, n := range s.notches {
		fn(strokeNotch, n[:], false)
	}
}

// covers reports whether any part of the cut outline falls on the tile.
func (s sheet) covers(t Tile) bool {
	for _, v := range s.cut.Vertices {
		if v.X >= t.X && v.X <= t.X+t.W && v.Y >= t.Y && v.Y <= t.Y+t.H {
			return true
		}
	}
	for _, c := range []geo.Point2D{
		geo.Pt(t.X, t.Y), geo.Pt(t.X+t.W, t.Y), geo.Pt(t.X, t.Y+t.H), geo.Pt(t.X+t.W, t.Y+t.H),
		geo.Pt(t.X+t.W/2, t.Y+t.H/2),
	} {
		if s.cut.Contains(c) {
			return true
		}
	}
	return false
}

func (s sheet) drawTile(pdf *gofpdf.Fpdf, t Tile, o float64, grid bool) {
	dx, dy := o-t.X, o-t.Y
	onPage := func(v geo.Point2D) gofpdf.PointType {
		return gofpdf.PointType{X: dx + v.X, Y: dy + v.Y}
	}

	pdf.ClipRect(o, o, t.W, t.H, false)
	if grid {
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetLineWidth(0.1)
		for x := math.Ceil(t.X/gridStepMM) * gridStepMM; x <= t.X+t.W; x += gridStepMM {
			pdf.Line(dx+x, o, dx+x, o+t.H)
		}
		for y := math.Ceil(t.Y/gridStepMM) * gridStepMM; y <= t.Y+t.H; y += gridStepMM {
			pdf.Line(o, dy+y, o+t.W, dy+y)
		}
	}
	s.strokes(func(k strokeKind, pts []geo.Point2D, closed bool) {
		setPDFStroke(pdf, k)
		if closed {
			out := make([]gofpdf.PointType, len(pts))
			for i, v := range pts {
				out[i] = onPage(v)
			}
			pdf.Polygon(out, "D")
			return
		}
		for i := 1; i < len(pts); i++ {
			a, b := onPage(pts[i-1]), onPage(pts[i])
			pdf.Line(a.X, a.Y, b.X, b.Y)
		}
	})
	pdf.SetDashPattern([]float64{}, 0)
	pdf.ClipEnd()

	pdf.SetDrawColor(0, 0, 255)
	pdf.SetLineWidth(0.2)
	pdf.Rect(o, o, t.W, t.H, "D")
}

func setPDFStroke(pdf *gofpdf.Fpdf, k strokeKind) {
	switch k {
	case strokeCut:
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.4)
		pdf.SetDashPattern([]float64{}, 0)
	case strokeSewing:
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.2)
		pdf.SetDashPattern([]float64{3, 2}, 0)
	case strokeNotch:
		pdf.SetDrawColor(220, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.SetDashPattern([]float64{}, 0)
	case strokeCenter:
		pdf.SetDrawColor(0, 160, 0)
		pdf.SetLineWidth(0.2)
		pdf.SetDashPattern([]float64{5, 5}, 0)
	}
}

// drawEdgeMarks ticks the start, middle and end of every tile edge that
// meets a neighbouring page.
func drawEdgeMarks(pdf *gofpdf.Fpdf, t, last Tile, o float64) {
	l := math.Min(markLenMM, o)
	if l <= 0 {
		return
	}
	pdf.SetDrawColor(0, 0, 255)
	pdf.SetLineWidth(0.3)
	xs := []float64{o, o + t.W/2, o + t.W}
	ys := []float64{o, o + t.H/2, o + t.H}
	if t.Row > 0 {
		for _, x := range xs {
			pdf.Line(x, o, x, o-l)
		}
	}
	if t.Row < last.Row {
		for _, x := range xs {
			pdf.Line(x, o+t.H, x, o+t.H+l)
		}
	}
	if t.Col > 0 {
		for _, y := range ys {
			pdf.Line(o, y, o-l, y)
		}
	}
	if t.Col < last.Col {
		for _, y := range ys {
			pdf.Line(o+t.W, y, o+t.W+l, y)
		}
	}
}

// drawCalibration draws a 100 mm bar to check the printer scale.
func drawCalibration(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.SetDashPattern([]float64{}, 0)
	pdf.Line(x, y, x+calibrationMM, y)
	pdf.Line(x, y-1.5, x, y+1.5)
	pdf.Line(x+calibrationMM, y-1.5, x+calibrationMM, y+1.5)
	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(x+calibrationMM+3, y+1, tr("100 mm: check the print scale"))
}

// checkPattern rejects patterns with nothing to draw or geometry that
// cannot be drawn.
func checkPattern(p *pattern.Pattern) error {
	if p == nil || len(p.Pieces) == 0 {
		return errs.Invalid("pattern", "pattern has no pieces")
	}
	for _, pc := range p.Pieces {
		if !pc.Cut.Finite() || !pc.Outline.Finite() {
			return errs.Invalid("pattern", "piece %q has non-finite geometry", pc.Name)
		}
		if pc.Cut.IsEmpty() && pc.Outline.IsEmpty() {
			return errs.Invalid("pattern", "piece %q has no outline", pc.Name)
		}
	}
	return nil
}
