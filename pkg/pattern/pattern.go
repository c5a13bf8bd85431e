// Package pattern lays out flat cutting pieces for a solved envelope:
// meridian gores for revolved shapes and two flat panels for a pillow.
package pattern

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/geo"
	"github.com/ChicagoDave/aerostat/pkg/shape"
)

const (
	MinGores     = 4
	MaxGores     = 32
	DefaultGores = 12

	// Stations is the number of meridian intervals on each gore edge.
	Stations = 64

	fineSteps     = 4096 // arc-length integration steps along z
	splineSamples = 3
	splineTension = 0.5
	mmPerM        = 1000.0
)

// NotchFractions are the alignment marks along every gore seam, as
// fractions of the meridian length.
var NotchFractions = []float64{0.1, 0.3, 0.5, 0.7, 0.9}

// Kind distinguishes gore patterns from panel patterns.
type Kind string

const (
	KindGores  Kind = "gores"
	KindPanels Kind = "panels"
)

// Station samples a gore at arc length S along the meridian, which sits at
// axial height Z on the envelope.
type Station struct {
	S         float64 `json:"s_m"`
	Z         float64 `json:"z_m"`
	Radius    float64 `json:"radius_m"`
	HalfWidth float64 `json:"half_width_m"`
}

// Notch is an alignment mark on both edges of a piece.
type Notch struct {
	Fraction float64     `json:"fraction"`
	Left     geo.Point2D `json:"left"`
	Right    geo.Point2D `json:"right"`
}

// Piece is one cutting template. Count identical copies are cut.
type Piece struct {
	Name    string      `json:"name"`
	Count   int         `json:"count"`
	Outline geo.Polygon `json:"outline"` // sewing line
	Cut     geo.Polygon `json:"cut"`     // outline plus seam allowance
	Notches []Notch     `json:"notches,omitempty"`

	CutLengthM float64 `json:"cut_length_m"` // knife path for one copy
}

// Pattern is the full cutting plan for one envelope. Lengths are metres;
// the seam allowance is kept in millimetres as entered.
type Pattern struct {
	Kind            Kind       `json:"kind"`
	ShapeKind       shape.Kind `json:"shape_kind"`
	NumGores        int        `json:"num_gores,omitempty"`
	MeridianLengthM float64    `json:"meridian_length_m,omitempty"`
	MaxHalfWidthM   float64    `json:"max_half_width_m,omitempty"`
	EdgeLengthM     float64    `json:"edge_length_m,omitempty"` // one curved gore edge
	GoreAreaM2      float64    `json:"gore_area_m2,omitempty"`
	Stations        []Station  `json:"stations,omitempty"`

	SeamAllowanceMM float64 `json:"seam_allowance_mm"`
	TotalAreaM2     float64 `json:"total_area_m2"`
	Pieces          []Piece `json:"pieces"`

	// Panel patterns only.
	SeamLengthM  float64 `json:"seam_length_m,omitempty"`
	OpeningSide  string  `json:"opening_side,omitempty"`
	OpeningSizeM float64 `json:"opening_size_m,omitempty"`
}

// Generate builds the cutting pattern for s. numGores is clamped to
// [MinGores, MaxGores] and ignored for a pillow.
func Generate(s shape.Shape, numGores int, seamAllowanceMM float64) (*Pattern, error) {
	if s == nil {
		return nil, errs.Invalid("shape", "no shape to lay out")
	}
	if seamAllowanceMM < 0 || math.IsNaN(seamAllowanceMM) {
		return nil, errs.Invalid("seam_allowance_mm", "must not be negative, got %v", seamAllowanceMM)
	}
	if p, ok := s.(shape.Pillow); ok {
		return pillowPanels(p, seamAllowanceMM)
	}
	prof, ok := shape.ProfileOf(s)
	if !ok {
		return nil, errs.Invalid("shape", "%s has no size to lay out", s.Kind())
	}
	return gores(s.Kind(), prof, clampGores(numGores), seamAllowanceMM)
}

func clampGores(n int) int {
	switch {
	case n == 0:
		return DefaultGores
	case n < MinGores:
		return MinGores
	case n > MaxGores:
		return MaxGores
	}
	return n
}

// gores unrolls the meridian: arc length s runs along the gore and the
// half-width at each station is the local circumference share r·π/N.
func gores(kind shape.Kind, prof shape.Profile, n int, allowanceMM float64) (*Pattern, error) {
	if !(prof.Height > 0) || math.IsInf(prof.Height, 1) {
		return nil, errs.Invalid("shape", "%s height %v cannot be laid out", kind, prof.Height)
	}
	z, s := meridian(prof)
	length := s[len(s)-1]

	stations := make([]Station, Stations+1)
	k := 0
	for i := range stations {
		target := length * float64(i) / Stations
		for k < len(s)-2 && s[k+1] < target {
			k++
		}
		t := 0.0
		if ds := s[k+1] - s[k]; ds > 0 {
			t = math.Min(1, math.Max(0, (target-s[k])/ds))
		}
		zi := z[k] + (z[k+1]-z[k])*t
		r := prof.Radius(zi)
		stations[i] = Station{S: target, Z: zi, Radius: r, HalfWidth: r * math.Pi / float64(n)}
	}

	// Gore area is the integral of full width over arc length.
	sx := make([]float64, len(stations))
	wx := make([]float64, len(stations))
	maxHalf := 0.0
	ctrl := make([]geo.Point2D, len(stations))
	for i, st := range stations {
		sx[i], wx[i] = st.S, 2*st.HalfWidth
		maxHalf = math.Max(maxHalf, st.HalfWidth)
		ctrl[i] = geo.Pt(st.HalfWidth, st.S)
	}
	goreArea := integrate.Simpsons(sx, wx)

	outline, edge := goreOutline(ctrl)
	p := &Pattern{
		Kind:            KindGores,
		ShapeKind:       kind,
		NumGores:        n,
		MeridianLengthM: length,
		MaxHalfWidthM:   maxHalf,
		EdgeLengthM:     edge.Length(),
		GoreAreaM2:      goreArea,
		Stations:        stations,
		SeamAllowanceMM: allowanceMM,
		TotalAreaM2:     goreArea * float64(n),
	}
	p.Pieces = []Piece{newPiece(fmt.Sprintf("gore (cut %d)", n), n, outline, allowanceMM)}
	p.Pieces[0].Notches = goreNotches(stations)
	return p, checkFinite(p)
}

func newPiece(name string, count int, outline geo.Polygon, allowanceMM float64) Piece {
	cut := outline.Offset(allowanceMM / mmPerM)
	return Piece{
		Name:       name,
		Count:      count,
		Outline:    outline,
		Cut:        cut,
		CutLengthM: cut.Perimeter(),
	}
}

// checkFinite rejects a pattern whose geometry overflowed, which happens
// only for absurd envelope sizes.
func checkFinite(p *Pattern) error {
	for _, pc := range p.Pieces {
		if !pc.Outline.Finite() || !pc.Cut.Finite() {
			return errs.Invalid("shape", "%s pattern piece %q has non-finite geometry", p.ShapeKind, pc.Name)
		}
	}
	return nil
}

// meridian samples the profile finely in z and accumulates arc length
// s(z) = ∫√(1+(dr/dz)²)dz as chord lengths, which stays finite where
// dr/dz diverges at a pole.
func meridian(prof shape.Profile) (z, s []float64) {
	z = make([]float64, fineSteps+1)
	s = make([]float64, fineSteps+1)
	prevR := prof.Radius(0)
	for i := 1; i <= fineSteps; i++ {
		z[i] = prof.Height * float64(i) / fineSteps
		r := prof.Radius(z[i])
		s[i] = s[i-1] + math.Hypot(z[i]-z[i-1], r-prevR)
		prevR = r
	}
	return z, s
}

// goreOutline mirrors the smoothed right edge to close a symmetric gore.
func goreOutline(right []geo.Point2D) (geo.Polygon, geo.Polyline) {
	smooth := geo.CatmullRomSpline(right, splineSamples, splineTension)
	edge := smooth.Points
	for i := range edge {
		edge[i].X = math.Max(0, edge[i].X)
	}
	pts := make([]geo.Point2D, 0, 2*len(edge))
	pts = append(pts, edge...)
	for i := len(edge) - 1; i >= 0; i-- {
		if edge[i].X == 0 {
			continue // tips are shared by both edges
		}
		pts = append(pts, geo.Pt(-edge[i].X, edge[i].Y))
	}
	return geo.NewPolygon(pts...).EnsureCCW(), smooth
}

// goreNotches places marks by meridian fraction, so matching notches on
// neighbouring gores meet at the same height on the envelope.
func goreNotches(stations []Station) []Notch {
	length := stations[len(stations)-1].S
	notches := make([]Notch, len(NotchFractions))
	for i, f := range NotchFractions {
		pt := atArc(stations, f*length)
		notches[i] = Notch{Fraction: f, Right: pt, Left: geo.Pt(-pt.X, pt.Y)}
	}
	return notches
}

func atArc(stations []Station, s float64) geo.Point2D {
	for i := 1; i < len(stations); i++ {
		a, b := stations[i-1], stations[i]
		if s <= b.S {
			t := 0.0
			if b.S > a.S {
				t = (s - a.S) / (b.S - a.S)
			}
			return geo.Pt(a.HalfWidth, a.S).Lerp(geo.Pt(b.HalfWidth, b.S), t)
		}
	}
	last := stations[len(stations)-1]
	return geo.Pt(last.HalfWidth, last.S)
}

// pillowPanels cuts two identical L×W panels. The seam runs around both long
// sides and one short side; the other short side is left open for filling.
func pillowPanels(p shape.Pillow, allowanceMM float64) (*Pattern, error) {
	if p.Length <= 0 || p.Width <= 0 {
		return nil, errs.Invalid("shape", "pillow needs a positive length and width")
	}
	long, short := p.Length, p.Width
	side := "width"
	if short > long {
		long, short = short, long
		side = "length"
	}

	outline := geo.NewPolygon(
		geo.Pt(0, 0), geo.Pt(p.Width, 0), geo.Pt(p.Width, p.Length), geo.Pt(0, p.Length),
	)
	pat := &Pattern{
		Kind:            KindPanels,
		ShapeKind:       shape.KindPillow,
		SeamAllowanceMM: allowanceMM,
		TotalAreaM2:     2 * outline.Area(),
		SeamLengthM:     2*long + short,
		OpeningSide:     side,
		OpeningSizeM:    short,
		Pieces:          []Piece{newPiece("panel (cut 2)", 2, outline, allowanceMM)},
	}
	return pat, checkFinite(pat)
}

// SeamLength is the total sewn length. Every gore edge is shared with a
// neighbour, so N gores close with N meridian seams.
func SeamLength(p *Pattern) float64 {
	if p == nil {
		return 0
	}
	if p.Kind == KindGores {
		return float64(p.NumGores) * p.MeridianLengthM
	}
	return p.SeamLengthM
}
