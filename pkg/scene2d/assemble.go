package scene2d

import (
	"fmt"
	"time"

	"github.com/ChicagoDave/aerostat/pkg/geo"
	"github.com/ChicagoDave/aerostat/pkg/pattern"
)

const mmPerM = 1000.0

// Assemble2D lays every cut copy of p onto the roll described by f. The
// packing matches pattern.EstimateFabric: each piece kind fills its own
// rows, long pieces lie along the roll, and gapMM separates pieces from
// each other and from the roll edges.
func Assemble2D(p *pattern.Pattern, f pattern.Fabric) *Scene2D {
	sc := &Scene2D{
		Metadata: Metadata{
			FabricWidthMM: f.FabricWidthMM,
			GapMM:         f.GapMM,
			WastePercent:  f.WastePercent,
			Fits:          f.Fits,
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		},
		Rows:   []Row2D{},
		Pieces: []Piece2D{},
	}
	if p == nil {
		return sc
	}
	sc.Metadata.ShapeKind = string(p.ShapeKind)
	sc.Metadata.PatternKind = string(p.Kind)

	gap := f.GapMM
	y := 0.0
	for _, pc := range p.Pieces {
		if pc.Count <= 0 || pc.Cut.IsEmpty() {
			continue
		}
		pl := newPlacement(pc)
		perRow := max(1, int((f.FabricWidthMM-gap)/(pl.w+gap)))

		for copyIdx := 0; copyIdx < pc.Count; copyIdx++ {
			col := copyIdx % perRow
			if col == 0 {
				y += gap
				cols := min(perRow, pc.Count-copyIdx)
				sc.Rows = append(sc.Rows, Row2D{
					Index:   len(sc.Rows),
					Piece:   pc.Name,
					Y:       y,
					Height:  pl.h,
					Columns: cols,
				})
			}
			x := gap + float64(col)*(pl.w+gap)
			sc.Pieces = append(sc.Pieces, pl.place(pc, copyIdx+1, len(sc.Rows)-1, x, y))
			if col == perRow-1 || copyIdx == pc.Count-1 {
				y += pl.h
			}
		}
	}
	if len(sc.Rows) > 0 {
		y += gap
	}
	sc.Metadata.RollLengthMM = y
	sc.Metadata.PieceCount = len(sc.Pieces)
	return sc
}

// placement maps a piece from pattern metres into roll millimetres with
// its cut bounding box at the origin.
type placement struct {
	rotated bool
	min     geo.Point2D
	w, h    float64
}

func newPlacement(pc pattern.Piece) placement {
	bb := pc.Cut.BoundingBox()
	pl := placement{min: bb.Min, w: bb.Width() * mmPerM, h: bb.Height() * mmPerM}
	if pl.w > pl.h {
		pl.rotated = true
		pl.w, pl.h = pl.h, pl.w
	}
	return pl
}

// local converts a pattern point to millimetres relative to the cut
// bounding box, turned a quarter counterclockwise when rotated.
func (pl placement) local(pt geo.Point2D) geo.Point2D {
	d := geo.Point2D{X: (pt.X - pl.min.X) * mmPerM, Y: (pt.Y - pl.min.Y) * mmPerM}
	if !pl.rotated {
		return d
	}
	// A quarter turn maps y to -x; shift back by the new width.
	return geo.Point2D{X: pl.w - d.Y, Y: d.X}
}

func (pl placement) place(pc pattern.Piece, copyNum, row int, x, y float64) Piece2D {
	at := func(pt geo.Point2D) [2]float64 {
		l := pl.local(pt)
		return [2]float64{x + l.X, y + l.Y}
	}
	notches := make([][2]float64, 0, 2*len(pc.Notches))
	for _, n := range pc.Notches {
		notches = append(notches, at(n.Left), at(n.Right))
	}
	return Piece2D{
		ID:      fmt.Sprintf("%s-%d", pc.Name, copyNum),
		Name:    pc.Name,
		Copy:    copyNum,
		Row:     row,
		Rotated: pl.rotated,
		Bounds:  [4]float64{x, y, x + pl.w, y + pl.h},
		Cut:     polygonToCoords(pc.Cut, at),
		Outline: polygonToCoords(pc.Outline, at),
		Notches: notches,
		Label:   at(pc.Outline.Centroid()),
	}
}

// polygonToCoords converts a geo.Polygon to a [][2]float64 coordinate list.
func polygonToCoords(p geo.Polygon, at func(geo.Point2D) [2]float64) [][2]float64 {
	coords := make([][2]float64, len(p.Vertices))
	for i, v := range p.Vertices {
		coords[i] = at(v)
	}
	return coords
}
