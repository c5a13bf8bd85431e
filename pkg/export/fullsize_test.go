package export

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/geo"
	"github.com/ChicagoDave/aerostat/pkg/pattern"
	"github.com/ChicagoDave/aerostat/pkg/shape"
)

func sphereGores(t *testing.T, n int, allowanceMM float64) *pattern.Pattern {
	t.Helper()
	p, err := pattern.Generate(shape.Sphere{Radius: 1}, n, allowanceMM)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestTiles(t *testing.T) {
	tiles, err := Tiles(500, 4000, PageA4, 10)
	if err != nil {
		t.Fatal(err)
	}
	// 190 × 277 mm printable per A4 page.
	if len(tiles) != 45 {
		t.Fatalf("tiles = %d, want 45 (3 cols × 15 rows)", len(tiles))
	}
	if tiles[1].X != 190 || tiles[1].Col != 1 || tiles[3].Row != 1 || tiles[3].Y != 277 {
		t.Errorf("tile order = %+v %+v", tiles[1], tiles[3])
	}
	last := tiles[len(tiles)-1]
	if math.Abs(last.W-120) > 1e-9 || math.Abs(last.H-122) > 1e-9 {
		t.Errorf("last tile = %.1f × %.1f, want 120 × 122", last.W, last.H)
	}

	a3, err := Tiles(500, 4000, PageA3, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(a3) >= len(tiles) {
		t.Errorf("A3 tiles = %d, want fewer than A4's %d", len(a3), len(tiles))
	}
}

func TestTilesErrors(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		page    PageSize
		overlap float64
	}{
		{"overlap fills page", 500, 500, PageA4, 110},
		{"negative overlap", 500, 500, PageA4, -1},
		{"empty piece", 0, 500, PageA4, 10},
		{"infinite piece", math.Inf(1), 500, PageA4, 10},
		{"unknown page", 500, 500, "Letter", 10},
		{"too many pages", 1e6, 1e6, PageA4, 10},
	}
	for _, tt := range tests {
		if _, err := Tiles(tt.w, tt.h, tt.page, tt.overlap); !errors.Is(err, errs.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tt.name, err)
		}
	}
}

func TestParsePageSize(t *testing.T) {
	for in, want := range map[string]PageSize{"": PageA4, "a4": PageA4, " A3 ": PageA3} {
		got, err := ParsePageSize(in)
		if err != nil || got != want {
			t.Errorf("ParsePageSize(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParsePageSize("letter"); err == nil {
		t.Error("letter should be rejected")
	}
}

func TestSheetIsFullSize(t *testing.T) {
	p := sphereGores(t, 12, 0)
	s := newSheet(p.Pieces[0], true)

	box := p.Pieces[0].Cut.BoundingBox()
	if math.Abs(s.w-box.Width()*1000) > 1e-6 || math.Abs(s.h-box.Height()*1000) > 1e-6 {
		t.Errorf("sheet = %.1f × %.1f mm, want %.1f × %.1f", s.w, s.h, box.Width()*1000, box.Height()*1000)
	}
	if math.Abs(s.h-math.Pi*1000) > 5 {
		t.Errorf("sheet length = %.1f mm, want the meridian %.1f mm", s.h, math.Pi*1000)
	}
	sb := s.cut.BoundingBox()
	if math.Abs(sb.Min.X) > 1e-6 || math.Abs(sb.Min.Y) > 1e-6 {
		t.Errorf("sheet origin = %+v, want top-left at 0,0", sb.Min)
	}
	if math.Abs(s.centerX-s.w/2) > 1e-6 {
		t.Errorf("centre line at %.2f, want %.2f", s.centerX, s.w/2)
	}
	if len(s.notches) != 2*len(pattern.NotchFractions) {
		t.Fatalf("notch ticks = %d, want %d", len(s.notches), 2*len(pattern.NotchFractions))
	}
	right := s.notches[0]
	if math.Abs(right[1].X-right[0].X-notchLenMM) > 1e-9 || right[0].X <= s.centerX {
		t.Errorf("right notch tick = %v, want %v mm outward on the right edge", right, notchLenMM)
	}

	panel, err := pattern.Generate(shape.Pillow{Length: 1.2, Width: 0.6, Height: 0.2}, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	ps := newSheet(panel.Pieces[0], false)
	if ps.centerX >= 0 || len(ps.notches) != 0 {
		t.Errorf("panel sheet has gore marks: centre %v notches %d", ps.centerX, len(ps.notches))
	}
	if math.Abs(ps.w-620) > 1e-6 || math.Abs(ps.h-1220) > 1e-6 {
		t.Errorf("panel sheet = %.1f × %.1f mm, want 620 × 1220", ps.w, ps.h)
	}
}

func TestSheetCoversSkipsBlankTiles(t *testing.T) {
	// Eight gores on a 1 m sphere: 785 mm wide, five A4 columns.
	s := newSheet(sphereGores(t, 8, 0).Pieces[0], true)
	tiles, err := Tiles(s.w, s.h, PageA4, DefaultOverlapMM)
	if err != nil {
		t.Fatal(err)
	}
	at := func(row, col int) Tile {
		for _, tl := range tiles {
			if tl.Row == row && tl.Col == col {
				return tl
			}
		}
		t.Fatalf("no tile at row %d col %d", row, col)
		return Tile{}
	}
	// The tip sits in the middle column; the outer columns beside it are blank.
	if s.covers(at(0, 0)) || s.covers(at(0, 4)) {
		t.Error("blank corner tiles beside the tip are covered")
	}
	if !s.covers(at(0, 2)) {
		t.Error("tip tile is not covered")
	}
	// Around the equator the gore spans all five columns.
	mid := int(s.h/2) / 277
	for col := 0; col < 5; col++ {
		if !s.covers(at(mid, col)) {
			t.Errorf("equator tile row %d col %d is not covered", mid, col)
		}
	}
}

func TestWritePatternFullSize(t *testing.T) {
	p := sphereGores(t, 12, 10)
	for _, opts := range []TileOptions{{}, {PageSize: PageA3, OverlapMM: 15}, {NoGrid: true}} {
		var buf bytes.Buffer
		if err := WritePatternFullSize(&buf, p, opts); err != nil {
			t.Fatalf("%+v: %v", opts, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
			t.Errorf("%+v: output does not start with %%PDF", opts)
		}
	}
	if err := WritePatternFullSize(&bytes.Buffer{}, p, TileOptions{PageSize: "B5"}); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("unknown page err = %v, want ErrValidation", err)
	}
}

func TestWritePatternSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePatternSVG(&buf, sphereGores(t, 12, 10)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Errorf("not an SVG document: %.200s", out)
	}
}

func TestPatternWritersRejectBadGeometry(t *testing.T) {
	bad := &pattern.Pattern{
		Kind: pattern.KindPanels,
		Pieces: []pattern.Piece{{
			Name:    "panel",
			Count:   2,
			Outline: geo.NewPolygon(geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(1, math.NaN())),
			Cut:     geo.NewPolygon(geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(1, 1)),
		}},
	}
	for name, write := range map[string]func() error{
		"scaled":    func() error { return WritePattern(&bytes.Buffer{}, bad, nil) },
		"full size": func() error { return WritePatternFullSize(&bytes.Buffer{}, bad, TileOptions{}) },
		"svg":       func() error { return WritePatternSVG(&bytes.Buffer{}, bad) },
		"empty":     func() error { return WritePatternSVG(&bytes.Buffer{}, &pattern.Pattern{}) },
	} {
		if err := write(); !errors.Is(err, errs.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", name, err)
		}
	}
}
