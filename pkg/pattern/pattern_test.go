package pattern

import (
	"errors"
	"math"
	"testing"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/shape"
)

func approxRel(got, want, rel float64) bool {
	return math.Abs(got-want) <= rel*math.Abs(want)
}

func TestSphereGores(t *testing.T) {
	p, err := Generate(shape.Sphere{Radius: 1}, 12, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind != KindGores || p.NumGores != 12 {
		t.Fatalf("kind %s gores %d", p.Kind, p.NumGores)
	}
	if !approxRel(p.MeridianLengthM, math.Pi, 1e-4) {
		t.Errorf("meridian = %f, want π", p.MeridianLengthM)
	}
	if !approxRel(p.MaxHalfWidthM, math.Pi/12, 1e-3) {
		t.Errorf("max half-width = %f, want π/12", p.MaxHalfWidthM)
	}
	if !approxRel(p.GoreAreaM2, 4*math.Pi/12, 5e-3) {
		t.Errorf("gore area = %f, want %f", p.GoreAreaM2, 4*math.Pi/12)
	}
	if !approxRel(p.TotalAreaM2, 4*math.Pi, 5e-3) {
		t.Errorf("total area = %f, want 4π", p.TotalAreaM2)
	}
	if len(p.Stations) != Stations+1 {
		t.Errorf("stations = %d, want %d", len(p.Stations), Stations+1)
	}
	if p.EdgeLengthM < p.MeridianLengthM {
		t.Errorf("edge %f shorter than meridian %f", p.EdgeLengthM, p.MeridianLengthM)
	}

	pc := p.Pieces[0]
	if pc.Count != 12 {
		t.Errorf("count = %d, want 12", pc.Count)
	}
	if !approxRel(pc.Outline.Area(), p.GoreAreaM2, 1e-2) {
		t.Errorf("outline area %f vs gore area %f", pc.Outline.Area(), p.GoreAreaM2)
	}
	if pc.Cut.Area() != pc.Outline.Area() {
		t.Errorf("zero allowance changed the cut outline")
	}
	if !approxRel(pc.CutLengthM, 2*p.EdgeLengthM, 1e-2) {
		t.Errorf("cut length = %f, want both edges %f", pc.CutLengthM, 2*p.EdgeLengthM)
	}
	if got := SeamLength(p); !approxRel(got, 12*math.Pi, 1e-4) {
		t.Errorf("seam length = %f, want 12π", got)
	}
}

func TestGoreNotches(t *testing.T) {
	p, err := Generate(shape.Sphere{Radius: 2}, 8, 15)
	if err != nil {
		t.Fatal(err)
	}
	notches := p.Pieces[0].Notches
	if len(notches) != len(NotchFractions) {
		t.Fatalf("notches = %d, want %d", len(notches), len(NotchFractions))
	}
	for i, n := range notches {
		want := NotchFractions[i] * p.MeridianLengthM
		if math.Abs(n.Right.Y-want) > 1e-9 || n.Left.Y != n.Right.Y {
			t.Errorf("notch %d at y=%f/%f, want %f", i, n.Left.Y, n.Right.Y, want)
		}
		if n.Left.X != -n.Right.X || n.Right.X <= 0 {
			t.Errorf("notch %d not symmetric: %v %v", i, n.Left, n.Right)
		}
		if !p.Pieces[0].Cut.Contains(n.Right) {
			t.Errorf("notch %d outside the cut outline", i)
		}
	}
	// The 50% notch sits on the equator.
	if mid := notches[2].Right.X; !approxRel(mid, 2*math.Pi/8, 1e-3) {
		t.Errorf("equator half-width = %f, want %f", mid, 2*math.Pi/8)
	}
}

func TestSeamAllowanceGrowsCut(t *testing.T) {
	p, err := Generate(shape.Sphere{Radius: 1}, 12, 20)
	if err != nil {
		t.Fatal(err)
	}
	pc := p.Pieces[0]
	in, out := pc.Outline.BoundingBox(), pc.Cut.BoundingBox()
	if got := out.Width() - in.Width(); !approxRel(got, 0.04, 1e-2) {
		t.Errorf("width grew by %f m, want 0.04", got)
	}
	if pc.Cut.Area() <= pc.Outline.Area() {
		t.Errorf("cut area %f not above outline %f", pc.Cut.Area(), pc.Outline.Area())
	}
}

func TestGoreCountClamped(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultGores}, {2, MinGores}, {7, 7}, {100, MaxGores},
	}
	for _, tt := range tests {
		p, err := Generate(shape.Sphere{Radius: 1}, tt.in, 0)
		if err != nil {
			t.Fatal(err)
		}
		if p.NumGores != tt.want {
			t.Errorf("Generate(%d gores) = %d, want %d", tt.in, p.NumGores, tt.want)
		}
	}
}

func TestCigarAndPearGores(t *testing.T) {
	cigar := shape.Cigar{Length: 5, Radius: 1}
	p, err := Generate(cigar, 16, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := 3 + math.Pi; !approxRel(p.MeridianLengthM, want, 1e-4) {
		t.Errorf("cigar meridian = %f, want %f", p.MeridianLengthM, want)
	}
	if !approxRel(p.TotalAreaM2, cigar.SurfaceArea(), 5e-3) {
		t.Errorf("cigar area = %f, want %f", p.TotalAreaM2, cigar.SurfaceArea())
	}

	pear := shape.FromVolume(10, shape.Pear{})
	p, err = Generate(pear, 12, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !approxRel(p.TotalAreaM2, pear.SurfaceArea(), 5e-3) {
		t.Errorf("pear area = %f, want %f", p.TotalAreaM2, pear.SurfaceArea())
	}
	// The open pear mouth gives the gore a flat bottom edge.
	if p.Stations[0].HalfWidth <= 0 {
		t.Errorf("pear bottom half-width = %f, want > 0", p.Stations[0].HalfWidth)
	}
}

func TestPillowPanels(t *testing.T) {
	p, err := Generate(shape.Pillow{Length: 3, Width: 2, Height: 0.5}, 12, 10)
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind != KindPanels || len(p.Pieces) != 1 || p.Pieces[0].Count != 2 {
		t.Fatalf("pattern = %+v", p)
	}
	if got := SeamLength(p); got != 8 {
		t.Errorf("seam length = %f, want 8", got)
	}
	if p.OpeningSide != "width" || p.OpeningSizeM != 2 {
		t.Errorf("opening = %s %f", p.OpeningSide, p.OpeningSizeM)
	}
	if p.TotalAreaM2 != 12 {
		t.Errorf("panel area = %f, want 12", p.TotalAreaM2)
	}
	cut := p.Pieces[0].Cut.BoundingBox()
	if !approxRel(cut.Width(), 2.02, 1e-9) || !approxRel(cut.Height(), 3.02, 1e-9) {
		t.Errorf("cut panel = %fx%f, want 2.02x3.02", cut.Width(), cut.Height())
	}
	if got := p.Pieces[0].CutLengthM; !approxRel(got, 10.08, 1e-9) {
		t.Errorf("cut length = %f, want 10.08", got)
	}

	wide, err := Generate(shape.Pillow{Length: 2, Width: 3, Height: 0.5}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if wide.SeamLengthM != 8 || wide.OpeningSide != "length" {
		t.Errorf("wide pillow seam %f opening %s", wide.SeamLengthM, wide.OpeningSide)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name      string
		s         shape.Shape
		allowance float64
	}{
		{"nil shape", nil, 0},
		{"negative allowance", shape.Sphere{Radius: 1}, -1},
		{"empty sphere", shape.Sphere{}, 0},
		{"empty pillow", shape.Pillow{}, 0},
		{"infinite sphere", shape.Sphere{Radius: math.Inf(1)}, 0},
		{"infinite pillow", shape.Pillow{Length: math.Inf(1), Width: 1, Height: 0.5}, 10},
	}
	for _, tt := range tests {
		if _, err := Generate(tt.s, 12, tt.allowance); !errors.Is(err, errs.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tt.name, err)
		}
	}
}
