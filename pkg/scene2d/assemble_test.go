package scene2d

import (
	"math"
	"testing"

	"github.com/ChicagoDave/aerostat/pkg/pattern"
	"github.com/ChicagoDave/aerostat/pkg/shape"
)

const eps = 1e-6

func assembleTestScene2D(t *testing.T, s shape.Shape, gores int) (*Scene2D, pattern.Fabric) {
	t.Helper()
	p, err := pattern.Generate(s, gores, 10)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	f := pattern.EstimateFabric(p, 1500, 10)
	return Assemble2D(p, f), f
}

func TestAssemble2DMatchesFabricEstimate(t *testing.T) {
	sc, f := assembleTestScene2D(t, shape.Sphere{Radius: 1}, 12)

	if sc.Metadata.PieceCount != 12 || len(sc.Pieces) != 12 {
		t.Errorf("pieces = %d, want 12", len(sc.Pieces))
	}
	if len(sc.Rows) != f.Rows {
		t.Errorf("rows = %d, fabric estimate has %d", len(sc.Rows), f.Rows)
	}
	if math.Abs(sc.Metadata.RollLengthMM-f.RollLengthMM) > eps {
		t.Errorf("roll length = %.3f mm, fabric estimate %.3f mm", sc.Metadata.RollLengthMM, f.RollLengthMM)
	}
	if sc.Metadata.ShapeKind != string(shape.KindSphere) || sc.Metadata.PatternKind != string(pattern.KindGores) {
		t.Errorf("metadata = %+v", sc.Metadata)
	}
	if sc.Metadata.GeneratedAt == "" {
		t.Error("generated_at is empty")
	}
}

func TestAssemble2DPiecesInsideRoll(t *testing.T) {
	for _, tt := range []struct {
		name  string
		shape shape.Shape
	}{
		{"sphere", shape.Sphere{Radius: 1.5}},
		{"pillow", shape.Pillow{Length: 3, Width: 1, Height: 0.4}},
		{"cigar", shape.Cigar{Length: 4, Radius: 0.5}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			sc, f := assembleTestScene2D(t, tt.shape, 8)
			if !f.Fits {
				t.Skip("pattern wider than the roll")
			}
			for _, pc := range sc.Pieces {
				b := pc.Bounds
				if b[0] < f.GapMM-eps || b[2] > f.FabricWidthMM-f.GapMM+eps {
					t.Errorf("%s: x range [%.1f, %.1f] outside roll", pc.ID, b[0], b[2])
				}
				if b[2]-b[0] > b[3]-b[1]+eps {
					t.Errorf("%s: lies across the roll (%.1f wide, %.1f long)", pc.ID, b[2]-b[0], b[3]-b[1])
				}
				if b[3] > sc.Metadata.RollLengthMM+eps {
					t.Errorf("%s: ends at %.1f past roll length %.1f", pc.ID, b[3], sc.Metadata.RollLengthMM)
				}
				for _, c := range pc.Cut {
					if c[0] < b[0]-eps || c[0] > b[2]+eps || c[1] < b[1]-eps || c[1] > b[3]+eps {
						t.Fatalf("%s: cut vertex %v outside bounds %v", pc.ID, c, b)
					}
				}
			}
		})
	}
}

func TestAssemble2DNoOverlap(t *testing.T) {
	sc, _ := assembleTestScene2D(t, shape.Sphere{Radius: 1}, 16)
	for i := range sc.Pieces {
		for j := i + 1; j < len(sc.Pieces); j++ {
			a, b := sc.Pieces[i].Bounds, sc.Pieces[j].Bounds
			if a[0] < b[2]-eps && b[0] < a[2]-eps && a[1] < b[3]-eps && b[1] < a[3]-eps {
				t.Errorf("%s overlaps %s", sc.Pieces[i].ID, sc.Pieces[j].ID)
			}
		}
	}
}

func TestAssemble2DRotatedPillowPanel(t *testing.T) {
	// Wider than long, so the panel is turned to lie along the roll.
	sc, _ := assembleTestScene2D(t, shape.Pillow{Length: 0.6, Width: 1.2, Height: 0.2}, 0)
	if len(sc.Pieces) != 2 {
		t.Fatalf("pieces = %d, want 2", len(sc.Pieces))
	}
	for _, pc := range sc.Pieces {
		if !pc.Rotated {
			t.Errorf("%s not rotated", pc.ID)
		}
		b := pc.Bounds
		if b[3]-b[1] < b[2]-b[0] {
			t.Errorf("%s is not laid along the roll: %v", pc.ID, b)
		}
		if pc.Label[0] < b[0] || pc.Label[0] > b[2] || pc.Label[1] < b[1] || pc.Label[1] > b[3] {
			t.Errorf("%s label %v outside bounds %v", pc.ID, pc.Label, b)
		}
	}
	if sc.Pieces[0].ID == sc.Pieces[1].ID {
		t.Errorf("duplicate piece IDs %q", sc.Pieces[0].ID)
	}
}

func TestAssemble2DNilPattern(t *testing.T) {
	sc := Assemble2D(nil, pattern.EstimateFabric(nil, 0, -1))
	if len(sc.Pieces) != 0 || sc.Metadata.RollLengthMM != 0 {
		t.Errorf("scene = %+v, want empty", sc)
	}
	if sc.Metadata.FabricWidthMM != pattern.DefaultFabricWidthMM {
		t.Errorf("width = %v, want default", sc.Metadata.FabricWidthMM)
	}
}
