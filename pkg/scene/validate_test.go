package scene

import (
	"math"
	"testing"

	"github.com/ChicagoDave/aerostat/pkg/shape"
)

func validMesh(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewMesh(shape.Sphere{Radius: 2}, 24, 24)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestValidate_Valid(t *testing.T) {
	r := Validate(validMesh(t))
	if !r.Valid {
		t.Errorf("expected valid, got %d errors", len(r.Errors))
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
	}
}

func TestValidate_Nil(t *testing.T) {
	if r := Validate(nil); r.Valid {
		t.Error("expected invalid for nil mesh")
	}
	if r := Validate(&Mesh{}); r.Valid {
		t.Error("expected invalid for empty mesh")
	}
}

func TestValidate_NonFinite(t *testing.T) {
	m := validMesh(t)
	m.Vertices[5].Y = math.NaN()
	r := Validate(m)
	if r.Valid {
		t.Fatal("expected invalid for NaN vertex")
	}
	if r.Errors[0].Path != "vertices[5]" {
		t.Errorf("path = %q", r.Errors[0].Path)
	}
}

func TestValidate_FaceIndexOutOfRange(t *testing.T) {
	m := validMesh(t)
	m.Faces[0][1] = len(m.Vertices)
	if r := Validate(m); r.Valid {
		t.Error("expected invalid for out-of-range face index")
	}
}

func TestValidate_DegenerateBounds(t *testing.T) {
	m := &Mesh{
		Vertices: []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    []Face{{0, 1, 2}},
	}
	m.Bounds = computeBounds(m.Vertices)
	if r := Validate(m); r.Valid {
		t.Error("expected invalid for a flat mesh")
	}
}

func TestValidate_InwardWinding(t *testing.T) {
	m := validMesh(t)
	for i, f := range m.Faces {
		m.Faces[i] = Face{f[0], f[2], f[1]}
	}
	r := Validate(m)
	if !r.Valid {
		t.Fatalf("winding is a warning, got errors: %s", r.Summary)
	}
	if len(r.Warnings) != 1 || r.Warnings[0].Path != "faces" {
		t.Errorf("warnings = %+v", r.Warnings)
	}
}

func TestValidate_CoarseMeshVolumeWarning(t *testing.T) {
	m, err := NewMesh(shape.Sphere{Radius: 1}, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	r := Validate(m)
	if !r.Valid || len(r.Warnings) == 0 {
		t.Errorf("expected a volume warning, got %s", r.Summary)
	}
}
