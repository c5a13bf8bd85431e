// Package scene builds a triangle mesh of a solved envelope for 3D preview
// and export. Y is up; revolved shapes turn about the Y axis except the
// cigar, which lies along X.
package scene

import "github.com/ChicagoDave/aerostat/pkg/shape"

// Vec3 is a 3D vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Size is the box extent along each axis.
func (b BoundingBox) Size() Vec3 { return b.Max.Sub(b.Min) }

// Face is a triangle as three vertex indices, wound counterclockwise when
// seen from outside.
type Face [3]int

// Metadata describes the envelope a mesh was built from. Volume and area
// are the analytic figures of the shape, not of the tessellation.
type Metadata struct {
	ShapeKind     shape.Kind `json:"shape_kind"`
	VolumeM3      float64    `json:"volume_m3"`
	SurfaceAreaM2 float64    `json:"surface_area_m2"`
	NumTheta      int        `json:"num_theta"`
	NumZ          int        `json:"num_z"`
	GeneratedAt   string     `json:"generated_at"`
}

// Mesh is a closed triangle surface.
type Mesh struct {
	Vertices []Vec3      `json:"vertices"`
	Faces    []Face      `json:"faces"`
	Bounds   BoundingBox `json:"bounds"`
	Metadata Metadata    `json:"metadata"`
}

// Volume is the enclosed volume of the tessellation by the divergence
// theorem. Outward winding gives a positive result.
func (m *Mesh) Volume() float64 {
	v := 0.0
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		v += a.Dot(b.Cross(c))
	}
	return v / 6
}
