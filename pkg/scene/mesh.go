package scene

import (
	"math"
	"time"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/shape"
)

const (
	DefaultTheta = 32
	DefaultZ     = 32
	MinTheta     = 3
	MinZ         = 2
	MaxDivisions = 512

	poleEps = 1e-6 // radius below this share of the height is a pole
)

// NewMesh tessellates s. Revolved shapes get numTheta segments around the
// axis and numZ bands along it; zero picks the defaults. A pillow becomes
// a flat L×W×H box. The mesh is centred on the origin.
func NewMesh(s shape.Shape, numTheta, numZ int) (*Mesh, error) {
	if s == nil {
		return nil, errs.Invalid("shape", "no shape to mesh")
	}
	numTheta = divisions(numTheta, DefaultTheta, MinTheta)
	numZ = divisions(numZ, DefaultZ, MinZ)

	var m *Mesh
	if p, ok := s.(shape.Pillow); ok {
		if p.Volume() <= 0 {
			return nil, errs.Invalid("shape", "pillow needs a positive length, width and height")
		}
		m = box(p.Width, p.Height, p.Length)
	} else {
		prof, ok := shape.ProfileOf(s)
		if !ok {
			return nil, errs.Invalid("shape", "%s has no size to mesh", s.Kind())
		}
		place := upright
		if s.Kind() == shape.KindCigar {
			place = lying
		}
		m = revolve(prof, numTheta, numZ, place)
	}

	m.Bounds = computeBounds(m.Vertices)
	m.Metadata = Metadata{
		ShapeKind:     s.Kind(),
		VolumeM3:      s.Volume(),
		SurfaceAreaM2: s.SurfaceArea(),
		NumTheta:      numTheta,
		NumZ:          numZ,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	return m, nil
}

func divisions(n, def, lo int) int {
	switch {
	case n == 0:
		return def
	case n < lo:
		return lo
	case n > MaxDivisions:
		return MaxDivisions
	}
	return n
}

// placement maps axial position h, radius r and angle theta to space.
type placement func(h, r, theta float64) Vec3

func upright(h, r, theta float64) Vec3 {
	return Vec3{X: r * math.Cos(theta), Y: h, Z: r * math.Sin(theta)}
}

// lying is upright with the axes rotated cyclically, so winding is kept.
func lying(h, r, theta float64) Vec3 {
	return Vec3{X: h, Y: r * math.Cos(theta), Z: r * math.Sin(theta)}
}

func (m *Mesh) add(v Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

func (m *Mesh) face(a, b, c int) {
	m.Faces = append(m.Faces, Face{a, b, c})
}

func revolve(prof shape.Profile, nt, nz int, place placement) *Mesh {
	m := &Mesh{}
	half := prof.Height / 2
	var prev []int
	for j := 0; j <= nz; j++ {
		h := prof.Height * float64(j) / float64(nz)
		r := prof.Radius(h)
		var ring []int
		if r < poleEps*prof.Height {
			ring = []int{m.add(place(h-half, 0, 0))}
		} else {
			ring = make([]int, nt)
			for i := range ring {
				ring[i] = m.add(place(h-half, r, 2*math.Pi*float64(i)/float64(nt)))
			}
			// Open ends, like a pear mouth, are closed with a flat disc.
			if j == 0 {
				m.cap(ring, place(-half, 0, 0), false)
			}
			if j == nz {
				m.cap(ring, place(half, 0, 0), true)
			}
		}
		if prev != nil {
			m.stitch(prev, ring)
		}
		prev = ring
	}
	return m
}

// stitch joins a lower ring to the next one up. A ring of one vertex is a
// pole and gets a triangle fan.
func (m *Mesh) stitch(lower, upper []int) {
	switch {
	case len(lower) == 1 && len(upper) == 1:
		return
	case len(lower) == 1:
		p := lower[0]
		for i := range upper {
			m.face(p, upper[i], upper[(i+1)%len(upper)])
		}
	case len(upper) == 1:
		q := upper[0]
		for i := range lower {
			m.face(lower[i], q, lower[(i+1)%len(lower)])
		}
	default:
		n := len(lower)
		for i := 0; i < n; i++ {
			a, b := lower[i], lower[(i+1)%n]
			c, d := upper[(i+1)%n], upper[i]
			m.face(a, c, b)
			m.face(a, d, c)
		}
	}
}

func (m *Mesh) cap(ring []int, center Vec3, top bool) {
	c := m.add(center)
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		if top {
			m.face(c, b, a)
		} else {
			m.face(c, a, b)
		}
	}
}

// box is an axis-aligned cuboid of size w (X) by h (Y) by l (Z).
func box(w, h, l float64) *Mesh {
	x, y, z := w/2, h/2, l/2
	return &Mesh{
		Vertices: []Vec3{
			{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
			{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
		},
		Faces: []Face{
			{0, 3, 2}, {0, 2, 1}, // -Z
			{4, 5, 6}, {4, 6, 7}, // +Z
			{0, 1, 5}, {0, 5, 4}, // -Y
			{3, 7, 6}, {3, 6, 2}, // +Y
			{0, 4, 7}, {0, 7, 3}, // -X
			{1, 2, 6}, {1, 6, 5}, // +X
		},
	}
}

// computeBounds calculates the AABB of all vertices.
func computeBounds(vs []Vec3) BoundingBox {
	if len(vs) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{Min: vs[0], Max: vs[0]}
	for _, v := range vs[1:] {
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Min.Z = math.Min(b.Min.Z, v.Z)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
		b.Max.Z = math.Max(b.Max.Z, v.Z)
	}
	return b
}
