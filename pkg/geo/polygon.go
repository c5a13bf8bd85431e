package geo

import "math"

// Polygon is a closed outline. The last vertex connects back to the first.
type Polygon struct {
	Vertices []Point2D `json:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// IsEmpty reports whether the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// SignedArea uses the shoelace formula. Counterclockwise outlines are
// positive.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].Cross(p.Vertices[j])
	}
	return area / 2
}

func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// EnsureCCW returns the polygon wound counterclockwise.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() < 0 {
		return p.Reverse()
	}
	return p
}

func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Point2D, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev}
}

// Centroid is the area centroid, or the vertex mean for a degenerate outline.
func (p Polygon) Centroid() Point2D {
	n := len(p.Vertices)
	if n == 0 {
		return Point2D{}
	}
	a := p.SignedArea()
	if n < 3 || math.Abs(a) < 1e-12 {
		sum := Point2D{}
		for _, v := range p.Vertices {
			sum = sum.Add(v)
		}
		return sum.Scale(1 / float64(n))
	}
	var c Point2D
	for i := 0; i < n; i++ {
		vi, vj := p.Vertices[i], p.Vertices[(i+1)%n]
		c = c.Add(vi.Add(vj).Scale(vi.Cross(vj)))
	}
	return c.Scale(1 / (6 * a))
}

// Rect is an axis-aligned box.
type Rect struct {
	Min Point2D `json:"min"`
	Max Point2D `json:"max"`
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// BoundingBox is the smallest Rect holding every vertex.
func (p Polygon) BoundingBox() Rect {
	if len(p.Vertices) == 0 {
		return Rect{}
	}
	r := Rect{Min: p.Vertices[0], Max: p.Vertices[0]}
	for _, v := range p.Vertices[1:] {
		r.Min.X = math.Min(r.Min.X, v.X)
		r.Min.Y = math.Min(r.Min.Y, v.Y)
		r.Max.X = math.Max(r.Max.X, v.X)
		r.Max.Y = math.Max(r.Max.Y, v.Y)
	}
	return r
}

// Contains uses ray casting. Points on an edge may land either way.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := p.Vertices[i], p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		total += p.Vertices[i].Distance(p.Vertices[(i+1)%n])
	}
	return total
}

// Translate shifts every vertex by d.
func (p Polygon) Translate(d Point2D) Polygon {
	out := make([]Point2D, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = v.Add(d)
	}
	return Polygon{Vertices: out}
}

// Offset grows the outline outward by distance (shrinks it for a negative
// distance). Each vertex moves along the bisector of its two edge normals,
// scaled so both edges end up exactly distance away. Miters are capped at
// 4×distance so sharp tips stay bounded.
func (p Polygon) Offset(distance float64) Polygon {
	n := len(p.Vertices)
	if n < 3 || distance == 0 {
		return p
	}
	ccw := p.EnsureCCW().Vertices
	out := make([]Point2D, 0, n)
	for i := 0; i < n; i++ {
		prev, cur, next := ccw[(i-1+n)%n], ccw[i], ccw[(i+1)%n]
		// Outward normal of a CCW edge is its direction turned clockwise.
		n1 := cur.Sub(prev).Normalize().Perp().Scale(-1)
		n2 := next.Sub(cur).Normalize().Perp().Scale(-1)
		bisector := n1.Add(n2).Normalize()
		if bisector == (Point2D{}) {
			bisector = n1
		}
		cos := bisector.Dot(n1)
		miter := distance
		if cos > 0.25 {
			miter = distance / cos
		} else {
			miter = distance * 4
		}
		out = append(out, cur.Add(bisector.Scale(miter)))
	}
	return Polygon{Vertices: out}
}

// Finite reports whether every vertex has finite coordinates.
func (p Polygon) Finite() bool {
	for _, v := range p.Vertices {
		if !v.finite() {
			return false
		}
	}
	return true
}
