package geo

// Polyline is an open path through ordered points.
type Polyline struct {
	Points []Point2D `json:"points"`
}

// NewPolyline creates a polyline from a list of points.
func NewPolyline(pts ...Point2D) Polyline {
	return Polyline{Points: pts}
}

// Length returns the total arc length.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl.Points); i++ {
		total += pl.Points[i-1].Distance(pl.Points[i])
	}
	return total
}

// CatmullRomSpline passes a smooth curve through the control points,
// sampling samplesPerSegment points per span. Tension 0.5 gives the
// classic Catmull-Rom curve. The end spans use reflected phantom points.
func CatmullRomSpline(controlPoints []Point2D, samplesPerSegment int, tension float64) Polyline {
	n := len(controlPoints)
	if n < 3 {
		return NewPolyline(controlPoints...)
	}
	if samplesPerSegment < 1 {
		samplesPerSegment = 1
	}

	ext := make([]Point2D, n+2)
	ext[0] = controlPoints[0].Add(controlPoints[0].Sub(controlPoints[1]))
	copy(ext[1:], controlPoints)
	ext[n+1] = controlPoints[n-1].Add(controlPoints[n-1].Sub(controlPoints[n-2]))

	pts := make([]Point2D, 0, (n-1)*samplesPerSegment+1)
	for i := 1; i < n; i++ {
		for j := 0; j < samplesPerSegment; j++ {
			t := float64(j) / float64(samplesPerSegment)
			pts = append(pts, catmullRom(ext[i-1], ext[i], ext[i+1], ext[i+2], t, tension))
		}
	}
	pts = append(pts, controlPoints[n-1])
	return Polyline{Points: pts}
}

func catmullRom(p0, p1, p2, p3 Point2D, t, s float64) Point2D {
	t2 := t * t
	t3 := t2 * t
	eval := func(a, b, c, d float64) float64 {
		return 0.5 * ((-s*a+(2-s)*b+(s-2)*c+s*d)*t3 +
			(2*s*a+(s-3)*b+(3-2*s)*c-s*d)*t2 +
			(-s*a+s*c)*t +
			2*b)
	}
	return Point2D{X: eval(p0.X, p1.X, p2.X, p3.X), Y: eval(p0.Y, p1.Y, p2.Y, p3.Y)}
}
