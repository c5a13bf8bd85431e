// Package geo holds the flat geometry used for cutting patterns. X runs
// across a panel and Y runs along it, in metres.
package geo

import "math"

// Point2D is a point or vector in the pattern plane.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a shorthand constructor for Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{p.X + q.X, p.Y + q.Y}
}

func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Y - q.Y}
}

func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

// Length is the Euclidean norm.
func (p Point2D) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector, or the zero vector for a zero input.
func (p Point2D) Normalize() Point2D {
	l := p.Length()
	if l < 1e-12 {
		return Point2D{}
	}
	return Point2D{p.X / l, p.Y / l}
}

func (p Point2D) Dot(q Point2D) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross is the z component of the 3D cross product.
func (p Point2D) Cross(q Point2D) float64 {
	return p.X*q.Y - p.Y*q.X
}

func (p Point2D) Distance(q Point2D) float64 {
	return p.Sub(q).Length()
}

// Lerp interpolates from p (t=0) to q (t=1).
func (p Point2D) Lerp(q Point2D, t float64) Point2D {
	return Point2D{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Perp is p turned 90° counterclockwise.
func (p Point2D) Perp() Point2D {
	return Point2D{-p.Y, p.X}
}

func (p Point2D) finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
