// Package shape is the envelope geometry library. Each shape kind is a
// concrete parameter struct; the set is closed and every dispatch is an
// exhaustive type switch.
package shape

import (
	"math"
	"strings"

	"github.com/ChicagoDave/aerostat/pkg/errs"
)

// Kind identifies an envelope shape.
type Kind string

const (
	KindSphere Kind = "sphere"
	KindPillow Kind = "pillow"
	KindPear   Kind = "pear"
	KindCigar  Kind = "cigar"
)

// Kinds returns every shape kind in display order.
func Kinds() []Kind {
	return []Kind{KindSphere, KindPillow, KindPear, KindCigar}
}

// ParseKind resolves a user-facing shape name.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	switch k {
	case KindSphere, KindPillow, KindPear, KindCigar:
		return k, nil
	case "":
		return KindSphere, nil
	}
	return "", &errs.ReferenceError{Kind: "shape", Name: name}
}

// Shape is one of Sphere, Pillow, Pear or Cigar. A zero field means the
// dimension is not given.
type Shape interface {
	Kind() Kind
	Volume() float64
	SurfaceArea() float64
	// CharacteristicRadius is the radius used by the thin-shell stress formula.
	CharacteristicRadius() float64
	sealed()
}

// New returns an empty shape of the given kind.
func New(k Kind) (Shape, error) {
	switch k {
	case KindSphere:
		return Sphere{}, nil
	case KindPillow:
		return Pillow{}, nil
	case KindPear:
		return Pear{}, nil
	case KindCigar:
		return Cigar{}, nil
	}
	return nil, &errs.ReferenceError{Kind: "shape", Name: string(k)}
}

// Sphere is a spherical envelope.
type Sphere struct {
	Radius float64 `json:"radius" yaml:"radius"`
}

func (Sphere) Kind() Kind { return KindSphere }
func (Sphere) sealed()    {}

func (s Sphere) Volume() float64 {
	if s.Radius <= 0 {
		return 0
	}
	return 4.0 / 3.0 * math.Pi * cube(s.Radius)
}

func (s Sphere) SurfaceArea() float64 {
	if s.Radius <= 0 {
		return 0
	}
	return 4 * math.Pi * s.Radius * s.Radius
}

func (s Sphere) CharacteristicRadius() float64 { return s.Radius }

// Pillow is a flat bag of two rectangular panels. Height is the inflated
// thickness and is always derived from the volume.
type Pillow struct {
	Length float64 `json:"length" yaml:"length"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (Pillow) Kind() Kind { return KindPillow }
func (Pillow) sealed()    {}

func (p Pillow) Volume() float64 {
	if p.Length <= 0 || p.Width <= 0 || p.Height <= 0 {
		return 0
	}
	return p.Length * p.Width * p.Height
}

// SurfaceArea counts the two face panels only.
func (p Pillow) SurfaceArea() float64 {
	if p.Length <= 0 || p.Width <= 0 {
		return 0
	}
	return 2 * p.Length * p.Width
}

func (p Pillow) CharacteristicRadius() float64 {
	return math.Min(p.Length, p.Width) / 2
}

// Pear is an upper hemisphere over a frustum. The height splits 40% to the
// cap and 60% to the frustum.
type Pear struct {
	Height       float64 `json:"height" yaml:"height"`
	TopRadius    float64 `json:"top_radius" yaml:"top_radius"`
	BottomRadius float64 `json:"bottom_radius" yaml:"bottom_radius"`
}

const (
	pearTopShare    = 0.4
	pearBottomShare = 0.6
)

func (Pear) Kind() Kind { return KindPear }
func (Pear) sealed()    {}

func (p Pear) Volume() float64 {
	if p.Height <= 0 || p.TopRadius <= 0 || p.BottomRadius <= 0 {
		return 0
	}
	rt, rb := p.TopRadius, p.BottomRadius
	hb := p.Height * pearBottomShare
	top := 2.0 / 3.0 * math.Pi * cube(rt)
	bottom := math.Pi * hb / 3 * (rt*rt + rt*rb + rb*rb)
	return top + bottom
}

func (p Pear) SurfaceArea() float64 {
	if p.Height <= 0 || p.TopRadius <= 0 || p.BottomRadius <= 0 {
		return 0
	}
	rt, rb := p.TopRadius, p.BottomRadius
	hb := p.Height * pearBottomShare
	slant := math.Hypot(hb, rt-rb)
	return 2*math.Pi*rt*rt + math.Pi*(rt+rb)*slant
}

func (p Pear) CharacteristicRadius() float64 {
	return (p.TopRadius + p.BottomRadius) / 2
}

// Cigar is a cylinder closed by two hemispherical caps. A length shorter
// than the diameter degenerates to a sphere of the radius.
type Cigar struct {
	Length float64 `json:"length" yaml:"length"`
	Radius float64 `json:"radius" yaml:"radius"`
}

func (Cigar) Kind() Kind { return KindCigar }
func (Cigar) sealed()    {}

func (c Cigar) Volume() float64 {
	if c.Length <= 0 || c.Radius <= 0 {
		return 0
	}
	r := c.Radius
	caps := 4.0 / 3.0 * math.Pi * cube(r)
	if c.Length < 2*r {
		return caps
	}
	return math.Pi*r*r*(c.Length-2*r) + caps
}

func (c Cigar) SurfaceArea() float64 {
	if c.Length <= 0 || c.Radius <= 0 {
		return 0
	}
	r := c.Radius
	caps := 4 * math.Pi * r * r
	if c.Length < 2*r {
		return caps
	}
	return 2*math.Pi*r*(c.Length-2*r) + caps
}

func (c Cigar) CharacteristicRadius() float64 { return c.Radius }

func cube(x float64) float64 { return x * x * x }
