package shape

import "math"

// Profile is the meridian of a surface of revolution: the radius r(z) at
// each axial station z in [0, Height], measured from the bottom.
type Profile struct {
	Height float64
	radius func(z float64) float64
}

// Radius returns r(z), or 0 outside the profile.
func (p Profile) Radius(z float64) float64 {
	if z < 0 || z > p.Height || p.radius == nil {
		return 0
	}
	return p.radius(z)
}

// MaxRadius returns the largest sampled radius.
func (p Profile) MaxRadius(samples int) float64 {
	m := 0.0
	for i := 0; i <= samples; i++ {
		if r := p.Radius(p.Height * float64(i) / float64(samples)); r > m {
			m = r
		}
	}
	return m
}

// ProfileOf returns the meridian profile of a revolved shape. Pillows are
// not surfaces of revolution and report false.
func ProfileOf(s Shape) (Profile, bool) {
	switch s := s.(type) {
	case Sphere:
		return sphereProfile(s.Radius), s.Radius > 0
	case Pillow:
		return Profile{}, false
	case Pear:
		return pearProfile(s), s.Volume() > 0
	case Cigar:
		return cigarProfile(s), s.Volume() > 0
	}
	return Profile{}, false
}

func sphereProfile(r float64) Profile {
	return Profile{
		Height: 2 * r,
		radius: func(z float64) float64 {
			return math.Sqrt(math.Max(0, r*r-(z-r)*(z-r)))
		},
	}
}

// The frustum runs from BottomRadius at z=0 to TopRadius at the 60% station;
// the cap above it is a half-ellipse in meridian section so the profile
// closes at Height for any aspect ratio. With the default ratios the cap is
// exactly a hemisphere.
func pearProfile(p Pear) Profile {
	hb := p.Height * pearBottomShare
	ht := p.Height * pearTopShare
	return Profile{
		Height: p.Height,
		radius: func(z float64) float64 {
			if z <= hb {
				t := z / hb
				return p.BottomRadius*(1-t) + p.TopRadius*t
			}
			u := (z - hb) / ht
			return p.TopRadius * math.Sqrt(math.Max(0, 1-u*u))
		},
	}
}

func cigarProfile(c Cigar) Profile {
	r := c.Radius
	if c.Length < 2*r {
		return sphereProfile(r)
	}
	l := c.Length
	return Profile{
		Height: l,
		radius: func(z float64) float64 {
			switch {
			case z < r:
				return math.Sqrt(math.Max(0, r*r-(z-r)*(z-r)))
			case z > l-r:
				d := z - (l - r)
				return math.Sqrt(math.Max(0, r*r-d*d))
			}
			return r
		},
	}
}
