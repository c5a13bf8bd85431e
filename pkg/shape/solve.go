package shape

import "math"

// Default aspect ratios used when a shape is under-determined.
const (
	PillowAspect    = 1.5 // length / width
	PearHeightRatio = 2.5 // height / top radius
	PearRadiusRatio = 0.5 // bottom radius / top radius
	CigarAspect     = 5.0 // length / radius
)

// FromVolume completes partial so that its volume matches target. Given
// dimensions are kept; missing ones are derived using the default aspect
// ratios. A non-positive target yields the zero shape of the same kind.
//
// The inverse is exact for every shape when nothing is given, for the
// sphere, for the pillow, for a cigar with a fixed radius and for a pear
// with both radii fixed, where volume is linear in height. The remaining
// pear and cigar cases rescale the free dimensions of a trial geometry by
// the cube root of the volume ratio, which is an approximation.
func FromVolume(target float64, partial Shape) Shape {
	switch s := partial.(type) {
	case Sphere:
		return sphereFromVolume(target)
	case Pillow:
		return pillowFromVolume(target, s)
	case Pear:
		return pearFromVolume(target, s)
	case Cigar:
		return cigarFromVolume(target, s)
	case nil:
		return sphereFromVolume(target)
	}
	panic("shape: unknown shape type")
}

func sphereFromVolume(v float64) Sphere {
	if v <= 0 {
		return Sphere{}
	}
	return Sphere{Radius: math.Cbrt(3 * v / (4 * math.Pi))}
}

func pillowFromVolume(v float64, p Pillow) Pillow {
	if v <= 0 {
		return Pillow{}
	}
	l, w := p.Length, p.Width
	switch {
	case l > 0 && w > 0:
	case l > 0:
		w = l / PillowAspect
	case w > 0:
		l = w * PillowAspect
	default:
		w = math.Cbrt(4 * v / 3)
		l = w * PillowAspect
	}
	return Pillow{Length: l, Width: w, Height: v / (l * w)}
}

func pearFromVolume(v float64, p Pear) Pear {
	if v <= 0 {
		return Pear{}
	}
	h, rt, rb := p.Height, p.TopRadius, p.BottomRadius
	hasH, hasT, hasB := h > 0, rt > 0, rb > 0

	switch {
	case hasH && hasT && hasB:
		return p
	case !hasH && !hasT && !hasB:
		// V = κ·π·Rt³ with the default ratios.
		kappa := 2.0/3.0 + pearBottomShare*PearHeightRatio/3*(1+PearRadiusRatio+PearRadiusRatio*PearRadiusRatio)
		rt = math.Cbrt(v / (kappa * math.Pi))
		return Pear{Height: PearHeightRatio * rt, TopRadius: rt, BottomRadius: PearRadiusRatio * rt}
	case hasT && hasB:
		// V = dome + π·0.6h/3·(Rt²+Rt·Rb+Rb²). Targets inside the dome fall
		// through to the rescale.
		dome := 2.0 / 3.0 * math.Pi * cube(rt)
		if v > dome {
			h = (v - dome) / (math.Pi * pearBottomShare / 3 * (rt*rt + rt*rb + rb*rb))
			return Pear{Height: h, TopRadius: rt, BottomRadius: rb}
		}
	}

	// Trial geometry from whichever dimension anchors the ratios.
	switch {
	case hasT:
	case hasB:
		rt = rb / PearRadiusRatio
	default:
		rt = h / PearHeightRatio
	}
	if !hasH {
		h = PearHeightRatio * rt
	}
	if !hasB {
		rb = PearRadiusRatio * rt
	}

	trial := Pear{Height: h, TopRadius: rt, BottomRadius: rb}.Volume()
	if trial > 0 {
		k := math.Cbrt(v / trial)
		if !hasH {
			h *= k
		}
		if !hasT {
			rt *= k
		}
		if !hasB {
			rb *= k
		}
	}
	return Pear{Height: h, TopRadius: rt, BottomRadius: rb}
}

func cigarFromVolume(v float64, c Cigar) Cigar {
	if v <= 0 {
		return Cigar{}
	}
	l, r := c.Length, c.Radius
	switch {
	case l > 0 && r > 0:
		return c
	case r > 0:
		caps := 4.0 / 3.0 * math.Pi * cube(r)
		if v <= caps {
			return Cigar{Length: 2 * r, Radius: r}
		}
		return Cigar{Length: (v-caps)/(math.Pi*r*r) + 2*r, Radius: r}
	case l > 0:
		r = l / CigarAspect
		if trial := (Cigar{Length: l, Radius: r}).Volume(); trial > 0 {
			r *= math.Cbrt(v / trial)
		}
		return Cigar{Length: l, Radius: r}
	}
	// V = π·r²·(5r−2r) + 4/3·π·r³ = 13/3·π·r³
	r = math.Cbrt(3 * v / (13 * math.Pi))
	return Cigar{Length: CigarAspect * r, Radius: r}
}
