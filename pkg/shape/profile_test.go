package shape

import (
	"math"
	"testing"
)

// revolvedVolume integrates π·r² with the midpoint rule.
func revolvedVolume(p Profile, n int) float64 {
	dz := p.Height / float64(n)
	v := 0.0
	for i := 0; i < n; i++ {
		r := p.Radius((float64(i) + 0.5) * dz)
		v += math.Pi * r * r * dz
	}
	return v
}

func TestProfileMatchesVolume(t *testing.T) {
	shapes := []Shape{
		Sphere{Radius: 1.3},
		Cigar{Length: 6, Radius: 1},
		Cigar{Length: 1, Radius: 1},
		FromVolume(40, Pear{}),
	}
	for _, s := range shapes {
		p, ok := ProfileOf(s)
		if !ok {
			t.Fatalf("%s: no profile", s.Kind())
		}
		if got := revolvedVolume(p, 4000); !approxRel(got, s.Volume(), 0.01) {
			t.Errorf("%s %+v: revolved volume %v, want %v", s.Kind(), s, got, s.Volume())
		}
	}
}

func TestProfileEnds(t *testing.T) {
	pear := FromVolume(10, Pear{}).(Pear)
	p, _ := ProfileOf(pear)
	if got := p.Radius(0); got != pear.BottomRadius {
		t.Errorf("pear r(0) = %v, want bottom radius %v", got, pear.BottomRadius)
	}
	if got := p.Radius(pear.Height * 0.6); math.Abs(got-pear.TopRadius) > 1e-12 {
		t.Errorf("pear r(0.6h) = %v, want top radius %v", got, pear.TopRadius)
	}
	if got := p.Radius(pear.Height); got != 0 {
		t.Errorf("pear r(h) = %v, want 0", got)
	}
	if got := p.Radius(-1); got != 0 {
		t.Errorf("r(-1) = %v, want 0", got)
	}
	if got := p.MaxRadius(100); math.Abs(got-pear.TopRadius) > 1e-9 {
		t.Errorf("max radius = %v, want %v", got, pear.TopRadius)
	}
}

func TestPillowHasNoProfile(t *testing.T) {
	if _, ok := ProfileOf(Pillow{Length: 3, Width: 2, Height: 1}); ok {
		t.Error("pillow should not have a revolved profile")
	}
	if _, ok := ProfileOf(Sphere{}); ok {
		t.Error("empty sphere should not have a profile")
	}
}
