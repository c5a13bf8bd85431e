package gas

import (
	"errors"
	"math"
	"testing"

	"github.com/ChicagoDave/aerostat/pkg/atmosphere"
	"github.com/ChicagoDave/aerostat/pkg/errs"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"Helium", Helium},
		{"he", Helium},
		{" H2 ", Hydrogen},
		{"hot air", HotAir},
		{"hot_air", HotAir},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := Parse("neon"); !errors.Is(err, errs.ErrInvalidReference) {
		t.Errorf("Parse(neon) err = %v, want ErrInvalidReference", err)
	}
}

func TestHeliumSeaLevel(t *testing.T) {
	s := atmosphere.At(0, 15)
	rho, err := Density(Helium, s.PressurePa, s.TemperatureK(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(rho-0.1693) > 0.001 {
		t.Errorf("helium density = %v, want ≈ 0.1693", rho)
	}
	net := s.DensityKgM3 - rho
	if math.Abs(net-1.056) > 0.02 {
		t.Errorf("net lift = %v, want ≈ 1.05", net)
	}
}

func TestHydrogenLiftsMoreThanHelium(t *testing.T) {
	for _, h := range []float64{0, 1000, 5000, 15000} {
		s := atmosphere.At(h, 15)
		he, _ := Density(Helium, s.PressurePa, s.TemperatureK(), 0)
		h2, _ := Density(Hydrogen, s.PressurePa, s.TemperatureK(), 0)
		if s.DensityKgM3-h2 <= s.DensityKgM3-he {
			t.Errorf("at %v m hydrogen net lift %v <= helium %v", h, s.DensityKgM3-h2, s.DensityKgM3-he)
		}
	}
}

func TestHotAir(t *testing.T) {
	rho, err := Density(HotAir, 50000, 250, 100)
	if err != nil {
		t.Fatal(err)
	}
	want := 1.225 * 288.15 / 373.15
	if math.Abs(rho-want) > 1e-9 {
		t.Errorf("hot air density = %v, want %v", rho, want)
	}
	if net := 1.225 - rho; math.Abs(net-0.280) > 0.005 {
		t.Errorf("net lift = %v, want ≈ 0.280", net)
	}
	p := InsidePressure(HotAir, rho, 101325, 100)
	if math.Abs(p-1.225*287.05*288.15) > 1e-6 {
		t.Errorf("inside pressure = %v", p)
	}
	if got := InsidePressure(Helium, 0.17, 90000, 0); got != 90000 {
		t.Errorf("helium inside pressure = %v, want ambient", got)
	}
}

func TestCheckHotAir(t *testing.T) {
	if err := CheckHotAir(100, 15); err != nil {
		t.Errorf("CheckHotAir(100, 15) = %v", err)
	}
	for _, inside := range []float64{15, 10} {
		if err := CheckHotAir(inside, 15); !errors.Is(err, errs.ErrInvalidTemperature) {
			t.Errorf("CheckHotAir(%v, 15) = %v, want ErrInvalidTemperature", inside, err)
		}
	}
}
