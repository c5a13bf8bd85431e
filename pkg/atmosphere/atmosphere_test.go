package atmosphere

import (
	"math"
	"testing"
)

func TestSeaLevel(t *testing.T) {
	for _, ground := range []float64{10, 15, 20} {
		s := At(0, ground)
		if math.Abs(s.PressurePa-SeaLevelPressure)/SeaLevelPressure > 0.01 {
			t.Errorf("ground %v: pressure = %v, want ≈ %v", ground, s.PressurePa, SeaLevelPressure)
		}
		if math.Abs(s.DensityKgM3-SeaLevelDensity)/SeaLevelDensity > 0.03 {
			t.Errorf("ground %v: density = %v, want ≈ %v", ground, s.DensityKgM3, SeaLevelDensity)
		}
		if s.TemperatureC != ground {
			t.Errorf("ground %v: temperature = %v", ground, s.TemperatureC)
		}
	}
	s := At(0, 15)
	if math.Abs(s.DensityKgM3-1.225) > 0.01*1.225 {
		t.Errorf("density at 15°C = %v, want ≈ 1.225", s.DensityKgM3)
	}
}

func TestMonotonic(t *testing.T) {
	prev := At(0, 15)
	for h := 250.0; h <= 20000; h += 250 {
		s := At(h, 15)
		if s.PressurePa >= prev.PressurePa {
			t.Errorf("pressure not decreasing at %v m: %v >= %v", h, s.PressurePa, prev.PressurePa)
		}
		if s.DensityKgM3 >= prev.DensityKgM3 {
			t.Errorf("density not decreasing at %v m", h)
		}
		if s.TemperatureC >= prev.TemperatureC {
			t.Errorf("temperature not decreasing at %v m", h)
		}
		prev = s
	}
}

func TestLapse(t *testing.T) {
	s := At(1000, 15)
	if math.Abs(s.TemperatureC-8.5) > 1e-9 {
		t.Errorf("temperature at 1000 m = %v, want 8.5", s.TemperatureC)
	}
	if math.Abs(s.PressurePa-89876) > 100 {
		t.Errorf("pressure at 1000 m = %v, want ≈ 89876", s.PressurePa)
	}
}

func TestInvalidAboveModel(t *testing.T) {
	if !At(10000, 15).Valid() {
		t.Error("10 km should be valid")
	}
	if At(50000, 15).Valid() {
		t.Error("50 km should be invalid: temperature falls below 0 K")
	}
}
