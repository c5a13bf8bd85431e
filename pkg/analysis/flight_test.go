package analysis

import (
	"math"
	"testing"

	"github.com/ChicagoDave/aerostat/pkg/gasloss"
	"github.com/ChicagoDave/aerostat/pkg/solver"
)

func TestFlightTime(t *testing.T) {
	tmpl := heliumTemplate()
	const minPayload = 5.0
	e, err := FlightTime(tmpl, minPayload)
	if err != nil {
		t.Fatal(err)
	}
	res, err := solver.Solve(tmpl)
	if err != nil {
		t.Fatal(err)
	}
	rate := gasloss.Loss(res.Permeability, res.EffectiveSurfaceAreaM2, gasloss.MinPressureDiff, 1, res.ThicknessM)
	if math.Abs(e.GasLossRateM3PerHour-rate) > 1e-12 {
		t.Errorf("loss rate = %v, want %v", e.GasLossRateM3PerHour, rate)
	}

	// Linear loss makes the bisection answer analytic.
	want := (res.PayloadKg - minPayload) / (res.NetLiftPerM3 * rate)
	if math.Abs(float64(e.MaxTimeHours)-want) > 2*FlightSearchTolerance {
		t.Errorf("max time = %v, want ≈ %v", e.MaxTimeHours, want)
	}
	if e.Iterations > FlightSearchIterations {
		t.Errorf("iterations = %d", e.Iterations)
	}
	zero := res.PayloadKg / (res.NetLiftPerM3 * rate)
	if math.Abs(float64(e.TimeToZeroPayloadHours)-zero) > 1e-9*zero {
		t.Errorf("time to zero = %v, want %v", e.TimeToZeroPayloadHours, zero)
	}
	if e.TimeToZeroPayloadHours <= e.MaxTimeHours {
		t.Errorf("time to zero %v should exceed time to minimum %v", e.TimeToZeroPayloadHours, e.MaxTimeHours)
	}
	if e.InitialPayloadKg != res.PayloadKg {
		t.Errorf("initial payload = %v, want %v", e.InitialPayloadKg, res.PayloadKg)
	}
}

func TestFlightTimeSpecialCases(t *testing.T) {
	e, err := FlightTime(hotAirTemplate(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !e.MaxTimeHours.IsInf() || !e.TimeToZeroPayloadHours.IsInf() {
		t.Errorf("hot air = %+v, want +Inf", e)
	}

	e, err = FlightTime(heliumTemplate(), 1000)
	if err != nil {
		t.Fatal(err)
	}
	if e.MaxTimeHours != 0 || e.TimeToZeroPayloadHours != 0 {
		t.Errorf("unreachable minimum = %+v, want zeros", e)
	}

	tmpl := heliumTemplate()
	tmpl.Material = "Kevlar"
	if _, err := FlightTime(tmpl, 0); err == nil {
		t.Error("unknown material should fail")
	}
}

func TestFlightTimeScalesWithMultiplier(t *testing.T) {
	a, err := FlightTime(heliumTemplate(), 0)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := heliumTemplate()
	tmpl.PermeabilityMultiplier = 10
	b, err := FlightTime(tmpl, 0)
	if err != nil {
		t.Fatal(err)
	}
	ratio := float64(a.TimeToZeroPayloadHours) / float64(b.TimeToZeroPayloadHours)
	if math.Abs(ratio-10) > 1e-6 {
		t.Errorf("time-to-zero ratio = %v, want 10", ratio)
	}
}
