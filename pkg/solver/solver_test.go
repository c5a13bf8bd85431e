package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/gas"
	"github.com/ChicagoDave/aerostat/pkg/gasloss"
	"github.com/ChicagoDave/aerostat/pkg/shape"
)

func approxRel(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Abs(b)
}

func heliumTPU() Request {
	return Request{
		Gas:         gas.Helium,
		Material:    "TPU",
		ThicknessM:  35e-6,
		Target:      10,
		GroundTempC: 15,
		Shape:       shape.Sphere{},
	}
}

func TestHeliumSeaLevelSphere(t *testing.T) {
	res, err := Solve(heliumTPU())
	if err != nil {
		t.Fatal(err)
	}
	if !approxRel(res.NetLiftPerM3, 1.043, 0.02) {
		t.Errorf("net lift = %v, want ≈ 1.043", res.NetLiftPerM3)
	}
	if !approxRel(res.LiftKg, 10.43, 0.02) {
		t.Errorf("lift = %v, want ≈ 10.43", res.LiftKg)
	}
	if res.PayloadKg <= 0 {
		t.Errorf("payload = %v, want > 0", res.PayloadKg)
	}
	if !approxRel(res.RequiredVolumeM3, 10, 1e-9) {
		t.Errorf("required volume at sea level = %v, want 10", res.RequiredVolumeM3)
	}
	r := math.Cbrt(30 / (4 * math.Pi))
	wantShell := 4 * math.Pi * r * r * 35e-6 * 1200
	if !approxRel(res.ShellMassKg, wantShell, 1e-9) {
		t.Errorf("shell mass = %v, want %v", res.ShellMassKg, wantShell)
	}
	if !approxRel(res.PayloadKg, res.LiftKg-res.ShellMassKg, 1e-12) {
		t.Errorf("payload = %v, want lift − shell", res.PayloadKg)
	}
	if !approxRel(res.CharacteristicRadiusM, r, 1e-9) {
		t.Errorf("radius = %v, want %v", res.CharacteristicRadiusM, r)
	}
	if res.StressPa != 0 {
		t.Errorf("helium stress = %v, want 0 at ambient pressure", res.StressPa)
	}
	if res.ShapeKind != shape.KindSphere {
		t.Errorf("shape kind = %v", res.ShapeKind)
	}
	if res.GasLossM3 != 0 || res.FinalGasVolumeM3 != res.GasVolumeM3 || res.PayloadAtEndKg != res.PayloadKg {
		t.Errorf("no duration should mean no loss: %+v", res)
	}
}

func TestHotAir(t *testing.T) {
	req := Request{
		Gas:         gas.HotAir,
		Material:    "Nylon",
		ThicknessM:  50e-6,
		Target:      2000,
		GroundTempC: 15,
		InsideTempC: 100,
	}
	res, err := Solve(req)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.GasDensityKgM3-0.9459) > 0.001 {
		t.Errorf("gas density = %v, want ≈ 0.9459", res.GasDensityKgM3)
	}
	if math.Abs(res.NetLiftPerM3-0.280) > 0.005 {
		t.Errorf("net lift = %v, want ≈ 0.280", res.NetLiftPerM3)
	}

	req.FlightDurationH = 100
	res, _ = Solve(req)
	if res.GasLossM3 != 0 || res.Permeability != 0 {
		t.Errorf("hot air should not lose gas: loss %v, permeability %v", res.GasLossM3, res.Permeability)
	}

	req.InsideTempC = 10
	if _, err := Solve(req); !errors.Is(err, errs.ErrInvalidTemperature) {
		t.Errorf("cold hot air err = %v, want ErrInvalidTemperature", err)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Request)
		kind   error
	}{
		{"unknown material", func(r *Request) { r.Material = "Kevlar" }, errs.ErrInvalidReference},
		{"unknown gas", func(r *Request) { r.Gas = "neon" }, errs.ErrInvalidReference},
		{"zero target", func(r *Request) { r.Target = 0 }, errs.ErrValidation},
		{"NaN target", func(r *Request) { r.Target = math.NaN() }, errs.ErrValidation},
		{"negative thickness", func(r *Request) { r.ThicknessM = -1 }, errs.ErrValidation},
		{"seam below 1", func(r *Request) { r.SeamFactor = 0.5 }, errs.ErrValidation},
		{"bad direction", func(r *Request) { r.Direction = "sideways" }, errs.ErrValidation},
		{"above model ceiling", func(r *Request) { r.WorkHeightM = 45000 }, errs.ErrNoLift},
	}
	for _, tt := range tests {
		req := heliumTPU()
		tt.modify(&req)
		if _, err := Solve(req); !errors.Is(err, tt.kind) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.kind)
		}
	}
}

func TestNoLiftCarriesHeight(t *testing.T) {
	req := heliumTPU()
	req.StartHeightM = 20000
	req.WorkHeightM = 30000
	_, err := Solve(req)
	var nl *errs.NoLiftError
	if !errors.As(err, &nl) {
		t.Fatalf("err = %v, want *NoLiftError", err)
	}
	if nl.HeightM != 50000 {
		t.Errorf("HeightM = %v, want 50000", nl.HeightM)
	}
}

func TestHydrogenOutliftsHelium(t *testing.T) {
	he := heliumTPU()
	he.WorkHeightM = 3000
	h2 := he
	h2.Gas = gas.Hydrogen
	a, err := Solve(he)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Solve(h2)
	if err != nil {
		t.Fatal(err)
	}
	if b.NetLiftPerM3 <= a.NetLiftPerM3 {
		t.Errorf("hydrogen net lift %v <= helium %v", b.NetLiftPerM3, a.NetLiftPerM3)
	}
}

func TestDirectionRoundTrip(t *testing.T) {
	for _, s := range []shape.Shape{shape.Sphere{}, shape.Pillow{}, shape.Pear{}, shape.Cigar{}} {
		fwd := heliumTPU()
		fwd.WorkHeightM = 2000
		fwd.ExtraMassKg = 0.5
		fwd.SeamFactor = 1.1
		fwd.Shape = s
		a, err := Solve(fwd)
		if err != nil {
			t.Fatal(err)
		}
		back := fwd
		back.Direction = PayloadToVolume
		back.Target = a.PayloadKg
		b, err := Solve(back)
		if err != nil {
			t.Fatal(err)
		}
		if !approxRel(b.GasVolumeM3, 10, 0.05) {
			t.Errorf("%s: round-trip volume = %v, want ≈ 10", s.Kind(), b.GasVolumeM3)
		}
	}
}

func TestRequiredVolumeGrowsWithAltitude(t *testing.T) {
	prev := 0.0
	for _, h := range []float64{0, 2000, 5000, 10000} {
		req := heliumTPU()
		req.WorkHeightM = h
		res, err := Solve(req)
		if err != nil {
			t.Fatal(err)
		}
		if res.RequiredVolumeM3 <= prev {
			t.Errorf("required volume at %v m = %v, not above %v", h, res.RequiredVolumeM3, prev)
		}
		prev = res.RequiredVolumeM3
	}
}

func TestGasLoss(t *testing.T) {
	req := heliumTPU()
	req.FlightDurationH = 24
	req.PermeabilityMultiplier = 10
	res, err := Solve(req)
	if err != nil {
		t.Fatal(err)
	}
	want := gasloss.Loss(2e-13, res.EffectiveSurfaceAreaM2, gasloss.MinPressureDiff, 24, 35e-6)
	if !approxRel(res.GasLossM3, want, 1e-9) {
		t.Errorf("gas loss = %v, want %v", res.GasLossM3, want)
	}
	if !approxRel(res.FinalGasVolumeM3, 10-want, 1e-9) {
		t.Errorf("final volume = %v, want %v", res.FinalGasVolumeM3, 10-want)
	}
	if res.PayloadAtEndKg >= res.PayloadKg {
		t.Errorf("payload at end %v should be below %v", res.PayloadAtEndKg, res.PayloadKg)
	}
	if !approxRel(res.LiftAtEndKg, res.NetLiftPerM3*res.FinalGasVolumeM3, 1e-12) {
		t.Errorf("lift at end = %v", res.LiftAtEndKg)
	}
}

func TestStress(t *testing.T) {
	if got := Stress(102000, 101000, 1.0, 0.001); got != 500000 {
		t.Errorf("Stress = %v, want 500000", got)
	}
	if got := Stress(101000, 102000, 1.0, 0.001); got != 0 {
		t.Errorf("underpressure stress = %v, want 0", got)
	}
	if got := Stress(102000, 101000, 1.0, 0); got != 0 {
		t.Errorf("zero thickness stress = %v, want 0", got)
	}
}

func TestHotAirStressAtAltitude(t *testing.T) {
	req := Request{Gas: gas.HotAir, Material: "Nylon", ThicknessM: 50e-6, Target: 1000, GroundTempC: 15, InsideTempC: 100, WorkHeightM: 1000}
	res, err := Solve(req)
	if err != nil {
		t.Fatal(err)
	}
	want := Stress(res.InsidePressurePa, res.OutsidePressurePa, res.CharacteristicRadiusM, 50e-6)
	if res.StressPa <= 0 || res.StressPa != want {
		t.Errorf("stress = %v, want %v > 0", res.StressPa, want)
	}
}
