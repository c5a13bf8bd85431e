// Package solver combines the atmosphere, gas and shape models into a
// single balloon solve.
package solver

import (
	"math"

	"github.com/ChicagoDave/aerostat/pkg/atmosphere"
	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/gas"
	"github.com/ChicagoDave/aerostat/pkg/gasloss"
	"github.com/ChicagoDave/aerostat/pkg/material"
	"github.com/ChicagoDave/aerostat/pkg/shape"
)

// PayloadIterations is the fixed number of fixed-point passes used by the
// payload-to-volume direction. There is no convergence test.
const PayloadIterations = 10

// Solve computes lift, shell mass, stress and gas loss for one request.
func Solve(req Request) (Result, error) {
	req = req.withDefaults()
	if err := req.check(); err != nil {
		return Result{}, err
	}
	mat, err := material.Lookup(req.Material)
	if err != nil {
		return Result{}, err
	}

	// 1. Ambient air at the working altitude
	height := req.HeightM()
	air := atmosphere.At(height, req.GroundTempC)

	// 2. Gas density and envelope pressure
	if req.Gas == gas.HotAir {
		if err := gas.CheckHotAir(req.InsideTempC, req.GroundTempC); err != nil {
			return Result{}, err
		}
	}
	rhoGas, err := gas.Density(req.Gas, air.PressurePa, air.TemperatureK(), req.InsideTempC)
	if err != nil {
		return Result{}, err
	}
	insideP := gas.InsidePressure(req.Gas, rhoGas, air.PressurePa, req.InsideTempC)

	// 3. Net lift; NaN above the model ceiling also fails here
	net := air.DensityKgM3 - rhoGas
	if !(net > 0) || !air.Valid() {
		return Result{}, &errs.NoLiftError{HeightM: height, NetLiftPerM3: finite(net)}
	}

	thickness := req.ThicknessM
	shellMass := func(area float64) float64 {
		return area * req.SeamFactor * thickness * mat.Density
	}

	// 4. Gas volume
	gasVolume := req.Target
	if req.Direction == PayloadToVolume {
		gasVolume = req.Target / net
		for i := 0; i < PayloadIterations; i++ {
			geom := shape.FromVolume(RequiredVolume(gasVolume, air, req.GroundTempC), req.Shape)
			gasVolume = (req.Target + shellMass(geom.SurfaceArea()) + req.ExtraMassKg) / net
		}
	}

	// 5-7. Envelope at altitude and its mass
	required := RequiredVolume(gasVolume, air, req.GroundTempC)
	geom := shape.FromVolume(required, req.Shape)
	area := geom.SurfaceArea()
	effArea := area * req.SeamFactor
	shell := shellMass(area)

	// 8. Lift and payload
	lift := net * gasVolume
	payload := lift - shell - req.ExtraMassKg

	res := Result{
		GasType:    req.Gas,
		Material:   mat.Name,
		Direction:  req.Direction,
		HeightM:    height,
		ThicknessM: thickness,

		GasVolumeM3:            gasVolume,
		RequiredVolumeM3:       required,
		PayloadKg:              payload,
		ShellMassKg:            shell,
		LiftKg:                 lift,
		ExtraMassKg:            req.ExtraMassKg,
		SeamFactor:             req.SeamFactor,
		CharacteristicRadiusM:  geom.CharacteristicRadius(),
		SurfaceAreaM2:          area,
		EffectiveSurfaceAreaM2: effArea,

		// 9. Thin-shell hoop stress
		StressPa:            Stress(insideP, air.PressurePa, geom.CharacteristicRadius(), thickness),
		StressLimitPa:       mat.StressLimit,
		MaterialDensityKgM3: mat.Density,

		OutsideTempC:      air.TemperatureC,
		OutsidePressurePa: air.PressurePa,
		InsidePressurePa:  insideP,
		AirDensityKgM3:    air.DensityKgM3,
		GasDensityKgM3:    rhoGas,
		NetLiftPerM3:      net,

		FinalGasVolumeM3: gasVolume,
		LiftAtEndKg:      lift,
		PayloadAtEndKg:   payload,

		ShapeKind: geom.Kind(),
		Shape:     geom,
	}

	// 10. Permeation over the flight
	if req.Gas.Lifting() {
		res.Permeability = gasloss.Permeability(mat.Name, req.Gas, req.PermeabilityMultiplier)
		if req.FlightDurationH > 0 {
			dp := gasloss.PressureDiff(insideP, air.PressurePa)
			res.GasLossM3 = gasloss.Loss(res.Permeability, effArea, dp, req.FlightDurationH, thickness)
			res.FinalGasVolumeM3 = math.Max(0, gasVolume-res.GasLossM3)
			res.LiftAtEndKg = net * res.FinalGasVolumeM3
			res.PayloadAtEndKg = res.LiftAtEndKg - shell - req.ExtraMassKg
		}
	}
	return res, nil
}

// RequiredVolume scales a ground-level gas volume to the envelope volume it
// occupies at altitude.
func RequiredVolume(groundVolume float64, air atmosphere.State, groundTempC float64) float64 {
	return groundVolume * (atmosphere.SeaLevelPressure / air.PressurePa) *
		(air.TemperatureK() / (groundTempC + atmosphere.KelvinOffset))
}

// Stress is the thin-shell hoop stress max(0, Pin−Pout)·r/(2t). Zero
// thickness gives zero stress.
func Stress(insidePa, outsidePa, radiusM, thicknessM float64) float64 {
	if thicknessM <= 0 {
		return 0
	}
	return math.Max(0, insidePa-outsidePa) * radiusM / (2 * thicknessM)
}

func (r Request) withDefaults() Request {
	if r.SeamFactor == 0 {
		r.SeamFactor = 1
	}
	if r.PermeabilityMultiplier == 0 {
		r.PermeabilityMultiplier = 1
	}
	if r.Direction == "" {
		r.Direction = VolumeToPayload
	}
	if r.Shape == nil {
		r.Shape = shape.Sphere{}
	}
	return r
}

func (r Request) check() error {
	switch r.Gas {
	case gas.Helium, gas.Hydrogen, gas.HotAir:
	default:
		return &errs.ReferenceError{Kind: "gas", Name: string(r.Gas)}
	}
	switch r.Direction {
	case VolumeToPayload, PayloadToVolume:
	default:
		return errs.Invalid("direction", "unknown solve direction %q", r.Direction)
	}
	switch {
	case !(r.Target > 0) || math.IsInf(r.Target, 0):
		return errs.Invalid("target", "must be a positive number, got %v", r.Target)
	case r.ThicknessM < 0:
		return errs.Invalid("thickness_m", "must not be negative, got %v", r.ThicknessM)
	case r.SeamFactor < 1:
		return errs.Invalid("seam_factor", "must be at least 1, got %v", r.SeamFactor)
	case r.PermeabilityMultiplier < 0:
		return errs.Invalid("permeability_multiplier", "must not be negative, got %v", r.PermeabilityMultiplier)
	case r.FlightDurationH < 0:
		return errs.Invalid("flight_duration_h", "must not be negative, got %v", r.FlightDurationH)
	case r.ExtraMassKg < 0:
		return errs.Invalid("extra_mass_kg", "must not be negative, got %v", r.ExtraMassKg)
	}
	return nil
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
