package analysis

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/aerostat/pkg/gasloss"
	"github.com/ChicagoDave/aerostat/pkg/solver"
)

const (
	FlightSearchMaxHours   = 10000.0
	FlightSearchIterations = 50
	FlightSearchTolerance  = 0.01 // h
)

// Endurance reports how long a sealed balloon keeps a minimum payload.
//
// MaxTimeHours comes from bisection on the loss model. TimeToZeroPayloadHours
// is a linear estimate from the one-hour loss rate. The two are independent
// and may disagree for large losses.
type Endurance struct {
	MaxTimeHours           Unbounded `json:"max_time_hours"`
	TimeToZeroPayloadHours Unbounded `json:"time_to_zero_payload_hours"`
	InitialPayloadKg       float64   `json:"initial_payload_kg"`
	MinPayloadKg           float64   `json:"min_payload_kg"`
	GasLossRateM3PerHour   float64   `json:"gas_loss_rate_m3_per_hour"`
	Iterations             int       `json:"iterations"`
	Message                string    `json:"message"`
}

// FlightTime searches [0, FlightSearchMaxHours] for the longest flight whose
// end-of-flight payload stays at or above minPayloadKg.
func FlightTime(tmpl solver.Request, minPayloadKg float64) (Endurance, error) {
	out := Endurance{MinPayloadKg: minPayloadKg}
	inf := Unbounded(math.Inf(1))

	tmpl.FlightDurationH = 0
	if tmpl.Gas != "" && !tmpl.Gas.Lifting() {
		if _, err := solver.Solve(tmpl); err != nil {
			return out, err
		}
		out.MaxTimeHours, out.TimeToZeroPayloadHours = inf, inf
		out.Message = "gas loss is not modelled for hot air"
		return out, nil
	}

	res, err := solver.Solve(tmpl)
	if err != nil {
		return out, err
	}
	out.InitialPayloadKg = res.PayloadKg
	if res.PayloadKg <= minPayloadKg {
		out.Message = "initial payload is already below the minimum"
		return out, nil
	}
	if res.Permeability == 0 {
		out.MaxTimeHours, out.TimeToZeroPayloadHours = inf, inf
		out.Message = "no permeability for this material and gas"
		return out, nil
	}

	dp := gasloss.PressureDiff(res.InsidePressurePa, res.OutsidePressurePa)
	loss := func(hours float64) float64 {
		return gasloss.Loss(res.Permeability, res.EffectiveSurfaceAreaM2, dp, hours, res.ThicknessM)
	}
	payloadAt := func(hours float64) float64 {
		final := math.Max(0, res.GasVolumeM3-loss(hours))
		return res.NetLiftPerM3*final - res.ShellMassKg - res.ExtraMassKg
	}

	maxTime := 0.0
	low, high := 0.0, FlightSearchMaxHours
	for out.Iterations < FlightSearchIterations {
		out.Iterations++
		mid := (low + high) / 2
		if payloadAt(mid) >= minPayloadKg {
			maxTime, low = mid, mid
		} else {
			high = mid
		}
		if high-low < FlightSearchTolerance {
			break
		}
	}
	out.MaxTimeHours = Unbounded(maxTime)

	out.GasLossRateM3PerHour = loss(1)
	out.TimeToZeroPayloadHours = Unbounded(maxTime)
	if liftRate := res.NetLiftPerM3 * out.GasLossRateM3PerHour; liftRate > 0 {
		out.TimeToZeroPayloadHours = Unbounded(res.PayloadKg / liftRate)
	}
	out.Message = fmt.Sprintf("maximum flight time %.2f h (%.2f days)", maxTime, maxTime/24)
	return out, nil
}
