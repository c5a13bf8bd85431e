package cost

import (
	"errors"
	"math"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/solver"
)

// Breakdown itemizes costs by category.
type Breakdown struct {
	Material float64 `json:"material"`
	Gas      float64 `json:"gas"`
	Total    float64 `json:"total"`
}

// Report is the complete cost output for one solved balloon.
type Report struct {
	Estimate Breakdown `json:"estimate"`

	Summary struct {
		MaterialPricePerKg float64 `json:"material_price_per_kg"`
		GasPricePerM3      float64 `json:"gas_price_per_m3"`
		ShellMassKg        float64 `json:"shell_mass_kg"`
		GasVolumeM3        float64 `json:"gas_volume_m3"`
		CostPerKgPayload   float64 `json:"cost_per_kg_payload"`
	} `json:"summary"`
}

// Estimate prices the shell and the gas fill of a solved balloon. A result
// without positive net lift is priced at zero.
func Estimate(res solver.Result) *Report {
	report := &Report{}
	report.Summary.MaterialPricePerKg = MaterialPrice(res.Material)
	report.Summary.GasPricePerM3 = GasPrice(res.GasType)
	report.Summary.GasVolumeM3 = res.GasVolumeM3
	if !(res.NetLiftPerM3 > 0) {
		return report
	}

	material := res.ShellMassKg * report.Summary.MaterialPricePerKg
	gasCost := res.GasVolumeM3 * report.Summary.GasPricePerM3
	report.Estimate = makeBreakdown(material, gasCost)

	report.Summary.ShellMassKg = res.ShellMassKg
	report.Summary.CostPerKgPayload = report.Estimate.Total / math.Max(MinPayloadKg, res.LiftKg-res.ShellMassKg)
	return report
}

// Analyze solves req and prices the result. A request that produces no lift
// yields a zero report carrying the requested gas volume; any other solve
// failure is returned.
func Analyze(req solver.Request) (*Report, error) {
	res, err := solver.Solve(req)
	if errors.Is(err, errs.ErrNoLift) {
		r := &Report{}
		r.Summary.MaterialPricePerKg = MaterialPrice(req.Material)
		r.Summary.GasPricePerM3 = GasPrice(req.Gas)
		if req.Direction != solver.PayloadToVolume {
			r.Summary.GasVolumeM3 = req.Target
		}
		return r, nil
	}
	if err != nil {
		return nil, err
	}
	return Estimate(res), nil
}

func makeBreakdown(material, gas float64) Breakdown {
	return Breakdown{
		Material: material,
		Gas:      gas,
		Total:    material + gas,
	}
}
