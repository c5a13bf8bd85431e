package analysis

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/ChicagoDave/aerostat/pkg/material"
	"github.com/ChicagoDave/aerostat/pkg/solver"
)

// MaterialRow compares one catalog material at a fixed altitude. A material
// that fails to solve keeps its catalog density and stress limit; every
// solved figure and the safety factor are zero.
type MaterialRow struct {
	Material      string    `json:"material"`
	Status        Status    `json:"status"`
	Error         string    `json:"error,omitempty"`
	PayloadKg     float64   `json:"payload_kg"`
	ShellMassKg   float64   `json:"shell_mass_kg"`
	LiftKg        float64   `json:"lift_kg"`
	StressPa      float64   `json:"stress_pa"`
	StressLimitPa float64   `json:"stress_limit_pa"`
	SafetyFactor  Unbounded `json:"safety_factor"`
	DensityKgM3   float64   `json:"density_kg_m3"`
}

// MaterialComparison solves the template once per catalog material at the
// given total altitude. The result always has one row per catalog entry,
// in catalog order.
func MaterialComparison(tmpl solver.Request, heightM float64) ([]MaterialRow, error) {
	tmpl, err := volumeTemplate(tmpl)
	if err != nil {
		return nil, err
	}
	mats := material.All()
	rows := make([]MaterialRow, 0, len(mats))
	for _, m := range mats {
		req := atHeight(tmpl, heightM)
		req.Material = m.Name
		rows = append(rows, compareMaterial(req, m))
	}
	return rows, nil
}

func compareMaterial(req solver.Request, m material.Material) MaterialRow {
	row := MaterialRow{
		Material:      m.Name,
		StressLimitPa: m.StressLimit,
		DensityKgM3:   m.Density,
	}
	res, err := solver.Solve(req)
	if err != nil {
		log.WithFields(log.Fields{"material": m.Name, "reason": err.Error()}).Debug("material comparison row zeroed")
		row.Status = statusOf(err)
		row.Error = err.Error()
		return row
	}
	row.Status = StatusOK
	row.PayloadKg = res.PayloadKg
	row.ShellMassKg = res.ShellMassKg
	row.LiftKg = res.LiftKg
	row.StressPa = res.StressPa
	row.SafetyFactor = SafetyFactor(res.StressLimitPa, res.StressPa)
	return row
}

// SafetyFactor is limit/stress, or +Inf for an unstressed envelope.
func SafetyFactor(limitPa, stressPa float64) Unbounded {
	if stressPa <= 0 {
		return Unbounded(math.Inf(1))
	}
	return Unbounded(limitPa / stressPa)
}
