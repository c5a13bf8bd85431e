package solver

import "math"

// MassBudget splits the system mass into its parts.
type MassBudget struct {
	GasKg            float64 `json:"gas_kg"`
	EnvelopeKg       float64 `json:"envelope_kg"`
	SeamsKg          float64 `json:"seams_kg"`
	ReinforcementsKg float64 `json:"reinforcements_kg"`
	PayloadKg        float64 `json:"payload_kg"`
	SafetyMarginKg   float64 `json:"safety_margin_kg"`
	ExtraKg          float64 `json:"extra_kg"`
	StructuralKg     float64 `json:"structural_kg"`
	TotalKg          float64 `json:"total_kg"`
}

// LiftBudget splits the buoyancy into what the gas provides and what the
// structure and payload consume.
type LiftBudget struct {
	GrossKg     float64 `json:"gross_kg"` // mass of displaced air
	GasKg       float64 `json:"gas_kg"`
	NetKg       float64 `json:"net_kg"`
	UsedKg      float64 `json:"used_kg"`
	RemainingKg float64 `json:"remaining_kg"`
	Efficiency  float64 `json:"efficiency"`
}

// Budget pairs the mass and lift budgets of one result.
type Budget struct {
	Mass MassBudget `json:"mass"`
	Lift LiftBudget `json:"lift"`
}

// NewBudget derives the mass and lift budgets from a solve result. The
// payload term is the solved payload floored at zero; reinforcements and the
// safety margin are extra allowances the solve itself does not know about.
func NewBudget(r Result, reinforcementsKg, safetyMarginPercent float64) Budget {
	var m MassBudget
	m.GasKg = r.GasVolumeM3 * r.GasDensityKgM3
	m.EnvelopeKg = r.SurfaceAreaM2 * r.ThicknessM * r.MaterialDensityKgM3
	if r.SeamFactor > 1 {
		m.SeamsKg = m.EnvelopeKg * (r.SeamFactor - 1)
	}
	m.ReinforcementsKg = reinforcementsKg
	m.PayloadKg = math.Max(0, r.PayloadKg)
	m.ExtraKg = r.ExtraMassKg
	m.StructuralKg = m.EnvelopeKg + m.SeamsKg + m.ReinforcementsKg
	m.SafetyMarginKg = (m.GasKg + m.StructuralKg + m.PayloadKg + m.ExtraKg) * safetyMarginPercent / 100
	m.TotalKg = m.GasKg + m.StructuralKg + m.PayloadKg + m.SafetyMarginKg + m.ExtraKg

	var l LiftBudget
	l.GrossKg = r.AirDensityKgM3 * r.GasVolumeM3
	l.GasKg = m.GasKg
	l.NetKg = l.GrossKg - l.GasKg
	l.UsedKg = m.StructuralKg + m.PayloadKg + m.ExtraKg + m.SafetyMarginKg
	l.RemainingKg = l.NetKg - l.UsedKg
	if l.NetKg > 0 {
		l.Efficiency = l.UsedKg / l.NetKg
	}
	return Budget{Mass: m, Lift: l}
}
