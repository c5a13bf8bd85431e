package validation

import (
	"fmt"
	"strings"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/gas"
	"github.com/ChicagoDave/aerostat/pkg/material"
	"github.com/ChicagoDave/aerostat/pkg/shape"
	"github.com/ChicagoDave/aerostat/pkg/spec"
)

// Accepted input ranges.
const (
	MinThicknessUM   = 1.0
	MaxThicknessUM   = 1000.0
	MaxTotalHeightM  = 50000.0
	MinGroundTempC   = -50.0
	MaxGroundTempC   = 50.0
	MinInsideTempC   = 0.0
	MaxInsideTempC   = 500.0
	MinDurationH     = 0.01
	MaxDurationH     = 10000.0
	MinSeamFactor    = 1.0
	MaxSeamFactor    = 2.0
	MinPatternGores  = 4
	MaxPatternGores  = 32
	MaxSafetyPercent = 100.0
)

// ValidateSchema performs schema validation on a parsed BalloonSpec.
// It checks ranges and references before any computation.
func ValidateSchema(s *spec.BalloonSpec) *Report {
	r := NewReport()

	validateReferences(s, r)
	validateEnvelope(s, r)
	validateHeights(s, r)
	validateTemperatures(s, r)
	validateFlight(s, r)
	validateShape(s, r)
	validateExtras(s, r)
	validateAnalysis(s, r)

	return r
}

func validateReferences(s *spec.BalloonSpec, r *Report) {
	if _, err := gas.Parse(s.Gas); err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     err.Error(),
			Path:        "gas",
			ActualValue: s.Gas,
			Expected:    "one of helium, hydrogen, hot_air",
		})
	}
	if _, err := material.Lookup(s.Material); err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     err.Error(),
			Path:        "material",
			ActualValue: s.Material,
			Expected:    "one of " + strings.Join(material.Names(), ", "),
		})
	}
	if _, err := shape.ParseKind(s.Shape.Kind); err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     err.Error(),
			Path:        "shape.kind",
			ActualValue: s.Shape.Kind,
			Expected:    "one of sphere, pillow, pear, cigar",
		})
	}
	if _, err := s.Direction(); err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     err.Error(),
			Path:        "mode",
			ActualValue: s.Mode,
			Expected:    "volume or payload",
		})
	}
}

func validateEnvelope(s *spec.BalloonSpec, r *Report) {
	if s.ThicknessUM < MinThicknessUM || s.ThicknessUM > MaxThicknessUM {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("thickness_um must be between %.0f and %.0f", MinThicknessUM, MaxThicknessUM),
			Path:        "thickness_um",
			ActualValue: s.ThicknessUM,
			Expected:    fmt.Sprintf("%.0f-%.0f", MinThicknessUM, MaxThicknessUM),
		})
	}
	if !(s.Target > 0) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "target must be greater than 0",
			Path:        "target",
			ActualValue: s.Target,
			Expected:    "> 0",
		})
	}
	// Zero seam factor means the default of 1.
	if s.SeamFactor != 0 && (s.SeamFactor < MinSeamFactor || s.SeamFactor > MaxSeamFactor) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("seam_factor must be between %.0f and %.0f", MinSeamFactor, MaxSeamFactor),
			Path:        "seam_factor",
			ActualValue: s.SeamFactor,
			Expected:    "1-2",
		})
	}
	if s.ExtraMassKg < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "extra_mass_kg must not be negative",
			Path:        "extra_mass_kg",
			ActualValue: s.ExtraMassKg,
			Expected:    ">= 0",
		})
	}
}

func validateHeights(s *spec.BalloonSpec, r *Report) {
	for path, v := range map[string]float64{
		"start_height_m": s.StartHeightM,
		"work_height_m":  s.WorkHeightM,
	} {
		if v < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must not be negative", path),
				Path:        path,
				ActualValue: v,
				Expected:    ">= 0",
			})
		}
	}
	if total := s.TotalHeight(); total > MaxTotalHeightM {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("start_height_m + work_height_m must not exceed %.0f m (got %.0f)", MaxTotalHeightM, total),
			Path:        "work_height_m",
			ActualValue: total,
			Expected:    fmt.Sprintf("<= %.0f", MaxTotalHeightM),
		})
	}
}

func validateTemperatures(s *spec.BalloonSpec, r *Report) {
	if g := s.GroundTemp(); g < MinGroundTempC || g > MaxGroundTempC {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("ground_temp_c must be between %.0f and %.0f", MinGroundTempC, MaxGroundTempC),
			Path:        "ground_temp_c",
			ActualValue: g,
			Expected:    "-50-50",
		})
	}
	if t, err := gas.Parse(s.Gas); err != nil || t != gas.HotAir {
		return
	}
	if in := s.InsideTemp(); in < MinInsideTempC || in > MaxInsideTempC {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("inside_temp_c must be between %.0f and %.0f", MinInsideTempC, MaxInsideTempC),
			Path:        "inside_temp_c",
			ActualValue: in,
			Expected:    "0-500",
		})
	}
}

func validateFlight(s *spec.BalloonSpec, r *Report) {
	if d := s.DurationH; d != 0 && (d < MinDurationH || d > MaxDurationH) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("duration_h must be 0 or between %.2f and %.0f", MinDurationH, MaxDurationH),
			Path:        "duration_h",
			ActualValue: d,
			Expected:    "0 or 0.01-10000",
		})
	}
	if s.PermeabilityMultiplier < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "permeability_multiplier must be greater than 0",
			Path:        "permeability_multiplier",
			ActualValue: s.PermeabilityMultiplier,
			Expected:    "> 0",
			Suggestions: []string{"Leave it unset for the catalog permeability"},
		})
	}
}

func validateShape(s *spec.BalloonSpec, r *Report) {
	d := s.Shape
	for path, v := range map[string]float64{
		"shape.radius":        d.Radius,
		"shape.length":        d.Length,
		"shape.width":         d.Width,
		"shape.height":        d.Height,
		"shape.top_radius":    d.TopRadius,
		"shape.bottom_radius": d.BottomRadius,
	} {
		if v < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must not be negative", path),
				Path:        path,
				ActualValue: v,
				Expected:    ">= 0",
			})
		}
	}

	k, err := shape.ParseKind(d.Kind)
	if err != nil || k != shape.KindCigar {
		return
	}
	if d.Radius > 0 && d.Length > 0 && d.Radius > d.Length/2 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("cigar radius (%.2f m) must not exceed half its length (%.2f m)", d.Radius, d.Length/2),
			Path:        "shape.radius",
			ActualValue: d.Radius,
			Expected:    fmt.Sprintf("<= %.2f", d.Length/2),
			Suggestions: []string{"Use a sphere for a round envelope"},
		})
	}
}

func validateExtras(s *spec.BalloonSpec, r *Report) {
	if g := s.Pattern.Gores; g != 0 && (g < MinPatternGores || g > MaxPatternGores) {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("pattern.gores %d is outside %d-%d and will be clamped", g, MinPatternGores, MaxPatternGores),
			Path:        "pattern.gores",
			ActualValue: g,
			Expected:    "4-32",
		})
	}
	if s.Pattern.SeamAllowanceMM < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "pattern.seam_allowance_mm must not be negative",
			Path:        "pattern.seam_allowance_mm",
			ActualValue: s.Pattern.SeamAllowanceMM,
			Expected:    ">= 0",
		})
	}
	if s.Budget.ReinforcementsKg < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "budget.reinforcements_kg must not be negative",
			Path:        "budget.reinforcements_kg",
			ActualValue: s.Budget.ReinforcementsKg,
			Expected:    ">= 0",
		})
	}
	if p := s.Budget.SafetyMarginPercent; p < 0 || p > MaxSafetyPercent {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "budget.safety_margin_percent must be between 0 and 100",
			Path:        "budget.safety_margin_percent",
			ActualValue: p,
			Expected:    "0-100",
		})
	}
}

// validateAnalysis bounds the height sweep. Zero values are unset and take
// the configured defaults.
func validateAnalysis(s *spec.BalloonSpec, r *Report) {
	a := s.Analysis
	if !(a.MaxHeightM >= 0 && a.MaxHeightM <= analysis.MaxHeightM) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("analysis.max_height_m must be between 0 and %.0f", analysis.MaxHeightM),
			Path:        "analysis.max_height_m",
			ActualValue: a.MaxHeightM,
			Expected:    fmt.Sprintf("0-%.0f", analysis.MaxHeightM),
		})
		return
	}
	if !(a.StepM >= 0) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "analysis.step_m must be greater than 0",
			Path:        "analysis.step_m",
			ActualValue: a.StepM,
			Expected:    "> 0",
		})
		return
	}
	if _, err := analysis.ProfileSize(a.MaxHeightM, a.StepM); err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     err.Error(),
			Path:        "analysis.step_m",
			ActualValue: a.StepM,
			Expected:    fmt.Sprintf("at most %d profile points", analysis.MaxProfilePoints),
			Suggestions: []string{fmt.Sprintf("Use a step of at least %.0f m", a.MaxHeightM/(analysis.MaxProfilePoints-1))},
		})
	}
	if a.MinPayloadKg < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "analysis.min_payload_kg must not be negative",
			Path:        "analysis.min_payload_kg",
			ActualValue: a.MinPayloadKg,
			Expected:    ">= 0",
		})
	}
}
