package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/spec"
)

// Workbook sheet names, in order.
const (
	SheetResult    = "Result"
	SheetBudget    = "Budget"
	SheetProfile   = "Profile"
	SheetMaterials = "Materials"
	SheetCost      = "Cost"
)

// ImportColumns are the recognised batch-import headers.
var ImportColumns = []string{
	"gas", "material", "thickness_um", "mode", "target", "start_height_m",
	"work_height_m", "ground_temp_c", "inside_temp_c", "shape", "extra_mass_kg",
	"seam_factor",
}

// WriteWorkbook writes the bundle as an XLSX workbook with one sheet per
// section.
func WriteWorkbook(w io.Writer, b *Bundle) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetSheetName("Sheet1", SheetResult); err != nil {
		return err
	}
	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetResult, resultRows(b)},
		{SheetBudget, budgetRows(b)},
		{SheetProfile, profileRows(b.Profile)},
		{SheetMaterials, materialRows(b.Materials)},
		{SheetCost, costRows(b)},
	}
	for i, s := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("adding sheet %s: %w", s.name, err)
			}
		}
		if err := writeRows(f, s.name, s.rows); err != nil {
			return fmt.Errorf("writing sheet %s: %w", s.name, err)
		}
		if err := f.SetRowStyle(s.name, 1, 1, bold); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// cellNumber keeps infinities out of numeric cells.
func cellNumber(v float64) any {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case math.IsNaN(v):
		return ""
	}
	return v
}

func resultRows(b *Bundle) [][]any {
	r := b.Result
	return [][]any{
		{"Field", "Value", "Unit"},
		{"Project", b.Spec.Name, ""},
		{"Gas", string(r.GasType), ""},
		{"Material", r.Material, ""},
		{"Shape", string(r.ShapeKind), ""},
		{"Direction", string(r.Direction), ""},
		{"Height", r.HeightM, "m"},
		{"Thickness", r.ThicknessM * 1e6, "µm"},
		{"Gas volume", r.GasVolumeM3, "m³"},
		{"Envelope volume", r.RequiredVolumeM3, "m³"},
		{"Payload", r.PayloadKg, "kg"},
		{"Lift", r.LiftKg, "kg"},
		{"Shell mass", r.ShellMassKg, "kg"},
		{"Extra mass", r.ExtraMassKg, "kg"},
		{"Surface area", r.SurfaceAreaM2, "m²"},
		{"Characteristic radius", r.CharacteristicRadiusM, "m"},
		{"Stress", r.StressPa, "Pa"},
		{"Stress limit", r.StressLimitPa, "Pa"},
		{"Safety factor", cellNumber(float64(analysis.SafetyFactor(r.StressLimitPa, r.StressPa))), ""},
		{"Air density", r.AirDensityKgM3, "kg/m³"},
		{"Gas density", r.GasDensityKgM3, "kg/m³"},
		{"Net lift", r.NetLiftPerM3, "kg/m³"},
		{"Gas loss", r.GasLossM3, "m³"},
		{"Payload at end", r.PayloadAtEndKg, "kg"},
	}
}

func budgetRows(b *Bundle) [][]any {
	m, l := b.Budget.Mass, b.Budget.Lift
	return [][]any{
		{"Item", "kg"},
		{"Gas", m.GasKg},
		{"Envelope", m.EnvelopeKg},
		{"Seams", m.SeamsKg},
		{"Reinforcements", m.ReinforcementsKg},
		{"Structural", m.StructuralKg},
		{"Payload", m.PayloadKg},
		{"Extra", m.ExtraKg},
		{"Safety margin", m.SafetyMarginKg},
		{"Total mass", m.TotalKg},
		{},
		{"Gross lift", l.GrossKg},
		{"Net lift", l.NetKg},
		{"Used", l.UsedKg},
		{"Remaining", l.RemainingKg},
		{"Efficiency", l.Efficiency},
	}
}

func profileRows(points []analysis.Point) [][]any {
	rows := [][]any{{
		"height_m", "status", "payload_kg", "lift_kg", "shell_mass_kg",
		"gas_volume_m3", "envelope_volume_m3", "air_density_kg_m3",
		"outside_temp_c", "stress_pa",
	}}
	for _, p := range points {
		r := p.Result
		rows = append(rows, []any{
			p.HeightM, string(p.Status), r.PayloadKg, r.LiftKg, r.ShellMassKg,
			r.GasVolumeM3, r.RequiredVolumeM3, r.AirDensityKgM3,
			r.OutsideTempC, r.StressPa,
		})
	}
	return rows
}

func materialRows(mats []analysis.MaterialRow) [][]any {
	rows := [][]any{{
		"material", "status", "payload_kg", "shell_mass_kg", "lift_kg",
		"stress_pa", "stress_limit_pa", "safety_factor", "density_kg_m3",
	}}
	for _, m := range mats {
		rows = append(rows, []any{
			m.Material, string(m.Status), m.PayloadKg, m.ShellMassKg, m.LiftKg,
			m.StressPa, m.StressLimitPa, cellNumber(float64(m.SafetyFactor)), m.DensityKgM3,
		})
	}
	return rows
}

func costRows(b *Bundle) [][]any {
	if b.Cost == nil {
		return [][]any{{"Item", "Value"}}
	}
	c := b.Cost
	return [][]any{
		{"Item", "Value"},
		{"Material", c.Estimate.Material},
		{"Gas", c.Estimate.Gas},
		{"Total", c.Estimate.Total},
		{"Material price per kg", c.Summary.MaterialPricePerKg},
		{"Gas price per m³", c.Summary.GasPricePerM3},
		{"Cost per kg payload", c.Summary.CostPerKgPayload},
	}
}

// ImportRow is one batch-import line. Error is set, and Spec partial, when
// the row could not be parsed.
type ImportRow struct {
	Row   int              `json:"row"` // 1-based sheet row
	Spec  spec.BalloonSpec `json:"spec"`
	Error string           `json:"error,omitempty"`
}

// ReadRequests reads one balloon spec per row from the first sheet of an
// XLSX workbook. The first row names the columns; unknown headers are
// ignored and blank rows skipped.
func ReadRequests(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheet)
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, need := range []string{"gas", "material", "target"} {
		if _, ok := cols[need]; !ok {
			return nil, fmt.Errorf("missing column %q", need)
		}
	}

	var out []ImportRow
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		s, err := parseRow(rows[i], cols)
		row := ImportRow{Row: i + 1, Spec: s}
		if err != nil {
			row.Error = err.Error()
		}
		out = append(out, row)
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, cols map[string]int) (spec.BalloonSpec, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	var firstErr error
	num := func(name string) float64 {
		v := cell(name)
		if v == "" {
			return 0
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %q is not a number", name, v)
		}
		return x
	}

	s := spec.BalloonSpec{
		Gas:          cell("gas"),
		Material:     cell("material"),
		ThicknessUM:  num("thickness_um"),
		Mode:         spec.Mode(cell("mode")),
		Target:       num("target"),
		StartHeightM: num("start_height_m"),
		WorkHeightM:  num("work_height_m"),
		ExtraMassKg:  num("extra_mass_kg"),
		SeamFactor:   num("seam_factor"),
		Shape:        spec.ShapeDef{Kind: cell("shape")},
	}
	if cell("ground_temp_c") != "" {
		g := num("ground_temp_c")
		s.GroundTempC = &g
	}
	if cell("inside_temp_c") != "" {
		in := num("inside_temp_c")
		s.InsideTempC = &in
	}
	return s, firstErr
}
