package main

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/cost"
	"github.com/ChicagoDave/aerostat/pkg/pattern"
	"github.com/ChicagoDave/aerostat/pkg/scene"
	"github.com/ChicagoDave/aerostat/pkg/solver"
	"github.com/ChicagoDave/aerostat/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printFinding(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printFinding(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printFinding(f validation.Result) {
	fmt.Printf("  [%s] %s\n", f.Level, f.Message)
	if f.Path != "" {
		fmt.Printf("    -> %s = %v\n", f.Path, f.ActualValue)
	}
	if f.Expected != "" {
		fmt.Printf("    expected: %s\n", f.Expected)
	}
	for _, s := range f.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

func printCostReport(r *cost.Report) {
	fmt.Println("Cost Estimate")
	fmt.Println("=============")
	fmt.Println()

	fmt.Printf("%-12s %14s\n", "Category", "Cost")
	fmt.Printf("%-12s %14s\n", "------------", "--------------")
	fmt.Printf("%-12s %14s\n", "Material", formatMoney(r.Estimate.Material))
	fmt.Printf("%-12s %14s\n", "Gas", formatMoney(r.Estimate.Gas))
	fmt.Printf("%-12s %14s\n", "TOTAL", formatMoney(r.Estimate.Total))

	fmt.Println()
	fmt.Println("Summary")
	fmt.Println("-------")
	fmt.Printf("  Material price:         $%.2f/kg\n", r.Summary.MaterialPricePerKg)
	fmt.Printf("  Gas price:              $%.2f/m³\n", r.Summary.GasPricePerM3)
	fmt.Printf("  Shell mass:             %.3f kg\n", r.Summary.ShellMassKg)
	fmt.Printf("  Gas volume:             %.3f m³\n", r.Summary.GasVolumeM3)
	fmt.Printf("  Cost per kg payload:    $%s\n", formatMoney(r.Summary.CostPerKgPayload))
}

func printOptimum(o analysis.Optimum) {
	if !o.Found || o.Result == nil {
		fmt.Printf("No height between 0 and %.0f m carries a payload (%d evaluations, %s).\n",
			analysis.MaxHeightM, o.Evaluations, o.Strategy)
		return
	}
	fmt.Printf("Optimal working height: %d m (%s, %d evaluations)\n", o.HeightM, o.Strategy, o.Evaluations)
	printResultLine(*o.Result)
}

func printResultLine(r solver.Result) {
	fmt.Printf("  payload %.3f kg, lift %.3f kg, shell %.3f kg, gas %.3f m³\n",
		r.PayloadKg, r.LiftKg, r.ShellMassKg, r.GasVolumeM3)
}

func printProfile(points []analysis.Point) {
	fmt.Printf("%10s %-8s %12s %12s %12s %10s\n", "Height m", "Status", "Payload kg", "Lift kg", "Volume m³", "Air kg/m³")
	for _, p := range points {
		r := p.Result
		fmt.Printf("%10.0f %-8s %12.3f %12.3f %12.3f %10.4f\n",
			p.HeightM, p.Status, r.PayloadKg, r.LiftKg, r.RequiredVolumeM3, r.AirDensityKgM3)
	}
}

func printMaterials(heightM float64, rows []analysis.MaterialRow) {
	fmt.Printf("Materials at %.0f m\n\n", heightM)
	fmt.Printf("%-8s %-8s %12s %12s %12s %10s\n", "Material", "Status", "Payload kg", "Shell kg", "Stress kPa", "Safety")
	for _, m := range rows {
		fmt.Printf("%-8s %-8s %12.3f %12.3f %12.2f %10s\n",
			m.Material, m.Status, m.PayloadKg, m.ShellMassKg, m.StressPa/1000, formatUnbounded(m.SafetyFactor, "%.1f"))
	}
}

func printEndurance(e analysis.Endurance) {
	fmt.Println("Flight time")
	fmt.Println("-----------")
	fmt.Printf("  Initial payload:        %.3f kg\n", e.InitialPayloadKg)
	fmt.Printf("  Minimum payload:        %.3f kg\n", e.MinPayloadKg)
	fmt.Printf("  Gas loss:               %.6f m³/h\n", e.GasLossRateM3PerHour)
	fmt.Printf("  Max flight time:        %s h\n", formatUnbounded(e.MaxTimeHours, "%.2f"))
	fmt.Printf("  Time to zero payload:   %s h\n", formatUnbounded(e.TimeToZeroPayloadHours, "%.2f"))
	if e.Message != "" {
		fmt.Printf("  %s\n", e.Message)
	}
}

func printPattern(p *pattern.Pattern, f pattern.Fabric) {
	fmt.Printf("Cutting pattern: %s, %s\n", p.ShapeKind, p.Kind)
	if p.Kind == pattern.KindGores {
		fmt.Printf("  %d gores, meridian %.3f m, max width %.3f m\n", p.NumGores, p.MeridianLengthM, 2*p.MaxHalfWidthM)
	}
	fmt.Printf("  Seam allowance:         %.0f mm\n", p.SeamAllowanceMM)
	fmt.Printf("  Envelope area:          %.3f m²\n", p.TotalAreaM2)
	fmt.Printf("  Seam length:            %.3f m\n", pattern.SeamLength(p))
	fmt.Println()
	fmt.Printf("%-16s %6s %10s %10s %10s\n", "Piece", "Count", "Width m", "Length m", "Cut line m")
	for _, piece := range p.Pieces {
		box := piece.Cut.BoundingBox()
		fmt.Printf("%-16s %6d %10.3f %10.3f %10.3f\n", piece.Name, piece.Count, box.Width(), box.Height(), piece.CutLengthM)
	}
	fmt.Println()
	fmt.Printf("Fabric (%.0f mm roll): %.2f m long, %d rows, %.1f%% waste\n",
		f.FabricWidthMM, f.RollLengthM, f.Rows, f.WastePercent)
	if !f.Fits {
		fmt.Println("  warning: some pieces are wider than the roll")
	}
}

func printMesh(m *scene.Mesh) {
	md := m.Metadata
	size := m.Bounds.Size()
	fmt.Printf("Mesh: %s, %d×%d divisions\n", md.ShapeKind, md.NumTheta, md.NumZ)
	fmt.Printf("  Vertices / faces:       %d / %d\n", len(m.Vertices), len(m.Faces))
	fmt.Printf("  Bounds:                 %.3f × %.3f × %.3f m\n", size.X, size.Y, size.Z)
	fmt.Printf("  Volume:                 %.3f m³ (mesh %.3f m³)\n", md.VolumeM3, m.Volume())
	fmt.Printf("  Surface area:           %.3f m²\n", md.SurfaceAreaM2)
}

func printAssumptions() {
	category := ""
	for _, a := range solver.Assumptions() {
		if a.Category != category {
			category = a.Category
			fmt.Printf("\n%s\n", category)
		}
		fmt.Printf("  %s\n    %s\n    limits: %s\n", a.Name, a.Model, a.Limitations)
	}
}

func formatUnbounded(v analysis.Unbounded, format string) string {
	if math.IsInf(float64(v), 1) {
		return "unlimited"
	}
	return fmt.Sprintf(format, float64(v))
}

func formatMoney(v float64) string {
	if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	}
	if v >= 10_000 {
		return fmt.Sprintf("%.1fK", v/1_000)
	}
	return fmt.Sprintf("%.2f", v)
}
