package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/pattern"
)

// WriteText writes a plain-text report: request summary, result, budget,
// cost and flight time.
func WriteText(w io.Writer, b *Bundle) error {
	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) { fmt.Fprintf(bw, format, args...) }
	heading := func(s string) {
		p("\n%s\n", s)
		for range s {
			p("-")
		}
		p("\n")
	}

	s, r := b.Spec, b.Result
	name := s.Name
	if name == "" {
		name = "(unnamed)"
	}
	p("Balloon Report: %s\n", name)
	p("Generated %s\n", b.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	heading("Request")
	p("  %-24s %s / %s, %.1f µm\n", "Gas / material:", r.GasType, r.Material, r.ThicknessM*1e6)
	p("  %-24s %s, target %.3f\n", "Mode:", r.Direction, s.Target)
	p("  %-24s %.0f m + %.0f m\n", "Start + working height:", s.StartHeightM, s.WorkHeightM)
	p("  %-24s %.1f °C\n", "Ground temperature:", s.GroundTemp())
	if s.DurationH > 0 {
		p("  %-24s %.2f h\n", "Flight duration:", s.DurationH)
	}

	heading("Result")
	p("  %-24s %s\n", "Shape:", r.ShapeKind)
	p("  %-24s %.4f m³\n", "Gas volume:", r.GasVolumeM3)
	p("  %-24s %.4f m³\n", "Envelope volume:", r.RequiredVolumeM3)
	p("  %-24s %.4f kg\n", "Payload:", r.PayloadKg)
	p("  %-24s %.4f kg\n", "Lift:", r.LiftKg)
	p("  %-24s %.4f kg\n", "Shell mass:", r.ShellMassKg)
	p("  %-24s %.4f m²\n", "Surface area:", r.SurfaceAreaM2)
	p("  %-24s %.0f Pa of %.0f Pa (safety %s)\n", "Stress:", r.StressPa, r.StressLimitPa,
		formatUnbounded(analysis.SafetyFactor(r.StressLimitPa, r.StressPa), "%.2f"))
	if r.GasLossM3 > 0 {
		p("  %-24s %.6f m³, payload at end %.4f kg\n", "Gas loss:", r.GasLossM3, r.PayloadAtEndKg)
	}

	m, l := b.Budget.Mass, b.Budget.Lift
	heading("Budget")
	p("  %-24s %10.4f kg\n", "Gas", m.GasKg)
	p("  %-24s %10.4f kg\n", "Envelope", m.EnvelopeKg)
	p("  %-24s %10.4f kg\n", "Seams", m.SeamsKg)
	p("  %-24s %10.4f kg\n", "Reinforcements", m.ReinforcementsKg)
	p("  %-24s %10.4f kg\n", "Payload", m.PayloadKg)
	p("  %-24s %10.4f kg\n", "Extra", m.ExtraKg)
	p("  %-24s %10.4f kg\n", "Safety margin", m.SafetyMarginKg)
	p("  %-24s %10.4f kg\n", "TOTAL", m.TotalKg)
	p("  %-24s %10.4f kg of %.4f kg net (%.1f %%)\n", "Lift used", l.UsedKg, l.NetKg, l.Efficiency*100)

	if c := b.Cost; c != nil {
		heading("Cost")
		p("  %-24s %10.2f\n", "Material", c.Estimate.Material)
		p("  %-24s %10.2f\n", "Gas", c.Estimate.Gas)
		p("  %-24s %10.2f\n", "TOTAL", c.Estimate.Total)
		p("  %-24s %10.2f\n", "Per kg payload", c.Summary.CostPerKgPayload)
	}

	if f := b.Flight; f != nil {
		heading("Flight time")
		p("  %-24s %s\n", "Maximum:", formatUnbounded(f.MaxTimeHours, "%.2f h"))
		p("  %-24s %s\n", "Until zero payload:", formatUnbounded(f.TimeToZeroPayloadHours, "%.2f h"))
		p("  %-24s %s\n", "", f.Message)
	}

	if pt := b.Pattern; pt != nil {
		heading("Cutting pattern")
		p("  %-24s %s, %d piece(s)\n", "Kind:", pt.Kind, pieceCount(pt))
		p("  %-24s %.3f m\n", "Seam length:", pattern.SeamLength(pt))
		if fb := b.Fabric; fb != nil {
			p("  %-24s %.2f m (waste %.1f %%)\n", "Fabric roll:", fb.RollLengthM, fb.WastePercent)
		}
	}
	return bw.Flush()
}
