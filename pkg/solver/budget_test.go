package solver

import (
	"math"
	"testing"
)

func TestBudget(t *testing.T) {
	req := heliumTPU()
	req.SeamFactor = 1.2
	req.ExtraMassKg = 1
	res, err := Solve(req)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBudget(res, 0.5, 10)
	m := b.Mass

	if !approxRel(m.EnvelopeKg+m.SeamsKg, res.ShellMassKg, 1e-9) {
		t.Errorf("envelope + seams = %v, want shell mass %v", m.EnvelopeKg+m.SeamsKg, res.ShellMassKg)
	}
	if !approxRel(m.SeamsKg, m.EnvelopeKg*0.2, 1e-9) {
		t.Errorf("seams = %v, want 20%% of envelope", m.SeamsKg)
	}
	if m.StructuralKg != m.EnvelopeKg+m.SeamsKg+0.5 {
		t.Errorf("structural = %v", m.StructuralKg)
	}
	sum := m.GasKg + m.StructuralKg + m.PayloadKg + m.ExtraKg
	if !approxRel(m.SafetyMarginKg, sum*0.1, 1e-12) {
		t.Errorf("safety margin = %v, want %v", m.SafetyMarginKg, sum*0.1)
	}
	if !approxRel(m.TotalKg, sum+m.SafetyMarginKg, 1e-12) {
		t.Errorf("total = %v", m.TotalKg)
	}

	l := b.Lift
	if !approxRel(l.NetKg, res.LiftKg, 1e-9) {
		t.Errorf("net lift = %v, want solver lift %v", l.NetKg, res.LiftKg)
	}
	if !approxRel(l.RemainingKg, l.NetKg-l.UsedKg, 1e-12) {
		t.Errorf("remaining = %v", l.RemainingKg)
	}
	if l.Efficiency <= 0 || l.Efficiency > 1.5 {
		t.Errorf("efficiency = %v", l.Efficiency)
	}
}

func TestBudgetWithoutExtras(t *testing.T) {
	res, err := Solve(heliumTPU())
	if err != nil {
		t.Fatal(err)
	}
	b := NewBudget(res, 0, 0)
	if b.Mass.SeamsKg != 0 || b.Mass.SafetyMarginKg != 0 {
		t.Errorf("unexpected allowances: %+v", b.Mass)
	}
	// With nothing held back the full net lift is used.
	if math.Abs(b.Lift.RemainingKg) > 1e-9 {
		t.Errorf("remaining = %v, want 0", b.Lift.RemainingKg)
	}
	if math.Abs(b.Lift.Efficiency-1) > 1e-9 {
		t.Errorf("efficiency = %v, want 1", b.Lift.Efficiency)
	}
}

func TestAssumptions(t *testing.T) {
	a := Assumptions()
	if len(a) == 0 {
		t.Fatal("no assumptions")
	}
	a[0].Name = "changed"
	if Assumptions()[0].Name == "changed" {
		t.Error("Assumptions exposes internal slice")
	}
	for _, x := range Assumptions() {
		if x.Category == "" || x.Model == "" {
			t.Errorf("incomplete assumption %+v", x)
		}
	}
}
