// Package export renders a solved balloon project as spreadsheets, CSV, PDF
// and plain text, and reads batch requests back from XLSX.
package export

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/cost"
	"github.com/ChicagoDave/aerostat/pkg/pattern"
	"github.com/ChicagoDave/aerostat/pkg/solver"
	"github.com/ChicagoDave/aerostat/pkg/spec"
)

// Bundle is everything the exporters render for one project.
type Bundle struct {
	Spec        spec.BalloonSpec       `json:"spec"`
	Result      solver.Result          `json:"result"`
	Budget      solver.Budget          `json:"budget"`
	Cost        *cost.Report           `json:"cost"`
	Flight      *analysis.Endurance    `json:"flight,omitempty"`
	Profile     []analysis.Point       `json:"profile"`
	Materials   []analysis.MaterialRow `json:"materials"`
	Pattern     *pattern.Pattern       `json:"pattern,omitempty"`
	Fabric      *pattern.Fabric        `json:"fabric,omitempty"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// Collect solves the spec and runs every analysis the reports need. Only a
// failed working-point solve is an error; a failing flight-time or pattern
// step leaves that part empty.
func Collect(s *spec.BalloonSpec) (*Bundle, error) {
	req, err := s.Request()
	if err != nil {
		return nil, err
	}
	res, err := solver.Solve(req)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		Spec:        *s,
		Result:      res,
		Budget:      solver.NewBudget(res, s.Budget.ReinforcementsKg, s.Budget.SafetyMarginPercent),
		Cost:        cost.Estimate(res),
		GeneratedAt: time.Now().UTC(),
	}
	logger := log.WithField("project", s.Name)

	if flight, err := analysis.FlightTime(req, s.Analysis.MinPayloadKg); err != nil {
		logger.WithError(err).Warn("flight time skipped")
	} else {
		b.Flight = &flight
	}

	a := s.Analysis.Or(spec.AnalysisDef{MaxHeightM: analysis.MaxHeightM, StepM: analysis.ProfileStepM})
	if b.Profile, err = analysis.HeightProfile(req, a.MaxHeightM, a.StepM); err != nil {
		return nil, err
	}
	if b.Materials, err = analysis.MaterialComparison(req, res.HeightM); err != nil {
		return nil, err
	}

	pd := s.Pattern.Or(spec.PatternDef{
		Gores:         pattern.DefaultGores,
		FabricWidthMM: pattern.DefaultFabricWidthMM,
		GapMM:         pattern.DefaultGapMM,
	})
	p, err := pattern.Generate(res.Shape, pd.Gores, pd.SeamAllowanceMM)
	if err != nil {
		logger.WithError(err).Warn("cutting pattern skipped")
		return b, nil
	}
	fabric := pattern.EstimateFabric(p, pd.FabricWidthMM, pd.GapMM)
	b.Pattern, b.Fabric = p, &fabric
	return b, nil
}
