package analysis

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"

	"github.com/ChicagoDave/aerostat/pkg/solver"
)

// Strategy selects how OptimalHeight searches.
type Strategy string

const (
	// StrategyGrid evaluates every GridStepM metres.
	StrategyGrid Strategy = "grid"
	// StrategyOptimizer brackets on a coarse grid and refines with Nelder-Mead.
	StrategyOptimizer Strategy = "optimizer"
)

const (
	coarseStepM      = 1000.0
	maxEvaluations   = 1000
	failedObjective  = 1e10
	outOfBoundsSlope = 1e3 // penalty per metre outside [0, MaxHeightM]
)

// Optimum is the best working height found. Found is false when no height
// in range produces a positive payload with positive net lift.
type Optimum struct {
	Found       bool           `json:"found"`
	HeightM     int            `json:"height_m"`
	Strategy    Strategy       `json:"strategy"`
	Evaluations int            `json:"evaluations"`
	Result      *solver.Result `json:"result,omitempty"`
}

// OptimalHeight maximizes payload over altitude in [0, MaxHeightM].
func OptimalHeight(tmpl solver.Request, strategy Strategy) (Optimum, error) {
	tmpl, err := volumeTemplate(tmpl)
	if err != nil {
		return Optimum{}, err
	}
	if strategy == StrategyOptimizer {
		return optimizeHeight(tmpl), nil
	}
	return gridHeight(tmpl, GridStepM), nil
}

// gridHeight walks the range at a fixed step and keeps the best positive payload.
func gridHeight(tmpl solver.Request, step float64) Optimum {
	opt := Optimum{Strategy: StrategyGrid}
	best := 0.0
	for h := 0.0; h <= MaxHeightM; h += step {
		opt.Evaluations++
		res, err := solver.Solve(atHeight(tmpl, h))
		if err != nil {
			log.WithFields(log.Fields{"height_m": h, "reason": err.Error()}).Debug("optimal height point skipped")
			continue
		}
		if res.NetLiftPerM3 > 0 && res.PayloadKg > best {
			best = res.PayloadKg
			r := res
			opt.Found = true
			opt.HeightM = int(h)
			opt.Result = &r
		}
	}
	return opt
}

func optimizeHeight(tmpl solver.Request) Optimum {
	start := gridHeight(tmpl, coarseStepM)
	start.Strategy = StrategyOptimizer
	if !start.Found {
		return start
	}

	evals := 0
	objective := func(x []float64) float64 {
		evals++
		h := x[0]
		penalty := 0.0
		if h < 0 {
			penalty = -h * outOfBoundsSlope
			h = 0
		} else if h > MaxHeightM {
			penalty = (h - MaxHeightM) * outOfBoundsSlope
			h = MaxHeightM
		}
		res, err := solver.Solve(atHeight(tmpl, h))
		if err != nil || !(res.NetLiftPerM3 > 0) {
			return failedObjective
		}
		return -res.PayloadKg + penalty
	}

	problem := optimize.Problem{Func: objective}
	settings := &optimize.Settings{FuncEvaluations: maxEvaluations}
	method := &optimize.NelderMead{SimplexSize: coarseStepM / 2}
	result, err := optimize.Minimize(problem, []float64{float64(start.HeightM)}, settings, method)
	start.Evaluations += evals
	if err != nil || result == nil {
		log.WithError(err).Debug("optimizer failed, keeping grid bracket")
		return start
	}

	h := math.Trunc(math.Max(0, math.Min(MaxHeightM, result.X[0])))
	res, err := solver.Solve(atHeight(tmpl, h))
	if err != nil || res.PayloadKg <= start.Result.PayloadKg {
		return start
	}
	start.HeightM = int(h)
	start.Result = &res
	return start
}
