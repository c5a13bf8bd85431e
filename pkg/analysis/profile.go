package analysis

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/ChicagoDave/aerostat/pkg/atmosphere"
	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/solver"
)

// Point is one altitude of a height profile. Points that do not lift or
// fail to solve keep their height and ambient conditions with lift, payload,
// mass and volume set to exactly zero.
type Point struct {
	HeightM float64       `json:"height_m"`
	Status  Status        `json:"status"`
	Error   string        `json:"error,omitempty"`
	Result  solver.Result `json:"result"`
}

// HeightProfile solves the template at every step from 0 to maxHeightM
// inclusive, in ascending order. A zero step uses ProfileStepM.
func HeightProfile(tmpl solver.Request, maxHeightM, stepM float64) ([]Point, error) {
	n, err := ProfileSize(maxHeightM, stepM)
	if err != nil {
		return nil, err
	}
	points := make([]Point, 0, n)
	err = WalkProfile(tmpl, maxHeightM, stepM, func(p Point) error {
		points = append(points, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// WalkProfile is HeightProfile delivering each point to fn as soon as it is
// solved. An error from fn stops the walk and is returned.
func WalkProfile(tmpl solver.Request, maxHeightM, stepM float64, fn func(Point) error) error {
	n, err := ProfileSize(maxHeightM, stepM)
	if err != nil {
		return err
	}
	if stepM == 0 {
		stepM = ProfileStepM
	}
	tmpl, err = volumeTemplate(tmpl)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := fn(ProfilePoint(tmpl, float64(i)*stepM)); err != nil {
			return err
		}
	}
	return nil
}

// ProfileSize is the number of points a profile from 0 to maxHeightM at
// stepM solves. The height must lie in [0, MaxHeightM] and the step must
// not produce more than MaxProfilePoints points.
func ProfileSize(maxHeightM, stepM float64) (int, error) {
	if stepM == 0 {
		stepM = ProfileStepM
	}
	if !(stepM > 0) || math.IsInf(stepM, 1) {
		return 0, errs.Invalid("analysis.step_m", "must be greater than 0, got %g", stepM)
	}
	if !(maxHeightM >= 0 && maxHeightM <= MaxHeightM) {
		return 0, errs.Invalid("analysis.max_height_m", "must be between 0 and %.0f m, got %g", MaxHeightM, maxHeightM)
	}
	n := math.Floor(maxHeightM/stepM+1e-9) + 1
	if n > MaxProfilePoints {
		return 0, errs.Invalid("analysis.step_m", "%g m steps up to %g m give %.0f points, more than %d", stepM, maxHeightM, n, MaxProfilePoints)
	}
	return int(n), nil
}

// ProfilePoint solves a single height-profile point.
func ProfilePoint(tmpl solver.Request, h float64) Point {
	res, err := solver.Solve(atHeight(tmpl, h))
	if err == nil {
		return Point{HeightM: h, Status: StatusOK, Result: res}
	}
	log.WithFields(log.Fields{
		"height_m": h,
		"reason":   err.Error(),
	}).Debug("height profile point zeroed")
	return Point{
		HeightM: h,
		Status:  statusOf(err),
		Error:   err.Error(),
		Result:  zeroResult(tmpl, h),
	}
}

// zeroResult keeps the ambient state where it is finite and leaves every
// mass, volume and lift figure at zero.
func zeroResult(tmpl solver.Request, h float64) solver.Result {
	air := atmosphere.At(h, tmpl.GroundTempC)
	res := solver.Result{
		GasType:    tmpl.Gas,
		Material:   tmpl.Material,
		Direction:  tmpl.Direction,
		HeightM:    h,
		ThicknessM: tmpl.ThicknessM,
		ShapeKind:  tmpl.ShapeKind(),
	}
	if air.Valid() {
		res.OutsideTempC = air.TemperatureC
		res.OutsidePressurePa = air.PressurePa
		res.AirDensityKgM3 = air.DensityKgM3
	}
	return res
}

// Series extracts one column of a profile for charting.
func Series(points []Point, value func(solver.Result) float64) (heights, values []float64) {
	heights = make([]float64, len(points))
	values = make([]float64, len(points))
	for i, p := range points {
		heights[i] = p.HeightM
		values[i] = value(p.Result)
	}
	return heights, values
}
