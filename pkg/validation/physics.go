package validation

import (
	"errors"
	"fmt"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/gas"
	"github.com/ChicagoDave/aerostat/pkg/solver"
	"github.com/ChicagoDave/aerostat/pkg/spec"
)

const (
	// TroposphereTopM is where the linear-lapse atmosphere stops being realistic.
	TroposphereTopM = 11000.0
	// MinSafetyFactor is the stress safety factor below which a warning is raised.
	MinSafetyFactor = 2.0
)

// ValidatePhysics solves the spec at its working point and reports
// inconsistencies the schema check cannot see.
func ValidatePhysics(s *spec.BalloonSpec) *Report {
	r := NewReport()

	req, err := s.Request()
	if err != nil {
		r.AddError(errorResult(err))
		return r
	}

	if req.Gas == gas.HotAir {
		if err := gas.CheckHotAir(req.InsideTempC, req.GroundTempC); err != nil {
			r.AddError(Result{
				Level:       LevelPhysics,
				Message:     err.Error(),
				Path:        "inside_temp_c",
				ActualValue: req.InsideTempC,
				Expected:    fmt.Sprintf("> %.1f", req.GroundTempC),
				Suggestions: []string{"Raise inside_temp_c above the ground temperature"},
			})
			return r
		}
	}

	if h := req.HeightM(); h > TroposphereTopM {
		r.AddWarning(Result{
			Level:       LevelPhysics,
			Message:     fmt.Sprintf("working altitude %.0f m is above the troposphere model (%.0f m)", h, TroposphereTopM),
			Path:        "work_height_m",
			ActualValue: h,
			Expected:    fmt.Sprintf("<= %.0f", TroposphereTopM),
		})
	}

	res, err := solver.Solve(req)
	if err != nil {
		r.AddError(errorResult(err))
		return r
	}
	checkResult(res, r)
	return r
}

func checkResult(res solver.Result, r *Report) {
	if res.StressPa > 0 {
		if sf := res.StressLimitPa / res.StressPa; sf < MinSafetyFactor {
			r.AddWarning(Result{
				Level:       LevelPhysics,
				Message:     fmt.Sprintf("stress safety factor %.2f is below %.0f", sf, MinSafetyFactor),
				Path:        "thickness_um",
				ActualValue: sf,
				Expected:    fmt.Sprintf(">= %.0f", MinSafetyFactor),
				Suggestions: []string{"Use a thicker film", "Choose a stronger material"},
			})
		}
	}
	if res.PayloadKg <= 0 {
		r.AddWarning(Result{
			Level:       LevelPhysics,
			Message:     fmt.Sprintf("envelope and extra mass exceed the lift (payload %.3f kg)", res.PayloadKg),
			Path:        "target",
			ActualValue: res.PayloadKg,
			Expected:    "> 0",
			Suggestions: []string{"Increase the gas volume", "Use a thinner or lighter film"},
		})
	} else if res.PayloadAtEndKg <= 0 {
		r.AddWarning(Result{
			Level:       LevelPhysics,
			Message:     fmt.Sprintf("gas loss leaves no payload after the flight (%.3f kg)", res.PayloadAtEndKg),
			Path:        "duration_h",
			ActualValue: res.PayloadAtEndKg,
			Expected:    "> 0",
		})
	}
	r.AddInfo(Result{
		Level:   LevelPhysics,
		Message: fmt.Sprintf("payload %.3f kg with %.3f m³ of gas at %.0f m", res.PayloadKg, res.GasVolumeM3, res.HeightM),
		Path:    "target",
	})
}

// errorResult maps an engine error onto the field it concerns.
func errorResult(err error) Result {
	out := Result{Level: LevelPhysics, Message: err.Error()}
	var ref *errs.ReferenceError
	var val *errs.ValidationError
	var temp *errs.TemperatureError
	var noLift *errs.NoLiftError
	switch {
	case errors.As(err, &ref):
		out.Level = LevelSchema
		out.Path = ref.Kind
		if ref.Kind == "shape" {
			out.Path = "shape.kind"
		}
		out.ActualValue = ref.Name
	case errors.As(err, &val):
		out.Path = val.Field
	case errors.As(err, &temp):
		out.Path = "inside_temp_c"
		out.ActualValue = temp.InsideC
	case errors.As(err, &noLift):
		out.Path = "work_height_m"
		out.ActualValue = noLift.HeightM
		out.Expected = "positive net lift"
		out.Suggestions = []string{"Lower the working altitude"}
	}
	return out
}
