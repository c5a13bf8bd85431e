// Package analysis sweeps the balloon solver over altitude and material to
// answer design questions: best working height, the height profile, material
// comparison and flight endurance.
//
// Every sweep point is solved independently. A point that cannot be solved
// is reported with an explicit status instead of aborting the sweep; only
// problems with the request itself, which no altitude can fix, are returned
// as errors.
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/solver"
)

const (
	MaxHeightM   = 50000.0 // sweep ceiling
	GridStepM    = 100.0   // optimal-height grid
	ProfileStepM = 500.0   // default height-profile step

	// MaxProfilePoints caps one height profile: 0 to MaxHeightM at GridStepM.
	MaxProfilePoints = 501
)

// Status is the outcome of one sweep point.
type Status string

const (
	StatusOK     Status = "ok"
	StatusNoLift Status = "no_lift"
	StatusFailed Status = "failed"
)

func statusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, errs.ErrNoLift):
		return StatusNoLift
	}
	return StatusFailed
}

// Unbounded is a float that may be +Inf. JSON has no infinity, so infinite
// values are written as the strings "+Inf" and "-Inf".
type Unbounded float64

func (u Unbounded) IsInf() bool { return math.IsInf(float64(u), 0) }

func (u Unbounded) MarshalJSON() ([]byte, error) {
	f := float64(u)
	switch {
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	case math.IsNaN(f):
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (u *Unbounded) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"+Inf"`, `"Inf"`:
		*u = Unbounded(math.Inf(1))
		return nil
	case `"-Inf"`:
		*u = Unbounded(math.Inf(-1))
		return nil
	case "null":
		*u = Unbounded(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("unbounded value: %w", err)
	}
	*u = Unbounded(f)
	return nil
}

// atHeight returns the template moved to a total altitude.
func atHeight(tmpl solver.Request, h float64) solver.Request {
	tmpl.StartHeightM = 0
	tmpl.WorkHeightM = h
	return tmpl
}

// volumeTemplate turns a template into a volume-to-payload request. A
// payload-to-volume template is solved once at its own altitude and the
// resulting gas volume is held fixed for the sweep.
func volumeTemplate(tmpl solver.Request) (solver.Request, error) {
	if tmpl.Direction != solver.PayloadToVolume {
		tmpl.Direction = solver.VolumeToPayload
		// A no-lift template is still a valid sweep: other heights may lift.
		if _, err := solver.Solve(tmpl); err != nil && !errors.Is(err, errs.ErrNoLift) {
			return tmpl, err
		}
		return tmpl, nil
	}
	res, err := solver.Solve(tmpl)
	if err != nil {
		return tmpl, fmt.Errorf("resolving gas volume: %w", err)
	}
	tmpl.Direction = solver.VolumeToPayload
	tmpl.Target = res.GasVolumeM3
	return tmpl, nil
}
