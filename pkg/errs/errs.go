// Package errs defines the error kinds returned by the balloon engine.
//
// Callers test for a kind with errors.Is against one of the sentinels and
// recover details with errors.As against the typed errors.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference marks an unknown gas, material or shape name.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidTemperature marks a hot-air envelope no warmer than ambient.
	ErrInvalidTemperature = errors.New("invalid temperature")
	// ErrNoLift marks a gas that is not lighter than the surrounding air.
	ErrNoLift = errors.New("no lift")
	// ErrValidation marks a request that is out of range or inconsistent.
	ErrValidation = errors.New("validation failed")
)

// ReferenceError reports a name missing from a reference table.
type ReferenceError struct {
	Kind string // "gas", "material", "shape"
	Name string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

func (e *ReferenceError) Unwrap() error { return ErrInvalidReference }

// TemperatureError reports a hot-air inside temperature that cannot produce buoyancy.
type TemperatureError struct {
	InsideC float64
	GroundC float64
}

func (e *TemperatureError) Error() string {
	return fmt.Sprintf("inside temperature %.1f°C must exceed ground temperature %.1f°C", e.InsideC, e.GroundC)
}

func (e *TemperatureError) Unwrap() error { return ErrInvalidTemperature }

// NoLiftError reports a non-positive net lift per cubic metre at an altitude.
type NoLiftError struct {
	HeightM      float64
	NetLiftPerM3 float64
}

func (e *NoLiftError) Error() string {
	return fmt.Sprintf("no lift at %.0f m (net lift %.4f kg/m³)", e.HeightM, e.NetLiftPerM3)
}

func (e *NoLiftError) Unwrap() error { return ErrNoLift }

// ValidationError reports a single invalid request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid is shorthand for a *ValidationError with a formatted reason.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
