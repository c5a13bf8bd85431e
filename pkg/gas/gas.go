// Package gas models the density of the lifting gases.
package gas

import (
	"strings"

	"github.com/ChicagoDave/aerostat/pkg/atmosphere"
	"github.com/ChicagoDave/aerostat/pkg/errs"
)

// Type identifies a lifting gas.
type Type string

const (
	Helium   Type = "helium"
	Hydrogen Type = "hydrogen"
	HotAir   Type = "hot_air"
)

const (
	RHelium   = 2077.0 // J/(kg·K)
	RHydrogen = 4124.0 // J/(kg·K)

	// HotAirReferenceK is the temperature at which air has SeaLevelDensity.
	HotAirReferenceK = 288.15
)

var aliases = map[string]Type{
	"helium":   Helium,
	"he":       Helium,
	"hydrogen": Hydrogen,
	"h2":       Hydrogen,
	"hot_air":  HotAir,
	"hotair":   HotAir,
	"hot air":  HotAir,
	"hot-air":  HotAir,
	"air":      HotAir,
}

// Types returns every supported gas in display order.
func Types() []Type {
	return []Type{Helium, Hydrogen, HotAir}
}

// Parse resolves a user-facing gas name.
func Parse(name string) (Type, error) {
	if t, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return "", &errs.ReferenceError{Kind: "gas", Name: name}
}

// Lifting reports whether the gas is a sealed lifting gas subject to
// permeation loss.
func (t Type) Lifting() bool {
	return t == Helium || t == Hydrogen
}

// SpecificConstant returns the specific gas constant, or 0 for hot air.
func (t Type) SpecificConstant() float64 {
	switch t {
	case Helium:
		return RHelium
	case Hydrogen:
		return RHydrogen
	}
	return 0
}

// CheckHotAir fails when the envelope is not warmer than the ground air.
func CheckHotAir(insideC, groundC float64) error {
	if insideC <= groundC {
		return &errs.TemperatureError{InsideC: insideC, GroundC: groundC}
	}
	return nil
}

// Density returns the gas density in kg/m³. Lifting gases follow the ideal
// gas law at the ambient pressure and temperature. Hot air depends only on
// the inside temperature: the envelope is open at the bottom and sits at
// ambient pressure.
func Density(t Type, pressurePa, temperatureK, insideTempC float64) (float64, error) {
	switch t {
	case Helium, Hydrogen:
		return pressurePa / (t.SpecificConstant() * temperatureK), nil
	case HotAir:
		tk := insideTempC + atmosphere.KelvinOffset
		if tk <= 0 {
			return 0, errs.Invalid("inside_temp_c", "must be above absolute zero, got %v", insideTempC)
		}
		return atmosphere.SeaLevelDensity * HotAirReferenceK / tk, nil
	}
	return 0, &errs.ReferenceError{Kind: "gas", Name: string(t)}
}

// InsidePressure returns the pressure inside the envelope. Lifting gases
// equalize with ambient; hot air is reported through the ideal gas law at
// the inside temperature.
func InsidePressure(t Type, density, ambientPa, insideTempC float64) float64 {
	if t == HotAir {
		return density * atmosphere.RAir * (insideTempC + atmosphere.KelvinOffset)
	}
	return ambientPa
}
