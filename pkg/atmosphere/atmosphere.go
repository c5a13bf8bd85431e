// Package atmosphere implements the troposphere branch of the International
// Standard Atmosphere with a linear temperature lapse from a given ground
// temperature.
package atmosphere

import "math"

const (
	LapseRate        = 0.0065   // K/m
	SeaLevelPressure = 101325.0 // Pa
	SeaLevelDensity  = 1.225    // kg/m³
	Gravity          = 9.81     // m/s²
	RAir             = 287.05   // J/(kg·K)
	KelvinOffset     = 273.15
)

// State is the ambient air at one altitude.
type State struct {
	TemperatureC float64 `json:"temperature_c"`
	DensityKgM3  float64 `json:"density_kg_m3"`
	PressurePa   float64 `json:"pressure_pa"`
}

// TemperatureK returns the temperature in kelvin.
func (s State) TemperatureK() float64 {
	return s.TemperatureC + KelvinOffset
}

// Valid reports whether the state is physically usable. Far above the
// tropopause the linear lapse drives the temperature below zero kelvin and
// the pressure becomes NaN.
func (s State) Valid() bool {
	return s.TemperatureK() > 0 && s.PressurePa > 0 && s.DensityKgM3 > 0 &&
		!math.IsNaN(s.PressurePa) && !math.IsInf(s.DensityKgM3, 0)
}

// At returns the ambient state at heightM above the launch reference, given
// the ground temperature. No range checks are made; callers validate heights.
func At(heightM, groundTempC float64) State {
	tSea := groundTempC + KelvinOffset
	t := tSea - LapseRate*heightM
	p := SeaLevelPressure * math.Pow(t/tSea, Gravity/(RAir*LapseRate))
	return State{
		TemperatureC: t - KelvinOffset,
		DensityKgM3:  p / (RAir * t),
		PressurePa:   p,
	}
}
