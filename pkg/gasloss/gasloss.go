// Package gasloss models permeation of lifting gas through the envelope film
// as a linear Fickian flux: the loss rate is constant over the flight.
package gasloss

import (
	"github.com/ChicagoDave/aerostat/pkg/gas"
	"github.com/ChicagoDave/aerostat/pkg/material"
)

// MinPressureDiff is the floor applied to the inside/outside pressure
// difference so a balanced envelope still reports a loss.
const MinPressureDiff = 100.0 // Pa

// Loss returns the permeated gas volume in m³ after durationH hours.
// Non-positive thickness or duration yields no loss.
func Loss(permeability, areaM2, deltaPPa, durationH, thicknessM float64) float64 {
	if thicknessM <= 0 || durationH <= 0 {
		return 0
	}
	return permeability * areaM2 * deltaPPa * (durationH * 3600) / thicknessM
}

// Permeability returns the effective permeability of the named material to
// the gas, scaled by the degradation multiplier. Unknown pairs return 0.
func Permeability(materialName string, g gas.Type, multiplier float64) float64 {
	return material.Permeability(materialName, g) * multiplier
}

// PressureDiff applies MinPressureDiff to |inside − outside|.
func PressureDiff(insidePa, outsidePa float64) float64 {
	d := insidePa - outsidePa
	if d < 0 {
		d = -d
	}
	if d < MinPressureDiff {
		return MinPressureDiff
	}
	return d
}
