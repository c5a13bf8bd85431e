// Package material holds the envelope material catalog and the gas
// permeability table. Both are fixed reference data.
package material

import (
	"strings"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/gas"
)

// Material is an envelope film.
type Material struct {
	Name        string  `json:"name" yaml:"name"`
	Density     float64 `json:"density_kg_m3" yaml:"density_kg_m3"`
	StressLimit float64 `json:"stress_limit_pa" yaml:"stress_limit_pa"`
}

// Catalog order is the display order used by comparisons and exports.
var order = []string{"HDPE", "TPU", "Mylar", "Nylon", "PET"}

var catalog = map[string]Material{
	"HDPE":  {Name: "HDPE", Density: 950, StressLimit: 20e6},
	"TPU":   {Name: "TPU", Density: 1200, StressLimit: 35e6},
	"Mylar": {Name: "Mylar", Density: 1400, StressLimit: 100e6},
	"Nylon": {Name: "Nylon", Density: 1150, StressLimit: 70e6},
	"PET":   {Name: "PET", Density: 1380, StressLimit: 80e6},
}

// Base permeability in m²/(s·Pa): volume flux per unit area, per unit
// pressure difference, per unit thickness.
var permeability = map[string]map[gas.Type]float64{
	"HDPE":  {gas.Helium: 3.0e-14, gas.Hydrogen: 4.5e-14},
	"TPU":   {gas.Helium: 2.0e-14, gas.Hydrogen: 3.0e-14},
	"Mylar": {gas.Helium: 1.0e-15, gas.Hydrogen: 1.5e-15},
	"Nylon": {gas.Helium: 5.0e-15, gas.Hydrogen: 7.5e-15},
	"PET":   {gas.Helium: 1.5e-15, gas.Hydrogen: 2.2e-15},
}

// Names returns the catalog names in display order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// All returns the catalog in display order.
func All() []Material {
	out := make([]Material, 0, len(order))
	for _, n := range order {
		out = append(out, catalog[n])
	}
	return out
}

// Lookup finds a material by name, ignoring case.
func Lookup(name string) (Material, error) {
	if m, ok := catalog[name]; ok {
		return m, nil
	}
	for _, n := range order {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return catalog[n], nil
		}
	}
	return Material{}, &errs.ReferenceError{Kind: "material", Name: name}
}

// Permeability returns the base permeability of the material to the gas.
// Hot air and unlisted pairs have none.
func Permeability(name string, g gas.Type) float64 {
	return permeability[name][g]
}
