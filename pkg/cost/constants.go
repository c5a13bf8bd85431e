package cost

import "github.com/ChicagoDave/aerostat/pkg/gas"

// Unit prices for the envelope estimate. These are fixed planning figures,
// not market quotes.
const (
	HDPEPerKg  = 25.0  // per kg of film
	TPUPerKg   = 80.0  // per kg of film
	MylarPerKg = 120.0 // per kg of film
	NylonPerKg = 60.0  // per kg of fabric
	PETPerKg   = 35.0  // per kg of film

	DefaultMaterialPerKg = 50.0 // materials without a listed price

	HeliumPerM3   = 150.0
	HydrogenPerM3 = 5.0
	HotAirPerM3   = 0.1 // heating

	// MinPayloadKg floors the denominator of CostPerKgPayload.
	MinPayloadKg = 0.001
)

var materialPrices = map[string]float64{
	"HDPE":  HDPEPerKg,
	"TPU":   TPUPerKg,
	"Mylar": MylarPerKg,
	"Nylon": NylonPerKg,
	"PET":   PETPerKg,
}

var gasPrices = map[gas.Type]float64{
	gas.Helium:   HeliumPerM3,
	gas.Hydrogen: HydrogenPerM3,
	gas.HotAir:   HotAirPerM3,
}

// MaterialPrice is the price per kg of an envelope material.
func MaterialPrice(name string) float64 {
	if p, ok := materialPrices[name]; ok {
		return p
	}
	return DefaultMaterialPerKg
}

// GasPrice is the price per m³ of a fill gas, zero when unknown.
func GasPrice(t gas.Type) float64 {
	return gasPrices[t]
}
