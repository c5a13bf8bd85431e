package solver

import (
	"github.com/ChicagoDave/aerostat/pkg/gas"
	"github.com/ChicagoDave/aerostat/pkg/shape"
)

// Direction selects which quantity the solve starts from.
type Direction string

const (
	// VolumeToPayload takes the ground-level gas volume and reports payload.
	VolumeToPayload Direction = "volume_to_payload"
	// PayloadToVolume takes the payload and finds the gas volume that lifts it.
	PayloadToVolume Direction = "payload_to_volume"
)

// Request is a fully typed solve request. Zero SeamFactor and
// PermeabilityMultiplier mean 1; a zero Direction means VolumeToPayload and
// a nil Shape means an unconstrained sphere.
type Request struct {
	Gas                    gas.Type    `json:"gas_type"`
	Material               string      `json:"material"`
	ThicknessM             float64     `json:"thickness_m"`
	Target                 float64     `json:"target"` // m³ or kg, by Direction
	Direction              Direction   `json:"direction"`
	StartHeightM           float64     `json:"start_height_m"`
	WorkHeightM            float64     `json:"work_height_m"`
	GroundTempC            float64     `json:"ground_temp_c"`
	InsideTempC            float64     `json:"inside_temp_c"` // hot air only
	FlightDurationH        float64     `json:"flight_duration_h"`
	PermeabilityMultiplier float64     `json:"permeability_multiplier"`
	Shape                  shape.Shape `json:"-"`
	ExtraMassKg            float64     `json:"extra_mass_kg"`
	SeamFactor             float64     `json:"seam_factor"`
}

// HeightM is the total altitude of the working point.
func (r Request) HeightM() float64 {
	return r.StartHeightM + r.WorkHeightM
}

// ShapeKind reports the requested shape kind.
func (r Request) ShapeKind() shape.Kind {
	if r.Shape == nil {
		return shape.KindSphere
	}
	return r.Shape.Kind()
}

// Result is the outcome of one solve.
type Result struct {
	GasType    gas.Type  `json:"gas_type"`
	Material   string    `json:"material"`
	Direction  Direction `json:"direction"`
	HeightM    float64   `json:"height_m"`
	ThicknessM float64   `json:"thickness_m"`

	GasVolumeM3            float64 `json:"gas_volume_m3"`
	RequiredVolumeM3       float64 `json:"required_envelope_volume_m3"`
	PayloadKg              float64 `json:"payload_kg"`
	ShellMassKg            float64 `json:"shell_mass_kg"`
	LiftKg                 float64 `json:"lift_kg"`
	ExtraMassKg            float64 `json:"extra_mass_kg"`
	SeamFactor             float64 `json:"seam_factor"`
	CharacteristicRadiusM  float64 `json:"characteristic_radius_m"`
	SurfaceAreaM2          float64 `json:"surface_area_m2"`
	EffectiveSurfaceAreaM2 float64 `json:"effective_surface_area_m2"`

	StressPa            float64 `json:"stress_pa"`
	StressLimitPa       float64 `json:"stress_limit_pa"`
	MaterialDensityKgM3 float64 `json:"material_density_kg_m3"`

	OutsideTempC      float64 `json:"outside_temp_c"`
	OutsidePressurePa float64 `json:"outside_pressure_pa"`
	InsidePressurePa  float64 `json:"inside_pressure_pa"`
	AirDensityKgM3    float64 `json:"air_density_kg_m3"`
	GasDensityKgM3    float64 `json:"gas_density_kg_m3"`
	NetLiftPerM3      float64 `json:"net_lift_per_m3"`

	Permeability     float64 `json:"permeability"`
	GasLossM3        float64 `json:"gas_loss_m3"`
	FinalGasVolumeM3 float64 `json:"final_gas_volume_m3"`
	LiftAtEndKg      float64 `json:"lift_at_end_kg"`
	PayloadAtEndKg   float64 `json:"payload_at_end_kg"`

	ShapeKind shape.Kind  `json:"shape_kind"`
	Shape     shape.Shape `json:"resolved_shape_params"`
}
