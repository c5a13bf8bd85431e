package spec

// BalloonSpec is the top-level description of one balloon project.
type BalloonSpec struct {
	Name        string  `yaml:"name" json:"name"`
	Gas         string  `yaml:"gas" json:"gas"`
	Material    string  `yaml:"material" json:"material"`
	ThicknessUM float64 `yaml:"thickness_um" json:"thickness_um"`
	Mode        Mode    `yaml:"mode" json:"mode"`
	Target      float64 `yaml:"target" json:"target"`

	StartHeightM float64  `yaml:"start_height_m" json:"start_height_m"`
	WorkHeightM  float64  `yaml:"work_height_m" json:"work_height_m"`
	GroundTempC  *float64 `yaml:"ground_temp_c" json:"ground_temp_c,omitempty"`
	InsideTempC  *float64 `yaml:"inside_temp_c" json:"inside_temp_c,omitempty"`

	DurationH              float64 `yaml:"duration_h" json:"duration_h"`
	PermeabilityMultiplier float64 `yaml:"permeability_multiplier" json:"permeability_multiplier"`
	ExtraMassKg            float64 `yaml:"extra_mass_kg" json:"extra_mass_kg"`
	SeamFactor             float64 `yaml:"seam_factor" json:"seam_factor"`

	Shape    ShapeDef    `yaml:"shape" json:"shape"`
	Analysis AnalysisDef `yaml:"analysis" json:"analysis"`
	Pattern  PatternDef  `yaml:"pattern" json:"pattern"`
	Budget   BudgetDef   `yaml:"budget" json:"budget"`
}

// Mode selects what Target means.
type Mode string

const (
	ModeVolume  Mode = "volume"  // Target is the ground-level gas volume in m³
	ModePayload Mode = "payload" // Target is the payload in kg
)

// ShapeDef constrains the envelope. Zero dimensions are left free for the
// solver to scale.
type ShapeDef struct {
	Kind         string  `yaml:"kind" json:"kind"`
	Radius       float64 `yaml:"radius" json:"radius"`
	Length       float64 `yaml:"length" json:"length"`
	Width        float64 `yaml:"width" json:"width"`
	Height       float64 `yaml:"height" json:"height"`
	TopRadius    float64 `yaml:"top_radius" json:"top_radius"`
	BottomRadius float64 `yaml:"bottom_radius" json:"bottom_radius"`
}

// AnalysisDef tunes the altitude sweeps.
type AnalysisDef struct {
	MaxHeightM   float64 `yaml:"max_height_m" json:"max_height_m"`
	StepM        float64 `yaml:"step_m" json:"step_m"`
	MinPayloadKg float64 `yaml:"min_payload_kg" json:"min_payload_kg"`
	Optimizer    bool    `yaml:"optimizer" json:"optimizer"`
}

// PatternDef tunes cutting-pattern and fabric output.
type PatternDef struct {
	Gores           int     `yaml:"gores" json:"gores"`
	SeamAllowanceMM float64 `yaml:"seam_allowance_mm" json:"seam_allowance_mm"`
	FabricWidthMM   float64 `yaml:"fabric_width_mm" json:"fabric_width_mm"`
	GapMM           float64 `yaml:"gap_mm" json:"gap_mm"`
}

// Or fills zero fields from def.
func (p PatternDef) Or(def PatternDef) PatternDef {
	if p.Gores == 0 {
		p.Gores = def.Gores
	}
	if p.SeamAllowanceMM == 0 {
		p.SeamAllowanceMM = def.SeamAllowanceMM
	}
	if p.FabricWidthMM == 0 {
		p.FabricWidthMM = def.FabricWidthMM
	}
	if p.GapMM == 0 {
		p.GapMM = def.GapMM
	}
	return p
}

// Or fills zero fields from def. Optimizer is kept as given.
func (a AnalysisDef) Or(def AnalysisDef) AnalysisDef {
	if a.MaxHeightM == 0 {
		a.MaxHeightM = def.MaxHeightM
	}
	if a.StepM == 0 {
		a.StepM = def.StepM
	}
	if a.MinPayloadKg == 0 {
		a.MinPayloadKg = def.MinPayloadKg
	}
	return a
}

// BudgetDef holds the allowances added to the mass budget.
type BudgetDef struct {
	ReinforcementsKg    float64 `yaml:"reinforcements_kg" json:"reinforcements_kg"`
	SafetyMarginPercent float64 `yaml:"safety_margin_percent" json:"safety_margin_percent"`
}
