package solver

// Assumption documents one modelling choice behind the solve.
type Assumption struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Model       string `json:"model"`
	Limitations string `json:"limitations"`
}

var assumptions = []Assumption{
	{
		Category:    "atmospheric",
		Name:        "ISA troposphere",
		Model:       "T(h) = Tg − 0.0065·h; P(h) = 101325·(T/Tg)^(g/(R·L)); ρ = P/(R·T)",
		Limitations: "Linear lapse everywhere. Realistic to about 11 km; the temperature reaches 0 K near 44 km and the model has no lift above that.",
	},
	{
		Category:    "gas",
		Name:        "Ideal lifting gas",
		Model:       "ρ = P/(R_specific·T) with R = 2077 (He) and 4124 (H2) J/(kg·K), at ambient pressure and temperature",
		Limitations: "No superheat or superpressure; the gas is at ambient temperature.",
	},
	{
		Category:    "thermal",
		Name:        "Open hot-air envelope",
		Model:       "ρ = 1.225·288.15/(Tin + 273.15), independent of altitude pressure",
		Limitations: "Burner heat balance and envelope heat loss are not modelled.",
	},
	{
		Category:    "geometric",
		Name:        "Altitude volume scaling",
		Model:       "V_alt = V_ground·(P0/P_alt)·(T_alt/T_ground)",
		Limitations: "The envelope is sized for the working altitude; stretch and partial fill are ignored.",
	},
	{
		Category:    "mechanical",
		Name:        "Thin-shell hoop stress",
		Model:       "σ = max(0, Pin − Pout)·r/(2t) with a shape characteristic radius",
		Limitations: "No finite-element analysis; seams, load patches and wrinkling are ignored.",
	},
	{
		Category:    "material",
		Name:        "Seam factor",
		Model:       "effective area = surface area × seam factor",
		Limitations: "Seam overlap is a flat multiplier on shell mass.",
	},
	{
		Category:    "gas",
		Name:        "Linear permeation",
		Model:       "loss = k·A·Δp·t/thickness with Δp floored at 100 Pa",
		Limitations: "Constant loss rate; the shrinking driving pressure and volume are ignored.",
	},
	{
		Category:    "ignored",
		Name:        "Dynamics",
		Model:       "static equilibrium only",
		Limitations: "No wind, trajectory, ascent rate or multi-body dynamics.",
	},
}

// Assumptions returns the modelling assumptions in display order.
func Assumptions() []Assumption {
	out := make([]Assumption, len(assumptions))
	copy(out, assumptions)
	return out
}
