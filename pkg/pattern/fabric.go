package pattern

import "math"

const (
	DefaultFabricWidthMM = 1500.0
	DefaultGapMM         = 10.0
)

// Fabric estimates roll usage for cutting every piece of a pattern. Pieces
// are placed in rows across the roll by their cut bounding boxes.
type Fabric struct {
	FabricWidthMM float64 `json:"fabric_width_mm"`
	GapMM         float64 `json:"gap_mm"`
	RollLengthMM  float64 `json:"roll_length_mm"`
	RollLengthM   float64 `json:"roll_length_m"`
	FabricAreaM2  float64 `json:"fabric_area_m2"`
	PanelAreaM2   float64 `json:"panel_area_m2"`
	WasteM2       float64 `json:"waste_m2"`
	WastePercent  float64 `json:"waste_percent"`
	PanelsPerRow  int     `json:"panels_per_row"`
	Rows          int     `json:"rows"`
	NumPanels     int     `json:"num_panels"`
	Fits          bool    `json:"fits"` // every piece fits across the roll
}

// EstimateFabric shelf-packs the pieces of p onto a roll fabricWidthMM
// wide with gapMM between pieces and at the edges. Non-positive widths and
// negative gaps fall back to the defaults.
func EstimateFabric(p *Pattern, fabricWidthMM, gapMM float64) Fabric {
	if fabricWidthMM <= 0 {
		fabricWidthMM = DefaultFabricWidthMM
	}
	if gapMM < 0 {
		gapMM = DefaultGapMM
	}
	f := Fabric{FabricWidthMM: fabricWidthMM, GapMM: gapMM, Fits: true}
	if p == nil {
		return f
	}

	for _, pc := range p.Pieces {
		if pc.Count <= 0 {
			continue
		}
		bb := pc.Cut.BoundingBox()
		w, h := bb.Width()*mmPerM, bb.Height()*mmPerM
		// Lay long pieces along the roll.
		if w > h {
			w, h = h, w
		}
		if w+2*gapMM > fabricWidthMM {
			f.Fits = false
		}
		perRow := max(1, int((fabricWidthMM-gapMM)/(w+gapMM)))
		rows := (pc.Count + perRow - 1) / perRow

		f.RollLengthMM += float64(rows) * (h + gapMM)
		f.Rows += rows
		f.NumPanels += pc.Count
		f.PanelAreaM2 += pc.Cut.Area() * float64(pc.Count)
		if f.PanelsPerRow == 0 || perRow < f.PanelsPerRow {
			f.PanelsPerRow = perRow
		}
	}
	if f.Rows > 0 {
		f.RollLengthMM += gapMM
	}

	f.RollLengthM = f.RollLengthMM / mmPerM
	f.FabricAreaM2 = fabricWidthMM * f.RollLengthMM / (mmPerM * mmPerM)
	f.WasteM2 = math.Max(0, f.FabricAreaM2-f.PanelAreaM2)
	if f.FabricAreaM2 > 0 {
		f.WastePercent = f.WasteM2 / f.FabricAreaM2 * 100
	}
	return f
}
