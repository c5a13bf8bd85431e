package scene2d

// Scene2D is the cutting layout of one pattern on a fabric roll, for a
// top-down renderer. Coordinates are millimetres: x runs across the roll
// from its left edge, y along it from the start.
type Scene2D struct {
	Metadata Metadata  `json:"metadata"`
	Rows     []Row2D   `json:"rows"`
	Pieces   []Piece2D `json:"pieces"`
}

// Metadata holds the roll-level summary.
type Metadata struct {
	ShapeKind     string  `json:"shape_kind"`
	PatternKind   string  `json:"pattern_kind"`
	FabricWidthMM float64 `json:"fabric_width_mm"`
	GapMM         float64 `json:"gap_mm"`
	RollLengthMM  float64 `json:"roll_length_mm"`
	PieceCount    int     `json:"piece_count"`
	WastePercent  float64 `json:"waste_percent"`
	Fits          bool    `json:"fits"`
	GeneratedAt   string  `json:"generated_at"`
}

// Row2D is one shelf of identical pieces across the roll.
type Row2D struct {
	Index   int     `json:"index"`
	Piece   string  `json:"piece"`
	Y       float64 `json:"y"`
	Height  float64 `json:"height"`
	Columns int     `json:"columns"`
}

// Piece2D is one placed copy of a pattern piece.
type Piece2D struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Copy    int          `json:"copy"` // 1-based
	Row     int          `json:"row"`
	Rotated bool         `json:"rotated"` // turned 90° to lie along the roll
	Bounds  [4]float64   `json:"bounds"`  // min x, min y, max x, max y
	Cut     [][2]float64 `json:"cut"`
	Outline [][2]float64 `json:"outline"`
	Notches [][2]float64 `json:"notches,omitempty"`
	Label   [2]float64   `json:"label"`
}
