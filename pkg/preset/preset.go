// Package preset keeps named balloon specs in an INI file, one section per
// preset.
package preset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/ini.v1"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/spec"
)

// ErrNotFound is returned for a preset name that is not in the store.
var ErrNotFound = errors.New("preset not found")

// record is the flat on-disk form of a spec. Ground and inside temperatures
// are always written resolved, so an absent key never reaches the file.
type record struct {
	Gas                    string  `ini:"gas"`
	Material               string  `ini:"material"`
	ThicknessUM            float64 `ini:"thickness_um"`
	Mode                   string  `ini:"mode"`
	Target                 float64 `ini:"target"`
	StartHeightM           float64 `ini:"start_height_m"`
	WorkHeightM            float64 `ini:"work_height_m"`
	GroundTempC            float64 `ini:"ground_temp_c"`
	InsideTempC            float64 `ini:"inside_temp_c"`
	DurationH              float64 `ini:"duration_h"`
	PermeabilityMultiplier float64 `ini:"permeability_multiplier"`
	ExtraMassKg            float64 `ini:"extra_mass_kg"`
	SeamFactor             float64 `ini:"seam_factor"`

	ShapeKind         string  `ini:"shape_kind"`
	ShapeRadius       float64 `ini:"shape_radius"`
	ShapeLength       float64 `ini:"shape_length"`
	ShapeWidth        float64 `ini:"shape_width"`
	ShapeHeight       float64 `ini:"shape_height"`
	ShapeTopRadius    float64 `ini:"shape_top_radius"`
	ShapeBottomRadius float64 `ini:"shape_bottom_radius"`

	MaxHeightM   float64 `ini:"max_height_m"`
	StepM        float64 `ini:"step_m"`
	MinPayloadKg float64 `ini:"min_payload_kg"`
	Optimizer    bool    `ini:"optimizer"`

	Gores           int     `ini:"gores"`
	SeamAllowanceMM float64 `ini:"seam_allowance_mm"`
	FabricWidthMM   float64 `ini:"fabric_width_mm"`
	GapMM           float64 `ini:"gap_mm"`

	ReinforcementsKg    float64 `ini:"reinforcements_kg"`
	SafetyMarginPercent float64 `ini:"safety_margin_percent"`
}

func toRecord(s spec.BalloonSpec) record {
	return record{
		Gas:                    s.Gas,
		Material:               s.Material,
		ThicknessUM:            s.ThicknessUM,
		Mode:                   string(s.Mode),
		Target:                 s.Target,
		StartHeightM:           s.StartHeightM,
		WorkHeightM:            s.WorkHeightM,
		GroundTempC:            s.GroundTemp(),
		InsideTempC:            s.InsideTemp(),
		DurationH:              s.DurationH,
		PermeabilityMultiplier: s.PermeabilityMultiplier,
		ExtraMassKg:            s.ExtraMassKg,
		SeamFactor:             s.SeamFactor,
		ShapeKind:              s.Shape.Kind,
		ShapeRadius:            s.Shape.Radius,
		ShapeLength:            s.Shape.Length,
		ShapeWidth:             s.Shape.Width,
		ShapeHeight:            s.Shape.Height,
		ShapeTopRadius:         s.Shape.TopRadius,
		ShapeBottomRadius:      s.Shape.BottomRadius,
		MaxHeightM:             s.Analysis.MaxHeightM,
		StepM:                  s.Analysis.StepM,
		MinPayloadKg:           s.Analysis.MinPayloadKg,
		Optimizer:              s.Analysis.Optimizer,
		Gores:                  s.Pattern.Gores,
		SeamAllowanceMM:        s.Pattern.SeamAllowanceMM,
		FabricWidthMM:          s.Pattern.FabricWidthMM,
		GapMM:                  s.Pattern.GapMM,
		ReinforcementsKg:       s.Budget.ReinforcementsKg,
		SafetyMarginPercent:    s.Budget.SafetyMarginPercent,
	}
}

func (r record) spec(name string) spec.BalloonSpec {
	ground, inside := r.GroundTempC, r.InsideTempC
	return spec.BalloonSpec{
		Name:                   name,
		Gas:                    r.Gas,
		Material:               r.Material,
		ThicknessUM:            r.ThicknessUM,
		Mode:                   spec.Mode(r.Mode),
		Target:                 r.Target,
		StartHeightM:           r.StartHeightM,
		WorkHeightM:            r.WorkHeightM,
		GroundTempC:            &ground,
		InsideTempC:            &inside,
		DurationH:              r.DurationH,
		PermeabilityMultiplier: r.PermeabilityMultiplier,
		ExtraMassKg:            r.ExtraMassKg,
		SeamFactor:             r.SeamFactor,
		Shape: spec.ShapeDef{
			Kind:         r.ShapeKind,
			Radius:       r.ShapeRadius,
			Length:       r.ShapeLength,
			Width:        r.ShapeWidth,
			Height:       r.ShapeHeight,
			TopRadius:    r.ShapeTopRadius,
			BottomRadius: r.ShapeBottomRadius,
		},
		Analysis: spec.AnalysisDef{
			MaxHeightM:   r.MaxHeightM,
			StepM:        r.StepM,
			MinPayloadKg: r.MinPayloadKg,
			Optimizer:    r.Optimizer,
		},
		Pattern: spec.PatternDef{
			Gores:           r.Gores,
			SeamAllowanceMM: r.SeamAllowanceMM,
			FabricWidthMM:   r.FabricWidthMM,
			GapMM:           r.GapMM,
		},
		Budget: spec.BudgetDef{
			ReinforcementsKg:    r.ReinforcementsKg,
			SafetyMarginPercent: r.SafetyMarginPercent,
		},
	}
}

// Store is an INI-backed preset collection. It is safe for concurrent use.
// Changes stay in memory until Save.
type Store struct {
	mu   sync.RWMutex
	path string
	file *ini.File
}

// Open loads the preset file at path. A missing file gives an empty store
// that Save will create.
func Open(path string) (*Store, error) {
	f, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("loading presets: %w", err)
	}
	return &Store{path: path, file: f}, nil
}

// Path is the file the store saves to.
func (s *Store) Path() string { return s.path }

// Names lists the stored presets in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for _, n := range s.file.SectionStrings() {
		if n == ini.DefaultSection {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the named preset.
func (s *Store) Get(name string) (spec.BalloonSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, err := s.file.GetSection(name)
	if err != nil || name == ini.DefaultSection {
		return spec.BalloonSpec{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	var r record
	if err := sec.MapTo(&r); err != nil {
		return spec.BalloonSpec{}, fmt.Errorf("reading preset %q: %w", name, err)
	}
	return r.spec(name), nil
}

// Put stores a preset, replacing any preset of the same name.
func (s *Store) Put(name string, bs spec.BalloonSpec) error {
	if err := checkName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file.DeleteSection(name)
	sec, err := s.file.NewSection(name)
	if err != nil {
		return fmt.Errorf("creating preset %q: %w", name, err)
	}
	rec := toRecord(bs)
	if err := sec.ReflectFrom(&rec); err != nil {
		return fmt.Errorf("writing preset %q: %w", name, err)
	}
	return nil
}

// Delete removes the named preset.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.GetSection(name); err != nil || name == ini.DefaultSection {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	s.file.DeleteSection(name)
	return nil
}

// Save writes the store back to its file.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.file.SaveTo(s.path); err != nil {
		return fmt.Errorf("saving presets: %w", err)
	}
	return nil
}

func checkName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errs.Invalid("name", "preset name must not be empty")
	case name == ini.DefaultSection:
		return errs.Invalid("name", "%q is reserved", name)
	case strings.ContainsAny(name, "[]\n\r"):
		return errs.Invalid("name", "preset name must not contain brackets or newlines")
	}
	return nil
}
