// Package spec loads balloon.yaml project files and turns them into solver
// requests.
package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/gas"
	"github.com/ChicagoDave/aerostat/pkg/shape"
	"github.com/ChicagoDave/aerostat/pkg/solver"
)

const (
	DefaultGroundTempC = 15.0
	DefaultInsideTempC = 100.0
	ProjectFile        = "balloon.yaml"
)

// Load reads a balloon spec from a YAML file.
func Load(path string) (*BalloonSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a balloon spec from YAML. JSON is valid YAML, so request
// bodies go through here as well.
func Parse(data []byte) (*BalloonSpec, error) {
	var spec BalloonSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing spec YAML: %w", err)
	}
	return &spec, nil
}

// LoadProject loads a balloon spec from a project directory.
// It looks for balloon.yaml in the given directory.
func LoadProject(projectDir string) (*BalloonSpec, error) {
	specPath := filepath.Join(projectDir, ProjectFile)
	return Load(specPath)
}

// Marshal encodes the spec as balloon.yaml.
func (s *BalloonSpec) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// GroundTemp returns the ground temperature, 15 °C when the key is absent.
// An explicit 0 is kept.
func (s *BalloonSpec) GroundTemp() float64 {
	if s.GroundTempC == nil {
		return DefaultGroundTempC
	}
	return *s.GroundTempC
}

// InsideTemp returns the hot-air inside temperature, 100 °C when the key is
// absent. An explicit 0 is kept.
func (s *BalloonSpec) InsideTemp() float64 {
	if s.InsideTempC == nil {
		return DefaultInsideTempC
	}
	return *s.InsideTempC
}

// TotalHeight is start plus working height.
func (s *BalloonSpec) TotalHeight() float64 {
	return s.StartHeightM + s.WorkHeightM
}

// Direction maps the mode onto a solve direction.
func (s *BalloonSpec) Direction() (solver.Direction, error) {
	switch Mode(strings.ToLower(string(s.Mode))) {
	case "", ModeVolume:
		return solver.VolumeToPayload, nil
	case ModePayload:
		return solver.PayloadToVolume, nil
	}
	return "", errs.Invalid("mode", "must be %q or %q, got %q", ModeVolume, ModePayload, s.Mode)
}

// Request converts the spec into a solver request. Thickness is converted
// from micrometres and every default is applied.
func (s *BalloonSpec) Request() (solver.Request, error) {
	g, err := gas.Parse(s.Gas)
	if err != nil {
		return solver.Request{}, err
	}
	dir, err := s.Direction()
	if err != nil {
		return solver.Request{}, err
	}
	sh, err := s.Shape.Build()
	if err != nil {
		return solver.Request{}, err
	}

	req := solver.Request{
		Gas:                    g,
		Material:               s.Material,
		ThicknessM:             s.ThicknessUM * 1e-6,
		Target:                 s.Target,
		Direction:              dir,
		StartHeightM:           s.StartHeightM,
		WorkHeightM:            s.WorkHeightM,
		GroundTempC:            s.GroundTemp(),
		FlightDurationH:        s.DurationH,
		PermeabilityMultiplier: s.PermeabilityMultiplier,
		Shape:                  sh,
		ExtraMassKg:            s.ExtraMassKg,
		SeamFactor:             s.SeamFactor,
	}
	if g == gas.HotAir {
		req.InsideTempC = s.InsideTemp()
	}
	if req.SeamFactor == 0 {
		req.SeamFactor = 1
	}
	if req.PermeabilityMultiplier == 0 {
		req.PermeabilityMultiplier = 1
	}
	return req, nil
}

// Build resolves the shape definition. Dimensions that do not apply to the
// kind are ignored.
func (d ShapeDef) Build() (shape.Shape, error) {
	k, err := shape.ParseKind(d.Kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case shape.KindPillow:
		return shape.Pillow{Length: d.Length, Width: d.Width, Height: d.Height}, nil
	case shape.KindPear:
		return shape.Pear{Height: d.Height, TopRadius: d.TopRadius, BottomRadius: d.BottomRadius}, nil
	case shape.KindCigar:
		return shape.Cigar{Length: d.Length, Radius: d.Radius}, nil
	}
	return shape.Sphere{Radius: d.Radius}, nil
}

// Dims lists the dimensions of a resolved shape in ShapeDef form.
func Dims(s shape.Shape) ShapeDef {
	switch v := s.(type) {
	case shape.Sphere:
		return ShapeDef{Kind: string(shape.KindSphere), Radius: v.Radius}
	case shape.Pillow:
		return ShapeDef{Kind: string(shape.KindPillow), Length: v.Length, Width: v.Width, Height: v.Height}
	case shape.Pear:
		return ShapeDef{Kind: string(shape.KindPear), Height: v.Height, TopRadius: v.TopRadius, BottomRadius: v.BottomRadius}
	case shape.Cigar:
		return ShapeDef{Kind: string(shape.KindCigar), Length: v.Length, Radius: v.Radius}
	}
	return ShapeDef{}
}
