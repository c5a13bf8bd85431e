package scene

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/aerostat/pkg/validation"
)

// volumeTolerance bounds the gap between tessellated and analytic volume
// before a warning is raised.
const volumeTolerance = 0.05

// Validate performs structural checks on a mesh: finite coordinates,
// in-range face indices and non-degenerate bounds are errors; inward
// winding and a large volume mismatch are warnings.
func Validate(m *Mesh) *validation.Report {
	r := validation.NewReport()

	if m == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelGeometry,
			Message: "mesh is nil",
		})
		return r
	}
	if len(m.Vertices) == 0 || len(m.Faces) == 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     "mesh has no vertices or faces",
			Path:        "mesh",
			ActualValue: fmt.Sprintf("%d vertices, %d faces", len(m.Vertices), len(m.Faces)),
		})
		return r
	}

	validateVertices(m, r)
	validateFaces(m, r)
	validateBounds(m, r)
	if r.Valid {
		validateVolume(m, r)
	}
	return r
}

func validateVertices(m *Mesh, r *validation.Report) {
	for i, v := range m.Vertices {
		if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
			r.AddError(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     fmt.Sprintf("vertex %d has a non-finite coordinate", i),
				Path:        fmt.Sprintf("vertices[%d]", i),
				ActualValue: fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z),
				Expected:    "finite coordinates",
			})
			return
		}
	}
}

func validateFaces(m *Mesh, r *validation.Report) {
	n := len(m.Vertices)
	degenerate := 0
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				r.AddError(validation.Result{
					Level:       validation.LevelGeometry,
					Message:     fmt.Sprintf("face %d references vertex %d of %d", i, idx, n),
					Path:        fmt.Sprintf("faces[%d]", i),
					ActualValue: idx,
					Expected:    fmt.Sprintf("0..%d", n-1),
				})
				return
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			degenerate++
		}
	}
	if degenerate > 0 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     fmt.Sprintf("%d faces repeat a vertex", degenerate),
			Path:        "faces",
			ActualValue: degenerate,
		})
	}
}

func validateBounds(m *Mesh, r *validation.Report) {
	size := m.Bounds.Size()
	if !(size.X > 0) || !(size.Y > 0) || !(size.Z > 0) {
		r.AddError(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     fmt.Sprintf("bounding box is degenerate (%.3g x %.3g x %.3g)", size.X, size.Y, size.Z),
			Path:        "bounds",
			ActualValue: size,
			Expected:    "positive extent on every axis",
		})
		return
	}
	if got := computeBounds(m.Vertices); got != m.Bounds {
		r.AddWarning(validation.Result{
			Level:   validation.LevelGeometry,
			Message: "stored bounds do not match the vertices",
			Path:    "bounds",
		})
	}
}

func validateVolume(m *Mesh, r *validation.Report) {
	v := m.Volume()
	if v <= 0 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     "faces are wound inward",
			Path:        "faces",
			ActualValue: v,
			Expected:    "positive enclosed volume",
		})
		return
	}
	want := m.Metadata.VolumeM3
	if want > 0 && math.Abs(v-want) > volumeTolerance*want {
		r.AddWarning(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     fmt.Sprintf("mesh volume %.3f m³ differs from the envelope volume %.3f m³", v, want),
			Path:        "metadata.volume_m3",
			ActualValue: v,
			Expected:    fmt.Sprintf("within %.0f%%", volumeTolerance*100),
			Suggestions: []string{"Increase num_theta and num_z"},
		})
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
