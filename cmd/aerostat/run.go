package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ChicagoDave/aerostat/pkg/analysis"
	"github.com/ChicagoDave/aerostat/pkg/chart"
	"github.com/ChicagoDave/aerostat/pkg/cost"
	"github.com/ChicagoDave/aerostat/pkg/export"
	"github.com/ChicagoDave/aerostat/pkg/pattern"
	"github.com/ChicagoDave/aerostat/pkg/preset"
	"github.com/ChicagoDave/aerostat/pkg/scene"
	"github.com/ChicagoDave/aerostat/pkg/scene2d"
	"github.com/ChicagoDave/aerostat/pkg/solver"
	"github.com/ChicagoDave/aerostat/pkg/spec"
	"github.com/ChicagoDave/aerostat/pkg/validation"
)

// presetPrefix marks a spec argument as a saved preset name.
const presetPrefix = "@"

// loadSpec reads a spec from a YAML file, a project directory holding
// balloon.yaml, or a preset given as @name.
func loadSpec(arg string) (*spec.BalloonSpec, error) {
	var bs *spec.BalloonSpec
	switch {
	case strings.HasPrefix(arg, presetPrefix):
		store, err := preset.Open(cfg.Presets.Path)
		if err != nil {
			return nil, err
		}
		s, err := store.Get(strings.TrimPrefix(arg, presetPrefix))
		if err != nil {
			return nil, err
		}
		bs = &s
	default:
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("loading spec: %w", err)
		}
		if info.IsDir() {
			bs, err = spec.LoadProject(arg)
		} else {
			bs, err = spec.Load(arg)
		}
		if err != nil {
			return nil, fmt.Errorf("loading spec: %w", err)
		}
	}
	cfg.Apply(bs)
	return bs, nil
}

// loadRequest loads the spec and turns it into a solver request. Schema
// errors are printed and returned.
func loadRequest(arg string) (*spec.BalloonSpec, solver.Request, error) {
	bs, err := loadSpec(arg)
	if err != nil {
		return nil, solver.Request{}, err
	}
	if report := validation.ValidateSchema(bs); !report.Valid {
		printValidationReport(report)
		return nil, solver.Request{}, fmt.Errorf("spec has validation errors")
	}
	req, err := bs.Request()
	if err != nil {
		return nil, solver.Request{}, err
	}
	return bs, req, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFile creates path and hands it to write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.WithField("path", path).Info("file written")
	return nil
}

func runSolve(arg string) error {
	bs, req, err := loadRequest(arg)
	if err != nil {
		return err
	}
	res, err := solver.Solve(req)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"result":     res,
		"budget":     solver.NewBudget(res, bs.Budget.ReinforcementsKg, bs.Budget.SafetyMarginPercent),
		"validation": validation.ValidatePhysics(bs),
	})
}

func runValidate(arg string) error {
	bs, err := loadSpec(arg)
	if err != nil {
		return err
	}
	report := validation.Validate(bs)
	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runOptimize(arg string, optimizer bool) error {
	bs, req, err := loadRequest(arg)
	if err != nil {
		return err
	}
	strategy := analysis.StrategyGrid
	if optimizer || bs.Analysis.Optimizer {
		strategy = analysis.StrategyOptimizer
	}
	opt, err := analysis.OptimalHeight(req, strategy)
	if err != nil {
		return err
	}
	printOptimum(opt)
	return nil
}

func runProfile(arg string, opts profileOptions) error {
	bs, req, err := loadRequest(arg)
	if err != nil {
		return err
	}
	if opts.maxHeightM > 0 {
		bs.Analysis.MaxHeightM = opts.maxHeightM
	}
	if opts.stepM > 0 {
		bs.Analysis.StepM = opts.stepM
	}
	points, err := analysis.HeightProfile(req, bs.Analysis.MaxHeightM, bs.Analysis.StepM)
	if err != nil {
		return err
	}

	if opts.chart {
		graph, err := chart.ProfileASCII(points, 70, 15)
		if err != nil {
			return err
		}
		fmt.Println(graph)
	} else {
		printProfile(points)
	}

	if opts.csvPath != "" {
		if err := writeFile(opts.csvPath, func(w io.Writer) error {
			return export.WriteProfileCSV(w, points)
		}); err != nil {
			return err
		}
	}
	if opts.pngPath != "" {
		title := fmt.Sprintf("%s %s envelope", req.Gas, req.Material)
		if err := writeFile(opts.pngPath, func(w io.Writer) error {
			return chart.ProfilePNG(w, points, title)
		}); err != nil {
			return err
		}
	}
	return nil
}

func runMaterials(arg, csvPath string) error {
	_, req, err := loadRequest(arg)
	if err != nil {
		return err
	}
	rows, err := analysis.MaterialComparison(req, req.HeightM())
	if err != nil {
		return err
	}
	printMaterials(req.HeightM(), rows)

	if csvPath != "" {
		return writeFile(csvPath, func(w io.Writer) error {
			return export.WriteMaterialsCSV(w, rows)
		})
	}
	return nil
}

func runCost(arg string) error {
	bs, req, err := loadRequest(arg)
	if err != nil {
		return err
	}
	report, err := cost.Analyze(req)
	if err != nil {
		return err
	}
	printCostReport(report)

	physics := validation.ValidatePhysics(bs)
	if len(physics.Warnings) > 0 {
		fmt.Println()
		printValidationReport(physics)
	}
	return nil
}

func runFlightTime(arg string, minPayload *float64) error {
	bs, req, err := loadRequest(arg)
	if err != nil {
		return err
	}
	minKg := bs.Analysis.MinPayloadKg
	if minPayload != nil {
		minKg = *minPayload
	}
	e, err := analysis.FlightTime(req, minKg)
	if err != nil {
		return err
	}
	printEndurance(e)
	return nil
}

// patternOutput says where runPattern writes its files.
type patternOutput struct {
	pdfPath  string
	fullSize bool
	tiles    export.TileOptions
	svgPath  string
}

func runPattern(arg string, out patternOutput, asJSON bool) error {
	bs, req, err := loadRequest(arg)
	if err != nil {
		return err
	}
	res, err := solver.Solve(req)
	if err != nil {
		return err
	}
	p, err := pattern.Generate(res.Shape, bs.Pattern.Gores, bs.Pattern.SeamAllowanceMM)
	if err != nil {
		return err
	}
	fabric := pattern.EstimateFabric(p, bs.Pattern.FabricWidthMM, bs.Pattern.GapMM)

	if asJSON {
		if err := printJSON(map[string]any{
			"pattern":       p,
			"fabric":        fabric,
			"seam_length_m": pattern.SeamLength(p),
			"layout":        scene2d.Assemble2D(p, fabric),
		}); err != nil {
			return err
		}
	} else {
		printPattern(p, fabric)
	}

	if out.pdfPath != "" {
		if err := writeFile(out.pdfPath, func(w io.Writer) error {
			if out.fullSize {
				return export.WritePatternFullSize(w, p, out.tiles)
			}
			return export.WritePattern(w, p, &fabric)
		}); err != nil {
			return err
		}
	}
	if out.svgPath != "" {
		return writeFile(out.svgPath, func(w io.Writer) error {
			return export.WritePatternSVG(w, p)
		})
	}
	return nil
}

func runMesh(arg string, theta, z int, asJSON bool) error {
	_, req, err := loadRequest(arg)
	if err != nil {
		return err
	}
	res, err := solver.Solve(req)
	if err != nil {
		return err
	}
	m, err := scene.NewMesh(res.Shape, theta, z)
	if err != nil {
		return err
	}
	report := scene.Validate(m)

	if asJSON {
		return printJSON(map[string]any{"mesh": m, "validation": report})
	}
	printMesh(m)
	fmt.Println()
	printValidationReport(report)
	return nil
}

func runExport(arg string, opts exportOptions) error {
	bs, _, err := loadRequest(arg)
	if err != nil {
		return err
	}
	if opts.xlsxPath == "" && opts.pdfPath == "" && !opts.text {
		opts.text = true
	}
	b, err := export.Collect(bs)
	if err != nil {
		return err
	}

	if opts.xlsxPath != "" {
		if err := writeFile(opts.xlsxPath, func(w io.Writer) error {
			return export.WriteWorkbook(w, b)
		}); err != nil {
			return err
		}
	}
	if opts.pdfPath != "" {
		if err := writeFile(opts.pdfPath, func(w io.Writer) error {
			return export.WriteReport(w, b)
		}); err != nil {
			return err
		}
	}
	if opts.text {
		return export.WriteText(os.Stdout, b)
	}
	return nil
}

func openPresets() (*preset.Store, error) {
	return preset.Open(cfg.Presets.Path)
}

func runPresetList() error {
	store, err := openPresets()
	if err != nil {
		return err
	}
	names := store.Names()
	if len(names) == 0 {
		fmt.Printf("No presets in %s.\n", store.Path())
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runPresetSave(name, arg string) error {
	bs, err := loadSpec(arg)
	if err != nil {
		return err
	}
	if report := validation.ValidateSchema(bs); !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("spec has validation errors")
	}
	store, err := openPresets()
	if err != nil {
		return err
	}
	if err := store.Put(name, *bs); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Printf("Saved preset %q to %s\n", name, store.Path())
	return nil
}

func runPresetShow(name string) error {
	store, err := openPresets()
	if err != nil {
		return err
	}
	bs, err := store.Get(name)
	if err != nil {
		return err
	}
	data, err := bs.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runPresetDelete(name string) error {
	store, err := openPresets()
	if err != nil {
		return err
	}
	if err := store.Delete(name); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Printf("Deleted preset %q\n", name)
	return nil
}
