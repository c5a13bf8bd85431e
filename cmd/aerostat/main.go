package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ChicagoDave/aerostat/internal/config"
	"github.com/ChicagoDave/aerostat/internal/server"
	"github.com/ChicagoDave/aerostat/pkg/export"
	"github.com/ChicagoDave/aerostat/pkg/preset"
)

var cfg *config.Config

func main() {
	var cfgFile, logLevel string

	rootCmd := &cobra.Command{
		Use:           "aerostat",
		Short:         "Balloon lift, envelope and flight-time calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			return cfg.SetupLogging()
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./aerostat.yaml or ~/.aerostat/aerostat.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(materialsCmd())
	rootCmd.AddCommand(costCmd())
	rootCmd.AddCommand(flightTimeCmd())
	rootCmd.AddCommand(patternCmd())
	rootCmd.AddCommand(meshCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(presetCmd())
	rootCmd.AddCommand(assumptionsCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve [spec-path]",
		Short: "Solve the balloon at its working height and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSolve(args[0])
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [spec-path]",
		Short: "Check a balloon spec for range and physics problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func optimizeCmd() *cobra.Command {
	var optimizer bool

	cmd := &cobra.Command{
		Use:   "optimize [spec-path]",
		Short: "Find the working height with the largest payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runOptimize(args[0], optimizer)
		},
	}
	cmd.Flags().BoolVar(&optimizer, "optimizer", false, "refine with Nelder-Mead instead of the 100 m grid")
	return cmd
}

type profileOptions struct {
	maxHeightM float64
	stepM      float64
	chart      bool
	csvPath    string
	pngPath    string
}

func profileCmd() *cobra.Command {
	var opts profileOptions

	cmd := &cobra.Command{
		Use:   "profile [spec-path]",
		Short: "Sweep payload and lift over altitude",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runProfile(args[0], opts)
		},
	}
	cmd.Flags().Float64Var(&opts.maxHeightM, "max", 0, "highest altitude in metres (default from spec or config)")
	cmd.Flags().Float64Var(&opts.stepM, "step", 0, "altitude step in metres (default from spec or config)")
	cmd.Flags().BoolVar(&opts.chart, "chart", false, "draw an ASCII chart instead of a table")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "also write the profile to this CSV file")
	cmd.Flags().StringVar(&opts.pngPath, "png", "", "also plot the profile to this PNG file")
	return cmd
}

func materialsCmd() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "materials [spec-path]",
		Short: "Compare every envelope material at the working height",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runMaterials(args[0], csvPath)
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write the comparison to this CSV file")
	return cmd
}

func costCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cost [spec-path]",
		Short: "Compute and display the material and gas cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCost(args[0])
		},
	}
}

func flightTimeCmd() *cobra.Command {
	var minPayload float64

	cmd := &cobra.Command{
		Use:   "flight-time [spec-path]",
		Short: "Estimate how long the balloon holds a minimum payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var override *float64
			if cmd.Flags().Changed("min-payload") {
				override = &minPayload
			}
			return runFlightTime(args[0], override)
		},
	}
	cmd.Flags().Float64Var(&minPayload, "min-payload", 0, "payload in kg the balloon must keep carrying")
	return cmd
}

func patternCmd() *cobra.Command {
	var out patternOutput
	var page string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pattern [spec-path]",
		Short: "Generate the cutting pattern for the solved envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			size, err := export.ParsePageSize(page)
			if err != nil {
				return err
			}
			out.tiles.PageSize = size
			return runPattern(args[0], out, asJSON)
		},
	}
	cmd.Flags().StringVar(&out.pdfPath, "pdf", "", "write printable templates to this PDF file")
	cmd.Flags().BoolVar(&out.fullSize, "full-size", false, "print the PDF at 1:1, tiled across pages")
	cmd.Flags().StringVar(&page, "page", "A4", "page size for --full-size: A4 or A3")
	cmd.Flags().Float64Var(&out.tiles.OverlapMM, "overlap", export.DefaultOverlapMM, "taping overlap in mm for --full-size")
	cmd.Flags().BoolVar(&out.tiles.NoGrid, "no-grid", false, "leave the registration grid off full-size pages")
	cmd.Flags().StringVar(&out.svgPath, "svg", "", "write full-size outlines to this SVG file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full pattern as JSON")
	return cmd
}

func meshCmd() *cobra.Command {
	var theta, z int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "mesh [spec-path]",
		Short: "Tessellate the solved envelope and check the mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runMesh(args[0], theta, z, asJSON)
		},
	}
	cmd.Flags().IntVar(&theta, "theta", 0, "circumferential divisions (default 32)")
	cmd.Flags().IntVar(&z, "z", 0, "axial divisions (default 32)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the mesh as JSON")
	return cmd
}

type exportOptions struct {
	xlsxPath string
	pdfPath  string
	text     bool
}

func exportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export [spec-path]",
		Short: "Write the full design report as a workbook, PDF or text",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExport(args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write an Excel workbook to this file")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write a PDF report to this file")
	cmd.Flags().BoolVar(&opts.text, "text", false, "print a plain-text report")
	return cmd
}

func presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved balloon presets",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPresetList()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "save [name] [spec-path]",
		Short: "Validate a spec and save it under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPresetSave(args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show [name]",
		Short: "Print a preset as a YAML spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPresetShow(args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPresetDelete(args[0])
		},
	})
	return cmd
}

func assumptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assumptions",
		Short: "List the modelling assumptions behind every result",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			printAssumptions()
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			presets, err := preset.Open(cfg.Presets.Path)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg, presets).Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
