package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/automation"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/export"
	"github.com/san-kum/attractors/internal/gui"
	"github.com/san-kum/attractors/internal/logging"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/storage"
	"github.com/san-kum/attractors/internal/tui"
	"github.com/san-kum/attractors/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger

	recordSteps int
	live        bool
	frameRate   int

	phasePlane string

	sectionCross string
	sectionAt    float64
	sectionPlane string
	sectionSteps int

	paramName  string
	paramMin   float64
	paramMax   float64
	paramSteps int
	peakAxis   string
	transient  int
	peakSteps  int

	spectrumAxis string

	lyapunovSteps  int
	calibrateSteps int

	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSamples int
	sweepSteps   int

	outFile  string
	svgPlane string
	frames   int
	braille  bool
)

// main registers the commands and runs the root command. With no
// subcommand the window opens on the family menu.
func main() {
	rootCmd := &cobra.Command{
		Use:           "attractors",
		Short:         "strange attractor trails",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = logging.NewLogger(logLevel, os.Stderr)
			var err error
			cfg, err = loadConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newController(nil)
			if err != nil {
				return err
			}
			gui.Run(c, cfg, logger, true)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".attractors", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (error, warn, info, debug, trace)")

	guiCmd := &cobra.Command{
		Use:   "gui [family]",
		Short: "draw a family in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newController(args)
			if err != nil {
				return err
			}
			gui.Run(c, cfg, logger, false)
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [family]",
		Short: "draw a family in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newController(args)
			if err != nil {
				return err
			}
			if err := tui.Run(c, cfg, len(args) > 0); err != nil {
				return err
			}
			logMidpoint(c)
			return nil
		},
	}

	recordCmd := &cobra.Command{
		Use:   "record [family]",
		Short: "integrate a family headless and save the points",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordRun,
	}
	recordCmd.Flags().IntVar(&recordSteps, "steps", 20000, "number of points to integrate")
	recordCmd.Flags().BoolVar(&live, "live", false, "show the trail in the terminal while recording")
	recordCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot x, y and z of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&phasePlane, "plane", "xz", "projection plane")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "frequency analysis of one coordinate of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumPlot,
	}
	spectrumCmd.Flags().StringVar(&spectrumAxis, "axis", "x", "coordinate to analyse")

	sectionCmd := &cobra.Command{
		Use:   "section [family]",
		Short: "poincare section of a family",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sectionPlot,
	}
	sectionCmd.Flags().StringVar(&sectionCross, "cross", "z", "axis of the section plane")
	sectionCmd.Flags().Float64Var(&sectionAt, "at", 27, "position of the section plane")
	sectionCmd.Flags().StringVar(&sectionPlane, "plane", "xy", "coordinates to record")
	sectionCmd.Flags().IntVar(&sectionSteps, "steps", 200000, "number of steps")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation [family]",
		Short: "sweep a parameter and plot the peaks of one coordinate",
		Args:  cobra.MaximumNArgs(1),
		RunE:  bifurcationPlot,
	}
	bifurcationCmd.Flags().StringVar(&paramName, "param", "b", "parameter to sweep (a, b, c)")
	bifurcationCmd.Flags().Float64Var(&paramMin, "min", 0.5, "sweep start")
	bifurcationCmd.Flags().Float64Var(&paramMax, "max", 30, "sweep end")
	bifurcationCmd.Flags().IntVar(&paramSteps, "samples", 60, "parameter values")
	bifurcationCmd.Flags().StringVar(&peakAxis, "axis", "z", "coordinate to record")
	bifurcationCmd.Flags().IntVar(&transient, "transient", 5000, "steps discarded per value")
	bifurcationCmd.Flags().IntVar(&peakSteps, "steps", 5000, "steps recorded per value")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [family...]",
		Short: "estimate the largest Lyapunov exponent",
		RunE:  lyapunov,
	}
	lyapunovCmd.Flags().IntVar(&lyapunovSteps, "steps", 50000, "number of steps")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate [family...]",
		Short: "run families headless and report their bounds and midpoints",
		RunE:  calibrate,
	}
	calibrateCmd.Flags().IntVar(&calibrateSteps, "steps", 20000, "number of steps per family")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "record every step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [family]",
		Short: "estimate the Lyapunov exponent across a parameter range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "b", "parameter to sweep (a, b, c)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "sweep start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 30, "sweep end")
	sweepCmd.Flags().IntVar(&sweepSamples, "samples", 30, "parameter values")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20000, "steps per value")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run, or a live frame, as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().StringVar(&svgPlane, "plane", "xz", "projection plane for runs")
	exportSVGCmd.Flags().IntVar(&frames, "frames", 1000, "frames to simulate when no run is given")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render the frame through the terminal canvas")
	exportSVGCmd.Flags().String("family", "", "family to simulate when no run is given")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and points as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	familiesCmd := &cobra.Command{
		Use:   "families",
		Short: "list families and their constants",
		Args:  cobra.NoArgs,
		RunE:  listFamilies,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "attractors.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, recordCmd, listCmd, plotCmd, phaseCmd, spectrumCmd, sectionCmd, bifurcationCmd,
		lyapunovCmd, calibrateCmd, scenarioCmd, sweepCmd, exportSVGCmd, exportJSONCmd, familiesCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	c, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("config loaded", "path", configFile, "family", c.Family)
	return c, nil
}

// familyArg resolves an optional family argument, defaulting to the
// configured start family.
func familyArg(args []string) (physics.Family, error) {
	if len(args) > 0 {
		return physics.ParseFamily(args[0])
	}
	return cfg.StartFamily()
}

// familyArgs resolves a list of families, defaulting to all of them.
func familyArgs(args []string) ([]physics.Family, error) {
	if len(args) == 0 {
		return physics.Families(), nil
	}
	out := make([]physics.Family, 0, len(args))
	for _, a := range args {
		f, err := physics.ParseFamily(a)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func newController(args []string, opts ...sim.Option) (*sim.Controller, error) {
	f, err := familyArg(args)
	if err != nil {
		return nil, err
	}
	run := *cfg
	run.Family = f.String()
	return sim.New(&run, append([]sim.Option{sim.WithLogger(logger)}, opts...)...)
}

func logMidpoint(c *sim.Controller) {
	b := c.Bounds()
	logger.Info("estimated midpoint",
		"family", c.Active().String(),
		"midpoint", b.Midpoint().String(),
		"bounds", b.String(),
	)
}

func recordRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f, err := familyArg(args)
	if err != nil {
		return err
	}
	fc := cfg.FamilyConfig(f)

	st := storage.New(dataDir)
	rec, err := st.NewRecorder(f, fc.Dt, fc.Params.Params(), fc.Initial.Point())
	if err != nil {
		return err
	}

	c, err := newController(args, sim.WithObserver(rec))
	if err != nil {
		rec.Close()
		return err
	}

	fmt.Printf("recording %s...\n", f)
	start := time.Now()

	var n int
	if live {
		n, err = recordLive(ctx, c)
	} else {
		n, err = c.Run(ctx, recordSteps)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		rec.Close()
		return err
	}

	meta, cerr := rec.Close()
	if cerr != nil {
		return cerr
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", meta.ID)
	fmt.Printf("steps: %d\n", n)
	fmt.Printf("bounds: %s\n", meta.Bounds)
	return nil
}

func recordLive(ctx context.Context, c *sim.Controller) (int, error) {
	r := tui.NewLiveRenderer(os.Stdout, frameRate, cfg.Screen.Width, cfg.Screen.Height)
	r.Start()
	defer r.Stop()

	for i := range recordSteps {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		r.Draw(c, c.Frame())
	}
	return recordSteps, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFAMILY\tTIME\tSTEPS\tDT\tMIDPOINT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%s\n",
			run.ID,
			run.Family,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Midpoint,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.Point3, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	points, err := st.LoadPoints(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(points) == 0 {
		return nil, nil, fmt.Errorf("run %s has no points", runID)
	}
	return meta, points, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("family: %s\n", meta.Family)
	fmt.Printf("samples: %d\n\n", len(points))

	for _, axis := range []analysis.Axis{analysis.AxisX, analysis.AxisY, analysis.AxisZ} {
		data := make([]float64, len(points))
		for i, p := range points {
			data[i] = axis.Of(p)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs step", axis)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	xa, ya, err := analysis.ParseAxes(phasePlane)
	if err != nil {
		return err
	}
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("family: %s\n", meta.Family)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", xa, ya)
	fmt.Print(analysis.PhasePortraitToASCII(analysis.PortraitFromPoints(points, xa, ya), 70, 20))
	return nil
}

func spectrumPlot(cmd *cobra.Command, args []string) error {
	axis, err := analysis.ParseAxis(spectrumAxis)
	if err != nil {
		return err
	}
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}

	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = axis.Of(p)
	}
	ps := analysis.PowerSpectrum(data)
	if len(ps) < 2 {
		return fmt.Errorf("run %s is too short for a spectrum", meta.ID)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("family: %s\n\n", meta.Family)

	graph := asciigraph.Plot(ps[:max(len(ps)/4, 2)],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", axis)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(ps, len(data), meta.Dt)
	fmt.Printf("dominant frequency: %.3f per time unit\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f time units\n", 1.0/freq)
	}
	return nil
}

func sectionPlot(cmd *cobra.Command, args []string) error {
	f, err := familyArg(args)
	if err != nil {
		return err
	}
	cross, err := analysis.ParseAxis(sectionCross)
	if err != nil {
		return err
	}
	xa, ya, err := analysis.ParseAxes(sectionPlane)
	if err != nil {
		return err
	}

	fc := cfg.FamilyConfig(f)
	section := analysis.GeneratePoincareSection(f, fc.Params.Params(), fc.Initial.Point(), cross, sectionAt, xa, ya, fc.Dt, sectionSteps)

	fmt.Printf("poincare section: %s, %s = %g\n", f, cross, sectionAt)
	fmt.Printf("crossings: %d\n\n", len(section.Points))
	fmt.Print(analysis.PoincareSectionToASCII(section, 70, 20))
	return nil
}

func bifurcationPlot(cmd *cobra.Command, args []string) error {
	f, err := familyArg(args)
	if err != nil {
		return err
	}
	axis, err := analysis.ParseAxis(peakAxis)
	if err != nil {
		return err
	}

	fc := cfg.FamilyConfig(f)
	data, err := analysis.BifurcationDiagram(f, fc.Params.Params(), paramName, paramMin, paramMax, paramSteps,
		axis, fc.Initial.Point(), fc.Dt, transient, peakSteps)
	if err != nil {
		return err
	}

	fmt.Printf("bifurcation: %s, %s in [%g, %g], peaks of %s\n\n", f, paramName, paramMin, paramMax, axis)
	fmt.Print(analysis.BifurcationToASCII(data, 70, 20))
	return nil
}

func lyapunov(cmd *cobra.Command, args []string) error {
	families, err := familyArgs(args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tLAMBDA\tDT\tSTEPS")
	for _, f := range families {
		fc := cfg.FamilyConfig(f)
		l := analysis.LyapunovExponent(f, fc.Params.Params(), fc.Initial.Point(), fc.Dt, lyapunovSteps, 1e-8)
		fmt.Fprintf(w, "%s\t%.4f\t%g\t%d\n", f, l, fc.Dt, lyapunovSteps)
	}
	return w.Flush()
}

func calibrate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	families, err := familyArgs(args)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := sim.NewEnsemble(cfg, calibrateSteps).Run(ctx, families)
	if err != nil {
		return err
	}
	logger.Debug("calibration done", "families", len(results), "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tSTEPS\tMIDPOINT\tCONFIGURED\tSIZE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			r.Family, r.Steps, r.Bounds.Midpoint(), cfg.FamilyConfig(r.Family).Midpoint.Point(), r.Bounds.Size())
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	runs, err := automation.RunScenario(ctx, scenario, cfg, storage.New(dataDir), logger)
	for _, r := range runs {
		fmt.Printf("  %s  %-10s %6d steps  midpoint %s\n", r.ID, r.Family, r.Steps, r.Midpoint)
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f, err := familyArg(args)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Family:  f,
		Param:   sweepParam,
		Min:     sweepMin,
		Max:     sweepMax,
		Samples: sweepSamples,
		Steps:   sweepSteps,
	}
	start := time.Now()
	results, err := automation.RunSweep(ctx, sweep, cfg)
	if err != nil {
		return err
	}
	logger.Debug("sweep done", "family", f, "samples", len(results), "elapsed", time.Since(start))

	lambdas := make([]float64, len(results))
	chaotic := 0
	for i, r := range results {
		lambdas[i] = r.Lyapunov
		if r.Lyapunov > 0 {
			chaotic++
		}
	}

	fmt.Println(asciigraph.Plot(lambdas,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s: lambda over %s in [%g, %g]", f, sweepParam, sweepMin, sweepMax)),
	))
	fmt.Printf("\n%d of %d values chaotic\n", chaotic, len(results))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	var svg string
	if len(args) == 1 {
		xa, ya, err := analysis.ParseAxes(svgPlane)
		if err != nil {
			return err
		}
		_, points, err := loadRun(args[0])
		if err != nil {
			return err
		}
		portrait := analysis.PortraitFromPoints(points, xa, ya)
		stroke := viz.ThemeClassic.Trail.Final.Hex(viz.ThemeClassic.Background)
		svg = export.TrajectoryToSVG(portrait.Points, cfg.Screen.Width, cfg.Screen.Height, stroke)
	} else {
		var fargs []string
		if name, _ := cmd.Flags().GetString("family"); name != "" {
			fargs = []string{name}
		}
		c, err := newController(fargs)
		if err != nil {
			return err
		}
		var segs []sim.Segment
		for range max(frames, 1) {
			segs = c.Frame()
		}
		bg := viz.RGBA{A: 255}
		if braille {
			canvas := viz.NewCanvas(160, 48)
			canvas.Background = bg
			tui.NewRaster(canvas, cfg.Screen.Width, cfg.Screen.Height).Draw(canvas, segs)
			svg = export.CanvasToSVG(canvas, 4)
		} else {
			svg = export.SegmentsToSVG(segs, cfg.Screen.Width, cfg.Screen.Height, bg)
		}
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, points)
}

func listFamilies(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFAMILY\tDT\tZOOM\tA\tB\tC\tLENGTH")
	for _, f := range physics.Families() {
		fc := cfg.FamilyConfig(f)
		fmt.Fprintf(w, "%d\t%s\t%g\t%g\t%g\t%g\t%g\t%d\n",
			int(f)+1, f, fc.Dt, fc.Zoom, fc.Params.A, fc.Params.B, fc.Params.C, fc.MaxLength)
	}
	return w.Flush()
}
