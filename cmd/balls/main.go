package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/balls/internal/analysis"
	"github.com/san-kum/balls/internal/automation"
	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/control"
	"github.com/san-kum/balls/internal/export"
	"github.com/san-kum/balls/internal/gui"
	"github.com/san-kum/balls/internal/optim"
	"github.com/san-kum/balls/internal/sim"
	"github.com/san-kum/balls/internal/store"
	"github.com/san-kum/balls/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	count      int
	params     map[string]string
	frames     int
	plot       bool
	spectrum   bool
	throw      []float64
	throwFrame int
	throwSteps int
	svgPath    string
	jsonPath   string
	scenario   string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	grid       []string
	metricName string
)

// main registers the balls commands. With no subcommand it opens the window.
func main() {
	rootCmd := &cobra.Command{
		Use:   "balls",
		Short: "draggable bouncing balls",
		RunE:  runGUI,
	}
	addSessionFlags(rootCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation window",
		RunE:  runGUI,
	}
	addSessionFlags(guiCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal (mouse enabled)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := viz.Run(cfg, s); err != nil {
				log.Fatalf("terminal host: %v", err)
			}
			return nil
		},
	}
	addSessionFlags(tuiCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print metrics",
		RunE:  runHeadless,
	}
	addSessionFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot metric series")
	runCmd.Flags().BoolVar(&spectrum, "spectrum", false, "report the dominant bounce frequency")
	runCmd.Flags().Float64SliceVar(&throw, "throw", nil, "throw the ball under x,y by dx,dy per frame")
	runCmd.Flags().IntVar(&throwFrame, "throw-frame", 60, "frame the throw starts")
	runCmd.Flags().IntVar(&throwSteps, "throw-steps", 10, "frames the throw drags for")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame and the tracked ball's trail as svg")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "write a json run report (- for stdout)")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "scripted input scenario (yaml)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same session across a range of one parameter",
		RunE:  runSweep,
	}
	addSessionFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&frames, "frames", 600, "frames per run")
	sweepCmd.Flags().StringVar(&sweepParam, "name", "restitution", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search physics parameters minimizing a metric",
		RunE:  runTune,
	}
	addSessionFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&frames, "frames", 600, "frames per run")
	tuneCmd.Flags().StringArrayVar(&grid, "grid", []string{"jump=0.3,0.6,0.9", "bounce=0.02,0.05,0.1"}, "parameter values, e.g. gravity=0.3,0.5")
	tuneCmd.Flags().StringVar(&metricName, "metric", "overlap", "metric to minimize")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.Presets[name].Description)
			}
			w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
	addSessionFlags(configCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, sweepCmd, tuneCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().IntVar(&count, "count", 0, "number of balls")
	cmd.Flags().StringToStringVar(&params, "param", nil, "physics parameter override, e.g. gravity=0.3")
}

// loadConfig resolves preset, then config file, then flags. The returned seed
// is never zero.
func loadConfig(cmd *cobra.Command) (*config.Config, int64, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, 0, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadInto(cfg, configFile)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("count") {
		cfg.Balls.Count = count
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if len(params) > 0 {
		values := make(map[string]float64, len(params))
		for name, raw := range params {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("param %s: %w", name, err)
			}
			values[name] = v
		}
		p := cfg.Params()
		if err := p.SetParams(values); err != nil {
			return nil, 0, err
		}
		cfg.SetParams(p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}

	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return cfg, s, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, s, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gui.Run(cfg, s)
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, s, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bounds := cfg.Bounds()

	var input sim.Input
	switch {
	case scenario != "":
		sc, err := automation.LoadScenario(scenario)
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
		if sc.Frames > 0 && !cmd.Flags().Changed("frames") {
			frames = sc.Frames
		}
		if input, err = sc.Script(); err != nil {
			return err
		}
	case len(throw) > 0:
		if len(throw) != 4 {
			return fmt.Errorf("--throw wants x,y,dx,dy, got %v", throw)
		}
		input = control.NewScript(control.Throw(throwFrame, throw[0], throw[1], throw[2], throw[3], throwSteps)...)
	}

	simulator, err := automation.Build(cfg, s, input, nil)
	if err != nil {
		return err
	}
	ctrl := simulator.Controller()
	trail := export.NewTrail()
	simulator.AddObserver(trail)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d frames: %d balls in %.0fx%.0f, seed %d\n", frames, cfg.Balls.Count, bounds.Width, bounds.Height, s)

	simCfg := sim.DefaultConfig()
	simCfg.Frames = frames
	start := time.Now()
	result, err := simulator.Run(ctx, simCfg)
	if result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("stopped early: %v\n", err)
	}
	fmt.Printf("%d frames in %v\n\n", result.Frames, time.Since(start).Round(time.Millisecond))

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE\tFINAL")
	for _, name := range names {
		series := result.Series[name]
		final := 0.0
		if len(series) > 0 {
			final = series[len(series)-1]
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", name, result.Metrics[name], final)
	}
	fmt.Fprintf(w, "balls\t%d\t\n", result.Balls)
	w.Flush()

	if plot {
		for _, name := range names {
			data := result.Series[name]
			if len(data) < 2 {
				continue
			}
			fmt.Println()
			graph := asciigraph.Plot(data,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(name),
			)
			fmt.Println(graph)
		}
	}

	if spectrum {
		freq, power := analysis.DominantFrequency(result.Series["height"], float64(cfg.Window.FPS))
		fmt.Printf("\ndominant height frequency: %.3f Hz (power %.3g)\n", freq, power)
	}

	if svgPath != "" {
		svg := export.NewSVG(bounds)
		ctrl.Render(svg)
		svg.AddTrail(trail.Points, trail.Color)
		if werr := os.WriteFile(svgPath, []byte(svg.String()), 0o644); werr != nil {
			return fmt.Errorf("failed to write svg: %w", werr)
		}
		fmt.Printf("frame written to %s\n", svgPath)
	}

	if jsonPath != "" {
		report := store.NewReport(cfg, s, result, ctrl.Snapshot(), true)
		if jsonPath == "-" {
			if werr := store.WriteJSON(os.Stdout, report); werr != nil {
				return werr
			}
		} else if werr := store.ExportJSON(jsonPath, report); werr != nil {
			return fmt.Errorf("failed to write report: %w", werr)
		}
	}

	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, s, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Frames:    frames,
	}
	results, err := automation.RunSweep(ctx, cfg, s, sweep)
	if err != nil {
		return err
	}

	names := make([]string, 0)
	if len(results) > 0 {
		for name := range results[0].Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\tballs\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g", r.ParamValue)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintf(w, "\t%d\n", r.Balls)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, s, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(grid))
	ranges := make([][]float64, 0, len(grid))
	for _, spec := range grid {
		name, values, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("--grid wants name=v1,v2,..., got %q", spec)
		}
		var vals []float64
		for _, field := range strings.Split(values, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return fmt.Errorf("grid %s: %w", name, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	search := optim.NewGridSearch(names, ranges)
	build := func(params map[string]float64) (*sim.Simulator, error) {
		return automation.Build(cfg, s, nil, params)
	}
	best, val, err := search.Search(ctx, build, sim.Config{Frames: frames, Validate: true}, metricName)
	if err != nil && best == nil {
		return err
	}

	fmt.Printf("evaluated %d points, best %s = %.4f\n", search.Evaluated(), metricName, val)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return err
}
