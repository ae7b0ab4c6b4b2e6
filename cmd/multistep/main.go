package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/askeland/multistep/internal/analysis"
	"github.com/askeland/multistep/internal/config"
	"github.com/askeland/multistep/internal/experiment"
	"github.com/askeland/multistep/internal/export"
	"github.com/askeland/multistep/internal/ode"
	"github.com/askeland/multistep/internal/optim"
	"github.com/askeland/multistep/internal/registry"
	"github.com/askeland/multistep/internal/storage"
	"github.com/askeland/multistep/internal/viz"
)

var (
	dataDir string
	// Run parameters
	nout          int
	tstep         float64
	solverName    string
	atol          float64
	rtol          float64
	maxTimestep   float64
	startTimestep float64
	mxstep        int
	adaptive      bool
	adaptiveOrder bool
	maxOrder      int
	// Config file and preset
	configFile string
	preset     string
	// Compare sweep
	compareTols []float64
	// Phase plot axes
	xAxis int
	yAxis int
	// SVG output
	svgWidth  int
	svgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "multistep",
		Short: "adaptive multistep ODE integration lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".multistep", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [problem]",
		Short: "integrate a problem and store the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runProblem,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [problem]",
		Short: "compare orders and tolerances on the same problem",
		Args:  cobra.ExactArgs(1),
		RunE:  compareRuns,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().Float64SliceVar(&compareTols, "tols", []float64{1e-3, 1e-5, 1e-7}, "relative tolerances to sweep")

	benchCmd := &cobra.Command{
		Use:   "bench [problem]",
		Short: "benchmark a problem across tolerances",
		Args:  cobra.ExactArgs(1),
		RunE:  benchProblem,
	}
	addRunFlags(benchCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	convergenceCmd := &cobra.Command{
		Use:   "convergence [problem]",
		Short: "estimate the observed convergence order",
		Args:  cobra.ExactArgs(1),
		RunE:  convergenceRun,
	}
	addRunFlags(convergenceCmd)

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run samples as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 450, "image height")

	tuneCmd := &cobra.Command{
		Use:   "tune [problem]",
		Short: "grid-search timestep controller settings",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneProblem,
	}
	addRunFlags(tuneCmd)

	liveCmd := &cobra.Command{
		Use:   "live [problem]",
		Short: "integrate with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list available problems and solvers",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New()
			fmt.Println("problems:")
			for _, name := range reg.Problems() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("solvers:")
			for _, name := range reg.Solvers() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for problem: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		compareCmd, benchCmd, analyzeCmd, convergenceCmd, phaseCmd, tuneCmd, liveCmd, problemsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	def := ode.DefaultOptions()
	cmd.Flags().IntVar(&nout, "nout", 10, "number of output intervals")
	cmd.Flags().Float64Var(&tstep, "tstep", 0.1, "output interval length")
	cmd.Flags().StringVar(&solverName, "solver", "adams-bashforth", "solver")
	cmd.Flags().Float64Var(&atol, "atol", def.ATol, "absolute tolerance")
	cmd.Flags().Float64Var(&rtol, "rtol", def.RTol, "relative tolerance")
	cmd.Flags().Float64Var(&maxTimestep, "max-dt", def.MaxTimestep, "maximum internal timestep (-1: unbounded)")
	cmd.Flags().Float64Var(&startTimestep, "start-dt", def.StartTimestep, "initial internal timestep (0: output interval)")
	cmd.Flags().IntVar(&mxstep, "mxstep", def.MXStep, "internal step limit per output interval")
	cmd.Flags().BoolVar(&adaptive, "adaptive", def.Adaptive, "adaptive timestep control")
	cmd.Flags().BoolVar(&adaptiveOrder, "adaptive-order", def.AdaptiveOrder, "adaptive order control")
	cmd.Flags().IntVar(&maxOrder, "max-order", def.MaximumOrder, "maximum scheme order")
}

// buildConfig merges preset, config file and flags, in that order of
// increasing precedence.
func buildConfig(cmd *cobra.Command, problem string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Problem = problem

	if preset != "" {
		p := config.GetPreset(problem, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(problem))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Problem = problem
		cfg = loaded
	}

	if cmd.Flags().Changed("nout") {
		cfg.Nout = nout
	}
	if cmd.Flags().Changed("tstep") {
		cfg.Tstep = tstep
	}
	if cmd.Flags().Changed("solver") {
		cfg.Solver = solverName
	}
	if cmd.Flags().Changed("atol") {
		cfg.ATol = atol
	}
	if cmd.Flags().Changed("rtol") {
		cfg.RTol = rtol
	}
	if cmd.Flags().Changed("max-dt") {
		cfg.MaxTimestep = maxTimestep
	}
	if cmd.Flags().Changed("start-dt") {
		cfg.StartTimestep = startTimestep
	}
	if cmd.Flags().Changed("mxstep") {
		cfg.MXStep = mxstep
	}
	if cmd.Flags().Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if cmd.Flags().Changed("adaptive-order") {
		cfg.AdaptiveOrder = adaptiveOrder
	}
	if cmd.Flags().Changed("max-order") {
		cfg.MaximumOrder = maxOrder
	}

	return cfg, nil
}

func setupExperiment(cfg *config.Config) (*experiment.Experiment, error) {
	reg := registry.New()

	prob, err := reg.GetProblem(cfg.Problem)
	if err != nil {
		return nil, err
	}
	build, err := reg.GetSolver(cfg.Solver)
	if err != nil {
		return nil, err
	}

	opts := cfg.Options()
	exp := experiment.New(experiment.Config{
		Problem: cfg.Problem,
		Solver:  cfg.Solver,
		Nout:    cfg.Nout,
		Tstep:   cfg.Tstep,
		Options: opts,
	})
	slv := build(prob.Derivative, prob.Initial(), opts)
	if err := exp.Setup(prob, slv, reg.DefaultMetrics(prob)); err != nil {
		return nil, err
	}
	return exp, nil
}

func runProblem(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := setupExperiment(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("integrating %s...\n", cfg.Problem)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Problem, cfg.Solver, cfg.Nout, cfg.Tstep, cfg.ATol, cfg.RTol, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("accepted: %d  rejected: %d  rhs evals: %d\n",
		result.Stats.Accepted, result.Stats.Rejected, result.Stats.RHSEvals)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tPROBLEM\tTIME\tNOUT\tTSTEP\tRTOL\tACCEPTED\tREJECTED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%.1e\t%d\t%d\n",
			run.ID,
			run.Problem,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nout,
			run.Tstep,
			run.RTol,
			run.Accepted,
			run.Rejected,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("problem: %s\n", meta.Problem)
	fmt.Printf("samples: %d\n\n", len(result.States))

	numVars := len(result.States[0])
	maxPlots := 6
	if numVars > maxPlots {
		numVars = maxPlots
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(result.States))
		for i := range result.States {
			if varIdx < len(result.States[i]) {
				data[i] = result.States[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x%d vs time", varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	graph := asciigraph.Plot(result.Dts,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("timestep at output boundaries"),
	)
	fmt.Println(graph)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(result.States) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "dt", "order"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'g', 17, 64),
			strconv.FormatFloat(result.Dts[i], 'g', 17, 64),
			strconv.Itoa(result.Orders[i]),
		}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	result.Stats = ode.Stats{
		Accepted: meta.Accepted,
		Rejected: meta.Rejected,
		RHSEvals: meta.RHSEvals,
	}
	result.Metrics = meta.Metrics

	return storage.ExportJSONStdout(meta.Problem, meta.Solver, meta.Nout, meta.Tstep, result)
}

func compareRuns(cmd *cobra.Command, args []string) error {
	problem := args[0]

	fmt.Printf("comparing settings for %s (nout=%d, tstep=%.4f)\n\n", problem, nout, tstep)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RTOL\tORDER CTRL\tACCEPTED\tREJECTED\tRHS EVALS\tGLOBAL ERR\tTIME")

	for _, tol := range compareTols {
		for _, adaptOrd := range []bool{false, true} {
			cfg, err := buildConfig(cmd, problem)
			if err != nil {
				return err
			}
			cfg.RTol = tol
			cfg.AdaptiveOrder = adaptOrd

			exp, err := setupExperiment(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			elapsed := time.Since(start)
			if err != nil {
				fmt.Fprintf(w, "%.1e\t%v\terror: %v\n", tol, adaptOrd, err)
				continue
			}

			ordCtrl := "fixed"
			if adaptOrd {
				ordCtrl = "adaptive"
			}
			globalErr := "n/a"
			if ge, ok := result.Metrics["global_error"]; ok {
				globalErr = fmt.Sprintf("%.2e", ge)
			}
			fmt.Fprintf(w, "%.1e\t%s\t%d\t%d\t%d\t%s\t%v\n",
				tol, ordCtrl,
				result.Stats.Accepted, result.Stats.Rejected, result.Stats.RHSEvals,
				globalErr, elapsed)
		}
	}

	return w.Flush()
}

func benchProblem(cmd *cobra.Command, args []string) error {
	problem := args[0]

	tols := []float64{1e-3, 1e-5, 1e-7, 1e-9}
	tsteps := []float64{0.05, 0.1, 0.5}

	fmt.Printf("benchmarking %s\n\n", problem)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TSTEP\tRTOL\tSTEPS\tTIME\tSTEPS/SEC")

	for _, ts := range tsteps {
		for _, tol := range tols {
			cfg, err := buildConfig(cmd, problem)
			if err != nil {
				return err
			}
			cfg.Tstep = ts
			cfg.RTol = tol

			exp, err := setupExperiment(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := result.Stats.Accepted
			stepsPerSec := float64(steps) / elapsed.Seconds()

			fmt.Fprintf(w, "%.3f\t%.1e\t%d\t%v\t%.0f\n",
				ts, tol, steps, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(result.States) == 0 || len(result.States[0]) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("problem: %s\n\n", meta.Problem)

	data := make([]float64, len(result.States))
	for i := range result.States {
		data[i] = result.States[i][0]
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x0)"),
	)
	fmt.Println(graph)
	fmt.Println()

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(plotData); i++ {
		if plotData[i] > maxPower {
			maxPower = plotData[i]
			maxIdx = i
		}
	}

	duration := float64(meta.Nout) * meta.Tstep
	if duration > 0 {
		freq := float64(maxIdx) / duration
		fmt.Printf("dominant frequency: %.3f hz\n", freq)
		if freq > 0 {
			fmt.Printf("period: %.3f s\n", 1.0/freq)
		}
	}

	return nil
}

func convergenceRun(cmd *cobra.Command, args []string) error {
	problem := args[0]

	reg := registry.New()
	prob, err := reg.GetProblem(problem)
	if err != nil {
		return err
	}
	if _, ok := prob.(ode.ExactSolution); !ok {
		return fmt.Errorf("problem %s has no exact solution", problem)
	}

	// Fixed-step runs at halving dt expose the scheme order.
	dts := []float64{0.02, 0.01, 0.005, 0.0025}
	errs := make([]float64, 0, len(dts))
	usedDts := make([]float64, 0, len(dts))

	fmt.Printf("convergence sweep for %s (order %d)\n\n", problem, maxOrder)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tGLOBAL ERR\tSTEPS")

	for _, dt := range dts {
		cfg, err := buildConfig(cmd, problem)
		if err != nil {
			return err
		}
		cfg.Adaptive = false
		cfg.AdaptiveOrder = false
		cfg.StartTimestep = dt

		exp, err := setupExperiment(cfg)
		if err != nil {
			return err
		}
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}

		ge := result.Metrics["global_error"]
		fmt.Fprintf(w, "%.4g\t%.3e\t%d\n", dt, ge, result.Stats.Accepted)
		errs = append(errs, ge)
		usedDts = append(usedDts, dt)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	order := analysis.ObservedOrder(usedDts, errs)
	fmt.Printf("\nobserved order: %.2f\n", order)
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	states := result.States

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if len(states[0]) <= xAxis || len(states[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("problem: %s\n", meta.Problem)
	fmt.Printf("x-axis: x%d, y-axis: x%d\n\n", xAxis, yAxis)

	xData := make([]float64, len(states))
	yData := make([]float64, len(states))
	for i := range states {
		xData[i] = states[i][xAxis]
		yData[i] = states[i][yAxis]
	}

	xMin, xMax := xData[0], xData[0]
	yMin, yMax := yData[0], yData[0]
	for i := range xData {
		if xData[i] < xMin {
			xMin = xData[i]
		}
		if xData[i] > xMax {
			xMax = xData[i]
		}
		if yData[i] < yMin {
			yMin = yData[i]
		}
		if yData[i] > yMax {
			yMax = yData[i]
		}
	}

	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	width := 70
	height := 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := range xData {
		px := int(float64(width-1) * (xData[i] - xMin) / xRange)
		py := int(float64(height-1) * (yData[i] - yMin) / yRange)
		py = height - 1 - py
		if px >= 0 && px < width && py >= 0 && py < height {
			if i < len(xData)/3 {
				canvas[py][px] = '.'
			} else if i < 2*len(xData)/3 {
				canvas[py][px] = 'o'
			} else {
				canvas[py][px] = '●'
			}
		}
	}

	fmt.Printf("  %.2f ┌", yMax)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┐")

	for i := range canvas {
		if i == height/2 {
			fmt.Printf("  %.2f │", (yMax+yMin)/2)
		} else {
			fmt.Print("       │")
		}
		fmt.Print(string(canvas[i]))
		fmt.Println("│")
	}

	fmt.Printf("  %.2f └", yMin)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┘")

	fmt.Printf("       %.2f", xMin)
	padding := width - 20
	for i := 0; i < padding; i++ {
		fmt.Print(" ")
	}
	fmt.Printf("%.2f\n", xMax)

	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	svg := export.ResultToSVG(result, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("not enough data to render")
	}
	fmt.Print(svg)
	return nil
}

func tuneProblem(cmd *cobra.Command, args []string) error {
	problem := args[0]

	gs := optim.NewGridSearch(
		[]string{"dtfac", "reject_shrink"},
		[][]float64{
			{0.5, 0.65, 0.75, 0.85},
			{0.3, 0.5, 0.7},
		},
	)

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg, err := buildConfig(cmd, problem)
		if err != nil {
			return nil, err
		}
		cfg.DtFac = params["dtfac"]
		cfg.RejectShrink = params["reject_shrink"]
		return setupExperiment(cfg)
	}

	fmt.Printf("tuning controller settings for %s...\n", problem)
	best, score, err := gs.Search(context.Background(), build,
		func(result *ode.Result) float64 {
			return float64(result.Stats.RHSEvals)
		})
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no candidate completed")
	}

	fmt.Printf("best settings (rhs evals: %.0f):\n", score)
	fmt.Printf("  dtfac: %.2f\n", best["dtfac"])
	fmt.Printf("  reject_shrink: %.2f\n", best["reject_shrink"])
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	reg := registry.New()
	prob, err := reg.GetProblem(cfg.Problem)
	if err != nil {
		return err
	}
	build, err := reg.GetSolver(cfg.Solver)
	if err != nil {
		return err
	}

	slv := build(prob.Derivative, prob.Initial(), cfg.Options())
	return viz.RunLive(cfg.Problem, slv, cfg.Nout, cfg.Tstep)
}
