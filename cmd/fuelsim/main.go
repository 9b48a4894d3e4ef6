package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fuelsim/internal/config"
	"github.com/san-kum/fuelsim/internal/disturbance"
	"github.com/san-kum/fuelsim/internal/export"
	"github.com/san-kum/fuelsim/internal/fuelcell"
	"github.com/san-kum/fuelsim/internal/metrics"
	"github.com/san-kum/fuelsim/internal/optim"
	"github.com/san-kum/fuelsim/internal/sim"
	"github.com/san-kum/fuelsim/internal/tui"
)

var (
	chemistry   string
	activeArea  float64
	opTemp      float64
	opPressure  float64
	fuelFlow    float64
	airFlow     float64
	voltageSet  float64
	tempSet     float64
	kp          float64
	ki          float64
	kd          float64
	duration    float64
	timeStep    float64
	seed        int64
	schedule    string
	preset      string
	configFile  string
	jsonOut     string
	csvOut      string
	plot        bool
	verbose     bool
	runs        int
	sweepValues []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fuelsim",
		Short: "closed-loop fuel cell stack simulation",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one simulation",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write run data to JSON file")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write run data to CSV file")
	runCmd.Flags().BoolVar(&plot, "plot", false, "render series as terminal graphs")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run with a live terminal view",
		RunE:  watchSimulation,
	}
	addScenarioFlags(watchCmd)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "run an ensemble of seeded runs in parallel",
		RunE:  runBatch,
	}
	addScenarioFlags(batchCmd)
	batchCmd.Flags().IntVar(&runs, "runs", 8, "number of runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search voltage loop gains for stability",
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", []float64{0.1, 0.5, 1.0, 2.0}, "candidate gain values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "preset\tchemistry\tduration\tdisturbance")
			for _, name := range config.ListPresets() {
				sc := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.0fs\t%s\n", name, sc.Chemistry, sc.Duration, sc.Disturbance)
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, watchCmd, batchCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&chemistry, "chemistry", "pem", fmt.Sprintf("cell chemistry %v", fuelcell.Chemistries()))
	cmd.Flags().Float64Var(&activeArea, "area", 100, "active area, cm²")
	cmd.Flags().Float64Var(&opTemp, "op-temp", 70, "operating temperature, °C")
	cmd.Flags().Float64Var(&opPressure, "op-pressure", 1.5, "operating pressure, atm")
	cmd.Flags().Float64Var(&fuelFlow, "fuel-flow", 5, "fuel flow rate")
	cmd.Flags().Float64Var(&airFlow, "air-flow", 10, "air flow rate")
	cmd.Flags().Float64Var(&voltageSet, "voltage-setpoint", 0.7, "voltage setpoint, V")
	cmd.Flags().Float64Var(&tempSet, "temp-setpoint", 70, "temperature setpoint, °C")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration, s")
	cmd.Flags().Float64Var(&timeStep, "dt", config.DefaultTimeStep, "timestep, s")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = system entropy)")
	cmd.Flags().StringVar(&schedule, "disturbance", "load_following", "disturbance schedule")
	cmd.Flags().StringVar(&preset, "preset", "", "use named preset")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log runtime clamps")
}

// scenario assembles the effective scenario: preset, then config file, then
// explicit flags, each layer overriding the previous.
func scenario(cmd *cobra.Command) (*config.Scenario, error) {
	sc := config.DefaultScenario()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		sc = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		sc = loaded
	}

	apply := func(flag string, fn func()) {
		if cmd.Flags().Changed(flag) {
			fn()
		}
	}
	apply("chemistry", func() { sc.Chemistry = chemistry })
	apply("area", func() { sc.ActiveArea = activeArea })
	apply("op-temp", func() { sc.OperatingTemperature = opTemp })
	apply("op-pressure", func() { sc.OperatingPressure = opPressure })
	apply("fuel-flow", func() { sc.FuelFlowRate = fuelFlow })
	apply("air-flow", func() { sc.AirFlowRate = airFlow })
	apply("voltage-setpoint", func() { sc.Setpoints.Voltage = voltageSet })
	apply("temp-setpoint", func() { sc.Setpoints.Temperature = tempSet })
	apply("kp", func() { sc.VoltageLoop.Kp = kp })
	apply("ki", func() { sc.VoltageLoop.Ki = ki })
	apply("kd", func() { sc.VoltageLoop.Kd = kd })
	apply("time", func() { sc.Duration = duration })
	apply("dt", func() { sc.TimeStep = timeStep })
	apply("seed", func() { sc.Seed = seed })
	apply("disturbance", func() { sc.Disturbance = schedule })

	return sc, nil
}

type wiring struct {
	stack *fuelcell.Stack
	sched disturbance.Profile
	cp    sim.ControlParams
	p     sim.Params
	sc    *config.Scenario
}

func wire(cmd *cobra.Command) (*wiring, error) {
	sc, err := scenario(cmd)
	if err != nil {
		return nil, err
	}

	chem, err := fuelcell.ParseChemistry(sc.Chemistry)
	if err != nil {
		return nil, err
	}

	stack, err := fuelcell.New(fuelcell.Config{
		Chemistry:            chem,
		ActiveArea:           sc.ActiveArea,
		OperatingTemperature: sc.OperatingTemperature,
		OperatingPressure:    sc.OperatingPressure,
		FuelFlowRate:         sc.FuelFlowRate,
		AirFlowRate:          sc.AirFlowRate,
	})
	if err != nil {
		return nil, err
	}

	sched, ok := disturbance.ByName(sc.Disturbance)
	if !ok {
		return nil, fmt.Errorf("unknown disturbance schedule: %s (available: %v)", sc.Disturbance, disturbance.Names())
	}

	return &wiring{
		stack: stack,
		sched: sched,
		cp: sim.ControlParams{
			VoltageSetpoint:     sc.Setpoints.Voltage,
			TemperatureSetpoint: sc.Setpoints.Temperature,
			VoltageLoop:         sim.Gains{Kp: sc.VoltageLoop.Kp, Ki: sc.VoltageLoop.Ki, Kd: sc.VoltageLoop.Kd},
			CoolingLoop:         sim.Gains{Kp: sc.CoolingLoop.Kp, Ki: sc.CoolingLoop.Ki, Kd: sc.CoolingLoop.Kd},
		},
		p: sim.Params{
			Duration: sc.Duration,
			TimeStep: sc.TimeStep,
			Seed:     sc.Seed,
			Init: sim.InitialConditions{
				Voltage:     sc.Init.Voltage,
				Current:     sc.Init.Current,
				Temperature: sc.Init.Temperature,
				Pressure:    sc.Init.Pressure,
			},
		},
		sc: sc,
	}, nil
}

func logger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	w, err := wire(cmd)
	if err != nil {
		return err
	}

	s := sim.New(w.stack, w.sched)
	s.SetLogger(logger())
	s.AddMetric(metrics.NewControlEffort())
	s.AddMetric(metrics.NewThermalDeviation(w.cp.TemperatureSetpoint))
	s.AddMetric(metrics.NewPeakPower())

	fmt.Printf("running %s stack for %.0fs (dt=%.2g, disturbance=%s)...\n",
		w.sc.Chemistry, w.p.Duration, w.p.TimeStep, w.sched.Name)
	start := time.Now()

	res, err := s.Run(w.cp, w.p)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps in %v\n\n", len(res.Series.Time), time.Since(start))
	printSummary(res)

	if plot {
		plotSeries("power (W)", res.Series.Power)
		plotSeries("voltage (V)", res.Series.Voltage)
		plotSeries("temperature (°C)", res.Series.Temperature)
	}

	meta := export.Meta{
		Chemistry:   w.sc.Chemistry,
		Disturbance: w.sched.Name,
		TimeStep:    w.p.TimeStep,
		Duration:    w.p.Duration,
	}
	if jsonOut != "" {
		if err := export.WriteJSONFile(jsonOut, meta, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOut)
	}
	if csvOut != "" {
		if err := export.WriteCSVFile(csvOut, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvOut)
	}

	return nil
}

func watchSimulation(cmd *cobra.Command, args []string) error {
	w, err := wire(cmd)
	if err != nil {
		return err
	}
	return tui.Run(w.stack, w.sched, w.cp, w.p, w.sc.Chemistry)
}

func runBatch(cmd *cobra.Command, args []string) error {
	w, err := wire(cmd)
	if err != nil {
		return err
	}

	seedStart := w.p.Seed
	if seedStart == 0 {
		seedStart = time.Now().UnixNano()
	}

	fmt.Printf("dispatching %d runs (seeds %d..%d)...\n", runs, seedStart, seedStart+int64(runs)-1)
	start := time.Now()

	e := sim.NewEnsemble(w.stack, w.sched, runs, seedStart)
	results, err := e.Run(context.Background(), w.cp, w.p)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "run\tavg power\tavg eff\tstability\tresponse")
	for i, r := range results {
		s := r.Summary
		fmt.Fprintf(tw, "%d\t%.4f\t%.2f\t%.4f\t%.0fs\n", i, s.AveragePower, s.AverageEfficiency, s.StabilityIndex, s.ResponseTime)
	}
	tw.Flush()
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	w, err := wire(cmd)
	if err != nil {
		return err
	}

	g := &optim.GridSearch{
		Kp: sweepValues,
		Ki: []float64{w.cp.VoltageLoop.Ki},
		Kd: []float64{w.cp.VoltageLoop.Kd},
	}

	fmt.Printf("sweeping kp over %v...\n", sweepValues)
	best, score, err := g.Best(context.Background(), w.stack, w.sched, w.cp, w.p,
		func(s sim.Summary) float64 { return s.StabilityIndex })
	if err != nil {
		return err
	}

	fmt.Printf("best gains: kp=%.3g ki=%.3g kd=%.3g (stability %.4f)\n", best.Kp, best.Ki, best.Kd, score)
	return nil
}

func printSummary(res *sim.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "summary:")
	fmt.Fprintf(w, "  average power\t%.4f W\n", res.Summary.AveragePower)
	fmt.Fprintf(w, "  average efficiency\t%.2f %%\n", res.Summary.AverageEfficiency)
	fmt.Fprintf(w, "  stability index\t%.4f\n", res.Summary.StabilityIndex)
	fmt.Fprintf(w, "  response time\t%.0f s\n", res.Summary.ResponseTime)
	for name, val := range res.Metrics {
		fmt.Fprintf(w, "  %s\t%.4f\n", name, val)
	}
	w.Flush()
}

func plotSeries(caption string, data []float64) {
	if len(data) < 2 {
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println()
	fmt.Println(graph)
}
