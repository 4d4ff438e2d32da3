package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/ofey404/gas-properties/internal/analysis"
	"github.com/ofey404/gas-properties/internal/collision"
	"github.com/ofey404/gas-properties/internal/config"
	"github.com/ofey404/gas-properties/internal/export"
	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/ofey404/gas-properties/internal/metrics"
	"github.com/ofey404/gas-properties/internal/model"
	"github.com/ofey404/gas-properties/internal/sim"
	"github.com/ofey404/gas-properties/internal/storage"
	"github.com/ofey404/gas-properties/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	seed        int64
	heavy       int
	light       int
	temperature float64
	width       float64
	dividerX    float64
	lidWidth    float64
	wallVel     float64
	cellLength  float64
	noPairwise  bool
	configFile  string
	preset      string
	numRuns     int
	outFile     string
	svgScale    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gasprop",
		Short: "ideal gas particle simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gasprop", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
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
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [scenario]",
		Short: "render an SVG snapshot after a warmup run",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSnapshot,
	}
	addScenarioFlags(snapshotCmd)
	snapshotCmd.Flags().StringVar(&outFile, "out", "snapshot.svg", "output file")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 0.05, "pixels per pm")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "run replicated simulations and report mean pressure",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	addScenarioFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of replicas")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput",
		RunE:  benchScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the pressure series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	histogramCmd := &cobra.Command{
		Use:   "histogram [scenario]",
		Short: "plot the speed distribution after a warmup run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotHistogram,
	}
	addScenarioFlags(histogramCmd)

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, snapshotCmd, ensembleCmd, benchCmd, presetsCmd, analyzeCmd, histogramCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in ps")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in ps")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&heavy, "heavy", config.DefaultHeavyCount, "heavy particle count")
	cmd.Flags().IntVar(&light, "light", 0, "light particle count")
	cmd.Flags().Float64Var(&temperature, "temperature", config.DefaultTemperature, "injection temperature in K")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "container width in pm")
	cmd.Flags().Float64Var(&dividerX, "divider", 0, "divider x position in pm (0 = none)")
	cmd.Flags().Float64Var(&lidWidth, "lid", 0, "lid opening width in pm (0 = closed)")
	cmd.Flags().Float64Var(&wallVel, "wall-velocity", 0, "left wall speed in pm/ps (positive compresses)")
	cmd.Flags().Float64Var(&cellLength, "cell", 0, "region cell length in pm (0 = auto)")
	cmd.Flags().BoolVar(&noPairwise, "no-collisions", false, "disable particle-particle collisions")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file, and CLI flags. Flags the user
// set explicitly win over file values, which win over preset values.
func resolveConfig(cmd *cobra.Command, scenario string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenario

	if preset != "" {
		p := config.GetPreset(scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Scenario = scenario
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("heavy") {
		cfg.Particles.Heavy = heavy
	}
	if cmd.Flags().Changed("light") {
		cfg.Particles.Light = light
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Temperature = temperature
	}
	if cmd.Flags().Changed("width") {
		cfg.Container.Width = width
	}
	if cmd.Flags().Changed("divider") {
		cfg.Container.DividerX = dividerX
	}
	if cmd.Flags().Changed("lid") {
		cfg.Container.LidWidth = lidWidth
	}
	if cmd.Flags().Changed("wall-velocity") {
		cfg.Container.LeftWallVelocity = wallVel
	}
	if cmd.Flags().Changed("cell") {
		cfg.Collisions.CellLength = cellLength
	}
	if cmd.Flags().Changed("no-collisions") {
		cfg.Collisions.ParticleParticle = !noPairwise
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSimulation assembles a container and species systems from a config.
func buildSimulation(cfg *config.Config, rng *rand.Rand) (*sim.Simulation, error) {
	c := model.NewContainer()
	if cfg.Container.Width != 0 {
		if err := c.SetWidth(cfg.Container.Width); err != nil {
			return nil, err
		}
	}

	for _, o := range cfg.Container.Obstacles {
		maxX := c.Right() - o.OffsetX
		minY := c.Bottom() + o.OffsetY
		b := gas.Bounds2{MinX: maxX - o.Width, MinY: minY, MaxX: maxX, MaxY: minY + o.Height}
		if err := c.AddObstacle(b); err != nil {
			return nil, err
		}
	}

	if cfg.Container.DividerX != 0 {
		if err := c.SetDivider(cfg.Container.DividerX); err != nil {
			return nil, err
		}
	}
	if cfg.Container.LidWidth > 0 {
		c.SetLidWidth(cfg.Container.LidWidth)
	}
	if cfg.Container.LeftWallVelocity != 0 {
		c.SetLeftWallVelocity(gas.Vector2{X: cfg.Container.LeftWallVelocity})
	}

	var resolver collision.BoundaryResolver
	switch {
	case len(c.Obstacles()) > 0:
		resolver = collision.NewLeakageResolver()
	case c.HasDivider():
		resolver = collision.NewDividedResolver()
	default:
		resolver = collision.NewContainerResolver()
	}

	heavySys := model.NewParticleSystem("heavy", model.HeavyParticleRadius, model.HeavyParticleMass, rng)
	lightSys := model.NewParticleSystem("light", model.LightParticleRadius, model.LightParticleMass, rng)
	systems := []*model.ParticleSystem{heavySys, lightSys}

	opts := []sim.Option{
		sim.WithBoundaryResolver(resolver),
		sim.WithTemperature(cfg.Temperature),
	}
	if cfg.Collisions.CellLength > 0 {
		opts = append(opts, sim.WithCellLength(cfg.Collisions.CellLength))
	}

	s := sim.New(c, systems, rng, opts...)
	s.Detector().ParticleParticleCollisionsEnabled = cfg.Collisions.ParticleParticle

	injection := model.DefaultInjection(c)
	heavySys.AddParticles(cfg.Particles.Heavy, cfg.Temperature, injection)
	lightSys.AddParticles(cfg.Particles.Light, cfg.Temperature, injection)

	if c.HasDivider() {
		if err := s.ReinitializePopulations(); err != nil {
			return nil, err
		}
	} else {
		heavySys.PlaceUniformly(c.Bounds(), c.Obstacles())
		lightSys.PlaceUniformly(c.Bounds(), c.Obstacles())
	}

	if cfg.Container.LeftWallVelocity != 0 {
		s.AddObserver(&pistonDriver{sim: s, speed: cfg.Container.LeftWallVelocity})
	}

	s.AddMetric(metrics.NewTemperature())
	s.AddMetric(metrics.NewPressure(60))
	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewCollisionRate(60))

	return s, nil
}

// pistonDriver advances the left wall between ticks. When the width range
// runs out the wall stops and its velocity is cleared.
type pistonDriver struct {
	sim   *sim.Simulation
	speed float64
}

func (p *pistonDriver) OnTick(snap gas.Snapshot) {
	c := p.sim.Container
	if err := c.SetWidth(c.Width() - p.speed*snap.Dt); err != nil {
		c.SetLeftWallVelocity(gas.Vector2{})
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	s, err := buildSimulation(cfg, rng)
	if err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Scenario)
	start := time.Now()

	result, err := s.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	total := cfg.Particles.Heavy + cfg.Particles.Light
	runID, err := st.Save(cfg.Scenario, cfg.Dt, cfg.Duration, cfg.Seed, total, cfg.Temperature, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	s, err := buildSimulation(cfg, rng)
	if err != nil {
		return err
	}

	return viz.Run(s, cfg.Scenario, cfg.Dt)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tPARTICLES\tTEMP")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fps\t%.4fps\t%d\t%.0fK\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Particles,
			run.Temperature,
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

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(series.Times))

	charts := []struct {
		caption string
		data    []float64
	}{
		{"temperature (K)", series.Temperatures},
		{"pressure", series.Pressures},
		{"kinetic energy", series.KineticEnergy},
	}

	for _, chart := range charts {
		graph := asciigraph.Plot(chart.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(chart.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	collisions := make([]float64, len(series.WallCollisions))
	for i, c := range series.WallCollisions {
		collisions[i] = float64(c)
	}
	graph := asciigraph.Plot(collisions,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("wall collisions per tick"),
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

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		Times:          series.Times,
		KineticEnergy:  series.KineticEnergy,
		Temperatures:   series.Temperatures,
		Pressures:      series.Pressures,
		WallCollisions: series.WallCollisions,
		Metrics:        meta.Metrics,
		StepsTaken:     len(series.Times),
	}

	return export.WriteJSON(os.Stdout, meta.Scenario, meta.Dt, meta.Duration, result)
}

func renderSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	s, err := buildSimulation(cfg, rng)
	if err != nil {
		return err
	}

	if _, err := s.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}); err != nil {
		return err
	}

	svg := export.SnapshotToSVG(s.Container, s.AllParticles(), svgScale)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d particles at t=%.2f ps)\n", outFile, len(s.AllParticles()), s.Time())
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	// Catch geometry errors once before spawning replicas.
	if _, err := buildSimulation(cfg, rand.New(rand.NewSource(cfg.Seed))); err != nil {
		return err
	}

	ensemble := sim.NewEnsemble(numRuns, cfg.Seed, func(rng *rand.Rand) *sim.Simulation {
		s, _ := buildSimulation(cfg, rng)
		return s
	})

	fmt.Printf("running %d replicas of %s...\n", numRuns, cfg.Scenario)
	start := time.Now()

	results, err := ensemble.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPLICA\tPRESSURE\tTEMPERATURE")
	for i, r := range results {
		n := len(r.Times)
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "%d\t%.6f\t%.1fK\n", i, r.Pressures[n-1], r.Temperatures[n-1])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmean pressure: %.6f\n", sim.MeanPressure(results))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Pressures) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	ps := analysis.PowerSpectrum(series.Pressures)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("pressure power spectrum"),
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

	freq := float64(maxIdx) / meta.Duration
	fmt.Printf("dominant frequency: %.3f cycles/ps\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f ps\n", 1.0/freq)
	}

	return nil
}

func plotHistogram(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	s, err := buildSimulation(cfg, rng)
	if err != nil {
		return err
	}

	if _, err := s.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}); err != nil {
		return err
	}

	particles := s.AllParticles()
	if len(particles) == 0 {
		return fmt.Errorf("no particles")
	}

	// Bin out to three times the mean speed; the Maxwell tail beyond
	// that is sparse.
	maxSpeed := 3 * analysis.MeanSpeed(particles)
	hist := analysis.SpeedHistogram(particles, 40, maxSpeed)

	graph := asciigraph.Plot(hist,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("speed distribution, 0 to %.0f pm/ps", maxSpeed)),
	)
	fmt.Println(graph)
	fmt.Println()
	fmt.Printf("mean speed: %.1f pm/ps\n", analysis.MeanSpeed(particles))
	fmt.Printf("rms speed:  %.1f pm/ps\n", analysis.RMSSpeed(particles))
	fmt.Printf("temperature: %.1f K\n", analysis.KineticTemperature(particles))

	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	counts := []int{100, 400, 1000}
	dts := []float64{0.002, 0.005, 0.01}

	fmt.Println("benchmarking tick throughput")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		for _, step := range dts {
			rng := rand.New(rand.NewSource(42))
			s := sim.StandardScenario(n, config.DefaultTemperature, rng)

			start := time.Now()
			result, err := s.Run(context.Background(), sim.Config{Dt: step, Duration: 1.0})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%.4fps\t%d\t%v\t%.0f\n",
				n, step, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
