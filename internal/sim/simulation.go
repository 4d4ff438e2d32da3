// Package sim drives the gas model: it owns the container, the particle
// systems, and the collision detector, and advances them one tick at a time.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/ofey404/gas-properties/internal/collision"
	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/ofey404/gas-properties/internal/model"
)

// Config for a timed run.
type Config struct {
	Dt       float64 // ps
	Duration float64 // ps
}

// Result of a timed run: per-tick series and final metric values.
type Result struct {
	Times          []float64
	KineticEnergy  []float64
	Temperatures   []float64
	Pressures      []float64
	WallCollisions []int
	Metrics        map[string]float64
	StepsTaken     int
}

// Simulation is the tick driver. All methods must be called from one
// goroutine; a tick is atomic and geometry mutations (resize, divider,
// particle counts) must happen between ticks, never during one.
type Simulation struct {
	Container *model.Container

	systems  []*model.ParticleSystem
	escaped  *model.ParticleSystem
	detector *collision.Detector

	metrics   []gas.Metric
	observers []gas.Observer

	rng  *rand.Rand
	time float64

	temperature  float64 // injection temperature target, K
	injection    model.InjectionOptions
	detectorOpts []collision.Option
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithBoundaryResolver selects the container-variant collision policy.
func WithBoundaryResolver(r collision.BoundaryResolver) Option {
	return func(s *Simulation) { s.detectorOpts = append(s.detectorOpts, collision.WithBoundaryResolver(r)) }
}

// WithCellLength overrides the region cell size.
func WithCellLength(length float64) Option {
	return func(s *Simulation) { s.detectorOpts = append(s.detectorOpts, collision.WithCellLength(length)) }
}

// WithTemperature sets the injection temperature target.
func WithTemperature(kelvin float64) Option {
	return func(s *Simulation) { s.temperature = kelvin }
}

// New builds a simulation over the given container and species systems.
// The rng seeds particle injection and must not be nil.
func New(c *model.Container, systems []*model.ParticleSystem, rng *rand.Rand, opts ...Option) *Simulation {
	s := &Simulation{
		Container:   c,
		systems:     systems,
		escaped:     model.NewParticleSystem("escaped", 0, 0, rng),
		rng:         rng,
		temperature: 300,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.injection = model.DefaultInjection(c)
	s.detector = collision.NewDetector(c, systems, s.detectorOpts...)
	return s
}

func (s *Simulation) AddMetric(m gas.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o gas.Observer) { s.observers = append(s.observers, o) }

// Detector exposes the collision engine for toggling pairwise collisions.
func (s *Simulation) Detector() *collision.Detector { return s.detector }

// Systems are the in-container particle collections, one per species.
func (s *Simulation) Systems() []*model.ParticleSystem { return s.systems }

// Escaped holds particles that left through the lid opening.
func (s *Simulation) Escaped() *model.ParticleSystem { return s.escaped }

func (s *Simulation) Time() float64 { return s.time }

// Step advances the model by dt: kinematic integration, collision update,
// escape transfer, then metric/observer notification.
func (s *Simulation) Step(dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt=%g", gas.ErrInvalidTimeStep, dt)
	}

	for _, sys := range s.systems {
		if err := sys.StepAll(dt); err != nil {
			return err
		}
	}
	if err := s.escaped.StepAll(dt); err != nil {
		return err
	}

	if err := s.detector.Update(); err != nil {
		return err
	}

	s.transferEscaped()
	s.time += dt

	snap := s.snapshot(dt)
	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, o := range s.observers {
		o.OnTick(snap)
	}
	return nil
}

// transferEscaped moves particles that rose through the lid opening into the
// escaped collection, and discards escaped particles that have left the
// modeled area entirely.
func (s *Simulation) transferEscaped() {
	top := s.Container.Top()
	for _, sys := range s.systems {
		sys.TransferTo(s.escaped, func(p *model.Particle) bool {
			return p.Bottom() > top
		})
	}

	// Particles more than one container height above the box are gone for good.
	limit := top + s.Container.Height
	s.escaped.RemoveIf(func(p *model.Particle) bool {
		return p.Bottom() > limit
	})
}

func (s *Simulation) snapshot(dt float64) gas.Snapshot {
	count := 0
	ke := 0.0
	massTotal := 0.0
	comWeighted := 0.0
	for _, sys := range s.systems {
		count += sys.Len()
		ke += sys.TotalKineticEnergy()
		m := sys.TotalMass()
		massTotal += m
		comWeighted += m * sys.CenterOfMassX()
	}
	comX := 0.0
	if massTotal > 0 {
		comX = comWeighted / massTotal
	}
	return gas.Snapshot{
		Time:            s.time,
		Dt:              dt,
		ParticleCount:   count,
		KineticEnergy:   ke,
		CenterOfMassX:   comX,
		WallCollisions:  s.detector.ParticleContainerCollisions(),
		WallImpulse:     s.detector.WallImpulse(),
		ContainerWidth:  s.Container.Width(),
		ContainerHeight: s.Container.Height,
		ContainerDepth:  s.Container.Depth,
	}
}

// Run executes duration/dt ticks, recording per-tick series. Cancellation is
// checked between ticks; a tick never suspends mid-flight.
func (s *Simulation) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt=%g", gas.ErrInvalidTimeStep, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration=%g", gas.ErrInvalidTimeStep, cfg.Duration)
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:          make([]float64, 0, steps),
		KineticEnergy:  make([]float64, 0, steps),
		Temperatures:   make([]float64, 0, steps),
		Pressures:      make([]float64, 0, steps),
		WallCollisions: make([]int, 0, steps),
		Metrics:        make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	recorder := &seriesRecorder{sim: s, result: result}
	s.AddObserver(recorder)
	defer func() {
		s.observers = s.observers[:len(s.observers)-1]
	}()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.Step(cfg.Dt); err != nil {
			return result, err
		}
		result.StepsTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// seriesRecorder appends per-tick aggregates to the result.
type seriesRecorder struct {
	sim    *Simulation
	result *Result
}

func (r *seriesRecorder) OnTick(snap gas.Snapshot) {
	temperature := 0.0
	if snap.ParticleCount > 0 {
		avgKE := snap.KineticEnergy / float64(snap.ParticleCount)
		temperature = (2.0 / 3.0) * avgKE / gas.BoltzmannConstant
	}
	pressure := 0.0
	if snap.Dt > 0 {
		area := 2*(snap.ContainerWidth*snap.ContainerHeight) +
			2*(snap.ContainerWidth*snap.ContainerDepth) +
			2*(snap.ContainerHeight*snap.ContainerDepth)
		if area > 0 {
			pressure = snap.WallImpulse / (snap.Dt * area)
		}
	}

	r.result.Times = append(r.result.Times, snap.Time)
	r.result.KineticEnergy = append(r.result.KineticEnergy, snap.KineticEnergy)
	r.result.Temperatures = append(r.result.Temperatures, temperature)
	r.result.Pressures = append(r.result.Pressures, pressure)
	r.result.WallCollisions = append(r.result.WallCollisions, snap.WallCollisions)
}
