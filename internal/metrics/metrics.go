// Package metrics implements gas.Metric over per-tick snapshots: kinetic
// temperature, wall-impulse pressure, energy drift, and collision rate.
package metrics

import (
	"math"

	"github.com/ofey404/gas-properties/internal/gas"
)

// Temperature averages the kinetic temperature (2/3)<KE>/k over a run.
type Temperature struct {
	name    string
	total   float64
	samples int
}

func NewTemperature() *Temperature {
	return &Temperature{name: "temperature"}
}

func (t *Temperature) Name() string { return t.name }

func (t *Temperature) Observe(s gas.Snapshot) {
	if s.ParticleCount == 0 {
		return
	}
	avgKE := s.KineticEnergy / float64(s.ParticleCount)
	t.total += (2.0 / 3.0) * avgKE / gas.BoltzmannConstant
	t.samples++
}

func (t *Temperature) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return t.total / float64(t.samples)
}

func (t *Temperature) Reset() {
	t.total = 0
	t.samples = 0
}

// Pressure estimates pressure from momentum transferred to the walls:
// P = sum(|dp|) / (dt * wall area), averaged over a sliding sample window.
// Instantaneous per-tick values are noisy for small particle counts; the
// window is the same trick the collision counter uses.
type Pressure struct {
	name    string
	window  int
	samples []float64
}

// NewPressure creates a pressure metric averaging over windowSize ticks.
func NewPressure(windowSize int) *Pressure {
	if windowSize < 1 {
		windowSize = 1
	}
	return &Pressure{name: "pressure", window: windowSize}
}

func (p *Pressure) Name() string { return p.name }

func (p *Pressure) Observe(s gas.Snapshot) {
	if s.Dt <= 0 {
		return
	}
	area := 2*(s.ContainerWidth*s.ContainerHeight) +
		2*(s.ContainerWidth*s.ContainerDepth) +
		2*(s.ContainerHeight*s.ContainerDepth)
	if area == 0 {
		return
	}
	p.samples = append(p.samples, s.WallImpulse/(s.Dt*area))
	if len(p.samples) > p.window {
		p.samples = p.samples[len(p.samples)-p.window:]
	}
}

func (p *Pressure) Value() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range p.samples {
		sum += v
	}
	return sum / float64(len(p.samples))
}

func (p *Pressure) Reset() {
	p.samples = p.samples[:0]
}

// EnergyDrift tracks the maximum relative deviation of total kinetic energy
// from its value on the first observed tick. With restitution 1 and no
// heat/cool the drift should stay at floating-point noise; growth indicates
// a resolution bug.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s gas.Snapshot) {
	if e.samples == 0 {
		e.initial = s.KineticEnergy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(s.KineticEnergy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// CollisionRate is the particle-container collision counter: collisions per
// picosecond over a sliding sample window.
type CollisionRate struct {
	name       string
	window     int
	collisions []int
	dts        []float64
}

// NewCollisionRate creates a collision-rate metric over windowSize ticks.
func NewCollisionRate(windowSize int) *CollisionRate {
	if windowSize < 1 {
		windowSize = 1
	}
	return &CollisionRate{name: "collision_rate", window: windowSize}
}

func (c *CollisionRate) Name() string { return c.name }

func (c *CollisionRate) Observe(s gas.Snapshot) {
	c.collisions = append(c.collisions, s.WallCollisions)
	c.dts = append(c.dts, s.Dt)
	if len(c.collisions) > c.window {
		c.collisions = c.collisions[len(c.collisions)-c.window:]
		c.dts = c.dts[len(c.dts)-c.window:]
	}
}

func (c *CollisionRate) Value() float64 {
	total := 0
	elapsed := 0.0
	for i := range c.collisions {
		total += c.collisions[i]
		elapsed += c.dts[i]
	}
	if elapsed == 0 {
		return 0
	}
	return float64(total) / elapsed
}

func (c *CollisionRate) Reset() {
	c.collisions = c.collisions[:0]
	c.dts = c.dts[:0]
}
