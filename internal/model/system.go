package model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ofey404/gas-properties/internal/gas"
)

// MeanSpeed is the Maxwell-Boltzmann mean speed sqrt(3kT/m) for a particle of
// the given mass at temperature T, in pm/ps.
func MeanSpeed(temperature, mass float64) float64 {
	return math.Sqrt(3 * gas.BoltzmannConstant * temperature / mass)
}

// InjectionOptions controls where and how new particles enter the container.
type InjectionOptions struct {
	Point gas.Vector2 // injection point, pm

	// MeanAngle and Dispersion shape the initial direction. Batch injection
	// uses a narrow fan pointed into the container; single-particle creation
	// uses a full-circle dispersion so equilibrium is reached faster.
	MeanAngle  float64
	Dispersion float64
}

// DefaultInjection aims particles leftward into the container from a point
// just inside its right wall, mid-height.
func DefaultInjection(c *Container) InjectionOptions {
	return InjectionOptions{
		Point:      gas.NewVector2(c.Right()-HeavyParticleRadius*2, c.Bottom()+c.Height/2),
		MeanAngle:  math.Pi,
		Dispersion: math.Pi / 2,
	}
}

// ParticleSystem owns the particles of one species (or one location, for
// escaped particles). A particle belongs to exactly one system at a time;
// transfer between systems moves ownership without copying.
type ParticleSystem struct {
	Name string

	radius float64
	mass   float64

	particles []*Particle
	rng       *rand.Rand
}

// NewParticleSystem creates an empty system for a species with the given disc
// parameters. The rng drives velocity sampling and must not be nil.
func NewParticleSystem(name string, radius, mass float64, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		Name:      name,
		radius:    radius,
		mass:      mass,
		particles: make([]*Particle, 0, 64),
		rng:       rng,
	}
}

func (s *ParticleSystem) Len() int { return len(s.particles) }

// Particles is the live backing slice; callers must not reorder or resize it.
func (s *ParticleSystem) Particles() []*Particle { return s.particles }

func (s *ParticleSystem) Radius() float64 { return s.radius }
func (s *ParticleSystem) Mass() float64   { return s.mass }

// StepAll advances every particle by dt.
func (s *ParticleSystem) StepAll(dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt=%g", gas.ErrInvalidTimeStep, dt)
	}
	for _, p := range s.particles {
		p.Step(dt)
	}
	return nil
}

// AddParticles creates n particles at the injection point with speeds sampled
// around the Maxwell-Boltzmann mean for temperature, and directions sampled
// uniformly within MeanAngle +/- Dispersion/2. A single particle (n == 1)
// gets a uniform direction over the full circle.
func (s *ParticleSystem) AddParticles(n int, temperature float64, opts InjectionOptions) {
	mean := MeanSpeed(temperature, s.mass)
	for i := 0; i < n; i++ {
		p := &Particle{Radius: s.radius, Mass: s.mass}
		p.Position = opts.Point
		p.PreviousPosition = opts.Point

		// Speeds dispersed a little around the mean so a batch does not
		// start as a monochromatic beam.
		speed := mean * (0.9 + 0.2*s.rng.Float64())

		var angle float64
		if n == 1 {
			angle = 2 * math.Pi * s.rng.Float64()
		} else {
			angle = opts.MeanAngle + opts.Dispersion*(s.rng.Float64()-0.5)
		}
		p.SetVelocityPolar(speed, angle)

		s.particles = append(s.particles, p)
	}
}

// PlaceUniformly positions all particles of the system uniformly at random
// inside bounds (radius-adjusted), avoiding the given obstacles. Velocities
// are untouched. Used when populating a divided container side.
func (s *ParticleSystem) PlaceUniformly(bounds gas.Bounds2, obstacles []gas.Bounds2) {
	for _, p := range s.particles {
		for {
			x := bounds.MinX + p.Radius + s.rng.Float64()*(bounds.Width()-2*p.Radius)
			y := bounds.MinY + p.Radius + s.rng.Float64()*(bounds.Height()-2*p.Radius)
			pos := gas.NewVector2(x, y)

			blocked := false
			for _, o := range obstacles {
				if o.Dilated(p.Radius).ContainsPoint(pos) {
					blocked = true
					break
				}
			}
			if !blocked {
				p.Position = pos
				p.PreviousPosition = pos
				break
			}
		}
	}
}

// RemoveLast removes up to n particles from the end of the collection and
// returns how many were removed.
func (s *ParticleSystem) RemoveLast(n int) int {
	if n > len(s.particles) {
		n = len(s.particles)
	}
	keep := len(s.particles) - n
	for i := keep; i < len(s.particles); i++ {
		s.particles[i] = nil
	}
	s.particles = s.particles[:keep]
	return n
}

// RemoveIf removes every particle matching pred and returns the removed
// particles, preserving order of the remainder.
func (s *ParticleSystem) RemoveIf(pred func(*Particle) bool) []*Particle {
	var removed []*Particle
	kept := s.particles[:0]
	for _, p := range s.particles {
		if pred(p) {
			removed = append(removed, p)
		} else {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(s.particles); i++ {
		s.particles[i] = nil
	}
	s.particles = kept
	return removed
}

// TransferTo moves every particle matching pred into dst. Ownership moves;
// no particle is duplicated.
func (s *ParticleSystem) TransferTo(dst *ParticleSystem, pred func(*Particle) bool) int {
	moved := s.RemoveIf(pred)
	dst.particles = append(dst.particles, moved...)
	return len(moved)
}

// Adopt takes ownership of a particle created elsewhere.
func (s *ParticleSystem) Adopt(p *Particle) {
	s.particles = append(s.particles, p)
}

// RemoveAll empties the system.
func (s *ParticleSystem) RemoveAll() {
	for i := range s.particles {
		s.particles[i] = nil
	}
	s.particles = s.particles[:0]
}

// RedistributeX scales every particle's x offset from anchorX by scale.
// Used on container resize to preserve the relative distribution without
// re-running the simulation. Previous positions are scaled the same way so
// contact history stays consistent.
func (s *ParticleSystem) RedistributeX(scale, anchorX float64) {
	for _, p := range s.particles {
		p.Position.X = anchorX + (p.Position.X-anchorX)*scale
		p.PreviousPosition.X = anchorX + (p.PreviousPosition.X-anchorX)*scale
	}
}

// ScaleVelocities multiplies every particle's speed by factor (heat/cool).
// Kinetic energy scales by factor squared.
func (s *ParticleSystem) ScaleVelocities(factor float64) {
	for _, p := range s.particles {
		p.Velocity = p.Velocity.Scale(factor)
	}
}

// TotalKineticEnergy over the collection, in AMU * pm^2 / ps^2.
func (s *ParticleSystem) TotalKineticEnergy() float64 {
	ke := 0.0
	for _, p := range s.particles {
		ke += p.KineticEnergy()
	}
	return ke
}

// TotalMass in AMU.
func (s *ParticleSystem) TotalMass() float64 {
	m := 0.0
	for _, p := range s.particles {
		m += p.Mass
	}
	return m
}

// CenterOfMassX is the mass-weighted mean x position, or 0 for an empty
// system.
func (s *ParticleSystem) CenterOfMassX() float64 {
	totalMass := 0.0
	weighted := 0.0
	for _, p := range s.particles {
		totalMass += p.Mass
		weighted += p.Mass * p.Position.X
	}
	if totalMass == 0 {
		return 0
	}
	return weighted / totalMass
}

// Temperature is the kinetic temperature (2/3) * <KE> / k, or 0 for an empty
// system.
func (s *ParticleSystem) Temperature() float64 {
	if len(s.particles) == 0 {
		return 0
	}
	avgKE := s.TotalKineticEnergy() / float64(len(s.particles))
	return (2.0 / 3.0) * avgKE / gas.BoltzmannConstant
}
