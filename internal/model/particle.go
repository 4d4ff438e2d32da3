package model

import (
	"fmt"

	"github.com/ofey404/gas-properties/internal/gas"
)

// Species parameters. Heavy matches diatomic nitrogen, light matches helium.
const (
	HeavyParticleMass   = 28.0  // AMU
	HeavyParticleRadius = 125.0 // pm

	LightParticleMass   = 4.0  // AMU
	LightParticleRadius = 87.5 // pm
)

// Particle is a non-rotating rigid disc with mutable kinematic state.
//
// PreviousPosition always holds the position before the most recent Step.
// The collision detector compares previous positions to distinguish new
// contacts from sustained ones; re-colliding a pair that was already touching
// on the prior tick injects energy and causes visible jitter.
type Particle struct {
	Position         gas.Vector2
	PreviousPosition gas.Vector2
	Velocity         gas.Vector2 // pm/ps
	Radius           float64     // pm
	Mass             float64     // AMU
}

// NewParticle creates a particle at rest at the origin.
// Radius and mass must be positive.
func NewParticle(radius, mass float64) (*Particle, error) {
	if radius <= 0 || mass <= 0 {
		return nil, fmt.Errorf("%w: radius=%g mass=%g", gas.ErrInvalidParticle, radius, mass)
	}
	return &Particle{Radius: radius, Mass: mass}, nil
}

func NewHeavyParticle() *Particle {
	return &Particle{Radius: HeavyParticleRadius, Mass: HeavyParticleMass}
}

func NewLightParticle() *Particle {
	return &Particle{Radius: LightParticleRadius, Mass: LightParticleMass}
}

// Step advances the particle by dt. The current position is copied into
// PreviousPosition before integrating; collision code depends on this order.
func (p *Particle) Step(dt float64) {
	p.PreviousPosition = p.Position
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
}

func (p *Particle) SetPositionXY(x, y float64) {
	p.Position = gas.NewVector2(x, y)
}

func (p *Particle) SetVelocityXY(vx, vy float64) {
	p.Velocity = gas.NewVector2(vx, vy)
}

func (p *Particle) SetVelocityPolar(speed, angle float64) {
	p.Velocity = gas.NewPolar(speed, angle)
}

func (p *Particle) Speed() float64 {
	return p.Velocity.Magnitude()
}

// KineticEnergy in AMU * pm^2 / ps^2.
func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * p.Velocity.MagnitudeSquared()
}

// Momentum in AMU * pm/ps.
func (p *Particle) Momentum() gas.Vector2 {
	return p.Velocity.Scale(p.Mass)
}

// Edge coordinates of the disc.
func (p *Particle) Left() float64   { return p.Position.X - p.Radius }
func (p *Particle) Right() float64  { return p.Position.X + p.Radius }
func (p *Particle) Bottom() float64 { return p.Position.Y - p.Radius }
func (p *Particle) Top() float64    { return p.Position.Y + p.Radius }

// IntersectsBounds reports whether the particle's disc overlaps bounds,
// accounting for radius. Used for region assignment and containment checks.
func (p *Particle) IntersectsBounds(bounds gas.Bounds2) bool {
	return bounds.IntersectsDisc(p.Position, p.Radius)
}

// ContainedIn reports whether the whole disc lies within bounds.
func (p *Particle) ContainedIn(bounds gas.Bounds2) bool {
	return p.Left() >= bounds.MinX && p.Right() <= bounds.MaxX &&
		p.Bottom() >= bounds.MinY && p.Top() <= bounds.MaxY
}

// ContactsParticle reports whether p and other are currently touching or
// overlapping: distance between centers <= sum of radii.
func (p *Particle) ContactsParticle(other *Particle) bool {
	sum := p.Radius + other.Radius
	return p.Position.DistanceSquared(other.Position) <= sum*sum
}

// ContactedParticle reports whether p and other were touching on the previous
// step, using previous positions.
func (p *Particle) ContactedParticle(other *Particle) bool {
	sum := p.Radius + other.Radius
	return p.PreviousPosition.DistanceSquared(other.PreviousPosition) <= sum*sum
}

// IsValid reports whether the particle satisfies its preconditions: positive
// radius and mass, finite position and velocity.
func (p *Particle) IsValid() bool {
	return p.Radius > 0 && p.Mass > 0 && p.Position.IsFinite() && p.Velocity.IsFinite()
}
