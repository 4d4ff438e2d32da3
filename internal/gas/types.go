// Package gas holds the foundation types shared by the collision core and the
// surrounding simulation: 2D geometry, physical constants, domain errors, and
// the interfaces that metrics and observers implement.
//
// Units follow the model throughout: picometers (pm) for length, picoseconds
// (ps) for time, atomic mass units (AMU) for mass, and kelvin (K) for
// temperature.
package gas

// BoltzmannConstant in (pm^2 * AMU) / (ps^2 * K).
const BoltzmannConstant = 8.316e3

// Restitution is the coefficient of restitution for all collisions.
// 1.0 means perfectly elastic: collisions conserve kinetic energy.
const Restitution = 1.0

// Snapshot is the per-tick aggregate state handed to metrics and observers
// after a completed collision update.
type Snapshot struct {
	Time float64
	Dt   float64

	ParticleCount  int
	KineticEnergy  float64
	CenterOfMassX  float64
	WallCollisions int     // particle-container collisions this tick
	WallImpulse    float64 // total |dp| transferred to container walls this tick (AMU * pm/ps)

	ContainerWidth  float64
	ContainerHeight float64
	ContainerDepth  float64
}

// Metric accumulates a derived quantity over a run.
type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(s Snapshot)
}
