package model

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSystem(t *testing.T) *ParticleSystem {
	t.Helper()
	return NewParticleSystem("heavy", HeavyParticleRadius, HeavyParticleMass, rand.New(rand.NewSource(42)))
}

func TestAddParticlesSpeed(t *testing.T) {
	s := newTestSystem(t)
	c := NewContainer()

	const temperature = 300.0
	s.AddParticles(50, temperature, DefaultInjection(c))
	require.Equal(t, 50, s.Len())

	mean := MeanSpeed(temperature, HeavyParticleMass)
	for _, p := range s.Particles() {
		speed := p.Speed()
		assert.InDelta(t, mean, speed, mean*0.11, "sampled speed outside dispersion band")
	}
}

func TestAddParticlesBatchDirection(t *testing.T) {
	s := newTestSystem(t)
	c := NewContainer()
	opts := DefaultInjection(c)

	s.AddParticles(20, 300, opts)

	// Batch injection fans around the mean angle; every particle should move
	// leftward, into the container.
	for _, p := range s.Particles() {
		assert.Negative(t, p.Velocity.X, "batch-injected particle not moving into container")
	}
}

func TestRemoveLast(t *testing.T) {
	s := newTestSystem(t)
	s.AddParticles(10, 300, DefaultInjection(NewContainer()))

	removed := s.RemoveLast(4)
	assert.Equal(t, 4, removed)
	assert.Equal(t, 6, s.Len())

	removed = s.RemoveLast(100)
	assert.Equal(t, 6, removed)
	assert.Equal(t, 0, s.Len())
}

func TestTransferTo(t *testing.T) {
	src := newTestSystem(t)
	dst := NewParticleSystem("escaped", HeavyParticleRadius, HeavyParticleMass, rand.New(rand.NewSource(1)))

	src.AddParticles(10, 300, DefaultInjection(NewContainer()))
	for i, p := range src.Particles() {
		p.SetPositionXY(float64(i), 0)
	}

	moved := src.TransferTo(dst, func(p *Particle) bool { return p.Position.X >= 5 })

	assert.Equal(t, 5, moved)
	assert.Equal(t, 5, src.Len())
	assert.Equal(t, 5, dst.Len())

	// Ownership moved, not copied: total count is conserved.
	assert.Equal(t, 10, src.Len()+dst.Len())
}

func TestRedistributeX(t *testing.T) {
	s := newTestSystem(t)
	c := NewContainer()
	s.AddParticles(5, 300, DefaultInjection(c))

	anchor := c.Right()
	for i, p := range s.Particles() {
		p.SetPositionXY(anchor-float64(i+1)*1000, 100)
		p.PreviousPosition = p.Position
	}

	s.RedistributeX(0.5, anchor)

	for i, p := range s.Particles() {
		want := anchor - float64(i+1)*500
		assert.InDelta(t, want, p.Position.X, 1e-9)
		assert.InDelta(t, want, p.PreviousPosition.X, 1e-9)
	}
}

func TestScaleVelocitiesScalesEnergyByFactorSquared(t *testing.T) {
	s := newTestSystem(t)
	s.AddParticles(30, 300, DefaultInjection(NewContainer()))

	before := s.TotalKineticEnergy()
	s.ScaleVelocities(1.5)
	after := s.TotalKineticEnergy()

	assert.InDelta(t, before*2.25, after, before*1e-9)
}

func TestCenterOfMassX(t *testing.T) {
	heavy := newTestSystem(t)

	a := NewHeavyParticle()
	a.SetPositionXY(0, 0)
	b := NewHeavyParticle()
	b.SetPositionXY(100, 50)
	heavy.Adopt(a)
	heavy.Adopt(b)

	assert.InDelta(t, 50, heavy.CenterOfMassX(), 1e-9)

	empty := NewParticleSystem("none", 1, 1, rand.New(rand.NewSource(0)))
	assert.Zero(t, empty.CenterOfMassX())
}

func TestTemperatureRoundTrip(t *testing.T) {
	s := newTestSystem(t)

	// Give every particle exactly the mean speed for 300 K; kinetic
	// temperature should come back as 300 K.
	s.AddParticles(10, 300, DefaultInjection(NewContainer()))
	speed := MeanSpeed(300, HeavyParticleMass)
	for _, p := range s.Particles() {
		p.SetVelocityPolar(speed, 2*math.Pi*float64(p.Mass)) // arbitrary angles
	}

	assert.InDelta(t, 300, s.Temperature(), 1e-6)
}

func TestPlaceUniformlyAvoidsObstacles(t *testing.T) {
	s := newTestSystem(t)
	s.AddParticles(50, 300, DefaultInjection(NewContainer()))

	bounds := gas.NewBounds2(0, 0, 10000, 8000)
	obstacle := gas.NewBounds2(4000, 3000, 6000, 5000)

	s.PlaceUniformly(bounds, []gas.Bounds2{obstacle})

	for _, p := range s.Particles() {
		require.True(t, p.ContainedIn(bounds), "particle placed outside bounds: %v", p.Position)
		assert.False(t, obstacle.Dilated(p.Radius).ContainsPoint(p.Position),
			"particle placed in obstacle: %v", p.Position)
	}
}
