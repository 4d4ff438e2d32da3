package collision

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/ofey404/gas-properties/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testWorld builds a container anchored at the origin with one heavy-particle
// system, so test coordinates read naturally: x in [-width, 0], y in [0, height].
func testWorld(t *testing.T, opts ...Option) (*model.Container, *model.ParticleSystem, *Detector) {
	t.Helper()
	c := model.NewContainer()
	sys := model.NewParticleSystem("heavy", model.HeavyParticleRadius, model.HeavyParticleMass,
		rand.New(rand.NewSource(7)))
	d := NewDetector(c, []*model.ParticleSystem{sys}, opts...)
	return c, sys, d
}

func addParticleAt(sys *model.ParticleSystem, x, y, vx, vy float64) *model.Particle {
	p := model.NewHeavyParticle()
	p.SetPositionXY(x, y)
	p.PreviousPosition = p.Position
	p.SetVelocityXY(vx, vy)
	sys.Adopt(p)
	return p
}

func totalMomentum(ps ...*model.Particle) gas.Vector2 {
	var m gas.Vector2
	for _, p := range ps {
		m = m.Add(p.Momentum())
	}
	return m
}

func totalKE(ps ...*model.Particle) float64 {
	ke := 0.0
	for _, p := range ps {
		ke += p.KineticEnergy()
	}
	return ke
}

func TestDefaultCellLength(t *testing.T) {
	c, _, d := testWorld(t)
	assert.Equal(t, c.Height/4, d.CellLength())
}

func TestRegionAssignmentCompleteness(t *testing.T) {
	_, sys, d := testWorld(t)

	// One particle per quadrant plus one straddling a cell corner.
	addParticleAt(sys, -1000, 1000, 0, 0)
	addParticleAt(sys, -8000, 7000, 0, 0)
	corner := addParticleAt(sys, -d.CellLength(), d.CellLength(), 0, 0)

	require.NoError(t, d.Update())

	for _, r := range d.Regions() {
		for _, p := range sys.Particles() {
			inRegion := false
			for _, q := range r.Particles() {
				if q == p {
					inRegion = true
					break
				}
			}
			if p.IntersectsBounds(r.Bounds()) {
				assert.True(t, inRegion, "particle overlapping region %v missing from it", r.Bounds())
			} else {
				assert.False(t, inRegion, "particle in region %v it does not overlap", r.Bounds())
			}
		}
	}

	// The corner particle overlaps four cells.
	count := 0
	for _, r := range d.Regions() {
		for _, q := range r.Particles() {
			if q == corner {
				count++
			}
		}
	}
	assert.Equal(t, 4, count, "corner particle should appear in 4 regions")
}

func TestMomentumAndEnergyConservation(t *testing.T) {
	_, sys, d := testWorld(t)

	// Two discs currently overlapping but not in contact on the prior step:
	// a fresh collision away from any wall.
	p1 := addParticleAt(sys, -5000, 4000, 10, 2)
	p2 := addParticleAt(sys, -4760, 4000, -5, -1)
	p1.PreviousPosition = gas.NewVector2(-5100, 4000)
	p2.PreviousPosition = gas.NewVector2(-4600, 4000)

	require.True(t, p1.ContactsParticle(p2), "setup: expected contact")
	require.False(t, p1.ContactedParticle(p2), "setup: expected no prior contact")

	momentumBefore := totalMomentum(p1, p2)
	keBefore := totalKE(p1, p2)

	require.NoError(t, d.Update())

	momentumAfter := totalMomentum(p1, p2)
	assert.InDelta(t, momentumBefore.X, momentumAfter.X, 1e-9, "momentum x not conserved")
	assert.InDelta(t, momentumBefore.Y, momentumAfter.Y, 1e-9, "momentum y not conserved")
	assert.InDelta(t, keBefore, totalKE(p1, p2), keBefore*1e-12, "kinetic energy not conserved")

	// Velocities actually changed: the collision was resolved.
	assert.NotEqual(t, 10.0, p1.Velocity.X)
}

func TestEqualMassHeadOnSwapsVelocities(t *testing.T) {
	_, sys, d := testWorld(t)

	p1 := addParticleAt(sys, -5120, 4000, 10, 0)
	p2 := addParticleAt(sys, -4880, 4000, -5, 0)
	p1.PreviousPosition = gas.NewVector2(-5200, 4000)
	p2.PreviousPosition = gas.NewVector2(-4800, 4000)

	require.NoError(t, d.Update())

	// Equal masses on the line of centers exchange normal velocities.
	assert.InDelta(t, -5, p1.Velocity.X, 1e-9)
	assert.InDelta(t, 10, p2.Velocity.X, 1e-9)
	assert.InDelta(t, 0, p1.Velocity.Y, 1e-9)
	assert.InDelta(t, 0, p2.Velocity.Y, 1e-9)
}

func TestPairSpanningRegionsGetsOneImpulse(t *testing.T) {
	c, sys, d := testWorld(t)

	// Place the contact on a horizontal cell boundary so both particles sit
	// in two regions each; without dedup the pair would be examined (and
	// resolved) more than once, re-reversing the exchanged velocities.
	boundaryY := c.Bottom() + d.CellLength()
	p1 := addParticleAt(sys, -5120, boundaryY, 10, 0)
	p2 := addParticleAt(sys, -4880, boundaryY, -5, 0)
	p1.PreviousPosition = gas.NewVector2(-5200, boundaryY)
	p2.PreviousPosition = gas.NewVector2(-4800, boundaryY)

	require.NoError(t, d.Update())

	assert.InDelta(t, -5, p1.Velocity.X, 1e-9, "double impulse applied")
	assert.InDelta(t, 10, p2.Velocity.X, 1e-9, "double impulse applied")
}

func TestNoDoubleCollisionOnSustainedContact(t *testing.T) {
	_, sys, d := testWorld(t)

	// Overlapping on the previous step and still overlapping now.
	p1 := addParticleAt(sys, -5100, 4000, 1, 0)
	p2 := addParticleAt(sys, -4900, 4000, -1, 0)

	require.True(t, p1.ContactsParticle(p2))
	require.True(t, p1.ContactedParticle(p2))

	require.NoError(t, d.Update())

	assert.Equal(t, gas.NewVector2(1, 0), p1.Velocity, "sustained contact re-collided")
	assert.Equal(t, gas.NewVector2(-1, 0), p2.Velocity, "sustained contact re-collided")
}

func TestParticleParticleCollisionsDisabled(t *testing.T) {
	_, sys, d := testWorld(t)
	d.ParticleParticleCollisionsEnabled = false

	p1 := addParticleAt(sys, -5120, 4000, 10, 0)
	p2 := addParticleAt(sys, -4880, 4000, -5, 0)
	p1.PreviousPosition = gas.NewVector2(-5200, 4000)
	p2.PreviousPosition = gas.NewVector2(-4800, 4000)

	require.NoError(t, d.Update())

	assert.Equal(t, gas.NewVector2(10, 0), p1.Velocity)
	assert.Equal(t, gas.NewVector2(-5, 0), p2.Velocity)
}

func TestBoundaryReflectionScenario(t *testing.T) {
	c, sys, d := testWorld(t)

	// Penetrating the right wall by half a radius, moving outward.
	p := addParticleAt(sys, c.Right()-0.5*model.HeavyParticleRadius, 4000, 5, 0)

	require.NoError(t, d.Update())

	assert.InDelta(t, c.Right()-p.Radius, p.Position.X, 1e-9, "not clamped to wall")
	assert.InDelta(t, -5, p.Velocity.X, 1e-9, "velocity not inverted")
	assert.Equal(t, 1, d.ParticleContainerCollisions(), "exactly one collision counted")
	assert.InDelta(t, 2*p.Mass*5, d.WallImpulse(), 1e-9)
}

func TestCornerHitCountsOnce(t *testing.T) {
	c, sys, d := testWorld(t)

	addParticleAt(sys, c.Right()-10, c.Top()-10, 5, 5)

	require.NoError(t, d.Update())

	// Both faces resolved, one collision counted for the particle.
	assert.Equal(t, 1, d.ParticleContainerCollisions())
}

func TestMovingWallDoesWork(t *testing.T) {
	c, sys, d := testWorld(t)

	// Piston (left wall) moving toward the particle at +2 while the particle
	// approaches at -3. Elastic collision in the wall frame:
	// v' = -((-3) - 2) + 2 = +7, the wall speeds the particle up.
	c.SetLeftWallVelocity(gas.NewVector2(2, 0))
	p := addParticleAt(sys, c.Left()+0.5*model.HeavyParticleRadius, 4000, -3, 0)

	require.NoError(t, d.Update())

	assert.InDelta(t, 7, p.Velocity.X, 1e-9, "moving wall should impart speed")
	assert.InDelta(t, c.Left()+p.Radius, p.Position.X, 1e-9)
	assert.Equal(t, 1, d.ParticleContainerCollisions())
}

func TestNoLeakInvariantUnderLoad(t *testing.T) {
	c, sys, d := testWorld(t)

	rng := rand.New(rand.NewSource(99))
	inner := c.Bounds().Eroded(model.HeavyParticleRadius)
	for i := 0; i < 200; i++ {
		x := inner.MinX + rng.Float64()*inner.Width()
		y := inner.MinY + rng.Float64()*inner.Height()
		speed := model.MeanSpeed(300, model.HeavyParticleMass)
		angle := 2 * math.Pi * rng.Float64()
		p := addParticleAt(sys, x, y, 0, 0)
		p.SetVelocityPolar(speed, angle)
	}

	const dt = 0.01
	for tick := 0; tick < 300; tick++ {
		require.NoError(t, sys.StepAll(dt))
		require.NoError(t, d.Update(), "containment violated at tick %d", tick)
	}

	bounds := c.Bounds()
	for _, p := range sys.Particles() {
		assert.True(t, p.ContainedIn(bounds), "particle outside container: %v", p.Position)
	}
}

func TestDividerExclusion(t *testing.T) {
	c, sys, d := testWorld(t, WithBoundaryResolver(NewDividedResolver()))

	dividerX := (c.Left() + c.Right()) / 2
	require.NoError(t, c.SetDivider(dividerX))

	rng := rand.New(rand.NewSource(5))
	left := c.LeftBounds().Eroded(model.HeavyParticleRadius)
	for i := 0; i < 50; i++ {
		x := left.MinX + rng.Float64()*left.Width()
		y := left.MinY + rng.Float64()*left.Height()
		p := addParticleAt(sys, x, y, 0, 0)
		p.SetVelocityPolar(model.MeanSpeed(600, p.Mass), 2*math.Pi*rng.Float64())
	}

	const dt = 0.01
	for tick := 0; tick < 500; tick++ {
		require.NoError(t, sys.StepAll(dt))
		require.NoError(t, d.Update())
	}

	for _, p := range sys.Particles() {
		assert.LessOrEqual(t, p.Position.X, dividerX,
			"particle crossed the divider at %v", p.Position)
	}
}

func TestObstacleTrajectorySweepCatchesTunnelling(t *testing.T) {
	c, sys, d := testWorld(t, WithBoundaryResolver(NewLeakageResolver()))

	// A thin vertical obstacle; the particle crosses it entirely in one tick.
	obstacle := gas.NewBounds2(c.Right()-4020, c.Bottom()+1000, c.Right()-3980, c.Bottom()+7000)
	require.NoError(t, c.AddObstacle(obstacle))

	p := addParticleAt(sys, c.Right()-6000, c.Bottom()+4000, 0, 0)
	p.PreviousPosition = p.Position
	// Teleport across the obstacle the way a fast Step would.
	p.SetVelocityXY(2500, 0)
	p.Step(1)
	require.Greater(t, p.Position.X, obstacle.MaxX, "setup: expected tunnelled position")

	require.NoError(t, d.Update())

	assert.Less(t, p.Position.X, obstacle.MinX, "particle not reflected back off obstacle")
	assert.InDelta(t, -2500, p.Velocity.X, 1e-9, "velocity not reflected")
	assert.Equal(t, 1, d.ParticleContainerCollisions())
}

func TestLidOpeningLetsParticlesEscape(t *testing.T) {
	c, sys, d := testWorld(t)

	c.SetLidWidth(3000)

	// One particle rising through the opening, one rising under the closed
	// part of the lid.
	escaping := addParticleAt(sys, c.Right()-1000, c.Top()-50, 0, 400)
	bouncing := addParticleAt(sys, c.Right()-8000, c.Top()-50, 0, 400)

	const dt = 0.01
	for tick := 0; tick < 20; tick++ {
		require.NoError(t, sys.StepAll(dt))
		require.NoError(t, d.Update())
	}

	assert.Greater(t, escaping.Position.Y, c.Top(), "particle should escape through opening")
	assert.Less(t, bouncing.Top(), c.Top()+1e-9, "particle under closed lid should stay inside")
	assert.Negative(t, bouncing.Velocity.Y, "particle under closed lid should have reflected")
}

func TestGridRebuildOnWidthRangeChange(t *testing.T) {
	c, _, d := testWorld(t)

	before := len(d.Regions())

	// Growing the maximal extents must rebuild the grid geometry.
	c.WidthRange.Max = c.WidthRange.Max * 2
	require.NoError(t, d.Update())

	assert.Greater(t, len(d.Regions()), before, "grid not rebuilt for new maximal extents")
}

func TestActiveRegionsExcludeCellsBeyondWidth(t *testing.T) {
	c, _, d := testWorld(t)

	require.NoError(t, c.SetWidth(c.WidthRange.Min))
	require.NoError(t, d.Update())

	narrow := d.ActiveRegionCount()

	require.NoError(t, c.SetWidth(c.WidthRange.Max))
	require.NoError(t, d.Update())

	assert.Greater(t, d.ActiveRegionCount(), narrow,
		"wider container should activate more regions")
	assert.Equal(t, len(d.Regions()), d.ActiveRegionCount(),
		"at max width every region is active")
}
