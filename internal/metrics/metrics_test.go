package metrics

import (
	"math"
	"testing"

	"github.com/ofey404/gas-properties/internal/gas"
)

func snap(ke float64, n int, impulse float64, collisions int) gas.Snapshot {
	return gas.Snapshot{
		Dt:              0.01,
		ParticleCount:   n,
		KineticEnergy:   ke,
		WallImpulse:     impulse,
		WallCollisions:  collisions,
		ContainerWidth:  10000,
		ContainerHeight: 8750,
		ContainerDepth:  4000,
	}
}

func TestTemperatureFromKineticEnergy(t *testing.T) {
	m := NewTemperature()

	// 10 particles at 300 K: KE = n * (3/2) k T.
	ke := 10 * 1.5 * gas.BoltzmannConstant * 300
	m.Observe(snap(ke, 10, 0, 0))

	if math.Abs(m.Value()-300) > 1e-9 {
		t.Errorf("expected 300 K, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero temperature after reset")
	}
}

func TestTemperatureIgnoresEmptySnapshots(t *testing.T) {
	m := NewTemperature()

	m.Observe(snap(0, 0, 0, 0))
	if m.Value() != 0 {
		t.Error("empty snapshot should not contribute a sample")
	}

	ke := 4 * 1.5 * gas.BoltzmannConstant * 250
	m.Observe(snap(ke, 4, 0, 0))
	if math.Abs(m.Value()-250) > 1e-9 {
		t.Errorf("expected 250 K, got %f", m.Value())
	}
}

func TestPressureWindow(t *testing.T) {
	m := NewPressure(2)

	s := snap(0, 1, 0, 0)
	area := 2*(s.ContainerWidth*s.ContainerHeight) +
		2*(s.ContainerWidth*s.ContainerDepth) +
		2*(s.ContainerHeight*s.ContainerDepth)

	m.Observe(snap(0, 1, 100, 0))
	m.Observe(snap(0, 1, 200, 0))
	m.Observe(snap(0, 1, 400, 0))

	// Window of 2 keeps only the last two samples.
	expected := (200/(0.01*area) + 400/(0.01*area)) / 2
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected %g, got %g", expected, m.Value())
	}
}

func TestEnergyDriftFlatSeries(t *testing.T) {
	m := NewEnergyDrift()

	for i := 0; i < 50; i++ {
		m.Observe(snap(1e6, 10, 0, 0))
	}
	if m.Value() != 0 {
		t.Errorf("constant energy should give zero drift, got %g", m.Value())
	}
}

func TestEnergyDriftTracksMax(t *testing.T) {
	m := NewEnergyDrift()

	m.Observe(snap(1000, 10, 0, 0))
	m.Observe(snap(1100, 10, 0, 0))
	m.Observe(snap(1010, 10, 0, 0))

	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected max drift 0.1, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestCollisionRate(t *testing.T) {
	m := NewCollisionRate(4)

	for i := 0; i < 4; i++ {
		m.Observe(snap(0, 1, 0, 3))
	}

	// 12 collisions over 4 ticks of 0.01 ps.
	if math.Abs(m.Value()-300) > 1e-9 {
		t.Errorf("expected 300 collisions/ps, got %f", m.Value())
	}
}
