package model

import (
	"math"
	"testing"

	"github.com/ofey404/gas-properties/internal/gas"
)

func TestParticleStepOrder(t *testing.T) {
	p := NewHeavyParticle()
	p.SetPositionXY(100, 200)
	p.SetVelocityXY(10, -20)

	p.Step(0.5)

	if p.PreviousPosition != gas.NewVector2(100, 200) {
		t.Errorf("previous position not the pre-step position: %v", p.PreviousPosition)
	}
	if p.Position != gas.NewVector2(105, 190) {
		t.Errorf("position: got %v", p.Position)
	}

	p.Step(0.5)
	if p.PreviousPosition != gas.NewVector2(105, 190) {
		t.Errorf("previous position after second step: %v", p.PreviousPosition)
	}
}

func TestContactsParticle(t *testing.T) {
	a := NewHeavyParticle() // radius 125
	b := NewHeavyParticle()

	a.SetPositionXY(0, 0)

	b.SetPositionXY(251, 0)
	if a.ContactsParticle(b) {
		t.Error("separated discs reported in contact")
	}

	b.SetPositionXY(250, 0)
	if !a.ContactsParticle(b) {
		t.Error("touching discs not reported in contact")
	}

	b.SetPositionXY(100, 0)
	if !a.ContactsParticle(b) {
		t.Error("overlapping discs not reported in contact")
	}
}

func TestContactedParticleUsesPreviousPositions(t *testing.T) {
	a := NewLightParticle()
	b := NewLightParticle()

	// Previously far apart, currently overlapping.
	a.SetPositionXY(0, 0)
	b.SetPositionXY(1000, 0)
	a.Step(1)
	b.Step(1)
	b.SetPositionXY(50, 0)

	if !a.ContactsParticle(b) {
		t.Fatal("setup: expected current contact")
	}
	if a.ContactedParticle(b) {
		t.Error("previous-step contact reported for a new contact")
	}
}

func TestIntersectsBounds(t *testing.T) {
	p := NewHeavyParticle()
	bounds := gas.NewBounds2(0, 0, 1000, 1000)

	p.SetPositionXY(500, 500)
	if !p.IntersectsBounds(bounds) {
		t.Error("disc inside bounds should intersect")
	}

	// Center outside, disc overlapping by radius.
	p.SetPositionXY(1100, 500)
	if !p.IntersectsBounds(bounds) {
		t.Error("disc overlapping edge should intersect")
	}

	p.SetPositionXY(1126, 500)
	if p.IntersectsBounds(bounds) {
		t.Error("disc beyond radius reach should not intersect")
	}
}

func TestKineticEnergy(t *testing.T) {
	p := NewHeavyParticle()
	p.SetVelocityXY(3, 4)

	want := 0.5 * HeavyParticleMass * 25
	if math.Abs(p.KineticEnergy()-want) > 1e-9 {
		t.Errorf("kinetic energy: got %f, want %f", p.KineticEnergy(), want)
	}
}

func TestNewParticleValidation(t *testing.T) {
	if _, err := NewParticle(0, 1); err == nil {
		t.Error("expected error for zero radius")
	}
	if _, err := NewParticle(1, -1); err == nil {
		t.Error("expected error for negative mass")
	}
	if _, err := NewParticle(125, 28); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSetVelocityPolar(t *testing.T) {
	p := NewLightParticle()
	p.SetVelocityPolar(2, math.Pi)

	if math.Abs(p.Velocity.X+2) > 1e-12 || math.Abs(p.Velocity.Y) > 1e-12 {
		t.Errorf("expected (-2, 0), got %v", p.Velocity)
	}
}
