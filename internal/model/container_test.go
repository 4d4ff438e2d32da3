package model

import (
	"errors"
	"testing"

	"github.com/ofey404/gas-properties/internal/gas"
)

func TestContainerBoundsDerivedFromWidth(t *testing.T) {
	c := NewContainer()

	b := c.Bounds()
	if b.Width() != c.Width() {
		t.Errorf("bounds width %f != container width %f", b.Width(), c.Width())
	}
	if b.MaxX != c.Location.X {
		t.Error("right edge should be anchored at location")
	}

	if err := c.SetWidth(6000); err != nil {
		t.Fatalf("SetWidth: %v", err)
	}
	b = c.Bounds()
	if b.Width() != 6000 {
		t.Errorf("bounds width after resize: %f", b.Width())
	}
	if b.MaxX != c.Location.X {
		t.Error("right edge moved on resize")
	}
}

func TestSetWidthRange(t *testing.T) {
	c := NewContainer()

	err := c.SetWidth(c.WidthRange.Max + 1)
	if !errors.Is(err, gas.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if c.Width() != DefaultContainerWidth {
		t.Error("width changed after rejected resize")
	}
}

func TestDividerPlacement(t *testing.T) {
	c := NewContainer()

	if err := c.SetDivider(c.Left()); !errors.Is(err, gas.ErrDividerPlacement) {
		t.Errorf("divider at left wall: expected ErrDividerPlacement, got %v", err)
	}
	if err := c.SetDivider(c.Right()); !errors.Is(err, gas.ErrDividerPlacement) {
		t.Errorf("divider at right wall: expected ErrDividerPlacement, got %v", err)
	}

	mid := (c.Left() + c.Right()) / 2
	if err := c.SetDivider(mid); err != nil {
		t.Fatalf("SetDivider: %v", err)
	}
	if !c.HasDivider() || c.DividerX() != mid {
		t.Error("divider not installed")
	}

	left, right := c.LeftBounds(), c.RightBounds()
	if left.MaxX != mid || right.MinX != mid {
		t.Error("side bounds do not meet at divider")
	}

	c.RemoveDivider()
	if c.HasDivider() {
		t.Error("divider still present after removal")
	}
	if c.LeftBounds() != c.Bounds() {
		t.Error("left bounds should be full bounds without divider")
	}
}

func TestLidOpening(t *testing.T) {
	c := NewContainer()

	if c.IsLidOpen() {
		t.Error("lid should start closed")
	}

	c.SetLidWidth(2000)
	if !c.IsLidOpen() {
		t.Error("lid should be open")
	}
	o := c.OpeningBounds()
	if o.Width() != 2000 || o.MaxX != c.Right() || o.MinY != c.Top() {
		t.Errorf("opening bounds wrong: %v", o)
	}

	// Opening clamps to container width.
	c.SetLidWidth(1e9)
	if c.OpeningBounds().Width() != c.Width() {
		t.Error("opening wider than container")
	}
}

func TestAddObstacle(t *testing.T) {
	c := NewContainer()

	inside := gas.NewBounds2(c.Right()-3000, c.Bottom()+1000, c.Right()-2000, c.Bottom()+2000)
	if err := c.AddObstacle(inside); err != nil {
		t.Fatalf("AddObstacle: %v", err)
	}
	if len(c.Obstacles()) != 1 {
		t.Fatal("obstacle not recorded")
	}

	// Outside minimum width: would be exposed by a resize.
	outside := gas.NewBounds2(c.Right()-20000, c.Bottom(), c.Right()-19000, c.Bottom()+1000)
	if err := c.AddObstacle(outside); !errors.Is(err, gas.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestContainsParticle(t *testing.T) {
	c := NewContainer()
	p := NewHeavyParticle()

	p.SetPositionXY(c.Right()-c.Width()/2, c.Bottom()+c.Height/2)
	if !c.ContainsParticle(p) {
		t.Error("centered particle should be contained")
	}

	p.SetPositionXY(c.Right()-p.Radius/2, c.Bottom()+c.Height/2)
	if c.ContainsParticle(p) {
		t.Error("particle overlapping the right wall should not be contained")
	}
}
