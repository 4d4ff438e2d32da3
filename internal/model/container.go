package model

import (
	"fmt"

	"github.com/ofey404/gas-properties/internal/gas"
)

// Container is the rectangular box that confines the gas.
//
// Location anchors the bottom-right corner; the right and bottom walls are
// fixed and the left wall moves when the width changes (the resize handle
// doubles as a piston, so the left wall carries a velocity that the collision
// detector reads for momentum transfer). Height and depth never change.
//
// The container may carry a removable vertical divider, a lid opening in the
// top wall, and a list of internal rectangular obstacles. The collision
// detector only reads geometry; all mutation comes from the simulation driver
// between ticks.
type Container struct {
	Location      gas.Vector2 // bottom-right corner, pm
	Height        float64     // pm
	Depth         float64     // pm, for volume and pressure only
	WallThickness float64     // pm
	WidthRange    gas.Range   // pm

	width            float64
	leftWallVelocity gas.Vector2

	dividerX   float64
	hasDivider bool

	lidWidth  float64 // width of the opening in the top wall, 0 when closed
	obstacles []gas.Bounds2
}

// Default container geometry, in pm.
const (
	DefaultContainerWidth    = 10000.0
	DefaultContainerHeight   = 8750.0
	DefaultContainerDepth    = 4000.0
	DefaultWallThickness     = 75.0
	DefaultContainerMinWidth = 5000.0
	DefaultContainerMaxWidth = 15000.0
)

func NewContainer() *Container {
	return &Container{
		Height:        DefaultContainerHeight,
		Depth:         DefaultContainerDepth,
		WallThickness: DefaultWallThickness,
		WidthRange:    gas.Range{Min: DefaultContainerMinWidth, Max: DefaultContainerMaxWidth},
		width:         DefaultContainerWidth,
	}
}

func (c *Container) Width() float64 { return c.width }

// SetWidth moves the left wall so the container has width w.
// Returns ErrParameterBounds if w lies outside WidthRange.
func (c *Container) SetWidth(w float64) error {
	if !c.WidthRange.Contains(w) {
		return fmt.Errorf("%w: width %g outside [%g, %g]",
			gas.ErrParameterBounds, w, c.WidthRange.Min, c.WidthRange.Max)
	}
	c.width = w
	return nil
}

// Bounds is the inner rectangle particles live in, derived from Location and
// the current width.
func (c *Container) Bounds() gas.Bounds2 {
	return gas.Bounds2{
		MinX: c.Location.X - c.width,
		MinY: c.Location.Y,
		MaxX: c.Location.X,
		MaxY: c.Location.Y + c.Height,
	}
}

// MaxBounds is the largest rectangle the container can occupy, at maximum
// width. The region grid covers this extent so it survives resizes.
func (c *Container) MaxBounds() gas.Bounds2 {
	return gas.Bounds2{
		MinX: c.Location.X - c.WidthRange.Max,
		MinY: c.Location.Y,
		MaxX: c.Location.X,
		MaxY: c.Location.Y + c.Height,
	}
}

func (c *Container) Left() float64   { return c.Location.X - c.width }
func (c *Container) Right() float64  { return c.Location.X }
func (c *Container) Bottom() float64 { return c.Location.Y }
func (c *Container) Top() float64    { return c.Location.Y + c.Height }

// Volume in pm^3.
func (c *Container) Volume() float64 {
	return c.width * c.Height * c.Depth
}

// InsideSurfaceArea of all six walls, in pm^2. Pressure is force over this area.
func (c *Container) InsideSurfaceArea() float64 {
	return 2*(c.width*c.Height) + 2*(c.width*c.Depth) + 2*(c.Height*c.Depth)
}

// LeftWallVelocity is the piston velocity, nonzero only while the driver is
// animating a resize.
func (c *Container) LeftWallVelocity() gas.Vector2 { return c.leftWallVelocity }

func (c *Container) SetLeftWallVelocity(v gas.Vector2) { c.leftWallVelocity = v }

// HasDivider reports whether the vertical divider is in place.
func (c *Container) HasDivider() bool { return c.hasDivider }

// DividerX is the divider position; meaningful only when HasDivider.
func (c *Container) DividerX() float64 { return c.dividerX }

// SetDivider installs the divider at x, which must be strictly between the
// left and right walls.
func (c *Container) SetDivider(x float64) error {
	if x <= c.Left() || x >= c.Right() {
		return fmt.Errorf("%w: x=%g not in (%g, %g)", gas.ErrDividerPlacement, x, c.Left(), c.Right())
	}
	c.dividerX = x
	c.hasDivider = true
	return nil
}

func (c *Container) RemoveDivider() { c.hasDivider = false }

// LeftBounds is the sub-region left of the divider, or the full bounds when
// no divider is present.
func (c *Container) LeftBounds() gas.Bounds2 {
	b := c.Bounds()
	if c.hasDivider {
		b.MaxX = c.dividerX
	}
	return b
}

// RightBounds is the sub-region right of the divider, or the full bounds when
// no divider is present.
func (c *Container) RightBounds() gas.Bounds2 {
	b := c.Bounds()
	if c.hasDivider {
		b.MinX = c.dividerX
	}
	return b
}

// SetLidWidth opens the top wall with an opening of width w against the
// right edge. Zero closes the lid.
func (c *Container) SetLidWidth(w float64) {
	if w < 0 {
		w = 0
	}
	if w > c.width {
		w = c.width
	}
	c.lidWidth = w
}

func (c *Container) IsLidOpen() bool { return c.lidWidth > 0 }

// OpeningBounds is the gap in the top wall. Particles whose center passes
// through it escape the container. Zero-width bounds when the lid is closed.
func (c *Container) OpeningBounds() gas.Bounds2 {
	return gas.Bounds2{
		MinX: c.Right() - c.lidWidth,
		MinY: c.Top(),
		MaxX: c.Right(),
		MaxY: c.Top() + c.WallThickness,
	}
}

// Obstacles are internal rectangles particles bounce off (leakage variant).
func (c *Container) Obstacles() []gas.Bounds2 { return c.obstacles }

// AddObstacle installs an internal rectangle. It must lie entirely inside the
// container at minimum width so it is never exposed by a resize.
func (c *Container) AddObstacle(b gas.Bounds2) error {
	if !b.IsValid() {
		return gas.ErrInvalidBounds
	}
	inner := gas.Bounds2{
		MinX: c.Location.X - c.WidthRange.Min,
		MinY: c.Bottom(),
		MaxX: c.Right(),
		MaxY: c.Top(),
	}
	if !inner.ContainsBounds(b) {
		return fmt.Errorf("%w: obstacle %v outside %v", gas.ErrParameterBounds, b, inner)
	}
	c.obstacles = append(c.obstacles, b)
	return nil
}

// ContainsParticle reports whether the particle's disc lies fully inside the
// container's bounds.
func (c *Container) ContainsParticle(p *Particle) bool {
	return p.ContainedIn(c.Bounds())
}
