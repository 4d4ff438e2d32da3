package collision

import (
	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/ofey404/gas-properties/internal/model"
)

// BoundaryResolver is the pluggable boundary-collision policy. The grid and
// pairwise logic in Detector is shared; each container variant (plain,
// divided, obstacle-laden) supplies its own boundary resolution.
//
// ResolveParticle clamps the particle back inside the legal space and
// reflects the velocity component normal to whatever face it penetrated.
// It reports whether any face was hit (at most one collision is counted per
// particle per tick) and the magnitude of momentum transferred to the
// container, for the pressure estimate.
type BoundaryResolver interface {
	ResolveParticle(c *model.Container, p *model.Particle) (hit bool, impulse float64)
}

// ContainerResolver handles the plain rectangular container. The left wall
// may be moving (piston); its velocity feeds into the reflection so the wall
// can do work on the particle.
type ContainerResolver struct{}

func NewContainerResolver() *ContainerResolver { return &ContainerResolver{} }

func (r *ContainerResolver) ResolveParticle(c *model.Container, p *model.Particle) (bool, float64) {
	return resolveWalls(c, p)
}

// resolveWalls is the shared outer-wall resolution. Left/right and top/bottom
// are each mutually exclusive; a corner hit resolves both axes in one tick.
func resolveWalls(c *model.Container, p *model.Particle) (bool, float64) {
	b := c.Bounds()
	hit := false
	impulse := 0.0

	if p.Left() < b.MinX {
		p.Position.X = b.MinX + p.Radius
		// Elastic collision in the moving wall's frame: v' = -(v - w) + w.
		w := c.LeftWallVelocity().X
		oldVx := p.Velocity.X
		p.Velocity.X = -(oldVx - w) + w
		impulse += p.Mass * abs(p.Velocity.X-oldVx)
		hit = true
	} else if p.Right() > b.MaxX {
		p.Position.X = b.MaxX - p.Radius
		impulse += 2 * p.Mass * abs(p.Velocity.X)
		p.Velocity.X = -p.Velocity.X
		hit = true
	}

	if p.Top() > b.MaxY {
		if c.IsLidOpen() && p.Position.X >= c.OpeningBounds().MinX {
			// Particle escapes through the open lid; ownership transfer is
			// the driver's job.
			return hit, impulse
		}
		p.Position.Y = b.MaxY - p.Radius
		impulse += 2 * p.Mass * abs(p.Velocity.Y)
		p.Velocity.Y = -p.Velocity.Y
		hit = true
	} else if p.Bottom() < b.MinY {
		p.Position.Y = b.MinY + p.Radius
		impulse += 2 * p.Mass * abs(p.Velocity.Y)
		p.Velocity.Y = -p.Velocity.Y
		hit = true
	}

	return hit, impulse
}

// DividedResolver treats the divider, when present, as an internal wall: a
// particle stays on the side its previous position was on. Divider hits do
// not contribute to the wall-impulse pressure estimate, since the divider is
// not part of the container's pressure-bearing surface.
type DividedResolver struct{}

func NewDividedResolver() *DividedResolver { return &DividedResolver{} }

func (r *DividedResolver) ResolveParticle(c *model.Container, p *model.Particle) (bool, float64) {
	hit, impulse := resolveWalls(c, p)

	if c.HasDivider() {
		x := c.DividerX()
		if p.PreviousPosition.X <= x {
			if p.Right() > x {
				p.Position.X = x - p.Radius
				p.Velocity.X = -abs(p.Velocity.X)
				hit = true
			}
		} else {
			if p.Left() < x {
				p.Position.X = x + p.Radius
				p.Velocity.X = abs(p.Velocity.X)
				hit = true
			}
		}
	}

	return hit, impulse
}

// LeakageResolver handles containers with internal obstacles. Obstacle
// collisions use a trajectory sweep (previous to current position against the
// radius-inflated obstacle's four edges, first-intersected edge wins) so that
// fast particles cannot tunnel through a thin obstacle in one tick.
type LeakageResolver struct{}

func NewLeakageResolver() *LeakageResolver { return &LeakageResolver{} }

func (r *LeakageResolver) ResolveParticle(c *model.Container, p *model.Particle) (bool, float64) {
	hit := false
	for _, o := range c.Obstacles() {
		if sweepObstacle(p, o) {
			hit = true
		}
	}

	wallHit, impulse := resolveWalls(c, p)
	return hit || wallHit, impulse
}

// sweepObstacle tests the particle's discretized trajectory against one
// obstacle and reflects off the first-intersected edge. Returns whether the
// particle hit the obstacle.
func sweepObstacle(p *model.Particle, o gas.Bounds2) bool {
	// Inflating by the radius reduces the disc sweep to a segment test.
	b := o.Dilated(p.Radius)

	a := p.PreviousPosition
	z := p.Position
	if !b.ContainsPoint(z) && !segmentEntersBounds(a, z, b) {
		return false
	}

	dx := z.X - a.X
	dy := z.Y - a.Y

	// Entry parameter along each edge the segment crosses inward.
	bestT := 2.0
	bestAxis := -1 // 0 = vertical edge (reflect x), 1 = horizontal edge (reflect y)
	bestEdge := 0.0

	if dx > 0 && a.X <= b.MinX {
		if t := (b.MinX - a.X) / dx; t >= 0 && t <= 1 && t < bestT {
			if y := a.Y + t*dy; y >= b.MinY && y <= b.MaxY {
				bestT, bestAxis, bestEdge = t, 0, b.MinX
			}
		}
	}
	if dx < 0 && a.X >= b.MaxX {
		if t := (b.MaxX - a.X) / dx; t >= 0 && t <= 1 && t < bestT {
			if y := a.Y + t*dy; y >= b.MinY && y <= b.MaxY {
				bestT, bestAxis, bestEdge = t, 0, b.MaxX
			}
		}
	}
	if dy > 0 && a.Y <= b.MinY {
		if t := (b.MinY - a.Y) / dy; t >= 0 && t <= 1 && t < bestT {
			if x := a.X + t*dx; x >= b.MinX && x <= b.MaxX {
				bestT, bestAxis, bestEdge = t, 1, b.MinY
			}
		}
	}
	if dy < 0 && a.Y >= b.MaxY {
		if t := (b.MaxY - a.Y) / dy; t >= 0 && t <= 1 && t < bestT {
			if x := a.X + t*dx; x >= b.MinX && x <= b.MaxX {
				bestT, bestAxis, bestEdge = t, 1, b.MaxY
			}
		}
	}

	switch bestAxis {
	case 0:
		// Mirror the overshoot back across the edge.
		p.Position.X = 2*bestEdge - p.Position.X
		p.Velocity.X = -p.Velocity.X
		return true
	case 1:
		p.Position.Y = 2*bestEdge - p.Position.Y
		p.Velocity.Y = -p.Velocity.Y
		return true
	default:
		return false
	}
}

// segmentEntersBounds is a cheap reject: does the segment's own bounding box
// overlap b at all.
func segmentEntersBounds(a, z gas.Vector2, b gas.Bounds2) bool {
	minX, maxX := a.X, z.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, z.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return b.Intersects(gas.Bounds2{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY})
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
