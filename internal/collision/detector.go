package collision

import (
	"fmt"

	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/ofey404/gas-properties/internal/model"
)

// Detector owns the region grid and resolves all collisions for one
// container. One Update call per tick, synchronous and single-threaded:
// clear regions, assign particles, resolve particle-particle collisions
// region by region, then resolve particle-boundary collisions.
type Detector struct {
	container *model.Container
	systems   []*model.ParticleSystem
	boundary  BoundaryResolver

	cellLength float64
	regions    []*Region
	gridBounds gas.Bounds2

	// ParticleParticleCollisionsEnabled gates step 4 of Update. Toggleable at
	// runtime; boundary collisions always run.
	ParticleParticleCollisionsEnabled bool

	active  []*Region // regions intersecting the current container bounds, reused
	index   map[*model.Particle]int
	nextIdx int
	visited map[uint64]struct{}

	wallCollisions int
	wallImpulse    float64
}

// Option configures a Detector.
type Option func(*Detector)

// WithCellLength overrides the default region cell size (containerHeight/4).
func WithCellLength(length float64) Option {
	return func(d *Detector) { d.cellLength = length }
}

// WithBoundaryResolver installs a container-variant boundary policy.
func WithBoundaryResolver(r BoundaryResolver) Option {
	return func(d *Detector) { d.boundary = r }
}

// NewDetector builds a detector for the container and the particle systems it
// manages. The region grid covers the container's maximal extents so resizes
// do not force a rebuild; cells entirely outside the current width are
// skipped each tick.
func NewDetector(c *model.Container, systems []*model.ParticleSystem, opts ...Option) *Detector {
	d := &Detector{
		container:  c,
		systems:    systems,
		boundary:   NewContainerResolver(),
		cellLength: c.Height / 4,

		ParticleParticleCollisionsEnabled: true,

		index:   make(map[*model.Particle]int, 256),
		visited: make(map[uint64]struct{}, 256),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.rebuildGrid()
	return d
}

// Regions exposes the grid for rendering and tests.
func (d *Detector) Regions() []*Region { return d.regions }

// ParticleContainerCollisions is the number of particles that collided with
// the container during the most recent Update. Consumed by the collision
// counter and the pressure estimate.
func (d *Detector) ParticleContainerCollisions() int { return d.wallCollisions }

// WallImpulse is the total momentum magnitude transferred to the container
// walls during the most recent Update, in AMU * pm/ps.
func (d *Detector) WallImpulse() float64 { return d.wallImpulse }

func (d *Detector) rebuildGrid() {
	d.gridBounds = d.container.MaxBounds()
	d.regions = buildRegions(d.gridBounds, d.cellLength)
	d.active = make([]*Region, 0, len(d.regions))
}

// Update runs the full collision sequence for one tick. It must not be
// called concurrently with itself or with any mutation of the container or
// particle systems.
//
// On return every particle lies inside the container (unless it legitimately
// escaped through an open lid); a violation is reported as ErrContainment and
// indicates a resolution bug, not a runtime condition.
func (d *Detector) Update() error {
	// The grid geometry depends only on the maximal extents; rebuild when
	// the width range (or height) changes.
	if d.container.MaxBounds() != d.gridBounds {
		d.rebuildGrid()
	}

	d.clearRegions()
	d.selectActiveRegions()
	d.assignParticlesToRegions()

	if d.ParticleParticleCollisionsEnabled {
		d.resolveParticleCollisions()
	}

	d.resolveBoundaryCollisions()

	return d.verifyContainment()
}

// Step 1: clear all membership lists.
func (d *Detector) clearRegions() {
	for _, r := range d.regions {
		r.RemoveAllParticles()
	}
}

// Step 2: collisions never occur in cells beyond the current width.
func (d *Detector) selectActiveRegions() {
	bounds := d.container.Bounds()
	d.active = d.active[:0]
	for _, r := range d.regions {
		if r.Bounds().Intersects(bounds) {
			d.active = append(d.active, r)
		}
	}
}

// Step 3: a particle joins every active region its disc overlaps, so pairs
// spanning a cell boundary are never missed. Also assigns each particle a
// tick-local index for pair deduplication.
func (d *Detector) assignParticlesToRegions() {
	clear(d.index)
	d.nextIdx = 0
	for _, sys := range d.systems {
		for _, p := range sys.Particles() {
			d.index[p] = d.nextIdx
			d.nextIdx++
			for _, r := range d.active {
				if p.IntersectsBounds(r.Bounds()) {
					r.AddParticle(p)
				}
			}
		}
	}
}

// Step 4: pairwise detection and response, per region. A pair sharing more
// than one region would be examined once per shared region; the visited set
// guarantees at most one impulse per pair per tick.
func (d *Detector) resolveParticleCollisions() {
	clear(d.visited)
	for _, r := range d.active {
		particles := r.Particles()
		for i := 0; i < len(particles)-1; i++ {
			for j := i + 1; j < len(particles); j++ {
				p1, p2 := particles[i], particles[j]

				key := pairKey(d.index[p1], d.index[p2])
				if _, seen := d.visited[key]; seen {
					continue
				}

				// Particles already in contact on the previous step are in
				// sustained contact; re-colliding them injects energy.
				if p1.ContactedParticle(p2) {
					continue
				}
				if !p1.ContactsParticle(p2) {
					continue
				}

				d.visited[key] = struct{}{}
				doParticleCollision(p1, p2)
			}
		}
	}
}

func pairKey(i, j int) uint64 {
	if i > j {
		i, j = j, i
	}
	return uint64(i)<<32 | uint64(uint32(j))
}

// doParticleCollision resolves one new contact between two discs: position
// correction by reflection across the contact plane, then an impulse along
// the contact normal. No angular component; the discs do not rotate.
func doParticleCollision(p1, p2 *model.Particle) {
	delta := p2.Position.Sub(p1.Position)
	distance := delta.Magnitude()
	if distance == 0 {
		// Coincident centers have no defined normal. Positive radii make
		// this unreachable from valid states; bail rather than divide by zero.
		return
	}

	normal := delta.Scale(1 / distance)
	tangent := normal.Perpendicular()
	lineAngle := tangent.Angle()

	// Contact point along the center line, proportional to p1's radius.
	contactPoint := p1.Position.Add(normal.Scale(p1.Radius))

	adjustParticlePosition(p1, contactPoint, lineAngle)
	adjustParticlePosition(p2, contactPoint, lineAngle)

	// Impulse along the normal: j = -(1+e) vr / (1/m1 + 1/m2), e = 1.
	vr := p1.Velocity.Sub(p2.Velocity).Dot(normal)
	j := -vr * (1 + gas.Restitution) / (1/p1.Mass + 1/p2.Mass)

	p1.Velocity = p1.Velocity.Add(normal.Scale(j / p1.Mass))
	p2.Velocity = p2.Velocity.Sub(normal.Scale(j / p2.Mass))
}

// adjustParticlePosition backs a penetrating particle out "as if" the
// collision had occurred exactly at contact: the anchor is the point at one
// radius from the contact point back along the particle's incoming path, and
// the current position is reflected across the contact plane through that
// anchor. An adapted historical approximation, not a continuous-time solve.
func adjustParticlePosition(p *model.Particle, contactPoint gas.Vector2, lineAngle float64) {
	previousDistance := p.PreviousPosition.Distance(contactPoint)
	if previousDistance == 0 {
		return
	}
	ratio := p.Radius / previousDistance
	anchor := contactPoint.Add(p.PreviousPosition.Sub(contactPoint).Scale(ratio))
	p.Position = p.Position.ReflectAcrossLine(anchor, lineAngle)
}

// Step 5: boundary resolution via the variant policy. One collision counted
// per particle per tick regardless of how many faces it penetrated.
func (d *Detector) resolveBoundaryCollisions() {
	d.wallCollisions = 0
	d.wallImpulse = 0
	for _, sys := range d.systems {
		for _, p := range sys.Particles() {
			hit, impulse := d.boundary.ResolveParticle(d.container, p)
			if hit {
				d.wallCollisions++
			}
			d.wallImpulse += impulse
		}
	}
}

// verifyContainment checks the post-Update invariant: every particle inside
// the container. Particles above an open lid are exempt; they are escaping.
func (d *Detector) verifyContainment() error {
	bounds := d.container.Bounds()
	opening := d.container.OpeningBounds()
	lidOpen := d.container.IsLidOpen()

	for _, sys := range d.systems {
		for _, p := range sys.Particles() {
			if p.ContainedIn(bounds) {
				continue
			}
			if lidOpen && p.Position.Y > bounds.MaxY-p.Radius && p.Position.X >= opening.MinX {
				continue
			}
			return fmt.Errorf("%w: particle at (%.6g, %.6g)", gas.ErrContainment, p.Position.X, p.Position.Y)
		}
	}
	return nil
}

// CellLength is the side of the square region cells, in pm.
func (d *Detector) CellLength() float64 { return d.cellLength }

// ActiveRegionCount is how many regions intersected the container on the
// most recent Update.
func (d *Detector) ActiveRegionCount() int { return len(d.active) }
