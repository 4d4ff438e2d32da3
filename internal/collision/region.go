// Package collision implements the gas model's collision engine: a grid of
// spatial regions localizing particle-particle checks, and a detector that
// resolves particle-particle and particle-boundary collisions once per tick.
package collision

import (
	"math"

	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/ofey404/gas-properties/internal/model"
)

// Region is one cell of the spatial grid. It holds non-owning references to
// the particles whose discs overlap its bounds; membership is cleared and
// repopulated every tick, reusing the backing slice.
type Region struct {
	bounds    gas.Bounds2
	particles []*model.Particle
}

func NewRegion(bounds gas.Bounds2) *Region {
	return &Region{
		bounds:    bounds,
		particles: make([]*model.Particle, 0, 8),
	}
}

func (r *Region) Bounds() gas.Bounds2 { return r.bounds }

func (r *Region) AddParticle(p *model.Particle) {
	r.particles = append(r.particles, p)
}

// RemoveAllParticles clears membership without releasing capacity.
func (r *Region) RemoveAllParticles() {
	for i := range r.particles {
		r.particles[i] = nil
	}
	r.particles = r.particles[:0]
}

func (r *Region) Particles() []*model.Particle { return r.particles }

func (r *Region) Len() int { return len(r.particles) }

// buildRegions partitions bounds into square cells of side cellLength. Cells
// are laid out right-to-left, bottom-to-top starting from the right/bottom
// edge, so the grid stays aligned with the container's fixed walls; only the
// leftmost column and topmost row may be cut short.
func buildRegions(bounds gas.Bounds2, cellLength float64) []*Region {
	cols := int(math.Ceil(bounds.Width() / cellLength))
	rows := int(math.Ceil(bounds.Height() / cellLength))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	regions := make([]*Region, 0, cols*rows)
	for row := 0; row < rows; row++ {
		minY := bounds.MinY + float64(row)*cellLength
		maxY := math.Min(minY+cellLength, bounds.MaxY)
		for col := 0; col < cols; col++ {
			maxX := bounds.MaxX - float64(col)*cellLength
			minX := math.Max(maxX-cellLength, bounds.MinX)
			regions = append(regions, NewRegion(gas.NewBounds2(minX, minY, maxX, maxY)))
		}
	}
	return regions
}
