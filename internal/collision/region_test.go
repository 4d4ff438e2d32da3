package collision

import (
	"testing"

	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/ofey404/gas-properties/internal/model"
)

func TestBuildRegionsAlignsWithRightBottom(t *testing.T) {
	bounds := gas.NewBounds2(0, 0, 1000, 700)
	regions := buildRegions(bounds, 300)

	// 1000/300 -> 4 cols, 700/300 -> 3 rows.
	if len(regions) != 12 {
		t.Fatalf("expected 12 regions, got %d", len(regions))
	}

	// First region hugs the right/bottom corner exactly.
	first := regions[0].Bounds()
	if first.MaxX != 1000 || first.MinY != 0 {
		t.Errorf("first region not anchored at right/bottom: %v", first)
	}
	if first.Width() != 300 || first.Height() != 300 {
		t.Errorf("first region not a full cell: %v", first)
	}

	// Leftmost column and topmost row are cut short, never the right/bottom.
	for _, r := range regions {
		b := r.Bounds()
		if b.MinX < bounds.MinX || b.MaxY > bounds.MaxY {
			t.Errorf("region exceeds grid bounds: %v", b)
		}
		if b.Width() < 300 && b.MinX != bounds.MinX {
			t.Errorf("short cell not on the left edge: %v", b)
		}
		if b.Height() < 300 && b.MaxY != bounds.MaxY {
			t.Errorf("short cell not on the top edge: %v", b)
		}
	}
}

func TestRegionMembershipReuse(t *testing.T) {
	r := NewRegion(gas.NewBounds2(0, 0, 100, 100))

	for i := 0; i < 5; i++ {
		r.AddParticle(model.NewHeavyParticle())
	}
	if r.Len() != 5 {
		t.Fatalf("expected 5 particles, got %d", r.Len())
	}

	r.RemoveAllParticles()
	if r.Len() != 0 {
		t.Errorf("expected empty region, got %d", r.Len())
	}

	r.AddParticle(model.NewLightParticle())
	if r.Len() != 1 {
		t.Errorf("expected 1 particle after reuse, got %d", r.Len())
	}
}
