package gas

// Bounds2 is an axis-aligned rectangle. Min is the lower-left corner in model
// coordinates (+y up), Max the upper-right.
type Bounds2 struct {
	MinX, MinY, MaxX, MaxY float64
}

func NewBounds2(minX, minY, maxX, maxY float64) Bounds2 {
	return Bounds2{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func (b Bounds2) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds2) Height() float64 { return b.MaxY - b.MinY }

func (b Bounds2) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }
func (b Bounds2) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

func (b Bounds2) Center() Vector2 {
	return Vector2{X: b.CenterX(), Y: b.CenterY()}
}

// IsValid reports whether b has non-negative extent on both axes.
func (b Bounds2) IsValid() bool {
	return b.MaxX >= b.MinX && b.MaxY >= b.MinY
}

func (b Bounds2) ContainsPoint(p Vector2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// ContainsBounds reports whether o lies entirely inside b.
func (b Bounds2) ContainsBounds(o Bounds2) bool {
	return o.MinX >= b.MinX && o.MaxX <= b.MaxX && o.MinY >= b.MinY && o.MaxY <= b.MaxY
}

// Intersects reports whether b and o overlap. Touching edges count as
// intersecting, which is what region assignment wants: a disc exactly on a
// cell boundary belongs to both cells.
func (b Bounds2) Intersects(o Bounds2) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Dilated returns b grown by d on all four sides. Negative d shrinks.
func (b Bounds2) Dilated(d float64) Bounds2 {
	return Bounds2{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

// Eroded returns b shrunk by d on all four sides.
func (b Bounds2) Eroded(d float64) Bounds2 {
	return b.Dilated(-d)
}

// ClosestPointTo returns the point inside b nearest to p.
func (b Bounds2) ClosestPointTo(p Vector2) Vector2 {
	x := p.X
	if x < b.MinX {
		x = b.MinX
	} else if x > b.MaxX {
		x = b.MaxX
	}
	y := p.Y
	if y < b.MinY {
		y = b.MinY
	} else if y > b.MaxY {
		y = b.MaxY
	}
	return Vector2{X: x, Y: y}
}

// IntersectsDisc reports whether the disc at center with the given radius
// overlaps b. Touching counts as overlap.
func (b Bounds2) IntersectsDisc(center Vector2, radius float64) bool {
	closest := b.ClosestPointTo(center)
	return closest.DistanceSquared(center) <= radius*radius
}

// Range is a closed interval of float64 values.
type Range struct {
	Min, Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}
