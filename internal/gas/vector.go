package gas

import "math"

// Vector2 is a 2D vector in model coordinates (pm for positions, pm/ps for velocities).
// It is a value type; operations return new vectors and never mutate the receiver,
// so per-collision temporaries stay on the stack.
type Vector2 struct {
	X, Y float64
}

func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// NewPolar builds a vector from magnitude and angle (radians, counterclockwise from +x).
func NewPolar(magnitude, angle float64) Vector2 {
	return Vector2{X: magnitude * math.Cos(angle), Y: magnitude * math.Sin(angle)}
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(f float64) Vector2 {
	return Vector2{X: v.X * f, Y: v.Y * f}
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector2) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns the unit vector in the direction of v.
// The zero vector is returned unchanged; callers that cannot tolerate a
// degenerate direction must check magnitude first.
func (v Vector2) Normalized() Vector2 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return Vector2{X: v.X / m, Y: v.Y / m}
}

// Perpendicular returns v rotated 90 degrees counterclockwise.
func (v Vector2) Perpendicular() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

func (v Vector2) Distance(o Vector2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

func (v Vector2) DistanceSquared(o Vector2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// ReflectAcrossLine reflects v across the line that passes through point with
// the given angle. Used to back particles out of interpenetration along the
// contact plane.
func (v Vector2) ReflectAcrossLine(point Vector2, lineAngle float64) Vector2 {
	cos2 := math.Cos(2 * lineAngle)
	sin2 := math.Sin(2 * lineAngle)
	dx := v.X - point.X
	dy := v.Y - point.Y
	return Vector2{
		X: point.X + dx*cos2 + dy*sin2,
		Y: point.Y + dx*sin2 - dy*cos2,
	}
}
