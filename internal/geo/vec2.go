package geo

import "math"

// Vec2 is a 2D vector. All operations return new values; nothing mutates in
// place.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Minus(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross is the 2D exterior product. It is signed: positive when o is
// counter-clockwise of v.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit-length vector in the same direction, or the zero
// vector if v is zero.
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return v.Times(1.0 / m)
}

// WithLength returns a vector in the same direction scaled to the given
// length. The zero vector stays zero.
func (v Vec2) WithLength(length float64) Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return v.Times(length / m)
}

func (v Vec2) RightNormal() Vec2 {
	return Vec2{X: v.Y, Y: -v.X}
}

func (v Vec2) LeftNormal() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// OrthoToward returns a vector orthogonal to v that is within 90 degrees of
// the reference vector.
func (v Vec2) OrthoToward(reference Vec2) Vec2 {
	ortho := v.LeftNormal()
	if ortho.Dot(reference) < 0 {
		return ortho.Times(-1)
	}
	return ortho
}

func (v Vec2) Invert() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec2) IsEqualTo(o Vec2) bool {
	return v.X == o.X && v.Y == o.Y
}

// PointsAreColinear reports whether three points all sit on one line (to
// within Epsilon). All points being the same counts.
func PointsAreColinear(p1, p2, p3 Vec2) bool {
	return math.Abs(p2.Minus(p1).Cross(p3.Minus(p1))) < Epsilon
}
