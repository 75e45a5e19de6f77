package geo

import "math"

// Line is an infinite 2D line in normal form: the set of points p where
// Delta.Dot(p) == C. Delta is always unit length.
type Line struct {
	Delta  Vec2    `json:"delta"`  // unit direction along the line
	C      float64 `json:"c"`      // constant offset
	Origin Vec2    `json:"origin"` // a point on the line
}

// NewLine creates a line through two points.
func NewLine(p1, p2 Vec2) Line {
	delta := p2.Minus(p1).Normalize()
	return Line{
		Delta:  delta,
		C:      delta.Dot(p1),
		Origin: p1,
	}
}

// OrthoDistanceTo returns the perpendicular distance from the line to a
// point.
func (l Line) OrthoDistanceTo(point Vec2) float64 {
	return math.Abs(l.Delta.Cross(point.Minus(l.Origin)))
}
