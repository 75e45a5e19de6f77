package geo

import "math"

// Bounds2 is an axis-aligned 2D bounding box.
type Bounds2 struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// BoundsFromPoints returns the box containing both points.
func BoundsFromPoints(first, second Vec2) Bounds2 {
	return Bounds2{
		XMin: math.Min(first.X, second.X),
		XMax: math.Max(first.X, second.X),
		YMin: math.Min(first.Y, second.Y),
		YMax: math.Max(first.Y, second.Y),
	}
}

// BoundsFromCenteredRect returns a box of the given width and height centered
// on a point.
func BoundsFromCenteredRect(center Vec2, width, height float64) Bounds2 {
	width = math.Abs(width) / 2
	height = math.Abs(height) / 2
	return Bounds2{
		XMin: center.X - width,
		XMax: center.X + width,
		YMin: center.Y - height,
		YMax: center.Y + height,
	}
}

// Overlaps reports whether two boxes overlap, to within Epsilon.
func (b Bounds2) Overlaps(other Bounds2) bool {
	return b.XMin-other.XMax <= Epsilon &&
		other.XMin-b.XMax <= Epsilon &&
		b.YMin-other.YMax <= Epsilon &&
		other.YMin-b.YMax <= Epsilon
}

// Contains reports whether a point is inside the box, to within Epsilon.
func (b Bounds2) Contains(p Vec2) bool {
	return b.XMin-p.X <= Epsilon && p.X-b.XMax <= Epsilon &&
		b.YMin-p.Y <= Epsilon && p.Y-b.YMax <= Epsilon
}

// Center returns the middle of the box.
func (b Bounds2) Center() Vec2 {
	return Vec2{X: (b.XMin + b.XMax) / 2, Y: (b.YMin + b.YMax) / 2}
}

// SweptPoint returns the time range during which a point starting at start
// and moving by movement is inside the box, where time 0 is the start of the
// movement and 1 the end. The result is NOT clamped to [0,1]; intersect with
// IntervalBetween(0, 1) for a single step. Returns the empty interval when
// the path never enters the box.
func (b Bounds2) SweptPoint(start, movement Vec2) Interval {
	times := AllInterval()

	// Per axis: when is the coordinate between the two box faces?
	if math.Abs(movement.X) < Epsilon {
		if start.X < b.XMin-Epsilon || start.X > b.XMax+Epsilon {
			return EmptyInterval()
		}
	} else {
		times = times.Intersect(IntervalBetween(
			(b.XMin-start.X)/movement.X,
			(b.XMax-start.X)/movement.X,
		))
	}
	if math.Abs(movement.Y) < Epsilon {
		if start.Y < b.YMin-Epsilon || start.Y > b.YMax+Epsilon {
			return EmptyInterval()
		}
	} else {
		times = times.Intersect(IntervalBetween(
			(b.YMin-start.Y)/movement.Y,
			(b.YMax-start.Y)/movement.Y,
		))
	}
	return times
}
