package geo

import "math"

// LineSegment is a bounded 2D line. Direction is the unit vector from Start
// to End, except for a zero-length segment where it stays zero (that keeps
// the intersection math from blowing up).
type LineSegment struct {
	Start     Vec2    `json:"start"`
	End       Vec2    `json:"end"`
	Length    float64 `json:"length"`
	Direction Vec2    `json:"direction"`
}

// NewLineSegment creates a segment with the given end points.
func NewLineSegment(start, end Vec2) LineSegment {
	delta := end.Minus(start)
	length := delta.Magnitude()
	direction := Vec2{}
	if length < Epsilon {
		length = 0
	} else {
		direction = delta.Normalize()
	}
	return LineSegment{
		Start:     start,
		End:       end,
		Length:    length,
		Direction: direction,
	}
}

// Bounds returns the segment's bounding box.
func (s LineSegment) Bounds() Bounds2 {
	return BoundsFromPoints(s.Start, s.End)
}

// ShortestDistanceToPoint returns the distance from the nearest point on the
// segment to the given point.
func (s LineSegment) ShortestDistanceToPoint(point Vec2) float64 {
	offset := point.Minus(s.Start)
	along := s.Direction.Dot(offset)
	if -Epsilon < along && along-s.Length < Epsilon {
		return math.Abs(s.Direction.Cross(offset))
	}
	// Closest point must be one of the ends.
	if along < 0 {
		return offset.Magnitude()
	}
	return point.Minus(s.End).Magnitude()
}

// OtherEndPoint returns the end point that doesn't match the one passed in.
func (s LineSegment) OtherEndPoint(check Vec2) Vec2 {
	if s.Start.Minus(check).Magnitude() < Epsilon {
		return s.End
	}
	return s.Start
}

// signOf collapses a value to -1, 0 or 1, treating anything within Epsilon
// of zero as zero.
func signOf(value float64) float64 {
	if math.Abs(value) < Epsilon {
		return 0
	}
	if value < 0 {
		return -1
	}
	return 1
}

// IntersectsSegment reports whether two segments share at least one point.
// It doesn't find where.
func (s LineSegment) IntersectsSegment(other LineSegment) bool {
	if !s.Bounds().Overlaps(other.Bounds()) {
		return false
	}
	// If each pair of end points straddles the opposite segment's line, the
	// segments cross.
	otherStartToSelfStart := s.Start.Minus(other.Start)
	otherStartToSelfEnd := s.End.Minus(other.Start)
	selfStartToOtherStart := other.Start.Minus(s.Start)
	selfStartToOtherEnd := other.End.Minus(s.Start)
	selfStartSide := signOf(other.Direction.Cross(otherStartToSelfStart))
	selfEndSide := signOf(other.Direction.Cross(otherStartToSelfEnd))
	otherStartSide := signOf(s.Direction.Cross(selfStartToOtherStart))
	otherEndSide := signOf(s.Direction.Cross(selfStartToOtherEnd))
	// One zero side is fine: an end point sitting on the other segment.
	if selfStartSide != selfEndSide && otherStartSide != otherEndSide {
		return true
	}
	// Last possibility: all colinear, with overlapping spans.
	if selfStartSide == 0 && selfEndSide == 0 && otherStartSide == 0 && otherEndSide == 0 {
		within := func(along, length float64) bool {
			return -Epsilon < along && along-length < Epsilon
		}
		if within(other.Direction.Dot(otherStartToSelfStart), other.Length) {
			return true
		}
		if within(other.Direction.Dot(otherStartToSelfEnd), other.Length) {
			return true
		}
		if within(s.Direction.Dot(selfStartToOtherStart), s.Length) {
			return true
		}
		if within(s.Direction.Dot(selfStartToOtherEnd), s.Length) {
			return true
		}
	}
	return false
}

// SegmentIntersection is the result of intersecting two line segments.
type SegmentIntersection struct {
	// Hit is true when the segments share at least one point.
	Hit bool `json:"hit"`
	// Point is the intersection when the segments cross at a single point.
	Point Vec2 `json:"point"`
	// Overlap is set instead of Point when the segments are colinear and
	// share a whole sub-segment.
	Overlap *LineSegment `json:"overlap,omitempty"`
}

// FindIntersection locates where two segments intersect, if anywhere.
// Colinear overlapping segments yield an Overlap; everything else that
// touches yields a single Point, snapped to an end point when the contact is
// within Epsilon of one.
func (s LineSegment) FindIntersection(other LineSegment) SegmentIntersection {
	if !s.Bounds().Overlaps(other.Bounds()) {
		return SegmentIntersection{}
	}
	startOffset := other.Start.Minus(s.Start)
	startPerpDist := s.Direction.Cross(startOffset)
	perpDirection := s.Direction.Cross(other.Direction)
	if math.Abs(perpDirection) < Epsilon {
		// Parallel. Must be colinear to touch at all.
		if math.Abs(startPerpDist) > Epsilon {
			return SegmentIntersection{}
		}
		// Same infinite line, and the bounding boxes overlap, so the spans
		// overlap. Project everything onto s.Direction.
		selfRange := IntervalBetween(0, s.Length)
		otherRange := IntervalBetween(
			s.Direction.Dot(startOffset),
			s.Direction.Dot(other.End.Minus(s.Start)),
		)
		overlap := selfRange.Intersect(otherRange)
		min, max, ok := overlap.MinMax()
		if !ok {
			return SegmentIntersection{}
		}
		hitStart := s.Start.Plus(s.Direction.Times(min))
		hitEnd := s.Start.Plus(s.Direction.Times(max))
		if hitEnd.Minus(hitStart).Magnitude() < Epsilon {
			return SegmentIntersection{Hit: true, Point: hitStart}
		}
		shared := NewLineSegment(hitStart, hitEnd)
		return SegmentIntersection{Hit: true, Overlap: &shared}
	}
	// Not parallel: one candidate point at 0 = startPerpDist + perpDirection*t.
	t := -startPerpDist / perpDirection
	if t < -Epsilon {
		return SegmentIntersection{}
	}
	possible := other.Start.Plus(other.Direction.Times(t))
	selfAlong := s.Direction.Dot(possible.Minus(s.Start))
	otherAlong := other.Direction.Dot(possible.Minus(other.Start))
	if selfAlong < -Epsilon || selfAlong-s.Length > Epsilon ||
		otherAlong < -Epsilon || otherAlong-other.Length > Epsilon {
		return SegmentIntersection{}
	}
	// Snap to end points when the hit runs just past them.
	switch {
	case selfAlong >= s.Length:
		return SegmentIntersection{Hit: true, Point: s.End}
	case selfAlong <= 0:
		return SegmentIntersection{Hit: true, Point: s.Start}
	case otherAlong >= other.Length:
		return SegmentIntersection{Hit: true, Point: other.End}
	case otherAlong <= 0:
		return SegmentIntersection{Hit: true, Point: other.Start}
	default:
		return SegmentIntersection{Hit: true, Point: possible}
	}
}
