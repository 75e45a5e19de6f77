package geo

import "math"

// Circle is a 2D circle. It doubles as the mover shape for the swept
// collision solvers below: a mover is a transient Circle built from the
// caller's position and collider radius each step.
type Circle struct {
	Center Vec2    `json:"center"`
	Radius float64 `json:"radius"`
}

func NewCircle(center Vec2, radius float64) Circle {
	return Circle{Center: center, Radius: radius}
}

// DeflectPoint sweeps the circle along movement against a stationary point
// and returns the resulting deflection, or nil when there is no contact
// during the step. A mover that starts embedded (closer than Radius) is
// first pushed radially out to the surface, which guarantees time 0 is in
// the contact range.
func (c Circle) DeflectPoint(movement Vec2, obstacle Vec2) *Deflection {
	position := c.Center
	outward := c.Center.Minus(obstacle)
	if pushOutDistance := c.Radius - outward.Magnitude(); pushOutDistance > 0 {
		position = position.Plus(outward.WithLength(pushOutDistance))
	}

	// |position + t*movement - obstacle|² = radius², a quadratic in t.
	startOffset := position.Minus(obstacle)
	d := &Deflection{
		Times: QuadraticZeros(
			movement.Dot(movement),
			2*startOffset.Dot(movement),
			startOffset.Dot(startOffset)-c.Radius*c.Radius,
		),
		Position:  position,
		Remainder: movement,
	}

	bounded := d.Times.Intersect(IntervalBetween(0, 1))
	t, ok := bounded.Min()
	if !ok {
		return nil
	}
	d.Position = d.Position.Plus(movement.Times(t))
	d.Normal = d.Position.Minus(obstacle).Normalize()
	d.Remainder = d.Remainder.Times(1 - t)
	d.calcDeflection()
	return d
}

// DeflectLine sweeps the circle against an infinite line. Motion parallel to
// a line it is already touching yields an all-time skimming contact with no
// deflection.
func (c Circle) DeflectLine(movement Vec2, obstacle Line) *Deflection {
	d := &Deflection{
		Times:     EmptyInterval(),
		Normal:    obstacle.Delta.OrthoToward(c.Center.Minus(obstacle.Origin)),
		Position:  c.Center,
		Remainder: movement,
	}

	// Push the start out if it's already inside the line's radius band.
	ortho := c.Center.Minus(obstacle.Origin).Cross(obstacle.Delta)
	orthoDist := math.Abs(ortho)
	if orthoDist < c.Radius {
		// Had to move out, so in contact at least at the very start.
		d.Times = d.Times.CoverValue(0)
		d.Position = d.Position.Plus(d.Normal.Times(c.Radius - orthoDist))
		ortho = d.Position.Minus(obstacle.Origin).Cross(obstacle.Delta)
		orthoDist = math.Abs(ortho)
	}

	denom := movement.Cross(obstacle.Delta)
	if math.Abs(denom) < Epsilon && math.Abs(orthoDist-c.Radius) < Epsilon {
		// Touching and moving parallel: skimming.
		d.Times = AllInterval()
		return d
	}
	d.Times = d.Times.Cover(IntervalBetween(
		(-ortho-c.Radius)/denom,
		(-ortho+c.Radius)/denom,
	))

	if !d.splitRemainder() {
		return nil
	}
	d.calcDeflection()
	return d
}

// deflectSegmentMiddle handles only the straight stretch of a segment's
// collision surface; the rounded end caps are DeflectPoint's job. It is
// DeflectLine with two extra rules: the push-out only applies when the start
// sits between the end points, and any contact whose projection falls
// outside [0, Length] is rejected (unless the start was pushed out, which
// must still be reported as contact).
func (c Circle) deflectSegmentMiddle(movement Vec2, obstacle LineSegment) *Deflection {
	d := &Deflection{
		Times:     EmptyInterval(),
		Normal:    obstacle.Direction.OrthoToward(c.Center.Minus(obstacle.Start)),
		Position:  c.Center,
		Remainder: movement,
	}

	startingOffset := c.Center.Minus(obstacle.Start)
	ortho := startingOffset.Cross(obstacle.Direction)
	orthoDist := math.Abs(ortho)
	distanceAlong := startingOffset.Dot(obstacle.Direction)
	moved := false
	if orthoDist < c.Radius && 0 < distanceAlong && distanceAlong < obstacle.Length {
		d.Times = d.Times.CoverValue(0)
		d.Position = d.Position.Plus(d.Normal.Times(c.Radius - orthoDist))
		ortho = d.Position.Minus(obstacle.Start).Cross(obstacle.Direction)
		orthoDist = math.Abs(ortho)
		moved = true
	}

	denom := movement.Cross(obstacle.Direction)
	if math.Abs(denom) < Epsilon && math.Abs(orthoDist-c.Radius) < Epsilon {
		// Skimming past the ends is the caps' region, not the middle's.
		if distanceAlong < 0 || distanceAlong > obstacle.Length {
			return nil
		}
		d.Times = AllInterval()
		return d
	}
	d.Times = d.Times.Cover(IntervalBetween(
		(-ortho-c.Radius)/denom,
		(-ortho+c.Radius)/denom,
	))

	if !d.splitRemainder() {
		return nil
	}

	// The contact has to land between the end points.
	distanceAlong = d.Position.Minus(obstacle.Start).Dot(obstacle.Direction)
	if distanceAlong < 0 || distanceAlong > obstacle.Length {
		if moved {
			return d
		}
		return nil
	}

	d.calcDeflection()
	return d
}

// DeflectSegment sweeps the circle against a bounded segment: the two end
// caps as point obstacles plus the straight middle, combined the same way a
// full step combines obstacles, keeping only the earliest contact.
func (c Circle) DeflectSegment(movement Vec2, obstacle LineSegment) *Deflection {
	deflections := make([]Deflection, 0, 3)
	if d := c.DeflectPoint(movement, obstacle.Start); d != nil {
		deflections = append(deflections, *d)
	}
	if d := c.deflectSegmentMiddle(movement, obstacle); d != nil {
		deflections = append(deflections, *d)
	}
	if d := c.DeflectPoint(movement, obstacle.End); d != nil {
		deflections = append(deflections, *d)
	}
	total := CombineDeflections(deflections)
	if total != nil {
		first := total.Deflections[0]
		return &first
	}

	// Nothing redirected the movement, but a graze against the segment is
	// still a contact. It has to surface here so the step-level combine can
	// count its normal; dropping it would hide one side of a corner from
	// the wedge rule and let a slide re-enter the surface.
	grazeIndex := -1
	grazeTime := math.Inf(1)
	for index := range deflections {
		t, ok := deflections[index].Times.Intersect(IntervalBetween(0, 1)).Min()
		if !ok {
			continue
		}
		if t < grazeTime {
			grazeTime = t
			grazeIndex = index
		}
	}
	if grazeIndex < 0 {
		return nil
	}
	graze := deflections[grazeIndex]
	return &graze
}

// DeflectCircle sweeps the circle against a static circle by inflating the
// mover's radius and reducing to a point solve against the obstacle's
// center.
func (c Circle) DeflectCircle(movement Vec2, obstacle Circle) *Deflection {
	augmented := Circle{Center: c.Center, Radius: c.Radius + obstacle.Radius}
	return augmented.DeflectPoint(movement, obstacle.Center)
}
