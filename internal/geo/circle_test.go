package geo

import (
	"math"
	"testing"
)

func timesMin(t *testing.T, d *Deflection) float64 {
	t.Helper()
	if d == nil {
		t.Fatal("expected a deflection")
	}
	min, ok := d.Times.Min()
	if !ok {
		t.Fatal("deflection has empty times")
	}
	return min
}

func timesMax(t *testing.T, d *Deflection) float64 {
	t.Helper()
	if d == nil {
		t.Fatal("expected a deflection")
	}
	max, ok := d.Times.Max()
	if !ok {
		t.Fatal("deflection has empty times")
	}
	return max
}

func TestDeflectLineNoHit(t *testing.T) {
	line := NewLine(NewVec2(10, 0), NewVec2(0, 10))

	// Moving parallel to the line.
	if d := NewCircle(NewVec2(0, 0), 5).DeflectLine(NewVec2(10, -10), line); d != nil {
		t.Errorf("parallel motion should miss, got %+v", d)
	}
	// Movement too short to reach.
	if d := NewCircle(NewVec2(0, 0), 3).DeflectLine(NewVec2(1, 1), line); d != nil {
		t.Errorf("short movement should miss, got %+v", d)
	}
	// Moving directly away.
	if d := NewCircle(NewVec2(0, 0), 1).DeflectLine(NewVec2(-10, -10), line); d != nil {
		t.Errorf("moving away should miss, got %+v", d)
	}
}

func TestDeflectLineJustTouch(t *testing.T) {
	circle := NewCircle(NewVec2(0, 0), 1)
	line := NewLine(NewVec2(2, 10), NewVec2(2, -10))
	d := circle.DeflectLine(NewVec2(1, 0), line)
	if !approx(timesMin(t, d), 1) {
		t.Errorf("contact should land exactly at time 1, got %v", timesMin(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(-1, 0)) {
		t.Errorf("normal should point back at the mover, got %+v", d.Normal)
	}
	if d.Deflected {
		t.Error("just touching should not deflect")
	}
}

func TestDeflectLineSkim(t *testing.T) {
	circle := NewCircle(NewVec2(0, 0), 1)
	line := NewLine(NewVec2(-5, 1), NewVec2(5, 1))
	d := circle.DeflectLine(NewVec2(1, 0), line)
	if d == nil {
		t.Fatal("skimming should report contact")
	}
	if !d.Times.IsAll() {
		t.Errorf("skimming should be an all-time contact, got %+v", d.Times)
	}
	if !vecApprox(d.Normal, NewVec2(0, -1)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if d.Deflected {
		t.Error("skimming should not deflect")
	}
}

func TestDeflectLineOffWall(t *testing.T) {
	// Touching the wall and moving straight away: contact at time 0 only.
	circle := NewCircle(NewVec2(0, 0), 1)
	line := NewLine(NewVec2(-10, -1), NewVec2(10, -1))
	d := circle.DeflectLine(NewVec2(0, 10), line)
	if timesMin(t, d) >= 0 {
		t.Errorf("min time should be negative, got %v", timesMin(t, d))
	}
	if !approx(timesMax(t, d), 0) {
		t.Errorf("max time should be 0, got %v", timesMax(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(0, 1)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if d.Deflected {
		t.Error("moving away should not deflect")
	}
}

func TestDeflectLineHitStop(t *testing.T) {
	// Unit circle runs straight into x=2 and stops
	// a radius short of it.
	circle := NewCircle(NewVec2(0, 0), 1)
	line := NewLine(NewVec2(2, 10), NewVec2(2, -10))
	d := circle.DeflectLine(NewVec2(2, 0), line)
	if !approx(timesMin(t, d), 0.5) {
		t.Errorf("time of impact should be 0.5, got %v", timesMin(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(-1, 0)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if !d.Deflected {
		t.Error("head-on hit should deflect")
	}
	if !vecApprox(d.Position, NewVec2(1, 0)) {
		t.Errorf("contact position wrong: %+v", d.Position)
	}
	if !vecApprox(d.Remainder, NewVec2(0, 0)) {
		t.Errorf("head-on remainder should be zero, got %+v", d.Remainder)
	}
}

func TestDeflectLineHitSlide(t *testing.T) {
	circle := NewCircle(NewVec2(0, 1), 1)
	line := NewLine(NewVec2(-2, 10), NewVec2(-2, -10))
	d := circle.DeflectLine(NewVec2(-2, -2), line)
	if !approx(timesMin(t, d), 0.5) {
		t.Errorf("time of impact should be 0.5, got %v", timesMin(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(1, 0)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if !d.Deflected {
		t.Error("angled hit should deflect")
	}
	if !vecApprox(d.Position, NewVec2(-1, 0)) {
		t.Errorf("contact position wrong: %+v", d.Position)
	}
	if !vecApprox(d.Remainder, NewVec2(0, -1)) {
		t.Errorf("remainder should slide along the wall, got %+v", d.Remainder)
	}
}

func TestDeflectLineStartInside(t *testing.T) {
	// Embedded at the start: pushed out along the normal, contact covers
	// time 0.
	circle := NewCircle(NewVec2(1, 0.5), 2)
	line := NewLine(NewVec2(-5, 0), NewVec2(5, 0))
	d := circle.DeflectLine(NewVec2(1, 1), line)
	if timesMin(t, d) >= 0 {
		t.Errorf("min time should be negative, got %v", timesMin(t, d))
	}
	if !approx(timesMax(t, d), 0) {
		t.Errorf("max time should be 0, got %v", timesMax(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(0, 1)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if d.Deflected {
		t.Error("moving out of the surface should not deflect")
	}
	if !vecApprox(d.Position, NewVec2(1, 2)) {
		t.Errorf("should be pushed out to y=2, got %+v", d.Position)
	}
}

func TestDeflectPointNoHit(t *testing.T) {
	if d := NewCircle(NewVec2(0, 0), 5).DeflectPoint(NewVec2(1, 0), NewVec2(1, -6)); d != nil {
		t.Errorf("passing by should miss, got %+v", d)
	}
	if d := NewCircle(NewVec2(0, 0), 1).DeflectPoint(NewVec2(1, 0), NewVec2(10, 0)); d != nil {
		t.Errorf("short movement should miss, got %+v", d)
	}
}

func TestDeflectPointMovingAway(t *testing.T) {
	circle := NewCircle(NewVec2(0, 0), 1)
	d := circle.DeflectPoint(NewVec2(-1, 0), NewVec2(1, 0))
	if !approx(timesMax(t, d), 0) {
		t.Errorf("contact should end at time 0, got %v", timesMax(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(-1, 0)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if d.Deflected {
		t.Error("moving away should not deflect")
	}
}

func TestDeflectPointOrthogonalSkim(t *testing.T) {
	circle := NewCircle(NewVec2(-1, 1), 1)
	d := circle.DeflectPoint(NewVec2(2, 0), NewVec2(0, 2))
	if !approx(timesMin(t, d), 0.5) || !approx(timesMax(t, d), 0.5) {
		t.Errorf("tangent contact should be a single instant, got %+v", d.Times)
	}
	if !vecApprox(d.Normal, NewVec2(0, -1)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if d.Deflected {
		t.Error("tangent contact should not deflect")
	}
}

func TestDeflectPointStartInsideNoMove(t *testing.T) {
	circle := NewCircle(NewVec2(0, 1), 1)
	d := circle.DeflectPoint(NewVec2(0, 0), NewVec2(0, 1.5))
	if d == nil {
		t.Fatal("embedded start should report contact")
	}
	if !d.Times.Contains(0) {
		t.Errorf("embedded start must cover time 0, got %+v", d.Times)
	}
	if !vecApprox(d.Normal, NewVec2(0, -1)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if d.Deflected {
		t.Error("no movement should not deflect")
	}
	if !vecApprox(d.Position, NewVec2(0, 0.5)) {
		t.Errorf("should be pushed out to the surface, got %+v", d.Position)
	}
}

func TestDeflectPointHitStop(t *testing.T) {
	circle := NewCircle(NewVec2(1, 1), 1)
	d := circle.DeflectPoint(NewVec2(2, 0), NewVec2(3, 1))
	if !approx(timesMin(t, d), 0.5) {
		t.Errorf("time of impact should be 0.5, got %v", timesMin(t, d))
	}
	if !approx(timesMax(t, d), 1.5) {
		t.Errorf("contact range should extend past the step, got %v", timesMax(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(-1, 0)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if !d.Deflected {
		t.Error("head-on hit should deflect")
	}
	if !vecApprox(d.Position, NewVec2(2, 1)) {
		t.Errorf("contact position wrong: %+v", d.Position)
	}
	if !vecApprox(d.Remainder, NewVec2(0, 0)) {
		t.Errorf("head-on remainder should be zero, got %+v", d.Remainder)
	}
}

func TestDeflectPointJustTouchAtEnd(t *testing.T) {
	// Movement length exactly equals distance minus radius: contact lands at
	// time 1 without deflecting.
	circle := NewCircle(NewVec2(0, 0), 1)
	d := circle.DeflectPoint(NewVec2(2, 0), NewVec2(3, 0))
	if !approx(timesMin(t, d), 1) {
		t.Errorf("contact should be at time 1, got %v", timesMin(t, d))
	}
	if d.Deflected {
		t.Error("just touching at the end of the step should not deflect")
	}
}

func TestDeflectPointHitSlide(t *testing.T) {
	circle := NewCircle(NewVec2(1, 1), math.Sqrt2)
	d := circle.DeflectPoint(NewVec2(2, 0), NewVec2(3, 0))
	if !approx(timesMin(t, d), 0.5) {
		t.Errorf("time of impact should be 0.5, got %v", timesMin(t, d))
	}
	if timesMax(t, d) <= 0.5 {
		t.Errorf("contact range should extend past the impact, got %v", timesMax(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(-1, 1).Normalize()) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if !d.Deflected {
		t.Error("glancing hit should deflect")
	}
	if !vecApprox(d.Position, NewVec2(2, 1)) {
		t.Errorf("contact position wrong: %+v", d.Position)
	}
	if !vecApprox(d.Remainder, NewVec2(0.5, 0.5)) {
		t.Errorf("remainder should slide diagonally, got %+v", d.Remainder)
	}
}

func TestDeflectSegmentMiddlePushOut(t *testing.T) {
	circle := NewCircle(NewVec2(-1, 1), 2)
	seg := NewLineSegment(NewVec2(-5, 0), NewVec2(5, 0))
	d := circle.deflectSegmentMiddle(NewVec2(1, 1), seg)
	if !approx(timesMax(t, d), 0) {
		t.Errorf("max time should be 0, got %v", timesMax(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(0, 1)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if d.Deflected {
		t.Error("moving away after push-out should not deflect")
	}
	if !vecApprox(d.Position, NewVec2(-1, 2)) {
		t.Errorf("should be pushed out to y=2, got %+v", d.Position)
	}
}

func TestDeflectSegmentMiddleNoPushOutBeyondEnds(t *testing.T) {
	// Embedded depth-wise but past the segment's span: no push-out, no hit.
	circle := NewCircle(NewVec2(-1, 1), 2)
	seg := NewLineSegment(NewVec2(-5, 0), NewVec2(-15, 0))
	if d := circle.deflectSegmentMiddle(NewVec2(1, 1), seg); d != nil {
		t.Errorf("start beyond the span should not report middle contact, got %+v", d)
	}
}

func TestDeflectSegmentMiddleHitBeyondEnds(t *testing.T) {
	circle := NewCircle(NewVec2(-1, 3), 1)
	seg := NewLineSegment(NewVec2(-5, 0), NewVec2(-15, 0))
	if d := circle.deflectSegmentMiddle(NewVec2(0, -6), seg); d != nil {
		t.Errorf("contact past the span should be rejected, got %+v", d)
	}
}

func TestDeflectSegmentMiddleHit(t *testing.T) {
	circle := NewCircle(NewVec2(-1, 2), 1)
	seg := NewLineSegment(NewVec2(-5, 0), NewVec2(5, 0))
	d := circle.deflectSegmentMiddle(NewVec2(0, -2), seg)
	if !approx(timesMin(t, d), 0.5) {
		t.Errorf("time of impact should be 0.5, got %v", timesMin(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(0, 1)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if !d.Deflected {
		t.Error("perpendicular hit should deflect")
	}
	if !vecApprox(d.Position, NewVec2(-1, 1)) {
		t.Errorf("contact position wrong: %+v", d.Position)
	}
	if !vecApprox(d.Remainder, NewVec2(0, 0)) {
		t.Errorf("remainder should be zero, got %+v", d.Remainder)
	}
}

func TestDeflectSegmentCompleteMiss(t *testing.T) {
	circle := NewCircle(NewVec2(1, 1), 1)
	seg := NewLineSegment(NewVec2(-5, -1), NewVec2(5, -1))
	if d := circle.DeflectSegment(NewVec2(1, 1), seg); d != nil {
		t.Errorf("moving away should miss, got %+v", d)
	}
}

func TestDeflectSegmentHitMiddle(t *testing.T) {
	circle := NewCircle(NewVec2(1, 1), 1)
	seg := NewLineSegment(NewVec2(-5, -1), NewVec2(5, -1))
	d := circle.DeflectSegment(NewVec2(0, -2), seg)
	if !approx(timesMin(t, d), 0.5) {
		t.Errorf("time of impact should be 0.5, got %v", timesMin(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(0, 1)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if !d.Deflected || !vecApprox(d.Position, NewVec2(1, 0)) {
		t.Errorf("unexpected deflection: %+v", d)
	}
}

func TestDeflectSegmentHitEndCaps(t *testing.T) {
	seg := NewLineSegment(NewVec2(-5, -1), NewVec2(5, -1))

	// Run into the start cap from the left.
	d := NewCircle(NewVec2(-7, -1), 1).DeflectSegment(NewVec2(2, 0), seg)
	if !approx(timesMin(t, d), 0.5) {
		t.Errorf("start cap time of impact should be 0.5, got %v", timesMin(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(-1, 0)) {
		t.Errorf("start cap normal wrong: %+v", d.Normal)
	}
	if !d.Deflected || !vecApprox(d.Position, NewVec2(-6, -1)) {
		t.Errorf("unexpected start cap deflection: %+v", d)
	}

	// Run into the end cap from the right.
	d = NewCircle(NewVec2(7, -1), 1).DeflectSegment(NewVec2(-2, 0), seg)
	if !approx(timesMin(t, d), 0.5) {
		t.Errorf("end cap time of impact should be 0.5, got %v", timesMin(t, d))
	}
	if !vecApprox(d.Normal, NewVec2(1, 0)) {
		t.Errorf("end cap normal wrong: %+v", d.Normal)
	}
	if !d.Deflected || !vecApprox(d.Position, NewVec2(6, -1)) {
		t.Errorf("unexpected end cap deflection: %+v", d)
	}
}

func TestDeflectSegmentSkim(t *testing.T) {
	// Resting on a segment and moving parallel to it is a contact, same as
	// the infinite-line skim. Losing it would hide the segment's normal from
	// a same-step corner combine.
	mover := NewCircle(NewVec2(0, 0), 1)
	floor := NewLineSegment(NewVec2(-5, -1), NewVec2(5, -1))

	d := mover.DeflectSegment(NewVec2(2, 0), floor)
	if d == nil {
		t.Fatal("parallel motion along a touching segment should report a skimming contact")
	}
	if d.Deflected {
		t.Error("skimming contact should not be deflected")
	}
	if !vecApprox(d.Normal, NewVec2(0, 1)) {
		t.Errorf("skim normal = %v, want (0,1)", d.Normal)
	}
	if !d.Times.IsAll() {
		t.Errorf("skim times = %v, want all", d.Times)
	}

	// The same parallel motion past the end caps touches nothing.
	beyond := NewCircle(NewVec2(9, 0), 1)
	if d := beyond.DeflectSegment(NewVec2(2, 0), floor); d != nil {
		t.Errorf("skim beyond the segment ends reported contact %+v", d)
	}
}

func TestDeflectSegmentZeroLength(t *testing.T) {
	// A degenerate segment still stops the mover via its end caps.
	circle := NewCircle(NewVec2(0, 0), 1)
	seg := NewLineSegment(NewVec2(3, 0), NewVec2(3, 0))
	d := circle.DeflectSegment(NewVec2(4, 0), seg)
	if d == nil {
		t.Fatal("zero-length segment should still collide as a point")
	}
	if !d.Deflected || !vecApprox(d.Position, NewVec2(2, 0)) {
		t.Errorf("unexpected deflection: %+v", d)
	}
}

func TestDeflectCircleInflatesRadius(t *testing.T) {
	mover := NewCircle(NewVec2(0, 0), 1)
	obstacle := NewCircle(NewVec2(4, 0), 1)
	d := mover.DeflectCircle(NewVec2(4, 0), obstacle)
	if !approx(timesMin(t, d), 0.5) {
		t.Errorf("should meet when centers are two radii apart, got time %v", timesMin(t, d))
	}
	if !vecApprox(d.Position, NewVec2(2, 0)) {
		t.Errorf("contact position wrong: %+v", d.Position)
	}
	if !vecApprox(d.Normal, NewVec2(-1, 0)) {
		t.Errorf("normal wrong: %+v", d.Normal)
	}
	if !d.Deflected || !vecApprox(d.Remainder, NewVec2(0, 0)) {
		t.Errorf("head-on circle hit should stop, got %+v", d)
	}
}
