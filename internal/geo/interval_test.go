package geo

import (
	"math"
	"testing"
)

// approx reports whether two floats are within Epsilon of each other.
func approx(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// vecApprox reports whether two vectors are within Epsilon of each other.
func vecApprox(a, b Vec2) bool {
	return a.Minus(b).Magnitude() < Epsilon
}

func intervalBounds(t *testing.T, i Interval) (float64, float64) {
	t.Helper()
	min, max, ok := i.MinMax()
	if !ok {
		t.Fatalf("expected non-empty interval")
	}
	return min, max
}

func TestIntervalConstructors(t *testing.T) {
	x := EmptyInterval()
	if !x.IsEmpty() {
		t.Error("EmptyInterval should be empty")
	}
	if _, ok := x.Min(); ok {
		t.Error("empty interval should have no min")
	}
	if _, ok := x.Max(); ok {
		t.Error("empty interval should have no max")
	}

	x = IntervalOf(5)
	min, max := intervalBounds(t, x)
	if min != 5 || max != 5 {
		t.Errorf("IntervalOf(5) = [%v, %v]", min, max)
	}

	x = IntervalBetween(1, -1)
	min, max = intervalBounds(t, x)
	if min != -1 || max != 1 {
		t.Errorf("IntervalBetween should auto-order, got [%v, %v]", min, max)
	}

	x = AllInterval()
	if !x.IsAll() {
		t.Error("AllInterval should be all")
	}
	if !x.Contains(9999) || !x.Contains(-9999) {
		t.Error("AllInterval should contain everything")
	}
}

func TestQuadraticZerosConstant(t *testing.T) {
	if !QuadraticZeros(0, 0, 1).IsEmpty() {
		t.Error("no solutions expected for 0t²+0t+1")
	}
	if !QuadraticZeros(0, 0, 0).IsAll() {
		t.Error("any solution expected for 0t²+0t+0")
	}
}

func TestQuadraticZerosLinear(t *testing.T) {
	x := QuadraticZeros(0, 2, 4)
	min, max := intervalBounds(t, x)
	if min != -2 || max != -2 {
		t.Errorf("2t+4=0 should give [-2, -2], got [%v, %v]", min, max)
	}
}

func TestQuadraticZerosQuadratic(t *testing.T) {
	if !QuadraticZeros(1, 0, 1).IsEmpty() {
		t.Error("t²+1=0 has no real zeros")
	}

	x := QuadraticZeros(1, 10, 25)
	min, max := intervalBounds(t, x)
	if min != -5 || max != -5 {
		t.Errorf("(t+5)²=0 should give [-5, -5], got [%v, %v]", min, max)
	}

	// t² = r² yields [-r, r].
	x = QuadraticZeros(1, 0, -25)
	min, max = intervalBounds(t, x)
	if min != -5 || max != 5 {
		t.Errorf("t²=25 should give [-5, 5], got [%v, %v]", min, max)
	}
}

func TestCoverValue(t *testing.T) {
	x := EmptyInterval().CoverValue(1)
	if x.IsEmpty() || !x.Contains(1) || x.Contains(-1) || x.Contains(2) {
		t.Errorf("cover of empty should be the single value, got %+v", x)
	}

	x = x.CoverValue(2)
	for _, v := range []float64{1, 1.5, 2} {
		if !x.Contains(v) {
			t.Errorf("[1,2] should contain %v", v)
		}
	}
	if x.Contains(-1) || x.Contains(3) {
		t.Error("[1,2] should not contain -1 or 3")
	}
}

func TestCoverInterval(t *testing.T) {
	x := EmptyInterval().Cover(EmptyInterval())
	if !x.IsEmpty() {
		t.Error("empty ∪ empty should be empty")
	}

	x = x.Cover(IntervalOf(5))
	min, max := intervalBounds(t, x)
	if min != 5 || max != 5 {
		t.Errorf("empty ∪ [5,5] should be [5,5], got [%v, %v]", min, max)
	}

	x = x.Cover(EmptyInterval())
	min, max = intervalBounds(t, x)
	if min != 5 || max != 5 {
		t.Error("covering with empty should be an identity")
	}

	x = x.Cover(IntervalOf(-5))
	min, max = intervalBounds(t, x)
	if min != -5 || max != 5 {
		t.Errorf("[5,5] ∪ [-5,-5] should be [-5,5], got [%v, %v]", min, max)
	}
}

func TestCoverCommutativeAssociative(t *testing.T) {
	a := IntervalBetween(-1, 1)
	b := IntervalBetween(2, 3)
	c := IntervalBetween(-7, -5)

	ab := a.Cover(b)
	ba := b.Cover(a)
	if ab != ba {
		t.Errorf("cover not commutative: %+v vs %+v", ab, ba)
	}

	left := a.Cover(b).Cover(c)
	right := a.Cover(b.Cover(c))
	if left != right {
		t.Errorf("cover not associative: %+v vs %+v", left, right)
	}
}

func TestIntersect(t *testing.T) {
	// Identity and annihilator.
	x := IntervalBetween(-1, 2)
	if x.Intersect(AllInterval()) != x {
		t.Error("intersect with ALL should be identity")
	}
	if !x.Intersect(EmptyInterval()).IsEmpty() {
		t.Error("intersect with EMPTY should be empty")
	}
	if !EmptyInterval().Intersect(x).IsEmpty() {
		t.Error("EMPTY intersect anything should be empty")
	}

	// Disjoint.
	if !IntervalBetween(1, 2).Intersect(IntervalBetween(-2, -1)).IsEmpty() {
		t.Error("disjoint intervals should intersect to empty")
	}

	// Overlapping.
	y := IntervalBetween(-1, 2).Intersect(IntervalBetween(-2, 1))
	min, max := intervalBounds(t, y)
	if min != -1 || max != 1 {
		t.Errorf("[-1,2] ∩ [-2,1] should be [-1,1], got [%v, %v]", min, max)
	}

	// Single shared value.
	y = IntervalBetween(-1, 1).Intersect(IntervalOf(0))
	min, max = intervalBounds(t, y)
	if min != 0 || max != 0 {
		t.Errorf("expected [0,0], got [%v, %v]", min, max)
	}
}

func TestContainsTolerance(t *testing.T) {
	x := IntervalBetween(0, 1)
	if !x.Contains(1 + Epsilon/2) {
		t.Error("Contains should tolerate Epsilon overshoot")
	}
	if x.ContainsExactly(1 + Epsilon/2) {
		t.Error("ContainsExactly should not tolerate overshoot")
	}
	if !x.ContainsExactly(1) {
		t.Error("ContainsExactly should accept the boundary")
	}
}
