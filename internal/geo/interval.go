package geo

import "math"

// Epsilon is the tolerance used by every comparison in this package.
// Tuned for pixel-scale world units; all degenerate-geometry branches
// (parallel motion, zero-length segments, grazing contact) are gated on
// it rather than exact equality.
const Epsilon = 1e-4

// Interval is a closed range over a 1D value, used mainly for time-of-contact
// ranges where 0 is the start of a movement step and 1 is the end.
// The zero value is NOT meaningful; use the constructors.
type Interval struct {
	min float64
	max float64
}

// EmptyInterval returns the interval containing no values.
func EmptyInterval() Interval {
	return Interval{min: math.NaN(), max: math.NaN()}
}

// AllInterval returns the interval containing all values.
func AllInterval() Interval {
	return Interval{min: math.Inf(-1), max: math.Inf(1)}
}

// IntervalOf returns the interval containing a single value.
func IntervalOf(v float64) Interval {
	return Interval{min: v, max: v}
}

// IntervalBetween returns the interval spanning two values, in either order.
func IntervalBetween(a, b float64) Interval {
	if a <= b {
		return Interval{min: a, max: b}
	}
	return Interval{min: b, max: a}
}

// QuadraticZeros returns the interval whose end points are the real zeros of
// a*t² + b*t + c = 0. Degrades to the linear solution when a≈0, and to
// all/empty when both a≈0 and b≈0 (depending on whether c≈0).
func QuadraticZeros(a, b, c float64) Interval {
	if math.Abs(a) < Epsilon {
		if math.Abs(b) < Epsilon {
			// Constant equation: either always or never zero.
			if math.Abs(c) < Epsilon {
				return AllInterval()
			}
			return EmptyInterval()
		}
		// Linear equation with one solution.
		return IntervalOf(-c / b)
	}
	denom := 2 * a
	det := b*b - 4*a*c
	if det < -Epsilon {
		return EmptyInterval()
	}
	if det < Epsilon {
		return IntervalOf(-b / denom)
	}
	det = math.Sqrt(det)
	return IntervalBetween((-b+det)/denom, (-b-det)/denom)
}

// IsEmpty reports whether the interval contains no values.
func (i Interval) IsEmpty() bool {
	return math.IsNaN(i.min) || math.IsNaN(i.max)
}

// IsAll reports whether the interval contains all values.
func (i Interval) IsAll() bool {
	return math.IsInf(i.min, -1) && math.IsInf(i.max, 1)
}

// Min returns the lower bound, with ok=false for the empty interval.
func (i Interval) Min() (float64, bool) {
	if i.IsEmpty() {
		return 0, false
	}
	return i.min, true
}

// Max returns the upper bound, with ok=false for the empty interval.
func (i Interval) Max() (float64, bool) {
	if i.IsEmpty() {
		return 0, false
	}
	return i.max, true
}

// MinMax returns both bounds at once.
func (i Interval) MinMax() (float64, float64, bool) {
	if i.IsEmpty() {
		return 0, 0, false
	}
	return i.min, i.max, true
}

// ContainsExactly reports whether the value lies inside the interval with no
// tolerance.
func (i Interval) ContainsExactly(v float64) bool {
	return !i.IsEmpty() && i.min <= v && v <= i.max
}

// Contains reports whether the value lies inside the interval, allowing the
// end points to be off by up to Epsilon.
func (i Interval) Contains(v float64) bool {
	if i.IsEmpty() {
		return false
	}
	return (i.min <= v && v <= i.max) ||
		math.Abs(i.min-v) < Epsilon ||
		math.Abs(i.max-v) < Epsilon
}

// CoverValue expands the interval to include a single value.
func (i Interval) CoverValue(v float64) Interval {
	if i.IsEmpty() {
		return Interval{min: v, max: v}
	}
	if v < i.min {
		return Interval{min: v, max: i.max}
	}
	if v > i.max {
		return Interval{min: i.min, max: v}
	}
	return i
}

// Cover returns the union of two intervals (the smallest interval containing
// both). Covering with the empty interval is the identity.
func (i Interval) Cover(other Interval) Interval {
	if i.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return i
	}
	return Interval{
		min: math.Min(i.min, other.min),
		max: math.Max(i.max, other.max),
	}
}

// Intersect returns the values common to both intervals; empty intersected
// with anything is empty.
func (i Interval) Intersect(other Interval) Interval {
	if i.IsEmpty() || other.IsEmpty() {
		return EmptyInterval()
	}
	min := math.Max(i.min, other.min)
	max := math.Min(i.max, other.max)
	if max < min {
		return EmptyInterval()
	}
	return Interval{min: min, max: max}
}
