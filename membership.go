package fuzzydose

import (
	"math"
)

// Point is one control point of a piecewise-linear fuzzy set.
type Point struct {
	X  float64 // Crisp value (°C for temperature sets, ml for dose sets)
	Mu float64 // Membership degree at X, in [0,1]
}

// MembershipFunction is a piecewise-linear fuzzy set defined by control points
// with strictly increasing X. Membership outside [first X, last X] is 0.
//
// A MembershipFunction is immutable: the points are copied on construction
// and Points returns a copy, so values can be shared between goroutines.
//
// Example:
//
//	tLow := fuzzydose.MustMembershipFunction(
//	    fuzzydose.Point{X: 37, Mu: 0.2},
//	    fuzzydose.Point{X: 37.5, Mu: 1},
//	    fuzzydose.Point{X: 38, Mu: 0.5},
//	)
//
//	tLow.Fuzzify(37.75) // 0.75
//	tLow.Fuzzify(36.0)  // 0 (outside support)
type MembershipFunction struct {
	points []Point
}

// NewMembershipFunction validates the control points and builds a fuzzy set.
//
// Requirements:
//   - at least two points
//   - X strictly increasing (no duplicates, no unsorted input)
//   - every Mu in [0,1]
//   - every value finite
func NewMembershipFunction(points ...Point) (MembershipFunction, error) {
	if len(points) < 2 {
		return MembershipFunction{}, invalidArgumentf("membership function needs at least 2 points, got %d", len(points))
	}

	for i, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) {
			return MembershipFunction{}, invalidArgumentf("point %d: x must be finite, got %v", i, p.X)
		}
		if math.IsNaN(p.Mu) || p.Mu < 0 || p.Mu > 1 {
			return MembershipFunction{}, invalidArgumentf("point %d: membership must be in [0,1], got %v", i, p.Mu)
		}
		if i > 0 && p.X <= points[i-1].X {
			return MembershipFunction{}, invalidArgumentf(
				"point %d: x must be strictly increasing (%v follows %v)", i, p.X, points[i-1].X)
		}
	}

	owned := make([]Point, len(points))
	copy(owned, points)

	return MembershipFunction{points: owned}, nil
}

// MustMembershipFunction is like NewMembershipFunction but panics on invalid input.
// Use it for static tables known to be valid.
func MustMembershipFunction(points ...Point) MembershipFunction {
	mf, err := NewMembershipFunction(points...)
	if err != nil {
		panic("fuzzydose: " + err.Error())
	}
	return mf
}

// Fuzzify returns the membership degree of x.
//
// The first segment [x0, x1] containing x is interpolated linearly. A value
// exactly on a control point returns that point's Mu unchanged. Values
// outside the support (and NaN) return 0.
func (mf MembershipFunction) Fuzzify(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}

	for i := 0; i+1 < len(mf.points); i++ {
		p0, p1 := mf.points[i], mf.points[i+1]
		if x < p0.X || x > p1.X {
			continue
		}

		switch x {
		case p0.X:
			return p0.Mu
		case p1.X:
			return p1.Mu
		}

		return p0.Mu + (p1.Mu-p0.Mu)*(x-p0.X)/(p1.X-p0.X)
	}

	return 0
}

// Fuzzify evaluates x against mf.
func Fuzzify(x float64, mf MembershipFunction) float64 {
	return mf.Fuzzify(x)
}

// Support returns the X range covered by the control points.
// Both bounds are 0 for the zero value.
func (mf MembershipFunction) Support() (lo, hi float64) {
	if len(mf.points) == 0 {
		return 0, 0
	}
	return mf.points[0].X, mf.points[len(mf.points)-1].X
}

// Points returns a copy of the control points.
func (mf MembershipFunction) Points() []Point {
	out := make([]Point, len(mf.points))
	copy(out, mf.points)
	return out
}

// Len returns the number of control points.
func (mf MembershipFunction) Len() int {
	return len(mf.points)
}

// IsZero reports whether mf was never constructed.
func (mf MembershipFunction) IsZero() bool {
	return len(mf.points) == 0
}
