package fuzzydose

import (
	"math"
	"testing"
)

// AssertionConfig contains tolerances for fuzzy-set property checks.
type AssertionConfig struct {
	// Absolute tolerance for interpolated values
	Tolerance float64

	// Probes placed between consecutive control points (excluding endpoints)
	ProbesPerSegment int

	// Distance beyond the support used to probe extrapolation
	OutsideOffset float64
}

// DefaultAssertionConfig returns conservative tolerances.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		Tolerance:        1e-12,
		ProbesPerSegment: 7,
		OutsideOffset:    0.5,
	}
}

// AssertControlPointsExact verifies fuzzify(x) == μ bit-for-bit at every
// control point.
func AssertControlPointsExact(t *testing.T, mf MembershipFunction) {
	t.Helper()

	for i, p := range mf.Points() {
		if got := mf.Fuzzify(p.X); got != p.Mu {
			t.Errorf("Control point %d: fuzzify(%v) = %v, want exactly %v", i, p.X, got, p.Mu)
		}
	}

	t.Logf("✓ Control points exact: %d points", mf.Len())
}

// AssertPiecewiseLinear verifies that values strictly between two control
// points match the linear interpolation formula.
//
// Mathematical property:
//
//	μ(x) = μ₀ + (μ₁ − μ₀)·(x − x₀)/(x₁ − x₀)   for x₀ < x < x₁
func AssertPiecewiseLinear(t *testing.T, mf MembershipFunction, cfg AssertionConfig) {
	t.Helper()

	points := mf.Points()
	for i := 0; i+1 < len(points); i++ {
		p0, p1 := points[i], points[i+1]
		for k := 1; k <= cfg.ProbesPerSegment; k++ {
			x := p0.X + (p1.X-p0.X)*float64(k)/float64(cfg.ProbesPerSegment+1)
			want := p0.Mu + (p1.Mu-p0.Mu)*(x-p0.X)/(p1.X-p0.X)
			if got := mf.Fuzzify(x); math.Abs(got-want) > cfg.Tolerance {
				t.Errorf("Segment [%v, %v]: fuzzify(%v) = %v, want %v", p0.X, p1.X, x, got, want)
			}
		}
	}

	t.Logf("✓ Piecewise linear: %d segments, %d probes each", len(points)-1, cfg.ProbesPerSegment)
}

// AssertZeroOutsideSupport verifies membership is 0 below the first and above
// the last control point, and for NaN.
func AssertZeroOutsideSupport(t *testing.T, mf MembershipFunction, cfg AssertionConfig) {
	t.Helper()

	lo, hi := mf.Support()
	for _, x := range []float64{lo - cfg.OutsideOffset, math.Nextafter(lo, math.Inf(-1)),
		math.Nextafter(hi, math.Inf(1)), hi + cfg.OutsideOffset, math.Inf(-1), math.Inf(1), math.NaN()} {
		if got := mf.Fuzzify(x); got != 0 {
			t.Errorf("Outside support [%v, %v]: fuzzify(%v) = %v, want 0", lo, hi, x, got)
		}
	}

	t.Logf("✓ Zero outside support [%v, %v]", lo, hi)
}

// AssertMembershipFunction runs every membership property check.
func AssertMembershipFunction(t *testing.T, mf MembershipFunction, cfg AssertionConfig) {
	t.Helper()

	AssertControlPointsExact(t, mf)
	AssertPiecewiseLinear(t, mf, cfg)
	AssertZeroOutsideSupport(t, mf, cfg)
}

// AssertCurveBounded verifies every combined degree lies in [0,1] and the
// domain and degree slices line up.
func AssertCurveBounded(t *testing.T, curve CombinedCurve) {
	t.Helper()

	if len(curve.Domain) != len(curve.Degrees) {
		t.Fatalf("Curve shape mismatch: %d domain samples, %d degrees", len(curve.Domain), len(curve.Degrees))
	}
	for i, mu := range curve.Degrees {
		if math.IsNaN(mu) || mu < 0 || mu > 1 {
			t.Errorf("Degree at d=%v out of [0,1]: %v", curve.Domain[i], mu)
		}
	}

	t.Logf("✓ Curve bounded: %d degrees in [0,1]", curve.Len())
}

// AssertProductNotAboveMin verifies ProductMax ≤ MinMax at every sample point.
//
// Mathematical property:
//
//	a·b ≤ min(a, b)   for a, b ∈ [0,1]
func AssertProductNotAboveMin(t *testing.T, product, minimum CombinedCurve) {
	t.Helper()

	if len(product.Degrees) != len(minimum.Degrees) {
		t.Fatalf("Curves differ in length: %d vs %d", len(product.Degrees), len(minimum.Degrees))
	}
	for i := range product.Degrees {
		if product.Degrees[i] > minimum.Degrees[i] {
			t.Errorf("At d=%v: product-max %v exceeds min-max %v",
				product.Domain[i], product.Degrees[i], minimum.Degrees[i])
		}
	}

	t.Logf("✓ Product-max ≤ min-max at %d samples", len(product.Degrees))
}

// AssertScaleInvariant verifies the centroid does not move when every degree
// is multiplied by k > 0.
func AssertScaleInvariant(t *testing.T, curve CombinedCurve, k float64, cfg AssertionConfig) {
	t.Helper()

	if k <= 0 {
		t.Fatalf("Scale factor must be positive, got %v", k)
	}

	base, err := curve.Centroid()
	if err != nil {
		t.Fatalf("Centroid failed: %v", err)
	}

	scaled := make([]float64, len(curve.Degrees))
	for i, mu := range curve.Degrees {
		scaled[i] = mu * k
	}

	got, err := Defuzzify(curve.Domain, scaled)
	if err != nil {
		t.Fatalf("Centroid of scaled curve failed: %v", err)
	}

	tol := cfg.Tolerance * math.Max(1, math.Abs(base)) * 1e3
	if math.Abs(got-base) > tol {
		t.Errorf("Centroid moved under scaling by %v: %v → %v", k, base, got)
	}

	t.Logf("✓ Scale invariant: centroid %.6f under ×%v", base, k)
}
