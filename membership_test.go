package fuzzydose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipFunction_BuiltinPresetsSatisfyProperties(t *testing.T) {
	cfg := DefaultAssertionConfig()

	for _, p := range Presets() {
		t.Run(p.Name, func(t *testing.T) {
			AssertMembershipFunction(t, p.TempLow, cfg)
			AssertMembershipFunction(t, p.TempHigh, cfg)
			AssertMembershipFunction(t, p.DoseLow, cfg)
			AssertMembershipFunction(t, p.DoseHigh, cfg)
		})
	}
}

func TestFuzzify_ControlPoints(t *testing.T) {
	tests := []struct {
		name string
		mf   MembershipFunction
		x    float64
		want float64
	}{
		{"T_LOW at 38.0", DefaultPreset.TempLow, 38.0, 0.5},
		{"T_HIGH at 38.0", DefaultPreset.TempHigh, 38.0, 0.2},
		{"T_LOW at 37.5", DefaultPreset.TempLow, 37.5, 1.0},
		{"T_HIGH at 37.5", DefaultPreset.TempHigh, 37.5, 0.0},
		{"T_LOW first point", DefaultPreset.TempLow, 37, 0.2},
		{"T_HIGH last point", DefaultPreset.TempHigh, 40, 1.0},
		{"D_LOW at 5", DefaultPreset.DoseLow, 5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fuzzify(tt.x, tt.mf))
		})
	}
}

func TestFuzzify_Interpolation(t *testing.T) {
	mf := DefaultPreset.TempLow

	// Between (37.5, 1) and (38, 0.5)
	assert.InDelta(t, 0.75, mf.Fuzzify(37.75), 1e-12)
	// Between (37, 0.2) and (37.5, 1)
	assert.InDelta(t, 0.6, mf.Fuzzify(37.25), 1e-12)
	// Between (8, 0.2) and (10, 0)
	assert.InDelta(t, 0.1, DefaultPreset.DoseLow.Fuzzify(9), 1e-12)

	t.Logf("✓ T_LOW(37.75) = %.4f", mf.Fuzzify(37.75))
}

func TestFuzzify_OutsideSupportIsZero(t *testing.T) {
	mf := DefaultPreset.TempLow

	assert.Zero(t, mf.Fuzzify(36.9))
	assert.Zero(t, mf.Fuzzify(40.1))
	assert.Zero(t, mf.Fuzzify(-273.15))
	assert.Zero(t, mf.Fuzzify(math.NaN()))

	// The first point has μ = 0.2, so the curve jumps to 0 just below it.
	assert.Equal(t, 0.2, mf.Fuzzify(37))
	assert.Zero(t, mf.Fuzzify(math.Nextafter(37, 0)))
}

func TestFuzzify_NaNFallsBackToZeroDose(t *testing.T) {
	for _, p := range Presets() {
		t.Run(p.Name, func(t *testing.T) {
			muLow := Fuzzify(math.NaN(), p.TempLow)
			muHigh := Fuzzify(math.NaN(), p.TempHigh)
			require.Zero(t, muLow)
			require.Zero(t, muHigh)

			for _, method := range []CombinationMethod{MinMax, ProductMax} {
				curve, err := Combine(muLow, muHigh, method, p.DoseLow, p.DoseHigh)
				require.NoError(t, err, method.String())

				dose, err := Defuzzify(curve.Domain, curve.Degrees)
				require.NoError(t, err)
				assert.Zero(t, dose, method.String())
			}
		})
	}
}

func TestNewMembershipFunction_Validation(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"no points", nil},
		{"single point", []Point{{0, 1}}},
		{"duplicate x", []Point{{0, 1}, {0, 0}}},
		{"decreasing x", []Point{{1, 1}, {0, 0}}},
		{"membership above one", []Point{{0, 1.5}, {1, 0}}},
		{"negative membership", []Point{{0, -0.1}, {1, 0}}},
		{"NaN membership", []Point{{0, math.NaN()}, {1, 0}}},
		{"infinite x", []Point{{0, 0}, {math.Inf(1), 1}}},
		{"NaN x", []Point{{math.NaN(), 0}, {1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMembershipFunction(tt.points...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestMustMembershipFunction_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustMembershipFunction(Point{1, 0})
	})
	assert.NotPanics(t, func() {
		MustMembershipFunction(Point{0, 0}, Point{1, 1})
	})
}

func TestMembershipFunction_Immutable(t *testing.T) {
	input := []Point{{0, 0}, {1, 1}}
	mf, err := NewMembershipFunction(input...)
	require.NoError(t, err)

	// Mutating the caller's slice must not leak into the function.
	input[1].Mu = 0
	assert.Equal(t, 1.0, mf.Fuzzify(1))

	// Nor may mutating the returned copy.
	pts := mf.Points()
	pts[0].Mu = 1
	assert.Equal(t, 0.0, mf.Fuzzify(0))
}

func TestMembershipFunction_Accessors(t *testing.T) {
	lo, hi := DefaultPreset.TempHigh.Support()
	assert.Equal(t, 37.0, lo)
	assert.Equal(t, 40.0, hi)
	assert.Equal(t, 7, DefaultPreset.TempHigh.Len())
	assert.False(t, DefaultPreset.TempHigh.IsZero())

	var zero MembershipFunction
	assert.True(t, zero.IsZero())
	assert.Zero(t, zero.Fuzzify(1))
	lo, hi = zero.Support()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}
