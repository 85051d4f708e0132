package fuzzydose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefuzzify_ZeroMassFallsBackToZero(t *testing.T) {
	domain := DefaultDomain().Sample()
	degrees := make([]float64, len(domain))

	got, err := Defuzzify(domain, degrees)
	require.NoError(t, err)
	assert.Zero(t, got)

	got, err = Defuzzify(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestDefuzzify_WeightedMean(t *testing.T) {
	tests := []struct {
		name    string
		domain  []float64
		degrees []float64
		want    float64
	}{
		{"single spike", []float64{0, 5, 10}, []float64{0, 1, 0}, 5},
		{"uniform", []float64{0, 5, 10}, []float64{1, 1, 1}, 5},
		{"skewed", []float64{0, 10}, []float64{1, 3}, 7.5},
		{"partial spike", []float64{2, 4, 6}, []float64{0, 0.3, 0}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Defuzzify(tt.domain, tt.degrees)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestDefuzzify_ScaleInvariant(t *testing.T) {
	cfg := DefaultAssertionConfig()
	p := DefaultPreset

	curve, err := Combine(0.5, 0.2, MinMax, p.DoseLow, p.DoseHigh)
	require.NoError(t, err)

	for _, k := range []float64{0.001, 0.5, 2, 1000} {
		AssertScaleInvariant(t, curve, k, cfg)
	}
}

func TestDefuzzify_LengthMismatch(t *testing.T) {
	_, err := Defuzzify([]float64{0, 1, 2}, []float64{1, 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCombinedCurve_Centroid(t *testing.T) {
	p := DefaultPreset

	// Only LOW fires at full strength: the centroid is that of D_LOW.
	curve, err := Combine(1, 0, MinMax, p.DoseLow, p.DoseHigh)
	require.NoError(t, err)

	got, err := curve.Centroid()
	require.NoError(t, err)
	assert.InDelta(t, 3.299663299663301, got, 1e-9)
}
