package fuzzydose

import (
	"gonum.org/v1/gonum/floats"
)

// Defuzzify reduces a combined curve to a crisp value by the centroid method:
//
//	crisp = Σ(dᵢ·μᵢ) / Σμᵢ
//
// When Σμᵢ is 0 (no rule fired anywhere on the domain) the result is 0.
// The result is not clamped or rounded.
func Defuzzify(domain, degrees []float64) (float64, error) {
	if len(domain) != len(degrees) {
		return 0, invalidArgumentf("domain has %d samples but curve has %d", len(domain), len(degrees))
	}

	mass := floats.Sum(degrees)
	if mass == 0 {
		return 0, nil
	}

	return floats.Dot(domain, degrees) / mass, nil
}
