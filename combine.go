package fuzzydose

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// CombinationMethod selects the AND operator used inside each rule.
// Aggregation across the two rules is always max (OR).
//
// The zero value is not a valid method.
type CombinationMethod int

const (
	// MinMax: rule strength = min(antecedent, consequent), aggregated by max.
	MinMax CombinationMethod = iota + 1
	// ProductMax: rule strength = antecedent × consequent, aggregated by max.
	ProductMax
)

// String returns the canonical name of the method.
func (m CombinationMethod) String() string {
	switch m {
	case MinMax:
		return "min-max"
	case ProductMax:
		return "product-max"
	}
	return fmt.Sprintf("CombinationMethod(%d)", int(m))
}

// Valid reports whether m is one of the defined methods.
func (m CombinationMethod) Valid() bool {
	switch m {
	case MinMax, ProductMax:
		return true
	}
	return false
}

// ParseCombinationMethod maps a user-supplied name to a method.
//
// Accepted (case-insensitive):
//   - "min", "min-max", "max-min"              → MinMax
//   - "product", "prod", "product-max", "max-product" → ProductMax
func ParseCombinationMethod(s string) (CombinationMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "min", "min-max", "max-min":
		return MinMax, nil
	case "product", "prod", "product-max", "max-product":
		return ProductMax, nil
	}
	return 0, invalidArgumentf("unknown combination method %q (want min-max or product-max)", s)
}

// Domain describes how the output (dose) axis is sampled.
type Domain struct {
	Min     float64 // First sample
	Max     float64 // Last sample (inclusive)
	Samples int     // Number of evenly spaced samples
}

// DefaultDomain returns 100 samples from 0 to 10 inclusive.
func DefaultDomain() Domain {
	return Domain{
		Min:     0,
		Max:     10,
		Samples: 100,
	}
}

// Validate checks the domain is usable for sampling.
func (d Domain) Validate() error {
	if math.IsNaN(d.Min) || math.IsInf(d.Min, 0) || math.IsNaN(d.Max) || math.IsInf(d.Max, 0) {
		return invalidArgumentf("domain bounds must be finite, got [%v, %v]", d.Min, d.Max)
	}
	if d.Max <= d.Min {
		return invalidArgumentf("domain max (%v) must exceed min (%v)", d.Max, d.Min)
	}
	if d.Samples < 2 {
		return invalidArgumentf("domain needs at least 2 samples, got %d", d.Samples)
	}
	return nil
}

// Sample returns a freshly allocated slice of evenly spaced values from Min to
// Max inclusive. The caller owns the slice.
func (d Domain) Sample() []float64 {
	return floats.Span(make([]float64, d.Samples), d.Min, d.Max)
}

// CombinedCurve is the aggregated output membership over a sampled domain.
// Domain[i] and Degrees[i] describe the same sample point.
type CombinedCurve struct {
	Domain  []float64
	Degrees []float64
}

// Len returns the number of sample points.
func (c CombinedCurve) Len() int {
	return len(c.Domain)
}

// Centroid defuzzifies the curve. See Defuzzify.
func (c CombinedCurve) Centroid() (float64, error) {
	return Defuzzify(c.Domain, c.Degrees)
}

// Combine applies both rules over the default domain.
//
//	IF temperature is LOW  THEN dose is LOW   (strength muLow)
//	IF temperature is HIGH THEN dose is HIGH  (strength muHigh)
func Combine(muLow, muHigh float64, method CombinationMethod, doseLow, doseHigh MembershipFunction) (CombinedCurve, error) {
	return CombineOver(DefaultDomain(), muLow, muHigh, method, doseLow, doseHigh)
}

// CombineOver applies both rules over an explicit domain.
//
// For each sample d:
//
//	MinMax:     max(min(muLow, doseLow(d)), min(muHigh, doseHigh(d)))
//	ProductMax: max(muLow·doseLow(d), muHigh·doseHigh(d))
//
// An unknown method is an error; no method is ever substituted.
func CombineOver(domain Domain, muLow, muHigh float64, method CombinationMethod, doseLow, doseHigh MembershipFunction) (CombinedCurve, error) {
	implication, err := implicationFor(method)
	if err != nil {
		return CombinedCurve{}, err
	}
	if err := validateDegree("muLow", muLow); err != nil {
		return CombinedCurve{}, err
	}
	if err := validateDegree("muHigh", muHigh); err != nil {
		return CombinedCurve{}, err
	}
	if doseLow.IsZero() || doseHigh.IsZero() {
		return CombinedCurve{}, invalidArgumentf("dose membership functions must be constructed")
	}
	if err := domain.Validate(); err != nil {
		return CombinedCurve{}, err
	}

	xs := domain.Sample()
	degrees := make([]float64, len(xs))

	for i, d := range xs {
		low := implication(muLow, doseLow.Fuzzify(d))
		high := implication(muHigh, doseHigh.Fuzzify(d))
		degrees[i] = math.Max(low, high)
	}

	return CombinedCurve{Domain: xs, Degrees: degrees}, nil
}

// implicationFor returns the per-rule AND operator for method.
func implicationFor(method CombinationMethod) (func(antecedent, consequent float64) float64, error) {
	switch method {
	case MinMax:
		return math.Min, nil
	case ProductMax:
		return func(a, c float64) float64 { return a * c }, nil
	}
	return nil, invalidArgumentf("unknown combination method %v", method)
}

func validateDegree(name string, mu float64) error {
	if math.IsNaN(mu) || mu < 0 || mu > 1 {
		return invalidArgumentf("%s must be in [0,1], got %v", name, mu)
	}
	return nil
}
