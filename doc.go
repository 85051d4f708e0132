// Package fuzzydose recommends a drug dose from a body temperature with a
// two-rule fuzzy controller.
//
// # Overview
//
// The controller evaluates exactly two rules:
//
//	IF temperature is LOW  THEN dose is LOW
//	IF temperature is HIGH THEN dose is HIGH
//
// and reduces their combined output to one crisp dose in ml.
//
// # Architecture
//
// The package components, used in sequence:
//
//   - membership  - piecewise-linear fuzzy sets (MembershipFunction, Fuzzify)
//   - combine     - rule combination over a sampled dose axis (Combine, CombineOver)
//   - defuzzify   - centroid reduction (Defuzzify)
//   - presets     - built-in table families and YAML loading
//   - controller  - the full pipeline for one preset and method (Controller.Infer)
//   - batch       - parallel evaluation of many readings (InferBatch)
//   - assertions  - test helpers for fuzzy-set properties
//
// # Quick Start
//
//	ctrl, err := fuzzydose.NewController(fuzzydose.DefaultPreset, fuzzydose.MinMax)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := ctrl.Infer(38.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("T_LOW: %.2f  T_HIGH: %.2f  dose: %.2f ml\n", res.MuLow, res.MuHigh, res.Dose)
//
// # The Pipeline
//
// Step by step, without the Controller:
//
//	p := fuzzydose.DefaultPreset
//
//	muLow := fuzzydose.Fuzzify(38.0, p.TempLow)   // 0.5
//	muHigh := fuzzydose.Fuzzify(38.0, p.TempHigh) // 0.2
//
//	curve, err := fuzzydose.Combine(muLow, muHigh, fuzzydose.MinMax, p.DoseLow, p.DoseHigh)
//	if err != nil {
//	    return err
//	}
//
//	dose, err := fuzzydose.Defuzzify(curve.Domain, curve.Degrees)
//
// # Combination Methods
//
// Each rule's strength is clipped (MinMax) or scaled (ProductMax) by its
// antecedent degree, then the two rules are merged pointwise with max:
//
//	MinMax:     μ(d) = max(min(μ_low, D_LOW(d)),  min(μ_high, D_HIGH(d)))
//	ProductMax: μ(d) = max(μ_low · D_LOW(d),      μ_high · D_HIGH(d))
//
// Because a·b ≤ min(a,b) on [0,1], the ProductMax curve never lies above the
// MinMax curve.
//
// # Centroid
//
//	dose = Σ(dᵢ·μᵢ) / Σμᵢ
//
// over 100 evenly spaced samples of [0, 10]. If no rule fires (Σμᵢ = 0) the
// dose is 0. Build the controller WithStrictCoverage to get ErrNoRuleFired
// instead.
//
// # Errors
//
// Every validation failure matches ErrInvalidArgument under errors.Is:
// malformed membership tables, unknown combination methods, antecedent
// degrees outside [0,1] and unusable sampling domains. Nothing is silently
// replaced by a default.
//
// # Testing
//
// Use assertions to validate fuzzy-set properties:
//
//	func TestMyPreset(t *testing.T) {
//	    cfg := fuzzydose.DefaultAssertionConfig()
//
//	    fuzzydose.AssertMembershipFunction(t, preset.TempLow, cfg)
//	    fuzzydose.AssertCurveBounded(t, curve)
//	}
//
// # See Also
//
//   - cmd/fuzzydose - CLI (infer, batch, presets, plot, interactive)
//   - internal/chart - PNG rendering of sets and inference results
package fuzzydose
