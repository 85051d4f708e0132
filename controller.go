package fuzzydose

import (
	"log/slog"
	"math"

	"github.com/cockroachdb/errors"
)

// Controller runs the two-rule inference pipeline for one preset and method:
//
//	temperature → fuzzify (T_LOW, T_HIGH) → combine (D_LOW, D_HIGH) → centroid → dose
//
// A Controller holds only read-only configuration, so one instance can serve
// concurrent Infer calls.
type Controller struct {
	preset         Preset
	method         CombinationMethod
	domain         Domain
	logger         *slog.Logger
	strictCoverage bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithDomain overrides the dose sampling domain (default 0..10, 100 samples).
func WithDomain(d Domain) Option {
	return func(c *Controller) { c.domain = d }
}

// WithLogger sets the logger used for per-inference debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithStrictCoverage makes Infer fail with ErrNoRuleFired when the temperature
// has zero membership in both LOW and HIGH, instead of returning dose 0.
func WithStrictCoverage() Option {
	return func(c *Controller) { c.strictCoverage = true }
}

// NewController validates the configuration and builds a controller.
func NewController(preset Preset, method CombinationMethod, opts ...Option) (*Controller, error) {
	c := &Controller{
		preset: preset,
		method: method,
		domain: DefaultDomain(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	if err := preset.Validate(); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, invalidArgumentf("unknown combination method %v", method)
	}
	if err := c.domain.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Preset returns the preset the controller evaluates against.
func (c *Controller) Preset() Preset { return c.preset }

// Method returns the combination method.
func (c *Controller) Method() CombinationMethod { return c.method }

// Domain returns the dose sampling domain.
func (c *Controller) Domain() Domain { return c.domain }

// Result is one complete inference.
type Result struct {
	Temperature float64
	Preset      string
	Method      CombinationMethod
	MuLow       float64       // Degree of "temperature is LOW"
	MuHigh      float64       // Degree of "temperature is HIGH"
	Curve       CombinedCurve // Aggregated dose membership
	Dose        float64       // Crisp recommendation
	Fired       bool          // At least one rule had non-zero strength
}

// Infer computes the dose recommendation for a temperature reading.
//
// A reading outside both temperature sets yields Dose 0 and Fired false,
// unless the controller was built WithStrictCoverage.
func (c *Controller) Infer(temperature float64) (Result, error) {
	if math.IsNaN(temperature) || math.IsInf(temperature, 0) {
		return Result{}, invalidArgumentf("temperature must be finite, got %v", temperature)
	}

	muLow := c.preset.TempLow.Fuzzify(temperature)
	muHigh := c.preset.TempHigh.Fuzzify(temperature)
	fired := muLow > 0 || muHigh > 0

	if !fired && c.strictCoverage {
		lo, hi := c.preset.TempLow.Support()
		hlo, hhi := c.preset.TempHigh.Support()
		return Result{}, errors.WithHintf(
			errors.Wrapf(ErrNoRuleFired, "temperature %.2f °C", temperature),
			"preset %q covers LOW on [%g, %g] and HIGH on [%g, %g]",
			c.preset.Name, lo, hi, hlo, hhi)
	}

	curve, err := CombineOver(c.domain, muLow, muHigh, c.method, c.preset.DoseLow, c.preset.DoseHigh)
	if err != nil {
		return Result{}, errors.Wrap(err, "combine")
	}

	dose, err := curve.Centroid()
	if err != nil {
		return Result{}, errors.Wrap(err, "defuzzify")
	}

	c.logger.Debug("inference",
		"temperature", temperature,
		"preset", c.preset.Name,
		"method", c.method.String(),
		"mu_low", muLow,
		"mu_high", muHigh,
		"dose", dose,
		"fired", fired,
	)

	return Result{
		Temperature: temperature,
		Preset:      c.preset.Name,
		Method:      c.method,
		MuLow:       muLow,
		MuHigh:      muHigh,
		Curve:       curve,
		Dose:        dose,
		Fired:       fired,
	}, nil
}
