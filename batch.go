package fuzzydose

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// BatchConfig controls parallel evaluation.
type BatchConfig struct {
	Concurrency int // Maximum in-flight inferences (0 = GOMAXPROCS)
}

// DefaultBatchConfig returns sensible defaults.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// InferBatch evaluates every temperature with c in parallel.
//
// Inferences share nothing but the controller's read-only preset, so workers
// need no coordination. Results are returned in input order. The first error
// (or context cancellation) stops the batch.
func InferBatch(ctx context.Context, c *Controller, temperatures []float64, cfg BatchConfig) ([]Result, error) {
	if c == nil {
		return nil, invalidArgumentf("controller must not be nil")
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(temperatures))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, t := range temperatures {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := c.Infer(t)
			if err != nil {
				return errors.Wrapf(err, "temperature[%d]=%v", i, t)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// BatchSummary aggregates a batch of results.
type BatchSummary struct {
	Count    int
	Unfired  int // Readings where neither rule fired (dose fell back to 0)
	MinDose  float64
	MaxDose  float64
	MeanDose float64
}

// Summarize computes dose statistics over results.
func Summarize(results []Result) BatchSummary {
	if len(results) == 0 {
		return BatchSummary{}
	}

	doses := make([]float64, len(results))
	unfired := 0
	for i, r := range results {
		doses[i] = r.Dose
		if !r.Fired {
			unfired++
		}
	}

	return BatchSummary{
		Count:    len(results),
		Unfired:  unfired,
		MinDose:  floats.Min(doses),
		MaxDose:  floats.Max(doses),
		MeanDose: floats.Sum(doses) / float64(len(doses)),
	}
}
