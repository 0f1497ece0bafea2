package statistics

import (
	"context"
	"math"
	"sync/atomic"
)

// Defaults used when a caller does not choose otherwise.
const (
	DefaultTrials     = 10000
	DefaultConfidence = 95
)

// Options controls a bootstrap run.
type Options struct {
	// Trials is the number of resamples B. Must be at least 1.
	Trials int
	// Confidence is the interval width in percent, 1 through 99.
	Confidence int
	// Workers is the worker pool size; zero picks runtime.GOMAXPROCS(0).
	Workers int
	// Seed, when set, makes the run reproducible for a fixed worker count.
	// When nil every worker draws fresh entropy.
	Seed *uint64
	// Progress, when set, counts completed trials while the run is in flight.
	Progress *atomic.Int64
}

// DefaultOptions returns Options with the default trial count and confidence.
func DefaultOptions() Options {
	return Options{
		Trials:     DefaultTrials,
		Confidence: DefaultConfidence,
	}
}

// Validate rejects parameters that must never reach the resampling engine.
func (o Options) Validate() error {
	if o.Trials < 1 {
		return &ValidationError{Field: "trials", Value: o.Trials, Err: ErrNoTrials}
	}
	if o.Confidence < 1 || o.Confidence > 99 {
		return &ValidationError{Field: "confidence", Value: o.Confidence, Err: ErrConfidenceRange}
	}
	if o.Workers < 0 {
		return &ValidationError{Field: "workers", Value: o.Workers, Err: ErrNegativeWorkers}
	}
	return nil
}

// Estimate computes a percentile bootstrap confidence interval for the mean
// of sample. Either a complete report or an error is returned, never both.
func Estimate(ctx context.Context, sample []float64, opts Options) (*ConfidenceReport, error) {
	if len(sample) == 0 {
		return nil, &InputError{Err: ErrEmptySample}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !finiteSums(sample) {
		return nil, &InputError{Err: ErrNonFiniteMean}
	}

	agg := &Aggregator{
		Workers:  opts.Workers,
		Progress: opts.Progress,
	}
	if opts.Seed != nil {
		agg.Seeder = FixedSeeder(*opts.Seed)
	}

	dist, err := agg.Run(ctx, sample, opts.Trials)
	if err != nil {
		return nil, err
	}

	report := EstimateInterval(sample, dist, opts.Confidence)
	report.Workers = agg.workerCount(opts.Trials)
	return &report, nil
}

// finiteSums reports whether every resample of sample sums to a finite value.
// The worst resample repeats the largest magnitude n times.
func finiteSums(sample []float64) bool {
	peak := 0.0
	for _, v := range sample {
		peak = max(peak, math.Abs(v))
	}
	return !math.IsInf(peak*float64(len(sample)), 0)
}
