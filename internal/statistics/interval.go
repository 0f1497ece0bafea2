package statistics

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// ConfidenceReport is the outcome of a bootstrap run.
type ConfidenceReport struct {
	Lower            float64 `json:"lower"`
	Upper            float64 `json:"upper"`
	OriginalMean     float64 `json:"original_mean"`
	BootstrappedMean float64 `json:"bootstrapped_mean"`

	// StdErr is the standard deviation of the trial means, the bootstrap
	// estimate of the standard error of the mean.
	StdErr     float64 `json:"std_err"`
	Confidence int     `json:"confidence"`
	Trials     int     `json:"trials"`
	Workers    int     `json:"workers,omitempty"`
	SampleSize int     `json:"sample_size"`
	LowerIndex int     `json:"lower_index"`
	UpperIndex int     `json:"upper_index"`
}

// PercentileIndices returns the positions of the interval bounds in a sorted
// distribution of the given size, using the percentile method:
//
//	alpha = (100 - confidence) / 2
//	lower = floor(alpha/100 * size)
//	upper = floor((100-alpha)/100 * size)
//
// Both indices are clamped to [0, size-1]. confidence is not range-checked.
func PercentileIndices(size, confidence int) (lower, upper int) {
	alpha := float64(100-confidence) / 2.0
	lower = int(math.Floor((alpha / 100) * float64(size)))
	upper = int(math.Floor(((100 - alpha) / 100) * float64(size)))
	return clampIndex(lower, size), clampIndex(upper, size)
}

func clampIndex(i, size int) int {
	return max(0, min(i, size-1))
}

// EstimateInterval sorts dist in place and derives the confidence report for
// sample. dist must be non-empty and confidence must already be validated.
func EstimateInterval(sample, dist []float64, confidence int) ConfidenceReport {
	sort.Float64s(dist)
	lo, hi := PercentileIndices(len(dist), confidence)

	return ConfidenceReport{
		Lower:            dist[lo],
		Upper:            dist[hi],
		OriginalMean:     mean(sample),
		BootstrappedMean: mean(dist),
		StdErr:           stats.StdDev(dist),
		Confidence:       confidence,
		Trials:           len(dist),
		SampleSize:       len(sample),
		LowerIndex:       lo,
		UpperIndex:       hi,
	}
}
