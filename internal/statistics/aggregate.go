package statistics

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// cancelCheckInterval is how many trials a worker runs between context checks.
const cancelCheckInterval = 256

// Aggregator runs bootstrap trials across a fixed pool of workers and merges
// their results into a single distribution.
type Aggregator struct {
	// Workers is the size of the pool. Zero means runtime.GOMAXPROCS(0).
	// The pool never exceeds the number of trials.
	Workers int

	// Seeder builds each worker's generator. Nil means EntropySeeder().
	Seeder Seeder

	// Progress, when set, is incremented once per completed trial.
	Progress *atomic.Int64
}

// Run executes exactly trials resample-and-mean cycles over sample and returns
// the unsorted distribution of trial means. The result always has exactly
// trials entries; cancelling ctx aborts the run and returns no distribution.
func (a *Aggregator) Run(ctx context.Context, sample []float64, trials int) ([]float64, error) {
	if len(sample) == 0 {
		return nil, &InputError{Err: ErrEmptySample}
	}
	if trials < 1 {
		return nil, &ValidationError{Field: "trials", Value: trials, Err: ErrNoTrials}
	}

	seeder := a.Seeder
	if seeder == nil {
		seeder = EntropySeeder()
	}

	chunks := partition(trials, a.workerCount(trials))
	slog.Debug("Starting bootstrap trials", "trials", trials, "workers", len(chunks), "sampleSize", len(sample))

	var (
		mu   sync.Mutex
		dist = make([]float64, 0, trials)
	)

	g, ctx := errgroup.WithContext(ctx)
	for w, size := range chunks {
		src := seeder(w)
		g.Go(func() error {
			own := make([]float64, 0, size)
			buf := make([]float64, len(sample))
			for i := range size {
				if i%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				buf = Resample(buf, sample, src)
				own = append(own, mean(buf))
				if a.Progress != nil {
					a.Progress.Add(1)
				}
			}

			mu.Lock()
			dist = append(dist, own...)
			mu.Unlock()

			slog.Debug("Worker merged trials", "worker", w, "trials", len(own))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bootstrap aborted: %w", err)
	}
	if len(dist) != trials {
		return nil, fmt.Errorf("bootstrap merged %d trials, expected %d", len(dist), trials)
	}
	return dist, nil
}

func (a *Aggregator) workerCount(trials int) int {
	w := a.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return min(w, trials)
}

// partition splits trials into workers chunk sizes that sum to trials. The
// first trials%workers chunks carry one extra trial.
func partition(trials, workers int) []int {
	chunks := make([]int, workers)
	base, extra := trials/workers, trials%workers
	for i := range chunks {
		chunks[i] = base
		if i < extra {
			chunks[i]++
		}
	}
	return chunks
}
