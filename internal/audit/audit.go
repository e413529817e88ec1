// Package audit runs large numbers of generated scenarios in parallel and
// reports how they are distributed, to check the generator for bias.
package audit

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/preflop-trainer/internal/drill"
	"github.com/lox/preflop-trainer/internal/randutil"
	"github.com/lox/preflop-trainer/poker"
)

// checkEvery is how many rounds a worker runs between cancellation checks.
const checkEvery = 1024

// Options configures an audit run.
type Options struct {
	Rounds  int
	Workers int
	Seed    int64
	// Generator options applied to every worker's generator.
	Generator []drill.Option
	// Evaluator, when set, is used to count expected raises per position.
	Evaluator *drill.Evaluator
}

// Distribution holds the counts observed over an audit run.
type Distribution struct {
	Rounds    int
	Positions [poker.NumPositions]int
	Classes   [poker.NumHandClasses]int
	Cards     [52]int
	Raises    [poker.NumPositions]int
	Allowed   []poker.Position
}

type workerResult struct {
	dist Distribution
}

// Run generates opts.Rounds scenarios across opts.Workers goroutines. Each
// worker owns a generator seeded from opts.Seed, so a run is reproducible for
// a fixed seed and worker count.
func Run(ctx context.Context, opts Options) (*Distribution, error) {
	if opts.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", opts.Rounds)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	workers = min(workers, opts.Rounds)

	perWorker := opts.Rounds / workers
	remainder := opts.Rounds % workers

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan workerResult, workers)

	for w := range workers {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		seed := randutil.Derive(opts.Seed, w)

		g.Go(func() error {
			gen := drill.NewGenerator(randutil.New(seed), opts.Generator...)
			result, err := runWorker(ctx, gen, opts.Evaluator, rounds)
			if err != nil {
				return err
			}
			select {
			case results <- result:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		_ = g.Wait()
	}()

	total := &Distribution{}
	for result := range results {
		total.merge(&result.dist)
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}

	total.Allowed = drill.NewGenerator(randutil.New(opts.Seed), opts.Generator...).Positions()
	return total, nil
}

func runWorker(ctx context.Context, gen *drill.Generator, eval *drill.Evaluator, rounds int) (workerResult, error) {
	var res workerResult
	d := &res.dist
	for i := range rounds {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		s := gen.Next()
		hi, lo := s.Cards.Cards()
		d.Rounds++
		d.Positions[s.Position]++
		d.Classes[s.Class().Index()]++
		d.Cards[hi.Index()]++
		d.Cards[lo.Index()]++
		if eval != nil && eval.CorrectAction(s) == poker.Raise {
			d.Raises[s.Position]++
		}
	}
	return res, nil
}

func (d *Distribution) merge(o *Distribution) {
	d.Rounds += o.Rounds
	for i := range d.Positions {
		d.Positions[i] += o.Positions[i]
		d.Raises[i] += o.Raises[i]
	}
	for i := range d.Classes {
		d.Classes[i] += o.Classes[i]
	}
	for i := range d.Cards {
		d.Cards[i] += o.Cards[i]
	}
}

// RaiseShare returns the share of rounds at pos where raising was expected.
func (d *Distribution) RaiseShare(pos poker.Position) float64 {
	if d.Positions[pos] == 0 {
		return 0
	}
	return float64(d.Raises[pos]) / float64(d.Positions[pos])
}

// PositionChiSquare tests the position counts against a uniform draw over the
// allowed positions. It returns the statistic and its degrees of freedom.
func (d *Distribution) PositionChiSquare() (stat float64, df int) {
	if len(d.Allowed) < 2 {
		return 0, 0
	}
	observed := make([]int, len(d.Allowed))
	expected := make([]float64, len(d.Allowed))
	for i, pos := range d.Allowed {
		observed[i] = d.Positions[pos]
		expected[i] = float64(d.Rounds) / float64(len(d.Allowed))
	}
	return ChiSquare(observed, expected), len(d.Allowed) - 1
}

// ClassChiSquare tests the hand class counts against uniform dealing, where
// each class appears in proportion to its number of combos.
func (d *Distribution) ClassChiSquare() (stat float64, df int) {
	expected := make([]float64, poker.NumHandClasses)
	for i, class := range poker.AllHandClasses() {
		expected[i] = float64(d.Rounds) * float64(class.NumCombos()) / 1326
	}
	return ChiSquare(d.Classes[:], expected), poker.NumHandClasses - 1
}

// CardChiSquare tests how often each of the 52 cards was dealt.
func (d *Distribution) CardChiSquare() (stat float64, df int) {
	expected := make([]float64, len(d.Cards))
	for i := range expected {
		expected[i] = float64(d.Rounds) * 2 / 52
	}
	return ChiSquare(d.Cards[:], expected), len(d.Cards) - 1
}

// ChiSquare returns Pearson's statistic for observed against expected counts.
// Cells with no expectation are skipped.
func ChiSquare(observed []int, expected []float64) float64 {
	var stat float64
	for i, e := range expected {
		if e <= 0 {
			continue
		}
		diff := float64(observed[i]) - e
		stat += diff * diff / e
	}
	return stat
}
