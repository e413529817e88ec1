// Package statistics summarises decision times.
package statistics

import (
	"math"
	"slices"
	"time"

	"github.com/lox/preflop-trainer/poker"
)

type positionTotals struct {
	n   int
	sum float64
}

// Latencies accumulates decision times overall and per position. The zero
// value is ready to use.
type Latencies struct {
	n      int
	sum    float64
	sum2   float64 // sum of squares, in seconds
	values []float64

	positions [poker.NumPositions]positionTotals
}

// Add records one decision time taken at pos.
func (l *Latencies) Add(pos poker.Position, d time.Duration) {
	secs := d.Seconds()
	l.n++
	l.sum += secs
	l.sum2 += secs * secs
	l.values = append(l.values, secs)
	if pos.Valid() {
		l.positions[pos].n++
		l.positions[pos].sum += secs
	}
}

// Count returns the number of recorded decisions.
func (l *Latencies) Count() int {
	return l.n
}

// Mean returns the average decision time.
func (l *Latencies) Mean() time.Duration {
	if l.n == 0 {
		return 0
	}
	return seconds(l.sum / float64(l.n))
}

// StdDev returns the sample standard deviation.
func (l *Latencies) StdDev() time.Duration {
	if l.n < 2 {
		return 0
	}
	mean := l.sum / float64(l.n)
	variance := (l.sum2 - float64(l.n)*mean*mean) / float64(l.n-1)
	return seconds(math.Sqrt(math.Max(variance, 0)))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (l *Latencies) ConfidenceInterval95() (lo, hi time.Duration) {
	if l.n == 0 {
		return 0, 0
	}
	margin := 1.96 * l.StdDev().Seconds() / math.Sqrt(float64(l.n))
	mean := l.sum / float64(l.n)
	return seconds(math.Max(mean-margin, 0)), seconds(mean + margin)
}

// Median returns the median decision time.
func (l *Latencies) Median() time.Duration {
	return l.Percentile(0.5)
}

// Percentile returns the decision time at p (0.0 to 1.0), interpolating
// between neighbouring values.
func (l *Latencies) Percentile(p float64) time.Duration {
	if len(l.values) == 0 {
		return 0
	}
	sorted := slices.Clone(l.values)
	slices.Sort(sorted)

	index := math.Min(math.Max(p, 0), 1) * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return seconds(sorted[len(sorted)-1])
	}
	weight := index - float64(lower)
	return seconds(sorted[lower]*(1-weight) + sorted[upper]*weight)
}

// PositionMean returns the average decision time at pos.
func (l *Latencies) PositionMean(pos poker.Position) time.Duration {
	if !pos.Valid() || l.positions[pos].n == 0 {
		return 0
	}
	return seconds(l.positions[pos].sum / float64(l.positions[pos].n))
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
