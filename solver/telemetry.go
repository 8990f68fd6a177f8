package solver

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// IterationRecord captures what one refinement iteration produced.
type IterationRecord struct {
	Iteration int
	Cost      float64
	Best      float64
	Accepted  bool
	Duration  time.Duration
}

// Telemetry aggregates per-iteration statistics of one search for
// final reporting. Useful for evaluating parameter choices and
// debugging search behavior over time.
type Telemetry struct {
	LogEvery int

	records []IterationRecord
	best    float64
}

// NewTelemetry creates a telemetry sink logging progress every
// logEvery iterations (0 disables progress logging).
func NewTelemetry(logEvery int) *Telemetry {
	return &Telemetry{LogEvery: logEvery}
}

// Observe records one iteration.
func (t *Telemetry) Observe(iteration int, cost, best float64, accepted bool, duration time.Duration) {
	if len(t.records) == 0 || best < t.best {
		t.best = best
		logrus.Debugf("[iteration %06d] new best %.2f", iteration, best)
	}
	t.records = append(t.records, IterationRecord{
		Iteration: iteration,
		Cost:      cost,
		Best:      best,
		Accepted:  accepted,
		Duration:  duration,
	})
	if t.LogEvery > 0 && (iteration+1)%t.LogEvery == 0 {
		logrus.Infof("[iteration %06d] cost=%.2f best=%.2f", iteration, cost, best)
	}
}

// SearchSummary is the aggregate view of a finished search.
type SearchSummary struct {
	Iterations       int
	Accepted         int
	Improvements     int
	BestCost         float64
	MeanIterMillis   float64
	StddevIterMillis float64
}

// Summary computes the aggregate statistics over all recorded
// iterations.
func (t *Telemetry) Summary() SearchSummary {
	s := SearchSummary{Iterations: len(t.records)}
	if len(t.records) == 0 {
		return s
	}
	millis := make([]float64, len(t.records))
	prevBest := t.records[0].Cost
	for i, r := range t.records {
		millis[i] = float64(r.Duration.Microseconds()) / 1e3
		if r.Accepted {
			s.Accepted++
		}
		if r.Best < prevBest {
			s.Improvements++
			prevBest = r.Best
		}
	}
	s.BestCost = t.records[len(t.records)-1].Best
	s.MeanIterMillis = stat.Mean(millis, nil)
	if len(millis) > 1 {
		s.StddevIterMillis = stat.StdDev(millis, nil)
	}
	return s
}

// Print displays the aggregated search statistics.
func (s SearchSummary) Print() {
	fmt.Println("=== Search Metrics ===")
	fmt.Printf("Iterations           : %d\n", s.Iterations)
	fmt.Printf("Accepted Candidates  : %d\n", s.Accepted)
	fmt.Printf("Best Improvements    : %d\n", s.Improvements)
	fmt.Printf("Best Cost            : %.2f\n", s.BestCost)
	fmt.Printf("Mean Iteration       : %.3f ms\n", s.MeanIterMillis)
	fmt.Printf("Stddev Iteration     : %.3f ms\n", s.StddevIterMillis)
}
