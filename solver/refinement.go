package solver

import "time"

// Acceptance decides whether a candidate cost replaces the current one.
type Acceptance interface {
	IsAccepted(candidate, current float64) bool
}

// GreedyAcceptance accepts strict improvements only.
type GreedyAcceptance struct{}

func (GreedyAcceptance) IsAccepted(candidate, current float64) bool {
	return candidate < current
}

// Termination decides when the refinement loop stops. It is consulted
// between iterations; an in-flight iteration always completes.
type Termination interface {
	IsTermination(iteration int, elapsed time.Duration) bool
}

// MaxIterations stops after a fixed number of iterations.
type MaxIterations struct {
	Limit int
}

func (t MaxIterations) IsTermination(iteration int, _ time.Duration) bool {
	return iteration >= t.Limit
}

// MaxDuration stops once the wall-clock budget is spent.
type MaxDuration struct {
	Limit time.Duration
}

func (t MaxDuration) IsTermination(_ int, elapsed time.Duration) bool {
	return elapsed >= t.Limit
}

// CompositeTermination stops when any member stops.
type CompositeTermination []Termination

func (ts CompositeTermination) IsTermination(iteration int, elapsed time.Duration) bool {
	for _, t := range ts {
		if t.IsTermination(iteration, elapsed) {
			return true
		}
	}
	return false
}

// RefinementLoop advances a population of one: each iteration clones
// the current context, ruins and recreates the clone and compares it
// against the current and the best incumbents. The best objective is
// non-increasing across iterations.
type RefinementLoop struct {
	Ruin        Ruin
	Recreate    Recreate
	Acceptance  Acceptance
	Termination Termination
	Telemetry   *Telemetry
}

// Run refines the initial context until termination and returns the
// best context observed.
func (l *RefinementLoop) Run(initial *InsertionContext) *InsertionContext {
	best, current := initial, initial
	bestCost := initial.Estimate()
	currentCost := bestCost
	start := time.Now()

	for i := 0; !l.Termination.IsTermination(i, time.Since(start)); i++ {
		iterStart := time.Now()
		candidate := current.Clone()
		l.Ruin.Run(candidate)
		l.Recreate.Run(candidate)
		cost := candidate.Estimate()

		accepted := l.Acceptance.IsAccepted(cost, currentCost)
		if accepted {
			current, currentCost = candidate, cost
		}
		if cost < bestCost {
			best, bestCost = candidate, cost
		}
		if l.Telemetry != nil {
			l.Telemetry.Observe(i, cost, bestCost, accepted, time.Since(iterStart))
		}
	}
	return best
}
