package solver

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Solver bundles a problem with a configured search: construction,
// ruin/recreate refinement and telemetry. The whole search is a pure
// function of (problem, seed) apart from wall-clock termination.
type Solver struct {
	problem   *Problem
	config    SolverConfig
	telemetry *Telemetry
}

// NewSolver creates a solver for the problem. Zero-valued sections of
// the config fall back to the defaults.
func NewSolver(problem *Problem, config SolverConfig) *Solver {
	defaults := DefaultSolverConfig()
	if config.Iterations <= 0 && config.MaxTimeSeconds <= 0 {
		config.Iterations = defaults.Iterations
	}
	if config.Ruin.StringRemoval.LsMax < 1 || config.Ruin.StringRemoval.KsMax < 1 {
		config.Ruin.StringRemoval = defaults.Ruin.StringRemoval
	}
	if config.Ruin.RouteRemoval.MaxRoutes < 1 {
		config.Ruin.RouteRemoval = defaults.Ruin.RouteRemoval
	}
	return &Solver{
		problem:   problem,
		config:    config,
		telemetry: NewTelemetry(config.LogEvery),
	}
}

// Telemetry exposes the search statistics after Solve returned.
func (s *Solver) Telemetry() *Telemetry {
	return s.telemetry
}

// Solve builds an initial solution by cheapest insertion and refines it
// with the configured ruin/recreate loop until termination.
func (s *Solver) Solve() *Solution {
	master := NewRandom(s.config.Seed)

	ic := NewInsertionContext(s.problem, master.Derive("construction"))
	(CheapestInsertion{}).Run(ic)
	logrus.Debugf("construction done: %d routes, %d unassigned, cost=%.2f",
		len(ic.Solution.Routes), len(ic.Solution.Unassigned), ic.Estimate())

	ic.Random = master.Derive("refinement")
	loop := &RefinementLoop{
		Ruin: NewCompositeRuin(
			WeightedRuin{
				Ruin: &AdjustedStringRemoval{
					LsMax: s.config.Ruin.StringRemoval.LsMax,
					KsMax: s.config.Ruin.StringRemoval.KsMax,
				},
				Probability: s.config.Ruin.StringRemoval.Probability,
			},
			WeightedRuin{
				Ruin:        NewRandomRouteRemoval(s.config.Ruin.RouteRemoval.MaxRoutes),
				Probability: s.config.Ruin.RouteRemoval.Probability,
			},
		),
		Recreate:    NewDefaultRecreate(),
		Acceptance:  GreedyAcceptance{},
		Termination: s.termination(),
		Telemetry:   s.telemetry,
	}
	best := loop.Run(ic)
	return best.Solution
}

func (s *Solver) termination() Termination {
	var ts CompositeTermination
	if s.config.Iterations > 0 {
		ts = append(ts, MaxIterations{Limit: s.config.Iterations})
	}
	if s.config.MaxTimeSeconds > 0 {
		ts = append(ts, MaxDuration{Limit: time.Duration(s.config.MaxTimeSeconds * float64(time.Second))})
	}
	return ts
}
