package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fiveRouteContext builds a solution with five single-job routes by
// giving every job the full vehicle capacity.
func fiveRouteContext(t *testing.T, seed int64) (*Problem, *InsertionContext) {
	t.Helper()
	var actors []*Actor
	var jobs []Job
	for i := 0; i < 5; i++ {
		actors = append(actors, testActor("v", 10, 10000))
		jobs = append(jobs, testSingle(string(rune('1'+i)), i%5+1, 10, TimeWindow{0, 5000}, 0))
	}
	p := testProblem(actors, jobs)
	ic := NewInsertionContext(p, NewRandom(seed))
	(CheapestInsertion{}).Run(ic)
	require.Len(t, ic.Solution.Routes, 5)
	require.Empty(t, ic.Solution.Unassigned)
	return p, ic
}

func TestRandomRouteRemoval_RemovesExactlyOneRoute(t *testing.T) {
	// GIVEN a five-route solution
	p, ic := fiveRouteContext(t, 1)
	var before [][]Job
	for _, r := range ic.Solution.Routes {
		before = append(before, r.Tour.OrderedJobs())
	}

	// WHEN random route removal runs with probability 1
	NewRandomRouteRemoval(1).Run(ic)

	// THEN exactly one route is gone and all its jobs are unassigned
	// as ruined
	require.Len(t, ic.Solution.Routes, 4)
	require.Len(t, ic.Solution.Unassigned, 1)
	for _, code := range ic.Solution.Unassigned {
		assert.Equal(t, CodeRuined, code)
	}

	// AND the surviving routes are untouched
	survivors := make(map[Job]bool)
	for _, r := range ic.Solution.Routes {
		for _, j := range r.Tour.OrderedJobs() {
			survivors[j] = true
		}
	}
	touched := 0
	for _, jobs := range before {
		for _, j := range jobs {
			if !survivors[j] {
				touched++
			}
		}
	}
	assert.Equal(t, 1, touched)
	requireValidSolution(t, p, ic.Solution)

	// AND the freed actor is available again
	assert.Equal(t, 1, ic.Solution.Registry.Quota())
}

func TestAdjustedStringRemoval_RuinsAndStaysConsistent(t *testing.T) {
	p, ic := fiveRouteContext(t, 2)

	NewAdjustedStringRemoval().Run(ic)

	assert.NotEmpty(t, ic.Solution.Unassigned, "a seed string must be removed")
	for _, code := range ic.Solution.Unassigned {
		assert.Equal(t, CodeRuined, code)
	}
	requireValidSolution(t, p, ic.Solution)
}

func TestAdjustedStringRemoval_EmptySolution_NoOp(t *testing.T) {
	p := testProblem([]*Actor{testActor("v", 10, 1000)}, nil)
	ic := NewInsertionContext(p, NewRandom(0))

	NewAdjustedStringRemoval().Run(ic)

	assert.Empty(t, ic.Solution.Routes)
	assert.Empty(t, ic.Solution.Unassigned)
}

func TestAdjustedStringRemoval_StringLengthRespectsCap(t *testing.T) {
	// GIVEN one long route of ten jobs
	var jobs []Job
	for i := 0; i < 10; i++ {
		jobs = append(jobs, testSingle(string(rune('a'+i)), i%5+1, 1, TimeWindow{0, 10000}, 0))
	}
	p := testProblem([]*Actor{testActor("v", 100, 100000)}, jobs)
	ic := NewInsertionContext(p, NewRandom(3))
	(CheapestInsertion{}).Run(ic)
	require.Len(t, ic.Solution.Routes, 1)

	// WHEN a capped removal runs
	asr := &AdjustedStringRemoval{LsMax: 3, KsMax: 1}
	asr.Run(ic)

	// THEN at most three jobs are removed
	removed := len(ic.Solution.Unassigned)
	assert.GreaterOrEqual(t, removed, 1)
	assert.LessOrEqual(t, removed, 3)
	requireValidSolution(t, p, ic.Solution)
}

func TestCompositeRuin_ProbabilityGates(t *testing.T) {
	// GIVEN a composite with an impossible and a certain ruin
	_, ic := fiveRouteContext(t, 4)

	never := NewRandomRouteRemoval(5)
	composite := NewCompositeRuin(
		WeightedRuin{Ruin: never, Probability: 0},
		WeightedRuin{Ruin: NewRandomRouteRemoval(1), Probability: 1},
	)

	// WHEN it runs
	composite.Run(ic)

	// THEN only the certain ruin applied
	assert.Len(t, ic.Solution.Routes, 4)
}

func TestCompositeRuin_AccumulatesOnSameContext(t *testing.T) {
	_, ic := fiveRouteContext(t, 5)

	composite := NewCompositeRuin(
		WeightedRuin{Ruin: NewRandomRouteRemoval(1), Probability: 1},
		WeightedRuin{Ruin: NewRandomRouteRemoval(1), Probability: 1},
	)
	composite.Run(ic)

	// Two applications accumulate on the same context.
	assert.Len(t, ic.Solution.Routes, 3)
	assert.Len(t, ic.Solution.Unassigned, 2)
}
