package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(p *Problem, seed int64) *InsertionContext {
	return NewInsertionContext(p, NewRandom(seed))
}

func TestEvaluateJob_SingleVehicleSingleJob(t *testing.T) {
	// GIVEN one vehicle and one feasible job
	job := testSingle("1", 1, 3, TimeWindow{0, 500}, 10)
	p := testProblem([]*Actor{testActor("v1", 10, 1000)}, []Job{job})
	ic := newTestContext(p, 0)

	// WHEN the job is evaluated and inserted
	res := ic.EvaluateJob(job)
	require.True(t, res.Success)
	assert.True(t, res.NewRoute)
	assert.InDelta(t, 20, res.Cost, 1e-9, "out-and-back transport cost")
	ic.Insert(res)

	// THEN the solution is one route of {start, job, end}
	require.Len(t, ic.Solution.Routes, 1)
	tour := ic.Solution.Routes[0].Tour
	assert.Equal(t, 1, tour.ActivityCount())
	assert.Equal(t, 3, tour.Total())
	assert.Empty(t, ic.Solution.Unassigned)
	requireValidSolution(t, p, ic.Solution)
}

func TestEvaluateJob_CombinedDemandExceedsCapacity(t *testing.T) {
	// GIVEN one vehicle of capacity 10 and two jobs of demand 6 each
	a := testSingle("1", 1, 6, TimeWindow{0, 500}, 0)
	b := testSingle("2", 2, 6, TimeWindow{0, 500}, 0)
	p := testProblem([]*Actor{testActor("v1", 10, 1000)}, []Job{a, b})
	ic := newTestContext(p, 0)

	// WHEN both are recreated
	(CheapestInsertion{}).Run(ic)

	// THEN one is served and the other is unassigned with the capacity
	// failure code
	require.Len(t, ic.Solution.Routes, 1)
	require.Len(t, ic.Solution.Unassigned, 1)
	for _, code := range ic.Solution.Unassigned {
		assert.Equal(t, CodeCapacity, code)
	}
	requireValidSolution(t, p, ic.Solution)
}

func TestEvaluateJob_MultiWithDeadDeliveryWindow(t *testing.T) {
	// GIVEN a pickup-delivery pair whose delivery window closes before
	// the earliest feasible pickup arrival allows reaching it
	pickup := testSingle("p", 1, 3, TimeWindow{100, 200}, 0)
	delivery := testSingle("d", 2, -3, TimeWindow{0, 50}, 0)
	pair := NewMulti("pd", pickup, delivery)
	p := testProblem([]*Actor{testActor("v1", 10, 1000)}, []Job{pair})
	ic := newTestContext(p, 0)

	(CheapestInsertion{}).Run(ic)

	// THEN the pair is unassigned with the time window failure code
	assert.Empty(t, ic.Solution.Routes)
	require.Len(t, ic.Solution.Unassigned, 1)
	assert.Equal(t, CodeTimeWindow, ic.Solution.Unassigned[Job(pair)])
}

func TestEvaluateJob_MultiPair_InsertsInDeclaredOrder(t *testing.T) {
	pickup := testSingle("p", 1, 3, TimeWindow{0, 500}, 0)
	delivery := testSingle("d", 2, -3, TimeWindow{0, 500}, 0)
	pair := NewMulti("pd", pickup, delivery)
	p := testProblem([]*Actor{testActor("v1", 10, 1000)}, []Job{pair})
	ic := newTestContext(p, 0)

	res := ic.EvaluateJob(pair)
	require.True(t, res.Success)
	require.Len(t, res.Placements, 2)
	ic.Insert(res)

	tour := ic.Solution.Routes[0].Tour
	require.Equal(t, 2, tour.ActivityCount())
	assert.Same(t, pickup, tour.Get(1).Single())
	assert.Same(t, delivery, tour.Get(2).Single())
	requireValidSolution(t, p, ic.Solution)
}

func TestEvaluateJob_CapacityForcesSplitRoutes(t *testing.T) {
	// GIVEN two vehicles and two jobs whose combined demand exceeds one
	// vehicle
	a := testSingle("1", 1, 6, TimeWindow{0, 500}, 0)
	b := testSingle("2", 5, 6, TimeWindow{0, 500}, 0)
	p := testProblem([]*Actor{testActor("v1", 10, 1000), testActor("v2", 10, 1000)}, []Job{a, b})
	ic := newTestContext(p, 0)

	(CheapestInsertion{}).Run(ic)

	// THEN cheapest insertion splits them into two single-job routes
	require.Len(t, ic.Solution.Routes, 2)
	for _, route := range ic.Solution.Routes {
		assert.Equal(t, 1, route.Tour.JobCount())
	}
	assert.Empty(t, ic.Solution.Unassigned)
	requireValidSolution(t, p, ic.Solution)
}

func TestEvaluateJob_TieBreaksToLowestRouteAndPosition(t *testing.T) {
	// GIVEN two identical vehicles, one route already serving a job at
	// location 1 and two more jobs at the same location
	a := testSingle("1", 1, 1, TimeWindow{0, 500}, 0)
	b := testSingle("2", 1, 1, TimeWindow{0, 500}, 0)
	c := testSingle("3", 1, 1, TimeWindow{0, 500}, 0)
	p := testProblem([]*Actor{testActor("v1", 2, 1000), testActor("v2", 2, 1000)}, []Job{a, b, c})
	ic := newTestContext(p, 0)

	ic.Insert(ic.EvaluateJob(a))
	resB := ic.EvaluateJob(b)
	require.True(t, resB.Success)
	// Inserting next to the existing activity at the same location adds
	// no transport cost anywhere; the first gap of the first route wins.
	assert.Same(t, ic.Solution.Routes[0], resB.Route)
	assert.Equal(t, 1, resB.Placements[0].Index)
	ic.Insert(resB)

	// The first route is now full; the next job opens the second route
	// rather than violating capacity.
	resC := ic.EvaluateJob(c)
	require.True(t, resC.Success)
	assert.True(t, resC.NewRoute)
}

func TestEvaluateJob_ResolvesCheapestPlaceVariant(t *testing.T) {
	// GIVEN a job serviceable at a far and a near location
	job := NewSingle("flex", Demand{1},
		Place{Location: 6, Duration: 0, Times: []TimeWindow{{0, 500}}},
		Place{Location: 1, Duration: 0, Times: []TimeWindow{{0, 500}}},
	)
	p := testProblem([]*Actor{testActor("v1", 10, 1000)}, []Job{job})
	ic := newTestContext(p, 0)

	res := ic.EvaluateJob(job)
	require.True(t, res.Success)
	assert.Equal(t, Location(1), res.Placements[0].Activity.Location(),
		"the cheaper place variant must win")
}

func TestEvaluateJob_NoActorQuota_NoNewRoutes(t *testing.T) {
	a := testSingle("1", 1, 6, TimeWindow{0, 500}, 0)
	b := testSingle("2", 2, 6, TimeWindow{0, 500}, 0)
	p := testProblem([]*Actor{testActor("v1", 10, 1000)}, []Job{a, b})
	ic := newTestContext(p, 0)

	ic.Insert(ic.EvaluateJob(a))
	res := ic.EvaluateJob(b)
	assert.False(t, res.Success, "no capacity left and no actor quota")
	assert.Equal(t, CodeCapacity, res.Code)
}

func TestInsert_FailedResult_Panics(t *testing.T) {
	job := testSingle("1", 1, 1, TimeWindow{0, 500}, 0)
	p := testProblem([]*Actor{testActor("v1", 10, 1000)}, []Job{job})
	ic := newTestContext(p, 0)
	assert.Panics(t, func() { ic.Insert(InsertionResult{}) })
}
