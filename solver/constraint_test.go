package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHard records evaluation order and returns a fixed verdict.
type recordingHard struct {
	name    string
	verdict *Violation
	calls   *[]string
}

func (c recordingHard) EvaluateRoute(rc *RouteContext, job Job) *Violation {
	*c.calls = append(*c.calls, c.name)
	return c.verdict
}

type flatSoft struct {
	cost float64
}

func (c flatSoft) EstimateRoute(rc *RouteContext, job Job) float64 { return c.cost }

func TestPipeline_HardShortCircuits_CodePropagatesUnchanged(t *testing.T) {
	var calls []string
	pipeline := NewPipeline().
		Add(recordingHard{name: "first", verdict: nil, calls: &calls}).
		Add(recordingHard{name: "second", verdict: &Violation{Code: 7}, calls: &calls}).
		Add(recordingHard{name: "third", verdict: nil, calls: &calls})

	rc := &RouteContext{Route: NewRoute(testActor("a", 5, 100)), State: newRouteState()}
	job := testSingle("j", 1, 1, TimeWindow{0, 100}, 0)

	v := pipeline.EvaluateRoute(rc, job)
	require.NotNil(t, v)
	assert.Equal(t, 7, v.Code, "failure code must propagate unchanged")
	assert.Equal(t, []string{"first", "second"}, calls, "evaluation stops at the first failure")
}

func TestPipeline_SoftCostsSum(t *testing.T) {
	pipeline := NewPipeline().
		Add(flatSoft{cost: 1.5}).
		Add(flatSoft{cost: 2.25})

	rc := &RouteContext{Route: NewRoute(testActor("a", 5, 100)), State: newRouteState()}
	job := testSingle("j", 1, 1, TimeWindow{0, 100}, 0)

	assert.InDelta(t, 3.75, pipeline.EstimateRoute(rc, job), 1e-9)
}

func TestPipeline_Add_RejectsUnknownModule(t *testing.T) {
	assert.Panics(t, func() { NewPipeline().Add(struct{}{}) })
}

func TestCapacityConstraint_RouteLevel(t *testing.T) {
	rc := &RouteContext{Route: NewRoute(testActor("a", 5, 100)), State: newRouteState()}

	ok := testSingle("fits", 1, 5, TimeWindow{0, 100}, 0)
	assert.Nil(t, CapacityConstraint{}.EvaluateRoute(rc, ok))

	over := testSingle("over", 1, 6, TimeWindow{0, 100}, 0)
	v := CapacityConstraint{}.EvaluateRoute(rc, over)
	require.NotNil(t, v)
	assert.Equal(t, CodeCapacity, v.Code)
}

func TestShiftConstraint_UnreachableJob(t *testing.T) {
	transport := NewEuclideanTransport(testPoints)
	c := NewShiftConstraint(transport)
	// Shift closes at 50; the outlier at (100, 100) is ~141 away.
	rc := &RouteContext{Route: NewRoute(testActor("a", 5, 50)), State: newRouteState()}

	far := testSingle("far", 6, 1, TimeWindow{0, 60}, 0)
	v := c.EvaluateRoute(rc, far)
	require.NotNil(t, v)
	assert.Equal(t, CodeShift, v.Code)

	near := testSingle("near", 1, 1, TimeWindow{0, 60}, 0)
	assert.Nil(t, c.EvaluateRoute(rc, near))
}

func TestTimingConstraint_AcceptCommitsSchedule(t *testing.T) {
	transport := NewEuclideanTransport(testPoints)
	timing := NewTimingConstraint(transport)

	// GIVEN a route serving location 1 (distance 10) with a window
	// opening at 30
	route := NewRoute(testActor("a", 5, 1000))
	s := testSingle("j", 1, 1, TimeWindow{30, 50}, 5)
	route.Tour.InsertLast(NewActivity(s, s.Places[0], s.Places[0].Times[0]))

	// WHEN the state is accepted
	rc := &RouteContext{Route: route, State: newRouteState()}
	timing.Accept(rc)

	// THEN arrival is the raw earliest arrival and departure waits for
	// the window
	act := route.Tour.Get(1)
	assert.InDelta(t, 10, act.Arrival, 1e-9)
	assert.InDelta(t, 35, act.Departure, 1e-9)
	end := route.Tour.Get(2)
	assert.InDelta(t, 45, end.Arrival, 1e-9)

	// AND the latest arrival at the job keeps the shift end reachable
	assert.InDelta(t, 50, rc.State.LatestArrival[1], 1e-9)
}
