package solver

import "sort"

// InsertionContext is an in-flight solution enriched with per-route
// caches and the random source driving the search. All mutations of a
// solution during ruin and recreate go through it so the caches stay
// in sync with the routes.
type InsertionContext struct {
	Problem  *Problem
	Solution *Solution
	Random   *Random

	states map[*Route]*RouteState
}

// NewInsertionContext creates a context over an empty solution with
// every job of the problem unassigned.
func NewInsertionContext(problem *Problem, random *Random) *InsertionContext {
	return &InsertionContext{
		Problem:  problem,
		Solution: NewSolution(problem),
		Random:   random,
		states:   make(map[*Route]*RouteState),
	}
}

// Clone deep-copies the solution and its route caches. The random
// source is a shared handle, not a fork: the clone continues the same
// draw sequence, which keeps the search from replaying identical
// iterations after a rejected candidate.
func (ic *InsertionContext) Clone() *InsertionContext {
	solution, mapping := ic.Solution.deepCopy()
	states := make(map[*Route]*RouteState, len(ic.states))
	for route, state := range ic.states {
		states[mapping[route]] = state.deepCopy()
	}
	return &InsertionContext{
		Problem:  ic.Problem,
		Solution: solution,
		Random:   ic.Random,
		states:   states,
	}
}

// RouteContext returns the route with its cached state.
func (ic *InsertionContext) RouteContext(route *Route) *RouteContext {
	state, ok := ic.states[route]
	if !ok {
		panic("solver: route has no accepted state")
	}
	return &RouteContext{Route: route, State: state}
}

// Accept rebuilds the caches of the route after a mutation.
func (ic *InsertionContext) Accept(route *Route) {
	state, ok := ic.states[route]
	if !ok {
		state = newRouteState()
		ic.states[route] = state
	}
	ic.Problem.Pipeline.Accept(&RouteContext{Route: route, State: state})
}

// DropRoute removes the route from the solution, frees its actor and
// discards its cache. The route's jobs must already be unassigned.
func (ic *InsertionContext) DropRoute(route *Route) {
	for i, r := range ic.Solution.Routes {
		if r == route {
			ic.Solution.RemoveRoute(i)
			delete(ic.states, route)
			return
		}
	}
	panic("solver: dropping a route that is not part of the solution")
}

// Estimate scores the context's solution with the problem objective.
func (ic *InsertionContext) Estimate() float64 {
	return ic.Problem.Objective.Estimate(ic.Problem, ic.Solution)
}

// UnassignedOrdered returns the unassigned jobs in stable problem
// order. Map iteration must never decide what the search sees first.
func (ic *InsertionContext) UnassignedOrdered() []Job {
	jobs := make([]Job, 0, len(ic.Solution.Unassigned))
	for job := range ic.Solution.Unassigned {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return ic.Problem.JobIndex(jobs[i]) < ic.Problem.JobIndex(jobs[j])
	})
	return jobs
}

// AssignedOrdered returns all assigned jobs in route order, then tour
// order.
func (ic *InsertionContext) AssignedOrdered() []Job {
	var jobs []Job
	for _, route := range ic.Solution.Routes {
		jobs = append(jobs, route.Tour.OrderedJobs()...)
	}
	return jobs
}
