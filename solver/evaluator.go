package solver

import "math"

// ActivityPlacement is one activity of an insertion, positioned at a
// gap of the tour as it was before the insertion.
type ActivityPlacement struct {
	Activity *Activity
	Index    int
}

// InsertionResult is the outcome of evaluating one job: either the
// cheapest feasible insertion found anywhere, or the most telling
// failure code when no route and position can take the job.
type InsertionResult struct {
	Success    bool
	Job        Job
	Route      *Route
	NewRoute   bool
	Placements []ActivityPlacement
	Cost       float64
	Code       int
}

// EvaluateJob scores every (route, position) candidate for the job and
// returns the cheapest feasible insertion. Candidate routes are the
// solution's routes in order, then one fresh route per remaining actor
// type. Ties fall to the lowest route index, then the lowest position,
// which the strict less-than comparisons below guarantee given the
// stable iteration order.
//
// On failure the result carries the maximum failure code observed
// across routes, so ruin heuristics can group jobs that fail for the
// same hard reason.
func (ic *InsertionContext) EvaluateJob(job Job) InsertionResult {
	best := InsertionResult{Job: job, Cost: math.Inf(1)}
	pipeline := ic.Problem.Pipeline

	evaluate := func(rc *RouteContext, isNew bool) {
		if v := pipeline.EvaluateRoute(rc, job); v != nil {
			if v.Code > best.Code {
				best.Code = v.Code
			}
			return
		}
		base := pipeline.EstimateRoute(rc, job)
		placements, cost, code := ic.evaluateJobInRoute(rc, job)
		if placements == nil {
			if code > best.Code {
				best.Code = code
			}
			return
		}
		if cost+base < best.Cost {
			best.Success = true
			best.Route = rc.Route
			best.NewRoute = isNew
			best.Placements = placements
			best.Cost = cost + base
		}
	}

	for _, route := range ic.Solution.Routes {
		evaluate(ic.RouteContext(route), false)
	}
	if ic.Solution.Registry.Quota() > 0 {
		for _, actor := range ic.Solution.Registry.Next() {
			route := NewRoute(actor)
			rc := &RouteContext{Route: route, State: newRouteState()}
			pipeline.Accept(rc)
			evaluate(rc, true)
		}
	}
	if !best.Success {
		best.Cost = 0
	}
	return best
}

// Insert commits the insertion, registers a fresh route if one was
// opened and rebuilds the route's caches.
func (ic *InsertionContext) Insert(res InsertionResult) {
	if !res.Success {
		panic("solver: insert of a failed insertion result")
	}
	if res.NewRoute {
		ic.Solution.Registry.Use(res.Route.Actor)
		ic.Solution.Routes = append(ic.Solution.Routes, res.Route)
	}
	for i, pl := range res.Placements {
		res.Route.Tour.InsertAt(pl.Activity, pl.Index+i)
	}
	delete(ic.Solution.Unassigned, res.Job)
	ic.Accept(res.Route)
}

func (ic *InsertionContext) evaluateJobInRoute(rc *RouteContext, job Job) ([]ActivityPlacement, float64, int) {
	switch j := job.(type) {
	case *Single:
		pl, cost, code, ok := ic.evaluateSingle(rc, j, 1, nil, 0, nil)
		if !ok {
			return nil, 0, code
		}
		return []ActivityPlacement{pl}, cost, 0
	case *Multi:
		return ic.evaluateMulti(rc, j)
	default:
		panic("solver: unknown job kind")
	}
}

// evaluateSingle finds the cheapest feasible placement of the single at
// gaps [startGap, activityCount+1], resolving the place and time window
// variant per gap. The overlay arguments describe components of the
// same multi job inserted earlier during a compound evaluation: a
// synthetic predecessor pinned at startGap, the conservative schedule
// shift for original activities at later gaps, and the on-board demand
// those components contribute.
func (ic *InsertionContext) evaluateSingle(
	rc *RouteContext, single *Single, startGap int,
	overlayPrev *Activity, shift float64, offset Demand,
) (ActivityPlacement, float64, int, bool) {
	tour := rc.Route.Tour

	var best ActivityPlacement
	bestCost := math.Inf(1)
	code := 0
	for gap := startGap; gap <= tour.ActivityCount()+1; gap++ {
		prevOverlay := overlayPrev
		if gap != startGap {
			prevOverlay = nil
		}
		pl, cost, c, ok := ic.evaluateSingleAt(rc, single, gap, prevOverlay, shift, offset)
		if !ok {
			if c > code {
				code = c
			}
			continue
		}
		if cost < bestCost {
			bestCost = cost
			best = pl
		}
	}
	if math.IsInf(bestCost, 1) {
		return ActivityPlacement{}, 0, code, false
	}
	return best, bestCost, 0, true
}

// evaluateMulti enumerates ordered placement tuples for the components
// of the multi, pruning on the first hard failure of a partial tuple.
// Later components see earlier ones through a synthetic predecessor,
// a conservative schedule shift and a load offset; the conservatism
// can reject a borderline tuple but never admits an infeasible one.
func (ic *InsertionContext) evaluateMulti(rc *RouteContext, multi *Multi) ([]ActivityPlacement, float64, int) {
	transport := ic.Problem.Transport
	tour := rc.Route.Tour

	var best []ActivityPlacement
	bestCost := math.Inf(1)
	maxCode := 0

	var descend func(comp int, startGap int, overlayPrev *Activity, shift float64, offset Demand, acc []ActivityPlacement, accCost float64)
	descend = func(comp int, startGap int, overlayPrev *Activity, shift float64, offset Demand, acc []ActivityPlacement, accCost float64) {
		single := multi.Singles[comp]
		for gap := startGap; gap <= tour.ActivityCount()+1; gap++ {
			prevOverlay := overlayPrev
			if gap != startGap {
				prevOverlay = nil
			}
			pl, cost, code, ok := ic.evaluateSingleAt(rc, single, gap, prevOverlay, shift, offset)
			if !ok {
				if code > maxCode {
					maxCode = code
				}
				continue
			}
			tuple := append(append([]ActivityPlacement(nil), acc...), pl)
			total := accCost + cost
			if comp == len(multi.Singles)-1 {
				if total < bestCost {
					bestCost = total
					best = tuple
				}
				continue
			}
			nextShift := shift + arrivalDelay(transport, tour, pl, shift)
			descend(comp+1, gap, pl.Activity, nextShift, offset.Add(single.Demand), tuple, total)
		}
	}
	descend(0, 1, nil, 0, Demand{}, nil, 0)

	if best == nil {
		return nil, 0, maxCode
	}
	return best, bestCost, 0
}

// evaluateSingleAt scores the single at exactly one gap.
func (ic *InsertionContext) evaluateSingleAt(
	rc *RouteContext, single *Single, gap int,
	overlayPrev *Activity, shift float64, offset Demand,
) (ActivityPlacement, float64, int, bool) {
	pipeline := ic.Problem.Pipeline
	transport := ic.Problem.Transport
	tour := rc.Route.Tour

	prev := tour.Get(gap - 1)
	if overlayPrev != nil {
		prev = overlayPrev
	} else if shift > 0 {
		shifted := *prev
		shifted.Departure += shift
		prev = &shifted
	}
	next := tour.Get(gap)

	var best ActivityPlacement
	bestCost := math.Inf(1)
	code := 0
	for _, place := range single.Places {
		for _, window := range place.Times {
			target := NewActivity(single, place, window)
			ac := &ActivityContext{Index: gap, Prev: prev, Target: target, Next: next, LoadOffset: offset}
			if v := pipeline.EvaluateActivity(rc, ac); v != nil {
				if v.Code > code {
					code = v.Code
				}
				continue
			}
			cost := nominalCost(transport, rc.Route.Actor, ac) + pipeline.EstimateActivity(rc, ac)
			if cost < bestCost {
				bestCost = cost
				best = ActivityPlacement{Activity: target, Index: gap}
			}
		}
	}
	if math.IsInf(bestCost, 1) {
		return ActivityPlacement{}, 0, code, false
	}
	// Commit the schedule estimate on the winning candidate so a later
	// component can chain from it.
	arr := prev.Departure + transport.Duration(prev.Location(), best.Activity.Location())
	best.Activity.Arrival = arr
	best.Activity.Departure = math.Max(arr, best.Activity.Time.Start) + best.Activity.Place.Duration
	return best, bestCost, 0, true
}

// arrivalDelay bounds how much later the original activity at the
// placement gap is reached once the placed activity precedes it.
func arrivalDelay(transport Transport, tour *Tour, pl ActivityPlacement, priorShift float64) float64 {
	next := tour.Get(pl.Index)
	if next == nil {
		return 0
	}
	newArrival := pl.Activity.Departure + transport.Duration(pl.Activity.Location(), next.Location())
	delay := newArrival - (next.Arrival + priorShift)
	return math.Max(0, delay)
}

// nominalCost is the transport and service cost delta of splicing the
// target between prev and next.
func nominalCost(t Transport, actor *Actor, ac *ActivityContext) float64 {
	target := ac.Target
	cost := actor.Costs.PerServiceTime * target.Place.Duration
	if ac.Next == nil {
		return cost + legCost(t, actor, ac.Prev.Location(), target.Location())
	}
	return cost +
		legCost(t, actor, ac.Prev.Location(), target.Location()) +
		legCost(t, actor, target.Location(), ac.Next.Location()) -
		legCost(t, actor, ac.Prev.Location(), ac.Next.Location())
}
