package solver

import "math"

// TimingConstraint enforces time windows along the tour. It owns the
// schedule part of the route state: committed arrivals and departures
// on the forward sweep, latest feasible arrivals on the backward sweep.
type TimingConstraint struct {
	transport Transport
}

// NewTimingConstraint creates the timing module.
func NewTimingConstraint(transport Transport) *TimingConstraint {
	return &TimingConstraint{transport: transport}
}

// Accept recommits the schedule of the route.
func (c *TimingConstraint) Accept(rc *RouteContext) {
	acts := rc.Route.Tour.Activities()
	if len(acts) == 0 {
		return
	}
	actor := rc.Route.Actor
	rc.State.resize(len(acts))

	// Forward: earliest arrivals become the committed schedule.
	acts[0].Arrival = actor.Shift.Start
	acts[0].Departure = actor.Shift.Start
	for i := 1; i < len(acts); i++ {
		prev, a := acts[i-1], acts[i]
		a.Arrival = prev.Departure + c.transport.Duration(prev.Location(), a.Location())
		a.Departure = math.Max(a.Arrival, a.Time.Start) + a.Place.Duration
	}

	// Backward: latest arrival that keeps the suffix and the shift end
	// feasible.
	la := rc.State.LatestArrival
	last := len(acts) - 1
	la[last] = latestArrivalAt(acts[last], actor.Shift.End)
	for i := last - 1; i >= 0; i-- {
		departBy := la[i+1] - c.transport.Duration(acts[i].Location(), acts[i+1].Location())
		la[i] = latestArrivalAt(acts[i], departBy)
	}
}

func latestArrivalAt(a *Activity, departBy float64) float64 {
	latest := departBy - a.Place.Duration
	if a.Time.Start > latest {
		return math.Inf(-1)
	}
	return math.Min(a.Time.End, latest)
}

// EvaluateActivity checks one insertion gap against the committed
// schedule of the prefix and the latest-arrival cache of the suffix.
func (c *TimingConstraint) EvaluateActivity(rc *RouteContext, ac *ActivityContext) *Violation {
	target := ac.Target
	arrival := ac.Prev.Departure + c.transport.Duration(ac.Prev.Location(), target.Location())
	if arrival > target.Time.End {
		return &Violation{Code: CodeTimeWindow}
	}
	departure := math.Max(arrival, target.Time.Start) + target.Place.Duration
	if ac.Next == nil {
		if departure > rc.Route.Actor.Shift.End {
			return &Violation{Code: CodeTimeWindow}
		}
		return nil
	}
	arrivalNext := departure + c.transport.Duration(target.Location(), ac.Next.Location())
	if arrivalNext > rc.State.LatestArrival[ac.Index] {
		return &Violation{Code: CodeTimeWindow}
	}
	return nil
}

// ShiftConstraint prunes routes whose actor cannot reach a job inside
// its availability window at all, before any per-position work runs.
type ShiftConstraint struct {
	transport Transport
}

// NewShiftConstraint creates the shift module.
func NewShiftConstraint(transport Transport) *ShiftConstraint {
	return &ShiftConstraint{transport: transport}
}

// EvaluateRoute rejects the route when some single of the job has no
// place variant reachable within the actor's shift.
func (c *ShiftConstraint) EvaluateRoute(rc *RouteContext, job Job) *Violation {
	actor := rc.Route.Actor
	for _, single := range jobSingles(job) {
		if !c.reachable(actor, single) {
			return &Violation{Code: CodeShift}
		}
	}
	return nil
}

func (c *ShiftConstraint) reachable(actor *Actor, single *Single) bool {
	for _, place := range single.Places {
		earliest := actor.Shift.Start + c.transport.Duration(actor.Start, place.Location)
		for _, tw := range place.Times {
			if earliest <= tw.End && tw.Start <= actor.Shift.End {
				return true
			}
		}
	}
	return false
}

func jobSingles(job Job) []*Single {
	switch j := job.(type) {
	case *Single:
		return []*Single{j}
	case *Multi:
		return j.Singles
	default:
		panic("solver: unknown job kind")
	}
}
