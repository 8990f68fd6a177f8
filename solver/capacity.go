package solver

// CapacityConstraint keeps the cumulative on-board load of every route
// within the vehicle capacity at every position. It owns the load part
// of the route state.
type CapacityConstraint struct{}

// NewCapacityConstraint creates the capacity module.
func NewCapacityConstraint() *CapacityConstraint {
	return &CapacityConstraint{}
}

// Accept recomputes the load sweeps of the route.
func (CapacityConstraint) Accept(rc *RouteContext) {
	acts := rc.Route.Tour.Activities()
	if len(acts) == 0 {
		return
	}
	rc.State.resize(len(acts))
	load := rc.State.Load
	running := Demand{}
	for i, a := range acts {
		if s := a.Single(); s != nil {
			running = running.Add(s.Demand)
		}
		load[i] = running
	}
	maxFuture := rc.State.MaxFutureLoad
	peak := Demand{}
	for i := len(acts) - 1; i >= 0; i-- {
		peak = peak.Max(load[i])
		maxFuture[i] = peak
	}
}

// EvaluateRoute rejects the route when the job's peak demand exceeds
// the vehicle capacity outright.
func (CapacityConstraint) EvaluateRoute(rc *RouteContext, job Job) *Violation {
	if jobDemand(job).Exceeds(rc.Route.Actor.Capacity) {
		return &Violation{Code: CodeCapacity}
	}
	return nil
}

// EvaluateActivity checks the candidate demand against the load at the
// gap and against the maximum load of the whole suffix. The suffix
// check uses the cached upper envelope, which is conservative for jobs
// that unload later in the tour.
func (CapacityConstraint) EvaluateActivity(rc *RouteContext, ac *ActivityContext) *Violation {
	single := ac.Target.Single()
	if single == nil {
		panic("solver: capacity check on sentinel activity")
	}
	capacity := rc.Route.Actor.Capacity
	delta := ac.LoadOffset.Add(single.Demand)

	loadHere := rc.State.Load[ac.Index-1].Add(delta)
	if !loadHere.Fits(capacity) {
		return &Violation{Code: CodeCapacity}
	}
	if ac.Index < len(rc.State.MaxFutureLoad) {
		if rc.State.MaxFutureLoad[ac.Index].Add(delta).Exceeds(capacity) {
			return &Violation{Code: CodeCapacity}
		}
	}
	return nil
}
