package solver

import "math"

// WaitingCostConstraint prices the idle time a vehicle spends in front
// of a closed time window at the candidate activity.
type WaitingCostConstraint struct {
	transport Transport
}

// NewWaitingCostConstraint creates the waiting cost module.
func NewWaitingCostConstraint(transport Transport) WaitingCostConstraint {
	return WaitingCostConstraint{transport: transport}
}

// EstimateActivity returns the waiting cost incurred at the target.
func (c WaitingCostConstraint) EstimateActivity(rc *RouteContext, ac *ActivityContext) float64 {
	arrival := ac.Prev.Departure + c.transport.Duration(ac.Prev.Location(), ac.Target.Location())
	waiting := math.Max(0, ac.Target.Time.Start-arrival)
	return waiting * rc.Route.Actor.Costs.PerWaitingTime
}

// FixedCostConstraint prices opening a route: an empty tour receiving
// its first job charges the actor's fixed cost.
type FixedCostConstraint struct{}

// EstimateRoute returns the fixed cost for a not-yet-used route.
func (FixedCostConstraint) EstimateRoute(rc *RouteContext, job Job) float64 {
	if rc.Route.Tour.HasJobs() {
		return 0
	}
	return rc.Route.Actor.Costs.Fixed
}
