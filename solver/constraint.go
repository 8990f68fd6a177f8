package solver

// RouteContext pairs a route with its cached state for constraint
// evaluation.
type RouteContext struct {
	Route *Route
	State *RouteState
}

// ActivityContext is one candidate insertion gap: Target goes between
// Prev and Next. Next is nil when inserting at the end of an open tour.
// Index is the gap position in the tour before insertion. LoadOffset
// carries demand already committed by earlier components of the same
// multi job that is still on board at this gap.
type ActivityContext struct {
	Index      int
	Prev       *Activity
	Target     *Activity
	Next       *Activity
	LoadOffset Demand
}

// Violation identifies the constraint that rejected a candidate.
type Violation struct {
	Code int
}

// HardRouteConstraint prunes whole routes for a job before any
// per-position work.
type HardRouteConstraint interface {
	EvaluateRoute(rc *RouteContext, job Job) *Violation
}

// HardActivityConstraint accepts or rejects one insertion gap.
type HardActivityConstraint interface {
	EvaluateActivity(rc *RouteContext, ac *ActivityContext) *Violation
}

// SoftRouteConstraint prices route-level consequences of serving the
// job, e.g. opening a new route.
type SoftRouteConstraint interface {
	EstimateRoute(rc *RouteContext, job Job) float64
}

// SoftActivityConstraint prices gap-level consequences, e.g. waiting.
type SoftActivityConstraint interface {
	EstimateActivity(rc *RouteContext, ac *ActivityContext) float64
}

// StateUpdater recomputes its slice of the route state after a
// mutation.
type StateUpdater interface {
	Accept(rc *RouteContext)
}

// Pipeline is the ordered set of constraint evaluators of a problem.
// Hard constraints short-circuit on first failure and the failure code
// propagates unchanged; soft constraints all run and their results sum.
type Pipeline struct {
	hardRoute    []HardRouteConstraint
	hardActivity []HardActivityConstraint
	softRoute    []SoftRouteConstraint
	softActivity []SoftActivityConstraint
	updaters     []StateUpdater
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Add registers a constraint module under every capability it
// implements, in registration order.
func (p *Pipeline) Add(module any) *Pipeline {
	known := false
	if c, ok := module.(HardRouteConstraint); ok {
		p.hardRoute = append(p.hardRoute, c)
		known = true
	}
	if c, ok := module.(HardActivityConstraint); ok {
		p.hardActivity = append(p.hardActivity, c)
		known = true
	}
	if c, ok := module.(SoftRouteConstraint); ok {
		p.softRoute = append(p.softRoute, c)
		known = true
	}
	if c, ok := module.(SoftActivityConstraint); ok {
		p.softActivity = append(p.softActivity, c)
		known = true
	}
	if c, ok := module.(StateUpdater); ok {
		p.updaters = append(p.updaters, c)
		known = true
	}
	if !known {
		panic("solver: module implements no constraint capability")
	}
	return p
}

// EvaluateRoute runs the hard route constraints.
func (p *Pipeline) EvaluateRoute(rc *RouteContext, job Job) *Violation {
	for _, c := range p.hardRoute {
		if v := c.EvaluateRoute(rc, job); v != nil {
			return v
		}
	}
	return nil
}

// EvaluateActivity runs the hard activity constraints.
func (p *Pipeline) EvaluateActivity(rc *RouteContext, ac *ActivityContext) *Violation {
	for _, c := range p.hardActivity {
		if v := c.EvaluateActivity(rc, ac); v != nil {
			return v
		}
	}
	return nil
}

// EstimateRoute sums the soft route costs.
func (p *Pipeline) EstimateRoute(rc *RouteContext, job Job) float64 {
	var sum float64
	for _, c := range p.softRoute {
		sum += c.EstimateRoute(rc, job)
	}
	return sum
}

// EstimateActivity sums the soft activity costs.
func (p *Pipeline) EstimateActivity(rc *RouteContext, ac *ActivityContext) float64 {
	var sum float64
	for _, c := range p.softActivity {
		sum += c.EstimateActivity(rc, ac)
	}
	return sum
}

// Accept recomputes the route state after any mutation of the route.
// The engine must call it before evaluating against the route again.
func (p *Pipeline) Accept(rc *RouteContext) {
	for _, u := range p.updaters {
		u.Accept(rc)
	}
}

// NewDefaultPipeline wires the standard constraint set: timing and
// shift feasibility, vehicle capacity, waiting cost and route fixed
// cost.
func NewDefaultPipeline(transport Transport) *Pipeline {
	return NewPipeline().
		Add(NewTimingConstraint(transport)).
		Add(NewCapacityConstraint()).
		Add(NewShiftConstraint(transport)).
		Add(NewWaitingCostConstraint(transport)).
		Add(FixedCostConstraint{})
}
