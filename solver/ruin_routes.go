package solver

// RandomRouteRemoval ruins a solution by dropping whole routes: every
// job of a picked route becomes unassigned and the route's actor
// returns to the pool.
type RandomRouteRemoval struct {
	// MaxRoutes caps how many routes one application removes.
	MaxRoutes int
}

// NewRandomRouteRemoval creates the ruin removing up to maxRoutes
// routes per application.
func NewRandomRouteRemoval(maxRoutes int) *RandomRouteRemoval {
	if maxRoutes < 1 {
		maxRoutes = 1
	}
	return &RandomRouteRemoval{MaxRoutes: maxRoutes}
}

// Run removes between one and MaxRoutes routes, drawn uniformly.
func (r *RandomRouteRemoval) Run(ic *InsertionContext) {
	if len(ic.Solution.Routes) == 0 {
		return
	}
	limit := r.MaxRoutes
	if n := len(ic.Solution.Routes); n < limit {
		limit = n
	}
	count := ic.Random.Uniform(1, limit)
	for i := 0; i < count; i++ {
		idx := ic.Random.Uniform(0, len(ic.Solution.Routes)-1)
		route := ic.Solution.Routes[idx]
		unassignRuined(ic, route, route.Tour.OrderedJobs())
	}
}
