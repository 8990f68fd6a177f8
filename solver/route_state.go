package solver

// RouteState caches per-activity quantities of one route so candidate
// insertions check feasibility in O(1). Indexed positionally, parallel
// to the tour's activity sequence.
//
// The cache is invalid the moment any activity of the route is added,
// removed or reordered; Pipeline.Accept rebuilds it and nothing may
// evaluate against a stale cache.
type RouteState struct {
	// Load is the cumulative on-board demand after each activity.
	Load []Demand
	// MaxFutureLoad[i] is the componentwise maximum of Load[j] for
	// j >= i. Checking a candidate demand against it bounds every
	// suffix position at once.
	MaxFutureLoad []Demand
	// LatestArrival[i] is the latest arrival at activity i that keeps
	// the rest of the tour and the shift end feasible.
	LatestArrival []float64
}

func newRouteState() *RouteState {
	return &RouteState{}
}

func (s *RouteState) resize(n int) {
	s.Load = resizeDemands(s.Load, n)
	s.MaxFutureLoad = resizeDemands(s.MaxFutureLoad, n)
	if cap(s.LatestArrival) < n {
		s.LatestArrival = make([]float64, n)
	}
	s.LatestArrival = s.LatestArrival[:n]
}

func (s *RouteState) deepCopy() *RouteState {
	c := newRouteState()
	c.Load = append(c.Load, s.Load...)
	c.MaxFutureLoad = append(c.MaxFutureLoad, s.MaxFutureLoad...)
	c.LatestArrival = append(c.LatestArrival, s.LatestArrival...)
	return c
}

func resizeDemands(d []Demand, n int) []Demand {
	if cap(d) < n {
		return make([]Demand, n)
	}
	return d[:n]
}
