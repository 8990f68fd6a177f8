package solver

// Objective scores a complete solution. Lower is better; the search
// compares scores with strict less-than and no epsilon, which the
// determinism guarantees depend on.
type Objective interface {
	Estimate(p *Problem, s *Solution) float64
}

// TotalCost is the standard objective: transport, service, waiting and
// fixed costs of every route plus a flat penalty per unassigned job.
// The penalty dominates any realistic routing cost so the search always
// prefers serving a job over abandoning it.
type TotalCost struct {
	UnassignedPenalty float64
}

// DefaultUnassignedPenalty keeps one unassigned job more expensive than
// any tour rearrangement on the benchmark instances.
const DefaultUnassignedPenalty = 1e6

// NewTotalCost creates the objective with the given penalty, falling
// back to the default when zero.
func NewTotalCost(penalty float64) TotalCost {
	if penalty == 0 {
		penalty = DefaultUnassignedPenalty
	}
	return TotalCost{UnassignedPenalty: penalty}
}

// Estimate computes the solution cost.
func (o TotalCost) Estimate(p *Problem, s *Solution) float64 {
	var total float64
	for _, route := range s.Routes {
		total += RouteCost(p.Transport, route)
	}
	return total + o.UnassignedPenalty*float64(len(s.Unassigned))
}

// RouteCost computes the standalone cost of one route from its
// committed schedule: fixed cost, per-leg transport, service and
// waiting.
func RouteCost(t Transport, route *Route) float64 {
	if !route.Tour.HasJobs() {
		return 0
	}
	costs := route.Actor.Costs
	total := costs.Fixed
	for _, leg := range route.Tour.Legs() {
		if len(leg) < 2 {
			continue
		}
		total += legCost(t, route.Actor, leg[0].Location(), leg[1].Location())
	}
	for _, a := range route.Tour.Activities() {
		if a.IsSentinel() {
			continue
		}
		total += costs.PerServiceTime * a.Place.Duration
		if wait := a.Time.Start - a.Arrival; wait > 0 {
			total += costs.PerWaitingTime * wait
		}
	}
	return total
}
