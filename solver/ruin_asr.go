package solver

import "math"

// AdjustedStringRemoval ruins a solution by removing strings of
// adjacent activities around a randomly chosen seed job and, for
// nearby routes, around the activity closest to the seed. Removing
// geographically related strings gives the following recreate room to
// rearrange a whole neighborhood instead of single jobs.
type AdjustedStringRemoval struct {
	// LsMax caps the cardinality of any removed string.
	LsMax int
	// KsMax caps the number of removed strings.
	KsMax int
}

// NewAdjustedStringRemoval creates the ruin with its default caps.
func NewAdjustedStringRemoval() *AdjustedStringRemoval {
	return &AdjustedStringRemoval{LsMax: 10, KsMax: 5}
}

// Run removes up to ks strings from the solution.
func (r *AdjustedStringRemoval) Run(ic *InsertionContext) {
	routes := ic.Solution.Routes
	if len(routes) == 0 {
		return
	}
	total := 0
	for _, route := range routes {
		total += route.Tour.ActivityCount()
	}
	avgLen := float64(total) / float64(len(routes))
	lsMax := math.Min(float64(r.LsMax), avgLen)
	ksMax := int(math.Floor(4*float64(r.KsMax)/(1+lsMax)-1)) + 1
	if ksMax < 1 {
		ksMax = 1
	}
	if ksMax > r.KsMax {
		ksMax = r.KsMax
	}
	ks := ic.Random.Uniform(1, ksMax)
	stringCap := int(lsMax)
	if stringCap < 1 {
		stringCap = 1
	}

	assigned := ic.AssignedOrdered()
	if len(assigned) == 0 {
		return
	}
	seed := assigned[ic.Random.Uniform(0, len(assigned)-1)]
	seedRoute, _ := ic.Solution.RouteOf(seed)
	seedIdx := seedRoute.Tour.Index(seed)
	seedLoc := seedRoute.Tour.Get(seedIdx).Location()

	affected := map[*Route]struct{}{seedRoute: {}}
	r.removeString(ic, seedRoute, seedIdx, stringCap, false)

	for k := 1; k < ks; k++ {
		route, actIdx := nearestRoute(ic, seedLoc, affected)
		if route == nil {
			return
		}
		affected[route] = struct{}{}
		r.removeString(ic, route, actIdx, stringCap, ic.Random.IsHeads())
	}
}

// nearestRoute picks the unaffected route closest to the seed location,
// by the minimum transport distance to any of its job activities. Ties
// fall to the lowest route index. Returns the route and the index of
// its nearest activity.
func nearestRoute(ic *InsertionContext, seedLoc Location, affected map[*Route]struct{}) (*Route, int) {
	transport := ic.Problem.Transport
	var bestRoute *Route
	bestIdx := -1
	bestDist := math.Inf(1)
	for _, route := range ic.Solution.Routes {
		if _, done := affected[route]; done {
			continue
		}
		for i, a := range route.Tour.Activities() {
			if a.IsSentinel() {
				continue
			}
			if d := transport.Distance(seedLoc, a.Location()); d < bestDist {
				bestDist = d
				bestRoute = route
				bestIdx = i
			}
		}
	}
	return bestRoute, bestIdx
}

// removeString removes a contiguous string of activities containing
// actIdx. In the split variant a preserved substring survives inside a
// wider window; the drawn split keeps the gap strictly interior, so a
// plain removal is used whenever the string is too short to split.
func (r *AdjustedStringRemoval) removeString(ic *InsertionContext, route *Route, actIdx, stringCap int, split bool) {
	count := route.Tour.ActivityCount()
	if count == 0 {
		return
	}
	limit := stringCap
	if count < limit {
		limit = count
	}
	length := ic.Random.Uniform(1, limit)

	if split && length >= 2 && count > length {
		preserved := ic.Random.Uniform(1, count-length)
		window := length + preserved
		start := windowStart(ic.Random, actIdx, window, count)
		cut := ic.Random.Uniform(1, length-1)
		jobs := jobsIn(route.Tour, start, start+cut)
		jobs = append(jobs, jobsIn(route.Tour, start+cut+preserved, start+window)...)
		unassignRuined(ic, route, dedupeJobs(jobs))
		return
	}

	start := windowStart(ic.Random, actIdx, length, count)
	unassignRuined(ic, route, jobsIn(route.Tour, start, start+length))
}

// windowStart draws a uniform window start so that [start, start+size)
// stays within the job activities (indices 1..count) and contains
// actIdx.
func windowStart(random *Random, actIdx, size, count int) int {
	lo := actIdx - size + 1
	if lo < 1 {
		lo = 1
	}
	hi := actIdx
	if max := count - size + 1; hi > max {
		hi = max
	}
	return random.Uniform(lo, hi)
}

// jobsIn collects the distinct jobs of the activities in [start, end),
// in first-occurrence order.
func jobsIn(tour *Tour, start, end int) []Job {
	var jobs []Job
	seen := make(map[Job]struct{})
	acts := tour.Activities()
	for i := start; i < end && i < len(acts); i++ {
		job := acts[i].Job()
		if job == nil {
			continue
		}
		if _, dup := seen[job]; dup {
			continue
		}
		seen[job] = struct{}{}
		jobs = append(jobs, job)
	}
	return jobs
}

func dedupeJobs(jobs []Job) []Job {
	seen := make(map[Job]struct{}, len(jobs))
	out := jobs[:0]
	for _, job := range jobs {
		if _, dup := seen[job]; dup {
			continue
		}
		seen[job] = struct{}{}
		out = append(out, job)
	}
	return out
}
