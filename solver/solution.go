package solver

// Unassigned reason codes. Zero marks a job removed by ruin (or not yet
// constructed); the remaining codes identify the constraint that
// rejected the job's last insertion attempt everywhere.
const (
	CodeRuined     = 0
	CodeTimeWindow = 1
	CodeCapacity   = 2
	CodeShift      = 3
)

// Solution is a mutable set of routes plus the jobs that currently have
// no route, each with a reason code. A solution exclusively owns its
// routes and tours; the registry tracks which fleet actors it consumes.
type Solution struct {
	Routes     []*Route
	Unassigned map[Job]int
	Registry   *Registry
	Problem    *Problem
}

// NewSolution creates an empty solution over the problem's fleet with
// every job unassigned.
func NewSolution(problem *Problem) *Solution {
	unassigned := make(map[Job]int, len(problem.Jobs))
	for _, job := range problem.Jobs {
		unassigned[job] = CodeRuined
	}
	return &Solution{
		Unassigned: unassigned,
		Registry:   NewRegistry(problem.Fleet),
		Problem:    problem,
	}
}

// RouteOf returns the route containing the job and its index, or
// (nil, -1) when the job is not assigned.
func (s *Solution) RouteOf(job Job) (*Route, int) {
	for i, r := range s.Routes {
		if r.Tour.Contains(job) {
			return r, i
		}
	}
	return nil, -1
}

// RemoveRoute drops the route at index, returning its actor to the
// registry. The route's jobs must already be accounted for.
func (s *Solution) RemoveRoute(index int) {
	route := s.Routes[index]
	s.Registry.Free(route.Actor)
	s.Routes = append(s.Routes[:index], s.Routes[index+1:]...)
}

// deepCopy clones the solution. The returned map relates each original
// route to its copy so per-route caches can follow their routes.
func (s *Solution) deepCopy() (*Solution, map[*Route]*Route) {
	c := &Solution{
		Routes:     make([]*Route, len(s.Routes)),
		Unassigned: make(map[Job]int, len(s.Unassigned)),
		Registry:   s.Registry.Clone(),
		Problem:    s.Problem,
	}
	mapping := make(map[*Route]*Route, len(s.Routes))
	for i, r := range s.Routes {
		c.Routes[i] = r.deepCopy()
		mapping[r] = c.Routes[i]
	}
	for job, code := range s.Unassigned {
		c.Unassigned[job] = code
	}
	return c, mapping
}
