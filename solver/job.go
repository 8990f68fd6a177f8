package solver

// Place is a candidate service point for a single: a location, a
// service duration and a nonempty list of candidate time windows. The
// concrete (place, window) pair is resolved during insertion.
type Place struct {
	Location Location
	Duration float64
	Times    []TimeWindow
}

// Job is the abstract demand unit, either a *Single or a *Multi.
// Jobs are shared-immutable for the lifetime of the search and their
// identity is pointer identity, so Job values are usable as map keys.
type Job interface {
	ID() string
	isJob()
}

// Single is one pickup or delivery. Places lists alternative service
// points; exactly one is chosen when the single is inserted.
type Single struct {
	Name   string
	Demand Demand
	Places []Place

	parent *Multi
}

func (s *Single) ID() string { return s.Name }
func (s *Single) isJob()     {}

// Job returns the owning job of the single: its parent Multi when it
// is a component, otherwise the single itself.
func (s *Single) Job() Job {
	if s.parent != nil {
		return s.parent
	}
	return s
}

// Multi is an ordered set of singles that must all be served by the
// same vehicle in their declared order, e.g. a pickup-delivery pair.
type Multi struct {
	Name    string
	Singles []*Single
}

func (m *Multi) ID() string { return m.Name }
func (m *Multi) isJob()     {}

// NewSingle creates a standalone single job.
func NewSingle(name string, demand Demand, places ...Place) *Single {
	if len(places) == 0 {
		panic("solver: single job needs at least one place")
	}
	return &Single{Name: name, Demand: demand, Places: places}
}

// NewMulti binds the singles into one multi job, claiming ownership of
// each component.
func NewMulti(name string, singles ...*Single) *Multi {
	if len(singles) < 2 {
		panic("solver: multi job needs at least two singles")
	}
	m := &Multi{Name: name, Singles: singles}
	for _, s := range singles {
		if s.parent != nil {
			panic("solver: single already belongs to a multi job")
		}
		s.parent = m
	}
	return m
}

// jobDemand returns the aggregate demand a route must be able to carry
// at some point while serving the job. For a multi this is the running
// maximum over its components in declared order.
func jobDemand(job Job) Demand {
	switch j := job.(type) {
	case *Single:
		return j.Demand.Positive()
	case *Multi:
		var running, peak Demand
		for _, s := range j.Singles {
			running = running.Add(s.Demand)
			peak = peak.Max(running)
		}
		return peak
	default:
		panic("solver: unknown job kind")
	}
}
