package solver

// Problem is the immutable description of one routing instance: the
// jobs to serve, the fleet, the transport, the constraint pipeline and
// the objective. One Problem value is shared by reference across the
// whole search.
type Problem struct {
	Fleet     *Fleet
	Jobs      []Job
	Transport Transport
	Pipeline  *Pipeline
	Objective Objective

	jobIndex map[Job]int
}

// NewProblem assembles a problem. Job order is preserved and is the
// stable iteration order the search relies on.
func NewProblem(fleet *Fleet, jobs []Job, transport Transport, pipeline *Pipeline, objective Objective) *Problem {
	idx := make(map[Job]int, len(jobs))
	for i, job := range jobs {
		idx[job] = i
	}
	return &Problem{
		Fleet:     fleet,
		Jobs:      jobs,
		Transport: transport,
		Pipeline:  pipeline,
		Objective: objective,
		jobIndex:  idx,
	}
}

// JobIndex returns the stable index of the job within the problem.
func (p *Problem) JobIndex(job Job) int {
	i, ok := p.jobIndex[job]
	if !ok {
		panic("solver: job does not belong to the problem")
	}
	return i
}
