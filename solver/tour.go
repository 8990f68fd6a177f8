package solver

// Tour is a smart container for jobs with their realized activities.
// Activities are stored in service order between a mandatory start
// sentinel and, for closed tours, a terminal end sentinel. The job set
// gives O(1) membership.
//
// Structural invariants are programmer contracts; violating them panics.
type Tour struct {
	activities []*Activity
	jobs       map[Job]struct{}
	closed     bool
}

// NewTour creates an empty, uninitialized tour.
func NewTour() *Tour {
	return &Tour{jobs: make(map[Job]struct{})}
}

// SetStart initializes the tour with its start sentinel.
func (t *Tour) SetStart(activity *Activity) *Tour {
	if activity.single != nil {
		panic("solver: tour start must be a sentinel")
	}
	if len(t.activities) != 0 {
		panic("solver: tour start set twice")
	}
	t.activities = append(t.activities, activity)
	return t
}

// SetEnd closes the tour with its end sentinel.
func (t *Tour) SetEnd(activity *Activity) *Tour {
	if activity.single != nil {
		panic("solver: tour end must be a sentinel")
	}
	if len(t.activities) == 0 {
		panic("solver: tour end set before start")
	}
	t.activities = append(t.activities, activity)
	t.closed = true
	return t
}

// InsertAt inserts a job activity at the given index and registers its
// job for membership queries.
func (t *Tour) InsertAt(activity *Activity, index int) *Tour {
	if activity.single == nil {
		panic("solver: cannot insert sentinel activity")
	}
	if len(t.activities) == 0 {
		panic("solver: insert into uninitialized tour")
	}
	t.jobs[activity.Job()] = struct{}{}
	t.activities = append(t.activities, nil)
	copy(t.activities[index+1:], t.activities[index:])
	t.activities[index] = activity
	return t
}

// InsertLast appends a job activity just before the end sentinel, or at
// the very end for open tours.
func (t *Tour) InsertLast(activity *Activity) *Tour {
	return t.InsertAt(activity, t.ActivityCount()+1)
}

// Remove drops the job and all its activities from the tour.
func (t *Tour) Remove(job Job) bool {
	kept := t.activities[:0]
	for _, a := range t.activities {
		if !a.hasJob(job) {
			kept = append(kept, a)
		}
	}
	t.activities = kept
	if _, ok := t.jobs[job]; !ok {
		return false
	}
	delete(t.jobs, job)
	return true
}

// RemoveActivityAt removes the activity at idx together with the rest
// of its job, returning the job.
func (t *Tour) RemoveActivityAt(idx int) Job {
	job := t.activities[idx].Job()
	if job == nil {
		panic("solver: attempt to remove an activity without job from the tour")
	}
	t.Remove(job)
	return job
}

// RemoveActivities removes the activities in [start, end) together with
// their jobs, returning the removed jobs in first-occurrence order.
func (t *Tour) RemoveActivities(start, end int) []Job {
	var jobs []Job
	seen := make(map[Job]struct{})
	for _, a := range t.activities[start:end] {
		job := a.Job()
		if job == nil {
			panic("solver: attempt to remove an activity without job from the tour")
		}
		if _, dup := seen[job]; dup {
			continue
		}
		seen[job] = struct{}{}
		jobs = append(jobs, job)
	}
	for _, job := range jobs {
		t.Remove(job)
	}
	return jobs
}

// Activities returns the underlying activity sequence. Callers must not
// mutate it.
func (t *Tour) Activities() []*Activity { return t.activities }

// JobActivities returns the activities realizing the given job, in tour
// order.
func (t *Tour) JobActivities(job Job) []*Activity {
	var out []*Activity
	for _, a := range t.activities {
		if a.hasJob(job) {
			out = append(out, a)
		}
	}
	return out
}

// Legs returns the adjacent activity pairs of the tour as windows into
// the activity sequence. A tour holding only its start sentinel yields
// the singleton start leg; an open tour additionally yields a trailing
// single-activity leg.
func (t *Tour) Legs() [][]*Activity {
	last := len(t.activities) - 1
	if last < 0 {
		return nil
	}
	if last == 0 {
		return [][]*Activity{t.activities[0:1]}
	}
	var legs [][]*Activity
	for i := 0; i < last; i++ {
		legs = append(legs, t.activities[i:i+2])
	}
	if !t.closed {
		legs = append(legs, t.activities[last:])
	}
	return legs
}

// OrderedJobs returns the tour's jobs in first-activity order. Map
// iteration must never leak into anything the search draws from.
func (t *Tour) OrderedJobs() []Job {
	var out []Job
	seen := make(map[Job]struct{})
	for _, a := range t.activities {
		job := a.Job()
		if job == nil {
			continue
		}
		if _, dup := seen[job]; dup {
			continue
		}
		seen[job] = struct{}{}
		out = append(out, job)
	}
	return out
}

// Get returns the activity at index, nil when out of range.
func (t *Tour) Get(index int) *Activity {
	if index < 0 || index >= len(t.activities) {
		return nil
	}
	return t.activities[index]
}

// Start returns the start sentinel, nil for an uninitialized tour.
func (t *Tour) Start() *Activity { return t.Get(0) }

// End returns the last activity of the tour.
func (t *Tour) End() *Activity { return t.Get(len(t.activities) - 1) }

// Contains reports whether the job is present in the tour.
func (t *Tour) Contains(job Job) bool {
	_, ok := t.jobs[job]
	return ok
}

// Index returns the position of the job's first activity, or -1.
func (t *Tour) Index(job Job) int {
	for i, a := range t.activities {
		if a.hasJob(job) {
			return i
		}
	}
	return -1
}

// ActivityIndex returns the position of the activity, or -1.
func (t *Tour) ActivityIndex(activity *Activity) int {
	for i, a := range t.activities {
		if a.Same(activity) {
			return i
		}
	}
	return -1
}

// HasJobs reports whether any job is present.
func (t *Tour) HasJobs() bool { return len(t.jobs) > 0 }

// IsClosed reports whether the end sentinel is present.
func (t *Tour) IsClosed() bool { return t.closed }

// ActivityCount returns the number of job activities, excluding
// sentinels.
func (t *Tour) ActivityCount() int {
	if len(t.activities) == 0 {
		return 0
	}
	n := len(t.activities) - 1
	if t.closed {
		n--
	}
	return n
}

// Total returns the number of all activities including sentinels.
func (t *Tour) Total() int { return len(t.activities) }

// JobCount returns the number of distinct jobs.
func (t *Tour) JobCount() int { return len(t.jobs) }

// deepCopy clones the tour and all its activities.
func (t *Tour) deepCopy() *Tour {
	c := &Tour{
		activities: make([]*Activity, len(t.activities)),
		jobs:       make(map[Job]struct{}, len(t.jobs)),
		closed:     t.closed,
	}
	for i, a := range t.activities {
		c.activities[i] = a.deepCopy()
	}
	for job := range t.jobs {
		c.jobs[job] = struct{}{}
	}
	return c
}
