package solver

// activitySerial allocates stable identities for activities. The search
// is single-goroutine, so a plain counter is enough.
var activitySerial uint64

// Activity is one realized visit inside a tour: the resolved place, the
// chosen time window and the committed schedule. Sentinel activities
// (route start and end) carry no single.
type Activity struct {
	Place     Place
	Time      TimeWindow
	Arrival   float64
	Departure float64

	serial uint64
	single *Single
}

// NewActivity creates an activity realizing the given single.
func NewActivity(single *Single, place Place, window TimeWindow) *Activity {
	activitySerial++
	return &Activity{Place: place, Time: window, serial: activitySerial, single: single}
}

// newSentinel creates a start or end activity for the actor.
func newSentinel(location Location, shift TimeWindow) *Activity {
	activitySerial++
	return &Activity{
		Place:  Place{Location: location, Times: []TimeWindow{shift}},
		Time:   shift,
		serial: activitySerial,
	}
}

// IsSentinel reports whether the activity is a route start or end.
func (a *Activity) IsSentinel() bool { return a.single == nil }

// Single returns the realized single, nil for sentinels.
func (a *Activity) Single() *Single { return a.single }

// Job returns the owning job of the activity, nil for sentinels.
func (a *Activity) Job() Job {
	if a.single == nil {
		return nil
	}
	return a.single.Job()
}

// Location returns the resolved service location.
func (a *Activity) Location() Location { return a.Place.Location }

// Same reports whether both values denote the very same activity.
// Identity survives nothing: a deep copy is a different activity.
func (a *Activity) Same(other *Activity) bool {
	return other != nil && a.serial == other.serial
}

// hasJob reports whether the activity belongs to the given job.
func (a *Activity) hasJob(job Job) bool {
	return a.single != nil && a.single.Job() == job
}

// deepCopy clones the activity with a fresh identity.
func (a *Activity) deepCopy() *Activity {
	activitySerial++
	c := *a
	c.serial = activitySerial
	return &c
}
