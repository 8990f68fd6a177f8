package solver

// Route is a tour assigned to an actor.
type Route struct {
	Actor *Actor
	Tour  *Tour
}

// NewRoute creates an initialized empty route for the actor: a tour
// with its start sentinel at the actor's start place, closed with an
// end sentinel when the actor has an end place.
func NewRoute(actor *Actor) *Route {
	tour := NewTour()
	start := newSentinel(actor.Start, actor.Shift)
	start.Arrival = actor.Shift.Start
	start.Departure = actor.Shift.Start
	tour.SetStart(start)
	if actor.End != nil {
		tour.SetEnd(newSentinel(*actor.End, actor.Shift))
	}
	return &Route{Actor: actor, Tour: tour}
}

// deepCopy clones the route and its tour. The actor is shared.
func (r *Route) deepCopy() *Route {
	return &Route{Actor: r.Actor, Tour: r.Tour.deepCopy()}
}
