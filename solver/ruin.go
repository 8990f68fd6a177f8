package solver

// Ruin removes jobs or whole routes from a solution, moving the jobs to
// the unassigned set for the following recreate to reinsert.
type Ruin interface {
	Run(ic *InsertionContext)
}

// WeightedRuin pairs a ruin with an application probability in [0, 1].
type WeightedRuin struct {
	Ruin        Ruin
	Probability float64
}

// CompositeRuin applies each of its ruins with its probability, in
// registration order, accumulating the effect on the same context.
type CompositeRuin struct {
	ruins []WeightedRuin
}

// NewCompositeRuin wires the given weighted ruins.
func NewCompositeRuin(ruins ...WeightedRuin) *CompositeRuin {
	return &CompositeRuin{ruins: ruins}
}

// NewDefaultRuin returns the standard composition: adjusted string
// removal always, a whole random route once in a hundred
// iterations.
func NewDefaultRuin() *CompositeRuin {
	return NewCompositeRuin(
		WeightedRuin{Ruin: NewAdjustedStringRemoval(), Probability: 1.0},
		WeightedRuin{Ruin: NewRandomRouteRemoval(1), Probability: 0.01},
	)
}

// Run draws one gate per ruin and applies the ones that pass.
func (c *CompositeRuin) Run(ic *InsertionContext) {
	for _, wr := range c.ruins {
		if ic.Random.UniformReal(0, 1) < wr.Probability {
			wr.Ruin.Run(ic)
		}
	}
}

// unassignRuined moves the jobs out of the route's tour into the
// unassigned set and refreshes or drops the route.
func unassignRuined(ic *InsertionContext, route *Route, jobs []Job) {
	for _, job := range jobs {
		route.Tour.Remove(job)
		ic.Solution.Unassigned[job] = CodeRuined
	}
	if route.Tour.HasJobs() {
		ic.Accept(route)
	} else {
		ic.DropRoute(route)
	}
}
