package solver

import "math"

// Recreate rebuilds a partially destroyed solution by reinserting its
// unassigned jobs.
type Recreate interface {
	Run(ic *InsertionContext)
}

// CheapestInsertion reinserts jobs greedily: at each step every
// unassigned job is evaluated and the globally cheapest insertion is
// committed, until nothing is left or nothing fits. Jobs that fail in
// every route and position keep their last failure code in the
// solution's unassigned set; that is a valid outcome, not an error.
type CheapestInsertion struct{}

// Run drives the insertion loop to a fixpoint.
func (CheapestInsertion) Run(ic *InsertionContext) {
	for len(ic.Solution.Unassigned) > 0 {
		var best InsertionResult
		bestCost := math.Inf(1)
		for _, job := range ic.UnassignedOrdered() {
			res := ic.EvaluateJob(job)
			if res.Success {
				if res.Cost < bestCost {
					bestCost = res.Cost
					best = res
				}
			} else {
				ic.Solution.Unassigned[job] = res.Code
			}
		}
		if !best.Success {
			return
		}
		ic.Insert(best)
	}
}

// WeightedRecreate pairs a recreate with a selection weight.
type WeightedRecreate struct {
	Recreate Recreate
	Weight   float64
}

// CompositeRecreate draws one of its recreates per invocation, with
// probability proportional to weight.
type CompositeRecreate struct {
	recreates []WeightedRecreate
}

// NewCompositeRecreate wires the given weighted recreates.
func NewCompositeRecreate(recreates ...WeightedRecreate) *CompositeRecreate {
	if len(recreates) == 0 {
		panic("solver: composite recreate needs at least one recreate")
	}
	return &CompositeRecreate{recreates: recreates}
}

// NewDefaultRecreate returns the standard composition: cheapest
// insertion only.
func NewDefaultRecreate() *CompositeRecreate {
	return NewCompositeRecreate(WeightedRecreate{Recreate: CheapestInsertion{}, Weight: 1})
}

// Run selects a recreate by weighted draw and runs it.
func (c *CompositeRecreate) Run(ic *InsertionContext) {
	var total float64
	for _, wr := range c.recreates {
		total += wr.Weight
	}
	draw := ic.Random.UniformReal(0, total)
	for _, wr := range c.recreates {
		draw -= wr.Weight
		if draw < 0 {
			wr.Recreate.Run(ic)
			return
		}
	}
	c.recreates[len(c.recreates)-1].Recreate.Run(ic)
}
