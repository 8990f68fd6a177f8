package stream

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AwesomeIbex/vrp/solver"
)

// c101Head is the first 25 customers of the classic C101 instance.
const c101Head = `C101

VEHICLE
NUMBER     CAPACITY
  25         200

CUSTOMER
CUST NO.  XCOORD.   YCOORD.    DEMAND   READY TIME   DUE DATE   SERVICE TIME

    0      40         50          0          0       1236          0
    1      45         68         10        912        967         90
    2      45         70         30        825        870         90
    3      42         66         10         65        146         90
    4      42         68         10        727        782         90
    5      42         65         10         15         67         90
    6      40         69         20        621        702         90
    7      40         66         20        170        225         90
    8      38         68         20        255        324         90
    9      38         70         10        534        605         90
   10      35         66         10        357        410         90
   11      35         69         10        448        505         90
   12      25         85         20        652        721         90
   13      22         75         30         30         92         90
   14      22         85         10        567        620         90
   15      20         80         40        384        429         90
   16      20         85         40        475        528         90
   17      18         75         20         99        148         90
   18      15         75         20        179        254         90
   19      15         80         10        278        345         90
   20      30         50         10         10         73         90
   21      30         52         20        914        965         90
   22      28         52         20        812        883         90
   23      28         55         10        732        777         90
   24      25         50         10         65        144         90
   25      25         52         40        169        224         90
`

func TestSolve_C101Head_FeasibleAndReproducible(t *testing.T) {
	cfg := solver.SolverConfig{Seed: 42, Iterations: 100,
		Ruin: solver.DefaultSolverConfig().Ruin}

	run := func() (*solver.Solution, string) {
		p, err := ParseSolomon(strings.NewReader(c101Head))
		require.NoError(t, err)
		s := solver.NewSolver(p, cfg)
		solution := s.Solve()
		var buf bytes.Buffer
		require.NoError(t, WriteSolomon(&buf, solution))
		return solution, buf.String()
	}

	solution, text := run()

	// Every customer is served: each is reachable inside its window
	// from the depot and the fleet is large enough.
	assert.Empty(t, solution.Unassigned)

	// The objective stays under a loose bound of 1500, somewhat above
	// the roughly 1132 that one out-and-back route per customer costs.
	p := solution.Problem
	cost := p.Objective.Estimate(p, solution)
	assert.Less(t, cost, 1500.0)
	assert.Greater(t, cost, 0.0)

	// Every route respects capacity and the committed schedule.
	for _, route := range solution.Routes {
		load := solver.Demand{}
		for _, a := range route.Tour.Activities() {
			if s := a.Single(); s != nil {
				load = load.Add(s.Demand)
				assert.LessOrEqual(t, a.Arrival, a.Time.End)
			}
		}
		assert.True(t, load.Fits(route.Actor.Capacity))
	}

	// Bit-identical replay under the same seed and budget.
	_, again := run()
	assert.Equal(t, text, again)
}
