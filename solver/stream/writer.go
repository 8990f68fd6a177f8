package stream

import (
	"bufio"
	"fmt"
	"io"

	"github.com/AwesomeIbex/vrp/solver"
)

// WriteSolomon writes the solution in the customary text form: one line
// per route with the served customer IDs in order, then the total cost
// and the vehicle count.
func WriteSolomon(w io.Writer, s *solver.Solution) error {
	bw := bufio.NewWriter(w)
	var total float64
	for i, route := range s.Routes {
		total += solver.RouteCost(s.Problem.Transport, route)
		if _, err := fmt.Fprintf(bw, "Route %d:", i+1); err != nil {
			return err
		}
		for _, a := range route.Tour.Activities() {
			if a.IsSentinel() {
				continue
			}
			if _, err := fmt.Fprintf(bw, " %s", a.Single().ID()); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "Cost %.2f Vehicles %d\n", total, len(s.Routes)); err != nil {
		return err
	}
	return bw.Flush()
}
