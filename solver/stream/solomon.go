// Package stream reads the classic text benchmark formats into solver
// problems and writes solutions back as text.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AwesomeIbex/vrp/solver"
)

// customer is one parsed row of a benchmark file.
type customer struct {
	id       int
	x, y     float64
	demand   int
	ready    float64
	due      float64
	service  float64
	pickup   int
	delivery int
}

// ParseSolomon reads a Solomon VRPTW instance: a VEHICLE section with
// fleet size and capacity, then a CUSTOMER section whose first row is
// the depot. Every customer becomes a single job; distances are
// euclidean with unit speed.
func ParseSolomon(r io.Reader) (*solver.Problem, error) {
	scanner := bufio.NewScanner(r)

	if err := skipTo(scanner, "VEHICLE"); err != nil {
		return nil, err
	}
	vehicles, capacity, err := readFleetLine(scanner)
	if err != nil {
		return nil, err
	}
	if err := skipTo(scanner, "CUSTOMER"); err != nil {
		return nil, err
	}
	customers, err := readCustomers(scanner, 7)
	if err != nil {
		return nil, err
	}
	if len(customers) < 2 {
		return nil, fmt.Errorf("instance needs a depot and at least one customer")
	}

	depot := customers[0]
	points := make([][2]float64, len(customers))
	for i, c := range customers {
		points[i] = [2]float64{c.x, c.y}
	}
	transport := solver.NewEuclideanTransport(points)

	jobs := make([]solver.Job, 0, len(customers)-1)
	for i, c := range customers[1:] {
		place := solver.Place{
			Location: i + 1,
			Duration: c.service,
			Times:    []solver.TimeWindow{{Start: c.ready, End: c.due}},
		}
		jobs = append(jobs, solver.NewSingle(strconv.Itoa(c.id), solver.Demand{c.demand}, place))
	}

	fleet := makeFleet(vehicles, capacity, depot)
	return solver.NewProblem(
		fleet, jobs, transport,
		solver.NewDefaultPipeline(transport),
		solver.NewTotalCost(0),
	), nil
}

func makeFleet(vehicles, capacity int, depot customer) *solver.Fleet {
	depotLoc := 0
	actors := make([]*solver.Actor, vehicles)
	for i := range actors {
		actors[i] = &solver.Actor{
			Name:     fmt.Sprintf("vehicle_%d", i+1),
			Type:     "vehicle",
			Capacity: solver.Demand{capacity},
			Costs:    solver.Costs{PerDistance: 1},
			Start:    depotLoc,
			End:      &depotLoc,
			Shift:    solver.TimeWindow{Start: depot.ready, End: depot.due},
		}
	}
	return solver.NewFleet(actors...)
}

// skipTo consumes lines until the one starting with the marker.
func skipTo(scanner *bufio.Scanner, marker string) error {
	for scanner.Scan() {
		if strings.HasPrefix(strings.TrimSpace(scanner.Text()), marker) {
			return nil
		}
	}
	return fmt.Errorf("section %q not found", marker)
}

// readFleetLine finds the "number capacity" pair below the VEHICLE
// header.
func readFleetLine(scanner *bufio.Scanner) (int, int, error) {
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		vehicles, err1 := strconv.Atoi(fields[0])
		capacity, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			continue
		}
		if vehicles < 1 || capacity < 0 {
			return 0, 0, fmt.Errorf("invalid fleet line %q", scanner.Text())
		}
		return vehicles, capacity, nil
	}
	return 0, 0, fmt.Errorf("fleet size and capacity not found")
}

// readCustomers parses all numeric rows with at least minFields columns
// until EOF, skipping headers and blank lines.
func readCustomers(scanner *bufio.Scanner, minFields int) ([]customer, error) {
	var customers []customer
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < minFields {
			continue
		}
		row, err := parseRow(fields)
		if err != nil {
			// Header rows below the section marker are not numeric.
			if len(customers) == 0 {
				continue
			}
			return nil, err
		}
		customers = append(customers, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading instance: %w", err)
	}
	return customers, nil
}

func parseRow(fields []string) (customer, error) {
	nums := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return customer{}, fmt.Errorf("invalid numeric field %q", f)
		}
		nums[i] = v
	}
	c := customer{
		id:      int(nums[0]),
		x:       nums[1],
		y:       nums[2],
		demand:  int(nums[3]),
		ready:   nums[4],
		due:     nums[5],
		service: nums[6],
	}
	if len(nums) >= 9 {
		c.pickup = int(nums[7])
		c.delivery = int(nums[8])
	}
	return c, nil
}
