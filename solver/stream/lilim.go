package stream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AwesomeIbex/vrp/solver"
)

// ParseLilim reads a Li & Lim pickup-and-delivery instance: a header
// line with fleet size, capacity and speed, then task rows whose last
// two columns link each pickup to its delivery. Every linked pair
// becomes one multi job served by the same vehicle, pickup first.
func ParseLilim(r io.Reader) (*solver.Problem, error) {
	scanner := bufio.NewScanner(r)

	var vehicles, capacity int
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		v, err1 := strconv.Atoi(fields[0])
		c, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid header line %q", scanner.Text())
		}
		vehicles, capacity = v, c
		break
	}
	if vehicles < 1 {
		return nil, fmt.Errorf("fleet size and capacity not found")
	}

	customers, err := readCustomers(scanner, 9)
	if err != nil {
		return nil, err
	}
	if len(customers) < 3 {
		return nil, fmt.Errorf("instance needs a depot and at least one pickup-delivery pair")
	}

	depot := customers[0]
	points := make([][2]float64, len(customers))
	byID := make(map[int]int, len(customers))
	for i, c := range customers {
		points[i] = [2]float64{c.x, c.y}
		byID[c.id] = i
	}
	transport := solver.NewEuclideanTransport(points)

	var jobs []solver.Job
	for i, c := range customers {
		if i == 0 || c.delivery == 0 {
			continue // depot or delivery row; pairs are built from pickups
		}
		deliveryIdx, ok := byID[c.delivery]
		if !ok {
			return nil, fmt.Errorf("pickup %d links to unknown delivery %d", c.id, c.delivery)
		}
		d := customers[deliveryIdx]
		if c.demand <= 0 || d.demand >= 0 {
			return nil, fmt.Errorf("pair %d-%d has inconsistent demand signs", c.id, d.id)
		}
		pickup := solver.NewSingle(strconv.Itoa(c.id), solver.Demand{c.demand}, solver.Place{
			Location: i,
			Duration: c.service,
			Times:    []solver.TimeWindow{{Start: c.ready, End: c.due}},
		})
		delivery := solver.NewSingle(strconv.Itoa(d.id), solver.Demand{d.demand}, solver.Place{
			Location: deliveryIdx,
			Duration: d.service,
			Times:    []solver.TimeWindow{{Start: d.ready, End: d.due}},
		})
		jobs = append(jobs, solver.NewMulti(
			fmt.Sprintf("%d_%d", c.id, d.id), pickup, delivery,
		))
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no pickup-delivery pairs found")
	}

	fleet := makeFleet(vehicles, capacity, depot)
	return solver.NewProblem(
		fleet, jobs, transport,
		solver.NewDefaultPipeline(transport),
		solver.NewTotalCost(0),
	), nil
}
