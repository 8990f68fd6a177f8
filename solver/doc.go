// Package solver provides the core ruin-and-recreate search engine for
// vehicle routing problems.
//
// # Reading Guide
//
// Start with these three files to understand the search kernel:
//   - tour.go: the activity sequence owned by a route, with its sentinel rules
//   - evaluator.go: the insertion heuristic that scores every (job, route, position)
//   - refinement.go: the ruin/recreate loop that drives the search
//
// # Architecture
//
// The solver package holds the whole engine; text formats live in the
// sub-package:
//   - solver/stream: Solomon and Li & Lim readers plus the Solomon writer
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - HardRouteConstraint / HardActivityConstraint: feasibility with failure codes
//   - SoftRouteConstraint / SoftActivityConstraint: cost penalties added to insertions
//   - Ruin: removes jobs from a solution ahead of reinsertion
//   - Recreate: reinserts unassigned jobs into a solution
//   - Acceptance: decides whether a candidate replaces the current solution
//   - Termination: decides when the refinement loop stops
//   - Objective: total cost of a solution, compared with strict less-than
package solver
