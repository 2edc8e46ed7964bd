// Package search implements a best-first search bounded from both sides.
//
// The frontier is ordered by g + lower(n, end), as in A*. On top of that the
// search keeps a global bound B, the smallest g + upper(n, end) seen so far:
// any entry whose optimistic total exceeds B cannot be on a cheaper path than
// one already known, so it is never pushed, and is dropped when popped.
//
// With a lower heuristic that never overestimates and an upper heuristic that
// never underestimates the remaining cost, the first time end is popped its
// cost is optimal.
package search

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNilNeighbors is returned when no neighbor function is given
	ErrNilNeighbors = errors.New("search: neighbor function is nil")

	// ErrNegativeCost is returned when an edge with a negative cost is generated
	ErrNegativeCost = errors.New("search: negative edge cost")
)

// Edge is a transition to a neighboring state
type Edge[S comparable] struct {
	To   S
	Cost float64
}

// Heuristic estimates the remaining cost from one state to another
type Heuristic[S comparable] func(from, to S) float64

// Result is the outcome of a search
type Result[S comparable] struct {
	Path  []S     // start to end inclusive, nil when not found
	Cost  float64 // g(end)
	Found bool

	Expansions int     // states settled
	Pushes     int     // frontier insertions, start included
	Pruned     int     // pops skipped as settled or above the bound
	Bound      float64 // global bound when the search stopped
}

// Bounded searches for the cheapest path from start to end.
//
// A nil lower heuristic is treated as zero, which degrades to Dijkstra.
// A nil upper heuristic is treated as +Inf, which disables bound pruning.
// Exhausting the frontier is not an error: Result.Found is false.
func Bounded[S comparable](
	start, end S,
	neighbors func(S) []Edge[S],
	lower, upper Heuristic[S],
	opts ...Option,
) (Result[S], error) {
	if neighbors == nil {
		return Result[S]{}, ErrNilNeighbors
	}
	o := newOptions(opts)

	if lower == nil {
		lower = func(S, S) float64 { return 0 }
	}
	if upper == nil {
		upper = func(S, S) float64 { return math.Inf(1) }
	}

	var res Result[S]
	bound := upper(start, end)

	g := map[S]float64{start: 0}
	cameFrom := make(map[S]S)
	settled := make(map[S]struct{})

	open := newFrontier[S]()
	open.push(start, lower(start, end))
	res.Pushes++

	for iteration := 1; !open.empty(); iteration++ {
		current := open.pop()

		if iteration%o.every == 0 {
			if o.progress != nil {
				o.progress(Progress{
					Iteration: iteration,
					Frontier:  open.len(),
					Priority:  current.priority,
					Bound:     bound,
				})
			}
			if err := o.ctx.Err(); err != nil {
				res.Bound = bound
				return res, fmt.Errorf("search stopped after %d pops: %w", iteration, err)
			}
		}

		if _, done := settled[current.state]; done || current.priority > bound {
			res.Pruned++
			continue
		}
		settled[current.state] = struct{}{}
		res.Expansions++

		if current.state == end {
			res.Path = reconstructPath(cameFrom, start, end)
			res.Cost = g[end]
			res.Found = true
			res.Bound = bound
			return res, nil
		}

		base := g[current.state]
		for _, edge := range neighbors(current.state) {
			if edge.Cost < 0 {
				return res, fmt.Errorf("%w: %v", ErrNegativeCost, edge.Cost)
			}

			tentative := base + edge.Cost
			bound = math.Min(bound, tentative+upper(edge.To, end))
			minTotal := tentative + lower(edge.To, end)

			known, seen := g[edge.To]
			if (!seen || tentative < known) && minTotal <= bound {
				g[edge.To] = tentative
				cameFrom[edge.To] = current.state
				open.push(edge.To, minTotal)
				res.Pushes++
			}
		}
	}

	res.Bound = bound
	return res, nil
}

func reconstructPath[S comparable](cameFrom map[S]S, start, end S) []S {
	path := []S{end}
	for current := end; current != start; {
		current = cameFrom[current]
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
