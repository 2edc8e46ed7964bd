package leaves

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/napolitain/solver-leaves/internal/economy"
	"github.com/napolitain/solver-leaves/internal/models"
	"github.com/napolitain/solver-leaves/internal/solver/search"
)

// ErrUnreachable is returned when end cannot be reached from start by upgrades
var ErrUnreachable = errors.New("end configuration is not reachable from start")

// Direction selects which way the search runs
type Direction int

const (
	Forward  Direction = iota // from start, upgrading leaves
	Backward                  // from end, undoing upgrades
)

// String returns a string representation of the direction
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// ParseDirection parses "forward" or "backward"
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "forward", "fwd", "":
		return Forward, nil
	case "backward", "back", "bwd":
		return Backward, nil
	default:
		return Forward, fmt.Errorf("unknown direction %q", s)
	}
}

type solveOptions struct {
	direction Direction
	search    []search.Option
}

// Option configures a Solve call
type Option func(*solveOptions)

// WithDirection selects the search direction. Both find the same cost.
func WithDirection(d Direction) Option {
	return func(o *solveOptions) { o.direction = d }
}

// WithProgress forwards search progress to fn
func WithProgress(fn func(search.Progress)) Option {
	return func(o *solveOptions) { o.search = append(o.search, search.WithProgress(fn)) }
}

// WithProgressEvery sets how many pops happen between progress reports
func WithProgressEvery(n int) Option {
	return func(o *solveOptions) { o.search = append(o.search, search.WithProgressEvery(n)) }
}

// WithContext lets the caller cancel a long search
func WithContext(ctx context.Context) Option {
	return func(o *solveOptions) { o.search = append(o.search, search.WithContext(ctx)) }
}

// Solver finds the cheapest upgrade plan between two configurations
type Solver struct {
	model *economy.Model
	graph *Graph
}

// NewSolver creates a solver over the given model
func NewSolver(model *economy.Model) *Solver {
	return &Solver{
		model: model,
		graph: NewGraph(model),
	}
}

// Model returns the economy model the solver uses
func (s *Solver) Model() *economy.Model {
	return s.model
}

// Graph returns the neighbor generator the solver searches
func (s *Solver) Graph() *Graph {
	return s.graph
}

// Solve returns the cheapest plan from start to end.
// A search that exhausts its frontier yields a plan with Found set to false.
func (s *Solver) Solve(start, end models.Leaves, opts ...Option) (*Plan, error) {
	if err := s.validate(start, end); err != nil {
		return nil, err
	}

	o := solveOptions{direction: Forward}
	for _, opt := range opts {
		opt(&o)
	}

	began := time.Now()

	var (
		res search.Result[models.Leaves]
		err error
	)
	switch o.direction {
	case Forward:
		ceiling := end.Max()
		res, err = search.Bounded(start, end,
			func(c models.Leaves) []Edge { return s.graph.Successors(c, ceiling) },
			s.graph.LowerBound, s.graph.UpperBound,
			o.search...,
		)
	case Backward:
		floor := start.Min()
		res, err = search.Bounded(end, start,
			func(c models.Leaves) []Edge { return s.graph.Predecessors(c, floor) },
			s.graph.ReversedLowerBound, s.graph.ReversedUpperBound,
			o.search...,
		)
		reverse(res.Path)
	default:
		return nil, fmt.Errorf("unknown direction %d", o.direction)
	}
	if err != nil {
		return nil, fmt.Errorf("solving %s -> %s: %w", start, end, err)
	}

	plan := &Plan{
		Start:     start,
		End:       end,
		Direction: o.direction,
		Found:     res.Found,
		Stats: Stats{
			Expansions: res.Expansions,
			Pushes:     res.Pushes,
			Pruned:     res.Pruned,
			Bound:      res.Bound,
			SearchCost: res.Cost,
			Elapsed:    time.Since(began),
		},
	}
	if res.Found {
		plan.Steps = s.steps(res.Path)
		plan.Hours = res.Cost
	}
	return plan, nil
}

func (s *Solver) validate(start, end models.Leaves) error {
	c := s.model.Constants()
	if err := start.Validate(c); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := end.Validate(c); err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if !s.graph.Reachable(start, end) {
		return fmt.Errorf("%w: %s -> %s", ErrUnreachable, start, end)
	}
	return nil
}

func reverse[S any](path []S) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}
