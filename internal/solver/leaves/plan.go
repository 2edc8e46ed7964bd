package leaves

import (
	"time"

	"github.com/napolitain/solver-leaves/internal/models"
)

// Step is one upgrade of a plan
type Step struct {
	From  models.Leaf   // leaf before the upgrade
	To    models.Leaf   // leaf after the upgrade
	State models.Leaves // configuration after the upgrade

	DarkEssence     int
	Hours           float64 // farming time for this step
	CumulativeHours float64 // farming time up to and including this step
}

// Stats describes the search behind a plan
type Stats struct {
	Expansions int
	Pushes     int
	Pruned     int
	Bound      float64 // final global upper bound
	SearchCost float64 // cost as summed by the search, in its direction
	Elapsed    time.Duration
}

// Plan is the cheapest upgrade sequence between two configurations
type Plan struct {
	Start     models.Leaves
	End       models.Leaves
	Direction Direction
	Found     bool
	Hours     float64
	Steps     []Step
	Stats     Stats
}

// States returns every configuration the plan goes through, start and end included
func (p *Plan) States() []models.Leaves {
	if !p.Found {
		return nil
	}
	states := make([]models.Leaves, 0, len(p.Steps)+1)
	states = append(states, p.Start)
	for _, step := range p.Steps {
		states = append(states, step.State)
	}
	return states
}

// TotalDarkEssence returns the dark essence spent over the whole plan
func (p *Plan) TotalDarkEssence() int {
	total := 0
	for _, step := range p.Steps {
		total += step.DarkEssence
	}
	return total
}

// steps recomputes each edge of a forward path with the forward cost model,
// so backward plans report the same per step costs as forward ones
func (s *Solver) steps(path []models.Leaves) []Step {
	if len(path) < 2 {
		return nil
	}

	steps := make([]Step, 0, len(path)-1)
	cumulative := 0.0
	for i := 1; i < len(path); i++ {
		from, to := changedLeaf(path[i-1], path[i])
		hours := s.model.ElapsedTime(from, to, s.model.Factor(path[i-1]))
		cumulative += hours

		steps = append(steps, Step{
			From:            from,
			To:              to,
			State:           path[i],
			DarkEssence:     s.model.TransitionCost(from, to),
			Hours:           hours,
			CumulativeHours: cumulative,
		})
	}
	return steps
}

// changedLeaf returns the leaf that differs between two configurations that are
// one upgrade apart: the one only in before, and the one only in after
func changedLeaf(before, after models.Leaves) (from, to models.Leaf) {
	i, j := 0, 0
	foundFrom, foundTo := false, false
	for i < before.Len() && j < after.Len() {
		a, b := before.At(i), after.At(j)
		switch a.Compare(b) {
		case 0:
			i++
			j++
		case -1:
			if !foundFrom {
				from, foundFrom = a, true
			}
			i++
		default:
			if !foundTo {
				to, foundTo = b, true
			}
			j++
		}
	}
	if !foundFrom && i < before.Len() {
		from = before.At(i)
	}
	if !foundTo && j < after.Len() {
		to = after.At(j)
	}
	return from, to
}
