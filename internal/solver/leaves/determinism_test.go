package leaves

import (
	"testing"

	"github.com/napolitain/solver-leaves/internal/models"
)

// TestSolverDeterminism verifies that repeated solves return the same path.
// Frontier ties are broken by insertion order, so map iteration order must
// never leak into the result.
func TestSolverDeterminism(t *testing.T) {
	m := reducedModel(t, 3, 3)
	start := fullSet(models.Ancient, 0, 3)
	end := fullSet(models.Hematite, 3, 3)

	first, err := NewSolver(m).Solve(start, end)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	const iterations = 20
	for i := 1; i < iterations; i++ {
		// a fresh solver shares nothing but the model
		plan, err := NewSolver(m).Solve(start, end)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if plan.Hours != first.Hours {
			t.Fatalf("run %d: %v hours, first run %v", i, plan.Hours, first.Hours)
		}
		if plan.Stats.Expansions != first.Stats.Expansions {
			t.Errorf("run %d: %d expansions, first run %d", i, plan.Stats.Expansions, first.Stats.Expansions)
		}
		if len(plan.Steps) != len(first.Steps) {
			t.Fatalf("run %d: %d steps, first run %d", i, len(plan.Steps), len(first.Steps))
		}
		for j := range plan.Steps {
			if plan.Steps[j].State != first.Steps[j].State {
				t.Fatalf("run %d: step %d is %s, first run %s", i, j, plan.Steps[j].State, first.Steps[j].State)
			}
		}
	}
}
