package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/napolitain/solver-leaves/internal/loader"
	"github.com/napolitain/solver-leaves/internal/models"
	"github.com/napolitain/solver-leaves/internal/solver/leaves"
	"github.com/napolitain/solver-leaves/internal/solver/search"
)

var errReshapedScenario = errors.New("--set-size and --max-level change the scenario's set shape, give --start and --end as well")

type solveFlags struct {
	start    string
	end      string
	scenario string
	backward bool
	timeout  time.Duration
	every    int
}

func newSolveCmd() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the fastest upgrade plan",
		Long: `Searches for the fastest sequence of single leaf upgrades from the start
set to the end set. Without flags it plans a full set of a0 leaves up to a full
set of top hematite leaves.`,
		Example: `  leaves solve --start "a0 a0 a0 a0 a0 a0 a0 a0" --end "h10 h10 h10 h10 h10 h10 h10 h10"
  leaves solve -l 3 -k 2 --backward
  leaves solve --scenario scenario.json --timeout 10m`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.start, "start", "s", "", "Start leaves, e.g. \"a0 a0 s3\"")
	cmd.Flags().StringVarP(&f.end, "end", "e", "", "End leaves, e.g. \"h10 h10 h10\"")
	cmd.Flags().StringVar(&f.scenario, "scenario", "", "Path to a JSON scenario file")
	cmd.Flags().BoolVarP(&f.backward, "backward", "b", false, "Search from the end set back to the start set")
	cmd.Flags().DurationVarP(&f.timeout, "timeout", "t", 0, "Give up after this long (0 = no limit)")
	cmd.Flags().IntVar(&f.every, "progress-every", search.DefaultProgressEvery, "Frontier pops between progress checks")

	return cmd
}

func runSolve(cmd *cobra.Command, f solveFlags) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	c := models.DefaultConstants()
	direction := leaves.Forward
	var scenario *loader.Scenario
	if f.scenario != "" {
		s, err := loader.LoadScenario(f.scenario)
		if err != nil {
			return err
		}
		scenario = s
		c = s.Constants
		direction = s.Direction
	}
	c = applyFlags(cmd, c)
	if f.backward {
		direction = leaves.Backward
	}

	model, err := buildModel(c)
	if err != nil {
		return err
	}

	start, end, err := resolveEndpoints(cmd, f, scenario, c)
	if err != nil {
		return err
	}
	if err := start.Validate(c); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := end.Validate(c); err != nil {
		return fmt.Errorf("end: %w", err)
	}

	solver := leaves.NewSolver(model)

	if !quiet {
		fmt.Println(banner("Leaf Upgrade Planner"))
		infoColor.Println("🍃 Start:", start)
		infoColor.Println("🎯 End:  ", end)
		fmt.Printf("   Bounds: %s .. %s\n",
			formatHours(solver.Graph().LowerBound(start, end)),
			formatHours(solver.Graph().UpperBound(start, end)))
		infoColor.Printf("🔄 Searching %s...\n\n", direction)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	opts := []leaves.Option{
		leaves.WithDirection(direction),
		leaves.WithContext(ctx),
		leaves.WithProgressEvery(f.every),
	}
	if !quiet {
		throttle := rate.Sometimes{Interval: 2 * time.Second}
		opts = append(opts, leaves.WithProgress(func(p search.Progress) {
			throttle.Do(func() {
				log.Printf("pops=%d frontier=%d priority=%.4f bound=%.4f",
					p.Iteration, p.Frontier, p.Priority, p.Bound)
			})
		}))
	}

	plan, err := solver.Solve(start, end, opts...)
	if err != nil {
		return err
	}
	if !plan.Found {
		color.Red("✗ No upgrade path from %s to %s", start, end)
		printStats(plan)
		return nil
	}

	if !quiet {
		printPlan(plan)
	}

	successColor.Printf("\n✓ Found a plan with %d upgrades\n", len(plan.Steps))
	titleColor.Printf("⏱️  Total farming time: %s (%.2f hours = %.1f days)\n",
		formatHours(plan.Hours), plan.Hours, plan.Hours/24)
	fmt.Printf("   Dark essence: %d\n", plan.TotalDarkEssence())
	if !quiet {
		printStats(plan)
	}
	return nil
}

// resolveEndpoints picks start and end from flags, then the scenario, then the
// default full sets
func resolveEndpoints(cmd *cobra.Command, f solveFlags, scenario *loader.Scenario, c models.Constants) (models.Leaves, models.Leaves, error) {
	start := models.FullSetOf(models.Leaf{Tier: models.Ancient}, c.LeavesPerSet)
	end := models.FullSetOf(models.Leaf{Tier: models.Hematite, Level: c.MaxLevel}, c.LeavesPerSet)

	if scenario != nil {
		// scenario endpoints are sized for the scenario's own constants
		reshaped := cmd.Flags().Changed("set-size") || cmd.Flags().Changed("max-level")
		if reshaped && (f.start == "" || f.end == "") {
			return start, end, errReshapedScenario
		}
		start, end = scenario.Start, scenario.End
	}

	var err error
	if f.start != "" {
		if start, err = models.ParseLeaves(f.start); err != nil {
			return start, end, fmt.Errorf("--start: %w", err)
		}
	}
	if f.end != "" {
		if end, err = models.ParseLeaves(f.end); err != nil {
			return start, end, fmt.Errorf("--end: %w", err)
		}
	}
	return start, end, nil
}

func banner(title string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 3).
		MarginTop(1).
		Render(title)
}

func printPlan(plan *leaves.Plan) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "Upgrade", "Configuration", "Dark Essence", "Time", "Elapsed"}),
	)

	for i, step := range plan.Steps {
		_ = table.Append(stepRow(i, step))
	}
	_ = table.Render()
}

func printStats(plan *leaves.Plan) {
	s := plan.Stats
	fmt.Printf("\n📊 Search (%s): %d expansions, %d pushes, %d pruned, bound %.4f, %s\n",
		plan.Direction, s.Expansions, s.Pushes, s.Pruned, s.Bound, s.Elapsed.Round(time.Millisecond))
}
