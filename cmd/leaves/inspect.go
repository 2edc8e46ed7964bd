package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-leaves/internal/economy"
	"github.com/napolitain/solver-leaves/internal/models"
	"github.com/napolitain/solver-leaves/internal/solver/leaves"
)

func newNeighborsCmd() *cobra.Command {
	var (
		before bool
		bound  string
	)

	cmd := &cobra.Command{
		Use:   "neighbors <leaves>...",
		Short: "List the configurations one upgrade away",
		Example: `  leaves neighbors a0 a0 s3 b1 b1 m0 h2 h2
  leaves neighbors --before --bound s0 "s3 s3 b1 b1 m0 m0 h2 h2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := buildModel(applyFlags(cmd, models.DefaultConstants()))
			if err != nil {
				return err
			}

			config, err := models.ParseLeaves(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := config.Validate(model.Constants()); err != nil {
				return err
			}

			return printNeighbors(model, config, before, bound)
		},
	}

	cmd.Flags().BoolVar(&before, "before", false, "List predecessors instead of successors")
	cmd.Flags().StringVar(&bound, "bound", "", "Ceiling leaf for successors, floor leaf for predecessors")

	return cmd
}

func printNeighbors(model *economy.Model, config models.Leaves, before bool, bound string) error {
	c := model.Constants()
	graph := leaves.NewGraph(model)

	limit := models.Leaf{Tier: models.Hematite, Level: c.MaxLevel}
	if before {
		limit = models.Leaf{Tier: models.Ancient}
	}
	if bound != "" {
		var err error
		if limit, err = models.ParseLeaf(bound); err != nil {
			return fmt.Errorf("--bound: %w", err)
		}
		if err := limit.Validate(c.MaxLevel); err != nil {
			return fmt.Errorf("--bound: %w", err)
		}
	}

	var edges []leaves.Edge
	if before {
		edges = graph.Predecessors(config, limit)
	} else {
		edges = graph.Successors(config, limit)
	}

	if !quiet {
		direction := "Successors"
		if before {
			direction = "Predecessors"
		}
		color.New(color.FgCyan, color.Bold).Printf("%s of %s (factor %.4f, bound %s)\n",
			direction, config, model.Factor(config), limit)
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "Configuration", "Factor", "Time"}),
	)
	for i, e := range edges {
		_ = table.Append([]string{
			strconv.Itoa(i + 1),
			e.To.String(),
			fmt.Sprintf("%.4f", model.Factor(e.To)),
			formatHours(e.Cost),
		})
	}
	_ = table.Render()

	return nil
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the cost and bonus tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			model, err := buildModel(applyFlags(cmd, models.DefaultConstants()))
			if err != nil {
				return err
			}
			printTables(model)
			return nil
		},
	}
}

func printTables(model *economy.Model) {
	c := model.Constants()
	titleColor := color.New(color.FgCyan, color.Bold)

	titleColor.Println("Tiers")
	tiers := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Tier", "Letter", "Weight", "Fusion Shards", "Fusion Dark Essence"}),
	)
	for _, t := range models.AllTiers() {
		shards := model.TotalFusionShards(t)
		_ = tiers.Append([]string{
			t.String(),
			string(t.Letter()),
			strconv.Itoa(t.Weight()),
			strconv.Itoa(shards),
			formatEssence(shards * c.DarkPerFusionShard),
		})
	}
	_ = tiers.Render()

	fmt.Println()
	titleColor.Println("Levels")
	levels := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Leaf", "Ascension Shards", "Dark Essence from a0", "Wem Bonus", "Crit Bonus", "Full Set Factor"}),
	)
	base := models.Leaf{Tier: models.Ancient}
	for _, t := range models.AllTiers() {
		for lvl := uint8(0); lvl <= c.MaxLevel; lvl++ {
			leaf := models.Leaf{Tier: t, Level: lvl}
			_ = levels.Append([]string{
				leaf.String(),
				strconv.Itoa(model.TotalAscensionShards(leaf)),
				formatEssence(model.TransitionCost(base, leaf)),
				fmt.Sprintf("%.6f", model.WemBonus(leaf)),
				fmt.Sprintf("%.6f", model.CritBonus(leaf)),
				fmt.Sprintf("%.4f", model.Factor(models.FullSetOf(leaf, c.LeavesPerSet))),
			})
		}
	}
	_ = levels.Render()
}
