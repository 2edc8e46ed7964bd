package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-leaves/internal/economy"
	"github.com/napolitain/solver-leaves/internal/models"
)

var (
	maxLevel uint8
	setSize  int
	quiet    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leaves",
		Short: "Leaf upgrade planner",
		Long: `Finds the fastest order to upgrade a set of leaves, where every
upgrade is paid in dark essence farmed at the speed of the current leaves.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := models.DefaultConstants()
	rootCmd.PersistentFlags().Uint8VarP(&maxLevel, "max-level", "l", defaults.MaxLevel, "Highest ascension level of a leaf")
	rootCmd.PersistentFlags().IntVarP(&setSize, "set-size", "k", defaults.LeavesPerSet, "Number of leaves in a set")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	rootCmd.AddCommand(newSolveCmd(), newNeighborsCmd(), newTablesCmd())
	return rootCmd
}

// applyFlags overrides c with the persistent flags the user actually set
func applyFlags(cmd *cobra.Command, c models.Constants) models.Constants {
	if cmd.Flags().Changed("max-level") {
		c.MaxLevel = maxLevel
	}
	if cmd.Flags().Changed("set-size") {
		c.LeavesPerSet = setSize
	}
	return c
}

func buildModel(c models.Constants) (*economy.Model, error) {
	m, err := economy.New(c)
	if err != nil {
		return nil, fmt.Errorf("building cost tables: %w", err)
	}
	return m, nil
}
