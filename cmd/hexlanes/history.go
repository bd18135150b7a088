package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-hex-lanes/internal/storage"
)

var (
	flagHistoryLimit int
	flagShowWaves    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently generated maps",
	Long: `List the latest runs from the history database, newest first, with the
share of maps that were kept after failing validation.

Examples:
  hexlanes history
  hexlanes history --limit 50
  hexlanes history --waves`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagShowWaves, "waves", false, "Show recorded waves of each run")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'hexlanes generate' to create the first map.")
		return nil
	}

	fmt.Printf("  %-5s  %-20s  %-6s  %-7s  %-8s  %-5s  %s\n", "ID", "Seed", "Radius", "Lanes", "Attempts", "Valid", "Date")
	fmt.Printf("  %-5s  %-20s  %-6s  %-7s  %-8s  %-5s  %s\n", "--", "----", "------", "-----", "--------", "-----", "----")
	for _, r := range runs {
		valid := "yes"
		if !r.Valid {
			valid = "no"
		}
		fmt.Printf("  %-5d  %-20d  %-6d  %-7s  %-8d  %-5s  %s\n",
			r.ID, r.Seed, r.Radius, fmt.Sprintf("%d/%d", r.Placed, r.Requested), r.Attempts, valid,
			r.CreatedAt.Format("2006-01-02 15:04"))

		if !flagShowWaves {
			continue
		}
		waves, err := store.Waves(r.ID)
		if err != nil {
			return err
		}
		for _, w := range waves {
			fmt.Printf("         wave %-4d budget %-9.1f %-6s %v\n", w.Number, w.Budget, w.Focus, w.Pool)
		}
	}

	if rate, err := store.FailureRate(); err == nil {
		fmt.Println()
		fmt.Printf("Failed validation: %.0f%% of all runs\n", rate*100)
	}
	return nil
}
