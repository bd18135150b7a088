package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"go-hex-lanes/pkg/hexmap"
	"go-hex-lanes/pkg/render"
)

var (
	flagCopySeed bool
	flagPlain    bool
	flagDigits   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a map and print it",
	Long: `Generate one map, print it as colored ASCII with a summary and record
the run in the history database.

Examples:
  hexlanes generate
  hexlanes generate --seed 42 --digits
  hexlanes generate --copy-seed --plain`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&flagCopySeed, "copy-seed", false, "Copy the map seed to the clipboard")
	generateCmd.Flags().BoolVar(&flagPlain, "plain", false, "Disable colors")
	generateCmd.Flags().BoolVar(&flagDigits, "digits", false, "Show lane ids on pathway tiles")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	s, logger, err := newSession()
	if err != nil {
		return err
	}
	res := s.Regenerate(s.Config.Generator.Seed)

	fmt.Print(render.ASCII(res.Grid, render.ASCIIOptions{Plain: flagPlain, LaneDigits: flagDigits}))
	fmt.Println()
	fmt.Println(render.Legend())
	fmt.Println()
	fmt.Printf("Seed:     %d\n", res.Seed)
	if res.AttemptSeed != res.Seed {
		fmt.Printf("Kept:     attempt %d (seed %d)\n", res.Attempts, res.AttemptSeed)
	}
	fmt.Printf("Lanes:    %d of %d requested\n", len(res.Lanes), res.Requested)
	for i, l := range res.Lanes {
		fmt.Printf("  lane %d: %d tiles from %v\n", i, len(l), l.Start())
	}
	fmt.Printf("Hub:      %d tiles\n", len(res.Grid.HubTiles()))
	fmt.Printf("Tiles:    %d pathway, %d defender spots, %d open\n",
		res.Grid.CountKind(hexmap.Pathway), res.Grid.CountKind(hexmap.DefenderSpot), res.Grid.CountKind(hexmap.Environment))
	if res.Valid {
		fmt.Println("Valid:    yes")
	} else {
		fmt.Printf("Valid:    no (%d incomplete lanes, %d clumped tiles)\n", len(res.Report.Incomplete), len(res.Report.Clumped))
	}
	for _, w := range res.Warnings {
		fmt.Printf("Warning:  %v\n", w)
	}

	if store, _ := recordRun(logger, s.Config.Generator, res); store != nil {
		store.Close()
	}

	if flagCopySeed {
		if err := clipboard.WriteAll(fmt.Sprint(res.Seed)); err != nil {
			logger.Warn("could not copy seed", "error", err)
		} else {
			fmt.Println("Seed copied to clipboard.")
		}
	}
	return nil
}
