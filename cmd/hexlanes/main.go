// hexlanes generates hex tower-defense maps and simulates their wave loop.
//
// Usage:
//
//	hexlanes generate        - Generate a map and print it
//	hexlanes waves           - Simulate waves on a generated map
//	hexlanes history         - Show recently generated maps
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.hexlanes, ./configs, embedded)
//	--seed <value>      - Map seed (0 = random, printed after generation)
//	--db <path>         - Run history database (default: ~/.hexlanes/runs.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"go-hex-lanes/internal/app"
	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/defs"
	"go-hex-lanes/internal/lanes"
	"go-hex-lanes/internal/storage"
)

var (
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagRadius   int
	flagLanes    int
	flagNoRecord bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexlanes",
	Short: "Procedural hex lane maps for tower defense",
	Long: `hexlanes grows enemy lanes from the edge of a hex grid to a central hub,
validates that every lane is defensible and simulates the threat-budget
wave loop on the result.

Examples:
  hexlanes generate --seed 42
  hexlanes generate --radius 5 --lanes 4 --copy-seed
  hexlanes waves --seed 42 --count 10
  hexlanes history`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Map seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hexlanes/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&flagRadius, "radius", 0, "Override grid radius")
	rootCmd.PersistentFlags().IntVar(&flagLanes, "lanes", 0, "Override number of lanes")
	rootCmd.PersistentFlags().BoolVar(&flagNoRecord, "no-record", false, "Do not write to the run history")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(wavesCmd)
	rootCmd.AddCommand(historyCmd)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hexlanes",
		Level:           level,
	}), nil
}

// loadConfig applies the command-line overrides on top of the loaded file.
func loadConfig() (config.Config, defs.Roster, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, nil, err
	}
	if flagRadius > 0 {
		cfg.Generator.GridRadius = flagRadius
	}
	if flagLanes > 0 {
		cfg.Generator.NumberOfLanes = flagLanes
	}
	cfg.Generator.Seed = flagSeed

	var roster defs.Roster
	if cfg.Roster != "" {
		roster, err = defs.LoadRoster(cfg.Roster)
		if err != nil {
			return cfg, nil, err
		}
	}
	return cfg, roster, nil
}

func newSession() (*app.Session, *log.Logger, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	cfg, roster, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := app.NewSession(cfg, roster, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, logger, nil
}

// recordRun stores res in the history. Failures only warn; the map is still
// printed.
func recordRun(logger *log.Logger, cfg config.GeneratorConfig, res lanes.Result) (*storage.Store, int64) {
	if flagNoRecord {
		return nil, 0
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		return nil, 0
	}
	failure := ""
	if res.Err != nil {
		failure = res.Err.Error()
	}
	id, err := store.RecordRun(storage.RunRecord{
		Seed:      res.Seed,
		Radius:    cfg.GridRadius,
		HubSize:   cfg.HubSize,
		Requested: res.Requested,
		Placed:    len(res.Lanes),
		Attempts:  res.Attempts,
		Valid:     res.Valid,
		Failure:   failure,
	})
	if err != nil {
		logger.Warn("could not record run", "error", err)
		store.Close()
		return nil, 0
	}
	return store, id
}
