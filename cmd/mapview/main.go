// cmd/mapview/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"go-hex-lanes/internal/app"
	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/defs"
	"go-hex-lanes/internal/state"
)

var (
	flagConfig    string
	flagSeed      int64
	flagLogLevel  string
	flagSkipTitle bool
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

var rootCmd = &cobra.Command{
	Use:   "mapview",
	Short: "Interactive viewer for generated hex lane maps",
	Long: `mapview opens a window with a generated map and runs the wave loop
on it. Enemies walk their lanes and are removed when they reach the hub.

Examples:
  mapview
  mapview --seed 42 --skip-title`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Map seed (0 = random)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&flagSkipTitle, "skip-title", false, "Open the map directly")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mapview",
		Level:           level,
	})
	log.SetDefault(logger)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg.Generator.Seed = flagSeed

	var roster defs.Roster
	if cfg.Roster != "" {
		if roster, err = defs.LoadRoster(cfg.Roster); err != nil {
			return err
		}
	}
	session, err := app.NewSession(cfg, roster, logger)
	if err != nil {
		return err
	}
	res := session.Regenerate(cfg.Generator.Seed)
	logger.Info("map ready", "seed", res.Seed, "lanes", len(res.Lanes), "valid", res.Valid)

	sm := state.NewStateMachine()
	if flagSkipTitle {
		view := state.NewViewState(sm, session)
		view.SetLogger(logger.WithPrefix("view"))
		sm.SetState(view)
	} else {
		sm.SetState(state.NewMenuState(sm, session))
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("Hex Lanes - seed %d", res.Seed))
	return ebiten.RunGame(&AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	})
}
