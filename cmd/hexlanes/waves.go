package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/event"
	"go-hex-lanes/internal/storage"
	"go-hex-lanes/internal/wave"
)

var flagWaveCount int

var wavesCmd = &cobra.Command{
	Use:   "waves",
	Short: "Simulate waves on a generated map",
	Long: `Generate a map, run the wave director headless and print the
(wave, budget, pool) tuple of every wave. Every spawned enemy is destroyed
on the following frame.

Examples:
  hexlanes waves --count 10
  hexlanes waves --seed 42 --count 25`,
	Args: cobra.NoArgs,
	RunE: runWaves,
}

func init() {
	wavesCmd.Flags().IntVar(&flagWaveCount, "count", 10, "Number of waves to simulate")
}

// killer destroys every enemy one frame after it spawns.
type killer struct {
	pending []wave.SpawnOrder
}

func (k *killer) Spawn(o wave.SpawnOrder) { k.pending = append(k.pending, o) }

// waveReporter prints started waves and records them in the history.
type waveReporter struct {
	store *storage.Store
	runID int64
	err   error
}

func (r *waveReporter) OnEvent(e event.Event) {
	info, ok := e.Data.(event.WaveInfo)
	if !ok {
		return
	}
	status := fmt.Sprintf("%d enemies", info.Planned)
	if e.Type == event.SpawnSkipped {
		status = "skipped"
	}
	fmt.Printf("  %-5d %-9.1f %-6s %-40s %s\n", info.Number, info.Budget, info.Focus, strings.Join(info.Pool, ","), status)

	if r.store == nil || r.err != nil {
		return
	}
	r.err = r.store.RecordWave(storage.WaveRecord{
		RunID:   r.runID,
		Number:  info.Number,
		Budget:  info.Budget,
		Focus:   info.Focus,
		Pool:    info.Pool,
		Planned: info.Planned,
	})
}

func runWaves(cmd *cobra.Command, _ []string) error {
	if flagWaveCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	s, logger, err := newSession()
	if err != nil {
		return err
	}
	k := &killer{}
	s.Director.SetSpawner(k)
	res := s.Regenerate(s.Config.Generator.Seed)

	store, runID := recordRun(logger, s.Config.Generator, res)
	if store != nil {
		defer store.Close()
	}
	reporter := &waveReporter{store: store, runID: runID}
	s.EventDispatcher.Subscribe(event.WaveStarted, reporter)
	s.EventDispatcher.Subscribe(event.SpawnSkipped, reporter)

	fmt.Printf("Seed %d, %d lanes, valid=%v\n\n", res.Seed, len(res.Lanes), res.Valid)
	fmt.Printf("  %-5s %-9s %-6s %-40s %s\n", "Wave", "Budget", "Focus", "Pool", "Spawned")
	fmt.Printf("  %-5s %-9s %-6s %-40s %s\n", "----", "------", "-----", "----", "-------")

	s.Start()
	// generous frame cap so a misconfigured loop cannot spin forever
	maxFrames := flagWaveCount * 100000
	for frame := 0; frame < maxFrames; frame++ {
		if s.Director.Wave() >= flagWaveCount && s.Director.State() == wave.Countdown {
			break
		}
		s.Update(config.MaxDeltaTime)
		for _, o := range k.pending {
			s.EnemyDestroyed(o.Ref())
		}
		k.pending = k.pending[:0]
	}
	s.Director.Stop()

	if reporter.err != nil {
		logger.Warn("could not record waves", "error", reporter.err)
	}
	return nil
}
