// Package lanes grows enemy lanes from the grid edge to the hub, classifies
// the tiles around them and keeps regenerating until the map is playable.
package lanes

import (
	"fmt"

	"github.com/charmbracelet/log"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/utils"
	"go-hex-lanes/pkg/hexmap"
)

// Generator owns the grid and the lanes for one map.
type Generator struct {
	cfg    config.GeneratorConfig
	rng    *utils.PRNGService
	logger *log.Logger

	grid     *hexmap.Grid
	lanes    []Lane
	spawns   []EdgeSpawnPoint
	warnings []error
}

// Result is the outcome of Generate. Grid is the generator's live grid.
type Result struct {
	Grid        *hexmap.Grid
	Lanes       []Lane
	SpawnPoints []EdgeSpawnPoint

	Seed        int64 // seed of the first attempt, generated when configured as 0
	AttemptSeed int64 // seed of the attempt that was kept
	Attempts    int
	Requested   int

	// Valid reports whether the kept map satisfies every invariant. With
	// validation disabled it is informational only.
	Valid    bool
	Report   Report
	Warnings []error
	// Err wraps ErrValidationFailed when attempts ran out.
	Err error
}

// NewGenerator creates a generator. A nil rng is replaced with one seeded from
// cfg.Seed; a nil logger falls back to log.Default().
func NewGenerator(cfg config.GeneratorConfig, rng *utils.PRNGService, logger *log.Logger) *Generator {
	if rng == nil {
		rng = utils.NewPRNGService(cfg.Seed)
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = config.DefaultMaxAttempts
	}
	return &Generator{
		cfg:    cfg,
		rng:    rng,
		logger: logger,
		grid:   hexmap.NewGrid(cfg.GridRadius, cfg.HubSize),
	}
}

// Grid returns the live grid.
func (g *Generator) Grid() *hexmap.Grid { return g.grid }

// Lanes returns a copy of the current lanes.
func (g *Generator) Lanes() []Lane { return cloneLanes(g.lanes) }

// SetSeed replaces the configured seed used by the next Generate.
func (g *Generator) SetSeed(seed int64) { g.cfg.Seed = seed }

// Generate builds a map. It always returns a usable map: failed validation
// triggers repair, then regeneration with originalSeed+attempt, and after
// MaxAttempts the last map is kept and Result.Err is set.
func (g *Generator) Generate() Result {
	g.rng.Reseed(g.cfg.Seed)
	original := g.rng.Seed()

	attempts := g.cfg.MaxAttempts
	if !g.cfg.EnableValidation {
		attempts = 1
	}

	var (
		report   Report
		used     int
		kept     int64
		warnings []error
	)
	for attempt := 0; attempt < attempts; attempt++ {
		// seed+attempt may pass through 0 for negative seeds; SetSeed keeps it literal
		seed := original + int64(attempt)
		if attempt > 0 {
			g.rng.SetSeed(seed)
			g.logger.Debug("regenerating map", "attempt", attempt+1, "seed", seed)
		}
		used, kept = attempt+1, seed

		g.build()
		warnings = g.warnings

		if !g.cfg.EnableValidation {
			report = g.Validate()
			break
		}
		report = g.ValidateAndRepair()
		if report.Valid() {
			break
		}
		g.logger.Warn("map failed validation",
			"attempt", attempt+1, "seed", seed,
			"incomplete", len(report.Incomplete), "clumped", len(report.Clumped))
	}

	g.grid.RaiseTerrain(g.rng, g.cfg.TerrainPeaks, g.cfg.TerrainAmplitude)

	res := Result{
		Grid:        g.grid,
		Lanes:       cloneLanes(g.lanes),
		SpawnPoints: append([]EdgeSpawnPoint(nil), g.spawns...),
		Seed:        original,
		AttemptSeed: kept,
		Attempts:    used,
		Requested:   g.cfg.NumberOfLanes,
		Valid:       report.Valid(),
		Report:      report,
		Warnings:    warnings,
	}
	if g.cfg.EnableValidation && !res.Valid {
		res.Err = fmt.Errorf("%w after %d attempts (seed %d)", ErrValidationFailed, used, original)
		g.logger.Warn("keeping imperfect map", "seed", original, "attempts", used, "err", res.Err)
	}
	g.logger.Info("map generated",
		"seed", original, "attempt_seed", kept, "attempts", used,
		"lanes", len(res.Lanes), "requested", res.Requested, "valid", res.Valid)
	return res
}

// build runs one generation pass on a cleared grid with the current rng.
func (g *Generator) build() {
	g.grid.Clear()
	g.warnings = nil
	g.spawns = nil

	g.lanes = g.growLanes(g.selectStarts())
	g.classify()
}

// ValidateAndRepair validates the current map and, when it is invalid, runs
// the repair pipeline once and validates again.
func (g *Generator) ValidateAndRepair() Report {
	report := g.Validate()
	if report.Valid() {
		return report
	}
	outcome := g.Repair(report)
	after := g.Validate()
	g.logger.Debug("repair finished",
		"completed", outcome.Completed, "unclumped", outcome.Unclumped,
		"ok", outcome.OK, "valid", after.Valid())
	return after
}

func (g *Generator) warn(err error, msg string, keyvals ...interface{}) {
	g.warnings = append(g.warnings, err)
	g.logger.Warn(msg, keyvals...)
}

func cloneLanes(in []Lane) []Lane {
	out := make([]Lane, len(in))
	for i, l := range in {
		out[i] = l.Clone()
	}
	return out
}
