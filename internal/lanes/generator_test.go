package lanes

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/utils"
	"go-hex-lanes/pkg/hexmap"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func testConfig(radius, lanes int, seed int64) config.GeneratorConfig {
	cfg := config.DefaultGenerator()
	cfg.GridRadius = radius
	cfg.NumberOfLanes = lanes
	cfg.Seed = seed
	return cfg
}

func newTestGenerator(cfg config.GeneratorConfig) *Generator {
	return NewGenerator(cfg, utils.NewPRNGService(cfg.Seed), quietLogger())
}

func checkLanesReachHub(t *testing.T, grid *hexmap.Grid, ls []Lane) {
	t.Helper()
	for i, l := range ls {
		if len(l) == 0 {
			t.Fatalf("lane %d is empty", i)
		}
		if !grid.IsHub(l.End()) {
			t.Errorf("lane %d ends at %v, not a hub tile", i, l.End())
		}
		if !l.Contiguous() {
			t.Errorf("lane %d is not contiguous: %v", i, l)
		}
	}
}

func checkAccessible(t *testing.T, grid *hexmap.Grid) {
	t.Helper()
	for _, h := range grid.Coords() {
		if k, _ := grid.KindAt(h); k == hexmap.Pathway && !grid.HasBuildableNeighbor(h) {
			t.Errorf("pathway %v has no buildable neighbor", h)
		}
	}
}

func TestGenerateSmallMap(t *testing.T) {
	cfg := testConfig(5, 3, 42)
	res := newTestGenerator(cfg).Generate()

	if len(res.Lanes) != 3 {
		t.Fatalf("expected 3 lanes, got %d", len(res.Lanes))
	}
	if res.Seed != 42 {
		t.Errorf("seed = %d, want 42", res.Seed)
	}
	checkLanesReachHub(t, res.Grid, res.Lanes)
	if len(res.SpawnPoints) != len(res.Lanes) {
		t.Errorf("expected one spawn point per lane, got %d", len(res.SpawnPoints))
	}
	for _, sp := range res.SpawnPoints {
		if !sp.Coord.IsAdjacent(res.Lanes[sp.Lane].Start()) {
			t.Errorf("spawn %v is not next to lane %d start", sp.Coord, sp.Lane)
		}
		if sp.Coord.Distance(hexmap.Origin) <= cfg.GridRadius {
			t.Errorf("spawn %v is inside the grid radius", sp.Coord)
		}
		if k, _ := res.Grid.KindAt(sp.Coord); k != hexmap.EdgeSpawn {
			t.Errorf("spawn tile kind = %v", k)
		}
	}
	if res.Valid {
		checkAccessible(t, res.Grid)
		if res.Err != nil {
			t.Errorf("valid map carries error %v", res.Err)
		}
	} else if !errors.Is(res.Err, ErrValidationFailed) {
		t.Errorf("invalid map must wrap ErrValidationFailed, got %v", res.Err)
	}
	if got := Validate(res.Grid, res.Lanes, cfg.MinDistanceBetweenStarts).Valid(); got != res.Valid {
		t.Errorf("Validate = %v, Result.Valid = %v", got, res.Valid)
	}
}

func TestGenerateInvariantsAcrossSeeds(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		for _, hub := range []int{1, 7} {
			cfg := testConfig(6, 4, seed)
			cfg.HubSize = hub
			res := newTestGenerator(cfg).Generate()

			checkLanesReachHub(t, res.Grid, res.Lanes)
			if !res.Valid || res.Err != nil {
				t.Fatalf("seed %d hub %d: map invalid after %d attempts: %v", seed, hub, res.Attempts, res.Err)
			}
			checkAccessible(t, res.Grid)
			for i := 0; i < len(res.Lanes); i++ {
				for j := i + 1; j < len(res.Lanes); j++ {
					if d := res.Lanes[i].Start().Distance(res.Lanes[j].Start()); d < cfg.MinDistanceBetweenStarts {
						t.Errorf("seed %d: starts of lanes %d and %d are %d apart", seed, i, j, d)
					}
				}
			}
			for _, l := range res.Lanes {
				if l.Start().Distance(hexmap.Origin) != cfg.GridRadius {
					t.Errorf("seed %d: lane starts off the outer ring at %v", seed, l.Start())
				}
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := testConfig(7, 4, 1234)
	cfg.Lanes = []config.LaneSettings{
		config.DefaultLane(),
		{Direction: -1, Curviness: 0.8, RandomnessFactor: 0.4, AllowMerging: true, MergeWithLane: 0, MergeAtDistance: 5, MergeProbability: 1},
	}
	a := newTestGenerator(cfg).Generate()
	b := newTestGenerator(cfg).Generate()

	ca, cb := a.Grid.Coords(), b.Grid.Coords()
	if len(ca) != len(cb) {
		t.Fatalf("tile counts differ: %d vs %d", len(ca), len(cb))
	}
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("tile order differs at %d: %v vs %v", i, ca[i], cb[i])
		}
		ta, _ := a.Grid.Tile(ca[i])
		tb, _ := b.Grid.Tile(cb[i])
		if *ta != *tb {
			t.Fatalf("tile %v differs: %+v vs %+v", ca[i], *ta, *tb)
		}
	}
	if len(a.Lanes) != len(b.Lanes) {
		t.Fatalf("lane counts differ")
	}
	for i := range a.Lanes {
		if len(a.Lanes[i]) != len(b.Lanes[i]) {
			t.Fatalf("lane %d length differs", i)
		}
		for j := range a.Lanes[i] {
			if a.Lanes[i][j] != b.Lanes[i][j] {
				t.Fatalf("lane %d differs at %d", i, j)
			}
		}
	}
	if a.AttemptSeed != b.AttemptSeed || a.Attempts != b.Attempts {
		t.Errorf("attempt bookkeeping differs")
	}
}

func TestZeroSeedIsRemembered(t *testing.T) {
	g := newTestGenerator(testConfig(4, 2, 0))
	res := g.Generate()
	if res.Seed == 0 {
		t.Fatal("expected a generated seed")
	}

	replay := newTestGenerator(testConfig(4, 2, res.Seed)).Generate()
	if len(replay.Lanes) != len(res.Lanes) {
		t.Fatalf("replay placed %d lanes, want %d", len(replay.Lanes), len(res.Lanes))
	}
	for i := range res.Lanes {
		if replay.Lanes[i].Start() != res.Lanes[i].Start() {
			t.Errorf("lane %d start differs on replay", i)
		}
	}
}

func TestInfeasibleSpacingPlacesFewerLanes(t *testing.T) {
	cfg := testConfig(3, 6, 7)
	cfg.MinDistanceBetweenStarts = 4
	cfg.MinAngleBetweenLanes = 0

	res := newTestGenerator(cfg).Generate()
	if len(res.Lanes) >= 6 {
		t.Fatalf("expected fewer than 6 lanes, got %d", len(res.Lanes))
	}
	if len(res.Lanes) == 0 {
		t.Fatal("expected at least one lane")
	}
	if res.Requested != 6 {
		t.Errorf("requested = %d", res.Requested)
	}
	degenerate := false
	for _, w := range res.Warnings {
		if errors.Is(w, ErrConfigurationDegenerate) {
			degenerate = true
		}
	}
	if !degenerate {
		t.Error("expected a ConfigurationDegenerate warning")
	}
	checkLanesReachHub(t, res.Grid, res.Lanes)
}

func TestValidationDisabledRunsOnce(t *testing.T) {
	cfg := testConfig(5, 3, 99)
	cfg.EnableValidation = false
	res := newTestGenerator(cfg).Generate()
	if res.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", res.Attempts)
	}
	if res.Err != nil {
		t.Errorf("unexpected error %v", res.Err)
	}
	checkLanesReachHub(t, res.Grid, res.Lanes)
}

func TestLengthCapStillReachesHub(t *testing.T) {
	cfg := testConfig(6, 2, 5)
	cfg.Lanes = []config.LaneSettings{
		{Direction: 0, Length: 1, MergeWithLane: -1},
		{Direction: 180, Length: 2, MergeWithLane: -1},
	}
	res := newTestGenerator(cfg).Generate()
	if len(res.Lanes) != 2 {
		t.Fatalf("expected 2 lanes, got %d", len(res.Lanes))
	}
	checkLanesReachHub(t, res.Grid, res.Lanes)
	for _, w := range res.Warnings {
		if errors.Is(w, ErrGenerationStalled) {
			t.Errorf("capped lanes reported as a stall: %v", w)
		}
	}
}

// unplayableConfig fills every outer tile of a radius-2 grid with a lane, so
// no pathway tile keeps a buildable neighbor whatever the seed.
func unplayableConfig(seed int64) config.GeneratorConfig {
	cfg := testConfig(2, 12, seed)
	cfg.MinAngleBetweenLanes = 0
	cfg.MinDistanceBetweenStarts = 0
	return cfg
}

func TestGenerateGivesUpAfterMaxAttempts(t *testing.T) {
	cfg := unplayableConfig(5)
	res := newTestGenerator(cfg).Generate()

	if res.Valid {
		t.Fatal("expected an invalid map")
	}
	if res.Attempts != cfg.MaxAttempts {
		t.Errorf("attempts = %d, want %d", res.Attempts, cfg.MaxAttempts)
	}
	if res.Seed != 5 || res.AttemptSeed != 5+int64(cfg.MaxAttempts-1) {
		t.Errorf("seed = %d, attempt seed = %d", res.Seed, res.AttemptSeed)
	}
	if !errors.Is(res.Err, ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", res.Err)
	}
	if len(res.Report.Clumped) == 0 {
		t.Error("report of the kept map lists no clumped tiles")
	}
	if len(res.Lanes) == 0 || res.Grid == nil {
		t.Fatal("no map kept after the last attempt")
	}
	checkLanesReachHub(t, res.Grid, res.Lanes)
}

func TestRetrySeedsThroughZeroStayDeterministic(t *testing.T) {
	// -3 + attempt hits 0 on the fourth attempt
	cfg := unplayableConfig(-3)
	a := newTestGenerator(cfg).Generate()
	b := newTestGenerator(cfg).Generate()

	if a.Attempts != cfg.MaxAttempts {
		t.Fatalf("attempts = %d, want %d", a.Attempts, cfg.MaxAttempts)
	}
	if want := int64(-3 + cfg.MaxAttempts - 1); a.AttemptSeed != want || b.AttemptSeed != want {
		t.Errorf("attempt seeds = %d, %d, want %d", a.AttemptSeed, b.AttemptSeed, want)
	}
	if len(a.Lanes) != len(b.Lanes) {
		t.Fatalf("lane counts differ: %d vs %d", len(a.Lanes), len(b.Lanes))
	}
	for i := range a.Lanes {
		if len(a.Lanes[i]) != len(b.Lanes[i]) {
			t.Fatalf("lane %d differs: %v vs %v", i, a.Lanes[i], b.Lanes[i])
		}
		for j := range a.Lanes[i] {
			if a.Lanes[i][j] != b.Lanes[i][j] {
				t.Fatalf("lane %d differs: %v vs %v", i, a.Lanes[i], b.Lanes[i])
			}
		}
	}
	for _, h := range a.Grid.Coords() {
		ta, _ := a.Grid.Tile(h)
		tb, _ := b.Grid.Tile(h)
		if ta.Height != tb.Height {
			t.Fatalf("height at %v differs: %v vs %v", h, ta.Height, tb.Height)
		}
	}
}

func TestMergingLanesStayComplete(t *testing.T) {
	cfg := testConfig(8, 3, 17)
	cfg.MinAngleBetweenLanes = 20
	cfg.Lanes = []config.LaneSettings{
		{Direction: 0, Curviness: 0.2, MergeWithLane: -1},
		{Direction: 40, Curviness: 0.2, AllowMerging: true, MergeWithLane: 0, MergeAtDistance: 8, MergeProbability: 1},
		{Direction: 200, Curviness: 0.2, AllowMerging: true, MergeWithLane: 9, MergeAtDistance: 8, MergeProbability: 1},
	}
	res := newTestGenerator(cfg).Generate()
	checkLanesReachHub(t, res.Grid, res.Lanes)
}

func validGenerator(t *testing.T, radius int) *Generator {
	t.Helper()
	for seed := int64(1); seed <= 50; seed++ {
		g := newTestGenerator(testConfig(radius, 3, seed))
		if res := g.Generate(); res.Valid {
			return g
		}
	}
	t.Fatal("no valid map in 50 seeds")
	return nil
}

func TestRepairIsNoOpOnValidMap(t *testing.T) {
	g := validGenerator(t, 5)
	before := g.grid.Clone()
	lanesBefore := g.Lanes()

	for i := 0; i < 2; i++ {
		out := g.Repair(g.Validate())
		if out.Mutations != 0 || !out.OK {
			t.Fatalf("pass %d: outcome %+v on a valid map", i, out)
		}
	}
	for _, h := range before.Coords() {
		a, _ := before.Tile(h)
		b, ok := g.grid.Tile(h)
		if !ok || *a != *b {
			t.Fatalf("tile %v changed", h)
		}
	}
	for i, l := range g.lanes {
		if len(l) != len(lanesBefore[i]) {
			t.Fatalf("lane %d changed", i)
		}
	}
}

func TestCorruptedNeighborIsRepaired(t *testing.T) {
	g := validGenerator(t, 5)

	var target hexmap.Hex
	found := false
	for _, h := range g.grid.Coords() {
		if k, _ := g.grid.KindAt(h); k == hexmap.Pathway {
			target, found = h, true
			break
		}
	}
	if !found {
		t.Fatal("no pathway tile")
	}
	var corrupted []hexmap.Hex
	for _, n := range g.grid.Neighbors(target) {
		tile, _ := g.grid.Tile(n)
		if tile.Kind.Buildable() {
			tile.Kind = hexmap.CenterHub
			corrupted = append(corrupted, n)
		}
	}
	if g.Validate().Valid() {
		t.Fatal("corruption did not break accessibility")
	}

	report := g.ValidateAndRepair()
	if !report.Valid() {
		t.Fatalf("repair left violations: %+v", report)
	}
	checkAccessible(t, g.grid)
	for _, h := range corrupted {
		if g.grid.IsHub(h) {
			t.Errorf("stray hub tile %v survived repair", h)
		}
	}
}

func TestRepairCompletesTruncatedLane(t *testing.T) {
	g := validGenerator(t, 6)
	g.lanes[0] = g.lanes[0][:2]
	g.classify()

	report := g.Validate()
	if len(report.Incomplete) != 1 || report.Incomplete[0] != 0 {
		t.Fatalf("incomplete = %v", report.Incomplete)
	}
	out := g.Repair(report)
	if out.Completed != 1 {
		t.Fatalf("completed = %d", out.Completed)
	}
	checkLanesReachHub(t, g.grid, g.lanes)
}

func TestRemovable(t *testing.T) {
	cfg := testConfig(3, 1, 1)
	cfg.HubSize = 1
	g := newTestGenerator(cfg)
	g.lanes = []Lane{{{Q: 3, R: 0}, {Q: 2, R: 0}, {Q: 2, R: -1}, {Q: 1, R: 0}, {Q: 0, R: 0}}}

	tests := []struct {
		h    hexmap.Hex
		want bool
	}{
		{hexmap.Hex{Q: 3, R: 0}, false},  // first tile
		{hexmap.Hex{Q: 0, R: 0}, false},  // last tile
		{hexmap.Hex{Q: 2, R: 0}, false},  // neighbors 2 apart
		{hexmap.Hex{Q: 2, R: -1}, true},  // detour
		{hexmap.Hex{Q: -1, R: 0}, false}, // not on a lane
	}
	for _, tt := range tests {
		if got := g.removable(tt.h); got != tt.want {
			t.Errorf("removable(%v) = %v, want %v", tt.h, got, tt.want)
		}
	}

	g.classify()
	if !g.unclump(hexmap.Hex{Q: 1, R: -1}) {
		t.Fatal("expected unclump to remove the detour tile")
	}
	if g.lanes[0].Contains(hexmap.Hex{Q: 2, R: -1}) || !g.lanes[0].Contiguous() {
		t.Errorf("lane after unclump: %v", g.lanes[0])
	}
}

func TestClassifyMarksJunctionsAndDefenders(t *testing.T) {
	cfg := testConfig(3, 2, 1)
	cfg.HubSize = 1
	g := newTestGenerator(cfg)
	g.lanes = []Lane{
		{{Q: 3, R: 0}, {Q: 2, R: 0}, {Q: 1, R: 0}, {Q: 0, R: 0}},
		{{Q: 3, R: -3}, {Q: 2, R: -2}, {Q: 2, R: -1}, {Q: 1, R: 0}, {Q: 0, R: 0}},
	}
	g.classify()

	junction, _ := g.grid.Tile(hexmap.Hex{Q: 1, R: 0})
	if junction.Kind != hexmap.Pathway || junction.LaneID != 0 || !junction.IsJunction {
		t.Errorf("shared tile = %+v", *junction)
	}
	own, _ := g.grid.Tile(hexmap.Hex{Q: 2, R: -2})
	if own.LaneID != 1 || own.IsJunction {
		t.Errorf("lane 1 tile = %+v", *own)
	}
	if k, _ := g.grid.KindAt(hexmap.Hex{Q: 0, R: 1}); k != hexmap.DefenderSpot {
		t.Errorf("tile beside lane = %v, want defender", k)
	}
	if k, _ := g.grid.KindAt(hexmap.Hex{Q: -3, R: 0}); k != hexmap.Environment {
		t.Errorf("far tile = %v, want environment", k)
	}
	if len(g.spawns) != 2 {
		t.Fatalf("spawns = %v", g.spawns)
	}
	if g.spawns[0].Coord != (hexmap.Hex{Q: 4, R: 0}) {
		t.Errorf("lane 0 spawn = %v, want (4,0)", g.spawns[0].Coord)
	}
}
