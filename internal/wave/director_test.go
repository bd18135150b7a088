package wave

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/event"
	"go-hex-lanes/internal/utils"
	"go-hex-lanes/pkg/hexmap"
)

type recordingSpawner struct {
	orders []SpawnOrder
}

func (s *recordingSpawner) Spawn(o SpawnOrder) { s.orders = append(s.orders, o) }

type eventLog struct {
	events []event.Event
}

func (l *eventLog) OnEvent(e event.Event) { l.events = append(l.events, e) }

func (l *eventLog) count(t event.EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func testSettings() config.WaveSettings {
	s := config.DefaultWaves()
	s.BaseThreat = 100
	s.ThreatExponent = 1
	s.InitialDelay = 1
	s.TimeBetweenWaves = 2
	s.NewEnemyIntroductionInterval = 0
	s.SwarmFocusChance, s.EliteFocusChance = 0, 0
	s.MaxEnemyTypesPerWave = 3
	s.StaggerMin, s.StaggerMax = 0, 0
	return s
}

func testRoutes(n int) [][]hexmap.Hex {
	routes := make([][]hexmap.Hex, n)
	for i := range routes {
		routes[i] = []hexmap.Hex{{Q: 4, R: -i}, {Q: 3, R: -i}, {Q: 0, R: 0}}
	}
	return routes
}

type fixture struct {
	d       *Director
	events  *event.Dispatcher
	log     *eventLog
	spawner *recordingSpawner
}

func newFixture(s config.WaveSettings, routes int) *fixture {
	f := &fixture{
		events:  event.NewDispatcher(),
		log:     &eventLog{},
		spawner: &recordingSpawner{},
	}
	for _, t := range []event.EventType{event.WaveStarted, event.WaveCleared, event.SpawnSkipped, event.EnemySpawned} {
		f.events.Subscribe(t, f.log)
	}
	f.d = NewDirector(s, costRoster(10, 20, 50), utils.NewPRNGService(21), f.events, log.New(io.Discard))
	f.d.SetSpawner(f.spawner)
	f.d.SetRoutes(testRoutes(routes))
	return f
}

func (f *fixture) killAll() {
	for _, o := range f.spawner.orders {
		f.events.Dispatch(event.Event{Type: event.EnemyDestroyed, Data: o.Ref()})
	}
}

func TestDirectorRunsWaves(t *testing.T) {
	f := newFixture(testSettings(), 2)
	d := f.d

	d.Tick(5)
	if d.State() != Idle {
		t.Fatalf("ticking before Start changed state to %v", d.State())
	}

	d.Start()
	if d.State() != Countdown || d.Countdown() != 1 {
		t.Fatalf("after Start: %v %v", d.State(), d.Countdown())
	}
	d.Tick(0.5)
	if d.State() != Countdown || d.Wave() != 0 {
		t.Fatalf("wave started early")
	}
	d.Tick(0.5)
	if d.Wave() != 1 {
		t.Fatalf("wave = %d, want 1", d.Wave())
	}
	if d.State() != AwaitingClear {
		t.Fatalf("state = %v, want awaiting clear with zero stagger", d.State())
	}
	if len(f.spawner.orders) == 0 || len(f.spawner.orders) != d.ActiveCount() {
		t.Fatalf("orders = %d, active = %d", len(f.spawner.orders), d.ActiveCount())
	}
	if f.log.count(event.WaveStarted) != 1 || f.log.count(event.EnemySpawned) != len(f.spawner.orders) {
		t.Errorf("events = %+v", f.log.events)
	}
	for _, o := range f.spawner.orders {
		if o.Path[0] != (hexmap.Hex{Q: 4, R: -o.Lane}) {
			t.Errorf("order path does not start at the lane spawn: %v", o.Path)
		}
	}

	d.Tick(1)
	if d.State() != AwaitingClear {
		t.Fatalf("cleared with live enemies")
	}
	f.killAll()
	if d.ActiveCount() != 0 {
		t.Fatalf("active = %d after killing everything", d.ActiveCount())
	}
	d.Tick(0.1)
	if d.State() != Countdown || f.log.count(event.WaveCleared) != 1 {
		t.Fatalf("state %v, cleared events %d", d.State(), f.log.count(event.WaveCleared))
	}
	d.Tick(2)
	if d.Wave() != 2 {
		t.Fatalf("wave = %d, want 2", d.Wave())
	}
}

func TestDirectorLaneSpendBound(t *testing.T) {
	f := newFixture(testSettings(), 3)
	d := f.d
	d.Start()

	for w := 1; w <= 8; w++ {
		d.Tick(10)
		if d.Wave() != w {
			t.Fatalf("wave = %d, want %d", d.Wave(), w)
		}
		share := d.Current().Budget / 3
		spent := map[int]int{}
		for _, o := range f.spawner.orders {
			spent[o.Lane] += o.Enemy.Cost
		}
		for lane, c := range spent {
			if float64(c) > share {
				t.Fatalf("wave %d lane %d spent %d > share %.1f", w, lane, c, share)
			}
		}
		f.killAll()
		f.spawner.orders = nil
		d.Tick(0)
	}
}

func TestDirectorIgnoresStaleNotifications(t *testing.T) {
	f := newFixture(testSettings(), 1)
	d := f.d
	d.Start()
	d.Tick(1)

	if len(f.spawner.orders) < 2 {
		t.Fatalf("need at least two spawns, got %d", len(f.spawner.orders))
	}
	first := f.spawner.orders[0].Ref()
	before := d.ActiveCount()

	if err := d.EnemyDestroyed(first); err != nil {
		t.Fatalf("first notification: %v", err)
	}
	if err := d.EnemyDestroyed(first); !errors.Is(err, ErrStaleNotification) {
		t.Errorf("duplicate notification: %v", err)
	}
	old := f.spawner.orders[1].Ref()
	old.Wave = 7
	if err := d.EnemyDestroyed(old); !errors.Is(err, ErrStaleNotification) {
		t.Errorf("wrong wave notification: %v", err)
	}
	if err := d.EnemyDestroyed(event.EnemyRef{SpawnID: 999, Wave: 1}); !errors.Is(err, ErrStaleNotification) {
		t.Errorf("unknown id notification: %v", err)
	}
	if d.ActiveCount() != before-1 {
		t.Errorf("active = %d, want %d", d.ActiveCount(), before-1)
	}
}

func TestDirectorSkipsWithoutLanes(t *testing.T) {
	f := newFixture(testSettings(), 0)
	d := f.d
	d.Start()
	d.Tick(1)

	if d.Wave() != 1 || d.State() != Countdown {
		t.Fatalf("wave %d state %v", d.Wave(), d.State())
	}
	if f.log.count(event.SpawnSkipped) != 1 || len(f.spawner.orders) != 0 {
		t.Errorf("skipped = %d, orders = %d", f.log.count(event.SpawnSkipped), len(f.spawner.orders))
	}
	d.Tick(2)
	if d.Wave() != 2 {
		t.Errorf("loop did not advance after a skipped wave")
	}
}

func TestDirectorSkipsWithoutRoster(t *testing.T) {
	d := NewDirector(testSettings(), nil, utils.NewPRNGService(1), nil, log.New(io.Discard))
	d.SetRoutes(testRoutes(2))
	d.Start()
	d.Tick(1)
	if d.Wave() != 1 || d.State() != Countdown || d.ActiveCount() != 0 {
		t.Errorf("wave %d state %v active %d", d.Wave(), d.State(), d.ActiveCount())
	}
}

func TestDirectorStagger(t *testing.T) {
	s := testSettings()
	s.StaggerMin, s.StaggerMax = 0.5, 0.5
	f := newFixture(s, 1)
	d := f.d
	d.Start()
	d.Tick(1)

	planned := d.Current().Planned
	if planned < 2 {
		t.Fatalf("planned = %d", planned)
	}
	if len(f.spawner.orders) != 1 || d.State() != Spawning {
		t.Fatalf("first tick spawned %d, state %v", len(f.spawner.orders), d.State())
	}
	d.Tick(0.25)
	if len(f.spawner.orders) != 1 {
		t.Fatalf("spawned before the stagger elapsed")
	}
	d.Tick(0.25)
	if len(f.spawner.orders) != 2 {
		t.Fatalf("spawned %d, want 2", len(f.spawner.orders))
	}
	d.Tick(100)
	if len(f.spawner.orders) != planned || d.State() != AwaitingClear {
		t.Fatalf("spawned %d of %d, state %v", len(f.spawner.orders), planned, d.State())
	}
}

func TestEnvironmentGeneratedResetsDirector(t *testing.T) {
	f := newFixture(testSettings(), 2)
	d := f.d
	d.Start()
	d.Tick(1)
	stale := f.spawner.orders[0].Ref()

	f.events.Dispatch(event.Event{Type: event.EnvironmentGenerated, Data: event.MapInfo{Seed: 1}})
	if d.State() != Idle || d.Wave() != 0 || d.ActiveCount() != 0 {
		t.Fatalf("not reset: %v wave %d active %d", d.State(), d.Wave(), d.ActiveCount())
	}
	if !d.SetRoutes(testRoutes(1)) {
		t.Fatal("routes rejected after reset")
	}
	d.Start()
	d.Tick(1)
	active := d.ActiveCount()
	if err := d.EnemyDestroyed(stale); !errors.Is(err, ErrStaleNotification) {
		t.Errorf("notification from the old map matched: %v", err)
	}
	if d.ActiveCount() != active {
		t.Errorf("old notification changed the count")
	}
}

func TestSetRoutesRejectedWhileRunning(t *testing.T) {
	f := newFixture(testSettings(), 2)
	f.d.Start()
	if f.d.SetRoutes(testRoutes(1)) {
		t.Error("routes accepted while running")
	}
}

func TestDirectorDeterministic(t *testing.T) {
	run := func() []SpawnOrder {
		f := newFixture(testSettings(), 2)
		f.d.Start()
		var all []SpawnOrder
		for i := 0; i < 5; i++ {
			f.d.Tick(10)
			all = append(all, f.spawner.orders...)
			f.killAll()
			f.spawner.orders = nil
			f.d.Tick(0)
		}
		return all
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Lane != b[i].Lane || a[i].Enemy.ID != b[i].Enemy.ID {
			t.Fatalf("order %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPerformanceHook(t *testing.T) {
	d := NewDirector(testSettings(), costRoster(10), utils.NewPRNGService(1), nil, log.New(io.Discard))
	d.SetPerformanceFunc(func(wave int, s config.WaveSettings) float64 {
		return s.HubHealthModifier * 100
	})
	if got := d.ThreatBudget(2); got != 200*1.5 {
		t.Errorf("budget = %v, want clamped %v", got, 200*1.5)
	}
	d.SetPerformanceFunc(nil)
	if got := d.ThreatBudget(2); got != 200 {
		t.Errorf("budget = %v, want 200", got)
	}
}
