// Package wave runs the endless threat-budget wave loop over generated lanes.
package wave

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/defs"
	"go-hex-lanes/internal/event"
	"go-hex-lanes/internal/utils"
	"go-hex-lanes/pkg/hexmap"
)

var (
	// ErrSpawnSkipped means a wave had no lanes or no enemies to spend on.
	ErrSpawnSkipped = errors.New("wave spawn skipped")
	// ErrStaleNotification means an enemy-destroyed notification did not
	// match a live enemy of the current wave.
	ErrStaleNotification = errors.New("stale enemy notification")
)

// State of the wave loop.
type State int

const (
	Idle State = iota
	Countdown
	Spawning
	AwaitingClear
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Countdown:
		return "countdown"
	case Spawning:
		return "spawning"
	case AwaitingClear:
		return "awaiting_clear"
	}
	return "unknown"
}

// SpawnOrder asks the host to create one enemy. Path starts at the lane's
// edge spawn point and ends on the hub.
type SpawnOrder struct {
	ID    uint64
	Wave  int
	Lane  int
	Enemy defs.EnemyDefinition
	Path  []hexmap.Hex
}

// Ref returns the identity the host reports back when the enemy dies.
func (o SpawnOrder) Ref() event.EnemyRef {
	return event.EnemyRef{SpawnID: o.ID, Wave: o.Wave, Lane: o.Lane}
}

// Spawner creates enemies in the host.
type Spawner interface {
	Spawn(order SpawnOrder)
}

// Director is the wave state machine. It is advanced by Tick and never
// blocks; all randomness comes from the injected generator.
type Director struct {
	settings    config.WaveSettings
	roster      defs.Roster
	rng         *utils.PRNGService
	events      *event.Dispatcher
	logger      *log.Logger
	spawner     Spawner
	performance PerformanceFunc

	state   State
	wave    int
	timer   float64
	routes  [][]hexmap.Hex
	queues  []*laneQueue
	active  map[uint64]struct{}
	nextID  uint64
	current event.WaveInfo
}

// NewDirector creates an idle director. events may be nil; when set, the
// director listens for EnemyDestroyed and EnvironmentGenerated and publishes
// its own wave events on it.
func NewDirector(settings config.WaveSettings, roster defs.Roster, rng *utils.PRNGService, events *event.Dispatcher, logger *log.Logger) *Director {
	if rng == nil {
		rng = utils.NewPRNGService(0)
	}
	if logger == nil {
		logger = log.Default()
	}
	d := &Director{
		settings:    settings,
		roster:      defs.NewRoster(roster),
		rng:         rng,
		events:      events,
		logger:      logger,
		performance: NeutralPerformance,
		active:      make(map[uint64]struct{}),
	}
	if events != nil {
		events.Subscribe(event.EnemyDestroyed, d)
		events.Subscribe(event.EnvironmentGenerated, d)
	}
	return d
}

// SetSpawner sets the host callback for spawns. nil drops spawn orders; the
// EnemySpawned event is still published.
func (d *Director) SetSpawner(s Spawner) { d.spawner = s }

// SetPerformanceFunc replaces the difficulty hook. nil restores the neutral one.
func (d *Director) SetPerformanceFunc(f PerformanceFunc) {
	if f == nil {
		f = NeutralPerformance
	}
	d.performance = f
}

// SetRoutes hands the director the finished lanes, each prefixed with its
// spawn point. Routes are only accepted while idle.
func (d *Director) SetRoutes(routes [][]hexmap.Hex) bool {
	if d.state != Idle {
		d.logger.Warn("routes rejected while the wave loop runs", "state", d.state)
		return false
	}
	d.routes = make([][]hexmap.Hex, len(routes))
	for i, r := range routes {
		d.routes[i] = append([]hexmap.Hex(nil), r...)
	}
	return true
}

// State returns the current state.
func (d *Director) State() State { return d.state }

// Wave returns the number of the current or last started wave.
func (d *Director) Wave() int { return d.wave }

// ActiveCount returns the number of live enemies of the current wave.
func (d *Director) ActiveCount() int { return len(d.active) }

// Current returns the summary of the current or last started wave.
func (d *Director) Current() event.WaveInfo { return d.current }

// Countdown returns the seconds left before the next wave starts.
func (d *Director) Countdown() float64 {
	if d.state != Countdown {
		return 0
	}
	return d.timer
}

// ThreatBudget returns the budget the given wave would get now.
func (d *Director) ThreatBudget(wave int) float64 {
	return ThreatBudget(d.settings, wave, d.performance(wave, d.settings))
}

// Start begins the countdown to the first wave. It is a no-op unless idle.
func (d *Director) Start() {
	if d.state != Idle {
		return
	}
	d.state = Countdown
	d.timer = d.settings.InitialDelay
	d.logger.Info("wave loop started", "lanes", len(d.routes), "initial_delay", d.timer)
}

// Stop halts the loop and clears every counter. Spawn IDs keep increasing so
// notifications for enemies of a stopped run can never match a new one.
func (d *Director) Stop() {
	if d.state != Idle {
		d.logger.Info("wave loop stopped", "wave", d.wave, "active", len(d.active))
	}
	d.state = Idle
	d.wave = 0
	d.timer = 0
	d.queues = nil
	d.active = make(map[uint64]struct{})
	d.current = event.WaveInfo{}
}

// Tick advances the loop by dt seconds.
func (d *Director) Tick(dt float64) {
	switch d.state {
	case Idle:
		return
	case Countdown:
		d.timer -= dt
		if d.timer > 0 {
			return
		}
		d.startWave()
		if d.state == Spawning {
			d.advanceSpawns(0)
		}
	case Spawning:
		d.advanceSpawns(dt)
	case AwaitingClear:
		if len(d.active) == 0 {
			d.clearWave()
		}
	}
}

func (d *Director) startWave() {
	d.wave++
	n := d.wave
	budget := d.ThreatBudget(n)
	pool, focus := buildPool(d.rng, d.roster, d.settings, n)

	info := event.WaveInfo{Number: n, Budget: budget, Focus: focus.String()}
	for _, p := range pool {
		info.Pool = append(info.Pool, p.ID)
	}

	var reason error
	switch {
	case len(d.routes) == 0:
		reason = fmt.Errorf("%w: no lanes", ErrSpawnSkipped)
	case len(pool) == 0:
		reason = fmt.Errorf("%w: no eligible enemies", ErrSpawnSkipped)
	}
	if reason != nil {
		d.current = info
		d.logger.Warn("wave spawn skipped", "wave", n, "reason", reason)
		d.dispatch(event.SpawnSkipped, info)
		d.state = Countdown
		d.timer = d.settings.TimeBetweenWaves
		return
	}

	share := budget / float64(len(d.routes))
	d.queues = make([]*laneQueue, len(d.routes))
	for lane := range d.routes {
		picks, spent := spendLane(d.rng, pool, share)
		d.queues[lane] = planLane(d.rng, lane, picks, spent, d.settings.StaggerMin, d.settings.StaggerMax)
		info.Planned += len(picks)
	}
	d.current = info
	d.state = Spawning

	d.logger.Info("wave started",
		"wave", n, "budget", fmt.Sprintf("%.1f", budget), "focus", info.Focus,
		"pool", info.Pool, "planned", info.Planned)
	d.dispatch(event.WaveStarted, info)
}

// advanceSpawns releases every queued spawn whose stagger has elapsed.
func (d *Director) advanceSpawns(dt float64) {
	done := true
	for _, q := range d.queues {
		if q.done() {
			continue
		}
		q.wait -= dt
		for !q.done() && q.wait <= 0 {
			d.spawn(q.lane, q.items[q.next].enemy)
			q.next++
			if !q.done() {
				q.wait += q.items[q.next].delay
			}
		}
		if !q.done() {
			done = false
		}
	}
	if done {
		d.state = AwaitingClear
	}
}

func (d *Director) spawn(lane int, enemy defs.EnemyDefinition) {
	d.nextID++
	order := SpawnOrder{
		ID:    d.nextID,
		Wave:  d.wave,
		Lane:  lane,
		Enemy: enemy,
		Path:  d.routes[lane],
	}
	d.active[order.ID] = struct{}{}
	if d.spawner != nil {
		d.spawner.Spawn(order)
	}
	d.logger.Debug("enemy spawned", "id", order.ID, "wave", order.Wave, "lane", lane, "enemy", enemy.ID)
	d.dispatch(event.EnemySpawned, order.Ref())
}

func (d *Director) clearWave() {
	d.logger.Info("wave cleared", "wave", d.wave, "next_in", d.settings.TimeBetweenWaves)
	d.queues = nil
	d.state = Countdown
	d.timer = d.settings.TimeBetweenWaves
	d.dispatch(event.WaveCleared, d.current)
}

// EnemyDestroyed removes a live enemy of the current wave. Anything else,
// including a second notification for the same enemy, returns
// ErrStaleNotification and changes nothing.
func (d *Director) EnemyDestroyed(ref event.EnemyRef) error {
	if ref.Wave != d.wave {
		return fmt.Errorf("%w: enemy %d belongs to wave %d, current is %d", ErrStaleNotification, ref.SpawnID, ref.Wave, d.wave)
	}
	if _, ok := d.active[ref.SpawnID]; !ok {
		return fmt.Errorf("%w: enemy %d is not alive", ErrStaleNotification, ref.SpawnID)
	}
	delete(d.active, ref.SpawnID)
	return nil
}

// OnEvent implements event.Listener.
func (d *Director) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyDestroyed:
		ref, ok := e.Data.(event.EnemyRef)
		if !ok {
			d.logger.Warn("enemy destroyed event without reference", "data", e.Data)
			return
		}
		if err := d.EnemyDestroyed(ref); err != nil {
			d.logger.Debug("ignoring notification", "err", err)
		}
	case event.EnvironmentGenerated:
		// старые маршруты больше не действительны
		d.Stop()
		d.routes = nil
	}
}

func (d *Director) dispatch(t event.EventType, data interface{}) {
	if d.events != nil {
		d.events.Dispatch(event.Event{Type: t, Data: data})
	}
}
