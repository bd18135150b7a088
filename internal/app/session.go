// Package app wires the generator, the wave director and the event bus into
// one session a host can drive frame by frame.
package app

import (
	"fmt"

	"github.com/charmbracelet/log"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/defs"
	"go-hex-lanes/internal/event"
	"go-hex-lanes/internal/lanes"
	"go-hex-lanes/internal/utils"
	"go-hex-lanes/internal/wave"
	"go-hex-lanes/pkg/hexmap"
)

// Session holds the whole state of one map and its wave loop.
type Session struct {
	Config          config.Config
	Roster          defs.Roster
	Rng             *utils.PRNGService
	EventDispatcher *event.Dispatcher
	Generator       *lanes.Generator
	Director        *wave.Director
	SpeedMultiplier float64

	logger       *log.Logger
	result       lanes.Result
	gameTime     float64
	isPaused     bool
	wavesCleared int
}

// Snapshot is a read-only summary for status lines and tests.
type Snapshot struct {
	Seed         int64
	Lanes        int
	Requested    int
	Valid        bool
	Wave         int
	State        wave.State
	Active       int
	Countdown    float64
	WavesCleared int
	GameTime     float64
}

// NewSession validates cfg and builds an idle session. A nil roster falls
// back to the embedded one. No map exists until Regenerate is called.
func NewSession(cfg config.Config, roster defs.Roster, logger *log.Logger) (*Session, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	if roster == nil {
		roster = defs.DefaultRoster()
	}
	if logger == nil {
		logger = log.Default()
	}

	rng := utils.NewPRNGService(cfg.Generator.Seed)
	dispatcher := event.NewDispatcher()
	s := &Session{
		Config:          cfg,
		Roster:          roster,
		Rng:             rng,
		EventDispatcher: dispatcher,
		Generator:       lanes.NewGenerator(cfg.Generator, rng, logger.WithPrefix("lanes")),
		Director:        wave.NewDirector(cfg.Waves, roster, rng, dispatcher, logger.WithPrefix("waves")),
		SpeedMultiplier: 1,
		logger:          logger,
	}
	dispatcher.Subscribe(event.WaveCleared, &sessionListener{session: s})
	return s, nil
}

// Regenerate halts the wave loop, builds a new map with seed (0 picks one)
// and hands the new lanes to the director. The loop stays idle until Start.
func (s *Session) Regenerate(seed int64) lanes.Result {
	s.Director.Stop()
	s.wavesCleared = 0
	s.gameTime = 0

	s.Generator.SetSeed(seed)
	res := s.Generator.Generate()
	s.result = res

	info := event.MapInfo{Seed: res.Seed, Lanes: len(res.Lanes), Attempts: res.Attempts, Valid: res.Valid}
	if res.Err != nil {
		s.logger.Warn("map kept after failed validation", "seed", res.Seed, "err", res.Err)
		s.EventDispatcher.Dispatch(event.Event{Type: event.ValidationFailed, Data: info})
	}
	s.EventDispatcher.Dispatch(event.Event{Type: event.EnvironmentGenerated, Data: info})
	s.Director.SetRoutes(s.Routes())
	return res
}

// Routes returns one path per lane, starting at its edge spawn point.
func (s *Session) Routes() [][]hexmap.Hex {
	routes := make([][]hexmap.Hex, len(s.result.Lanes))
	for i, l := range s.result.Lanes {
		routes[i] = append([]hexmap.Hex(nil), l...)
	}
	for _, sp := range s.result.SpawnPoints {
		if sp.Lane >= 0 && sp.Lane < len(routes) {
			routes[sp.Lane] = append([]hexmap.Hex{sp.Coord}, routes[sp.Lane]...)
		}
	}
	return routes
}

// Result returns the last generation result.
func (s *Session) Result() lanes.Result { return s.result }

// Grid returns the current map, nil before the first Regenerate.
func (s *Session) Grid() *hexmap.Grid { return s.result.Grid }

// Start begins the wave loop.
func (s *Session) Start() {
	s.Director.Start()
}

// SetPaused freezes or resumes Update.
func (s *Session) SetPaused(p bool) { s.isPaused = p }

// IsPaused reports whether Update is frozen.
func (s *Session) IsPaused() bool { return s.isPaused }

// Update advances the session by one frame. dt is clamped to MaxDeltaTime
// before the speed multiplier applies.
func (s *Session) Update(dt float64) {
	if s.isPaused {
		return
	}
	if dt > config.MaxDeltaTime {
		dt = config.MaxDeltaTime
	}
	if dt < 0 {
		dt = 0
	}
	dt *= s.SpeedMultiplier
	s.gameTime += dt
	s.Director.Tick(dt)
}

// EnemyDestroyed forwards a kill reported by the host.
func (s *Session) EnemyDestroyed(ref event.EnemyRef) {
	s.EventDispatcher.Dispatch(event.Event{Type: event.EnemyDestroyed, Data: ref})
}

// Snapshot returns the current status.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Seed:         s.result.Seed,
		Lanes:        len(s.result.Lanes),
		Requested:    s.result.Requested,
		Valid:        s.result.Valid,
		Wave:         s.Director.Wave(),
		State:        s.Director.State(),
		Active:       s.Director.ActiveCount(),
		Countdown:    s.Director.Countdown(),
		WavesCleared: s.wavesCleared,
		GameTime:     s.gameTime,
	}
}

type sessionListener struct {
	session *Session
}

func (l *sessionListener) OnEvent(e event.Event) {
	if e.Type == event.WaveCleared {
		l.session.wavesCleared++
	}
}
