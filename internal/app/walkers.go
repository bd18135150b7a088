package app

import (
	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/event"
	"go-hex-lanes/internal/wave"
	"go-hex-lanes/pkg/hexmap"
)

const (
	baseWalkSpeed  = 3.0 // тайлов в секунду для врага стоимостью 0
	walkCostFactor = 50.0
)

// Walker is one spawned enemy moving along its route.
type Walker struct {
	Order wave.SpawnOrder
	Speed float64 // tiles per second
	Pos   float64 // index into Order.Path, fractional between tiles
}

// At returns the tile the walker left, the one it walks to and how far along it is.
func (w *Walker) At() (hexmap.Hex, hexmap.Hex, float64) {
	i := int(w.Pos)
	last := len(w.Order.Path) - 1
	if i >= last {
		return w.Order.Path[last], w.Order.Path[last], 0
	}
	return w.Order.Path[i], w.Order.Path[i+1], w.Pos - float64(i)
}

// Walkers is a minimal host: it moves every spawned enemy along its path and
// reports it destroyed once it reaches the hub. Expensive enemies walk slower.
type Walkers struct {
	session *Session
	walkers []*Walker
	arrived int
}

// NewWalkers creates the host and registers it as the director's spawner.
func NewWalkers(s *Session) *Walkers {
	w := &Walkers{session: s}
	s.Director.SetSpawner(w)
	s.EventDispatcher.Subscribe(event.EnvironmentGenerated, w)
	return w
}

// Spawn implements wave.Spawner.
func (ws *Walkers) Spawn(o wave.SpawnOrder) {
	if len(o.Path) == 0 {
		ws.session.EnemyDestroyed(o.Ref())
		return
	}
	ws.walkers = append(ws.walkers, &Walker{
		Order: o,
		Speed: baseWalkSpeed / (1 + float64(o.Enemy.Cost)/walkCostFactor),
	})
}

// Update advances all walkers by dt seconds, clamped and scaled like
// Session.Update. Paused sessions do not move.
func (ws *Walkers) Update(dt float64) {
	if ws.session.IsPaused() {
		return
	}
	if dt > config.MaxDeltaTime {
		dt = config.MaxDeltaTime
	}
	if dt < 0 {
		dt = 0
	}
	dt *= ws.session.SpeedMultiplier
	kept := ws.walkers[:0]
	var done []*Walker
	for _, w := range ws.walkers {
		w.Pos += w.Speed * dt
		if w.Pos >= float64(len(w.Order.Path)-1) {
			done = append(done, w)
			continue
		}
		kept = append(kept, w)
	}
	ws.walkers = kept
	for _, w := range done {
		ws.arrived++
		ws.session.EnemyDestroyed(w.Order.Ref())
	}
}

// Walkers returns the enemies still on the map.
func (ws *Walkers) Walkers() []*Walker { return ws.walkers }

// Arrived counts enemies that reached the hub.
func (ws *Walkers) Arrived() int { return ws.arrived }

// OnEvent drops every walker when the map is replaced.
func (ws *Walkers) OnEvent(e event.Event) {
	if e.Type == event.EnvironmentGenerated {
		ws.walkers = nil
	}
}
