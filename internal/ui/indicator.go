// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/wave"
)

// StateIndicator — кружок, окрашенный по состоянию директора волн
type StateIndicator struct {
	X, Y          float32
	Radius        float32
	LastClickTime time.Time
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{X: x, Y: y, Radius: radius}
}

// StateColor maps a director state to the indicator color.
func StateColor(s wave.State) color.RGBA {
	switch s {
	case wave.Countdown:
		return config.CountdownStateColor
	case wave.Spawning:
		return config.SpawningStateColor
	case wave.AwaitingClear:
		return config.AwaitingStateColor
	}
	return config.IdleStateColor
}

// Draw отрисовывает индикатор с коротким «пульсом» после клика
func (i *StateIndicator) Draw(screen *ebiten.Image, s wave.State) {
	elapsed := time.Since(i.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	r := i.Radius * float32(scale)

	vector.DrawFilledCircle(screen, i.X, i.Y, r, StateColor(s), true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1.5, color.White, true)
}

// IsClicked проверяет, был ли клик внутри индикатора
func (i *StateIndicator) IsClicked(x, y int) bool {
	return insideCircle(x, y, i.X, i.Y, i.Radius)
}

// HandleClick запускает анимацию
func (i *StateIndicator) HandleClick() {
	i.LastClickTime = time.Now()
}

func insideCircle(x, y int, cx, cy, r float32) bool {
	dx, dy := float32(x)-cx, float32(y)-cy
	return dx*dx+dy*dy <= r*r
}
