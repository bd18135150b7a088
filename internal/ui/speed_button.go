// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpeedButton cycles the session speed multiplier.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	Multipliers    []float64
	StateColors    []color.RGBA
	CurrentState   int
}

func NewSpeedButton(x, y, size float32) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		Multipliers: []float64{1, 2, 4},
		StateColors: []color.RGBA{
			{100, 149, 237, 255},
			{255, 165, 0, 255},
			{220, 60, 60, 255},
		},
	}
}

// Multiplier returns the current speed.
func (b *SpeedButton) Multiplier() float64 { return b.Multipliers[b.CurrentState] }

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	size := b.Size * float32(scale)
	c := b.StateColors[b.CurrentState]

	// Два треугольника «перемотки»
	height := size * 1.2
	width := size
	offset := width * 0.8
	drawTriangle(screen, b.X-width, b.Y-height/2, b.X, b.Y, b.X-width, b.Y+height/2, c)
	drawTriangle(screen, b.X-width+offset, b.Y-height/2, b.X+offset, b.Y, b.X-width+offset, b.Y+height/2, c)
}

// Форма сложная, поэтому попадание проверяем по кругу
func (b *SpeedButton) IsClicked(x, y int) bool {
	return insideCircle(x, y, b.X, b.Y, b.Size*1.5)
}

func (b *SpeedButton) ToggleState() {
	b.CurrentState = (b.CurrentState + 1) % len(b.Multipliers)
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}

func drawTriangle(screen *ebiten.Image, x1, y1, x2, y2, x3, y3 float32, c color.RGBA) {
	var path vector.Path
	path.MoveTo(x1, y1)
	path.LineTo(x2, y2)
	path.LineTo(x3, y3)
	path.Close()
	fillPath(screen, &path, c)
	strokePath(screen, &path, color.RGBA{255, 255, 255, 255})
}
