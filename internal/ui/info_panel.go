// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-hex-lanes/internal/app"
	"go-hex-lanes/internal/config"
	"go-hex-lanes/pkg/hexmap"
)

const (
	panelHeight    = 150
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 18
	columnSpacing  = 330
)

// Button представляет кликабельную кнопку в UI.
type Button struct {
	Rect image.Rectangle
	Text string
}

// InfoPanel slides up from the bottom and shows the map, the wave loop and
// the tile under the cursor.
type InfoPanel struct {
	IsVisible  bool
	fontFace   font.Face
	currentY   float64
	targetY    float64
	CopyButton Button
	// OnCopySeed is called when the copy button is clicked.
	OnCopySeed func()

	tile    *hexmap.Tile
	hasTile bool
}

// NewInfoPanel creates a hidden panel.
func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace: face,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
	}
}

func (p *InfoPanel) Show() {
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Toggle shows a hidden panel and hides a shown one.
func (p *InfoPanel) Toggle() {
	if p.IsVisible && p.targetY < config.ScreenHeight {
		p.Hide()
		return
	}
	p.Show()
}

// SetTile selects the tile described in the panel; nil clears it.
func (p *InfoPanel) SetTile(t *hexmap.Tile) {
	p.tile = t
	p.hasTile = t != nil
}

// Contains reports whether the point is over the visible panel.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

func (p *InfoPanel) Update() {
	// Анимация панели
	if p.currentY != p.targetY {
		diff := p.targetY - p.currentY
		if math.Abs(diff) < animationSpeed {
			p.currentY = p.targetY
		} else if diff > 0 {
			p.currentY += animationSpeed
		} else {
			p.currentY -= animationSpeed
		}
		if p.currentY >= config.ScreenHeight {
			p.IsVisible = false
		}
	}

	if p.IsVisible && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if image.Pt(x, y).In(p.CopyButton.Rect) && p.OnCopySeed != nil {
			p.OnCopySeed()
		}
	}
}

func (p *InfoPanel) Draw(screen *ebiten.Image, snap app.Snapshot, arrived int) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}

	panelRect := image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)
	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	x, y := panelRect.Min.X+15, panelRect.Min.Y+25
	valid := "yes"
	if !snap.Valid {
		valid = "no"
	}
	p.drawLines(screen, x, y, []string{
		fmt.Sprintf("Seed: %d", snap.Seed),
		fmt.Sprintf("Lanes: %d of %d", snap.Lanes, snap.Requested),
		fmt.Sprintf("Valid: %s", valid),
		fmt.Sprintf("Game time: %.1fs", snap.GameTime),
	})
	p.drawLines(screen, x+columnSpacing, y, []string{
		fmt.Sprintf("Wave: %d (%s)", snap.Wave, snap.State),
		fmt.Sprintf("Next wave in: %.1fs", snap.Countdown),
		fmt.Sprintf("Active enemies: %d", snap.Active),
		fmt.Sprintf("Cleared: %d, reached hub: %d", snap.WavesCleared, arrived),
	})
	if p.hasTile {
		p.drawLines(screen, x+2*columnSpacing, y, tileLines(p.tile))
	}
	p.drawCopyButton(screen, panelRect)
}

func tileLines(t *hexmap.Tile) []string {
	lines := []string{
		fmt.Sprintf("Tile: %d,%d", t.Coord.Q, t.Coord.R),
		fmt.Sprintf("Kind: %s", t.Kind),
	}
	if t.LaneID != hexmap.NoLane {
		lane := fmt.Sprintf("Lane: %d", t.LaneID)
		if t.IsJunction {
			lane += " (junction)"
		}
		lines = append(lines, lane)
	}
	return append(lines, fmt.Sprintf("Height: %.2f", t.Height))
}

func (p *InfoPanel) drawLines(screen *ebiten.Image, x, y int, lines []string) {
	for i, line := range lines {
		text.Draw(screen, line, p.fontFace, x, y+i*lineHeight, config.TextLightColor)
	}
}

func (p *InfoPanel) drawCopyButton(screen *ebiten.Image, panelRect image.Rectangle) {
	btnWidth := 110
	btnHeight := 30
	p.CopyButton.Rect = image.Rect(
		panelRect.Max.X-btnWidth-20,
		panelRect.Max.Y-btnHeight-20,
		panelRect.Max.X-20,
		panelRect.Max.Y-20,
	)
	p.CopyButton.Text = "Copy seed"

	btnColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.DrawFilledRect(screen, float32(p.CopyButton.Rect.Min.X), float32(p.CopyButton.Rect.Min.Y), float32(btnWidth), float32(btnHeight), btnColor, true)

	textBounds := text.BoundString(p.fontFace, p.CopyButton.Text)
	textX := p.CopyButton.Rect.Min.X + (btnWidth-textBounds.Dx())/2
	textY := p.CopyButton.Rect.Min.Y + (btnHeight-textBounds.Dy())/2 - textBounds.Min.Y
	text.Draw(screen, p.CopyButton.Text, p.fontFace, textX, textY, color.White)
}
