// internal/state/view_state.go
package state

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font/basicfont"

	"go-hex-lanes/internal/app"
	"go-hex-lanes/internal/config"
	"go-hex-lanes/internal/ui"
	"go-hex-lanes/internal/wave"
	"go-hex-lanes/pkg/render"
)

const (
	lineStep     = 18
	markerRadius = 5
)

// ViewState shows the generated map and runs the wave loop on it.
type ViewState struct {
	sm      *StateMachine
	session *app.Session
	walkers *app.Walkers
	logger  *log.Logger

	renderer      *render.HexRenderer
	indicator     *ui.StateIndicator
	speedButton   *ui.SpeedButton
	pauseButton   *ui.PauseButton
	waveIndicator *ui.WaveIndicator
	infoPanel     *ui.InfoPanel

	lastClickTime time.Time
	message       string
	messageUntil  time.Time
}

// NewViewState builds the view. A session without a map gets one generated
// from its configured seed.
func NewViewState(sm *StateMachine, session *app.Session) *ViewState {
	if session.Grid() == nil {
		session.Regenerate(session.Config.Generator.Seed)
	}
	face := basicfont.Face7x13
	v := &ViewState{
		sm:       sm,
		session:  session,
		walkers:  app.NewWalkers(session),
		logger:   log.Default().WithPrefix("view"),
		renderer: render.NewHexRenderer(session.Grid(), session.Config.Generator.HexSize, config.ScreenWidth, config.ScreenHeight),
		indicator: ui.NewStateIndicator(
			float32(config.ScreenWidth-config.IndicatorOffsetX),
			float32(config.IndicatorOffsetX),
			float32(config.IndicatorRadius),
		),
		speedButton:   ui.NewSpeedButton(float32(config.ScreenWidth-config.IndicatorOffsetX*2-10), float32(config.IndicatorOffsetX), config.ButtonSize),
		pauseButton:   ui.NewPauseButton(float32(config.ScreenWidth-config.IndicatorOffsetX*3-20), float32(config.IndicatorOffsetX), config.ButtonSize, config.UIColorBlue, config.CountdownStateColor),
		waveIndicator: ui.NewWaveIndicator(config.ScreenWidth/2, 40, face),
		infoPanel:     ui.NewInfoPanel(face),
		lastClickTime: time.Now(),
	}
	v.infoPanel.OnCopySeed = v.copySeed
	return v
}

// SetLogger replaces the view logger.
func (v *ViewState) SetLogger(logger *log.Logger) {
	if logger != nil {
		v.logger = logger
	}
}

func (v *ViewState) Enter() {
	v.setPaused(false)
}

func (v *ViewState) setPaused(p bool) {
	v.session.SetPaused(p)
	v.pauseButton.SetPaused(p)
}

func (v *ViewState) Update(deltaTime float64) {
	v.infoPanel.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		v.pause()
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.startWaves()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.regenerate(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.regenerate(v.session.Result().Seed)
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.copySeed()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		v.infoPanel.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		v.renderer.ShowCoords = !v.renderer.ShowCoords
		v.renderer.RenderMapImage()
	}

	x, y := ebiten.CursorPosition()
	if tile, ok := v.session.Grid().Tile(v.renderer.HexAt(x, y)); ok {
		v.infoPanel.SetTile(tile)
	} else {
		v.infoPanel.SetTile(nil)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !v.infoPanel.Contains(x, y) {
		if v.handleUIClick(x, y) {
			return
		}
	}

	v.session.SpeedMultiplier = v.speedButton.Multiplier()
	v.session.Update(deltaTime)
	v.walkers.Update(deltaTime)
}

// handleUIClick returns true when the click moved to another state.
func (v *ViewState) handleUIClick(x, y int) bool {
	cooldown := time.Duration(config.ClickCooldown) * time.Millisecond
	if time.Since(v.lastClickTime) < cooldown {
		return false
	}
	v.lastClickTime = time.Now()
	switch {
	case v.speedButton.IsClicked(x, y):
		v.speedButton.ToggleState()
	case v.pauseButton.IsClicked(x, y):
		v.pause()
		return true
	case v.indicator.IsClicked(x, y):
		v.indicator.HandleClick()
		v.startWaves()
	}
	return false
}

func (v *ViewState) pause() {
	v.pauseButton.TogglePause()
	v.sm.SetState(NewPauseState(v.sm, v))
}

func (v *ViewState) startWaves() {
	if v.session.Director.State() != wave.Idle {
		return
	}
	v.session.Start()
	v.flash("Waves started")
}

func (v *ViewState) regenerate(seed int64) {
	res := v.session.Regenerate(seed)
	v.renderer.SetGrid(res.Grid)
	msg := fmt.Sprintf("Seed %d: %d lanes", res.Seed, len(res.Lanes))
	if res.Err != nil {
		msg += " (failed validation)"
	}
	v.flash(msg)
}

func (v *ViewState) copySeed() {
	seed := fmt.Sprint(v.session.Result().Seed)
	if err := clipboard.WriteAll(seed); err != nil {
		v.logger.Warn("could not copy seed", "error", err)
		v.flash("Clipboard unavailable, seed " + seed)
		return
	}
	v.flash("Copied seed " + seed)
}

func (v *ViewState) flash(msg string) {
	v.message = msg
	v.messageUntil = time.Now().Add(3 * time.Second)
}

func (v *ViewState) markers() []render.Marker {
	walkers := v.walkers.Walkers()
	out := make([]render.Marker, 0, len(walkers))
	for _, w := range walkers {
		from, to, p := w.At()
		out = append(out, render.Marker{
			Hex:      from,
			Next:     to,
			Progress: p,
			Color:    config.EnemyColor,
			Radius:   markerRadius,
		})
	}
	return out
}

func (v *ViewState) Draw(screen *ebiten.Image) {
	v.renderer.Draw(screen, v.markers())

	snap := v.session.Snapshot()
	v.indicator.Draw(screen, snap.State)
	v.speedButton.Draw(screen)
	v.pauseButton.Draw(screen)
	v.waveIndicator.Draw(screen, snap.Wave)
	v.infoPanel.Draw(screen, snap, v.walkers.Arrived())

	status := fmt.Sprintf("Seed: %d  Wave: %d  %s  x%.0f", snap.Seed, snap.Wave, snap.State, v.speedButton.Multiplier())
	if snap.State == wave.Countdown {
		status += fmt.Sprintf("  next in %.1fs", snap.Countdown)
	}
	if time.Now().Before(v.messageUntil) {
		status += "\n" + v.message
	}
	ebitenutil.DebugPrint(screen, status)
}

func (v *ViewState) Exit() {}
