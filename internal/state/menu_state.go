// internal/state/menu_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"go-hex-lanes/internal/app"
	"go-hex-lanes/internal/config"
)

var helpLines = []string{
	"hexlanes map viewer",
	"",
	"Space   start waves",
	"R       new map, random seed",
	"S       rebuild the same seed",
	"C       copy seed to clipboard",
	"P, F9   pause",
	"Tab     info panel",
	"G       show coordinates",
	"",
	"Press Space to continue",
}

// MenuState — стартовый экран со списком клавиш
type MenuState struct {
	sm      *StateMachine
	session *app.Session
}

func NewMenuState(sm *StateMachine, session *app.Session) *MenuState {
	return &MenuState{sm: sm, session: session}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		m.sm.SetState(NewViewState(m.sm, m.session))
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := basicfont.Face7x13
	y := config.ScreenHeight/2 - len(helpLines)*lineStep/2
	for i, line := range helpLines {
		text.Draw(screen, line, face, config.ScreenWidth/2-120, y+i*lineStep, config.TextLightColor)
	}
}

func (m *MenuState) Exit() {}
