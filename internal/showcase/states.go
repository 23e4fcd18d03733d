package showcase

import (
	"time"

	"github.com/aretw0/ludus/pkg/fsm"
	"github.com/aretw0/ludus/pkg/ui"
)

// MenuState shows the menu panel. Space starts a new game, r resumes the last one.
type MenuState struct {
	fsm.BaseState[*Manager]
}

func (s *MenuState) Enter(m *Manager) {
	s.BaseState.Enter(m)
	m.Menu.SetText("MENU")
	m.Menu.Enable()
	m.playMusic(m.menuTheme)
}

func (s *MenuState) Exit() {
	s.Manager.Menu.Disable()
}

func (s *MenuState) Tick(time.Duration) {
	switch {
	case s.Manager.KeyDown(KeyToggle):
		_, _ = fsm.TransitionTo[GameplayState](s.Manager.Machine)
	case s.Manager.KeyDown(KeyResume):
		g, err := fsm.TransitionTo[GameplayState](s.Manager.Machine)
		if err == nil {
			g.SetInitialTimer(s.Manager.lastTimer)
		}
	}
}

// GameplayState shows a running timer. Space returns to the menu.
type GameplayState struct {
	fsm.BaseState[*Manager]
	timer float64
}

func (s *GameplayState) Enter(m *Manager) {
	s.BaseState.Enter(m)
	m.Gameplay.SetText("GAMEPLAY")
	m.Gameplay.Enable()
	m.playMusic(m.gameplayTheme)
}

func (s *GameplayState) Exit() {
	s.Manager.lastTimer = s.timer
	s.Manager.Gameplay.Disable()
}

func (s *GameplayState) Tick(dt time.Duration) {
	s.timer += dt.Seconds()
	s.Manager.Gameplay.SetText(ui.FormatTimer(s.timer))

	if s.Manager.KeyDown(KeyToggle) {
		_, _ = fsm.TransitionTo[MenuState](s.Manager.Machine)
	}
}

// SetInitialTimer starts the timer from seconds instead of zero.
func (s *GameplayState) SetInitialTimer(seconds float64) {
	s.timer = seconds
}

// Timer returns the elapsed gameplay time in seconds.
func (s *GameplayState) Timer() float64 {
	return s.timer
}
