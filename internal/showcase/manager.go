package showcase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/ludus"
	"github.com/aretw0/ludus/pkg/audio"
	"github.com/aretw0/ludus/pkg/bus"
	"github.com/aretw0/ludus/pkg/command"
	"github.com/aretw0/ludus/pkg/fsm"
	"github.com/aretw0/ludus/pkg/ui"
)

// Key bindings.
const (
	KeyToggle  = ' '
	KeyResume  = 'r'
	KeyExecute = 'c'
	KeyEnqueue = 'v'
)

const (
	menuPanel     = "menu"
	gameplayPanel = "gameplay"
)

// Option configures a Manager.
type Option func(*Manager)

// WithFade sets the panel fade durations.
func WithFade(in, out time.Duration) Option {
	return func(m *Manager) {
		m.fadeIn, m.fadeOut = in, out
	}
}

// WithSound plays music and effects on master.
func WithSound(master *audio.Master) Option {
	return func(m *Manager) {
		m.Sound = master
	}
}

// Manager is the owning context of the demo states.
type Manager struct {
	Host     *ludus.Host
	UI       *ui.Manager
	Menu     *ui.Panel
	Gameplay *ui.Panel
	Machine  *fsm.Machine[*Manager]
	Commands *Commands
	Runner   *CommandRunner
	Sound    *audio.Master

	logger  *slog.Logger
	fadeIn  time.Duration
	fadeOut time.Duration

	keys      map[rune]bool
	lastTimer float64
	count     int
	countSub  *bus.Subscription

	menuTheme     audio.Sound
	gameplayTheme audio.Sound
	blip          audio.Sound
}

// NewManager builds the demo on host and attaches it to the host tick.
// Call Start to enter the menu.
func NewManager(host *ludus.Host, opts ...Option) (*Manager, error) {
	m := &Manager{
		Host:    host,
		logger:  host.Logger(),
		fadeIn:  ui.DefaultFade,
		fadeOut: ui.DefaultFade,
		keys:    make(map[rune]bool),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.Menu = ui.NewPanel(menuPanel, ui.WithFade(m.fadeIn, m.fadeOut))
	m.Gameplay = ui.NewPanel(gameplayPanel, ui.WithFade(m.fadeIn, m.fadeOut))
	m.UI = ui.NewManager(m.Menu, m.Gameplay)

	m.Commands = NewCommands(m.logger, host.Bus(), host.Pools())
	m.Runner = NewCommandRunner(host.Queue(), m.logger)
	m.countSub = bus.For[CountChanged](host.Bus()).Subscribe(func(e CountChanged) {
		m.count = e.Value
		if m.Sound != nil && m.blip != nil {
			if err := m.Sound.Play(m.blip); err != nil {
				m.logger.Warn("play effect", "err", err)
			}
		}
	})

	if m.Sound != nil {
		sr := m.Sound.SampleRate()
		m.menuTheme = audio.Tone("menu-theme", sr, 220, 0)
		m.gameplayTheme = audio.Tone("gameplay-theme", sr, 330, 0)
		m.blip = audio.Tone("blip", sr, 880, 80*time.Millisecond)
	}

	machine, err := ludus.NewMachine(host, m)
	if err != nil {
		return nil, fmt.Errorf("showcase: %w", err)
	}
	m.Machine = machine
	host.Attach(m)
	return m, nil
}

// Start enters the menu.
func (m *Manager) Start() error {
	_, err := fsm.TransitionTo[MenuState](m.Machine)
	return err
}

// Press records a key press for the next tick. Call it on the loop goroutine
// (through Host.Post when input comes from elsewhere).
func (m *Manager) Press(r rune) {
	m.keys[r] = true
}

// KeyDown reports whether r was pressed since the previous tick.
func (m *Manager) KeyDown(r rune) bool {
	return m.keys[r]
}

// Tick runs after the state machine: it handles the command keys, advances
// the panel fades and forgets this tick's key presses.
func (m *Manager) Tick(dt time.Duration) {
	if m.KeyDown(KeyExecute) {
		if err := m.Runner.ExecuteAsync(m.Commands.Count(CountArgs{Steps: 3, Interval: time.Second}), m.onDrained); err != nil {
			m.logger.Warn("execute command", "err", err)
		}
	}
	if m.KeyDown(KeyEnqueue) {
		if err := m.Runner.EnqueueAndExecute(m.Commands.Count(CountArgs{Steps: 3, Interval: time.Second}), m.onDrained); err != nil {
			m.logger.Warn("enqueue command", "err", err)
		}
	}
	m.UI.Tick(dt)
	clear(m.keys)
}

func (m *Manager) onDrained(res command.Result) {
	m.logger.Info("end of commands", "drain_id", res.DrainID)
}

// Count returns the last value published by a count command.
func (m *Manager) Count() int {
	return m.count
}

// Status is a one-line summary of the demo for the footer.
func (m *Manager) Status() string {
	q := m.Host.Queue()
	return fmt.Sprintf("state: %s | value: %d | pending: %d | draining: %t",
		m.Machine.CurrentName(), m.count, q.Len(), q.Draining())
}

// Close releases the subscriptions of the demo.
func (m *Manager) Close() {
	m.countSub.Cancel()
	m.Runner.Close()
}

func (m *Manager) playMusic(s audio.Sound) {
	if m.Sound == nil || s == nil {
		return
	}
	if m.Sound.Track() == "" {
		if err := m.Sound.PlayMusic(s); err != nil {
			m.logger.Warn("play music", "err", err)
		}
		return
	}
	m.Host.Start(m.Sound.CrossfadeTo(s, m.fadeOut, 0))
}
