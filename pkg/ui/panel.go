package ui

import (
	"sync"
	"time"

	"github.com/aretw0/ludus/pkg/routine"
)

const (
	// EnableStartAlpha is the opacity a panel starts from when enabled.
	EnableStartAlpha = 0.1

	// DefaultFade is the fade duration used when none is configured.
	DefaultFade = 100 * time.Millisecond
)

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithFade sets the fade-in and fade-out durations.
func WithFade(in, out time.Duration) PanelOption {
	return func(p *Panel) {
		p.fadeIn, p.fadeOut = in, out
	}
}

// WithText sets the initial panel text.
func WithText(text string) PanelOption {
	return func(p *Panel) {
		p.text = text
	}
}

// Panel is a piece of UI that fades in and out.
type Panel struct {
	name    string
	fadeIn  time.Duration
	fadeOut time.Duration

	mu          sync.Mutex
	text        string
	alpha       float64
	visible     bool
	interactive bool
	enabled     bool
	fade        routine.Routine
}

// NewPanel creates a hidden panel.
func NewPanel(name string, opts ...PanelOption) *Panel {
	p := &Panel{name: name, fadeIn: DefaultFade, fadeOut: DefaultFade}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the panel name.
func (p *Panel) Name() string {
	return p.name
}

// Enable shows the panel at EnableStartAlpha and fades it to full opacity.
// The panel becomes interactive when the fade completes.
func (p *Panel) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.visible = true
	p.alpha = EnableStartAlpha
	p.interactive = false
	p.fade = p.fadeTo(EnableStartAlpha, 1, p.fadeIn, func() {
		p.interactive = true
		p.enabled = true
	})
}

// Disable fades a visible panel out and hides it. It does nothing when the
// panel is already hidden.
func (p *Panel) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.visible {
		return
	}
	p.alpha = 1
	p.interactive = true
	p.fade = p.fadeTo(1, 0, p.fadeOut, func() {
		p.interactive = false
		p.visible = false
		p.enabled = false
	})
}

// fadeTo must be stepped with p.mu held.
func (p *Panel) fadeTo(from, to float64, d time.Duration, done func()) routine.Routine {
	return routine.Sequence(
		routine.Tween(d, func(t float64) {
			p.alpha = from + (to-from)*t
		}),
		routine.Do(done),
	)
}

// Tick advances the running fade, if any.
func (p *Panel) Tick(dt time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fade == nil {
		return
	}
	if status, _ := p.fade.Step(dt); status == routine.Done {
		p.fade = nil
	}
}

// SetText replaces the panel text.
func (p *Panel) SetText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.text = text
}

// Text returns the panel text.
func (p *Panel) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text
}

// Alpha returns the current opacity in [0, 1].
func (p *Panel) Alpha() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alpha
}

// Visible reports whether the panel is shown, fading included.
func (p *Panel) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// Interactive reports whether the panel accepts input.
func (p *Panel) Interactive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interactive
}

// Enabled reports whether the panel finished fading in and has not been
// disabled since.
func (p *Panel) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Fading reports whether a fade is in progress.
func (p *Panel) Fading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fade != nil
}
