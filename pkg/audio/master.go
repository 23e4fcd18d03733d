package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/ludus/internal/logging"
	"github.com/aretw0/ludus/pkg/routine"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Output selects one of the two mixer outputs.
type Output int

const (
	Music Output = iota
	Effect
)

func (o Output) String() string {
	switch o {
	case Music:
		return "music"
	case Effect:
		return "effect"
	default:
		return fmt.Sprintf("output(%d)", int(o))
	}
}

// Key returns the preference key under which the output volume is saved.
func (o Output) Key() string {
	return o.String() + "_volume"
}

const (
	// Silent is the volume, in dB, at which an output is muted.
	Silent = -80.0
	// MaxVolume is the loudest accepted volume, in dB.
	MaxVolume = 20.0

	defaultSampleRate = beep.SampleRate(48000)
)

// bus mixes the streams of one output and never runs dry, so the volume
// wrapped around it stays in the root mixer.
type bus struct {
	mixer beep.Mixer
}

func (b *bus) Stream(samples [][2]float64) (int, bool) {
	n, _ := b.mixer.Stream(samples)
	clear(samples[n:])
	return len(samples), true
}

func (b *bus) Err() error { return nil }

type output struct {
	bus    *bus
	volume *effects.Volume
	db     float64
}

// Master mixes the Music and Effect outputs. It is safe for concurrent use:
// the speaker goroutine calls Stream while the host changes volumes.
type Master struct {
	sampleRate beep.SampleRate
	prefs      Prefs
	logger     *slog.Logger

	mu      sync.Mutex
	root    beep.Mixer
	outputs [2]*output
	music   *beep.Ctrl
	track   string
	fadeGen uint64
}

// NewMaster creates a mixer and applies the saved volume of both outputs.
func NewMaster(opts ...Option) *Master {
	m := &Master{
		sampleRate: defaultSampleRate,
		prefs:      NewMemoryPrefs(),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	for i := range m.outputs {
		b := &bus{}
		o := &output{bus: b, volume: &effects.Volume{Streamer: b, Base: 10}}
		m.outputs[i] = o
		m.root.Add(o.volume)
	}
	for _, out := range []Output{Music, Effect} {
		m.SetVolume(out, m.SavedVolume(out))
	}
	return m
}

// SampleRate returns the output sample rate.
func (m *Master) SampleRate() beep.SampleRate {
	return m.sampleRate
}

// SetVolume sets the volume of out in dB, clamped to [Silent, MaxVolume].
func (m *Master) SetVolume(out Output, db float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setVolumeLocked(out, db)
}

func (m *Master) setVolumeLocked(out Output, db float64) {
	db = min(max(db, Silent), MaxVolume)
	o := m.outputs[out]
	o.db = db
	o.volume.Volume = db / 20
	o.volume.Silent = db <= Silent
}

// Volume returns the current volume of out in dB.
func (m *Master) Volume(out Output) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outputs[out].db
}

// SaveVolume stores db as the preferred volume of out. It does not change
// the current volume.
func (m *Master) SaveVolume(out Output, db float64) {
	m.prefs.SetFloat(out.Key(), db)
}

// SavedVolume returns the preferred volume of out, 0 dB when none was saved.
func (m *Master) SavedVolume(out Output) float64 {
	return m.prefs.Float(out.Key(), 0)
}

// Play starts s on the Effect output. Effects overlap freely.
func (m *Master) Play(s Sound) error {
	st, err := s.Open()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.outputs[Effect].bus.mixer.Add(st)
	m.mu.Unlock()

	m.logger.Debug("sound played", "sound", s.Name(), "output", Effect.String())
	return nil
}

// PlayMusic replaces the current track with s from its start. It cancels any
// running fade and restores the saved music volume.
func (m *Master) PlayMusic(s Sound) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fadeGen++
	m.setVolumeLocked(Music, m.SavedVolume(Music))
	return m.switchTrackLocked(s)
}

func (m *Master) switchTrackLocked(s Sound) error {
	st, err := s.Open()
	if err != nil {
		return err
	}
	prev := m.track
	m.stopTrackLocked()

	m.music = &beep.Ctrl{Streamer: st}
	m.track = s.Name()
	m.outputs[Music].bus.mixer.Add(m.music)

	m.logger.Info("music changed", "from", prev, "to", m.track)
	return nil
}

func (m *Master) stopTrackLocked() {
	if m.music != nil {
		// A Ctrl without a streamer is dropped by the mixer.
		m.music.Streamer = nil
		m.music = nil
	}
	m.track = ""
}

// StopMusic stops the current track immediately.
func (m *Master) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTrackLocked()
}

// Track returns the name of the current music track, or "".
func (m *Master) Track() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.track
}

// FadeMusic returns a routine moving the music volume linearly to target
// over d of tick time. The start volume is read on the routine's first step.
func (m *Master) FadeMusic(target float64, d time.Duration) routine.Routine {
	return m.cancellable(m.fade(target, d))
}

// StopMusicFade fades the music output to Silent. The track keeps playing muted.
func (m *Master) StopMusicFade(d time.Duration) routine.Routine {
	return m.FadeMusic(Silent, d)
}

// CrossfadeTo fades the music out over fade, waits delay, switches to s and
// fades back in to the saved music volume.
func (m *Master) CrossfadeTo(s Sound, fade, delay time.Duration) routine.Routine {
	return m.cancellable(routine.Sequence(
		m.fade(Silent, fade),
		routine.Wait(delay),
		routine.DoErr(func() error {
			m.mu.Lock()
			defer m.mu.Unlock()
			return m.switchTrackLocked(s)
		}),
		routine.Lazy(func() routine.Routine {
			return m.fade(m.SavedVolume(Music), fade)
		}),
	))
}

// cancellable ends r quietly once another fade starts or PlayMusic is called.
func (m *Master) cancellable(r routine.Routine) routine.Routine {
	var (
		gen     uint64
		started bool
	)
	return routine.Func(func(dt time.Duration) (routine.Status, error) {
		m.mu.Lock()
		if !started {
			started = true
			m.fadeGen++
			gen = m.fadeGen
		}
		cancelled := gen != m.fadeGen
		m.mu.Unlock()

		if cancelled {
			return routine.Done, nil
		}
		return r.Step(dt)
	})
}

func (m *Master) fade(target float64, d time.Duration) routine.Routine {
	var (
		start   float64
		elapsed time.Duration
		started bool
	)
	return routine.Func(func(dt time.Duration) (routine.Status, error) {
		m.mu.Lock()
		defer m.mu.Unlock()

		if !started {
			started = true
			start = m.outputs[Music].db
		}
		elapsed += dt
		if elapsed < d {
			t := float64(elapsed) / float64(d)
			m.setVolumeLocked(Music, start+(target-start)*t)
			return routine.Running, nil
		}
		m.setVolumeLocked(Music, target)
		return routine.Done, nil
	})
}

// Stream implements beep.Streamer.
func (m *Master) Stream(samples [][2]float64) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := m.root.Stream(samples)
	clear(samples[n:])
	return len(samples), true
}

// Err implements beep.Streamer.
func (m *Master) Err() error { return nil }

// Open initialises the speaker and starts playing the mixer on it.
func (m *Master) Open() error {
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m)
	m.logger.Info("audio output opened", "sample_rate", int(m.sampleRate))
	return nil
}

// Close stops everything playing on the speaker.
func (m *Master) Close() {
	speaker.Clear()
	m.mu.Lock()
	m.stopTrackLocked()
	for _, o := range m.outputs {
		o.bus.mixer.Clear()
	}
	m.mu.Unlock()
}
