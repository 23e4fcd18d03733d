package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/ludus/pkg/routine"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constStreamer emits a fixed value; a negative left streams forever.
type constStreamer struct {
	v    float64
	left int
}

func (c *constStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.left == 0 {
		return 0, false
	}
	n := len(samples)
	if c.left > 0 {
		n = min(n, c.left)
		c.left -= n
	}
	for i := range samples[:n] {
		samples[i] = [2]float64{c.v, c.v}
	}
	return n, true
}

func (c *constStreamer) Err() error { return nil }

type constSound struct {
	name string
	v    float64
	n    int
}

func (s constSound) Name() string { return s.name }

func (s constSound) Open() (beep.Streamer, error) {
	return &constStreamer{v: s.v, left: s.n}, nil
}

func sample(t *testing.T, m *Master) float64 {
	t.Helper()
	buf := make([][2]float64, 8)
	n, ok := m.Stream(buf)
	require.True(t, ok)
	require.Equal(t, len(buf), n)
	return buf[0][0]
}

func TestNewMaster_AppliesSavedVolumes(t *testing.T) {
	prefs := NewMemoryPrefs()
	prefs.SetFloat(Music.Key(), -10)

	m := NewMaster(WithPrefs(prefs))

	assert.Equal(t, -10.0, m.Volume(Music))
	assert.Equal(t, 0.0, m.Volume(Effect))
}

func TestMaster_SetVolumeClamps(t *testing.T) {
	m := NewMaster()

	m.SetVolume(Effect, -200)
	assert.Equal(t, Silent, m.Volume(Effect))

	m.SetVolume(Effect, 100)
	assert.Equal(t, MaxVolume, m.Volume(Effect))
}

func TestMaster_SaveVolumeDoesNotApply(t *testing.T) {
	m := NewMaster()
	m.SaveVolume(Music, -12)

	assert.Equal(t, -12.0, m.SavedVolume(Music))
	assert.Equal(t, 0.0, m.Volume(Music))
}

func TestMaster_EffectVolumeInDecibels(t *testing.T) {
	m := NewMaster()
	require.NoError(t, m.Play(constSound{name: "hit", v: 0.5, n: -1}))

	assert.InDelta(t, 0.5, sample(t, m), 1e-9)

	m.SetVolume(Effect, -20)
	assert.InDelta(t, 0.05, sample(t, m), 1e-9)

	m.SetVolume(Effect, Silent)
	assert.Equal(t, 0.0, sample(t, m))
}

func TestMaster_SilenceWhenIdle(t *testing.T) {
	m := NewMaster()
	assert.Equal(t, 0.0, sample(t, m))
}

func TestMaster_PlayMusicReplacesTrack(t *testing.T) {
	m := NewMaster()

	require.NoError(t, m.PlayMusic(constSound{name: "menu", v: 0.25, n: -1}))
	assert.InDelta(t, 0.25, sample(t, m), 1e-9)

	require.NoError(t, m.PlayMusic(constSound{name: "battle", v: 0.5, n: -1}))
	assert.Equal(t, "battle", m.Track())
	assert.InDelta(t, 0.5, sample(t, m), 1e-9, "previous track must be gone")

	m.StopMusic()
	assert.Equal(t, "", m.Track())
	assert.Equal(t, 0.0, sample(t, m))
}

func TestMaster_CrossfadeTo(t *testing.T) {
	m := NewMaster()
	require.NoError(t, m.PlayMusic(constSound{name: "menu", v: 0.5, n: -1}))

	r := m.CrossfadeTo(constSound{name: "battle", v: 0.5, n: -1}, 100*time.Millisecond, 50*time.Millisecond)
	dt := 25 * time.Millisecond

	for _, want := range []float64{-20, -40, -60} {
		status, err := r.Step(dt)
		require.NoError(t, err)
		assert.Equal(t, routine.Running, status)
		assert.InDelta(t, want, m.Volume(Music), 1e-9)
	}

	// Fade out completes, then the delay starts.
	status, err := r.Step(dt)
	require.NoError(t, err)
	assert.Equal(t, routine.Running, status)
	assert.Equal(t, Silent, m.Volume(Music))
	assert.Equal(t, "menu", m.Track())
	assert.Equal(t, 0.0, sample(t, m))

	steps, err := routine.RunToCompletion(r, dt, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, steps)
	assert.Equal(t, "battle", m.Track())
	assert.Equal(t, 0.0, m.Volume(Music))
}

func TestMaster_PlayMusicCancelsFade(t *testing.T) {
	prefs := NewMemoryPrefs()
	prefs.SetFloat(Music.Key(), -6)
	m := NewMaster(WithPrefs(prefs))

	fade := m.StopMusicFade(100 * time.Millisecond)
	_, err := fade.Step(50 * time.Millisecond)
	require.NoError(t, err)
	assert.InDelta(t, -43.0, m.Volume(Music), 1e-9)

	require.NoError(t, m.PlayMusic(constSound{name: "menu", v: 0.5, n: -1}))
	assert.Equal(t, -6.0, m.Volume(Music))

	status, err := fade.Step(50 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, routine.Done, status)
	assert.Equal(t, -6.0, m.Volume(Music))
}

func TestMaster_NewerFadeWins(t *testing.T) {
	m := NewMaster()

	first := m.FadeMusic(Silent, time.Second)
	_, _ = first.Step(0)

	second := m.FadeMusic(-10, 0)
	status, _ := second.Step(0)
	assert.Equal(t, routine.Done, status)

	status, _ = first.Step(time.Second)
	assert.Equal(t, routine.Done, status)
	assert.Equal(t, -10.0, m.Volume(Music))
}

func TestTone(t *testing.T) {
	sr := beep.SampleRate(8000)
	s := Tone("beep", sr, 440, 10*time.Millisecond)

	st, err := s.Open()
	require.NoError(t, err)

	total := 0
	buf := make([][2]float64, 32)
	for {
		n, ok := st.Stream(buf)
		for _, smp := range buf[:n] {
			assert.LessOrEqual(t, smp[0], 1.0)
			assert.GreaterOrEqual(t, smp[0], -1.0)
		}
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, sr.N(10*time.Millisecond), total)
}

func TestLoadWAV(t *testing.T) {
	sr := beep.SampleRate(8000)
	path := filepath.Join(t.TempDir(), "clip.wav")

	f, err := os.Create(path)
	require.NoError(t, err)
	src := &constStreamer{v: 0.5, left: 400}
	require.NoError(t, wav.Encode(f, src, beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}))
	require.NoError(t, f.Close())

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	s, err := LoadWAV("clip", in, sr)
	require.NoError(t, err)
	assert.Equal(t, "clip", s.Name())

	m := NewMaster(WithSampleRate(sr))
	require.NoError(t, m.Play(s))
	assert.InDelta(t, 0.5, sample(t, m), 1e-3)
}
