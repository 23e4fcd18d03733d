package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// Sound opens a fresh stream each time it is played.
type Sound interface {
	Name() string
	Open() (beep.Streamer, error)
}

type tone struct {
	name     string
	sr       beep.SampleRate
	freq     float64
	duration time.Duration
}

// Tone is a sine wave at freq Hz. A duration <= 0 plays until stopped.
func Tone(name string, sr beep.SampleRate, freq float64, duration time.Duration) Sound {
	return &tone{name: name, sr: sr, freq: freq, duration: duration}
}

func (t *tone) Name() string { return t.name }

func (t *tone) Open() (beep.Streamer, error) {
	s, err := generators.SineTone(t.sr, t.freq)
	if err != nil {
		return nil, fmt.Errorf("open tone %s: %w", t.name, err)
	}
	if t.duration <= 0 {
		return s, nil
	}
	return beep.Take(t.sr.N(t.duration), s), nil
}

type buffered struct {
	name string
	buf  *beep.Buffer
}

// LoadWAV decodes a WAV stream into memory, resampled to sr.
func LoadWAV(name string, r io.Reader, sr beep.SampleRate) (Sound, error) {
	s, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != sr {
		src = beep.Resample(4, format.SampleRate, sr, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &buffered{name: name, buf: buf}, nil
}

func (b *buffered) Name() string { return b.name }

func (b *buffered) Open() (beep.Streamer, error) {
	return b.buf.Streamer(0, b.buf.Len()), nil
}
