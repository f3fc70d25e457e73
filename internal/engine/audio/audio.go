// Package audio plays the looping soundtrack of a flyover.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned by Play before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Soundtrack plays one looping track through the speaker.
type Soundtrack struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate

	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	name     string

	level float64 // 0.0 to 1.0
}

// New creates a soundtrack at the given volume.
func New(volume float64) *Soundtrack {
	return &Soundtrack{
		sampleRate: DefaultSampleRate,
		level:      clamp(volume, 0, 1),
	}
}

// Init opens the speaker.
func (s *Soundtrack) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	s.initialized = true
	return nil
}

// Play replaces the current track with data and loops it forever. name
// selects the decoder by extension.
func (s *Soundtrack) Play(name string, data []byte) error {
	streamer, format, err := decode(name, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		streamer.Close()
		return ErrNotInitialized
	}
	s.stopLocked()

	s.ctrl = &beep.Ctrl{Streamer: newLoop(streamer, format.SampleRate, s.sampleRate)}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2}
	s.applyVolumeLocked()
	s.streamer = streamer
	s.name = name

	speaker.Play(s.volume)
	return nil
}

// Stop ends playback and releases the track.
func (s *Soundtrack) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Soundtrack) stopLocked() {
	if s.ctrl == nil {
		return
	}
	speaker.Clear()
	s.streamer.Close()
	s.streamer = nil
	s.ctrl = nil
	s.volume = nil
	s.name = ""
}

// TogglePause pauses or resumes the track and reports whether it is now
// playing.
func (s *Soundtrack) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return false
	}
	speaker.Lock()
	s.ctrl.Paused = !s.ctrl.Paused
	playing := !s.ctrl.Paused
	speaker.Unlock()
	return playing
}

// Playing reports whether a track is loaded and not paused.
func (s *Soundtrack) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl != nil && !s.ctrl.Paused
}

// Name returns the current track name.
func (s *Soundtrack) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetVolume sets the volume (0.0 to 1.0).
func (s *Soundtrack) SetVolume(vol float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = clamp(vol, 0, 1)
	s.applyVolumeLocked()
}

// Volume returns the volume.
func (s *Soundtrack) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *Soundtrack) applyVolumeLocked() {
	if s.volume == nil {
		return
	}
	v, silent := gain(s.level)
	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	s.volume.Volume = v
	s.volume.Silent = silent
}

// Close stops playback and closes the speaker.
func (s *Soundtrack) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	if s.initialized {
		speaker.Close()
		s.initialized = false
	}
}

// gain converts a linear volume to a base-2 exponent for effects.Volume.
func gain(vol float64) (volume float64, silent bool) {
	if vol <= 0 {
		return 0, true
	}
	return math.Log2(vol), false
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

func decode(name string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".wav":
		s, f, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode %s: %w", name, err)
		}
		return s, f, nil
	default:
		return nil, beep.Format{}, fmt.Errorf("decode %s: unsupported format %q", name, ext)
	}
}

// loop plays src from the start again whenever it runs out.
type loop struct {
	src beep.StreamSeekCloser
	out beep.Streamer
}

func newLoop(src beep.StreamSeekCloser, from, to beep.SampleRate) *loop {
	l := &loop{src: src, out: src}
	if from != to {
		l.out = beep.Resample(4, from, to, src)
	}
	return l
}

func (l *loop) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		got, ok := l.out.Stream(samples[n:])
		n += got
		if ok && got > 0 {
			continue
		}
		// An empty track would spin forever.
		if l.src.Len() == 0 {
			return n, n > 0
		}
		if err := l.src.Seek(0); err != nil {
			return n, n > 0
		}
	}
	return n, true
}

func (l *loop) Err() error {
	return l.src.Err()
}
