package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGain(t *testing.T) {
	tests := []struct {
		vol    float64
		want   float64
		silent bool
	}{
		{1.0, 0, false},
		{0.5, -1, false},
		{0.25, -2, false},
		{0.0, 0, true},
		{-1, 0, true},
	}
	for _, tt := range tests {
		v, silent := gain(tt.vol)
		assert.Equal(t, tt.silent, silent, "vol %v", tt.vol)
		assert.InDelta(t, tt.want, v, 1e-9, "vol %v", tt.vol)
		if !silent {
			assert.InDelta(t, tt.vol, math.Pow(2, v), 1e-9)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clamp(tt.v, tt.lo, tt.hi))
	}
}

func TestNewClampsVolume(t *testing.T) {
	s := New(3)
	assert.Equal(t, 1.0, s.Volume())
	s.SetVolume(-2)
	assert.Equal(t, 0.0, s.Volume())
	assert.False(t, s.Playing())
	assert.False(t, s.TogglePause())
	assert.Empty(t, s.Name())
}

func TestPlayBeforeInit(t *testing.T) {
	s := New(1)
	err := s.Play("bad.ogg", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	err = s.Play("bad.wav", []byte("not a wav"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode bad.wav")
}

// ramp is an in-memory track whose samples count up from 0.
type ramp struct {
	n, pos int
	seeks  int
}

func (r *ramp) Stream(samples [][2]float64) (int, bool) {
	if r.pos >= r.n {
		return 0, false
	}
	i := 0
	for ; i < len(samples) && r.pos < r.n; i++ {
		samples[i] = [2]float64{float64(r.pos), float64(r.pos)}
		r.pos++
	}
	return i, true
}

func (r *ramp) Err() error    { return nil }
func (r *ramp) Len() int      { return r.n }
func (r *ramp) Position() int { return r.pos }
func (r *ramp) Close() error  { return nil }
func (r *ramp) Seek(p int) error {
	r.seeks++
	r.pos = p
	return nil
}

func TestLoopWraps(t *testing.T) {
	src := &ramp{n: 3}
	l := newLoop(src, DefaultSampleRate, DefaultSampleRate)

	buf := make([][2]float64, 8)
	n, ok := l.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 8, n)

	got := make([]float64, n)
	for i := range buf {
		got[i] = buf[i][0]
	}
	assert.Equal(t, []float64{0, 1, 2, 0, 1, 2, 0, 1}, got)
	assert.Equal(t, 2, src.seeks)
}

func TestLoopEmptyTrack(t *testing.T) {
	l := newLoop(&ramp{}, DefaultSampleRate, DefaultSampleRate)
	n, ok := l.Stream(make([][2]float64, 4))
	assert.Equal(t, 0, n)
	assert.False(t, ok)
	assert.NoError(t, l.Err())
}

var _ beep.StreamSeekCloser = (*ramp)(nil)
