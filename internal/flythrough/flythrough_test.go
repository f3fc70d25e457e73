package flythrough

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terrain-flyover/pkg/bezier"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func TestDefaultBuilds(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	eye, target, err := s.Build(bezier.DefaultDepth)
	require.NoError(t, err)

	assert.Equal(t, 2, eye.Len())
	assert.Equal(t, 2, target.Len())

	start, _ := eye.Sample(0)
	end, _ := eye.Sample(1)
	assert.Equal(t, math.V3(0.5, 0.1, 1.0), start)
	assert.Equal(t, math.V3(1.5, 0.3, 1.5), end)

	lookEnd, _ := target.Sample(1)
	assert.Equal(t, math.V3(0.5, 0.1, 0.8), lookEnd)

	// The second segment continues from the first one's end point.
	diff(t, math.V3(-1.5, 0.85, -1.5), eye.Hulls()[1].P1)
}

func TestParseRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	diff(t, Default(), got)
}

func TestParseHandWritten(t *testing.T) {
	src := `
points:
  - {id: 1, pos: [0, 0, 0]}
  - {id: 2, pos: [1, 0, 0]}
  - {id: 3, pos: [2, 0, 0]}
  - {id: 4, pos: [3, 0, 0]}
eye:
  segments: [[1, 2, 3, 4]]
`
	s, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Len(t, s.Points, 4)
	assert.Empty(t, s.Target.Segments)

	eye, target, err := s.Build(3)
	require.NoError(t, err)
	assert.Equal(t, 3, eye.Depth())
	assert.InDelta(t, 3, eye.Length(), 1e-5)

	_, ok := target.Sample(0.5)
	assert.False(t, ok, "empty track yields an empty path")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "unknown point",
			src: `
points: [{id: 0, pos: [0, 0, 0]}]
eye: {segments: [[0, 0, 0, 9]]}
`,
			want: ErrUnknownPoint,
		},
		{
			name: "short first segment",
			src: `
points: [{id: 0, pos: [0, 0, 0]}]
eye: {segments: [[0, 0, 0]]}
`,
			want: ErrBadSegment,
		},
		{
			name: "long follow-up segment",
			src: `
points: [{id: 0, pos: [0, 0, 0]}]
target: {segments: [[0, 0, 0, 0], [0, 0, 0, 0]]}
`,
			want: ErrBadSegment,
		},
		{
			name: "duplicate id",
			src: `
points: [{id: 0, pos: [0, 0, 0]}, {id: 0, pos: [1, 0, 0]}]
`,
			want: ErrDuplicatePoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("points: [\n"))
	assert.Error(t, err)
}

func TestTrackBuildReportsTrack(t *testing.T) {
	s := Default()
	s.Target.Segments[1] = []int{11, 12, 99}

	_, _, err := s.Build(2)
	require.ErrorIs(t, err, ErrUnknownPoint)
	assert.Contains(t, err.Error(), "target track")
	assert.Contains(t, err.Error(), "99")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.yaml")

	data, err := Default().Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Points, 14)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestPlanLength(t *testing.T) {
	p := bezier.New()
	p.SetPoints(math.V3(0, 5, 0), math.V3(1, 5, 2), math.V3(3, 5, -1), math.V3(4, 5, 1))

	plan := PlanLength(p)
	assert.InDelta(t, plan, float64(p.Length()), plan*0.005)

	// Height does not contribute to the ground projection.
	q := bezier.New()
	q.SetPoints(math.V3(0, 0, 0), math.V3(0, 1, 0), math.V3(0, 2, 0), math.V3(3, 3, 0))
	assert.Less(t, PlanLength(q), float64(q.Length()))

	assert.Zero(t, PlanLength(bezier.New()))
}

func TestWriteSVG(t *testing.T) {
	eye, target, err := Default().Build(2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, eye, target, bezier.New()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Equal(t, 2, strings.Count(out, "<path "))
	// Two segments per track, four control points per segment.
	assert.Equal(t, 16, strings.Count(out, "<circle "))
	assert.Contains(t, out, `d="M0.5,1`)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte("points: []\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &Watcher{Debounce: 10 * time.Millisecond}
	changes, err := w.Watch(ctx, path)
	require.NoError(t, err)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
	select {
	case <-changes:
		t.Fatal("unexpected signal for unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("points: [{id: 1, pos: [0, 0, 0]}]\n"), 0644))
	select {
	case _, ok := <-changes:
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal after write")
	}

	cancel()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestWatchMissingDir(t *testing.T) {
	_, err := NewWatcher().Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "tour.yaml"))
	assert.Error(t, err)
}
