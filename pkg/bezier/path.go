// Package bezier builds piecewise cubic Bézier paths in 3D and samples them
// at uniform speed.
//
// Each segment is flattened into a polyline by recursive de Casteljau
// bisection to a fixed depth. The polyline is parameterized by cumulative
// arc length, so Sample(t) moves along the path at constant speed as t goes
// from 0 to 1 regardless of how the control points are spaced.
//
// A Path is not safe for concurrent use.
package bezier

import (
	"errors"
	"sort"

	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// DefaultDepth is the subdivision depth used when none is configured.
// Depth d yields 3*2^d-1 polyline points per segment.
const DefaultDepth = 5

// MaxDepth bounds the subdivision depth; depth 16 already yields 196607
// points per segment.
const MaxDepth = 16

// ErrNoInitialSegment is returned by AddSegment when the path has no segment
// to continue from.
var ErrNoInitialSegment = errors.New("bezier: path has no initial segment")

// Hull holds the four control points of one cubic segment.
type Hull struct {
	P1, P2, P3, P4 math.Vec3
}

// Split bisects the hull at t=0.5 and returns the two halves.
func (h Hull) Split() (l, r Hull) {
	mid := h.P2.Midpoint(h.P3)

	l.P1 = h.P1
	l.P2 = h.P1.Midpoint(h.P2)
	l.P3 = l.P2.Midpoint(mid)

	r.P4 = h.P4
	r.P3 = h.P3.Midpoint(h.P4)
	r.P2 = r.P3.Midpoint(mid)

	l.P4 = l.P3.Midpoint(r.P2)
	r.P1 = l.P4
	return l, r
}

// Eval returns the point of the curve at parameter t in Bernstein form.
func (h Hull) Eval(t float32) math.Vec3 {
	u := 1 - t
	b1 := u * u * u
	b2 := 3 * u * u * t
	b3 := 3 * u * t * t
	b4 := t * t * t
	return h.P1.Scale(b1).Add(h.P2.Scale(b2)).Add(h.P3.Scale(b3)).Add(h.P4.Scale(b4))
}

// Option configures a Path.
type Option func(*Path)

// WithDepth sets the subdivision depth, clamped to [0, MaxDepth].
func WithDepth(depth int) Option {
	return func(p *Path) {
		p.depth = min(max(depth, 0), MaxDepth)
	}
}

// Path is a chain of cubic segments joined end to start, together with its
// flattened polyline and arc-length parameterization.
type Path struct {
	hulls  []Hull
	points []math.Vec3
	params []float32
	depth  int
}

// New creates an empty path.
func New(opts ...Option) *Path {
	p := &Path{depth: DefaultDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetPoints replaces the whole path with a single segment.
func (p *Path) SetPoints(p1, p2, p3, p4 math.Vec3) {
	p.hulls, p.points, p.params = nil, nil, nil

	h := Hull{P1: p1, P2: p2, P3: p3, P4: p4}
	p.hulls = append(p.hulls, h)
	p.flatten(h, 0)
	p.parameterize()
}

// AddSegment appends a segment starting at the end point of the last one.
// The path is left unchanged if it has no segment yet.
func (p *Path) AddSegment(p2, p3, p4 math.Vec3) error {
	if len(p.hulls) == 0 {
		return ErrNoInitialSegment
	}

	h := Hull{P1: p.hulls[len(p.hulls)-1].P4, P2: p2, P3: p3, P4: p4}
	p.hulls = append(p.hulls, h)
	p.flatten(h, 0)
	p.parameterize()
	return nil
}

// flatten appends the polyline of h. The traversal emits the first point of
// every leaf and the last point of every hull on the way back up, so
// duplicates are expected and kept.
func (p *Path) flatten(h Hull, level int) {
	l, r := h.Split()
	if level < p.depth {
		p.flatten(l, level+1)
		p.flatten(r, level+1)
	} else {
		p.points = append(p.points, l.P1)
	}
	p.points = append(p.points, h.P4)
}

func (p *Path) parameterize() {
	p.params = p.params[:0]
	if len(p.points) == 0 {
		return
	}
	p.params = append(p.params, 0)
	for i := 1; i < len(p.points); i++ {
		p.params = append(p.params, p.params[i-1]+p.points[i].Distance(p.points[i-1]))
	}
}

// Sample returns the point at fraction t of the path's arc length. t is
// clamped to [0, 1]. ok is false for an empty path.
func (p *Path) Sample(t float32) (pt math.Vec3, ok bool) {
	n := len(p.points)
	if n == 0 {
		return math.Vec3{}, false
	}

	t = min(max(t, 0), 1)
	target := t * p.params[n-1]

	i := sort.Search(n, func(i int) bool { return p.params[i] > target })
	switch {
	case i == n:
		return p.points[n-1], true
	case i == 0:
		return p.points[0], true
	}

	span := p.params[i] - p.params[i-1]
	if span == 0 {
		return p.points[i], true
	}
	ratio := (target - p.params[i-1]) / span
	return p.points[i-1].Lerp(p.points[i], ratio), true
}

// SampleInto writes the sample at t into dst. dst is left untouched when the
// path is empty.
func (p *Path) SampleInto(t float32, dst *math.Vec3) {
	if pt, ok := p.Sample(t); ok {
		*dst = pt
	}
}

// Points returns the flattened polyline. The slice must not be modified.
func (p *Path) Points() []math.Vec3 { return p.points }

// Params returns the cumulative arc length at each polyline point.
func (p *Path) Params() []float32 { return p.params }

// Hulls returns the segments in insertion order.
func (p *Path) Hulls() []Hull { return p.hulls }

// Len returns the number of segments.
func (p *Path) Len() int { return len(p.hulls) }

// Depth returns the subdivision depth.
func (p *Path) Depth() int { return p.depth }

// Length returns the total polyline length, 0 for an empty path.
func (p *Path) Length() float32 {
	if len(p.params) == 0 {
		return 0
	}
	return p.params[len(p.params)-1]
}
