package flythrough

import (
	"fmt"

	"github.com/Faultbox/terrain-flyover/pkg/bezier"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// Build turns both tracks into paths subdivided to depth.
func (s *Spec) Build(depth int) (eye, target *bezier.Path, err error) {
	points, err := s.index()
	if err != nil {
		return nil, nil, err
	}
	if eye, err = s.Eye.Build(points, depth); err != nil {
		return nil, nil, fmt.Errorf("eye track: %w", err)
	}
	if target, err = s.Target.Build(points, depth); err != nil {
		return nil, nil, fmt.Errorf("target track: %w", err)
	}
	return eye, target, nil
}

// Build resolves the track against points and returns its path. A track
// without segments yields an empty path.
func (t Track) Build(points map[int]math.Vec3, depth int) (*bezier.Path, error) {
	segs, err := t.resolve(points)
	if err != nil {
		return nil, err
	}

	p := bezier.New(bezier.WithDepth(depth))
	for i, seg := range segs {
		if i == 0 {
			p.SetPoints(seg[0], seg[1], seg[2], seg[3])
			continue
		}
		if err := p.AddSegment(seg[0], seg[1], seg[2]); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return p, nil
}

func (t Track) resolve(points map[int]math.Vec3) ([][]math.Vec3, error) {
	segs := make([][]math.Vec3, 0, len(t.Segments))
	for i, ids := range t.Segments {
		want := 3
		if i == 0 {
			want = 4
		}
		if len(ids) != want {
			return nil, fmt.Errorf("segment %d: %w: has %d points, want %d", i, ErrBadSegment, len(ids), want)
		}

		seg := make([]math.Vec3, len(ids))
		for j, id := range ids {
			pos, ok := points[id]
			if !ok {
				return nil, fmt.Errorf("segment %d: %w: %d", i, ErrUnknownPoint, id)
			}
			seg[j] = pos
		}
		segs = append(segs, seg)
	}
	return segs, nil
}
