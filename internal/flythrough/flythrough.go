// Package flythrough describes scripted camera tours: a set of numbered
// control points and two tracks, one for the eye and one for the look-at
// target, each a chain of cubic segments referencing those points.
package flythrough

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terrain-flyover/pkg/math"
)

var (
	// ErrUnknownPoint is returned when a segment references a missing point ID.
	ErrUnknownPoint = errors.New("unknown control point")

	// ErrBadSegment is returned when a segment has the wrong number of points.
	ErrBadSegment = errors.New("bad segment")

	// ErrDuplicatePoint is returned when two control points share an ID.
	ErrDuplicatePoint = errors.New("duplicate control point")
)

// ControlPoint is a numbered position in world space.
type ControlPoint struct {
	ID  int        `yaml:"id"`
	Pos [3]float32 `yaml:"pos,flow"`
}

// Position returns the point as a vector.
func (p ControlPoint) Position() math.Vec3 {
	return math.Vec3{X: p.Pos[0], Y: p.Pos[1], Z: p.Pos[2]}
}

// Track lists segments by control point ID. The first segment names all four
// hull points; every later segment names three and starts where the previous
// one ended.
type Track struct {
	Segments [][]int `yaml:"segments,flow"`
}

// Spec is a complete tour.
type Spec struct {
	Points []ControlPoint `yaml:"points"`
	Eye    Track          `yaml:"eye"`
	Target Track          `yaml:"target"`
}

// Load reads and validates a tour file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tour: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a tour from YAML.
func Parse(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing tour: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that point IDs are unique and both tracks resolve.
func (s *Spec) Validate() error {
	points, err := s.index()
	if err != nil {
		return err
	}
	if _, err := s.Eye.resolve(points); err != nil {
		return fmt.Errorf("eye track: %w", err)
	}
	if _, err := s.Target.resolve(points); err != nil {
		return fmt.Errorf("target track: %w", err)
	}
	return nil
}

// Marshal encodes the tour as YAML.
func (s *Spec) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

func (s *Spec) index() (map[int]math.Vec3, error) {
	points := make(map[int]math.Vec3, len(s.Points))
	for _, p := range s.Points {
		if _, dup := points[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePoint, p.ID)
		}
		points[p.ID] = p.Position()
	}
	return points, nil
}

// Default returns the stock tour over the generated terrain: the eye sweeps
// up over the western ridge and back down to the shore while the target
// circles the middle of the map at low height.
func Default() *Spec {
	return &Spec{
		Points: []ControlPoint{
			{0, [3]float32{0.5, 0.1, 1.0}},
			{1, [3]float32{0, 0.12, 1.5}},
			{2, [3]float32{-3.5, 2.5, -1.5}},
			{3, [3]float32{-1.5, 0.85, -1.5}},
			{4, [3]float32{0, 2.2, -1.5}},
			{5, [3]float32{1.5, 0.25, 0}},
			{6, [3]float32{1.5, 0.3, 1.5}},

			{7, [3]float32{0.5, 0.1, 0.5}},
			{8, [3]float32{0, 0.1, 0.5}},
			{9, [3]float32{-0.5, 0.1, 0.0}},
			{10, [3]float32{0, 0.1, -0.5}},
			{11, [3]float32{0.7, 0.1, 0.16}},
			{12, [3]float32{0.21, 0.1, 0.26}},
			{13, [3]float32{0.5, 0.1, 0.8}},
		},
		Eye: Track{Segments: [][]int{
			{0, 1, 2, 3},
			{4, 5, 6},
		}},
		Target: Track{Segments: [][]int{
			{7, 8, 9, 10},
			{11, 12, 13},
		}},
	}
}
