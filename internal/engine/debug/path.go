// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/terrain-flyover/pkg/bezier"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// PathStrip returns the polyline of p as a line strip, [x, y, z] per vertex.
func PathStrip(p *bezier.Path) []float32 {
	if p == nil {
		return nil
	}
	pts := p.Points()
	out := make([]float32, 0, len(pts)*3)
	for _, v := range pts {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}

// HullLines returns the control polygon of every segment as line pairs:
// P1-P2, P2-P3, P3-P4.
func HullLines(p *bezier.Path) []float32 {
	if p == nil {
		return nil
	}
	hulls := p.Hulls()
	out := make([]float32, 0, len(hulls)*3*2*3)
	for _, h := range hulls {
		for _, e := range [3][2]math.Vec3{{h.P1, h.P2}, {h.P2, h.P3}, {h.P3, h.P4}} {
			out = append(out, e[0].X, e[0].Y, e[0].Z, e[1].X, e[1].Y, e[1].Z)
		}
	}
	return out
}

// ControlPoints returns the distinct control points of p as [x, y, z] points.
// A shared join point between segments appears once.
func ControlPoints(p *bezier.Path) []float32 {
	if p == nil {
		return nil
	}
	var out []float32
	for i, h := range p.Hulls() {
		pts := []math.Vec3{h.P1, h.P2, h.P3, h.P4}
		if i > 0 {
			pts = pts[1:]
		}
		for _, v := range pts {
			out = append(out, v.X, v.Y, v.Z)
		}
	}
	return out
}

// Bounds returns the axis-aligned box around the control points of p.
// Cubic segments never leave their hull, so this also bounds the curve.
// ok is false for an empty path.
func Bounds(p *bezier.Path) (lo, hi math.Vec3, ok bool) {
	pts := ControlPoints(p)
	if len(pts) == 0 {
		return lo, hi, false
	}
	lo = math.V3(pts[0], pts[1], pts[2])
	hi = lo
	for i := 3; i < len(pts); i += 3 {
		lo = math.V3(min(lo.X, pts[i]), min(lo.Y, pts[i+1]), min(lo.Z, pts[i+2]))
		hi = math.V3(max(hi.X, pts[i]), max(hi.Y, pts[i+1]), max(hi.Z, pts[i+2]))
	}
	return lo, hi, true
}
