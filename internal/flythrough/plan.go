package flythrough

import (
	"fmt"
	"io"
	"strings"

	"honnef.co/go/curve"

	"github.com/Faultbox/terrain-flyover/pkg/bezier"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// Plan projects a path onto the XZ ground plane as a 2D Bézier path.
func Plan(p *bezier.Path) curve.BezPath {
	var bp curve.BezPath
	for i, h := range p.Hulls() {
		if i == 0 {
			bp.MoveTo(pt(h.P1))
		}
		bp.CubicTo(pt(h.P2), pt(h.P3), pt(h.P4))
	}
	return bp
}

// PlanLength returns the arc length of the path's ground projection.
func PlanLength(p *bezier.Path) float64 {
	return Plan(p).Arclen(1e-6)
}

func pt(v math.Vec3) curve.Point {
	return curve.Pt(float64(v.X), float64(v.Z))
}

var strokes = []string{"#d62728", "#1f77b4", "#2ca02c", "#9467bd"}

// WriteSVG draws a top-down view of the paths: the exact curves, the
// flattened polylines they are sampled from, and the control hulls.
func WriteSVG(w io.Writer, paths ...*bezier.Path) error {
	box := curve.Rect{X0: -1, Y0: -1, X1: 1, Y1: 1}
	plans := make([]curve.BezPath, len(paths))
	for i, p := range paths {
		plans[i] = Plan(p)
		if p.Len() > 0 {
			box = box.Union(plans[i].BoundingBox())
			box = box.Union(plans[i].ControlBox())
		}
	}
	box = box.Inflate(0.1*box.Width(), 0.1*box.Height())
	stroke := 0.004 * max(box.Width(), box.Height())

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n",
		box.X0, box.Y0, box.Width(), box.Height())
	// Terrain extent.
	fmt.Fprintf(&sb, `<rect x="-1" y="-1" width="2" height="2" fill="#eee" stroke="#999" stroke-width="%g"/>`+"\n", stroke)

	for i, p := range paths {
		if p.Len() == 0 {
			continue
		}
		color := strokes[i%len(strokes)]

		fmt.Fprintf(&sb, `<path d="%s" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
			plans[i].SVG(curve.SVGOptions{MaxPrecision: 4}), color, 2*stroke)

		sb.WriteString(`<polyline fill="none" stroke="black" stroke-dasharray="0.02" stroke-width="`)
		fmt.Fprintf(&sb, `%g" points="`, stroke/2)
		for j, v := range p.Points() {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.4g,%.4g", v.X, v.Z)
		}
		sb.WriteString("\"/>\n")

		for _, h := range p.Hulls() {
			fmt.Fprintf(&sb, `<polyline fill="none" stroke="%s" stroke-opacity="0.4" stroke-width="%g" points="%g,%g %g,%g %g,%g %g,%g"/>`+"\n",
				color, stroke, h.P1.X, h.P1.Z, h.P2.X, h.P2.Z, h.P3.X, h.P3.Z, h.P4.X, h.P4.Z)
			for _, c := range []math.Vec3{h.P1, h.P2, h.P3, h.P4} {
				fmt.Fprintf(&sb, `<circle cx="%g" cy="%g" r="%g" fill="%s"/>`+"\n", c.X, c.Z, 3*stroke, color)
			}
		}
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
