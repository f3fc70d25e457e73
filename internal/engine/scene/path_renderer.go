package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/terrain-flyover/internal/engine/debug"
	"github.com/Faultbox/terrain-flyover/internal/engine/scene/shaders"
	"github.com/Faultbox/terrain-flyover/internal/engine/shader"
	"github.com/Faultbox/terrain-flyover/pkg/bezier"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// Overlay colors.
var (
	EyePathColor    = [4]float32{0.9, 0.2, 0.1, 1}
	TargetPathColor = [4]float32{0.1, 0.3, 0.9, 1}
	hullColor       = [4]float32{0.4, 0.4, 0.4, 1}
	boundsColor     = [4]float32{0.2, 0.7, 0.2, 1}
)

// lineBuffer is a VAO/VBO pair holding [x, y, z] vertices.
type lineBuffer struct {
	vao   uint32
	vbo   uint32
	count int32
}

func (b *lineBuffer) upload(verts []float32) {
	if b.vao == 0 {
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.vbo)
		gl.BindVertexArray(b.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
		gl.EnableVertexAttribArray(0)
	} else {
		gl.BindVertexArray(b.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	}
	b.count = int32(len(verts) / 3)
	if b.count > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	}
	gl.BindVertexArray(0)
}

func (b *lineBuffer) draw(mode uint32) {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(mode, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *lineBuffer) destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	b.count = 0
}

// pathOverlay holds the buffers for one path.
type pathOverlay struct {
	strip  lineBuffer
	hull   lineBuffer
	points lineBuffer
	color  [4]float32
}

func (o *pathOverlay) set(p *bezier.Path) {
	o.strip.upload(debug.PathStrip(p))
	o.hull.upload(debug.HullLines(p))
	o.points.upload(debug.ControlPoints(p))
}

// PathRenderer draws camera paths, their control polygons and bounds.
type PathRenderer struct {
	program *shader.Program
	eye     pathOverlay
	target  pathOverlay
	bounds  lineBuffer
}

// NewPathRenderer compiles the line program.
func NewPathRenderer() (*PathRenderer, error) {
	prog, err := shader.New(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	prog.MustUniform("uViewProj")
	return &PathRenderer{
		program: prog,
		eye:     pathOverlay{color: EyePathColor},
		target:  pathOverlay{color: TargetPathColor},
	}, nil
}

// SetPaths re-uploads the overlays. Call it after the paths change.
func (pr *PathRenderer) SetPaths(eye, target *bezier.Path) {
	pr.eye.set(eye)
	pr.target.set(target)

	var box []float32
	lo, hi, ok := debug.Bounds(eye)
	if tlo, thi, tok := debug.Bounds(target); tok {
		if ok {
			lo = math.V3(min(lo.X, tlo.X), min(lo.Y, tlo.Y), min(lo.Z, tlo.Z))
			hi = math.V3(max(hi.X, thi.X), max(hi.Y, thi.Y), max(hi.Z, thi.Z))
		} else {
			lo, hi, ok = tlo, thi, true
		}
	}
	if ok {
		box = debug.PaddedBoxLines(lo, hi, 0.05)
	}
	pr.bounds.upload(box)
}

// Render draws the overlays on top of the scene.
func (pr *PathRenderer) Render(viewProj math.Mat4) {
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	defer gl.Disable(gl.PROGRAM_POINT_SIZE)

	p := pr.program
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetFloat("uPointSize", 6)

	p.SetVec4("uColor", boundsColor[0], boundsColor[1], boundsColor[2], boundsColor[3])
	pr.bounds.draw(gl.LINES)

	for _, o := range []*pathOverlay{&pr.eye, &pr.target} {
		p.SetVec4("uColor", hullColor[0], hullColor[1], hullColor[2], hullColor[3])
		o.hull.draw(gl.LINES)
		p.SetVec4("uColor", o.color[0], o.color[1], o.color[2], o.color[3])
		o.strip.draw(gl.LINE_STRIP)
		o.points.draw(gl.POINTS)
	}
}

// Destroy releases all resources.
func (pr *PathRenderer) Destroy() {
	for _, o := range []*pathOverlay{&pr.eye, &pr.target} {
		o.strip.destroy()
		o.hull.destroy()
		o.points.destroy()
	}
	pr.bounds.destroy()
	pr.program.Delete()
}
