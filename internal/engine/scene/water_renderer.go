package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/terrain-flyover/internal/engine/scene/shaders"
	"github.com/Faultbox/terrain-flyover/internal/engine/shader"
	"github.com/Faultbox/terrain-flyover/internal/engine/water"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// WaterRenderer draws the blended water plane.
type WaterRenderer struct {
	program *shader.Program

	vao uint32
	vbo uint32

	level float32
	color math.Vec3
	alpha float32
	time  float32
}

// NewWaterRenderer compiles the water program.
func NewWaterRenderer() (*WaterRenderer, error) {
	prog, err := shader.New(shaders.WaterVertexShader, shaders.WaterFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("water shader: %w", err)
	}
	prog.MustUniform("uViewProj")
	return &WaterRenderer{program: prog, alpha: 1}, nil
}

// SetupWater uploads the plane and sets its color.
func (wr *WaterRenderer) SetupWater(plane *water.Plane, color [3]float32, alpha float32) {
	wr.clearPlane()
	wr.level = plane.Level
	wr.color = math.V3(color[0], color[1], color[2])
	wr.alpha = alpha

	gl.GenVertexArrays(1, &wr.vao)
	gl.BindVertexArray(wr.vao)

	gl.GenBuffers(1, &wr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, wr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(plane.Vertices)*4, gl.Ptr(plane.Vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}

// Level returns the water height.
func (wr *WaterRenderer) Level() float32 {
	return wr.level
}

// Update advances the ripple animation.
func (wr *WaterRenderer) Update(dt float32) {
	wr.time += dt
}

// Render draws the water. A zero reflection texture draws plain color.
func (wr *WaterRenderer) Render(viewProj math.Mat4, reflection uint32) {
	if wr.vao == 0 {
		return
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	defer gl.Disable(gl.BLEND)

	p := wr.program
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uWaterColor", wr.color)
	p.SetFloat("uAlpha", wr.alpha)
	p.SetFloat("uTime", wr.time)

	if reflection != 0 {
		p.SetInt("uUseReflection", 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, reflection)
		p.SetInt("uReflection", 0)
	} else {
		p.SetInt("uUseReflection", 0)
	}

	gl.BindVertexArray(wr.vao)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.BindVertexArray(0)
}

func (wr *WaterRenderer) clearPlane() {
	if wr.vao != 0 {
		gl.DeleteVertexArrays(1, &wr.vao)
		wr.vao = 0
	}
	if wr.vbo != 0 {
		gl.DeleteBuffers(1, &wr.vbo)
		wr.vbo = 0
	}
}

// Destroy releases all resources.
func (wr *WaterRenderer) Destroy() {
	wr.clearPlane()
	wr.program.Delete()
}
