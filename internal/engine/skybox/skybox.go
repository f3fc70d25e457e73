// Package skybox draws a cube map sky centered on the eye.
package skybox

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flyover/internal/engine/scene/shaders"
	"github.com/Faultbox/terrain-flyover/internal/engine/shader"
	"github.com/Faultbox/terrain-flyover/internal/engine/texture"
	"github.com/Faultbox/terrain-flyover/internal/logger"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// FallbackFaceSize is the edge length of generated gradient faces.
const FallbackFaceSize = 64

var (
	skyTop     = [3]uint8{110, 160, 225}
	skyHorizon = [3]uint8{225, 235, 245}
	skyGround  = [3]uint8{150, 150, 140}
)

// CubeVertices returns the 36 positions (12 triangles) of a unit cube
// wound to be seen from inside.
func CubeVertices() []float32 {
	return []float32{
		-1, 1, -1, -1, -1, -1, 1, -1, -1,
		1, -1, -1, 1, 1, -1, -1, 1, -1,

		-1, -1, 1, -1, -1, -1, -1, 1, -1,
		-1, 1, -1, -1, 1, 1, -1, -1, 1,

		1, -1, -1, 1, -1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, -1, 1, -1, -1,

		-1, -1, 1, -1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, -1, 1, -1, -1, 1,

		-1, 1, -1, 1, 1, -1, 1, 1, 1,
		1, 1, 1, -1, 1, 1, -1, 1, -1,

		-1, -1, -1, -1, -1, 1, 1, -1, -1,
		1, -1, -1, -1, -1, 1, 1, -1, 1,
	}
}

// ViewProjection strips the translation from view so the sky never moves
// relative to the eye.
func ViewProjection(view, proj math.Mat4) math.Mat4 {
	return proj.Mul(view.WithoutTranslation())
}

// GradientFaces builds six faces for a plain sky: the side faces fade from
// sky blue to the horizon, the top is sky blue and the bottom ground grey.
func GradientFaces(size int) [6]image.Image {
	side := texture.Gradient(size, size, skyTop, skyHorizon)
	return [6]image.Image{
		side, side,
		texture.Gradient(size, size, skyTop, skyTop),
		texture.Gradient(size, size, skyGround, skyGround),
		side, side,
	}
}

// LoadFaces loads six face images from dir. Names are in +X -X +Y -Y +Z -Z order.
func LoadFaces(dir string, names [6]string) ([6]image.Image, error) {
	var faces [6]image.Image
	var errs []error
	for i, name := range names {
		if name == "" {
			errs = append(errs, fmt.Errorf("face %d: no file name", i))
			continue
		}
		img, err := texture.Load(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("face %d: %w", i, err))
			continue
		}
		faces[i] = img
	}
	return faces, errors.Join(errs...)
}

// Skybox owns the cube mesh, cube map and program.
type Skybox struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	cubeMap uint32
}

// New loads the faces named in dir. Missing or mismatched faces fall back
// to a gradient sky with a warning.
func New(dir string, names [6]string) (*Skybox, error) {
	prog, err := shader.New(shaders.SkyVertexShader, shaders.SkyFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("sky shader: %w", err)
	}
	prog.MustUniform("uViewProj")
	s := &Skybox{program: prog}

	faces, err := LoadFaces(dir, names)
	if err == nil {
		s.cubeMap, err = texture.UploadCubeMap(faces)
	}
	if err != nil {
		logger.Warn("skybox faces unavailable, using gradient", zap.String("dir", dir), zap.Error(err))
		if s.cubeMap, err = texture.UploadCubeMap(GradientFaces(FallbackFaceSize)); err != nil {
			s.Destroy()
			return nil, err
		}
	}

	verts := CubeVertices()
	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return s, nil
}

// Draw renders the sky with depth writes disabled. Call it before the rest
// of the scene.
func (s *Skybox) Draw(view, proj math.Mat4) {
	gl.DepthMask(false)
	defer gl.DepthMask(true)

	s.program.Use()
	s.program.SetMat4("uViewProj", ViewProjection(view, proj))
	s.program.SetInt("uSky", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cubeMap)

	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (s *Skybox) Destroy() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		s.vao = 0
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
		s.vbo = 0
	}
	texture.Delete(s.cubeMap)
	s.cubeMap = 0
	s.program.Delete()
}
