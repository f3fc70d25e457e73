// Package scene renders the terrain, water, sky and camera path overlays.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flyover/internal/assets"
	"github.com/Faultbox/terrain-flyover/internal/engine/scene/shaders"
	"github.com/Faultbox/terrain-flyover/internal/engine/shader"
	"github.com/Faultbox/terrain-flyover/internal/engine/terrain"
	"github.com/Faultbox/terrain-flyover/internal/engine/texture"
	"github.com/Faultbox/terrain-flyover/internal/logger"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// Biome indexes the terrain texture layers.
type Biome int

const (
	BiomeGrass Biome = iota
	BiomeRock
	BiomeSand
	BiomeSediment
	BiomeSnow
	biomeCount
)

// BiomeTextures are the file names looked up for each biome.
var BiomeTextures = [biomeCount]string{"grass.tga", "rock.tga", "sand.tga", "sediment.tga", "snow.tga"}

// biomeFallback colors replace missing biome textures.
var biomeFallback = [biomeCount][3]uint8{
	{86, 125, 70},
	{120, 112, 104},
	{194, 178, 128},
	{110, 95, 70},
	{240, 240, 245},
}

var biomeUniforms = [biomeCount]string{"uGrass", "uRock", "uSand", "uSediment", "uSnow"}

// Texture units used by the terrain program.
const (
	unitHeightmap = 0
	unitBiome0    = 1
)

// TerrainRenderer draws the heightmap-displaced grid.
type TerrainRenderer struct {
	program *shader.Program

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	heightmap uint32
	biomes    [biomeCount]uint32

	// SnowLine is the height where snow starts.
	SnowLine float32
	// Tiling is how often the biome textures repeat across the terrain.
	Tiling   float32
	LightDir math.Vec3
}

// NewTerrainRenderer compiles the terrain program.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	prog, err := shader.New(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	prog.MustUniform("uViewProj")
	prog.MustUniform("uHeightmap")
	return &TerrainRenderer{
		program:  prog,
		SnowLine: 0.6,
		Tiling:   24,
		LightDir: math.V3(-0.4, -1, -0.3),
	}, nil
}

// LoadTerrain uploads the heightmap and grid, and loads biome textures
// through the asset manager. Missing textures become solid colors.
func (tr *TerrainRenderer) LoadTerrain(hm *terrain.Heightmap, grid *terrain.Grid, am *assets.Manager) error {
	tr.clearTerrain()

	tex, err := texture.UploadHeightmap(hm.Size, hm.Data)
	if err != nil {
		return fmt.Errorf("terrain heightmap: %w", err)
	}
	tr.heightmap = tex

	for i, name := range BiomeTextures {
		tr.biomes[i] = loadBiome(am, name, biomeFallback[i])
	}

	tr.uploadGrid(grid)
	return nil
}

func loadBiome(am *assets.Manager, name string, fallback [3]uint8) uint32 {
	if am != nil {
		data, err := am.Load(name)
		if err == nil {
			img, err := texture.Decode(name, data)
			if err == nil {
				return texture.Upload2D(img)
			}
			logger.Warn("biome texture unreadable", zap.String("file", name), zap.Error(err))
		} else {
			logger.Debug("biome texture missing", zap.String("file", name), zap.Error(err))
		}
	}
	return texture.Solid(fallback[0], fallback[1], fallback[2])
}

func (tr *TerrainRenderer) uploadGrid(grid *terrain.Grid) {
	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(grid.Vertices)*4, gl.Ptr(grid.Vertices), gl.STATIC_DRAW)

	// Position (location 0): x, z pairs
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(grid.Indices)*4, gl.Ptr(grid.Indices), gl.STATIC_DRAW)
	tr.indexCount = int32(len(grid.Indices))

	gl.BindVertexArray(0)
}

// Render draws the terrain. With clip set, geometry below waterLevel is
// discarded; the mirror pass uses it so underwater terrain does not reflect.
func (tr *TerrainRenderer) Render(viewProj math.Mat4, waterLevel float32, clip bool) {
	if tr.vao == 0 {
		return
	}

	p := tr.program
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetFloat("uWaterLevel", waterLevel)
	p.SetFloat("uSnowLine", tr.SnowLine)
	p.SetFloat("uTiling", tr.Tiling)
	p.SetVec3("uLightDir", tr.LightDir)
	if clip {
		p.SetInt("uClip", 1)
		gl.Enable(gl.CLIP_DISTANCE0)
		defer gl.Disable(gl.CLIP_DISTANCE0)
	} else {
		p.SetInt("uClip", 0)
	}

	gl.ActiveTexture(gl.TEXTURE0 + unitHeightmap)
	gl.BindTexture(gl.TEXTURE_2D, tr.heightmap)
	p.SetInt("uHeightmap", unitHeightmap)
	for i, tex := range tr.biomes {
		unit := int32(unitBiome0 + i)
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex)
		p.SetInt(biomeUniforms[i], unit)
	}

	gl.BindVertexArray(tr.vao)
	gl.DrawElements(gl.TRIANGLE_STRIP, tr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (tr *TerrainRenderer) clearTerrain() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	texture.Delete(tr.heightmap)
	tr.heightmap = 0
	for i, tex := range tr.biomes {
		texture.Delete(tex)
		tr.biomes[i] = 0
	}
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearTerrain()
	tr.program.Delete()
}
