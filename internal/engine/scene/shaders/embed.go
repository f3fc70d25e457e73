// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader displaces the grid by the heightmap texture.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader blends the biome textures by height and slope.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// WaterVertexShader is the vertex shader for the water plane.
//
//go:embed water.vert
var WaterVertexShader string

// WaterFragmentShader mixes the water color with the mirror texture.
//
//go:embed water.frag
var WaterFragmentShader string

// SkyVertexShader is the vertex shader for the cube map sky.
//
//go:embed sky.vert
var SkyVertexShader string

// SkyFragmentShader is the fragment shader for the cube map sky.
//
//go:embed sky.frag
var SkyFragmentShader string

// LineVertexShader is the vertex shader for debug line strips.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for debug line strips.
//
//go:embed line.frag
var LineFragmentShader string
