package debug

import "github.com/Faultbox/terrain-flyover/pkg/math"

// BoxVertexCount is the number of vertices in a box wireframe (12 edges x 2).
const BoxVertexCount = 24

// BoxLines creates line pairs for the wireframe of the box [lo, hi].
func BoxLines(lo, hi math.Vec3) []float32 {
	return []float32{
		// Bottom
		lo.X, lo.Y, lo.Z, hi.X, lo.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, lo.Y, hi.Z,
		hi.X, lo.Y, hi.Z, lo.X, lo.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, lo.Y, lo.Z,
		// Top
		lo.X, hi.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, hi.Y, lo.Z, hi.X, hi.Y, hi.Z,
		hi.X, hi.Y, hi.Z, lo.X, hi.Y, hi.Z,
		lo.X, hi.Y, hi.Z, lo.X, hi.Y, lo.Z,
		// Verticals
		lo.X, lo.Y, lo.Z, lo.X, hi.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, lo.Y, hi.Z, hi.X, hi.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, hi.Y, hi.Z,
	}
}

// PaddedBoxLines is BoxLines with the box grown by padding on every side.
func PaddedBoxLines(lo, hi math.Vec3, padding float32) []float32 {
	pad := math.V3(padding, padding, padding)
	return BoxLines(lo.Sub(pad), hi.Add(pad))
}
