package terrain

import "github.com/chewxy/math32"

// At returns the height of texel (x, z), or 0 outside the map.
func (h *Heightmap) At(x, z int) float32 {
	if x < 0 || z < 0 || x >= h.Size || z >= h.Size {
		return 0
	}
	return h.Data[z*h.Size+x]
}

// Texel converts a world coordinate in [-1, 1] to a texel index.
func (h *Heightmap) Texel(w float32) int {
	return int(math32.Floor((w + 1) / 2 * float32(h.Size)))
}

// HeightAtWorld returns the height of the texel under (wx, wz) plus offset.
// Positions off the map report 0 with no offset.
func (h *Heightmap) HeightAtWorld(wx, wz, offset float32) float32 {
	gx, gz := h.Texel(wx), h.Texel(wz)
	if gx < 0 || gz < 0 || gx >= h.Size || gz >= h.Size {
		return 0
	}
	return h.Data[gz*h.Size+gx] + offset
}

// Bilinear returns the height at (wx, wz) interpolated between the four
// nearest texel centers. Positions are clamped to the map.
func (h *Heightmap) Bilinear(wx, wz float32) float32 {
	if h.Size == 0 {
		return 0
	}
	fx := (wx+1)/2*float32(h.Size) - 0.5
	fz := (wz+1)/2*float32(h.Size) - 0.5
	last := float32(h.Size - 1)
	fx = clampf(fx, 0, last)
	fz = clampf(fz, 0, last)

	x0, z0 := int(fx), int(fz)
	x1, z1 := min(x0+1, h.Size-1), min(z0+1, h.Size-1)
	tx, tz := fx-float32(x0), fz-float32(z0)

	south := h.At(x0, z0)*(1-tx) + h.At(x1, z0)*tx
	north := h.At(x0, z1)*(1-tx) + h.At(x1, z1)*tx
	return south*(1-tz) + north*tz
}

// MinMax returns the lowest and highest heights.
func (h *Heightmap) MinMax() (lo, hi float32) {
	if len(h.Data) == 0 {
		return 0, 0
	}
	lo, hi = h.Data[0], h.Data[0]
	for _, v := range h.Data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
