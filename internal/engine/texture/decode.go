// Package texture decodes images and uploads them as GL textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// Decode decodes image data. TGA is detected by extension since the format
// has no magic number; everything else goes through image.Decode (BMP, PNG, JPEG).
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// Load reads and decodes an image file.
func Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return Decode(path, data)
}

// ToRGBA converts any image to *image.RGBA with its origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with its rows reversed. GL expects the
// first row of texture data at the bottom.
func FlipVertical(img *image.RGBA) *image.RGBA {
	h := img.Rect.Dy()
	out := image.NewRGBA(img.Rect)
	rowLen := img.Rect.Dx() * 4
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		dst := out.Pix[(h-1-y)*out.Stride:]
		copy(dst[:rowLen], src)
	}
	return out
}

// Gradient builds a vertical two-color image, top to bottom.
func Gradient(width, height int, top, bottom [3]uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		var c [4]uint8
		for i := 0; i < 3; i++ {
			c[i] = uint8(float64(top[i])*(1-t) + float64(bottom[i])*t + 0.5)
		}
		c[3] = 255
		for x := 0; x < width; x++ {
			copy(img.Pix[img.PixOffset(x, y):], c[:])
		}
	}
	return img
}
