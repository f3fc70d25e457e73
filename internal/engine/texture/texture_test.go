package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// BGR pixels, bottom row first: red, green / blue, white.
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0,
		255, 0, 0, 255, 255, 255,
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	rgba := img.(*image.RGBA)

	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, rgba.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba.RGBAAt(1, 0))
}

func TestDecodeTGATopDownAlpha(t *testing.T) {
	data := tgaHeader(TGATypeUncompressed, 1, 2, 32, 0x20)
	data = append(data, 1, 2, 3, 4, 5, 6, 7, 8)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	rgba := img.(*image.RGBA)

	assert.Equal(t, color.RGBA{R: 3, G: 2, B: 1, A: 4}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 7, G: 6, B: 5, A: 8}, rgba.RGBAAt(0, 1))
}

func TestDecodeTGARLE(t *testing.T) {
	data := tgaHeader(TGATypeRLE, 3, 1, 24, 0x20)
	// Run of two blue pixels, then one raw red pixel.
	data = append(data, 0x81, 255, 0, 0, 0x00, 0, 0, 255)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	rgba := img.(*image.RGBA)

	blue := color.RGBA{B: 255, A: 255}
	assert.Equal(t, blue, rgba.RGBAAt(0, 0))
	assert.Equal(t, blue, rgba.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(2, 0))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0); h[1] = 1; return h }()},
		{"grayscale", tgaHeader(3, 1, 1, 8, 0)},
		{"16 bit", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated pixels", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated id", func() []byte { h := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0); h[0] = 40; return h }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestDecodeBMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(src, src.Rect, image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
	src.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetRGBA(1, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))

	img, err := Decode("face.bmp", buf.Bytes())
	require.NoError(t, err)
	rgba := ToRGBA(img)

	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 200, G: 100, B: 50, A: 255}, rgba.RGBAAt(1, 1))
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode("noise.bin", []byte("not an image"))
	assert.ErrorContains(t, err, "noise.bin")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grass.tga")
	data := append(tgaHeader(TGATypeUncompressed, 1, 1, 24, 0), 0, 128, 0)
	require.NoError(t, os.WriteFile(path, data, 0644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())

	_, err = Load(filepath.Join(t.TempDir(), "missing.bmp"))
	assert.Error(t, err)
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(2, 3, color.RGBA{R: 9, A: 255})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	out := ToRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Rect)
	assert.Equal(t, color.RGBA{R: 9, A: 255}, out.RGBAAt(0, 1))

	assert.Same(t, src, ToRGBA(src))
}

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	for y := 0; y < 3; y++ {
		img.SetRGBA(0, y, color.RGBA{R: uint8(y), A: 255})
	}

	out := FlipVertical(img)
	for y := 0; y < 3; y++ {
		assert.Equal(t, uint8(2-y), out.RGBAAt(0, y).R)
	}
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).R, "source unchanged")
}

func TestGradient(t *testing.T) {
	img := Gradient(2, 3, [3]uint8{0, 0, 200}, [3]uint8{200, 200, 200})
	assert.Equal(t, color.RGBA{B: 200, A: 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 100, G: 100, B: 200, A: 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, img.RGBAAt(1, 2))

	one := Gradient(1, 1, [3]uint8{1, 2, 3}, [3]uint8{9, 9, 9})
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, one.RGBAAt(0, 0))
}
