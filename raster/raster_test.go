package raster_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/strata"
	"github.com/phanxgames/strata/raster"
	"github.com/phanxgames/strata/scene"
)

var white = strata.Color{R: 1, G: 1, B: 1, A: 1}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func rgba(t *testing.T, img image.Image, x, y int) (r, g, b, a uint8) {
	t.Helper()
	cr, cg, cb, ca := img.At(x, y).RGBA()
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8), uint8(ca >> 8)
}

func TestRasterizeRejectsBadInput(t *testing.T) {
	_, err := raster.Rasterize(nil, 10, 10)
	assert.Error(t, err)

	s := scene.NewBuilder().Build().(*scene.Scene)
	_, err = raster.Rasterize(s, 0, 10)
	assert.Error(t, err)
}

func TestRasterizeBackground(t *testing.T) {
	s := scene.NewBuilder().Build().(*scene.Scene)
	img, err := raster.Rasterize(s, 8, 8, raster.WithBackground(white))
	require.NoError(t, err)

	r, g, b, a := rgba(t, img, 4, 4)
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, [4]uint8{r, g, b, a})
}

func TestRasterizeTextureUnderOffset(t *testing.T) {
	b := scene.NewBuilder()
	b.PushOffset(20, 20)
	b.AddTexture(solid(10, 10, color.RGBA{R: 255, A: 255}), strata.OffsetZero, 10, 10, false)
	b.Pop()
	s := b.Build().(*scene.Scene)

	img, err := raster.Rasterize(s, 64, 64, raster.WithBackground(white))
	require.NoError(t, err)

	r, g, _, _ := rgba(t, img, 25, 25)
	assert.Greater(t, r, uint8(200))
	assert.Less(t, g, uint8(60))

	_, g, _, _ = rgba(t, img, 5, 5)
	assert.Equal(t, uint8(255), g, "outside the texture keeps the background")
}

func TestRasterizePictureLayerTree(t *testing.T) {
	root := strata.NewOffsetLayer(strata.OffsetZero)
	root.Attach(t)
	pic := strata.NewPictureLayer(strata.RectFromLTWH(0, 0, 32, 32))
	pic.SetPicture(strata.RecordPicture(32, 32, nil))
	root.Append(pic)

	s := root.BuildScene(scene.NewBuilder()).(*scene.Scene)
	img, err := raster.Rasterize(s, 32, 32)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
}

func TestWritePNG(t *testing.T) {
	b := scene.NewBuilder()
	b.PushOpacity(128, strata.OffsetZero)
	b.AddPerformanceOverlay(strata.OverlayAll, strata.RectFromLTWH(0, 0, 16, 16))
	b.Pop()
	s := b.Build().(*scene.Scene)

	var buf bytes.Buffer
	require.NoError(t, raster.WritePNG(&buf, s, 16, 16))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}
