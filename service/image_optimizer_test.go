package service

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonString(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// noisyPNG encodes an image PNG cannot compress well, so re-encoding always shrinks it
func noisyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOptimizeImage_Resizes(t *testing.T) {
	o := NewImageOptimizer(400)

	out, err := o.OptimizeImage(noisyPNG(t, 800, 200))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestOptimizeImage_KeepsSmallImages(t *testing.T) {
	o := NewImageOptimizer(400)

	out, err := o.OptimizeImage(noisyPNG(t, 50, 80))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 80), img.Bounds())
}

func TestOptimizeImage_Invalid(t *testing.T) {
	_, err := NewImageOptimizer(0).OptimizeImage([]byte("not an image"))
	assert.Error(t, err)
}

func TestOptimizeDataURI(t *testing.T) {
	o := NewImageOptimizer(200)

	same, ok, err := o.OptimizeDataURI("https://cdn.example.com/a.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "https://cdn.example.com/a.jpg", same)

	_, _, err = o.OptimizeDataURI("data:image/png,rawbytes")
	assert.Error(t, err)

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(noisyPNG(t, 600, 300))
	out, ok, err := o.OptimizeDataURI(uri)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out, "data:image/jpeg;base64,")
	assert.Less(t, len(out), len(uri))
}

func TestOptimizeProductImages(t *testing.T) {
	o := NewImageOptimizer(200)
	p := product(1, "Photo Tee")
	p.Images = []string{
		"https://cdn.example.com/a.jpg",
		"data:image/png;base64," + base64.StdEncoding.EncodeToString(noisyPNG(t, 600, 300)),
	}

	out, changed, err := o.OptimizeProductImages(p)
	require.NoError(t, err)

	assert.Equal(t, 1, changed)
	assert.Equal(t, p.Images[0], out.Images[0])
	assert.NotEqual(t, p.Images[1], out.Images[1])
	assert.Contains(t, p.Images[1], "data:image/png", "the input is not modified")
}
