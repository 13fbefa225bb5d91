package encode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"out.png":         PNGFormat{},
		"out.jpg":         JPGFormat{},
		"out.jpeg":        JPGFormat{},
		"dir/frame.gif":   GIFFormat{},
		"snapshot.v2.png": PNGFormat{},
	}
	for filename, expected := range cases {
		f, ok := DetectFormat(filename)
		require.True(t, ok, filename)
		assert.Equal(t, expected, f, filename)
	}

	for _, filename := range []string{"", "-", "out", "out.bmp", "png"} {
		_, ok := DetectFormat(filename)
		assert.False(t, ok, filename)
	}
}

func TestPNGEncode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, PNGFormat{}.Encode(&buf, img))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	r, _, _, _ := decoded.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestAllFormatsEncode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for name, f := range Formats {
		var buf bytes.Buffer
		require.NoError(t, f.Encode(&buf, img), name)
		assert.NotZero(t, buf.Len(), name)
	}
}
