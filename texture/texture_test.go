package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x * 8), uint8(y * 8), uint8((x + y) * 4), 0xff})
		}
	}
	return m
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"png", "bmp", "tiff"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, "."+s, f.Extension())
	}

	_, err := ParseFormat("gif")
	assert.Error(t, err)
}

func TestEncodePNG(t *testing.T) {
	src := testImage()
	src.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 0x40})

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, src, Options{Format: PNG}))

	m, err := png.Decode(b)
	require.NoError(t, err)
	nrgba, ok := m.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, src.Pix, nrgba.Pix)
}

func TestEncodeDefaultFormat(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, testImage(), Options{}))

	_, format, err := image.DecodeConfig(b)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestEncodePalette(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, testImage(), Options{Format: PNG, Colors: 16}))

	m, err := png.Decode(b)
	require.NoError(t, err)
	pm, ok := m.(*image.Paletted)
	require.True(t, ok)
	assert.LessOrEqual(t, len(pm.Palette), 16)
	assert.Equal(t, image.Rect(0, 0, 32, 32), pm.Rect)
}

func TestQuantize(t *testing.T) {
	pm := Quantize(testImage(), 4)
	assert.LessOrEqual(t, len(pm.Palette), 4)
	assert.NotEmpty(t, pm.Palette)
}

func TestEncodeOtherFormats(t *testing.T) {
	src := testImage()

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, src, Options{Format: BMP}))
	m, err := bmp.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, src.Rect, m.Bounds())

	b.Reset()
	require.NoError(t, Encode(b, src, Options{Format: TIFF}))
	m, err = tiff.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, src.Rect, m.Bounds())
	r, g, bl, a := m.At(5, 7).RGBA()
	er, eg, eb, ea := src.At(5, 7).RGBA()
	assert.Equal(t, []uint32{er, eg, eb, ea}, []uint32{r, g, bl, a})
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		o    Options
	}{
		{"negative", Options{Format: PNG, Colors: -1}},
		{"too many", Options{Format: PNG, Colors: MaxColors + 1}},
		{"bmp palette", Options{Format: BMP, Colors: 16}},
		{"unknown", Options{Format: "gif"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.o.Validate())
			b := new(bytes.Buffer)
			assert.Error(t, Encode(b, testImage(), tt.o))
			assert.Zero(t, b.Len())
		})
	}

	assert.NoError(t, Options{}.Validate())
	assert.NoError(t, Options{Format: PNG, Colors: MaxColors}.Validate())
	assert.NoError(t, Options{Format: TIFF}.Validate())

	assert.ErrorIs(t, Encode(new(bytes.Buffer), testImage(), Options{Format: TIFF, Colors: 8}), errPaletteFormat)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "atlas.png")
	require.NoError(t, WriteFile(file, testImage(), Options{Format: PNG, Colors: 16}))

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()
	m, err := png.Decode(f)
	require.NoError(t, err)
	assert.IsType(t, &image.Paletted{}, m)

	bad := filepath.Join(dir, "atlas.bmp")
	assert.ErrorIs(t, WriteFile(bad, testImage(), Options{Format: BMP, Colors: 16}), errPaletteFormat)
	assert.NoFileExists(t, bad)

	assert.Error(t, WriteFile(filepath.Join(dir, "missing", "atlas.png"), testImage(), Options{}))
}
