/*
Package texture encodes a finished atlas canvas.

The canvas is written as PNG, BMP or TIFF. PNG output may optionally be
reduced to a palette of at most 256 colors, which usually produces a much
smaller file for pixel art at the cost of some color fidelity.
*/
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format identifies an image encoding.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// MaxColors is the largest palette that may be requested.
const MaxColors = 256

var errPaletteFormat = errors.New("texture: only png supports a reduced palette")

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case PNG, BMP, TIFF:
		return f, nil
	}
	return "", fmt.Errorf("texture: unknown format \"%s\"", s)
}

// Extension returns the file extension conventionally used by f.
func (f Format) Extension() string {
	return "." + string(f)
}

// Options control how the canvas is encoded.
type Options struct {
	Format Format
	// Colors, if non-zero, reduces the canvas to a palette of at most
	// this many colors
	Colors int
}

// Quantize reduces m to a palette of at most n colors.
func Quantize(m image.Image, n int) *image.Paletted {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

// Validate reports whether o can be used to encode an image.
func (o Options) Validate() error {
	switch o.Format {
	case PNG, BMP, TIFF, "":
	default:
		return fmt.Errorf("texture: unknown format \"%s\"", o.Format)
	}
	if o.Colors < 0 || o.Colors > MaxColors {
		return fmt.Errorf("texture: palette of %d colors is out of range", o.Colors)
	}
	if o.Colors > 0 && o.Format != PNG && o.Format != "" {
		return errPaletteFormat
	}
	return nil
}

// Encode writes m to w.
func Encode(w io.Writer, m image.Image, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Colors > 0 {
		m = Quantize(m, o.Colors)
	}

	switch o.Format {
	case PNG, "":
		e := png.Encoder{CompressionLevel: png.BestCompression}
		return e.Encode(w, m)
	case BMP:
		return bmp.Encode(w, m)
	default:
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	}
}

// WriteFile encodes m to file. Nothing is left behind if encoding fails.
func WriteFile(file string, m image.Image, o Options) (err error) {
	if err := o.Validate(); err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(file)
		}
	}()

	return Encode(f, m, o)
}
