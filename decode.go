package atlas

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoder turns a named input into non-premultiplied RGBA pixels.
type Decoder interface {
	Decode(name string) (*image.NRGBA, error)
}

// FileDecoder decodes images from the filesystem. Any format registered with
// the image package may be read, which includes PNG, JPEG, GIF, BMP, TIFF
// and WebP.
type FileDecoder struct{}

// Decode implements the Decoder interface.
func (FileDecoder) Decode(file string) (*image.NRGBA, error) {
	m, err := imaging.Open(file)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(m), nil
}

// normalize returns m with its origin at (0, 0) and no padding between rows.
func normalize(m *image.NRGBA) *image.NRGBA {
	if m.Rect.Min != (image.Point{}) || m.Stride != m.Rect.Dx()*4 {
		return imaging.Clone(m)
	}
	return m
}
