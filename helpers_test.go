package atlas

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

type memDecoder map[string]*image.NRGBA

func (d memDecoder) Decode(name string) (*image.NRGBA, error) {
	m, ok := d[name]
	if !ok {
		return nil, fmt.Errorf("no such image \"%s\"", name)
	}
	// Hand out a copy as the packer owns what it decodes
	dup := *m
	dup.Pix = append([]uint8(nil), m.Pix...)
	return &dup, nil
}

// newImage returns a w by h image with r filled by pixels encoding their own
// coordinates and id, everything else left transparent.
func newImage(w, h int, r image.Rectangle, id uint8) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), id, 0xff})
		}
	}
	return m
}
