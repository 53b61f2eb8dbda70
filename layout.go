package atlas

import (
	"image"

	"github.com/bodgit/atlas/shelf"
)

// MaxCanvas is the largest canvas side length the layout will grow to.
const MaxCanvas = 2048

// layout packs the sprites starting from a w by h canvas, growing it until
// everything fits. On success each sprite's Dest holds its canvas rectangle
// and the final canvas size is returned.
func (p *Packer) layout(sprites []*Sprite, w, h int) (int, int, error) {
	sizes := make([]image.Point, len(sprites))
	for i, s := range sprites {
		sizes[i] = s.Bounds.Size()
	}

	for {
		if rects, ok := shelf.Pack(sizes, w, h); ok {
			for i, s := range sprites {
				s.Dest = []image.Rectangle{rects[i]}
			}
			return w, h, nil
		}
		p.logger.Debug("canvas too small", "width", w, "height", h)

		if w >= MaxCanvas && h >= MaxCanvas {
			return 0, 0, ErrCanvasTooSmall
		}
		if w != h {
			w = max(w, h)
			h = w
		} else {
			w *= 2
		}
	}
}
