package atlas

import (
	"image"

	"github.com/disintegration/imaging"
)

// Sprite is one packed entry in the atlas.
type Sprite struct {
	// Name is the primary source name and Aliases any other sources with
	// identical content, in input order
	Name    string
	Aliases []string

	// Size of the source image before trimming
	RawWidth  int
	RawHeight int

	// Bounds is the trimmed rectangle within the sprite pixels. Once
	// rotated the pixels are replaced by the rotated contents of the
	// pre-rotation bounds so Bounds starts at (0, 0).
	Bounds image.Rectangle

	Rotated bool
	// Offset is the top-left of the bounds in the source image before
	// rotation, only meaningful if Rotated is set
	Offset image.Point

	// Split is reserved for sprites divided into several pieces
	Split []image.Rectangle

	// Dest holds the accepted rectangle(s) on the canvas
	Dest []image.Rectangle

	img   *image.NRGBA
	names []source
	skip  bool
}

// source is an input name and its position in the input list.
type source struct {
	index int
	name  string
}

// rotate turns the sprite 90 degrees counter-clockwise if it is taller than
// it is wide, replacing its pixels with just the rotated bounds.
func (s *Sprite) rotate() {
	if s.Bounds.Dy() <= s.Bounds.Dx() {
		return
	}
	s.img = imaging.Rotate90(s.img.SubImage(s.Bounds))
	s.Offset = s.Bounds.Min
	s.Bounds = s.img.Rect
	s.Rotated = true
}

// SourceRects returns the rectangle(s) in the unrotated source image that
// each canvas rectangle was copied from.
func (s *Sprite) SourceRects() []image.Rectangle {
	if len(s.Split) == 0 {
		if s.Rotated {
			return []image.Rectangle{image.Rect(s.Offset.X, s.Offset.Y, s.Offset.X+s.Bounds.Dy(), s.Offset.Y+s.Bounds.Dx())}
		}
		return []image.Rectangle{s.Bounds}
	}

	rects := make([]image.Rectangle, 0, len(s.Split))
	for _, r := range s.Split {
		if s.Rotated {
			x := s.Bounds.Dy() - r.Min.Y - r.Dy() + s.Offset.X
			y := r.Min.X + s.Offset.Y
			rects = append(rects, image.Rect(x, y, x+r.Dy(), y+r.Dx()))
		} else {
			rects = append(rects, r)
		}
	}
	return rects
}

// composite copies the sprite pixels onto the canvas at each of its
// destination rectangles.
func (s *Sprite) composite(canvas *image.NRGBA) {
	if len(s.Split) == 0 {
		if len(s.Dest) > 0 {
			blit(canvas, s.Dest[len(s.Dest)-1].Min, s.img, s.Bounds)
		}
		return
	}
	for i, r := range s.Split {
		if i < len(s.Dest) {
			blit(canvas, s.Dest[i].Min, s.img, r)
		}
	}
}
