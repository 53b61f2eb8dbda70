package atlas

import "image"

// minSide is the smallest width or height a bounding rectangle may have.
const minSide = 2

func alphaAt(m *image.NRGBA, x, y int) uint8 {
	return m.Pix[m.PixOffset(x, y)+3]
}

// Is row y transparent between x1 and x2
func clearRow(m *image.NRGBA, x1, x2, y int) bool {
	for x := x1; x < x2; x++ {
		if alphaAt(m, x, y) > 0 {
			return false
		}
	}
	return true
}

// Is column x transparent between y1 and y2
func clearColumn(m *image.NRGBA, y1, y2, x int) bool {
	for y := y1; y < y2; y++ {
		if alphaAt(m, x, y) > 0 {
			return false
		}
	}
	return true
}

// findBounds returns the smallest rectangle enclosing every pixel of m with a
// non-zero alpha. The rectangle is never narrower or shorter than minSide so
// a fully transparent image collapses to its bottom-right corner. m must be
// at least minSide pixels in each direction with its origin at (0, 0).
func findBounds(m *image.NRGBA, trim bool) image.Rectangle {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	if !trim {
		return image.Rect(0, 0, width, height)
	}

	x, y, w, h := 0, 0, width, height

	for y < height && clearRow(m, x, x+w, y) {
		y++
		h--
	}
	for h > 0 && clearRow(m, x, x+w, y+h-1) {
		h--
	}
	h = max(h, minSide)
	y = min(y, height-h)

	for x < width && clearColumn(m, y, y+h, x) {
		x++
		w--
	}
	for w > 0 && clearColumn(m, y, y+h, x+w-1) {
		w--
	}
	w = max(w, minSide)
	x = min(x, width-w)

	return image.Rect(x, y, x+w, y+h)
}

// Bounds decodes the named input and returns the size of the image and the
// rectangle that would be kept when trimming is enabled.
func (p *Packer) Bounds(name string) (image.Point, image.Rectangle, error) {
	m, err := p.decoder.Decode(name)
	if err != nil {
		return image.Point{}, image.Rectangle{}, err
	}
	if m.Rect.Dx() < minSide || m.Rect.Dy() < minSide {
		return m.Rect.Size(), m.Rect.Sub(m.Rect.Min), nil
	}
	m = normalize(m)
	return m.Rect.Size(), findBounds(m, p.config.Trim), nil
}
