package atlas

import "image"

// blit copies the sr rectangle of src onto dst with sr.Min aligned to dp.
// Anything falling outside either image is clipped away, so a destination
// entirely off the canvas copies nothing. Pixels are copied byte for byte.
func blit(dst *image.NRGBA, dp image.Point, src *image.NRGBA, sr image.Rectangle) {
	delta := dp.Sub(sr.Min)
	sr = sr.Intersect(src.Rect)
	dr := sr.Add(delta)
	clipped := dr.Intersect(dst.Rect)
	if clipped.Empty() {
		return
	}
	sr.Min = sr.Min.Add(clipped.Min.Sub(dr.Min))

	n := clipped.Dx() * 4
	for y := 0; y < clipped.Dy(); y++ {
		di := dst.PixOffset(clipped.Min.X, clipped.Min.Y+y)
		si := src.PixOffset(sr.Min.X, sr.Min.Y+y)
		copy(dst.Pix[di:di+n], src.Pix[si:si+n])
	}
}
