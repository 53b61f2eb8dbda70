package atlas

import "math"

// minCanvas is the smallest canvas side length.
const minCanvas = 32

type stats struct {
	maxWidth  int
	maxHeight int
	totalArea int
}

func collectStats(sprites []*Sprite) stats {
	var st stats
	for _, s := range sprites {
		w, h := s.Bounds.Dx(), s.Bounds.Dy()
		st.maxWidth = max(st.maxWidth, w)
		st.maxHeight = max(st.maxHeight, h)
		st.totalArea += w * h
	}
	return st
}

func nextPowerOfTwo(x float64) int {
	if x <= 1 {
		return 1
	}
	return 1 << uint(math.Ceil(math.Log2(x)))
}

// canvasSize estimates the initial canvas. The 1.1 and 1.2 factors leave
// slack for the gaps and shelf waste of the packer.
func canvasSize(st stats, split bool) (int, int) {
	var w, h int
	side := nextPowerOfTwo(1.1 * math.Sqrt(float64(st.totalArea)))
	if !split {
		w = nextPowerOfTwo(float64(max(side, st.maxWidth)))
		h = nextPowerOfTwo(math.Max(1.2*float64(st.totalArea)/float64(w), float64(st.maxHeight)))
	} else {
		w = side
		h = nextPowerOfTwo(1.2 * float64(st.totalArea) / float64(w))
	}
	return max(w, minCanvas), max(h, minCanvas)
}
