/*
Package shelf implements the shelf packer used to lay out an atlas.

Rectangles at least half as tall as the canvas are stacked side by side along
the top-left edge, tallest first. Their right-hand extents form a skyline
indexed by height. Every other rectangle is placed in horizontal shelves,
shortest first, with each shelf starting to the right of any tall rectangle
that still reaches down to it. Neighbouring rectangles are separated by a
two pixel gap.

If a shelf would run off the bottom of the canvas, the offending rectangle
and all those after it are moved to the tall set and the layout starts again.
This happens at most once per call.
*/
package shelf

import (
	"image"
	"sort"
)

// Gap is the spacing left between neighbouring rectangles.
const Gap = 2

type item struct {
	index int
	size  image.Point
}

func sortItems(items []item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].size, items[j].size
		switch {
		case a.Y != b.Y:
			return a.Y < b.Y
		case a.X != b.X:
			return a.X < b.X
		default:
			return items[i].index < items[j].index
		}
	})
}

// skyline maps the height of each tall rectangle to the right-hand extent of
// the rightmost tall rectangle with that height. Entries are kept ordered by
// height.
type skyline struct {
	heights []int
	rights  []int
}

func (s *skyline) set(height, right int) {
	i := sort.SearchInts(s.heights, height)
	if i < len(s.heights) && s.heights[i] == height {
		s.rights[i] = right
		return
	}
	s.heights = append(s.heights, 0)
	s.rights = append(s.rights, 0)
	copy(s.heights[i+1:], s.heights[i:])
	copy(s.rights[i+1:], s.rights[i:])
	s.heights[i], s.rights[i] = height, right
}

// left returns the extent recorded at the smallest height strictly greater
// than top, or zero if there isn't one.
func (s *skyline) left(top int) int {
	i := sort.SearchInts(s.heights, top+1)
	if i == len(s.heights) {
		return 0
	}
	return s.rights[i]
}

// place lays out tall then normal items, writing into rects. If a normal
// item overflows the bottom of the canvas its position within normal is
// returned, otherwise overflow is -1.
func place(rects []image.Rectangle, tall, normal []item, w, h int) (overflow int, ok bool) {
	sortItems(tall)
	sortItems(normal)

	var sky skyline

	left := 0
	for i := len(tall) - 1; i >= 0; i-- {
		size := tall[i].size
		if left+size.X > w || size.Y > h {
			return -1, false
		}
		rects[tall[i].index] = image.Rect(left, 0, left+size.X, size.Y)
		sky.set(size.Y, left+size.X)
		left += size.X + Gap
	}

	top, height := 0, 0
	left = sky.left(top)
	for i := 0; i < len(normal); {
		size := normal[i].size
		switch {
		case left+size.X <= w:
			if top+size.Y > h {
				return i, false
			}
			rects[normal[i].index] = image.Rect(left, top, left+size.X, top+size.Y)
			height = max(height, size.Y)
			left += size.X + Gap
			i++
		case height > 0:
			// Close the current shelf and retry on the next
			top += height + Gap
			height = 0
			left = sky.left(top)
		default:
			// Empty shelf and still too wide, skip down the skyline
			// to the first tall rectangle that leaves enough room
			j := 0
			for j < len(sky.heights) && sky.rights[j]+size.X > w {
				j++
			}
			if size.X > w || j == len(sky.heights) || sky.heights[j]+size.Y+Gap > h {
				return -1, false
			}
			top = sky.heights[j] + Gap
			height = 0
			left = sky.left(top)
		}
	}

	return -1, true
}

// Pack places rectangles of the given sizes within a canvas of w by h. The
// returned rectangles are in the same order as sizes. The result depends only
// on the inputs and false is returned if they do not fit.
func Pack(sizes []image.Point, w, h int) ([]image.Rectangle, bool) {
	var tall, normal []item
	for i, size := range sizes {
		if size.Y >= h/2 {
			tall = append(tall, item{i, size})
		} else {
			normal = append(normal, item{i, size})
		}
	}

	rects := make([]image.Rectangle, len(sizes))
	for retry := 0; retry < 2; retry++ {
		overflow, ok := place(rects, tall, normal, w, h)
		if ok {
			return rects, true
		}
		if overflow < 0 {
			break
		}
		tall = append(tall, normal[overflow:]...)
		normal = normal[:overflow]
		for i := range rects {
			rects[i] = image.Rectangle{}
		}
	}

	return nil, false
}
