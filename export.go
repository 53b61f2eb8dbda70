package atlas

import (
	"image"
	"path/filepath"

	"github.com/bodgit/atlas/manifest"
)

func relName(base, name string) string {
	if base == "" {
		return filepath.ToSlash(name)
	}
	rel, err := filepath.Rel(base, name)
	if err != nil {
		return filepath.ToSlash(name)
	}
	return filepath.ToSlash(rel)
}

func rects(rs []image.Rectangle) []manifest.Rect {
	out := make([]manifest.Rect, 0, len(rs))
	for _, r := range rs {
		out = append(out, manifest.FromRectangle(r))
	}
	return out
}

// Manifest describes the atlas for the canvas stored in file. Sprite names
// are made relative to base if it is non-empty.
func (a *Atlas) Manifest(base, file string) *manifest.Manifest {
	m := &manifest.Manifest{
		Image:   file,
		Width:   a.Canvas.Rect.Dx(),
		Height:  a.Canvas.Rect.Dy(),
		Sprites: make([]manifest.Sprite, 0, len(a.Sprites)),
	}
	for _, s := range a.Sprites {
		e := manifest.Sprite{
			Name:        relName(base, s.Name),
			Width:       s.RawWidth,
			Height:      s.RawHeight,
			Rotated:     s.Rotated,
			Rects:       rects(s.SourceRects()),
			CanvasRects: rects(s.Dest),
		}
		for _, alias := range s.Aliases {
			e.Aliases = append(e.Aliases, relName(base, alias))
		}
		m.Sprites = append(m.Sprites, e)
	}
	return m
}
