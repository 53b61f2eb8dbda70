/*
Package manifest describes where each sprite was placed within an atlas and
reads and writes that description in a number of formats.

A manifest lists the canvas image and its size followed by one entry per
sprite. Each entry carries the primary source name, any aliases that shared
identical pixels, the size of the source image, whether the sprite was
rotated 90 degrees counter-clockwise, the rectangle(s) copied out of the
source image and the rectangle(s) they occupy on the canvas. Source
rectangles are always in the coordinates of the unrotated source image; when
a sprite is rotated the matching canvas rectangle has its width and height
swapped.
*/
package manifest

import (
	"errors"
	"fmt"
	"image"
)

// Format identifies a manifest encoding.
type Format string

// Supported formats.
const (
	JSON   Format = "json"
	YAML   Format = "yaml"
	TOML   Format = "toml"
	CBOR   Format = "cbor"
	SQLite Format = "sqlite"
)

var errUnknownFormat = errors.New("manifest: unknown format")

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case JSON, YAML, TOML, CBOR, SQLite:
		return f, nil
	}
	return "", fmt.Errorf("%w \"%s\"", errUnknownFormat, s)
}

// Extension returns the file extension conventionally used by f.
func (f Format) Extension() string {
	switch f {
	case SQLite:
		return ".db"
	case YAML:
		return ".yml"
	}
	return "." + string(f)
}

// Rect is a rectangle given by its top-left corner and size.
type Rect struct {
	X int `json:"x" yaml:"x" toml:"x" cbor:"x"`
	Y int `json:"y" yaml:"y" toml:"y" cbor:"y"`
	W int `json:"w" yaml:"w" toml:"w" cbor:"w"`
	H int `json:"h" yaml:"h" toml:"h" cbor:"h"`
}

// FromRectangle converts an image.Rectangle.
func FromRectangle(r image.Rectangle) Rect {
	return Rect{r.Min.X, r.Min.Y, r.Dx(), r.Dy()}
}

// Rectangle converts back to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Sprite is a single packed entry.
type Sprite struct {
	Name        string   `json:"name" yaml:"name" toml:"name" cbor:"name"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty" cbor:"aliases,omitempty"`
	Width       int      `json:"width" yaml:"width" toml:"width" cbor:"width"`
	Height      int      `json:"height" yaml:"height" toml:"height" cbor:"height"`
	Rotated     bool     `json:"rotated" yaml:"rotated" toml:"rotated" cbor:"rotated"`
	Rects       []Rect   `json:"rects" yaml:"rects" toml:"rects" cbor:"rects"`
	CanvasRects []Rect   `json:"canvas_rects" yaml:"canvas_rects" toml:"canvas_rects" cbor:"canvas_rects"`
}

// Manifest describes a complete atlas.
type Manifest struct {
	Image   string   `json:"image" yaml:"image" toml:"image" cbor:"image"`
	Width   int      `json:"width" yaml:"width" toml:"width" cbor:"width"`
	Height  int      `json:"height" yaml:"height" toml:"height" cbor:"height"`
	Sprites []Sprite `json:"sprites" yaml:"sprites" toml:"sprites" cbor:"sprites"`
}

// Find returns the sprite known by name, either as its primary name or as
// one of its aliases.
func (m *Manifest) Find(name string) (*Sprite, bool) {
	for i := range m.Sprites {
		s := &m.Sprites[i]
		if s.Name == name {
			return s, true
		}
		for _, a := range s.Aliases {
			if a == name {
				return s, true
			}
		}
	}
	return nil, false
}
