/*
Package atlas is a library for packing many sprite images into a single
texture atlas.

Each source image is trimmed to the bounding rectangle of its visible pixels,
optionally rotated so that it is wider than it is tall and optionally
collapsed with any byte-identical image. The surviving sprites are placed onto
a power-of-two canvas with a shelf packer and composited into a single
image.Image, alongside the list of sprites that describes where each one
ended up.
*/
package atlas

import (
	"errors"
	"image"

	"github.com/charmbracelet/log"
)

var (
	// ErrCanvasTooSmall is returned when the sprites cannot be packed
	// within the maximum canvas size.
	ErrCanvasTooSmall = errors.New("atlas: too many or too large images to fit the maximum canvas size")

	// ErrNoSprites is returned when none of the input images could be used.
	ErrNoSprites = errors.New("atlas: no images to pack")
)

// Packer packs images into an atlas according to its Config.
type Packer struct {
	config  Config
	decoder Decoder
	logger  *log.Logger
}

// New returns a Packer. If decoder is nil, images are read from the
// filesystem with a FileDecoder.
func New(config Config, decoder Decoder, logger *log.Logger) *Packer {
	if decoder == nil {
		decoder = FileDecoder{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Packer{
		config:  config,
		decoder: decoder,
		logger:  logger,
	}
}

// Atlas is the result of a successful pack.
type Atlas struct {
	Canvas  *image.NRGBA
	Sprites []*Sprite
}
