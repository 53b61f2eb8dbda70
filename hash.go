package atlas

import (
	"encoding/binary"
	"image"

	"github.com/zeebo/blake3"
)

// Hash is a BLAKE3-256 digest of an image's dimensions and raw pixels.
type Hash [32]byte

func contentHash(m *image.NRGBA) Hash {
	var dim [8]byte
	binary.LittleEndian.PutUint32(dim[0:], uint32(m.Rect.Dx()))
	binary.LittleEndian.PutUint32(dim[4:], uint32(m.Rect.Dy()))

	h := blake3.New()
	h.Write(dim[:])
	h.Write(m.Pix)

	var sum Hash
	copy(sum[:], h.Sum(nil))
	return sum
}
